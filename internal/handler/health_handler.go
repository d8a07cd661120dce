package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Pinger is an interface for health check ping operations.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a HealthHandler. cache may be nil when Redis is not configured.
func NewHealthHandler(db Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check pings the database and, if configured, the event cache.
// Returns 503 when the database is unreachable. A cache failure reports
// "degraded" with 200 because webhook dedupe falls back to the database.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if err := h.db.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("health check failed: database unreachable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  "database connection failed",
		})
	}

	checks := fiber.Map{"database": "ok"}
	status := "healthy"
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health check: cache unreachable")
			checks["cache"] = "unreachable"
			status = "degraded"
		} else {
			checks["cache"] = "ok"
		}
	}

	return c.JSON(fiber.Map{"status": status, "checks": checks})
}
