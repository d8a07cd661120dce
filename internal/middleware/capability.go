package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/internal/service"
)

// Authorizer decides whether a user holds a capability.
type Authorizer interface {
	Authorize(ctx context.Context, userID string, capability model.Capability) error
}

// RequireCapability rejects requests whose caller lacks the capability.
// It must run after Authenticate.
func RequireCapability(authorizer Authorizer, capability model.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}

		if err := authorizer.Authorize(c.UserContext(), userID, capability); err != nil {
			if errors.Is(err, service.ErrForbidden) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
			}
			log.Error().Err(err).Str("user_id", userID).Msg("authorization check failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
		return c.Next()
	}
}
