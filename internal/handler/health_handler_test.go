package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// mockPinger implements Pinger for the database and cache checks
type mockPinger struct {
	pingErr error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.pingErr
}

func setupHealthApp(db, cache Pinger) *fiber.App {
	app := fiber.New()
	handler := NewHealthHandler(db, cache)
	app.Get("/health", handler.Check)
	return app
}

func TestHealthHandler_Check_Healthy(t *testing.T) {
	app := setupHealthApp(&mockPinger{}, &mockPinger{})

	status, body := do(t, app, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, map[string]any{"database": "ok", "cache": "ok"}, body["checks"])
}

func TestHealthHandler_Check_NoCache(t *testing.T) {
	app := setupHealthApp(&mockPinger{}, nil)

	status, body := do(t, app, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, map[string]any{"database": "ok"}, body["checks"])
}

func TestHealthHandler_Check_CacheDown(t *testing.T) {
	app := setupHealthApp(&mockPinger{}, &mockPinger{pingErr: errors.New("dial tcp: connection refused")})

	status, body := do(t, app, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, map[string]any{"database": "ok", "cache": "unreachable"}, body["checks"])
}

func TestHealthHandler_Check_Unhealthy(t *testing.T) {
	app := setupHealthApp(&mockPinger{pingErr: errors.New("connection refused")}, &mockPinger{})

	status, body := do(t, app, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "database connection failed", body["error"])
}
