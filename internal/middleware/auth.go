// Package middleware holds the fiber handlers that run ahead of the API routes.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/auth"
)

const (
	// LocalUserID is the fiber locals key holding the caller's user id.
	LocalUserID = "user_id"
	// LocalUserEmail is the fiber locals key holding the caller's email.
	LocalUserEmail = "user_email"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Configured() bool
	Verify(token string) (*auth.Identity, error)
}

// Authenticate reads the bearer token and stores the caller identity in locals.
// When required is false a missing or bad token lets the request through anonymously.
func Authenticate(verifier TokenVerifier, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			if required {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
			}
			return c.Next()
		}

		if !verifier.Configured() {
			if required {
				log.Error().Msg("authentication required but no JWT secret configured")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "authentication not configured"})
			}
			return c.Next()
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			if required {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
			}
			log.Debug().Err(err).Msg("ignoring invalid bearer token on optional-auth route")
			return c.Next()
		}

		c.Locals(LocalUserID, identity.UserID.String())
		c.Locals(LocalUserEmail, identity.Email)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// UserEmail returns the authenticated user's email, or "".
func UserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalUserEmail).(string)
	return email
}
