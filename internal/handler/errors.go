package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// formatValidationError turns the first validator failure into a client message.
// Field names are the JSON names registered by internal/validator.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			return "invalid request: " + field + " is required"
		case "notblank":
			return "invalid request: " + field + " cannot be whitespace only"
		case "max":
			return "invalid request: " + field + " exceeds maximum length of " + fe.Param()
		case "emailaddr":
			return "invalid request: " + field + " must be a valid email address"
		case "url":
			return "invalid request: " + field + " must be a valid URL"
		case "gte":
			return "invalid request: " + field + " must be at least " + fe.Param()
		case "lte":
			return "invalid request: " + field + " must be at most " + fe.Param()
		case "datetime":
			return "invalid request: " + field + " must be a date in YYYY-MM-DD format"
		default:
			return "invalid request: " + field + " is invalid"
		}
	}
	return "invalid request"
}

// isTimeout reports whether err came from the request deadline.
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func timeoutResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "request timed out, please retry"})
}
