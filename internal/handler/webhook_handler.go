package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/internal/service"
)

const signatureHeader = "Stripe-Signature"

// WebhookServiceInterface defines the interface for payment notifications.
type WebhookServiceInterface interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*model.WebhookResult, error)
}

// WebhookHandler receives payment gateway callbacks.
type WebhookHandler struct {
	service WebhookServiceInterface
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(svc WebhookServiceInterface) *WebhookHandler {
	return &WebhookHandler{service: svc}
}

// HandleStripe handles POST /api/webhooks/stripe.
// Every verified event is acknowledged with 200 so the gateway stops retrying;
// only signature and payload failures are rejected.
func (h *WebhookHandler) HandleStripe(c *fiber.Ctx) error {
	// fasthttp reuses the body buffer after the handler returns
	payload := append([]byte(nil), c.Body()...)
	signature := c.Get(signatureHeader)

	result, err := h.service.HandleWebhook(c.UserContext(), payload, signature)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSignature):
			log.Warn().Err(err).Str("ip", c.IP()).Msg("rejected webhook with invalid signature")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid signature"})
		case errors.Is(err, service.ErrInvalidPayload):
			log.Warn().Err(err).Msg("rejected webhook with unreadable payload")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		case errors.Is(err, service.ErrNotConfigured):
			log.Error().Err(err).Msg("webhook received but signing secret is not configured")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook not configured"})
		}
		log.Error().Err(err).Msg("failed to handle webhook")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"received": true, "outcome": result.Outcome})
}
