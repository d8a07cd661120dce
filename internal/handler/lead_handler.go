package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/internal/service"
)

// LeadServiceInterface defines the interface for lead business logic.
type LeadServiceInterface interface {
	SubmitLead(ctx context.Context, req *model.SubmitLeadRequest) (*model.SubmitLeadResponse, error)
}

// LeadHandler handles contact-form submissions.
type LeadHandler struct {
	service   LeadServiceInterface
	validator *validator.Validate
}

// NewLeadHandler creates a new LeadHandler with the given service and validator.
func NewLeadHandler(svc LeadServiceInterface, v *validator.Validate) *LeadHandler {
	return &LeadHandler{service: svc, validator: v}
}

// SubmitLead handles POST /api/leads/submit.
// Returns 201 with the issued promo code; storage and email failures do not change the status.
// Returns 503 when no free code could be found.
func (h *LeadHandler) SubmitLead(c *fiber.Ctx) error {
	var req model.SubmitLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	resp, err := h.service.SubmitLead(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrPromoCodeUnavailable) {
			log.Error().Err(err).Msg("lead promo code pool exhausted")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "could not issue a promo code, please retry"})
		}
		if isTimeout(err) {
			return timeoutResponse(c)
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("path", c.Path()).
			Msg("failed to submit lead")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}
