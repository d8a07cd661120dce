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

// PromoServiceInterface defines the interface for promo code checks.
type PromoServiceInterface interface {
	Validate(ctx context.Context, code, courseID string) (*model.PromoValidationResult, error)
}

// PromoHandler handles promo code validation.
type PromoHandler struct {
	service   PromoServiceInterface
	validator *validator.Validate
}

// NewPromoHandler creates a new PromoHandler with the given service and validator.
func NewPromoHandler(svc PromoServiceInterface, v *validator.Validate) *PromoHandler {
	return &PromoHandler{service: svc, validator: v}
}

// ValidatePromo handles POST /api/promo-codes/validate.
// A code that exists but cannot be redeemed is a 200 with valid=false.
func (h *PromoHandler) ValidatePromo(c *fiber.Ctx) error {
	var req model.ValidatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.PromoValidationResult{
			Valid:   false,
			Message: formatValidationError(err),
		})
	}

	result, err := h.service.Validate(c.UserContext(), req.Code, req.CourseID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(model.PromoValidationResult{
				Valid:   false,
				Message: err.Error(),
			})
		}
		if isTimeout(err) {
			return timeoutResponse(c)
		}
		log.Error().Err(err).Str("promo_code", req.Code).Msg("failed to validate promo code")
		if result == nil {
			result = &model.PromoValidationResult{Valid: false, Message: "error validating promo code"}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}

	return c.JSON(result)
}
