package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/middleware"
	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/internal/service"
)

// CheckoutServiceInterface defines the interface for checkout session creation.
type CheckoutServiceInterface interface {
	CreateSession(ctx context.Context, req *model.CreateCheckoutRequest, buyer service.Buyer) (*model.CheckoutSessionResponse, error)
}

// CheckoutHandler handles checkout session requests.
type CheckoutHandler struct {
	service   CheckoutServiceInterface
	validator *validator.Validate
	// exposeErrors adds gateway error detail to responses outside production.
	exposeErrors bool
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(svc CheckoutServiceInterface, v *validator.Validate, exposeErrors bool) *CheckoutHandler {
	return &CheckoutHandler{service: svc, validator: v, exposeErrors: exposeErrors}
}

// CreateSession handles POST /api/checkout/create-session.
// The buyer comes from the optional bearer token, never from the body.
func (h *CheckoutHandler) CreateSession(c *fiber.Ctx) error {
	var req model.CreateCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	buyer := service.Buyer{UserID: middleware.UserID(c), Email: middleware.UserEmail(c)}
	resp, err := h.service.CreateSession(c.UserContext(), &req, buyer)
	if err != nil {
		return h.handleError(c, &req, err)
	}

	return c.JSON(resp)
}

func (h *CheckoutHandler) handleError(c *fiber.Ctx, req *model.CreateCheckoutRequest, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCourseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "course not found"})
	case errors.Is(err, service.ErrCourseFull):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "course is full"})
	case errors.Is(err, service.ErrNotConfigured):
		log.Error().Err(err).Msg("checkout requested but payment gateway is not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "payment processing is not configured"})
	case isTimeout(err):
		return timeoutResponse(c)
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Str("course_id", req.CourseID).
		Msg("failed to create checkout session")

	if errors.Is(err, service.ErrPaymentGateway) {
		body := fiber.Map{"error": "payment provider error, please try again"}
		if h.exposeErrors {
			body["detail"] = err.Error()
		}
		return c.Status(fiber.StatusBadGateway).JSON(body)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
