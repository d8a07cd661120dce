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

// AdminServiceInterface defines the interface for back-office operations.
type AdminServiceInterface interface {
	ListLeads(ctx context.Context, limit int) ([]model.Lead, error)
	ListBookings(ctx context.Context, limit int) ([]model.Booking, error)
	CreatePromoCode(ctx context.Context, req *model.CreatePromoCodeRequest) (*model.PromoCode, error)
}

// AdminHandler serves the back-office API. Routes are guarded by middleware.RequireCapability.
type AdminHandler struct {
	service   AdminServiceInterface
	validator *validator.Validate
}

// NewAdminHandler creates a new AdminHandler with the given service and validator.
func NewAdminHandler(svc AdminServiceInterface, v *validator.Validate) *AdminHandler {
	return &AdminHandler{service: svc, validator: v}
}

// ListLeads handles GET /api/admin/leads?limit=N.
func (h *AdminHandler) ListLeads(c *fiber.Ctx) error {
	leads, err := h.service.ListLeads(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		log.Error().Err(err).Str("user_id", middleware.UserID(c)).Msg("failed to list leads")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(fiber.Map{"leads": leads, "count": len(leads)})
}

// ListBookings handles GET /api/admin/bookings?limit=N.
func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.service.ListBookings(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		log.Error().Err(err).Str("user_id", middleware.UserID(c)).Msg("failed to list bookings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(fiber.Map{"bookings": bookings, "count": len(bookings)})
}

// CreatePromoCode handles POST /api/admin/promo-codes.
func (h *AdminHandler) CreatePromoCode(c *fiber.Ctx) error {
	var req model.CreatePromoCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	promo, err := h.service.CreatePromoCode(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrPromoCodeExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "promo code already exists"})
		}
		if errors.Is(err, service.ErrCourseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "course not found"})
		}
		log.Error().Err(err).Str("promo_code", req.Code).Msg("failed to create promo code")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("user_id", middleware.UserID(c)).
		Str("promo_code", promo.Code).
		Msg("promo code created by admin")
	return c.Status(fiber.StatusCreated).JSON(promo)
}
