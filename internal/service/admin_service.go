package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ProfileRepositoryInterface defines the interface for profile data access.
type ProfileRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// AdminService backs the back-office endpoints.
type AdminService struct {
	leads    LeadRepositoryInterface
	bookings BookingRepositoryInterface
	promos   PromoRepositoryInterface
	profiles ProfileRepositoryInterface
}

// NewAdminService creates a new AdminService with the given repositories.
func NewAdminService(
	leads LeadRepositoryInterface,
	bookings BookingRepositoryInterface,
	promos PromoRepositoryInterface,
	profiles ProfileRepositoryInterface,
) *AdminService {
	return &AdminService{leads: leads, bookings: bookings, promos: promos, profiles: profiles}
}

// Authorize checks that the user's stored role grants the capability.
// Unknown users and unknown role strings are denied.
func (s *AdminService) Authorize(ctx context.Context, userID string, capability model.Capability) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return ErrForbidden
	}
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: get profile: %w", ErrDataStore, err)
	}
	if profile == nil || !profile.Role.Can(capability) {
		log.Warn().Str("user_id", userID).Str("capability", string(capability)).Msg("capability denied")
		return ErrForbidden
	}
	return nil
}

// ListLeads returns the most recent leads first.
func (s *AdminService) ListLeads(ctx context.Context, limit int) ([]model.Lead, error) {
	leads, err := s.leads.List(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: list leads: %w", ErrDataStore, err)
	}
	return leads, nil
}

// ListBookings returns the most recent bookings first.
func (s *AdminService) ListBookings(ctx context.Context, limit int) ([]model.Booking, error) {
	bookings, err := s.bookings.List(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %w", ErrDataStore, err)
	}
	return bookings, nil
}

// CreatePromoCode stores a manually issued code.
// Returns ErrPromoCodeExists if the code is taken.
func (s *AdminService) CreatePromoCode(ctx context.Context, req *model.CreatePromoCodeRequest) (*model.PromoCode, error) {
	if req == nil || req.DiscountPercent == nil {
		return nil, ErrValidation
	}
	code := NormalizePromoCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrValidation)
	}
	if pct := *req.DiscountPercent; pct < 0 || pct > 100 {
		return nil, fmt.Errorf("%w: discount_percent must be between 0 and 100", ErrValidation)
	}
	validUntil, err := time.Parse(time.DateOnly, req.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("%w: valid_until must be YYYY-MM-DD", ErrValidation)
	}

	var courseID *string
	if req.CourseID != nil {
		courseID = optional(*req.CourseID)
	}

	promo := &model.PromoCode{
		Code:            code,
		DiscountPercent: *req.DiscountPercent,
		ValidUntil:      validUntil,
		CourseID:        courseID,
		IsActive:        true,
	}
	if err := s.promos.Insert(ctx, promo); err != nil {
		return nil, err
	}

	log.Info().Str("promo_code", code).Int("discount_percent", promo.DiscountPercent).Msg("promo code created")
	return promo, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
