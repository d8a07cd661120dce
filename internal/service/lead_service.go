package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/internal/validator"
)

const (
	leadCodePrefix       = "LEAD"
	leadDiscountPercent  = 10
	leadCodeValidity     = 30 * 24 * time.Hour
	maxCodeInsertAttempt = 5
)

// LeadRepositoryInterface defines the interface for lead data access.
type LeadRepositoryInterface interface {
	Insert(ctx context.Context, lead *model.Lead) error
	List(ctx context.Context, limit int) ([]model.Lead, error)
}

// LeadService records contact-form leads and issues their welcome promo code.
type LeadService struct {
	leads    LeadRepositoryInterface
	promos   PromoRepositoryInterface
	notifier Notifier
	now      func() time.Time
	genCode  func() (string, error)
}

// NewLeadService creates a new LeadService with the given repositories and notifier.
func NewLeadService(leads LeadRepositoryInterface, promos PromoRepositoryInterface, notifier Notifier) *LeadService {
	return &LeadService{
		leads:    leads,
		promos:   promos,
		notifier: notifier,
		now:      time.Now,
		genCode:  generateLeadCode,
	}
}

// generateLeadCode returns LEAD followed by four random digits.
func generateLeadCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generate promo code: %w", err)
	}
	return fmt.Sprintf("%s%04d", leadCodePrefix, n.Int64()), nil
}

// SubmitLead validates the submission, stores the lead and mints a 10% code.
// Storage and email failures are logged and do not fail the call. Returns
// ErrPromoCodeUnavailable when every generated code collided with an existing one.
func (s *LeadService) SubmitLead(ctx context.Context, req *model.SubmitLeadRequest) (*model.SubmitLeadResponse, error) {
	if req == nil {
		return nil, ErrValidation
	}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !validator.IsEmail(email) {
		return nil, fmt.Errorf("%w: email is invalid", ErrValidation)
	}

	now := s.now()
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = model.DefaultLeadSource
	}

	lead := &model.Lead{
		ID:                 uuid.New(),
		Name:               name,
		Email:              email,
		Company:            optional(req.Company),
		Phone:              optional(req.Phone),
		Message:            optional(req.Message),
		InterestedCourseID: optional(req.CourseID),
		Source:             source,
		CreatedAt:          now,
	}

	if err := s.leads.Insert(ctx, lead); err != nil {
		log.Error().Err(err).Str("lead_id", lead.ID.String()).Msg("failed to store lead, continuing")
	}

	promo, err := s.issuePromo(ctx, now)
	if err != nil {
		return nil, err
	}

	courseTitle := strings.TrimSpace(req.CourseTitle)
	if s.notifier != nil {
		if err := s.notifier.LeadThankYou(ctx, lead, promo, courseTitle); err != nil {
			log.Warn().Err(err).Str("lead_id", lead.ID.String()).Msg("failed to send lead thank-you email")
		}
		if err := s.notifier.LeadNotification(ctx, lead, promo.Code, courseTitle); err != nil {
			log.Warn().Err(err).Str("lead_id", lead.ID.String()).Msg("failed to send lead notification email")
		}
	}

	log.Info().
		Str("lead_id", lead.ID.String()).
		Str("promo_code", promo.Code).
		Str("source", source).
		Msg("lead submitted")

	return &model.SubmitLeadResponse{PromoCode: promo.Code, LeadID: lead.ID}, nil
}

// issuePromo inserts a fresh code, regenerating on unique-key conflicts.
// A storage failure other than a conflict keeps the unsaved code. A code the
// store reported as taken is never returned.
func (s *LeadService) issuePromo(ctx context.Context, now time.Time) (*model.PromoCode, error) {
	for attempt := 1; attempt <= maxCodeInsertAttempt; attempt++ {
		code, err := s.genCode()
		if err != nil {
			return nil, err
		}
		promo := &model.PromoCode{
			Code:            code,
			DiscountPercent: leadDiscountPercent,
			ValidUntil:      calendarDate(now.UTC().Add(leadCodeValidity)),
			CurrentUses:     0,
			IsActive:        true,
		}

		err = s.promos.Insert(ctx, promo)
		if err == nil {
			return promo, nil
		}
		if errors.Is(err, ErrPromoCodeExists) {
			log.Debug().Str("promo_code", code).Int("attempt", attempt).Msg("promo code collision, regenerating")
			continue
		}
		log.Error().Err(err).Str("promo_code", code).Msg("failed to store promo code, continuing")
		return promo, nil
	}

	log.Error().Int("attempts", maxCodeInsertAttempt).Msg("could not find a free promo code")
	return nil, ErrPromoCodeUnavailable
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
