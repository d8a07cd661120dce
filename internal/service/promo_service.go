package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
)

// PromoRepositoryInterface defines the interface for promo code data access.
type PromoRepositoryInterface interface {
	Insert(ctx context.Context, promo *model.PromoCode) error
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)
	IncrementUses(ctx context.Context, code string) error
}

// PromoRejection is the reason a promo code was refused. Empty means accepted.
type PromoRejection string

const (
	PromoAccepted       PromoRejection = ""
	PromoNotFound       PromoRejection = "not_found"
	PromoInactive       PromoRejection = "inactive"
	PromoExpired        PromoRejection = "expired"
	PromoCourseMismatch PromoRejection = "course_mismatch"
)

const promoValidateFailure = "error validating promo code"

var rejectionMessages = map[PromoRejection]string{
	PromoAccepted:       "promo code applied",
	PromoNotFound:       "promo code not found",
	PromoInactive:       "promo code is no longer active",
	PromoExpired:        "promo code has expired",
	PromoCourseMismatch: "promo code is not valid for this course",
}

// NormalizePromoCode trims and uppercases a code before lookup or storage.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// calendarDate drops the time of day so expiry compares whole dates.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EvaluatePromo applies the redemption rules to a looked-up code.
// A code stays valid through the whole of its valid_until day.
func EvaluatePromo(promo *model.PromoCode, courseID string, now time.Time) PromoRejection {
	if promo == nil {
		return PromoNotFound
	}
	if !promo.IsActive {
		return PromoInactive
	}
	if calendarDate(now.UTC()).After(calendarDate(promo.ValidUntil)) {
		return PromoExpired
	}
	if promo.CourseID != nil && *promo.CourseID != courseID {
		return PromoCourseMismatch
	}
	return PromoAccepted
}

// PromoService provides promo code lookups and validation.
type PromoService struct {
	repo PromoRepositoryInterface
	now  func() time.Time
}

// NewPromoService creates a new PromoService with the given repository.
func NewPromoService(repo PromoRepositoryInterface) *PromoService {
	return &PromoService{repo: repo, now: time.Now}
}

// Validate checks a code for the given course. Business-rule failures return a result
// with Valid=false and a nil error. Only lookup failures return an error, together with
// a generic result that callers can still show.
func (s *PromoService) Validate(ctx context.Context, code, courseID string) (*model.PromoValidationResult, error) {
	normalized := NormalizePromoCode(code)
	if normalized == "" {
		return nil, fmt.Errorf("%w: code is required", ErrValidation)
	}

	promo, err := s.repo.GetByCode(ctx, normalized)
	if err != nil {
		return &model.PromoValidationResult{Valid: false, Message: promoValidateFailure},
			fmt.Errorf("%w: lookup promo code: %w", ErrDataStore, err)
	}

	reason := EvaluatePromo(promo, courseID, s.now())
	result := &model.PromoValidationResult{
		Valid:   reason == PromoAccepted,
		Message: rejectionMessages[reason],
	}
	if result.Valid {
		pct := promo.DiscountPercent
		result.DiscountPercent = &pct
	}

	log.Debug().
		Str("promo_code", normalized).
		Str("course_id", courseID).
		Bool("valid", result.Valid).
		Str("reason", string(reason)).
		Msg("promo code validated")

	return result, nil
}

// Resolve returns the code and discount to apply at checkout, or zero when the
// code is absent or not redeemable. Lookup errors degrade to no discount.
func (s *PromoService) Resolve(ctx context.Context, code, courseID string) (string, int) {
	normalized := NormalizePromoCode(code)
	if normalized == "" {
		return "", 0
	}

	promo, err := s.repo.GetByCode(ctx, normalized)
	if err != nil {
		log.Warn().Err(err).Str("promo_code", normalized).Msg("promo lookup failed, continuing without discount")
		return "", 0
	}

	if reason := EvaluatePromo(promo, courseID, s.now()); reason != PromoAccepted {
		log.Info().
			Str("promo_code", normalized).
			Str("course_id", courseID).
			Str("reason", string(reason)).
			Msg("promo code rejected at checkout")
		return "", 0
	}
	return promo.Code, promo.DiscountPercent
}
