package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/training-marketplace/internal/model"
)

var fixedNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func newTestPromoService(repo PromoRepositoryInterface) *PromoService {
	svc := NewPromoService(repo)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvaluatePromo(t *testing.T) {
	active := func(mutate func(p *model.PromoCode)) *model.PromoCode {
		p := &model.PromoCode{Code: "SAVE15", DiscountPercent: 15, ValidUntil: date(2026, 4, 1), IsActive: true}
		if mutate != nil {
			mutate(p)
		}
		return p
	}

	tests := []struct {
		name     string
		promo    *model.PromoCode
		courseID string
		want     PromoRejection
	}{
		{"missing", nil, "", PromoNotFound},
		{"valid universal", active(nil), "course-a", PromoAccepted},
		{"valid without course", active(nil), "", PromoAccepted},
		{"inactive", active(func(p *model.PromoCode) { p.IsActive = false }), "", PromoInactive},
		{"expired yesterday", active(func(p *model.PromoCode) { p.ValidUntil = date(2026, 3, 14) }), "", PromoExpired},
		{"valid through today", active(func(p *model.PromoCode) { p.ValidUntil = date(2026, 3, 15) }), "", PromoAccepted},
		{"scoped to same course", active(func(p *model.PromoCode) { p.CourseID = strPtr("course-a") }), "course-a", PromoAccepted},
		{"scoped to other course", active(func(p *model.PromoCode) { p.CourseID = strPtr("course-b") }), "course-a", PromoCourseMismatch},
		{"scoped with no course given", active(func(p *model.PromoCode) { p.CourseID = strPtr("course-b") }), "", PromoCourseMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluatePromo(tt.promo, tt.courseID, fixedNow))
		})
	}
}

func TestEvaluatePromo_IgnoresTimeOfDay(t *testing.T) {
	promo := &model.PromoCode{DiscountPercent: 10, ValidUntil: date(2026, 3, 15), IsActive: true}

	lateToday := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, PromoAccepted, EvaluatePromo(promo, "", lateToday))

	earlyTomorrow := time.Date(2026, 3, 16, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, PromoExpired, EvaluatePromo(promo, "", earlyTomorrow))
}

func TestPromoService_Validate_Success(t *testing.T) {
	var lookedUp string
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			lookedUp = code
			return &model.PromoCode{Code: "LEAD0042", DiscountPercent: 10, ValidUntil: date(2026, 4, 14), IsActive: true}, nil
		},
	}
	svc := newTestPromoService(repo)

	result, err := svc.Validate(context.Background(), " lead0042 ", "")

	require.NoError(t, err)
	assert.Equal(t, "LEAD0042", lookedUp, "code should be uppercased before lookup")
	assert.True(t, result.Valid)
	require.NotNil(t, result.DiscountPercent)
	assert.Equal(t, 10, *result.DiscountPercent)
	assert.Equal(t, "promo code applied", result.Message)
}

func TestPromoService_Validate_ExpiredRegardlessOfDiscount(t *testing.T) {
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return &model.PromoCode{Code: "SAVE15", DiscountPercent: 15, ValidUntil: date(2025, 12, 31), IsActive: true}, nil
		},
	}
	svc := newTestPromoService(repo)

	result, err := svc.Validate(context.Background(), "SAVE15", "")

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Nil(t, result.DiscountPercent)
	assert.Equal(t, "promo code has expired", result.Message)
}

func TestPromoService_Validate_CourseMismatch(t *testing.T) {
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return &model.PromoCode{Code: "K8S20", DiscountPercent: 20, ValidUntil: date(2026, 12, 31), CourseID: strPtr("kubernetes"), IsActive: true}, nil
		},
	}
	svc := newTestPromoService(repo)

	result, err := svc.Validate(context.Background(), "K8S20", "terraform")

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "promo code is not valid for this course", result.Message)
}

func TestPromoService_Validate_NotFound(t *testing.T) {
	svc := newTestPromoService(&mockPromoRepository{})

	result, err := svc.Validate(context.Background(), "NOPE", "")

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "promo code not found", result.Message)
}

func TestPromoService_Validate_EmptyCode(t *testing.T) {
	svc := newTestPromoService(&mockPromoRepository{})

	result, err := svc.Validate(context.Background(), "   ", "")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPromoService_Validate_StoreError(t *testing.T) {
	dbErr := errors.New("connection refused")
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			return nil, dbErr
		},
	}
	svc := newTestPromoService(repo)

	result, err := svc.Validate(context.Background(), "SAVE15", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataStore)
	assert.ErrorIs(t, err, dbErr)
	require.NotNil(t, result)
	assert.False(t, result.Valid)
	assert.Equal(t, "error validating promo code", result.Message)
}

func TestPromoService_Resolve(t *testing.T) {
	repo := &mockPromoRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.PromoCode, error) {
			switch code {
			case "SAVE15":
				return &model.PromoCode{Code: "SAVE15", DiscountPercent: 15, ValidUntil: date(2026, 12, 31), IsActive: true}, nil
			case "OLD":
				return &model.PromoCode{Code: "OLD", DiscountPercent: 50, ValidUntil: date(2020, 1, 1), IsActive: true}, nil
			case "BROKEN":
				return nil, errors.New("timeout")
			}
			return nil, nil
		},
	}
	svc := newTestPromoService(repo)
	ctx := context.Background()

	code, pct := svc.Resolve(ctx, "save15", "any")
	assert.Equal(t, "SAVE15", code)
	assert.Equal(t, 15, pct)

	code, pct = svc.Resolve(ctx, "OLD", "any")
	assert.Empty(t, code)
	assert.Zero(t, pct)

	code, pct = svc.Resolve(ctx, "BROKEN", "any")
	assert.Empty(t, code)
	assert.Zero(t, pct)

	code, pct = svc.Resolve(ctx, "", "any")
	assert.Empty(t, code)
	assert.Zero(t, pct)
}
