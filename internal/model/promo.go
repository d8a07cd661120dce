package model

import "time"

// PromoCode is a time-boxed percentage discount, optionally scoped to one course.
type PromoCode struct {
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	ValidUntil      time.Time `json:"valid_until"` // calendar date, time of day is ignored
	CourseID        *string   `json:"course_id"`   // nil applies to every course
	CurrentUses     int       `json:"current_uses"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"-"`
}

// ValidatePromoRequest is the DTO for POST /api/promo-codes/validate
type ValidatePromoRequest struct {
	Code     string `json:"code" validate:"required,notblank,max=64"`
	CourseID string `json:"course_id" validate:"max=255"`
}

// PromoValidationResult is the outcome of a promo code check.
type PromoValidationResult struct {
	Valid           bool   `json:"valid"`
	DiscountPercent *int   `json:"discount_percent,omitempty"`
	Message         string `json:"message"`
}

// CreatePromoCodeRequest is the DTO for POST /api/admin/promo-codes
type CreatePromoCodeRequest struct {
	Code            string  `json:"code" validate:"required,notblank,max=64"`
	DiscountPercent *int    `json:"discount_percent" validate:"required,gte=0,lte=100"`
	ValidUntil      string  `json:"valid_until" validate:"required,datetime=2006-01-02"`
	CourseID        *string `json:"course_id" validate:"omitempty,max=255"`
}
