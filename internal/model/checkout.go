package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCheckoutRequest is the DTO for POST /api/checkout/create-session
// It deliberately has no price or discount field: both are derived server-side.
type CreateCheckoutRequest struct {
	CourseID   string `json:"course_id" validate:"required,notblank,max=255"`
	PromoCode  string `json:"promo_code" validate:"max=64"`
	SuccessURL string `json:"success_url" validate:"omitempty,url,max=2048"`
	CancelURL  string `json:"cancel_url" validate:"omitempty,url,max=2048"`
}

// CheckoutSessionResponse carries the gateway session reference back to the client.
type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CheckoutSession is the locally stored reference to a gateway-owned session.
type CheckoutSession struct {
	SessionID       string          `json:"session_id"`
	CourseID        string          `json:"course_id"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	PromoCode       *string         `json:"promo_code,omitempty"`
	DiscountPercent int             `json:"discount_percent"`
	UserID          *string         `json:"user_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Metadata keys shared between session creation and the payment webhook.
const (
	MetaCourseID        = "courseId"
	MetaCourseTitle     = "courseTitle"
	MetaOriginalPrice   = "originalPrice"
	MetaFinalPrice      = "finalPrice"
	MetaPromoCode       = "promoCode"
	MetaDiscountPercent = "discountPercent"
	MetaUserID          = "userId"
)

// GatewaySessionRequest describes a single-line-item hosted checkout.
type GatewaySessionRequest struct {
	ProductName        string
	ProductDescription string
	Currency           string
	UnitAmount         int64 // minor units
	CustomerEmail      string
	SuccessURL         string
	CancelURL          string
	Metadata           map[string]string
}

// GatewaySession is the gateway's answer to a session request.
type GatewaySession struct {
	ID  string
	URL string
}
