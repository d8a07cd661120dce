package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking statuses.
const (
	BookingStatusConfirmed = "confirmed"
	PaymentStatusPaid      = "paid"
)

// Booking is a confirmed, paid enrollment. PaymentSessionID is unique.
type Booking struct {
	ID               uuid.UUID       `json:"id"`
	CourseID         string          `json:"course_id"`
	UserID           *uuid.UUID      `json:"user_id,omitempty"`
	CustomerEmail    string          `json:"customer_email"`
	CustomerName     string          `json:"customer_name"`
	PaymentSessionID string          `json:"payment_session_id"`
	PaymentStatus    string          `json:"payment_status"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	Currency         string          `json:"currency"`
	BookingStatus    string          `json:"booking_status"`
	CreatedAt        time.Time       `json:"created_at"`
}
