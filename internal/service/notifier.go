package service

import (
	"context"

	"github.com/fairyhunter13/training-marketplace/internal/model"
)

// Notifier sends the transactional emails triggered by leads and bookings.
// Callers treat every error as best-effort and only log it.
type Notifier interface {
	LeadThankYou(ctx context.Context, lead *model.Lead, promo *model.PromoCode, courseTitle string) error
	LeadNotification(ctx context.Context, lead *model.Lead, promoCode, courseTitle string) error
	BookingConfirmation(ctx context.Context, booking *model.Booking, courseTitle string) error
}
