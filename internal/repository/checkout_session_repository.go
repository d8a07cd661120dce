package repository

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/pkg/database"
)

// CheckoutSessionRepository stores references to gateway checkout sessions.
type CheckoutSessionRepository struct {
	db database.Querier
}

// NewCheckoutSessionRepository creates a new CheckoutSessionRepository.
func NewCheckoutSessionRepository(db database.Querier) *CheckoutSessionRepository {
	return &CheckoutSessionRepository{db: db}
}

// Insert stores the session metadata. Re-inserting the same session id is a no-op.
func (r *CheckoutSessionRepository) Insert(ctx context.Context, s *model.CheckoutSession) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO checkout_sessions (session_id, course_id, original_price, final_price, promo_code, discount_percent, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (session_id) DO NOTHING`,
		s.SessionID, s.CourseID, s.OriginalPrice, s.FinalPrice, s.PromoCode, s.DiscountPercent, s.UserID)
	if err != nil {
		return fmt.Errorf("insert checkout session %s: %w", s.SessionID, err)
	}
	return nil
}
