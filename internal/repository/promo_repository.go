package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/internal/service"
	"github.com/fairyhunter13/training-marketplace/pkg/database"
)

// ErrPromoCodeMissing is returned when a redemption targets an unknown code.
var ErrPromoCodeMissing = errors.New("promo code does not exist")

// PromoRepository provides data access for promo codes using pgx.
type PromoRepository struct {
	db database.Querier
}

// NewPromoRepository creates a new PromoRepository. Pass a *pgxpool.Pool or a pgx.Tx.
func NewPromoRepository(db database.Querier) *PromoRepository {
	return &PromoRepository{db: db}
}

// Insert stores a new promo code.
// Returns service.ErrPromoCodeExists if the code is taken and
// service.ErrCourseNotFound if it is scoped to an unknown course.
func (r *PromoRepository) Insert(ctx context.Context, promo *model.PromoCode) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO promo_codes (code, discount_percent, valid_until, course_id, current_uses, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		promo.Code, promo.DiscountPercent, promo.ValidUntil, promo.CourseID, promo.CurrentUses, promo.IsActive)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return service.ErrPromoCodeExists
		case pgForeignKeyViolation:
			return service.ErrCourseNotFound
		}
		return fmt.Errorf("insert promo code: %w", err)
	}
	return nil
}

// GetByCode retrieves a promo code by its exact (uppercase) code.
// Returns nil, nil if the code is not found (service layer handles this).
func (r *PromoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var p model.PromoCode
	err := r.db.QueryRow(ctx,
		`SELECT code, discount_percent, valid_until, course_id, current_uses, is_active, created_at
		 FROM promo_codes WHERE code = $1`, code).Scan(
		&p.Code,
		&p.DiscountPercent,
		&p.ValidUntil,
		&p.CourseID,
		&p.CurrentUses,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promo code %s: %w", code, err)
	}
	return &p, nil
}

// IncrementUses records one redemption of the code.
func (r *PromoRepository) IncrementUses(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE promo_codes SET current_uses = current_uses + 1 WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("increment uses for %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment uses for %s: %w", code, ErrPromoCodeMissing)
	}
	return nil
}
