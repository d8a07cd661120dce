package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/pkg/database"
)

// BookingRepository provides data access for bookings using pgx.
type BookingRepository struct {
	db database.Querier
}

// NewBookingRepository creates a new BookingRepository. Pass a *pgxpool.Pool or a pgx.Tx.
func NewBookingRepository(db database.Querier) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts the booking unless its payment session is already booked.
// The unique key on payment_session_id makes concurrent redeliveries race safely:
// exactly one insert returns a row, every other one reports created=false.
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) (bool, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO bookings (id, course_id, user_id, customer_email, customer_name, payment_session_id,
		                       payment_status, amount_paid, currency, booking_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (payment_session_id) DO NOTHING
		 RETURNING created_at`,
		b.ID, b.CourseID, b.UserID, b.CustomerEmail, b.CustomerName, b.PaymentSessionID,
		b.PaymentStatus, b.AmountPaid, b.Currency, b.BookingStatus).Scan(&b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("insert booking for session %s: %w", b.PaymentSessionID, err)
	}
	return true, nil
}

// List returns the newest bookings first.
func (r *BookingRepository) List(ctx context.Context, limit int) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, course_id, user_id, customer_email, customer_name, payment_session_id,
		        payment_status, amount_paid, currency, booking_status, created_at
		 FROM bookings ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.CourseID, &b.UserID, &b.CustomerEmail, &b.CustomerName,
			&b.PaymentSessionID, &b.PaymentStatus, &b.AmountPaid, &b.Currency, &b.BookingStatus,
			&b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	return bookings, nil
}
