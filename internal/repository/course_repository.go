package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/pkg/database"
)

const courseColumns = `id, title, description, price, currency, max_participants,
	current_participants, start_dates, is_active, created_at`

// CourseRepository provides data access for courses using pgx.
type CourseRepository struct {
	db database.Querier
}

// NewCourseRepository creates a new CourseRepository. Pass a *pgxpool.Pool or a pgx.Tx.
func NewCourseRepository(db database.Querier) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row pgx.Row, c *model.Course) error {
	return row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Price,
		&c.Currency,
		&c.MaxParticipants,
		&c.CurrentParticipants,
		&c.StartDates,
		&c.IsActive,
		&c.CreatedAt,
	)
}

// GetByID retrieves a course by id.
// Returns nil, nil if the course is not found (service layer handles this).
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var c model.Course
	err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course %s: %w", id, err)
	}
	return &c, nil
}

// List returns every course ordered by title.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.db.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course rows: %w", err)
	}
	return courses, nil
}

// Upsert inserts or refreshes a catalog course. Participant counts are left untouched on update.
func (r *CourseRepository) Upsert(ctx context.Context, c *model.Course) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO courses (id, title, description, price, currency, max_participants, start_dates, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   title = EXCLUDED.title,
		   description = EXCLUDED.description,
		   price = EXCLUDED.price,
		   currency = EXCLUDED.currency,
		   max_participants = EXCLUDED.max_participants,
		   start_dates = EXCLUDED.start_dates,
		   is_active = EXCLUDED.is_active`,
		c.ID, c.Title, c.Description, c.Price, c.Currency, c.MaxParticipants, c.StartDates, c.IsActive)
	if err != nil {
		return fmt.Errorf("upsert course %s: %w", c.ID, err)
	}
	return nil
}
