package repository

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/pkg/database"
)

// LeadRepository provides data access for leads using pgx.
type LeadRepository struct {
	db database.Querier
}

// NewLeadRepository creates a new LeadRepository. Pass a *pgxpool.Pool or a pgx.Tx.
func NewLeadRepository(db database.Querier) *LeadRepository {
	return &LeadRepository{db: db}
}

// Insert stores a new lead.
func (r *LeadRepository) Insert(ctx context.Context, lead *model.Lead) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO leads (id, name, email, company, phone, message, interested_course_id, source, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		lead.ID, lead.Name, lead.Email, lead.Company, lead.Phone, lead.Message,
		lead.InterestedCourseID, lead.Source, lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// List returns the newest leads first.
// On success, returns an empty slice (not nil) when there are no leads.
func (r *LeadRepository) List(ctx context.Context, limit int) ([]model.Lead, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, company, phone, message, interested_course_id, source, created_at
		 FROM leads ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Company, &l.Phone, &l.Message,
			&l.InterestedCourseID, &l.Source, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lead rows: %w", err)
	}
	return leads, nil
}
