package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/pkg/database"
)

// ProfileRepository reads identity-provider profiles.
type ProfileRepository struct {
	db database.Querier
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db database.Querier) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByID retrieves a profile by user id.
// Returns nil, nil if the profile is not found. A role string outside the known
// set yields an empty Role, which grants nothing.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	var role string
	err := r.db.QueryRow(ctx,
		`SELECT id, email, full_name, role FROM profiles WHERE id = $1`, id).
		Scan(&p.ID, &p.Email, &p.FullName, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}

	parsed, err := model.ParseRole(role)
	if err != nil {
		log.Warn().Err(err).Str("user_id", id.String()).Msg("profile has unrecognised role")
	}
	p.Role = parsed
	return &p, nil
}
