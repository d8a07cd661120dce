package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/training-marketplace/internal/model"
)

func TestLeadRepository_Insert(t *testing.T) {
	var capturedSQL string
	var capturedArgs []any
	mock := &mockQuerier{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			capturedSQL = sql
			capturedArgs = arguments
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}
	repo := NewLeadRepository(mock)
	lead := &model.Lead{
		ID:      uuid.New(),
		Name:    "Jane",
		Email:   "jane@x.com",
		Company: strPtr("Acme"),
		Source:  model.DefaultLeadSource,
	}

	require.NoError(t, repo.Insert(context.Background(), lead))
	assert.Contains(t, capturedSQL, "INSERT INTO leads")
	require.Len(t, capturedArgs, 9)
	assert.Equal(t, lead.ID, capturedArgs[0])
	assert.Equal(t, "jane@x.com", capturedArgs[2])
	assert.Equal(t, "Acme", *capturedArgs[3].(*string))
	assert.Nil(t, capturedArgs[4].(*string))
	assert.Equal(t, model.DefaultLeadSource, capturedArgs[7])
}

func TestLeadRepository_Insert_Error(t *testing.T) {
	mock := &mockQuerier{
		execFn: func(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("disk full")
		},
	}
	repo := NewLeadRepository(mock)

	err := repo.Insert(context.Background(), &model.Lead{ID: uuid.New()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert lead")
}

func TestLeadRepository_List(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	fill := func(id uuid.UUID, name string) func(dest ...any) error {
		return func(dest ...any) error {
			*(dest[0].(*uuid.UUID)) = id
			*(dest[1].(*string)) = name
			*(dest[2].(*string)) = name + "@x.com"
			*(dest[7].(*string)) = model.DefaultLeadSource
			*(dest[8].(*time.Time)) = created
			return nil
		}
	}
	var capturedArgs []any
	rows := &mockRows{scans: []func(dest ...any) error{fill(id1, "amy"), fill(id2, "bob")}}
	mock := &mockQuerier{
		queryFn: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			capturedArgs = args
			return rows, nil
		},
	}
	repo := NewLeadRepository(mock)

	leads, err := repo.List(context.Background(), 25)

	require.NoError(t, err)
	assert.Equal(t, []any{25}, capturedArgs)
	require.Len(t, leads, 2)
	assert.Equal(t, id1, leads[0].ID)
	assert.Equal(t, "bob@x.com", leads[1].Email)
	assert.Equal(t, created, leads[1].CreatedAt)
	assert.True(t, rows.closed)
}

func TestLeadRepository_List_Empty(t *testing.T) {
	repo := NewLeadRepository(&mockQuerier{})

	leads, err := repo.List(context.Background(), 10)

	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}

func TestLeadRepository_List_Errors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		mock := &mockQuerier{
			queryFn: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
				return nil, errors.New("connection refused")
			},
		}
		_, err := NewLeadRepository(mock).List(context.Background(), 10)
		assert.ErrorContains(t, err, "list leads")
	})

	t.Run("scan", func(t *testing.T) {
		rows := &mockRows{scans: []func(dest ...any) error{
			func(dest ...any) error { return errors.New("bad column") },
		}}
		mock := &mockQuerier{
			queryFn: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
				return rows, nil
			},
		}
		_, err := NewLeadRepository(mock).List(context.Background(), 10)
		assert.ErrorContains(t, err, "scan lead")
	})

	t.Run("iteration", func(t *testing.T) {
		mock := &mockQuerier{
			queryFn: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
				return &mockRows{errOnRows: errors.New("conn lost")}, nil
			},
		}
		_, err := NewLeadRepository(mock).List(context.Background(), 10)
		assert.ErrorContains(t, err, "iterate lead rows")
	})
}
