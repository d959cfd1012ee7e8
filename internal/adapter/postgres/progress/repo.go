// Package progress implements the learning-progress repository using
// PostgreSQL. The checkpoint set is stored as comma-delimited text; encoding
// and decoding happen only here, never in business logic.
package progress

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/modulearn/backend/internal/adapter/postgres"
	"github.com/modulearn/backend/internal/domain"
)

const progressColumns = `id, user_id, module_id, completed_checkpoints, is_completed, last_accessed_at, created_at, updated_at`

// Repo provides module-progress persistence backed by PostgreSQL.
type Repo struct {
	db *postgres.DB
}

// New creates a new progress repository.
func New(db *postgres.DB) *Repo {
	return &Repo{db: db}
}

const getModuleSQL = `SELECT ` + progressColumns + `
FROM learning_progress WHERE user_id = $1 AND module_id = $2`

// GetModule returns the owner's row for one module, or domain.ErrNotFound.
func (r *Repo) GetModule(ctx context.Context, userID int64, moduleID int) (*domain.ModuleProgress, error) {
	if !r.db.Available() {
		return nil, fmt.Errorf("progress module %d: %w", moduleID, domain.ErrNotFound)
	}

	row := r.db.Querier(ctx).QueryRow(ctx, getModuleSQL, userID, moduleID)

	p, err := scanProgress(row)
	if err != nil {
		return nil, postgres.MapError(err, "progress", moduleID)
	}

	return p, nil
}

const getAllForOwnerSQL = `SELECT ` + progressColumns + `
FROM learning_progress WHERE user_id = $1 ORDER BY module_id`

// GetAllForOwner returns every progress row belonging to the owner.
// Returns an empty slice (not nil) for a fresh user or in degraded mode.
func (r *Repo) GetAllForOwner(ctx context.Context, userID int64) ([]domain.ModuleProgress, error) {
	if !r.db.Available() {
		return []domain.ModuleProgress{}, nil
	}

	rows, err := r.db.Querier(ctx).Query(ctx, getAllForOwnerSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	return scanProgressRows(rows)
}

const upsertSQL = `
INSERT INTO learning_progress (user_id, module_id, completed_checkpoints, is_completed, last_accessed_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now(), now())
ON CONFLICT (user_id, module_id) DO UPDATE SET
    completed_checkpoints = EXCLUDED.completed_checkpoints,
    is_completed          = EXCLUDED.is_completed,
    last_accessed_at      = now(),
    updated_at            = now()
RETURNING ` + progressColumns

// Upsert replaces the owner's checkpoint set for a module wholesale
// (last writer wins) and bumps last_accessed_at. The unique
// (user_id, module_id) key guarantees exactly one row per pair even under
// concurrent calls.
func (r *Repo) Upsert(ctx context.Context, userID int64, moduleID int, checkpoints domain.CheckpointSet, completed bool) (*domain.ModuleProgress, error) {
	if !r.db.Available() {
		return nil, fmt.Errorf("upsert progress: %w", domain.ErrUnavailable)
	}

	row := r.db.Querier(ctx).QueryRow(ctx, upsertSQL,
		userID, moduleID, checkpoints.Encode(), completed)

	p, err := scanProgress(row)
	if err != nil {
		return nil, postgres.MapError(err, "progress", moduleID)
	}

	return p, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*domain.ModuleProgress, error) {
	var (
		p       domain.ModuleProgress
		encoded pgtype.Text
	)

	err := row.Scan(&p.ID, &p.UserID, &p.ModuleID, &encoded, &p.Completed,
		&p.LastAccessedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if encoded.Valid {
		p.Checkpoints = domain.ParseCheckpointSet(encoded.String)
	} else {
		p.Checkpoints = domain.NewCheckpointSet()
	}

	return &p, nil
}

func scanProgressRows(rows pgx.Rows) ([]domain.ModuleProgress, error) {
	result := []domain.ModuleProgress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}

	return result, nil
}
