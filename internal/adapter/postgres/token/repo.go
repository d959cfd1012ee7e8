// Package token implements the refresh-token repository using PostgreSQL.
package token

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/modulearn/backend/internal/adapter/postgres"
	"github.com/modulearn/backend/internal/domain"
)

const tokenColumns = `id, user_id, token_hash, expires_at, created_at, revoked_at`

// Repo provides refresh-token persistence backed by PostgreSQL.
type Repo struct {
	db *postgres.DB
}

// New creates a new token repository.
func New(db *postgres.DB) *Repo {
	return &Repo{db: db}
}

const createSQL = `
INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
VALUES ($1, $2, $3, $4, now())`

// Create stores a hashed refresh token. Assigns a fresh id when unset.
func (r *Repo) Create(ctx context.Context, t *domain.RefreshToken) error {
	if !r.db.Available() {
		return fmt.Errorf("create refresh token: %w", domain.ErrUnavailable)
	}

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	_, err := r.db.Querier(ctx).Exec(ctx, createSQL, t.ID, t.UserID, t.TokenHash, t.ExpiresAt)
	if err != nil {
		return postgres.MapError(err, "refresh_token", t.ID)
	}

	return nil
}

const getByHashSQL = `SELECT ` + tokenColumns + ` FROM refresh_tokens WHERE token_hash = $1`

// GetByHash returns a token by its SHA-256 hash, or domain.ErrNotFound.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	if !r.db.Available() {
		return nil, fmt.Errorf("refresh token: %w", domain.ErrNotFound)
	}

	var (
		t         domain.RefreshToken
		revokedAt pgtype.Timestamptz
	)
	err := r.db.Querier(ctx).QueryRow(ctx, getByHashSQL, tokenHash).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &revokedAt)
	if err != nil {
		return nil, postgres.MapError(err, "refresh_token", tokenHash)
	}

	if revokedAt.Valid {
		t.RevokedAt = &revokedAt.Time
	}

	return &t, nil
}

const revokeByIDSQL = `UPDATE refresh_tokens SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL`

// RevokeByID marks a single token as revoked. Already-revoked is a no-op.
func (r *Repo) RevokeByID(ctx context.Context, id uuid.UUID) error {
	if !r.db.Available() {
		return fmt.Errorf("revoke refresh token: %w", domain.ErrUnavailable)
	}

	if _, err := r.db.Querier(ctx).Exec(ctx, revokeByIDSQL, id); err != nil {
		return postgres.MapError(err, "refresh_token", id)
	}

	return nil
}

const revokeAllByUserSQL = `UPDATE refresh_tokens SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`

// RevokeAllByUser revokes every live token belonging to the user (logout).
func (r *Repo) RevokeAllByUser(ctx context.Context, userID int64) error {
	if !r.db.Available() {
		return fmt.Errorf("revoke refresh tokens: %w", domain.ErrUnavailable)
	}

	if _, err := r.db.Querier(ctx).Exec(ctx, revokeAllByUserSQL, userID); err != nil {
		return postgres.MapError(err, "refresh_token", userID)
	}

	return nil
}

const deleteExpiredSQL = `DELETE FROM refresh_tokens WHERE expires_at < now() OR revoked_at IS NOT NULL`

// DeleteExpired removes expired and revoked tokens, returning the count.
func (r *Repo) DeleteExpired(ctx context.Context) (int, error) {
	if !r.db.Available() {
		return 0, fmt.Errorf("delete expired tokens: %w", domain.ErrUnavailable)
	}

	tag, err := r.db.Querier(ctx).Exec(ctx, deleteExpiredSQL)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
