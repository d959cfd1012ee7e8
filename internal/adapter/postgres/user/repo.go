// Package user implements the user directory repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/modulearn/backend/internal/adapter/postgres"
	"github.com/modulearn/backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db *postgres.DB
}

// New creates a new user repository.
func New(db *postgres.DB) *Repo {
	return &Repo{db: db}
}

// UpsertParams carries the external identity observed on login. Optional
// profile fields left nil do not overwrite existing values.
type UpsertParams struct {
	OpenID      string
	Name        *string
	Email       *string
	LoginMethod *string
}

const userColumns = `id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in`

const upsertSQL = `
INSERT INTO users (open_id, name, email, login_method, created_at, updated_at, last_signed_in)
VALUES ($1, $2, $3, $4, now(), now(), now())
ON CONFLICT (open_id) DO UPDATE SET
    name         = COALESCE(EXCLUDED.name, users.name),
    email        = COALESCE(EXCLUDED.email, users.email),
    login_method = COALESCE(EXCLUDED.login_method, users.login_method),
    updated_at   = now(),
    last_signed_in = now()
RETURNING ` + userColumns

// Upsert atomically creates the user on first sight of an open_id or bumps
// last_signed_in (and refreshes profile fields) on subsequent sightings.
// The single INSERT .. ON CONFLICT statement makes concurrent first-sight
// calls converge on one row. Role is never touched by the update path.
func (r *Repo) Upsert(ctx context.Context, p UpsertParams) (*domain.User, error) {
	if !r.db.Available() {
		return nil, fmt.Errorf("upsert user: %w", domain.ErrUnavailable)
	}
	if p.OpenID == "" {
		return nil, domain.NewValidationError("openId", "must not be empty")
	}

	row := r.db.Querier(ctx).QueryRow(ctx, upsertSQL,
		p.OpenID, ptrToText(p.Name), ptrToText(p.Email), ptrToText(p.LoginMethod))

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", p.OpenID)
	}

	return u, nil
}

const getByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

// GetByID returns a user by internal id. In degraded mode the user is
// reported absent, matching the read-as-empty policy.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if !r.db.Available() {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}

	row := r.db.Querier(ctx).QueryRow(ctx, getByIDSQL, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return u, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u           domain.User
		name        pgtype.Text
		email       pgtype.Text
		loginMethod pgtype.Text
		role        string
		createdAt   time.Time
		updatedAt   time.Time
		lastSigned  time.Time
	)

	err := row.Scan(&u.ID, &u.OpenID, &name, &email, &loginMethod, &role,
		&createdAt, &updatedAt, &lastSigned)
	if err != nil {
		return nil, err
	}

	u.Name = textToString(name)
	u.Email = textToString(email)
	u.LoginMethod = textToString(loginMethod)
	u.Role = domain.UserRole(role)
	u.CreatedAt = createdAt
	u.UpdatedAt = updatedAt
	u.LastSignedIn = lastSigned

	return &u, nil
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

// textToString returns the string value or empty string if invalid (NULL).
func textToString(t pgtype.Text) string {
	if t.Valid {
		return t.String
	}
	return ""
}

// ptrToText converts a *string to pgtype.Text (nil → NULL).
func ptrToText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
