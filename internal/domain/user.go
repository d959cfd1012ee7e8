package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an application user backed by an external identity.
// OpenID is the provider-issued subject and never changes after creation;
// ID is the internal surrogate key used for all relations.
type User struct {
	ID           int64
	OpenID       string
	Name         string
	Email        string
	LoginMethod  string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSignedIn time.Time
}

// DisplayName returns the name shown next to the user's content:
// name, then email, then the anonymous placeholder.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "익명"
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
