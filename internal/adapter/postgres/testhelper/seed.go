package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modulearn/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a unique open_id and default role.
// Returns the filled domain.User including its generated id.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	user := domain.User{
		OpenID:      "open-" + suffix,
		Name:        "Test User " + suffix,
		Email:       "testuser-" + suffix + "@example.com",
		LoginMethod: "google",
		Role:        domain.UserRoleUser,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO users (open_id, name, email, login_method)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, role, created_at, updated_at, last_signed_in`,
		user.OpenID, user.Name, user.Email, user.LoginMethod,
	).Scan(&user.ID, &user.Role, &user.CreatedAt, &user.UpdatedAt, &user.LastSignedIn)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedAdmin creates a user with the admin role.
func SeedAdmin(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	user := SeedUser(t, pool)

	_, err := pool.Exec(ctx, `UPDATE users SET role = 'admin' WHERE id = $1`, user.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedAdmin promote user: %v", err)
	}
	user.Role = domain.UserRoleAdmin

	return user
}

// SeedPost creates a post authored by the given user. Returns the filled
// domain.Post including its generated id and zero view count.
func SeedPost(t *testing.T, pool *pgxpool.Pool, authorID int64, category domain.PostCategory) domain.Post {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	post := domain.Post{
		Title:      "Title " + suffix,
		Content:    "Content " + suffix,
		Category:   category,
		AuthorID:   authorID,
		AuthorName: "Author " + suffix,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO posts (title, content, category, author_id, author_name)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, view_count, created_at, updated_at`,
		post.Title, post.Content, post.Category.String(), post.AuthorID, post.AuthorName,
	).Scan(&post.ID, &post.ViewCount, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedPost insert post: %v", err)
	}

	return post
}

// SeedProgress creates a progress row for (userID, moduleID) with the given
// raw checkpoint text, exactly as a legacy writer might have stored it.
func SeedProgress(t *testing.T, pool *pgxpool.Pool, userID int64, moduleID int, rawCheckpoints string, completed bool) domain.ModuleProgress {
	t.Helper()
	ctx := context.Background()

	p := domain.ModuleProgress{
		UserID:      userID,
		ModuleID:    moduleID,
		Checkpoints: domain.ParseCheckpointSet(rawCheckpoints),
		Completed:   completed,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO learning_progress (user_id, module_id, completed_checkpoints, is_completed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, last_accessed_at, created_at, updated_at`,
		p.UserID, p.ModuleID, rawCheckpoints, p.Completed,
	).Scan(&p.ID, &p.LastAccessedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedProgress insert progress: %v", err)
	}

	return p
}

// SeedRefreshToken creates a refresh token row for the user expiring at the
// given time.
func SeedRefreshToken(t *testing.T, pool *pgxpool.Pool, userID int64, tokenHash string, expiresAt time.Time) domain.RefreshToken {
	t.Helper()
	ctx := context.Background()

	token := domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt,
	).Scan(&token.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedRefreshToken insert token: %v", err)
	}

	return token
}
