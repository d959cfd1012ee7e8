// Package post implements the board repository using PostgreSQL.
package post

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/modulearn/backend/internal/adapter/postgres"
	"github.com/modulearn/backend/internal/domain"
)

// psql builds queries with PostgreSQL ($N) placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const postColumns = `id, title, content, category, author_id, author_name, view_count, created_at, updated_at`

// Repo provides post persistence backed by PostgreSQL.
type Repo struct {
	db *postgres.DB
}

// New creates a new post repository.
func New(db *postgres.DB) *Repo {
	return &Repo{db: db}
}

// ListByCategory returns all posts in a category, newest first.
// Returns an empty slice (not nil) when the board is empty or the storage
// backend is unavailable.
func (r *Repo) ListByCategory(ctx context.Context, category domain.PostCategory) ([]domain.Post, error) {
	if !r.db.Available() {
		return []domain.Post{}, nil
	}

	query, args, err := psql.
		Select("id", "title", "content", "category", "author_id", "author_name",
			"view_count", "created_at", "updated_at").
		From("posts").
		Where(sq.Eq{"category": category.String()}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

const fetchAndCountViewSQL = `
UPDATE posts SET view_count = view_count + 1
WHERE id = $1
RETURNING ` + postColumns

// FetchAndCountView returns a post by id, atomically incrementing its view
// counter by exactly 1 in the same statement. A missing id returns
// domain.ErrNotFound and creates nothing.
func (r *Repo) FetchAndCountView(ctx context.Context, id int64) (*domain.Post, error) {
	if !r.db.Available() {
		return nil, fmt.Errorf("post %d: %w", id, domain.ErrNotFound)
	}

	p, err := scanPost(r.db.Querier(ctx).QueryRow(ctx, fetchAndCountViewSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "post", id)
	}

	return p, nil
}

const createSQL = `
INSERT INTO posts (title, content, category, author_id, author_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
RETURNING ` + postColumns

// Create inserts a new post and returns the persisted domain.Post.
func (r *Repo) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	if !r.db.Available() {
		return nil, fmt.Errorf("create post: %w", domain.ErrUnavailable)
	}

	row := r.db.Querier(ctx).QueryRow(ctx, createSQL,
		p.Title, p.Content, p.Category.String(), p.AuthorID, stringToText(p.AuthorName))

	created, err := scanPost(row)
	if err != nil {
		return nil, postgres.MapError(err, "post", p.AuthorID)
	}

	return created, nil
}

const deleteOwnedSQL = `DELETE FROM posts WHERE id = $1 AND author_id = $2`

// DeleteOwned removes a post only when the given author owns it.
// Zero rows affected (missing id or foreign author) is a silent no-op.
func (r *Repo) DeleteOwned(ctx context.Context, id, authorID int64) error {
	if !r.db.Available() {
		return fmt.Errorf("delete post %d: %w", id, domain.ErrUnavailable)
	}

	if _, err := r.db.Querier(ctx).Exec(ctx, deleteOwnedSQL, id, authorID); err != nil {
		return postgres.MapError(err, "post", id)
	}

	return nil
}

const deleteAnySQL = `DELETE FROM posts WHERE id = $1`

// DeleteAny removes a post by id regardless of author (admin path).
// A missing id is a silent no-op.
func (r *Repo) DeleteAny(ctx context.Context, id int64) error {
	if !r.db.Available() {
		return fmt.Errorf("delete post %d: %w", id, domain.ErrUnavailable)
	}

	if _, err := r.db.Querier(ctx).Exec(ctx, deleteAnySQL, id); err != nil {
		return postgres.MapError(err, "post", id)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var (
		p          domain.Post
		category   string
		authorName pgtype.Text
	)

	err := row.Scan(&p.ID, &p.Title, &p.Content, &category, &p.AuthorID,
		&authorName, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.Category = domain.PostCategory(category)
	if authorName.Valid {
		p.AuthorName = authorName.String
	}

	return &p, nil
}

func scanPosts(rows pgx.Rows) ([]domain.Post, error) {
	result := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return result, nil
}

// stringToText converts a Go string to pgtype.Text; empty stores as NULL.
func stringToText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
