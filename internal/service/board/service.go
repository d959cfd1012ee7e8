// Package board implements the message board: notice and community posts.
package board

import (
	"context"
	"log/slog"

	"github.com/modulearn/backend/internal/domain"
)

// postRepo defines the post repository interface needed by the board service.
type postRepo interface {
	ListByCategory(ctx context.Context, category domain.PostCategory) ([]domain.Post, error)
	FetchAndCountView(ctx context.Context, id int64) (*domain.Post, error)
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	DeleteOwned(ctx context.Context, id, authorID int64) error
	DeleteAny(ctx context.Context, id int64) error
}

// userRepo defines the user repository interface needed by the board service.
type userRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Service implements board operations.
type Service struct {
	log   *slog.Logger
	posts postRepo
	users userRepo
}

// NewService creates a new board service instance.
func NewService(logger *slog.Logger, posts postRepo, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "board"),
		posts: posts,
		users: users,
	}
}
