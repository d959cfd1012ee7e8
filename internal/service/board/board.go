package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modulearn/backend/internal/domain"
	"github.com/modulearn/backend/pkg/ctxutil"
)

// List returns all posts in a category, newest first. Open to anonymous
// readers. An invalid category name is a validation error, not an empty list.
func (s *Service) List(ctx context.Context, category domain.PostCategory) ([]domain.Post, error) {
	if !category.IsValid() {
		return nil, domain.NewValidationError("category", "must be notice or community")
	}

	posts, err := s.posts.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("board.List: %w", err)
	}
	return posts, nil
}

// Get returns a single post by id, counting the view. A missing post yields
// (nil, nil) so the transport can render an explicit null; the view counter
// is only ever bumped for posts that exist.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.FetchAndCountView(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("board.Get: %w", err)
	}
	return post, nil
}

// Create publishes a post authored by the signed-in user. Notices are
// reserved for admins; community posts are open to any member. The author's
// display name is snapshotted into the post at publish time.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Post, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Category == domain.PostCategoryNotice && !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("board.Create get author: %w", err)
	}

	post, err := s.posts.Create(ctx, &domain.Post{
		Title:      input.Title,
		Content:    input.Content,
		Category:   input.Category,
		AuthorID:   userID,
		AuthorName: author.DisplayName(),
	})
	if err != nil {
		return nil, fmt.Errorf("board.Create: %w", err)
	}

	s.log.InfoContext(ctx, "post published",
		slog.Int64("post_id", post.ID),
		slog.String("category", post.Category.String()),
		slog.Int64("author_id", userID))

	return post, nil
}

// Delete removes a post. Admins can remove any post; members only their own,
// where a miss (wrong owner or unknown id) is silently ignored.
func (s *Service) Delete(ctx context.Context, id int64) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if ctxutil.IsAdminCtx(ctx) {
		if err := s.posts.DeleteAny(ctx, id); err != nil {
			return fmt.Errorf("board.Delete: %w", err)
		}
	} else {
		if err := s.posts.DeleteOwned(ctx, id, userID); err != nil {
			return fmt.Errorf("board.Delete: %w", err)
		}
	}

	s.log.InfoContext(ctx, "post deleted",
		slog.Int64("post_id", id),
		slog.Int64("user_id", userID))

	return nil
}
