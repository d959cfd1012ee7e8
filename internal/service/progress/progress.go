package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/modulearn/backend/internal/domain"
	"github.com/modulearn/backend/pkg/ctxutil"
)

// GetAll returns every progress row the user has touched, ordered by module.
// A fresh user gets an empty slice.
func (s *Service) GetAll(ctx context.Context) ([]domain.ModuleProgress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	rows, err := s.repo.GetAllForOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress.GetAll: %w", err)
	}
	return rows, nil
}

// GetModule returns the user's row for one module, or (nil, nil) when the
// module was never touched.
func (s *Service) GetModule(ctx context.Context, moduleID int) (*domain.ModuleProgress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := s.validateModuleID(moduleID); err != nil {
		return nil, err
	}

	row, err := s.repo.GetModule(ctx, userID, moduleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("progress.GetModule: %w", err)
	}
	return row, nil
}

// UpdateInput holds parameters for replacing a module's checkpoint set.
type UpdateInput struct {
	ModuleID    int
	Checkpoints []int
}

// UpdateModule replaces the user's checkpoint set for a module wholesale.
// Completion is derived server-side from the configured per-module checkpoint
// count; any client-supplied completion flag is ignored.
func (s *Service) UpdateModule(ctx context.Context, input UpdateInput) (*domain.ModuleProgress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := s.validateModuleID(input.ModuleID); err != nil {
		return nil, err
	}

	set := domain.NewCheckpointSet()
	for _, idx := range input.Checkpoints {
		if idx < 0 {
			return nil, domain.NewValidationError("checkpoints", "indices must be non-negative")
		}
		set.Add(idx)
	}

	completed := set.Complete(s.cfg.CheckpointsPerModule)

	row, err := s.repo.Upsert(ctx, userID, input.ModuleID, set, completed)
	if err != nil {
		return nil, fmt.Errorf("progress.UpdateModule: %w", err)
	}

	s.log.InfoContext(ctx, "module progress updated",
		slog.Int64("user_id", userID),
		slog.Int("module_id", input.ModuleID),
		slog.Int("checkpoints", set.Len()),
		slog.Bool("completed", completed))

	return row, nil
}

// GetOverall aggregates the user's checkpoints across the curriculum.
// Each module contributes at most the configured per-module checkpoint count,
// so over-reported rows cannot push the percentage past 100.
func (s *Service) GetOverall(ctx context.Context) (*Overall, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	rows, err := s.repo.GetAllForOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress.GetOverall: %w", err)
	}

	per := s.cfg.CheckpointsPerModule
	total := s.cfg.ModuleCount * per

	overall := &Overall{
		TotalModules:     s.cfg.ModuleCount,
		TotalCheckpoints: total,
	}

	for _, row := range rows {
		if row.ModuleID > s.cfg.ModuleCount {
			// Rows beyond the current curriculum are ignored.
			continue
		}
		n := row.Checkpoints.Len()
		if n > per {
			n = per
		}
		overall.CompletedCheckpoints += n
		if row.Checkpoints.Complete(per) {
			overall.CompletedModules++
		}
	}

	if total > 0 {
		overall.Percent = int(math.Round(100 * float64(overall.CompletedCheckpoints) / float64(total)))
	}
	if overall.Percent > 100 {
		overall.Percent = 100
	}

	return overall, nil
}

func (s *Service) validateModuleID(moduleID int) error {
	if moduleID < 1 || moduleID > s.cfg.ModuleCount {
		return domain.NewValidationError("moduleId",
			fmt.Sprintf("must be between 1 and %d", s.cfg.ModuleCount))
	}
	return nil
}
