// Package progress implements per-user learning progress over the fixed
// module curriculum.
package progress

import (
	"context"
	"log/slog"

	"github.com/modulearn/backend/internal/config"
	"github.com/modulearn/backend/internal/domain"
)

// progressRepo defines the repository interface needed by the progress service.
type progressRepo interface {
	GetModule(ctx context.Context, userID int64, moduleID int) (*domain.ModuleProgress, error)
	GetAllForOwner(ctx context.Context, userID int64) ([]domain.ModuleProgress, error)
	Upsert(ctx context.Context, userID int64, moduleID int, checkpoints domain.CheckpointSet, completed bool) (*domain.ModuleProgress, error)
}

// Service implements progress operations.
type Service struct {
	log  *slog.Logger
	repo progressRepo
	cfg  config.CurriculumConfig
}

// NewService creates a new progress service instance.
func NewService(logger *slog.Logger, repo progressRepo, cfg config.CurriculumConfig) *Service {
	return &Service{
		log:  logger.With("service", "progress"),
		repo: repo,
		cfg:  cfg,
	}
}

// Overall summarizes a user's position across the whole curriculum.
type Overall struct {
	TotalModules         int
	CompletedModules     int
	CompletedCheckpoints int
	TotalCheckpoints     int
	Percent              int
}
