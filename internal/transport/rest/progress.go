package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/modulearn/backend/internal/domain"
	"github.com/modulearn/backend/internal/service/progress"
)

// progressService defines the minimal interface needed by ProgressHandler.
type progressService interface {
	GetAll(ctx context.Context) ([]domain.ModuleProgress, error)
	GetModule(ctx context.Context, moduleID int) (*domain.ModuleProgress, error)
	UpdateModule(ctx context.Context, input progress.UpdateInput) (*domain.ModuleProgress, error)
	GetOverall(ctx context.Context) (*progress.Overall, error)
}

// ProgressHandler serves learning-progress REST endpoints.
type ProgressHandler struct {
	svc progressService
	log *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc progressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: logger.With("handler", "progress")}
}

type updateProgressRequest struct {
	Checkpoints []int `json:"completedCheckpoints"`
	// Accepted for wire compatibility with older clients but ignored; the
	// server derives completion itself.
	IsCompleted *bool `json:"isCompleted,omitempty"`
}

type progressResponse struct {
	ModuleID       int       `json:"moduleId"`
	Checkpoints    []int     `json:"completedCheckpoints"`
	IsCompleted    bool      `json:"isCompleted"`
	LastAccessedAt time.Time `json:"lastAccessedAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type overallResponse struct {
	TotalModules         int `json:"totalModules"`
	CompletedModules     int `json:"completedModules"`
	CompletedCheckpoints int `json:"completedCheckpoints"`
	TotalCheckpoints     int `json:"totalCheckpoints"`
	Percent              int `json:"percent"`
}

// GetAll handles GET /progress.
func (h *ProgressHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.GetAll(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := make([]progressResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, toProgressResponse(&rows[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetModule handles GET /progress/modules/{moduleId}. An untouched module
// reads as an explicit null.
func (h *ProgressHandler) GetModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := parseModuleID(r.PathValue("moduleId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid module id")
		return
	}

	row, err := h.svc.GetModule(r.Context(), moduleID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if row == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(row))
}

// UpdateModule handles PUT /progress/modules/{moduleId}.
func (h *ProgressHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := parseModuleID(r.PathValue("moduleId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid module id")
		return
	}

	var req updateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	row, err := h.svc.UpdateModule(r.Context(), progress.UpdateInput{
		ModuleID:    moduleID,
		Checkpoints: req.Checkpoints,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProgressResponse(row))
}

// GetOverall handles GET /progress/overall.
func (h *ProgressHandler) GetOverall(w http.ResponseWriter, r *http.Request) {
	overall, err := h.svc.GetOverall(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, overallResponse{
		TotalModules:         overall.TotalModules,
		CompletedModules:     overall.CompletedModules,
		CompletedCheckpoints: overall.CompletedCheckpoints,
		TotalCheckpoints:     overall.TotalCheckpoints,
		Percent:              overall.Percent,
	})
}

func toProgressResponse(p *domain.ModuleProgress) progressResponse {
	return progressResponse{
		ModuleID:       p.ModuleID,
		Checkpoints:    p.Checkpoints.Sorted(),
		IsCompleted:    p.Completed,
		LastAccessedAt: p.LastAccessedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func parseModuleID(raw string) (int, error) {
	return strconv.Atoi(raw)
}
