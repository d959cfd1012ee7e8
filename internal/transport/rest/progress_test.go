package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modulearn/backend/internal/domain"
	"github.com/modulearn/backend/internal/service/progress"
)

type progressServiceMock struct {
	GetAllFunc       func(ctx context.Context) ([]domain.ModuleProgress, error)
	GetModuleFunc    func(ctx context.Context, moduleID int) (*domain.ModuleProgress, error)
	UpdateModuleFunc func(ctx context.Context, input progress.UpdateInput) (*domain.ModuleProgress, error)
	GetOverallFunc   func(ctx context.Context) (*progress.Overall, error)
}

func (m *progressServiceMock) GetAll(ctx context.Context) ([]domain.ModuleProgress, error) {
	return m.GetAllFunc(ctx)
}

func (m *progressServiceMock) GetModule(ctx context.Context, moduleID int) (*domain.ModuleProgress, error) {
	return m.GetModuleFunc(ctx, moduleID)
}

func (m *progressServiceMock) UpdateModule(ctx context.Context, input progress.UpdateInput) (*domain.ModuleProgress, error) {
	return m.UpdateModuleFunc(ctx, input)
}

func (m *progressServiceMock) GetOverall(ctx context.Context) (*progress.Overall, error) {
	return m.GetOverallFunc(ctx)
}

func progressRouter(svc progressService) http.Handler {
	h := NewProgressHandler(svc, testLogger())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /progress", h.GetAll)
	mux.HandleFunc("GET /progress/overall", h.GetOverall)
	mux.HandleFunc("GET /progress/modules/{moduleId}", h.GetModule)
	mux.HandleFunc("PUT /progress/modules/{moduleId}", h.UpdateModule)
	return mux
}

func TestProgressHandler_GetAll(t *testing.T) {
	t.Parallel()

	svc := &progressServiceMock{
		GetAllFunc: func(ctx context.Context) ([]domain.ModuleProgress, error) {
			return []domain.ModuleProgress{
				{ModuleID: 1, Checkpoints: domain.NewCheckpointSet(2, 1), Completed: false},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	progressRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/progress", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp []progressResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if len(resp[0].Checkpoints) != 2 || resp[0].Checkpoints[0] != 1 || resp[0].Checkpoints[1] != 2 {
		t.Errorf("checkpoints must serialize sorted: %v", resp[0].Checkpoints)
	}
}

func TestProgressHandler_GetAll_Anonymous(t *testing.T) {
	t.Parallel()

	svc := &progressServiceMock{
		GetAllFunc: func(ctx context.Context) ([]domain.ModuleProgress, error) {
			return nil, domain.ErrUnauthorized
		},
	}

	rec := httptest.NewRecorder()
	progressRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/progress", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestProgressHandler_GetModule_UntouchedIsNull(t *testing.T) {
	t.Parallel()

	svc := &progressServiceMock{
		GetModuleFunc: func(ctx context.Context, moduleID int) (*domain.ModuleProgress, error) {
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	progressRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/progress/modules/3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "null" {
		t.Errorf("body = %q, want null", got)
	}
}

func TestProgressHandler_UpdateModule_IgnoresClientCompletion(t *testing.T) {
	t.Parallel()

	var gotInput progress.UpdateInput
	svc := &progressServiceMock{
		UpdateModuleFunc: func(ctx context.Context, input progress.UpdateInput) (*domain.ModuleProgress, error) {
			gotInput = input
			return &domain.ModuleProgress{
				ModuleID:    input.ModuleID,
				Checkpoints: domain.NewCheckpointSet(input.Checkpoints...),
				Completed:   false,
			}, nil
		},
	}

	// Client claims completion with a single checkpoint; the flag is dropped
	// on the floor and the response reflects the derived state.
	body := strings.NewReader(`{"completedCheckpoints":[1],"isCompleted":true}`)
	rec := httptest.NewRecorder()
	progressRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/progress/modules/2", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if gotInput.ModuleID != 2 {
		t.Errorf("module id = %d", gotInput.ModuleID)
	}

	var resp progressResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.IsCompleted {
		t.Error("client-claimed completion must not survive")
	}
}

func TestProgressHandler_UpdateModule_BadModuleID(t *testing.T) {
	t.Parallel()

	svc := &progressServiceMock{}
	body := strings.NewReader(`{"completedCheckpoints":[1]}`)
	rec := httptest.NewRecorder()
	progressRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/progress/modules/xyz", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestProgressHandler_GetOverall(t *testing.T) {
	t.Parallel()

	svc := &progressServiceMock{
		GetOverallFunc: func(ctx context.Context) (*progress.Overall, error) {
			return &progress.Overall{
				TotalModules:         6,
				CompletedModules:     1,
				CompletedCheckpoints: 4,
				TotalCheckpoints:     18,
				Percent:              22,
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	progressRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/progress/overall", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp overallResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Percent != 22 || resp.CompletedCheckpoints != 4 {
		t.Errorf("resp = %+v", resp)
	}
}
