package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(ctx context.Context) error { return m.err }

func TestHealthHandler_Live(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{err: errors.New("down")}, "test")
	rec := httptest.NewRecorder()

	h.Live(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("liveness must not depend on the DB: got %d", rec.Code)
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		pingErr error
		want    int
	}{
		{"db up", nil, http.StatusOK},
		{"db down", errors.New("no db"), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := NewHealthHandler(&dbPingerMock{err: tc.pingErr}, "test")
			rec := httptest.NewRecorder()

			h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestHealthHandler_Health_ReportsComponents(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&dbPingerMock{}, "v1.2.3")
	rec := httptest.NewRecorder()

	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Version != "v1.2.3" {
		t.Errorf("version = %q", resp.Version)
	}
	if resp.Components["database"].Status != "ok" {
		t.Errorf("database component = %+v", resp.Components["database"])
	}
}
