package rest

import "net/http"

// Handlers bundles the endpoint handlers for the router.
type Handlers struct {
	Auth     *AuthHandler
	Board    *BoardHandler
	Progress *ProgressHandler
	Health   *HealthHandler
}

// NewRouter builds the HTTP route table.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", h.Auth.Login)
	mux.HandleFunc("POST /auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /auth/me", h.Auth.Me)

	mux.HandleFunc("GET /posts", h.Board.List)
	mux.HandleFunc("POST /posts", h.Board.Create)
	mux.HandleFunc("GET /posts/{id}", h.Board.Get)
	mux.HandleFunc("DELETE /posts/{id}", h.Board.Delete)

	mux.HandleFunc("GET /progress", h.Progress.GetAll)
	mux.HandleFunc("GET /progress/overall", h.Progress.GetOverall)
	mux.HandleFunc("GET /progress/modules/{moduleId}", h.Progress.GetModule)
	mux.HandleFunc("PUT /progress/modules/{moduleId}", h.Progress.UpdateModule)

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	return mux
}
