package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/modulearn/backend/internal/domain"
	"github.com/modulearn/backend/internal/service/board"
)

// boardService defines the minimal interface needed by BoardHandler.
type boardService interface {
	List(ctx context.Context, category domain.PostCategory) ([]domain.Post, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	Create(ctx context.Context, input board.CreateInput) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
}

// BoardHandler serves board REST endpoints.
type BoardHandler struct {
	svc boardService
	log *slog.Logger
}

// NewBoardHandler creates a BoardHandler.
func NewBoardHandler(svc boardService, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{svc: svc, log: logger.With("handler", "board")}
}

type createPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type postResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	ViewCount  int64     `json:"viewCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// List handles GET /posts?category=notice|community.
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	category := domain.PostCategory(r.URL.Query().Get("category"))

	posts, err := h.svc.List(r.Context(), category)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := make([]postResponse, 0, len(posts))
	for i := range posts {
		resp = append(resp, toPostResponse(&posts[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /posts/{id}. Reading a post counts a view; a missing post
// reads as an explicit null.
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	if post == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// Create handles POST /posts.
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.svc.Create(r.Context(), board.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: domain.PostCategory(req.Category),
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

// Delete handles DELETE /posts/{id}.
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Category:   p.Category.String(),
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		ViewCount:  p.ViewCount,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
