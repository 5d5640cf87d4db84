package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/brightpath-consulting/platform/pkg/logging"
)

// Handler serves the public blog endpoints.
type Handler struct {
	source PostSource
	logger *logging.Logger
}

func NewHandler(source PostSource, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{source: source, logger: logger}
}

// ListPostsResponse is the blog listing payload.
type ListPostsResponse struct {
	Posts []Post `json:"posts"`
	Count int    `json:"count"`
	Page  int    `json:"page"`
}

// ListPosts handles GET /blog/posts.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	perPage := 10
	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			perPage = n
		}
	}

	posts, err := h.source.ListPosts(r.Context(), page, perPage)
	if err != nil {
		h.logger.Error("failed to list blog posts", "error", err)
		http.Error(w, "blog temporarily unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListPostsResponse{Posts: posts, Count: len(posts), Page: page})
}

// GetPost handles GET /blog/posts/{slug}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		http.Error(w, "missing slug", http.StatusBadRequest)
		return
	}

	post, err := h.source.GetPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to fetch blog post", "error", err, "slug", slug)
		http.Error(w, "blog temporarily unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}
