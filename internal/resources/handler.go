package resources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightpath-consulting/platform/pkg/logging"
)

// lister abstracts the store for handler tests.
type lister interface {
	ListPublished(ctx context.Context, category string) ([]Resource, error)
	GetPublished(ctx context.Context, id string) (*Resource, error)
}

// Handler serves the public resources endpoints.
type Handler struct {
	store      lister
	downloader *Downloader
	logger     *logging.Logger
}

func NewHandler(store lister, downloader *Downloader, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, downloader: downloader, logger: logger}
}

// ListResponse is the library listing payload.
type ListResponse struct {
	Resources []Resource `json:"resources"`
	Count     int        `json:"count"`
}

// List handles GET /resources.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.store.ListPublished(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error("failed to list resources", "error", err)
		http.Error(w, "failed to list resources", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Resources: out, Count: len(out)})
}

// DownloadResponse carries the presigned URL.
type DownloadResponse struct {
	OK  bool   `json:"ok"`
	URL string `json:"url"`
}

// Download handles GET /resources/{id}/download.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	res, err := h.store.GetPublished(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			http.Error(w, "resource not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load resource", "error", err, "id", id)
		http.Error(w, "failed to load resource", http.StatusInternalServerError)
		return
	}

	url, err := h.downloader.DownloadURL(r.Context(), res)
	if err != nil {
		h.logger.Error("failed to presign download", "error", err, "id", id)
		http.Error(w, "download unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DownloadResponse{OK: true, URL: url})
}
