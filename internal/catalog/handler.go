package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/brightpath-consulting/platform/pkg/logging"
)

// Handler serves the public catalog listings.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// ListServices handles GET /catalog/services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, KindConsultation)
}

// ListEvents handles GET /catalog/events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, KindEvent)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, kind string) {
	entries, err := h.store.ListActive(r.Context(), kind)
	if err != nil {
		h.logger.Error("catalog list failed", "error", err, "kind", kind)
		http.Error(w, "failed to list catalog", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}
