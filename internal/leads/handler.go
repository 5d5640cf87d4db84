package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/brightpath-consulting/platform/internal/notify"
	"github.com/brightpath-consulting/platform/pkg/logging"
)

// Handler handles HTTP requests for lead forms.
type Handler struct {
	repo        Repository
	email       notify.EmailSender
	notifyEmail string
	logger      *logging.Logger
}

// NewHandler creates a new leads handler. email may be nil when internal
// notifications are disabled.
func NewHandler(repo Repository, email notify.EmailSender, notifyEmail string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:        repo,
		email:       email,
		notifyEmail: notifyEmail,
		logger:      logger,
	}
}

// CreateContact handles POST /leads/contact.
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, KindContact)
}

// CreateCareers handles POST /leads/careers.
func (h *Handler) CreateCareers(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, KindCareers)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, kind string) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode lead request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Kind = kind

	lead, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidKind) || errors.Is(err, ErrInvalidName) || errors.Is(err, ErrMissingContact) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create lead", "error", err, "kind", kind)
		http.Error(w, "failed to save submission", http.StatusInternalServerError)
		return
	}

	h.logger.Info("lead created", "id", lead.ID, "kind", lead.Kind)
	h.notifyTeam(r.Context(), lead)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(lead)
}

// notifyTeam sends the internal alert. Failures are logged and swallowed;
// the submission is already saved.
func (h *Handler) notifyTeam(ctx context.Context, lead *Lead) {
	if h.email == nil || h.notifyEmail == "" {
		return
	}
	msg := notify.LeadInternalEmail(h.notifyEmail, notify.LeadDetails{
		Kind:     lead.Kind,
		FullName: lead.FullName,
		Email:    lead.Email,
		Phone:    lead.Phone,
		Subject:  lead.Subject,
		Message:  lead.Message,
	})
	if err := h.email.Send(context.WithoutCancel(ctx), msg); err != nil {
		h.logger.Error("lead notification email failed", "error", err, "lead_id", lead.ID)
	}
}

// ListLeadsResponse is the response for the admin listing.
type ListLeadsResponse struct {
	Leads  []*Lead `json:"leads"`
	Count  int     `json:"count"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}

// List handles GET /admin/leads.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Limit: 50}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		filter.Kind = kind
	}

	out, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		http.Error(w, "failed to list leads", http.StatusInternalServerError)
		return
	}

	response := ListLeadsResponse{
		Leads:  out,
		Count:  len(out),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
