package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightpath-consulting/platform/internal/catalog"
	"github.com/brightpath-consulting/platform/pkg/logging"
)

// Handler exposes booking intake and the callback confirmation path.
type Handler struct {
	intake    *Intake
	confirmer *Confirmer
	logger    *logging.Logger
}

func NewHandler(intake *Intake, confirmer *Confirmer, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{intake: intake, confirmer: confirmer, logger: logger}
}

type createResponse struct {
	OK          bool   `json:"ok"`
	Mode        string `json:"mode,omitempty"`
	BookingID   string `json:"booking_id,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Reference   string `json:"reference,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Create handles POST /bookings.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, createResponse{OK: false, Error: "invalid request body"})
		return
	}

	result, err := h.intake.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("booking intake failed", "error", err)
		switch {
		case errors.Is(err, ErrValidation):
			writeJSON(w, http.StatusBadRequest, createResponse{OK: false, Error: err.Error()})
		case errors.Is(err, catalog.ErrEntryNotFound):
			writeJSON(w, http.StatusNotFound, createResponse{OK: false, Error: "service or event not found"})
		default:
			writeJSON(w, http.StatusBadGateway, createResponse{OK: false, Error: "could not start payment, please try again"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{
		OK:          true,
		Mode:        result.Mode,
		BookingID:   result.BookingID,
		RedirectURL: result.RedirectURL,
		Reference:   result.Reference,
	})
}

type confirmRequest struct {
	BookingID string `json:"booking_id,omitempty"`
	Reference string `json:"reference,omitempty"`
}

type confirmResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Confirm handles POST /bookings/confirm, the client-side return from the
// gateway. The browser supplies either the reference (paid path) or the
// booking id (free path re-confirmation).
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, confirmResponse{OK: false, Error: "invalid request body"})
		return
	}

	var (
		status string
		err    error
	)
	switch {
	case req.Reference != "":
		status, err = h.confirmer.ConfirmByReference(r.Context(), req.Reference)
	case req.BookingID != "":
		status, err = h.confirmer.ConfirmByID(r.Context(), req.BookingID)
	default:
		writeJSON(w, http.StatusBadRequest, confirmResponse{OK: false, Error: "booking_id or reference is required"})
		return
	}

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			writeJSON(w, http.StatusNotFound, confirmResponse{OK: false, Error: "booking not found"})
			return
		}
		if status == StatusFailed {
			writeJSON(w, http.StatusOK, confirmResponse{OK: false, Status: StatusFailed, Error: "payment not successful"})
			return
		}
		h.logger.Error("confirmation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, confirmResponse{OK: false, Error: "confirmation failed"})
		return
	}

	writeJSON(w, http.StatusOK, confirmResponse{OK: true, Status: status})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
