package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/brightpath-consulting/platform/internal/observability/metrics"
	"github.com/brightpath-consulting/platform/pkg/logging"
)

const signatureHeader = "X-Paystack-Signature"

// referenceConfirmer runs the shared confirmation logic for a reference.
type referenceConfirmer interface {
	ConfirmByReference(ctx context.Context, reference string) (string, error)
}

// processedTracker dedupes webhook deliveries by gateway event id.
type processedTracker interface {
	AlreadyProcessed(ctx context.Context, provider, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, provider, eventID string) (bool, error)
}

// WebhookHandler receives server-to-server charge notifications from the
// gateway. After the signature check it always answers 200: a non-2xx here
// only buys a gateway retry storm, the internal outcome is logged instead.
type WebhookHandler struct {
	secret    string
	confirmer referenceConfirmer
	processed processedTracker
	metrics   *metrics.BookingMetrics
	logger    *logging.Logger
}

func NewWebhookHandler(secret string, confirmer referenceConfirmer, processed processedTracker, m *metrics.BookingMetrics, logger *logging.Logger) *WebhookHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WebhookHandler{
		secret:    secret,
		confirmer: confirmer,
		processed: processed,
		metrics:   m,
		logger:    logger,
	}
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID        int64    `json:"id"`
		Reference string   `json:"reference"`
		Amount    int64    `json:"amount"`
		Status    string   `json:"status"`
		Metadata  Metadata `json:"metadata"`
	} `json:"data"`
}

// Handle processes POST /webhooks/paystack.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if !verifySignature(h.secret, payload, r.Header.Get(signatureHeader)) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Signature verified. From here on the gateway always gets an ok.
	defer h.ok(w)

	var evt webhookEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		h.logger.Error("failed to decode webhook event", "error", err)
		return
	}
	defer func() {
		h.metrics.ObserveWebhookLatency(evt.Event, time.Since(start).Seconds())
	}()

	if evt.Event != "charge.success" {
		h.logger.Debug("ignoring webhook event", "event", evt.Event)
		return
	}
	if evt.Data.Reference == "" {
		h.logger.Warn("charge.success without reference")
		return
	}

	eventID := evt.Data.Reference
	if h.processed != nil {
		seen, err := h.processed.AlreadyProcessed(r.Context(), "paystack", eventID)
		if err != nil {
			h.logger.Error("processed lookup failed", "error", err, "reference", eventID)
			return
		}
		if seen {
			return
		}
	}

	status, err := h.confirmer.ConfirmByReference(r.Context(), evt.Data.Reference)
	if err != nil {
		h.logger.Error("webhook confirmation failed", "error", err, "reference", evt.Data.Reference, "status", status)
		return
	}

	if h.processed != nil {
		if _, err := h.processed.MarkProcessed(r.Context(), "paystack", eventID); err != nil {
			h.logger.Error("failed to record processed event", "error", err, "reference", eventID)
		}
	}
	h.logger.Info("webhook processed", "reference", evt.Data.Reference, "status", status)
}

func (h *WebhookHandler) ok(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"ok":true}`))
}

// verifySignature checks the HMAC-SHA512 hex signature over the raw body.
func verifySignature(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(header), []byte(expected))
}
