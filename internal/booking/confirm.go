package booking

import (
	"context"
	"fmt"

	"github.com/brightpath-consulting/platform/internal/observability/metrics"
	"github.com/brightpath-consulting/platform/pkg/logging"
)

// Confirmer drives the pending → paid/failed transition. Both the client
// callback and the gateway webhook converge here.
type Confirmer struct {
	store      *Store
	gateway    Gateway
	dispatcher Dispatcher
	metrics    *metrics.BookingMetrics
	logger     *logging.Logger
}

// NewConfirmer creates the confirmation service.
func NewConfirmer(store *Store, gateway Gateway, dispatcher Dispatcher, m *metrics.BookingMetrics, logger *logging.Logger) *Confirmer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Confirmer{
		store:      store,
		gateway:    gateway,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     logger,
	}
}

// ConfirmByID confirms via the client callback path.
func (c *Confirmer) ConfirmByID(ctx context.Context, id string) (string, error) {
	b, err := c.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return c.confirm(ctx, b)
}

// ConfirmByReference confirms via the payment reference (webhook path).
func (c *Confirmer) ConfirmByReference(ctx context.Context, reference string) (string, error) {
	b, err := c.store.GetByReference(ctx, reference)
	if err != nil {
		return "", err
	}
	return c.confirm(ctx, b)
}

// confirm applies the status machine: verify against the gateway, cross-check
// amount and metadata, then transition atomically. Terminal bookings are
// no-ops; only the caller that wins the conditional update runs side effects.
func (c *Confirmer) confirm(ctx context.Context, b *Booking) (string, error) {
	switch b.PaymentStatus {
	case StatusPaid:
		// Duplicate delivery or callback/webhook race: success, no side effects.
		return StatusPaid, nil
	case StatusFree:
		return StatusFree, nil
	case StatusFailed:
		return StatusFailed, ErrVerificationFailed
	}

	reference := b.Reference()
	if reference == "" {
		return "", fmt.Errorf("booking: pending booking %s has no payment reference", b.ID)
	}

	v, err := c.gateway.Verify(ctx, reference)
	if err != nil {
		c.logger.Error("gateway verification failed", "error", err, "booking_id", b.ID, "reference", reference)
		return c.fail(ctx, b, ErrVerificationFailed)
	}
	if !v.Success() {
		c.logger.Warn("gateway reported non-success charge", "status", v.Status, "booking_id", b.ID, "reference", reference)
		return c.fail(ctx, b, ErrVerificationFailed)
	}
	if v.AmountKobo != b.AmountKobo {
		c.logger.Warn("paid amount mismatch", "expected_kobo", b.AmountKobo, "paid_kobo", v.AmountKobo, "booking_id", b.ID)
		return c.fail(ctx, b, ErrAmountMismatch)
	}
	if v.Metadata.BookingID != "" && v.Metadata.BookingID != b.ID {
		c.logger.Warn("metadata booking mismatch", "metadata_booking_id", v.Metadata.BookingID, "booking_id", b.ID)
		return c.fail(ctx, b, ErrBookingMismatch)
	}

	updated, err := c.store.MarkPaid(ctx, b.ID, reference)
	if err != nil {
		return "", err
	}
	if !updated {
		// A concurrent confirmation won the conditional update.
		return StatusPaid, nil
	}

	b.PaymentStatus = StatusPaid
	c.dispatcher.Dispatch(ctx, b)
	c.metrics.ObserveConfirmation("paid")
	c.logger.Info("booking confirmed", "booking_id", b.ID, "reference", reference)
	return StatusPaid, nil
}

func (c *Confirmer) fail(ctx context.Context, b *Booking, cause error) (string, error) {
	if err := c.store.MarkFailed(ctx, b.ID); err != nil {
		c.logger.Error("failed to mark booking failed", "error", err, "booking_id", b.ID)
	}
	c.metrics.ObserveConfirmation("failed")
	return StatusFailed, cause
}
