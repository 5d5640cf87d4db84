// Package dispatch runs the post-confirmation side effects: calendar event
// creation and confirmation emails. Side effects are best effort; a booking
// stays paid even when every one of them fails.
package dispatch

import (
	"context"
	"time"

	"github.com/brightpath-consulting/platform/internal/booking"
	"github.com/brightpath-consulting/platform/internal/calendar"
	"github.com/brightpath-consulting/platform/internal/catalog"
	"github.com/brightpath-consulting/platform/internal/notify"
	"github.com/brightpath-consulting/platform/internal/observability/metrics"
	"github.com/brightpath-consulting/platform/pkg/logging"
)

// calendarRecorder persists the created calendar event id, guarded so each
// booking gets at most one event.
type calendarRecorder interface {
	SetCalendarEventID(ctx context.Context, id, eventID string) (bool, error)
}

// entryLookup resolves the catalog entry for email and event copy.
type entryLookup interface {
	GetActive(ctx context.Context, id string) (*catalog.Entry, error)
}

// Dispatcher fans a confirmed booking out to calendar and email.
type Dispatcher struct {
	recorder    calendarRecorder
	catalog     entryLookup
	inserter    calendar.EventInserter
	email       notify.EmailSender
	notifyEmail string
	timeout     time.Duration
	metrics     *metrics.BookingMetrics
	logger      *logging.Logger
}

// New creates a dispatcher. inserter and email may be nil when the
// corresponding integration is not configured.
func New(recorder calendarRecorder, cat entryLookup, inserter calendar.EventInserter, email notify.EmailSender, notifyEmail string, m *metrics.BookingMetrics, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		recorder:    recorder,
		catalog:     cat,
		inserter:    inserter,
		email:       email,
		notifyEmail: notifyEmail,
		timeout:     15 * time.Second,
		metrics:     m,
		logger:      logger,
	}
}

// Dispatch runs all side effects for one confirmed booking. The incoming
// request context may be gone by the time emails go out, so the work runs
// against a detached deadline.
func (d *Dispatcher) Dispatch(ctx context.Context, b *booking.Booking) {
	ctx = context.WithoutCancel(ctx)
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	serviceName := b.CatalogID
	if d.catalog != nil {
		if entry, err := d.catalog.GetActive(ctx, b.CatalogID); err == nil {
			serviceName = entry.Name
		}
	}

	d.createCalendarEvent(ctx, b, serviceName)
	d.sendEmails(ctx, b, serviceName)
}

func (d *Dispatcher) createCalendarEvent(ctx context.Context, b *booking.Booking, serviceName string) {
	if d.inserter == nil {
		return
	}
	if b.CalendarEventID != nil {
		return
	}

	eventID, err := d.inserter.InsertEvent(ctx, calendar.Event{
		Summary:     serviceName + " - " + b.FullName,
		Description: b.Notes,
		StartsAt:    b.StartsAt.Format(time.RFC3339),
		EndsAt:      b.EndsAt.Format(time.RFC3339),
		Timezone:    b.Timezone,
		Attendees:   []string{b.Email},
	})
	if err != nil {
		d.logger.Error("calendar event creation failed", "error", err, "booking_id", b.ID)
		d.metrics.ObserveSideEffectFailure("calendar")
		return
	}

	recorded, err := d.recorder.SetCalendarEventID(ctx, b.ID, eventID)
	if err != nil {
		d.logger.Error("failed to record calendar event id", "error", err, "booking_id", b.ID, "event_id", eventID)
		d.metrics.ObserveSideEffectFailure("calendar")
		return
	}
	if !recorded {
		// Another dispatch already attached an event to this booking.
		d.logger.Warn("calendar event id already recorded", "booking_id", b.ID, "event_id", eventID)
		return
	}
	b.CalendarEventID = &eventID
	d.logger.Info("calendar event created", "booking_id", b.ID, "event_id", eventID)
}

func (d *Dispatcher) sendEmails(ctx context.Context, b *booking.Booking, serviceName string) {
	if d.email == nil {
		return
	}

	details := notify.BookingDetails{
		FullName:    b.FullName,
		Email:       b.Email,
		ServiceName: serviceName,
		StartsAt:    b.StartsAt,
		EndsAt:      b.EndsAt,
		Timezone:    b.Timezone,
		AmountKobo:  b.AmountKobo,
		Free:        b.PaymentStatus == booking.StatusFree,
		Reference:   b.Reference(),
	}

	if err := d.email.Send(ctx, notify.BookingConfirmationEmail(details)); err != nil {
		d.logger.Error("confirmation email failed", "error", err, "booking_id", b.ID)
		d.metrics.ObserveSideEffectFailure("email_customer")
	}

	if d.notifyEmail != "" {
		if err := d.email.Send(ctx, notify.BookingInternalEmail(d.notifyEmail, details)); err != nil {
			d.logger.Error("internal booking email failed", "error", err, "booking_id", b.ID)
			d.metrics.ObserveSideEffectFailure("email_internal")
		}
	}
}
