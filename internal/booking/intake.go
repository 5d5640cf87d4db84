package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brightpath-consulting/platform/internal/catalog"
	"github.com/brightpath-consulting/platform/internal/observability/metrics"
	"github.com/brightpath-consulting/platform/internal/payments"
	"github.com/brightpath-consulting/platform/pkg/logging"
)

// Gateway is the slice of the payment client the booking flow needs.
type Gateway interface {
	Initialize(ctx context.Context, params payments.InitializeParams) (*payments.Authorization, error)
	Verify(ctx context.Context, reference string) (*payments.Verification, error)
}

// Dispatcher runs post-confirmation side effects (calendar + email).
type Dispatcher interface {
	Dispatch(ctx context.Context, b *Booking)
}

// CatalogLookup resolves active catalog entries at intake time.
type CatalogLookup interface {
	GetActive(ctx context.Context, id string) (*catalog.Entry, error)
}

// IntakeRequest carries the client-supplied booking fields. Price is never
// taken from the client.
type IntakeRequest struct {
	CatalogID string `json:"catalog_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// IntakeResult is returned to the caller: free bookings are terminal
// immediately, paid bookings carry the gateway redirect.
type IntakeResult struct {
	Mode        string
	BookingID   string
	RedirectURL string
	Reference   string
}

// Intake validates reservation requests, prices them from the catalog and
// creates the booking row.
type Intake struct {
	store       *Store
	catalog     CatalogLookup
	gateway     Gateway
	dispatcher  Dispatcher
	callbackURL string
	metrics     *metrics.BookingMetrics
	logger      *logging.Logger
	now         func() time.Time
}

// NewIntake creates the intake service.
func NewIntake(store *Store, cat CatalogLookup, gateway Gateway, dispatcher Dispatcher, callbackURL string, m *metrics.BookingMetrics, logger *logging.Logger) *Intake {
	if logger == nil {
		logger = logging.Default()
	}
	return &Intake{
		store:       store,
		catalog:     cat,
		gateway:     gateway,
		dispatcher:  dispatcher,
		callbackURL: callbackURL,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// Create runs the intake flow for one reservation request.
func (s *Intake) Create(ctx context.Context, req IntakeRequest) (*IntakeResult, error) {
	if err := validateIntake(req); err != nil {
		return nil, err
	}

	entry, err := s.catalog.GetActive(ctx, req.CatalogID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		CatalogID:  entry.ID,
		FullName:   strings.TrimSpace(req.FullName),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		AmountKobo: entry.PriceKobo,
		Notes:      req.Notes,
	}

	switch entry.Kind {
	case catalog.KindEvent:
		if entry.StartsAt == nil || entry.EndsAt == nil {
			return nil, fmt.Errorf("%w: event has no scheduled occurrence", ErrValidation)
		}
		b.StartsAt = *entry.StartsAt
		b.EndsAt = *entry.EndsAt
		b.Timezone = defaultTimezone
		if req.Timezone != "" {
			b.Timezone = req.Timezone
		}
	default:
		if req.Date == "" || req.Time == "" {
			return nil, fmt.Errorf("%w: date and time are required", ErrValidation)
		}
		start, end, tz, err := Window(req.Date, req.Time, req.Timezone, entry.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		b.StartsAt = start
		b.EndsAt = end
		b.Timezone = tz
	}

	if entry.Free() {
		return s.createFree(ctx, b)
	}
	return s.createPaid(ctx, b, entry)
}

// createFree persists a terminal free booking and runs side effects
// synchronously before returning, the gateway is never touched.
func (s *Intake) createFree(ctx context.Context, b *Booking) (*IntakeResult, error) {
	b.PaymentStatus = StatusFree
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, b)
	s.metrics.ObserveBookingCreated("free")
	s.logger.Info("free booking created", "booking_id", b.ID, "catalog_id", b.CatalogID)

	return &IntakeResult{Mode: "free", BookingID: b.ID}, nil
}

func (s *Intake) createPaid(ctx context.Context, b *Booking, entry *catalog.Entry) (*IntakeResult, error) {
	reference := NewReference(s.now())
	b.PaymentStatus = StatusPending
	b.PaymentReference = &reference
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}

	auth, err := s.gateway.Initialize(ctx, payments.InitializeParams{
		Email:       b.Email,
		AmountKobo:  b.AmountKobo,
		Reference:   reference,
		CallbackURL: s.callbackURL + "?reference=" + reference,
		Metadata: payments.Metadata{
			BookingID: b.ID,
			CatalogID: entry.ID,
			StartsAt:  b.StartsAt.Format(time.RFC3339),
			EndsAt:    b.EndsAt.Format(time.RFC3339),
			Timezone:  b.Timezone,
		},
	})
	if err != nil {
		// The pending row stays behind; a fresh intake is the recovery path.
		s.logger.Error("gateway initialization failed", "error", err, "booking_id", b.ID, "reference", reference)
		return nil, fmt.Errorf("payment initialization failed: %w", err)
	}

	s.metrics.ObserveBookingCreated("paid")
	s.logger.Info("pending booking created", "booking_id", b.ID, "reference", reference, "amount_kobo", b.AmountKobo)

	return &IntakeResult{
		Mode:        "paid",
		BookingID:   b.ID,
		RedirectURL: auth.AuthorizationURL,
		Reference:   reference,
	}, nil
}

func validateIntake(req IntakeRequest) error {
	if strings.TrimSpace(req.CatalogID) == "" {
		return fmt.Errorf("%w: catalog_id is required", ErrValidation)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("%w: full_name is required", ErrValidation)
	}
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	return nil
}
