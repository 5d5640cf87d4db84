package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store provides persistence for bookings. The bookings row is the only
// shared mutable resource in the flow; all writes are single-statement
// updates scoped by id and guarded on the current status.
type Store struct {
	db DB
}

// NewStore creates a booking store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

const bookingColumns = `id, catalog_id, full_name, email, phone, starts_at, ends_at, timezone, amount_kobo, payment_status, payment_reference, calendar_event_id, notes, created_at, updated_at`

// Create inserts a new booking row.
func (s *Store) Create(ctx context.Context, b *Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.PaymentStatus == "" {
		b.PaymentStatus = StatusPending
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO bookings (id, catalog_id, full_name, email, phone, starts_at, ends_at, timezone, amount_kobo, payment_status, payment_reference, calendar_event_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		b.ID, b.CatalogID, b.FullName, b.Email, b.Phone, b.StartsAt, b.EndsAt,
		b.Timezone, b.AmountKobo, b.PaymentStatus, b.PaymentReference,
		b.CalendarEventID, b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("booking: create: %w", err)
	}
	return nil
}

// GetByID loads one booking.
func (s *Store) GetByID(ctx context.Context, id string) (*Booking, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return scanBooking(row)
}

// GetByReference loads one booking by payment reference.
func (s *Store) GetByReference(ctx context.Context, reference string) (*Booking, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE payment_reference = $1`, reference)
	return scanBooking(row)
}

// MarkPaid transitions a booking to paid. The status guard makes the
// transition atomic: of two racing confirmations only one sees a row
// affected, and only that caller runs the side effects.
func (s *Store) MarkPaid(ctx context.Context, id, reference string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings
		SET payment_status = 'paid', payment_reference = $1, updated_at = $2
		WHERE id = $3 AND payment_status <> 'paid'`,
		reference, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("booking: mark paid: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkFailed transitions a pending booking to failed. Paid and free bookings
// never move backwards.
func (s *Store) MarkFailed(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE bookings
		SET payment_status = 'failed', updated_at = $1
		WHERE id = $2 AND payment_status = 'pending'`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("booking: mark failed: %w", err)
	}
	return nil
}

// SetCalendarEventID records the external calendar event once. A second call
// for the same booking affects zero rows and reports false.
func (s *Store) SetCalendarEventID(ctx context.Context, id, eventID string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings
		SET calendar_event_id = $1, updated_at = $2
		WHERE id = $3 AND calendar_event_id IS NULL`,
		eventID, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("booking: set calendar event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListRecent returns bookings ordered by creation time descending.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Booking, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("booking: list recent: %w", err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if out == nil {
		out = []Booking{}
	}
	return out, rows.Err()
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.CatalogID, &b.FullName, &b.Email, &b.Phone,
		&b.StartsAt, &b.EndsAt, &b.Timezone, &b.AmountKobo, &b.PaymentStatus,
		&b.PaymentReference, &b.CalendarEventID, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("booking: scan: %w", err)
	}
	return &b, nil
}

func scanBookingRow(rows pgx.Rows) (*Booking, error) {
	var b Booking
	err := rows.Scan(&b.ID, &b.CatalogID, &b.FullName, &b.Email, &b.Phone,
		&b.StartsAt, &b.EndsAt, &b.Timezone, &b.AmountKobo, &b.PaymentStatus,
		&b.PaymentReference, &b.CalendarEventID, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("booking: scan: %w", err)
	}
	return &b, nil
}
