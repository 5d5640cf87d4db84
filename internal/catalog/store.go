package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store provides read access to catalog entries. The booking subsystem never
// mutates the catalog.
type Store struct {
	db DB
}

// NewStore creates a catalog store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

const entryColumns = `id, kind, name, description, duration_minutes, price_kobo, starts_at, ends_at, is_active, created_at`

// GetActive loads an active entry by id. Inactive or missing entries both
// surface as ErrEntryNotFound.
func (s *Store) GetActive(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM catalog_entries
		WHERE id = $1 AND is_active`, id)

	var e Entry
	if err := scanEntry(row, &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("catalog: get active entry: %w", err)
	}
	return &e, nil
}

// ListActive returns active entries of one kind, upcoming events first.
func (s *Store) ListActive(ctx context.Context, kind string) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+entryColumns+`
		FROM catalog_entries
		WHERE kind = $1 AND is_active
		ORDER BY starts_at ASC NULLS LAST, name ASC`, kind)
	if err != nil {
		return nil, fmt.Errorf("catalog: list active: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := scanEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("catalog: scan entry: %w", err)
		}
		out = append(out, e)
	}
	if out == nil {
		out = []Entry{}
	}
	return out, rows.Err()
}

func scanEntry(row pgx.Row, e *Entry) error {
	return row.Scan(&e.ID, &e.Kind, &e.Name, &e.Description, &e.DurationMinutes,
		&e.PriceKobo, &e.StartsAt, &e.EndsAt, &e.IsActive, &e.CreatedAt)
}
