// Package events records which external gateway events have already been
// handled so webhook retries stay idempotent.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brightpath-consulting/platform/pkg/logging"
)

// DB is the subset of pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ProcessedStore struct {
	db     DB
	logger *logging.Logger
}

func NewProcessedStore(db DB, logger *logging.Logger) *ProcessedStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProcessedStore{db: db, logger: logger}
}

// AlreadyProcessed reports whether the (provider, eventID) pair was seen before.
func (s *ProcessedStore) AlreadyProcessed(ctx context.Context, provider, eventID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM processed_events WHERE provider = $1 AND event_id = $2)`,
		provider, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("events: check processed: %w", err)
	}
	return exists, nil
}

// MarkProcessed records the event. Returns false when another delivery got
// there first, which callers treat the same as AlreadyProcessed.
func (s *ProcessedStore) MarkProcessed(ctx context.Context, provider, eventID string) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`INSERT INTO processed_events (provider, event_id, processed_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (provider, event_id) DO NOTHING`,
		provider, eventID, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("events: mark processed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
