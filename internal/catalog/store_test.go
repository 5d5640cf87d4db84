package catalog

import (
	"context"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var entryColumnNames = []string{"id", "kind", "name", "description", "duration_minutes", "price_kobo", "starts_at", "ends_at", "is_active", "created_at"}

func TestGetActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM catalog_entries").
		WithArgs("entry-1").
		WillReturnRows(pgxmock.NewRows(entryColumnNames).
			AddRow("entry-1", KindConsultation, "Strategy Session", "90 minute deep dive", 90, int64(500000), nil, nil, true, now))

	entry, err := store.GetActive(context.Background(), "entry-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Name != "Strategy Session" {
		t.Errorf("expected name Strategy Session, got %s", entry.Name)
	}
	if entry.PriceKobo != 500000 {
		t.Errorf("expected price 500000, got %d", entry.PriceKobo)
	}
	if entry.Free() {
		t.Error("expected non-free entry")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetActiveNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)
	mock.ExpectQuery("SELECT (.+) FROM catalog_entries").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	if _, err := store.GetActive(context.Background(), "missing"); err != ErrEntryNotFound {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestListActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)
	now := time.Now().UTC()
	starts := now.Add(72 * time.Hour)
	ends := starts.Add(2 * time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM catalog_entries").
		WithArgs(KindEvent).
		WillReturnRows(pgxmock.NewRows(entryColumnNames).
			AddRow("evt-1", KindEvent, "Scaling Masterclass", "", 120, int64(0), &starts, &ends, true, now))

	entries, err := store.ListActive(context.Background(), KindEvent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if !entries[0].Free() {
		t.Error("expected free event")
	}
}
