package events

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestAlreadyProcessed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	store := NewProcessedStore(mock, nil)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("paystack", "BPC-1-abcd1234").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	seen, err := store.AlreadyProcessed(context.Background(), "paystack", "BPC-1-abcd1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen {
		t.Error("expected event to be reported as processed")
	}
}

func TestMarkProcessed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	store := NewProcessedStore(mock, nil)

	mock.ExpectExec("INSERT INTO processed_events").
		WithArgs("paystack", "BPC-1-abcd1234", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	first, err := store.MarkProcessed(context.Background(), "paystack", "BPC-1-abcd1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first {
		t.Error("expected first mark to win")
	}

	// ON CONFLICT DO NOTHING: a concurrent duplicate affects zero rows.
	mock.ExpectExec("INSERT INTO processed_events").
		WithArgs("paystack", "BPC-1-abcd1234", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	second, err := store.MarkProcessed(context.Background(), "paystack", "BPC-1-abcd1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second {
		t.Error("expected duplicate mark to report false")
	}
}
