package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestListServices(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM catalog_entries").
		WithArgs(KindConsultation).
		WillReturnRows(pgxmock.NewRows(entryColumnNames).
			AddRow("svc-1", KindConsultation, "Discovery Call", "Free 30 minute intro", 30, int64(0), nil, nil, true, now).
			AddRow("svc-2", KindConsultation, "Strategy Session", "90 minute deep dive", 90, int64(500000), nil, nil, true, now))

	handler := NewHandler(NewStore(mock), nil)

	req := httptest.NewRequest(http.MethodGet, "/catalog/services", nil)
	rec := httptest.NewRecorder()
	handler.ListServices(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Entries []Entry `json:"entries"`
		Count   int     `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 entries, got %d", resp.Count)
	}
	if !resp.Entries[0].Free() {
		t.Error("expected discovery call to be free")
	}
	if resp.Entries[1].PriceKobo != 500000 {
		t.Errorf("expected price 500000, got %d", resp.Entries[1].PriceKobo)
	}
}

func TestListEventsEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM catalog_entries").
		WithArgs(KindEvent).
		WillReturnRows(pgxmock.NewRows(entryColumnNames))

	handler := NewHandler(NewStore(mock), nil)

	req := httptest.NewRequest(http.MethodGet, "/catalog/events", nil)
	rec := httptest.NewRecorder()
	handler.ListEvents(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 0 {
		t.Fatalf("expected 0 entries, got %d", resp.Count)
	}
}

func TestListServicesStoreError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM catalog_entries").
		WithArgs(KindConsultation).
		WillReturnError(errors.New("connection refused"))

	handler := NewHandler(NewStore(mock), nil)

	req := httptest.NewRequest(http.MethodGet, "/catalog/services", nil)
	rec := httptest.NewRecorder()
	handler.ListServices(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
