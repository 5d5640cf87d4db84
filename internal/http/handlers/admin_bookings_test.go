package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
)

var bookingListColumns = []string{
	"id", "catalog_id", "name", "full_name", "email", "starts_at",
	"timezone", "amount_kobo", "payment_status", "payment_reference",
	"calendar_event_id", "created_at",
}

func TestListBookings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(sqlmock.NewRows(bookingListColumns).
			AddRow("bk-1", "svc-1", "Strategy Session", "Ada Obi", "ada@example.com", now,
				"Africa/Lagos", int64(500000), "paid", "BPC-1-abcd1234", "evt-abc", now))

	h := NewAdminBookingsHandler(db, nil)
	req := httptest.NewRequest(http.MethodGet, "/admin/bookings?status=paid", nil)
	rr := httptest.NewRecorder()
	h.ListBookings(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp BookingsListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Bookings) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	b := resp.Bookings[0]
	if b.ID != "bk-1" || b.PaymentStatus != "paid" {
		t.Errorf("unexpected booking: %+v", b)
	}
	if b.ServiceName == nil || *b.ServiceName != "Strategy Session" {
		t.Errorf("expected joined service name, got %+v", b.ServiceName)
	}
}

func TestListBookingsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(sqlmock.NewRows(bookingListColumns))

	h := NewAdminBookingsHandler(db, nil)
	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	rr := httptest.NewRecorder()
	h.ListBookings(rr, req)

	var resp BookingsListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Bookings == nil || len(resp.Bookings) != 0 {
		t.Errorf("expected empty slice, got %+v", resp.Bookings)
	}
}

func TestGetBookingNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(bookingListColumns))

	h := NewAdminBookingsHandler(db, nil)
	r := chi.NewRouter()
	r.Get("/admin/bookings/{id}", h.GetBooking)

	req := httptest.NewRequest(http.MethodGet, "/admin/bookings/missing", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestGetStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT payment_status").
		WillReturnRows(sqlmock.NewRows([]string{"payment_status", "count", "sum"}).
			AddRow("paid", 4, int64(2000000)).
			AddRow("pending", 2, int64(1000000)).
			AddRow("free", 3, int64(0)))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(1500000)))

	h := NewAdminBookingsHandler(db, nil)
	req := httptest.NewRequest(http.MethodGet, "/admin/bookings/stats", nil)
	rr := httptest.NewRecorder()
	h.GetStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var stats BookingStatsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.TotalBookings != 9 {
		t.Errorf("expected 9 bookings, got %d", stats.TotalBookings)
	}
	if stats.TotalAmountKobo != 2000000 {
		t.Errorf("only paid revenue counts, got %d", stats.TotalAmountKobo)
	}
	if stats.ByStatus["free"] != 3 {
		t.Errorf("unexpected status breakdown: %+v", stats.ByStatus)
	}
}
