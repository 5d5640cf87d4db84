package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/brightpath-consulting/platform/internal/payments"
)

func newTestHandler(t *testing.T, cat *stubCatalog, gateway *stubGateway) (*Handler, pgxmock.PgxPoolIface) {
	t.Helper()
	store, mock := newMockStore(t)
	intake := NewIntake(store, cat, gateway, &stubDispatcher{}, "https://brightpath.example/bookings/confirm", nil, nil)
	confirmer := NewConfirmer(store, gateway, &stubDispatcher{}, nil, nil)
	return NewHandler(intake, confirmer, nil), mock
}

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestHandlerCreatePaid(t *testing.T) {
	gateway := &stubGateway{auth: &payments.Authorization{AuthorizationURL: "https://checkout.paystack.com/xyz"}}
	h, mock := newTestHandler(t, &stubCatalog{entry: paidEntry()}, gateway)
	mock.ExpectExec("INSERT INTO bookings").WithArgs(anyArgs(15)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rr := postJSON(t, h.Create, validRequest())

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp createResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || resp.Mode != "paid" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.RedirectURL != "https://checkout.paystack.com/xyz" {
		t.Errorf("unexpected redirect: %s", resp.RedirectURL)
	}
}

func TestHandlerCreateValidationError(t *testing.T) {
	h, _ := newTestHandler(t, &stubCatalog{entry: paidEntry()}, &stubGateway{})

	req := validRequest()
	req.FullName = ""
	rr := postJSON(t, h.Create, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandlerCreateInvalidBody(t *testing.T) {
	h, _ := newTestHandler(t, &stubCatalog{entry: paidEntry()}, &stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandlerConfirmRequiresIdentifier(t *testing.T) {
	h, _ := newTestHandler(t, &stubCatalog{}, &stubGateway{})

	rr := postJSON(t, h.Confirm, confirmRequest{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandlerConfirmByReference(t *testing.T) {
	ref := "BPC-1-abcd1234"
	gateway := &stubGateway{verification: successVerification(ref)}
	h, mock := newTestHandler(t, &stubCatalog{}, gateway)
	pendingRow(mock, ref)
	mock.ExpectExec("UPDATE bookings").WithArgs(anyArgs(3)...).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	rr := postJSON(t, h.Confirm, confirmRequest{Reference: ref})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp confirmResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || resp.Status != StatusPaid {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandlerConfirmFailedPayment(t *testing.T) {
	ref := "BPC-1-abcd1234"
	gateway := &stubGateway{verification: &payments.Verification{Status: "failed", Reference: ref}}
	h, mock := newTestHandler(t, &stubCatalog{}, gateway)
	pendingRow(mock, ref)
	mock.ExpectExec("UPDATE bookings").WithArgs(anyArgs(2)...).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	rr := postJSON(t, h.Confirm, confirmRequest{Reference: ref})

	// Failed charge is a handled outcome, not a server error.
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp confirmResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OK || resp.Status != StatusFailed {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandlerConfirmNotFound(t *testing.T) {
	h, mock := newTestHandler(t, &stubCatalog{}, &stubGateway{})
	mock.ExpectQuery("SELECT (.+) FROM bookings").WithArgs(pgxmock.AnyArg()).WillReturnError(pgx.ErrNoRows)

	rr := postJSON(t, h.Confirm, confirmRequest{BookingID: "missing"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
