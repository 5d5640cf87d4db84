package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brightpath-consulting/platform/internal/content"
	"github.com/brightpath-consulting/platform/internal/leads"
)

func TestHealthCheck(t *testing.T) {
	h := New(&Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestUnconfiguredRoutesAbsent(t *testing.T) {
	h := New(&Config{})

	for _, path := range []string{"/bookings/confirm", "/leads/contact", "/blog/posts"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusNotFound && rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected %s to be absent, got %d", path, rr.Code)
		}
	}
}

func TestAdminRequiresToken(t *testing.T) {
	h := New(&Config{
		AdminAuthSecret: "test-secret",
		LeadsHandler:    leads.NewHandler(leads.NewInMemoryRepository(), nil, "", nil),
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}

	token := signAdminToken(t, "test-secret")
	req = httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rr.Code)
	}
}

func TestFormRateLimit(t *testing.T) {
	h := New(&Config{
		LeadsHandler: leads.NewHandler(leads.NewInMemoryRepository(), nil, "", nil),
		FormRate:     1,
		FormBurst:    2,
	})

	var last int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/leads/contact", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected burst to exhaust into 429, got %d", last)
	}
}

func TestBlogRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	h := New(&Config{
		ContentHandler: content.NewHandler(content.NewWordPressClient(srv.URL, nil), nil),
	})

	req := httptest.NewRequest(http.MethodGet, "/blog/posts", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func signAdminToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
