// Package router wires every HTTP surface of the platform into one chi tree.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/brightpath-consulting/platform/internal/booking"
	"github.com/brightpath-consulting/platform/internal/catalog"
	"github.com/brightpath-consulting/platform/internal/content"
	"github.com/brightpath-consulting/platform/internal/http/handlers"
	httpmiddleware "github.com/brightpath-consulting/platform/internal/http/middleware"
	"github.com/brightpath-consulting/platform/internal/leads"
	"github.com/brightpath-consulting/platform/internal/payments"
	"github.com/brightpath-consulting/platform/internal/resources"
	"github.com/brightpath-consulting/platform/pkg/logging"
)

// Config holds router configuration. Nil handlers disable their routes, so
// the binary degrades cleanly when an integration is unconfigured.
type Config struct {
	Logger          *logging.Logger
	CatalogHandler  *catalog.Handler
	BookingHandler  *booking.Handler
	PaystackWebhook *payments.WebhookHandler
	LeadsHandler    *leads.Handler
	ContentHandler  *content.Handler
	ResourcesHandler *resources.Handler
	AdminBookings   *handlers.AdminBookingsHandler

	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// FormRate throttles public form posts per client IP. Zero disables.
	FormRate  float64
	FormBurst int
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	var formLimit func(http.Handler) http.Handler
	if cfg.FormRate > 0 {
		formLimit = httpmiddleware.NewRateLimiter(cfg.FormRate, cfg.FormBurst).Middleware
	} else {
		formLimit = func(next http.Handler) http.Handler { return next }
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public site surface
	if cfg.CatalogHandler != nil {
		r.Route("/catalog", func(cat chi.Router) {
			cat.Get("/services", cfg.CatalogHandler.ListServices)
			cat.Get("/events", cfg.CatalogHandler.ListEvents)
		})
	}
	if cfg.BookingHandler != nil {
		r.Route("/bookings", func(b chi.Router) {
			b.With(formLimit).Post("/", cfg.BookingHandler.Create)
			b.Post("/confirm", cfg.BookingHandler.Confirm)
		})
	}
	if cfg.PaystackWebhook != nil {
		r.Post("/webhooks/paystack", cfg.PaystackWebhook.Handle)
	}
	if cfg.LeadsHandler != nil {
		r.Route("/leads", func(l chi.Router) {
			l.Use(formLimit)
			l.Post("/contact", cfg.LeadsHandler.CreateContact)
			l.Post("/careers", cfg.LeadsHandler.CreateCareers)
		})
	}
	if cfg.ContentHandler != nil {
		r.Route("/blog", func(b chi.Router) {
			b.Get("/posts", cfg.ContentHandler.ListPosts)
			b.Get("/posts/{slug}", cfg.ContentHandler.GetPost)
		})
	}
	if cfg.ResourcesHandler != nil {
		r.Route("/resources", func(res chi.Router) {
			res.Get("/", cfg.ResourcesHandler.List)
			res.Get("/{id}/download", cfg.ResourcesHandler.Download)
		})
	}

	// Admin surface, JWT protected
	if cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			if cfg.AdminBookings != nil {
				admin.Get("/bookings", cfg.AdminBookings.ListBookings)
				admin.Get("/bookings/stats", cfg.AdminBookings.GetStats)
				admin.Get("/bookings/{id}", cfg.AdminBookings.GetBooking)
			}
			if cfg.LeadsHandler != nil {
				admin.Get("/leads", cfg.LeadsHandler.List)
			}
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
