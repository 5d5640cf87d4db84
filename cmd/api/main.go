package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brightpath-consulting/platform/cmd/mainconfig"
	"github.com/brightpath-consulting/platform/internal/api/router"
	"github.com/brightpath-consulting/platform/internal/app/bootstrap"
	"github.com/brightpath-consulting/platform/internal/booking"
	"github.com/brightpath-consulting/platform/internal/calendar"
	"github.com/brightpath-consulting/platform/internal/catalog"
	appconfig "github.com/brightpath-consulting/platform/internal/config"
	"github.com/brightpath-consulting/platform/internal/content"
	"github.com/brightpath-consulting/platform/internal/dispatch"
	"github.com/brightpath-consulting/platform/internal/events"
	"github.com/brightpath-consulting/platform/internal/http/handlers"
	"github.com/brightpath-consulting/platform/internal/leads"
	"github.com/brightpath-consulting/platform/internal/notify"
	"github.com/brightpath-consulting/platform/internal/observability/metrics"
	"github.com/brightpath-consulting/platform/internal/payments"
	"github.com/brightpath-consulting/platform/internal/resources"
	"github.com/brightpath-consulting/platform/pkg/logging"
)

func main() {
	// Load .env for local development; production sets real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting brightpath platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	pool, err := bootstrap.BuildPGXPool(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	sqlDB, err := bootstrap.BuildSQLDB(cfg)
	if err != nil {
		logger.Error("failed to open sql connection", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(reg)

	// Email sender: SendGrid by default, SES or a logging stub by config.
	var emailSender notify.EmailSender
	switch cfg.EmailProvider {
	case "ses":
		emailSender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
	case "stub":
		emailSender = notify.NewStubEmailSender(logger)
	default:
		emailSender = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
	}

	var inserter calendar.EventInserter = calendar.NoopInserter{}
	if cfg.GoogleCredentialsJSON != "" {
		gi, err := calendar.NewGoogleInserter(ctx, cfg.GoogleCredentialsJSON, cfg.GoogleCalendarID, logger)
		if err != nil {
			logger.Error("failed to build calendar client", "error", err)
			os.Exit(1)
		}
		inserter = gi
	} else {
		logger.Warn("google calendar not configured, bookings will not create events")
	}

	catalogStore := catalog.NewStore(pool)
	bookingStore := booking.NewStore(pool)
	leadsRepo := leads.NewPostgresRepository(pool)
	processedStore := events.NewProcessedStore(pool, logger)

	dispatcher := dispatch.New(bookingStore, catalogStore, inserter, emailSender, cfg.NotifyEmail, bookingMetrics, logger)

	gateway := payments.NewClient(cfg.PaystackSecretKey, logger).WithBaseURL(cfg.PaystackBaseURL)
	intake := booking.NewIntake(bookingStore, catalogStore, gateway, dispatcher, cfg.PaystackCallbackURL, bookingMetrics, logger)
	confirmer := booking.NewConfirmer(bookingStore, gateway, dispatcher, bookingMetrics, logger)

	var webhookHandler *payments.WebhookHandler
	if cfg.PaystackSecretKey != "" {
		webhookHandler = payments.NewWebhookHandler(cfg.PaystackSecretKey, confirmer, processedStore, bookingMetrics, logger)
	} else {
		logger.Warn("paystack secret not configured, webhook endpoint disabled")
	}

	var contentHandler *content.Handler
	if cfg.WordPressBaseURL != "" {
		wp := content.NewWordPressClient(cfg.WordPressBaseURL, logger)
		cached := content.NewCachedSource(wp, redisClient, cfg.BlogCacheTTL, logger)
		contentHandler = content.NewHandler(cached, logger)
	}

	var downloader *resources.Downloader
	if cfg.ResourcesBucket != "" {
		presign := s3.NewPresignClient(s3.NewFromConfig(awsCfg))
		downloader = resources.NewDownloader(presign, cfg.ResourcesBucket, cfg.ResourceURLTTL)
	}
	resourcesHandler := resources.NewHandler(resources.NewStore(pool), downloader, logger)

	routerCfg := &router.Config{
		Logger:           logger,
		CatalogHandler:   catalog.NewHandler(catalogStore, logger),
		BookingHandler:   booking.NewHandler(intake, confirmer, logger),
		PaystackWebhook:  webhookHandler,
		LeadsHandler:     leads.NewHandler(leadsRepo, emailSender, cfg.NotifyEmail, logger),
		ContentHandler:   contentHandler,
		ResourcesHandler: resourcesHandler,
		AdminBookings:    handlers.NewAdminBookingsHandler(sqlDB, logger),

		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: splitOrigins(cfg.CORSAllowedOrigins),

		FormRate:  1,
		FormBurst: 5,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
