package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.BlogCacheTTL != 10*time.Minute {
		t.Errorf("expected default blog cache TTL 10m, got %s", cfg.BlogCacheTTL)
	}
	if cfg.GoogleCalendarID != "primary" {
		t.Errorf("expected default calendar id primary, got %s", cfg.GoogleCalendarID)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_abc")
	t.Setenv("RESOURCE_URL_TTL", "30m")
	t.Setenv("REDIS_TLS", "true")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.PaystackSecretKey != "sk_test_abc" {
		t.Errorf("expected paystack key from env, got %s", cfg.PaystackSecretKey)
	}
	if cfg.ResourceURLTTL != 30*time.Minute {
		t.Errorf("expected resource URL TTL 30m, got %s", cfg.ResourceURLTTL)
	}
	if !cfg.RedisTLS {
		t.Error("expected redis TLS enabled")
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("BLOG_CACHE_TTL", "not-a-duration")

	cfg := Load()
	if cfg.BlogCacheTTL != 10*time.Minute {
		t.Errorf("expected fallback TTL 10m, got %s", cfg.BlogCacheTTL)
	}
}
