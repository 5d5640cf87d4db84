package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBookingMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveBookingCreated("paid")
	m.ObserveBookingCreated("paid")
	m.ObserveBookingCreated("free")
	m.ObserveConfirmation("paid")
	m.ObserveConfirmation("failed")
	m.ObserveSideEffectFailure("calendar")
	m.ObserveWebhookLatency("charge.success", 0.05)

	if got := testutil.ToFloat64(m.bookingsCreated.WithLabelValues("paid")); got != 2 {
		t.Errorf("expected 2 paid bookings, got %v", got)
	}
	if got := testutil.ToFloat64(m.bookingsCreated.WithLabelValues("free")); got != 1 {
		t.Errorf("expected 1 free booking, got %v", got)
	}
	if got := testutil.ToFloat64(m.confirmations.WithLabelValues("failed")); got != 1 {
		t.Errorf("expected 1 failed confirmation, got %v", got)
	}
	if got := testutil.ToFloat64(m.sideEffectFailures.WithLabelValues("calendar")); got != 1 {
		t.Errorf("expected 1 calendar failure, got %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveBookingCreated("free")
	m.ObserveConfirmation("paid")
	m.ObserveWebhookLatency("charge.success", 0.1)
	m.ObserveSideEffectFailure("email")
}
