package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking and payment flows.
type BookingMetrics struct {
	bookingsCreated    *prometheus.CounterVec
	confirmations      *prometheus.CounterVec
	webhookLatency     *prometheus.HistogramVec
	sideEffectFailures *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brightpath",
			Subsystem: "bookings",
			Name:      "created_total",
			Help:      "Total bookings created at intake",
		}, []string{"mode"}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brightpath",
			Subsystem: "bookings",
			Name:      "confirmations_total",
			Help:      "Total confirmation attempts by outcome",
		}, []string{"outcome"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "brightpath",
			Subsystem: "payments",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of payment webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),
		sideEffectFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brightpath",
			Subsystem: "bookings",
			Name:      "side_effect_failures_total",
			Help:      "Calendar/email side effects that failed after confirmation",
		}, []string{"kind"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsCreated, m.confirmations, m.webhookLatency, m.sideEffectFailures)
	return m
}

func (m *BookingMetrics) ObserveBookingCreated(mode string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(mode).Inc()
}

func (m *BookingMetrics) ObserveConfirmation(outcome string) {
	if m == nil {
		return
	}
	m.confirmations.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveWebhookLatency(eventType string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(eventType).Observe(seconds)
}

func (m *BookingMetrics) ObserveSideEffectFailure(kind string) {
	if m == nil {
		return
	}
	m.sideEffectFailures.WithLabelValues(kind).Inc()
}
