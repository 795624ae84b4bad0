package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the drawer server.
type Metrics struct {
	registry prometheus.Gatherer

	// Engine mutations
	QuantityUpdates *prometheus.CounterVec
	TargetUpdates   prometheus.Counter
	Resets          prometheus.Counter

	// Reconciliation status after each mutation
	Reconciliations *prometheus.CounterVec

	// Session lifecycle
	ActiveSessions  prometheus.Gauge
	SessionsCreated prometheus.Counter
	SessionsEvicted *prometheus.CounterVec

	// HTTP edge
	RequestDuration    *prometheus.HistogramVec
	RateLimited        prometheus.Counter
	SuspiciousRequests prometheus.Counter
}

// New registers every drawer metric on reg. A nil reg gets a fresh private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		QuantityUpdates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cashdrawer_quantity_updates_total",
			Help: "Quantity field updates by denomination value",
		}, []string{"denomination"}),

		TargetUpdates: f.NewCounter(prometheus.CounterOpts{
			Name: "cashdrawer_target_updates_total",
			Help: "Register amount updates",
		}),

		Resets: f.NewCounter(prometheus.CounterOpts{
			Name: "cashdrawer_resets_total",
			Help: "Drawer resets",
		}),

		Reconciliations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cashdrawer_reconciliations_total",
			Help: "Reconciliation outcomes computed after each update",
		}, []string{"status"}), // status: unset, match, shortage, surplus

		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "cashdrawer_active_sessions",
			Help: "Drawer sessions currently held in memory",
		}),

		SessionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "cashdrawer_sessions_created_total",
			Help: "Drawer sessions created",
		}),

		SessionsEvicted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cashdrawer_sessions_evicted_total",
			Help: "Drawer sessions removed by reason",
		}, []string{"reason"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cashdrawer_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status code",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "status"}),

		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "cashdrawer_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		}),

		SuspiciousRequests: f.NewCounter(prometheus.CounterOpts{
			Name: "cashdrawer_suspicious_requests_total",
			Help: "Requests flagged by the security detector",
		}),
	}
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncQuantityUpdate records a quantity edit.
func (m *Metrics) IncQuantityUpdate(denomination int64) {
	if m != nil {
		m.QuantityUpdates.WithLabelValues(strconv.FormatInt(denomination, 10)).Inc()
	}
}

// IncTargetUpdate records a register amount edit.
func (m *Metrics) IncTargetUpdate() {
	if m != nil {
		m.TargetUpdates.Inc()
	}
}

// IncReset records a drawer reset.
func (m *Metrics) IncReset() {
	if m != nil {
		m.Resets.Inc()
	}
}

// IncReconciliation records the status computed after a mutation.
func (m *Metrics) IncReconciliation(status string) {
	if m != nil {
		m.Reconciliations.WithLabelValues(status).Inc()
	}
}

// SessionCreated bumps the created counter and the live gauge.
func (m *Metrics) SessionCreated() {
	if m != nil {
		m.SessionsCreated.Inc()
		m.ActiveSessions.Inc()
	}
}

// SessionEvicted records a removal and lowers the live gauge.
func (m *Metrics) SessionEvicted(reason string) {
	if m != nil {
		m.SessionsEvicted.WithLabelValues(reason).Inc()
		m.ActiveSessions.Dec()
	}
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
	}
}

// IncRateLimited records a rejected request.
func (m *Metrics) IncRateLimited() {
	if m != nil {
		m.RateLimited.Inc()
	}
}

// IncSuspicious records a flagged request.
func (m *Metrics) IncSuspicious() {
	if m != nil {
		m.SuspiciousRequests.Inc()
	}
}
