package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records the terminal's traffic to the store backend.
type EngineMetrics struct {
	backendLatency *prometheus.HistogramVec
	lookups        *prometheus.CounterVec
	submits        *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	backendLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Duration of store backend round trips in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_lookups_total",
		Help: "Catalog lookups by result.",
	}, []string{"result"})
	submits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_submits_total",
		Help: "Sale submissions by result.",
	}, []string{"result"})
	reg.MustRegister(backendLatency, lookups, submits)
	return &EngineMetrics{
		backendLatency: backendLatency,
		lookups:        lookups,
		submits:        submits,
	}
}

// ObserveBackend records the duration of one backend round trip.
func (m *EngineMetrics) ObserveBackend(operation string, duration time.Duration) {
	if m == nil || m.backendLatency == nil {
		return
	}
	m.backendLatency.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncLookup counts one catalog lookup outcome.
func (m *EngineMetrics) IncLookup(result string) {
	if m == nil || m.lookups == nil {
		return
	}
	m.lookups.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncSubmit counts one sale submission outcome.
func (m *EngineMetrics) IncSubmit(result string) {
	if m == nil || m.submits == nil {
		return
	}
	m.submits.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
