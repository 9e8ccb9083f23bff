// Package metrics provides Prometheus metrics for the rosterd service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the rosterd service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Mutation metrics - what planners actually change
	mutationsApplied  *prometheus.CounterVec
	mutationsRejected *prometheus.CounterVec

	// Derivation metrics - view recomputation cost
	derivationDuration *prometheus.HistogramVec

	// Store metrics
	storeOpDuration *prometheus.HistogramVec
	storeErrors     prometheus.Counter

	// Roster scale gauges
	playersTotal  prometheus.Gauge
	recruitsTotal prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rosterd",
		subsystem:        "roster",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.mutationsApplied = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "mutations_applied_total",
			Help:      "Total number of roster mutations committed, by operation",
		},
		[]string{"op"},
	)

	m.mutationsRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "mutations_rejected_total",
			Help:      "Total number of roster mutations rejected by validation, by operation and reason",
		},
		[]string{"op", "reason"},
	)

	m.derivationDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "derivation_duration_milliseconds",
			Help:      "Time spent recomputing a roster view, by view",
			Buckets:   m.histogramBuckets,
		},
		[]string{"view"},
	)

	m.storeOpDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_op_duration_milliseconds",
			Help:      "Roster store operation latency in milliseconds, by operation",
			Buckets:   m.histogramBuckets,
		},
		[]string{"op"},
	)

	m.storeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total number of roster store failures",
	})

	m.playersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_total",
		Help:      "Total number of players tracked",
	})

	m.recruitsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recruits_total",
		Help:      "Total number of recruits tracked",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordMutationApplied increments the applied mutation counter for op.
func RecordMutationApplied(op string) {
	globalManager.mutationsApplied.WithLabelValues(op).Inc()
}

// RecordMutationRejected increments the rejected mutation counter.
func RecordMutationRejected(op, reason string) {
	globalManager.mutationsRejected.WithLabelValues(op, reason).Inc()
}

// RecordDerivationDuration records the cost of recomputing a view.
func RecordDerivationDuration(view string, durationMs float64) {
	globalManager.derivationDuration.WithLabelValues(view).Observe(durationMs)
}

// RecordStoreOpDuration records store operation latency.
func RecordStoreOpDuration(op string, durationMs float64) {
	globalManager.storeOpDuration.WithLabelValues(op).Observe(durationMs)
}

// RecordStoreError increments the store failure counter.
func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

// UpdatePlayersTotal sets the tracked player count.
func UpdatePlayersTotal(count int) {
	globalManager.playersTotal.Set(float64(count))
}

// UpdateRecruitsTotal sets the tracked recruit count.
func UpdateRecruitsTotal(count int) {
	globalManager.recruitsTotal.Set(float64(count))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
