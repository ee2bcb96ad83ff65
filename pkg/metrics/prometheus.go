// Package metrics provides Prometheus metrics for the standings ranking service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          atomic.Bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Ranking metrics
	leaderboardsGenerated *prometheus.CounterVec
	entriesRanked         prometheus.Counter
	tieGroups             prometheus.Counter
	rankDuration          prometheus.Histogram
	batchSize             prometheus.Histogram
	rejectedRequests      *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "standings",
		subsystem:        "leaderboard",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	m.enabled.Store(true)

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.leaderboardsGenerated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "generated_total",
		Help:        "Total number of leaderboards generated",
		ConstLabels: m.constLabels,
	}, []string{"scale", "direction"})

	m.entriesRanked = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "entries_ranked_total",
		Help:        "Total number of entries assigned a rank",
		ConstLabels: m.constLabels,
	})

	m.tieGroups = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tie_groups_total",
		Help:        "Total number of groups of two or more entries sharing a rank",
		ConstLabels: m.constLabels,
	})

	m.rankDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rank_duration_milliseconds",
		Help:        "Time spent sorting and ranking one leaderboard",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_size_entries",
		Help:        "Number of entries per ranked leaderboard",
		Buckets:     prometheus.ExponentialBuckets(1, 4, 10),
		ConstLabels: m.constLabels,
	})

	m.rejectedRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rejected_total",
		Help:        "Total number of leaderboard requests rejected by validation",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and status",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_component_total",
		Help:        "Total errors by component",
		ConstLabels: m.constLabels,
	}, []string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "Total errors by type and severity",
		ConstLabels: m.constLabels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Total errors by HTTP endpoint",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.constLabels,
	})
}

// SetEnabled turns recording on or off. Disabled managers drop observations.
func (m *Manager) SetEnabled(enabled bool) { m.enabled.Store(enabled) }

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled.Load() }

// RecordLeaderboard records one ranked leaderboard.
func (m *Manager) RecordLeaderboard(scale, direction string, entries, ties int, durationMs float64) {
	if !m.Enabled() {
		return
	}
	m.leaderboardsGenerated.WithLabelValues(scale, direction).Inc()
	m.entriesRanked.Add(float64(entries))
	m.tieGroups.Add(float64(ties))
	m.rankDuration.Observe(durationMs)
	m.batchSize.Observe(float64(entries))
}

// RecordRejected counts a request rejected for reason.
func (m *Manager) RecordRejected(reason string) {
	if !m.Enabled() {
		return
	}
	m.rejectedRequests.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records an HTTP request with its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.Enabled() {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent records an error by component.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if !m.Enabled() {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	if !m.Enabled() {
		return
	}
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by HTTP endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.Enabled() {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystem records memory, goroutine and average GC pause readings.
func (m *Manager) UpdateSystem(memoryBytes uint64, goroutines int, gcPauseMs float64) {
	if !m.Enabled() {
		return
	}
	m.systemMemoryUsage.Set(float64(memoryBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if gcPauseMs > 0 {
		m.systemGCPauseTime.Observe(gcPauseMs)
	}
}

// Package-level recorders forward to the global manager.

// SetEnabled toggles the global manager.
func SetEnabled(enabled bool) { globalManager.SetEnabled(enabled) }

// RecordLeaderboard records one ranked leaderboard on the global manager.
func RecordLeaderboard(scale, direction string, entries, ties int, durationMs float64) {
	globalManager.RecordLeaderboard(scale, direction, entries, ties, durationMs)
}

// RecordRejected counts a rejected request on the global manager.
func RecordRejected(reason string) { globalManager.RecordRejected(reason) }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByComponent records an error by component on the global manager.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// RecordErrorByType records an error by type on the global manager.
func RecordErrorByType(errorType, severity string) {
	globalManager.RecordErrorByType(errorType, severity)
}

// RecordErrorByEndpoint records an error by endpoint on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystem records system readings on the global manager.
func UpdateSystem(memoryBytes uint64, goroutines int, gcPauseMs float64) {
	globalManager.UpdateSystem(memoryBytes, goroutines, gcPauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
