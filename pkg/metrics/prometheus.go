// Package metrics provides Prometheus metrics for the Paceline
// results-analytics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion pipeline
	rowsAccepted      prometheus.Counter
	rowsRejected      prometheus.Counter
	loadsTotal        prometheus.Counter
	loadErrors        *prometheus.CounterVec
	staleLoadsDropped prometheus.Counter
	loadDuration      prometheus.Histogram

	// Dataset shape
	datasetRecords prometheus.Gauge
	datasetRunners prometheus.Gauge
	datasetYears   prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "paceline",
		subsystem:        "pipeline",
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

	m.rowsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_accepted_total",
		Help:      "Raw rows that passed sanitization",
	})
	m.rowsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_rejected_total",
		Help:      "Raw rows dropped during sanitization",
	})
	m.loadsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "loads_total",
		Help:      "Dataset loads committed to the store",
	})
	m.loadErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_errors_total",
		Help:      "Dataset loads that failed, by reason",
	}, []string{"reason"})
	m.staleLoadsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stale_loads_discarded_total",
		Help:      "Loads superseded by a newer load before committing",
	})
	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_duration_milliseconds",
		Help:      "Histogram of end-to-end dataset load time",
		Buckets:   m.histogramBuckets,
	})

	m.datasetRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_records",
		Help:      "Validated records in the current snapshot",
	})
	m.datasetRunners = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_runners",
		Help:      "Distinct runners in the current snapshot",
	})
	m.datasetYears = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_years",
		Help:      "Distinct years in the current snapshot",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// Package-level helpers delegating to the global manager.

// RecordRowsAccepted adds to the accepted-row counter.
func RecordRowsAccepted(n int) {
	globalManager.rowsAccepted.Add(float64(n))
}

// RecordRowsRejected adds to the rejected-row counter.
func RecordRowsRejected(n int) {
	globalManager.rowsRejected.Add(float64(n))
}

// RecordLoad counts one committed load and its duration.
func RecordLoad(durationMs float64) {
	globalManager.loadsTotal.Inc()
	globalManager.loadDuration.Observe(durationMs)
}

// RecordLoadError counts one failed load by reason.
func RecordLoadError(reason string) {
	globalManager.loadErrors.WithLabelValues(reason).Inc()
}

// RecordStaleLoadDiscarded counts a load superseded before commit.
func RecordStaleLoadDiscarded() {
	globalManager.staleLoadsDropped.Inc()
}

// UpdateDatasetRecords sets the current record count gauge.
func UpdateDatasetRecords(count int) {
	globalManager.datasetRecords.Set(float64(count))
}

// UpdateDatasetRunners sets the current distinct-runner gauge.
func UpdateDatasetRunners(count int) {
	globalManager.datasetRunners.Set(float64(count))
}

// UpdateDatasetYears sets the current distinct-year gauge.
func UpdateDatasetYears(count int) {
	globalManager.datasetYears.Set(float64(count))
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the registry backing the global manager for
// serving on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
