// Package metrics provides Prometheus metrics for the driftwatch service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the driftwatch service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics - evaluation outcomes
	evaluationsTotal   prometheus.Counter
	driftDetected      prometheus.Counter
	evaluationLatency  prometheus.Histogram
	unknownCareerTotal prometheus.Counter
	noDataTotal        prometheus.Counter
	suggestionsEmitted prometheus.Counter

	// Model Metrics - predictor availability and training
	modelLoaded           prometheus.Gauge
	modelUnavailableTotal prometheus.Counter
	trainingRuns          prometheus.Counter
	trainingDuration      prometheus.Histogram
	datasetRowsGenerated  prometheus.Counter

	// Store Metrics - student repository
	storeStudents        prometheus.Gauge
	storeActivitiesTotal prometheus.Counter
	storeShardCount      prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "driftwatch",
		subsystem:        "scoring",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.evaluationsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_total",
		Help:      "Total number of profile evaluations served",
	})

	m.driftDetected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "drift_detected_total",
		Help:      "Total number of evaluations that crossed the drift threshold",
	})

	m.evaluationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_latency_milliseconds",
		Help:      "Histogram of end-to-end evaluation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.unknownCareerTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unknown_career_total",
		Help:      "Total number of evaluations rejected for an unknown target career",
	})

	m.noDataTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "no_data_total",
		Help:      "Total number of evaluations of profiles without activities",
	})

	m.suggestionsEmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestions_emitted_total",
		Help:      "Total number of suggestions returned to students",
	})

	m.modelLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_loaded",
		Help:      "Whether the drift model is loaded (1) or unavailable (0)",
	})

	m.modelUnavailableTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_unavailable_total",
		Help:      "Total number of predictions refused because no model is loaded",
	})

	m.trainingRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_runs_total",
		Help:      "Total number of completed training runs",
	})

	m.trainingDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_duration_milliseconds",
		Help:      "Histogram of training run duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.datasetRowsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows_generated_total",
		Help:      "Total number of synthetic dataset rows generated",
	})

	m.storeStudents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_students",
		Help:      "Number of students in the store",
	})

	m.storeActivitiesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_activities_total",
		Help:      "Total number of activities recorded in the store",
	})

	m.storeShardCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_shard_count",
		Help:      "Number of shards in the student store",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// RecordEvaluation records one served evaluation and its latency.
func RecordEvaluation(latencyMs float64) {
	globalManager.evaluationsTotal.Inc()
	globalManager.evaluationLatency.Observe(latencyMs)
}

// RecordDriftDetected records an evaluation that crossed the threshold.
func RecordDriftDetected() {
	globalManager.driftDetected.Inc()
}

// RecordUnknownCareer records a rejected unknown-career evaluation.
func RecordUnknownCareer() {
	globalManager.unknownCareerTotal.Inc()
}

// RecordNoData records an evaluation of an empty profile.
func RecordNoData() {
	globalManager.noDataTotal.Inc()
}

// RecordSuggestions records emitted suggestions.
func RecordSuggestions(count int) {
	globalManager.suggestionsEmitted.Add(float64(count))
}

// UpdateModelLoaded sets the model availability gauge.
func UpdateModelLoaded(loaded bool) {
	if loaded {
		globalManager.modelLoaded.Set(1)
		return
	}
	globalManager.modelLoaded.Set(0)
}

// RecordModelUnavailable records a prediction refused for a missing model.
func RecordModelUnavailable() {
	globalManager.modelUnavailableTotal.Inc()
}

// RecordTrainingRun records a completed training run and its duration.
func RecordTrainingRun(durationMs float64) {
	globalManager.trainingRuns.Inc()
	globalManager.trainingDuration.Observe(durationMs)
}

// RecordDatasetRows records generated synthetic rows.
func RecordDatasetRows(count int) {
	globalManager.datasetRowsGenerated.Add(float64(count))
}

// UpdateStoreStudents sets the stored-student gauge.
func UpdateStoreStudents(count int) {
	globalManager.storeStudents.Set(float64(count))
}

// RecordStoreActivity records one stored activity.
func RecordStoreActivity() {
	globalManager.storeActivitiesTotal.Inc()
}

// UpdateStoreShardCount sets the store shard gauge.
func UpdateStoreShardCount(count int) {
	globalManager.storeShardCount.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets current allocated memory.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry metrics are registered on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
