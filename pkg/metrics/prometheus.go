// Package metrics provides Prometheus metrics for the meetcal service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the service registers.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Ingest pipeline
	eventsIngested  prometheus.Counter
	eventsDuplicate prometheus.Counter
	ingestErrors    prometheus.Counter
	ingestLatency   prometheus.Histogram

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Workers and store
	workerCount        prometheus.Gauge
	storeEvents        prometheus.Gauge
	storeUpdateLatency prometheus.Histogram
	storeQueryLatency  prometheus.Histogram

	// Feeds
	feedFetches     *prometheus.CounterVec
	feedFetchErrors *prometheus.CounterVec
	feedRefreshes   prometheus.Counter

	// Calendar rendering
	calendarBuilds        *prometheus.CounterVec
	calendarBuildDuration prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Runtime
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global manager on a custom registry, so the default Go collectors do
// not pollute /healthz output.
var globalManager *Manager                     //nolint:gochecknoglobals // singleton metrics manager
var customRegistry = prometheus.NewRegistry()  //nolint:gochecknoglobals // backing registry for the singleton

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "meetcal",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.eventsIngested = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "events_ingested_total",
		Help:      "Events normalized and written to the store.",
	})
	m.eventsDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "events_duplicate_total",
		Help:      "Submissions acknowledged as duplicates.",
	})
	m.ingestErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "ingest_errors_total",
		Help:      "Events that failed normalization or storage.",
	})
	m.ingestLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "ingest_latency_ms",
		Help:      "Per-event ingest latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "queue_size",
		Help:      "Events currently buffered in the ingest queue.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "queue_capacity",
		Help:      "Configured ingest queue capacity.",
	})
	m.queueEnqueues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "queue_enqueues_total",
		Help:      "Events accepted into the ingest queue.",
	})
	m.queueEnqueueErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "queue_enqueue_errors_total",
		Help:      "Rejected enqueues by reason.",
	}, []string{"reason"})

	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "worker_count",
		Help:      "Running ingest workers.",
	})
	m.storeEvents = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "store_events",
		Help:      "Events currently held in the store.",
	})
	m.storeUpdateLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "store_update_latency_ms",
		Help:      "Store write latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
	m.storeQueryLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "store_query_latency_ms",
		Help:      "Store window-query latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.feedFetches = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "feed_fetches_total",
		Help:      "Successful ICS feed fetches by source.",
	}, []string{"source"})
	m.feedFetchErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "feed_fetch_errors_total",
		Help:      "Failed ICS feed fetches by source.",
	}, []string{"source"})
	m.feedRefreshes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "feed_refreshes_total",
		Help:      "Completed refresh sweeps across all sources.",
	})

	m.calendarBuilds = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "calendar_builds_total",
		Help:      "Calendar view computations by view kind.",
	}, []string{"view"})
	m.calendarBuildDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "calendar_build_duration_ms",
		Help:      "Filter, window, grid, and bucket pipeline duration.",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "system_memory_usage_bytes",
		Help:      "Allocated heap bytes.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "system_goroutine_count",
		Help:      "Live goroutines.",
	})
	m.systemGCPauseTime = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "system_gc_pause_ms",
		Help:      "Average GC pause time in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers recording on the global manager.

// RecordEventIngested increments the ingested-events counter.
func RecordEventIngested() {
	if globalManager.enabled {
		globalManager.eventsIngested.Inc()
	}
}

// RecordEventDuplicate increments the duplicate-submission counter.
func RecordEventDuplicate() {
	if globalManager.enabled {
		globalManager.eventsDuplicate.Inc()
	}
}

// RecordIngestError increments the ingest-error counter.
func RecordIngestError() {
	if globalManager.enabled {
		globalManager.ingestErrors.Inc()
	}
}

// RecordIngestLatency observes one event's ingest latency.
func RecordIngestLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.ingestLatency.Observe(latencyMs)
	}
}

// UpdateQueueSize sets the ingest queue depth gauge.
func UpdateQueueSize(size int) {
	if globalManager.enabled {
		globalManager.queueSize.Set(float64(size))
	}
}

// UpdateQueueCapacity sets the configured capacity gauge.
func UpdateQueueCapacity(capacity int) {
	if globalManager.enabled {
		globalManager.queueCapacity.Set(float64(capacity))
	}
}

// RecordQueueEnqueue increments the accepted-enqueue counter.
func RecordQueueEnqueue() {
	if globalManager.enabled {
		globalManager.queueEnqueues.Inc()
	}
}

// RecordQueueEnqueueError increments the rejected-enqueue counter.
func RecordQueueEnqueueError(reason string) {
	if globalManager.enabled {
		globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
	}
}

// UpdateWorkerCount sets the running-workers gauge.
func UpdateWorkerCount(count int) {
	if globalManager.enabled {
		globalManager.workerCount.Set(float64(count))
	}
}

// UpdateStoreEvents sets the stored-events gauge.
func UpdateStoreEvents(count int) {
	if globalManager.enabled {
		globalManager.storeEvents.Set(float64(count))
	}
}

// RecordStoreUpdateLatency observes one store write.
func RecordStoreUpdateLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.storeUpdateLatency.Observe(latencyMs)
	}
}

// RecordStoreQueryLatency observes one store window query.
func RecordStoreQueryLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.storeQueryLatency.Observe(latencyMs)
	}
}

// RecordFeedFetch increments the per-source fetch counter.
func RecordFeedFetch(source string) {
	if globalManager.enabled {
		globalManager.feedFetches.WithLabelValues(source).Inc()
	}
}

// RecordFeedFetchError increments the per-source fetch-error counter.
func RecordFeedFetchError(source string) {
	if globalManager.enabled {
		globalManager.feedFetchErrors.WithLabelValues(source).Inc()
	}
}

// RecordFeedRefresh increments the refresh-sweep counter.
func RecordFeedRefresh() {
	if globalManager.enabled {
		globalManager.feedRefreshes.Inc()
	}
}

// RecordCalendarBuild counts one calendar computation for a view kind.
func RecordCalendarBuild(view string) {
	if globalManager.enabled {
		globalManager.calendarBuilds.WithLabelValues(view).Inc()
	}
}

// RecordCalendarBuildDuration observes one pipeline run.
func RecordCalendarBuildDuration(durationMs float64) {
	if globalManager.enabled {
		globalManager.calendarBuildDuration.Observe(durationMs)
	}
}

// RecordHTTPRequest counts one handled request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes one request's duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}

// UpdateSystemMemoryUsage sets the allocated-heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the live-goroutines gauge.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime observes the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry returns the registry backing the global manager, for
// serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
