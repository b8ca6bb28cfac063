package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	qaRequestsTotal  *prometheus.CounterVec
	qaMatchedTotal   *prometheus.CounterVec
	qaNoContextTotal *prometheus.CounterVec
	qaRankedItems    *prometheus.HistogramVec
	qaDuration       *prometheus.HistogramVec

	resourceLoadsTotal     *prometheus.CounterVec
	resourceLoadFailsTotal *prometheus.CounterVec
	resourceEvictionsTotal *prometheus.CounterVec
	cacheReleasesTotal     prometheus.Counter
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "concierge",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "concierge",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	qaRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "qa",
			Name:      "requests_total",
			Help:      "Total question-answering requests by endpoint.",
		},
		[]string{"service", "endpoint"},
	)
	qaMatchedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "qa",
			Name:      "matched_total",
			Help:      "Total requests with at least one ranked match.",
		},
		[]string{"service", "endpoint"},
	)
	qaNoContextTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "qa",
			Name:      "no_context_total",
			Help:      "Total requests with no ranked matches.",
		},
		[]string{"service", "endpoint"},
	)
	qaRankedItems := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "concierge",
			Subsystem: "qa",
			Name:      "ranked_items",
			Help:      "Distribution of ranked items per request.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		},
		[]string{"service", "endpoint"},
	)
	qaDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "concierge",
			Subsystem: "qa",
			Name:      "duration_seconds",
			Help:      "Question-answering execution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	resourceLoadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "cache",
			Name:      "resource_loads_total",
			Help:      "Total successful resource loads by kind.",
		},
		[]string{"service", "resource"},
	)
	resourceLoadFailsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "cache",
			Name:      "resource_load_failures_total",
			Help:      "Total failed resource loads by kind.",
		},
		[]string{"service", "resource"},
	)
	resourceEvictionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "cache",
			Name:      "resource_evictions_total",
			Help:      "Total TTL evictions by resource kind.",
		},
		[]string{"service", "resource"},
	)
	cacheReleasesTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "concierge",
			Subsystem: "cache",
			Name:      "releases_total",
			Help:      "Total forced full cache releases.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		qaRequestsTotal,
		qaMatchedTotal,
		qaNoContextTotal,
		qaRankedItems,
		qaDuration,
		resourceLoadsTotal,
		resourceLoadFailsTotal,
		resourceEvictionsTotal,
		cacheReleasesTotal,
	)

	return &HTTPServerMetrics{
		registry: registry,
		service:  service,

		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,

		qaRequestsTotal:  qaRequestsTotal,
		qaMatchedTotal:   qaMatchedTotal,
		qaNoContextTotal: qaNoContextTotal,
		qaRankedItems:    qaRankedItems,
		qaDuration:       qaDuration,

		resourceLoadsTotal:     resourceLoadsTotal,
		resourceLoadFailsTotal: resourceLoadFailsTotal,
		resourceEvictionsTotal: resourceEvictionsTotal,
		cacheReleasesTotal:     cacheReleasesTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			m.service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(m.service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// RecordQAObservation tracks one completed ranking/answer request.
func (m *HTTPServerMetrics) RecordQAObservation(endpoint string, rankedCount int, duration time.Duration) {
	m.qaRequestsTotal.WithLabelValues(m.service, endpoint).Inc()
	m.qaRankedItems.WithLabelValues(m.service, endpoint).Observe(float64(rankedCount))
	m.qaDuration.WithLabelValues(m.service, endpoint).Observe(duration.Seconds())
	if rankedCount > 0 {
		m.qaMatchedTotal.WithLabelValues(m.service, endpoint).Inc()
	} else {
		m.qaNoContextTotal.WithLabelValues(m.service, endpoint).Inc()
	}
}

// The following methods implement the cache observer contract.

func (m *HTTPServerMetrics) ResourceLoaded(resource string) {
	m.resourceLoadsTotal.WithLabelValues(m.service, resource).Inc()
}

func (m *HTTPServerMetrics) ResourceLoadFailed(resource string) {
	m.resourceLoadFailsTotal.WithLabelValues(m.service, resource).Inc()
}

func (m *HTTPServerMetrics) ResourceEvicted(resource string) {
	m.resourceEvictionsTotal.WithLabelValues(m.service, resource).Inc()
}

func (m *HTTPServerMetrics) CacheReleased() {
	m.cacheReleasesTotal.Inc()
}
