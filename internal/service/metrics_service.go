package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation. It doubles as the
// store's persist observer so document writes are timed without the store
// importing prometheus.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	persistDuration prometheus.Observer
	persistFailures prometheus.Counter
	documentEntity  *prometheus.GaugeVec
	advisorTotal    *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	persistDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "document_persist_duration_seconds",
		Help:    "Duration of document persists to disk",
		Buckets: prometheus.DefBuckets,
	})

	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "document_persist_failures_total",
		Help: "Total number of failed document persists",
	})

	documentEntity := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "document_entities",
		Help: "Number of records per document section",
	}, []string{"section"})

	advisorTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_requests_total",
		Help: "Total number of AI advisor requests",
	}, []string{"operation", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, persistDuration, persistFailures, documentEntity, advisorTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		persistDuration: persistDuration,
		persistFailures: persistFailures,
		documentEntity:  documentEntity,
		advisorTotal:    advisorTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObservePersist records document persist timing. Part of the store's
// PersistObserver contract.
func (m *MetricsService) ObservePersist(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.persistDuration.Observe(duration.Seconds())
	if err != nil {
		m.persistFailures.Inc()
	}
}

// SetDocumentCounts updates the per-section record gauges. Part of the
// store's PersistObserver contract.
func (m *MetricsService) SetDocumentCounts(students, staff, attendance, payments, announcements int) {
	if m == nil {
		return
	}
	m.documentEntity.WithLabelValues("students").Set(float64(students))
	m.documentEntity.WithLabelValues("staff").Set(float64(staff))
	m.documentEntity.WithLabelValues("attendance").Set(float64(attendance))
	m.documentEntity.WithLabelValues("payments").Set(float64(payments))
	m.documentEntity.WithLabelValues("announcements").Set(float64(announcements))
}

// ObserveAdvisorRequest counts AI advisor calls by operation and outcome.
func (m *MetricsService) ObserveAdvisorRequest(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.advisorTotal.WithLabelValues(operation, outcome).Inc()
}
