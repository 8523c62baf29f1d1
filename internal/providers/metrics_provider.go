package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"onlyone/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncSyncPolls()
	IncSyncReloads()
	SetAnswersTotal(count int)
	SetUsedQuestions(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	syncPolls           prometheus.Counter
	syncReloads         prometheus.Counter
	answersTotal        prometheus.Gauge
	usedQuestions       prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSyncPolls() {
	m.syncPolls.Inc()
}

func (m *MetricsProvider) IncSyncReloads() {
	m.syncReloads.Inc()
}

func (m *MetricsProvider) SetAnswersTotal(count int) {
	m.answersTotal.Set(float64(count))
}

func (m *MetricsProvider) SetUsedQuestions(count int) {
	m.usedQuestions.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "onlyone_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onlyone_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "onlyone_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "onlyone_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "onlyone_persistence_duration_seconds",
			Help:    "Duration of shared store writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		syncPolls: promauto.NewCounter(prometheus.CounterOpts{
			Name: "onlyone_sync_polls_total",
			Help: "Total number of synchronizer poll cycles",
		}),

		syncReloads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "onlyone_sync_reloads_total",
			Help: "Total number of change signals delivered to subscribers",
		}),

		answersTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "onlyone_answers_total",
			Help: "Current number of saved answers",
		}),

		usedQuestions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "onlyone_used_questions",
			Help: "Current size of the used question set",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncSyncPolls()                                    {}
func (n *noopMetrics) IncSyncReloads()                                  {}
func (n *noopMetrics) SetAnswersTotal(_ int)                            {}
func (n *noopMetrics) SetUsedQuestions(_ int)                           {}
