package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type CacheMetricsCollector struct {
	Hits           *prometheus.CounterVec
	Misses         *prometheus.CounterVec
	StaleFallbacks *prometheus.CounterVec
	Refreshes      *prometheus.CounterVec
	FetchLatency   *prometheus.HistogramVec
}

var (
	collectorOnce   sync.Once
	globalCollector *CacheMetricsCollector
)

// getCollector builds the process-wide collector exactly once. Clients
// can be constructed concurrently, and prometheus panics on duplicate
// registration, so construction must not race.
func getCollector() *CacheMetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = &CacheMetricsCollector{
			Hits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weathersdk_cache_hits_total",
					Help: "The total number of fresh cache hits",
				},
				[]string{"backend"},
			),
			Misses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weathersdk_cache_misses_total",
					Help: "The total number of cache misses triggering a blocking fetch",
				},
				[]string{"backend"},
			),
			StaleFallbacks: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weathersdk_cache_stale_fallbacks_total",
					Help: "The total number of stale values served after a failed refresh",
				},
				[]string{"backend"},
			),
			Refreshes: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weathersdk_refreshes_total",
					Help: "The total number of background refresh attempts by outcome",
				},
				[]string{"backend", "outcome"},
			),
			FetchLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weathersdk_fetch_duration_seconds",
					Help:    "Forecast fetch duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"backend"},
			),
		}
	})
	return globalCollector
}

// CacheStats is a point-in-time snapshot of the in-process counters
type CacheStats struct {
	Hits             int64
	Misses           int64
	StaleFallbacks   int64
	RefreshSuccesses int64
	RefreshFailures  int64
}

type CacheMetrics struct {
	backend   string
	stats     CacheStats
	collector *CacheMetricsCollector
	mu        sync.RWMutex
}

func NewCacheMetrics(backend string) *CacheMetrics {
	return &CacheMetrics{
		backend:   backend,
		collector: getCollector(),
	}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Hits++
	m.collector.Hits.WithLabelValues(m.backend).Inc()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Misses++
	m.collector.Misses.WithLabelValues(m.backend).Inc()
}

func (m *CacheMetrics) RecordStaleFallback() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.StaleFallbacks++
	m.collector.StaleFallbacks.WithLabelValues(m.backend).Inc()
}

func (m *CacheMetrics) RecordRefreshSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.RefreshSuccesses++
	m.collector.Refreshes.WithLabelValues(m.backend, "success").Inc()
}

func (m *CacheMetrics) RecordRefreshFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.RefreshFailures++
	m.collector.Refreshes.WithLabelValues(m.backend, "failure").Inc()
}

func (m *CacheMetrics) ObserveFetchDuration(seconds float64) {
	m.collector.FetchLatency.WithLabelValues(m.backend).Observe(seconds)
}

func (m *CacheMetrics) Stats() CacheStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.stats
}
