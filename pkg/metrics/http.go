package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latencies per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
	}
}

// ObserveRequest records one served request.
func (h *HTTPMetrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if h == nil || h.requests == nil {
		return
	}
	h.requests.WithLabelValues(normalizeLabel(method), normalizeLabel(route), normalizeLabel(status)).Inc()
	h.duration.WithLabelValues(normalizeLabel(method), normalizeLabel(route)).Observe(elapsed.Seconds())
}

// PageCacheMetrics records hits and misses on the rendered-page cache.
type PageCacheMetrics struct {
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
	purges *prometheus.CounterVec
}

// NewPageCacheMetrics registers the page-cache metrics on the provided registerer.
func NewPageCacheMetrics(reg prometheus.Registerer) *PageCacheMetrics {
	if reg == nil {
		return &PageCacheMetrics{}
	}
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "page_cache_hits_total",
		Help: "Page cache hits by path.",
	}, []string{"path"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "page_cache_misses_total",
		Help: "Page cache misses by path.",
	}, []string{"path"})
	purges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "page_cache_purges_total",
		Help: "Page cache purges triggered by webhooks, by model.",
	}, []string{"model"})
	reg.MustRegister(hits, misses, purges)
	return &PageCacheMetrics{
		hits:   hits,
		misses: misses,
		purges: purges,
	}
}

// IncHit increments the hit counter for the cached path.
func (p *PageCacheMetrics) IncHit(path string) {
	if p == nil || p.hits == nil {
		return
	}
	p.hits.WithLabelValues(normalizeLabel(path)).Inc()
}

// IncMiss increments the miss counter for the cached path.
func (p *PageCacheMetrics) IncMiss(path string) {
	if p == nil || p.misses == nil {
		return
	}
	p.misses.WithLabelValues(normalizeLabel(path)).Inc()
}

// IncPurge increments the purge counter for the webhook model.
func (p *PageCacheMetrics) IncPurge(model string) {
	if p == nil || p.purges == nil {
		return
	}
	p.purges.WithLabelValues(normalizeLabel(model)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
