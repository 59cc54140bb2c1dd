// Package metrics exposes gravitymap's Prometheus metrics.
//
// A [Registry] implements the observability hook interfaces, so wiring
// metrics is a matter of registering it at startup:
//
//	m := metrics.NewRegistry()
//	observability.SetLayoutHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//	router.Handle("/metrics", m.Handler())
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application.
type Registry struct {
	// Layout Metrics
	LayoutsTotal   *prometheus.CounterVec
	LayoutDuration prometheus.Histogram
	LayoutNodes    prometheus.Histogram
	RendersTotal   *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheEventsTotal  *prometheus.CounterVec
	CacheBytesWritten *prometheus.CounterVec

	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric and the Go runtime and
// process collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{registry: reg}
	r.initLayoutMetrics()
	r.initCacheMetrics()
	r.initHTTPMetrics()
	return r
}

// Prometheus returns the underlying Prometheus registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Registry) initLayoutMetrics() {
	r.LayoutsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitymap_layouts_total",
			Help: "Total number of layout requests",
		},
		[]string{"status"}, // computed, cached, error
	)

	r.LayoutDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gravitymap_layout_duration_seconds",
			Help:    "Duration of layout requests in seconds, including cache lookups",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
	)

	r.LayoutNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gravitymap_layout_nodes",
			Help:    "Number of nodes per layout request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
		},
	)

	r.RendersTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitymap_renders_total",
			Help: "Total number of rendered artifacts",
		},
		[]string{"format", "status"},
	)

	r.RenderDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gravitymap_render_duration_seconds",
			Help:    "Duration of artifact rendering in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)
}

func (r *Registry) initCacheMetrics() {
	r.CacheEventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitymap_cache_events_total",
			Help: "Total number of cache events",
		},
		[]string{"type", "event"}, // event: hit, miss, set, error
	)

	r.CacheBytesWritten = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitymap_cache_bytes_written_total",
			Help: "Total bytes written to the cache",
		},
		[]string{"type"},
	)
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitymap_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gravitymap_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
}
