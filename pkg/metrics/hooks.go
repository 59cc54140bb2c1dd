package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/gravitymap/pkg/observability"
)

// Layout status label values.
const (
	StatusComputed = "computed"
	StatusCached   = "cached"
	StatusError    = "error"
	StatusOK       = "ok"
)

// OnLayoutStart implements observability.LayoutHooks.
func (r *Registry) OnLayoutStart(_ context.Context, nodes, _ int) {
	r.LayoutNodes.Observe(float64(nodes))
}

// OnLayoutComplete implements observability.LayoutHooks.
func (r *Registry) OnLayoutComplete(_ context.Context, _ int, duration time.Duration, cached bool, err error) {
	status := StatusComputed
	switch {
	case err != nil:
		status = StatusError
	case cached:
		status = StatusCached
	}
	r.LayoutsTotal.WithLabelValues(status).Inc()
	r.LayoutDuration.Observe(duration.Seconds())
}

// OnRenderComplete implements observability.LayoutHooks.
func (r *Registry) OnRenderComplete(_ context.Context, format string, duration time.Duration, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	r.RendersTotal.WithLabelValues(format, status).Inc()
	r.RenderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// OnCacheHit implements observability.CacheHooks.
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheEventsTotal.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheEventsTotal.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheEventsTotal.WithLabelValues(keyType, "set").Inc()
	r.CacheBytesWritten.WithLabelValues(keyType).Add(float64(size))
}

// OnCacheError implements observability.CacheHooks.
func (r *Registry) OnCacheError(_ context.Context, keyType, _ string, _ error) {
	r.CacheEventsTotal.WithLabelValues(keyType, "error").Inc()
}

// OnRequest implements observability.HTTPHooks.
func (r *Registry) OnRequest(_ context.Context, method, route string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

var (
	_ observability.LayoutHooks = (*Registry)(nil)
	_ observability.CacheHooks  = (*Registry)(nil)
	_ observability.HTTPHooks   = (*Registry)(nil)
)
