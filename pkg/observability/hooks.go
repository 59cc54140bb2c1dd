// Package observability provides hooks for metrics and tracing.
//
// Libraries in this module emit events through small hook interfaces; the
// binary registers concrete implementations at startup. The default hooks
// are no-ops, so library code never depends on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	m := metrics.New(prometheus.NewRegistry())
//	observability.SetLayoutHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutStart(ctx, nodes, edges)
//	// ... compute ...
//	observability.Layout().OnLayoutComplete(ctx, nodes, duration, cached, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the layout pipeline.
type LayoutHooks interface {
	// OnLayoutStart fires before the cache lookup for a layout request.
	OnLayoutStart(ctx context.Context, nodes, edges int)

	// OnLayoutComplete fires once per layout request. cached reports
	// whether the layout came from the cache.
	OnLayoutComplete(ctx context.Context, nodes int, duration time.Duration, cached bool, err error)

	// OnRenderComplete fires after an artifact is rendered or served from cache.
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)

	// OnCacheError records a backend failure. The pipeline degrades to
	// recomputing, so these are not surfaced to callers.
	OnCacheError(ctx context.Context, keyType, op string, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records a served request. route is the matched route
	// pattern, not the raw path, to keep label cardinality bounded.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, int, int)                           {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, int, time.Duration, bool, error) {}
func (NoopLayoutHooks) OnRenderComplete(context.Context, string, time.Duration, error)    {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)                  {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)                 {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)             {}
func (NoopCacheHooks) OnCacheError(context.Context, string, string, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks. Nil is ignored.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
