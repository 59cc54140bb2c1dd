package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gravitymap/pkg/cache"
	"github.com/matzehuels/gravitymap/pkg/core/gravity"
	"github.com/matzehuels/gravitymap/pkg/errors"
	"github.com/matzehuels/gravitymap/pkg/graph"
	"github.com/matzehuels/gravitymap/pkg/observability"
	"github.com/matzehuels/gravitymap/pkg/render/nodelink"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates layout execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, logs are discarded.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// ComputeLayout validates g and opts, then returns the layout from the
// cache or computes and caches it. The boolean reports a cache hit.
//
// Cache failures are logged and reported to hooks but never fail the call.
// The engine itself is not cancellable; ctx is checked before computing.
func (r *Runner) ComputeLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, bool, error) {
	logger := r.logger(opts)
	hooks := observability.Layout()
	start := time.Now()

	layout, hit, err := r.computeLayout(ctx, g, opts, logger)
	hooks.OnLayoutComplete(ctx, len(layout.Positions), time.Since(start), hit, err)
	if err != nil {
		logger.Debug("layout failed", "center", g.Center, "error", err)
		return graph.Layout{}, false, err
	}

	logger.Info("computed layout",
		"nodes", layout.Stats.Nodes,
		"edges", layout.Stats.Edges,
		"duration", time.Since(start),
		"cached", hit)
	return layout, hit, nil
}

func (r *Runner) computeLayout(ctx context.Context, g graph.Graph, opts Options, logger *log.Logger) (graph.Layout, bool, error) {
	if err := ctx.Err(); err != nil {
		return graph.Layout{}, false, errors.Wrap(errors.ErrCodeTimeout, err, "layout canceled")
	}
	if err := opts.Validate(); err != nil {
		return graph.Layout{}, false, err
	}
	if err := g.Validate(); err != nil {
		return graph.Layout{}, false, err
	}

	nodes := g.NodeIDs()
	if opts.MaxNodes > 0 && len(nodes) > opts.MaxNodes {
		return graph.Layout{}, false, errors.New(errors.ErrCodeTooLarge,
			"graph has %d nodes, limit is %d", len(nodes), opts.MaxNodes)
	}
	observability.Layout().OnLayoutStart(ctx, len(nodes), len(g.Edges))

	// Key on the resolved node set so explicit and inferred node lists share entries.
	keyed := graph.Graph{Center: g.Center, Nodes: nodes, Edges: g.Edges}
	graphData, err := graph.MarshalGraph(keyed)
	if err != nil {
		return graph.Layout{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(graphData), opts.LayoutKeyOpts())

	if !opts.NoCache {
		if cached, ok := r.lookupLayout(ctx, cacheKey, logger); ok {
			return cached, true, nil
		}
	}

	edges := make([]gravity.Edge[string], len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = gravity.Edge[string]{From: e.From, To: e.To, Weight: e.Weight}
	}

	computeStart := time.Now()
	positions, err := gravity.Compute(nodes, edges, g.Center, opts.EngineConfig())
	if err != nil {
		return graph.Layout{}, false, err
	}
	elapsed := time.Since(computeStart)

	layout := graph.Layout{
		Center:    g.Center,
		Positions: make(map[string]graph.Point, len(positions)),
		Edges:     g.Edges,
		Config:    opts.Config(),
		Stats: graph.LayoutStats{
			Nodes:      len(positions),
			Edges:      len(g.Edges),
			DurationMS: float64(elapsed.Microseconds()) / 1000,
		},
	}
	for id, p := range positions {
		layout.Positions[id] = graph.Point{p.X, p.Y}
	}

	if !opts.NoCache {
		if data, err := graph.MarshalLayout(layout); err == nil {
			r.store(ctx, keyTypeLayout, cacheKey, data, cache.TTLLayout, logger)
		}
	}
	return layout, false, nil
}

func (r *Runner) lookupLayout(ctx context.Context, key string, logger *log.Logger) (graph.Layout, bool) {
	data, hit := r.lookup(ctx, keyTypeLayout, key, logger)
	if !hit {
		return graph.Layout{}, false
	}
	cached, err := graph.UnmarshalLayout(data)
	if err != nil {
		logger.Warn("discarding unreadable cached layout", "error", err)
		_ = r.Cache.Delete(ctx, key)
		return graph.Layout{}, false
	}
	return cached, true
}

// Render produces an artifact for a layout, consulting the artifact cache.
// The boolean reports a cache hit.
func (r *Runner) Render(ctx context.Context, layout graph.Layout, opts RenderOptions) ([]byte, bool, error) {
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, false, err
	}
	logger := r.Logger
	start := time.Now()

	layoutData, err := graph.MarshalLayout(layout)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	cacheKey := r.Keyer.ArtifactKey(cache.Hash(layoutData), opts.ArtifactKeyOpts())

	if !opts.NoCache {
		if data, hit := r.lookup(ctx, keyTypeArtifact, cacheKey, logger); hit {
			observability.Layout().OnRenderComplete(ctx, opts.Format, time.Since(start), nil)
			return data, true, nil
		}
	}

	dot := nodelink.ToDOT(layout, nodelink.Options{Scale: opts.Scale, ShowWeights: opts.ShowWeights})
	var out []byte
	switch opts.Format {
	case FormatDOT:
		out = []byte(dot)
	case FormatSVG:
		out, err = nodelink.RenderSVG(ctx, dot)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
	}
	observability.Layout().OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if !opts.NoCache {
		r.store(ctx, keyTypeArtifact, cacheKey, out, cache.TTLArtifact, logger)
	}
	logger.Debug("rendered artifact", "format", opts.Format, "bytes", len(out), "duration", time.Since(start))
	return out, false, nil
}

func (r *Runner) lookup(ctx context.Context, keyType, key string, logger *log.Logger) ([]byte, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, keyType, "get", err)
		logger.Warn("cache read failed", "type", keyType, "error", err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration, logger *log.Logger) {
	hooks := observability.Cache()
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		hooks.OnCacheError(ctx, keyType, "set", err)
		logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	hooks.OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
