// Package pkg provides the core libraries for gravitymap.
//
// # Overview
//
// Gravitymap places the nodes of a weighted graph on a plane around one
// pinned center node. Edge weight reads as closeness: strong ties end up near
// the center and near each other, weak ties drift outward. The typical
// input is a person and their scored matches; the output is one (x, y)
// position per node, ready to draw.
//
// # Architecture
//
//	graph.json / match list / HTTP request
//	         ↓
//	    [graph] (wire types, validation)
//	         ↓
//	    [pipeline] (options, cache lookup, hooks, logging)
//	         ↓
//	    [core/gravity] (shortest-path seed + force refinement)
//	         ↓
//	    [graph.Layout] → [render/nodelink] (DOT, SVG)
//
// # Quick Start
//
//	g := graph.FromMatches("me", []graph.Match{{ID: "alice"}, {ID: "bob"}})
//	runner := pipeline.NewRunner(nil, nil, nil)
//	layout, _, err := runner.ComputeLayout(ctx, g, pipeline.MatchOptions())
//
// Or call the engine directly with any comparable key type:
//
//	pos, err := gravity.Compute(nodes, edges, center, gravity.DefaultConfig())
//
// # Main Packages
//
// [core/gravity] - The layout engine. Pure and deterministic: identical
// inputs give identical outputs.
//
// [graph] - Graph and layout serialization (JSON, YAML).
//
// [pipeline] - Shared execution path for the CLI and the HTTP API.
//
// [cache] - Layout and artifact cache backends: file, Redis, MongoDB, with
// optional snappy compression.
//
// [api] - HTTP service built on chi.
//
// [render/nodelink] - Pinned-position Graphviz rendering.
//
// [metrics] - Prometheus metrics fed by [observability] hooks.
//
// [errors] - Coded errors shared by every layer.
//
// [core/gravity]: https://pkg.go.dev/github.com/matzehuels/gravitymap/pkg/core/gravity
// [graph]: https://pkg.go.dev/github.com/matzehuels/gravitymap/pkg/graph
// [graph.Layout]: https://pkg.go.dev/github.com/matzehuels/gravitymap/pkg/graph#Layout
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gravitymap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gravitymap/pkg/cache
// [api]: https://pkg.go.dev/github.com/matzehuels/gravitymap/pkg/api
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/gravitymap/pkg/render/nodelink
// [metrics]: https://pkg.go.dev/github.com/matzehuels/gravitymap/pkg/metrics
// [observability]: https://pkg.go.dev/github.com/matzehuels/gravitymap/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/gravitymap/pkg/errors
package pkg
