// Package graph provides serialization types for compatibility graphs and layouts.
//
// This package defines the canonical wire format for gravitymap's data, used
// for JSON and YAML input files, API requests and responses, and cached
// layouts.
//
// # Core Types
//
//   - [Graph]: a center node, its node set, and weighted undirected edges
//   - [Layout]: computed positions keyed by node ID, plus the resolved config
//   - [Point]: an (x, y) pair that marshals as a two-element array
//   - [LayoutConfig]: optional engine overrides (nil fields use defaults)
//
// # Graph Serialization
//
// Graphs use a small node-link format. JSON and YAML are both accepted:
//
//	{
//	  "center": "me",
//	  "nodes": ["me", "alice", "bob"],
//	  "edges": [
//	    {"from": "me", "to": "alice", "weight": 10},
//	    {"from": "me", "to": "bob", "weight": 1}
//	  ]
//	}
//
// When "nodes" is omitted the node set is inferred from the center and the
// edge endpoints, in order of first appearance (see [Graph.NodeIDs]).
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("friends.yaml") // File → Graph
//	data, _ := graph.MarshalGraph(g)             // Graph → []byte
//	err := g.Validate()                           // structural checks
//
// # Layout Serialization
//
// Positions serialize the same way the original map endpoint returned them:
//
//	{"center": "me", "positions": {"alice": [0.33, 0], "me": [0, 0]}}
//
// Map keys are emitted in sorted order, so identical layouts produce
// identical bytes. This matters for caching and diffing.
//
// # Concurrency
//
// All functions are safe for concurrent use. Graph and Layout values are
// plain data and are not synchronized.
package graph
