package graph

import "math"

// =============================================================================
// Constants
// =============================================================================

// Graph file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultMatchScore is the score assumed for a match that carries none.
const DefaultMatchScore = 50.0

// MinMatchWeight is the smallest edge weight FromMatches produces.
const MinMatchWeight = 0.1

// =============================================================================
// Graph - Compatibility Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for compatibility graphs.
// Edges are undirected; Weight is the relationship strength (higher = closer).
type Graph struct {
	Center string   `json:"center" yaml:"center" bson:"center"`
	Nodes  []string `json:"nodes,omitempty" yaml:"nodes,omitempty" bson:"nodes,omitempty"`
	Edges  []Edge   `json:"edges" yaml:"edges" bson:"edges"`
}

// Edge is a weighted undirected connection between two nodes.
type Edge struct {
	From   string  `json:"from" yaml:"from" bson:"from"`
	To     string  `json:"to" yaml:"to" bson:"to"`
	Weight float64 `json:"weight" yaml:"weight" bson:"weight"`
}

// NodeIDs returns the node set of the graph.
//
// If Nodes is set it is returned as-is. Otherwise the set is inferred from
// the center followed by edge endpoints in order of first appearance.
func (g Graph) NodeIDs() []string {
	if len(g.Nodes) > 0 {
		return g.Nodes
	}
	seen := make(map[string]bool, len(g.Edges)+1)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	add(g.Center)
	for _, e := range g.Edges {
		add(e.From)
		add(e.To)
	}
	return ids
}

// =============================================================================
// Layout - Computed Positions
// =============================================================================

// Point is a 2D coordinate. It marshals as a two-element array [x, y].
type Point [2]float64

// X returns the horizontal coordinate.
func (p Point) X() float64 { return p[0] }

// Y returns the vertical coordinate.
func (p Point) Y() float64 { return p[1] }

// Radius returns the distance from the origin.
func (p Point) Radius() float64 { return math.Hypot(p[0], p[1]) }

// Layout is the serialization format for a computed gravity layout.
type Layout struct {
	Center    string           `json:"center" bson:"center"`
	Positions map[string]Point `json:"positions" bson:"positions"`
	Edges     []Edge           `json:"edges,omitempty" bson:"edges,omitempty"`
	Config    LayoutConfig     `json:"config" bson:"config"`
	Stats     LayoutStats      `json:"stats" bson:"stats"`
}

// LayoutStats describes how a layout was produced.
type LayoutStats struct {
	Nodes      int     `json:"nodes" bson:"nodes"`
	Edges      int     `json:"edges" bson:"edges"`
	DurationMS float64 `json:"duration_ms" bson:"duration_ms"`
}

// LayoutConfig carries optional engine parameters. Nil fields mean "use the
// default". The same struct is used in API requests, config files, and the
// resolved config stored alongside a layout.
type LayoutConfig struct {
	Iterations *int     `json:"iterations,omitempty" yaml:"iterations,omitempty" toml:"iterations,omitempty" bson:"iterations,omitempty"`
	KAttract   *float64 `json:"k_attract,omitempty" yaml:"k_attract,omitempty" toml:"k_attract,omitempty" bson:"k_attract,omitempty"`
	KRepulse   *float64 `json:"k_repulse,omitempty" yaml:"k_repulse,omitempty" toml:"k_repulse,omitempty" bson:"k_repulse,omitempty"`
	KCenter    *float64 `json:"k_center,omitempty" yaml:"k_center,omitempty" toml:"k_center,omitempty" bson:"k_center,omitempty"`
	StepSize   *float64 `json:"step_size,omitempty" yaml:"step_size,omitempty" toml:"step_size,omitempty" bson:"step_size,omitempty"`
	MaxRadius  *float64 `json:"max_radius,omitempty" yaml:"max_radius,omitempty" toml:"max_radius,omitempty" bson:"max_radius,omitempty"`
}

// Merge returns c with every nil field filled from base.
func (c LayoutConfig) Merge(base LayoutConfig) LayoutConfig {
	if c.Iterations == nil {
		c.Iterations = base.Iterations
	}
	if c.KAttract == nil {
		c.KAttract = base.KAttract
	}
	if c.KRepulse == nil {
		c.KRepulse = base.KRepulse
	}
	if c.KCenter == nil {
		c.KCenter = base.KCenter
	}
	if c.StepSize == nil {
		c.StepSize = base.StepSize
	}
	if c.MaxRadius == nil {
		c.MaxRadius = base.MaxRadius
	}
	return c
}
