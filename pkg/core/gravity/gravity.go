package gravity

import (
	stderrors "errors"
)

// ErrInvalidInput is the cause of every error returned by [Compute].
// Use errors.Is(err, gravity.ErrInvalidInput) to match it, or
// errors.Is(err, errors.ErrCodeInvalidInput) from pkg/errors.
var ErrInvalidInput = stderrors.New("invalid input")

// Edge is an undirected weighted relation between two nodes. Larger weights
// mean a stronger (closer) relationship. Negative weights are treated as 0.
type Edge[K comparable] struct {
	From   K
	To     K
	Weight float64
}

// Position is a 2D coordinate.
type Position struct {
	X float64
	Y float64
}

// Compute lays out nodes around center and returns one position per distinct
// node. The center is always at exactly (0, 0) and every coordinate is finite.
//
// Edges that reference a node not present in nodes are ignored, as are
// repeated node IDs after their first occurrence. When no usable edges
// remain, the non-center nodes are placed evenly on the unit circle.
//
// An empty node collection yields an empty, non-nil map and a nil error even
// though center is then absent from it; only cfg is checked. Otherwise
// Compute returns an error wrapping [ErrInvalidInput] if center is not one of
// nodes or cfg fails [Config.Validate]; no work is done in that case.
func Compute[K comparable](nodes []K, edges []Edge[K], center K, cfg Config) (map[K]Position, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return map[K]Position{}, nil
	}
	a, ok := newArena(nodes, center)
	if !ok {
		return nil, invalidInput("center %v is not in the node set", center)
	}

	links := a.resolve(edges)
	if len(links) == 0 {
		return a.export(placeOnUnitCircle(a.size(), a.center)), nil
	}

	adj := buildAdjacency(a.size(), links)
	dist := shortestPaths(adj, a.center)
	radii := radiiFromDistances(dist, cfg.MaxRadius)
	pos := placeRadially(radii, a.center)
	refine(pos, adj.springs, a.center, cfg)

	return a.export(pos), nil
}

// =============================================================================
// Arena - dense index remapping
// =============================================================================

// arena maps caller IDs to dense indices in input order.
type arena[K comparable] struct {
	keys   []K
	index  map[K]int
	center int
}

func newArena[K comparable](nodes []K, center K) (*arena[K], bool) {
	a := &arena[K]{
		keys:  make([]K, 0, len(nodes)),
		index: make(map[K]int, len(nodes)),
	}
	for _, n := range nodes {
		if _, seen := a.index[n]; seen {
			continue
		}
		a.index[n] = len(a.keys)
		a.keys = append(a.keys, n)
	}
	c, ok := a.index[center]
	a.center = c
	return a, ok
}

func (a *arena[K]) size() int { return len(a.keys) }

// resolve translates edges to index form, dropping edges with unknown endpoints.
func (a *arena[K]) resolve(edges []Edge[K]) []link {
	links := make([]link, 0, len(edges))
	for _, e := range edges {
		u, ok := a.index[e.From]
		if !ok {
			continue
		}
		v, ok := a.index[e.To]
		if !ok {
			continue
		}
		links = append(links, link{u: u, v: v, weight: e.Weight})
	}
	return links
}

func (a *arena[K]) export(pos []Position) map[K]Position {
	out := make(map[K]Position, len(a.keys))
	for i, k := range a.keys {
		out[k] = pos[i]
	}
	return out
}

// link is an edge in index form with its raw weight.
type link struct {
	u, v   int
	weight float64
}
