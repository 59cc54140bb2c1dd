package graph

import (
	"github.com/matzehuels/gravitymap/pkg/errors"
)

// Validate performs structural checks on a graph read from external input.
//
// It rejects an empty center, malformed or duplicate node IDs, malformed
// edge endpoints, and non-finite or negative weights. It does not check that
// the center or edge endpoints belong to the node set: the layout engine
// reports a missing center itself and ignores edges to unknown nodes.
func (g Graph) Validate() error {
	if g.Center == "" {
		return errors.New(errors.ErrCodeInvalidGraph, "graph has no center")
	}
	seen := make(map[string]bool, len(g.Nodes))
	for _, id := range g.Nodes {
		if err := errors.ValidateNodeID(id); err != nil {
			return err
		}
		if seen[id] {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node %q", id)
		}
		seen[id] = true
	}
	for i, e := range g.Edges {
		if err := errors.ValidateNodeID(e.From); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %d", i)
		}
		if err := errors.ValidateNodeID(e.To); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %d", i)
		}
		if err := errors.ValidateWeight(e.Weight); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %s-%s", e.From, e.To)
		}
	}
	return nil
}
