package graph

import "math"

// Match is one entry of a match list: a candidate and an optional score.
type Match struct {
	ID    string   `json:"id"`
	Score *float64 `json:"matchScore,omitempty"`
}

// ScoreOrDefault returns the match score, or DefaultMatchScore when unset.
func (m Match) ScoreOrDefault() float64 {
	if m.Score == nil {
		return DefaultMatchScore
	}
	return *m.Score
}

// FromMatches builds the star graph for a match list: the center linked to
// every match, weighted by its score floored at MinMatchWeight. A match
// listed twice appears once in Nodes but keeps both edges.
func FromMatches(center string, matches []Match) Graph {
	g := Graph{
		Center: center,
		Nodes:  make([]string, 0, len(matches)+1),
		Edges:  make([]Edge, 0, len(matches)),
	}
	g.Nodes = append(g.Nodes, center)
	seen := map[string]bool{center: true}
	for _, m := range matches {
		if !seen[m.ID] {
			seen[m.ID] = true
			g.Nodes = append(g.Nodes, m.ID)
		}
		g.Edges = append(g.Edges, Edge{
			From:   center,
			To:     m.ID,
			Weight: math.Max(MinMatchWeight, m.ScoreOrDefault()),
		})
	}
	return g
}
