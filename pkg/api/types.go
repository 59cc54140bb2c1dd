package api

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/gravitymap/pkg/buildinfo"
	"github.com/matzehuels/gravitymap/pkg/errors"
	"github.com/matzehuels/gravitymap/pkg/graph"
)

// flexID accepts a JSON string or number and stores it as a string.
// Existing clients send numeric user IDs.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number")
	}
	*f = flexID(n.String())
	return nil
}

// matchLayoutRequest is the body of POST /api/map-layout.
type matchLayoutRequest struct {
	CenterID flexID       `json:"center_id" validate:"required"`
	Matches  []matchEntry `json:"matches" validate:"required,dive"`
}

type matchEntry struct {
	ID         flexID   `json:"id" validate:"required"`
	MatchScore *float64 `json:"matchScore" validate:"omitempty,finite"`
}

func (r matchLayoutRequest) matches() []graph.Match {
	out := make([]graph.Match, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = graph.Match{ID: string(m.ID), Score: m.MatchScore}
	}
	return out
}

// matchLayoutResponse mirrors the response existing clients parse.
type matchLayoutResponse struct {
	Positions map[string]graph.Point `json:"positions"`
	Edges     []edgeTriple           `json:"edges"`
}

// edgeTriple encodes as [from, to, weight].
type edgeTriple struct {
	From, To string
	Weight   float64
}

func (e edgeTriple) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.From, e.To, e.Weight})
}

// layoutRequest is the body of POST /api/layout.
type layoutRequest struct {
	graph.Graph
	Config  graph.LayoutConfig `json:"config"`
	NoCache bool               `json:"no_cache"`
}

type healthResponse struct {
	OK    bool           `json:"ok"`
	Build buildinfo.Info `json:"build"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}
