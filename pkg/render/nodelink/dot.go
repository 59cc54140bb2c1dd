package nodelink

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/gravitymap/pkg/graph"
)

// DefaultScale is the number of points per layout unit.
const DefaultScale = 100.0

// CenterColor fills the center node.
const CenterColor = "#f6c343"

// Options configures diagram generation.
type Options struct {
	// Scale maps layout units to points. Zero means DefaultScale.
	Scale float64

	// ShowWeights labels each edge with its raw weight.
	ShowWeights bool
}

func (o Options) scale() float64 {
	if o.Scale <= 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return DefaultScale
	}
	return o.Scale
}

// ToDOT converts a layout to Graphviz DOT with pinned node positions.
//
// Nodes are emitted center first, then in sorted order, so the output is
// deterministic. Edges whose endpoints have no position are skipped.
func ToDOT(l graph.Layout, opts Options) string {
	scale := opts.scale()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, margin=\"0.05,0.05\"];\n")
	buf.WriteString("  edge [color=\"#888888\"];\n")
	buf.WriteString("\n")

	for _, id := range nodeOrder(l) {
		p := l.Positions[id]
		attrs := []string{fmt.Sprintf("pos=\"%.2f,%.2f!\"", p.X()*scale, p.Y()*scale)}
		if id == l.Center {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", CenterColor), "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", quoteID(id), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	lo, hi := weightRange(l.Edges)
	for _, e := range l.Edges {
		_, okFrom := l.Positions[e.From]
		_, okTo := l.Positions[e.To]
		if !okFrom || !okTo {
			continue
		}
		attrs := []string{fmt.Sprintf("penwidth=%.2f", penWidth(e.Weight, lo, hi))}
		if opts.ShowWeights {
			attrs = append(attrs, fmt.Sprintf("label=%q", fmt.Sprintf("%g", e.Weight)))
		}
		fmt.Fprintf(&buf, "  %s -- %s [%s];\n", quoteID(e.From), quoteID(e.To), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quoteID renders id as a DOT quoted string. Backslashes and quotes are
// escaped; control characters become spaces.
func quoteID(id string) string {
	id = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, id)
	return `"` + dotEscaper.Replace(id) + `"`
}

func nodeOrder(l graph.Layout) []string {
	ids := make([]string, 0, len(l.Positions))
	for id := range l.Positions {
		if id != l.Center {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	if _, ok := l.Positions[l.Center]; ok {
		ids = append([]string{l.Center}, ids...)
	}
	return ids
}

func weightRange(edges []graph.Edge) (lo, hi float64) {
	if len(edges) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, e := range edges {
		lo = math.Min(lo, e.Weight)
		hi = math.Max(hi, e.Weight)
	}
	return lo, hi
}

// penWidth maps a weight to a stroke width in [1, 4].
func penWidth(w, lo, hi float64) float64 {
	if hi-lo < 1e-9 {
		return 2.5
	}
	return 1 + 3*(w-lo)/(hi-lo)
}
