package gravity

import (
	stderrors "errors"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/gravitymap/pkg/errors"
)

func radius(p Position) float64 { return math.Hypot(p.X, p.Y) }

func seedOnly() Config {
	cfg := DefaultConfig()
	cfg.Iterations = 0
	return cfg
}

func assertInvariants[K comparable](t *testing.T, nodes []K, center K, got map[K]Position) {
	t.Helper()
	if got[center] != (Position{}) {
		t.Errorf("center = %+v, want exactly (0, 0)", got[center])
	}
	want := make(map[K]bool, len(nodes))
	for _, n := range nodes {
		want[n] = true
	}
	if len(got) != len(want) {
		t.Errorf("len(positions) = %d, want %d", len(got), len(want))
	}
	for k, p := range got {
		if !want[k] {
			t.Errorf("unexpected node %v in output", k)
		}
		if !finite(p.X) || !finite(p.Y) {
			t.Errorf("position of %v = %+v, want finite", k, p)
		}
	}
}

func TestComputeMissingCenter(t *testing.T) {
	_, err := Compute([]string{"a", "b"}, []Edge[string]{{From: "a", To: "b", Weight: 1}}, "center", DefaultConfig())
	if err == nil {
		t.Fatal("Compute should fail when center is not a node")
	}
	if !stderrors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(err, ErrInvalidInput) = false for %v", err)
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestComputeInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative iterations", func(c *Config) { c.Iterations = -1 }},
		{"NaN k_attract", func(c *Config) { c.KAttract = math.NaN() }},
		{"infinite k_repulse", func(c *Config) { c.KRepulse = math.Inf(1) }},
		{"infinite step", func(c *Config) { c.StepSize = math.Inf(-1) }},
		{"negative max radius", func(c *Config) { *c = c.WithMaxRadius(-2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := Compute([]string{"c"}, nil, "c", cfg)
			if !stderrors.Is(err, ErrInvalidInput) {
				t.Errorf("Compute error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestComputeEmptyNodes(t *testing.T) {
	// No nodes means nothing to place, so the absent center is not an error.
	for _, nodes := range [][]string{nil, {}} {
		got, err := Compute(nodes, nil, "center", DefaultConfig())
		if err != nil {
			t.Fatalf("Compute(%v) error: %v", nodes, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Compute(%v) = %v, want empty map", nodes, got)
		}
	}

	// A bad config is still reported.
	if _, err := Compute([]string{}, nil, "center", DefaultConfig().WithMaxRadius(-1)); !stderrors.Is(err, ErrInvalidInput) {
		t.Errorf("Compute with negative max radius error = %v, want ErrInvalidInput", err)
	}
}

func TestComputeCenterOnly(t *testing.T) {
	got, err := Compute([]string{"center"}, nil, "center", DefaultConfig())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	want := map[string]Position{"center": {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("positions = %v, want %v", got, want)
	}
}

func TestComputeNoEdgesUnitCircle(t *testing.T) {
	nodes := []string{"a", "center", "b", "c", "d", "e"}
	got, err := Compute(nodes, nil, "center", DefaultConfig())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	assertInvariants(t, nodes, "center", got)

	others := []string{"a", "b", "c", "d", "e"}
	for i, id := range others {
		p := got[id]
		if r := radius(p); !near(r, 1) {
			t.Errorf("radius(%s) = %v, want 1", id, r)
		}
		want := 2 * math.Pi * float64(i) / float64(len(others))
		if !near(p.X, math.Cos(want)) || !near(p.Y, math.Sin(want)) {
			t.Errorf("%s = %+v, want angle %v", id, p, want)
		}
	}
}

func TestComputeEdgesToUnknownNodesAreDegenerate(t *testing.T) {
	nodes := []string{"center", "a", "b"}
	edges := []Edge[string]{{From: "center", To: "ghost", Weight: 3}}

	got, err := Compute(nodes, edges, "center", DefaultConfig())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	assertInvariants(t, nodes, "center", got)
	if !near(got["a"].X, 1) || !near(got["a"].Y, 0) {
		t.Errorf("a = %+v, want (1, 0)", got["a"])
	}
}

func TestComputeSeededRadiiOrdering(t *testing.T) {
	nodes := []string{"center", "a", "b", "c"}
	edges := []Edge[string]{
		{From: "center", To: "a", Weight: 10},
		{From: "center", To: "b", Weight: 1},
		{From: "center", To: "c", Weight: 5},
	}

	got, err := Compute(nodes, edges, "center", seedOnly())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	assertInvariants(t, nodes, "center", got)

	ra, rb, rc := radius(got["a"]), radius(got["b"]), radius(got["c"])
	if !(ra < rc && rc < rb) {
		t.Errorf("radii a=%v c=%v b=%v, want a < c < b", ra, rc, rb)
	}
	if !near(rb, 1) {
		t.Errorf("farthest radius = %v, want 1", rb)
	}
}

func TestComputeStrongerEdgeSeedsCloser(t *testing.T) {
	tests := []struct {
		name   string
		w1, w2 float64
	}{
		{"wide gap", 100, 1},
		{"narrow gap", 2.0001, 2},
		{"zero weak edge", 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(
				[]string{"center", "strong", "weak"},
				[]Edge[string]{
					{From: "center", To: "strong", Weight: tt.w1},
					{From: "center", To: "weak", Weight: tt.w2},
				},
				"center", seedOnly())
			if err != nil {
				t.Fatalf("Compute error: %v", err)
			}
			if rs, rw := radius(got["strong"]), radius(got["weak"]); rs >= rw {
				t.Errorf("radius(strong) = %v, radius(weak) = %v, want strong < weak", rs, rw)
			}
		})
	}
}

func TestComputeMaxRadiusScalesSeeds(t *testing.T) {
	nodes := []string{"center", "a", "b", "c"}
	edges := []Edge[string]{
		{From: "center", To: "a", Weight: 10},
		{From: "center", To: "b", Weight: 1},
		{From: "center", To: "c", Weight: 5},
	}

	unit, err := Compute(nodes, edges, "center", seedOnly())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	scaled, err := Compute(nodes, edges, "center", seedOnly().WithMaxRadius(4))
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	if r := radius(scaled["b"]); !near(r, 4) {
		t.Errorf("farthest radius = %v, want 4", r)
	}
	for _, id := range []string{"a", "b", "c"} {
		if got, want := radius(scaled[id]), 4*radius(unit[id]); !near(got, want) {
			t.Errorf("radius(%s) = %v, want %v", id, got, want)
		}
	}
}

func TestComputeDisconnectedNodesPushedOut(t *testing.T) {
	nodes := []string{"center", "a", "b", "island"}
	edges := []Edge[string]{
		{From: "center", To: "a", Weight: 1},
		{From: "a", To: "b", Weight: 2},
	}

	got, err := Compute(nodes, edges, "center", seedOnly())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if r := radius(got["island"]); !near(r, 1.5) {
		t.Errorf("radius(island) = %v, want 1.5", r)
	}

	got, err = Compute(nodes, edges, "center", seedOnly().WithMaxRadius(2))
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if r := radius(got["island"]); !near(r, 3) {
		t.Errorf("radius(island) with max_radius 2 = %v, want 3", r)
	}
}

func TestComputeZeroMaxRadius(t *testing.T) {
	nodes := []string{"center", "a", "b", "island"}
	edges := []Edge[string]{
		{From: "center", To: "a", Weight: 1},
		{From: "a", To: "b", Weight: 2},
	}

	got, err := Compute(nodes, edges, "center", seedOnly().WithMaxRadius(0))
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	for _, id := range []string{"a", "b"} {
		if got[id] != (Position{}) {
			t.Errorf("%s = %v, want origin", id, got[id])
		}
	}
	// Unreachable nodes fall back to the unit ring.
	if r := radius(got["island"]); !near(r, 1.5) {
		t.Errorf("radius(island) = %v, want 1.5", r)
	}

	refined, err := Compute(nodes, edges, "center", DefaultConfig().WithMaxRadius(0))
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	for id, p := range refined {
		if !finite(p.X) || !finite(p.Y) {
			t.Errorf("%s = %v, want finite", id, p)
		}
	}
	if refined["center"] != (Position{}) {
		t.Errorf("center = %v, want origin", refined["center"])
	}
}

func TestComputeRefinedInvariants(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges []Edge[string]
	}{
		{
			name:  "star",
			nodes: []string{"center", "a", "b", "c", "d"},
			edges: []Edge[string]{
				{From: "center", To: "a", Weight: 5},
				{From: "center", To: "b", Weight: 3},
				{From: "center", To: "c", Weight: 1},
				{From: "center", To: "d", Weight: 0.2},
			},
		},
		{
			name:  "all zero weights",
			nodes: []string{"center", "a", "b"},
			edges: []Edge[string]{
				{From: "center", To: "a", Weight: 0},
				{From: "a", To: "b", Weight: 0},
			},
		},
		{
			name:  "all equal weights",
			nodes: []string{"center", "a", "b", "c"},
			edges: []Edge[string]{
				{From: "center", To: "a", Weight: 2},
				{From: "center", To: "b", Weight: 2},
				{From: "b", To: "c", Weight: 2},
			},
		},
		{
			name:  "self loop and negative weight",
			nodes: []string{"center", "a", "b"},
			edges: []Edge[string]{
				{From: "a", To: "a", Weight: 4},
				{From: "center", To: "a", Weight: -3},
				{From: "center", To: "b", Weight: 1},
			},
		},
		{
			name:  "disconnected component",
			nodes: []string{"center", "a", "x", "y"},
			edges: []Edge[string]{
				{From: "center", To: "a", Weight: 1},
				{From: "x", To: "y", Weight: 9},
			},
		},
		{
			name:  "duplicate node ids",
			nodes: []string{"center", "a", "a", "b"},
			edges: []Edge[string]{
				{From: "center", To: "a", Weight: 1},
				{From: "center", To: "b", Weight: 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.nodes, tt.edges, "center", DefaultConfig())
			if err != nil {
				t.Fatalf("Compute error: %v", err)
			}
			assertInvariants(t, tt.nodes, "center", got)
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	nodes := []int{0, 1, 2, 3, 4, 5, 6}
	edges := []Edge[int]{
		{From: 0, To: 1, Weight: 5},
		{From: 0, To: 2, Weight: 3},
		{From: 1, To: 3, Weight: 4},
		{From: 2, To: 4, Weight: 2},
		{From: 3, To: 4, Weight: 1.5},
		{From: 5, To: 6, Weight: 1},
	}
	cfg := DefaultConfig().WithMaxRadius(1.5)

	first, err := Compute(nodes, edges, 0, cfg)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := Compute(nodes, edges, 0, cfg)
		if err != nil {
			t.Fatalf("Compute error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs from first run", i+1)
		}
	}
}

func TestComputeCompositeKeys(t *testing.T) {
	type userKey struct {
		tenant string
		id     int
	}
	center := userKey{"acme", 1}
	nodes := []userKey{center, {"acme", 2}, {"globex", 2}}
	edges := []Edge[userKey]{
		{From: center, To: userKey{"acme", 2}, Weight: 80},
		{From: center, To: userKey{"globex", 2}, Weight: 20},
	}

	got, err := Compute(nodes, edges, center, DefaultConfig())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	assertInvariants(t, nodes, center, got)
}

func TestComputeRefinementPullsStrongCloser(t *testing.T) {
	nodes := []string{"center", "strong", "weak"}
	edges := []Edge[string]{
		{From: "center", To: "strong", Weight: 90},
		{From: "center", To: "weak", Weight: 10},
	}
	got, err := Compute(nodes, edges, "center", DefaultConfig())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if rs, rw := radius(got["strong"]), radius(got["weak"]); rs >= rw {
		t.Errorf("after refinement radius(strong) = %v, radius(weak) = %v, want strong < weak", rs, rw)
	}
}

func TestConfigValidateDefaults(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
	if err := DefaultConfig().WithMaxRadius(1.5).Validate(); err != nil {
		t.Errorf("Validate() with max radius = %v, want nil", err)
	}
}

func BenchmarkCompute100(b *testing.B) {
	nodes := make([]int, 100)
	edges := make([]Edge[int], 0, 99)
	for i := range nodes {
		nodes[i] = i
		if i > 0 {
			edges = append(edges, Edge[int]{From: 0, To: i, Weight: float64(i % 17)})
		}
	}
	cfg := DefaultConfig()
	cfg.Iterations = 100

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compute(nodes, edges, 0, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
