package gravity

import (
	"math"

	"github.com/matzehuels/gravitymap/pkg/errors"
)

// Default configuration values.
const (
	DefaultIterations = 500
	DefaultKAttract   = 1.0
	DefaultKRepulse   = 0.1
	DefaultKCenter    = 0.01
	DefaultStepSize   = 0.01
)

// epsilon guards divisions and distance computations against zero.
const epsilon = 1e-9

// Config controls the force-directed refinement and the radial seeding.
type Config struct {
	// Iterations is the number of simulation steps. Zero returns the seeded
	// placement unchanged.
	Iterations int

	// KAttract scales the spring force along edges.
	KAttract float64

	// KRepulse scales the inverse-square repulsion between every node pair.
	KRepulse float64

	// KCenter scales the linear pull of every non-center node toward the center.
	KCenter float64

	// StepSize is the initial integration step; it decays linearly to zero.
	StepSize float64

	// MaxRadius, when set, scales seeded radii so that the farthest reachable
	// node starts at MaxRadius. When nil, distances are scaled to unit range.
	// Zero seeds every reachable node at the origin.
	MaxRadius *float64
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() Config {
	return Config{
		Iterations: DefaultIterations,
		KAttract:   DefaultKAttract,
		KRepulse:   DefaultKRepulse,
		KCenter:    DefaultKCenter,
		StepSize:   DefaultStepSize,
	}
}

// WithMaxRadius returns a copy of c with MaxRadius set to r.
func (c Config) WithMaxRadius(r float64) Config {
	c.MaxRadius = &r
	return c
}

// Validate reports whether c can produce a finite layout.
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return invalidInput("iterations must be >= 0, got %d", c.Iterations)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"k_attract", c.KAttract},
		{"k_repulse", c.KRepulse},
		{"k_center", c.KCenter},
		{"step_size", c.StepSize},
	} {
		if !finite(f.v) {
			return invalidInput("%s must be finite, got %v", f.name, f.v)
		}
	}
	if c.MaxRadius != nil {
		if r := *c.MaxRadius; !finite(r) || r < 0 {
			return invalidInput("max_radius must be finite and >= 0, got %v", r)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func invalidInput(format string, args ...any) error {
	err := errors.New(errors.ErrCodeInvalidInput, format, args...)
	err.Cause = ErrInvalidInput
	return err
}
