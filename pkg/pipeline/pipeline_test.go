package pipeline

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/gravitymap/pkg/core/gravity"
	"github.com/matzehuels/gravitymap/pkg/errors"
	"github.com/matzehuels/gravitymap/pkg/graph"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	c := gravity.DefaultConfig()

	if o.Iterations != c.Iterations || o.KAttract != c.KAttract || o.KRepulse != c.KRepulse ||
		o.KCenter != c.KCenter || o.StepSize != c.StepSize {
		t.Errorf("DefaultOptions() = %+v, want engine defaults %+v", o, c)
	}
	if o.MaxRadius != nil {
		t.Errorf("MaxRadius = %v, want nil", *o.MaxRadius)
	}
	if o.MaxNodes != DefaultMaxNodes {
		t.Errorf("MaxNodes = %d, want %d", o.MaxNodes, DefaultMaxNodes)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMatchOptions(t *testing.T) {
	o := MatchOptions()
	if o.Iterations != 300 {
		t.Errorf("Iterations = %d, want 300", o.Iterations)
	}
	if o.KRepulse != 0.08 {
		t.Errorf("KRepulse = %v, want 0.08", o.KRepulse)
	}
	if o.MaxRadius == nil || *o.MaxRadius != 1.5 {
		t.Errorf("MaxRadius = %v, want 1.5", o.MaxRadius)
	}
}

func TestOptionsValidate(t *testing.T) {
	neg, zero, inf := -1.0, 0.0, math.Inf(1)

	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{"Valid", func(o *Options) {}, ""},
		{"ZeroIterations", func(o *Options) { o.Iterations = 0 }, ""},
		{"NegativeIterations", func(o *Options) { o.Iterations = -1 }, "iterations"},
		{"TooManyIterations", func(o *Options) { o.Iterations = MaxIterations + 1 }, "iterations"},
		{"NaNAttract", func(o *Options) { o.KAttract = math.NaN() }, "k_attract"},
		{"InfRepulse", func(o *Options) { o.KRepulse = math.Inf(-1) }, "k_repulse"},
		{"NaNStep", func(o *Options) { o.StepSize = math.NaN() }, "step_size"},
		{"NegativeMaxRadius", func(o *Options) { o.MaxRadius = &neg }, "max_radius"},
		{"ZeroMaxRadius", func(o *Options) { o.MaxRadius = &zero }, ""},
		{"InfMaxRadius", func(o *Options) { o.MaxRadius = &inf }, "max_radius"},
		{"NegativeMaxNodes", func(o *Options) { o.MaxNodes = -1 }, "max_nodes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error mentioning %q", tt.wantErr)
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsApply(t *testing.T) {
	iters, kr, r := 42, 0.5, 2.0
	o := DefaultOptions().Apply(graph.LayoutConfig{
		Iterations: &iters,
		KRepulse:   &kr,
		MaxRadius:  &r,
	})

	if o.Iterations != 42 || o.KRepulse != 0.5 {
		t.Errorf("Apply() = %+v", o)
	}
	if o.KAttract != gravity.DefaultKAttract {
		t.Errorf("KAttract = %v, want default %v", o.KAttract, gravity.DefaultKAttract)
	}
	if o.MaxRadius == nil || *o.MaxRadius != 2 {
		t.Fatalf("MaxRadius = %v, want 2", o.MaxRadius)
	}

	// The options must not alias the caller's pointer.
	r = 9
	if *o.MaxRadius != 2 {
		t.Errorf("MaxRadius aliases input: %v", *o.MaxRadius)
	}
}

func TestOptionsConversions(t *testing.T) {
	r := 1.5
	o := DefaultOptions()
	o.MaxRadius = &r

	ec := o.EngineConfig()
	if ec.MaxRadius == nil || *ec.MaxRadius != 1.5 || ec.Iterations != o.Iterations {
		t.Errorf("EngineConfig() = %+v", ec)
	}

	lc := o.Config()
	if lc.Iterations == nil || *lc.Iterations != o.Iterations || lc.KCenter == nil || *lc.KCenter != o.KCenter {
		t.Errorf("Config() = %+v", lc)
	}
	if back := DefaultOptions().Apply(lc); back.MaxRadius == nil || *back.MaxRadius != 1.5 {
		t.Errorf("Apply(Config()) lost MaxRadius")
	}

	k1 := o.LayoutKeyOpts()
	o.KCenter = 0.5
	if k2 := o.LayoutKeyOpts(); k1 == k2 {
		t.Error("LayoutKeyOpts should reflect KCenter")
	}
}
