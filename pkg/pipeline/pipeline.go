// Package pipeline runs gravity layouts with caching, validation, metrics
// hooks, and logging.
//
// The CLI and the HTTP API both go through a [Runner], so a layout requested
// from either entry point is validated, keyed, cached, and logged the same
// way.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.DefaultOptions()
//	layout, cached, err := runner.ComputeLayout(ctx, g, opts)
//
//	svg, err := runner.Render(ctx, layout, pipeline.RenderOptions{Format: pipeline.FormatSVG})
//
// # Options
//
// [Options] holds resolved engine parameters. Start from [DefaultOptions]
// (engine defaults) or [MatchOptions] (the tuning used for match lists), and
// overlay optional values from a request or config file with [Options.Apply].
package pipeline

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/gravitymap/pkg/cache"
	"github.com/matzehuels/gravitymap/pkg/core/gravity"
	"github.com/matzehuels/gravitymap/pkg/errors"
	"github.com/matzehuels/gravitymap/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxNodes caps the node count of a single layout. The engine's
	// repulsion pass is quadratic, so this bounds request latency.
	DefaultMaxNodes = 500

	// MaxIterations caps the iteration count accepted from external input.
	MaxIterations = 100000
)

// Output formats for Render.
const (
	FormatSVG = "svg"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatDOT: true,
}

// ValidateFormat checks that a render format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, dot)", format)
	}
	return nil
}

// =============================================================================
// Options - Layout Configuration
// =============================================================================

// Options contains the resolved configuration for one layout run.
type Options struct {
	Iterations int      `json:"iterations" validate:"gte=0,lte=100000"`
	KAttract   float64  `json:"k_attract" validate:"finite"`
	KRepulse   float64  `json:"k_repulse" validate:"finite"`
	KCenter    float64  `json:"k_center" validate:"finite"`
	StepSize   float64  `json:"step_size" validate:"finite"`
	MaxRadius  *float64 `json:"max_radius,omitempty" validate:"omitempty,finite,gte=0"`

	// MaxNodes rejects larger graphs with TOO_LARGE. Zero disables the check.
	MaxNodes int `json:"max_nodes,omitempty" validate:"gte=0"`

	// NoCache skips both cache lookup and cache write.
	NoCache bool `json:"-"`

	// Logger receives progress logs. Nil uses the Runner's logger.
	Logger *log.Logger `json:"-" validate:"-"`
}

// DefaultOptions returns options matching the engine defaults.
func DefaultOptions() Options {
	c := gravity.DefaultConfig()
	return Options{
		Iterations: c.Iterations,
		KAttract:   c.KAttract,
		KRepulse:   c.KRepulse,
		KCenter:    c.KCenter,
		StepSize:   c.StepSize,
		MaxNodes:   DefaultMaxNodes,
	}
}

// MatchOptions returns the tuning used for match-list layouts: fewer
// iterations, slightly weaker repulsion, and radii bounded at 1.5.
func MatchOptions() Options {
	o := DefaultOptions()
	o.Iterations = 300
	o.KRepulse = 0.08
	r := 1.5
	o.MaxRadius = &r
	return o
}

// Apply returns o with every non-nil field of c applied on top.
func (o Options) Apply(c graph.LayoutConfig) Options {
	if c.Iterations != nil {
		o.Iterations = *c.Iterations
	}
	if c.KAttract != nil {
		o.KAttract = *c.KAttract
	}
	if c.KRepulse != nil {
		o.KRepulse = *c.KRepulse
	}
	if c.KCenter != nil {
		o.KCenter = *c.KCenter
	}
	if c.StepSize != nil {
		o.StepSize = *c.StepSize
	}
	if c.MaxRadius != nil {
		r := *c.MaxRadius
		o.MaxRadius = &r
	}
	return o
}

// Validate checks option ranges. It returns an INVALID_CONFIG error.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid layout options: %v", formatValidationError(err))
	}
	return nil
}

// EngineConfig converts the options to the engine's Config.
func (o Options) EngineConfig() gravity.Config {
	c := gravity.Config{
		Iterations: o.Iterations,
		KAttract:   o.KAttract,
		KRepulse:   o.KRepulse,
		KCenter:    o.KCenter,
		StepSize:   o.StepSize,
	}
	if o.MaxRadius != nil {
		c = c.WithMaxRadius(*o.MaxRadius)
	}
	return c
}

// Config returns the options as a fully populated LayoutConfig, suitable for
// storing alongside a layout.
func (o Options) Config() graph.LayoutConfig {
	iters, ka, kr, kc, step := o.Iterations, o.KAttract, o.KRepulse, o.KCenter, o.StepSize
	c := graph.LayoutConfig{
		Iterations: &iters,
		KAttract:   &ka,
		KRepulse:   &kr,
		KCenter:    &kc,
		StepSize:   &step,
	}
	if o.MaxRadius != nil {
		r := *o.MaxRadius
		c.MaxRadius = &r
	}
	return c
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Iterations: o.Iterations,
		KAttract:   o.KAttract,
		KRepulse:   o.KRepulse,
		KCenter:    o.KCenter,
		StepSize:   o.StepSize,
		MaxRadius:  o.MaxRadius,
	}
}

// RenderOptions configures Runner.Render.
type RenderOptions struct {
	Format      string
	Scale       float64
	ShowWeights bool
	NoCache     bool
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o RenderOptions) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: o.Format, Scale: o.Scale}
}

// =============================================================================
// Validation
// =============================================================================

// validate is the shared validator instance. It is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		switch f.Kind() {
		case reflect.Float32, reflect.Float64:
			x := f.Float()
			return !math.IsNaN(x) && !math.IsInf(x, 0)
		}
		return true
	})
	return v
}

// Validator returns the shared validator, with the "finite" tag registered,
// for request types defined in other packages.
func Validator() *validator.Validate {
	return validate
}

// formatValidationError reduces validator errors to the first failure in a
// readable form.
func formatValidationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	e := errs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", e.Field())
	case "finite":
		return fmt.Errorf("%s: must be a finite number", e.Field())
	case "gt", "gte":
		return fmt.Errorf("%s: must be %s %s", e.Field(), map[string]string{"gt": ">", "gte": ">="}[e.Tag()], e.Param())
	case "lte", "max":
		return fmt.Errorf("%s: must not exceed %s", e.Field(), e.Param())
	default:
		return fmt.Errorf("%s: validation failed (%s)", e.Field(), e.Tag())
	}
}

// FormatValidationError exposes formatValidationError for request types
// validated with Validator.
func FormatValidationError(err error) error {
	return formatValidationError(err)
}
