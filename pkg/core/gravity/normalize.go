package gravity

import "math"

// normalizer maps raw weights onto [0, 1] relative to the observed range.
type normalizer struct {
	min     float64
	span    float64
	uniform bool
}

// newNormalizer computes the weight range. Weights are clamped with
// clampWeight before the range is taken.
func newNormalizer(weights []float64) normalizer {
	if len(weights) == 0 {
		return normalizer{uniform: true}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, w := range weights {
		w = clampWeight(w)
		lo = math.Min(lo, w)
		hi = math.Max(hi, w)
	}
	span := hi - lo
	return normalizer{
		min:     lo,
		span:    math.Max(span, epsilon),
		uniform: span < epsilon,
	}
}

// normalize returns w's position in the range, or 1.0 when all weights are equal.
func (n normalizer) normalize(w float64) float64 {
	if n.uniform {
		return 1.0
	}
	v := (clampWeight(w) - n.min) / n.span
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// clampWeight forces w into [0, MaxFloat64]. NaN counts as 0.
func clampWeight(w float64) float64 {
	switch {
	case math.IsNaN(w), w < 0:
		return 0
	case math.IsInf(w, 1):
		return math.MaxFloat64
	}
	return w
}

// targetLength converts a normalized weight to a spring rest length in [1, 3].
func targetLength(norm float64) float64 {
	return 1 + (1-norm)*2
}
