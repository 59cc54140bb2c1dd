package gravity

import "math"

// unreachableFactor pushes disconnected nodes outside the reachable disc.
const unreachableFactor = 1.5

// radiiFromDistances scales shortest-path distances to initial radii.
//
// The farthest reachable node maps to maxRadius (or 1 when nil). Nodes with
// infinite distance get unreachableFactor × (maxRadius, or 1 when it is nil
// or zero) so that disconnected components sit in a ring outside the main
// layout.
func radiiFromDistances(dist []float64, maxRadius *float64) []float64 {
	maxDist := 0.0
	for _, d := range dist {
		if !math.IsInf(d, 1) && d > maxDist {
			maxDist = d
		}
	}
	if maxDist == 0 {
		maxDist = 1.0
	}

	scale, outer := 1/maxDist, 1.0
	if maxRadius != nil {
		scale = *maxRadius / maxDist
		if *maxRadius != 0 {
			outer = *maxRadius
		}
	}

	radii := make([]float64, len(dist))
	for i, d := range dist {
		if math.IsInf(d, 1) {
			radii[i] = unreachableFactor * outer
			continue
		}
		radii[i] = scale * d
	}
	return radii
}
