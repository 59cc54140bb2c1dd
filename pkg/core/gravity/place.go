package gravity

import "math"

// placeRadially puts the center at the origin and every other node at its
// radius, with angles evenly spaced in index order.
func placeRadially(radii []float64, center int) []Position {
	pos := make([]Position, len(radii))
	m := len(radii) - 1
	if m <= 0 {
		return pos
	}
	i := 0
	for n, r := range radii {
		if n == center {
			continue
		}
		theta := 2 * math.Pi * float64(i) / float64(m)
		pos[n] = Position{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
		i++
	}
	return pos
}

// placeOnUnitCircle handles edge-free graphs: center at the origin, the
// rest evenly spaced on the unit circle in index order.
func placeOnUnitCircle(n, center int) []Position {
	radii := make([]float64, n)
	for i := range radii {
		if i != center {
			radii[i] = 1
		}
	}
	return placeRadially(radii, center)
}
