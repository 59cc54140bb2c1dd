package gravity

import "math"

// refine runs cfg.Iterations simulation steps over pos in place.
//
// Each step accumulates three forces on every node:
//   - attraction: a Hooke spring per distinct edge pulling toward its rest length
//   - repulsion: k/d² between every node pair
//   - centering: a weak linear pull of each non-center node toward the center
//
// Positions then move by the force times a step size that cools linearly to
// zero. The center is reset to (0, 0) after each step.
func refine(pos []Position, springs []spring, center int, cfg Config) {
	n := len(pos)
	if cfg.Iterations == 0 || n == 0 {
		return
	}
	force := make([]Position, n)

	for it := 0; it < cfg.Iterations; it++ {
		cooling := 1 - float64(it)/float64(cfg.Iterations)
		step := cfg.StepSize * cooling

		clear(force)
		attract(force, pos, springs, cfg.KAttract)
		repel(force, pos, cfg.KRepulse)
		pullToCenter(force, pos, center, cfg.KCenter)
		integrate(pos, force, center, step)
	}
}

// =============================================================================
// Forces
// =============================================================================

func attract(force, pos []Position, springs []spring, k float64) {
	for _, s := range springs {
		dx := pos[s.v].X - pos[s.u].X
		dy := pos[s.v].Y - pos[s.u].Y
		d := math.Sqrt(dx*dx+dy*dy) + epsilon

		mag := k * (d - s.length)
		fx := mag * dx / d
		fy := mag * dy / d

		force[s.u].X += fx
		force[s.u].Y += fy
		force[s.v].X -= fx
		force[s.v].Y -= fy
	}
}

// repel applies inverse-square repulsion to every unordered pair. O(n²).
func repel(force, pos []Position, k float64) {
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			dx := pos[j].X - pos[i].X
			dy := pos[j].Y - pos[i].Y
			d2 := dx*dx + dy*dy + epsilon
			d := math.Sqrt(d2)

			mag := k / d2
			fx := mag * dx / d
			fy := mag * dy / d

			force[i].X -= fx
			force[i].Y -= fy
			force[j].X += fx
			force[j].Y += fy
		}
	}
}

func pullToCenter(force, pos []Position, center int, k float64) {
	c := pos[center]
	for i := range pos {
		if i == center {
			continue
		}
		force[i].X -= k * (pos[i].X - c.X)
		force[i].Y -= k * (pos[i].Y - c.Y)
	}
}

// =============================================================================
// Integration
// =============================================================================

// integrate applies one explicit Euler step and re-pins the center.
// A move that would leave the finite range is dropped.
func integrate(pos, force []Position, center int, step float64) {
	for i := range pos {
		if i == center {
			continue
		}
		x := pos[i].X + step*force[i].X
		y := pos[i].Y + step*force[i].Y
		if !finite(x) || !finite(y) {
			continue
		}
		pos[i] = Position{X: x, Y: y}
	}
	pos[center] = Position{}
}
