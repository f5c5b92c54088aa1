package physics

// minGravityDistSq is the squared-distance floor below which a body is ignored,
// keeping the inverse-square term finite when the player sits on a body's centre.
const minGravityDistSq = 1.0

// Gravity returns the net acceleration on a point at (px, py) from every body.
// Each body pulls with magnitude g * radius / distance (radius stands in for mass),
// multiplied by scale. The result is not applied; the caller integrates it.
func Gravity[T Circular](px, py float64, bodies []T, g, scale float64) (ax, ay float64) {
	for _, b := range bodies {
		c := b.Circle()
		dx := c.X - px
		dy := c.Y - py
		distSq := dx*dx + dy*dy
		if distSq <= minGravityDistSq {
			continue
		}
		f := g * c.Radius / distSq * scale
		ax += dx * f
		ay += dy * f
	}
	return ax, ay
}
