// Package physics provides collision detection, broad-phase indexing and gravity.
package physics

// Circle is the collision shape shared by every entity: a centre and a radius.
type Circle struct {
	X, Y   float64
	Radius float64
}

// Circular is implemented by anything that can be tested for collisions.
type Circular interface {
	Circle() Circle
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks if two circles overlap.
// Touching circles (distance == r1+r2) do not overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// BoundsOverlap is the axis-aligned pre-filter for CirclesOverlap: each circle is
// treated as a square with half-extent r. Any pair accepted by CirclesOverlap is
// also accepted here.
func BoundsOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	reach := r1 + r2
	dx := x2 - x1
	if dx < 0 {
		dx = -dx
	}
	if dx >= reach {
		return false
	}
	dy := y2 - y1
	if dy < 0 {
		dy = -dy
	}
	return dy < reach
}

// Overlaps runs the pre-filter and then the exact test on two shapes.
func Overlaps(a, b Circle) bool {
	return BoundsOverlap(a.X, a.Y, a.Radius, b.X, b.Y, b.Radius) &&
		CirclesOverlap(a.X, a.Y, a.Radius, b.X, b.Y, b.Radius)
}
