package object

import (
	"math/rand/v2"

	"github.com/JDLundy87/stardust-drifter/internal/physics"
)

// Edge identifies the side of the play area a comet enters from.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// Comet crosses the play area in a straight line and is dropped once it leaves.
type Comet struct {
	X, Y   float64 // Position (center)
	VX, VY float64 // Velocity, pixels per tick
	Radius float64
}

// CometSpeed bounds the velocity of a freshly spawned comet, already scaled.
type CometSpeed struct {
	InwardMin float64 // Minimum speed perpendicular to the entry edge
	InwardMax float64 // Maximum speed perpendicular to the entry edge
	Drift     float64 // Parallel speed is drawn from [-Drift, Drift)
}

// NewCometAtEdge creates a comet just outside a random screen edge, heading inward.
func NewCometAtEdge(screen Screen, radius float64, speed CometSpeed, rng *rand.Rand) *Comet {
	return NewCometAt(Edge(rng.IntN(4)), screen, radius, speed, rng)
}

// NewCometAt creates a comet just outside the given edge. The perpendicular velocity
// component always points into the play area.
func NewCometAt(edge Edge, screen Screen, radius float64, speed CometSpeed, rng *rand.Rand) *Comet {
	inward := speed.InwardMin + rng.Float64()*(speed.InwardMax-speed.InwardMin)
	drift := (rng.Float64()*2 - 1) * speed.Drift

	c := &Comet{Radius: radius}
	switch edge {
	case EdgeTop:
		c.X, c.Y = rng.Float64()*screen.Width, -radius
		c.VX, c.VY = drift, inward
	case EdgeBottom:
		c.X, c.Y = rng.Float64()*screen.Width, screen.Height+radius
		c.VX, c.VY = drift, -inward
	case EdgeLeft:
		c.X, c.Y = -radius, rng.Float64()*screen.Height
		c.VX, c.VY = inward, drift
	default:
		c.X, c.Y = screen.Width+radius, rng.Float64()*screen.Height
		c.VX, c.VY = -inward, drift
	}
	return c
}

// Advance moves the comet one tick. Returns true if it is now fully off screen
// and should be removed.
func (c *Comet) Advance(screen Screen) bool {
	c.X += c.VX
	c.Y += c.VY
	return screen.IsOffScreen(c.X, c.Y, c.Radius)
}

// Circle implements physics.Circular.
func (c *Comet) Circle() physics.Circle {
	return physics.Circle{X: c.X, Y: c.Y, Radius: c.Radius}
}
