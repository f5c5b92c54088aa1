package object

import "github.com/JDLundy87/stardust-drifter/internal/physics"

// Planet drifts slowly, bounces off the screen edges and pulls the player in.
type Planet struct {
	X, Y    float64 // Position (center)
	VX, VY  float64 // Drift velocity, pixels per tick
	Radius  float64 // Collision radius, also the gravitational mass proxy
	Variant int     // Visual type index supplied by the asset provider
	Central bool    // The fixed planet placed at the centre each level
}

// Advance moves the planet one tick and flips a velocity component when the planet
// reaches the matching wall. The flip does not push the planet back inside, so a
// planet can sit partly outside for a tick before it turns around.
func (p *Planet) Advance(screen Screen) {
	p.X += p.VX
	p.Y += p.VY

	if p.X < p.Radius || p.X > screen.Width-p.Radius {
		p.VX = -p.VX
	}
	if p.Y < p.Radius || p.Y > screen.Height-p.Radius {
		p.VY = -p.VY
	}
}

// Circle implements physics.Circular.
func (p *Planet) Circle() physics.Circle {
	return physics.Circle{X: p.X, Y: p.Y, Radius: p.Radius}
}
