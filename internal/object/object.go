// Package object defines the simulated entities and how each one moves per tick.
package object

import "github.com/JDLundy87/stardust-drifter/internal/physics"

// Screen is the play area in pixels. The origin is the top-left corner.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the middle of the play area.
func (s Screen) Center() (float64, float64) {
	return s.Width / 2, s.Height / 2
}

// Contains reports whether (x, y) lies inside [0, Width] x [0, Height].
func (s Screen) Contains(x, y float64) bool {
	return x >= 0 && x <= s.Width && y >= 0 && y <= s.Height
}

// IsOffScreen reports whether a circle of radius r at (x, y) is fully outside
// the play area. A circle exactly touching the outside edge (x == -r) is still on screen.
func (s Screen) IsOffScreen(x, y, r float64) bool {
	return x < -r || x > s.Width+r || y < -r || y > s.Height+r
}

// CollectableStar is a pickup. Touching it awards score and consumes it.
type CollectableStar struct {
	X, Y   float64
	Radius float64
}

// Circle implements physics.Circular.
func (s *CollectableStar) Circle() physics.Circle {
	return physics.Circle{X: s.X, Y: s.Y, Radius: s.Radius}
}

// BackgroundStar is decorative only and never takes part in physics.
type BackgroundStar struct {
	X, Y   float64
	Radius float64
}
