package object

import (
	"math"

	"github.com/JDLundy87/stardust-drifter/internal/physics"
)

// Player is the launched craft. It rests at the spawn point until launched.
type Player struct {
	X, Y   float64 // Position (center of craft)
	VX, VY float64 // Velocity (momentum), pixels per tick
	Radius float64
	Moving bool // False until launched; gravity is ignored while resting
}

// LaunchLimits converts a drag gesture into launch speed.
type LaunchLimits struct {
	Divisor  float64 // Drag pixels (at reference resolution) per unit of speed
	MaxPower float64 // Speed cap at reference resolution
	Scale    float64 // Resolution scale factor
}

// NewPlayer creates a resting player at the given position.
func NewPlayer(x, y, radius float64) *Player {
	return &Player{X: x, Y: y, Radius: radius}
}

// Reset puts the player back at (x, y) at rest.
func (p *Player) Reset(x, y float64) {
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	p.Moving = false
}

// Launch sets the player in motion along (dx, dy). Speed grows with the drag length
// and is capped at MaxPower. Returns false if the player is already moving or the
// drag vector is zero.
func (p *Player) Launch(dx, dy float64, limits LaunchLimits) bool {
	if p.Moving {
		return false
	}
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return false
	}

	power := LaunchPower(dist, limits)
	angle := math.Atan2(dy, dx)
	p.VX = math.Cos(angle) * power
	p.VY = math.Sin(angle) * power
	p.Moving = true
	return true
}

// LaunchPower returns the launch speed for a drag of length dist.
func LaunchPower(dist float64, limits LaunchLimits) float64 {
	return math.Min(dist/(limits.Divisor*limits.Scale), limits.MaxPower) * limits.Scale
}

// Advance integrates one tick: velocity takes the acceleration, then position takes
// the new velocity. A resting player does not move.
func (p *Player) Advance(ax, ay float64) {
	if !p.Moving {
		return
	}
	p.VX += ax
	p.VY += ay
	p.X += p.VX
	p.Y += p.VY
}

// Circle implements physics.Circular.
func (p *Player) Circle() physics.Circle {
	return physics.Circle{X: p.X, Y: p.Y, Radius: p.Radius}
}
