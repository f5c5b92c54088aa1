package object

import (
	"math"
	"math/rand/v2"
	"testing"
)

var testScreen = Screen{Width: 800, Height: 600}

func TestScreenIsOffScreen(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 400, 300, false},
		{"touching left", -10, 300, false},
		{"past left", -11, 300, true},
		{"touching right", 810, 300, false},
		{"past right", 810.5, 300, true},
		{"past top", 400, -10.1, true},
		{"past bottom", 400, 611, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := testScreen.IsOffScreen(tc.x, tc.y, 10); got != tc.want {
				t.Errorf("IsOffScreen(%v, %v, 10) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestCometCulling(t *testing.T) {
	gone := &Comet{X: -11, Y: 300, Radius: 10}
	if !gone.Advance(testScreen) {
		t.Errorf("comet at x=-r-1 should be removed")
	}
	edge := &Comet{X: -10, Y: 300, Radius: 10}
	if edge.Advance(testScreen) {
		t.Errorf("comet at x=-r should be kept")
	}
}

func TestNewCometAtHeadsInward(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	speed := CometSpeed{InwardMin: 2, InwardMax: 4, Drift: 1.5}

	for _, edge := range []Edge{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight} {
		for i := 0; i < 200; i++ {
			c := NewCometAt(edge, testScreen, 10, speed, rng)
			var inward, parallel float64
			switch edge {
			case EdgeTop:
				inward, parallel = c.VY, c.VX
			case EdgeBottom:
				inward, parallel = -c.VY, c.VX
			case EdgeLeft:
				inward, parallel = c.VX, c.VY
			case EdgeRight:
				inward, parallel = -c.VX, c.VY
			}
			if inward < speed.InwardMin || inward >= speed.InwardMax {
				t.Fatalf("edge %d: inward speed %v outside [%v, %v)", edge, inward, speed.InwardMin, speed.InwardMax)
			}
			if math.Abs(parallel) > speed.Drift {
				t.Fatalf("edge %d: parallel speed %v exceeds drift %v", edge, parallel, speed.Drift)
			}
			if testScreen.IsOffScreen(c.X, c.Y, c.Radius) {
				t.Fatalf("edge %d: comet spawned off screen at (%v, %v)", edge, c.X, c.Y)
			}
			if c.Advance(testScreen) {
				t.Fatalf("edge %d: comet culled on its first tick", edge)
			}
		}
	}
}

func TestPlanetBouncesOffWalls(t *testing.T) {
	p := &Planet{X: 795, Y: 300, VX: 2, VY: 0, Radius: 10}
	p.Advance(testScreen)
	if p.VX != -2 {
		t.Fatalf("VX after hitting right wall = %v, want -2", p.VX)
	}
	if p.X != 797 {
		t.Fatalf("X = %v, want 797 (no positional correction)", p.X)
	}

	p = &Planet{X: 400, Y: 12, VX: 0, VY: -3, Radius: 10}
	p.Advance(testScreen)
	if p.VY != 3 {
		t.Fatalf("VY after hitting top wall = %v, want 3", p.VY)
	}

	p = &Planet{X: 400, Y: 300, VX: 1, VY: 1, Radius: 10}
	p.Advance(testScreen)
	if p.VX != 1 || p.VY != 1 {
		t.Fatalf("velocity changed away from walls: (%v, %v)", p.VX, p.VY)
	}
}

func TestPlayerRestingDoesNotMove(t *testing.T) {
	p := NewPlayer(100, 100, 10)
	for i := 0; i < 10; i++ {
		p.Advance(0.3, -0.2)
	}
	if p.X != 100 || p.Y != 100 || p.VX != 0 || p.VY != 0 {
		t.Fatalf("resting player moved: %+v", *p)
	}
}

func TestPlayerAdvanceIsSemiImplicit(t *testing.T) {
	p := &Player{X: 0, Y: 0, VX: 1, VY: 0, Radius: 5, Moving: true}
	p.Advance(1, 2)
	if p.VX != 2 || p.VY != 2 {
		t.Fatalf("velocity = (%v, %v), want (2, 2)", p.VX, p.VY)
	}
	if p.X != 2 || p.Y != 2 {
		t.Fatalf("position = (%v, %v), want (2, 2): position must use the updated velocity", p.X, p.Y)
	}
}

func TestPlayerLaunch(t *testing.T) {
	limits := LaunchLimits{Divisor: 10, MaxPower: 15, Scale: 1}

	p := NewPlayer(0, 0, 10)
	if !p.Launch(30, 40, limits) {
		t.Fatal("Launch returned false")
	}
	// |d| = 50 -> power 5 along (0.6, 0.8)
	if math.Abs(p.VX-3) > 1e-9 || math.Abs(p.VY-4) > 1e-9 {
		t.Fatalf("velocity = (%v, %v), want (3, 4)", p.VX, p.VY)
	}
	if p.Launch(1, 0, limits) {
		t.Fatal("second Launch while moving should be refused")
	}

	p.Reset(0, 0)
	p.Launch(-1000, 0, limits)
	if math.Abs(p.VX+15) > 1e-9 || p.VY != 0 {
		t.Fatalf("velocity = (%v, %v), want capped (-15, 0)", p.VX, p.VY)
	}

	p.Reset(0, 0)
	if p.Launch(0, 0, limits) || p.Moving {
		t.Fatal("zero drag should not launch")
	}
}

func TestLaunchPowerScales(t *testing.T) {
	// The same gesture on a screen twice as tall drags twice as far and should give
	// twice the speed, which is the same feel at the reference resolution.
	base := LaunchPower(50, LaunchLimits{Divisor: 10, MaxPower: 15, Scale: 1})
	double := LaunchPower(100, LaunchLimits{Divisor: 10, MaxPower: 15, Scale: 2})
	if math.Abs(double-2*base) > 1e-9 {
		t.Fatalf("scaled power = %v, want %v", double, 2*base)
	}
	capped := LaunchPower(1e6, LaunchLimits{Divisor: 10, MaxPower: 15, Scale: 2})
	if capped != 30 {
		t.Fatalf("capped scaled power = %v, want 30", capped)
	}
}
