package physics

import (
	"math/rand/v2"
	"testing"
)

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name       string
		x1, y1, r1 float64
		x2, y2, r2 float64
		want       bool
	}{
		{"concentric", 0, 0, 5, 0, 0, 1, true},
		{"overlapping", 100, 100, 20, 110, 100, 20, true},
		{"touching", 0, 0, 5, 10, 0, 5, false},
		{"apart", 0, 0, 5, 20, 0, 5, false},
		{"diagonal near miss", 0, 0, 5, 7.1, 7.1, 5, false},
		{"diagonal hit", 0, 0, 5, 7, 7, 5, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CirclesOverlap(tc.x1, tc.y1, tc.r1, tc.x2, tc.y2, tc.r2); got != tc.want {
				t.Errorf("CirclesOverlap = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCirclesOverlapIsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10000; i++ {
		a := Circle{X: rng.Float64() * 200, Y: rng.Float64() * 200, Radius: rng.Float64() * 40}
		b := Circle{X: rng.Float64() * 200, Y: rng.Float64() * 200, Radius: rng.Float64() * 40}
		ab := CirclesOverlap(a.X, a.Y, a.Radius, b.X, b.Y, b.Radius)
		ba := CirclesOverlap(b.X, b.Y, b.Radius, a.X, a.Y, a.Radius)
		if ab != ba {
			t.Fatalf("asymmetric result for %+v and %+v: %v vs %v", a, b, ab, ba)
		}
	}
}

func TestBoundsOverlapNeverRejectsAHit(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 10000; i++ {
		a := Circle{X: rng.Float64() * 200, Y: rng.Float64() * 200, Radius: rng.Float64() * 40}
		b := Circle{X: rng.Float64() * 200, Y: rng.Float64() * 200, Radius: rng.Float64() * 40}
		exact := CirclesOverlap(a.X, a.Y, a.Radius, b.X, b.Y, b.Radius)
		if exact && !BoundsOverlap(a.X, a.Y, a.Radius, b.X, b.Y, b.Radius) {
			t.Fatalf("pre-filter rejected overlapping pair %+v %+v", a, b)
		}
		if Overlaps(a, b) != exact {
			t.Fatalf("Overlaps(%+v, %+v) = %v, exact test says %v", a, b, !exact, exact)
		}
	}
}

type body struct{ x, y, r float64 }

func (b body) Circle() Circle { return Circle{X: b.x, Y: b.y, Radius: b.r} }

func TestGravity(t *testing.T) {
	t.Run("pulls toward body", func(t *testing.T) {
		ax, ay := Gravity(0, 0, []body{{x: 100, y: 0, r: 40}}, 0.5, 1)
		// 100 * (0.5*40/10000) = 0.2
		if diff := ax - 0.2; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("ax = %v, want 0.2", ax)
		}
		if ay != 0 {
			t.Errorf("ay = %v, want 0", ay)
		}
	})

	t.Run("scale multiplies", func(t *testing.T) {
		ax1, _ := Gravity(0, 0, []body{{x: 50, y: 0, r: 20}}, 1, 1)
		ax2, _ := Gravity(0, 0, []body{{x: 50, y: 0, r: 20}}, 1, 2)
		if diff := ax2 - 2*ax1; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("scaled ax = %v, want %v", ax2, 2*ax1)
		}
	})

	t.Run("symmetric bodies cancel", func(t *testing.T) {
		ax, ay := Gravity(0, 0, []body{{x: 30, y: 0, r: 10}, {x: -30, y: 0, r: 10}}, 1, 1)
		if ax != 0 || ay != 0 {
			t.Errorf("acceleration = (%v, %v), want zero", ax, ay)
		}
	})

	t.Run("skips bodies within the distance floor", func(t *testing.T) {
		ax, ay := Gravity(10, 10, []body{{x: 10.5, y: 10.5, r: 50}, {x: 10, y: 10, r: 50}}, 1, 1)
		if ax != 0 || ay != 0 {
			t.Errorf("acceleration = (%v, %v), want zero", ax, ay)
		}
	})

	t.Run("no bodies", func(t *testing.T) {
		ax, ay := Gravity[body](5, 5, nil, 1, 1)
		if ax != 0 || ay != 0 {
			t.Errorf("acceleration = (%v, %v), want zero", ax, ay)
		}
	})
}
