package physics

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func TestNewSpatialGridRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h, cell float64
	}{
		{"zero cell", 100, 100, 0},
		{"negative cell", 100, 100, -5},
		{"zero width", 0, 100, 10},
		{"zero height", 100, 0, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSpatialGrid(tc.w, tc.h, tc.cell); !errors.Is(err, ErrInvalidGrid) {
				t.Fatalf("err = %v, want ErrInvalidGrid", err)
			}
		})
	}
}

func TestSpatialGridDimensionsRoundUp(t *testing.T) {
	g, err := NewSpatialGrid(100, 50, 30)
	if err != nil {
		t.Fatalf("NewSpatialGrid: %v", err)
	}
	if g.cols != 4 || g.rows != 2 {
		t.Fatalf("grid = %dx%d cells, want 4x2", g.cols, g.rows)
	}
}

func TestNewBroadphase(t *testing.T) {
	if b, err := NewBroadphase(BroadphaseGrid, 100, 100, 10); err != nil {
		t.Fatalf("grid: %v", err)
	} else if _, ok := b.(*SpatialGrid); !ok {
		t.Fatalf("grid strategy = %T, want *SpatialGrid", b)
	}
	if b, err := NewBroadphase(BroadphaseLinear, 100, 100, 10); err != nil {
		t.Fatalf("linear: %v", err)
	} else if _, ok := b.(*LinearScan); !ok {
		t.Fatalf("linear strategy = %T, want *LinearScan", b)
	}
	if _, err := NewBroadphase("octree", 100, 100, 10); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("unknown strategy err = %v, want ErrInvalidGrid", err)
	}
}

func collect(b Broadphase, x, y, r float64) []int {
	var out []int
	b.QueryNear(x, y, r, func(i int) bool {
		out = append(out, i)
		return false
	})
	slices.Sort(out)
	return out
}

func TestSpatialGridDeduplicatesMultiCellItems(t *testing.T) {
	g, err := NewSpatialGrid(100, 100, 10)
	if err != nil {
		t.Fatal(err)
	}
	// Straddles four cells around (50, 50).
	g.Insert(50, 50, 3, 0)
	got := collect(g, 50, 50, 20)
	if !slices.Equal(got, []int{0}) {
		t.Fatalf("QueryNear = %v, want [0]", got)
	}
}

func TestSpatialGridDropsItemsOutsideBounds(t *testing.T) {
	g, err := NewSpatialGrid(100, 100, 10)
	if err != nil {
		t.Fatal(err)
	}
	g.Insert(-20, 50, 5, 0)  // entirely left of the grid
	g.Insert(50, 130, 5, 1)  // entirely below
	g.Insert(-3, 50, 5, 2)   // partly inside
	g.Insert(-0.5, 50, 0, 3) // just outside, would truncate to column 0 without floor

	got := collect(g, 0, 50, 10)
	if !slices.Equal(got, []int{2}) {
		t.Fatalf("QueryNear = %v, want [2]", got)
	}
}

func TestSpatialGridClear(t *testing.T) {
	g, err := NewSpatialGrid(100, 100, 10)
	if err != nil {
		t.Fatal(err)
	}
	g.Insert(10, 10, 2, 0)
	g.Clear()
	if got := collect(g, 10, 10, 2); len(got) != 0 {
		t.Fatalf("after Clear QueryNear = %v, want none", got)
	}
}

func TestSpatialGridEarlyStop(t *testing.T) {
	g, err := NewSpatialGrid(100, 100, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		g.Insert(50, 50, 1, i)
	}
	calls := 0
	g.QueryNear(50, 50, 1, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("fn called %d times after returning true, want 1", calls)
	}
}

func squaresOverlap(a, b Circle) bool {
	return a.X-a.Radius <= b.X+b.Radius && b.X-b.Radius <= a.X+a.Radius &&
		a.Y-a.Radius <= b.Y+b.Radius && b.Y-b.Radius <= a.Y+a.Radius
}

func TestSpatialGridHasNoFalseNegatives(t *testing.T) {
	const w, h = 800.0, 600.0
	rng := rand.New(rand.NewPCG(11, 17))

	for round := 0; round < 50; round++ {
		cell := 16 + rng.Float64()*100
		g, err := NewSpatialGrid(w, h, cell)
		if err != nil {
			t.Fatal(err)
		}
		items := make([]Circle, 200)
		for i := range items {
			items[i] = Circle{X: rng.Float64() * w, Y: rng.Float64() * h, Radius: 1 + rng.Float64()*50}
			g.Insert(items[i].X, items[i].Y, items[i].Radius, i)
		}

		for q := 0; q < 50; q++ {
			query := Circle{X: rng.Float64() * w, Y: rng.Float64() * h, Radius: 1 + rng.Float64()*30}
			got := collect(g, query.X, query.Y, query.Radius)
			for i, it := range items {
				if squaresOverlap(query, it) {
					if _, found := slices.BinarySearch(got, i); !found {
						t.Fatalf("round %d: item %d %+v missing for query %+v (cell %.1f)", round, i, it, query, cell)
					}
				}
			}
		}
	}
}

func TestFirstHitMatchesLinearScan(t *testing.T) {
	const w, h = 800.0, 600.0
	rng := rand.New(rand.NewPCG(5, 8))

	grid, err := NewSpatialGrid(w, h, 100)
	if err != nil {
		t.Fatal(err)
	}
	withGrid := NewCollider(grid, 0)
	withCull := NewCollider(grid, 20+50)
	linear := NewCollider(&LinearScan{}, 0)

	for round := 0; round < 500; round++ {
		items := make([]body, 30)
		for i := range items {
			items[i] = body{x: rng.Float64() * w, y: rng.Float64() * h, r: 5 + rng.Float64()*45}
		}
		player := Circle{X: rng.Float64() * w, Y: rng.Float64() * h, Radius: 20}

		want := FirstHit(linear, player, items) >= 0
		if got := FirstHit(withGrid, player, items) >= 0; got != want {
			t.Fatalf("round %d: grid hit = %v, linear hit = %v", round, got, want)
		}
		if got := FirstHit(withCull, player, items) >= 0; got != want {
			t.Fatalf("round %d: culled hit = %v, linear hit = %v", round, got, want)
		}

		var gridHits, linearHits []int
		EachHit(withGrid, player, items, func(i int) { gridHits = append(gridHits, i) })
		EachHit(linear, player, items, func(i int) { linearHits = append(linearHits, i) })
		slices.Sort(gridHits)
		slices.Sort(linearHits)
		if !slices.Equal(gridHits, linearHits) {
			t.Fatalf("round %d: grid hits %v, linear hits %v", round, gridHits, linearHits)
		}
		for _, i := range gridHits {
			c := items[i].Circle()
			if !CirclesOverlap(player.X, player.Y, player.Radius, c.X, c.Y, c.Radius) {
				t.Fatalf("round %d: reported hit %d does not overlap", round, i)
			}
		}
	}
}
