package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGrid is returned when a grid cannot be built from the given dimensions.
var ErrInvalidGrid = errors.New("invalid spatial grid")

// Broadphase narrows a collection down to candidates near a query shape.
// Items are identified by their index in the caller's slice.
type Broadphase interface {
	// Clear drops every registered item. Called before each rebuild.
	Clear()
	// Insert registers item index with the circle at (x, y) and radius r.
	Insert(x, y, r float64, index int)
	// QueryNear calls fn once per candidate index near the circle at (x, y, r).
	// Returning true from fn stops the scan.
	QueryNear(x, y, r float64, fn func(index int) bool)
}

// Broadphase strategy names accepted by NewBroadphase.
const (
	BroadphaseGrid   = "grid"
	BroadphaseLinear = "linear"
)

// NewBroadphase builds the named strategy for a play area of worldW x worldH.
func NewBroadphase(kind string, worldW, worldH, cellSize float64) (Broadphase, error) {
	switch kind {
	case BroadphaseGrid, "":
		return NewSpatialGrid(worldW, worldH, cellSize)
	case BroadphaseLinear:
		return &LinearScan{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown broadphase %q", ErrInvalidGrid, kind)
	}
}

// SpatialGrid is a uniform grid for broad-phase collision detection in a bounded world.
// Each item is registered in every cell its bounding square touches, so a query only
// has to look at the cells its own bounding square touches.
//
// Cell size should be >= the largest entity diameter so that most items occupy
// at most four cells.
type SpatialGrid struct {
	invCellSize float64 // 1 / cell size (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell

	// seen[i] == stamp marks index i as already reported by the current query.
	seen  []uint32
	stamp uint32
}

// gridCell stores the indices of objects that overlap a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

var _ Broadphase = (*SpatialGrid)(nil)

// NewSpatialGrid creates a spatial grid covering the given world dimensions.
func NewSpatialGrid(worldW, worldH, cellSize float64) (*SpatialGrid, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidGrid, cellSize)
	}
	if !(worldW > 0) || !(worldH > 0) {
		return nil, fmt.Errorf("%w: world %vx%v", ErrInvalidGrid, worldW, worldH)
	}

	cols := int(math.Ceil(worldW / cellSize))
	rows := int(math.Ceil(worldH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}, nil
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item to every cell its bounding square overlaps.
// Items entirely outside the grid are not registered.
func (g *SpatialGrid) Insert(x, y, r float64, index int) {
	minCol, minRow, maxCol, maxRow, ok := g.cellRange(x, y, r)
	if !ok {
		return
	}
	for row := minRow; row <= maxRow; row++ {
		rowOffset := row * g.cols
		for col := minCol; col <= maxCol; col++ {
			cell := &g.cells[rowOffset+col]
			cell.items = append(cell.items, index)
		}
	}
	if index >= len(g.seen) {
		g.seen = append(g.seen, make([]uint32, index+1-len(g.seen))...)
	}
}

// QueryNear calls fn for each distinct item registered in the cells overlapped by
// the query's bounding square. If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryNear(x, y, r float64, fn func(index int) bool) {
	minCol, minRow, maxCol, maxRow, ok := g.cellRange(x, y, r)
	if !ok {
		return
	}

	g.stamp++
	if g.stamp == 0 {
		// Wrapped around: old marks could collide with the new stamp.
		clear(g.seen)
		g.stamp = 1
	}

	for row := minRow; row <= maxRow; row++ {
		rowOffset := row * g.cols
		for col := minCol; col <= maxCol; col++ {
			for _, itemIdx := range g.cells[rowOffset+col].items {
				if g.seen[itemIdx] == g.stamp {
					continue
				}
				g.seen[itemIdx] = g.stamp
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// cellRange converts a bounding square to an inclusive cell range clipped to the grid.
// ok is false when the square lies entirely outside the grid.
func (g *SpatialGrid) cellRange(x, y, r float64) (minCol, minRow, maxCol, maxRow int, ok bool) {
	minCol = int(math.Floor((x - r) * g.invCellSize))
	maxCol = int(math.Floor((x + r) * g.invCellSize))
	minRow = int(math.Floor((y - r) * g.invCellSize))
	maxRow = int(math.Floor((y + r) * g.invCellSize))

	if maxCol < 0 || maxRow < 0 || minCol >= g.cols || minRow >= g.rows {
		return 0, 0, 0, 0, false
	}

	minCol = max(minCol, 0)
	minRow = max(minRow, 0)
	maxCol = min(maxCol, g.cols-1)
	maxRow = min(maxRow, g.rows-1)
	return minCol, minRow, maxCol, maxRow, true
}

// LinearScan is the degenerate broadphase: every registered item is a candidate.
type LinearScan struct {
	items []int
}

var _ Broadphase = (*LinearScan)(nil)

// Clear forgets all registered items.
func (l *LinearScan) Clear() {
	l.items = l.items[:0]
}

// Insert registers the item regardless of position.
func (l *LinearScan) Insert(_, _, _ float64, index int) {
	l.items = append(l.items, index)
}

// QueryNear visits every registered item in insertion order.
func (l *LinearScan) QueryNear(_, _, _ float64, fn func(index int) bool) {
	for _, idx := range l.items {
		if fn(idx) {
			return
		}
	}
}
