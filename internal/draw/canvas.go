package draw

import (
	"io"
	"math"
	"strings"
)

// Canvas is a half-block pixel buffer: each terminal cell holds two stacked
// pixels. Shapes are given in logical coordinates and scaled per axis.
type Canvas struct {
	cols, rows int
	pixelRows  int    // rows * 2
	pixels     []bool // pixels[y*cols+x]

	logicalW, logicalH float64
	sx, sy             float64 // pixels per logical unit

	// 0-based terminal cells skipped before the canvas starts.
	offsetCol, offsetRow int

	out []byte // reused by Render
}

// NewCanvas creates an unscaled canvas of width x height cells, so one
// logical unit is one pixel.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas of termWidth x termHeight cells that maps
// a logicalWidth x logicalHeight play area onto it.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalW: logicalWidth, logicalH: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize changes the cell dimensions. The logical area stays the same.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth != c.cols || termHeight != c.rows || c.pixels == nil {
		c.cols, c.rows = termWidth, termHeight
		c.pixelRows = termHeight * 2
		c.pixels = make([]bool, c.pixelRows*termWidth)
	}
	c.sx = float64(c.cols) / c.logicalW
	c.sy = float64(c.pixelRows) / c.logicalH
}

// SetOffset places the canvas at terminal cell (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol, c.offsetRow = col, row
}

func (c *Canvas) OffsetCol() int { return c.offsetCol }
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth is the canvas width in cells.
func (c *Canvas) TerminalWidth() int { return c.cols }

// TerminalHeight is the canvas height in cells.
func (c *Canvas) TerminalHeight() int { return c.rows }

// Clear unsets every pixel.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) plot(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.pixelRows {
		c.pixels[y*c.cols+x] = true
	}
}

// toPixel scales a logical point and rounds it to the nearest pixel.
func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.sx)), int(math.Round(y * c.sy))
}

// Get reports whether pixel (x, y) is set. Out of range pixels are unset.
func (c *Canvas) Get(x, y int) bool {
	if x < 0 || x >= c.cols || y < 0 || y >= c.pixelRows {
		return false
	}
	return c.pixels[y*c.cols+x]
}

// SetFloat sets the pixel nearest to a logical point.
func (c *Canvas) SetFloat(x, y float64) {
	c.plot(c.toPixel(x, y))
}

// DrawLine draws a Bresenham line between two logical points.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x, y := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx, dy := abs(x2-x), -abs(y2-y)
	sx, sy := 1, 1
	if x > x2 {
		sx = -1
	}
	if y > y2 {
		sy = -1
	}

	e := dx + dy
	for {
		c.plot(x, y)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// spanFunc returns the horizontal half-width of a shape at normalized
// vertical distance t in [-1, 1] from its centre, as a fraction of rx.
type spanFunc func(t float64) float64

// fillSpans rasterizes a shape symmetric about its centre row by row. The
// axes scale independently, so round shapes become ellipses in pixel space.
func (c *Canvas) fillSpans(cx, cy, r float64, span spanFunc) {
	rx, ry := r*c.sx, r*c.sy
	pcx, pcy := cx*c.sx, cy*c.sy
	if rx < 0.5 && ry < 0.5 {
		c.plot(int(math.Round(pcx)), int(math.Round(pcy)))
		return
	}

	top := max(int(math.Floor(pcy-ry)), 0)
	bottom := min(int(math.Ceil(pcy+ry)), c.pixelRows-1)
	for y := top; y <= bottom; y++ {
		t := (float64(y) + 0.5 - pcy) / ry
		if t < -1 || t > 1 {
			continue
		}
		half := rx * span(t)
		from := max(int(math.Ceil(pcx-half-0.5)), 0)
		to := min(int(math.Floor(pcx+half-0.5)), c.cols-1)
		row := c.pixels[y*c.cols:]
		for x := from; x <= to; x++ {
			row[x] = true
		}
	}
}

// FillCircle fills a circle of logical radius r.
func (c *Canvas) FillCircle(cx, cy, r float64) {
	c.fillSpans(cx, cy, r, func(t float64) float64 { return math.Sqrt(1 - t*t) })
}

// FillDiamond fills a square rotated 45 degrees whose corners lie r from the
// centre.
func (c *Canvas) FillDiamond(cx, cy, r float64) {
	c.fillSpans(cx, cy, r, func(t float64) float64 { return 1 - math.Abs(t) })
}

// DrawCircle draws the outline of a circle of logical radius r.
func (c *Canvas) DrawCircle(cx, cy, r float64) {
	rx, ry := r*c.sx, r*c.sy
	pcx, pcy := cx*c.sx, cy*c.sy

	// One step per pixel along the longer axis.
	steps := max(int(2*math.Pi*math.Max(rx, ry)), 8)
	for i := range steps {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.plot(int(math.Round(pcx+rx*math.Cos(a))), int(math.Round(pcy+ry*math.Sin(a))))
	}
}

// Render writes the canvas with half-block characters. Every row is written
// in full, so pixels cleared since the previous frame are overwritten without
// clearing the terminal.
func (c *Canvas) Render(w io.Writer) {
	out := c.out[:0]
	for row := range c.rows {
		out = appendCursor(out, 1+c.offsetCol, row+1+c.offsetRow)
		upper := c.pixels[row*2*c.cols:]
		lower := c.pixels[(row*2+1)*c.cols:]
		for col := range c.cols {
			switch top, bottom := upper[col], lower[col]; {
			case top && bottom:
				out = append(out, string(BlockFull)...)
			case top:
				out = append(out, string(BlockUpperHalf)...)
			case bottom:
				out = append(out, string(BlockLowerHalf)...)
			default:
				out = append(out, BlockEmpty)
			}
		}
	}
	c.out = out
	w.Write(out)
}

// RenderBorder frames the canvas with box-drawing lines when it is centred in
// a larger terminal. A side is drawn only where the offset leaves room for it.
func (c *Canvas) RenderBorder(w io.Writer) {
	sides := c.offsetCol >= 1
	ends := c.offsetRow >= 1
	if !sides && !ends {
		return
	}

	left, right := c.offsetCol, c.offsetCol+c.cols+1
	top, bottom := c.offsetRow, c.offsetRow+c.rows+1
	bar := strings.Repeat("─", c.cols)

	var b []byte
	if ends {
		for _, edge := range []struct {
			row         int
			open, close string
		}{{top, "┌", "┐"}, {bottom, "└", "┘"}} {
			if sides {
				b = appendCursor(b, left, edge.row)
				b = append(b, edge.open+bar+edge.close...)
			} else {
				b = appendCursor(b, left+1, edge.row)
				b = append(b, bar...)
			}
		}
	}
	if sides {
		for row := top + 1; row < bottom; row++ {
			b = appendCursor(b, left, row)
			b = append(b, "│"...)
			b = appendCursor(b, right, row)
			b = append(b, "│"...)
		}
	}
	w.Write(b)
}

// TerminalToLogical converts a 1-based terminal cell, as reported by mouse
// events and including the centring offset, to the logical point at the
// centre of that cell.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64(row-1-c.offsetRow)*2 + 1
	return px / c.sx, py / c.sy
}
