// Package draw renders to ANSI terminals using half-block characters.
package draw

// Point is a position in logical coordinates.
type Point struct {
	X, Y float64
}

// Cell glyphs: each terminal cell shows two vertically stacked pixels.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
