package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// maxChunkSize keeps each write under a typical MTU so frames stream
// smoothly over SSH.
const maxChunkSize = 1400

// Control sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqMouseOn    = "\033[?1002h\033[?1006h" // button and drag reporting, SGR encoding
	seqMouseOff   = "\033[?1006l\033[?1002l"
)

// appendCursor appends a cursor move to 1-based terminal cell (col, row).
func appendCursor(b []byte, col, row int) []byte {
	b = append(b, "\033["...)
	b = strconv.AppendInt(b, int64(row), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col), 10)
	return append(b, 'H')
}

// ChunkWriter collects one frame of output and sends it in MTU-sized writes
// on Flush. Text placed with WriteAt is shifted by the canvas offset.
type ChunkWriter struct {
	w      io.Writer
	buf    []byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter for w with the given centring offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{w: w, offCol: offsetCol, offRow: offsetRow}
}

// SetOffset updates the centring offset after a terminal resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// Write buffers p. It never fails.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	return len(p), nil
}

// WriteString buffers s. It never fails.
func (cw *ChunkWriter) WriteString(s string) (int, error) {
	cw.buf = append(cw.buf, s...)
	return len(s), nil
}

// WriteAt buffers s at 1-based canvas cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.buf = appendCursor(cw.buf, col+cw.offCol, row+cw.offRow)
	cw.buf = append(cw.buf, s...)
}

// Flush sends the buffered frame and empties the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf
	cw.buf = cw.buf[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

var (
	_ io.Writer       = (*ChunkWriter)(nil)
	_ io.StringWriter = (*ChunkWriter)(nil)
)

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the local terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) { io.WriteString(w, seqClear) }

func HideCursor(w io.Writer) { io.WriteString(w, seqHideCursor) }
func ShowCursor(w io.Writer) { io.WriteString(w, seqShowCursor) }

// EnableMouse turns on left-button press, drag and release reports.
func EnableMouse(w io.Writer) { io.WriteString(w, seqMouseOn) }

// DisableMouse turns mouse reporting back off.
func DisableMouse(w io.Writer) { io.WriteString(w, seqMouseOff) }
