package draw

import (
	"bytes"
	"math"
	"testing"
)

func TestFillCircle(t *testing.T) {
	c := NewCanvas(20, 10) // 20x20 logical, 1:1
	c.FillCircle(10, 10, 4)

	if !c.Get(10, 10) {
		t.Fatalf("centre not filled")
	}
	if c.Get(10, 3) || c.Get(3, 10) {
		t.Fatalf("pixel outside the radius filled")
	}
}

func TestDrawCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(10, 10, 4)

	if c.Get(10, 10) {
		t.Fatalf("outline filled the centre")
	}
	if !c.Get(14, 10) || !c.Get(10, 14) {
		t.Fatalf("outline missing on an axis")
	}
}

func TestCirclesClipToCanvas(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillCircle(-10, -10, 20)
	c.DrawCircle(100, 100, 30)
	if !c.Get(0, 0) {
		t.Fatalf("partially visible circle not drawn")
	}
}

func TestFillDiamond(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillDiamond(10, 10, 4)

	if !c.Get(10, 10) || !c.Get(12, 10) || !c.Get(10, 12) {
		t.Fatalf("diamond interior not filled")
	}
	// Inside the bounding square but outside the diamond.
	if c.Get(13, 13) || c.Get(6, 6) {
		t.Fatalf("diamond filled its corners")
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		want   [][2]int
	}{
		{"horizontal", Point{2, 3}, Point{6, 3}, [][2]int{{2, 3}, {4, 3}, {6, 3}}},
		{"vertical", Point{5, 9}, Point{5, 1}, [][2]int{{5, 9}, {5, 5}, {5, 1}}},
		{"diagonal", Point{0, 0}, Point{4, 4}, [][2]int{{0, 0}, {2, 2}, {4, 4}}},
		{"steep", Point{1, 1}, Point{3, 9}, [][2]int{{1, 1}, {3, 9}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCanvas(10, 5)
			c.DrawLine(tc.p1, tc.p2)
			for _, px := range tc.want {
				if !c.Get(px[0], px[1]) {
					t.Fatalf("pixel %v not set", px)
				}
			}
		})
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(2, 1)

	var buf bytes.Buffer
	c.RenderBorder(&buf)
	if buf.Len() != 0 {
		t.Fatalf("border drawn without offset: %q", buf.String())
	}

	c.SetOffset(1, 1)
	c.RenderBorder(&buf)
	want := "\033[1;1H┌──┐\033[3;1H└──┘\033[2;1H│\033[2;4H│"
	if got := buf.String(); got != want {
		t.Fatalf("RenderBorder = %q, want %q", got, want)
	}
}

func TestRenderWritesFullRows(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetFloat(0, 0)
	c.SetFloat(0, 1)
	c.SetFloat(1, 1)

	var buf bytes.Buffer
	c.Render(&buf)
	if got, want := buf.String(), "\033[1;1H█▄ "; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}

	c.Clear()
	buf.Reset()
	c.Render(&buf)
	if got, want := buf.String(), "\033[1;1H   "; got != want {
		t.Fatalf("Render after Clear = %q, want %q", got, want)
	}
}

func TestTerminalToLogical(t *testing.T) {
	c := NewScaledCanvas(100, 50, 1200, 800)
	x, y := c.TerminalToLogical(51, 26)
	if math.Abs(x-606) > 1e-9 || math.Abs(y-408) > 1e-9 {
		t.Fatalf("TerminalToLogical = (%v, %v), want (606, 408)", x, y)
	}

	c.SetOffset(5, 2)
	x2, y2 := c.TerminalToLogical(56, 28)
	if math.Abs(x2-x) > 1e-9 || math.Abs(y2-y) > 1e-9 {
		t.Fatalf("offset not removed: (%v, %v)", x2, y2)
	}
}

type recordingWriter struct {
	writes []int
	bytes.Buffer
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	r.writes = append(r.writes, len(p))
	return r.Buffer.Write(p)
}

func TestChunkWriterFlushSplitsLargeFrames(t *testing.T) {
	var out recordingWriter
	cw := NewChunkWriter(&out, 0, 0)
	frame := bytes.Repeat([]byte("x"), 2*maxChunkSize+10)
	cw.Write(frame)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(out.writes) != 3 {
		t.Fatalf("writes = %v, want 3 chunks", out.writes)
	}
	for _, n := range out.writes {
		if n > maxChunkSize {
			t.Fatalf("chunk of %d bytes exceeds %d", n, maxChunkSize)
		}
	}
	if !bytes.Equal(out.Bytes(), frame) {
		t.Fatalf("frame corrupted in transit")
	}

	if err := cw.Flush(); err != nil || len(out.writes) != 3 {
		t.Fatalf("second Flush wrote again: %v, %v", out.writes, err)
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 3)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, want := buf.String(), "\033[4;3Hhi"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
