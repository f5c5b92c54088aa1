// Package input turns a raw terminal byte stream into per-frame key and mouse state.
package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, so held aim keys rely on it.
const keyHoldDuration = 60 * time.Millisecond

// MouseAction identifies what a mouse event reports.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseDrag
	MouseRelease
)

// MouseEvent is a left-button event at a 1-based terminal cell.
type MouseEvent struct {
	Action MouseAction
	Col    int
	Row    int
}

// Input represents the current frame's input state.
type Input struct {
	// Held keys, true while repeats keep arriving.
	Left  bool
	Right bool
	Up    bool
	Down  bool

	// Keys pressed since the previous frame.
	Quit    bool
	Space   bool
	Enter   bool
	Restart bool
	Any     bool // Any key at all; mouse reports do not count

	Mouse   []MouseEvent
	Pressed []byte
	Closed  bool // The underlying reader failed or hit EOF
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for held keys.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

// ResetKeyInput forgets held keys so a press from before a screen change
// does not leak into the next one.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses arrow keys, SGR mouse reports and plain keys.
func ReadInput(s *Stream) Input {
	return readInput(s, time.Now())
}

func readInput(s *Stream, now time.Time) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Pressed: buf, Closed: s.closed}
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				in.Any = true
				i += 2
				continue
			case 'B':
				s.state.down = now
				in.Any = true
				i += 2
				continue
			case 'C':
				s.state.right = now
				in.Any = true
				i += 2
				continue
			case 'D':
				s.state.left = now
				in.Any = true
				i += 2
				continue
			case '<':
				if ev, n, ok := parseMouse(buf[i+3:]); ok {
					if ev.Action >= 0 {
						in.Mouse = append(in.Mouse, ev)
					}
					i += 2 + n
					continue
				}
			}
		}

		in.Any = true
		applyByte(&s.state, &in, b, now)
	}

	in.Left = in.Left || now.Sub(s.state.left) < keyHoldDuration
	in.Right = in.Right || now.Sub(s.state.right) < keyHoldDuration
	in.Up = in.Up || now.Sub(s.state.up) < keyHoldDuration
	in.Down = in.Down || now.Sub(s.state.down) < keyHoldDuration
	return in
}

// applyByte updates key state for a single plain byte.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case 'r', 'R':
		in.Restart = true
	case ' ':
		in.Space = true
	case '\n', '\r':
		in.Enter = true
	}
}

// parseMouse decodes the body of an SGR mouse report, "b;col;row" followed by
// 'M' (press or drag) or 'm' (release). n is the number of bytes consumed.
// Events for buttons other than the left one are consumed with Action -1.
func parseMouse(p []byte) (ev MouseEvent, n int, ok bool) {
	var fields [3]int
	field, start := 0, 0
	for n = 0; n < len(p); n++ {
		c := p[n]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' || c == 'M' || c == 'm':
			v, err := strconv.Atoi(string(p[start:n]))
			if err != nil || field > 2 {
				return MouseEvent{}, 0, false
			}
			fields[field] = v
			field++
			start = n + 1
			if c == ';' {
				continue
			}
			if field != 3 {
				return MouseEvent{}, 0, false
			}
			ev = MouseEvent{Col: fields[1], Row: fields[2]}
			button := fields[0]
			switch {
			case button&(64|3) != 0:
				ev.Action = -1 // Wheel, middle or right button
			case c == 'm':
				ev.Action = MouseRelease
			case button&32 != 0:
				ev.Action = MouseDrag
			default:
				ev.Action = MousePress
			}
			return ev, n + 1, true
		default:
			return MouseEvent{}, 0, false
		}
	}
	return MouseEvent{}, 0, false
}
