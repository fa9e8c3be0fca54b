// Package input turns a raw terminal byte stream into per-frame key snapshots.
package input

import (
	"bufio"
	"time"
)

// How long a key counts as held after its last byte. Terminals only report
// key repeats, never releases.
const (
	keyHoldDuration  = 30 * time.Millisecond  // Movement keys
	edgeHoldDuration = 100 * time.Millisecond // Fire, pause, restart, quit: outlasts key-repeat gaps
)

// Input is the key state sampled once per frame.
// Movement keys are level-triggered; use Edges to derive presses for the rest.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Fire    bool
	Pause   bool
	Restart bool
	Pressed []byte // Raw bytes read this frame (activity tracking)
}

// Edges returns the keys that went down between prev and in.
// Left and Right keep their level state so callers can use one value for both.
func (in Input) Edges(prev Input) Input {
	return Input{
		Quit:    in.Quit && !prev.Quit,
		Left:    in.Left,
		Right:   in.Right,
		Fire:    in.Fire && !prev.Fire,
		Pause:   in.Pause && !prev.Pause,
		Restart: in.Restart && !prev.Restart,
		Pressed: in.Pressed,
	}
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	fire    time.Time
	pause   time.Time
	restart time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Unfinished escape sequence carried to the next frame
	closed  bool
	now     func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The stream is closed when r returns an error (EOF on session end).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
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

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Reset forgets all held keys so a key press does not leak into the next screen.
func (s *Stream) Reset() {
	s.state = keyState{}
	s.pending = nil
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	now := s.now()
	var buf []byte

drain:
	for {
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

	// A sequence cut at a frame boundary waits one frame for its tail; if
	// nothing follows, it was a lone Escape.
	flush := len(buf) == 0 || s.closed
	pending := append(s.pending, buf...)
	s.pending = parseBytes(&s.state, pending, now, flush)

	return Input{
		Quit:    now.Sub(s.state.quit) < edgeHoldDuration,
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Fire:    now.Sub(s.state.fire) < edgeHoldDuration,
		Pause:   now.Sub(s.state.pause) < edgeHoldDuration,
		Restart: now.Sub(s.state.restart) < edgeHoldDuration,
		Pressed: buf,
	}
}

// parseBytes updates key timestamps from one frame's worth of bytes and
// returns a trailing incomplete escape sequence (ESC or ESC [) unless flush is set.
func parseBytes(state *keyState, buf []byte, now time.Time, flush bool) (rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByteToState(state, b, now)
			continue
		}

		switch {
		case i+1 == len(buf):
			// Lone ESC at the end of the frame.
			if !flush {
				return append([]byte(nil), buf[i:]...)
			}
			state.pause = now
		case buf[i+1] != '[':
			// ESC followed by another key is a plain Escape press.
			state.pause = now
		case i+2 == len(buf):
			// ESC [ without its final byte.
			if !flush {
				return append([]byte(nil), buf[i:]...)
			}
			i++
		default:
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'C':
				state.right = now
			case 'D':
				state.left = now
			}
			i += 2
		}
	}
	return nil
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ', '\n', '\r':
		state.fire = now
	case 'p', 'P':
		state.pause = now
	case 'r', 'R':
		state.restart = now
	}
}
