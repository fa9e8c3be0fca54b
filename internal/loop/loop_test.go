package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/world"
)

// syncBuffer is a bytes.Buffer safe to read while Run writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func runWithTimeout(t *testing.T, ctx context.Context, r io.Reader, w io.Writer, opts Options) {
	t.Helper()
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, bufio.NewReader(r), w, opts)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunShowsTitleAndQuits(t *testing.T) {
	var out syncBuffer
	runWithTimeout(t, context.Background(), strings.NewReader("q"), &out, Options{
		TermSizeFunc: fixedSize(80, 24),
		Rand:         rand.New(rand.NewSource(1)),
	})

	s := out.String()
	if !strings.Contains(s, "Press SPACE to start") {
		t.Error("title screen not drawn")
	}
	if !strings.HasPrefix(s, "\033[?25l") || !strings.Contains(s, "\033[?25h") {
		t.Error("cursor should be hidden while running and restored after")
	}
}

func TestRunStopsOnClosedInput(t *testing.T) {
	var out syncBuffer
	runWithTimeout(t, context.Background(), strings.NewReader(""), &out, Options{
		TermSizeFunc: fixedSize(80, 24),
	})
}

func TestRunShowsShutdownNotice(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out syncBuffer
	runWithTimeout(t, ctx, pr, &out, Options{
		TermSizeFunc:    fixedSize(80, 24),
		ShutdownDisplay: 50 * time.Millisecond,
	})

	if !strings.Contains(out.String(), "SERVER SHUTTING DOWN") {
		t.Error("shutdown notice not drawn")
	}
}

func TestRunDisconnectsIdlePlayer(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out syncBuffer
	runWithTimeout(t, context.Background(), pr, &out, Options{
		TermSizeFunc:         fixedSize(80, 24),
		InactivityWarn:       20 * time.Millisecond,
		InactivityDisconnect: 150 * time.Millisecond,
	})

	if !strings.Contains(out.String(), "INACTIVITY WARNING") {
		t.Error("inactivity warning not drawn before disconnect")
	}
}

func TestFireStartsGame(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	c, err := NewClient(bufio.NewReader(pr), io.Discard, Options{TermSizeFunc: fixedSize(80, 24)})
	if err != nil {
		t.Fatal(err)
	}

	go pw.Write([]byte(" "))

	ctx := context.Background()
	for i := 0; i < 100 && c.world.State() != world.StatePlaying; i++ {
		time.Sleep(time.Millisecond)
		c.processInput(ctx, 16*time.Millisecond)
	}
	if c.world.State() != world.StatePlaying {
		t.Fatalf("state = %v, want playing", c.world.State())
	}
	if !c.running {
		t.Error("client should still be running")
	}
}

func TestUpdateScreenClampsAndCenters(t *testing.T) {
	w, h := 80, 24
	c, err := NewClient(bufio.NewReader(strings.NewReader("")), io.Discard, Options{
		TermSizeFunc: func() (int, int, error) { return w, h, nil },
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.canvas.TerminalWidth() != 80 || c.canvas.OffsetCol() != 0 {
		t.Fatalf("unexpected initial canvas %dx%d", c.canvas.TerminalWidth(), c.canvas.TerminalHeight())
	}

	w, h = 200, 70
	c.updateScreen()
	if c.canvas.TerminalWidth() != 160 || c.canvas.TerminalHeight() != 60 {
		t.Errorf("canvas = %dx%d, want 160x60", c.canvas.TerminalWidth(), c.canvas.TerminalHeight())
	}
	if c.canvas.OffsetCol() != 20 || c.canvas.OffsetRow() != 5 {
		t.Errorf("offset = %d,%d, want 20,5", c.canvas.OffsetCol(), c.canvas.OffsetRow())
	}
	if !c.borderDirty {
		t.Error("border should be redrawn after a resize")
	}
}

func TestRotatedSquare(t *testing.T) {
	upright := rotatedSquare(10, 10, 5, 5, 0)
	want := []draw.Point{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}}
	for i := range want {
		if !near(upright[i], want[i]) {
			t.Errorf("corner %d = %v, want %v", i, upright[i], want[i])
		}
	}

	// A quarter turn maps the square onto itself, shifted by one corner.
	turned := rotatedSquare(10, 10, 5, 5, 90)
	for i := range want {
		if !near(turned[i], want[(i+1)%4]) {
			t.Errorf("turned corner %d = %v, want %v", i, turned[i], want[(i+1)%4])
		}
	}
}

func TestExplosionPolygonScales(t *testing.T) {
	x := world.ExplosionView{Box: world.Box{X: 0, Y: 0, W: 10, H: 10}, Scale: 2, Opacity: 1}
	pts := explosionPolygon(x)
	if !near(pts[0], draw.Point{X: -5, Y: -5}) || !near(pts[2], draw.Point{X: 15, Y: 15}) {
		t.Errorf("explosion polygon = %v", pts)
	}
}

func TestDrawEntitiesSkipsFaintExplosions(t *testing.T) {
	base := world.Snapshot{
		State:  world.StatePlaying,
		Player: world.Box{X: 160, Y: 213, W: 17, H: 17},
	}
	frame := func(snap world.Snapshot) string {
		canvas := draw.NewScaledCanvas(80, 30, 320, 240)
		drawEntities(canvas, &snap)
		var buf bytes.Buffer
		if err := canvas.Render(&buf); err != nil {
			t.Fatal(err)
		}
		return buf.String()
	}

	empty := frame(base)

	faint := base
	faint.Explosions = []world.ExplosionView{{Box: world.Box{X: 100, Y: 50, W: 17, H: 17}, Scale: 1.2, Opacity: 0.2}}
	if frame(faint) != empty {
		t.Error("explosions below the opacity threshold should not be drawn")
	}

	bright := faint
	bright.Explosions = []world.ExplosionView{{Box: world.Box{X: 100, Y: 50, W: 17, H: 17}, Scale: 1.2, Opacity: 0.9}}
	if frame(bright) == empty {
		t.Error("visible explosion not drawn")
	}

	title := base
	title.State = world.StateTitle
	title.Enemies = []world.EnemyView{{Box: world.Box{X: 100, Y: 50, W: 17, H: 17}}}
	titleOnly := base
	titleOnly.State = world.StateTitle
	if frame(title) != frame(titleOnly) {
		t.Error("title screen should only show stars")
	}
}

func near(a, b draw.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}
