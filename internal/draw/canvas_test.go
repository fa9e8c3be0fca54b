package draw

import (
	"bytes"
	"strings"
	"testing"
)

func render(t *testing.T, c *Canvas) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRenderHalfBlocks(t *testing.T) {
	// 1:1 scale: 4 columns, 2 rows = 4 sub-pixel rows
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(0, 0)
	c.SetFloat(1, 1)
	c.SetFloat(2, 2)
	c.SetFloat(2, 3)

	out := render(t, c)
	for _, want := range []string{"\033[1;1H▀▄  ", "\033[2;1H  █ "} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestRenderOnlyChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(0, 0)
	render(t, c)

	c.Clear()
	c.SetFloat(0, 0)
	if out := render(t, c); out != "" {
		t.Errorf("unchanged frame should write nothing, got %q", out)
	}

	c.Clear()
	if out := render(t, c); out != "\033[1;1H " {
		t.Errorf("cleared pixel should be blanked, got %q", out)
	}

	c.ForceRedraw()
	if out := render(t, c); strings.Count(out, " ") != 8 {
		t.Errorf("forced redraw should write every cell, got %q", out)
	}
}

func TestRenderOffset(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(3, 5)
	c.SetFloat(1, 0)

	out := render(t, c)
	if !strings.Contains(out, "\033[6;4H ▀") {
		t.Errorf("offset not applied: %q", out)
	}
}

func TestFillRectScales(t *testing.T) {
	// logical 8x8 onto 4 columns x 2 rows (4 sub-pixel rows): scale 0.5
	c := NewScaledCanvas(4, 2, 8, 8)
	c.FillRect(0, 0, 4, 4)

	if c.cell(0, 0) != BlockFull || c.cell(0, 1) != BlockFull {
		t.Errorf("top-left quadrant should be full: %q %q", c.cell(0, 0), c.cell(0, 1))
	}
	if c.cell(1, 0) != BlockEmpty || c.cell(0, 2) != BlockEmpty {
		t.Error("rest of canvas should be empty")
	}

	c.Clear()
	c.FillRect(5, 5, 0.1, 0.1)
	if c.cell(1, 2) == BlockEmpty {
		t.Error("tiny rectangles should still cover a pixel")
	}
}

func TestDrawPolygonFilled(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawPolygon([]Point{{1, 1}, {8, 1}, {8, 8}, {1, 8}}, true)

	if c.cell(2, 4) != BlockFull {
		t.Errorf("interior should be filled, got %q", c.cell(2, 4))
	}
	if c.cell(2, 9) != BlockEmpty {
		t.Error("outside should stay empty")
	}
}

func TestTextOverlay(t *testing.T) {
	c := NewScaledCanvas(10, 3, 10, 6)
	c.FillRect(0, 0, 10, 6)
	c.TextCentered(2, "GO")
	c.Text(9, 3, "xyz")

	if c.cell(1, 4) != 'G' || c.cell(1, 5) != 'O' {
		t.Errorf("centered text misplaced: %q%q", c.cell(1, 4), c.cell(1, 5))
	}
	if c.cell(2, 8) != 'x' || c.cell(2, 9) != 'y' {
		t.Error("text should be clipped at the right edge, not dropped")
	}

	c.Clear()
	if c.cell(1, 4) != BlockEmpty {
		t.Error("Clear should remove overlay text")
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewScaledCanvas(3, 2, 3, 4)
	var buf bytes.Buffer

	if err := c.RenderBorder(&buf); err != nil || buf.Len() != 0 {
		t.Error("no border without an offset")
	}

	c.SetOffset(2, 2)
	if err := c.RenderBorder(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\033[2;2H┌───┐") || !strings.Contains(out, "\033[5;2H└───┘") {
		t.Errorf("unexpected border %q", out)
	}
}

func TestClampSize(t *testing.T) {
	w, h, oc, or := ClampSize(200, 70, 160, 60)
	if w != 160 || h != 60 || oc != 20 || or != 5 {
		t.Errorf("ClampSize = %d %d %d %d", w, h, oc, or)
	}

	w, h, oc, or = ClampSize(80, 24, 160, 60)
	if w != 80 || h != 24 || oc != 0 || or != 0 {
		t.Errorf("small terminal should be untouched: %d %d %d %d", w, h, oc, or)
	}
}
