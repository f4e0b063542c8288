package curved

import (
	"image"
	"testing"
)

func TestCommandCanvas_DepthOrder(t *testing.T) {
	c := NewCommandCanvas()
	c.DrawText(image.Pt(0, 0), "top", ColorWhite, 1)
	c.DrawText(image.Pt(0, 0), "bottom", ColorWhite, 200)
	c.DrawText(image.Pt(0, 0), "middle", ColorWhite, 50)

	cmds := c.Commands()
	want := []string{"bottom", "middle", "top"}
	for i, w := range want {
		if cmds[i].Text != w {
			t.Errorf("command %d = %q, want %q", i, cmds[i].Text, w)
		}
	}
}

func TestCommandCanvas_StableWithinDepth(t *testing.T) {
	c := NewCommandCanvas()
	labels := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	for i, l := range labels {
		depth := uint8(10)
		if i%2 == 1 {
			depth = 20
		}
		c.DrawText(image.Pt(i, 0), l, ColorWhite, depth)
	}

	var got string
	for _, cmd := range c.Commands() {
		got += cmd.Text
	}
	if want := "bdfhjacegik"; got != want {
		t.Errorf("paint order = %q, want %q", got, want)
	}
}

func TestCommandCanvas_CopiesPoints(t *testing.T) {
	c := NewCommandCanvas()
	pts := []image.Point{{0, 0}, {10, 0}, {10, 10}}
	c.DrawPolyLine(pts, ColorWhite, 0)
	c.DrawTriangleStrip(pts, ColorWhite, 0)
	pts[0] = image.Pt(99, 99)

	for _, cmd := range c.Commands() {
		if cmd.Points[0] != image.Pt(0, 0) {
			t.Errorf("%s kept a reference to the caller's points", cmd.Type)
		}
	}
}

func TestCommandCanvas_IgnoresDegenerate(t *testing.T) {
	c := NewCommandCanvas()
	c.DrawPolyLine([]image.Point{{0, 0}}, ColorWhite, 0)
	c.DrawTriangleStrip([]image.Point{{0, 0}, {1, 1}}, ColorWhite, 0)
	if c.Len() != 0 {
		t.Errorf("expected no commands, got %d", c.Len())
	}
}

func TestCommandCanvas_ClearAndCount(t *testing.T) {
	c := NewCommandCanvas()
	c.DrawLine(image.Pt(0, 0), image.Pt(1, 1), ColorWhite, 3)
	c.DrawLine(image.Pt(0, 0), image.Pt(1, 1), ColorWhite, 9)
	c.DrawText(image.Pt(0, 0), "x", ColorWhite, 1)

	if n := c.CountByType(CommandLine); n != 2 {
		t.Errorf("expected 2 lines, got %d", n)
	}
	if n := c.CountByType(CommandText); n != 1 {
		t.Errorf("expected 1 text, got %d", n)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("expected empty canvas, got %d", c.Len())
	}
	// Order restarts after Clear.
	c.DrawText(image.Pt(0, 0), "first", ColorWhite, 5)
	c.DrawText(image.Pt(0, 0), "second", ColorWhite, 5)
	if cmds := c.Commands(); cmds[0].Text != "first" {
		t.Errorf("got %q first", cmds[0].Text)
	}
}

func TestCommandType_String(t *testing.T) {
	if CommandTriangleStrip.String() != "strip" {
		t.Errorf("got %q", CommandTriangleStrip.String())
	}
	if CommandType(42).String() != "unknown" {
		t.Errorf("got %q", CommandType(42).String())
	}
}
