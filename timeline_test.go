package curved

import (
	"image"
	"testing"
)

// newTestTimeline shows 6 seconds at 10 fps over 600 drawable pixels, so one
// frame is 10 pixels.
func newTestTimeline() Timeline {
	return NewTimeline(660, 20, 6, 10)
}

func TestTimeline_Defaults(t *testing.T) {
	tl := newTestTimeline()
	if tl.DrawableWidth() != 600 {
		t.Errorf("drawable width = %d, want 600", tl.DrawableWidth())
	}
	if tl.MarkedFrame() != -1 {
		t.Errorf("marked frame = %d, want -1", tl.MarkedFrame())
	}
	if tl.VisibleRange() != 6 {
		t.Errorf("visible range = %v, want 6", tl.VisibleRange())
	}
}

func TestTimeline_Frame(t *testing.T) {
	tl := newTestTimeline()
	tests := []struct {
		p    image.Point
		want int
	}{
		{image.Pt(30, 5), 0},
		{image.Pt(130, 5), 10},
		{image.Pt(134, 5), 10},
		{image.Pt(136, 5), 11},
		{image.Pt(629, 5), 60},
		{image.Pt(10, 5), -1},
		{image.Pt(630, 5), -1},
		{image.Pt(100, 25), -1},
		{image.Pt(100, -1), -1},
	}
	for _, tt := range tests {
		if got := tl.Frame(tt.p); got != tt.want {
			t.Errorf("Frame(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestTimeline_FrameOffsetRoundTrip(t *testing.T) {
	tl := newTestTimeline()
	tl.SetOffset(1.3)
	for f := 13; f < 72; f++ {
		x := tl.Offset(tl.TimeForFrame(f))
		if got := tl.Frame(image.Pt(x, 0)); got != f {
			t.Errorf("frame %d drawn at x=%d reads back as %d", f, x, got)
		}
	}
}

func TestTimeline_Offset(t *testing.T) {
	tl := newTestTimeline()
	if x := tl.Offset(1); x != 130 {
		t.Errorf("Offset(1) = %d, want 130", x)
	}
	tl.SetOffset(2)
	if x := tl.Offset(2); x != TimelinePadding {
		t.Errorf("Offset(2) = %d, want %d", x, TimelinePadding)
	}
	if tm := tl.Time(TimelinePadding); tm != 2 {
		t.Errorf("Time(padding) = %v, want 2", tm)
	}
}

func TestTimeline_WholeFrames(t *testing.T) {
	tl := NewTimeline(660, 20, 2.55, 10)
	if r := tl.VisibleRange(); !approxEqual(r, 2.5) {
		t.Errorf("visible range = %v, want 2.5", r)
	}
	tl.SetRange(0.01)
	if r := tl.VisibleRange(); !approxEqual(r, 0.1) {
		t.Errorf("visible range = %v, want one frame", r)
	}
}

func TestTimeline_Clamps(t *testing.T) {
	tl := newTestTimeline()
	tl.SetOffset(-4)
	if tl.RangeOffset() != 0 {
		t.Errorf("offset = %v, want 0", tl.RangeOffset())
	}
	tl.SetFPS(0)
	if tl.FPS() != 1 {
		t.Errorf("fps = %d, want 1", tl.FPS())
	}
	tl.SetMarkedFrame(-7)
	if tl.MarkedFrame() != -1 {
		t.Errorf("marked frame = %d, want -1", tl.MarkedFrame())
	}
	tl.SetSize(10, 10)
	if tl.DrawableWidth() != 1 {
		t.Errorf("drawable width = %d, want 1", tl.DrawableWidth())
	}
}

func TestTimeline_FrameMarker(t *testing.T) {
	tl := newTestTimeline()
	c := NewCommandCanvas()

	tl.drawFrameMarker(c, ColorWhite, 0)
	if c.Len() != 0 {
		t.Fatal("no marker expected without a marked frame")
	}

	tl.SetMarkedFrame(5)
	tl.drawFrameMarker(c, ColorWhite, 0)
	if c.Len() != 1 {
		t.Fatalf("expected 1 command, got %d", c.Len())
	}
	if x := c.Commands()[0].Points[0].X; x != 80 {
		t.Errorf("marker x = %d, want 80", x)
	}

	c.Clear()
	tl.SetMarkedFrame(500)
	tl.drawFrameMarker(c, ColorWhite, 0)
	if c.Len() != 0 {
		t.Error("marker outside the visible range should not be drawn")
	}
}
