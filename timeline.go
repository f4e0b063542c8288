package curved

import (
	"image"
	"math"
)

// TimelinePadding is the dead zone, in pixels, on both horizontal edges of a
// timeline. Pixels inside it map to no frame.
const TimelinePadding = 30

// Timeline maps between pixels and time for a horizontally scrolling, frame
// based view. It is embedded by the panels that share the time axis: the
// ruler, the events bar and the curve drawing.
//
// The visible range is always a whole number of frames, so frame boundaries
// land on the same pixels at every scroll offset.
type Timeline struct {
	width, height int
	drawableWidth int

	rangeLength float64
	rangeOffset float64
	fps         int
	markedFrame int
}

// NewTimeline creates a timeline showing rangeLength seconds at the given
// frame rate.
func NewTimeline(width, height int, rangeLength float64, fps int) Timeline {
	t := Timeline{rangeLength: rangeLength, fps: 1, markedFrame: -1}
	t.SetFPS(fps)
	t.SetSize(width, height)
	return t
}

// SetSize sets the pixel size of the timeline.
func (t *Timeline) SetSize(width, height int) {
	t.width = max(width, 0)
	t.height = max(height, 0)
	t.drawableWidth = max(t.width-2*TimelinePadding, 1)
}

// Size returns the pixel size of the timeline.
func (t *Timeline) Size() (width, height int) { return t.width, t.height }

// DrawableWidth returns the width between the two padding margins.
func (t *Timeline) DrawableWidth() int { return t.drawableWidth }

// SetRange sets the requested visible time range in seconds.
func (t *Timeline) SetRange(length float64) {
	t.rangeLength = math.Max(length, 0)
}

// SetOffset sets the time shown at the left edge of the drawable area.
// Negative offsets are clamped to zero.
func (t *Timeline) SetOffset(offset float64) {
	t.rangeOffset = math.Max(offset, 0)
}

// RangeOffset returns the time at the left edge of the drawable area.
func (t *Timeline) RangeOffset() float64 { return t.rangeOffset }

// SetFPS sets the frame rate. Values below 1 are raised to 1.
func (t *Timeline) SetFPS(fps int) {
	t.fps = max(fps, 1)
}

// FPS returns the frame rate.
func (t *Timeline) FPS() int { return t.fps }

// SetMarkedFrame moves the frame marker. -1 hides it.
func (t *Timeline) SetMarkedFrame(frame int) {
	t.markedFrame = max(frame, -1)
}

// MarkedFrame returns the marked frame, or -1 when none is marked.
func (t *Timeline) MarkedFrame() int { return t.markedFrame }

// VisibleRange returns the requested range rounded down to a whole number of
// frames, and never shorter than a single frame.
func (t *Timeline) VisibleRange() float64 {
	frames := math.Floor(t.rangeLength * float64(t.fps))
	if frames < 1 {
		frames = 1
	}
	return frames / float64(t.fps)
}

// InDrawableArea reports whether p lies inside the timeline and outside the
// padding margins.
func (t *Timeline) InDrawableArea(p image.Point) bool {
	return p.X >= TimelinePadding && p.X < t.width-TimelinePadding &&
		p.Y >= 0 && p.Y < t.height
}

// Time converts a local x pixel into time. The result is meaningful for any x;
// callers wanting the dead zone use Frame or InDrawableArea.
func (t *Timeline) Time(x int) float64 {
	perPixel := t.VisibleRange() / float64(t.drawableWidth)
	return t.rangeOffset + float64(x-TimelinePadding)*perPixel
}

// Frame returns the frame under p, or -1 when p is inside the padding or
// outside the timeline.
func (t *Timeline) Frame(p image.Point) int {
	if !t.InDrawableArea(p) {
		return -1
	}
	return roundInt(t.Time(p.X) * float64(t.fps))
}

// Offset returns the local x pixel at which time t is drawn.
func (t *Timeline) Offset(time float64) int {
	return roundInt((time-t.rangeOffset)/t.VisibleRange()*float64(t.drawableWidth)) + TimelinePadding
}

// TimeForFrame returns the start time of a frame.
func (t *Timeline) TimeForFrame(frame int) float64 {
	return float64(frame) / float64(t.fps)
}

// drawFrameMarker draws the vertical marked-frame line when the marked frame
// is within the visible range.
func (t *Timeline) drawFrameMarker(c Canvas, col Color, depth uint8) {
	if t.markedFrame < 0 {
		return
	}
	x := t.Offset(t.TimeForFrame(t.markedFrame))
	if x < TimelinePadding || x > t.width-TimelinePadding {
		return
	}
	c.DrawLine(image.Pt(x, 0), image.Pt(x, t.height), col, depth)
}
