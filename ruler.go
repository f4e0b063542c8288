package curved

import (
	"fmt"
	"image"
	"math"
)

// TimelineRuler draws the time axis above the curve drawing: tick marks
// faded by level strength, time labels and the frame marker.
type TimelineRuler struct {
	Timeline

	style  Style
	ticks  *Ticks
	canvas *CommandCanvas
}

// NewTimelineRuler creates a ruler of the given size.
func NewTimelineRuler(width, height int, style Style) *TimelineRuler {
	return &TimelineRuler{
		Timeline: NewTimeline(width, height, 60, 1),
		style:    style,
		ticks:    NewTicks(TickStepTime),
		canvas:   NewCommandCanvas(),
	}
}

// Canvas returns the canvas the ruler draws into.
func (r *TimelineRuler) Canvas() *CommandCanvas { return r.canvas }

// Ticks returns the tick generator, for tuning its spacing.
func (r *TimelineRuler) Ticks() *Ticks { return r.ticks }

// Rebuild clears the canvas and redraws the ruler.
func (r *TimelineRuler) Rebuild() {
	r.canvas.Clear()

	visible := r.VisibleRange()
	perPixel := visible / float64(r.drawableWidth)
	// Ticks extend over the right padding so they do not pop at the edge.
	end := r.rangeOffset + visible + perPixel*TimelinePadding
	r.ticks.SetRange(r.rangeOffset, end, float64(r.drawableWidth+TimelinePadding))

	minutes := visible >= 60

	// Finest level first so the strongest ticks are drawn last, on top.
	for level := r.ticks.NumLevels() - 1; level >= 0; level-- {
		strength := r.ticks.LevelStrength(level)
		if strength <= 0 {
			continue
		}
		tickHeight := max(int(float64(r.height)*0.5*strength), 1)
		col := r.style.Tick.WithAlpha(strength)
		labels := level == 0

		for _, t := range r.ticks.Ticks(level) {
			if t < 0 {
				continue
			}
			x := r.Offset(t)
			if x < TimelinePadding || x > r.width {
				continue
			}
			r.canvas.DrawLine(image.Pt(x, r.height-tickHeight), image.Pt(x, r.height), col, depthTicks)
			if labels {
				r.canvas.DrawText(image.Pt(x+2, 0), formatTime(t, minutes), r.style.Text, depthText)
			}
		}
	}

	r.drawFrameMarker(r.canvas, r.style.FrameMarker, depthMarker)
}

// formatTime formats seconds for ruler labels, as m:ss when minutes is set.
func formatTime(seconds float64, minutes bool) string {
	if !minutes {
		return trimFloat(seconds)
	}
	m := int(math.Floor(seconds / 60))
	s := seconds - float64(m)*60
	return fmt.Sprintf("%d:%02d", m, int(math.Round(s)))
}

// trimFloat formats v with at most two decimals and no trailing zeros.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		return "0"
	}
	return s
}
