package curved

import "image"

// ValueSidebar is a vertical ruler listing curve values. The top edge shows
// the maximum of its range and the bottom edge the minimum.
type ValueSidebar struct {
	width, height int
	min, max      float64

	style  Style
	ticks  *Ticks
	canvas *CommandCanvas
}

// NewValueSidebar creates a sidebar of the given size showing [-1, 1].
func NewValueSidebar(width, height int, style Style) *ValueSidebar {
	s := &ValueSidebar{
		min:    -1,
		max:    1,
		style:  style,
		ticks:  NewTicks(TickStepGeneric),
		canvas: NewCommandCanvas(),
	}
	s.ticks.SetTickSpacing(10, 60)
	s.SetSize(width, height)
	return s
}

// Canvas returns the canvas the sidebar draws into.
func (s *ValueSidebar) Canvas() *CommandCanvas { return s.canvas }

// SetSize sets the pixel size of the sidebar.
func (s *ValueSidebar) SetSize(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
}

// SetRange sets the values shown at the bottom (min) and top (max) edges.
func (s *ValueSidebar) SetRange(min, max float64) {
	s.min = min
	s.max = max
}

// Range returns the values shown at the bottom and top edges.
func (s *ValueSidebar) Range() (min, max float64) { return s.min, s.max }

// ValueToPixel returns the y pixel at which v is drawn.
func (s *ValueSidebar) ValueToPixel(v float64) int {
	return roundInt((s.max - v) / (s.max - s.min) * float64(s.height))
}

// Rebuild clears the canvas and redraws the sidebar.
func (s *ValueSidebar) Rebuild() {
	s.canvas.Clear()
	s.canvas.DrawTriangleStrip([]image.Point{
		{0, 0}, {s.width, 0}, {0, s.height}, {s.width, s.height},
	}, s.style.Sidebar, depthBackground)

	if s.height == 0 || s.max == s.min {
		return
	}
	s.ticks.SetRange(s.min, s.max, float64(s.height))

	for level := s.ticks.NumLevels() - 1; level >= 0; level-- {
		strength := s.ticks.LevelStrength(level)
		if strength <= 0 {
			continue
		}
		tickWidth := max(int(float64(s.width)*0.3*strength), 1)
		col := s.style.Tick.WithAlpha(strength)
		for _, v := range s.ticks.Ticks(level) {
			y := s.ValueToPixel(v)
			if y < 0 || y > s.height {
				continue
			}
			s.canvas.DrawLine(image.Pt(s.width-tickWidth, y), image.Pt(s.width, y), col, depthTicks)
			if level == 0 {
				s.canvas.DrawText(image.Pt(2, y-6), trimFloat(v), s.style.Text, depthText)
			}
		}
	}
}
