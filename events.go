package curved

import (
	"image"
	"math"
)

// AnimationEvent is a named trigger fired when playback crosses Time.
type AnimationEvent struct {
	Name string  `json:"name" yaml:"name"`
	Time float64 `json:"time" yaml:"time"`
}

// eventHitDistance is the horizontal distance, in pixels, within which a
// pointer picks an event marker.
const eventHitDistance = 5

// EventsBar is a thin timeline strip showing animation events as markers.
type EventsBar struct {
	Timeline

	style    Style
	events   []AnimationEvent
	selected []bool
	canvas   *CommandCanvas
}

// NewEventsBar creates an events bar of the given size.
func NewEventsBar(width, height int, style Style) *EventsBar {
	return &EventsBar{
		Timeline: NewTimeline(width, height, 60, 1),
		style:    style,
		canvas:   NewCommandCanvas(),
	}
}

// Canvas returns the canvas the bar draws into.
func (b *EventsBar) Canvas() *CommandCanvas { return b.canvas }

// SetEvents sets the displayed events and which of them are selected.
// selected may be shorter than events; missing entries are unselected.
func (b *EventsBar) SetEvents(events []AnimationEvent, selected []bool) {
	b.events = events
	b.selected = selected
}

func (b *EventsBar) isSelected(i int) bool {
	return i < len(b.selected) && b.selected[i]
}

// FindEvent returns the index of the event nearest to p, if one lies within
// the hit distance and p is inside the bar.
func (b *EventsBar) FindEvent(p image.Point) (int, bool) {
	if p.Y < 0 || p.Y >= b.height || p.X < 0 || p.X >= b.width {
		return -1, false
	}
	best, bestDist := -1, math.MaxInt
	for i, e := range b.events {
		d := p.X - b.Offset(e.Time)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist > eventHitDistance {
		return -1, false
	}
	return best, true
}

// Rebuild clears the canvas and redraws the markers.
func (b *EventsBar) Rebuild() {
	b.canvas.Clear()
	for i, e := range b.events {
		x := b.Offset(e.Time)
		if x < TimelinePadding || x > b.width-TimelinePadding {
			continue
		}
		col := b.style.Event
		if b.isSelected(i) {
			col = b.style.EventActive
		}
		b.canvas.DrawTriangleStrip([]image.Point{
			{x - 3, 0}, {x + 3, 0}, {x - 3, b.height - 3}, {x + 3, b.height - 3}, {x, b.height},
		}, col, depthKeyframe)
	}
	b.drawFrameMarker(b.canvas, b.style.FrameMarker, depthMarker)
}
