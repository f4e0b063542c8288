package curved

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewTween animates the editor's range and offset. Each axis pair finishes
// independently; nil tweens are idle.
type viewTween struct {
	rangeX, rangeY *gween.Tween
	offX, offY     *gween.Tween
}

func (t *viewTween) idle() bool {
	return t.rangeX == nil && t.rangeY == nil && t.offX == nil && t.offY == nil
}

// step advances tw by dt and writes its value into dst. It returns nil once
// the tween is finished.
func step(tw *gween.Tween, dt float32, dst *float64) *gween.Tween {
	if tw == nil {
		return nil
	}
	val, done := tw.Update(dt)
	*dst = float64(val)
	if done {
		return nil
	}
	return tw
}

// ZoomTo animates the visible time range and half-height value range to the
// given values over duration seconds. Call Update every frame to advance it.
func (e *Editor) ZoomTo(xRange, yRange float64, duration float32, easeFn ease.TweenFunc) {
	if e.view == nil {
		e.view = &viewTween{}
	}
	e.view.rangeX = gween.New(float32(e.xRange), float32(xRange), duration, easeFn)
	e.view.rangeY = gween.New(float32(e.yRange), float32(yRange), duration, easeFn)
}

// ScrollTo animates the view offset to the given one over duration seconds.
// Call Update every frame to advance it.
func (e *Editor) ScrollTo(offset Vec2, duration float32, easeFn ease.TweenFunc) {
	if e.view == nil {
		e.view = &viewTween{}
	}
	e.view.offX = gween.New(float32(e.offset.X), float32(max(offset.X, 0)), duration, easeFn)
	e.view.offY = gween.New(float32(e.offset.Y), float32(offset.Y), duration, easeFn)
}

// Animating reports whether a zoom or scroll animation is running.
func (e *Editor) Animating() bool { return e.view != nil }

// updateView advances running view animations and redraws when anything
// moved.
func (e *Editor) updateView(dt float32) {
	v := e.view
	if v == nil {
		return
	}
	prevRange := Vec2{e.xRange, e.yRange}
	prevOffset := e.offset

	v.rangeX = step(v.rangeX, dt, &e.xRange)
	v.rangeY = step(v.rangeY, dt, &e.yRange)
	v.offX = step(v.offX, dt, &e.offset.X)
	v.offY = step(v.offY, dt, &e.offset.Y)
	if v.idle() {
		e.view = nil
	}

	if (Vec2{e.xRange, e.yRange}) == prevRange && e.offset == prevOffset {
		return
	}
	e.applyRange()
	e.applyOffset()
	e.Redraw()
}
