package curved

import (
	"image"
	"math"
	"time"
)

const (
	// lineSplitWidth is the pixel width of the chords smooth segments are
	// sampled with.
	lineSplitWidth = 2
	// tangentLineDistance is the pixel distance from a keyframe to its
	// tangent handles, constant at every zoom.
	tangentLineDistance = 30
	// hitDistance is the largest pixel distance at which a keyframe or
	// tangent handle is picked.
	hitDistance = 5.0
)

// CurveInfo pairs a curve with the color it is drawn in.
type CurveInfo struct {
	Curve *Curve
	Color Color
}

// CurveDrawing renders curves into a canvas and converts between pixels and
// curve space: time along X, value along Y. Value yOffset is drawn at the
// vertical center and yRange spans the full height.
//
// The drawing owns the keyframe selection. Resetting the curves clears it.
type CurveDrawing struct {
	Timeline

	style     Style
	curves    []CurveInfo
	selection Selection
	yRange    float64
	yOffset   float64

	ticks  *Ticks
	canvas *CommandCanvas

	debug     bool
	lastStats drawStats
}

// NewCurveDrawing creates a drawing of the given size showing 60 seconds and
// values in [-10, 10].
func NewCurveDrawing(width, height int, style Style) *CurveDrawing {
	return &CurveDrawing{
		Timeline: NewTimeline(width, height, 60, 1),
		style:    style,
		yRange:   20,
		ticks:    NewTicks(TickStepTime),
		canvas:   NewCommandCanvas(),
	}
}

// Canvas returns the canvas the drawing renders into.
func (d *CurveDrawing) Canvas() *CommandCanvas { return d.canvas }

// Curves returns the drawn curves.
func (d *CurveDrawing) Curves() []CurveInfo { return d.curves }

// SetCurves replaces the drawn curves and clears the selection.
func (d *CurveDrawing) SetCurves(curves []CurveInfo) {
	d.curves = curves
	d.selection.Reset(curves)
}

// SetRange sets the visible time range and the value range spanning the full
// height.
func (d *CurveDrawing) SetRange(xRange, yRange float64) {
	d.Timeline.SetRange(xRange)
	d.yRange = yRange
}

// YRange returns the value range spanning the full height.
func (d *CurveDrawing) YRange() float64 { return d.yRange }

// SetOffset sets the time at the left edge of the drawable area and the value
// at the vertical center.
func (d *CurveDrawing) SetOffset(offset Vec2) {
	d.Timeline.SetOffset(offset.X)
	d.yOffset = offset.Y
}

// ViewOffset returns the time and value offsets.
func (d *CurveDrawing) ViewOffset() Vec2 { return Vec2{d.rangeOffset, d.yOffset} }

// SelectKeyframe selects or unselects a keyframe.
func (d *CurveDrawing) SelectKeyframe(ref KeyframeRef, selected bool) {
	if ref.Curve >= 0 && ref.Curve < len(d.curves) && d.curves[ref.Curve].Curve != nil {
		d.selection.grow(ref.Curve, d.curves[ref.Curve].Curve.Len())
	}
	d.selection.Set(ref, selected)
}

// ClearSelectedKeyframes unselects every keyframe.
func (d *CurveDrawing) ClearSelectedKeyframes() {
	d.selection.Clear()
}

// IsSelected reports whether a keyframe is selected.
func (d *CurveDrawing) IsSelected(ref KeyframeRef) bool {
	return d.selection.IsSelected(ref)
}

// SelectedKeyframes lists the selected keyframes ordered by curve ascending and
// key descending.
func (d *CurveDrawing) SelectedKeyframes() []KeyframeRef {
	return d.selection.Refs()
}

// CurveToPixelSpace returns the local pixel at which a curve-space point is
// drawn.
func (d *CurveDrawing) CurveToPixelSpace(p Vec2) image.Point {
	x := roundInt((p.X-d.rangeOffset)/d.VisibleRange()*float64(d.drawableWidth)) + TimelinePadding
	y := d.height/2 - roundInt((p.Y-d.yOffset)/d.yRange*float64(d.height))
	return image.Pt(x, y)
}

// PixelToCurveSpace converts a local pixel into curve space. It fails inside
// the padding margins and outside the drawing.
func (d *CurveDrawing) PixelToCurveSpace(p image.Point) (Vec2, bool) {
	if p.X < TimelinePadding || p.X >= d.width-TimelinePadding || p.Y < 0 || p.Y >= d.height {
		return Vec2{}, false
	}
	return d.pixelToCurve(p), true
}

// pixelToCurve converts without bounds checks, for drags that leave the
// drawing.
func (d *CurveDrawing) pixelToCurve(p image.Point) Vec2 {
	perPixelX := d.VisibleRange() / float64(d.drawableWidth)
	perPixelY := d.yRange / float64(max(d.height, 1))
	return Vec2{
		X: d.rangeOffset + float64(p.X-TimelinePadding)*perPixelX,
		Y: d.yOffset + float64(d.height/2-p.Y)*perPixelY,
	}
}

// FindKeyFrame returns the keyframe drawn nearest to p when it is at most 5
// pixels away.
func (d *CurveDrawing) FindKeyFrame(p image.Point) (KeyframeRef, bool) {
	best := KeyframeRef{Curve: -1, Key: -1}
	bestDist := math.MaxFloat64
	for ci, info := range d.curves {
		if info.Curve == nil {
			continue
		}
		for ki, k := range info.Curve.Keyframes() {
			dist := pixelDistance(p, d.CurveToPixelSpace(Vec2{k.Time, k.Value}))
			if dist < bestDist {
				bestDist = dist
				best = KeyframeRef{Curve: ci, Key: ki}
			}
		}
	}
	if bestDist > hitDistance {
		return KeyframeRef{Curve: -1, Key: -1}, false
	}
	return best, true
}

// FindTangent returns the tangent handle drawn nearest to p when it is at most
// 5 pixels away. Only handles of selected keyframes that their tangent mode
// shows are considered.
func (d *CurveDrawing) FindTangent(p image.Point) (TangentRef, bool) {
	var best TangentRef
	bestDist := math.MaxFloat64
	for ci, info := range d.curves {
		if info.Curve == nil {
			continue
		}
		modes := info.Curve.TangentModes()
		for ki, k := range info.Curve.Keyframes() {
			ref := KeyframeRef{Curve: ci, Key: ki}
			if !d.selection.IsSelected(ref) {
				continue
			}
			for _, side := range [2]TangentType{TangentIn, TangentOut} {
				if !modes[ki].ShowsHandle(side) {
					continue
				}
				dist := pixelDistance(p, d.TangentHandle(k, side))
				if dist < bestDist {
					bestDist = dist
					best = TangentRef{KeyframeRef: ref, Type: side}
				}
			}
		}
	}
	if bestDist > hitDistance {
		return TangentRef{KeyframeRef: KeyframeRef{Curve: -1, Key: -1}}, false
	}
	return best, true
}

// TangentHandle returns the pixel position of a keyframe's tangent handle. The
// handle sits a fixed pixel distance from the key along the tangent as drawn,
// so its length does not change with zoom.
func (d *CurveDrawing) TangentHandle(k Keyframe, side TangentType) image.Point {
	pos := d.CurveToPixelSpace(Vec2{k.Time, k.Value})

	var n Vec2
	if side == TangentIn {
		n = TangentToNormal(k.InTangent)
		n = Vec2{-n.X, -n.Y}
	} else {
		n = TangentToNormal(k.OutTangent)
	}

	// Curve units are not square in pixels; scale each axis by its pixels per
	// unit before renormalizing.
	n.X *= float64(d.drawableWidth) / d.VisibleRange()
	n.Y *= float64(d.height) / d.yRange
	n = n.Normalize()

	return image.Pt(
		pos.X+int(n.X*tangentLineDistance),
		pos.Y-int(n.Y*tangentLineDistance),
	)
}

// Rebuild clears the canvas and redraws tick lines, curves, keyframes,
// tangent handles of selected keys and the frame marker.
func (d *CurveDrawing) Rebuild() {
	var start time.Time
	if d.debug {
		start = time.Now()
	}

	d.canvas.Clear()
	d.drawFrameTicks()
	d.drawCenterLine()

	for _, info := range d.curves {
		if info.Curve != nil {
			d.drawCurve(info.Curve, info.Color)
		}
	}

	for ci, info := range d.curves {
		if info.Curve == nil {
			continue
		}
		modes := info.Curve.TangentModes()
		for ki, k := range info.Curve.Keyframes() {
			selected := d.selection.IsSelected(KeyframeRef{Curve: ci, Key: ki})
			d.drawKeyframe(k, selected)
			if selected {
				d.drawTangents(k, modes[ki])
			}
		}
	}

	d.drawFrameMarker(d.canvas, d.style.FrameMarker, depthMarker)

	if d.debug {
		d.lastStats = collectDrawStats(d.canvas, time.Since(start))
		d.lastStats.log("drawing")
	}
}

func (d *CurveDrawing) drawFrameTicks() {
	visible := d.VisibleRange()
	perPixel := visible / float64(d.drawableWidth)
	d.ticks.SetRange(d.rangeOffset, d.rangeOffset+visible+perPixel*TimelinePadding,
		float64(d.drawableWidth+TimelinePadding))

	for level := d.ticks.NumLevels() - 1; level >= 0; level-- {
		strength := d.ticks.LevelStrength(level)
		if strength <= 0 {
			continue
		}
		col := lerpColor(d.style.Background, d.style.Tick, strength*0.5)
		for _, t := range d.ticks.Ticks(level) {
			x := d.Offset(t)
			if x < TimelinePadding || x > d.width {
				continue
			}
			d.canvas.DrawLine(image.Pt(x, 0), image.Pt(x, d.height), col, depthTicks)
		}
	}
}

func (d *CurveDrawing) drawCenterLine() {
	y := d.CurveToPixelSpace(Vec2{0, 0}).Y
	if y < 0 || y > d.height {
		return
	}
	d.canvas.DrawLine(image.Pt(0, y), image.Pt(d.width, y), d.style.CenterLine, depthTicks)
}

// CurvePoints returns the polyline a curve is drawn with inside the visible
// range. Step segments become a horizontal then a vertical line; smooth
// segments are sampled every lineSplitWidth pixels.
func (d *CurveDrawing) CurvePoints(c *Curve) []image.Point {
	keys := c.Keyframes()
	if len(keys) < 2 {
		return nil
	}

	visible := d.VisibleRange()
	perPixel := visible / float64(d.drawableWidth)
	visStart := d.rangeOffset - perPixel*TimelinePadding
	visEnd := d.rangeOffset + visible + perPixel*TimelinePadding

	var pts []image.Point
	add := func(p Vec2) {
		px := d.CurveToPixelSpace(p)
		if n := len(pts); n > 0 && pts[n-1] == px {
			return
		}
		pts = append(pts, px)
	}

	for i := 0; i < len(keys)-1; i++ {
		lhs, rhs := keys[i], keys[i+1]
		if rhs.Time < visStart || lhs.Time > visEnd {
			continue
		}

		if IsStep(lhs.OutTangent) || IsStep(rhs.InTangent) {
			startValue := c.Evaluate(lhs.Time, false)
			endValue := c.Evaluate(rhs.Time, false)
			add(Vec2{lhs.Time, startValue})
			add(Vec2{rhs.Time, startValue})
			add(Vec2{rhs.Time, endValue})
			continue
		}

		start := math.Max(lhs.Time, visStart)
		end := math.Min(rhs.Time, visEnd)
		pixels := (end - start) / perPixel
		splits := max(int(pixels)/lineSplitWidth, 1)
		step := (end - start) / float64(splits)
		for j := 0; j <= splits; j++ {
			t := start + float64(j)*step
			if j == splits {
				t = end
			}
			add(Vec2{t, c.Evaluate(t, false)})
		}
	}
	return pts
}

func (d *CurveDrawing) drawCurve(c *Curve, col Color) {
	keys := c.Keyframes()
	if len(keys) == 0 {
		return
	}
	extension := d.style.Tick

	// Flat line from the left edge to the first key.
	first := d.CurveToPixelSpace(Vec2{keys[0].Time, c.Evaluate(keys[0].Time, false)})
	if first.X > 0 {
		d.canvas.DrawLine(image.Pt(0, first.Y), first, extension, depthCurve)
	}

	if pts := d.CurvePoints(c); len(pts) >= 2 {
		d.canvas.DrawPolyLine(pts, col, depthCurve)
	}

	// Flat line from the last key to the right edge.
	lastKey := keys[len(keys)-1]
	last := d.CurveToPixelSpace(Vec2{lastKey.Time, c.Evaluate(lastKey.Time, false)})
	if last.X < d.width {
		d.canvas.DrawLine(last, image.Pt(d.width, last.Y), extension, depthCurve)
	}
}

func (d *CurveDrawing) drawKeyframe(k Keyframe, selected bool) {
	p := d.CurveToPixelSpace(Vec2{k.Time, k.Value})
	fill, outline := ColorWhite, d.style.Keyframe
	if selected {
		outline = d.style.KeyframeActive
	}
	d.drawDiamond(p, 4, fill, outline, depthKeyframe)
}

func (d *CurveDrawing) drawTangents(k Keyframe, mode TangentMode) {
	p := d.CurveToPixelSpace(Vec2{k.Time, k.Value})
	for _, side := range [2]TangentType{TangentIn, TangentOut} {
		if !mode.ShowsHandle(side) {
			continue
		}
		h := d.TangentHandle(k, side)
		d.canvas.DrawLine(p, h, d.style.Tangent, depthTangent)
		d.drawDiamond(h, 2, d.style.Tangent, d.style.Keyframe, depthTangent)
	}
}

func (d *CurveDrawing) drawDiamond(p image.Point, size int, fill, outline Color, depth uint8) {
	left := image.Pt(p.X-size, p.Y)
	top := image.Pt(p.X, p.Y-size)
	right := image.Pt(p.X+size, p.Y)
	bottom := image.Pt(p.X, p.Y+size)
	d.canvas.DrawTriangleStrip([]image.Point{left, top, bottom, right}, fill, depth)
	d.canvas.DrawPolyLine([]image.Point{left, top, right, bottom, left}, outline, depth-1)
}

// UniqueColor returns a distinct color for the curve at index i. Eight hues
// are cycled; every further cycle shifts the hue and darkens the color.
func UniqueColor(i int) Color {
	const hues = 8
	cycle := i / hues
	hue := float64(i%hues)*360/hues + float64(cycle)*15
	value := math.Max(0.95-float64(cycle)*0.1, 0.5)
	return ColorFromHSV(hue, 0.75, value)
}

func pixelDistance(a, b image.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
