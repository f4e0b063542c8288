package curved

import (
	"image"
	"log/slog"
	"strings"
)

// Editor layout, in pixels.
const (
	TimelineHeight = 20
	EventsHeight   = 10
	SidebarWidth   = 30
)

// DefaultDragStartDistance is how far, in pixels, the pointer must travel
// with the left button held over a key or tangent before a drag starts.
const DefaultDragStartDistance = 3

const readOnlyMessage = "You cannot edit keyframes on animation clips that are imported from an external file."

// eventInfo is an animation event with its selection state.
type eventInfo struct {
	event    AnimationEvent
	selected bool
}

// Panel is one drawn region of the editor, for renderers.
type Panel struct {
	Name   string
	Bounds Rect
	Canvas *CommandCanvas
}

// Editor is the curve editor controller. It lays out a time ruler, an
// events bar, the curve drawing and a value sidebar; routes pointer and key
// input to selection, drag and context-menu actions; and mutates curves and
// events in response.
//
// All methods must be called from the goroutine driving the UI.
type Editor struct {
	cfg   Config
	host  Host
	style Style

	ruler   *TimelineRuler
	events  *EventsBar
	drawing *CurveDrawing
	sidebar *ValueSidebar

	curves         []CurveInfo
	animEvents     []eventInfo
	componentNames []string
	readOnly       bool

	xRange, yRange float64
	offset         Vec2
	width, height  int
	markedFrame    int

	blankMenu      *ContextMenu
	keyframeMenu   *ContextMenu
	blankEventMenu *ContextMenu
	eventMenu      *ContextMenu
	openMenu       *ContextMenu
	contextPos     image.Point

	pointerHeld        bool
	pressedOverKey     bool
	pressedOverTangent bool
	dragging           bool
	dragStart          image.Point
	draggedKeys        []DraggedKey
	draggedTangent     TangentRef
	dragHandler        DragHandler

	// OnFrameSelected fires when the user picks a frame, with -1 when a
	// click selected no frame.
	OnFrameSelected func(frame int)
	// OnCurveModified fires after keyframes are added, removed or edited.
	OnCurveModified func()
	// OnEventAdded fires after an animation event is added.
	OnEventAdded func()
	// OnEventModified fires after an animation event is edited.
	OnEventModified func()
	// OnEventDeleted fires after animation events are deleted.
	OnEventDeleted func()

	sink EventSink

	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string
	view            *viewTween

	debug bool
}

// NewEditor creates an editor. A nil host discards menus, forms and
// messages.
func NewEditor(cfg Config, host Host) *Editor {
	cfg = cfg.withDefaults()
	if host == nil {
		host = nopHost{}
	}
	e := &Editor{
		cfg:         cfg,
		host:        host,
		style:       cfg.Style,
		xRange:      cfg.XRange,
		yRange:      cfg.YRange,
		readOnly:    cfg.ReadOnly,
		markedFrame: -1,
		dragHandler: KeyframeDragger{},
	}

	e.ruler = NewTimelineRuler(cfg.Width, TimelineHeight, e.style)
	e.events = NewEventsBar(cfg.Width, EventsHeight, e.style)
	e.drawing = NewCurveDrawing(cfg.Width, cfg.Height-TimelineHeight-EventsHeight, e.style)
	e.sidebar = NewValueSidebar(SidebarWidth, cfg.Height-TimelineHeight-EventsHeight, e.style)
	e.ruler.Ticks().SetTickSpacing(cfg.MinTickSpacing, cfg.MaxTickSpacing)
	e.drawing.ticks.SetTickSpacing(cfg.MinTickSpacing, cfg.MaxTickSpacing)

	e.buildMenus()
	e.width, e.height = cfg.Width, cfg.Height
	e.applyFPS(cfg.FPS)
	e.applyRange()
	e.applyOffset()
	e.SetDebugMode(cfg.Debug)
	e.Redraw()
	return e
}

func (e *Editor) buildMenus() {
	e.blankMenu = &ContextMenu{}
	e.blankMenu.AddItem("Add keyframe", e.addKeyframeAtContext)

	e.blankEventMenu = &ContextMenu{}
	e.blankEventMenu.AddItem("Add event", e.addEventAtContext)

	e.keyframeMenu = &ContextMenu{}
	e.keyframeMenu.AddItem("Delete", e.DeleteSelectedKeyframes)
	e.keyframeMenu.AddItem("Edit", e.EditSelectedKeyframe)
	modes := []struct {
		path string
		mode TangentMode
	}{
		{"Tangents/Auto", TangentAuto},
		{"Tangents/Free", TangentFree},
		{"Tangents/In/Auto", TangentInAuto},
		{"Tangents/In/Free", TangentInFree},
		{"Tangents/In/Linear", TangentInLinear},
		{"Tangents/In/Step", TangentInStep},
		{"Tangents/Out/Auto", TangentOutAuto},
		{"Tangents/Out/Free", TangentOutFree},
		{"Tangents/Out/Linear", TangentOutLinear},
		{"Tangents/Out/Step", TangentOutStep},
	}
	for _, m := range modes {
		mode := m.mode
		e.keyframeMenu.AddItem(m.path, func() { e.ChangeSelectionTangentMode(mode) })
	}

	e.eventMenu = &ContextMenu{}
	e.eventMenu.AddItem("Delete", e.DeleteSelectedEvents)
	e.eventMenu.AddItem("Edit", e.EditSelectedEvent)
}

// --- Layout ---

func (e *Editor) drawingBounds() Rect {
	return Rect{X: 0, Y: TimelineHeight + EventsHeight, Width: e.width, Height: e.drawingHeight()}
}

func (e *Editor) eventsBounds() Rect {
	return Rect{X: 0, Y: TimelineHeight, Width: e.width, Height: EventsHeight}
}

func (e *Editor) drawingHeight() int {
	return max(e.height-TimelineHeight-EventsHeight, 0)
}

// Panels lists the editor's panels in paint order.
func (e *Editor) Panels() []Panel {
	db := e.drawingBounds()
	return []Panel{
		{Name: "drawing", Bounds: db, Canvas: e.drawing.Canvas()},
		{Name: "sidebar", Bounds: Rect{X: 0, Y: db.Y, Width: SidebarWidth, Height: db.Height}, Canvas: e.sidebar.Canvas()},
		{Name: "timeline", Bounds: Rect{X: 0, Y: 0, Width: e.width, Height: TimelineHeight}, Canvas: e.ruler.Canvas()},
		{Name: "events", Bounds: e.eventsBounds(), Canvas: e.events.Canvas()},
	}
}

// Size returns the editor size in pixels.
func (e *Editor) Size() (width, height int) { return e.width, e.height }

// SetSize resizes the editor and its panels.
func (e *Editor) SetSize(width, height int) {
	e.width, e.height = width, height
	e.ruler.SetSize(width, TimelineHeight)
	e.events.SetSize(width, EventsHeight)
	e.drawing.SetSize(width, e.drawingHeight())
	e.sidebar.SetSize(SidebarWidth, e.drawingHeight())
	e.Redraw()
}

// Style returns the colors the editor draws with.
func (e *Editor) Style() Style { return e.style }

// Drawing returns the curve drawing panel.
func (e *Editor) Drawing() *CurveDrawing { return e.drawing }

// --- View ---

// Range returns the visible time range and the half-height value range: the
// drawing shows values in [offset.Y - y, offset.Y + y].
func (e *Editor) Range() Vec2 { return Vec2{e.xRange, e.yRange} }

// SetRange sets the visible time range and the half-height value range.
func (e *Editor) SetRange(xRange, yRange float64) {
	e.xRange, e.yRange = xRange, yRange
	e.applyRange()
	e.Redraw()
}

func (e *Editor) applyRange() {
	e.ruler.SetRange(e.xRange)
	e.events.SetRange(e.xRange)
	e.drawing.SetRange(e.xRange, e.yRange*2)
	e.sidebar.SetRange(e.offset.Y-e.yRange, e.offset.Y+e.yRange)
}

// Offset returns the time at the left edge and the value at the center.
func (e *Editor) Offset() Vec2 { return e.offset }

// SetOffset scrolls the view. Negative times are clamped to zero.
func (e *Editor) SetOffset(offset Vec2) {
	e.offset = offset
	e.applyOffset()
	e.Redraw()
}

func (e *Editor) applyOffset() {
	if e.offset.X < 0 {
		e.offset.X = 0
	}
	e.ruler.SetOffset(e.offset.X)
	e.events.SetOffset(e.offset.X)
	e.drawing.SetOffset(e.offset)
	e.sidebar.SetRange(e.offset.Y-e.yRange, e.offset.Y+e.yRange)
}

// SetFPS sets the frame rate used for frame picking and the marker.
func (e *Editor) SetFPS(fps int) {
	e.applyFPS(fps)
	e.Redraw()
}

func (e *Editor) applyFPS(fps int) {
	e.ruler.SetFPS(fps)
	e.events.SetFPS(fps)
	e.drawing.SetFPS(fps)
}

// FPS returns the frame rate.
func (e *Editor) FPS() int { return e.drawing.FPS() }

// SetMarkedFrame moves the frame marker; -1 hides it.
func (e *Editor) SetMarkedFrame(frame int) {
	e.markedFrame = max(frame, -1)
	e.ruler.SetMarkedFrame(e.markedFrame)
	e.events.SetMarkedFrame(e.markedFrame)
	e.drawing.SetMarkedFrame(e.markedFrame)
	e.Redraw()
}

// MarkedFrame returns the marked frame, or -1.
func (e *Editor) MarkedFrame() int { return e.markedFrame }

// TimeForFrame returns the start time of a frame.
func (e *Editor) TimeForFrame(frame int) float64 {
	return e.drawing.TimeForFrame(frame)
}

// PixelToCurveSpace converts a pixel relative to the curve drawing into curve
// space.
func (e *Editor) PixelToCurveSpace(p image.Point) (Vec2, bool) {
	return e.drawing.PixelToCurveSpace(p)
}

// CurveToPixelSpace converts curve space into a pixel relative to the curve
// drawing.
func (e *Editor) CurveToPixelSpace(p Vec2) image.Point {
	return e.drawing.CurveToPixelSpace(p)
}

// WindowToCurveSpace converts an editor-local pixel into curve space.
func (e *Editor) WindowToCurveSpace(p image.Point) (Vec2, bool) {
	return e.drawing.PixelToCurveSpace(e.drawingBounds().Local(p))
}

// --- Content ---

// SetCurves replaces the edited curves. The selection is cleared.
func (e *Editor) SetCurves(curves []CurveInfo) {
	e.curves = curves
	e.drawing.SetCurves(curves)
	e.clearSelection()
	if e.debug {
		debugCheckCurves(curves)
	}
	e.Redraw()
}

// Curves returns the edited curves.
func (e *Editor) Curves() []CurveInfo { return e.curves }

// SetReadOnly forbids curve edits. Events stay editable.
func (e *Editor) SetReadOnly(readOnly bool) { e.readOnly = readOnly }

// ReadOnly reports whether curve edits are forbidden.
func (e *Editor) ReadOnly() bool { return e.readOnly }

// SetEvents replaces the animation events. The event selection is cleared.
func (e *Editor) SetEvents(events []AnimationEvent) {
	e.animEvents = e.animEvents[:0]
	for _, ev := range events {
		e.animEvents = append(e.animEvents, eventInfo{event: ev})
	}
	e.updateEvents()
}

// Events returns a copy of the animation events.
func (e *Editor) Events() []AnimationEvent {
	out := make([]AnimationEvent, len(e.animEvents))
	for i, ev := range e.animEvents {
		out[i] = ev.event
	}
	return out
}

// SelectedEvents returns the indices of the selected events.
func (e *Editor) SelectedEvents() []int {
	var out []int
	for i, ev := range e.animEvents {
		if ev.selected {
			out = append(out, i)
		}
	}
	return out
}

// SetComponentNames sets the component names offered when editing an event.
func (e *Editor) SetComponentNames(names []string) {
	e.componentNames = append(e.componentNames[:0], names...)
}

// SetDragHandler replaces the handler that moves keys and tangents on drag.
// A nil handler disables dragging; presses then only select.
func (e *Editor) SetDragHandler(h DragHandler) { e.dragHandler = h }

// SetEventSink routes every editor notification to sink as well as to the
// callbacks.
func (e *Editor) SetEventSink(sink EventSink) { e.sink = sink }

// SetDebugMode enables rebuild statistics logged at debug level.
func (e *Editor) SetDebugMode(enabled bool) {
	e.debug = enabled
	e.drawing.debug = enabled
}

// --- Selection ---

// SelectedKeyframes lists the selected keyframes, by curve ascending and key
// descending.
func (e *Editor) SelectedKeyframes() []KeyframeRef {
	return e.drawing.SelectedKeyframes()
}

// SelectKeyframe adds a keyframe to the selection.
func (e *Editor) SelectKeyframe(ref KeyframeRef) {
	e.drawing.SelectKeyframe(ref, true)
}

// IsSelected reports whether a keyframe is selected.
func (e *Editor) IsSelected(ref KeyframeRef) bool {
	return e.drawing.IsSelected(ref)
}

// ClearSelection unselects all keyframes and events.
func (e *Editor) ClearSelection() {
	e.clearSelection()
	e.drawing.Rebuild()
	e.updateEvents()
}

func (e *Editor) clearSelection() {
	e.drawing.ClearSelectedKeyframes()
	for i := range e.animEvents {
		e.animEvents[i].selected = false
	}
}

// resetSelection resizes the selection after key counts changed and clears
// it.
func (e *Editor) resetSelection() {
	e.drawing.SetCurves(e.curves)
	e.clearSelection()
}

// --- Input ---

// OnPointerPressed handles a pointer press in editor-local pixels.
func (e *Editor) OnPointerPressed(ev PointerEvent) {
	drawingPos := e.drawingBounds().Local(ev.Pos)
	eventPos := e.eventsBounds().Local(ev.Pos)

	switch ev.Button {
	case MouseButtonLeft:
		e.pressLeft(ev, drawingPos, eventPos)
		e.pointerHeld = true
	case MouseButtonRight:
		e.pressRight(ev, drawingPos, eventPos)
	}
}

func (e *Editor) pressLeft(ev PointerEvent, drawingPos, eventPos image.Point) {
	if _, ok := e.drawing.PixelToCurveSpace(drawingPos); ok {
		if ref, ok := e.drawing.FindKeyFrame(drawingPos); ok {
			if !e.IsSelected(ref) {
				if ev.Modifiers&ModShift == 0 {
					e.clearSelection()
				}
				e.SelectKeyframe(ref)
			}
			e.pressedOverKey = true
			e.dragStart = drawingPos
		} else if tan, ok := e.drawing.FindTangent(drawingPos); ok {
			e.pressedOverTangent = true
			e.dragStart = drawingPos
			e.draggedTangent = tan
		} else {
			e.clearSelection()
		}
		e.drawing.Rebuild()
		e.updateEvents()
		return
	}

	frame := e.ruler.Frame(ev.Pos)
	if frame != -1 {
		e.SetMarkedFrame(frame)
	} else if idx, ok := e.events.FindEvent(eventPos); ok {
		if ev.Modifiers&ModShift == 0 {
			e.clearSelection()
		}
		e.animEvents[idx].selected = true
		e.drawing.Rebuild()
		e.updateEvents()
	} else {
		e.ClearSelection()
	}
	e.frameSelected(frame)
}

func (e *Editor) pressRight(ev PointerEvent, drawingPos, eventPos image.Point) {
	if _, ok := e.drawing.PixelToCurveSpace(drawingPos); ok {
		e.contextPos = drawingPos
		ref, ok := e.drawing.FindKeyFrame(drawingPos)
		if !ok {
			e.ClearSelection()
			e.openContextMenu(ev.Pos, e.blankMenu)
			return
		}
		if !e.IsSelected(ref) {
			e.clearSelection()
			e.SelectKeyframe(ref)
			e.drawing.Rebuild()
			e.updateEvents()
		}
		e.openContextMenu(ev.Pos, e.keyframeMenu)
		return
	}

	if e.events.Frame(eventPos) == -1 {
		return
	}
	e.contextPos = eventPos
	idx, ok := e.events.FindEvent(eventPos)
	if !ok {
		e.ClearSelection()
		e.openContextMenu(ev.Pos, e.blankEventMenu)
		return
	}
	if !e.animEvents[idx].selected {
		e.clearSelection()
		e.animEvents[idx].selected = true
		e.drawing.Rebuild()
		e.updateEvents()
	}
	e.openContextMenu(ev.Pos, e.eventMenu)
}

func (e *Editor) openContextMenu(p image.Point, m *ContextMenu) {
	e.openMenu = m
	e.host.OpenMenu(p, m)
}

// OpenMenu returns the context menu opened last, or nil.
func (e *Editor) OpenMenu() *ContextMenu { return e.openMenu }

// InvokeMenu runs an entry of the context menu opened last and closes it.
// It reports whether the entry existed.
func (e *Editor) InvokeMenu(path string) bool {
	m := e.openMenu
	if m == nil {
		return false
	}
	e.openMenu = nil
	return m.Invoke(path)
}

// OnPointerMoved handles pointer motion in editor-local pixels. Only motion
// with the left button held does anything.
func (e *Editor) OnPointerMoved(ev PointerEvent) {
	if ev.Button != MouseButtonLeft || !e.pointerHeld {
		return
	}

	if !e.pressedOverKey && !e.pressedOverTangent {
		frame := e.ruler.Frame(ev.Pos)
		if frame != -1 {
			e.SetMarkedFrame(frame)
		}
		e.frameSelected(frame)
		return
	}

	drawingPos := e.drawingBounds().Local(ev.Pos)
	if !e.dragging {
		if pixelDistance(drawingPos, e.dragStart) < float64(e.cfg.DragStartDistance) {
			return
		}
		e.beginDrag()
	}
	if e.dragHandler == nil || e.readOnly {
		return
	}

	if e.pressedOverKey {
		delta := e.drawing.pixelToCurve(drawingPos).Sub(e.drawing.pixelToCurve(e.dragStart))
		e.dragHandler.DragKeys(e.curves, e.draggedKeys, delta)

		// Keys may have been reordered; select them at their new indices.
		e.resetSelection()
		for _, k := range e.draggedKeys {
			e.SelectKeyframe(k.Ref)
		}
		e.curveModified()
		e.drawing.Rebuild()
		e.updateEvents()
		return
	}

	pointer, ok := e.drawing.PixelToCurveSpace(drawingPos)
	if !ok {
		return
	}
	e.dragHandler.DragTangent(e.curves, e.draggedTangent, pointer)
	e.curveModified()
	e.drawing.Rebuild()
}

func (e *Editor) beginDrag() {
	e.dragging = true
	if !e.pressedOverKey || e.readOnly {
		return
	}
	e.draggedKeys = e.draggedKeys[:0]
	for _, ref := range e.SelectedKeyframes() {
		k, ok := e.curves[ref.Curve].Curve.Keyframe(ref.Key)
		if !ok {
			continue
		}
		e.draggedKeys = append(e.draggedKeys, DraggedKey{Ref: ref, Original: k})
	}
}

// OnPointerReleased ends any press or drag.
func (e *Editor) OnPointerReleased(PointerEvent) {
	e.pointerHeld = false
	e.dragging = false
	e.pressedOverKey = false
	e.pressedOverTangent = false
	e.draggedKeys = e.draggedKeys[:0]
}

// OnButtonUp handles a key release. Delete removes the selected keyframes.
func (e *Editor) OnButtonUp(ev KeyEvent) {
	if ev.Key == KeyDelete {
		e.DeleteSelectedKeyframes()
	}
}

// --- Commands ---

// Redraw rebuilds every panel.
func (e *Editor) Redraw() {
	e.drawing.Rebuild()
	e.ruler.Rebuild()
	e.updateEvents()
	e.sidebar.Rebuild()
	if e.debug {
		for _, p := range e.Panels() {
			Logger().Debug("panel", slog.String("panel", p.Name), slog.Int("commands", p.Canvas.Len()))
		}
	}
}

func (e *Editor) updateEvents() {
	events := make([]AnimationEvent, len(e.animEvents))
	selected := make([]bool, len(e.animEvents))
	for i, ev := range e.animEvents {
		events[i] = ev.event
		selected[i] = ev.selected
	}
	e.events.SetEvents(events, selected)
	e.events.Rebuild()
}

func (e *Editor) markerTime() float64 {
	return e.drawing.TimeForFrame(max(e.markedFrame, 0))
}

// AddKeyframeAtMarker adds a key at the marked frame to every curve, keeping
// each curve's current value there. Without a marked frame, frame 0 is used.
func (e *Editor) AddKeyframeAtMarker() {
	e.clearSelection()
	if e.refuseReadOnly() {
		return
	}
	t := e.markerTime()
	for _, info := range e.curves {
		if info.Curve == nil {
			continue
		}
		info.Curve.AddKeyframe(t, info.Curve.Evaluate(t, false))
		info.Curve.Apply()
	}
	e.resetSelection()
	e.curveModified()
	e.drawing.Rebuild()
	e.updateEvents()
}

// AddKeyframeAt adds a key under a pixel of the curve drawing to every curve.
func (e *Editor) AddKeyframeAt(p image.Point) {
	pos, ok := e.drawing.PixelToCurveSpace(p)
	if !ok {
		return
	}
	e.clearSelection()
	if e.refuseReadOnly() {
		return
	}
	for _, info := range e.curves {
		if info.Curve == nil {
			continue
		}
		info.Curve.AddKeyframe(pos.X, pos.Y)
		info.Curve.Apply()
	}
	e.resetSelection()
	e.curveModified()
	e.drawing.Rebuild()
	e.updateEvents()
}

func (e *Editor) addKeyframeAtContext() { e.AddKeyframeAt(e.contextPos) }

// DeleteSelectedKeyframes removes the selected keys. Keys are removed per
// curve from the highest index down, so pending indices stay valid.
func (e *Editor) DeleteSelectedKeyframes() {
	if e.refuseReadOnly() {
		return
	}
	refs := e.SelectedKeyframes()
	sortForRemoval(refs)
	touched := make(map[int]bool)
	for _, ref := range refs {
		e.curves[ref.Curve].Curve.RemoveKeyframe(ref.Key)
		touched[ref.Curve] = true
	}
	for ci := range touched {
		e.curves[ci].Curve.Apply()
	}
	e.resetSelection()
	e.curveModified()
	e.drawing.Rebuild()
	e.updateEvents()
}

// ChangeSelectionTangentMode applies mode to every selected key. Auto and
// Free replace the whole mode; a single-side mode replaces only that side.
func (e *Editor) ChangeSelectionTangentMode(mode TangentMode) {
	if e.refuseReadOnly() {
		return
	}
	touched := make(map[int]bool)
	for _, ref := range e.SelectedKeyframes() {
		c := e.curves[ref.Curve].Curve
		c.SetTangentMode(ref.Key, c.TangentMode(ref.Key).WithMode(mode))
		touched[ref.Curve] = true
	}
	for ci := range touched {
		e.curves[ci].Curve.Apply()
	}
	e.curveModified()
	e.drawing.Rebuild()
}

// EditSelectedKeyframe opens a form editing the time and value of the first
// selected key.
func (e *Editor) EditSelectedKeyframe() {
	if e.refuseReadOnly() {
		return
	}
	refs := e.SelectedKeyframes()
	if len(refs) == 0 {
		return
	}
	ref := refs[0]
	c := e.curves[ref.Curve].Curve
	k, _ := c.Keyframe(ref.Key)

	form := &Form{Title: "Keyframe"}
	form.Add("Time", FloatValue(k.Time))
	form.Add("Value", FloatValue(k.Value))

	e.host.OpenForm(form, func(f *Form) error {
		t, err := f.Float("Time")
		if err != nil {
			return err
		}
		v, err := f.Float("Value")
		if err != nil {
			return err
		}
		idx := c.UpdateKeyframe(ref.Key, t, v)
		c.Apply()
		e.resetSelection()
		e.SelectKeyframe(KeyframeRef{Curve: ref.Curve, Key: idx})
		e.drawing.Rebuild()
		e.curveModified()
		return nil
	})
}

// AddEventAtMarker adds an unnamed event at the marked frame and opens its
// edit form.
func (e *Editor) AddEventAtMarker() {
	e.clearSelection()
	e.addEvent(e.markerTime())
}

// AddEventAt adds an unnamed event at the frame under a pixel of the events
// bar and opens its edit form.
func (e *Editor) AddEventAt(p image.Point) {
	frame := e.events.Frame(p)
	if frame == -1 {
		return
	}
	e.clearSelection()
	e.addEvent(e.events.TimeForFrame(frame))
}

func (e *Editor) addEventAtContext() { e.AddEventAt(e.contextPos) }

func (e *Editor) addEvent(t float64) {
	e.animEvents = append(e.animEvents, eventInfo{event: AnimationEvent{Time: t}})
	e.notify(EditorEvent{Type: EditorEventAdded, Frame: -1}, e.OnEventAdded)
	e.updateEvents()
	e.drawing.Rebuild()
	e.startEventEdit(len(e.animEvents) - 1)
}

// DeleteSelectedEvents removes the selected events.
func (e *Editor) DeleteSelectedEvents() {
	kept := e.animEvents[:0]
	for _, ev := range e.animEvents {
		if !ev.selected {
			kept = append(kept, ev)
		}
	}
	clear(e.animEvents[len(kept):])
	e.animEvents = kept
	e.notify(EditorEvent{Type: EditorEventDeleted, Frame: -1}, e.OnEventDeleted)
	e.clearSelection()
	e.drawing.Rebuild()
	e.updateEvents()
}

// EditSelectedEvent opens the edit form of the first selected event.
func (e *Editor) EditSelectedEvent() {
	for i, ev := range e.animEvents {
		if ev.selected {
			e.startEventEdit(i)
			return
		}
	}
}

// splitEventName splits "Component/Method" into its parts. A name without a
// separator is all method.
func splitEventName(name string) (component, method string) {
	if comp, m, ok := strings.Cut(name, "/"); ok {
		return comp, m
	}
	return "", name
}

func (e *Editor) startEventEdit(idx int) {
	ev := e.animEvents[idx].event
	comp, method := splitEventName(ev.Name)

	selected := -1
	for i, n := range e.componentNames {
		if n == comp {
			selected = i
			break
		}
	}
	options := append([]string{""}, e.componentNames...)

	form := &Form{Title: "Event"}
	form.Add("Time", FloatValue(ev.Time))
	form.Add("Component", EnumValue(selected+1, options))
	form.Add("Method", StringValue(method))

	e.host.OpenForm(form, func(f *Form) error {
		t, err := f.Float("Time")
		if err != nil {
			return err
		}
		_, comp, _ := f.Find("Component").Enum()
		method, ok := f.Find("Method").Text()
		if !ok {
			return ErrFieldType
		}
		if idx >= len(e.animEvents) {
			return nil
		}
		name := method
		if comp != "" {
			name = comp + "/" + method
		}
		e.animEvents[idx].event = AnimationEvent{Name: name, Time: t}
		e.updateEvents()
		e.notify(EditorEvent{Type: EditorEventModified, Frame: -1}, e.OnEventModified)
		return nil
	})
}

func (e *Editor) refuseReadOnly() bool {
	if !e.readOnly {
		return false
	}
	Logger().Warn("refused edit of read-only curves")
	e.host.ShowMessage("Warning", readOnlyMessage)
	return true
}

func (e *Editor) curveModified() {
	e.notify(EditorEvent{Type: EditorCurveModified, Frame: -1}, e.OnCurveModified)
}

func (e *Editor) frameSelected(frame int) {
	if e.OnFrameSelected != nil {
		e.OnFrameSelected(frame)
	}
	if e.sink != nil {
		e.sink.EmitEvent(EditorEvent{Type: EditorFrameSelected, Frame: frame})
	}
}

func (e *Editor) notify(ev EditorEvent, fn func()) {
	if fn != nil {
		fn()
	}
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
}
