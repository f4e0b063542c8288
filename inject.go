package curved

import "image"

type syntheticKind uint8

const (
	syntheticPress syntheticKind = iota
	syntheticMove
	syntheticRelease
	syntheticKeyUp
)

// syntheticEvent is a single injected input event. Coordinates are
// editor-local pixels, the same space real pointer input is delivered in.
type syntheticEvent struct {
	kind      syntheticKind
	pos       image.Point
	button    MouseButton
	modifiers KeyModifiers
	key       Key
}

// InjectPress queues a left-button press at (x, y). The event is consumed by
// a later Update call, one event per call.
func (e *Editor) InjectPress(x, y int) {
	e.injectPointer(syntheticPress, x, y, MouseButtonLeft, 0)
}

// InjectMove queues a pointer move at (x, y) with the left button held. Use
// this between InjectPress and InjectRelease to simulate a drag.
func (e *Editor) InjectMove(x, y int) {
	e.injectPointer(syntheticMove, x, y, MouseButtonLeft, 0)
}

// InjectRelease queues a left-button release at (x, y).
func (e *Editor) InjectRelease(x, y int) {
	e.injectPointer(syntheticRelease, x, y, MouseButtonLeft, 0)
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (e *Editor) InjectClick(x, y int) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectShiftClick is InjectClick with Shift held.
func (e *Editor) InjectShiftClick(x, y int) {
	e.injectPointer(syntheticPress, x, y, MouseButtonLeft, ModShift)
	e.injectPointer(syntheticRelease, x, y, MouseButtonLeft, ModShift)
}

// InjectRightClick queues a right-button press and release at (x, y).
func (e *Editor) InjectRightClick(x, y int) {
	e.injectPointer(syntheticPress, x, y, MouseButtonRight, 0)
	e.injectPointer(syntheticRelease, x, y, MouseButtonRight, 0)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), frames-2
// linearly interpolated moves ending on (toX, toY), and release there. The
// sequence consumes frames frames; the minimum is 2, which presses and
// releases without moving.
func (e *Editor) InjectDrag(fromX, fromY, toX, toY, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := float64(fromX) + float64(toX-fromX)*t
		y := float64(fromY) + float64(toY-fromY)*t
		e.InjectMove(roundInt(x), roundInt(y))
	}
	e.InjectRelease(toX, toY)
}

// InjectKey queues the release of a key.
func (e *Editor) InjectKey(key Key) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticKeyUp, key: key})
}

// PendingInput reports how many injected events are still queued.
func (e *Editor) PendingInput() int { return len(e.injectQueue) }

func (e *Editor) injectPointer(kind syntheticKind, x, y int, button MouseButton, mods KeyModifiers) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{
		kind:      kind,
		pos:       image.Pt(x, y),
		button:    button,
		modifiers: mods,
	})
}

// processInjectedInput pops one event from the inject queue and dispatches
// it. It reports whether an event was consumed, in which case real input
// should be skipped this frame.
func (e *Editor) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	ev := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	pe := PointerEvent{Pos: ev.pos, Button: ev.button, Modifiers: ev.modifiers}
	switch ev.kind {
	case syntheticPress:
		e.OnPointerPressed(pe)
	case syntheticMove:
		e.OnPointerMoved(pe)
	case syntheticRelease:
		e.OnPointerReleased(pe)
	case syntheticKeyUp:
		e.OnButtonUp(KeyEvent{Key: ev.key, Modifiers: ev.modifiers})
	}
	return true
}

// Update advances one frame: the attached test runner steps, one injected
// event is dispatched and view animations advance by dt seconds. It reports
// whether an injected event was consumed.
func (e *Editor) Update(dt float32) bool {
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	injected := e.processInjectedInput()
	e.updateView(dt)
	return injected
}
