package ebitenui

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/curved"
)

// Wheel zoom and scroll tuning.
const (
	wheelZoomFactor = 0.9
	wheelScrollStep = 0.1 // fraction of the visible range per notch
	wheelTweenTime  = 0.15
)

// pointerState tracks the mouse between frames so polled button state can be
// turned into press, move and release events.
type pointerState struct {
	down    bool
	button  curved.MouseButton
	lastPos image.Point
}

// readModifiers returns the currently held modifier keys.
func readModifiers() curved.KeyModifiers {
	var mods curved.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= curved.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= curved.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= curved.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= curved.ModMeta
	}
	return mods
}

// pollPointer reads the mouse and reports a transition, if any. ok is false
// when nothing changed this frame.
func (p *pointerState) pollPointer(mods curved.KeyModifiers) (ev curved.PointerEvent, kind pointerTransition, ok bool) {
	mx, my := ebiten.CursorPosition()
	pos := image.Pt(mx, my)
	defer func() { p.lastPos = pos }()

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	pressed := left || right || middle

	switch {
	case pressed && !p.down:
		// Use the stored button while down so it cannot change
		// mid-interaction.
		p.down = true
		switch {
		case left:
			p.button = curved.MouseButtonLeft
		case right:
			p.button = curved.MouseButtonRight
		default:
			p.button = curved.MouseButtonMiddle
		}
		return curved.PointerEvent{Pos: pos, Button: p.button, Modifiers: mods}, transitionPress, true
	case pressed && pos != p.lastPos:
		return curved.PointerEvent{Pos: pos, Button: p.button, Modifiers: mods}, transitionMove, true
	case !pressed && p.down:
		p.down = false
		return curved.PointerEvent{Pos: pos, Button: p.button, Modifiers: mods}, transitionRelease, true
	}
	return curved.PointerEvent{}, 0, false
}

type pointerTransition uint8

const (
	transitionPress pointerTransition = iota + 1
	transitionMove
	transitionRelease
)

// dispatch feeds one transition to the editor.
func dispatch(ed *curved.Editor, ev curved.PointerEvent, kind pointerTransition) {
	switch kind {
	case transitionPress:
		ed.OnPointerPressed(ev)
	case transitionMove:
		ed.OnPointerMoved(ev)
	case transitionRelease:
		ed.OnPointerReleased(ev)
	}
}

// processKeys forwards key releases the editor understands.
func processKeys(ed *curved.Editor, mods curved.KeyModifiers) {
	if inpututil.IsKeyJustReleased(ebiten.KeyDelete) || inpututil.IsKeyJustReleased(ebiten.KeyBackspace) {
		ed.OnButtonUp(curved.KeyEvent{Key: curved.KeyDelete, Modifiers: mods})
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyEscape) {
		ed.OnButtonUp(curved.KeyEvent{Key: curved.KeyEscape, Modifiers: mods})
	}
}

// processWheel zooms the time range with the wheel, or scrolls it with Shift
// held.
func processWheel(ed *curved.Editor, mods curved.KeyModifiers) {
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	r := ed.Range()
	if mods&curved.ModShift != 0 {
		off := ed.Offset()
		off.X -= wy * wheelScrollStep * r.X
		ed.ScrollTo(off, wheelTweenTime, ease.OutQuad)
		return
	}
	ed.ZoomTo(r.X*math.Pow(wheelZoomFactor, wy), r.Y, wheelTweenTime, ease.OutQuad)
}
