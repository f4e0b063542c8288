package curved

import "testing"

func TestInjectClick(t *testing.T) {
	ed, _ := newTestEditor(t, twoKeyCurve())

	ed.InjectClick(130, 190)
	if len(ed.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(ed.injectQueue))
	}

	// Frame 1: press selects.
	if !ed.Update(1.0 / 60) {
		t.Error("Update should report the injected event")
	}
	if len(ed.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(ed.injectQueue))
	}
	if !ed.IsSelected(KeyframeRef{0, 0}) {
		t.Error("press should select the key")
	}
	if !ed.pointerHeld {
		t.Error("pointer should be held after the press")
	}

	// Frame 2: release.
	ed.Update(1.0 / 60)
	if len(ed.injectQueue) != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", len(ed.injectQueue))
	}
	if ed.pointerHeld {
		t.Error("pointer should be released")
	}

	if ed.Update(1.0 / 60) {
		t.Error("Update with an empty queue should report no event")
	}
}

func TestInjectDrag(t *testing.T) {
	ed, _ := newTestEditor(t)

	// Drag from (10,10) to (200,200) over 5 frames:
	// frame 0: press at (10,10)
	// frame 1: move to ~(73, 73)
	// frame 2: move to ~(137, 137)
	// frame 3: move to (200, 200)
	// frame 4: release at (200, 200)
	ed.InjectDrag(10, 10, 200, 200, 5)
	if len(ed.injectQueue) != 5 {
		t.Fatalf("expected 5 queued events, got %d", len(ed.injectQueue))
	}

	first := ed.injectQueue[0]
	if first.kind != syntheticPress || first.pos.X != 10 || first.pos.Y != 10 {
		t.Errorf("first event = %+v, want press at (10,10)", first)
	}
	move := ed.injectQueue[3]
	if move.kind != syntheticMove || move.pos.X != 200 || move.pos.Y != 200 {
		t.Errorf("last move = %+v, want move to (200,200)", move)
	}
	last := ed.injectQueue[4]
	if last.kind != syntheticRelease || last.pos.X != 200 || last.pos.Y != 200 {
		t.Errorf("last event = %+v, want release at (200,200)", last)
	}

	for i := 1; i <= 3; i++ {
		if ed.injectQueue[i].kind != syntheticMove {
			t.Errorf("event %d should be a move, got kind %d", i, ed.injectQueue[i].kind)
		}
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.InjectDrag(0, 0, 100, 100, 1)
	if len(ed.injectQueue) != 2 {
		t.Fatalf("expected 2 events (press+release), got %d", len(ed.injectQueue))
	}
	if ed.injectQueue[0].kind != syntheticPress || ed.injectQueue[1].kind != syntheticRelease {
		t.Error("expected press followed by release")
	}
}

func TestInjectModifiers(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.InjectShiftClick(5, 5)
	ed.InjectRightClick(5, 5)
	ed.InjectKey(KeyDelete)

	if ed.PendingInput() != 5 {
		t.Fatalf("expected 5 queued events, got %d", ed.PendingInput())
	}
	if ed.injectQueue[0].modifiers != ModShift {
		t.Error("shift click should carry ModShift")
	}
	if ed.injectQueue[2].button != MouseButtonRight {
		t.Error("right click should use the right button")
	}
	if ed.injectQueue[4].kind != syntheticKeyUp || ed.injectQueue[4].key != KeyDelete {
		t.Errorf("key event = %+v", ed.injectQueue[4])
	}
}

func TestInjectPreservesOrder(t *testing.T) {
	ed, _ := newTestEditor(t)
	ed.InjectPress(10, 20)
	ed.InjectMove(30, 40)
	ed.InjectRelease(50, 60)

	want := []struct {
		kind syntheticKind
		x, y int
	}{
		{syntheticPress, 10, 20},
		{syntheticMove, 30, 40},
		{syntheticRelease, 50, 60},
	}
	for i, w := range want {
		ev := ed.injectQueue[i]
		if ev.kind != w.kind || ev.pos.X != w.x || ev.pos.Y != w.y {
			t.Errorf("event %d = %+v, want kind %d at (%d,%d)", i, ev, w.kind, w.x, w.y)
		}
	}
}
