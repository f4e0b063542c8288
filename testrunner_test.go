package curved

import (
	"errors"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "menu", "path": "Tangents/In/Step"},
			{"action": "key", "key": "Delete"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Path != "Tangents/In/Step" {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if !errors.Is(err, ErrEmptyScript) {
		t.Errorf("expected ErrEmptyScript, got %v", err)
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "teleport"}]}`)); err == nil {
		t.Error("expected error for unknown action")
	}
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "key", "key": "space"}]}`)); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestRunnerStep_Click(t *testing.T) {
	ed, _ := newTestEditor(t, twoKeyCurve())

	data := []byte(`{"steps": [{"action": "click", "x": 130, "y": 190}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	ed.SetTestRunner(runner)

	// First step call: click queues press+release (2 events).
	runner.step(ed)
	if len(ed.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(ed.injectQueue))
	}
	// Runner should not be done yet, injections are still pending.
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	// Drain injections.
	ed.processInjectedInput()
	ed.processInjectedInput()
	if !ed.IsSelected(KeyframeRef{0, 0}) {
		t.Error("scripted click should select the key")
	}

	// Now step again, which finalizes.
	runner.step(ed)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
	if !ed.TestDone() {
		t.Error("editor should report the test as done")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	ed, _ := newTestEditor(t)

	data := []byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(ed)
	if runner.Done() {
		t.Error("should not be done during wait")
	}

	// Frame 2: waitCount 2→1.
	runner.step(ed)
	if runner.Done() {
		t.Error("should not be done during wait countdown")
	}

	// Frame 3: waitCount 1→0.
	runner.step(ed)
	if runner.Done() {
		t.Error("should not be done, screenshot step not yet executed")
	}

	// Frame 4: execute screenshot step, runner finishes.
	runner.step(ed)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}

	if len(ed.screenshotQueue) != 1 || ed.screenshotQueue[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", ed.screenshotQueue)
	}
}

func TestRunner_MenuAndKey(t *testing.T) {
	c := NewCurve([]Keyframe{{Time: 0}, {Time: 1, Value: 2}, {Time: 3, Value: -1}}, nil)
	ed, _ := newTestEditor(t, c)

	data := []byte(`{"steps": [
		{"action": "rightclick", "x": 130, "y": 190},
		{"action": "menu", "path": "Tangents/Out/Linear"},
		{"action": "menu", "path": "Missing"},
		{"action": "key", "key": "delete"}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	ed.SetTestRunner(runner)

	for i := 0; i < 20 && !ed.TestDone(); i++ {
		ed.Update(1.0 / 60)
	}
	if !ed.TestDone() {
		t.Fatal("script did not finish")
	}
	if c.Len() != 2 {
		t.Errorf("expected the selected key deleted, got %d keys", c.Len())
	}
}

func TestRunner_Drag(t *testing.T) {
	c := twoKeyCurve()
	ed, _ := newTestEditor(t, c)

	data := []byte(`{"steps": [
		{"action": "drag", "fromX": 130, "fromY": 190, "toX": 230, "toY": 190, "frames": 4}
	]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatal(err)
	}
	ed.SetTestRunner(runner)
	for i := 0; i < 20 && !ed.TestDone(); i++ {
		ed.Update(1.0 / 60)
	}
	if k, _ := c.Keyframe(0); !approxEqual(k.Time, 2) {
		t.Errorf("dragged key time = %v, want 2", k.Time)
	}
}
