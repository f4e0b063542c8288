package curved

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrEmptyScript is returned by LoadTestScript for a script without steps.
var ErrEmptyScript = errors.New("parse test script: no steps")

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Path   string  `json:"path,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, menu picks and screenshots across
// frames for automated visual testing. Attach to an Editor via
// SetTestRunner.
//
// Supported actions: click, shiftclick, rightclick, drag, key (delete or
// escape), menu (invokes path on the open context menu), screenshot, wait.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Editor via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "shiftclick", "rightclick", "drag", "menu", "screenshot", "wait":
		case "key":
			if _, ok := parseKey(st.Key); !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func parseKey(name string) (Key, bool) {
	switch strings.ToLower(name) {
	case "delete":
		return KeyDelete, true
	case "escape":
		return KeyEscape, true
	}
	return KeyUnknown, false
}

// SetTestRunner attaches a TestRunner to the editor. The runner steps once
// per Update, before injected input is processed.
func (e *Editor) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Editor.Update.
func (r *TestRunner) step(e *Editor) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		e.Screenshot(st.Label)
	case "click":
		e.InjectClick(roundInt(st.X), roundInt(st.Y))
	case "shiftclick":
		e.InjectShiftClick(roundInt(st.X), roundInt(st.Y))
	case "rightclick":
		e.InjectRightClick(roundInt(st.X), roundInt(st.Y))
	case "drag":
		e.InjectDrag(roundInt(st.FromX), roundInt(st.FromY), roundInt(st.ToX), roundInt(st.ToY), max(st.Frames, 2))
	case "key":
		if k, ok := parseKey(st.Key); ok {
			e.InjectKey(k)
		}
	case "menu":
		if !e.InvokeMenu(st.Path) {
			Logger().Warn("test script menu entry not found", slog.String("path", st.Path))
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}

// TestDone reports whether an attached test runner has finished.
func (e *Editor) TestDone() bool {
	return e.testRunner != nil && e.testRunner.Done()
}
