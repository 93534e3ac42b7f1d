package toolshed

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Text   string  `json:"text,omitempty"`
	Key    string  `json:"key,omitempty"`
	Ctrl   bool    `json:"ctrl,omitempty"`
	Tag    string  `json:"tag,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// scriptKeys maps the "key" values of a script to keystrokes.
var scriptKeys = map[string]Key{
	"backspace": KeyBackspace,
	"left":      KeyLeft,
	"right":     KeyRight,
	"enter":     KeyEnter,
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual testing. Attach to a SceneManager via SetTestRunner.
//
// Actions: "click", "drag", "type" (text), "key" (backspace, left, right,
// enter, or a single character with "ctrl"), "focus" (tag), "wait" (frames)
// and "screenshot" (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready to
// be attached via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("toolshed: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("toolshed: parse test script: no steps")
	}
	for i, st := range script.Steps {
		if _, err := st.keyEvent(); st.Action == "key" && err != nil {
			return nil, fmt.Errorf("toolshed: parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// keyEvent converts a "key" step to a keystroke.
func (st testStep) keyEvent() (KeyEvent, error) {
	var mods KeyModifiers
	if st.Ctrl {
		mods = ModCtrl
	}
	if k, ok := scriptKeys[st.Key]; ok {
		return KeyEvent{Key: k, Mods: mods}, nil
	}
	if r := []rune(st.Key); len(r) == 1 {
		return KeyEvent{Char: r[0], Mods: mods}, nil
	}
	return KeyEvent{}, fmt.Errorf("unknown key %q", st.Key)
}

// SetTestRunner attaches a TestRunner. Its step method is called from
// SceneManager.Update before input is processed each frame.
func (sm *SceneManager) SetTestRunner(runner *TestRunner) {
	sm.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(sm *SceneManager) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(sm.injectQueue) > 0 {
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
		sm.Screenshot(st.Label)
	case "click":
		sm.InjectClick(st.X, st.Y)
	case "drag":
		sm.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "type":
		sm.InjectText(st.Text)
	case "key":
		if ev, err := st.keyEvent(); err == nil {
			sm.InjectKey(ev)
		}
	case "focus":
		sm.SetFocus(st.Tag)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		Logger().Warn("unknown test script action", "action", st.Action, "step", r.cursor-1)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(sm.injectQueue) == 0 {
		r.done = true
	}
}
