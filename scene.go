package toolshed

import (
	"fmt"
	"time"
)

// EventSink is the interface for optional ECS integration.
// When set on a SceneManager, text field events are forwarded to it.
type EventSink interface {
	EmitFieldEvent(event FieldEvent)
}

// FieldEvent describes a change to a text field.
type FieldEvent struct {
	Type  FieldEventType
	Scene string
	Tag   string
	Text  string
}

// SceneManager owns a set of named UIs, one of which is current, and routes
// focus, hover, keys and pointer input to it.
//
// SceneManager is single-threaded; call it from the game loop only.
type SceneManager struct {
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	scenes  map[string]*UI
	current string
	hovered string
	sink    EventSink
	debug   bool

	// Cursor is called with the requested pointer cursor when hover
	// changes. Run wires it to ebiten.SetCursorShape.
	cursor func(CursorShape)

	// Input state
	pointer      pointerState
	dragDeadZone float64
	keyBuf       []KeyEvent

	// Automation
	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewSceneManager creates an empty manager.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		ScreenshotDir: "screenshots",
		scenes:        make(map[string]*UI),
		dragDeadZone:  defaultDragDeadZone,
	}
}

// Insert registers ui under name. The first UI inserted becomes current.
func (sm *SceneManager) Insert(name string, ui *UI) {
	if ui == nil {
		panic("toolshed: SceneManager.Insert: nil UI")
	}
	sm.scenes[name] = ui
	if len(sm.scenes) == 1 {
		sm.current = name
	}
}

// Current returns the current UI, or nil if none is set.
func (sm *SceneManager) Current() *UI {
	if sm.current == "" {
		return nil
	}
	return sm.scenes[sm.current]
}

// CurrentName returns the name of the current scene.
func (sm *SceneManager) CurrentName() string { return sm.current }

// ChangeScene switches to name after blurring fields, collapsing popouts and
// clearing hover in the old scene, then hovers whatever lies under the
// pointer at (x, y). An empty name leaves no scene current. Panics if name
// is not registered.
func (sm *SceneManager) ChangeScene(name string, x, y float64) {
	if _, ok := sm.scenes[name]; name != "" && !ok {
		panic(fmt.Sprintf("toolshed: ChangeScene: unknown scene %q", name))
	}
	sm.RemoveFocus("")
	sm.closePopouts()
	sm.clearNodeState()
	sm.pointer = pointerState{}

	sm.current = name
	sm.hovered = ""
	sm.clearNodeState()
	if n := sm.NodeAt(x, y); n != nil {
		sm.Hover(n)
	}
}

// NodeAt returns the topmost node of the current UI under (x, y).
func (sm *SceneManager) NodeAt(x, y float64) Node {
	ui := sm.Current()
	if ui == nil {
		return nil
	}
	return ui.NodeAt(x, y)
}

// NodeByTag finds a node in the current UI, or in every UI when all is set.
func (sm *SceneManager) NodeByTag(tag string, all bool) Node {
	if all {
		for _, ui := range sm.scenes {
			if n := ui.NodeByTag(tag); n != nil {
				return n
			}
		}
		return nil
	}
	ui := sm.Current()
	if ui == nil {
		return nil
	}
	return ui.NodeByTag(tag)
}

// clearNodeState drops the hovered state of every node in the current UI.
func (sm *SceneManager) clearNodeState() {
	ui := sm.Current()
	if ui == nil {
		return
	}
	for _, n := range ui.nodes {
		n.Base().Hovered = false
		if g, ok := n.(*ChoiceGroup); ok {
			for _, c := range g.Boxes {
				c.Hovered = false
			}
		}
	}
	sm.setCursor(CursorDefault)
}

// closePopouts collapses every expanded popout of the current UI.
func (sm *SceneManager) closePopouts() {
	ui := sm.Current()
	if ui == nil {
		return
	}
	for _, p := range ui.Popouts() {
		if p.Expanded {
			p.Toggle()
		}
	}
}

// --- Focus ---

// RemoveFocus blurs every text field of the current UI except the one tagged
// except (pass "" to blur all).
func (sm *SceneManager) RemoveFocus(except string) {
	ui := sm.Current()
	if ui == nil {
		return
	}
	for _, f := range ui.TextFields() {
		if f.Tag == except && except != "" {
			continue
		}
		wasFocused := f.Focused()
		f.Blur()
		if wasFocused {
			sm.emit(FieldBlur, f)
		}
	}
}

// FocusedField returns the focused text field of the current UI, or nil.
func (sm *SceneManager) FocusedField() *TextField {
	ui := sm.Current()
	if ui == nil {
		return nil
	}
	for _, f := range ui.TextFields() {
		if f.Focused() {
			return f
		}
	}
	return nil
}

// SetFocus focuses the text field tagged tag and blurs the others. It
// reports whether such a field exists.
func (sm *SceneManager) SetFocus(tag string) bool {
	f, ok := sm.NodeByTag(tag, false).(*TextField)
	if !ok {
		return false
	}
	sm.RemoveFocus(tag)
	if !f.Focused() {
		f.Focus()
		sm.emit(FieldFocus, f)
	}
	return true
}

// ClearTextField empties the field tagged tag and returns its old contents,
// or "" if there is no such field.
func (sm *SceneManager) ClearTextField(tag string) string {
	f, ok := sm.NodeByTag(tag, false).(*TextField)
	if !ok {
		return ""
	}
	s := f.Clear()
	sm.emit(FieldClear, f)
	return s
}

// --- Hover ---

// Hover marks n hovered, un-hovers the previously hovered node and requests
// a matching cursor.
func (sm *SceneManager) Hover(n Node) {
	b := n.Base()
	if !b.hover() {
		return
	}
	if _, ok := n.(*TextField); ok {
		sm.setCursor(CursorText)
	} else {
		sm.setCursor(CursorPointer)
	}
	if b.Tag == sm.hovered {
		return
	}
	old := sm.NodeByTag(sm.hovered, false)
	sm.hovered = b.Tag
	if old != nil && old != n {
		old.Base().Hovered = false
	}
}

// unhover clears the hovered node when the pointer is over nothing.
func (sm *SceneManager) unhover() {
	if sm.hovered == "" {
		return
	}
	if old := sm.NodeByTag(sm.hovered, false); old != nil {
		old.Base().Hovered = false
	}
	sm.hovered = ""
	sm.setCursor(CursorDefault)
}

// Hovered returns the tag of the hovered node, or "".
func (sm *SceneManager) Hovered() string { return sm.hovered }

func (sm *SceneManager) setCursor(c CursorShape) {
	if sm.cursor != nil {
		sm.cursor(c)
	}
}

// --- Keys ---

// HandleKey routes a keystroke to the focused field and reports whether it
// was consumed.
func (sm *SceneManager) HandleKey(ev KeyEvent) bool {
	f := sm.FocusedField()
	if f == nil {
		return false
	}
	before := f.Text()
	if !f.Update(ev) {
		return false
	}
	if f.Text() != before {
		sm.emit(FieldEdit, f)
	}
	if ev.Key == KeyEnter && !ev.shortcut() {
		sm.emit(FieldSubmit, f)
	}
	return true
}

// --- Frame ---

// Tick advances caret blinks and popout animations by dt seconds.
func (sm *SceneManager) Tick(dt float32) {
	if ui := sm.Current(); ui != nil {
		ui.tick(dt)
	}
}

// Update runs one frame of input: the test runner, injected or real input,
// then animations. Call it from ebiten.Game.Update.
func (sm *SceneManager) Update(dt float32) {
	if sm.testRunner != nil {
		sm.testRunner.step(sm)
	}
	sm.ProcessInput()
	sm.Tick(dt)
}

// Draw renders the current UI and flushes queued screenshots.
func (sm *SceneManager) Draw(dst Surface) {
	ui := sm.Current()
	if ui == nil {
		return
	}
	var t0 time.Time
	if sm.debug {
		t0 = time.Now()
	}
	ui.Draw(dst)
	if sm.debug {
		sm.debugLog(ui.writer.takeStats(), time.Since(t0))
	}
	sm.flushScreenshots(dst)
}

// --- Configuration ---

// SetEventSink sets the optional ECS bridge.
func (sm *SceneManager) SetEventSink(sink EventSink) {
	sm.sink = sink
}

// SetCursorHook sets the function called when the requested pointer cursor
// changes.
func (sm *SceneManager) SetCursorHook(fn func(CursorShape)) {
	sm.cursor = fn
}

// SetDragDeadZone sets the pointer travel, in pixels, before a press
// becomes a drag and no longer counts as a click.
func (sm *SceneManager) SetDragDeadZone(pixels float64) {
	sm.dragDeadZone = pixels
}

// SetDebugMode enables or disables debug mode. When enabled, every dialogue
// box is outlined and per-frame layout stats are logged at debug level.
func (sm *SceneManager) SetDebugMode(enabled bool) {
	sm.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set SceneManager debug flag so that
// writers (which lack a manager pointer) can check it cheaply. Only valid
// with a single manager.
var globalDebug bool

func (sm *SceneManager) emit(t FieldEventType, f *TextField) {
	if sm.sink == nil {
		return
	}
	sm.sink.EmitFieldEvent(FieldEvent{Type: t, Scene: sm.current, Tag: f.Tag, Text: f.Text()})
}
