package toolshed

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	defaultDragDeadZone = 4.0 // pixels

	// Key repeat, in ticks: first repeat after keyRepeatDelay, then every
	// keyRepeatInterval.
	keyRepeatDelay    = 30
	keyRepeatInterval = 3
)

// --- Pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hitNode  Node
	dragging bool
}

// HandlePointer feeds one pointer sample through the press / drag / release
// state machine. Text fields resolve positions against the grid from the
// previous Draw.
//
// A press focuses a text field under the pointer and starts a selection
// there, or blurs all fields when it lands elsewhere. Moving while pressed
// extends the focused field's selection. A release over the node that was
// pressed is a click: checkboxes and popouts toggle and OnClick fires.
func (sm *SceneManager) HandlePointer(x, y float64, pressed bool) {
	ps := &sm.pointer
	target := sm.NodeAt(x, y)

	if !ps.down {
		if target != nil {
			sm.Hover(target)
		} else {
			sm.unhover()
		}
	}

	if pressed && !ps.down {
		// Just pressed.
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitNode = target
		ps.dragging = false
		sm.pointerDown(target, x, y)
	} else if !pressed && ps.down {
		// Just released.
		if f := sm.FocusedField(); f != nil && f.Selecting() {
			f.UpdateSelectionFromPointer(x, y)
			f.EndSelection()
		}
		if !ps.dragging && ps.hitNode != nil && ps.hitNode == target {
			sm.click(target, x, y)
		}
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX, ps.lastY = x, y
	} else if pressed && ps.down {
		// Held down, possibly moved.
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > sm.dragDeadZone {
					ps.dragging = true
				}
			}
			if f := sm.FocusedField(); f != nil && f.Selecting() {
				f.UpdateSelectionFromPointer(x, y)
			}
		}
		ps.lastX, ps.lastY = x, y
	} else {
		ps.lastX, ps.lastY = x, y
	}
}

// pointerDown handles focus and selection start.
func (sm *SceneManager) pointerDown(target Node, x, y float64) {
	f, ok := target.(*TextField)
	if !ok {
		sm.RemoveFocus("")
		return
	}
	sm.SetFocus(f.Tag)
	f.SetCursorFromPointer(x, y)
	f.StartSelectionFromPointer(x, y)
}

// click dispatches a completed press and release on target.
func (sm *SceneManager) click(target Node, x, y float64) {
	switch n := target.(type) {
	case *Checkbox:
		n.Toggle()
	case *ChoiceGroup:
		if c := n.CheckboxAt(x, y); c != nil {
			n.Select(c)
			if c.OnClick != nil {
				c.OnClick(c)
			}
		}
	case *Popout:
		n.Toggle()
	}
	if b := target.Base(); b.OnClick != nil {
		b.OnClick(target)
	}
}

// --- Ebitengine adapters ---

// ProcessInput consumes one injected event if any are queued; otherwise it
// reads the keyboard and mouse through Ebitengine and dispatches them.
func (sm *SceneManager) ProcessInput() {
	if sm.processInjectedInput() {
		return
	}
	sm.keyBuf = ReadKeys(sm.keyBuf[:0])
	for _, ev := range sm.keyBuf {
		sm.HandleKey(ev)
	}
	x, y, pressed := ReadPointer()
	sm.HandlePointer(x, y, pressed)
}

// ReadPointer returns the cursor position in logical pixels and whether the
// left button is held.
func ReadPointer() (x, y float64, pressed bool) {
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

var shortcutKeys = [...]struct {
	key  ebiten.Key
	char rune
}{
	{ebiten.KeyA, 'a'},
	{ebiten.KeyC, 'c'},
	{ebiten.KeyV, 'v'},
	{ebiten.KeyX, 'x'},
}

var editKeys = [...]struct {
	key    ebiten.Key
	k      Key
	repeat bool
}{
	{ebiten.KeyBackspace, KeyBackspace, true},
	{ebiten.KeyArrowLeft, KeyLeft, true},
	{ebiten.KeyArrowRight, KeyRight, true},
	{ebiten.KeyEnter, KeyEnter, false},
	{ebiten.KeyNumpadEnter, KeyEnter, false},
}

// ReadKeys appends this tick's keystrokes to buf: typed characters, editing
// keys (with key repeat), and Ctrl/Cmd shortcuts.
func ReadKeys(buf []KeyEvent) []KeyEvent {
	mods := readModifiers()
	if mods&(ModCtrl|ModMeta) != 0 {
		for _, s := range shortcutKeys {
			if inpututil.IsKeyJustPressed(s.key) {
				buf = append(buf, KeyEvent{Char: s.char, Mods: mods})
			}
		}
	} else {
		for _, r := range ebiten.AppendInputChars(nil) {
			buf = append(buf, KeyEvent{Char: r, Mods: mods})
		}
	}
	for _, e := range editKeys {
		d := inpututil.KeyPressDuration(e.key)
		if d == 1 || (e.repeat && d > keyRepeatDelay && d%keyRepeatInterval == 0) {
			buf = append(buf, KeyEvent{Key: e.k, Mods: mods})
		}
	}
	return buf
}

func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}
