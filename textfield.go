package toolshed

import (
	"fmt"
	"image"
	"math"
	"unicode"
)

// fieldPunctuation is the punctuation a TextField accepts besides letters
// and digits.
var fieldPunctuation = map[rune]bool{
	' ': true, '.': true, ':': true, '/': true, '-': true, '[': true, ']': true,
}

// TextField is an editable single-box text input. It holds a rune buffer, a
// cursor, and a highlight range, and maps pointer positions back to text
// indices through the grid cached by its last Draw.
//
// Typed characters must have a glyph in the field's writer. Until the field
// is inserted into a UI or drawn it has no writer and accepts only ASCII
// letters, digits and its punctuation.
//
// The cached grid is one frame behind the buffer: pointer calls made after
// an edit but before the next Draw resolve against the previous layout.
// Indices it yields are clamped to the current buffer length.
type TextField struct {
	NodeBase

	// Color is the text color.
	Color RGB
	// Extendable resizes Bounds to the text width on every Draw.
	Extendable bool
	// AlignCenter keeps an extendable field centered on its midpoint.
	AlignCenter bool
	// MaxLen caps the buffer length in runes. Zero means no limit.
	MaxLen int
	// Clipboard backs Ctrl+C, Ctrl+X and Ctrl+V. Nil disables them.
	Clipboard Clipboard
	// Blink drives caret blinking; advance it with Tick.
	Blink CaretBlink
	// OnSubmit is called with the buffer contents when Enter is pressed.
	OnSubmit func(text string)

	buffer            []rune
	cursor            int
	hlStart, hlEnd    int
	focused           bool
	updatingHighlight bool
	grid              *RenderGrid
	writer            *Writer
}

// NewTextField creates an unfocused, hoverable, empty text field.
func NewTextField(tag string, bounds image.Rectangle) *TextField {
	f := &TextField{Color: White}
	f.Tag = tag
	f.Bounds = bounds
	f.Hoverable = true
	f.Active = true
	f.Blink.Period = DefaultBlinkPeriod
	return f
}

// Text returns the buffer contents.
func (f *TextField) Text() string { return string(f.buffer) }

// Len returns the buffer length in runes.
func (f *TextField) Len() int { return len(f.buffer) }

// SetText replaces the buffer, moves the cursor to the end and clears the
// selection.
func (f *TextField) SetText(s string) {
	f.buffer = []rune(s)
	if f.MaxLen > 0 && len(f.buffer) > f.MaxLen {
		f.buffer = f.buffer[:f.MaxLen]
	}
	f.cursor = len(f.buffer)
	f.hlStart, f.hlEnd = 0, 0
}

// Cursor returns the cursor index in [0, Len()].
func (f *TextField) Cursor() int { return f.cursor }

// SetCursor moves the cursor, clamped to the buffer.
func (f *TextField) SetCursor(i int) {
	f.cursor = max(0, min(i, len(f.buffer)))
}

// Selection returns the normalized highlight range.
func (f *TextField) Selection() (lo, hi int) {
	return min(f.hlStart, f.hlEnd), max(f.hlStart, f.hlEnd)
}

// HasSelection reports whether a non-empty range is highlighted.
func (f *TextField) HasSelection() bool { return f.hlStart != f.hlEnd }

// SelectedText returns the highlighted text.
func (f *TextField) SelectedText() string {
	lo, hi := f.Selection()
	lo, hi = min(lo, len(f.buffer)), min(hi, len(f.buffer))
	return string(f.buffer[lo:hi])
}

// Selecting reports whether a drag selection is in progress.
func (f *TextField) Selecting() bool { return f.updatingHighlight }

// Focused reports whether the field receives key input.
func (f *TextField) Focused() bool { return f.focused }

// Focus makes the field receive key input.
func (f *TextField) Focus() {
	f.focused = true
	f.Blink.Restart()
}

// Blur stops key input and clears the selection.
func (f *TextField) Blur() {
	f.focused = false
	f.hlStart, f.hlEnd = 0, 0
	f.updatingHighlight = false
}

// Grid returns the grid cached by the last Draw, or nil before the first.
func (f *TextField) Grid() *RenderGrid { return f.grid }

// Clear empties the buffer and returns what it held.
func (f *TextField) Clear() string {
	s := string(f.buffer)
	f.buffer = f.buffer[:0]
	f.cursor = 0
	f.hlStart, f.hlEnd = 0, 0
	return s
}

// Tick advances the caret blink by dt seconds.
func (f *TextField) Tick(dt float32) {
	f.Blink.Update(dt)
}

// --- Keyboard ---

// Update applies one keystroke and reports whether the field consumed it.
// Unfocused fields ignore all input.
func (f *TextField) Update(ev KeyEvent) bool {
	if !f.focused {
		return false
	}
	if ev.shortcut() {
		return f.shortcut(ev.Char)
	}

	switch ev.Key {
	case KeyNone:
		if !f.accepts(ev.Char) {
			return false
		}
		f.deleteSelection()
		f.insert(ev.Char)
		f.collapseHighlight()
	case KeyBackspace:
		if !f.deleteSelection() {
			if f.cursor == 0 {
				return false
			}
			f.buffer = append(f.buffer[:f.cursor-1], f.buffer[f.cursor:]...)
			f.cursor--
			f.collapseHighlight()
		}
	case KeyLeft:
		f.cursor = max(f.cursor-1, 0)
	case KeyRight:
		f.cursor = min(f.cursor+1, len(f.buffer))
	case KeyEnter:
		if f.OnSubmit != nil {
			f.OnSubmit(string(f.buffer))
		}
	default:
		return false
	}
	f.Blink.Restart()
	return true
}

// accepts reports whether r may be typed: a letter, digit or one of the
// field punctuation marks that the writer can draw. Without a writer the
// character must also be ASCII.
func (f *TextField) accepts(r rune) bool {
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !fieldPunctuation[r] {
		return false
	}
	if f.writer == nil {
		return r < unicode.MaxASCII
	}
	return f.writer.HasGlyph(r)
}

// insert puts r before the cursor and advances it. It is a no-op when the
// buffer is full.
func (f *TextField) insert(r rune) bool {
	if f.MaxLen > 0 && len(f.buffer) >= f.MaxLen {
		return false
	}
	f.buffer = append(f.buffer, 0)
	copy(f.buffer[f.cursor+1:], f.buffer[f.cursor:])
	f.buffer[f.cursor] = r
	f.cursor++
	return true
}

// collapseHighlight drops an empty highlight left behind by a pointer press
// so it cannot point past the end of an edited buffer. It also ends a drag
// that has not selected anything yet.
func (f *TextField) collapseHighlight() {
	if f.hlStart == f.hlEnd {
		f.hlStart, f.hlEnd = 0, 0
		f.updatingHighlight = false
	}
}

// deleteSelection removes the highlighted range, moves the cursor to its
// start and clears the highlight. It reports whether anything was removed.
func (f *TextField) deleteSelection() bool {
	if f.hlStart == f.hlEnd {
		return false
	}
	lo, hi := f.Selection()
	lo, hi = min(lo, len(f.buffer)), min(hi, len(f.buffer))
	f.buffer = append(f.buffer[:lo], f.buffer[hi:]...)
	f.cursor = lo
	f.hlStart, f.hlEnd = 0, 0
	f.updatingHighlight = false
	return true
}

// shortcut handles Ctrl/Cmd combinations: A selects all, C copies, X cuts
// and V pastes.
func (f *TextField) shortcut(key rune) bool {
	switch unicode.ToLower(key) {
	case 'a':
		f.hlStart, f.hlEnd = 0, len(f.buffer)
		f.cursor = len(f.buffer)
		return true
	case 'c':
		if f.Clipboard == nil || !f.HasSelection() {
			return false
		}
		if err := f.Clipboard.WriteText(f.SelectedText()); err != nil {
			Logger().Warn("clipboard write failed", "field", f.Tag, "err", err)
		}
		return true
	case 'x':
		if f.Clipboard == nil || !f.HasSelection() {
			return false
		}
		if err := f.Clipboard.WriteText(f.SelectedText()); err != nil {
			Logger().Warn("clipboard write failed", "field", f.Tag, "err", err)
			return true
		}
		f.deleteSelection()
		return true
	case 'v':
		if f.Clipboard == nil {
			return false
		}
		text, err := f.Clipboard.ReadText()
		if err != nil {
			Logger().Warn("clipboard read failed", "field", f.Tag, "err", err)
			return true
		}
		f.deleteSelection()
		for _, r := range text {
			if f.accepts(r) && !f.insert(r) {
				break
			}
		}
		f.collapseHighlight()
		return true
	}
	return false
}

// --- Pointer ---

// SetCursorFromPointer moves the cursor to the index under (x, y).
func (f *TextField) SetCursorFromPointer(x, y float64) {
	if idx, ok := f.indexAt(x, y); ok {
		f.cursor = idx
	}
}

// StartSelectionFromPointer collapses the highlight to the index under
// (x, y) and begins a drag selection.
func (f *TextField) StartSelectionFromPointer(x, y float64) {
	idx, ok := f.indexAt(x, y)
	if !ok {
		return
	}
	f.hlStart, f.hlEnd = idx, idx
	f.updatingHighlight = true
}

// UpdateSelectionFromPointer moves the highlight end to the index under
// (x, y) while a drag selection is in progress.
func (f *TextField) UpdateSelectionFromPointer(x, y float64) {
	if !f.updatingHighlight {
		return
	}
	if idx, ok := f.indexAt(x, y); ok {
		f.hlEnd = idx
	}
}

// EndSelection finishes a drag selection, keeping the highlighted range.
func (f *TextField) EndSelection() {
	f.updatingHighlight = false
}

// indexAt resolves a pointer position to a text index through the cached
// grid. It fails only when nothing has been drawn yet.
func (f *TextField) indexAt(x, y float64) (int, bool) {
	if f.grid == nil || f.writer == nil {
		return 0, false
	}
	cw, ch := f.writer.CellSize()
	col, row := f.normalizePointer(x, y, cw, ch)
	return min(f.grid.At(row, col), len(f.buffer)), true
}

// normalizePointer clamps (x, y) into the field, rounds x to the nearest
// cell boundary and returns the grid cell, clamped to the cached grid.
func (f *TextField) normalizePointer(x, y float64, cw, ch int) (col, row int) {
	b := f.Bounds
	x = math.Max(float64(b.Min.X), math.Min(x, float64(b.Max.X))) - float64(b.Min.X)
	y = math.Max(float64(b.Min.Y), math.Min(y, float64(b.Max.Y))) - float64(b.Min.Y)

	sw := float64(cw)
	if rem := math.Mod(x, sw); rem < float64(cw/2) {
		x -= rem
	} else {
		x += sw
	}
	col = min(int(x/sw), f.grid.Width()-1)
	row = min(int(y/float64(ch)), f.grid.Rows()-1)
	return col, row
}

// --- Drawing ---

// Draw renders the field with w and caches the resulting grid for pointer
// mapping. The caret is hidden while unfocused, while a range is
// highlighted, and during the off half of a blink.
func (f *TextField) Draw(dst Surface, w *Writer) error {
	f.writer = w
	if f.Extendable {
		f.extend(w)
	}

	d := NewDialogue(string(f.buffer), f.Bounds)
	if f.focused && !f.HasSelection() && f.Blink.Visible() {
		d.Caret = f.cursor
	}
	d.HighlightStart, d.HighlightEnd = f.Selection()
	d.Debug = f.Debug

	grid, err := w.Render(dst, d, f.Color)
	if err != nil {
		return fmt.Errorf("toolshed: draw text field %q: %w", f.Tag, err)
	}
	f.grid = grid
	return nil
}

// extend resizes Bounds to the buffer's rendered width, re-centering on the
// old midpoint when AlignCenter is set.
func (f *TextField) extend(w *Writer) {
	width, _ := w.Size(string(f.buffer))
	if f.AlignCenter {
		mid := f.Bounds.Min.X + f.Bounds.Dx()/2
		f.Bounds.Min.X = mid - width/2
	}
	f.Bounds.Max.X = f.Bounds.Min.X + width
}
