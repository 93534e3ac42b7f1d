package toolshed

import (
	"errors"
	"image"
	"testing"
)

// drawnField returns a focused field holding text that has been drawn once,
// so pointer mapping has a grid to resolve against.
func drawnField(t *testing.T, text string, cols, rows int) (*TextField, *Writer) {
	t.Helper()
	w := testWriter(t)
	f := NewTextField("f", box(0, 0, cols, rows))
	f.SetText(text)
	f.Focus()
	redraw(t, f, w)
	return f, w
}

func redraw(t *testing.T, f *TextField, w *Writer) {
	t.Helper()
	if err := f.Draw(NewImageSurface(200, 100), w); err != nil {
		t.Fatalf("Draw: %v", err)
	}
}

func typeText(f *TextField, s string) {
	for _, r := range s {
		f.Update(CharEvent(r))
	}
}

// --- Keyboard ---

func TestTextFieldUnfocusedIgnoresInput(t *testing.T) {
	f := NewTextField("f", box(0, 0, 10, 1))
	if f.Focused() {
		t.Fatal("new field should start unfocused")
	}
	if f.Update(CharEvent('a')) {
		t.Error("unfocused field consumed a key")
	}
	if f.Text() != "" {
		t.Errorf("Text() = %q, want empty", f.Text())
	}
}

func TestTextFieldTyping(t *testing.T) {
	f := NewTextField("f", box(0, 0, 10, 1))
	f.Focus()
	typeText(f, "hi there")
	if f.Text() != "hi there" || f.Cursor() != 8 {
		t.Errorf("got %q cursor %d, want %q cursor 8", f.Text(), f.Cursor(), "hi there")
	}

	f.Update(KeyEvent{Key: KeyLeft})
	f.Update(KeyEvent{Key: KeyLeft})
	typeText(f, "X")
	if f.Text() != "hi theXre" || f.Cursor() != 7 {
		t.Errorf("got %q cursor %d, want %q cursor 7", f.Text(), f.Cursor(), "hi theXre")
	}
}

func TestTextFieldRejectsUnsupportedChars(t *testing.T) {
	f := NewTextField("f", box(0, 0, 10, 1))
	f.Focus()
	for _, r := range "#@!(\t" {
		if f.Update(CharEvent(r)) {
			t.Errorf("accepted %q", r)
		}
	}
	for _, r := range "a1 .:/-[]" {
		if !f.Update(CharEvent(r)) {
			t.Errorf("rejected %q", r)
		}
	}
}

func TestTextFieldRejectsCharsWithoutGlyph(t *testing.T) {
	f, _ := drawnField(t, "", 10, 1)
	// 'é' is a letter but the sheet has no glyph for it.
	if f.Update(CharEvent('é')) {
		t.Error("accepted a letter the writer cannot draw")
	}
}

func TestTextFieldArrowsClamp(t *testing.T) {
	f := NewTextField("f", box(0, 0, 10, 1))
	f.Focus()
	f.SetText("ab")
	for i := 0; i < 5; i++ {
		f.Update(KeyEvent{Key: KeyRight})
	}
	if f.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", f.Cursor())
	}
	for i := 0; i < 5; i++ {
		f.Update(KeyEvent{Key: KeyLeft})
	}
	if f.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", f.Cursor())
	}
}

func TestTextFieldArrowsKeepSelection(t *testing.T) {
	f, _ := drawnField(t, "hello", 10, 1)
	f.StartSelectionFromPointer(0, 0)
	f.UpdateSelectionFromPointer(3*testCellW, 0)
	f.EndSelection()
	f.Update(KeyEvent{Key: KeyLeft})
	if lo, hi := f.Selection(); lo != 0 || hi != 3 {
		t.Errorf("selection = [%d, %d), want [0, 3)", lo, hi)
	}
}

func TestTextFieldBackspaceAtStart(t *testing.T) {
	f := NewTextField("f", box(0, 0, 10, 1))
	f.Focus()
	f.SetText("ab")
	f.SetCursor(0)
	if f.Update(KeyEvent{Key: KeyBackspace}) {
		t.Error("backspace at 0 should not be consumed")
	}
	if f.Text() != "ab" || f.Cursor() != 0 {
		t.Errorf("got %q cursor %d", f.Text(), f.Cursor())
	}
}

func TestTextFieldBackspaceWithSelection(t *testing.T) {
	f, _ := drawnField(t, "hello world", 20, 1)
	f.StartSelectionFromPointer(0, 0)
	f.UpdateSelectionFromPointer(5*testCellW, 0)
	f.EndSelection()
	if got := f.SelectedText(); got != "hello" {
		t.Fatalf("SelectedText() = %q, want %q", got, "hello")
	}

	f.Update(KeyEvent{Key: KeyBackspace})
	if f.Text() != " world" {
		t.Errorf("Text() = %q, want %q", f.Text(), " world")
	}
	if f.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", f.Cursor())
	}
	if f.HasSelection() {
		t.Error("selection should be cleared")
	}
}

func TestTextFieldTypeReplacesSelection(t *testing.T) {
	f, _ := drawnField(t, "hello world", 20, 1)
	f.StartSelectionFromPointer(6*testCellW, 0)
	f.UpdateSelectionFromPointer(11*testCellW, 0)
	f.EndSelection()
	typeText(f, "Z")
	if f.Text() != "hello Z" || f.Cursor() != 7 {
		t.Errorf("got %q cursor %d, want %q cursor 7", f.Text(), f.Cursor(), "hello Z")
	}
}

func TestTextFieldInsertBackspaceRoundTrip(t *testing.T) {
	for cursor := 0; cursor <= 5; cursor++ {
		f := NewTextField("f", box(0, 0, 10, 1))
		f.Focus()
		f.SetText("hello")
		f.SetCursor(cursor)

		f.Update(CharEvent('x'))
		f.Update(KeyEvent{Key: KeyBackspace})
		if f.Text() != "hello" || f.Cursor() != cursor {
			t.Errorf("cursor %d: got %q cursor %d", cursor, f.Text(), f.Cursor())
		}
	}
}

func TestTextFieldMaxLen(t *testing.T) {
	f := NewTextField("f", box(0, 0, 10, 1))
	f.MaxLen = 3
	f.Focus()
	typeText(f, "abcdef")
	if f.Text() != "abc" {
		t.Errorf("Text() = %q, want %q", f.Text(), "abc")
	}
	f.SetText("wxyz")
	if f.Text() != "wxy" || f.Cursor() != 3 {
		t.Errorf("SetText: got %q cursor %d", f.Text(), f.Cursor())
	}
}

func TestTextFieldSubmit(t *testing.T) {
	f := NewTextField("f", box(0, 0, 10, 1))
	var got string
	f.OnSubmit = func(s string) { got = s }
	f.Focus()
	typeText(f, "go")
	if !f.Update(KeyEvent{Key: KeyEnter}) {
		t.Error("enter not consumed")
	}
	if got != "go" {
		t.Errorf("OnSubmit got %q, want %q", got, "go")
	}
}

// --- Focus ---

func TestTextFieldBlurResetsSelection(t *testing.T) {
	f, _ := drawnField(t, "hello", 10, 1)
	f.StartSelectionFromPointer(0, 0)
	f.UpdateSelectionFromPointer(2*testCellW, 0)
	f.Blur()
	if f.Focused() || f.HasSelection() || f.Selecting() {
		t.Errorf("after Blur: focused %v selection %v selecting %v", f.Focused(), f.HasSelection(), f.Selecting())
	}
	if lo, hi := f.Selection(); lo != 0 || hi != 0 {
		t.Errorf("selection = [%d, %d), want [0, 0)", lo, hi)
	}
}

func TestTextFieldClear(t *testing.T) {
	f := NewTextField("f", box(0, 0, 10, 1))
	f.SetText("abc")
	if got := f.Clear(); got != "abc" {
		t.Errorf("Clear() = %q, want %q", got, "abc")
	}
	if f.Len() != 0 || f.Cursor() != 0 {
		t.Errorf("after Clear: len %d cursor %d", f.Len(), f.Cursor())
	}
}

// --- Pointer ---

func TestTextFieldNormalizePointer(t *testing.T) {
	f, _ := drawnField(t, "abcdefgh", 10, 2)
	tests := []struct {
		name         string
		x, y         float64
		wantCol, row int
	}{
		{"origin", 0, 0, 0, 0},
		{"first half of cell", 3, 0, 0, 0},
		{"second half of cell", 4, 0, 1, 0},
		{"late in cell 2", 23, 0, 3, 0},
		{"exact boundary", 16, 0, 2, 0},
		{"second row", 8, 9, 1, 1},
		{"left of box", -50, 5, 0, 0},
		{"right of box", 500, 5, 10, 0},
		{"below box", 0, 500, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := f.normalizePointer(tt.x, tt.y, testCellW, testCellH)
			if col != tt.wantCol || row != tt.row {
				t.Errorf("normalizePointer(%v, %v) = (%d, %d), want (%d, %d)",
					tt.x, tt.y, col, row, tt.wantCol, tt.row)
			}
		})
	}
}

func TestTextFieldSetCursorFromPointer(t *testing.T) {
	f, _ := drawnField(t, "hello", 10, 1)
	f.SetCursorFromPointer(2*testCellW+1, 2)
	if f.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", f.Cursor())
	}
	f.SetCursorFromPointer(1000, 2)
	if f.Cursor() != 5 {
		t.Errorf("cursor past text = %d, want 5", f.Cursor())
	}
}

func TestTextFieldPointerBeforeDraw(t *testing.T) {
	f := NewTextField("f", box(0, 0, 10, 1))
	f.SetText("abc")
	f.SetCursorFromPointer(8, 0)
	f.StartSelectionFromPointer(8, 0)
	if f.Cursor() != 3 || f.Selecting() {
		t.Errorf("pointer before first draw changed state: cursor %d selecting %v", f.Cursor(), f.Selecting())
	}
}

func TestTextFieldSelectionNormalization(t *testing.T) {
	f, _ := drawnField(t, "abcdefghij", 20, 1)

	f.StartSelectionFromPointer(7*testCellW, 0)
	f.UpdateSelectionFromPointer(3*testCellW, 0)
	f.EndSelection()
	lo1, hi1 := f.Selection()

	f.StartSelectionFromPointer(3*testCellW, 0)
	f.UpdateSelectionFromPointer(7*testCellW, 0)
	f.EndSelection()
	lo2, hi2 := f.Selection()

	if lo1 != 3 || hi1 != 7 || lo1 != lo2 || hi1 != hi2 {
		t.Errorf("right-to-left [%d, %d), left-to-right [%d, %d), want [3, 7) both", lo1, hi1, lo2, hi2)
	}
}

func TestTextFieldUpdateSelectionRequiresDrag(t *testing.T) {
	f, _ := drawnField(t, "abcdef", 10, 1)
	f.UpdateSelectionFromPointer(3*testCellW, 0)
	if f.HasSelection() {
		t.Error("selection changed without a drag in progress")
	}
}

func TestTextFieldStaleGridClick(t *testing.T) {
	f, _ := drawnField(t, "abc", 5, 3)
	// Row 2 is below the only used row; it replicates row 0.
	onLast := func(x float64) int {
		f.SetCursorFromPointer(x, 4)
		return f.Cursor()
	}
	below := func(x float64) int {
		f.SetCursorFromPointer(x, 2*testCellH+4)
		return f.Cursor()
	}
	for _, x := range []float64{0, 9, 20, 39} {
		if a, b := onLast(x), below(x); a != b {
			t.Errorf("x=%v: last row gives %d, row below gives %d", x, a, b)
		}
	}
}

func TestTextFieldStaleGridAfterEdit(t *testing.T) {
	f, _ := drawnField(t, "abcdef", 10, 1)
	f.SetCursor(6)
	for i := 0; i < 4; i++ {
		f.Update(KeyEvent{Key: KeyBackspace})
	}
	// The grid still describes "abcdef"; the index it yields is clamped.
	f.SetCursorFromPointer(5*testCellW, 0)
	if f.Cursor() != 2 {
		t.Errorf("cursor = %d, want clamped 2", f.Cursor())
	}
	if got := f.Grid().End(); got != 6 {
		t.Errorf("cached grid end = %d, want 6 until the next draw", got)
	}
}

func TestTextFieldHighlightStaysWithinBuffer(t *testing.T) {
	tests := []struct {
		name string
		edit func(f *TextField)
	}{
		{"backspace", func(f *TextField) {
			f.Update(KeyEvent{Key: KeyBackspace})
			f.Update(KeyEvent{Key: KeyBackspace})
		}},
		{"type", func(f *TextField) { typeText(f, "xy") }},
		{"paste", func(f *TextField) {
			f.Clipboard = &MemoryClipboard{Text: "zz"}
			f.Update(KeyEvent{Char: 'v', Mods: ModMeta})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := drawnField(t, "hello", 10, 1)
			// A press past the text collapses the highlight at the end.
			f.SetCursorFromPointer(1000, 2)
			f.StartSelectionFromPointer(1000, 2)
			f.EndSelection()
			if lo, hi := f.Selection(); lo != 5 || hi != 5 {
				t.Fatalf("Selection() = (%d, %d), want (5, 5)", lo, hi)
			}
			tt.edit(f)
			lo, hi := f.Selection()
			if lo < 0 || lo > hi || hi > f.Len() {
				t.Errorf("Selection() = (%d, %d), outside [0, %d]", lo, hi, f.Len())
			}
			if f.HasSelection() || f.Selecting() {
				t.Error("edit left a selection behind")
			}
		})
	}
}

func TestTextFieldWithoutWriterAcceptsASCIIOnly(t *testing.T) {
	f := NewTextField("f", box(0, 0, 10, 1))
	f.Focus()
	if f.Update(CharEvent('é')) {
		t.Error("accepted a non-ASCII letter before a writer was known")
	}
	if !f.Update(CharEvent('e')) {
		t.Error("rejected an ASCII letter")
	}
	if err := f.Draw(NewImageSurface(100, 20), testWriter(t)); err != nil {
		t.Errorf("Draw after typing: %v", err)
	}
}

// --- Clipboard ---

func TestTextFieldClipboardShortcuts(t *testing.T) {
	clip := &MemoryClipboard{}
	f := NewTextField("f", box(0, 0, 20, 1))
	f.Clipboard = clip
	f.Focus()
	f.SetText("copy me")

	ctrl := func(r rune) bool { return f.Update(KeyEvent{Char: r, Mods: ModCtrl}) }

	if !ctrl('a') {
		t.Fatal("select all not consumed")
	}
	if lo, hi := f.Selection(); lo != 0 || hi != 7 {
		t.Errorf("select all = [%d, %d)", lo, hi)
	}
	ctrl('c')
	if clip.Text != "copy me" {
		t.Errorf("clipboard = %q after copy", clip.Text)
	}
	ctrl('x')
	if f.Text() != "" || clip.Text != "copy me" {
		t.Errorf("after cut: text %q clipboard %q", f.Text(), clip.Text)
	}
	ctrl('v')
	ctrl('v')
	if f.Text() != "copy mecopy me" {
		t.Errorf("after paste twice: %q", f.Text())
	}
}

func TestTextFieldPasteFiltersAndCaps(t *testing.T) {
	clip := &MemoryClipboard{Text: "a#b\tc"}
	f := NewTextField("f", box(0, 0, 20, 1))
	f.Clipboard = clip
	f.MaxLen = 2
	f.Focus()
	f.Update(KeyEvent{Char: 'v', Mods: ModMeta})
	if f.Text() != "ab" {
		t.Errorf("Text() = %q, want %q", f.Text(), "ab")
	}
}

type failingClipboard struct{}

var errNoClipboard = errors.New("no clipboard")

func (failingClipboard) ReadText() (string, error) { return "", errNoClipboard }
func (failingClipboard) WriteText(string) error    { return errNoClipboard }

func TestTextFieldClipboardErrorKeepsText(t *testing.T) {
	f := NewTextField("f", box(0, 0, 20, 1))
	f.Clipboard = failingClipboard{}
	f.Focus()
	f.SetText("keep")
	f.Update(KeyEvent{Char: 'a', Mods: ModCtrl})
	f.Update(KeyEvent{Char: 'x', Mods: ModCtrl})
	if f.Text() != "keep" {
		t.Errorf("failed cut removed text: %q", f.Text())
	}
}

func TestTextFieldShortcutsWithoutClipboard(t *testing.T) {
	f := NewTextField("f", box(0, 0, 20, 1))
	f.Focus()
	f.SetText("abc")
	f.Update(KeyEvent{Char: 'a', Mods: ModCtrl})
	if f.Update(KeyEvent{Char: 'c', Mods: ModCtrl}) {
		t.Error("copy consumed without a clipboard")
	}
	if f.Text() != "abc" {
		t.Errorf("Text() = %q", f.Text())
	}
}

// --- Drawing ---

func TestTextFieldDrawCachesGrid(t *testing.T) {
	f, w := drawnField(t, "ab", 5, 1)
	if f.Grid() == nil || f.Grid().End() != 2 {
		t.Fatalf("grid = %v", f.Grid())
	}
	typeText(f, "c")
	redraw(t, f, w)
	if f.Grid().End() != 3 {
		t.Errorf("grid end = %d after redraw, want 3", f.Grid().End())
	}
}

func TestTextFieldDrawWrapsGlyphError(t *testing.T) {
	w := testWriter(t)
	f := NewTextField("bad", box(0, 0, 5, 1))
	f.SetText("a#")
	err := f.Draw(NewImageSurface(50, 50), w)
	if !errors.Is(err, ErrUnmappedGlyph) {
		t.Errorf("err = %v, want ErrUnmappedGlyph", err)
	}
	if f.Grid() != nil {
		t.Error("failed draw should not cache a grid")
	}
}

func TestTextFieldExtend(t *testing.T) {
	w := testWriter(t)
	f := NewTextField("f", image.Rect(100, 0, 140, testCellH))
	f.Extendable = true
	f.SetText("abcdef")
	redraw(t, f, w)
	if f.Bounds.Min.X != 100 || f.Bounds.Dx() != 6*testCellW {
		t.Errorf("bounds = %v, want width %d from x=100", f.Bounds, 6*testCellW)
	}
	if f.Grid().Cols() != 6 {
		t.Errorf("grid cols = %d, want 6", f.Grid().Cols())
	}

	c := NewTextField("c", image.Rect(100, 0, 140, testCellH))
	c.Extendable = true
	c.AlignCenter = true
	c.SetText("ab")
	redraw(t, c, w)
	if mid := c.Bounds.Min.X + c.Bounds.Dx()/2; mid != 120 || c.Bounds.Dx() != 16 {
		t.Errorf("centered bounds = %v, want width 16 around x=120", c.Bounds)
	}
}

func TestTextFieldBlinkHidesCaret(t *testing.T) {
	f, w := drawnField(t, "", 5, 1)
	f.Tick(0.1)
	if !f.Blink.Visible() {
		t.Fatal("caret should be visible early in the period")
	}
	f.Tick(0.6)
	if f.Blink.Visible() {
		t.Fatal("caret should be hidden late in the period")
	}
	// A keystroke restarts the blink.
	typeText(f, "a")
	if !f.Blink.Visible() {
		t.Error("caret should be visible after typing")
	}
	redraw(t, f, w)
}
