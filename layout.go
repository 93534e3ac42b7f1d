package toolshed

import (
	"image"
	"time"
)

// Writer lays out and draws monospaced bitmap text into fixed character
// cells. It owns the tint cache for its sheet.
//
// Writer is not safe for concurrent use; it is meant to be driven from the
// game loop.
type Writer struct {
	// HighlightColor fills the cells of highlighted characters.
	HighlightColor RGB
	// DefaultColor is the text color used by nodes that do not set one.
	DefaultColor RGB
	// CaretColor is the color of the caret line.
	CaretColor RGB

	sheet *GlyphSheet
	tints *TintCache
	stats layoutStats
}

// NewWriter creates a writer over sheet with a grey highlight, white text
// and a black caret.
func NewWriter(sheet *GlyphSheet) *Writer {
	return &Writer{
		HighlightColor: Grey,
		DefaultColor:   White,
		CaretColor:     Black,
		sheet:          sheet,
		tints:          NewTintCache(sheet.Image()),
	}
}

// Sheet returns the glyph sheet.
func (w *Writer) Sheet() *GlyphSheet { return w.sheet }

// Tints returns the writer's tint cache.
func (w *Writer) Tints() *TintCache { return w.tints }

// CellSize returns the glyph cell dimensions.
func (w *Writer) CellSize() (cw, ch int) { return w.sheet.CellSize() }

// HasGlyph reports whether r can be laid out.
func (w *Writer) HasGlyph(r rune) bool { return w.sheet.HasGlyph(r) }

// Size returns the pixel size of text laid out on a single row.
func (w *Writer) Size(text string) (width, height int) {
	cw, ch := w.sheet.CellSize()
	return len([]rune(text)) * cw, ch
}

// PlacedGlyph is one character assigned to a cell by Layout.
type PlacedGlyph struct {
	Index    int  // rune index into the text
	Rune     rune // character as written (case preserved)
	Row, Col int
	Space    bool // occupies the cell but draws nothing
}

// TextLayout is the result of the placement pass.
type TextLayout struct {
	Grid       *RenderGrid
	Glyphs     []PlacedGlyph
	Cols, Rows int
	// Caret is the top of the caret line relative to the box origin. It is
	// only meaningful when HasCaret is true.
	Caret    image.Point
	HasCaret bool
	// Truncated reports that the text ran out of rows before it was fully
	// placed.
	Truncated bool
}

// Layout places d.Text into the cells of d.Box without drawing anything.
// It fails with a *GlyphError (wrapping ErrUnmappedGlyph) if any non-space
// character has no glyph.
func (w *Writer) Layout(d Dialogue) (*TextLayout, error) {
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	text := []rune(d.Text)
	n := len(text)
	for i, r := range text {
		if !w.sheet.HasGlyph(r) {
			return nil, &GlyphError{Rune: r, Index: i}
		}
	}

	cw, ch := w.sheet.CellSize()
	cols := max(d.Box.Dx()/cw, 0)
	rows := max(d.Box.Dy()/ch, 0)

	l := &TextLayout{
		Grid: newRenderGrid(max(rows, 1), cols, n),
		Cols: cols,
		Rows: rows,
	}
	caretAt := func(col, row int) {
		l.Caret = image.Pt(col*cw-1, row*ch)
		l.HasCaret = true
	}
	if cols == 0 || rows == 0 {
		// No visible cells. An empty auto-sized field still shows its caret.
		if rows > 0 && d.Caret == 0 {
			caretAt(0, 0)
		}
		l.Truncated = n > 0
		return l, nil
	}

	g := l.Grid

	i, j := 0, 0
	for idx := 0; idx < n; idx++ {
		r := text[idx]

		// A word that starts mid-row and cannot finish on it moves to the
		// next row, unless this is already the last row.
		if d.WordWrap && j > 0 && r != ' ' && (idx == 0 || text[idx-1] == ' ') {
			end := idx
			for end < n && text[end] != ' ' {
				end++
			}
			if j+end-idx > cols && i+1 < rows {
				g.fill(i, j, idx)
				i++
				j = 0
			}
		}

		// A space landing at the start of a wrapped row is dropped; it
		// belongs to the end of the previous row.
		if r == ' ' && j == 0 && i > 0 {
			if d.Caret == idx {
				caretAt(cols, i-1)
			}
			g.set(i-1, cols, idx)
			continue
		}

		g.set(i, j, idx)
		l.Glyphs = append(l.Glyphs, PlacedGlyph{Index: idx, Rune: r, Row: i, Col: j, Space: r == ' '})
		if d.Caret == idx {
			caretAt(j, i)
		}
		j++
		if j >= cols {
			g.set(i, cols, idx+1)
			if i == rows-1 {
				l.Truncated = idx+1 < n
				break
			}
			i++
			j = 0
		}
	}

	if d.Caret == n && !l.Truncated {
		caretAt(j, i)
	}

	// Rows below the last used one repeat it so clicks there land on the
	// last line of text.
	for k := i + 1; k < rows; k++ {
		g.copyRow(k, i)
	}

	if globalDebug {
		w.stats.layouts++
		w.stats.glyphs += len(l.Glyphs)
		w.stats.layoutTime += time.Since(t0)
	}
	return l, nil
}
