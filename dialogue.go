package toolshed

import "image"

// NoCaret disables caret drawing for a Dialogue.
const NoCaret = -1

// Dialogue is the per-call description of text to lay out and draw.
// Indices (Caret, HighlightStart, HighlightEnd) count runes, not bytes.
type Dialogue struct {
	Text string
	// Box is the bounding box in destination pixels. Columns are
	// Box.Dx()/cellW and rows Box.Dy()/cellH, rounded down.
	Box image.Rectangle
	// Caret is the rune index the caret is drawn before, in [0, len], or
	// NoCaret.
	Caret int
	// HighlightStart and HighlightEnd bound the highlighted half-open range.
	// They may be given in either order; equal values highlight nothing.
	HighlightStart, HighlightEnd int
	// Shadow, when set, draws a copy of every glyph one pixel right and
	// down in this color, beneath the primary glyph.
	Shadow *RGB
	// Underline draws a line under the used width of the text.
	Underline bool
	// WordWrap moves a word that does not fit the current row to the next
	// row. Rows still break at the right edge when false.
	WordWrap bool
	// Debug outlines Box in red.
	Debug bool
}

// NewDialogue returns a Dialogue with no caret, no highlight and word wrap
// enabled.
func NewDialogue(text string, box image.Rectangle) Dialogue {
	return Dialogue{
		Text:     text,
		Box:      box,
		Caret:    NoCaret,
		WordWrap: true,
	}
}

// Highlight returns the highlight range normalized so lo <= hi.
func (d Dialogue) Highlight() (lo, hi int) {
	return min(d.HighlightStart, d.HighlightEnd), max(d.HighlightStart, d.HighlightEnd)
}
