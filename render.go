package toolshed

import (
	"image"
)

// Render lays out d and draws it onto dst in color c, returning the grid
// that maps the box's cells back to text indices.
//
// Glyphs and highlight cells are drawn into a transparent layer sized to the
// box (plus one pixel of slack for a shadow), which is then composited onto
// dst at the box origin. The caret goes onto dst first so glyph pixels cover
// it; the underline and debug outline are drawn afterwards.
//
// If the text contains an unmapped character Render returns a *GlyphError
// and draws nothing.
func (w *Writer) Render(dst Surface, d Dialogue, c RGB) (*RenderGrid, error) {
	l, err := w.Layout(d)
	if err != nil {
		return nil, err
	}

	cw, ch := w.sheet.CellSize()
	font := w.tints.GetOrCreate(c)
	var shadow image.Image
	if d.Shadow != nil {
		shadow = w.tints.GetOrCreate(*d.Shadow)
	}

	lw, lh := d.Box.Dx(), d.Box.Dy()
	if shadow != nil {
		lw++
		lh++
	}

	if l.HasCaret {
		x := d.Box.Min.X + l.Caret.X
		y := d.Box.Min.Y + l.Caret.Y
		dst.DrawLine(x, y, x, y+ch, w.CaretColor)
	}

	if len(l.Glyphs) > 0 && lw > 0 && lh > 0 {
		lo, hi := d.Highlight()
		layer := dst.NewLayer(lw, lh)
		for _, g := range l.Glyphs {
			x, y := g.Col*cw, g.Row*ch
			if g.Index >= lo && g.Index < hi {
				layer.FillRect(image.Rect(x, y, x+cw, y+ch), w.HighlightColor)
			}
			if g.Space {
				continue
			}
			src, _ := w.sheet.Region(g.Rune)
			if shadow != nil {
				layer.DrawGlyph(shadow, src, x+1, y+1)
			}
			layer.DrawGlyph(font, src, x, y)
		}
		dst.DrawLayer(layer, d.Box.Min.X, d.Box.Min.Y)
	}

	if d.Underline {
		w.drawUnderline(dst, d, c, len([]rune(d.Text)), lw, lh)
	}

	if d.Debug || globalDebug {
		dst.StrokeRect(d.Box, Red)
	}

	if globalDebug {
		w.stats.renders++
	}
	return l.Grid, nil
}

// drawUnderline draws a line two pixels below the box spanning the used text
// width, in the shadow color if there is one. lw and lh are the layer
// dimensions, which include shadow slack.
func (w *Writer) drawUnderline(dst Surface, d Dialogue, c RGB, n, lw, lh int) {
	cw, _ := w.sheet.CellSize()
	col := c
	yOff := 0
	if d.Shadow != nil {
		col = *d.Shadow
		yOff = -1
	}
	width := min(n*cw, lw)
	y := d.Box.Min.Y + lh + yOff + 2
	dst.DrawLine(d.Box.Min.X-2, y, d.Box.Min.X+width+1, y, col)
}
