package toolshed

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrUnmappedGlyph is returned (wrapped in a *GlyphError) when text contains
// a character the glyph sheet has no region for.
var ErrUnmappedGlyph = errors.New("toolshed: no glyph for character")

// GlyphError reports the first unmapped character of a dialogue.
type GlyphError struct {
	Rune  rune
	Index int // rune index into the dialogue text
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("toolshed: no glyph for %q at index %d", e.Rune, e.Index)
}

// Unwrap lets errors.Is match ErrUnmappedGlyph.
func (e *GlyphError) Unwrap() error {
	return ErrUnmappedGlyph
}

// GlyphSheet is a raster image holding one fixed-size cell per supported
// character. Every region is exactly CellW x CellH pixels. Lowercase ASCII
// letters always resolve to their uppercase region.
type GlyphSheet struct {
	img          image.Image
	cellW, cellH int
	regions      map[rune]image.Rectangle
}

// --- Default layout ---

// defaultRow1 lists the characters on the second row of the default sheet
// by column. Zero entries are unused columns.
var defaultRow1 = [...]rune{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	' ', '.', ',', 0, '%', '!', '?', ':', '/', '-',
	'*', '[', ']', '<', '>',
}

// DefaultGlyphLayout returns the pixel origin of every character in the
// standard sheet arrangement: A-Z across row 0, then digits, space and
// punctuation across row 1. '(' and ')' share the '[' and ']' cells.
func DefaultGlyphLayout(cellW, cellH int) map[rune]image.Point {
	layout := make(map[rune]image.Point, 64)
	for i := 0; i < 26; i++ {
		layout['A'+rune(i)] = image.Pt(i*cellW, 0)
	}
	for col, r := range defaultRow1 {
		if r == 0 {
			continue
		}
		layout[r] = image.Pt(col*cellW, cellH)
	}
	layout['('] = layout['[']
	layout[')'] = layout[']']
	return layout
}

// NewGlyphSheet creates a sheet from an image and a map of cell origins
// (relative to the image bounds). Every cell must lie inside the image.
func NewGlyphSheet(img image.Image, cellW, cellH int, layout map[rune]image.Point) (*GlyphSheet, error) {
	if img == nil {
		return nil, errors.New("toolshed: glyph sheet image is nil")
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("toolshed: invalid glyph cell size %dx%d", cellW, cellH)
	}
	b := img.Bounds()
	s := &GlyphSheet{
		img:     img,
		cellW:   cellW,
		cellH:   cellH,
		regions: make(map[rune]image.Rectangle, len(layout)),
	}
	for r, p := range layout {
		rect := image.Rect(p.X, p.Y, p.X+cellW, p.Y+cellH).Add(b.Min)
		if !rect.In(b) {
			return nil, fmt.Errorf("toolshed: glyph %q cell %v outside sheet bounds %v", r, rect, b)
		}
		s.regions[r] = rect
	}
	return s, nil
}

// Image returns the untinted sheet image.
func (s *GlyphSheet) Image() image.Image {
	return s.img
}

// CellSize returns the fixed glyph cell dimensions.
func (s *GlyphSheet) CellSize() (w, h int) {
	return s.cellW, s.cellH
}

// Len returns the number of mapped characters.
func (s *GlyphSheet) Len() int {
	return len(s.regions)
}

// Region returns the source rectangle for r. Lowercase a-z resolve to the
// uppercase region.
func (s *GlyphSheet) Region(r rune) (image.Rectangle, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	rect, ok := s.regions[r]
	return rect, ok
}

// HasGlyph reports whether r can be drawn. A space is always drawable: it
// occupies a cell but puts no pixels down.
func (s *GlyphSheet) HasGlyph(r rune) bool {
	if r == ' ' {
		return true
	}
	_, ok := s.Region(r)
	return ok
}

// --- Rasterized sheets ---

// defaultCharset is the draw order used by BuildGlyphSheet. Aliased cells
// ('(' and ')') are not drawn separately.
const defaultCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789.,%!?:/-*[]<>"

// BuildGlyphSheet rasterizes face into a sheet using DefaultGlyphLayout.
// Each glyph is drawn in white, horizontally centered in its cell, with the
// baseline placed at the face ascent. Use basicfont.Face7x13 with a 7x13
// cell for a sheet that needs no asset files.
func BuildGlyphSheet(face font.Face, cellW, cellH int) (*GlyphSheet, error) {
	if face == nil {
		return nil, errors.New("toolshed: font face is nil")
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("toolshed: invalid glyph cell size %dx%d", cellW, cellH)
	}
	layout := DefaultGlyphLayout(cellW, cellH)
	img := image.NewNRGBA(image.Rect(0, 0, 26*cellW, 2*cellH))

	ascent := face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}
	for _, r := range defaultCharset {
		p := layout[r]
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			return nil, fmt.Errorf("toolshed: font face has no glyph for %q", r)
		}
		x := p.X + (cellW-adv.Ceil())/2
		cell := image.Rect(p.X, p.Y, p.X+cellW, p.Y+cellH)
		d.Dst = img.SubImage(cell).(draw.Image)
		d.Dot = fixed.P(x, p.Y+ascent)
		d.DrawString(string(r))
	}
	return NewGlyphSheet(img, cellW, cellH, layout)
}
