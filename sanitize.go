package toolshed

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Sanitize reduces text to characters w can draw. Accented letters are
// decomposed and their marks dropped ("café" becomes "cafe"), whitespace
// becomes a plain space, and anything else without a glyph is removed.
func Sanitize(text string, w *Writer) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFD.String(text) {
		switch {
		case unicode.Is(unicode.Mn, r):
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case w.HasGlyph(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
