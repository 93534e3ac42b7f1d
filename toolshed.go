package toolshed

import (
	"image"
	"image/color"
)

// RGB is an opaque 8-bit color. Glyph tints are keyed by RGB, so it carries
// no alpha channel.
type RGB struct {
	R, G, B uint8
}

// Commonly used colors.
var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
	Red   = RGB{255, 0, 0}
	Grey  = RGB{150, 150, 150}
)

// RGBA implements color.Color. The result is always fully opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// NRGBA returns c as a color.NRGBA with full alpha.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Key identifies a non-character key delivered to a TextField.
type Key uint8

const (
	KeyNone      Key = iota // a printable character; see KeyEvent.Char
	KeyBackspace            // delete selection or the character before the cursor
	KeyLeft                 // move cursor one position left
	KeyRight                // move cursor one position right
	KeyEnter                // submit the field
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// KeyEvent is one keystroke. Key is KeyNone for character input, in which
// case Char holds the typed rune.
type KeyEvent struct {
	Key  Key
	Char rune
	Mods KeyModifiers
}

// CharEvent returns a KeyEvent for a typed character.
func CharEvent(r rune) KeyEvent {
	return KeyEvent{Char: r}
}

// shortcut reports whether the event carries the platform shortcut modifier.
func (e KeyEvent) shortcut() bool {
	return e.Mods&(ModCtrl|ModMeta) != 0
}

// FieldEventType identifies a kind of text field event.
type FieldEventType uint8

const (
	FieldFocus  FieldEventType = iota // fires when a field gains focus
	FieldBlur                         // fires when a field loses focus
	FieldEdit                         // fires when a keystroke changes the text
	FieldSubmit                       // fires on Enter
	FieldClear                        // fires when the scene manager clears a field
)

// String returns the event type name.
func (t FieldEventType) String() string {
	switch t {
	case FieldFocus:
		return "focus"
	case FieldBlur:
		return "blur"
	case FieldEdit:
		return "edit"
	case FieldSubmit:
		return "submit"
	case FieldClear:
		return "clear"
	default:
		return "unknown"
	}
}

// CursorShape is the pointer cursor requested when a node is hovered.
type CursorShape uint8

const (
	CursorDefault CursorShape = iota // no hoverable node under the pointer
	CursorText                       // text field
	CursorPointer                    // any other hoverable node
)

// rectContains reports whether (x, y) lies inside r. The right and bottom
// edges are exclusive, matching image.Point.In.
func rectContains(r image.Rectangle, x, y float64) bool {
	return x >= float64(r.Min.X) && x < float64(r.Max.X) &&
		y >= float64(r.Min.Y) && y < float64(r.Max.Y)
}
