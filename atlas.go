package toolshed

import (
	"encoding/json"
	"fmt"
	"image"
	"unicode/utf8"
)

// LoadGlyphSheetAtlas builds a sheet from TexturePacker JSON and its page
// image. Supports both the hash format (single "frames" object) and the
// array format ("textures" array); only the first page is read.
//
// Frame names are the characters they draw, with an optional file extension
// ("A.png"). The names "space", "lparen" and "rparen" are accepted for
// characters that are awkward as file names. Frames must not be rotated or
// trimmed, and must all share one size.
func LoadGlyphSheetAtlas(jsonData []byte, img image.Image) (*GlyphSheet, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("toolshed: failed to parse atlas JSON: %w", err)
	}

	var frames map[string]jsonFrame
	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("toolshed: failed to parse atlas textures array: %w", err)
		}
		if len(textures) == 0 {
			return nil, fmt.Errorf("toolshed: atlas textures array is empty")
		}
		frames = textures[0].Frames
	case probe.Frames != nil:
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("toolshed: failed to parse atlas frames: %w", err)
		}
	default:
		return nil, fmt.Errorf("toolshed: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	layout := make(map[rune]image.Point, len(frames))
	var cellW, cellH int
	for name, f := range frames {
		r, ok := frameRune(name)
		if !ok {
			return nil, fmt.Errorf("toolshed: atlas frame %q does not name a single character", name)
		}
		if f.Rotated || f.Trimmed {
			return nil, fmt.Errorf("toolshed: atlas frame %q is rotated or trimmed", name)
		}
		if cellW == 0 && cellH == 0 {
			cellW, cellH = f.Frame.W, f.Frame.H
		} else if f.Frame.W != cellW || f.Frame.H != cellH {
			return nil, fmt.Errorf("toolshed: atlas frame %q is %dx%d, want fixed cell %dx%d",
				name, f.Frame.W, f.Frame.H, cellW, cellH)
		}
		if r == ' ' {
			continue
		}
		layout[r] = image.Pt(f.Frame.X, f.Frame.Y)
	}
	if len(layout) == 0 {
		return nil, fmt.Errorf("toolshed: atlas has no glyph frames")
	}
	return NewGlyphSheet(img, cellW, cellH, layout)
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
	Trimmed bool     `json:"trimmed"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

var frameAliases = map[string]rune{
	"space":  ' ',
	"lparen": '(',
	"rparen": ')',
}

// frameRune maps a frame name to the character it draws.
func frameRune(name string) (rune, bool) {
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			name = name[:i]
			break
		}
	}
	if r, ok := frameAliases[name]; ok {
		return r, true
	}
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || size != len(name) {
		return 0, false
	}
	return r, true
}
