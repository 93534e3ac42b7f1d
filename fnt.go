package toolshed

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// LoadGlyphSheetFnt builds a sheet from BMFont .fnt text-format data and the
// matching page image. Only page 0 is read. Every non-space glyph must have
// the same width and height, which become the cell size. A space char, if
// present, is ignored (spaces never draw).
func LoadGlyphSheetFnt(fntData []byte, img image.Image) (*GlyphSheet, error) {
	scanner := bufio.NewScanner(bytes.NewReader(fntData))
	layout := make(map[rune]image.Point)
	var cellW, cellH, charCount int

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tag, rest := splitTag(line)
		if tag != "char" {
			continue
		}
		charCount++
		fields := parseFields(rest)

		id := fieldInt(fields, "id")
		if fieldInt(fields, "page") != 0 {
			continue
		}
		r := rune(id)
		if r == ' ' {
			continue
		}
		w, h := fieldInt(fields, "width"), fieldInt(fields, "height")
		if cellW == 0 && cellH == 0 {
			cellW, cellH = w, h
		} else if w != cellW || h != cellH {
			return nil, fmt.Errorf("toolshed: .fnt glyph %q is %dx%d, want fixed cell %dx%d", r, w, h, cellW, cellH)
		}
		layout[r] = image.Pt(fieldInt(fields, "x"), fieldInt(fields, "y"))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("toolshed: error reading .fnt data: %w", err)
	}
	if charCount == 0 {
		return nil, fmt.Errorf("toolshed: .fnt data has no char definitions")
	}
	if len(layout) == 0 {
		return nil, fmt.Errorf("toolshed: .fnt data has no drawable glyphs on page 0")
	}
	return NewGlyphSheet(img, cellW, cellH, layout)
}

// splitTag splits a BMFont line into its tag and the rest of the line.
func splitTag(line string) (string, string) {
	idx := strings.IndexByte(line, ' ')
	if idx == -1 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}

// parseFields parses "key=value key=value ..." into a map.
func parseFields(s string) map[string]string {
	fields := make(map[string]string)
	for _, part := range strings.Fields(s) {
		eq := strings.IndexByte(part, '=')
		if eq == -1 {
			continue
		}
		key := part[:eq]
		val := part[eq+1:]
		// Strip quotes from values like face="Arial"
		if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
			val = val[1 : len(val)-1]
		}
		fields[key] = val
	}
	return fields
}

// fieldInt returns the integer value of key, or 0 when missing or malformed.
func fieldInt(fields map[string]string, key string) int {
	v, ok := fields[key]
	if !ok {
		return 0
	}
	n, _ := strconv.Atoi(v)
	return n
}
