package toolshed

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestDefaultGlyphLayout(t *testing.T) {
	l := DefaultGlyphLayout(8, 10)
	tests := []struct {
		r    rune
		want image.Point
	}{
		{'A', image.Pt(0, 0)},
		{'Z', image.Pt(25*8, 0)},
		{'0', image.Pt(0, 10)},
		{'9', image.Pt(9*8, 10)},
		{' ', image.Pt(10*8, 10)},
		{'%', image.Pt(14*8, 10)},
		{'>', image.Pt(24*8, 10)},
		{'(', image.Pt(21*8, 10)},
		{')', image.Pt(22*8, 10)},
	}
	for _, tt := range tests {
		if got, ok := l[tt.r]; !ok || got != tt.want {
			t.Errorf("layout[%q] = %v (%v), want %v", tt.r, got, ok, tt.want)
		}
	}
	if _, ok := l['a']; ok {
		t.Error("lowercase letters should not have their own cells")
	}
}

func TestGlyphSheetRegion(t *testing.T) {
	s := testSheet(t)
	upper, ok := s.Region('Q')
	if !ok {
		t.Fatal("no region for 'Q'")
	}
	lower, ok := s.Region('q')
	if !ok || lower != upper {
		t.Errorf("Region('q') = %v, want %v", lower, upper)
	}
	if upper.Dx() != testCellW || upper.Dy() != testCellH {
		t.Errorf("region size = %v, want %dx%d", upper.Size(), testCellW, testCellH)
	}
	if _, ok := s.Region('~'); ok {
		t.Error("unexpected region for '~'")
	}
	if !s.HasGlyph(' ') {
		t.Error("space should always be drawable")
	}
}

func TestNewGlyphSheetErrors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	tests := []struct {
		name   string
		img    image.Image
		cw, ch int
		layout map[rune]image.Point
		want   string
	}{
		{"nil image", nil, 8, 8, nil, "nil"},
		{"zero cell", img, 0, 8, nil, "cell size"},
		{"cell outside", img, 8, 8, map[rune]image.Point{'A': {12, 0}}, "outside"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGlyphSheet(tt.img, tt.cw, tt.ch, tt.layout)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestNewGlyphSheetOffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(100, 50, 116, 58))
	s, err := NewGlyphSheet(img, 8, 8, map[rune]image.Point{'A': {8, 0}})
	if err != nil {
		t.Fatal(err)
	}
	if r, _ := s.Region('A'); r != image.Rect(108, 50, 116, 58) {
		t.Errorf("Region('A') = %v, want offset by image bounds", r)
	}
}

func TestBuildGlyphSheet(t *testing.T) {
	s, err := BuildGlyphSheet(basicfont.Face7x13, 7, 13)
	if err != nil {
		t.Fatalf("BuildGlyphSheet: %v", err)
	}
	if w, h := s.CellSize(); w != 7 || h != 13 {
		t.Errorf("CellSize() = %d, %d", w, h)
	}
	if b := s.Image().Bounds(); b.Dx() != 26*7 || b.Dy() != 2*13 {
		t.Errorf("image bounds = %v", b)
	}

	// Every drawn glyph puts down at least one pixel inside its own cell.
	for _, r := range "AMZ09?" {
		rect, _ := s.Region(r)
		if !cellHasInk(s.Image(), rect) {
			t.Errorf("cell for %q is empty", r)
		}
	}
	space, _ := s.Region(' ')
	if cellHasInk(s.Image(), space) {
		t.Error("space cell should be empty")
	}
}

func TestBuildGlyphSheetErrors(t *testing.T) {
	if _, err := BuildGlyphSheet(nil, 7, 13); err == nil {
		t.Error("expected error for nil face")
	}
	if _, err := BuildGlyphSheet(basicfont.Face7x13, 0, 13); err == nil {
		t.Error("expected error for zero cell width")
	}
}

func cellHasInk(img image.Image, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				return true
			}
		}
	}
	return false
}

// --- .fnt ---

const testFnt = `info face="Mono" size=8 bold=0 italic=0
common lineHeight=8 base=7 scaleW=64 scaleH=16 pages=1
page id=0 file="mono.png"
chars count=4
char id=32 x=0 y=0 width=0 height=0 xoffset=0 yoffset=0 xadvance=8 page=0 chnl=15
char id=65 x=0 y=0 width=8 height=8 xoffset=0 yoffset=0 xadvance=8 page=0 chnl=15
char id=66 x=8 y=0 width=8 height=8 xoffset=0 yoffset=0 xadvance=8 page=0 chnl=15
char id=49 x=0 y=8 width=8 height=8 xoffset=0 yoffset=0 xadvance=8 page=0 chnl=15
`

func TestLoadGlyphSheetFnt(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 16))
	s, err := LoadGlyphSheetFnt([]byte(testFnt), img)
	if err != nil {
		t.Fatalf("LoadGlyphSheetFnt: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if w, h := s.CellSize(); w != 8 || h != 8 {
		t.Errorf("CellSize() = %d, %d", w, h)
	}
	if r, _ := s.Region('1'); r != image.Rect(0, 8, 8, 16) {
		t.Errorf("Region('1') = %v", r)
	}
	if r, ok := s.Region('b'); !ok || r != image.Rect(8, 0, 16, 8) {
		t.Errorf("Region('b') = %v, %v", r, ok)
	}
}

func TestLoadGlyphSheetFntErrors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 16))
	tests := []struct {
		name string
		data string
	}{
		{"no chars", "info face=\"x\"\ncommon lineHeight=8\n"},
		{"only space", "char id=32 x=0 y=0 width=0 height=0 page=0\n"},
		{"mixed sizes", "char id=65 x=0 y=0 width=8 height=8 page=0\nchar id=66 x=8 y=0 width=6 height=8 page=0\n"},
		{"outside image", "char id=65 x=60 y=0 width=8 height=8 page=0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadGlyphSheetFnt([]byte(tt.data), img); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	f := parseFields(`id=65 face="Arial Bold" x=3 junk`)
	if f["id"] != "65" || f["x"] != "3" {
		t.Errorf("parseFields = %v", f)
	}
	if fieldInt(f, "missing") != 0 || fieldInt(map[string]string{"n": "abc"}, "n") != 0 {
		t.Error("fieldInt should return 0 for missing or malformed values")
	}
}

// --- TexturePacker atlas ---

const testAtlasHash = `{
	"frames": {
		"A.png":      {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}, "rotated": false, "trimmed": false},
		"B.png":      {"frame": {"x": 8, "y": 0, "w": 8, "h": 8}, "rotated": false, "trimmed": false},
		"lparen.png": {"frame": {"x": 16, "y": 0, "w": 8, "h": 8}, "rotated": false, "trimmed": false},
		"space.png":  {"frame": {"x": 24, "y": 0, "w": 8, "h": 8}, "rotated": false, "trimmed": false},
		"..png":      {"frame": {"x": 0, "y": 8, "w": 8, "h": 8}, "rotated": false, "trimmed": false}
	},
	"meta": {"image": "glyphs.png"}
}`

const testAtlasArray = `{
	"textures": [{
		"image": "glyphs.png",
		"frames": {
			"7": {"frame": {"x": 8, "y": 8, "w": 8, "h": 8}}
		}
	}]
}`

func TestLoadGlyphSheetAtlas(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 16))

	s, err := LoadGlyphSheetAtlas([]byte(testAtlasHash), img)
	if err != nil {
		t.Fatalf("hash format: %v", err)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4 (space is not stored)", s.Len())
	}
	if r, _ := s.Region('('); r != image.Rect(16, 0, 24, 8) {
		t.Errorf("Region('(') = %v", r)
	}
	if r, _ := s.Region('.'); r != image.Rect(0, 8, 8, 16) {
		t.Errorf("Region('.') = %v", r)
	}

	s, err = LoadGlyphSheetAtlas([]byte(testAtlasArray), img)
	if err != nil {
		t.Fatalf("array format: %v", err)
	}
	if r, ok := s.Region('7'); !ok || r != image.Rect(8, 8, 16, 16) {
		t.Errorf("Region('7') = %v, %v", r, ok)
	}
}

func TestLoadGlyphSheetAtlasErrors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"no frames", `{"meta": {}}`},
		{"empty textures", `{"textures": []}`},
		{"long name", `{"frames": {"AB.png": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}}}}`},
		{"rotated", `{"frames": {"A": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}, "rotated": true}}}`},
		{"trimmed", `{"frames": {"A": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}, "trimmed": true}}}`},
		{"mixed sizes", `{"frames": {
			"A": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}},
			"B": {"frame": {"x": 8, "y": 0, "w": 7, "h": 8}}}}`},
		{"only space", `{"frames": {"space": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadGlyphSheetAtlas([]byte(tt.data), img); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFrameRune(t *testing.T) {
	tests := []struct {
		name string
		want rune
		ok   bool
	}{
		{"A.png", 'A', true},
		{"A", 'A', true},
		{"..png", '.', true},
		{"space.png", ' ', true},
		{"rparen", ')', true},
		{"é.png", 'é', true},
		{"AB.png", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := frameRune(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("frameRune(%q) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

// --- Tints ---

func TestTintCache(t *testing.T) {
	base := image.NewNRGBA(image.Rect(4, 4, 6, 6))
	base.SetNRGBA(4, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	base.SetNRGBA(5, 4, color.NRGBA{R: 128, G: 255, B: 0, A: 100})

	c := NewTintCache(base)
	if c.GetOrCreate(White) != image.Image(base) {
		t.Error("White should map to the untinted base")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	col := RGB{R: 255, G: 128, B: 0}
	tinted := c.GetOrCreate(col)
	if tinted.Bounds() != base.Bounds() {
		t.Errorf("tint bounds = %v, want %v", tinted.Bounds(), base.Bounds())
	}
	if got := color.NRGBAModel.Convert(tinted.At(4, 4)).(color.NRGBA); got != (color.NRGBA{255, 128, 0, 255}) {
		t.Errorf("tinted white = %v", got)
	}
	if got := color.NRGBAModel.Convert(tinted.At(5, 4)).(color.NRGBA); got != (color.NRGBA{128, 128, 0, 100}) {
		t.Errorf("tinted pixel = %v, want alpha preserved", got)
	}
	if c.GetOrCreate(col) != tinted {
		t.Error("second GetOrCreate should return the cached tint")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestMul8(t *testing.T) {
	tests := []struct{ a, b, want uint8 }{
		{255, 255, 255},
		{255, 0, 0},
		{128, 255, 128},
		{255, 128, 128},
		{100, 100, 39},
	}
	for _, tt := range tests {
		if got := mul8(tt.a, tt.b); got != tt.want {
			t.Errorf("mul8(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// --- Sanitize ---

func TestSanitize(t *testing.T) {
	w := testWriter(t)
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"café", "cafe"},
		{"naïve résumé", "naive resume"},
		{"tab\there\nnewline", "tab here newline"},
		{"50% off!", "50% off!"},
		{"a#b~c", "abc"},
		{"日本", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in, w); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizedTextLaysOut(t *testing.T) {
	w := testWriter(t)
	s := Sanitize("Ünïcödé & friends: 100%", w)
	if _, err := w.Layout(NewDialogue(s, box(0, 0, 40, 1))); err != nil {
		t.Errorf("sanitized %q failed layout: %v", s, err)
	}
}
