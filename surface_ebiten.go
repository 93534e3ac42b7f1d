package toolshed

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface is a GPU Surface that draws onto an *ebiten.Image. Glyph
// sheets are uploaded once and cached; layers come from a pool of offscreen
// images that is shared with every layer created from the same surface.
//
// Hold one EbitenSurface for the life of the game and call Retarget with the
// screen at the start of each Draw.
type EbitenSurface struct {
	img  *ebiten.Image
	w, h int
	res  *ebitenResources
}

// ebitenResources is shared by a surface and all of its layers.
type ebitenResources struct {
	sheets map[image.Image]*ebiten.Image
	pool   layerPool
}

// NewEbitenSurface wraps img.
func NewEbitenSurface(img *ebiten.Image) *EbitenSurface {
	s := &EbitenSurface{res: &ebitenResources{sheets: make(map[image.Image]*ebiten.Image)}}
	s.Retarget(img)
	return s
}

// Retarget points the surface at a new destination image, keeping the sheet
// cache and layer pool.
func (s *EbitenSurface) Retarget(img *ebiten.Image) {
	s.img = img
	b := img.Bounds()
	s.w, s.h = b.Dx(), b.Dy()
}

// Image returns the current destination image.
func (s *EbitenSurface) Image() *ebiten.Image { return s.img }

// Snapshot reads the destination back as a straight-alpha image.
func (s *EbitenSurface) Snapshot() image.Image {
	pixels := make([]byte, 4*s.w*s.h)
	s.img.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, s.w, s.h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func (s *EbitenSurface) Size() (w, h int) { return s.w, s.h }

func (s *EbitenSurface) FillRect(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(s.img, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}

func (s *EbitenSurface) StrokeRect(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	vector.StrokeRect(s.img, float32(r.Min.X)+0.5, float32(r.Min.Y)+0.5, float32(r.Dx()-1), float32(r.Dy()-1), 1, c, false)
}

func (s *EbitenSurface) DrawLine(x0, y0, x1, y1 int, c color.Color) {
	vector.StrokeLine(s.img, float32(x0)+0.5, float32(y0)+0.5, float32(x1)+0.5, float32(y1)+0.5, 1, c, false)
}

func (s *EbitenSurface) DrawGlyph(sheet image.Image, src image.Rectangle, x, y int) {
	page := s.res.upload(sheet)
	sub := page.SubImage(src).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(x), float64(y))
	s.img.DrawImage(sub, &op)
}

func (s *EbitenSurface) NewLayer(w, h int) Surface {
	img := s.res.pool.Acquire(w, h)
	return &EbitenSurface{img: img, w: w, h: h, res: s.res}
}

// DrawLayer composites layer and returns its image to the pool.
func (s *EbitenSurface) DrawLayer(layer Surface, x, y int) {
	l, ok := layer.(*EbitenSurface)
	if !ok {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(x), float64(y))
	s.img.DrawImage(l.img.SubImage(image.Rect(0, 0, l.w, l.h)).(*ebiten.Image), &op)
	s.res.pool.Release(l.img)
	l.img = nil
}

// upload returns the GPU copy of a sheet (or tint), creating it on first use.
func (r *ebitenResources) upload(sheet image.Image) *ebiten.Image {
	if img, ok := sheet.(*ebiten.Image); ok {
		return img
	}
	if img, ok := r.sheets[sheet]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(sheet)
	r.sheets[sheet] = img
	return img
}

// --- Layer pool ---

// layerPool manages reusable offscreen ebiten.Images keyed by power-of-two
// dimensions. After warmup, Acquire/Release are zero-alloc.
type layerPool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Dimensions are rounded up to the next power of two.
func (p *layerPool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here.
func (p *layerPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}
