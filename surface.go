package toolshed

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Surface is a drawing target for text and UI nodes. Coordinates are integer
// pixels with the origin at the top-left.
type Surface interface {
	// Size returns the drawable size in pixels.
	Size() (w, h int)
	// FillRect fills r with c.
	FillRect(r image.Rectangle, c color.Color)
	// StrokeRect draws a one-pixel outline along the inside of r.
	StrokeRect(r image.Rectangle, c color.Color)
	// DrawLine draws a one-pixel line between two points, inclusive.
	DrawLine(x0, y0, x1, y1 int, c color.Color)
	// DrawGlyph copies the src region of sheet to (x, y), blending over
	// what is already there.
	DrawGlyph(sheet image.Image, src image.Rectangle, x, y int)
	// NewLayer returns a transparent surface of the given size, compatible
	// with DrawLayer.
	NewLayer(w, h int) Surface
	// DrawLayer composites a layer created by NewLayer at (x, y). The layer
	// must not be used afterwards.
	DrawLayer(layer Surface, x, y int)
}

// --- ImageSurface ---

// ImageSurface is a CPU Surface backed by an *image.RGBA. It needs no GPU or
// window, which makes it the surface used by tests and headless tools.
type ImageSurface struct {
	img *image.RGBA
	dc  *gg.Context
}

// NewImageSurface creates a transparent w x h surface.
func NewImageSurface(w, h int) *ImageSurface {
	return NewImageSurfaceFrom(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// NewImageSurfaceFrom wraps an existing image. The image bounds must start
// at the origin.
func NewImageSurfaceFrom(img *image.RGBA) *ImageSurface {
	return &ImageSurface{img: img, dc: gg.NewContextForRGBA(img)}
}

// Image returns the backing image.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// Snapshot returns the backing image for screenshots.
func (s *ImageSurface) Snapshot() image.Image { return s.img }

func (s *ImageSurface) Size() (w, h int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ImageSurface) FillRect(r image.Rectangle, c color.Color) {
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func (s *ImageSurface) StrokeRect(r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	s.dc.SetColor(c)
	s.dc.SetLineWidth(1)
	s.dc.DrawRectangle(float64(r.Min.X)+0.5, float64(r.Min.Y)+0.5, float64(r.Dx()-1), float64(r.Dy()-1))
	s.dc.Stroke()
}

func (s *ImageSurface) DrawLine(x0, y0, x1, y1 int, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(1)
	s.dc.DrawLine(float64(x0)+0.5, float64(y0)+0.5, float64(x1)+0.5, float64(y1)+0.5)
	s.dc.Stroke()
}

func (s *ImageSurface) DrawGlyph(sheet image.Image, src image.Rectangle, x, y int) {
	draw.Copy(s.img, image.Pt(x, y), sheet, src, draw.Over, nil)
}

func (s *ImageSurface) NewLayer(w, h int) Surface {
	return NewImageSurface(w, h)
}

func (s *ImageSurface) DrawLayer(layer Surface, x, y int) {
	l, ok := layer.(*ImageSurface)
	if !ok {
		return
	}
	draw.Copy(s.img, image.Pt(x, y), l.img, l.img.Bounds(), draw.Over, nil)
}
