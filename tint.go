package toolshed

import (
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// TintCache holds color-multiplied copies of a glyph sheet image, keyed by
// RGB. The untinted image is registered under White at construction. Tints
// are created lazily and kept for the life of the cache.
//
// Unlike the rest of the package, TintCache is safe for concurrent use so a
// single cache can back several writers.
type TintCache struct {
	mu    sync.Mutex
	base  image.Image
	tints map[RGB]image.Image
}

// NewTintCache creates a cache over base.
func NewTintCache(base image.Image) *TintCache {
	return &TintCache{
		base:  base,
		tints: map[RGB]image.Image{White: base},
	}
}

// GetOrCreate returns the sheet tinted by c, creating it on first use. Each
// pixel's RGB channels are multiplied by c; alpha is preserved. The result
// has the same bounds as the base image, so glyph regions stay valid.
func (c *TintCache) GetOrCreate(col RGB) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.tints[col]; ok {
		return img
	}
	img := multiplyRGB(c.base, col)
	c.tints[col] = img
	Logger().Debug("created glyph tint", "r", col.R, "g", col.G, "b", col.B, "tints", len(c.tints))
	return img
}

// Len returns the number of cached tints, including the untinted base.
func (c *TintCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tints)
}

// multiplyRGB returns a copy of src with every pixel's color channels scaled
// by col/255.
func multiplyRGB(src image.Image, col RGB) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i+0] = mul8(dst.Pix[i+0], col.R)
		dst.Pix[i+1] = mul8(dst.Pix[i+1], col.G)
		dst.Pix[i+2] = mul8(dst.Pix[i+2], col.B)
	}
	return dst
}

func mul8(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}
