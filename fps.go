package toolshed

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// FPSCounter keeps a label showing the current FPS and TPS. The text is
// refreshed about every half second.
type FPSCounter struct {
	Label *Label

	elapsed float32
	sample  func() (fps, tps float64)
}

// NewFPSCounter creates a counter whose label sits at the given point and is
// sized for cells of the given size.
func NewFPSCounter(at image.Point, cellW, cellH int) *FPSCounter {
	const width = len("FPS 000.0 TPS 000.0")
	label := NewLabel("fps", image.Rectangle{Min: at, Max: at.Add(image.Pt(width*cellW, cellH))}, "")
	label.Color = White
	label.Z = 1 << 16
	return &FPSCounter{
		Label:  label,
		sample: func() (float64, float64) { return ebiten.ActualFPS(), ebiten.ActualTPS() },
	}
}

// Update advances the refresh timer by dt seconds.
func (c *FPSCounter) Update(dt float32) {
	c.elapsed += dt
	if c.elapsed < 0.5 && c.Label.Text != "" {
		return
	}
	c.elapsed = 0
	fps, tps := c.sample()
	c.Label.Text = fmt.Sprintf("FPS %.1f TPS %.1f", fps, tps)
}
