package toolshed

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the logical screen size in pixels.
	Width, Height int
	// Scale multiplies the window size. Zero defaults to 1.
	Scale int
	// TPS sets ticks per second. Zero keeps the Ebitengine default (60).
	TPS int
	// ShowFPS draws an FPS/TPS counter in the top-left corner.
	ShowFPS bool
	// ClearColor fills the screen before each frame.
	ClearColor RGB
}

// Run opens a window and drives sm from an Ebitengine game loop until the
// window is closed. w draws the FPS counter when cfg.ShowFPS is set.
func Run(sm *SceneManager, w *Writer, cfg RunConfig) error {
	if sm == nil {
		return errors.New("toolshed: Run: nil SceneManager")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("toolshed: Run: width and height must be positive")
	}
	scale := max(cfg.Scale, 1)
	ebiten.SetWindowSize(cfg.Width*scale, cfg.Height*scale)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	sm.SetCursorHook(setEbitenCursor)

	g := &game{sm: sm, writer: w, cfg: cfg}
	if cfg.ShowFPS && w != nil {
		cw, ch := w.CellSize()
		g.fps = NewFPSCounter(image.Pt(2, 2), cw, ch)
	}
	return ebiten.RunGame(g)
}

type game struct {
	sm      *SceneManager
	writer  *Writer
	cfg     RunConfig
	surface *EbitenSurface
	fps     *FPSCounter
}

func (g *game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.sm.Update(dt)
	if g.fps != nil {
		g.fps.Update(dt)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor)
	if g.surface == nil {
		g.surface = NewEbitenSurface(screen)
	} else {
		g.surface.Retarget(screen)
	}
	g.sm.Draw(g.surface)
	if g.fps != nil {
		if err := g.fps.Label.Draw(g.surface, g.writer); err != nil {
			Logger().Warn("fps counter draw failed", "err", err)
		}
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func setEbitenCursor(c CursorShape) {
	switch c {
	case CursorText:
		ebiten.SetCursorShape(ebiten.CursorShapeText)
	case CursorPointer:
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}
