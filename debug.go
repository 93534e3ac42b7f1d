package toolshed

import (
	"fmt"
	"image"
	"time"
)

// layoutStats holds per-frame layout metrics for a Writer.
// Only populated while debug mode is on.
type layoutStats struct {
	layouts    int
	renders    int
	glyphs     int
	layoutTime time.Duration
}

// takeStats returns the accumulated stats and resets them.
func (w *Writer) takeStats() layoutStats {
	s := w.stats
	w.stats = layoutStats{}
	return s
}

// debugLog logs one frame's layout stats.
func (sm *SceneManager) debugLog(stats layoutStats, drawTime time.Duration) {
	if !sm.debug {
		return
	}
	Logger().Debug("frame",
		"scene", sm.current,
		"layouts", stats.layouts,
		"renders", stats.renders,
		"glyphs", stats.glyphs,
		"layout", stats.layoutTime,
		"draw", drawTime,
	)
}

// --- Debug overlay ---

// DebugOverlay draws "key: value" lines in the top-left corner, one row per
// key in insertion order. Values are sanitized to the writer's glyphs.
type DebugOverlay struct {
	Color RGB
	At    image.Point

	keys   []string
	values map[string]string
}

// NewDebugOverlay creates an empty overlay drawn in white at (1, 1).
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{Color: White, At: image.Pt(1, 1), values: make(map[string]string)}
}

// Set adds or replaces a line.
func (o *DebugOverlay) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = fmt.Sprint(value)
}

// Delete removes a line.
func (o *DebugOverlay) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Lines returns the formatted lines in order.
func (o *DebugOverlay) Lines() []string {
	out := make([]string, len(o.keys))
	for i, k := range o.keys {
		out[i] = k + ": " + o.values[k]
	}
	return out
}

// Draw renders every line with w, one cell row plus a pixel apart.
func (o *DebugOverlay) Draw(dst Surface, w *Writer) error {
	cw, ch := w.CellSize()
	for i, line := range o.Lines() {
		line = Sanitize(line, w)
		y := o.At.Y + i*(ch+1)
		box := image.Rect(o.At.X, y, o.At.X+len([]rune(line))*cw, y+ch)
		if _, err := w.Render(dst, NewDialogue(line, box), o.Color); err != nil {
			return fmt.Errorf("toolshed: draw debug overlay: %w", err)
		}
	}
	return nil
}
