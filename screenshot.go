package toolshed

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
)

// snapshotter is implemented by surfaces that can read back their pixels.
type snapshotter interface {
	Snapshot() image.Image
}

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The PNG is written to ScreenshotDir with a
// timestamped filename.
func (sm *SceneManager) Screenshot(label string) {
	sm.screenshotQueue = append(sm.screenshotQueue, label)
}

// flushScreenshots captures the drawn frame for every queued label.
func (sm *SceneManager) flushScreenshots(dst Surface) {
	if len(sm.screenshotQueue) == 0 {
		return
	}
	defer func() { sm.screenshotQueue = sm.screenshotQueue[:0] }()

	snap, ok := dst.(snapshotter)
	if !ok {
		Logger().Warn("screenshot: surface cannot be read back", "queued", len(sm.screenshotQueue))
		return
	}
	if err := os.MkdirAll(sm.ScreenshotDir, 0o755); err != nil {
		Logger().Warn("screenshot: mkdir failed", "dir", sm.ScreenshotDir, "err", err)
		return
	}

	img := snap.Snapshot()
	stamp := time.Now().Format("20060102_150405")
	for _, label := range sm.screenshotQueue {
		path := filepath.Join(sm.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := SaveFramePNG(path, img); err != nil {
			Logger().Warn("screenshot failed", "err", err)
		}
	}
}

// SaveFramePNG encodes img to a PNG file at path.
func SaveFramePNG(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("toolshed: save %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
