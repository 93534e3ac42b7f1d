package toolshed

import "github.com/atotto/clipboard"

// Clipboard is the text clipboard used by TextField copy, cut and paste.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// SystemClipboard is the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }
func (SystemClipboard) WriteText(text string) error { return clipboard.WriteAll(text) }

// MemoryClipboard is an in-process clipboard for headless use.
type MemoryClipboard struct {
	Text string
}

func (c *MemoryClipboard) ReadText() (string, error) { return c.Text, nil }

func (c *MemoryClipboard) WriteText(text string) error {
	c.Text = text
	return nil
}
