package toolshed

import (
	"image"
	"sort"
)

// UI is a flat, z-ordered collection of nodes sharing one Writer. Its
// bounds grow to cover every inserted node; points outside them never hit.
type UI struct {
	// Debug outlines the UI bounds in red.
	Debug bool

	writer *Writer
	bounds image.Rectangle
	nodes  []Node // sorted by Z, highest first
}

// NewUI creates an empty UI that draws text with w.
func NewUI(w *Writer) *UI {
	return &UI{writer: w}
}

// Writer returns the UI's writer.
func (u *UI) Writer() *Writer { return u.writer }

// Bounds returns the union of all node bounds.
func (u *UI) Bounds() image.Rectangle { return u.bounds }

// Nodes returns the nodes in hit-test order (highest Z first). The returned
// slice MUST NOT be mutated.
func (u *UI) Nodes() []Node { return u.nodes }

// Insert adds n. Nodes with equal Z keep insertion order.
func (u *UI) Insert(n Node) {
	if n == nil {
		panic("toolshed: UI.Insert: nil node")
	}
	if f, ok := n.(*TextField); ok && f.writer == nil {
		f.writer = u.writer
	}
	b := n.Base().Bounds
	if len(u.nodes) == 0 {
		u.bounds = b
	} else {
		u.bounds = u.bounds.Union(b)
	}
	u.nodes = append(u.nodes, n)
	sort.SliceStable(u.nodes, func(i, j int) bool {
		return u.nodes[i].Base().Z > u.nodes[j].Base().Z
	})
}

// NodeAt returns the topmost active node under (x, y), or nil. An expanded
// popout panel swallows points that fall on it.
func (u *UI) NodeAt(x, y float64) Node {
	if !rectContains(u.bounds, x, y) {
		return nil
	}
	for _, n := range u.nodes {
		if !n.Base().Active {
			continue
		}
		if p, ok := n.(*Popout); ok && p.Expanded && rectContains(p.Panel, x, y) {
			return nil
		}
		if n.HitTest(x, y) {
			return n
		}
	}
	return nil
}

// NodeByTag returns the first node tagged tag, or nil.
func (u *UI) NodeByTag(tag string) Node {
	for _, n := range u.nodes {
		if n.Base().Tag == tag {
			return n
		}
	}
	return nil
}

// TextFields returns every text field in the UI.
func (u *UI) TextFields() []*TextField {
	var out []*TextField
	for _, n := range u.nodes {
		if f, ok := n.(*TextField); ok {
			out = append(out, f)
		}
	}
	return out
}

// Popouts returns every popout in the UI.
func (u *UI) Popouts() []*Popout {
	var out []*Popout
	for _, n := range u.nodes {
		if p, ok := n.(*Popout); ok {
			out = append(out, p)
		}
	}
	return out
}

// Draw renders active nodes lowest Z first. A node that fails to draw is
// logged and skipped; the rest of the UI still draws.
func (u *UI) Draw(dst Surface) {
	if u.Debug && !u.bounds.Empty() {
		dst.StrokeRect(u.bounds.Inset(-1), Red)
	}
	for i := len(u.nodes) - 1; i >= 0; i-- {
		n := u.nodes[i]
		b := n.Base()
		if !b.Active {
			continue
		}
		if err := n.Draw(dst, u.writer); err != nil {
			Logger().Warn("node draw failed", "tag", b.Tag, "err", err)
		}
		if b.Debug {
			dst.StrokeRect(b.Bounds, Red)
		}
	}
}

// tick advances per-frame animations of every node.
func (u *UI) tick(dt float32) {
	for _, n := range u.nodes {
		switch v := n.(type) {
		case *TextField:
			v.Tick(dt)
		case *Popout:
			v.Update(dt)
		}
	}
}
