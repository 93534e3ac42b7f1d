package toolshed

import (
	"fmt"
	"image"
)

// Node is one element of a UI. The set of node kinds is closed: TextField,
// Label, Button, Checkbox, ChoiceGroup, ImageNode, Popout and RectNode.
type Node interface {
	// Base returns the fields shared by every node.
	Base() *NodeBase
	// Draw renders the node. Text nodes draw with w.
	Draw(dst Surface, w *Writer) error
	// HitTest reports whether (x, y) falls on the node.
	HitTest(x, y float64) bool

	node()
}

// NodeBase holds the state common to all nodes.
type NodeBase struct {
	// Tag identifies the node within its UI.
	Tag string
	// Bounds is the node's hit and layout rectangle in screen pixels.
	Bounds image.Rectangle
	// Hoverable nodes take the hovered state when the pointer is over them.
	Hoverable bool
	Hovered   bool
	// Active nodes are drawn and hit-tested. Inactive nodes are skipped.
	Active bool
	// Debug outlines the node in red.
	Debug bool
	// Z orders nodes: higher values draw on top and win hit tests.
	Z int
	// OnClick is called when a press and release both land on the node.
	OnClick func(n Node)
}

// Base returns b.
func (b *NodeBase) Base() *NodeBase { return b }

// HitTest reports whether (x, y) is inside Bounds.
func (b *NodeBase) HitTest(x, y float64) bool {
	return rectContains(b.Bounds, x, y)
}

func (b *NodeBase) node() {}

// hover sets the hovered state and reports whether it changed.
func (b *NodeBase) hover() bool {
	if b.Hoverable && !b.Hovered && b.Active {
		b.Hovered = true
		return true
	}
	return false
}

func newBase(tag string, bounds image.Rectangle, hoverable bool) NodeBase {
	return NodeBase{Tag: tag, Bounds: bounds, Hoverable: hoverable, Active: true}
}

// --- Label ---

// Label is a static line of text. When hovered it underlines itself and
// switches to its secondary color and shadow, if set.
type Label struct {
	NodeBase
	Text           string
	Underline      bool
	Color          RGB
	SecondaryColor *RGB
	ShadowColor    *RGB
}

// NewLabel creates a black, non-hoverable label.
func NewLabel(tag string, bounds image.Rectangle, text string) *Label {
	return &Label{NodeBase: newBase(tag, bounds, false), Text: text, Color: Black}
}

func (l *Label) Draw(dst Surface, w *Writer) error {
	d := NewDialogue(l.Text, l.Bounds)
	d.Underline = l.Underline || l.Hovered
	c := l.Color
	if l.Hovered {
		if l.SecondaryColor != nil {
			c = *l.SecondaryColor
		}
		d.Shadow = l.ShadowColor
	}
	if _, err := w.Render(dst, d, c); err != nil {
		return fmt.Errorf("toolshed: draw label %q: %w", l.Tag, err)
	}
	return nil
}

// --- RectNode ---

// RectNode is a rectangle outline that fills in when hovered.
type RectNode struct {
	NodeBase
	Color RGB
}

// NewRectNode creates a black, hoverable rectangle.
func NewRectNode(tag string, bounds image.Rectangle) *RectNode {
	return &RectNode{NodeBase: newBase(tag, bounds, true), Color: Black}
}

func (r *RectNode) Draw(dst Surface, _ *Writer) error {
	if r.Hovered {
		dst.FillRect(r.Bounds, r.Color)
	} else {
		dst.StrokeRect(r.Bounds, r.Color)
	}
	return nil
}

// --- ImageNode ---

// ImageNode draws an image at its bounds origin, swapping to HoverImage
// while hovered.
type ImageNode struct {
	NodeBase
	Image      image.Image
	HoverImage image.Image
}

// NewImageNode creates a hoverable image node sized to img.
func NewImageNode(tag string, at image.Point, img image.Image) *ImageNode {
	bounds := image.Rectangle{Min: at, Max: at.Add(img.Bounds().Size())}
	return &ImageNode{NodeBase: newBase(tag, bounds, true), Image: img}
}

func (n *ImageNode) Draw(dst Surface, _ *Writer) error {
	drawImage(dst, n.Image, n.HoverImage, n.Hovered, n.Bounds.Min)
	return nil
}

func drawImage(dst Surface, img, hoverImg image.Image, hovered bool, at image.Point) {
	if hovered && hoverImg != nil {
		img = hoverImg
	}
	if img == nil {
		return
	}
	dst.DrawGlyph(img, img.Bounds(), at.X, at.Y)
}

// --- Checkbox ---

// Checkbox is a square box with a text label to its right. Bounds covers
// both; Box is the square alone.
type Checkbox struct {
	NodeBase
	Box            image.Rectangle
	Checked        bool
	Text           string
	Color          RGB
	SecondaryColor *RGB
	ShadowColor    *RGB
	FillColor      RGB

	label image.Rectangle
}

// NewCheckbox creates a hoverable checkbox. The label starts four pixels
// right of box, one cell-height tall and one cell per character wide.
func NewCheckbox(tag string, box image.Rectangle, text string, cellW, cellH int) *Checkbox {
	n := len([]rune(text))
	label := image.Rect(box.Max.X+4, box.Min.Y+1, box.Max.X+4+n*cellW, box.Min.Y+1+cellH)
	bounds := image.Rect(box.Min.X, box.Min.Y, label.Max.X, max(label.Max.Y, box.Max.Y))
	return &Checkbox{
		NodeBase: newBase(tag, bounds, true),
		Box:      box,
		Text:     text,
		label:    label,
	}
}

// Toggle flips the checked state.
func (c *Checkbox) Toggle() { c.Checked = !c.Checked }

func (c *Checkbox) Draw(dst Surface, w *Writer) error {
	dst.StrokeRect(c.Box, c.Color)
	if c.Checked {
		dst.FillRect(c.Box.Inset(2), c.FillColor)
	}

	d := NewDialogue(c.Text, c.label)
	d.Underline = c.Hovered
	col := c.Color
	if c.Hovered {
		if c.SecondaryColor != nil {
			col = *c.SecondaryColor
		}
		d.Shadow = c.ShadowColor
	}
	if _, err := w.Render(dst, d, col); err != nil {
		return fmt.Errorf("toolshed: draw checkbox %q: %w", c.Tag, err)
	}
	return nil
}

// --- ChoiceGroup ---

// ChoiceGroup is a set of checkboxes of which at most one is checked.
// Bounds grows to cover every member.
type ChoiceGroup struct {
	NodeBase
	Boxes []*Checkbox
}

// NewChoiceGroup creates an empty group.
func NewChoiceGroup(tag string) *ChoiceGroup {
	return &ChoiceGroup{NodeBase: newBase(tag, image.Rectangle{}, true)}
}

// Add appends a checkbox and extends the group bounds over it.
func (g *ChoiceGroup) Add(c *Checkbox) {
	if c == nil {
		panic("toolshed: ChoiceGroup.Add: nil checkbox")
	}
	if len(g.Boxes) == 0 {
		g.Bounds = c.Bounds
	} else {
		g.Bounds = g.Bounds.Union(c.Bounds)
	}
	g.Boxes = append(g.Boxes, c)
}

// Select checks c and unchecks every other member.
func (g *ChoiceGroup) Select(c *Checkbox) {
	for _, b := range g.Boxes {
		b.Checked = b == c
	}
}

// Selected returns the checked member, or nil.
func (g *ChoiceGroup) Selected() *Checkbox {
	for _, b := range g.Boxes {
		if b.Checked {
			return b
		}
	}
	return nil
}

// CheckboxAt returns the member under (x, y), or nil.
func (g *ChoiceGroup) CheckboxAt(x, y float64) *Checkbox {
	for _, b := range g.Boxes {
		if b.Active && b.HitTest(x, y) {
			return b
		}
	}
	return nil
}

func (g *ChoiceGroup) Draw(dst Surface, w *Writer) error {
	for _, b := range g.Boxes {
		if err := b.Draw(dst, w); err != nil {
			return err
		}
	}
	return nil
}

// --- Popout ---

// Popout is an image button that toggles a panel. Toggling also flips the
// Active state of its Items, which are separate nodes of the same UI.
type Popout struct {
	NodeBase
	Image       image.Image
	HoverImage  image.Image
	Panel       image.Rectangle
	PanelBorder int
	PanelColor  RGB
	BorderColor RGB
	Expanded    bool
	Items       []Node
	// Duration is the panel open animation length. Zero opens instantly.
	Duration float32

	open *PopoutTween
}

// NewPopout creates a collapsed, hoverable popout.
func NewPopout(tag string, at image.Point, img image.Image, panel image.Rectangle) *Popout {
	bounds := image.Rectangle{Min: at, Max: at.Add(img.Bounds().Size())}
	return &Popout{
		NodeBase:    newBase(tag, bounds, true),
		Image:       img,
		Panel:       panel,
		PanelBorder: 2,
		PanelColor:  White,
		BorderColor: Black,
		Duration:    DefaultPopoutDuration,
	}
}

// Toggle expands or collapses the panel.
func (p *Popout) Toggle() {
	p.Expanded = !p.Expanded
	for _, n := range p.Items {
		b := n.Base()
		b.Active = !b.Active
	}
	p.open = nil
	if p.Expanded && p.Duration > 0 {
		p.open = newPopoutTween(p.Duration)
	}
}

// Update advances the open animation by dt seconds.
func (p *Popout) Update(dt float32) {
	if p.open != nil && p.open.Update(dt) {
		p.open = nil
	}
}

// Opening reports whether the open animation is still running.
func (p *Popout) Opening() bool { return p.open != nil }

func (p *Popout) Draw(dst Surface, _ *Writer) error {
	drawImage(dst, p.Image, p.HoverImage, p.Hovered, p.Bounds.Min)
	if !p.Expanded {
		return nil
	}
	panel := p.Panel
	if p.open != nil {
		h := int(float32(panel.Dy()) * p.open.Progress())
		panel.Max.Y = panel.Min.Y + h
	}
	dst.FillRect(panel, p.PanelColor)
	for i := 0; i < p.PanelBorder; i++ {
		dst.StrokeRect(panel.Inset(i), p.BorderColor)
	}
	return nil
}

// --- Button ---

// Button is a text label in a beveled frame. The frame fills with
// FrameColor while hovered and the text switches to the secondary colors.
type Button struct {
	NodeBase
	Text            string
	PrimaryColor    RGB
	PrimaryShadow   *RGB
	SecondaryColor  RGB
	SecondaryShadow *RGB
	FrameColor      RGB
	BackgroundColor RGB

	textBox image.Rectangle
}

// NewButton creates a hoverable button whose text occupies textBox. With
// center set, textBox is centered on its own origin. Bounds extends the text
// box by the frame margins.
func NewButton(tag string, textBox image.Rectangle, text string, center bool) *Button {
	if center {
		textBox = textBox.Sub(image.Pt(textBox.Dx()/2, textBox.Dy()/2))
	}
	bounds := image.Rect(textBox.Min.X-5, textBox.Min.Y-3, textBox.Max.X+4, textBox.Max.Y+4)
	return &Button{
		NodeBase:        newBase(tag, bounds, true),
		Text:            text,
		PrimaryColor:    Black,
		SecondaryColor:  White,
		FrameColor:      Black,
		BackgroundColor: White,
		textBox:         textBox,
	}
}

// TextBox returns the rectangle the label is laid out in.
func (b *Button) TextBox() image.Rectangle { return b.textBox }

func (b *Button) Draw(dst Surface, w *Writer) error {
	b.drawFrame(dst)

	d := NewDialogue(b.Text, b.textBox)
	c := b.PrimaryColor
	if b.Hovered {
		c = b.SecondaryColor
		d.Shadow = b.SecondaryShadow
	} else {
		d.Shadow = b.PrimaryShadow
	}
	if _, err := w.Render(dst, d, c); err != nil {
		return fmt.Errorf("toolshed: draw button %q: %w", b.Tag, err)
	}
	return nil
}

// drawFrame draws an octagon with two-pixel clipped corners.
func (b *Button) drawFrame(dst Surface) {
	r := b.Bounds
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	fill := b.BackgroundColor
	if b.Hovered {
		fill = b.FrameColor
	}
	dst.FillRect(image.Rect(x0+1, y0+1, x1, y1), fill)
	dst.FillRect(image.Rect(x0+2, y0, x1-1, y0+1), fill)
	dst.FillRect(image.Rect(x0+2, y1, x1-1, y1+1), fill)

	pts := [...]image.Point{
		{x0, y1 - 2}, {x0, y0 + 2}, {x0 + 2, y0}, {x1 - 2, y0},
		{x1, y0 + 2}, {x1, y1 - 2}, {x1 - 2, y1}, {x0 + 2, y1},
	}
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		dst.DrawLine(p.X, p.Y, q.X, q.Y, b.FrameColor)
	}
}
