package toolshed

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultBlinkPeriod is the caret blink cycle in seconds.
const DefaultBlinkPeriod = 1.0

// DefaultPopoutDuration is the popout panel open animation length in seconds.
const DefaultPopoutDuration = 0.15

// CaretBlink drives caret visibility with a repeating linear tween from 1 to
// 0. The caret is visible for the first half of each period. A zero Period
// disables blinking.
type CaretBlink struct {
	Period float32

	tween *gween.Tween
	value float32
}

// Update advances the blink by dt seconds.
func (b *CaretBlink) Update(dt float32) {
	if b.Period <= 0 {
		return
	}
	if b.tween == nil {
		b.tween = gween.New(1, 0, b.Period, ease.Linear)
		b.value = 1
	}
	val, finished := b.tween.Update(dt)
	b.value = val
	if finished {
		b.tween.Set(0)
		b.value = 1
	}
}

// Visible reports whether the caret should be drawn this frame.
func (b *CaretBlink) Visible() bool {
	return b.Period <= 0 || b.tween == nil || b.value > 0.5
}

// Restart makes the caret visible and starts a new period.
func (b *CaretBlink) Restart() {
	if b.tween != nil {
		b.tween.Set(0)
	}
	b.value = 1
}

// PopoutTween animates a popout panel opening. Progress runs from 0 to 1
// with an ease-out curve.
type PopoutTween struct {
	tween    *gween.Tween
	progress float32
}

// newPopoutTween starts an open animation of the given duration.
func newPopoutTween(duration float32) *PopoutTween {
	return &PopoutTween{tween: gween.New(0, 1, duration, ease.OutQuad)}
}

// Update advances the animation by dt seconds and reports whether it is
// done.
func (p *PopoutTween) Update(dt float32) bool {
	val, finished := p.tween.Update(dt)
	p.progress = val
	if finished {
		p.progress = 1
	}
	return finished
}

// Progress returns the open fraction in [0, 1].
func (p *PopoutTween) Progress() float32 {
	return p.progress
}
