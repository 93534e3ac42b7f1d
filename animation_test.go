package toolshed

import "testing"

func TestCaretBlink(t *testing.T) {
	b := CaretBlink{Period: 1}
	if !b.Visible() {
		t.Fatal("caret should be visible before the first update")
	}

	tests := []struct {
		dt      float32
		visible bool
	}{
		{0.2, true},  // 0.2
		{0.2, true},  // 0.4
		{0.2, false}, // 0.6
		{0.3, false}, // 0.9
		{0.2, true},  // wrapped
	}
	for i, tt := range tests {
		b.Update(tt.dt)
		if got := b.Visible(); got != tt.visible {
			t.Errorf("step %d: Visible() = %v, want %v", i, got, tt.visible)
		}
	}
}

func TestCaretBlinkRestart(t *testing.T) {
	b := CaretBlink{Period: 1}
	b.Update(0.8)
	if b.Visible() {
		t.Fatal("caret should be hidden at 0.8")
	}
	b.Restart()
	if !b.Visible() {
		t.Error("Restart should show the caret")
	}
	b.Update(0.3)
	if !b.Visible() {
		t.Error("caret should still be visible 0.3s after Restart")
	}
}

func TestCaretBlinkDisabled(t *testing.T) {
	b := CaretBlink{}
	for i := 0; i < 10; i++ {
		b.Update(0.37)
		if !b.Visible() {
			t.Fatal("zero period should never hide the caret")
		}
	}
}

func TestPopoutTween(t *testing.T) {
	p := newPopoutTween(1)
	if p.Progress() != 0 {
		t.Errorf("initial progress = %v, want 0", p.Progress())
	}
	if p.Update(0.5) {
		t.Fatal("tween finished early")
	}
	// Ease-out runs ahead of linear.
	if got := p.Progress(); got <= 0.5 || got >= 1 {
		t.Errorf("progress at half time = %v, want in (0.5, 1)", got)
	}
	if !p.Update(0.6) {
		t.Fatal("tween should be finished")
	}
	if p.Progress() != 1 {
		t.Errorf("final progress = %v, want 1", p.Progress())
	}
}
