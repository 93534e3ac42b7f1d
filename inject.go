package toolshed

// syntheticEvent is one injected input event: a pointer sample, or a
// keystroke when key is set.
type syntheticEvent struct {
	x, y    float64
	pressed bool
	key     *KeyEvent
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed by the next ProcessInput call.
func (sm *SceneManager) InjectPress(x, y float64) {
	sm.injectQueue = append(sm.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (sm *SceneManager) InjectMove(x, y float64) {
	sm.injectQueue = append(sm.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (sm *SceneManager) InjectRelease(x, y float64) {
	sm.injectQueue = append(sm.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (sm *SceneManager) InjectClick(x, y float64) {
	sm.InjectPress(x, y)
	sm.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (sm *SceneManager) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	sm.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		sm.InjectMove(x, y)
	}
	sm.InjectRelease(toX, toY)
}

// InjectKey queues one keystroke. Consumes one frame.
func (sm *SceneManager) InjectKey(ev KeyEvent) {
	sm.injectQueue = append(sm.injectQueue, syntheticEvent{key: &ev})
}

// InjectText queues one character keystroke per rune of s.
func (sm *SceneManager) InjectText(s string) {
	for _, r := range s {
		sm.InjectKey(CharEvent(r))
	}
}

// processInjectedInput pops one event from the inject queue and dispatches
// it. Returns true if an event was consumed (real input should be skipped).
func (sm *SceneManager) processInjectedInput() bool {
	if len(sm.injectQueue) == 0 {
		return false
	}
	evt := sm.injectQueue[0]
	copy(sm.injectQueue, sm.injectQueue[1:])
	sm.injectQueue = sm.injectQueue[:len(sm.injectQueue)-1]

	if evt.key != nil {
		sm.HandleKey(*evt.key)
		return true
	}
	sm.HandlePointer(evt.x, evt.y, evt.pressed)
	return true
}
