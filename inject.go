package nova

// injectedEvent is one queued synthetic input event. Exactly one of key and
// mouse is set.
type injectedEvent struct {
	key   *KeyboardEvent
	mouse *MouseEvent
}

// InjectKeyPress queues a key press. Queued events are consumed one per
// frame and dispatched exactly like real input.
func (a *Application) InjectKeyPress(k Key, mods KeyModifiers) {
	a.inject = append(a.inject, injectedEvent{key: &KeyboardEvent{
		Type: KeyPressed, Key: k, Mods: mods,
	}})
}

// InjectKeyRelease queues a key release.
func (a *Application) InjectKeyRelease(k Key, mods KeyModifiers) {
	a.inject = append(a.inject, injectedEvent{key: &KeyboardEvent{
		Type: KeyReleased, Key: k, Mods: mods,
	}})
}

// InjectKeyTap queues a press followed by a release. Consumes two frames.
func (a *Application) InjectKeyTap(k Key, mods KeyModifiers) {
	a.InjectKeyPress(k, mods)
	a.InjectKeyRelease(k, mods)
}

// InjectMouseMove queues a cursor move to the given pixel position.
func (a *Application) InjectMouseMove(x, y float64) {
	a.injectMouse(MouseMove, x, y, MouseButtonLeft)
}

// InjectMousePress queues a button press at the given pixel position.
func (a *Application) InjectMousePress(x, y float64, b MouseButton) {
	a.injectMouse(MouseButtonDown, x, y, b)
}

// InjectMouseRelease queues a button release at the given pixel position.
func (a *Application) InjectMouseRelease(x, y float64, b MouseButton) {
	a.injectMouse(MouseButtonUp, x, y, b)
}

// InjectClick queues a left press followed by a release at the same
// position. Consumes two frames.
func (a *Application) InjectClick(x, y float64) {
	a.InjectMousePress(x, y, MouseButtonLeft)
	a.InjectMouseRelease(x, y, MouseButtonLeft)
}

// InjectDrag queues a full left-button drag: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and release
// at (toX, toY). The sequence consumes frames frames, at least 2.
func (a *Application) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	a.InjectMousePress(fromX, fromY, MouseButtonLeft)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		a.InjectMouseMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	a.InjectMouseRelease(toX, toY, MouseButtonLeft)
}

// PendingInjections returns the number of queued synthetic events.
func (a *Application) PendingInjections() int { return len(a.inject) }

func (a *Application) injectMouse(t MouseEventType, x, y float64, b MouseButton) {
	screen := Vec2{X: x, Y: y}
	var pos Vec2
	if w, h := a.mode.frameSize(); w > 0 && h > 0 {
		pos = Vec2{X: x / float64(w), Y: y / float64(h)}
	}
	a.inject = append(a.inject, injectedEvent{mouse: &MouseEvent{
		Type:      t,
		Pos:       pos,
		ScreenPos: screen,
		Button:    b,
	}})
}

// processInjected pops one queued event and dispatches it. It reports
// whether an event was consumed.
func (a *Application) processInjected() bool {
	if len(a.inject) == 0 {
		return false
	}
	evt := a.inject[0]
	copy(a.inject, a.inject[1:])
	a.inject = a.inject[:len(a.inject)-1]

	switch {
	case evt.key != nil:
		a.HandleKeyboardEvent(*evt.key)
	case evt.mouse != nil:
		a.HandleMouseEvent(*evt.mouse)
	}
	return true
}
