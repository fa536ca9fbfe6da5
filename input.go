package nova

// keySet is a fixed-size bitset with one bit per Key.
type keySet [(int(keyCount) + 63) / 64]uint64

func (s *keySet) set(k Key, down bool) {
	if k >= keyCount {
		return
	}
	if down {
		s[k/64] |= 1 << (k % 64)
	} else {
		s[k/64] &^= 1 << (k % 64)
	}
}

func (s *keySet) has(k Key) bool {
	if k >= keyCount {
		return false
	}
	return s[k/64]&(1<<(k%64)) != 0
}

// mouseSet has one bit per MouseButton.
type mouseSet uint8

func (s *mouseSet) set(b MouseButton, down bool) {
	if b >= mouseButtonCount {
		return
	}
	if down {
		*s |= 1 << b
	} else {
		*s &^= 1 << b
	}
}

func (s mouseSet) has(b MouseButton) bool {
	return b < mouseButtonCount && s&(1<<b) != 0
}

// InputState is a double-buffered snapshot of keyboard and mouse state.
// Events update the current buffer; EndFrame copies it into the previous
// buffer. "Pressed" and "released" compare the two, so they hold for exactly
// one frame after the transition.
//
// EndFrame must run once per frame after all event handling for that frame.
type InputState struct {
	keys      keySet
	prevKeys  keySet
	mouse     mouseSet
	prevMouse mouseSet
	moving    bool
}

// OnKeyEvent records a key transition. Repeat and text input events do not
// change key state.
func (s *InputState) OnKeyEvent(e KeyboardEvent) {
	switch e.Type {
	case KeyPressed:
		s.keys.set(e.Key, true)
	case KeyReleased:
		s.keys.set(e.Key, false)
	}
}

// OnMouseEvent records a button transition or marks the mouse as moving.
func (s *InputState) OnMouseEvent(e MouseEvent) {
	switch e.Type {
	case MouseButtonDown:
		s.mouse.set(e.Button, true)
	case MouseButtonUp:
		s.mouse.set(e.Button, false)
	case MouseMove:
		s.moving = true
	}
}

// EndFrame advances the snapshot: current state becomes previous state and
// the moving flag clears.
func (s *InputState) EndFrame() {
	s.prevKeys = s.keys
	s.prevMouse = s.mouse
	s.moving = false
}

// IsKeyDown reports whether k is held.
func (s *InputState) IsKeyDown(k Key) bool { return s.keys.has(k) }

// IsKeyPressed reports whether k went down this frame.
func (s *InputState) IsKeyPressed(k Key) bool {
	return s.keys.has(k) && !s.prevKeys.has(k)
}

// IsKeyReleased reports whether k went up this frame.
func (s *InputState) IsKeyReleased(k Key) bool {
	return !s.keys.has(k) && s.prevKeys.has(k)
}

// IsMouseButtonDown reports whether b is held.
func (s *InputState) IsMouseButtonDown(b MouseButton) bool { return s.mouse.has(b) }

// IsMouseButtonClicked reports whether b went down this frame.
func (s *InputState) IsMouseButtonClicked(b MouseButton) bool {
	return s.mouse.has(b) && !s.prevMouse.has(b)
}

// IsMouseButtonReleased reports whether b went up this frame.
func (s *InputState) IsMouseButtonReleased(b MouseButton) bool {
	return !s.mouse.has(b) && s.prevMouse.has(b)
}

// IsMouseMoving reports whether a move event arrived this frame.
func (s *InputState) IsMouseMoving() bool { return s.moving }

// IsModifierDown reports whether either physical key of m is held.
// m must be exactly one of ModShift, ModCtrl or ModAlt.
func (s *InputState) IsModifierDown(m KeyModifiers) bool {
	return modifierState(&s.keys, m)
}

// IsModifierPressed reports whether m became held this frame.
func (s *InputState) IsModifierPressed(m KeyModifiers) bool {
	return modifierState(&s.keys, m) && !modifierState(&s.prevKeys, m)
}

// IsModifierReleased reports whether m stopped being held this frame.
func (s *InputState) IsModifierReleased(m KeyModifiers) bool {
	return !modifierState(&s.keys, m) && modifierState(&s.prevKeys, m)
}

// Modifiers returns the combined mask of held modifiers.
func (s *InputState) Modifiers() KeyModifiers {
	var mods KeyModifiers
	for _, m := range [...]KeyModifiers{ModShift, ModCtrl, ModAlt} {
		if modifierState(&s.keys, m) {
			mods |= m
		}
	}
	return mods
}

func modifierState(keys *keySet, m KeyModifiers) bool {
	switch m {
	case ModShift:
		return keys.has(KeyLeftShift) || keys.has(KeyRightShift)
	case ModCtrl:
		return keys.has(KeyLeftControl) || keys.has(KeyRightControl)
	case ModAlt:
		return keys.has(KeyLeftAlt) || keys.has(KeyRightAlt)
	}
	unreachable("modifier query for %#x", uint8(m))
	return false
}
