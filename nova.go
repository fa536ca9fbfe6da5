package nova

import "io/fs"

// Vec2 is a 2D vector used for cursor positions and wheel deltas.
type Vec2 struct {
	X, Y float64
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)

	mouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "Left"
	case MouseButtonRight:
		return "Right"
	case MouseButtonMiddle:
		return "Middle"
	default:
		return "Unknown"
	}
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModNone  KeyModifiers = 0
	ModShift KeyModifiers = 1 << (iota - 1) // Shift key
	ModCtrl                                 // Control key
	ModAlt                                  // Alt / Option key
)

// KeyboardEventType identifies what happened to a key.
type KeyboardEventType uint8

const (
	KeyPressed  KeyboardEventType = iota // key went down
	KeyReleased                          // key went up
	KeyRepeated                          // key held long enough to auto-repeat
	KeyInput                             // text input; Codepoint is valid, Key is not
)

func (t KeyboardEventType) String() string {
	switch t {
	case KeyPressed:
		return "Pressed"
	case KeyReleased:
		return "Released"
	case KeyRepeated:
		return "Repeated"
	case KeyInput:
		return "Input"
	default:
		return "Unknown"
	}
}

// KeyboardEvent is a translated keyboard notification.
type KeyboardEvent struct {
	Type      KeyboardEventType
	Key       Key
	Mods      KeyModifiers
	Codepoint rune
}

// HasModifier reports whether m is set on the event.
func (e KeyboardEvent) HasModifier(m KeyModifiers) bool {
	return e.Mods&m != 0
}

// MouseEventType identifies a kind of mouse notification.
type MouseEventType uint8

const (
	MouseButtonDown MouseEventType = iota // a button was pressed
	MouseButtonUp                         // a button was released
	MouseMove                             // the cursor moved
	MouseWheel                            // the wheel scrolled; WheelDelta is valid
)

func (t MouseEventType) String() string {
	switch t {
	case MouseButtonDown:
		return "ButtonDown"
	case MouseButtonUp:
		return "ButtonUp"
	case MouseMove:
		return "Move"
	case MouseWheel:
		return "Wheel"
	default:
		return "Unknown"
	}
}

// MouseEvent is a translated mouse notification. Pos is normalized to [0, 1]
// across the client area; ScreenPos is in pixels.
type MouseEvent struct {
	Type       MouseEventType
	Pos        Vec2
	ScreenPos  Vec2
	WheelDelta Vec2
	Mods       KeyModifiers
	Button     MouseButton
}

// DroppedFile is a file dropped onto the window. Name is relative to FS.
type DroppedFile struct {
	Name string
	FS   fs.FS
}

// Open opens the dropped file for reading.
func (f DroppedFile) Open() (fs.File, error) {
	return f.FS.Open(f.Name)
}

// HotReload selects what a hot-reload request covers.
type HotReload uint8

const (
	HotReloadShaders HotReload = 1 << iota // recompile shader programs
	HotReloadAssets                        // reload textures and meshes from disk
)
