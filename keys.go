package nova

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Key identifies a physical keyboard key. Printable keys carry their ASCII
// code (KeyA == 'A'); named keys start at 256.
type Key uint16

const (
	KeySpace        Key = ' '
	KeyApostrophe   Key = '\''
	KeyComma        Key = ','
	KeyMinus        Key = '-'
	KeyPeriod       Key = '.'
	KeySlash        Key = '/'
	Key0            Key = '0'
	Key1            Key = '1'
	Key2            Key = '2'
	Key3            Key = '3'
	Key4            Key = '4'
	Key5            Key = '5'
	Key6            Key = '6'
	Key7            Key = '7'
	Key8            Key = '8'
	Key9            Key = '9'
	KeySemicolon    Key = ';'
	KeyEqual        Key = '='
	KeyA            Key = 'A'
	KeyB            Key = 'B'
	KeyC            Key = 'C'
	KeyD            Key = 'D'
	KeyE            Key = 'E'
	KeyF            Key = 'F'
	KeyG            Key = 'G'
	KeyH            Key = 'H'
	KeyI            Key = 'I'
	KeyJ            Key = 'J'
	KeyK            Key = 'K'
	KeyL            Key = 'L'
	KeyM            Key = 'M'
	KeyN            Key = 'N'
	KeyO            Key = 'O'
	KeyP            Key = 'P'
	KeyQ            Key = 'Q'
	KeyR            Key = 'R'
	KeyS            Key = 'S'
	KeyT            Key = 'T'
	KeyU            Key = 'U'
	KeyV            Key = 'V'
	KeyW            Key = 'W'
	KeyX            Key = 'X'
	KeyY            Key = 'Y'
	KeyZ            Key = 'Z'
	KeyLeftBracket  Key = '['
	KeyBackslash    Key = '\\'
	KeyRightBracket Key = ']'
	KeyGraveAccent  Key = '`'
)

const (
	KeyEscape Key = 256 + iota
	KeyTab
	KeyEnter
	KeyBackspace
	KeyInsert
	KeyDel
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyKeypad0
	KeyKeypad1
	KeyKeypad2
	KeyKeypad3
	KeyKeypad4
	KeyKeypad5
	KeyKeypad6
	KeyKeypad7
	KeyKeypad8
	KeyKeypad9
	KeyKeypadDel
	KeyKeypadDivide
	KeyKeypadMultiply
	KeyKeypadSubtract
	KeyKeypadAdd
	KeyKeypadEnter
	KeyKeypadEqual
	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	KeyLeftSuper
	KeyRightShift
	KeyRightControl
	KeyRightAlt
	KeyRightSuper
	KeyMenu
	KeyUnknown

	keyCount
)

var namedKeys = [...]string{
	KeyEscape - KeyEscape:         "Escape",
	KeyTab - KeyEscape:            "Tab",
	KeyEnter - KeyEscape:          "Enter",
	KeyBackspace - KeyEscape:      "Backspace",
	KeyInsert - KeyEscape:         "Insert",
	KeyDel - KeyEscape:            "Del",
	KeyRight - KeyEscape:          "Right",
	KeyLeft - KeyEscape:           "Left",
	KeyDown - KeyEscape:           "Down",
	KeyUp - KeyEscape:             "Up",
	KeyPageUp - KeyEscape:         "PageUp",
	KeyPageDown - KeyEscape:       "PageDown",
	KeyHome - KeyEscape:           "Home",
	KeyEnd - KeyEscape:            "End",
	KeyCapsLock - KeyEscape:       "CapsLock",
	KeyScrollLock - KeyEscape:     "ScrollLock",
	KeyNumLock - KeyEscape:        "NumLock",
	KeyPrintScreen - KeyEscape:    "PrintScreen",
	KeyPause - KeyEscape:          "Pause",
	KeyF1 - KeyEscape:             "F1",
	KeyF2 - KeyEscape:             "F2",
	KeyF3 - KeyEscape:             "F3",
	KeyF4 - KeyEscape:             "F4",
	KeyF5 - KeyEscape:             "F5",
	KeyF6 - KeyEscape:             "F6",
	KeyF7 - KeyEscape:             "F7",
	KeyF8 - KeyEscape:             "F8",
	KeyF9 - KeyEscape:             "F9",
	KeyF10 - KeyEscape:            "F10",
	KeyF11 - KeyEscape:            "F11",
	KeyF12 - KeyEscape:            "F12",
	KeyKeypad0 - KeyEscape:        "Keypad0",
	KeyKeypad1 - KeyEscape:        "Keypad1",
	KeyKeypad2 - KeyEscape:        "Keypad2",
	KeyKeypad3 - KeyEscape:        "Keypad3",
	KeyKeypad4 - KeyEscape:        "Keypad4",
	KeyKeypad5 - KeyEscape:        "Keypad5",
	KeyKeypad6 - KeyEscape:        "Keypad6",
	KeyKeypad7 - KeyEscape:        "Keypad7",
	KeyKeypad8 - KeyEscape:        "Keypad8",
	KeyKeypad9 - KeyEscape:        "Keypad9",
	KeyKeypadDel - KeyEscape:      "KeypadDel",
	KeyKeypadDivide - KeyEscape:   "KeypadDivide",
	KeyKeypadMultiply - KeyEscape: "KeypadMultiply",
	KeyKeypadSubtract - KeyEscape: "KeypadSubtract",
	KeyKeypadAdd - KeyEscape:      "KeypadAdd",
	KeyKeypadEnter - KeyEscape:    "KeypadEnter",
	KeyKeypadEqual - KeyEscape:    "KeypadEqual",
	KeyLeftShift - KeyEscape:      "LeftShift",
	KeyLeftControl - KeyEscape:    "LeftControl",
	KeyLeftAlt - KeyEscape:        "LeftAlt",
	KeyLeftSuper - KeyEscape:      "LeftSuper",
	KeyRightShift - KeyEscape:     "RightShift",
	KeyRightControl - KeyEscape:   "RightControl",
	KeyRightAlt - KeyEscape:       "RightAlt",
	KeyRightSuper - KeyEscape:     "RightSuper",
	KeyMenu - KeyEscape:           "Menu",
	KeyUnknown - KeyEscape:        "Unknown",
}

func isPrintableKey(k Key) bool {
	switch {
	case k >= Key0 && k <= Key9, k >= KeyA && k <= KeyZ:
		return true
	}
	switch k {
	case KeySpace, KeyApostrophe, KeyComma, KeyMinus, KeyPeriod, KeySlash,
		KeySemicolon, KeyEqual, KeyLeftBracket, KeyBackslash, KeyRightBracket,
		KeyGraveAccent:
		return true
	}
	return false
}

// String returns the key's name. Printable keys are named by their character,
// except KeySpace which is "Space".
func (k Key) String() string {
	if k == KeySpace {
		return "Space"
	}
	if isPrintableKey(k) {
		return string(rune(k))
	}
	if k >= KeyEscape && k < keyCount {
		return namedKeys[k-KeyEscape]
	}
	return "Unknown"
}

// ParseKey looks a key up by name, case-insensitively. Single printable
// characters map to their key. Unrecognized names return KeyUnknown, false.
func ParseKey(name string) (Key, bool) {
	if len(name) == 1 {
		k := Key(strings.ToUpper(name)[0])
		if isPrintableKey(k) {
			return k, true
		}
	}
	if strings.EqualFold(name, "Space") {
		return KeySpace, true
	}
	for i, n := range namedKeys {
		if strings.EqualFold(name, n) && Key(i)+KeyEscape != KeyUnknown {
			return Key(i) + KeyEscape, true
		}
	}
	return KeyUnknown, false
}

// ebitenKeys maps platform key codes to engine keys. Anything missing
// translates to KeyUnknown.
var ebitenKeys = map[ebiten.Key]Key{
	ebiten.KeySpace:        KeySpace,
	ebiten.KeyQuote:        KeyApostrophe,
	ebiten.KeyComma:        KeyComma,
	ebiten.KeyMinus:        KeyMinus,
	ebiten.KeyPeriod:       KeyPeriod,
	ebiten.KeySlash:        KeySlash,
	ebiten.KeyDigit0:       Key0,
	ebiten.KeyDigit1:       Key1,
	ebiten.KeyDigit2:       Key2,
	ebiten.KeyDigit3:       Key3,
	ebiten.KeyDigit4:       Key4,
	ebiten.KeyDigit5:       Key5,
	ebiten.KeyDigit6:       Key6,
	ebiten.KeyDigit7:       Key7,
	ebiten.KeyDigit8:       Key8,
	ebiten.KeyDigit9:       Key9,
	ebiten.KeySemicolon:    KeySemicolon,
	ebiten.KeyEqual:        KeyEqual,
	ebiten.KeyA:            KeyA,
	ebiten.KeyB:            KeyB,
	ebiten.KeyC:            KeyC,
	ebiten.KeyD:            KeyD,
	ebiten.KeyE:            KeyE,
	ebiten.KeyF:            KeyF,
	ebiten.KeyG:            KeyG,
	ebiten.KeyH:            KeyH,
	ebiten.KeyI:            KeyI,
	ebiten.KeyJ:            KeyJ,
	ebiten.KeyK:            KeyK,
	ebiten.KeyL:            KeyL,
	ebiten.KeyM:            KeyM,
	ebiten.KeyN:            KeyN,
	ebiten.KeyO:            KeyO,
	ebiten.KeyP:            KeyP,
	ebiten.KeyQ:            KeyQ,
	ebiten.KeyR:            KeyR,
	ebiten.KeyS:            KeyS,
	ebiten.KeyT:            KeyT,
	ebiten.KeyU:            KeyU,
	ebiten.KeyV:            KeyV,
	ebiten.KeyW:            KeyW,
	ebiten.KeyX:            KeyX,
	ebiten.KeyY:            KeyY,
	ebiten.KeyZ:            KeyZ,
	ebiten.KeyBracketLeft:  KeyLeftBracket,
	ebiten.KeyBackslash:    KeyBackslash,
	ebiten.KeyBracketRight: KeyRightBracket,
	ebiten.KeyBackquote:    KeyGraveAccent,

	ebiten.KeyEscape:         KeyEscape,
	ebiten.KeyTab:            KeyTab,
	ebiten.KeyEnter:          KeyEnter,
	ebiten.KeyBackspace:      KeyBackspace,
	ebiten.KeyInsert:         KeyInsert,
	ebiten.KeyDelete:         KeyDel,
	ebiten.KeyArrowRight:     KeyRight,
	ebiten.KeyArrowLeft:      KeyLeft,
	ebiten.KeyArrowDown:      KeyDown,
	ebiten.KeyArrowUp:        KeyUp,
	ebiten.KeyPageUp:         KeyPageUp,
	ebiten.KeyPageDown:       KeyPageDown,
	ebiten.KeyHome:           KeyHome,
	ebiten.KeyEnd:            KeyEnd,
	ebiten.KeyCapsLock:       KeyCapsLock,
	ebiten.KeyScrollLock:     KeyScrollLock,
	ebiten.KeyNumLock:        KeyNumLock,
	ebiten.KeyPrintScreen:    KeyPrintScreen,
	ebiten.KeyPause:          KeyPause,
	ebiten.KeyF1:             KeyF1,
	ebiten.KeyF2:             KeyF2,
	ebiten.KeyF3:             KeyF3,
	ebiten.KeyF4:             KeyF4,
	ebiten.KeyF5:             KeyF5,
	ebiten.KeyF6:             KeyF6,
	ebiten.KeyF7:             KeyF7,
	ebiten.KeyF8:             KeyF8,
	ebiten.KeyF9:             KeyF9,
	ebiten.KeyF10:            KeyF10,
	ebiten.KeyF11:            KeyF11,
	ebiten.KeyF12:            KeyF12,
	ebiten.KeyNumpad0:        KeyKeypad0,
	ebiten.KeyNumpad1:        KeyKeypad1,
	ebiten.KeyNumpad2:        KeyKeypad2,
	ebiten.KeyNumpad3:        KeyKeypad3,
	ebiten.KeyNumpad4:        KeyKeypad4,
	ebiten.KeyNumpad5:        KeyKeypad5,
	ebiten.KeyNumpad6:        KeyKeypad6,
	ebiten.KeyNumpad7:        KeyKeypad7,
	ebiten.KeyNumpad8:        KeyKeypad8,
	ebiten.KeyNumpad9:        KeyKeypad9,
	ebiten.KeyNumpadDecimal:  KeyKeypadDel,
	ebiten.KeyNumpadDivide:   KeyKeypadDivide,
	ebiten.KeyNumpadMultiply: KeyKeypadMultiply,
	ebiten.KeyNumpadSubtract: KeyKeypadSubtract,
	ebiten.KeyNumpadAdd:      KeyKeypadAdd,
	ebiten.KeyNumpadEnter:    KeyKeypadEnter,
	ebiten.KeyNumpadEqual:    KeyKeypadEqual,
	ebiten.KeyShiftLeft:      KeyLeftShift,
	ebiten.KeyControlLeft:    KeyLeftControl,
	ebiten.KeyAltLeft:        KeyLeftAlt,
	ebiten.KeyMetaLeft:       KeyLeftSuper,
	ebiten.KeyShiftRight:     KeyRightShift,
	ebiten.KeyControlRight:   KeyRightControl,
	ebiten.KeyAltRight:       KeyRightAlt,
	ebiten.KeyMetaRight:      KeyRightSuper,
	ebiten.KeyContextMenu:    KeyMenu,
}

// translateKey maps a platform key code to an engine key.
func translateKey(k ebiten.Key) Key {
	if key, ok := ebitenKeys[k]; ok {
		return key
	}
	return KeyUnknown
}

// modifierForKey returns the modifier flag a key contributes, or ModNone.
func modifierForKey(k Key) KeyModifiers {
	switch k {
	case KeyLeftShift, KeyRightShift:
		return ModShift
	case KeyLeftControl, KeyRightControl:
		return ModCtrl
	case KeyLeftAlt, KeyRightAlt:
		return ModAlt
	}
	return ModNone
}

// fixModifiers corrects the modifier mask of an event whose key is itself a
// modifier. The platform reports the mask as it was before the event, so a
// press of LeftShift arrives without ModShift and its release arrives with it.
func fixModifiers(k Key, action KeyAction, mods KeyModifiers) KeyModifiers {
	m := modifierForKey(k)
	if m == ModNone {
		return mods
	}
	switch action {
	case KeyActionPress:
		return mods | m
	case KeyActionRelease:
		return mods &^ m
	}
	return mods
}
