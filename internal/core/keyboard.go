package core

// Key is a platform independent keyboard key.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyApostrophe
	KeyComma
	KeyMinus
	KeyPeriod
	KeySlash
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySemicolon
	KeyEqual
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyLeftBracket
	KeyBackslash
	KeyRightBracket
	KeyGraveAccent
	KeyWorld1
	KeyWorld2

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
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
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeyF25
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPDecimal
	KeyKPDivide
	KeyKPMultiply
	KeyKPSubtract
	KeyKPAdd
	KeyKPEnter
	KeyKPEqual
	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	KeyLeftSuper
	KeyRightShift
	KeyRightControl
	KeyRightAlt
	KeyRightSuper
	KeyMenu

	KeyLast = KeyMenu
)

var keyNames = [KeyLast + 1]string{
	"unknown", "space", "apostrophe", "comma", "minus", "period", "slash",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"semicolon", "equal",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"left bracket", "backslash", "right bracket", "grave accent", "world 1", "world 2",
	"escape", "enter", "tab", "backspace", "insert", "delete", "right", "left", "down", "up",
	"page up", "page down", "home", "end", "caps lock", "scroll lock", "num lock", "print screen", "pause",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10",
	"F11", "F12", "F13", "F14", "F15", "F16", "F17", "F18", "F19", "F20",
	"F21", "F22", "F23", "F24", "F25",
	"KP 0", "KP 1", "KP 2", "KP 3", "KP 4", "KP 5", "KP 6", "KP 7", "KP 8", "KP 9",
	"KP decimal", "KP divide", "KP multiply", "KP subtract", "KP add", "KP enter", "KP equal",
	"left shift", "left control", "left alt", "left super",
	"right shift", "right control", "right alt", "right super",
	"menu",
}

func (k Key) String() string {
	if k < 0 || k > KeyLast {
		return keyNames[KeyUnknown]
	}
	return keyNames[k]
}

// Keyboard reports the pressed state of keys.
type Keyboard interface {
	Pressed(k Key) bool
	StickyKeys() bool
	SetStickyKeys(enabled bool)
}

// KeyState is a pressed table for every key, kept current from Key messages.
type KeyState [KeyLast + 1]bool

func (s *KeyState) Set(k Key, pressed bool) {
	if k >= 0 && k <= KeyLast {
		s[k] = pressed
	}
}

func (s *KeyState) Pressed(k Key) bool {
	return k >= 0 && k <= KeyLast && s[k]
}
