package glfw

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/braheezy/glviewer/internal/core"
)

var keymap = map[glfw.Key]core.Key{
	glfw.KeySpace:        core.KeySpace,
	glfw.KeyApostrophe:   core.KeyApostrophe,
	glfw.KeyComma:        core.KeyComma,
	glfw.KeyMinus:        core.KeyMinus,
	glfw.KeyPeriod:       core.KeyPeriod,
	glfw.KeySlash:        core.KeySlash,
	glfw.Key0:            core.Key0,
	glfw.Key1:            core.Key1,
	glfw.Key2:            core.Key2,
	glfw.Key3:            core.Key3,
	glfw.Key4:            core.Key4,
	glfw.Key5:            core.Key5,
	glfw.Key6:            core.Key6,
	glfw.Key7:            core.Key7,
	glfw.Key8:            core.Key8,
	glfw.Key9:            core.Key9,
	glfw.KeySemicolon:    core.KeySemicolon,
	glfw.KeyEqual:        core.KeyEqual,
	glfw.KeyA:            core.KeyA,
	glfw.KeyB:            core.KeyB,
	glfw.KeyC:            core.KeyC,
	glfw.KeyD:            core.KeyD,
	glfw.KeyE:            core.KeyE,
	glfw.KeyF:            core.KeyF,
	glfw.KeyG:            core.KeyG,
	glfw.KeyH:            core.KeyH,
	glfw.KeyI:            core.KeyI,
	glfw.KeyJ:            core.KeyJ,
	glfw.KeyK:            core.KeyK,
	glfw.KeyL:            core.KeyL,
	glfw.KeyM:            core.KeyM,
	glfw.KeyN:            core.KeyN,
	glfw.KeyO:            core.KeyO,
	glfw.KeyP:            core.KeyP,
	glfw.KeyQ:            core.KeyQ,
	glfw.KeyR:            core.KeyR,
	glfw.KeyS:            core.KeyS,
	glfw.KeyT:            core.KeyT,
	glfw.KeyU:            core.KeyU,
	glfw.KeyV:            core.KeyV,
	glfw.KeyW:            core.KeyW,
	glfw.KeyX:            core.KeyX,
	glfw.KeyY:            core.KeyY,
	glfw.KeyZ:            core.KeyZ,
	glfw.KeyLeftBracket:  core.KeyLeftBracket,
	glfw.KeyBackslash:    core.KeyBackslash,
	glfw.KeyRightBracket: core.KeyRightBracket,
	glfw.KeyGraveAccent:  core.KeyGraveAccent,
	glfw.KeyWorld1:       core.KeyWorld1,
	glfw.KeyWorld2:       core.KeyWorld2,
	glfw.KeyEscape:       core.KeyEscape,
	glfw.KeyEnter:        core.KeyEnter,
	glfw.KeyTab:          core.KeyTab,
	glfw.KeyBackspace:    core.KeyBackspace,
	glfw.KeyInsert:       core.KeyInsert,
	glfw.KeyDelete:       core.KeyDelete,
	glfw.KeyRight:        core.KeyRight,
	glfw.KeyLeft:         core.KeyLeft,
	glfw.KeyDown:         core.KeyDown,
	glfw.KeyUp:           core.KeyUp,
	glfw.KeyPageUp:       core.KeyPageUp,
	glfw.KeyPageDown:     core.KeyPageDown,
	glfw.KeyHome:         core.KeyHome,
	glfw.KeyEnd:          core.KeyEnd,
	glfw.KeyCapsLock:     core.KeyCapsLock,
	glfw.KeyScrollLock:   core.KeyScrollLock,
	glfw.KeyNumLock:      core.KeyNumLock,
	glfw.KeyPrintScreen:  core.KeyPrintScreen,
	glfw.KeyPause:        core.KeyPause,
	glfw.KeyF1:           core.KeyF1,
	glfw.KeyF2:           core.KeyF2,
	glfw.KeyF3:           core.KeyF3,
	glfw.KeyF4:           core.KeyF4,
	glfw.KeyF5:           core.KeyF5,
	glfw.KeyF6:           core.KeyF6,
	glfw.KeyF7:           core.KeyF7,
	glfw.KeyF8:           core.KeyF8,
	glfw.KeyF9:           core.KeyF9,
	glfw.KeyF10:          core.KeyF10,
	glfw.KeyF11:          core.KeyF11,
	glfw.KeyF12:          core.KeyF12,
	glfw.KeyF13:          core.KeyF13,
	glfw.KeyF14:          core.KeyF14,
	glfw.KeyF15:          core.KeyF15,
	glfw.KeyF16:          core.KeyF16,
	glfw.KeyF17:          core.KeyF17,
	glfw.KeyF18:          core.KeyF18,
	glfw.KeyF19:          core.KeyF19,
	glfw.KeyF20:          core.KeyF20,
	glfw.KeyF21:          core.KeyF21,
	glfw.KeyF22:          core.KeyF22,
	glfw.KeyF23:          core.KeyF23,
	glfw.KeyF24:          core.KeyF24,
	glfw.KeyF25:          core.KeyF25,
	glfw.KeyKP0:          core.KeyKP0,
	glfw.KeyKP1:          core.KeyKP1,
	glfw.KeyKP2:          core.KeyKP2,
	glfw.KeyKP3:          core.KeyKP3,
	glfw.KeyKP4:          core.KeyKP4,
	glfw.KeyKP5:          core.KeyKP5,
	glfw.KeyKP6:          core.KeyKP6,
	glfw.KeyKP7:          core.KeyKP7,
	glfw.KeyKP8:          core.KeyKP8,
	glfw.KeyKP9:          core.KeyKP9,
	glfw.KeyKPDecimal:    core.KeyKPDecimal,
	glfw.KeyKPDivide:     core.KeyKPDivide,
	glfw.KeyKPMultiply:   core.KeyKPMultiply,
	glfw.KeyKPSubtract:   core.KeyKPSubtract,
	glfw.KeyKPAdd:        core.KeyKPAdd,
	glfw.KeyKPEnter:      core.KeyKPEnter,
	glfw.KeyKPEqual:      core.KeyKPEqual,
	glfw.KeyLeftShift:    core.KeyLeftShift,
	glfw.KeyLeftControl:  core.KeyLeftControl,
	glfw.KeyLeftAlt:      core.KeyLeftAlt,
	glfw.KeyLeftSuper:    core.KeyLeftSuper,
	glfw.KeyRightShift:   core.KeyRightShift,
	glfw.KeyRightControl: core.KeyRightControl,
	glfw.KeyRightAlt:     core.KeyRightAlt,
	glfw.KeyRightSuper:   core.KeyRightSuper,
	glfw.KeyMenu:         core.KeyMenu,
}

// translateKey maps a GLFW key to the viewer key; anything unmapped is KeyUnknown.
func translateKey(k glfw.Key) core.Key {
	if key, ok := keymap[k]; ok {
		return key
	}
	return core.KeyUnknown
}

var buttonmap = map[glfw.MouseButton]core.MouseButton{
	glfw.MouseButtonLeft:   core.MouseLeft,
	glfw.MouseButtonRight:  core.MouseRight,
	glfw.MouseButtonMiddle: core.MouseMiddle,
	glfw.MouseButton4:      core.MouseOther1,
	glfw.MouseButton5:      core.MouseOther2,
	glfw.MouseButton6:      core.MouseOther3,
	glfw.MouseButton7:      core.MouseOther4,
	glfw.MouseButton8:      core.MouseOther5,
}

func translateButton(b glfw.MouseButton) core.MouseButton {
	if button, ok := buttonmap[b]; ok {
		return button
	}
	return core.MouseUnknown
}
