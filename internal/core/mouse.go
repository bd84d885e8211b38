package core

import "github.com/go-gl/mathgl/mgl32"

// MouseButton is a platform independent mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseOther1
	MouseOther2
	MouseOther3
	MouseOther4
	MouseOther5
	MouseUnknown

	MouseLast = MouseUnknown
)

var buttonNames = [MouseLast + 1]string{
	"left", "right", "middle",
	"other 1", "other 2", "other 3", "other 4", "other 5",
	"unknown",
}

func (b MouseButton) String() string {
	if b < 0 || b > MouseLast {
		return buttonNames[MouseUnknown]
	}
	return buttonNames[b]
}

// Cursor is the visibility mode of the mouse cursor over a window.
type Cursor int

const (
	CursorVisible Cursor = iota
	CursorHidden
	CursorDisabled
)

// Mouse reports button state and cursor position.
type Mouse interface {
	Pressed(b MouseButton) bool
	SetCursor(state Cursor)
	Position() mgl32.Vec2
}
