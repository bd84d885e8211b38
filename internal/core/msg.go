package core

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Window events

type WindowClosed struct{}

type WindowResize struct {
	Width, Height int
}

type FramebufferResize struct {
	Width, Height int
}

type WindowFocus struct {
	Gained bool
}

type WindowPosition struct {
	Position mgl32.Vec2
}

// Mouse events

type MousePosition struct {
	Position mgl32.Vec2
}

type MouseButtonEvent struct {
	Button   MouseButton
	Position mgl64.Vec2
	Pressed  bool
}

type MouseScroll struct {
	YOffset  float32
	Position mgl64.Vec2
}

// Keyboard events

type KeyEvent struct {
	Key      Key
	Scancode int
	Pressed  bool
}

type KeyChar struct {
	Code rune
}
