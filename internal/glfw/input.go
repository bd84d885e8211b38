package glfw

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/braheezy/glviewer/internal/core"
)

// Keyboard tracks key state from the bus. It implements core.Keyboard.
type Keyboard struct {
	handle *glfw.Window
	bus    *core.Bus
	id     core.ListenerID
	state  core.KeyState
	sticky bool
}

var _ core.Keyboard = (*Keyboard)(nil)

// newKeyboard accepts a nil handle, which keeps sticky keys local.
func newKeyboard(bus *core.Bus, handle *glfw.Window) *Keyboard {
	k := &Keyboard{handle: handle, bus: bus}
	k.id = core.Connect(bus, func(msg core.KeyEvent) { k.state.Set(msg.Key, msg.Pressed) })
	return k
}

func (k *Keyboard) Pressed(key core.Key) bool { return k.state.Pressed(key) }

func (k *Keyboard) StickyKeys() bool { return k.sticky }

func (k *Keyboard) SetStickyKeys(enabled bool) {
	k.sticky = enabled
	if k.handle != nil {
		k.handle.SetInputMode(glfw.StickyKeysMode, boolHint(enabled))
	}
}

func (k *Keyboard) close() { k.bus.Disconnect(k.id) }

// Mouse tracks button state and the cursor position from the bus. It implements
// core.Mouse.
type Mouse struct {
	handle   *glfw.Window
	bus      *core.Bus
	ids      []core.ListenerID
	buttons  [core.MouseLast + 1]bool
	position mgl32.Vec2
}

var _ core.Mouse = (*Mouse)(nil)

func newMouse(bus *core.Bus, handle *glfw.Window) *Mouse {
	m := &Mouse{handle: handle, bus: bus}
	m.ids = []core.ListenerID{
		core.Connect(bus, func(msg core.MouseButtonEvent) {
			if msg.Button >= 0 && msg.Button <= core.MouseLast {
				m.buttons[msg.Button] = msg.Pressed
			}
		}),
		core.Connect(bus, func(msg core.MousePosition) { m.position = msg.Position }),
	}
	return m
}

func (m *Mouse) Pressed(b core.MouseButton) bool {
	return b >= 0 && b <= core.MouseLast && m.buttons[b]
}

func (m *Mouse) Position() mgl32.Vec2 { return m.position }

var cursorModes = map[core.Cursor]int{
	core.CursorVisible:  glfw.CursorNormal,
	core.CursorHidden:   glfw.CursorHidden,
	core.CursorDisabled: glfw.CursorDisabled,
}

func (m *Mouse) SetCursor(state core.Cursor) {
	if m.handle != nil {
		m.handle.SetInputMode(glfw.CursorMode, cursorModes[state])
	}
}

func (m *Mouse) close() {
	for _, id := range m.ids {
		m.bus.Disconnect(id)
	}
}
