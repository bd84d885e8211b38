package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversByType(t *testing.T) {
	bus := NewBus()

	var resizes []WindowResize
	var keys []Key
	Connect(bus, func(m WindowResize) { resizes = append(resizes, m) })
	Connect(bus, func(m KeyEvent) { keys = append(keys, m.Key) })

	Broadcast(bus, WindowResize{Width: 800, Height: 600})
	Broadcast(bus, KeyEvent{Key: KeyEscape, Pressed: true})
	Broadcast(bus, FramebufferResize{Width: 1, Height: 1})

	assert.Equal(t, []WindowResize{{800, 600}}, resizes)
	assert.Equal(t, []Key{KeyEscape}, keys)
}

func TestBusOrderAndDisconnect(t *testing.T) {
	bus := NewBus()

	var order []string
	first := Connect(bus, func(WindowClosed) { order = append(order, "first") })
	Connect(bus, func(WindowClosed) { order = append(order, "second") })
	assert.Equal(t, 2, Listeners[WindowClosed](bus))

	Broadcast(bus, WindowClosed{})
	assert.Equal(t, []string{"first", "second"}, order)

	assert.True(t, bus.Disconnect(first))
	assert.False(t, bus.Disconnect(first))

	order = nil
	Broadcast(bus, WindowClosed{})
	assert.Equal(t, []string{"second"}, order)
}

func TestInputNames(t *testing.T) {
	tests := []struct {
		name fmtStringer
		want string
	}{
		{KeyUnknown, "unknown"},
		{KeyA, "A"},
		{KeyF11, "F11"},
		{KeyKPDecimal, "KP decimal"},
		{KeyMenu, "menu"},
		{Key(-3), "unknown"},
		{MouseLeft, "left"},
		{MouseOther3, "other 3"},
		{MouseButton(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.name.String())
	}
}

type fmtStringer interface{ String() string }

func TestKeyState(t *testing.T) {
	var s KeyState
	s.Set(KeyW, true)
	s.Set(Key(999), true)
	assert.True(t, s.Pressed(KeyW))
	assert.False(t, s.Pressed(KeyS))
	assert.False(t, s.Pressed(Key(999)))
}
