package camera

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braheezy/glviewer/internal/core"
)

func vecInDelta(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func TestCameraDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, Perspective, c.Mode())
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.Front())
	near, far := c.ClipPlanes()
	assert.Equal(t, [2]float32{0.01, 20}, [2]float32{near, far})
	assert.InDelta(t, 16.0/9.0, c.Aspect(), 1e-6)
}

func TestViewMatchesLookAt(t *testing.T) {
	c := New()
	c.SetPosition(mgl32.Vec3{3, 2, 5})
	c.SetLookAt(mgl32.Vec3{0, 1, 0})

	want := mgl32.LookAtV(c.Position(), c.LookAt(), c.Up())
	assert.True(t, want.ApproxEqualThreshold(c.View(), 1e-5))

	// the look-at point ends up straight ahead on the negative z axis
	p := c.View().Mul4x1(c.LookAt().Vec4(1))
	vecInDelta(t, mgl32.Vec3{0, 0, -c.LookAt().Sub(c.Position()).Len()}, p.Vec3())
}

func TestProjection(t *testing.T) {
	c := New()
	c.Perspective(800, 400, mgl32.DegToRad(60), 0.1, 100)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(60), 2, 0.1, 100), c.Projection())

	c.Ortho(800, 400, -1, 1)
	assert.Equal(t, Ortho, c.Mode())
	assert.Equal(t, mgl32.Ortho(0, 800, 0, 400, -1, 1), c.Projection())
	assert.Equal(t, c.Projection().Mul4(c.View()), c.ViewProjection())
}

func TestOrbitDragKeepsRadius(t *testing.T) {
	bus := core.NewBus()
	c := New()
	c.SetPosition(mgl32.Vec3{0, 0, 4})
	o := NewOrbitControl(c, bus)
	defer o.Close()

	core.Broadcast(bus, core.MouseButtonEvent{Button: core.MouseLeft, Position: mgl64.Vec2{640, 360}, Pressed: true})
	// half the window width is a quarter turn
	core.Broadcast(bus, core.MousePosition{Position: mgl32.Vec2{0, 360}})
	vecInDelta(t, mgl32.Vec3{4, 0, 0}, c.Position())

	core.Broadcast(bus, core.MouseButtonEvent{Button: core.MouseLeft, Pressed: false})
	core.Broadcast(bus, core.MousePosition{Position: mgl32.Vec2{100, 100}})
	vecInDelta(t, mgl32.Vec3{4, 0, 0}, c.Position())
}

func TestOrbitClampsPole(t *testing.T) {
	bus := core.NewBus()
	c := New()
	o := NewOrbitControl(c, bus)

	o.Orbit(mgl32.Vec2{0, -10 * 720}, 0)
	assert.Greater(t, c.Position().Y(), float32(0.99))
	assert.InDelta(t, 1, c.Position().Len(), 1e-4)
	assert.False(t, math.IsNaN(float64(c.View()[0])))
}

func TestOrbitScrollZooms(t *testing.T) {
	bus := core.NewBus()
	c := New()
	c.SetPosition(mgl32.Vec3{0, 0, 10})
	o := NewOrbitControl(c, bus)

	core.Broadcast(bus, core.MouseScroll{YOffset: 1})
	vecInDelta(t, mgl32.Vec3{0, 0, 9}, c.Position())

	o.Ignore(true)
	core.Broadcast(bus, core.MouseScroll{YOffset: 1})
	vecInDelta(t, mgl32.Vec3{0, 0, 9}, c.Position())

	o.Ignore(false)
	o.Close()
	assert.Zero(t, core.Listeners[core.MouseScroll](bus))
	core.Broadcast(bus, core.MouseScroll{YOffset: 1})
	vecInDelta(t, mgl32.Vec3{0, 0, 9}, c.Position())
}

type fakeKeys struct{ core.KeyState }

func (*fakeKeys) StickyKeys() bool   { return false }
func (*fakeKeys) SetStickyKeys(bool) {}

func TestFlyStartsFromCamera(t *testing.T) {
	c := New()
	f := NewFlyControl(c, core.NewBus(), nil)
	assert.InDelta(t, -90, f.Yaw(), 1e-4)
	assert.InDelta(t, 0, f.Pitch(), 1e-4)
	vecInDelta(t, mgl32.Vec3{0, 0, 0}, c.LookAt())
}

func TestFlyMovesWithKeys(t *testing.T) {
	keys := &fakeKeys{}
	c := New()
	f := NewFlyControl(c, core.NewBus(), keys)

	keys.Set(core.KeyW, true)
	f.Update(time.Second)
	vecInDelta(t, mgl32.Vec3{0, 0, -4}, c.Position())
	vecInDelta(t, mgl32.Vec3{0, 0, -5}, c.LookAt())

	keys.Set(core.KeyW, false)
	keys.Set(core.KeyD, true)
	f.Update(200 * time.Millisecond)
	vecInDelta(t, mgl32.Vec3{1, 0, -4}, c.Position())
}

func TestFlyLook(t *testing.T) {
	bus := core.NewBus()
	c := New()
	f := NewFlyControl(c, bus, nil)

	core.Broadcast(bus, core.MousePosition{Position: mgl32.Vec2{100, 0}})
	assert.InDelta(t, -90, f.Yaw(), 1e-4, "looking needs the right button")

	core.Broadcast(bus, core.MouseButtonEvent{Button: core.MouseRight, Pressed: true})
	core.Broadcast(bus, core.MousePosition{Position: mgl32.Vec2{900, 0}})
	assert.InDelta(t, 0, f.Yaw(), 1e-4)

	core.Broadcast(bus, core.MousePosition{Position: mgl32.Vec2{900, -5000}})
	assert.Equal(t, float32(89), f.Pitch())
	require.InDelta(t, 1, c.Front().Len(), 1e-5)
}

func TestFlyZoomClampsFov(t *testing.T) {
	bus := core.NewBus()
	c := New()
	NewFlyControl(c, bus, nil)

	core.Broadcast(bus, core.MouseScroll{YOffset: 100})
	assert.InDelta(t, mgl32.DegToRad(1), c.Fov(), 1e-6)
	core.Broadcast(bus, core.MouseScroll{YOffset: -100})
	assert.InDelta(t, mgl32.DegToRad(45), c.Fov(), 1e-6)
}

func TestNewControl(t *testing.T) {
	bus := core.NewBus()
	ctl, err := NewControl(KindFly, New(), bus, nil)
	require.NoError(t, err)
	assert.IsType(t, &FlyControl{}, ctl)

	ctl, err = NewControl("", New(), bus, nil)
	require.NoError(t, err)
	assert.IsType(t, &OrbitControl{}, ctl)

	_, err = NewControl("trackball", New(), bus, nil)
	assert.ErrorContains(t, err, "trackball")
}
