package camera

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/braheezy/glviewer/internal/core"
)

// Movement is a direction of travel for the fly camera.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

var flyKeys = map[core.Key]Movement{
	core.KeyW: Forward,
	core.KeyS: Backward,
	core.KeyA: Left,
	core.KeyD: Right,
}

// FlyControl is a free camera: WASD moves and dragging with the right mouse
// button looks around. Yaw and pitch are in degrees.
type FlyControl struct {
	base
	keys core.Keyboard

	worldUp mgl32.Vec3
	front   mgl32.Vec3
	right   mgl32.Vec3

	yaw, pitch float32

	MovementSpeed    float32
	MouseSensitivity float32

	looking bool
	last    mgl32.Vec2
}

// NewFlyControl starts from the camera's current view direction. keys may be nil
// to drive the camera with Move only.
func NewFlyControl(cam *Camera, bus *core.Bus, keys core.Keyboard) *FlyControl {
	f := &FlyControl{
		base:             base{cam: cam, bus: bus},
		keys:             keys,
		worldUp:          mgl32.Vec3{0, 1, 0},
		MovementSpeed:    5,
		MouseSensitivity: 0.1,
	}
	front := cam.Front()
	f.pitch = mgl32.RadToDeg(float32(math.Asin(float64(front.Y()))))
	f.yaw = mgl32.RadToDeg(float32(math.Atan2(float64(front.Z()), float64(front.X()))))
	f.updateVectors()

	f.ids = append(f.ids,
		core.Connect(bus, f.onButton),
		core.Connect(bus, f.onMove),
		core.Connect(bus, f.onScroll),
	)
	return f
}

func (f *FlyControl) Yaw() float32   { return f.yaw }
func (f *FlyControl) Pitch() float32 { return f.pitch }

func (f *FlyControl) Update(dt time.Duration) {
	if f.keys == nil {
		return
	}
	for key, dir := range flyKeys {
		if f.keys.Pressed(key) {
			f.Move(dir, float32(dt.Seconds()))
		}
	}
}

// Move travels MovementSpeed*dt along dir.
func (f *FlyControl) Move(dir Movement, dt float32) {
	velocity := f.MovementSpeed * dt
	var step mgl32.Vec3
	switch dir {
	case Forward:
		step = f.front.Mul(velocity)
	case Backward:
		step = f.front.Mul(-velocity)
	case Left:
		step = f.right.Mul(-velocity)
	case Right:
		step = f.right.Mul(velocity)
	}
	f.cam.position = f.cam.position.Add(step)
	f.cam.lookAt = f.cam.position.Add(f.front)
}

// Look turns the camera by a cursor offset. Pitch stays within ±89 degrees.
func (f *FlyControl) Look(xOffset, yOffset float32) {
	f.yaw += xOffset * f.MouseSensitivity
	f.pitch = mgl32.Clamp(f.pitch+yOffset*f.MouseSensitivity, -89, 89)
	f.updateVectors()
}

// Zoom narrows the field of view, between 1 and 45 degrees.
func (f *FlyControl) Zoom(yOffset float32) {
	fov := mgl32.RadToDeg(f.cam.fov) - yOffset
	f.cam.fov = mgl32.DegToRad(mgl32.Clamp(fov, 1, 45))
}

func (f *FlyControl) onButton(msg core.MouseButtonEvent) {
	if f.ignore || msg.Button != core.MouseRight {
		return
	}
	f.looking = msg.Pressed
	f.last = mgl32.Vec2{float32(msg.Position[0]), float32(msg.Position[1])}
}

func (f *FlyControl) onMove(msg core.MousePosition) {
	if f.ignore || !f.looking {
		return
	}
	// screen y grows downwards
	f.Look(msg.Position.X()-f.last.X(), f.last.Y()-msg.Position.Y())
	f.last = msg.Position
}

func (f *FlyControl) onScroll(msg core.MouseScroll) {
	if f.ignore {
		return
	}
	f.Zoom(msg.YOffset)
}

func (f *FlyControl) updateVectors() {
	yaw, pitch := float64(mgl32.DegToRad(f.yaw)), float64(mgl32.DegToRad(f.pitch))
	f.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	f.right = f.front.Cross(f.worldUp).Normalize()
	f.cam.up = f.right.Cross(f.front).Normalize()
	f.cam.lookAt = f.cam.position.Add(f.front)
}
