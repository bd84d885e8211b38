package camera

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/braheezy/glviewer/internal/core"
)

const (
	orbitMinTheta   = 1e-4
	orbitMinRadius  = 1e-4
	orbitScrollZoom = -0.1
)

// OrbitControl rotates the camera on a sphere around its look-at point while the
// left mouse button is held, and zooms with the scroll wheel.
type OrbitControl struct {
	base
	dragging bool
	last     mgl64.Vec2
}

func NewOrbitControl(cam *Camera, bus *core.Bus) *OrbitControl {
	o := &OrbitControl{base: base{cam: cam, bus: bus}}
	o.ids = append(o.ids,
		core.Connect(bus, o.onButton),
		core.Connect(bus, o.onMove),
		core.Connect(bus, o.onScroll),
	)
	return o
}

func (o *OrbitControl) Update(time.Duration) {}

func (o *OrbitControl) onButton(msg core.MouseButtonEvent) {
	if o.ignore || msg.Button != core.MouseLeft {
		return
	}
	o.dragging = msg.Pressed
	o.last = msg.Position
}

func (o *OrbitControl) onMove(msg core.MousePosition) {
	if o.ignore || !o.dragging {
		return
	}
	pos := mgl64.Vec2{float64(msg.Position[0]), float64(msg.Position[1])}
	diff := o.last.Sub(pos)
	o.Orbit(mgl32.Vec2{float32(diff[0]), float32(diff[1])}, 0)
	o.last = pos
}

func (o *OrbitControl) onScroll(msg core.MouseScroll) {
	if o.ignore {
		return
	}
	o.Orbit(mgl32.Vec2{}, orbitScrollZoom*msg.YOffset)
}

// Orbit moves the camera by a cursor offset in pixels and scales its distance
// to the look-at point by 1+zoom. A full window width is half a turn.
func (o *OrbitControl) Orbit(diff mgl32.Vec2, zoom float32) {
	cam := o.cam
	dir := cam.position.Sub(cam.lookAt)

	r := float64(dir.Len())
	phi := math.Atan2(float64(dir.X()), float64(dir.Z()))
	theta := math.Atan2(math.Hypot(float64(dir.X()), float64(dir.Z())), float64(dir.Y()))

	phi += float64(diff.X()) * math.Pi / float64(cam.width)
	theta += float64(diff.Y()) * math.Pi / float64(cam.height)
	r += float64(zoom) * r

	theta = mgl64.Clamp(theta, orbitMinTheta, math.Pi-orbitMinTheta)
	r = math.Max(r, orbitMinRadius)

	coord := mgl32.Vec3{
		float32(r * math.Sin(theta) * math.Sin(phi)),
		float32(r * math.Cos(theta)),
		float32(r * math.Sin(theta) * math.Cos(phi)),
	}
	cam.position = cam.lookAt.Add(coord)
}
