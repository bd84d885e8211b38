// Package camera holds the scene camera and the input driven controls that move it.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Mode int

const (
	Perspective Mode = iota
	Ortho
)

// Camera looks from a position at a look-at point. Angles are in radians.
type Camera struct {
	mode Mode

	position mgl32.Vec3
	lookAt   mgl32.Vec3
	up       mgl32.Vec3

	width, height float32
	near, far     float32
	fov           float32
}

// New returns a perspective camera at (0, 0, 1) looking at the origin.
func New() *Camera {
	return &Camera{
		position: mgl32.Vec3{0, 0, 1},
		up:       mgl32.Vec3{0, 1, 0},
		width:    1280,
		height:   720,
		near:     0.01,
		far:      20,
		fov:      0.25 * math.Pi,
	}
}

// Perspective switches to a perspective projection.
func (c *Camera) Perspective(width, height, fov, near, far float32) {
	c.mode = Perspective
	c.width, c.height = width, height
	c.fov = fov
	c.near, c.far = near, far
}

// Ortho switches to an orthographic projection spanning (0, 0) to (width, height).
func (c *Camera) Ortho(width, height, near, far float32) {
	c.mode = Ortho
	c.width, c.height = width, height
	c.near, c.far = near, far
}

func (c *Camera) Mode() Mode { return c.mode }

func (c *Camera) Position() mgl32.Vec3     { return c.position }
func (c *Camera) SetPosition(p mgl32.Vec3) { c.position = p }
func (c *Camera) LookAt() mgl32.Vec3       { return c.lookAt }
func (c *Camera) SetLookAt(p mgl32.Vec3)   { c.lookAt = p }
func (c *Camera) Up() mgl32.Vec3           { return c.up }
func (c *Camera) SetUp(up mgl32.Vec3)      { c.up = up }
func (c *Camera) Fov() float32             { return c.fov }
func (c *Camera) SetFov(radians float32)   { c.fov = radians }

func (c *Camera) Size() (width, height float32) { return c.width, c.height }

func (c *Camera) SetSize(width, height float32) {
	c.width, c.height = width, height
}

func (c *Camera) Aspect() float32 { return c.width / c.height }

func (c *Camera) ClipPlanes() (near, far float32) { return c.near, c.far }

func (c *Camera) SetClipPlanes(near, far float32) {
	c.near, c.far = near, far
}

// Front is the unit view direction.
func (c *Camera) Front() mgl32.Vec3 {
	return c.lookAt.Sub(c.position).Normalize()
}

// View makes the camera viewpoint look at the look-at point.
func (c *Camera) View() mgl32.Mat4 {
	return lookAt(c.position, c.lookAt, c.up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	if c.mode == Ortho {
		return mgl32.Ortho(0, c.width, 0, c.height, c.near, c.far)
	}
	return mgl32.Perspective(c.fov, c.Aspect(), c.near, c.far)
}

// ViewProjection is Projection() * View().
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

func lookAt(position, target, up mgl32.Vec3) mgl32.Mat4 {
	forward := target.Sub(position).Normalize()
	right := forward.Cross(up.Normalize()).Normalize()
	up = right.Cross(forward)
	rotation := mgl32.Mat4{
		right.X(), up.X(), -forward.X(), 0,
		right.Y(), up.Y(), -forward.Y(), 0,
		right.Z(), up.Z(), -forward.Z(), 0,
		0, 0, 0, 1,
	}
	translation := mgl32.Translate3D(-position.X(), -position.Y(), -position.Z())
	return rotation.Mul4(translation)
}
