package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/braheezy/glviewer/internal/opengl"
)

// probe captures the scene around a point into a cube map. Reflections in
// water inside the box position±extends are looked up in it.
type probe struct {
	framebuffer *opengl.Framebuffer
	color       *opengl.TextureCube
	depth       *opengl.TextureCube

	position mgl32.Vec3
	extends  mgl32.Vec3
}

func newProbe(ctx *opengl.Context, resolution int, pos, extends mgl32.Vec3) (*probe, error) {
	color := ctx.NewTextureCube(opengl.RGBA8, opengl.FormatRGBA, opengl.PixelUnsignedByte, resolution, resolution)
	color.SetMinFilter(opengl.MinLinear)
	color.SetMagFilter(opengl.MagLinear)
	depth := ctx.NewTextureCube(opengl.Depth32F, opengl.FormatDepth, opengl.PixelFloat, resolution, resolution)

	fb := ctx.NewFramebuffer()
	fb.AttachColorCube(0, color)
	fb.AttachDepthCube(depth)
	fb.DrawAttachment(0)
	if !fb.Completed() {
		fb.Delete()
		color.Delete()
		depth.Delete()
		return nil, errors.New("probe framebuffer incomplete")
	}
	return &probe{framebuffer: fb, color: color, depth: depth, position: pos, extends: extends}, nil
}

// views are the view matrices of the six faces in cube map order.
func (p *probe) views() []mgl32.Mat4 {
	type face struct{ dir, up mgl32.Vec3 }
	faces := [6]face{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
	}
	views := make([]mgl32.Mat4, len(faces))
	for i, f := range faces {
		views[i] = mgl32.LookAtV(p.position, p.position.Add(f.dir), f.up)
	}
	return views
}

// volume maps the unit cube onto the probe's box.
func (p *probe) volume() mgl32.Mat4 {
	size := p.extends.Mul(2)
	return mgl32.Translate3D(p.position[0], p.position[1], p.position[2]).Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
}

// capture renders the scene into all six faces in one pass through a
// geometry shader that routes each triangle to every layer.
func (p *probe) capture(ctx *opengl.Context, program *opengl.ShaderProgram, model mgl32.Mat4, draw func(*opengl.ShaderProgram)) {
	p.framebuffer.Bind(opengl.ReadWriteFramebuffer)
	w, h := p.color.Size(opengl.PositiveX)
	viewport := ctx.Viewport(0, 0, w, h)
	ctx.Clear(opengl.ClearColorDepth)

	program.Bind()
	program.SetMat4("uModel", model)
	program.SetMat4("projection", mgl32.Perspective(math.Pi/2, 1, 0.1, 100))
	program.Uniform("captureViews[0]", p.views())
	draw(program)

	ctx.SetViewport(viewport)
	p.framebuffer.Unbind()
}

func (p *probe) delete() {
	p.framebuffer.Delete()
	p.color.Delete()
	p.depth.Delete()
}
