package viewer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/braheezy/glviewer/internal/asset"
	"github.com/braheezy/glviewer/internal/opengl"
)

// Sampler is anything that binds to a texture unit.
type Sampler interface {
	Bind(unit uint32)
}

type screenVertex struct {
	Position mgl32.Vec3 `obj:"position"`
	TexCoord mgl32.Vec2 `obj:"texcoord"`
}

// ScreenPass draws a quad covering the viewport. Attribute 0 is the clip space
// position and attribute 1 the texture coordinate.
type ScreenPass struct {
	ctx  *opengl.Context
	quad *asset.Mesh[screenVertex]
}

func NewScreenPass(ctx *opengl.Context) *ScreenPass {
	quad, err := asset.ScreenQuad[screenVertex](ctx)
	if err != nil {
		panic("viewer: " + err.Error())
	}
	return &ScreenPass{ctx: ctx, quad: quad}
}

// Draw binds program and textures[i] to unit i and draws the quad without depth
// testing.
func (p *ScreenPass) Draw(program *opengl.ShaderProgram, textures ...Sampler) {
	depth := p.ctx.Disable(opengl.DepthTest)
	program.Bind()
	for i, t := range textures {
		t.Bind(uint32(i))
	}
	p.quad.Draw(opengl.Triangles)
	p.ctx.Set(opengl.DepthTest, depth)
}

func (p *ScreenPass) Delete() { p.quad.Delete() }
