package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braheezy/glviewer/internal/opengl"
)

type recordingSampler struct{ units []uint32 }

func (s *recordingSampler) Bind(unit uint32) { s.units = append(s.units, unit) }

func TestScreenPassDraw(t *testing.T) {
	ctx, d := newTestContext(t)
	program := ctx.NewShader()
	require.NoError(t, program.Attach(testVert, opengl.VertexShader))
	require.NoError(t, program.Attach(testFrag, opengl.FragmentShader))
	require.NoError(t, program.Link())

	pass := NewScreenPass(ctx)
	ctx.Enable(opengl.DepthTest)
	d.Reset()

	a, b := &recordingSampler{}, &recordingSampler{}
	pass.Draw(program, a, b)

	assert.Equal(t, []uint32{0}, a.units)
	assert.Equal(t, []uint32{1}, b.units)
	c, ok := d.Last("DrawElements")
	require.True(t, ok)
	assert.Equal(t, int32(6), c.Args[1])
	assert.True(t, ctx.Enabled(opengl.DepthTest))

	pass.Delete()
	assert.Equal(t, 1, d.Count("DeleteVertexArray"))
	assert.Equal(t, 2, d.Count("DeleteBuffer"))
}

func TestTextRendererGlyphs(t *testing.T) {
	ctx, d := newTestContext(t)
	tr, err := NewTextRenderer(ctx, 16)
	require.NoError(t, err)
	defer tr.Delete()

	assert.Len(t, tr.glyphs, 95)
	assert.Nil(t, tr.glyphs[' '].tex)
	assert.Positive(t, tr.glyphs[' '].advance)
	assert.Positive(t, tr.LineHeight())

	g := tr.glyphs['W']
	require.NotNil(t, g.tex)
	img := d.Textures[g.tex.Handle()]
	assert.Equal(t, int32(opengl.R8), img.InternalFormat)
	assert.Zero(t, img.Width%4)
	assert.Len(t, img.Pixels, img.Width*img.Height)
	assert.Greater(t, g.u, float32(0))
	assert.LessOrEqual(t, g.u, float32(1))
}

func TestTextRendererDraw(t *testing.T) {
	ctx, d := newTestContext(t)
	tr, err := NewTextRenderer(ctx, 16)
	require.NoError(t, err)
	defer tr.Delete()
	d.Reset()

	tr.Draw("A b\néc", 10, 10, 1, mgl32.Vec3{1, 1, 0})

	// the space and the missing glyph draw nothing
	assert.Equal(t, 3, d.Count("DrawArrays"))
	assert.False(t, ctx.Enabled(opengl.Blend))
	assert.Equal(t, []float32{1, 1, 0}, d.UniformValue("textColor"))
}
