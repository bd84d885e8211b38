package opengl

import (
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testVertexSource = `#version 460 core
layout (location = 0) in vec3 aPos;
uniform mat4 model;
uniform mat4 viewProj;
void main() { gl_Position = viewProj * model * vec4(aPos, 1.0); }
`

const testFragmentSource = `#version 460 core
out vec4 FragColor;
uniform vec3 tint;
uniform float lights[4];
layout (binding = 0) uniform sampler2D albedo;
void main() { FragColor = vec4(tint, 1.0); }
`

func linkedProgram(t *testing.T, ctx *Context) *ShaderProgram {
	t.Helper()
	p := ctx.NewShader()
	require.NoError(t, p.Attach(testVertexSource, VertexShader))
	require.NoError(t, p.Attach(testFragmentSource, FragmentShader))
	require.NoError(t, p.Link())
	return p
}

func TestShaderCompileFailure(t *testing.T) {
	logs := observeLogs(t)
	ctx, d := newTestContext(t)

	p := ctx.NewShader()
	err := p.Attach("#version 460 core\n#error nope\n", FragmentShader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#error directive")
	assert.Equal(t, 1, d.Count("DeleteShader"))
	assert.Zero(t, d.Count("AttachShader"))
	assert.Equal(t, 1, logs.FilterMessage("ERROR compiling shader").Len())
}

func TestShaderAttachReplacesStage(t *testing.T) {
	ctx, d := newTestContext(t)

	p := ctx.NewShader()
	require.NoError(t, p.Attach(testVertexSource, VertexShader))
	first, _ := d.Last("AttachShader")
	require.NoError(t, p.Attach(testVertexSource, VertexShader))

	detach, ok := d.Last("DetachShader")
	require.True(t, ok)
	assert.Equal(t, first.Args, detach.Args)
	assert.Equal(t, 2, d.Count("AttachShader"))
}

func TestShaderLinkCollectsUniforms(t *testing.T) {
	ctx, d := newTestContext(t)

	p := linkedProgram(t, ctx)
	assert.True(t, p.Linked())
	assert.Equal(t, 1, d.Count("ValidateProgram"))
	assert.ElementsMatch(t, []string{"model", "viewProj", "tint", "lights[0]", "albedo"}, p.Uniforms())
	assert.Equal(t, d.Location("tint"), p.UniformLocation("tint"))

	err := p.Link()
	assert.Error(t, err)
	assert.Equal(t, 1, d.Count("LinkProgram"))
}

func TestShaderLinkFailure(t *testing.T) {
	logs := observeLogs(t)
	ctx, d := newTestContext(t)
	d.FailLink = true

	p := ctx.NewShader()
	require.NoError(t, p.Attach(testVertexSource, VertexShader))
	assert.Error(t, p.Link())
	assert.False(t, p.Linked())
	assert.Empty(t, p.Uniforms())
	assert.Equal(t, 1, logs.FilterMessage("ERROR link shader").Len())
}

func TestShaderUnknownUniformWarns(t *testing.T) {
	logs := observeLogs(t)
	ctx, d := newTestContext(t)

	p := linkedProgram(t, ctx)
	p.Bind()
	assert.Equal(t, int32(-1), p.UniformLocation("missing"))
	p.SetFloat("missing", 1)

	assert.Equal(t, 2, logs.FilterMessage("cannot locate uniform").FilterLevelExact(zap.WarnLevel).Len())
	assert.Zero(t, d.Count("Uniformfv"))
}

func TestShaderUniformDispatch(t *testing.T) {
	ctx, d := newTestContext(t)

	p := linkedProgram(t, ctx)
	p.Bind()

	p.SetVec3("tint", mgl32.Vec3{1, 0.5, 0})
	assert.Equal(t, []float32{1, 0.5, 0}, d.UniformValue("tint"))

	p.SetMat4("model", mgl32.Ident4())
	c, ok := d.Last("UniformMatrixfv")
	require.True(t, ok)
	assert.Equal(t, []any{d.Location("model"), 4, 4}, c.Args)
	assert.Len(t, d.UniformValue("model"), 16)

	p.Uniform("viewProj", mgl64.Mat3x2{})
	c, _ = d.Last("UniformMatrixdv")
	assert.Equal(t, []any{d.Location("viewProj"), 3, 2}, c.Args)

	p.SetBool("albedo", true)
	assert.Equal(t, []int32{1}, d.UniformValue("albedo"))
	p.Uniform("albedo", 3)
	assert.Equal(t, []int32{3}, d.UniformValue("albedo"))
	p.Uniform("albedo", [3]bool{true, false, true})
	assert.Equal(t, []int32{1, 0, 1}, d.UniformValue("albedo"))

	p.Uniform("lights[0]", []mgl32.Vec2{{1, 2}, {3, 4}})
	assert.Equal(t, []float32{1, 2, 3, 4}, d.UniformValue("lights[0]"))
	c, _ = d.Last("Uniformfv")
	assert.Equal(t, 2, c.Args[1])
}

func TestShaderUnsupportedUniformLogsError(t *testing.T) {
	logs := observeLogs(t)
	ctx, d := newTestContext(t)

	p := linkedProgram(t, ctx)
	p.Uniform("tint", "red")
	entries := logs.FilterMessage("uniform upload").FilterLevelExact(zap.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "unsupported uniform type string")
	assert.Nil(t, d.UniformValue("tint"))
}

func TestShaderRebuild(t *testing.T) {
	ctx, d := newTestContext(t)

	p := linkedProgram(t, ctx)
	p.Bind()
	old := p.Handle()

	err := p.Rebuild(map[ShaderType]string{
		VertexShader:   testVertexSource,
		FragmentShader: "#version 460 core\n#error broken\n",
	})
	require.Error(t, err)
	assert.Equal(t, old, p.Handle())
	assert.True(t, p.Linked())

	require.NoError(t, p.Rebuild(map[ShaderType]string{
		VertexShader:   testVertexSource,
		FragmentShader: testFragmentSource,
	}))
	assert.NotEqual(t, old, p.Handle())
	assert.True(t, p.Linked())

	use, ok := d.Last("UseProgram")
	require.True(t, ok)
	assert.Equal(t, p.Handle(), use.Args[0])
	assert.Contains(t, p.Uniforms(), "tint")
}

func TestShaderRebuildUnboundStaysUnbound(t *testing.T) {
	ctx, d := newTestContext(t)

	p := linkedProgram(t, ctx)
	require.NoError(t, p.Rebuild(map[ShaderType]string{VertexShader: testVertexSource}))
	assert.Zero(t, d.Count("UseProgram"))
}

func TestShaderLoadFS(t *testing.T) {
	ctx, _ := newTestContext(t)

	fsys := fstest.MapFS{
		"shaders/basic.vert": {Data: []byte(testVertexSource)},
		"shaders/basic.frag": {Data: []byte(testFragmentSource)},
	}
	p := ctx.NewShader()
	require.NoError(t, p.LoadFS(fsys, "shaders/basic.vert", VertexShader))
	require.NoError(t, p.LoadFS(fsys, "shaders/basic.frag", FragmentShader))
	assert.Error(t, p.LoadFS(fsys, "shaders/missing.geom", GeometryShader))
	require.NoError(t, p.Link())

	assert.Error(t, p.Load("/does/not/exist.vert", VertexShader))
}

func TestShaderDeleteDetachesStages(t *testing.T) {
	ctx, d := newTestContext(t)

	p := linkedProgram(t, ctx)
	p.Bind()
	d.Reset()

	p.Delete()
	assert.Equal(t, 2, d.Count("DetachShader"))
	assert.Equal(t, 2, d.Count("DeleteShader"))
	assert.Equal(t, 1, d.Count("DeleteProgram"))
	assert.Zero(t, p.Handle())
	assert.False(t, p.Linked())

	p.Delete()
	assert.Equal(t, 1, d.Count("DeleteProgram"))
}
