package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braheezy/glviewer/internal/opengl"
	"github.com/braheezy/glviewer/internal/opengl/gltest"
)

func TestProbeViewsLookAlongFaces(t *testing.T) {
	p := &probe{position: mgl32.Vec3{1, 2, 3}}
	dirs := []mgl32.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}

	views := p.views()
	require.Len(t, views, 6)
	for i, view := range views {
		// a point ahead of the probe lands on the negative view axis
		ahead := mgl32.TransformCoordinate(p.position.Add(dirs[i]), view)
		assert.InDelta(t, 0, ahead[0], 1e-5, "face %d", i)
		assert.InDelta(t, 0, ahead[1], 1e-5, "face %d", i)
		assert.InDelta(t, -1, ahead[2], 1e-5, "face %d", i)
	}
}

func TestProbeVolume(t *testing.T) {
	p := &probe{position: mgl32.Vec3{1, 0, -1}, extends: mgl32.Vec3{2, 2, 2}}
	corner := mgl32.TransformCoordinate(mgl32.Vec3{0.5, 0.5, 0.5}, p.volume())
	assert.Equal(t, mgl32.Vec3{3, 2, 1}, corner)
}

func TestProbeCapture(t *testing.T) {
	d := gltest.New()
	ctx := opengl.NewContext(d, false)
	p, err := newProbe(ctx, 64, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
	require.NoError(t, err)

	program := ctx.NewShader()
	require.NoError(t, program.Attach("void main() {}", opengl.VertexShader))
	require.NoError(t, program.Link())

	d.Reset()
	before := ctx.CurrentViewport()
	drawn := 0
	p.capture(ctx, program, mgl32.Ident4(), func(*opengl.ShaderProgram) { drawn++ })

	assert.Equal(t, 1, drawn)
	assert.Equal(t, before, ctx.CurrentViewport())
	assert.Equal(t, uint32(0), ctx.BoundFramebuffer(opengl.DrawFramebuffer))

	viewports := d.Find("Viewport")
	require.NotEmpty(t, viewports)
	assert.Equal(t, []any{int32(0), int32(0), int32(64), int32(64)}, viewports[0].Args)

	p.delete()
	assert.Equal(t, 1, d.Count("DeleteFramebuffer"))
}
