package asset

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braheezy/glviewer/internal/opengl"
)

type positionVertex struct {
	Position mgl32.Vec3 `obj:"position"`
}

type texturedVertex struct {
	Position mgl32.Vec3 `obj:"position"`
	TexCoord mgl32.Vec2 `obj:"texcoord"`
}

func TestScreenQuad(t *testing.T) {
	ctx, d := newTestContext(t)

	quad, err := ScreenQuad[texturedVertex](ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, quad.VertexArray.IndexCount())

	vertices := uploaded(t, d, quad.Vertices)
	require.Len(t, vertices, 4)
	for _, v := range vertices {
		// texcoords follow the clip space corner
		assert.Equal(t, (v.Position[0]+1)/2, v.TexCoord[0])
		assert.Equal(t, (v.Position[1]+1)/2, v.TexCoord[1])
	}

	quad.Draw(opengl.Triangles)
	call, ok := d.Last("DrawElements")
	require.True(t, ok)
	assert.Equal(t, int32(6), call.Args[1])
}

func TestUnitCube(t *testing.T) {
	ctx, d := newTestContext(t)

	cube, err := UnitCube[positionVertex](ctx)
	require.NoError(t, err)
	assert.Equal(t, "unit_cube", cube.Name)
	assert.Equal(t, 36, cube.VertexArray.IndexCount())
	for _, v := range uploaded(t, d, cube.Vertices) {
		for _, c := range v.Position {
			assert.InDelta(t, 0.5, mgl32.Abs(c), 1e-6)
		}
	}
}

func TestPyramidDrawsArrays(t *testing.T) {
	ctx, d := newTestContext(t)

	pyramid, err := Pyramid[positionVertex](ctx)
	require.NoError(t, err)
	assert.Nil(t, pyramid.Indices)
	assert.Equal(t, 18, pyramid.VertexArray.VertexCount())

	pyramid.Draw(opengl.Triangles)
	assert.Zero(t, d.Count("DrawElements"))
	call, ok := d.Last("DrawArrays")
	require.True(t, ok)
	assert.Equal(t, []any{uint32(opengl.Triangles), int32(0), int32(18)}, call.Args)
}

func TestShapesRejectUntaggedVertices(t *testing.T) {
	ctx, _ := newTestContext(t)

	_, err := UnitCube[struct{ P mgl32.Vec3 }](ctx)
	assert.ErrorContains(t, err, "needs a position field")

	_, err = ScreenQuad[mgl32.Vec3](ctx)
	assert.ErrorContains(t, err, "not a struct")
}

func TestMeshDelete(t *testing.T) {
	ctx, d := newTestContext(t)

	cube, err := UnitCube[positionVertex](ctx)
	require.NoError(t, err)
	cube.Delete()
	assert.Equal(t, 2, d.Count("DeleteBuffer"))
	assert.Equal(t, 1, d.Count("DeleteVertexArray"))
}
