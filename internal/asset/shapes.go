package asset

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/braheezy/glviewer/internal/opengl"
)

// ScreenQuad is a quad covering clip space, with texcoords when V has them.
func ScreenQuad[V any](ctx *opengl.Context) (*Mesh[V], error) {
	f, err := fieldsOf[V]()
	if err != nil {
		return nil, err
	}
	vertices := make([]V, 4)
	positions := []mgl32.Vec3{{-1, -1, 0}, {1, 1, 0}, {1, -1, 0}, {-1, 1, 0}}
	texcoords := []mgl32.Vec2{{0, 0}, {1, 1}, {1, 0}, {0, 1}}
	for i := range vertices {
		f.set(&vertices[i], fieldPosition, positions[i])
		f.set(&vertices[i], fieldTexcoord, texcoords[i])
	}
	return NewMesh(ctx, "full_screen_quad", vertices, []uint32{0, 1, 2, 0, 3, 1}), nil
}

// UnitCube is an indexed cube of edge length one centered at the origin.
func UnitCube[V any](ctx *opengl.Context) (*Mesh[V], error) {
	f, err := fieldsOf[V]()
	if err != nil {
		return nil, err
	}
	positions := []mgl32.Vec3{
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	}
	vertices := make([]V, len(positions))
	for i := range vertices {
		f.set(&vertices[i], fieldPosition, positions[i])
	}
	indices := []uint32{
		0, 1, 2, 0, 2, 3,
		1, 5, 6, 1, 6, 2,
		5, 4, 7, 5, 7, 6,
		4, 0, 3, 4, 3, 7,
		2, 6, 7, 2, 7, 3,
		4, 5, 1, 4, 1, 0,
	}
	return NewMesh(ctx, "unit_cube", vertices, indices), nil
}

// Pyramid is a four sided pyramid with its apex at the origin, drawn without
// indices.
func Pyramid[V any](ctx *opengl.Context) (*Mesh[V], error) {
	f, err := fieldsOf[V]()
	if err != nil {
		return nil, err
	}
	s := float32(math.Sqrt2)
	apex := mgl32.Vec3{0, 0, 0}
	positions := []mgl32.Vec3{
		apex, {s, -1, -s}, {-s, -1, -s},
		apex, {s, -1, s}, {s, -1, -s},
		apex, {-s, -1, s}, {s, -1, s},
		apex, {-s, -1, -s}, {-s, -1, s},

		{-s, -1, -s}, {s, -1, -s}, {s, -1, s},
		{-s, -1, -s}, {s, -1, s}, {-s, -1, s},
	}
	vertices := make([]V, len(positions))
	for i := range vertices {
		f.set(&vertices[i], fieldPosition, positions[i])
	}
	return NewMesh(ctx, "unit_pyramid", vertices, nil), nil
}
