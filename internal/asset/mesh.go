package asset

import (
	"github.com/braheezy/glviewer/internal/opengl"
)

// Mesh is GPU resident geometry: a vertex array with its vertex buffer and an
// optional index buffer.
type Mesh[V any] struct {
	Name        string
	VertexArray *opengl.VertexArray
	Vertices    *opengl.VertexBuffer[V]
	Indices     *opengl.IndexBuffer[uint32]
}

// NewMesh uploads vertices and, when given, indices. The vertex array is left
// unbound.
func NewMesh[V any](ctx *opengl.Context, name string, vertices []V, indices []uint32) *Mesh[V] {
	m := &Mesh[V]{
		Name:        name,
		VertexArray: ctx.NewVertexArray(),
		Vertices:    opengl.NewVertexBuffer(ctx, vertices, opengl.StaticDraw),
	}
	m.VertexArray.AttachVertexBuffer(m.Vertices)
	if indices != nil {
		m.Indices = opengl.NewIndexBuffer(ctx, indices, opengl.StaticDraw)
		m.VertexArray.AttachIndexBuffer(m.Indices)
	}
	m.VertexArray.Unbind()
	return m
}

// Draw draws the whole mesh.
func (m *Mesh[V]) Draw(mode opengl.Primitive) {
	m.VertexArray.Draw(mode)
}

// DrawRange draws count indices starting at offset.
func (m *Mesh[V]) DrawRange(offset, count int, mode opengl.Primitive) {
	m.VertexArray.DrawRange(offset, count, mode)
}

func (m *Mesh[V]) Delete() {
	m.VertexArray.Delete()
	m.Vertices.Delete()
	if m.Indices != nil {
		m.Indices.Delete()
	}
}
