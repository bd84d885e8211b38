package opengl

import (
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/logger"
)

// VertexSource is a vertex buffer that can be attached to a VertexArray.
type VertexSource interface {
	Bind()
	Len() int
	NumAttrib() int
}

// IndexSource is an index buffer that can be attached to a VertexArray.
type IndexSource interface {
	Bind()
	Len() int
	IndexType() Type
}

// VertexArray records the attribute setup and index buffer of a mesh.
type VertexArray struct {
	ctx    *Context
	handle uint32

	vertexCount int
	numAttrib   int
	indexCount  int
	indexType   Type
}

func (c *Context) NewVertexArray() *VertexArray {
	return &VertexArray{ctx: c, handle: c.gl.GenVertexArray()}
}

func (va *VertexArray) Handle() uint32 { return va.handle }

func (va *VertexArray) Bind()   { va.ctx.BindVertexArray(va.handle) }
func (va *VertexArray) Unbind() { va.ctx.BindVertexArray(0) }

// AttachVertexBuffer binds vb while the array is bound so its attribute pointers
// become part of the array state.
func (va *VertexArray) AttachVertexBuffer(vb VertexSource) {
	va.Bind()
	vb.Bind()
	va.UpdateVertexBuffer(vb)
}

// UpdateVertexBuffer picks up a new size of an attached buffer.
func (va *VertexArray) UpdateVertexBuffer(vb VertexSource) {
	va.vertexCount = vb.Len()
	va.numAttrib = vb.NumAttrib()
}

func (va *VertexArray) AttachIndexBuffer(ib IndexSource) {
	va.Bind()
	ib.Bind()
	va.UpdateIndexBuffer(ib)
}

func (va *VertexArray) UpdateIndexBuffer(ib IndexSource) {
	va.indexCount = ib.Len()
	va.indexType = ib.IndexType()
}

// VertexCount and IndexCount report the sizes recorded at attach/update time.
func (va *VertexArray) VertexCount() int { return va.vertexCount }
func (va *VertexArray) IndexCount() int  { return va.indexCount }

// Draw draws every vertex, or every index when an index buffer is attached.
func (va *VertexArray) Draw(mode Primitive) {
	if va.indexCount == 0 {
		va.DrawRange(0, va.vertexCount, mode)
		return
	}
	va.DrawRange(0, va.indexCount, mode)
}

// DrawCount draws the first count vertices or indices.
func (va *VertexArray) DrawCount(count int, mode Primitive) {
	va.DrawRange(0, count, mode)
}

// DrawRange draws count vertices or indices starting at offset.
func (va *VertexArray) DrawRange(offset, count int, mode Primitive) {
	if count <= 0 {
		return
	}
	va.Bind()
	if va.indexCount == 0 {
		va.ctx.gl.DrawArrays(uint32(mode), int32(offset), int32(count))
		return
	}
	if offset+count > va.indexCount {
		logger.Log.Error("draw range exceeds index buffer",
			zap.Int("offset", offset), zap.Int("count", count), zap.Int("indices", va.indexCount))
		return
	}
	va.ctx.gl.DrawElements(uint32(mode), int32(count), uint32(va.indexType), uintptr(offset*va.indexType.Size()))
}

func (va *VertexArray) Delete() {
	if va.handle == 0 {
		return
	}
	va.ctx.gl.DeleteVertexArray(va.handle)
	va.ctx.forgetVertexArray(va.handle)
	va.handle = 0
}
