package opengl

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Buffer is a GPU buffer object holding items of type T.
type Buffer[T any] struct {
	ctx    *Context
	target BufferTarget
	usage  BufferUsage
	handle uint32
	n      int
}

func newBuffer[T any](ctx *Context, target BufferTarget, usage BufferUsage) *Buffer[T] {
	b := &Buffer[T]{
		ctx:    ctx,
		target: target,
		usage:  usage,
		handle: ctx.gl.GenBuffer(),
	}
	b.Bind()
	return b
}

// NewBuffer creates a buffer on target. A nil items slice leaves the storage
// unallocated until Data is called.
func NewBuffer[T any](ctx *Context, target BufferTarget, items []T, usage BufferUsage) *Buffer[T] {
	b := newBuffer[T](ctx, target, usage)
	if items != nil {
		b.Data(items)
	}
	return b
}

// NewBufferSized allocates storage for n items without uploading data.
func NewBufferSized[T any](ctx *Context, target BufferTarget, n int, usage BufferUsage) *Buffer[T] {
	b := newBuffer[T](ctx, target, usage)
	b.n = n
	ctx.gl.BufferData(uint32(target), n*itemSize[T](), nil, uint32(usage))
	return b
}

func itemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func slicePointer[T any](items []T) unsafe.Pointer {
	if len(items) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(items))
}

// Data replaces the buffer storage with items.
func (b *Buffer[T]) Data(items []T) {
	b.n = len(items)
	b.Bind()
	b.ctx.gl.BufferData(uint32(b.target), len(items)*itemSize[T](), slicePointer(items), uint32(b.usage))
}

// DataAt overwrites the items starting at offset (in items). The range must lie
// inside the current storage.
func (b *Buffer[T]) DataAt(offset int, items []T) error {
	if offset < 0 || offset+len(items) > b.n {
		return errors.Errorf("buffer update [%d, %d) outside of %d items", offset, offset+len(items), b.n)
	}
	size := itemSize[T]()
	b.Bind()
	b.ctx.gl.BufferSubData(uint32(b.target), offset*size, len(items)*size, slicePointer(items))
	return nil
}

func (b *Buffer[T]) Bind() { b.ctx.BindBuffer(b.target, b.handle) }

func (b *Buffer[T]) Unbind() { b.ctx.BindBuffer(b.target, 0) }

// BindBase binds the buffer to an indexed binding point, for shader storage and
// uniform buffers.
func (b *Buffer[T]) BindBase(index uint32) { b.ctx.BindBufferBase(b.target, index, b.handle) }

// Len is the number of items in the buffer.
func (b *Buffer[T]) Len() int             { return b.n }
func (b *Buffer[T]) Target() BufferTarget { return b.target }
func (b *Buffer[T]) Usage() BufferUsage   { return b.usage }
func (b *Buffer[T]) Handle() uint32       { return b.handle }

func (b *Buffer[T]) Delete() {
	if b.handle == 0 {
		return
	}
	b.ctx.gl.DeleteBuffer(b.handle)
	b.ctx.forgetBuffer(b.handle)
	b.handle = 0
	b.n = 0
}
