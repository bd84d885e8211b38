package opengl

// VertexBuffer is an array buffer whose items are vertices described by a Layout.
type VertexBuffer[T any] struct {
	*Buffer[T]
	layout Layout
}

// NewVertexBuffer creates a vertex buffer with the layout reflected from T. It
// panics when T cannot be a vertex, which is a programming error like a bad
// template argument.
func NewVertexBuffer[T any](ctx *Context, items []T, usage BufferUsage) *VertexBuffer[T] {
	layout, err := LayoutOf[T]()
	if err != nil {
		panic("opengl: " + err.Error())
	}
	return NewVertexBufferLayout(ctx, layout, items, usage)
}

// NewVertexBufferLayout creates a vertex buffer with an explicit layout.
func NewVertexBufferLayout[T any](ctx *Context, layout Layout, items []T, usage BufferUsage) *VertexBuffer[T] {
	return &VertexBuffer[T]{
		Buffer: NewBuffer(ctx, ArrayBuffer, items, usage),
		layout: layout,
	}
}

func (b *VertexBuffer[T]) Layout() Layout { return b.layout }

func (b *VertexBuffer[T]) NumAttrib() int { return len(b.layout.Attributes) }

// Bind binds the buffer and points attributes 0..n-1 at it.
func (b *VertexBuffer[T]) Bind() {
	b.Buffer.Bind()
	gl := b.ctx.gl
	stride := int32(b.layout.Stride)
	for i, a := range b.layout.Attributes {
		index := uint32(i)
		offset := uintptr(a.Offset)
		gl.EnableVertexAttribArray(index)
		switch a.Mapping {
		case MappingCast:
			gl.VertexAttribPointer(index, int32(a.Size), uint32(a.Type), false, stride, offset)
		case MappingNormalized:
			gl.VertexAttribPointer(index, int32(a.Size), uint32(a.Type), true, stride, offset)
		case MappingPure:
			switch {
			case a.Type.integer():
				gl.VertexAttribIPointer(index, int32(a.Size), uint32(a.Type), stride, offset)
			case a.Type == Double:
				gl.VertexAttribLPointer(index, int32(a.Size), uint32(a.Type), stride, offset)
			default:
				gl.VertexAttribPointer(index, int32(a.Size), uint32(a.Type), false, stride, offset)
			}
		}
	}
}

// Unbind disables the attributes and unbinds the buffer.
func (b *VertexBuffer[T]) Unbind() {
	for i := range b.layout.Attributes {
		b.ctx.gl.DisableVertexAttribArray(uint32(i))
	}
	b.Buffer.Unbind()
}
