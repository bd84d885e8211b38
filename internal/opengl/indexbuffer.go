package opengl

// Index is an element type accepted by DrawElements.
type Index interface {
	~uint8 | ~uint16 | ~uint32
}

// IndexBuffer is an element array buffer.
type IndexBuffer[T Index] struct {
	*Buffer[T]
}

func NewIndexBuffer[T Index](ctx *Context, items []T, usage BufferUsage) *IndexBuffer[T] {
	return &IndexBuffer[T]{NewBuffer(ctx, ElementArrayBuffer, items, usage)}
}

// IndexType is the GL type of T.
func (b *IndexBuffer[T]) IndexType() Type {
	switch itemSize[T]() {
	case 1:
		return UnsignedByte
	case 2:
		return UnsignedShort
	}
	return UnsignedInt
}
