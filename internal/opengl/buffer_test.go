package opengl

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testVertex struct {
	Position mgl32.Vec3
	Color    [4]uint8 `gl:"normalized"`
	ID       uint32   `gl:"pure"`
	scratch  float32
	Weight   float64 `gl:"pure"`
	Ignored  float32 `gl:"-"`
}

func TestBufferUpload(t *testing.T) {
	ctx, d := newTestContext(t)

	b := NewBuffer(ctx, ArrayBuffer, []float32{1, 2, 3}, StaticDraw)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, ArrayBuffer, b.Target())
	assert.Equal(t, StaticDraw, b.Usage())

	data := d.Buffers[b.Handle()]
	require.Len(t, data, 12)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(data[4:])))

	require.NoError(t, b.DataAt(1, []float32{7, 8}))
	assert.Equal(t, float32(8), math.Float32frombits(binary.LittleEndian.Uint32(d.Buffers[b.Handle()][8:])))

	assert.Error(t, b.DataAt(2, []float32{1, 2}))
	assert.Error(t, b.DataAt(-1, []float32{1}))
	assert.Equal(t, 1, d.Count("BufferSubData"))

	b.Data([]float32{1})
	assert.Equal(t, 1, b.Len())
	assert.Len(t, d.Buffers[b.Handle()], 4)
}

func TestBufferConstructors(t *testing.T) {
	ctx, d := newTestContext(t)

	empty := NewBuffer[uint16](ctx, CopyReadBuffer, nil, StreamDraw)
	assert.Zero(t, empty.Len())
	assert.Zero(t, d.Count("BufferData"))

	sized := NewBufferSized[mgl32.Vec4](ctx, ShaderStorageBuffer, 16, DynamicDraw)
	assert.Equal(t, 16, sized.Len())
	c, ok := d.Last("BufferData")
	require.True(t, ok)
	assert.Equal(t, 16*16, c.Args[1])

	sized.BindBase(0)
	c, ok = d.Last("BindBufferBase")
	require.True(t, ok)
	assert.Equal(t, []any{uint32(glShaderStorageBuffer), uint32(0), sized.Handle()}, c.Args)
	sized.BindBase(0)
	assert.Equal(t, 1, d.Count("BindBufferBase"))
}

func TestLayoutOfStruct(t *testing.T) {
	layout, err := LayoutOf[testVertex]()
	require.NoError(t, err)

	assert.Equal(t, 40, layout.Stride)
	require.Len(t, layout.Attributes, 4)
	assert.Equal(t, Attribute{Type: Float, Size: 3, Mapping: MappingCast, Offset: 0}, layout.Attributes[0])
	assert.Equal(t, Attribute{Type: UnsignedByte, Size: 4, Mapping: MappingNormalized, Offset: 12}, layout.Attributes[1])
	assert.Equal(t, Attribute{Type: UnsignedInt, Size: 1, Mapping: MappingPure, Offset: 16}, layout.Attributes[2])
	assert.Equal(t, Attribute{Type: Double, Size: 1, Mapping: MappingPure, Offset: 24}, layout.Attributes[3])
}

func TestLayoutOfScalarsAndArrays(t *testing.T) {
	layout, err := LayoutOf[float32]()
	require.NoError(t, err)
	assert.Equal(t, Layout{Stride: 4, Attributes: []Attribute{{Type: Float, Size: 1}}}, layout)

	layout, err = LayoutOf[mgl32.Vec2]()
	require.NoError(t, err)
	assert.Equal(t, Layout{Stride: 8, Attributes: []Attribute{{Type: Float, Size: 2}}}, layout)
}

func TestLayoutOfRejectsBadTypes(t *testing.T) {
	type nested struct {
		Inner struct{ X float32 }
	}
	type badTag struct {
		X float32 `gl:"fast"`
	}
	type nothing struct {
		x float32
	}

	_, err := LayoutOf[nested]()
	assert.Error(t, err)
	_, err = LayoutOf[badTag]()
	assert.Error(t, err)
	_, err = LayoutOf[nothing]()
	assert.Error(t, err)
	_, err = LayoutOf[mgl32.Mat4]()
	assert.Error(t, err)
	_, err = LayoutOf[int]()
	assert.Error(t, err)
	_, err = LayoutOf[string]()
	assert.Error(t, err)

	ctx, _ := newTestContext(t)
	assert.Panics(t, func() { NewVertexBuffer[nested](ctx, nil, StaticDraw) })
}

func TestVertexBufferBindSetsPointers(t *testing.T) {
	ctx, d := newTestContext(t)

	vb := NewVertexBuffer(ctx, []testVertex{{}, {}}, StaticDraw)
	assert.Equal(t, 4, vb.NumAttrib())
	d.Reset()

	vb.Bind()
	assert.Equal(t, 4, d.Count("EnableVertexAttribArray"))

	float := d.Find("VertexAttribPointer")
	require.Len(t, float, 2)
	assert.Equal(t, []any{uint32(0), int32(3), uint32(glFloat), false, int32(40), uintptr(0)}, float[0].Args)
	assert.Equal(t, []any{uint32(1), int32(4), uint32(glUnsignedByte), true, int32(40), uintptr(12)}, float[1].Args)

	integer, ok := d.Last("VertexAttribIPointer")
	require.True(t, ok)
	assert.Equal(t, []any{uint32(2), int32(1), uint32(glUnsignedInt), int32(40), uintptr(16)}, integer.Args)

	double, ok := d.Last("VertexAttribLPointer")
	require.True(t, ok)
	assert.Equal(t, uint32(3), double.Args[0])

	vb.Unbind()
	assert.Equal(t, 4, d.Count("DisableVertexAttribArray"))
}

func TestIndexBufferType(t *testing.T) {
	ctx, _ := newTestContext(t)

	assert.Equal(t, UnsignedByte, NewIndexBuffer(ctx, []uint8{0, 1, 2}, StaticDraw).IndexType())
	assert.Equal(t, UnsignedShort, NewIndexBuffer(ctx, []uint16{0, 1, 2}, StaticDraw).IndexType())
	assert.Equal(t, UnsignedInt, NewIndexBuffer(ctx, []uint32{0, 1, 2}, StaticDraw).IndexType())
	assert.Equal(t, ElementArrayBuffer, NewIndexBuffer(ctx, []uint32{0}, StaticDraw).Target())
}

func TestVertexArrayDraw(t *testing.T) {
	ctx, d := newTestContext(t)

	va := ctx.NewVertexArray()
	vb := NewVertexBuffer(ctx, make([]mgl32.Vec3, 6), StaticDraw)
	va.AttachVertexBuffer(vb)
	assert.Equal(t, 6, va.VertexCount())

	va.Draw(Triangles)
	c, ok := d.Last("DrawArrays")
	require.True(t, ok)
	assert.Equal(t, []any{uint32(glTriangles), int32(0), int32(6)}, c.Args)

	ib := NewIndexBuffer(ctx, []uint16{0, 1, 2, 2, 3, 0, 4, 5, 0}, StaticDraw)
	va.AttachIndexBuffer(ib)
	assert.Equal(t, 9, va.IndexCount())

	va.Draw(Triangles)
	c, ok = d.Last("DrawElements")
	require.True(t, ok)
	assert.Equal(t, []any{uint32(glTriangles), int32(9), uint32(glUnsignedShort), uintptr(0)}, c.Args)

	va.DrawRange(3, 6, Triangles)
	c, _ = d.Last("DrawElements")
	assert.Equal(t, []any{uint32(glTriangles), int32(6), uint32(glUnsignedShort), uintptr(6)}, c.Args)

	va.DrawCount(3, Triangles)
	c, _ = d.Last("DrawElements")
	assert.Equal(t, int32(3), c.Args[1])

	va.DrawRange(6, 6, Triangles)
	assert.Equal(t, 3, d.Count("DrawElements"))
}

func TestVertexArrayUpdateOnlyRecords(t *testing.T) {
	ctx, d := newTestContext(t)

	va := ctx.NewVertexArray()
	ib := NewIndexBuffer(ctx, []uint32{0, 1, 2}, StreamDraw)
	d.Reset()

	va.UpdateIndexBuffer(ib)
	assert.Equal(t, 3, va.IndexCount())
	assert.Empty(t, d.Calls)

	va.Delete()
	assert.Zero(t, va.Handle())
	assert.Equal(t, 1, d.Count("DeleteVertexArray"))
}
