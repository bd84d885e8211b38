package opengl

import "unsafe"

// Driver is the set of OpenGL entry points the wrapper calls. The names and argument
// order follow the GL functions; slices replace pointer/count pairs.
type Driver interface {
	GetString(name uint32) string
	GetIntegerv(pname uint32, data []int32)
	GetFloatv(pname uint32, data []float32)
	GetBooleanv(pname uint32, data []bool)
	IsEnabled(capability uint32) bool
	Enable(capability uint32)
	Disable(capability uint32)
	DepthMask(flag bool)
	BlendEquation(mode uint32)
	BlendFunc(sfactor, dfactor uint32)
	PolygonMode(face, mode uint32)
	CullFace(mode uint32)
	Viewport(x, y, width, height int32)
	Scissor(x, y, width, height int32)
	LineWidth(width float32)
	PointSize(size float32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	DebugMessageCallback(fn func(source, typ, id, severity uint32, message string))
	DebugMessageControl(source, typ, severity uint32, ids []uint32, enabled bool)

	BindVertexArray(array uint32)
	BindBuffer(target, buffer uint32)
	BindBufferBase(target, index, buffer uint32)
	ActiveTexture(texture uint32)
	BindTexture(target, texture uint32)
	BindRenderbuffer(target, renderbuffer uint32)
	BindFramebuffer(target, framebuffer uint32)
	UseProgram(program uint32)

	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, typ uint32, offset uintptr)

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	BufferSubData(target uint32, offset, size int, data unsafe.Pointer)

	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr)
	VertexAttribIPointer(index uint32, size int32, typ uint32, stride int32, offset uintptr)
	VertexAttribLPointer(index uint32, size int32, typ uint32, stride int32, offset uintptr)

	GenTexture() uint32
	DeleteTexture(texture uint32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, typ uint32, pixels unsafe.Pointer)
	TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, typ uint32, pixels unsafe.Pointer)
	TexParameteri(target, pname uint32, param int32)
	TexParameterfv(target, pname uint32, params []float32)
	GenerateMipmap(target uint32)

	GenRenderbuffer() uint32
	DeleteRenderbuffer(renderbuffer uint32)
	RenderbufferStorage(target, internalFormat uint32, width, height int32)

	GenFramebuffer() uint32
	DeleteFramebuffer(framebuffer uint32)
	FramebufferTexture(target, attachment, texture uint32, level int32)
	FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32)
	FramebufferRenderbuffer(target, attachment, renderbuffertarget, renderbuffer uint32)
	CheckFramebufferStatus(target uint32) uint32
	DrawBuffers(bufs []uint32)
	NamedFramebufferDrawBuffer(framebuffer, buf uint32)
	NamedFramebufferReadBuffer(framebuffer, src uint32)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)

	CreateShader(typ uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ValidateProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	GetProgramInterfaceiv(program, programInterface, pname uint32) int32
	GetProgramResourceiv(program, programInterface, index uint32, props []uint32, params []int32)
	GetProgramResourceName(program, programInterface, index uint32, bufSize int32) string

	// Uniform setters upload len(values)/components elements of a vector type, or
	// len(values)/(cols*rows) matrices in column-major order.
	Uniformfv(location int32, components int, values []float32)
	Uniformiv(location int32, components int, values []int32)
	Uniformuiv(location int32, components int, values []uint32)
	Uniformdv(location int32, components int, values []float64)
	UniformMatrixfv(location int32, cols, rows int, values []float32)
	UniformMatrixdv(location int32, cols, rows int, values []float64)
}
