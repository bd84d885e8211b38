// Package gogl implements opengl.Driver on top of the go-gl 4.6 core bindings.
package gogl

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/braheezy/glviewer/internal/opengl"
)

var _ opengl.Driver = (*Driver)(nil)

// Driver forwards every call to the current OpenGL context. Init must have
// succeeded on the thread that owns the context.
type Driver struct {
	debug func(source, typ, id, severity uint32, message string)
}

// Init loads the GL entry points of the current context.
func Init() (*Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return &Driver{}, nil
}

func (d *Driver) GetString(name uint32) string { return gl.GoStr(gl.GetString(name)) }

func (d *Driver) GetIntegerv(pname uint32, data []int32) { gl.GetIntegerv(pname, &data[0]) }

func (d *Driver) GetFloatv(pname uint32, data []float32) { gl.GetFloatv(pname, &data[0]) }

func (d *Driver) GetBooleanv(pname uint32, data []bool) { gl.GetBooleanv(pname, &data[0]) }

func (d *Driver) IsEnabled(capability uint32) bool { return gl.IsEnabled(capability) }
func (d *Driver) Enable(capability uint32)         { gl.Enable(capability) }
func (d *Driver) Disable(capability uint32)        { gl.Disable(capability) }
func (d *Driver) DepthMask(flag bool)              { gl.DepthMask(flag) }
func (d *Driver) BlendEquation(mode uint32)        { gl.BlendEquation(mode) }
func (d *Driver) BlendFunc(s, dst uint32)          { gl.BlendFunc(s, dst) }
func (d *Driver) PolygonMode(face, mode uint32)    { gl.PolygonMode(face, mode) }
func (d *Driver) CullFace(mode uint32)             { gl.CullFace(mode) }
func (d *Driver) Viewport(x, y, w, h int32)        { gl.Viewport(x, y, w, h) }
func (d *Driver) Scissor(x, y, w, h int32)         { gl.Scissor(x, y, w, h) }
func (d *Driver) LineWidth(width float32)          { gl.LineWidth(width) }
func (d *Driver) PointSize(size float32)           { gl.PointSize(size) }
func (d *Driver) ClearColor(r, g, b, a float32)    { gl.ClearColor(r, g, b, a) }
func (d *Driver) Clear(mask uint32)                { gl.Clear(mask) }

func (d *Driver) DebugMessageCallback(fn func(source, typ, id, severity uint32, message string)) {
	d.debug = fn
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		d.debug(source, gltype, id, severity, message)
	}, nil)
}

func (d *Driver) DebugMessageControl(source, typ, severity uint32, ids []uint32, enabled bool) {
	var ptr *uint32
	if len(ids) > 0 {
		ptr = &ids[0]
	}
	gl.DebugMessageControl(source, typ, severity, int32(len(ids)), ptr, enabled)
}

func (d *Driver) BindVertexArray(array uint32)               { gl.BindVertexArray(array) }
func (d *Driver) BindBuffer(target, buffer uint32)           { gl.BindBuffer(target, buffer) }
func (d *Driver) BindBufferBase(target, index, buffer uint32) { gl.BindBufferBase(target, index, buffer) }
func (d *Driver) ActiveTexture(texture uint32)               { gl.ActiveTexture(texture) }
func (d *Driver) BindTexture(target, texture uint32)         { gl.BindTexture(target, texture) }
func (d *Driver) BindRenderbuffer(target, rb uint32)         { gl.BindRenderbuffer(target, rb) }
func (d *Driver) BindFramebuffer(target, fb uint32)          { gl.BindFramebuffer(target, fb) }
func (d *Driver) UseProgram(program uint32)                  { gl.UseProgram(program) }

func (d *Driver) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (d *Driver) DrawElements(mode uint32, count int32, typ uint32, offset uintptr) {
	gl.DrawElements(mode, count, typ, gl.PtrOffset(int(offset)))
}

func (d *Driver) GenBuffer() uint32 {
	var h uint32
	gl.GenBuffers(1, &h)
	return h
}

func (d *Driver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (d *Driver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.BufferData(target, size, data, usage)
}

func (d *Driver) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	gl.BufferSubData(target, offset, size, data)
}

func (d *Driver) GenVertexArray() uint32 {
	var h uint32
	gl.GenVertexArrays(1, &h)
	return h
}

func (d *Driver) DeleteVertexArray(array uint32)       { gl.DeleteVertexArrays(1, &array) }
func (d *Driver) EnableVertexAttribArray(index uint32)  { gl.EnableVertexAttribArray(index) }
func (d *Driver) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (d *Driver) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, typ, normalized, stride, offset)
}

func (d *Driver) VertexAttribIPointer(index uint32, size int32, typ uint32, stride int32, offset uintptr) {
	gl.VertexAttribIPointerWithOffset(index, size, typ, stride, offset)
}

func (d *Driver) VertexAttribLPointer(index uint32, size int32, typ uint32, stride int32, offset uintptr) {
	gl.VertexAttribLPointer(index, size, typ, stride, gl.PtrOffset(int(offset)))
}

func (d *Driver) GenTexture() uint32 {
	var h uint32
	gl.GenTextures(1, &h)
	return h
}

func (d *Driver) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (d *Driver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, typ uint32, pixels unsafe.Pointer) {
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, typ, pixels)
}

func (d *Driver) TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, typ uint32, pixels unsafe.Pointer) {
	gl.TexImage3D(target, level, internalFormat, width, height, depth, 0, format, typ, pixels)
}

func (d *Driver) TexParameteri(target, pname uint32, param int32) { gl.TexParameteri(target, pname, param) }

func (d *Driver) TexParameterfv(target, pname uint32, params []float32) {
	gl.TexParameterfv(target, pname, &params[0])
}

func (d *Driver) GenerateMipmap(target uint32) { gl.GenerateMipmap(target) }

func (d *Driver) GenRenderbuffer() uint32 {
	var h uint32
	gl.GenRenderbuffers(1, &h)
	return h
}

func (d *Driver) DeleteRenderbuffer(rb uint32) { gl.DeleteRenderbuffers(1, &rb) }

func (d *Driver) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	gl.RenderbufferStorage(target, internalFormat, width, height)
}

func (d *Driver) GenFramebuffer() uint32 {
	var h uint32
	gl.GenFramebuffers(1, &h)
	return h
}

func (d *Driver) DeleteFramebuffer(fb uint32) { gl.DeleteFramebuffers(1, &fb) }

func (d *Driver) FramebufferTexture(target, attachment, texture uint32, level int32) {
	gl.FramebufferTexture(target, attachment, texture, level)
}

func (d *Driver) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, textarget, texture, level)
}

func (d *Driver) FramebufferRenderbuffer(target, attachment, rbTarget, rb uint32) {
	gl.FramebufferRenderbuffer(target, attachment, rbTarget, rb)
}

func (d *Driver) CheckFramebufferStatus(target uint32) uint32 { return gl.CheckFramebufferStatus(target) }

func (d *Driver) DrawBuffers(bufs []uint32) {
	if len(bufs) == 0 {
		return
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (d *Driver) NamedFramebufferDrawBuffer(fb, buf uint32) { gl.NamedFramebufferDrawBuffer(fb, buf) }
func (d *Driver) NamedFramebufferReadBuffer(fb, src uint32) { gl.NamedFramebufferReadBuffer(fb, src) }

func (d *Driver) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	gl.BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (d *Driver) CreateShader(typ uint32) uint32 { return gl.CreateShader(typ) }

func (d *Driver) ShaderSource(shader uint32, source string) {
	// the source has to be a null-terminated C string
	csources, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csources, nil)
}

func (d *Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (d *Driver) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (d *Driver) GetShaderInfoLog(shader uint32) string {
	n := d.GetShaderiv(shader, gl.INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(shader, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) DeleteShader(shader uint32)            { gl.DeleteShader(shader) }
func (d *Driver) CreateProgram() uint32                 { return gl.CreateProgram() }
func (d *Driver) AttachShader(program, shader uint32)   { gl.AttachShader(program, shader) }
func (d *Driver) DetachShader(program, shader uint32)   { gl.DetachShader(program, shader) }
func (d *Driver) LinkProgram(program uint32)            { gl.LinkProgram(program) }
func (d *Driver) ValidateProgram(program uint32)        { gl.ValidateProgram(program) }
func (d *Driver) DeleteProgram(program uint32)          { gl.DeleteProgram(program) }

func (d *Driver) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (d *Driver) GetProgramInfoLog(program uint32) string {
	n := d.GetProgramiv(program, gl.INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(program, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) GetProgramInterfaceiv(program, programInterface, pname uint32) int32 {
	var v int32
	gl.GetProgramInterfaceiv(program, programInterface, pname, &v)
	return v
}

func (d *Driver) GetProgramResourceiv(program, programInterface, index uint32, props []uint32, params []int32) {
	gl.GetProgramResourceiv(program, programInterface, index, int32(len(props)), &props[0], int32(len(params)), nil, &params[0])
}

func (d *Driver) GetProgramResourceName(program, programInterface, index uint32, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	name := make([]uint8, bufSize)
	gl.GetProgramResourceName(program, programInterface, index, bufSize, nil, &name[0])
	// drop the terminating null
	return strings.TrimRight(string(name), "\x00")
}

func (d *Driver) Uniformfv(location int32, components int, values []float32) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / components)
	switch components {
	case 1:
		gl.Uniform1fv(location, count, &values[0])
	case 2:
		gl.Uniform2fv(location, count, &values[0])
	case 3:
		gl.Uniform3fv(location, count, &values[0])
	case 4:
		gl.Uniform4fv(location, count, &values[0])
	}
}

func (d *Driver) Uniformiv(location int32, components int, values []int32) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / components)
	switch components {
	case 1:
		gl.Uniform1iv(location, count, &values[0])
	case 2:
		gl.Uniform2iv(location, count, &values[0])
	case 3:
		gl.Uniform3iv(location, count, &values[0])
	case 4:
		gl.Uniform4iv(location, count, &values[0])
	}
}

func (d *Driver) Uniformuiv(location int32, components int, values []uint32) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / components)
	switch components {
	case 1:
		gl.Uniform1uiv(location, count, &values[0])
	case 2:
		gl.Uniform2uiv(location, count, &values[0])
	case 3:
		gl.Uniform3uiv(location, count, &values[0])
	case 4:
		gl.Uniform4uiv(location, count, &values[0])
	}
}

func (d *Driver) Uniformdv(location int32, components int, values []float64) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / components)
	switch components {
	case 1:
		gl.Uniform1dv(location, count, &values[0])
	case 2:
		gl.Uniform2dv(location, count, &values[0])
	case 3:
		gl.Uniform3dv(location, count, &values[0])
	case 4:
		gl.Uniform4dv(location, count, &values[0])
	}
}

func (d *Driver) UniformMatrixfv(location int32, cols, rows int, values []float32) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / (cols * rows))
	v := &values[0]
	switch [2]int{cols, rows} {
	case [2]int{2, 2}:
		gl.UniformMatrix2fv(location, count, false, v)
	case [2]int{3, 3}:
		gl.UniformMatrix3fv(location, count, false, v)
	case [2]int{4, 4}:
		gl.UniformMatrix4fv(location, count, false, v)
	case [2]int{2, 3}:
		gl.UniformMatrix2x3fv(location, count, false, v)
	case [2]int{2, 4}:
		gl.UniformMatrix2x4fv(location, count, false, v)
	case [2]int{3, 2}:
		gl.UniformMatrix3x2fv(location, count, false, v)
	case [2]int{3, 4}:
		gl.UniformMatrix3x4fv(location, count, false, v)
	case [2]int{4, 2}:
		gl.UniformMatrix4x2fv(location, count, false, v)
	case [2]int{4, 3}:
		gl.UniformMatrix4x3fv(location, count, false, v)
	}
}

func (d *Driver) UniformMatrixdv(location int32, cols, rows int, values []float64) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / (cols * rows))
	v := &values[0]
	switch [2]int{cols, rows} {
	case [2]int{2, 2}:
		gl.UniformMatrix2dv(location, count, false, v)
	case [2]int{3, 3}:
		gl.UniformMatrix3dv(location, count, false, v)
	case [2]int{4, 4}:
		gl.UniformMatrix4dv(location, count, false, v)
	case [2]int{2, 3}:
		gl.UniformMatrix2x3dv(location, count, false, v)
	case [2]int{2, 4}:
		gl.UniformMatrix2x4dv(location, count, false, v)
	case [2]int{3, 2}:
		gl.UniformMatrix3x2dv(location, count, false, v)
	case [2]int{3, 4}:
		gl.UniformMatrix3x4dv(location, count, false, v)
	case [2]int{4, 2}:
		gl.UniformMatrix4x2dv(location, count, false, v)
	case [2]int{4, 3}:
		gl.UniformMatrix4x3dv(location, count, false, v)
	}
}
