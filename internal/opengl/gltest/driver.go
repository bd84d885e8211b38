// Package gltest provides a recording OpenGL driver for tests that exercise the
// wrapper without a GPU.
package gltest

import (
	"fmt"
	"regexp"
	"strings"
	"unsafe"
)

// Call is one recorded driver call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Image is the last upload made to a texture.
type Image struct {
	Target                uint32
	Width, Height, Depth  int
	InternalFormat        int32
	Format, Type          uint32
	Pixels                []byte
	Params                map[uint32]int32
	MipmapsGenerated      int
	BorderColor           []float32
	ImagesPerTarget       map[uint32][2]int
}

type shader struct {
	typ      uint32
	source   string
	compiled bool
	log      string
}

type program struct {
	shaders  map[uint32]bool
	linked   bool
	uniforms []string
	log      string
}

// Driver records every state changing call and simulates object names, buffer
// contents, texture uploads and shader uniform reflection.
type Driver struct {
	Calls []Call

	// answers for GetString, GetIntegerv and GetFloatv
	Strings map[uint32]string
	Ints    map[uint32][]int32
	Floats  map[uint32][]float32

	// FailLink makes every LinkProgram fail.
	FailLink bool
	// FramebufferStatus is returned by CheckFramebufferStatus; zero means complete.
	FramebufferStatus uint32

	Buffers  map[uint32][]byte
	Textures map[uint32]*Image
	// Uniform values by location, as the last upload left them.
	Uniforms map[int32]any

	DebugCallback func(source, typ, id, severity uint32, message string)

	next       uint32
	enabled    map[uint32]bool
	depthMask  bool
	boundBuf   map[uint32]uint32
	activeUnit uint32
	boundTex   map[[2]uint32]uint32
	shaders    map[uint32]*shader
	programs   map[uint32]*program
	locations  map[string]int32
}

const (
	glTexture0        = 0x84C0
	glTextureCubeMap  = 0x8513
	glCubePositiveX   = 0x8515
	glCubeNegativeZ   = 0x851A
	glCompileStatus   = 0x8B81
	glLinkStatus      = 0x8B82
	glInfoLogLength   = 0x8B84
	glActiveResources = 0x92F5
	glNameLength      = 0x92F9
	glLocation        = 0x930E
	glFrameComplete   = 0x8CD5
	glTextureBorder   = 0x1004
)

func New() *Driver {
	return &Driver{
		Strings: map[uint32]string{
			0x1F02: "4.6.0 fake",
			0x8B8C: "4.60 fake",
			0x1F00: "gltest",
			0x1F01: "recorder",
		},
		Ints: map[uint32][]int32{
			0x8009: {0x8006},          // blend equation: add
			0x80CB: {1},               // blend src alpha: one
			0x80CA: {0},               // blend dst alpha: zero
			0x0B45: {0x0405},          // cull face: back
			0x0B40: {0x1B02, 0x1B02},  // polygon mode: fill
			0x0BA2: {0, 0, 1280, 720}, // viewport
			0x0C10: {0, 0, 1280, 720}, // scissor
		},
		Floats: map[uint32][]float32{
			0x0B21: {1},
			0x0B11: {1},
		},
		Buffers:   make(map[uint32][]byte),
		Textures:  make(map[uint32]*Image),
		Uniforms:  make(map[int32]any),
		enabled:   map[uint32]bool{0x0BD0: true}, // dither starts enabled
		depthMask: true,
		boundBuf:  make(map[uint32]uint32),
		boundTex:  make(map[[2]uint32]uint32),
		shaders:   make(map[uint32]*shader),
		programs:  make(map[uint32]*program),
		locations: make(map[string]int32),
	}
}

func (d *Driver) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

// Count returns how many calls to name were recorded.
func (d *Driver) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Find returns the recorded calls to name in order.
func (d *Driver) Find(name string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Last returns the most recent call to name.
func (d *Driver) Last(name string) (Call, bool) {
	for i := len(d.Calls) - 1; i >= 0; i-- {
		if d.Calls[i].Name == name {
			return d.Calls[i], true
		}
	}
	return Call{}, false
}

// Reset forgets the recorded calls but keeps the simulated objects.
func (d *Driver) Reset() { d.Calls = nil }

func (d *Driver) gen() uint32 {
	d.next++
	return d.next
}

// Location returns the uniform location the driver assigned to name, or -1.
func (d *Driver) Location(name string) int32 {
	if loc, ok := d.locations[name]; ok {
		return loc
	}
	return -1
}

// UniformValue returns the last value uploaded to the named uniform.
func (d *Driver) UniformValue(name string) any {
	return d.Uniforms[d.Location(name)]
}

// BoundTexture returns the texture bound to target on unit.
func (d *Driver) BoundTexture(unit, target uint32) uint32 {
	return d.boundTex[[2]uint32{unit, target}]
}

func (d *Driver) GetString(name uint32) string { return d.Strings[name] }

func (d *Driver) GetIntegerv(pname uint32, data []int32) { copy(data, d.Ints[pname]) }

func (d *Driver) GetFloatv(pname uint32, data []float32) { copy(data, d.Floats[pname]) }

func (d *Driver) GetBooleanv(pname uint32, data []bool) {
	if pname == 0x0B72 && len(data) > 0 {
		data[0] = d.depthMask
	}
}

func (d *Driver) IsEnabled(capability uint32) bool { return d.enabled[capability] }

func (d *Driver) Enable(capability uint32) {
	d.enabled[capability] = true
	d.record("Enable", capability)
}

func (d *Driver) Disable(capability uint32) {
	d.enabled[capability] = false
	d.record("Disable", capability)
}

// Enabled reports the simulated state of a capability.
func (d *Driver) Enabled(capability uint32) bool { return d.enabled[capability] }

func (d *Driver) DepthMask(flag bool) {
	d.depthMask = flag
	d.record("DepthMask", flag)
}

func (d *Driver) BlendEquation(mode uint32)         { d.record("BlendEquation", mode) }
func (d *Driver) BlendFunc(sfactor, dfactor uint32) { d.record("BlendFunc", sfactor, dfactor) }
func (d *Driver) PolygonMode(face, mode uint32)     { d.record("PolygonMode", face, mode) }
func (d *Driver) CullFace(mode uint32)              { d.record("CullFace", mode) }
func (d *Driver) Viewport(x, y, w, h int32)         { d.record("Viewport", x, y, w, h) }
func (d *Driver) Scissor(x, y, w, h int32)          { d.record("Scissor", x, y, w, h) }
func (d *Driver) LineWidth(width float32)           { d.record("LineWidth", width) }
func (d *Driver) PointSize(size float32)            { d.record("PointSize", size) }
func (d *Driver) ClearColor(r, g, b, a float32)     { d.record("ClearColor", r, g, b, a) }
func (d *Driver) Clear(mask uint32)                 { d.record("Clear", mask) }

func (d *Driver) DebugMessageCallback(fn func(source, typ, id, severity uint32, message string)) {
	d.DebugCallback = fn
	d.record("DebugMessageCallback")
}

func (d *Driver) DebugMessageControl(source, typ, severity uint32, ids []uint32, enabled bool) {
	d.record("DebugMessageControl", source, typ, severity, enabled)
}

func (d *Driver) BindVertexArray(array uint32) {
	d.record("BindVertexArray", array)
	delete(d.boundBuf, 0x8893)
}

func (d *Driver) BindBuffer(target, buffer uint32) {
	d.boundBuf[target] = buffer
	d.record("BindBuffer", target, buffer)
}

func (d *Driver) BindBufferBase(target, index, buffer uint32) {
	d.boundBuf[target] = buffer
	d.record("BindBufferBase", target, index, buffer)
}

func (d *Driver) ActiveTexture(texture uint32) {
	d.activeUnit = texture - glTexture0
	d.record("ActiveTexture", texture)
}

func (d *Driver) BindTexture(target, texture uint32) {
	d.boundTex[[2]uint32{d.activeUnit, target}] = texture
	d.record("BindTexture", target, texture)
}

func (d *Driver) BindRenderbuffer(target, renderbuffer uint32) {
	d.record("BindRenderbuffer", target, renderbuffer)
}

func (d *Driver) BindFramebuffer(target, framebuffer uint32) {
	d.record("BindFramebuffer", target, framebuffer)
}

func (d *Driver) UseProgram(program uint32) { d.record("UseProgram", program) }

func (d *Driver) DrawArrays(mode uint32, first, count int32) {
	d.record("DrawArrays", mode, first, count)
}

func (d *Driver) DrawElements(mode uint32, count int32, typ uint32, offset uintptr) {
	d.record("DrawElements", mode, count, typ, offset)
}

func (d *Driver) GenBuffer() uint32 {
	h := d.gen()
	d.record("GenBuffer", h)
	return h
}

func (d *Driver) DeleteBuffer(buffer uint32) {
	delete(d.Buffers, buffer)
	d.record("DeleteBuffer", buffer)
}

func (d *Driver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	h := d.boundBuf[target]
	buf := make([]byte, size)
	if data != nil && size > 0 {
		copy(buf, unsafe.Slice((*byte)(data), size))
	}
	d.Buffers[h] = buf
	d.record("BufferData", target, size, usage)
}

func (d *Driver) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	h := d.boundBuf[target]
	buf := d.Buffers[h]
	if offset+size <= len(buf) && data != nil {
		copy(buf[offset:], unsafe.Slice((*byte)(data), size))
	}
	d.record("BufferSubData", target, offset, size)
}

func (d *Driver) GenVertexArray() uint32 {
	h := d.gen()
	d.record("GenVertexArray", h)
	return h
}

func (d *Driver) DeleteVertexArray(array uint32) { d.record("DeleteVertexArray", array) }

func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
}

func (d *Driver) DisableVertexAttribArray(index uint32) {
	d.record("DisableVertexAttribArray", index)
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr) {
	d.record("VertexAttribPointer", index, size, typ, normalized, stride, offset)
}

func (d *Driver) VertexAttribIPointer(index uint32, size int32, typ uint32, stride int32, offset uintptr) {
	d.record("VertexAttribIPointer", index, size, typ, stride, offset)
}

func (d *Driver) VertexAttribLPointer(index uint32, size int32, typ uint32, stride int32, offset uintptr) {
	d.record("VertexAttribLPointer", index, size, typ, stride, offset)
}

func (d *Driver) GenTexture() uint32 {
	h := d.gen()
	d.Textures[h] = &Image{Params: make(map[uint32]int32), ImagesPerTarget: make(map[uint32][2]int)}
	d.record("GenTexture", h)
	return h
}

func (d *Driver) DeleteTexture(texture uint32) {
	delete(d.Textures, texture)
	d.record("DeleteTexture", texture)
}

// bindTarget maps cube faces to the cube map binding.
func bindTarget(target uint32) uint32 {
	if target >= glCubePositiveX && target <= glCubeNegativeZ {
		return glTextureCubeMap
	}
	return target
}

func (d *Driver) bound(target uint32) *Image {
	h := d.boundTex[[2]uint32{d.activeUnit, bindTarget(target)}]
	img, ok := d.Textures[h]
	if !ok {
		img = &Image{Params: make(map[uint32]int32), ImagesPerTarget: make(map[uint32][2]int)}
	}
	return img
}

func pixelSize(format, typ uint32) int {
	channels := 4
	switch format {
	case 0x1903, 0x1902: // red, depth
		channels = 1
	case 0x1907, 0x8D98: // rgb
		channels = 3
	case 0x84F9: // depth stencil
		channels = 1
	}
	switch typ {
	case 0x1400, 0x1401:
		return channels
	case 0x1402, 0x1403:
		return channels * 2
	}
	return channels * 4
}

func (d *Driver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, typ uint32, pixels unsafe.Pointer) {
	d.texImage(target, level, internalFormat, width, height, 1, format, typ, pixels)
	d.record("TexImage2D", target, level, internalFormat, width, height, format, typ, pixels != nil)
}

func (d *Driver) TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, typ uint32, pixels unsafe.Pointer) {
	d.texImage(target, level, internalFormat, width, height, depth, format, typ, pixels)
	d.record("TexImage3D", target, level, internalFormat, width, height, depth, format, typ, pixels != nil)
}

func (d *Driver) texImage(target uint32, level, internalFormat, width, height, depth int32, format, typ uint32, pixels unsafe.Pointer) {
	img := d.bound(target)
	img.Target = bindTarget(target)
	img.Width, img.Height, img.Depth = int(width), int(height), int(depth)
	img.InternalFormat = internalFormat
	img.Format, img.Type = format, typ
	img.ImagesPerTarget[target] = [2]int{int(width), int(height)}
	img.Pixels = nil
	if pixels != nil {
		n := int(width) * int(height) * int(depth) * pixelSize(format, typ)
		img.Pixels = append([]byte(nil), unsafe.Slice((*byte)(pixels), n)...)
	}
}

func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	d.bound(target).Params[pname] = param
	d.record("TexParameteri", target, pname, param)
}

func (d *Driver) TexParameterfv(target, pname uint32, params []float32) {
	if pname == glTextureBorder {
		d.bound(target).BorderColor = append([]float32(nil), params...)
	}
	d.record("TexParameterfv", target, pname, params)
}

func (d *Driver) GenerateMipmap(target uint32) {
	d.bound(target).MipmapsGenerated++
	d.record("GenerateMipmap", target)
}

func (d *Driver) GenRenderbuffer() uint32 {
	h := d.gen()
	d.record("GenRenderbuffer", h)
	return h
}

func (d *Driver) DeleteRenderbuffer(renderbuffer uint32) {
	d.record("DeleteRenderbuffer", renderbuffer)
}

func (d *Driver) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	d.record("RenderbufferStorage", target, internalFormat, width, height)
}

func (d *Driver) GenFramebuffer() uint32 {
	h := d.gen()
	d.record("GenFramebuffer", h)
	return h
}

func (d *Driver) DeleteFramebuffer(framebuffer uint32) { d.record("DeleteFramebuffer", framebuffer) }

func (d *Driver) FramebufferTexture(target, attachment, texture uint32, level int32) {
	d.record("FramebufferTexture", target, attachment, texture, level)
}

func (d *Driver) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	d.record("FramebufferTexture2D", target, attachment, textarget, texture, level)
}

func (d *Driver) FramebufferRenderbuffer(target, attachment, renderbuffertarget, renderbuffer uint32) {
	d.record("FramebufferRenderbuffer", target, attachment, renderbuffertarget, renderbuffer)
}

func (d *Driver) CheckFramebufferStatus(target uint32) uint32 {
	d.record("CheckFramebufferStatus", target)
	if d.FramebufferStatus == 0 {
		return glFrameComplete
	}
	return d.FramebufferStatus
}

func (d *Driver) DrawBuffers(bufs []uint32) {
	d.record("DrawBuffers", append([]uint32(nil), bufs...))
}

func (d *Driver) NamedFramebufferDrawBuffer(framebuffer, buf uint32) {
	d.record("NamedFramebufferDrawBuffer", framebuffer, buf)
}

func (d *Driver) NamedFramebufferReadBuffer(framebuffer, src uint32) {
	d.record("NamedFramebufferReadBuffer", framebuffer, src)
}

func (d *Driver) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	d.record("BlitFramebuffer", srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (d *Driver) CreateShader(typ uint32) uint32 {
	h := d.gen()
	d.shaders[h] = &shader{typ: typ}
	d.record("CreateShader", typ, h)
	return h
}

func (d *Driver) ShaderSource(sh uint32, source string) {
	if s, ok := d.shaders[sh]; ok {
		s.source = source
	}
	d.record("ShaderSource", sh)
}

// CompileShader fails for sources containing an #error directive.
func (d *Driver) CompileShader(sh uint32) {
	s, ok := d.shaders[sh]
	if ok {
		s.compiled = !strings.Contains(s.source, "#error")
		if !s.compiled {
			s.log = "0:1(1): error: #error directive"
		}
	}
	d.record("CompileShader", sh)
}

func (d *Driver) GetShaderiv(sh, pname uint32) int32 {
	s, ok := d.shaders[sh]
	if !ok {
		return 0
	}
	switch pname {
	case glCompileStatus:
		if s.compiled {
			return 1
		}
		return 0
	case glInfoLogLength:
		return int32(len(s.log))
	}
	return 0
}

func (d *Driver) GetShaderInfoLog(sh uint32) string {
	if s, ok := d.shaders[sh]; ok {
		return s.log
	}
	return ""
}

func (d *Driver) DeleteShader(sh uint32) {
	delete(d.shaders, sh)
	d.record("DeleteShader", sh)
}

func (d *Driver) CreateProgram() uint32 {
	h := d.gen()
	d.programs[h] = &program{shaders: make(map[uint32]bool)}
	d.record("CreateProgram", h)
	return h
}

func (d *Driver) AttachShader(prog, sh uint32) {
	if p, ok := d.programs[prog]; ok {
		p.shaders[sh] = true
	}
	d.record("AttachShader", prog, sh)
}

func (d *Driver) DetachShader(prog, sh uint32) {
	if p, ok := d.programs[prog]; ok {
		delete(p.shaders, sh)
	}
	d.record("DetachShader", prog, sh)
}

var uniformDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+\w+\s+(\w+)\s*(\[\s*\d+\s*\])?\s*;`)

// LinkProgram succeeds when every attached stage compiled. The active uniforms are
// the plain `uniform type name;` declarations of the attached sources; arrays are
// reported as name[0] like real drivers do.
func (d *Driver) LinkProgram(prog uint32) {
	d.record("LinkProgram", prog)
	p, ok := d.programs[prog]
	if !ok {
		return
	}
	p.linked = !d.FailLink
	p.uniforms = nil
	seen := map[string]bool{}
	for sh := range p.shaders {
		s := d.shaders[sh]
		if s == nil || !s.compiled {
			p.linked = false
			continue
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
			name := m[1]
			if m[2] != "" {
				name += "[0]"
			}
			if !seen[name] {
				seen[name] = true
				p.uniforms = append(p.uniforms, name)
			}
		}
	}
	if !p.linked {
		p.log = "error: linking failed"
		return
	}
	for _, name := range p.uniforms {
		if _, ok := d.locations[name]; !ok {
			d.locations[name] = int32(len(d.locations))
		}
	}
}

func (d *Driver) ValidateProgram(prog uint32) { d.record("ValidateProgram", prog) }

func (d *Driver) GetProgramiv(prog, pname uint32) int32 {
	p, ok := d.programs[prog]
	if !ok {
		return 0
	}
	switch pname {
	case glLinkStatus:
		if p.linked {
			return 1
		}
		return 0
	case glInfoLogLength:
		return int32(len(p.log))
	}
	return 0
}

func (d *Driver) GetProgramInfoLog(prog uint32) string {
	if p, ok := d.programs[prog]; ok {
		return p.log
	}
	return ""
}

func (d *Driver) DeleteProgram(prog uint32) {
	delete(d.programs, prog)
	d.record("DeleteProgram", prog)
}

func (d *Driver) GetProgramInterfaceiv(prog, programInterface, pname uint32) int32 {
	if p, ok := d.programs[prog]; ok && pname == glActiveResources {
		return int32(len(p.uniforms))
	}
	return 0
}

func (d *Driver) GetProgramResourceiv(prog, programInterface, index uint32, props []uint32, params []int32) {
	p, ok := d.programs[prog]
	if !ok || int(index) >= len(p.uniforms) {
		return
	}
	name := p.uniforms[index]
	for i, prop := range props {
		switch prop {
		case glNameLength:
			params[i] = int32(len(name) + 1)
		case glLocation:
			params[i] = d.locations[name]
		}
	}
}

func (d *Driver) GetProgramResourceName(prog, programInterface, index uint32, bufSize int32) string {
	p, ok := d.programs[prog]
	if !ok || int(index) >= len(p.uniforms) {
		return ""
	}
	return p.uniforms[index]
}

func (d *Driver) Uniformfv(location int32, components int, values []float32) {
	d.Uniforms[location] = append([]float32(nil), values...)
	d.record("Uniformfv", location, components)
}

func (d *Driver) Uniformiv(location int32, components int, values []int32) {
	d.Uniforms[location] = append([]int32(nil), values...)
	d.record("Uniformiv", location, components)
}

func (d *Driver) Uniformuiv(location int32, components int, values []uint32) {
	d.Uniforms[location] = append([]uint32(nil), values...)
	d.record("Uniformuiv", location, components)
}

func (d *Driver) Uniformdv(location int32, components int, values []float64) {
	d.Uniforms[location] = append([]float64(nil), values...)
	d.record("Uniformdv", location, components)
}

func (d *Driver) UniformMatrixfv(location int32, cols, rows int, values []float32) {
	d.Uniforms[location] = append([]float32(nil), values...)
	d.record("UniformMatrixfv", location, cols, rows)
}

func (d *Driver) UniformMatrixdv(location int32, cols, rows int, values []float64) {
	d.Uniforms[location] = append([]float64(nil), values...)
	d.record("UniformMatrixdv", location, cols, rows)
}
