// Package opengl wraps OpenGL objects (buffers, textures, framebuffers and shader
// programs) and keeps a cache of the pipeline state so redundant driver calls are
// skipped.
package opengl

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/logger"
)

// debug message ids the NVIDIA driver emits for every buffer/texture allocation
var ignoredDebugIDs = map[uint32]bool{131169: true, 131185: true, 131218: true, 131204: true}

type textureSlot struct {
	unit   uint32
	target uint32
}

type bufferBase struct {
	target BufferTarget
	index  uint32
}

// Context mirrors the OpenGL pipeline state. Every setter returns the previous value
// and only reaches the driver when the value changes.
type Context struct {
	gl Driver

	version         string
	shadingLanguage string
	vendor          string
	renderer        string

	options       map[Option]bool
	blendEquation BlendEquation
	blendFunc     [2]BlendFactor
	polygonFace   PolygonFace
	polygonMode   PolygonMode
	viewport      [4]int
	scissor       [4]int
	clearColor    [4]float32
	lineWidth     float32
	pointSize     float32
	depthMask     bool

	shader       uint32
	vertexArray  uint32
	renderbuffer uint32
	activeUnit   uint32
	buffers      map[BufferTarget]uint32
	bufferBases  map[bufferBase]uint32
	textures     map[textureSlot]uint32
	framebuffers map[FramebufferTarget]uint32
}

// NewContext queries the initial state from the driver. With debug set, driver debug
// messages are routed to the log.
func NewContext(d Driver, debug bool) *Context {
	c := &Context{
		gl:              d,
		version:         d.GetString(glVersion),
		shadingLanguage: d.GetString(glShadingLanguage),
		vendor:          d.GetString(glVendor),
		renderer:        d.GetString(glRenderer),
		options:         make(map[Option]bool, len(allOptions)),
		buffers:         make(map[BufferTarget]uint32),
		bufferBases:     make(map[bufferBase]uint32),
		textures:        make(map[textureSlot]uint32),
		framebuffers: map[FramebufferTarget]uint32{
			ReadFramebuffer: 0,
			DrawFramebuffer: 0,
		},
	}

	logger.Log.Info("OpenGL context",
		zap.String("version", c.version),
		zap.String("glsl", c.shadingLanguage),
		zap.String("vendor", c.vendor),
		zap.String("renderer", c.renderer))

	for _, opt := range allOptions {
		c.options[opt] = d.IsEnabled(uint32(opt))
	}

	c.blendEquation = BlendEquation(queryInt(d, glBlendEquationRGB))
	c.blendFunc = [2]BlendFactor{
		BlendFactor(queryInt(d, glBlendSrcAlpha)),
		BlendFactor(queryInt(d, glBlendDstAlpha)),
	}
	c.polygonFace = PolygonFace(queryInt(d, glCullFaceMode))
	mode := make([]int32, 2)
	d.GetIntegerv(glPolygonMode, mode)
	c.polygonMode = PolygonMode(mode[0])

	rect := make([]int32, 4)
	d.GetIntegerv(glViewport, rect)
	c.viewport = [4]int{int(rect[0]), int(rect[1]), int(rect[2]), int(rect[3])}
	d.GetIntegerv(glScissorBox, rect)
	c.scissor = [4]int{int(rect[0]), int(rect[1]), int(rect[2]), int(rect[3])}

	color := make([]float32, 4)
	d.GetFloatv(glColorClearValue, color)
	copy(c.clearColor[:], color)
	c.lineWidth = queryFloat(d, glLineWidth)
	c.pointSize = queryFloat(d, glPointSize)
	mask := make([]bool, 1)
	d.GetBooleanv(glDepthWritemask, mask)
	c.depthMask = mask[0]

	if debug {
		d.Enable(glDebugOutput)
		d.Enable(glDebugOutputSynchronous)
		d.DebugMessageCallback(debugMessage)
		d.DebugMessageControl(glDontCare, glDontCare, glDontCare, nil, true)
	}
	return c
}

func queryInt(d Driver, pname uint32) int32 {
	v := make([]int32, 1)
	d.GetIntegerv(pname, v)
	return v[0]
}

func queryFloat(d Driver, pname uint32) float32 {
	v := make([]float32, 1)
	d.GetFloatv(pname, v)
	return v[0]
}

// Driver exposes the underlying GL entry points for code that needs a call the
// wrapper does not cover.
func (c *Context) Driver() Driver { return c.gl }

func (c *Context) Version() string         { return c.version }
func (c *Context) ShadingLanguage() string { return c.shadingLanguage }
func (c *Context) Vendor() string          { return c.vendor }
func (c *Context) Renderer() string        { return c.renderer }

// Set enables or disables an option and returns its previous state.
func (c *Context) Set(opt Option, enable bool) bool {
	prev := c.options[opt]
	if prev != enable {
		if enable {
			c.gl.Enable(uint32(opt))
		} else {
			c.gl.Disable(uint32(opt))
		}
		c.options[opt] = enable
	}
	return prev
}

func (c *Context) Enable(opt Option) bool  { return c.Set(opt, true) }
func (c *Context) Disable(opt Option) bool { return c.Set(opt, false) }

// Enabled returns the cached state of opt.
func (c *Context) Enabled(opt Option) bool { return c.options[opt] }

func (c *Context) DepthMask(enable bool) bool {
	prev := c.depthMask
	if prev != enable {
		c.gl.DepthMask(enable)
		c.depthMask = enable
	}
	return prev
}

func (c *Context) DepthMaskEnabled() bool { return c.depthMask }

func (c *Context) BlendEquation(eq BlendEquation) BlendEquation {
	prev := c.blendEquation
	if prev != eq {
		c.gl.BlendEquation(uint32(eq))
		c.blendEquation = eq
	}
	return prev
}

func (c *Context) BlendFunc(src, dst BlendFactor) (BlendFactor, BlendFactor) {
	prev := c.blendFunc
	if prev != [2]BlendFactor{src, dst} {
		c.gl.BlendFunc(uint32(src), uint32(dst))
		c.blendFunc = [2]BlendFactor{src, dst}
	}
	return prev[0], prev[1]
}

// PolygonMode sets the rasterization mode for front and back faces.
func (c *Context) PolygonMode(mode PolygonMode) PolygonMode {
	prev := c.polygonMode
	if prev != mode {
		c.gl.PolygonMode(glFrontAndBack, uint32(mode))
		c.polygonMode = mode
	}
	return prev
}

// Cull selects the faces removed when CullFace is enabled.
func (c *Context) Cull(face PolygonFace) PolygonFace {
	prev := c.polygonFace
	if prev != face {
		c.gl.CullFace(uint32(face))
		c.polygonFace = face
	}
	return prev
}

func (c *Context) Viewport(x, y, width, height int) [4]int {
	return c.SetViewport([4]int{x, y, width, height})
}

func (c *Context) SetViewport(rect [4]int) [4]int {
	prev := c.viewport
	if prev != rect {
		c.gl.Viewport(int32(rect[0]), int32(rect[1]), int32(rect[2]), int32(rect[3]))
		c.viewport = rect
	}
	return prev
}

func (c *Context) CurrentViewport() [4]int { return c.viewport }

func (c *Context) Scissor(x, y, width, height int) [4]int {
	return c.SetScissor([4]int{x, y, width, height})
}

func (c *Context) SetScissor(rect [4]int) [4]int {
	prev := c.scissor
	if prev != rect {
		c.gl.Scissor(int32(rect[0]), int32(rect[1]), int32(rect[2]), int32(rect[3]))
		c.scissor = rect
	}
	return prev
}

func (c *Context) CurrentScissor() [4]int { return c.scissor }

func (c *Context) LineWidth(width float32) float32 {
	prev := c.lineWidth
	if prev != width {
		c.gl.LineWidth(width)
		c.lineWidth = width
	}
	return prev
}

func (c *Context) PointSize(size float32) float32 {
	prev := c.pointSize
	if prev != size {
		c.gl.PointSize(size)
		c.pointSize = size
	}
	return prev
}

// ClearColor always reaches the driver.
func (c *Context) ClearColor(r, g, b, a float32) {
	c.gl.ClearColor(r, g, b, a)
	c.clearColor = [4]float32{r, g, b, a}
}

func (c *Context) CurrentClearColor() [4]float32 { return c.clearColor }

func (c *Context) Clear(buffers ClearOptions) {
	if buffers == ClearNone {
		return
	}
	c.gl.Clear(uint32(buffers))
}

func (c *Context) BindVertexArray(handle uint32) {
	if c.vertexArray == handle {
		return
	}
	c.gl.BindVertexArray(handle)
	c.vertexArray = handle
	// the element array binding is part of the vertex array state
	delete(c.buffers, ElementArrayBuffer)
}

func (c *Context) BindBuffer(target BufferTarget, handle uint32) {
	if cur, ok := c.buffers[target]; ok && cur == handle {
		return
	}
	c.gl.BindBuffer(uint32(target), handle)
	c.buffers[target] = handle
}

// BindBufferBase binds handle to an indexed binding point. It also replaces the
// generic binding of target, as glBindBufferBase does.
func (c *Context) BindBufferBase(target BufferTarget, index, handle uint32) {
	key := bufferBase{target, index}
	if cur, ok := c.bufferBases[key]; ok && cur == handle {
		return
	}
	c.gl.BindBufferBase(uint32(target), index, handle)
	c.bufferBases[key] = handle
	c.buffers[target] = handle
}

// BindTexture binds handle to target on the given texture unit.
func (c *Context) BindTexture(target uint32, handle uint32, unit uint32) {
	// texture edits act on the active unit, so it follows every bind
	if c.activeUnit != unit {
		c.gl.ActiveTexture(glTexture0 + unit)
		c.activeUnit = unit
	}
	key := textureSlot{unit, target}
	if cur, ok := c.textures[key]; ok && cur == handle {
		return
	}
	c.gl.BindTexture(target, handle)
	c.textures[key] = handle
}

func (c *Context) BindRenderbuffer(handle uint32) {
	if c.renderbuffer == handle {
		return
	}
	c.gl.BindRenderbuffer(glRenderbuffer, handle)
	c.renderbuffer = handle
}

func (c *Context) BindFramebuffer(target FramebufferTarget, handle uint32) {
	switch target {
	case ReadWriteFramebuffer:
		if c.framebuffers[ReadFramebuffer] == handle && c.framebuffers[DrawFramebuffer] == handle {
			return
		}
		c.framebuffers[ReadFramebuffer] = handle
		c.framebuffers[DrawFramebuffer] = handle
	default:
		if c.framebuffers[target] == handle {
			return
		}
		c.framebuffers[target] = handle
	}
	c.gl.BindFramebuffer(uint32(target), handle)
}

// BoundFramebuffer returns the framebuffer bound for drawing or reading.
func (c *Context) BoundFramebuffer(target FramebufferTarget) uint32 {
	if target == ReadWriteFramebuffer {
		target = DrawFramebuffer
	}
	return c.framebuffers[target]
}

func (c *Context) BindShader(handle uint32) {
	if c.shader == handle {
		return
	}
	c.gl.UseProgram(handle)
	c.shader = handle
}

// forget* drop cached bindings of deleted objects; GL unbinds them and may hand the
// name out again.

func (c *Context) forgetBuffer(handle uint32) {
	for t, h := range c.buffers {
		if h == handle {
			c.buffers[t] = 0
		}
	}
	for k, h := range c.bufferBases {
		if h == handle {
			c.bufferBases[k] = 0
		}
	}
}

func (c *Context) forgetTexture(handle uint32) {
	for k, h := range c.textures {
		if h == handle {
			c.textures[k] = 0
		}
	}
}

func (c *Context) forgetVertexArray(handle uint32) {
	if c.vertexArray == handle {
		c.vertexArray = 0
		delete(c.buffers, ElementArrayBuffer)
	}
}

func (c *Context) forgetRenderbuffer(handle uint32) {
	if c.renderbuffer == handle {
		c.renderbuffer = 0
	}
}

func (c *Context) forgetFramebuffer(handle uint32) {
	for t, h := range c.framebuffers {
		if h == handle {
			c.framebuffers[t] = 0
		}
	}
}

func (c *Context) forgetShader(handle uint32) {
	if c.shader == handle {
		c.shader = 0
	}
}

// DrawElements draws count primitives from the bound index buffer, starting at the
// byte offset.
func (c *Context) DrawElements(mode Primitive, count int, typ Type, offset int) {
	if typ != UnsignedByte && typ != UnsignedShort && typ != UnsignedInt {
		logger.Log.Error("invalid index type for draw", zap.Uint32("type", uint32(typ)))
		return
	}
	size, err := mode.size()
	if err != nil {
		logger.Log.Error("draw elements", zap.Error(err))
		return
	}
	c.gl.DrawElements(uint32(mode), int32(count)*size, uint32(typ), uintptr(offset))
}

// DrawArrays draws count primitives starting at vertex first.
func (c *Context) DrawArrays(mode Primitive, count int, first int) {
	size, err := mode.size()
	if err != nil {
		logger.Log.Error("draw arrays", zap.Error(err))
		return
	}
	c.gl.DrawArrays(uint32(mode), int32(first), int32(count)*size)
}

func debugMessage(source, typ, id, severity uint32, message string) {
	if ignoredDebugIDs[id] {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Debug message (%d): %s\n", id, message)
	b.WriteString("\tSource: ")
	switch source {
	case glDebugSourceAPI:
		b.WriteString("API")
	case glDebugSourceWindowSystem:
		b.WriteString("Window System")
	case glDebugSourceShaderCompiler:
		b.WriteString("Shader Compiler")
	case glDebugSourceThirdParty:
		b.WriteString("Third Party")
	case glDebugSourceApplication:
		b.WriteString("Application")
	case glDebugSourceOther:
		b.WriteString("Other")
	}
	b.WriteString("\n\tType: ")
	switch typ {
	case glDebugTypeError:
		b.WriteString("Error")
	case glDebugTypeDeprecated:
		b.WriteString("Deprecated Behaviour")
	case glDebugTypeUndefined:
		b.WriteString("Undefined Behaviour")
	case glDebugTypePortability:
		b.WriteString("Portability")
	case glDebugTypePerformance:
		b.WriteString("Performance")
	case glDebugTypeMarker:
		b.WriteString("Marker")
	case glDebugTypePushGroup:
		b.WriteString("Push Group")
	case glDebugTypePopGroup:
		b.WriteString("Pop Group")
	case glDebugTypeOther:
		b.WriteString("Other")
	}
	b.WriteString("\n\tSeverity: ")
	switch severity {
	case glDebugSeverityNotification:
		b.WriteString("notification")
	case glDebugSeverityLow:
		b.WriteString("low")
	case glDebugSeverityMedium:
		b.WriteString("medium")
	case glDebugSeverityHigh:
		b.WriteString("high")
	}
	logger.Log.Warn(b.String())
}
