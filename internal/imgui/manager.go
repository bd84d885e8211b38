// Package imgui renders Dear ImGui through the viewer's OpenGL layer and feeds it
// input from the message bus.
package imgui

import (
	"time"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/core"
	"github.com/braheezy/glviewer/internal/logger"
	"github.com/braheezy/glviewer/internal/opengl"
)

const vertexShader = `#version 330 core
uniform mat4 proj;

layout(location = 0) in vec2 position;
layout(location = 1) in vec2 uv;
layout(location = 2) in vec4 color;

out vec2 fragUV;
out vec4 fragColor;

void main()
{
    fragUV = uv;
    fragColor = color;
    gl_Position = proj * vec4(position.xy, 0, 1);
}
`

const fragmentShader = `#version 330 core
uniform sampler2D fontTexture;

in vec2 fragUV;
in vec4 fragColor;

out vec4 outColor;

void main()
{
    outColor = fragColor * texture(fontTexture, fragUV.st);
}
`

// vertex mirrors ImDrawVert.
type vertex struct {
	Position [2]float32
	UV       [2]float32
	Color    [4]uint8 `gl:"normalized"`
}

// index mirrors ImDrawIdx.
type index = uint16

// FontSize is the pixel size of the default font.
const FontSize = 26

// Manager owns the ImGui context and draws its output.
type Manager struct {
	bus    *core.Bus
	window core.Window
	mouse  core.Mouse
	ctx    *opengl.Context

	imgui *imgui.Context
	io    imgui.IO
	ids   []core.ListenerID

	shader   *opengl.ShaderProgram
	array    *opengl.VertexArray
	vertices *opengl.VertexBuffer[vertex]
	indices  *opengl.IndexBuffer[index]
	font     *opengl.Texture
	textures map[imgui.TextureID]*opengl.Texture

	// buttons pressed since the last frame, so short clicks are not lost
	clicked [3]bool
}

var imguiKeys = map[int]core.Key{
	imgui.KeyTab:        core.KeyTab,
	imgui.KeyLeftArrow:  core.KeyLeft,
	imgui.KeyRightArrow: core.KeyRight,
	imgui.KeyUpArrow:    core.KeyUp,
	imgui.KeyDownArrow:  core.KeyDown,
	imgui.KeyPageUp:     core.KeyPageUp,
	imgui.KeyPageDown:   core.KeyPageDown,
	imgui.KeyHome:       core.KeyHome,
	imgui.KeyEnd:        core.KeyEnd,
	imgui.KeyInsert:     core.KeyInsert,
	imgui.KeyDelete:     core.KeyDelete,
	imgui.KeyBackspace:  core.KeyBackspace,
	imgui.KeySpace:      core.KeySpace,
	imgui.KeyEnter:      core.KeyEnter,
	imgui.KeyEscape:     core.KeyEscape,
	imgui.KeyA:          core.KeyA,
	imgui.KeyC:          core.KeyC,
	imgui.KeyV:          core.KeyV,
	imgui.KeyX:          core.KeyX,
	imgui.KeyY:          core.KeyY,
	imgui.KeyZ:          core.KeyZ,
}

// New creates the ImGui context, uploads the font atlas and builds the GUI
// shader and buffers.
func New(bus *core.Bus, window core.Window, mouse core.Mouse, ctx *opengl.Context) (*Manager, error) {
	if size, _, _, _ := imgui.VertexBufferLayout(); size != int(unsafe.Sizeof(vertex{})) {
		return nil, errors.Errorf("unexpected imgui vertex size %d", size)
	}
	if size := imgui.IndexBufferLayout(); size != int(unsafe.Sizeof(index(0))) {
		return nil, errors.Errorf("unexpected imgui index size %d", size)
	}

	m := &Manager{
		bus:      bus,
		window:   window,
		mouse:    mouse,
		ctx:      ctx,
		imgui:    imgui.CreateContext(nil),
		textures: make(map[imgui.TextureID]*opengl.Texture),
	}
	m.io = imgui.CurrentIO()
	m.io.SetIniFilename("")
	imgui.StyleColorsDark()
	for ik, key := range imguiKeys {
		m.io.KeyMap(ik, int(key))
	}

	m.shader = ctx.NewShader()
	if err := m.shader.Attach(vertexShader, opengl.VertexShader); err != nil {
		m.Destroy()
		return nil, errors.Wrap(err, "gui vertex shader")
	}
	if err := m.shader.Attach(fragmentShader, opengl.FragmentShader); err != nil {
		m.Destroy()
		return nil, errors.Wrap(err, "gui fragment shader")
	}
	if err := m.shader.Link(); err != nil {
		m.Destroy()
		return nil, errors.Wrap(err, "gui shader")
	}

	m.array = ctx.NewVertexArray()
	m.vertices = opengl.NewVertexBuffer[vertex](ctx, nil, opengl.StreamDraw)
	m.indices = opengl.NewIndexBuffer[index](ctx, nil, opengl.StreamDraw)
	m.array.AttachVertexBuffer(m.vertices)
	m.array.AttachIndexBuffer(m.indices)
	m.array.Unbind()

	m.uploadFont()

	m.ids = []core.ListenerID{
		core.Connect(bus, m.onKey),
		core.Connect(bus, m.onChar),
		core.Connect(bus, m.onButton),
		core.Connect(bus, m.onScroll),
	}
	return m, nil
}

func (m *Manager) uploadFont() {
	cfg := imgui.NewFontConfig()
	defer cfg.Delete()
	cfg.SetSize(FontSize)
	cfg.SetOversampleH(2)
	cfg.SetOversampleV(2)
	cfg.SetPixelSnapH(true)
	fonts := m.io.Fonts()
	fonts.AddFontDefaultV(cfg)

	image := fonts.TextureDataRGBA32()
	pixels := unsafe.Slice((*uint8)(image.Pixels), image.Width*image.Height*4)
	m.font = m.ctx.NewTextureData(image.Width, image.Height, pixels)
	m.font.Smooth(true)
	fonts.SetTextureID(m.TextureID(m.font))
}

// TextureID registers tex for use in imgui.Image calls.
func (m *Manager) TextureID(tex *opengl.Texture) imgui.TextureID {
	id := imgui.TextureID(tex.Handle())
	m.textures[id] = tex
	return id
}

// Image shows tex at the given size. OpenGL textures start at the bottom row
// so the v coordinate is flipped.
func (m *Manager) Image(tex *opengl.Texture, width, height float32) {
	imgui.ImageV(m.TextureID(tex), imgui.Vec2{X: width, Y: height},
		imgui.Vec2{X: 0, Y: 1}, imgui.Vec2{X: 1, Y: 0},
		imgui.Vec4{X: 1, Y: 1, Z: 1, W: 1}, imgui.Vec4{})
}

// WantsMouse reports whether the GUI currently uses the mouse.
func (m *Manager) WantsMouse() bool { return m.io.WantCaptureMouse() }

// WantsKeyboard reports whether the GUI currently uses the keyboard.
func (m *Manager) WantsKeyboard() bool { return m.io.WantCaptureKeyboard() }

func (m *Manager) onKey(msg core.KeyEvent) {
	if msg.Pressed {
		m.io.KeyPress(int(msg.Key))
	} else {
		m.io.KeyRelease(int(msg.Key))
	}
	m.io.KeyCtrl(int(core.KeyLeftControl), int(core.KeyRightControl))
	m.io.KeyShift(int(core.KeyLeftShift), int(core.KeyRightShift))
	m.io.KeyAlt(int(core.KeyLeftAlt), int(core.KeyRightAlt))
	m.io.KeySuper(int(core.KeyLeftSuper), int(core.KeyRightSuper))
}

func (m *Manager) onChar(msg core.KeyChar) {
	m.io.AddInputCharacters(string(msg.Code))
}

func (m *Manager) onButton(msg core.MouseButtonEvent) {
	if msg.Pressed && msg.Button >= core.MouseLeft && msg.Button <= core.MouseMiddle {
		m.clicked[msg.Button] = true
	}
}

func (m *Manager) onScroll(msg core.MouseScroll) {
	m.io.AddMouseWheelDelta(0, msg.YOffset)
}

// NewFrame starts a GUI frame. Widgets may be built until Render.
func (m *Manager) NewFrame(dt time.Duration) {
	w, h := m.window.Size()
	m.io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})
	if secs := float32(dt.Seconds()); secs > 0 {
		m.io.SetDeltaTime(secs)
	}

	for i, b := range []core.MouseButton{core.MouseLeft, core.MouseRight, core.MouseMiddle} {
		m.io.SetMouseButtonDown(i, m.clicked[i] || m.mouse.Pressed(b))
		m.clicked[i] = false
	}
	if m.window.Focused() {
		p := m.mouse.Position()
		m.io.SetMousePosition(imgui.Vec2{X: p.X(), Y: p.Y()})
	}
	imgui.NewFrame()
}

// Render ends the frame and draws it. The GL state the pass changes is restored
// afterwards.
func (m *Manager) Render() {
	imgui.Render()
	m.draw(imgui.RenderedDrawData())
}

func (m *Manager) draw(data imgui.DrawData) {
	w, h := m.window.Size()
	fbw, fbh := m.window.FramebufferSize()
	if w <= 0 || h <= 0 || fbw <= 0 || fbh <= 0 || !data.Valid() {
		return
	}
	data.ScaleClipRects(imgui.Vec2{X: float32(fbw) / float32(w), Y: float32(fbh) / float32(h)})

	ctx := m.ctx
	blend := ctx.Enable(opengl.Blend)
	scissor := ctx.Enable(opengl.ScissorTest)
	cull := ctx.Disable(opengl.CullFace)
	depth := ctx.Disable(opengl.DepthTest)
	stencil := ctx.Disable(opengl.StencilTest)
	equation := ctx.BlendEquation(opengl.BlendAdd)
	src, dst := ctx.BlendFunc(opengl.FactorSrcAlpha, opengl.FactorOneMinusSrcAlpha)
	mode := ctx.PolygonMode(opengl.ModeFill)
	viewport := ctx.Viewport(0, 0, fbw, fbh)
	rect := ctx.CurrentScissor()

	m.shader.Bind()
	m.shader.SetInt("fontTexture", 0)
	m.shader.SetMat4("proj", mgl32.Ortho2D(0, float32(w), float32(h), 0))

	// the element buffer upload must land in our array
	m.array.Bind()
	for _, list := range data.CommandLists() {
		vptr, vsize := list.VertexBuffer()
		iptr, isize := list.IndexBuffer()
		m.vertices.Data(unsafe.Slice((*vertex)(vptr), vsize/int(unsafe.Sizeof(vertex{}))))
		m.indices.Data(unsafe.Slice((*index)(iptr), isize/int(unsafe.Sizeof(index(0)))))
		m.array.UpdateVertexBuffer(m.vertices)
		m.array.UpdateIndexBuffer(m.indices)

		offset := 0
		for _, cmd := range list.Commands() {
			count := cmd.ElementCount()
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				offset += count
				continue
			}
			clip := cmd.ClipRect()
			if clip.X < float32(fbw) && clip.Y < float32(fbh) && clip.Z >= 0 && clip.W >= 0 {
				ctx.Scissor(int(clip.X), fbh-int(clip.W), int(clip.Z-clip.X), int(clip.W-clip.Y))
				m.texture(cmd.TextureID()).Bind(0)
				m.array.DrawRange(offset, count, opengl.Triangles)
			}
			offset += count
		}
	}

	m.array.Unbind()
	m.font.Unbind(0)

	ctx.Set(opengl.Blend, blend)
	ctx.Set(opengl.ScissorTest, scissor)
	ctx.Set(opengl.CullFace, cull)
	ctx.Set(opengl.DepthTest, depth)
	ctx.Set(opengl.StencilTest, stencil)
	ctx.BlendEquation(equation)
	ctx.BlendFunc(src, dst)
	ctx.PolygonMode(mode)
	ctx.SetViewport(viewport)
	ctx.SetScissor(rect)
}

func (m *Manager) texture(id imgui.TextureID) *opengl.Texture {
	if tex, ok := m.textures[id]; ok {
		return tex
	}
	logger.Log.Warn("unknown gui texture", zap.Uint64("id", uint64(id)))
	return m.font
}

// Destroy disconnects from the bus and releases the GL objects and the ImGui
// context.
func (m *Manager) Destroy() {
	for _, id := range m.ids {
		m.bus.Disconnect(id)
	}
	m.ids = nil
	if m.array != nil {
		m.array.Delete()
		m.vertices.Delete()
		m.indices.Delete()
	}
	if m.font != nil {
		m.font.Delete()
	}
	if m.shader != nil {
		m.shader.Delete()
	}
	if m.imgui != nil {
		m.imgui.Destroy()
		m.imgui = nil
	}
}
