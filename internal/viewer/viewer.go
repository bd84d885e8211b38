// Package viewer ties window, GL context, GUI and camera into a render loop
// driven by callbacks.
package viewer

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/camera"
	"github.com/braheezy/glviewer/internal/core"
	"github.com/braheezy/glviewer/internal/glfw"
	"github.com/braheezy/glviewer/internal/imgui"
	"github.com/braheezy/glviewer/internal/logger"
	"github.com/braheezy/glviewer/internal/opengl"
	"github.com/braheezy/glviewer/internal/opengl/gogl"
)

type (
	KeyFunc    func(w core.Window, key core.Key, pressed bool)
	MouseFunc  func(w core.Window, button core.MouseButton, pos mgl64.Vec2, pressed bool)
	ResizeFunc func(w core.Window, width, height int)
	FrameFunc  func(w core.Window, dt time.Duration)
)

// Viewer owns the window and everything bound to its GL context.
type Viewer struct {
	settings Settings
	bus      *core.Bus
	clock    *core.Frameclock

	window  *glfw.Window
	ctx     *opengl.Context
	gui     *imgui.Manager
	camera  *camera.Camera
	control camera.Control
	text    *TextRenderer

	libraries []*ShaderLibrary
	ids       []core.ListenerID

	onKey    KeyFunc
	onMouse  MouseFunc
	onResize ResizeFunc
	onUpdate FrameFunc
	onRender FrameFunc
	onGUI    FrameFunc
}

// New sets up logging, creates the window with its context and presents one
// black frame. It must be called from the main thread.
func New(s Settings) (*Viewer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	level, _ := logger.ParseLevel(s.LogLevel)
	if err := logger.Init(level); err != nil {
		return nil, err
	}

	v := &Viewer{
		settings: s,
		bus:      core.NewBus(),
		clock:    core.NewFrameclock(100),
	}
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	glfw.ScaleToMonitor(s.HiDPI)
	window, err := glfw.NewWindow(v.bus, s.Title, s.Width, s.Height, s.Debug)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	v.window = window
	window.SetVsync(s.Vsync)

	driver, err := gogl.Init()
	if err != nil {
		v.Destroy()
		return nil, errors.Wrap(err, "load OpenGL")
	}
	v.ctx = opengl.NewContext(driver, s.Debug)
	v.ctx.ClearColor(0, 0, 0, 1)
	v.ctx.Clear(opengl.ClearAll)
	window.Swap()

	if v.gui, err = imgui.New(v.bus, window, window.Mouse(), v.ctx); err != nil {
		v.Destroy()
		return nil, err
	}

	fbw, fbh := window.FramebufferSize()
	v.camera = camera.New()
	v.camera.SetSize(float32(fbw), float32(fbh))
	v.ctx.Viewport(0, 0, fbw, fbh)
	if v.control, err = camera.NewControl(s.Camera, v.camera, v.bus, window.Keyboard()); err != nil {
		v.Destroy()
		return nil, err
	}

	if s.TextOverlay {
		if v.text, err = NewTextRenderer(v.ctx, 18); err != nil {
			logger.Log.Warn("text overlay disabled", zap.Error(err))
		}
	}

	v.connect()
	return v, nil
}

func (v *Viewer) connect() {
	v.ids = append(v.ids,
		core.Connect(v.bus, v.framebufferResized),
		core.Connect(v.bus, v.keyChanged),
		core.Connect(v.bus, v.buttonChanged),
	)
}

func (v *Viewer) framebufferResized(msg core.FramebufferResize) {
	if msg.Width <= 0 || msg.Height <= 0 {
		return
	}
	v.ctx.Viewport(0, 0, msg.Width, msg.Height)
	v.camera.SetSize(float32(msg.Width), float32(msg.Height))
	if v.onResize != nil {
		v.onResize(v.windowOrNil(), msg.Width, msg.Height)
	}
}

func (v *Viewer) keyChanged(msg core.KeyEvent) {
	if v.gui != nil && v.gui.WantsKeyboard() {
		return
	}
	if v.onKey != nil {
		v.onKey(v.windowOrNil(), msg.Key, msg.Pressed)
	}
}

func (v *Viewer) buttonChanged(msg core.MouseButtonEvent) {
	if v.gui != nil && v.gui.WantsMouse() {
		return
	}
	if v.onMouse != nil {
		v.onMouse(v.windowOrNil(), msg.Button, msg.Position, msg.Pressed)
	}
}

// windowOrNil keeps a nil *glfw.Window from becoming a non-nil interface.
func (v *Viewer) windowOrNil() core.Window {
	if v.window == nil {
		return nil
	}
	return v.window
}

func (v *Viewer) Settings() Settings           { return v.settings }
func (v *Viewer) Bus() *core.Bus               { return v.bus }
func (v *Viewer) Frameclock() *core.Frameclock { return v.clock }
func (v *Viewer) Window() *glfw.Window         { return v.window }
func (v *Viewer) Context() *opengl.Context     { return v.ctx }
func (v *Viewer) GUI() *imgui.Manager          { return v.gui }
func (v *Viewer) Camera() *camera.Camera       { return v.camera }
func (v *Viewer) Control() camera.Control      { return v.control }

// Text is the overlay renderer, nil when the overlay is disabled.
func (v *Viewer) Text() *TextRenderer { return v.text }

func (v *Viewer) OnKey(fn KeyFunc)           { v.onKey = fn }
func (v *Viewer) OnMouseButton(fn MouseFunc) { v.onMouse = fn }
func (v *Viewer) OnResize(fn ResizeFunc)     { v.onResize = fn }
func (v *Viewer) OnUpdate(fn FrameFunc)      { v.onUpdate = fn }
func (v *Viewer) OnRender(fn FrameFunc)      { v.onRender = fn }
func (v *Viewer) OnGUI(fn FrameFunc)         { v.onGUI = fn }

// Shaders creates a shader library reading from embedded, or from the
// configured shader directory when there is one. Programs of a directory
// library are rebuilt when their files change.
func (v *Viewer) Shaders(embedded fs.FS) (*ShaderLibrary, error) {
	dir := v.settings.ShaderDir
	if dir == "" {
		lib := NewShaderLibrary(v.ctx, embedded)
		v.libraries = append(v.libraries, lib)
		return lib, nil
	}
	lib := NewShaderLibrary(v.ctx, os.DirFS(dir))
	if err := lib.Watch(dir); err != nil {
		return nil, err
	}
	v.libraries = append(v.libraries, lib)
	return lib, nil
}

// SetCameraControl replaces the camera control, e.g. with one of a different
// kind.
func (v *Viewer) SetCameraControl(kind string) error {
	control, err := camera.NewControl(kind, v.camera, v.bus, v.window.Keyboard())
	if err != nil {
		return err
	}
	if v.control != nil {
		v.control.Close()
	}
	v.control = control
	return nil
}

// Run renders frames until the window is closed.
func (v *Viewer) Run() {
	v.clock.Start()
	for !v.window.Closed() {
		v.frame(v.clock.Restart())
	}
}

func (v *Viewer) frame(dt time.Duration) {
	glfw.PollEvents()
	for _, lib := range v.libraries {
		lib.Reload()
	}

	v.control.Ignore(v.gui.WantsMouse())
	v.control.Update(dt)

	v.ctx.Clear(opengl.ClearAll)
	if v.onUpdate != nil {
		v.onUpdate(v.window, dt)
	}
	if v.onRender != nil {
		v.onRender(v.window, dt)
	}

	v.gui.NewFrame(dt)
	if v.onGUI != nil {
		v.onGUI(v.window, dt)
	}
	v.gui.Render()

	if v.text != nil {
		v.text.Draw(v.stats(), 8, 8, 1, mgl32.Vec3{1, 1, 1})
	}
	v.window.Swap()
}

func (v *Viewer) stats() string {
	lo, hi := v.clock.FpsRange()
	return fmt.Sprintf("%.1f fps [%.0f, %.0f]  %.2f ms", v.clock.Fps(), lo, hi,
		float64(v.clock.Avg().Microseconds())/1000)
}

// Destroy releases everything New created, in reverse order.
func (v *Viewer) Destroy() {
	for _, id := range v.ids {
		v.bus.Disconnect(id)
	}
	v.ids = nil
	for _, lib := range v.libraries {
		if err := lib.Close(); err != nil {
			logger.Log.Warn("closing shader library", zap.Error(err))
		}
	}
	v.libraries = nil
	if v.text != nil {
		v.text.Delete()
		v.text = nil
	}
	if v.control != nil {
		v.control.Close()
		v.control = nil
	}
	if v.gui != nil {
		v.gui.Destroy()
		v.gui = nil
	}
	if v.window != nil {
		v.window.Destroy()
		v.window = nil
		glfw.Terminate()
	}
	logger.Sync()
}

// StandardKeys closes the window on Escape and toggles fullscreen on F11.
func StandardKeys(w core.Window, key core.Key, pressed bool) {
	if !pressed {
		return
	}
	switch key {
	case core.KeyEscape:
		w.Close()
	case core.KeyF11:
		w.SetFullscreen(!w.Fullscreen())
	}
}
