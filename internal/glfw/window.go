package glfw

import (
	"image"
	"image/draw"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/core"
	"github.com/braheezy/glviewer/internal/logger"
)

// Window is a GLFW window with an OpenGL 4.6 core context. It implements
// core.Window.
type Window struct {
	handle *glfw.Window
	bus    *core.Bus

	keyboard *Keyboard
	mouse    *Mouse

	// windowed rect, restored when leaving fullscreen
	backupPos  [2]int
	backupSize [2]int
}

var _ core.Window = (*Window)(nil)

// NewWindow creates the window and makes its context current. debug requests an
// OpenGL debug context.
func NewWindow(bus *core.Bus, title string, width, height int, debug bool) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.False)
	glfw.WindowHint(glfw.OpenGLDebugContext, boolHint(debug))
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)

	logger.Log.Info("creating window",
		zap.String("title", title), zap.Int("width", width), zap.Int("height", height), zap.Bool("debug", debug))
	handle, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(describe(err), "couldn't create window")
	}
	handle.MakeContextCurrent()

	w := &Window{handle: handle, bus: bus}
	w.backupPos[0], w.backupPos[1] = handle.GetPos()
	w.backupSize[0], w.backupSize[1] = handle.GetSize()
	w.keyboard = newKeyboard(bus, handle)
	w.mouse = newMouse(bus, handle)

	handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		core.Broadcast(bus, core.WindowResize{Width: width, Height: height})
	})
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		core.Broadcast(bus, core.FramebufferResize{Width: width, Height: height})
	})
	handle.SetCloseCallback(func(*glfw.Window) {
		core.Broadcast(bus, core.WindowClosed{})
	})
	handle.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		core.Broadcast(bus, core.WindowFocus{Gained: focused})
	})
	handle.SetPosCallback(func(_ *glfw.Window, x, y int) {
		core.Broadcast(bus, core.WindowPosition{Position: mgl32.Vec2{float32(x), float32(y)}})
	})
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		core.Broadcast(bus, core.KeyEvent{Key: translateKey(key), Scancode: scancode, Pressed: action != glfw.Release})
	})
	handle.SetCharCallback(func(_ *glfw.Window, char rune) {
		core.Broadcast(bus, core.KeyChar{Code: char})
	})
	handle.SetMouseButtonCallback(func(h *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := h.GetCursorPos()
		core.Broadcast(bus, core.MouseButtonEvent{
			Button:   translateButton(button),
			Position: mgl64.Vec2{x, y},
			Pressed:  action != glfw.Release,
		})
	})
	handle.SetScrollCallback(func(h *glfw.Window, _, yoff float64) {
		x, y := h.GetCursorPos()
		core.Broadcast(bus, core.MouseScroll{YOffset: float32(yoff), Position: mgl64.Vec2{x, y}})
	})
	handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		core.Broadcast(bus, core.MousePosition{Position: mgl32.Vec2{float32(x), float32(y)}})
	})
	return w, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// Handle is the underlying GLFW window.
func (w *Window) Handle() *glfw.Window { return w.handle }
func (w *Window) Bus() *core.Bus       { return w.bus }
func (w *Window) Keyboard() *Keyboard  { return w.keyboard }
func (w *Window) Mouse() *Mouse        { return w.mouse }

func (w *Window) Size() (width, height int) { return w.handle.GetSize() }

func (w *Window) SetSize(width, height int) { w.handle.SetSize(width, height) }

func (w *Window) FramebufferSize() (width, height int) { return w.handle.GetFramebufferSize() }

func (w *Window) Position() (x, y int) { return w.handle.GetPos() }

func (w *Window) SetPosition(x, y int) { w.handle.SetPos(x, y) }

func (w *Window) SetTitle(title string) { w.handle.SetTitle(title) }

func (w *Window) SetVsync(enable bool) {
	if enable {
		glfw.SwapInterval(1)
		return
	}
	glfw.SwapInterval(0)
}

// Fullscreen reports whether the window covers a monitor.
func (w *Window) Fullscreen() bool { return w.handle.GetMonitor() != nil }

// SetFullscreen moves the window onto the primary monitor at its video mode, or
// back to the windowed rect it had before.
func (w *Window) SetFullscreen(enable bool) {
	if enable == w.Fullscreen() {
		return
	}
	if enable {
		w.backupPos[0], w.backupPos[1] = w.handle.GetPos()
		w.backupSize[0], w.backupSize[1] = w.handle.GetSize()
		monitor := glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		w.handle.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		return
	}
	w.handle.SetMonitor(nil, w.backupPos[0], w.backupPos[1], w.backupSize[0], w.backupSize[1], 0)
}

// ToggleFullscreen flips between fullscreen and windowed mode.
func (w *Window) ToggleFullscreen() { w.SetFullscreen(!w.Fullscreen()) }

func (w *Window) Close()   { w.handle.SetShouldClose(true) }
func (w *Window) Show()    { w.handle.Show() }
func (w *Window) Iconify() { w.handle.Iconify() }

func (w *Window) Focused() bool   { return w.handle.GetAttrib(glfw.Focused) != 0 }
func (w *Window) Iconified() bool { return w.handle.GetAttrib(glfw.Iconified) != 0 }
func (w *Window) Visible() bool   { return w.handle.GetAttrib(glfw.Visible) != 0 }
func (w *Window) Closed() bool    { return w.handle.ShouldClose() }

func (w *Window) SetIcon(img image.Image) {
	rgba, ok := img.(*image.NRGBA)
	if !ok {
		b := img.Bounds()
		rgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	w.handle.SetIcon([]image.Image{rgba})
}

func (w *Window) MakeCurrent() { w.handle.MakeContextCurrent() }

// Swap presents the back buffer.
func (w *Window) Swap() { w.handle.SwapBuffers() }

// Destroy releases the window and disconnects the input trackers.
func (w *Window) Destroy() {
	w.keyboard.close()
	w.mouse.close()
	w.handle.Destroy()
}
