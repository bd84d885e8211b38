package viewer

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/braheezy/glviewer/internal/camera"
	"github.com/braheezy/glviewer/internal/core"
	"github.com/braheezy/glviewer/internal/logger"
	"github.com/braheezy/glviewer/internal/opengl"
	"github.com/braheezy/glviewer/internal/opengl/gltest"
)

func newTestContext(t *testing.T) (*opengl.Context, *gltest.Driver) {
	t.Helper()
	d := gltest.New()
	ctx := opengl.NewContext(d, false)
	d.Reset()
	return ctx, d
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	prev := logger.Log
	logger.Use(zap.New(core))
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type fakeWindow struct {
	closed, fullscreen bool
}

func (w *fakeWindow) Size() (int, int)            { return 640, 480 }
func (w *fakeWindow) FramebufferSize() (int, int) { return 640, 480 }
func (w *fakeWindow) SetVsync(bool)               {}
func (w *fakeWindow) Fullscreen() bool            { return w.fullscreen }
func (w *fakeWindow) SetFullscreen(b bool)        { w.fullscreen = b }
func (w *fakeWindow) Close()                      { w.closed = true }
func (w *fakeWindow) Show()                       {}
func (w *fakeWindow) Iconify()                    {}
func (w *fakeWindow) Focused() bool               { return true }
func (w *fakeWindow) Iconified() bool             { return false }
func (w *fakeWindow) Visible() bool               { return true }
func (w *fakeWindow) Closed() bool                { return w.closed }
func (w *fakeWindow) SetIcon(image.Image)         {}

func TestStandardKeys(t *testing.T) {
	w := &fakeWindow{}

	StandardKeys(w, core.KeyF11, true)
	assert.True(t, w.fullscreen)
	StandardKeys(w, core.KeyF11, false)
	assert.True(t, w.fullscreen)
	StandardKeys(w, core.KeyF11, true)
	assert.False(t, w.fullscreen)

	StandardKeys(w, core.KeyA, true)
	assert.False(t, w.closed)
	StandardKeys(w, core.KeyEscape, true)
	assert.True(t, w.closed)
}

func TestFramebufferResizeUpdatesViewportAndCamera(t *testing.T) {
	ctx, _ := newTestContext(t)
	v := &Viewer{bus: core.NewBus(), ctx: ctx, camera: camera.New()}
	v.connect()

	var got [2]int
	v.OnResize(func(w core.Window, width, height int) {
		assert.Nil(t, w)
		got = [2]int{width, height}
	})
	core.Broadcast(v.bus, core.FramebufferResize{Width: 800, Height: 600})

	assert.Equal(t, [4]int{0, 0, 800, 600}, ctx.CurrentViewport())
	w, h := v.camera.Size()
	assert.Equal(t, [2]float32{800, 600}, [2]float32{w, h})
	assert.Equal(t, [2]int{800, 600}, got)

	// minimized windows report a zero framebuffer
	core.Broadcast(v.bus, core.FramebufferResize{})
	assert.Equal(t, [4]int{0, 0, 800, 600}, ctx.CurrentViewport())
}

func TestInputCallbacks(t *testing.T) {
	v := &Viewer{bus: core.NewBus()}
	v.connect()

	var keys []core.Key
	v.OnKey(func(_ core.Window, key core.Key, pressed bool) {
		if pressed {
			keys = append(keys, key)
		}
	})
	var clicks []mgl64.Vec2
	v.OnMouseButton(func(_ core.Window, b core.MouseButton, pos mgl64.Vec2, pressed bool) {
		if b == core.MouseLeft && pressed {
			clicks = append(clicks, pos)
		}
	})

	core.Broadcast(v.bus, core.KeyEvent{Key: core.KeyG, Pressed: true})
	core.Broadcast(v.bus, core.KeyEvent{Key: core.KeyG})
	core.Broadcast(v.bus, core.MouseButtonEvent{Button: core.MouseLeft, Position: mgl64.Vec2{3, 4}, Pressed: true})
	assert.Equal(t, []core.Key{core.KeyG}, keys)
	assert.Equal(t, []mgl64.Vec2{{3, 4}}, clicks)

	v.Destroy()
	core.Broadcast(v.bus, core.KeyEvent{Key: core.KeyH, Pressed: true})
	assert.Len(t, keys, 1)
}
