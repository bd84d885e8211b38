// demo_viewer opens an empty viewer with the ImGui demo window.
package main

import (
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/braheezy/glviewer/internal/core"
	"github.com/braheezy/glviewer/internal/viewer"
)

func init() {
	// GLFW and OpenGL calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	defaults := viewer.DefaultSettings()
	defaults.Title = "Minimal Viewer Example"
	viewer.Execute(viewer.Command("demo_viewer", "Minimal viewer with the ImGui demo window", defaults, run))
}

func run(s viewer.Settings) error {
	v, err := viewer.New(s)
	if err != nil {
		return err
	}
	defer v.Destroy()

	// called once per frame before render
	v.OnUpdate(func(core.Window, time.Duration) {})
	// the framebuffer is already cleared
	v.OnRender(func(core.Window, time.Duration) {})
	v.OnGUI(func(core.Window, time.Duration) {
		imgui.ShowDemoWindow(nil)
	})
	v.OnMouseButton(func(core.Window, core.MouseButton, mgl64.Vec2, bool) {})
	v.OnResize(func(core.Window, int, int) {})
	v.OnKey(viewer.StandardKeys)

	v.Run()
	return nil
}
