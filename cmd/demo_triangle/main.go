// demo_triangle draws a single colored triangle.
package main

import (
	"embed"
	"io/fs"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/braheezy/glviewer/internal/core"
	"github.com/braheezy/glviewer/internal/opengl"
	"github.com/braheezy/glviewer/internal/viewer"
)

//go:embed shaders
var shaderFiles embed.FS

type vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
}

func init() {
	runtime.LockOSThread()
}

func main() {
	defaults := viewer.DefaultSettings()
	defaults.Title = "Colored Triangle"
	defaults.Width, defaults.Height = 720, 720
	viewer.Execute(viewer.Command("demo_triangle", "Draws a colored triangle", defaults, run))
}

func run(s viewer.Settings) error {
	v, err := viewer.New(s)
	if err != nil {
		return err
	}
	defer v.Destroy()
	ctx := v.Context()

	vertices := opengl.NewVertexBuffer(ctx, []vertex{
		{mgl32.Vec3{-0.5, -0.5, 0.5}, mgl32.Vec4{1, 0, 0, 1}},
		{mgl32.Vec3{0.5, -0.5, 0.5}, mgl32.Vec4{0, 1, 0, 1}},
		{mgl32.Vec3{0, 0.5, 0.5}, mgl32.Vec4{0, 0, 1, 1}},
	}, opengl.StaticDraw)
	defer vertices.Delete()
	vao := ctx.NewVertexArray()
	defer vao.Delete()
	vao.AttachVertexBuffer(vertices)

	shaders, _ := fs.Sub(shaderFiles, "shaders")
	lib, err := v.Shaders(shaders)
	if err != nil {
		return err
	}
	shader, err := lib.Load("triangle", viewer.Vertex("triangle.vert"), viewer.Fragment("triangle.frag"))
	if err != nil {
		return err
	}

	v.OnRender(func(core.Window, time.Duration) {
		shader.Bind()
		vao.Draw(opengl.Triangles)
	})
	v.OnKey(viewer.StandardKeys)

	v.Run()
	return nil
}
