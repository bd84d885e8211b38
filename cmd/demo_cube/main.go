// demo_cube spins a cube with colored corners.
package main

import (
	"embed"
	"io/fs"
	"math"
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

var (
	cubeVertices = []vertex{
		{mgl32.Vec3{-1, -1, 1}, mgl32.Vec4{1, 0, 0, 1}},
		{mgl32.Vec3{-1, 1, 1}, mgl32.Vec4{0, 1, 0, 1}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec4{0, 0, 1, 1}},
		{mgl32.Vec3{1, -1, 1}, mgl32.Vec4{1, 0, 1, 1}},

		{mgl32.Vec3{-1, -1, -1}, mgl32.Vec4{1, 0, 0, 1}},
		{mgl32.Vec3{-1, 1, -1}, mgl32.Vec4{0, 1, 0, 1}},
		{mgl32.Vec3{1, 1, -1}, mgl32.Vec4{0, 0, 1, 1}},
		{mgl32.Vec3{1, -1, -1}, mgl32.Vec4{1, 0, 1, 1}},
	}
	cubeIndices = []uint32{
		0, 2, 1, 2, 0, 3,
		4, 5, 6, 6, 7, 4,
		0, 1, 5, 5, 4, 0,
		3, 6, 2, 6, 3, 7,
		1, 6, 5, 6, 1, 2,
		0, 4, 7, 7, 3, 0,
	}
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defaults := viewer.DefaultSettings()
	defaults.Title = "Colored Cube"
	defaults.Width, defaults.Height = 720, 720
	viewer.Execute(viewer.Command("demo_cube", "Spins a colored cube", defaults, run))
}

func run(s viewer.Settings) error {
	v, err := viewer.New(s)
	if err != nil {
		return err
	}
	defer v.Destroy()
	ctx := v.Context()

	cam := v.Camera()
	cam.SetPosition(mgl32.Vec3{2, 2, 2})
	cam.SetLookAt(mgl32.Vec3{0, 0, 0})

	vertices := opengl.NewVertexBuffer(ctx, cubeVertices, opengl.StaticDraw)
	indices := opengl.NewIndexBuffer(ctx, cubeIndices, opengl.StaticDraw)
	vao := ctx.NewVertexArray()
	vao.AttachVertexBuffer(vertices)
	vao.AttachIndexBuffer(indices)
	defer func() {
		vao.Delete()
		vertices.Delete()
		indices.Delete()
	}()

	shaders, _ := fs.Sub(shaderFiles, "shaders")
	lib, err := v.Shaders(shaders)
	if err != nil {
		return err
	}
	shader, err := lib.Load("cube", viewer.Vertex("cube.vert"), viewer.Fragment("cube.frag"))
	if err != nil {
		return err
	}

	ctx.Enable(opengl.DepthTest)

	var elapsed float32
	v.OnRender(func(_ core.Window, dt time.Duration) {
		elapsed += float32(dt.Seconds())

		shader.Bind()
		shader.SetMat4("uModel", mgl32.HomogRotate3DY(elapsed*math.Pi))
		shader.SetMat4("uView", cam.View())
		shader.SetMat4("uProj", cam.Projection())
		vao.Draw(opengl.Triangles)
	})
	v.OnKey(viewer.StandardKeys)

	v.Run()
	return nil
}
