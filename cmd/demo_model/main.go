// demo_model loads a textured OBJ model and draws it by material group.
package main

import (
	"embed"
	"io/fs"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/braheezy/glviewer/internal/asset"
	"github.com/braheezy/glviewer/internal/core"
	"github.com/braheezy/glviewer/internal/opengl"
	"github.com/braheezy/glviewer/internal/viewer"
)

//go:embed shaders
var shaderFiles embed.FS

type vertex struct {
	Position mgl32.Vec3 `obj:"position"`
	Normal   mgl32.Vec3 `obj:"normal"`
	TexCoord mgl32.Vec2 `obj:"texcoord"`
}

type material struct {
	Diffuse *opengl.Texture `mtl:"map_diffuse"`
}

func init() {
	runtime.LockOSThread()
}

func main() {
	defaults := viewer.DefaultSettings()
	defaults.Title = "Model Loading"
	viewer.Execute(viewer.Command("demo_model", "Draws a textured OBJ model", defaults, run))
}

func run(s viewer.Settings) error {
	v, err := viewer.New(s)
	if err != nil {
		return err
	}
	defer v.Destroy()
	ctx := v.Context()

	cam := v.Camera()
	cam.SetPosition(mgl32.Vec3{1.75, 0, 0})

	model := asset.LoadOBJ[vertex, material](ctx, s.Asset("sad_toaster/sad_toaster.obj"))
	if model == nil {
		return errors.New("couldn't load model")
	}
	defer model.Delete()

	shaders, _ := fs.Sub(shaderFiles, "shaders")
	lib, err := v.Shaders(shaders)
	if err != nil {
		return err
	}
	shader, err := lib.Load("model", viewer.Vertex("model.vert"), viewer.Fragment("model.frag"))
	if err != nil {
		return err
	}

	ctx.Enable(opengl.DepthTest)

	v.OnRender(func(core.Window, time.Duration) {
		shader.Bind()
		shader.SetMat4("uModel", mgl32.Translate3D(0, -1, 0))
		shader.SetMat4("uView", cam.View())
		shader.SetMat4("uProj", cam.Projection())

		for _, group := range model.Groups() {
			shader.SetInt("uMapDiffuse", 0)
			group.Material.Diffuse.Bind(0)
			group.Draw(opengl.Triangles)
		}
	})
	v.OnKey(viewer.StandardKeys)

	v.Run()
	return nil
}
