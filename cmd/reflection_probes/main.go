// reflection_probes reflects the scene in water through box projected cube
// maps captured at a few probe positions.
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/pkg/errors"

	"github.com/braheezy/glviewer/internal/asset"
	"github.com/braheezy/glviewer/internal/core"
	gui "github.com/braheezy/glviewer/internal/imgui"
	"github.com/braheezy/glviewer/internal/opengl"
	"github.com/braheezy/glviewer/internal/viewer"
)

//go:embed shaders
var shaderFiles embed.FS

type sceneMaterial struct {
	Diffuse *opengl.Texture `mtl:"map_diffuse"`
}

type waterMaterial struct {
	Diffuse *opengl.Texture `mtl:"map_diffuse"`
	Normal  *opengl.Texture `mtl:"map_normal"`
}

type vertex struct {
	Position mgl32.Vec3 `obj:"position"`
	Normal   mgl32.Vec3 `obj:"normal"`
	TexCoord mgl32.Vec2 `obj:"texcoord"`
}

type cubeVertex struct {
	Position mgl32.Vec3 `obj:"position"`
}

const (
	// drawn after everything else so it blends over the scene
	transparentGroup = "z_Lamp_1"
	waterGroup       = "Water"
	probeResolution  = 1024
)

type reflectionSettings struct {
	reflections  bool
	parallax     bool
	normalMap    bool
	renderVolume bool
	selected     int32
}

func init() {
	runtime.LockOSThread()
}

func main() {
	defaults := viewer.DefaultSettings()
	defaults.Title = "Reflection Probes"
	viewer.Execute(viewer.Command("reflection_probes", "Parallax corrected reflection probes", defaults, run))
}

func run(s viewer.Settings) error {
	v, err := viewer.New(s)
	if err != nil {
		return err
	}
	defer v.Destroy()
	ctx := v.Context()

	cam := v.Camera()
	cam.SetPosition(mgl32.Vec3{9, 1, 17})
	cam.SetLookAt(mgl32.Vec3{5, 0, 0})
	cam.SetClipPlanes(0.1, 100)

	model := asset.LoadOBJ[vertex, sceneMaterial](ctx, s.Asset("wanderer/wanderer.obj"))
	if model == nil {
		return errors.New("couldn't load model")
	}
	defer model.Delete()
	water := asset.LoadOBJ[vertex, waterMaterial](ctx, s.Asset("wanderer/water.obj"))
	if water == nil {
		return errors.New("couldn't load water")
	}
	defer water.Delete()
	waterSurface, ok := water.MaterialGroups[waterGroup]
	if !ok {
		return errors.Errorf("water model has no %q material", waterGroup)
	}
	cube, err := asset.UnitCube[cubeVertex](ctx)
	if err != nil {
		return err
	}
	defer cube.Delete()

	shaders, _ := fs.Sub(shaderFiles, "shaders")
	lib, err := v.Shaders(shaders)
	if err != nil {
		return err
	}
	scene, err := lib.Load("scene", viewer.Vertex("scene.vert"), viewer.Fragment("scene.frag"))
	if err != nil {
		return err
	}
	waterShader, err := lib.Load("water", viewer.Vertex("scene.vert"), viewer.Fragment("water.frag"))
	if err != nil {
		return err
	}
	debug, err := lib.Load("debug_prope", viewer.Vertex("scene.vert"), viewer.Fragment("debug_prope.frag"))
	if err != nil {
		return err
	}
	capture, err := lib.Load("refl_prope",
		viewer.Vertex("refl_prope.vert"), viewer.Geometry("refl_prope.geom"), viewer.Fragment("scene.frag"))
	if err != nil {
		return err
	}

	var probes []*probe
	for _, p := range []struct{ pos, extends mgl32.Vec3 }{
		{mgl32.Vec3{5.5, 0, -10}, mgl32.Vec3{14.9, 14.9, 14.9}},
		{mgl32.Vec3{8.9, 0, 11.7}, mgl32.Vec3{9, 9, 9}},
		{mgl32.Vec3{-16, 0, -9.1}, mgl32.Vec3{13.3, 13.3, 13.3}},
		{mgl32.Vec3{-3.1, 0, 13.9}, mgl32.Vec3{8.7, 8.7, 8.7}},
	} {
		pr, err := newProbe(ctx, probeResolution, p.pos, p.extends)
		if err != nil {
			return err
		}
		defer pr.delete()
		probes = append(probes, pr)
	}
	settings := &reflectionSettings{reflections: true, parallax: true, normalMap: true}

	ctx.Enable(opengl.CubeMapSeamless)
	ctx.Enable(opengl.DepthTest)
	ctx.Enable(opengl.Blend)
	ctx.BlendFunc(opengl.FactorSrcAlpha, opengl.FactorOneMinusSrcAlpha)
	ctx.ClearColor(0, 0, 0, 1)

	modelMatrix := mgl32.Translate3D(0, -1, 0)

	// opaque groups first, then the transparent lamp on top
	drawScene := func(program *opengl.ShaderProgram) {
		program.SetInt("uMapDiffuse", 1)
		for _, transparent := range []bool{false, true} {
			for _, group := range model.Groups() {
				if (group.Name == transparentGroup) != transparent {
					continue
				}
				group.Material.Diffuse.Bind(1)
				group.Draw(opengl.Triangles)
			}
		}
	}
	for _, p := range probes {
		p.capture(ctx, capture, modelMatrix, drawScene)
	}

	v.OnRender(func(core.Window, time.Duration) {
		waterShader.Bind()
		waterShader.SetMat4("uModel", modelMatrix)
		waterShader.SetMat4("uView", cam.View())
		waterShader.SetMat4("uProj", cam.Projection())
		waterShader.SetVec3("uViewPos", cam.Position())
		waterShader.SetBool("uReflections", settings.reflections)
		waterShader.SetBool("uNormalMap", settings.normalMap)
		waterShader.SetBool("uParallax", settings.parallax)
		for i, p := range probes {
			unit := int32(3 + i)
			prefix := fmt.Sprintf("uReflPropes[%d].", i)
			waterShader.SetVec3(prefix+"pos", p.position)
			waterShader.SetVec3(prefix+"extends", p.extends)
			waterShader.SetInt(prefix+"map", unit)
			p.color.Bind(uint32(unit))
		}
		waterShader.SetInt("uNumPropes", int32(len(probes)))
		waterShader.SetInt("uMapDiffuse", 1)
		waterSurface.Material.Diffuse.Bind(1)
		waterShader.SetInt("uNormal", 2)
		waterSurface.Material.Normal.Bind(2)
		waterSurface.Draw(opengl.Triangles)

		scene.Bind()
		scene.SetMat4("uModel", modelMatrix)
		scene.SetMat4("uView", cam.View())
		scene.SetMat4("uProj", cam.Projection())
		drawScene(scene)

		if settings.renderVolume {
			debug.Bind()
			debug.SetMat4("uView", cam.View())
			debug.SetMat4("uProj", cam.Projection())
			for i, p := range probes {
				debug.SetBool("uSelected", int32(i) == settings.selected)
				debug.SetMat4("uModel", p.volume())
				cube.Draw(opengl.Triangles)
			}
		}
	})

	v.OnGUI(func(core.Window, time.Duration) {
		if gui.BeginSettings() {
			gui.TextColored(gui.White, "FPS:       %4.2f        ", v.Frameclock().Fps())

			gui.Heading("Reflection Probes: ")
			imgui.PushID("propes")
			gui.SliderInt("Prope ID", &settings.selected, 0, int32(len(probes)-1))
			selected := probes[settings.selected]
			if gui.DragVec3("position", &selected.position, 0.1, 0, 0) {
				selected.capture(ctx, capture, modelMatrix, drawScene)
			}
			// probe volumes stay cubes
			if gui.DragFloat("extends", &selected.extends[0], 0.1, 0, 0, "%.3f") {
				e := selected.extends[0]
				selected.extends = mgl32.Vec3{e, e, e}
				selected.capture(ctx, capture, modelMatrix, drawScene)
			}
			imgui.PopID()

			imgui.Checkbox("reflections", &settings.reflections)
			imgui.Checkbox("parallax correction", &settings.parallax)
			imgui.Checkbox("water normal map", &settings.normalMap)
			imgui.Checkbox("render probe volume", &settings.renderVolume)
		}
		imgui.End()
	})
	v.OnKey(viewer.StandardKeys)

	v.Run()
	return nil
}
