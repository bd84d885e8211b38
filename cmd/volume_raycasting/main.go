// volume_raycasting renders a CT volume by marching rays between the entry
// and exit points of its bounding cube, as iso surface or maximum intensity.
package main

import (
	"embed"
	"io/fs"
	"math"
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

type vertex struct {
	Position mgl32.Vec3 `obj:"position"`
}

// light is a directional light. angles holds azimuth and inclination.
type light struct {
	angles    mgl32.Vec2
	direction mgl32.Vec3
	ambient   mgl32.Vec3
	color     mgl32.Vec3
}

func (l *light) update() {
	sx, cx := math.Sincos(float64(l.angles[0]))
	sy, cy := math.Sincos(float64(l.angles[1]))
	l.direction = mgl32.Vec3{float32(sx * sy), float32(cy), float32(cx * sy)}.Normalize().Mul(-1)
}

const (
	renderISO int32 = iota
	renderMIP
)

type raycasting struct {
	stepSize   float32
	maxSteps   int32
	renderType int32
	isoValue   float32
	gamma      float32
}

var volumePath string

func init() {
	runtime.LockOSThread()
}

func main() {
	defaults := viewer.DefaultSettings()
	defaults.Title = "Volume Raycasting"
	cmd := viewer.Command("volume_raycasting", "Iso surface and MIP volume raycasting", defaults, run)
	cmd.Flags().StringVar(&volumePath, "volume", "skull/skull_256x256x256_uint8.raw",
		"volume to render, a .raw named with its XxYxZ size or a .dat file")
	viewer.Execute(cmd)
}

func run(s viewer.Settings) error {
	v, err := viewer.New(s)
	if err != nil {
		return err
	}
	defer v.Destroy()
	ctx := v.Context()

	cam := v.Camera()
	cam.SetPosition(mgl32.Vec3{-1, 0, 0})
	cam.SetClipPlanes(0.1, 10)

	sun := &light{
		angles:  mgl32.Vec2{math.Pi / 4, math.Pi / 4},
		ambient: mgl32.Vec3{0.2, 0.2, 0.2},
		color:   mgl32.Vec3{1, 1, 1},
	}
	sun.update()
	settings := &raycasting{stepSize: 0.005, maxSteps: 4 * 256, renderType: renderMIP, isoValue: 0.15, gamma: 1.5}

	volume, err := loadVolume(ctx, s.Asset(volumePath))
	if err != nil {
		return err
	}
	defer volume.Delete()
	cube, err := asset.UnitCube[vertex](ctx)
	if err != nil {
		return err
	}
	defer cube.Delete()

	// volume coordinates where each pixel's ray enters and leaves the cube
	width, height := v.Window().FramebufferSize()
	texEntry := ctx.NewTextureSized(opengl.RGBA16, opengl.FormatRGBA, opengl.PixelUnsignedShort, width, height)
	texExit := ctx.NewTextureSized(opengl.RGBA16, opengl.FormatRGBA, opengl.PixelUnsignedShort, width, height)
	fbEntryExit := ctx.NewFramebuffer()
	defer fbEntryExit.Delete()
	fbEntryExit.AttachColorTexture(0, texEntry)
	fbEntryExit.AttachColorTexture(1, texExit)
	fbEntryExit.DrawAttachment(0, 1)
	if !fbEntryExit.Completed() {
		return errors.New("entry/exit framebuffer incomplete")
	}

	shaders, _ := fs.Sub(shaderFiles, "shaders")
	lib, err := v.Shaders(shaders)
	if err != nil {
		return err
	}
	entryExit, err := lib.Load("entry_exit", viewer.Vertex("entry_exit.vert"), viewer.Fragment("entry_exit.frag"))
	if err != nil {
		return err
	}
	raycast, err := lib.Load("raycast", viewer.Vertex("simple.vert"), viewer.Fragment("raycast.frag"))
	if err != nil {
		return err
	}

	ctx.ClearColor(0, 0, 0, 1)
	ctx.Enable(opengl.Blend)
	ctx.BlendFunc(opengl.FactorSrcAlpha, opengl.FactorOneMinusSrcAlpha)

	model := mgl32.HomogRotate3DX(-math.Pi / 2)

	v.OnRender(func(window core.Window, _ time.Duration) {
		// 1. entry and exit points
		fbEntryExit.Bind(opengl.ReadWriteFramebuffer)
		w, h := texEntry.Size()
		viewport := ctx.Viewport(0, 0, w, h)
		ctx.Clear(opengl.ClearColor)
		cull := ctx.Disable(opengl.CullFace)
		depth := ctx.Disable(opengl.DepthTest)
		blend := ctx.Enable(opengl.Blend)
		src, dst := ctx.BlendFunc(opengl.FactorOne, opengl.FactorOne)

		entryExit.Bind()
		entryExit.SetMat4("uModel", model)
		entryExit.SetMat4("uView", cam.View())
		entryExit.SetMat4("uProj", cam.Projection())
		cube.Draw(opengl.Triangles)

		ctx.SetViewport(viewport)
		ctx.BlendFunc(src, dst)
		ctx.Set(opengl.Blend, blend)
		fbEntryExit.Unbind()

		// 2. march the rays, once per pixel through the back faces
		ctx.Enable(opengl.CullFace)
		face := ctx.Cull(opengl.Front)
		fw, fh := window.FramebufferSize()
		raycast.Bind()
		raycast.SetMat4("uModel", model)
		raycast.SetMat4("uView", cam.View())
		raycast.SetMat4("uProj", cam.Projection())
		raycast.SetVec2("uScreenSize", mgl32.Vec2{float32(fw), float32(fh)})
		raycast.SetInt("uRaycast.entry", 0)
		raycast.SetInt("uRaycast.exit", 1)
		raycast.SetInt("uRaycast.volume", 2)
		raycast.SetFloat("uRaycast.stepSize", settings.stepSize)
		raycast.SetInt("uRaycast.maxSteps", settings.maxSteps)
		raycast.SetInt("uRaycast.renderType", settings.renderType)
		raycast.SetFloat("uRaycast.isoValue", settings.isoValue)
		raycast.SetFloat("uRaycast.gamma", settings.gamma)
		raycast.SetVec3("uLight.direction", sun.direction)
		raycast.SetVec3("uLight.ambient", sun.ambient)
		raycast.SetVec3("uLight.color", sun.color)
		texEntry.Bind(0)
		texExit.Bind(1)
		volume.Bind(2)
		cube.Draw(opengl.Triangles)
		texEntry.Unbind(0)
		texExit.Unbind(1)
		volume.Unbind(2)

		ctx.Cull(face)
		ctx.Set(opengl.CullFace, cull)
		ctx.Set(opengl.DepthTest, depth)
	})

	v.OnResize(func(_ core.Window, w, h int) {
		texEntry.Resize(w, h)
		texExit.Resize(w, h)
	})

	v.OnGUI(func(core.Window, time.Duration) {
		if gui.BeginSettings() {
			gui.TextColored(gui.White, "FPS:       %4.2f        ", v.Frameclock().Fps())

			gui.Heading("Raycast: ")
			imgui.PushID("raycast")
			gui.DragFloat("step_size", &settings.stepSize, 0.0001, 0, 1, "%.4f")
			gui.DragInt("max_steps", &settings.maxSteps, 1, 0, 4*1024)
			imgui.Separator()
			if imgui.RadioButton("ISO", settings.renderType == renderISO) {
				settings.renderType = renderISO
			}
			imgui.SameLine()
			if imgui.RadioButton("MIP", settings.renderType == renderMIP) {
				settings.renderType = renderMIP
			}
			gui.DragFloat("iso_value", &settings.isoValue, 0.0001, 0, 1, "%.4f")
			gui.DragFloat("gamma", &settings.gamma, 0.01, 0.1, 5, "%.2f")
			imgui.PopID()

			gui.Heading("Light: ")
			imgui.PushID("light")
			if gui.DragVec2("direction", &sun.angles, 0.01, -2*math.Pi, 2*math.Pi) {
				sun.update()
			}
			gui.ColorEdit3("ambient", &sun.ambient)
			gui.ColorEdit3("color", &sun.color)
			imgui.PopID()

			imgui.Dummy(imgui.Vec2{Y: 16})
			imgui.Separator()

			gui.TextColored(gui.Yellow, "Entry / Exit Texture")
			w, h := texEntry.Size()
			v.GUI().Image(texEntry, float32(w)/5, float32(h)/5)
			v.GUI().Image(texExit, float32(w)/5, float32(h)/5)
		}
		imgui.End()
	})
	v.OnKey(viewer.StandardKeys)

	v.Run()
	return nil
}
