// temporal_anti_aliasing jitters the projection by sub-pixel offsets and
// blends each frame with the reprojected history.
package main

import (
	"embed"
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

type material struct {
	Diffuse *opengl.Texture `mtl:"map_diffuse"`
}

type vertex struct {
	Position mgl32.Vec3 `obj:"position"`
	Normal   mgl32.Vec3 `obj:"normal"`
	TexCoord mgl32.Vec2 `obj:"texcoord"`
}

var grey = imgui.Vec4{X: 0.7, Y: 0.7, Z: 0.7, W: 1}

func init() {
	runtime.LockOSThread()
}

func main() {
	defaults := viewer.DefaultSettings()
	defaults.Title = "Temporal Anti-Aliasing"
	viewer.Execute(viewer.Command("temporal_anti_aliasing", "Temporal anti-aliasing with motion vectors", defaults, run))
}

func run(s viewer.Settings) error {
	v, err := viewer.New(s)
	if err != nil {
		return err
	}
	defer v.Destroy()
	ctx := v.Context()

	cam := v.Camera()
	cam.SetPosition(mgl32.Vec3{3.25, 0, 0})

	model := asset.LoadOBJ[vertex, material](ctx, s.Asset("sad_toaster/sad_toaster.obj"))
	if model == nil {
		return errors.New("couldn't load model")
	}
	defer model.Delete()
	screen := viewer.NewScreenPass(ctx)
	defer screen.Delete()

	width, height := v.Window().FramebufferSize()
	aa, err := newTAA(ctx, width, height)
	if err != nil {
		return err
	}
	defer aa.delete()

	// scene color, motion vectors and depth
	texColor := ctx.NewTextureSized(opengl.RGB8, opengl.FormatRGB, opengl.PixelUnsignedByte, width, height)
	texVelocity := ctx.NewTextureSized(opengl.RGB16F, opengl.FormatRGB, opengl.PixelFloat, width, height)
	texDepth := ctx.NewTextureSized(opengl.Depth32, opengl.FormatDepth, opengl.PixelUnsignedInt, width, height)
	targets := []*opengl.Texture{texColor, texVelocity, texDepth}
	for _, tex := range targets {
		tex.SetMinFilter(opengl.MinLinear)
		tex.SetMagFilter(opengl.MagLinear)
	}

	fbPipeline := ctx.NewFramebuffer()
	defer fbPipeline.Delete()
	fbPipeline.AttachColorTexture(0, texColor)
	fbPipeline.AttachColorTexture(1, texVelocity)
	fbPipeline.AttachDepthTexture(texDepth)
	fbPipeline.DrawAttachment(0, 1)
	if !fbPipeline.Completed() {
		return errors.New("pipeline framebuffer incomplete")
	}

	shaders, _ := fs.Sub(shaderFiles, "shaders")
	lib, err := v.Shaders(shaders)
	if err != nil {
		return err
	}
	scene, err := lib.Load("render", viewer.Vertex("render.vert"), viewer.Fragment("render.frag"))
	if err != nil {
		return err
	}
	resolve, err := lib.Load("post", viewer.Vertex("post.vert"), viewer.Fragment("post.frag"))
	if err != nil {
		return err
	}

	ctx.ClearColor(1, 1, 1, 1)
	ctx.Enable(opengl.DepthTest)

	v.OnRender(func(window core.Window, _ time.Duration) {
		// the unjittered matrix is kept for the next frame's motion vectors
		prev := aa.advance(cam.Projection().Mul4(cam.View()))
		curr := aa.frame()

		// 1. scene and motion vectors
		fbPipeline.Bind(opengl.ReadWriteFramebuffer)
		ctx.Clear(opengl.ClearColorDepth)
		scene.Bind()
		scene.SetMat4("uModel", mgl32.Translate3D(0, -1, 0))
		scene.SetMat4("uProjViewCurr", curr.projView)
		scene.SetMat4("uProjViewPrev", prev.projView)
		scene.SetVec2("uJitter", aa.offset(prev.color.Size()))
		scene.SetInt("uMapDiffuse", 0)
		for _, group := range model.Groups() {
			group.Material.Diffuse.Bind(0)
			group.Draw(opengl.Triangles)
		}
		fbPipeline.Unbind()

		// 2. blend with the history
		curr.framebuffer.Bind(opengl.ReadWriteFramebuffer)
		ctx.Clear(opengl.ClearColor)
		resolve.Bind()
		resolve.SetInt("uColorPrev", 0)
		resolve.SetInt("uColorCurr", 1)
		resolve.SetInt("uVelocity", 2)
		resolve.SetFloat("uAlpha", aa.blend())
		screen.Draw(resolve, prev.color, texColor, texVelocity)
		curr.framebuffer.Unbind()

		w, h := window.FramebufferSize()
		curr.framebuffer.BlitDefault(0, 0, w, h, opengl.ClearColor)
	})

	v.OnResize(func(_ core.Window, w, h int) {
		aa.resize(w, h)
		for _, tex := range targets {
			tex.Resize(w, h)
		}
	})

	v.OnGUI(func(core.Window, time.Duration) {
		if gui.BeginSettings() {
			gui.TextColored(gui.White, "FPS:       %4.2f        ", v.Frameclock().Fps())
			imgui.Dummy(imgui.Vec2{Y: 16})

			gui.TextColored(grey, "TAA:")
			imgui.Checkbox("enabled", &aa.enabled)
			gui.SliderFloat("blend factor", &aa.alpha, 0, 1, "%.3f")

			// a zoomed crop of the resolved frame
			imgui.ImageV(v.GUI().TextureID(aa.frame().color), imgui.Vec2{X: 256, Y: 256},
				imgui.Vec2{X: 0.4, Y: 0.5}, imgui.Vec2{X: 0.5, Y: 0.4},
				gui.White, imgui.Vec4{})
		}
		imgui.End()
	})
	v.OnKey(viewer.StandardKeys)

	v.Run()
	return nil
}
