// cel_shading renders a model with quantized lighting and outlines found by
// edge detection on the depth buffer.
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

type material struct {
	Shininess float32         `mtl:"shininess"`
	Specular  mgl32.Vec3      `mtl:"specular"`
	Diffuse   *opengl.Texture `mtl:"map_diffuse"`
}

type vertex struct {
	Position mgl32.Vec3 `obj:"position"`
	Normal   mgl32.Vec3 `obj:"normal"`
	TexCoord mgl32.Vec2 `obj:"texcoord"`
}

// light is a directional light. angles holds azimuth and inclination.
type light struct {
	angles    mgl32.Vec2
	direction mgl32.Vec3
	ambient   mgl32.Vec3
	color     mgl32.Vec3
}

func newLight() *light {
	l := &light{
		angles:  mgl32.Vec2{math.Pi / 4, math.Pi / 4},
		ambient: mgl32.Vec3{0.4, 0.4, 0.4},
		color:   mgl32.Vec3{1, 1, 1},
	}
	l.update()
	return l
}

func (l *light) update() {
	sx, cx := math.Sincos(float64(l.angles[0]))
	sy, cy := math.Sincos(float64(l.angles[1]))
	l.direction = mgl32.Vec3{float32(sx * sy), float32(cy), float32(cx * sy)}.Normalize().Mul(-1)
}

type celShading struct {
	stepSize  float32
	threshold float32
	buckets   int32
	gradient  *opengl.Texture
}

// gradientMap holds buckets evenly spaced intensities, sampled with nearest
// filtering to quantize the lighting.
func gradientMap(ctx *opengl.Context, buckets int) *opengl.Texture {
	intensities := make([]uint8, buckets)
	for i := range intensities {
		intensities[i] = uint8(255 * i / buckets)
	}
	tex := ctx.NewTexture(opengl.R8, opengl.FormatRed, opengl.PixelUnsignedByte)
	tex.Data(intensities, buckets, 1)
	tex.SetMagFilter(opengl.MagNearest)
	tex.SetMinFilter(opengl.MinNearest)
	return tex
}

func init() {
	runtime.LockOSThread()
}

func main() {
	defaults := viewer.DefaultSettings()
	defaults.Title = "Cel Shading"
	viewer.Execute(viewer.Command("cel_shading", "Cel shading with depth based outlines", defaults, run))
}

func run(s viewer.Settings) error {
	v, err := viewer.New(s)
	if err != nil {
		return err
	}
	defer v.Destroy()
	ctx := v.Context()

	cam := v.Camera()
	cam.SetPosition(mgl32.Vec3{0.5, 0.1, 0.5})
	cam.SetClipPlanes(0.1, 3)

	model := asset.LoadOBJ[vertex, material](ctx, s.Asset("bird/bird.obj"))
	if model == nil {
		return errors.New("couldn't load model")
	}
	defer model.Delete()
	screen := viewer.NewScreenPass(ctx)
	defer screen.Delete()

	// cel shaded color and depth, the depth feeds the edge detection
	width, height := v.Window().FramebufferSize()
	texColor := ctx.NewTextureSized(opengl.RGBA8, opengl.FormatRGBA, opengl.PixelUnsignedByte, width, height)
	texColor.SetMinFilter(opengl.MinNearest)
	texColor.SetMagFilter(opengl.MagNearest)
	texDepth := ctx.NewTextureSized(opengl.Depth32, opengl.FormatDepth, opengl.PixelUnsignedInt, width, height)
	texDepth.SetMinFilter(opengl.MinNearest)
	texDepth.SetMagFilter(opengl.MagNearest)
	texDepth.SetWrap(opengl.WrapS, opengl.WrapEdge)
	texDepth.SetWrap(opengl.WrapT, opengl.WrapEdge)

	fbShading := ctx.NewFramebuffer()
	defer fbShading.Delete()
	fbShading.AttachColorTexture(0, texColor)
	fbShading.AttachDepthTexture(texDepth)
	fbShading.DrawAttachment(0)
	if !fbShading.Completed() {
		return errors.New("cel shading framebuffer incomplete")
	}

	sun := newLight()
	cel := &celShading{stepSize: 2, threshold: 0.1, buckets: 3}
	cel.gradient = gradientMap(ctx, int(cel.buckets))

	shaders, _ := fs.Sub(shaderFiles, "shaders")
	lib, err := v.Shaders(shaders)
	if err != nil {
		return err
	}
	scene, err := lib.Load("scene", viewer.Vertex("cel_shading.vert"), viewer.Fragment("cel_shading.frag"))
	if err != nil {
		return err
	}
	edges, err := lib.Load("edge_detect", viewer.Vertex("basic.vert"), viewer.Fragment("edge_detect.frag"))
	if err != nil {
		return err
	}

	ctx.Enable(opengl.DepthTest)
	ctx.ClearColor(1, 1, 1, 1)

	v.OnRender(func(core.Window, time.Duration) {
		modelMatrix := mgl32.Scale3D(0.4, 0.4, 0.4)

		// 1. cel shading
		fbShading.Bind(opengl.ReadWriteFramebuffer)
		ctx.Clear(opengl.ClearColorDepth)
		scene.Bind()
		scene.SetMat4("uModel", modelMatrix)
		scene.SetMat4("uView", cam.View())
		scene.SetMat4("uProj", cam.Projection())
		scene.SetVec3("uViewPos", cam.Position())
		scene.SetVec3("uLight.direction", sun.direction)
		scene.SetVec3("uLight.ambient", sun.ambient)
		scene.SetVec3("uLight.color", sun.color)
		for _, group := range model.Groups() {
			mat := group.Material
			scene.SetFloat("uMaterial.shininess", mat.Shininess)
			scene.SetVec3("uMaterial.specular", mat.Specular)
			scene.SetInt("uMaterial.map_diffuse", 1)
			mat.Diffuse.Bind(1)
			scene.SetInt("intensity_map", 0)
			cel.gradient.Bind(0)
			group.Draw(opengl.Triangles)
		}
		fbShading.Unbind()

		// 2. edge detection
		near, far := cam.ClipPlanes()
		edges.Bind()
		edges.SetVec2("uNearFar", mgl32.Vec2{near, far})
		edges.SetInt("uColorTexture", 0)
		edges.SetInt("uDepthTexture", 1)
		edges.SetFloat("uStepSize", cel.stepSize)
		edges.SetFloat("uThreshold", cel.threshold)
		screen.Draw(edges, texColor, texDepth)
	})

	v.OnResize(func(_ core.Window, w, h int) {
		texColor.Resize(w, h)
		texDepth.Resize(w, h)
	})

	v.OnGUI(func(core.Window, time.Duration) {
		if gui.BeginSettings() {
			gui.TextColored(gui.White, "FPS:       %4.2f        ", v.Frameclock().Fps())

			gui.Heading("Light: ")
			imgui.PushID("light")
			if gui.DragVec2("direction", &sun.angles, 0.01, -2*math.Pi, 2*math.Pi) {
				sun.update()
			}
			gui.ColorEdit3("ambient", &sun.ambient)
			gui.ColorEdit3("color", &sun.color)
			imgui.PopID()

			gui.Heading("Edge Detection: ")
			imgui.PushID("edge_detect")
			gui.SliderFloat("pixel_size", &cel.stepSize, 0, 16, "%.1f")
			gui.DragFloat("threshold", &cel.threshold, 0.01, 0, 4, "%.3f")
			if gui.SliderInt("buckets", &cel.buckets, 1, 16) {
				cel.gradient.Delete()
				cel.gradient = gradientMap(ctx, int(cel.buckets))
			}
			imgui.PopID()
		}
		imgui.End()
	})
	v.OnKey(viewer.StandardKeys)

	v.Run()
	return nil
}
