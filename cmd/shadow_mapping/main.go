// shadow_mapping lights a small city with a directional light and filtered
// shadows from a depth map rendered in light space.
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
	Diffuse   *opengl.Texture `mtl:"map_diffuse"`
	Specular  *opengl.Texture `mtl:"map_specular"`
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
		color:   mgl32.Vec3{0.5, 0.5, 0.5},
	}
	l.update()
	return l
}

func (l *light) update() {
	sx, cx := math.Sincos(float64(l.angles[0]))
	sy, cy := math.Sincos(float64(l.angles[1]))
	l.direction = mgl32.Vec3{float32(sx * sy), float32(cy), float32(cx * sy)}.Normalize().Mul(-1)
}

type shadow struct {
	bias     float32
	nearFar  mgl32.Vec2
	scale    float32
	distance float32

	resolution int32
	samples    int32
	spacing    float32

	// cull front faces while rendering the depth map
	frontCulling bool
}

// lightSpace maps world positions into the clip space of the shadow map.
func (s *shadow) lightSpace(l *light) mgl32.Mat4 {
	proj := mgl32.Ortho(-s.scale, s.scale, -s.scale, s.scale, s.nearFar[0], s.nearFar[1])
	view := mgl32.LookAtV(l.direction.Mul(-s.distance), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func init() {
	runtime.LockOSThread()
}

func main() {
	defaults := viewer.DefaultSettings()
	defaults.Title = "Shadow Mapping"
	viewer.Execute(viewer.Command("shadow_mapping", "Directional light with filtered shadow maps", defaults, run))
}

func run(s viewer.Settings) error {
	v, err := viewer.New(s)
	if err != nil {
		return err
	}
	defer v.Destroy()
	ctx := v.Context()

	cam := v.Camera()
	cam.SetPosition(mgl32.Vec3{-2.7, 1.75, -3.2})

	model := asset.LoadOBJ[vertex, material](ctx, s.Asset("small_city/small_city.obj"))
	if model == nil {
		return errors.New("couldn't load model")
	}
	defer model.Delete()

	sun := newLight()
	settings := &shadow{
		bias:       0.0025,
		nearFar:    mgl32.Vec2{0, 30},
		scale:      5,
		distance:   25,
		resolution: 4 * 1024,
		samples:    16,
		spacing:    0.65,
	}

	// depth outside the map reads as 1 so nothing beyond it is shadowed
	res := int(settings.resolution)
	texShadow := ctx.NewTextureSized(opengl.Depth32F, opengl.FormatDepth, opengl.PixelFloat, res, res)
	texShadow.SetWrap(opengl.WrapS, opengl.WrapBorder)
	texShadow.SetWrap(opengl.WrapT, opengl.WrapBorder)
	texShadow.SetBorderColor(mgl32.Vec4{1, 1, 1, 1})

	fbShadow := ctx.NewFramebuffer()
	defer fbShadow.Delete()
	fbShadow.AttachDepthTexture(texShadow)
	fbShadow.DrawBuffer(opengl.BufferNone)
	fbShadow.ReadBuffer(opengl.BufferNone)
	if !fbShadow.Completed() {
		return errors.New("shadow framebuffer incomplete")
	}

	shaders, _ := fs.Sub(shaderFiles, "shaders")
	lib, err := v.Shaders(shaders)
	if err != nil {
		return err
	}
	depth, err := lib.Load("shadow_map", viewer.Vertex("shadow_map.vert"), viewer.Fragment("shadow_map.frag"))
	if err != nil {
		return err
	}
	lighting, err := lib.Load("blinn_phong", viewer.Vertex("blinn_phong.vert"), viewer.Fragment("blinn_phong.frag"))
	if err != nil {
		return err
	}

	ctx.ClearColor(0, 0.5, 1, 1)
	ctx.Enable(opengl.DepthTest)
	ctx.Enable(opengl.CullFace)
	ctx.Cull(opengl.Back)

	v.OnRender(func(core.Window, time.Duration) {
		modelMatrix := mgl32.Scale3D(0.05, 0.05, 0.05).Mul4(mgl32.Translate3D(0, 2, 0))
		lightMatrix := settings.lightSpace(sun)

		// 1. depth from the light
		w, h := texShadow.Size()
		viewport := ctx.Viewport(0, 0, w, h)
		cull := ctx.Cull(opengl.Back)
		if settings.frontCulling {
			ctx.Cull(opengl.Front)
		}
		fbShadow.Bind(opengl.ReadWriteFramebuffer)
		ctx.Clear(opengl.ClearDepth)
		depth.Bind()
		depth.SetMat4("uModel", modelMatrix)
		depth.SetMat4("uLightSpace", lightMatrix)
		model.Draw(opengl.Triangles)
		fbShadow.Unbind()
		ctx.SetViewport(viewport)
		ctx.Cull(cull)

		// 2. blinn-phong with shadows
		lighting.Bind()
		lighting.SetMat4("uModel", modelMatrix)
		lighting.SetMat4("uView", cam.View())
		lighting.SetMat4("uProj", cam.Projection())
		lighting.SetVec3("uViewPos", cam.Position())
		lighting.SetMat4("uLightSpace", lightMatrix)

		lighting.SetVec3("uLight.direction", sun.direction)
		lighting.SetVec3("uLight.ambient", sun.ambient)
		lighting.SetVec3("uLight.color", sun.color)

		lighting.SetFloat("uShadow.bias", settings.bias)
		lighting.SetFloat("uShadow.spacing", settings.spacing)
		lighting.SetInt("uShadow.samples", settings.samples)
		lighting.SetInt("uShadow.map_shadow", 2)
		texShadow.Bind(2)

		lighting.SetInt("uMaterial.map_diffuse", 0)
		lighting.SetInt("uMaterial.map_specular", 1)
		for _, group := range model.Groups() {
			mat := group.Material
			lighting.SetFloat("uMaterial.shininess", mat.Shininess)
			mat.Diffuse.Bind(0)
			mat.Specular.Bind(1)
			group.Draw(opengl.Triangles)
		}
	})

	v.OnGUI(func(window core.Window, _ time.Duration) {
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

			gui.Heading("Shadow Map: ")
			imgui.PushID("shadow")
			gui.DragFloat("distance", &settings.distance, 1, 0, 0, "%.3f")
			gui.DragVec2("Near/Far Plane", &settings.nearFar, 1, 0, 0)
			gui.DragFloat("Ortho scale", &settings.scale, 1, 0, 0, "%.3f")
			imgui.Checkbox("face culling", &settings.frontCulling)

			imgui.Separator()

			gui.DragFloat("bias", &settings.bias, 0.00001, 0, 0.1, "%.6f")
			gui.DragFloat("filter spacing", &settings.spacing, 0.01, 0, 10, "%.3f")
			gui.DragInt("filter samples", &settings.samples, 1, 1, 64)
			if gui.DragInt("resolution", &settings.resolution, 1, 1, 8*1024) {
				texShadow.Resize(int(settings.resolution), int(settings.resolution))
			}
			imgui.PopID()
		}
		imgui.End()

		_, height := window.Size()
		if gui.BeginPanel("##shadowmap", 16, float32(height)-256-32) {
			v.GUI().Image(texShadow, 256, 256)
		}
		imgui.End()
	})
	v.OnKey(viewer.StandardKeys)

	v.Run()
	return nil
}
