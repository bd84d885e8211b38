// deferred_rendering fills a G-buffer with the scene and then shades it with
// a directional light and spot lights drawn as pyramid light volumes.
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
}

type vertex struct {
	Position mgl32.Vec3 `obj:"position"`
	Normal   mgl32.Vec3 `obj:"normal"`
	TexCoord mgl32.Vec2 `obj:"texcoord"`
}

type volumeVertex struct {
	Position mgl32.Vec3 `obj:"position"`
}

type passes struct {
	directional bool
	spots       bool
	debug       bool
	// scales the distance at which a spot light fades out
	distanceScale float32
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

// spotLight matches the std430 layout of SpotLight in light_spots.frag.
type spotLight struct {
	Position  mgl32.Vec3
	_         float32
	Direction mgl32.Vec3
	_         float32
	Color     mgl32.Vec3

	Inner, Outer float32

	Constant, Linear, Quadratic float32
}

func newSpotLight(pos mgl32.Vec3) spotLight {
	return spotLight{
		Position:  pos,
		Direction: mgl32.Vec3{0, -1, 0},
		Color:     mgl32.Vec3{1, 1, 0.6},
		Inner:     math.Pi / 10,
		Outer:     math.Pi / 5,
		Constant:  1,
		Linear:    0.09,
		Quadratic: 0.032,
	}
}

// volume places the unit pyramid over the cone the light reaches before its
// attenuated brightness drops below 5/256.
func (s *spotLight) volume(scale float32) mgl32.Mat4 {
	brightest := max(s.Color[0], s.Color[1], s.Color[2])
	c, l, q := float64(s.Constant), float64(s.Linear), float64(s.Quadratic)
	reach := scale * float32((-l+math.Sqrt(l*l-4*q*(c-256.0/5.0*float64(brightest))))/(2*q))

	// turn the pyramid's axis from straight down onto the light direction
	down := mgl32.Vec3{0, -1, 0}
	dir := s.Direction.Normalize()
	rotate := mgl32.Ident4()
	if cos := dir.Dot(down); cos < 1-1e-6 {
		axis := down.Cross(dir)
		if axis.Len() < 1e-6 {
			axis = mgl32.Vec3{1, 0, 0}
		}
		angle := float32(math.Acos(float64(mgl32.Clamp(cos, -1, 1))))
		rotate = mgl32.HomogRotate3D(angle, axis.Normalize())
	}

	extends := float32(math.Tan(float64(s.Outer))) * reach
	return mgl32.Translate3D(s.Position[0], s.Position[1], s.Position[2]).
		Mul4(rotate).
		Mul4(mgl32.Scale3D(extends, reach, extends))
}

// street lamps of the city, in model space
var lamps = []mgl32.Vec3{
	{15.0, 14.5, 5.2}, {40.0, 14.5, 5.2}, {51.0, 14.5, 30.0}, {51.0, 14.5, -25.0},
	{14.5, 14.5, -1.0}, {39.5, 14.5, -1.0}, {-2.3, 14.5, 15.5}, {-2.3, 14.5, 43.0},
	{16.0, 14.5, 52.0}, {-49.0, 14.5, 43.0}, {-49.0, 14.5, 15.5}, {-49.0, 15.5, -25.5},
	{-15.5, 15.5, -40.5}, {-15.5, 15.5, -9.5}, {15.5, 14.5, -48.5}, {39.5, 14.5, -48.5},
}

func init() {
	runtime.LockOSThread()
}

func main() {
	defaults := viewer.DefaultSettings()
	defaults.Title = "Deferred Rendering"
	viewer.Execute(viewer.Command("deferred_rendering", "Deferred shading with light volumes", defaults, run))
}

func gbufferTexture(ctx *opengl.Context, internal opengl.InternalType, format opengl.Format, typ opengl.PixelType, w, h int) *opengl.Texture {
	tex := ctx.NewTextureSized(internal, format, typ, w, h)
	tex.SetMinFilter(opengl.MinNearest)
	tex.SetMagFilter(opengl.MagNearest)
	return tex
}

func run(s viewer.Settings) error {
	v, err := viewer.New(s)
	if err != nil {
		return err
	}
	defer v.Destroy()
	ctx := v.Context()

	cam := v.Camera()
	cam.SetPosition(mgl32.Vec3{-5, 3, -6})

	control := &passes{directional: true, spots: true, distanceScale: 0.03}
	sun := &light{
		angles:  mgl32.Vec2{math.Pi / 4, math.Pi / 4},
		ambient: mgl32.Vec3{0.1, 0.1, 0.1},
		color:   mgl32.Vec3{0, 0, 0.2},
	}
	sun.update()

	modelMatrix := mgl32.Scale3D(0.05, 0.05, 0.05).Mul4(mgl32.Translate3D(0, 2, 0))
	spots := make([]spotLight, len(lamps))
	for i, lamp := range lamps {
		spots[i] = newSpotLight(mgl32.TransformCoordinate(lamp, modelMatrix))
	}

	model := asset.LoadOBJ[vertex, material](ctx, s.Asset("small_city/small_city.obj"))
	if model == nil {
		return errors.New("couldn't load model")
	}
	defer model.Delete()
	screen := viewer.NewScreenPass(ctx)
	defer screen.Delete()
	pyramid, err := asset.Pyramid[volumeVertex](ctx)
	if err != nil {
		return err
	}
	defer pyramid.Delete()
	spotBuffer := opengl.NewBuffer(ctx, opengl.ShaderStorageBuffer, spots, opengl.DynamicDraw)
	defer spotBuffer.Delete()

	shaders, _ := fs.Sub(shaderFiles, "shaders")
	lib, err := v.Shaders(shaders)
	if err != nil {
		return err
	}
	gpass, err := lib.Load("gpass", viewer.Vertex("gpass.vert"), viewer.Fragment("gpass.frag"))
	if err != nil {
		return err
	}
	lightDir, err := lib.Load("light_dir", viewer.Vertex("light_dir.vert"), viewer.Fragment("light_dir.frag"))
	if err != nil {
		return err
	}
	lightSpots, err := lib.Load("light_spots", viewer.Vertex("light_spots.vert"), viewer.Fragment("light_spots.frag"))
	if err != nil {
		return err
	}
	debug, err := lib.Load("debug_light", viewer.Vertex("debug_light.vert"), viewer.Fragment("debug_light.frag"))
	if err != nil {
		return err
	}

	width, height := v.Window().FramebufferSize()
	texPos := gbufferTexture(ctx, opengl.RGB16F, opengl.FormatRGB, opengl.PixelFloat, width, height)
	texNormal := gbufferTexture(ctx, opengl.RGB16F, opengl.FormatRGB, opengl.PixelFloat, width, height)
	texMaterial := gbufferTexture(ctx, opengl.RGBA8, opengl.FormatRGBA, opengl.PixelUnsignedByte, width, height)
	texDepth := gbufferTexture(ctx, opengl.Depth32, opengl.FormatDepth, opengl.PixelUnsignedInt, width, height)
	gbuffer := []*opengl.Texture{texPos, texNormal, texMaterial, texDepth}

	fbGBuffer := ctx.NewFramebuffer()
	defer fbGBuffer.Delete()
	fbGBuffer.AttachColorTexture(0, texPos)
	fbGBuffer.AttachColorTexture(1, texNormal)
	fbGBuffer.AttachColorTexture(2, texMaterial)
	fbGBuffer.AttachDepthTexture(texDepth)
	fbGBuffer.DrawAttachment(0, 1, 2)
	if !fbGBuffer.Completed() {
		return errors.New("gbuffer incomplete")
	}

	ctx.Enable(opengl.DepthTest)
	ctx.Enable(opengl.CullFace)
	ctx.Cull(opengl.Back)

	v.OnRender(func(window core.Window, _ time.Duration) {
		w, h := window.FramebufferSize()
		viewSize := mgl32.Vec2{float32(w), float32(h)}

		// 1. geometry
		fbGBuffer.Bind(opengl.ReadWriteFramebuffer)
		ctx.ClearColor(0, 0, 0, 1)
		ctx.Clear(opengl.ClearColorDepth)
		gpass.Bind()
		gpass.SetMat4("uModel", modelMatrix)
		gpass.SetMat4("uView", cam.View())
		gpass.SetMat4("uProj", cam.Projection())
		gpass.SetInt("uMaterial.map_diffuse", 0)
		for _, group := range model.Groups() {
			gpass.SetFloat("uMaterial.shininess", group.Material.Shininess)
			group.Material.Diffuse.Bind(0)
			group.Draw(opengl.Triangles)
		}
		fbGBuffer.Unbind()

		// 2. directional light
		if control.directional {
			cull := ctx.Disable(opengl.CullFace)
			lightDir.Bind()
			lightDir.SetInt("gBuffer.pos", 0)
			lightDir.SetInt("gBuffer.normal", 1)
			lightDir.SetInt("gBuffer.material", 2)
			lightDir.SetVec3("uViewPos", cam.Position())
			lightDir.SetVec2("uViewSize", viewSize)
			lightDir.SetVec3("uLight.direction", sun.direction)
			lightDir.SetVec3("uLight.ambient", sun.ambient)
			lightDir.SetVec3("uLight.color", sun.color)
			screen.Draw(lightDir, texPos, texNormal, texMaterial)
			ctx.Set(opengl.CullFace, cull)
		}

		// light volumes are depth tested against the scene
		fbGBuffer.BlitDefault(0, 0, w, h, opengl.ClearDepth)

		// 3. spot lights, added on top
		if control.spots {
			blend := ctx.Enable(opengl.Blend)
			src, dst := ctx.BlendFunc(opengl.FactorSrcAlpha, opengl.FactorOne)
			mask := ctx.DepthMask(false)

			lightSpots.Bind()
			lightSpots.SetMat4("uView", cam.View())
			lightSpots.SetMat4("uProj", cam.Projection())
			lightSpots.SetVec3("uViewPos", cam.Position())
			lightSpots.SetVec2("uViewSize", viewSize)
			lightSpots.SetInt("gBuffer.pos", 0)
			lightSpots.SetInt("gBuffer.normal", 1)
			lightSpots.SetInt("gBuffer.material", 2)
			texPos.Bind(0)
			texNormal.Bind(1)
			texMaterial.Bind(2)
			spotBuffer.BindBase(0)

			for i := range spots {
				lightSpots.SetInt("uLightIndex", int32(i))
				lightSpots.SetMat4("uModel", spots[i].volume(control.distanceScale))
				pyramid.Draw(opengl.Triangles)
			}

			ctx.Set(opengl.Blend, blend)
			ctx.BlendFunc(src, dst)
			ctx.DepthMask(mask)
		}

		if control.debug {
			mode := ctx.PolygonMode(opengl.ModeLine)
			debug.Bind()
			debug.SetMat4("uView", cam.View())
			debug.SetMat4("uProj", cam.Projection())
			for i := range spots {
				debug.SetMat4("uModel", spots[i].volume(control.distanceScale))
				pyramid.Draw(opengl.Triangles)
			}
			ctx.PolygonMode(mode)
		}
	})

	v.OnResize(func(_ core.Window, w, h int) {
		for _, tex := range gbuffer {
			tex.Resize(w, h)
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

			// all spot lights share the settings of the first
			first := &spots[0]
			changed := false
			gui.TextColored(gui.Yellow, "Spot Lights: ")
			imgui.PushID("spotlight")
			changed = gui.DragFloat("inner cutoff", &first.Inner, 0.01, 0, first.Outer, "%.3f") || changed
			changed = gui.DragFloat("outer cutoff", &first.Outer, 0.01, first.Inner, math.Pi, "%.3f") || changed
			changed = gui.ColorEdit3("color", &first.Color) || changed
			imgui.PopID()
			gui.DragFloat("light volume scale", &control.distanceScale, 0.01, 0, 1, "%.3f")
			if changed {
				for i := range spots[1:] {
					spots[i+1].Inner, spots[i+1].Outer, spots[i+1].Color = first.Inner, first.Outer, first.Color
				}
				spotBuffer.Data(spots)
			}

			imgui.Checkbox("directlight pass", &control.directional)
			imgui.Checkbox("spotlight pass", &control.spots)
			imgui.Checkbox("lightvolume debug", &control.debug)
		}
		imgui.End()

		_, height := window.Size()
		if gui.BeginPanel("##GBuffer", 16, float32(height)-256-32) {
			v.GUI().Image(texPos, 128, 128)
			imgui.SameLine()
			v.GUI().Image(texNormal, 128, 128)
			v.GUI().Image(texMaterial, 128, 128)
			imgui.SameLine()
			v.GUI().Image(texDepth, 128, 128)
		}
		imgui.End()
	})
	v.OnKey(viewer.StandardKeys)

	v.Run()
	return nil
}
