// pointcloud_viewer draws a colored point cloud as lit sphere impostors.
package main

import (
	"embed"
	"io/fs"
	"math"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/braheezy/glviewer/internal/core"
	gui "github.com/braheezy/glviewer/internal/imgui"
	"github.com/braheezy/glviewer/internal/opengl"
	"github.com/braheezy/glviewer/internal/viewer"
)

//go:embed shaders
var shaderFiles embed.FS

type pointcloudSettings struct {
	direction mgl32.Vec3
	ambient   mgl32.Vec3
	color     mgl32.Vec3
	angles    mgl32.Vec2

	radius    float32
	shininess float32
	specular  mgl32.Vec3
}

func newPointcloudSettings() *pointcloudSettings {
	q := float32(math.Pi / 4)
	down := mgl32.HomogRotate3DY(q).Mul4(mgl32.HomogRotate3DX(q)).Mul4(mgl32.HomogRotate3DZ(q)).Mul4x1(mgl32.Vec4{0, -1, 0, 0})
	return &pointcloudSettings{
		direction: down.Vec3(),
		ambient:   mgl32.Vec3{0.3, 0.3, 0.3},
		color:     mgl32.Vec3{1, 1, 1},
		angles:    mgl32.Vec2{q, q},
		radius:    0.0036,
		shininess: 32,
	}
}

func (s *pointcloudSettings) updateDirection() {
	sx, cx := math.Sincos(float64(s.angles[0]))
	sy, cy := math.Sincos(float64(s.angles[1]))
	s.direction = mgl32.Vec3{float32(sx * sy), float32(cy), float32(cx * sy)}.Normalize().Mul(-1)
}

var (
	cloudPath = "pc_porsche/porsche.ply"

	hintKey  = imgui.Vec4{X: 0.5, Y: 0.5, W: 1}
	hintText = imgui.Vec4{X: 0.2, Y: 0.2, Z: 0.2, W: 0.9}
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defaults := viewer.DefaultSettings()
	defaults.Title = "Pointcloud Viewer"
	cmd := viewer.Command("pointcloud_viewer", "Point clouds rendered as sphere billboards", defaults, run)
	cmd.Flags().StringVar(&cloudPath, "cloud", cloudPath, "point cloud to load, .ply or .obj")
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
	cam.SetPosition(mgl32.Vec3{0.0075, 0.35, 0.65})
	cam.SetClipPlanes(0.1, 50)

	cloud, err := loadCloud(ctx, s.Asset(cloudPath))
	if err != nil {
		return err
	}
	defer cloud.Delete()

	shaders, _ := fs.Sub(shaderFiles, "shaders")
	lib, err := v.Shaders(shaders)
	if err != nil {
		return err
	}
	billboard, err := lib.Load("billboard",
		viewer.Vertex("billboard.vert"), viewer.Geometry("billboard.geom"), viewer.Fragment("blinn_phong.frag"))
	if err != nil {
		return err
	}

	ctx.Enable(opengl.DepthTest)
	ctx.ClearColor(1, 1, 1, 1)
	pc := newPointcloudSettings()

	v.OnRender(func(core.Window, time.Duration) {
		view := cam.View()
		billboard.Bind()
		billboard.SetMat4("uModel", mgl32.Ident4())
		billboard.SetMat4("uView", view)
		billboard.SetMat4("uProj", cam.Projection())
		billboard.SetFloat("uRadius", pc.radius)
		// lighting is done in view space
		billboard.SetVec3("uLight.direction", view.Mat3().Mul3x1(pc.direction.Normalize()))
		billboard.SetVec3("uLight.ambient", pc.ambient)
		billboard.SetVec3("uLight.color", pc.color)
		billboard.SetVec3("uMaterial.specular", pc.specular)
		billboard.SetFloat("uMaterial.shininess", pc.shininess)
		cloud.Draw(opengl.Points)
	})

	v.OnGUI(func(window core.Window, _ time.Duration) {
		if gui.BeginSettings() {
			gui.TextColored(gui.White, "FPS:       %4.2f        ", v.Frameclock().Fps())

			gui.Heading("Light: ")
			imgui.PushID("light")
			if gui.DragVec2("direction", &pc.angles, 0.01, -2*math.Pi, 2*math.Pi) {
				pc.updateDirection()
			}
			gui.ColorEdit3("ambient", &pc.ambient)
			gui.ColorEdit3("color", &pc.color)
			imgui.PopID()

			gui.Heading("Point Cloud: ")
			imgui.PushID("pc")
			gui.DragFloat("radius", &pc.radius, 0.0001, 0.00001, 0.1, "%.5f")
			gui.DragFloat("shininess", &pc.shininess, 1, 0, 1024, "%.1f")
			gui.ColorEdit3("specular", &pc.specular)
			imgui.PopID()
		}
		imgui.End()

		_, height := window.Size()
		imgui.SetNextWindowPos(imgui.Vec2{X: 16, Y: float32(height) - 50})
		if imgui.BeginV("##Desc", nil, imgui.WindowFlagsNoSavedSettings|imgui.WindowFlagsNoTitleBar|
			imgui.WindowFlagsNoBackground|imgui.WindowFlagsAlwaysAutoResize) {
			gui.TextColored(hintKey, "[Mouse Left Button] ")
			imgui.SameLine()
			gui.TextColored(hintText, " Camera Control")
		}
		imgui.End()
	})
	v.OnKey(viewer.StandardKeys)

	v.Run()
	return nil
}
