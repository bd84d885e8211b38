package imgui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

var (
	White  = imgui.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	Yellow = imgui.Vec4{X: 1, Y: 1, W: 1}
)

// BeginSettings opens the untitled, auto sized panel the demos keep their
// controls in. It must be paired with imgui.End.
func BeginSettings() bool {
	return BeginPanel("##Settings", 16, 16)
}

// BeginPanel opens an untitled panel at x, y.
func BeginPanel(id string, x, y float32) bool {
	imgui.SetNextWindowPos(imgui.Vec2{X: x, Y: y})
	return imgui.BeginV(id, nil,
		imgui.WindowFlagsNoSavedSettings|imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoTitleBar)
}

// TextColored prints formatted text in color.
func TextColored(color imgui.Vec4, format string, args ...any) {
	imgui.PushStyleColor(imgui.StyleColorText, color)
	imgui.Text(fmt.Sprintf(format, args...))
	imgui.PopStyleColor()
}

// Heading is a yellow section title followed by spacing above it.
func Heading(title string) {
	imgui.Dummy(imgui.Vec2{Y: 16})
	TextColored(Yellow, "%s", title)
}

func ColorEdit3(label string, v *mgl32.Vec3) bool {
	return imgui.ColorEdit3(label, (*[3]float32)(v))
}

func DragVec2(label string, v *mgl32.Vec2, speed, min, max float32) bool {
	return imgui.DragFloat2V(label, (*[2]float32)(v), speed, min, max, "%.3f", imgui.SliderFlagsNone)
}

func DragVec3(label string, v *mgl32.Vec3, speed, min, max float32) bool {
	return imgui.DragFloat3V(label, (*[3]float32)(v), speed, min, max, "%.3f", imgui.SliderFlagsNone)
}

func DragFloat(label string, v *float32, speed, min, max float32, format string) bool {
	return imgui.DragFloatV(label, v, speed, min, max, format, imgui.SliderFlagsNone)
}

func SliderFloat(label string, v *float32, min, max float32, format string) bool {
	return imgui.SliderFloatV(label, v, min, max, format, imgui.SliderFlagsNone)
}

func SliderInt(label string, v *int32, min, max int32) bool {
	return imgui.SliderInt(label, v, min, max)
}

func DragInt(label string, v *int32, speed float32, min, max int32) bool {
	return imgui.DragIntV(label, v, speed, min, max, "%d", imgui.SliderFlagsNone)
}
