package main

import (
	"math"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d", i)
	}
}

func TestVolumeCoversLightReach(t *testing.T) {
	spot := newSpotLight(mgl32.Vec3{1, 2, 3})
	m := spot.volume(1)

	// 5/256 of the full brightness is reached at this distance
	l, q := 0.09, 0.032
	reach := float32((-l + math.Sqrt(l*l-4*q*(1-256.0/5.0))) / (2 * q))

	assertVec3(t, mgl32.Vec3{1, 2, 3}, mgl32.TransformCoordinate(mgl32.Vec3{}, m))
	assertVec3(t, mgl32.Vec3{1, 2 - reach, 3}, mgl32.TransformCoordinate(mgl32.Vec3{0, -1, 0}, m))

	extends := float32(math.Tan(math.Pi/5)) * reach
	assertVec3(t, mgl32.Vec3{1 + extends, 2 - reach, 3}, mgl32.TransformCoordinate(mgl32.Vec3{1, -1, 0}, m))
}

func TestVolumeScalesWithDistanceScale(t *testing.T) {
	spot := newSpotLight(mgl32.Vec3{})
	full := mgl32.TransformCoordinate(mgl32.Vec3{0, -1, 0}, spot.volume(1))
	half := mgl32.TransformCoordinate(mgl32.Vec3{0, -1, 0}, spot.volume(0.5))
	assert.InDelta(t, full[1]/2, half[1], 1e-4)
}

func TestVolumeFollowsDirection(t *testing.T) {
	for _, dir := range []mgl32.Vec3{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}} {
		spot := newSpotLight(mgl32.Vec3{})
		spot.Direction = dir
		m := spot.volume(1)

		axis := mgl32.TransformCoordinate(mgl32.Vec3{0, -1, 0}, m).Normalize()
		assertVec3(t, dir, axis)
	}
}

func TestSpotLightLayout(t *testing.T) {
	// std430: three padded vec3 rows followed by five floats
	var s spotLight
	assert.Equal(t, uintptr(64), unsafe.Sizeof(s))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(s.Direction))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(s.Color))
	assert.Equal(t, uintptr(44), unsafe.Offsetof(s.Inner))
}
