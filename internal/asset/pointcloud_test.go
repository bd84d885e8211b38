package asset

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pointVertex struct {
	Position mgl32.Vec3 `obj:"position"`
	Color    mgl32.Vec3 `obj:"color"`
}

const asciiPLY = `ply
format ascii 1.0
comment two points
element vertex 2
property float x
property float y
property float z
property uchar red
property uchar green
property uchar blue
element face 1
property list uchar int vertex_indices
end_header
0 0 0 255 0 0
1 2 3 0 51 255
3 0 1 1
`

func TestReadPLYASCII(t *testing.T) {
	points, err := readPLY(strings.NewReader(asciiPLY), true)
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {1, 2, 3}}, points.positions)
	require.Len(t, points.colors, 2)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, points.colors[0])
	assert.InDelta(t, 0.2, points.colors[1][1], 1e-6)
}

func TestReadPLYBinary(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ply\nformat binary_little_endian 1.0\n" +
		"element vertex 1\n" +
		"property list uchar int extra\n" +
		"property double x\nproperty double y\nproperty double z\n" +
		"property float red\nproperty float green\nproperty float blue\n" +
		"end_header\n")
	buf.WriteByte(2)
	binary.Write(&buf, binary.LittleEndian, []int32{7, 8})
	binary.Write(&buf, binary.LittleEndian, []float64{0.5, -1, 4})
	binary.Write(&buf, binary.LittleEndian, []float32{0.25, 0.5, 0.75})

	points, err := readPLY(&buf, true)
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec3{{0.5, -1, 4}}, points.positions)
	assert.Equal(t, []mgl32.Vec3{{0.25, 0.5, 0.75}}, points.colors)
}

func TestReadPLYErrors(t *testing.T) {
	noColor := "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nend_header\n1 2 3\n"

	points, err := readPLY(strings.NewReader(noColor), false)
	require.NoError(t, err)
	assert.Nil(t, points.colors)

	_, err = readPLY(strings.NewReader(noColor), true)
	assert.ErrorContains(t, err, "no red property")

	_, err = readPLY(strings.NewReader("obj\n"), false)
	assert.ErrorContains(t, err, "magic")

	_, err = readPLY(strings.NewReader("ply\nformat binary_big_endian 1.0\nend_header\n"), false)
	assert.ErrorContains(t, err, "binary_big_endian")

	truncated := strings.Replace(noColor, "1 2 3\n", "1 2\n", 1)
	_, err = readPLY(strings.NewReader(truncated), false)
	assert.Error(t, err)
}

func TestLoadPointCloudPLY(t *testing.T) {
	ctx, d := newTestContext(t)
	path := writeFile(t, t.TempDir(), "points.ply", asciiPLY)

	mesh := LoadPointCloudPLY[pointVertex](ctx, path)
	require.NotNil(t, mesh)
	assert.Equal(t, "pointcloud", mesh.Name)
	assert.Nil(t, mesh.Indices)

	vertices := uploaded(t, d, mesh.Vertices)
	require.Len(t, vertices, 2)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, vertices[1].Position)
	assert.Equal(t, float32(1), vertices[1].Color[2])
}

func TestLoadPointCloudPLYMissing(t *testing.T) {
	logs := observeLogs(t)
	ctx, _ := newTestContext(t)

	assert.Nil(t, LoadPointCloudPLY[pointVertex](ctx, filepath.Join(t.TempDir(), "none.ply")))
	assert.Equal(t, 1, logs.FilterMessage("cannot find ply file").Len())
}

func TestScanOBJ(t *testing.T) {
	src := "# cloud\nmtllib a.mtl b.mtl\nv 0 0 0 1 0 0\nv 1 1 1 0 1 0\nv 0 0 0 0 0 1\nvn 0 1 0\n"

	scan, err := scanOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, scan.positions, 3)
	assert.Len(t, scan.colors, 3)

	index := scan.colorIndex()
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, index[mgl32.Vec3{0, 0, 0}], "first color wins")
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, index[mgl32.Vec3{1, 1, 1}])

	partial, err := scanOBJ(strings.NewReader("v 0 0 0 1 1 1\nv 1 0 0\n"))
	require.NoError(t, err)
	assert.Nil(t, partial.colors)
	assert.Nil(t, partial.colorIndex())

	_, err = scanOBJ(strings.NewReader("v 0 0\n"))
	assert.ErrorContains(t, err, "line 1")
}

func TestLoadPointCloudOBJ(t *testing.T) {
	logs := observeLogs(t)
	ctx, d := newTestContext(t)
	dir := t.TempDir()

	colored := LoadPointCloudOBJ[pointVertex](ctx, writeFile(t, dir, "c.obj", "v 0 1 2 0.5 0.5 0.5\nv 3 4 5 1 1 1\n"))
	require.NotNil(t, colored)
	vertices := uploaded(t, d, colored.Vertices)
	require.Len(t, vertices, 2)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, vertices[0].Color)

	plain := LoadPointCloudOBJ[pointVertex](ctx, writeFile(t, dir, "p.obj", "v 0 1 2\n"))
	require.NotNil(t, plain)
	assert.Equal(t, 1, logs.FilterMessage("vertex colors requested but missing").FilterLevelExact(zap.WarnLevel).Len())

	assert.Nil(t, LoadPointCloudOBJ[pointVertex](ctx, writeFile(t, dir, "empty.obj", "vn 0 0 1\n")))
	assert.Equal(t, 1, logs.FilterMessage("obj file does not contain vertices").Len())

	assert.Nil(t, LoadPointCloudOBJ[pointVertex](ctx, filepath.Join(dir, "gone.obj")))
	assert.Equal(t, 1, logs.FilterMessage("cannot find obj file").Len())
}
