package main

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braheezy/glviewer/internal/asset"
	"github.com/braheezy/glviewer/internal/opengl"
	"github.com/braheezy/glviewer/internal/opengl/gltest"
)

func TestLoadCloudByExtension(t *testing.T) {
	d := gltest.New()
	ctx := opengl.NewContext(d, false)
	points := func(cloud *asset.Mesh[vertex]) int {
		return len(d.Buffers[cloud.Vertices.Handle()]) / int(unsafe.Sizeof(vertex{}))
	}
	dir := t.TempDir()

	ply := filepath.Join(dir, "two.PLY")
	require.NoError(t, os.WriteFile(ply, []byte(`ply
format ascii 1.0
element vertex 2
property float x
property float y
property float z
property uchar red
property uchar green
property uchar blue
end_header
0 0 0 255 0 0
1 1 1 0 255 0
`), 0o644))
	cloud, err := loadCloud(ctx, ply)
	require.NoError(t, err)
	assert.Equal(t, 2, points(cloud))

	obj := filepath.Join(dir, "three.obj")
	require.NoError(t, os.WriteFile(obj, []byte("v 0 0 0 1 0 0\nv 1 0 0 0 1 0\nv 0 1 0 0 0 1\n"), 0o644))
	cloud, err = loadCloud(ctx, obj)
	require.NoError(t, err)
	assert.Equal(t, 3, points(cloud))

	_, err = loadCloud(ctx, filepath.Join(dir, "cloud.xyz"))
	assert.Error(t, err)
	_, err = loadCloud(ctx, filepath.Join(dir, "missing.ply"))
	assert.Error(t, err)
}

func TestLightDirectionPointsDown(t *testing.T) {
	pc := newPointcloudSettings()
	assert.InDelta(t, 1, pc.direction.Len(), 1e-5)
	assert.Less(t, pc.direction[1], float32(0))

	pc.angles[1] = 0
	pc.updateDirection()
	assert.InDelta(t, -1, pc.direction[1], 1e-5)
}
