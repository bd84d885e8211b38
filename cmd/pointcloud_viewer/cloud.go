package main

import (
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/braheezy/glviewer/internal/asset"
	"github.com/braheezy/glviewer/internal/opengl"
)

type vertex struct {
	Position mgl32.Vec3 `obj:"position"`
	Color    mgl32.Vec3 `obj:"color"`
}

// loadCloud reads a .ply or .obj point cloud.
func loadCloud(ctx *opengl.Context, path string) (*asset.Mesh[vertex], error) {
	var cloud *asset.Mesh[vertex]
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ply":
		cloud = asset.LoadPointCloudPLY[vertex](ctx, path)
	case ".obj":
		cloud = asset.LoadPointCloudOBJ[vertex](ctx, path)
	default:
		return nil, errors.Errorf("%s: unsupported point cloud format %q", path, ext)
	}
	if cloud == nil {
		return nil, errors.Errorf("couldn't read point cloud %s", path)
	}
	return cloud, nil
}
