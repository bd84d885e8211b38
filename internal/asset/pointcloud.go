package asset

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/logger"
	"github.com/braheezy/glviewer/internal/opengl"
)

// LoadPointCloudOBJ uploads every v record of an OBJ file as a point, with its
// color when V has a color field. Failures are logged and return nil.
func LoadPointCloudOBJ[V any](ctx *opengl.Context, path string) *Mesh[V] {
	fields, err := fieldsOf[V]()
	if err != nil {
		logger.Log.Error("invalid point cloud vertex", zap.Error(err))
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		logger.Log.Error("cannot find obj file", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer f.Close()

	scan, err := scanOBJ(f)
	if err != nil {
		logger.Log.Error("couldn't parse obj file", zap.String("path", path), zap.Error(err))
		return nil
	}
	if len(scan.positions) == 0 {
		logger.Log.Error("obj file does not contain vertices", zap.String("path", path))
		return nil
	}
	if fields.has(fieldColor) && scan.colors == nil {
		logger.Log.Warn("vertex colors requested but missing", zap.String("path", path))
	}
	return pointMesh(ctx, fields, scan.positions, scan.colors)
}

// LoadPointCloudPLY reads the vertex element of an ascii or binary little endian
// PLY file. Failures are logged and return nil.
func LoadPointCloudPLY[V any](ctx *opengl.Context, path string) *Mesh[V] {
	fields, err := fieldsOf[V]()
	if err != nil {
		logger.Log.Error("invalid point cloud vertex", zap.Error(err))
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		logger.Log.Error("cannot find ply file", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer f.Close()

	points, err := readPLY(f, fields.has(fieldColor))
	if err != nil {
		logger.Log.Error("couldn't parse ply file", zap.String("path", path), zap.Error(err))
		return nil
	}
	if len(points.positions) == 0 {
		logger.Log.Error("ply file does not contain vertices", zap.String("path", path))
		return nil
	}
	return pointMesh(ctx, fields, points.positions, points.colors)
}

func pointMesh[V any](ctx *opengl.Context, fields *vertexFields[V], positions, colors []mgl32.Vec3) *Mesh[V] {
	vertices := make([]V, len(positions))
	for i := range vertices {
		fields.set(&vertices[i], fieldPosition, positions[i])
		if i < len(colors) {
			fields.set(&vertices[i], fieldColor, colors[i])
		}
	}
	return NewMesh(ctx, "pointcloud", vertices, nil)
}
