package asset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/braheezy/glviewer/internal/logger"
	"github.com/braheezy/glviewer/internal/opengl"
	"github.com/braheezy/glviewer/internal/opengl/gltest"
)

func newTestContext(t *testing.T) (*opengl.Context, *gltest.Driver) {
	t.Helper()
	d := gltest.New()
	ctx := opengl.NewContext(d, false)
	d.Reset()
	return ctx, d
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	prev := logger.Log
	logger.Use(zap.New(core))
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writePNG stores rows of colors, top row first.
func writePNG(t *testing.T, dir, name string, rows [][]color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, c := range row {
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// uploaded reads back the vertices a buffer holds in the recording driver.
func uploaded[V any](t *testing.T, d *gltest.Driver, vb *opengl.VertexBuffer[V]) []V {
	t.Helper()
	data := d.Buffers[vb.Handle()]
	var zero V
	size := int(unsafe.Sizeof(zero))
	require.Zero(t, len(data)%size)
	out := make([]V, len(data)/size)
	if len(out) > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), len(data)), data)
	}
	return out
}
