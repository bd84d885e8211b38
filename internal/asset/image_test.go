package asset

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/opengl"
)

var (
	red  = color.NRGBA{255, 0, 0, 255}
	blue = color.NRGBA{0, 0, 255, 255}
)

func TestImagePixels(t *testing.T) {
	img := NewImage(2, 3, White)
	w, h := img.Size()
	assert.Equal(t, [2]int{2, 3}, [2]int{w, h})
	assert.Len(t, img.Pix(), 24)

	img.Set(1, 2, Red)
	assert.Equal(t, Red, img.At(1, 2))
	assert.Equal(t, White, img.At(0, 0))
	assert.Panics(t, func() { img.At(2, 0) })

	flipped := img.FlipVertical()
	assert.Equal(t, Red, flipped.At(1, 0))
	assert.Equal(t, White, img.At(1, 0))
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "two.png", [][]color.NRGBA{{red, blue}})

	img := LoadImage(path)
	w, h := img.Size()
	require.Equal(t, [2]int{2, 1}, [2]int{w, h})
	assert.Equal(t, Red, img.At(0, 0))
	assert.Equal(t, Color{0, 0, 255, 255}, img.At(1, 0))
}

func TestLoadImageMissingIsRed(t *testing.T) {
	logs := observeLogs(t)

	img := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	w, h := img.Size()
	assert.Equal(t, [2]int{1, 1}, [2]int{w, h})
	assert.Equal(t, Red, img.At(0, 0))
	assert.Equal(t, 1, logs.FilterLevelExact(zap.ErrorLevel).Len())
}

func TestLoadTextureFlipsRows(t *testing.T) {
	ctx, d := newTestContext(t)
	dir := t.TempDir()
	path := writePNG(t, dir, "stripes.png", [][]color.NRGBA{{red}, {blue}})

	tex := LoadTexture(ctx, path)
	w, h := tex.Size()
	require.Equal(t, [2]int{1, 2}, [2]int{w, h})
	assert.Equal(t, opengl.RGBA8, tex.InternalType())

	pix := d.Textures[tex.Handle()].Pixels
	require.Len(t, pix, 8)
	assert.Equal(t, []byte{0, 0, 255, 255}, pix[:4], "bottom row is uploaded first")
	assert.Equal(t, []byte{255, 0, 0, 255}, pix[4:])
}

func TestLoadTextureFallbackIsRed(t *testing.T) {
	logs := observeLogs(t)
	ctx, d := newTestContext(t)

	tex := LoadTexture(ctx, filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Equal(t, []byte{255, 0, 0, 255}, d.Textures[tex.Handle()].Pixels)
	assert.Equal(t, 1, logs.FilterMessage("couldn't load texture").Len())
}

func TestLoadTextureHDR(t *testing.T) {
	ctx, d := newTestContext(t)
	dir := t.TempDir()
	header := "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 1 +X 2\n"
	path := writeFile(t, dir, "sky.hdr", header+string([]byte{128, 64, 32, 129, 128, 128, 128, 128}))

	tex := LoadTexture(ctx, path)
	assert.Equal(t, opengl.RGB32F, tex.InternalType())
	assert.Equal(t, opengl.PixelFloat, tex.PixelType())
	assert.Len(t, d.Textures[tex.Handle()].Pixels, 2*3*4)
}

func TestTextureFromImageKeepsRows(t *testing.T) {
	ctx, d := newTestContext(t)

	img := NewImage(1, 2, Black)
	img.Set(0, 0, Red)
	tex := TextureFromImage(ctx, img)
	assert.Equal(t, []byte{255, 0, 0, 255}, d.Textures[tex.Handle()].Pixels[:4])

	solid := TextureColor(ctx, 2, 2, White)
	assert.Len(t, d.Textures[solid.Handle()].Pixels, 16)
}
