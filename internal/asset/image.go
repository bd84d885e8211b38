// Package asset loads images, textures, models, point clouds and volumes from disk
// and turns them into GPU resources.
package asset

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/braheezy/glviewer/internal/logger"
)

// Color is an 8 bit RGBA color.
type Color [4]uint8

var (
	Red   = Color{255, 0, 0, 255}
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)

// Image is a tightly packed RGBA8 pixel grid, row 0 first.
type Image struct {
	width, height int
	pix           []uint8
}

// NewImage creates a width×height image filled with c.
func NewImage(width, height int, c Color) *Image {
	img := &Image{width: width, height: height, pix: make([]uint8, width*height*4)}
	for i := 0; i < len(img.pix); i += 4 {
		copy(img.pix[i:i+4], c[:])
	}
	return img
}

// ImageFrom converts any decoded image to straight alpha RGBA8.
func ImageFrom(src image.Image) *Image {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	img := &Image{width: b.Dx(), height: b.Dy(), pix: make([]uint8, b.Dx()*b.Dy()*4)}
	for y := 0; y < img.height; y++ {
		copy(img.pix[y*img.width*4:(y+1)*img.width*4], dst.Pix[y*dst.Stride:])
	}
	return img
}

func (m *Image) Size() (width, height int) { return m.width, m.height }

// Pix returns the packed pixel bytes.
func (m *Image) Pix() []uint8 { return m.pix }

func (m *Image) At(x, y int) Color {
	i := m.offset(x, y)
	return Color{m.pix[i], m.pix[i+1], m.pix[i+2], m.pix[i+3]}
}

func (m *Image) Set(x, y int, c Color) {
	i := m.offset(x, y)
	copy(m.pix[i:i+4], c[:])
}

func (m *Image) offset(x, y int) int {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		panic(errors.Errorf("pixel (%d, %d) out of bounds %dx%d", x, y, m.width, m.height))
	}
	return (y*m.width + x) * 4
}

// FlipVertical returns a copy with the rows in reverse order, the layout GL
// expects for textures.
func (m *Image) FlipVertical() *Image {
	out := &Image{width: m.width, height: m.height, pix: make([]uint8, len(m.pix))}
	row := m.width * 4
	for y := 0; y < m.height; y++ {
		copy(out.pix[(m.height-1-y)*row:(m.height-y)*row], m.pix[y*row:(y+1)*row])
	}
	return out
}

// DecodeImage reads an image file in any registered format.
func DecodeImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode image %s", path)
	}
	return ImageFrom(src), nil
}

// LoadImage decodes path. Failures are logged and give a 1×1 red image.
func LoadImage(path string) *Image {
	img, err := DecodeImage(path)
	if err != nil {
		logger.Log.Error("couldn't load image", zap.String("path", path), zap.Error(err))
		return NewImage(1, 1, Red)
	}
	return img
}
