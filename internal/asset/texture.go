package asset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/logger"
	"github.com/braheezy/glviewer/internal/opengl"
)

// pixels is a decoded texture, already flipped for upload. Exactly one of ldr
// and hdr is set.
type pixels struct {
	width, height int
	ldr           *Image
	hdr           []float32
}

func decodeTexture(path string) (*pixels, error) {
	if strings.EqualFold(filepath.Ext(path), ".hdr") {
		return decodeHDR(path)
	}
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	w, h := img.Size()
	return &pixels{width: w, height: h, ldr: img.FlipVertical()}, nil
}

// decodeHDR reads a Radiance RGBE file into bottom-up RGB floats.
func decodeHDR(path string) (*pixels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open hdr image")
	}
	defer f.Close()

	src, err := rgbe.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode hdr image %s", path)
	}
	img, ok := src.(hdr.Image)
	if !ok {
		return nil, errors.Errorf("%s is not a high dynamic range image", path)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]float32, 0, w*h*3)
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.HDRAt(x, y).HDRRGBA()
			data = append(data, float32(r), float32(g), float32(bl))
		}
	}
	return &pixels{width: w, height: h, hdr: data}, nil
}

func (p *pixels) upload(ctx *opengl.Context) *opengl.Texture {
	if p.hdr != nil {
		t := ctx.NewTexture(opengl.RGB32F, opengl.FormatRGB, opengl.PixelFloat)
		t.Data(p.hdr, p.width, p.height)
		return t
	}
	return ctx.NewTextureData(p.width, p.height, p.ldr.Pix())
}

// LoadTexture loads an image file as an rgba8 texture, or an rgb32f texture for
// .hdr files. Failures are logged and give a 1×1 red texture.
func LoadTexture(ctx *opengl.Context, path string) *opengl.Texture {
	p, err := decodeTexture(path)
	if err != nil {
		logger.Log.Error("couldn't load texture", zap.String("path", path), zap.Error(err))
		return TextureColor(ctx, 1, 1, Red)
	}
	return p.upload(ctx)
}

// TextureFromImage uploads img as is, without flipping.
func TextureFromImage(ctx *opengl.Context, img *Image) *opengl.Texture {
	w, h := img.Size()
	return ctx.NewTextureData(w, h, img.Pix())
}

func TextureColor(ctx *opengl.Context, width, height int, c Color) *opengl.Texture {
	return ctx.NewTextureColor(width, height, c)
}
