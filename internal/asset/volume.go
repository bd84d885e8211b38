package asset

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/logger"
	"github.com/braheezy/glviewer/internal/opengl"
)

// LoadRaw loads an 8 bit volume of the given size. The file must hold exactly
// x*y*z bytes; anything else is logged and gives a 1×1×1 volume.
func LoadRaw(ctx *opengl.Context, path string, size [3]int) *opengl.Texture3D {
	data, err := readVolume(path)
	if err == nil && len(data) != size[0]*size[1]*size[2] {
		err = errors.Errorf("volume holds %d bytes, expected %dx%dx%d one byte voxels",
			len(data), size[0], size[1], size[2])
	}
	if err != nil {
		logger.Log.Error("couldn't load raw volume", zap.String("path", path), zap.Error(err))
		return emptyVolume(ctx)
	}

	tex := ctx.NewTexture3D(opengl.R8, opengl.FormatRed, opengl.PixelUnsignedByte)
	tex.Data(data, size[0], size[1], size[2])
	clampVolume(tex)
	return tex
}

// LoadDat loads a 16 bit volume prefixed by a little endian uint16 x, y, z header.
func LoadDat(ctx *opengl.Context, path string) *opengl.Texture3D {
	data, err := readVolume(path)
	if err != nil {
		logger.Log.Error("couldn't load dat volume", zap.String("path", path), zap.Error(err))
		return emptyVolume(ctx)
	}
	size, samples, err := parseDat(data)
	if err != nil {
		logger.Log.Error("couldn't load dat volume", zap.String("path", path), zap.Error(err))
		return emptyVolume(ctx)
	}

	tex := ctx.NewTexture3D(opengl.R16, opengl.FormatRed, opengl.PixelUnsignedShort)
	tex.Data(samples, size[0], size[1], size[2])
	clampVolume(tex)
	return tex
}

func readVolume(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "stat volume")
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Errorf("%s is not a file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read volume")
	}
	if len(data) == 0 {
		return nil, errors.New("empty volume data")
	}
	return data, nil
}

const datHeaderSize = 6

func parseDat(data []byte) ([3]int, []uint16, error) {
	var size [3]int
	if len(data) < datHeaderSize {
		return size, nil, errors.New("truncated dat header")
	}
	for i := range size {
		size[i] = int(binary.LittleEndian.Uint16(data[i*2:]))
	}
	body := data[datHeaderSize:]
	if want := size[0] * size[1] * size[2] * 2; len(body) != want {
		return size, nil, errors.Errorf("dat volume %dx%dx%d needs %d bytes, file has %d",
			size[0], size[1], size[2], want, len(body))
	}
	samples := make([]uint16, len(body)/2)
	for i := range samples {
		samples[i] = binary.LittleEndian.Uint16(body[i*2:])
	}
	return size, samples, nil
}

func emptyVolume(ctx *opengl.Context) *opengl.Texture3D {
	tex := ctx.NewTexture3D(opengl.R8, opengl.FormatRed, opengl.PixelUnsignedByte)
	tex.Resize(1, 1, 1)
	return tex
}

func clampVolume(tex *opengl.Texture3D) {
	tex.SetWrap(opengl.WrapS, opengl.WrapEdge)
	tex.SetWrap(opengl.WrapT, opengl.WrapEdge)
	tex.SetWrap(opengl.WrapR, opengl.WrapEdge)
}
