package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// texture holds what the 2D, cube and 3D textures share: the GL object, its
// target and storage format, and the parameter calls.
type texture struct {
	ctx      *Context
	handle   uint32
	target   uint32
	internal InternalType
	format   Format
	typ      PixelType
}

func newTexture(ctx *Context, target uint32, internal InternalType, format Format, typ PixelType) texture {
	t := texture{
		ctx:      ctx,
		handle:   ctx.gl.GenTexture(),
		target:   target,
		internal: internal,
		format:   format,
		typ:      typ,
	}
	t.SetMinFilter(MinLinear)
	t.parameteri(glTextureMaxLevel, 1)
	return t
}

func (t *texture) Handle() uint32             { return t.handle }
func (t *texture) InternalType() InternalType { return t.internal }
func (t *texture) Format() Format             { return t.format }
func (t *texture) PixelType() PixelType       { return t.typ }

// Bind binds the texture to a texture unit.
func (t *texture) Bind(unit uint32) { t.ctx.BindTexture(t.target, t.handle, unit) }

// Unbind clears the texture unit.
func (t *texture) Unbind(unit uint32) { t.ctx.BindTexture(t.target, 0, unit) }

// parameter calls go through unit 0 like every upload does
func (t *texture) parameteri(pname uint32, v int32) {
	t.Bind(0)
	t.ctx.gl.TexParameteri(t.target, pname, v)
}

func (t *texture) SetMinFilter(f MinFilter) { t.parameteri(glTextureMinFilter, int32(f)) }
func (t *texture) SetMagFilter(f MagFilter) { t.parameteri(glTextureMagFilter, int32(f)) }

func (t *texture) SetWrap(coord WrapCoord, w Wrapping) { t.parameteri(uint32(coord), int32(w)) }

func (t *texture) SetBorderColor(color mgl32.Vec4) {
	t.Bind(0)
	t.ctx.gl.TexParameterfv(t.target, glTextureBorderColor, color[:])
}

// Repeat wraps with repeat on all coordinates, otherwise clamps to the border.
func (t *texture) Repeat(repeat bool) {
	w := WrapBorder
	if repeat {
		w = WrapRepeat
	}
	t.SetWrap(WrapR, w)
	t.SetWrap(WrapS, w)
	t.SetWrap(WrapT, w)
}

// Smooth selects linear filtering, otherwise nearest.
func (t *texture) Smooth(smooth bool) {
	if smooth {
		t.SetMinFilter(MinLinear)
		t.SetMagFilter(MagLinear)
		return
	}
	t.SetMinFilter(MinNearest)
	t.SetMagFilter(MagNearest)
}

// GenerateMipmaps is a no-op for integer formats.
func (t *texture) GenerateMipmaps() {
	if t.format == FormatRGBInt || t.format == FormatRGBAInt {
		return
	}
	t.parameteri(glTextureMaxLevel, 1)
	t.ctx.gl.GenerateMipmap(t.target)
}

func (t *texture) Delete() {
	if t.handle == 0 {
		return
	}
	t.ctx.gl.DeleteTexture(t.handle)
	t.ctx.forgetTexture(t.handle)
	t.handle = 0
}

// pixelPointer accepts nil or a slice of a pixel component type.
func pixelPointer(pixels any) unsafe.Pointer {
	switch p := pixels.(type) {
	case nil:
		return nil
	case []uint8:
		return slicePointer(p)
	case []int8:
		return slicePointer(p)
	case []uint16:
		return slicePointer(p)
	case []int16:
		return slicePointer(p)
	case []uint32:
		return slicePointer(p)
	case []int32:
		return slicePointer(p)
	case []float32:
		return slicePointer(p)
	}
	panic(fmt.Sprintf("opengl: unsupported pixel data %T", pixels))
}

// Texture is a 2D texture.
type Texture struct {
	texture
	width, height int
}

// NewTexture creates a 1×1 texture without storage.
func (c *Context) NewTexture(internal InternalType, format Format, typ PixelType) *Texture {
	return &Texture{texture: newTexture(c, glTexture2D, internal, format, typ), width: 1, height: 1}
}

// NewTextureSized creates a texture and allocates width×height storage.
func (c *Context) NewTextureSized(internal InternalType, format Format, typ PixelType, width, height int) *Texture {
	t := c.NewTexture(internal, format, typ)
	t.Resize(width, height)
	return t
}

// NewTextureData creates an rgba8 texture from tightly packed RGBA pixels.
func (c *Context) NewTextureData(width, height int, pixels []uint8) *Texture {
	t := c.NewTexture(RGBA8, FormatRGBA, PixelUnsignedByte)
	t.Data(pixels, width, height)
	return t
}

// NewTextureColor creates an rgba8 texture filled with color.
func (c *Context) NewTextureColor(width, height int, color [4]uint8) *Texture {
	pixels := make([]uint8, 0, width*height*4)
	for i := 0; i < width*height; i++ {
		pixels = append(pixels, color[:]...)
	}
	return c.NewTextureData(width, height, pixels)
}

// Resize reallocates the storage. The contents are undefined afterwards.
func (t *Texture) Resize(width, height int) {
	t.width, t.height = width, height
	t.Bind(0)
	t.ctx.gl.TexImage2D(glTexture2D, 0, int32(t.internal), int32(width), int32(height),
		uint32(t.format), uint32(t.typ), nil)
}

// Data uploads pixels and regenerates the mipmaps.
func (t *Texture) Data(pixels any, width, height int) {
	t.width, t.height = width, height
	t.Bind(0)
	t.ctx.gl.TexImage2D(glTexture2D, 0, int32(t.internal), int32(width), int32(height),
		uint32(t.format), uint32(t.typ), pixelPointer(pixels))
	t.GenerateMipmaps()
}

func (t *Texture) Size() (width, height int) { return t.width, t.height }
