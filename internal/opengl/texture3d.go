package opengl

// Texture3D is a volume texture.
type Texture3D struct {
	texture
	size [3]int
}

// NewTexture3D creates a 1×1×1 volume texture without storage.
func (c *Context) NewTexture3D(internal InternalType, format Format, typ PixelType) *Texture3D {
	return &Texture3D{texture: newTexture(c, glTexture3D, internal, format, typ), size: [3]int{1, 1, 1}}
}

func (t *Texture3D) Resize(width, height, depth int) {
	t.upload(nil, width, height, depth)
}

// Data uploads the voxels and regenerates the mipmaps.
func (t *Texture3D) Data(pixels any, width, height, depth int) {
	t.upload(pixels, width, height, depth)
	t.GenerateMipmaps()
}

func (t *Texture3D) upload(pixels any, width, height, depth int) {
	t.size = [3]int{width, height, depth}
	t.Bind(0)
	t.ctx.gl.TexImage3D(glTexture3D, 0, int32(t.internal), int32(width), int32(height), int32(depth),
		uint32(t.format), uint32(t.typ), pixelPointer(pixels))
}

func (t *Texture3D) Size() (width, height, depth int) { return t.size[0], t.size[1], t.size[2] }
