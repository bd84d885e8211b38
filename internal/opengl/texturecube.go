package opengl

// TextureCube is a cube map with one image per face.
type TextureCube struct {
	texture
	sizes [6][2]int
}

// NewTextureCube creates a cube map and allocates width×height storage on every face.
func (c *Context) NewTextureCube(internal InternalType, format Format, typ PixelType, width, height int) *TextureCube {
	t := &TextureCube{texture: newTexture(c, glTextureCubeMap, internal, format, typ)}
	t.Resize(width, height)
	return t
}

func (t *TextureCube) Resize(width, height int) {
	for _, face := range CubeFaces {
		t.ResizeFace(face, width, height)
	}
}

func (t *TextureCube) ResizeFace(face CubeFace, width, height int) {
	t.upload(face, nil, width, height)
}

// Data uploads the pixels of one face. Mipmaps are left to the caller since the
// faces usually arrive one by one.
func (t *TextureCube) Data(face CubeFace, pixels any, width, height int) {
	t.upload(face, pixels, width, height)
}

func (t *TextureCube) upload(face CubeFace, pixels any, width, height int) {
	t.sizes[face.index()] = [2]int{width, height}
	t.Bind(0)
	t.ctx.gl.TexImage2D(uint32(face), 0, int32(t.internal), int32(width), int32(height),
		uint32(t.format), uint32(t.typ), pixelPointer(pixels))
}

func (t *TextureCube) Size(face CubeFace) (width, height int) {
	s := t.sizes[face.index()]
	return s[0], s[1]
}
