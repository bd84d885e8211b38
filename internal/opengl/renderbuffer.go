package opengl

// Renderbuffer is render target storage that cannot be sampled.
type Renderbuffer struct {
	ctx           *Context
	handle        uint32
	format        RenderbufferFormat
	width, height int
}

// NewRenderbuffer allocates storage right away when both sizes are positive.
func (c *Context) NewRenderbuffer(format RenderbufferFormat, width, height int) *Renderbuffer {
	rb := &Renderbuffer{ctx: c, handle: c.gl.GenRenderbuffer(), format: format, width: width, height: height}
	if width > 0 && height > 0 {
		rb.Storage(format, width, height)
	}
	return rb
}

func (rb *Renderbuffer) Storage(format RenderbufferFormat, width, height int) {
	rb.format = format
	rb.width, rb.height = width, height
	rb.Bind()
	rb.ctx.gl.RenderbufferStorage(glRenderbuffer, uint32(format), int32(width), int32(height))
	rb.Unbind()
}

// Resize reallocates with the current format.
func (rb *Renderbuffer) Resize(width, height int) { rb.Storage(rb.format, width, height) }

func (rb *Renderbuffer) Format() RenderbufferFormat { return rb.format }
func (rb *Renderbuffer) Size() (width, height int)  { return rb.width, rb.height }
func (rb *Renderbuffer) Handle() uint32             { return rb.handle }

func (rb *Renderbuffer) Bind()   { rb.ctx.BindRenderbuffer(rb.handle) }
func (rb *Renderbuffer) Unbind() { rb.ctx.BindRenderbuffer(0) }

func (rb *Renderbuffer) Delete() {
	if rb.handle == 0 {
		return
	}
	rb.ctx.gl.DeleteRenderbuffer(rb.handle)
	rb.ctx.forgetRenderbuffer(rb.handle)
	rb.handle = 0
}
