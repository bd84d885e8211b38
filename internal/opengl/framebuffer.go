package opengl

import (
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/logger"
)

const maxColorAttachment = 15

// Framebuffer is an offscreen render target assembled from textures and
// renderbuffers.
type Framebuffer struct {
	ctx      *Context
	handle   uint32
	complete bool
}

func (c *Context) NewFramebuffer() *Framebuffer {
	return &Framebuffer{ctx: c, handle: c.gl.GenFramebuffer()}
}

func (fb *Framebuffer) Handle() uint32 { return fb.handle }

// Completed reports the status seen after the last attachment.
func (fb *Framebuffer) Completed() bool { return fb.complete }

func (fb *Framebuffer) Bind(target FramebufferTarget) { fb.ctx.BindFramebuffer(target, fb.handle) }

// Unbind restores the default framebuffer for reading and drawing.
func (fb *Framebuffer) Unbind() { fb.ctx.BindFramebuffer(ReadWriteFramebuffer, 0) }

func colorAttachment(unit uint32) (uint32, bool) {
	if unit > maxColorAttachment {
		logger.Log.Error("unsupported color attachment index", zap.Uint32("unit", unit))
		return 0, false
	}
	return glColorAttachment0 + unit, true
}

func depthFormat(f Format) bool { return f == FormatDepth || f == FormatDepthStencil }

// renderbufferAttachment maps a renderbuffer format to its attachment point; color
// formats report 0.
func renderbufferAttachment(f RenderbufferFormat) uint32 {
	switch f {
	case RenderbufferDepth24Stencil8, RenderbufferDepth32FStencil:
		return glDepthStencilAttachment
	case RenderbufferDepth, RenderbufferDepth16, RenderbufferDepth24, RenderbufferDepth32F:
		return glDepthAttachment
	case RenderbufferStencil8:
		return glStencilAttachment
	}
	return 0
}

func (fb *Framebuffer) AttachColorTexture(unit uint32, t *Texture) {
	if depthFormat(t.Format()) {
		logger.Log.Error("can't attach texture with non color format to framebuffer (as color attachment)")
		return
	}
	attachment, ok := colorAttachment(unit)
	if !ok {
		return
	}
	fb.attach(func() {
		fb.ctx.gl.FramebufferTexture2D(glFramebuffer, attachment, glTexture2D, t.Handle(), 0)
	})
}

func (fb *Framebuffer) AttachColorRenderbuffer(unit uint32, rb *Renderbuffer) {
	if renderbufferAttachment(rb.Format()) != 0 {
		logger.Log.Error("can't attach renderbuffer with non color format to framebuffer (as color attachment)")
		return
	}
	attachment, ok := colorAttachment(unit)
	if !ok {
		return
	}
	fb.attach(func() {
		fb.ctx.gl.FramebufferRenderbuffer(glFramebuffer, attachment, glRenderbuffer, rb.Handle())
	})
}

// AttachColorCube attaches all faces of a cube map, for layered rendering.
func (fb *Framebuffer) AttachColorCube(unit uint32, t *TextureCube) {
	if depthFormat(t.Format()) {
		logger.Log.Error("can't attach texture cube with non color format to framebuffer (as color attachment)")
		return
	}
	attachment, ok := colorAttachment(unit)
	if !ok {
		return
	}
	fb.attach(func() {
		fb.ctx.gl.FramebufferTexture(glFramebuffer, attachment, t.Handle(), 0)
	})
}

func (fb *Framebuffer) AttachDepthTexture(t *Texture) {
	attachment, ok := depthAttachment(t.Format())
	if !ok {
		logger.Log.Error("can't attach texture with non depth/stencil format to framebuffer (as depth/stencil attachment)")
		return
	}
	fb.attach(func() {
		fb.ctx.gl.FramebufferTexture2D(glFramebuffer, attachment, glTexture2D, t.Handle(), 0)
	})
}

func (fb *Framebuffer) AttachDepthRenderbuffer(rb *Renderbuffer) {
	attachment := renderbufferAttachment(rb.Format())
	if attachment == 0 {
		logger.Log.Error("can't attach renderbuffer with non depth/stencil format to framebuffer (as depth/stencil attachment)")
		return
	}
	fb.attach(func() {
		fb.ctx.gl.FramebufferRenderbuffer(glFramebuffer, attachment, glRenderbuffer, rb.Handle())
	})
}

func (fb *Framebuffer) AttachDepthCube(t *TextureCube) {
	attachment, ok := depthAttachment(t.Format())
	if !ok {
		logger.Log.Error("can't attach texture cube with non depth/stencil format to framebuffer (as depth/stencil attachment)")
		return
	}
	fb.attach(func() {
		fb.ctx.gl.FramebufferTexture(glFramebuffer, attachment, t.Handle(), 0)
	})
}

func depthAttachment(f Format) (uint32, bool) {
	switch f {
	case FormatDepth:
		return glDepthAttachment, true
	case FormatDepthStencil:
		return glDepthStencilAttachment, true
	}
	return 0, false
}

func (fb *Framebuffer) attach(call func()) {
	fb.Bind(ReadWriteFramebuffer)
	call()
	fb.checkCompleted()
	fb.Unbind()
}

func (fb *Framebuffer) checkCompleted() {
	status := fb.ctx.gl.CheckFramebufferStatus(glFramebuffer)
	fb.complete = status == glFramebufferComplete
	if !fb.complete {
		// expected while attachments are still being added
		logger.Log.Debug("framebuffer incomplete", zap.Uint32("handle", fb.handle), zap.Uint32("status", status))
	}
}

// DrawAttachment selects the color attachments fragment outputs write to.
func (fb *Framebuffer) DrawAttachment(units ...uint32) {
	bufs := make([]uint32, 0, len(units))
	for _, u := range units {
		a, ok := colorAttachment(u)
		if !ok {
			return
		}
		bufs = append(bufs, a)
	}
	fb.Bind(ReadWriteFramebuffer)
	fb.ctx.gl.DrawBuffers(bufs)
	fb.Unbind()
}

func (fb *Framebuffer) DrawBuffer(buf ColorBuffer) {
	fb.ctx.gl.NamedFramebufferDrawBuffer(fb.handle, uint32(buf))
}

func (fb *Framebuffer) ReadBuffer(buf ColorBuffer) {
	fb.ctx.gl.NamedFramebufferReadBuffer(fb.handle, uint32(buf))
}

// BlitDefault copies the rectangle to the same place in the default framebuffer.
func (fb *Framebuffer) BlitDefault(x0, y0, x1, y1 int, mask BlitMask) {
	r := [4]int{x0, y0, x1, y1}
	fb.Blit(r, r, mask, BlitNearest)
}

// Blit copies src of this framebuffer to dst of the default framebuffer.
func (fb *Framebuffer) Blit(src, dst [4]int, mask BlitMask, filter BlitFilter) {
	fb.Bind(ReadFramebuffer)
	fb.ctx.BindFramebuffer(DrawFramebuffer, 0)
	fb.ctx.gl.BlitFramebuffer(
		int32(src[0]), int32(src[1]), int32(src[2]), int32(src[3]),
		int32(dst[0]), int32(dst[1]), int32(dst[2]), int32(dst[3]),
		uint32(mask), uint32(filter))
	fb.Unbind()
}

func (fb *Framebuffer) Delete() {
	if fb.handle == 0 {
		return
	}
	fb.ctx.gl.DeleteFramebuffer(fb.handle)
	fb.ctx.forgetFramebuffer(fb.handle)
	fb.handle = 0
}
