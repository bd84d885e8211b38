package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/braheezy/glviewer/internal/opengl"
)

// halton returns the first n points of the Halton sequence in bases 2 and 3,
// starting at index 1.
func halton(n int) []mgl32.Vec2 {
	radical := func(index, base int) float32 {
		var result float32
		f := 1 / float32(base)
		for i := index; i > 0; i /= base {
			result += f * float32(i%base)
			f /= float32(base)
		}
		return result
	}
	samples := make([]mgl32.Vec2, n)
	for i := range samples {
		samples[i] = mgl32.Vec2{radical(i+1, 2), radical(i+1, 3)}
	}
	return samples
}

// history is one of the two resolved frames TAA alternates between.
type history struct {
	projView    mgl32.Mat4
	framebuffer *opengl.Framebuffer
	color       *opengl.Texture
}

func newHistory(ctx *opengl.Context, width, height int) (history, error) {
	color := ctx.NewTextureSized(opengl.RGB8, opengl.FormatRGB, opengl.PixelUnsignedByte, width, height)
	color.SetMinFilter(opengl.MinLinear)
	color.SetMagFilter(opengl.MagLinear)
	fb := ctx.NewFramebuffer()
	fb.AttachColorTexture(0, color)
	fb.DrawAttachment(0)
	if !fb.Completed() {
		return history{}, errors.New("history framebuffer incomplete")
	}
	return history{projView: mgl32.Ident4(), framebuffer: fb, color: color}, nil
}

type taa struct {
	jitter      []mgl32.Vec2
	jitterIndex int
	alpha       float32
	enabled     bool

	history [2]history
	current int
}

func newTAA(ctx *opengl.Context, width, height int) (*taa, error) {
	t := &taa{jitter: halton(8), alpha: 0.1, enabled: true}
	for i := range t.history {
		h, err := newHistory(ctx, width, height)
		if err != nil {
			return nil, err
		}
		t.history[i] = h
	}
	return t, nil
}

// advance starts a frame rendered with projView and returns the previous
// frame's history.
func (t *taa) advance(projView mgl32.Mat4) *history {
	t.jitterIndex = (t.jitterIndex + 1) % len(t.jitter)
	prev := t.current
	t.current = (t.current + 1) % len(t.history)
	t.history[t.current].projView = projView
	return &t.history[prev]
}

func (t *taa) frame() *history { return &t.history[t.current] }

// offset is the sub-pixel shift of this frame in normalized screen units.
func (t *taa) offset(width, height int) mgl32.Vec2 {
	if !t.enabled {
		return mgl32.Vec2{}
	}
	j := t.jitter[t.jitterIndex].Sub(mgl32.Vec2{0.5, 0.5})
	return mgl32.Vec2{j[0] / float32(width), j[1] / float32(height)}
}

// blend is the weight of the current frame against the history.
func (t *taa) blend() float32 {
	if !t.enabled {
		return 1
	}
	return t.alpha
}

func (t *taa) resize(width, height int) {
	for _, h := range t.history {
		h.color.Resize(width, height)
	}
}

func (t *taa) delete() {
	for _, h := range t.history {
		h.framebuffer.Delete()
		h.color.Delete()
	}
}
