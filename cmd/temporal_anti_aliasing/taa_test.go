package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braheezy/glviewer/internal/opengl"
	"github.com/braheezy/glviewer/internal/opengl/gltest"
)

func TestHalton(t *testing.T) {
	samples := halton(4)
	want := []mgl32.Vec2{{0.5, 1.0 / 3}, {0.25, 2.0 / 3}, {0.75, 1.0 / 9}, {0.125, 4.0 / 9}}
	require.Len(t, samples, 4)
	for i := range want {
		assert.InDelta(t, want[i][0], samples[i][0], 1e-6)
		assert.InDelta(t, want[i][1], samples[i][1], 1e-6)
	}
}

func TestHistoryAlternates(t *testing.T) {
	ctx := opengl.NewContext(gltest.New(), false)
	aa, err := newTAA(ctx, 64, 32)
	require.NoError(t, err)

	a := mgl32.Translate3D(1, 0, 0)
	b := mgl32.Translate3D(2, 0, 0)

	prev := aa.advance(a)
	assert.Equal(t, mgl32.Ident4(), prev.projView)
	assert.Equal(t, a, aa.frame().projView)

	prev = aa.advance(b)
	assert.Equal(t, a, prev.projView)
	assert.Equal(t, b, aa.frame().projView)
	assert.NotSame(t, prev, aa.frame())
}

func TestJitterOffset(t *testing.T) {
	ctx := opengl.NewContext(gltest.New(), false)
	aa, err := newTAA(ctx, 64, 32)
	require.NoError(t, err)

	aa.advance(mgl32.Ident4())
	// second sample is (0.25, 2/3)
	off := aa.offset(64, 32)
	assert.InDelta(t, -0.25/64, off[0], 1e-6)
	assert.InDelta(t, (2.0/3-0.5)/32, off[1], 1e-6)
	assert.Equal(t, float32(0.1), aa.blend())

	aa.enabled = false
	assert.Equal(t, mgl32.Vec2{}, aa.offset(64, 32))
	assert.Equal(t, float32(1), aa.blend())

	for range 8 {
		aa.advance(mgl32.Ident4())
	}
	assert.Equal(t, 1, aa.jitterIndex)
}

func TestResizeHistory(t *testing.T) {
	ctx := opengl.NewContext(gltest.New(), false)
	aa, err := newTAA(ctx, 64, 32)
	require.NoError(t, err)

	aa.resize(10, 20)
	for _, h := range aa.history {
		w, hh := h.color.Size()
		assert.Equal(t, [2]int{10, 20}, [2]int{w, hh})
	}
}
