package viewer

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/braheezy/glviewer/internal/logger"
	"github.com/braheezy/glviewer/internal/opengl"
)

const textVertexShader = `#version 330 core
layout (location = 0) in vec2 position;
layout (location = 1) in vec2 texCoord;

uniform mat4 projection;

out vec2 uv;

void main()
{
    uv = texCoord;
    gl_Position = projection * vec4(position, 0.0, 1.0);
}
`

const textFragmentShader = `#version 330 core
in vec2 uv;

uniform sampler2D glyph;
uniform vec3 textColor;

out vec4 color;

void main()
{
    color = vec4(textColor, texture(glyph, uv).r);
}
`

// glyph is a rasterized character. Its bitmap is padded to a multiple of four
// bytes per row, u is the used fraction of the width.
type glyph struct {
	tex     *opengl.Texture
	bounds  fixed.Rectangle26_6
	u       float32
	advance fixed.Int26_6
}

type textVertex struct {
	Position mgl32.Vec2
	TexCoord mgl32.Vec2
}

// TextRenderer draws ASCII text in screen coordinates, origin top left.
type TextRenderer struct {
	ctx      *opengl.Context
	shader   *opengl.ShaderProgram
	array    *opengl.VertexArray
	vertices *opengl.VertexBuffer[textVertex]

	glyphs  map[rune]glyph
	metrics font.Metrics
}

// NewTextRenderer rasterizes the printable ASCII range of Go Regular at size
// points.
func NewTextRenderer(ctx *opengl.Context, size float64) (*TextRenderer, error) {
	return NewTextRendererFont(ctx, goregular.TTF, size)
}

// NewTextRendererFont rasterizes an OpenType or TrueType font.
func NewTextRendererFont(ctx *opengl.Context, ttf []byte, size float64) (*TextRenderer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, errors.Wrap(err, "parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, errors.Wrap(err, "create font face")
	}
	defer face.Close()

	tr := &TextRenderer{
		ctx:     ctx,
		glyphs:  make(map[rune]glyph),
		metrics: face.Metrics(),
	}
	tr.shader = ctx.NewShader()
	if err := tr.shader.Attach(textVertexShader, opengl.VertexShader); err != nil {
		tr.Delete()
		return nil, err
	}
	if err := tr.shader.Attach(textFragmentShader, opengl.FragmentShader); err != nil {
		tr.Delete()
		return nil, err
	}
	if err := tr.shader.Link(); err != nil {
		tr.Delete()
		return nil, err
	}

	tr.vertices = opengl.NewVertexBuffer(ctx, make([]textVertex, 6), opengl.DynamicDraw)
	tr.array = ctx.NewVertexArray()
	tr.array.AttachVertexBuffer(tr.vertices)
	tr.array.Unbind()

	for c := rune(32); c < 127; c++ {
		bounds, advance, ok := face.GlyphBounds(c)
		if !ok {
			logger.Log.Warn("font has no glyph", zap.String("char", string(c)))
			continue
		}
		g := glyph{bounds: bounds, advance: advance}
		width := (bounds.Max.X - bounds.Min.X).Ceil()
		height := (bounds.Max.Y - bounds.Min.Y).Ceil()
		if width > 0 && height > 0 {
			stride := (width + 3) &^ 3
			dst := image.NewGray(image.Rect(0, 0, stride, height))
			d := font.Drawer{
				Dst:  dst,
				Src:  image.White,
				Face: face,
				Dot:  fixed.P(-bounds.Min.X.Floor(), -bounds.Min.Y.Floor()),
			}
			d.DrawString(string(c))

			g.tex = ctx.NewTexture(opengl.R8, opengl.FormatRed, opengl.PixelUnsignedByte)
			g.tex.Data(dst.Pix, stride, height)
			g.tex.SetWrap(opengl.WrapS, opengl.WrapEdge)
			g.tex.SetWrap(opengl.WrapT, opengl.WrapEdge)
			g.tex.Smooth(true)
			g.u = float32(width) / float32(stride)
		}
		tr.glyphs[c] = g
	}
	return tr, nil
}

// LineHeight is the distance between two baselines in pixels at scale 1.
func (tr *TextRenderer) LineHeight() float32 {
	return float32(tr.metrics.Height) / 64
}

// Draw renders text with its top left corner at x, y. Newlines start a new line,
// characters without a glyph are skipped.
func (tr *TextRenderer) Draw(text string, x, y, scale float32, color mgl32.Vec3) {
	vp := tr.ctx.CurrentViewport()
	blend := tr.ctx.Enable(opengl.Blend)
	depth := tr.ctx.Disable(opengl.DepthTest)
	src, dst := tr.ctx.BlendFunc(opengl.FactorSrcAlpha, opengl.FactorOneMinusSrcAlpha)

	tr.shader.Bind()
	tr.shader.SetMat4("projection", mgl32.Ortho2D(0, float32(vp[2]), float32(vp[3]), 0))
	tr.shader.SetVec3("textColor", color)
	tr.shader.SetInt("glyph", 0)

	left := x
	baseline := y + float32(tr.metrics.Ascent)/64*scale
	for _, c := range text {
		if c == '\n' {
			x = left
			baseline += tr.LineHeight() * scale
			continue
		}
		g, ok := tr.glyphs[c]
		if !ok {
			continue
		}
		if g.tex != nil {
			x0 := x + float32(g.bounds.Min.X.Floor())*scale
			y0 := baseline + float32(g.bounds.Min.Y.Floor())*scale
			w, h := g.tex.Size()
			x1 := x0 + float32(w)*g.u*scale
			y1 := y0 + float32(h)*scale
			tr.vertices.Data([]textVertex{
				{mgl32.Vec2{x0, y1}, mgl32.Vec2{0, 1}},
				{mgl32.Vec2{x1, y0}, mgl32.Vec2{g.u, 0}},
				{mgl32.Vec2{x0, y0}, mgl32.Vec2{0, 0}},

				{mgl32.Vec2{x0, y1}, mgl32.Vec2{0, 1}},
				{mgl32.Vec2{x1, y1}, mgl32.Vec2{g.u, 1}},
				{mgl32.Vec2{x1, y0}, mgl32.Vec2{g.u, 0}},
			})
			g.tex.Bind(0)
			tr.array.Draw(opengl.Triangles)
		}
		x += float32(g.advance) / 64 * scale
	}
	tr.array.Unbind()

	tr.ctx.BlendFunc(src, dst)
	tr.ctx.Set(opengl.DepthTest, depth)
	tr.ctx.Set(opengl.Blend, blend)
}

func (tr *TextRenderer) Delete() {
	for c, g := range tr.glyphs {
		if g.tex != nil {
			g.tex.Delete()
		}
		delete(tr.glyphs, c)
	}
	if tr.array != nil {
		tr.array.Delete()
		tr.vertices.Delete()
	}
	if tr.shader != nil {
		tr.shader.Delete()
	}
}
