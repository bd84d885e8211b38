package opengl

import "fmt"

// Type is a GL data type.
type Type uint32

const (
	Byte          Type = glByte
	UnsignedByte  Type = glUnsignedByte
	Short         Type = glShort
	UnsignedShort Type = glUnsignedShort
	Int           Type = glInt
	UnsignedInt   Type = glUnsignedInt
	Float         Type = glFloat
	Double        Type = glDouble
	HalfFloat     Type = glHalfFloat
	Fixed         Type = glFixed
)

// Size is the byte size of one element of t.
func (t Type) Size() int {
	switch t {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort, HalfFloat:
		return 2
	case Int, UnsignedInt, Float, Fixed:
		return 4
	case Double:
		return 8
	}
	panic(fmt.Sprintf("opengl: unsupported type 0x%x", uint32(t)))
}

func (t Type) integer() bool {
	switch t {
	case Byte, UnsignedByte, Short, UnsignedShort, Int, UnsignedInt:
		return true
	}
	return false
}

// Primitive is a draw mode.
type Primitive uint32

const (
	Points                 Primitive = glPoints
	Lines                  Primitive = glLines
	LineStrip              Primitive = glLineStrip
	LineLoop               Primitive = glLineLoop
	LineStripAdjacency     Primitive = glLineStripAdjacency
	LinesAdjacency         Primitive = glLinesAdjacency
	Triangles              Primitive = glTriangles
	TriangleStrip          Primitive = glTriangleStrip
	TriangleFan            Primitive = glTriangleFan
	TriangleStripAdjacency Primitive = glTriangleStripAdjacency
	TrianglesAdjacency     Primitive = glTrianglesAdjacency
	Patches                Primitive = glPatches
)

// vertices per primitive for the modes that can be counted in primitives
func (p Primitive) size() (int32, error) {
	switch p {
	case Points:
		return 1, nil
	case Lines:
		return 2, nil
	case Triangles:
		return 3, nil
	}
	return 0, fmt.Errorf("primitive size unknown for mode 0x%x", uint32(p))
}

// Option is a capability toggled with glEnable/glDisable.
type Option uint32

const (
	Blend           Option = glBlend
	CullFace        Option = glCullFace
	DepthTest       Option = glDepthTest
	ScissorTest     Option = glScissorTest
	StencilTest     Option = glStencilTest
	Dither          Option = glDither
	CubeMapSeamless Option = glTextureCubeMapSeamless
)

var allOptions = []Option{Blend, CullFace, DepthTest, ScissorTest, StencilTest, Dither, CubeMapSeamless}

type PolygonFace uint32

const (
	Front        PolygonFace = glFront
	Back         PolygonFace = glBack
	FrontAndBack PolygonFace = glFrontAndBack
)

type PolygonMode uint32

const (
	ModePoint PolygonMode = glPoint
	ModeLine  PolygonMode = glLine
	ModeFill  PolygonMode = glFill
)

type BlendEquation uint32

const (
	BlendAdd             BlendEquation = glFuncAdd
	BlendSubtract        BlendEquation = glFuncSubtract
	BlendReverseSubtract BlendEquation = glFuncReverseSubtract
)

type BlendFactor uint32

const (
	FactorZero                  BlendFactor = glZero
	FactorOne                   BlendFactor = glOne
	FactorSrcAlpha              BlendFactor = glSrcAlpha
	FactorOneMinusSrcAlpha      BlendFactor = glOneMinusSrcAlpha
	FactorDstAlpha              BlendFactor = glDstAlpha
	FactorOneMinusDstAlpha      BlendFactor = glOneMinusDstAlpha
	FactorConstantAlpha         BlendFactor = glConstantAlpha
	FactorOneMinusConstantAlpha BlendFactor = glOneMinusConstantAlpha
)

// ClearOptions selects the buffers cleared by Context.Clear.
type ClearOptions uint32

const (
	ClearNone         ClearOptions = 0
	ClearColor        ClearOptions = glColorBufferBit
	ClearDepth        ClearOptions = glDepthBufferBit
	ClearStencil      ClearOptions = glStencilBufferBit
	ClearColorDepth                = ClearColor | ClearDepth
	ClearColorStencil              = ClearColor | ClearStencil
	ClearDepthStencil              = ClearDepth | ClearStencil
	ClearAll                       = ClearColor | ClearDepth | ClearStencil
)

// BlitMask selects the buffers copied by a framebuffer blit.
type BlitMask = ClearOptions

type BufferTarget uint32

const (
	ArrayBuffer         BufferTarget = glArrayBuffer
	CopyReadBuffer      BufferTarget = glCopyReadBuffer
	CopyWriteBuffer     BufferTarget = glCopyWriteBuffer
	ElementArrayBuffer  BufferTarget = glElementArrayBuffer
	ShaderStorageBuffer BufferTarget = glShaderStorageBuffer
	UniformBuffer       BufferTarget = glUniformBuffer
)

type BufferUsage uint32

const (
	StreamDraw  BufferUsage = glStreamDraw
	StreamRead  BufferUsage = glStreamRead
	StreamCopy  BufferUsage = glStreamCopy
	StaticDraw  BufferUsage = glStaticDraw
	StaticRead  BufferUsage = glStaticRead
	StaticCopy  BufferUsage = glStaticCopy
	DynamicDraw BufferUsage = glDynamicDraw
	DynamicRead BufferUsage = glDynamicRead
	DynamicCopy BufferUsage = glDynamicCopy
)

// InternalType is the storage format of a texture.
type InternalType int32

const (
	R8              InternalType = glR8
	R16             InternalType = glR16
	R16F            InternalType = glR16F
	R32F            InternalType = glR32F
	RGB8            InternalType = glRGB8
	RGB8UI          InternalType = glRGB8UI
	RGB16           InternalType = glRGB16
	RGB16UI         InternalType = glRGB16UI
	RGB16F          InternalType = glRGB16F
	RGB32F          InternalType = glRGB32F
	RGBA8           InternalType = glRGBA8
	RGBA16          InternalType = glRGBA16
	RGBA16F         InternalType = glRGBA16F
	RGBA32F         InternalType = glRGBA32F
	RGBA32UI        InternalType = glRGBA32UI
	Depth           InternalType = glDepthComponent
	Depth32         InternalType = glDepthComponent32
	Depth32F        InternalType = glDepthComponent32F
	DepthStencil    InternalType = glDepthStencil
	Depth24Stencil8 InternalType = glDepth24Stencil8
)

// Format is the layout of pixel data handed to a texture.
type Format uint32

const (
	FormatRed          Format = glRed
	FormatRGB          Format = glRGB
	FormatRGBInt       Format = glRGBInteger
	FormatRGBA         Format = glRGBA
	FormatRGBAInt      Format = glRGBAInteger
	FormatDepth        Format = glDepthComponent
	FormatDepthStencil Format = glDepthStencil
)

// PixelType is the component type of pixel data handed to a texture.
type PixelType uint32

const (
	PixelUnsignedByte    PixelType = glUnsignedByte
	PixelUnsignedInt24_8 PixelType = glUnsignedInt24_8
	PixelByte            PixelType = glByte
	PixelUnsignedShort   PixelType = glUnsignedShort
	PixelShort           PixelType = glShort
	PixelUnsignedInt     PixelType = glUnsignedInt
	PixelInt             PixelType = glInt
	PixelFloat           PixelType = glFloat
)

type Wrapping int32

const (
	WrapEdge           Wrapping = glClampToEdge
	WrapBorder         Wrapping = glClampToBorder
	WrapRepeat         Wrapping = glRepeat
	WrapMirroredRepeat Wrapping = glMirroredRepeat
	WrapMirroredEdge   Wrapping = glMirrorClampToEdge
)

type WrapCoord uint32

const (
	WrapS WrapCoord = glTextureWrapS
	WrapT WrapCoord = glTextureWrapT
	WrapR WrapCoord = glTextureWrapR
)

type MinFilter int32

const (
	MinNearest              MinFilter = glNearest
	MinLinear               MinFilter = glLinear
	MinNearestMipmapNearest MinFilter = glNearestMipmapNearest
	MinLinearMipmapNearest  MinFilter = glLinearMipmapNearest
	MinNearestMipmapLinear  MinFilter = glNearestMipmapLinear
	MinLinearMipmapLinear   MinFilter = glLinearMipmapLinear
)

type MagFilter int32

const (
	MagNearest MagFilter = glNearest
	MagLinear  MagFilter = glLinear
)

// BlitFilter is the interpolation used when a blit scales.
type BlitFilter uint32

const (
	BlitNearest BlitFilter = glNearest
	BlitLinear  BlitFilter = glLinear
)

type CubeFace uint32

const (
	PositiveX CubeFace = glTextureCubeMapPositiveX
	NegativeX CubeFace = glTextureCubeMapNegativeX
	PositiveY CubeFace = glTextureCubeMapPositiveY
	NegativeY CubeFace = glTextureCubeMapNegativeY
	PositiveZ CubeFace = glTextureCubeMapPositiveZ
	NegativeZ CubeFace = glTextureCubeMapNegativeZ
)

// CubeFaces lists the faces in GL order.
var CubeFaces = [6]CubeFace{PositiveX, NegativeX, PositiveY, NegativeY, PositiveZ, NegativeZ}

func (f CubeFace) index() int { return int(f - PositiveX) }

type RenderbufferFormat uint32

const (
	RenderbufferRGB8            RenderbufferFormat = glRGB8
	RenderbufferRGBA8           RenderbufferFormat = glRGBA8
	RenderbufferDepth           RenderbufferFormat = glDepthComponent
	RenderbufferDepth16         RenderbufferFormat = glDepthComponent16
	RenderbufferDepth24         RenderbufferFormat = glDepthComponent24
	RenderbufferDepth32F        RenderbufferFormat = glDepthComponent32F
	RenderbufferDepth24Stencil8 RenderbufferFormat = glDepth24Stencil8
	RenderbufferDepth32FStencil RenderbufferFormat = glDepth32FStencil8
	RenderbufferStencil8        RenderbufferFormat = glStencilIndex8
)

type FramebufferTarget uint32

const (
	ReadFramebuffer      FramebufferTarget = glReadFramebuffer
	DrawFramebuffer      FramebufferTarget = glDrawFramebuffer
	ReadWriteFramebuffer FramebufferTarget = glFramebuffer
)

// ColorBuffer names a buffer for DrawBuffer/ReadBuffer.
type ColorBuffer uint32

const (
	BufferNone       ColorBuffer = glNone
	BufferFrontLeft  ColorBuffer = glFrontLeft
	BufferFrontRight ColorBuffer = glFrontRight
	BufferBackLeft   ColorBuffer = glBackLeft
	BufferBackRight  ColorBuffer = glBackRight
	BufferFront      ColorBuffer = glFront
	BufferBack       ColorBuffer = glBack
	BufferLeft       ColorBuffer = glLeft
	BufferRight      ColorBuffer = glRight
	BufferFrontBack  ColorBuffer = glFrontAndBack
)

type ShaderType uint32

const (
	VertexShader         ShaderType = glVertexShader
	FragmentShader       ShaderType = glFragmentShader
	ComputeShader        ShaderType = glComputeShader
	GeometryShader       ShaderType = glGeometryShader
	TessControlShader    ShaderType = glTessControlShader
	TessEvaluationShader ShaderType = glTessEvaluationShader
)

func (t ShaderType) String() string {
	switch t {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	case ComputeShader:
		return "compute"
	case GeometryShader:
		return "geometry"
	case TessControlShader:
		return "tesselation control"
	case TessEvaluationShader:
		return "tesselation evaluation"
	}
	return fmt.Sprintf("shader(0x%x)", uint32(t))
}

// slot in the per-program stage table
func (t ShaderType) slot() int {
	switch t {
	case VertexShader:
		return 0
	case FragmentShader:
		return 1
	case ComputeShader:
		return 2
	case GeometryShader:
		return 3
	case TessControlShader:
		return 4
	case TessEvaluationShader:
		return 5
	}
	panic(fmt.Sprintf("opengl: unknown shader type 0x%x", uint32(t)))
}
