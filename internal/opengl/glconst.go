package opengl

// Raw OpenGL enumerant values. They are spelled out here so the package builds
// without cgo; the gogl driver passes them through to the real entry points.
const (
	glNone = 0
	glZero = 0
	glOne  = 1

	glPoints                 = 0x0000
	glLines                  = 0x0001
	glLineLoop               = 0x0002
	glLineStrip              = 0x0003
	glTriangles              = 0x0004
	glTriangleStrip          = 0x0005
	glTriangleFan            = 0x0006
	glLinesAdjacency         = 0x000A
	glLineStripAdjacency     = 0x000B
	glTrianglesAdjacency     = 0x000C
	glTriangleStripAdjacency = 0x000D
	glPatches                = 0x000E

	glByte            = 0x1400
	glUnsignedByte    = 0x1401
	glShort           = 0x1402
	glUnsignedShort   = 0x1403
	glInt             = 0x1404
	glUnsignedInt     = 0x1405
	glFloat           = 0x1406
	glDouble          = 0x140A
	glHalfFloat       = 0x140B
	glFixed           = 0x140C
	glUnsignedInt24_8 = 0x84FA

	glCullFace               = 0x0B44
	glDepthTest              = 0x0B71
	glStencilTest            = 0x0B90
	glDither                 = 0x0BD0
	glBlend                  = 0x0BE2
	glScissorTest            = 0x0C11
	glTextureCubeMapSeamless = 0x884F
	glDebugOutput            = 0x92E0
	glDebugOutputSynchronous = 0x8242

	glFrontLeft    = 0x0400
	glFrontRight   = 0x0401
	glBackLeft     = 0x0402
	glBackRight    = 0x0403
	glFront        = 0x0404
	glBack         = 0x0405
	glLeft         = 0x0406
	glRight        = 0x0407
	glFrontAndBack = 0x0408

	glPoint = 0x1B00
	glLine  = 0x1B01
	glFill  = 0x1B02

	glFuncAdd             = 0x8006
	glFuncSubtract        = 0x800A
	glFuncReverseSubtract = 0x800B

	glSrcAlpha              = 0x0302
	glOneMinusSrcAlpha      = 0x0303
	glDstAlpha              = 0x0304
	glOneMinusDstAlpha      = 0x0305
	glConstantAlpha         = 0x8003
	glOneMinusConstantAlpha = 0x8004

	glDepthBufferBit   = 0x0100
	glStencilBufferBit = 0x0400
	glColorBufferBit   = 0x4000

	glArrayBuffer         = 0x8892
	glElementArrayBuffer  = 0x8893
	glUniformBuffer       = 0x8A11
	glCopyReadBuffer      = 0x8F36
	glCopyWriteBuffer     = 0x8F37
	glShaderStorageBuffer = 0x90D2

	glStreamDraw  = 0x88E0
	glStreamRead  = 0x88E1
	glStreamCopy  = 0x88E2
	glStaticDraw  = 0x88E4
	glStaticRead  = 0x88E5
	glStaticCopy  = 0x88E6
	glDynamicDraw = 0x88E8
	glDynamicRead = 0x88E9
	glDynamicCopy = 0x88EA

	glTexture2D               = 0x0DE1
	glTexture3D               = 0x806F
	glTextureCubeMap          = 0x8513
	glTextureCubeMapPositiveX = 0x8515
	glTextureCubeMapNegativeX = 0x8516
	glTextureCubeMapPositiveY = 0x8517
	glTextureCubeMapNegativeY = 0x8518
	glTextureCubeMapPositiveZ = 0x8519
	glTextureCubeMapNegativeZ = 0x851A
	glTexture0                = 0x84C0

	glR8                = 0x8229
	glR16               = 0x822A
	glR16F              = 0x822D
	glR32F              = 0x822E
	glRGB8              = 0x8051
	glRGB16             = 0x8054
	glRGBA8             = 0x8058
	glRGBA16            = 0x805B
	glRGBA32F           = 0x8814
	glRGB32F            = 0x8815
	glRGBA16F           = 0x881A
	glRGB16F            = 0x881B
	glRGBA32UI          = 0x8D70
	glRGB16UI           = 0x8D77
	glRGB8UI            = 0x8D7D
	glDepthComponent    = 0x1902
	glDepthComponent16  = 0x81A5
	glDepthComponent24  = 0x81A6
	glDepthComponent32  = 0x81A7
	glDepthComponent32F = 0x8CAC
	glDepthStencil      = 0x84F9
	glDepth24Stencil8   = 0x88F0
	glDepth32FStencil8  = 0x8CAD
	glStencilIndex8     = 0x8D48

	glRed         = 0x1903
	glRGB         = 0x1907
	glRGBA        = 0x1908
	glRGBInteger  = 0x8D98
	glRGBAInteger = 0x8D99

	glClampToEdge       = 0x812F
	glClampToBorder     = 0x812D
	glRepeat            = 0x2901
	glMirroredRepeat    = 0x8370
	glMirrorClampToEdge = 0x8743

	glTextureMagFilter   = 0x2800
	glTextureMinFilter   = 0x2801
	glTextureWrapS       = 0x2802
	glTextureWrapT       = 0x2803
	glTextureWrapR       = 0x8072
	glTextureBorderColor = 0x1004
	glTextureBaseLevel   = 0x813C
	glTextureMaxLevel    = 0x813D

	glNearest              = 0x2600
	glLinear               = 0x2601
	glNearestMipmapNearest = 0x2700
	glLinearMipmapNearest  = 0x2701
	glNearestMipmapLinear  = 0x2702
	glLinearMipmapLinear   = 0x2703

	glRenderbuffer           = 0x8D41
	glFramebuffer            = 0x8D40
	glReadFramebuffer        = 0x8CA8
	glDrawFramebuffer        = 0x8CA9
	glColorAttachment0       = 0x8CE0
	glDepthAttachment        = 0x8D00
	glStencilAttachment      = 0x8D20
	glDepthStencilAttachment = 0x821A
	glFramebufferComplete    = 0x8CD5

	glFragmentShader       = 0x8B30
	glVertexShader         = 0x8B31
	glGeometryShader       = 0x8DD9
	glTessEvaluationShader = 0x8E87
	glTessControlShader    = 0x8E88
	glComputeShader        = 0x91B9

	glCompileStatus    = 0x8B81
	glLinkStatus       = 0x8B82
	glValidateStatus   = 0x8B83
	glInfoLogLength    = 0x8B84
	glUniform          = 0x92E1
	glActiveResources  = 0x92F5
	glNameLength       = 0x92F9
	glLocation         = 0x930E
	glVersion          = 0x1F02
	glVendor           = 0x1F00
	glRenderer         = 0x1F01
	glShadingLanguage  = 0x8B8C
	glViewport         = 0x0BA2
	glScissorBox       = 0x0C10
	glColorClearValue  = 0x0C22
	glLineWidth        = 0x0B21
	glPointSize        = 0x0B11
	glDepthWritemask   = 0x0B72
	glBlendEquationRGB = 0x8009
	glBlendSrcAlpha    = 0x80CB
	glBlendDstAlpha    = 0x80CA
	glCullFaceMode     = 0x0B45
	glPolygonMode      = 0x0B40

	glDebugSourceAPI            = 0x8246
	glDebugSourceWindowSystem   = 0x8247
	glDebugSourceShaderCompiler = 0x8248
	glDebugSourceThirdParty     = 0x8249
	glDebugSourceApplication    = 0x824A
	glDebugSourceOther          = 0x824B
	glDebugTypeError            = 0x824C
	glDebugTypeDeprecated       = 0x824D
	glDebugTypeUndefined        = 0x824E
	glDebugTypePortability      = 0x824F
	glDebugTypePerformance      = 0x8250
	glDebugTypeOther            = 0x8251
	glDebugTypeMarker           = 0x8268
	glDebugTypePushGroup        = 0x8269
	glDebugTypePopGroup         = 0x826A
	glDebugSeverityNotification = 0x826B
	glDebugSeverityHigh         = 0x9146
	glDebugSeverityMedium       = 0x9147
	glDebugSeverityLow          = 0x9148
	glDontCare                  = 0x1100
)
