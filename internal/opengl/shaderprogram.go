package opengl

import (
	"io/fs"
	"os"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/braheezy/glviewer/internal/logger"
)

// ShaderProgram is a linked set of shader stages with its active uniform locations.
type ShaderProgram struct {
	ctx       *Context
	handle    uint32
	linked    bool
	stages    [6]uint32
	locations map[string]int32
}

func (c *Context) NewShader() *ShaderProgram {
	return &ShaderProgram{
		ctx:       c,
		handle:    c.gl.CreateProgram(),
		locations: make(map[string]int32),
	}
}

func (p *ShaderProgram) Handle() uint32 { return p.handle }
func (p *ShaderProgram) Linked() bool   { return p.linked }

// Bind makes the program current. Uniform setters need a bound program.
func (p *ShaderProgram) Bind()   { p.ctx.BindShader(p.handle) }
func (p *ShaderProgram) Unbind() { p.ctx.BindShader(0) }

// Attach compiles source as the given stage and attaches it, replacing a stage of
// the same type.
func (p *ShaderProgram) Attach(source string, typ ShaderType) error {
	gl := p.ctx.gl
	slot := typ.slot()
	if old := p.stages[slot]; old != 0 {
		gl.DetachShader(p.handle, old)
		gl.DeleteShader(old)
		p.stages[slot] = 0
	}

	sh := gl.CreateShader(uint32(typ))
	if sh == 0 {
		return errors.Errorf("failed to create %s shader", typ)
	}
	gl.ShaderSource(sh, source)
	gl.CompileShader(sh)
	if gl.GetShaderiv(sh, glCompileStatus) == 0 {
		log := gl.GetShaderInfoLog(sh)
		gl.DeleteShader(sh)
		logger.Log.Error("ERROR compiling shader", zap.Stringer("stage", typ), zap.String("log", log))
		return errors.Errorf("failed to compile %s shader: %s", typ, log)
	}
	gl.AttachShader(p.handle, sh)
	p.stages[slot] = sh
	return nil
}

// Load reads a stage from disk.
func (p *ShaderProgram) Load(path string, typ ShaderType) error {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Log.Error("couldn't open shader file", zap.String("path", path), zap.Error(err))
		return errors.Wrapf(err, "load %s shader", typ)
	}
	return p.Attach(string(data), typ)
}

// LoadFS reads a stage from fsys, typically an embedded shader directory.
func (p *ShaderProgram) LoadFS(fsys fs.FS, path string, typ ShaderType) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		logger.Log.Error("couldn't open shader file", zap.String("path", path), zap.Error(err))
		return errors.Wrapf(err, "load %s shader", typ)
	}
	return p.Attach(string(data), typ)
}

// Link links the attached stages, validates the program and collects the active
// uniforms. A program links once.
func (p *ShaderProgram) Link() error {
	if p.linked {
		return errors.New("shader program already linked")
	}
	gl := p.ctx.gl
	gl.LinkProgram(p.handle)
	if gl.GetProgramiv(p.handle, glLinkStatus) == 0 {
		log := gl.GetProgramInfoLog(p.handle)
		logger.Log.Error("ERROR link shader", zap.String("log", log))
		return errors.Errorf("failed to link shader program: %s", log)
	}
	p.linked = true
	p.validate()
	p.collectUniforms()
	return nil
}

func (p *ShaderProgram) validate() {
	gl := p.ctx.gl
	gl.ValidateProgram(p.handle)
	if gl.GetProgramiv(p.handle, glLinkStatus) == 0 {
		logger.Log.Error("ERROR validating shader", zap.String("log", gl.GetProgramInfoLog(p.handle)))
	}
}

func (p *ShaderProgram) collectUniforms() {
	gl := p.ctx.gl
	props := []uint32{glNameLength, glLocation}
	result := make([]int32, len(props))
	clear(p.locations)

	n := gl.GetProgramInterfaceiv(p.handle, glUniform, glActiveResources)
	for i := uint32(0); i < uint32(n); i++ {
		gl.GetProgramResourceiv(p.handle, glUniform, i, props, result)
		name := gl.GetProgramResourceName(p.handle, glUniform, i, result[0])
		p.locations[name] = result[1]
	}
}

// Rebuild compiles and links sources into a new program and replaces this one
// with it. On failure the current program stays in use.
func (p *ShaderProgram) Rebuild(sources map[ShaderType]string) error {
	next := p.ctx.NewShader()
	for typ, src := range sources {
		if err := next.Attach(src, typ); err != nil {
			next.Delete()
			return err
		}
	}
	if err := next.Link(); err != nil {
		next.Delete()
		return err
	}

	bound := p.ctx.shader == p.handle && p.handle != 0
	p.Delete()
	*p = *next
	if bound {
		p.Bind()
	}
	return nil
}

// UniformLocation returns -1 and warns for names the program does not use.
func (p *ShaderProgram) UniformLocation(name string) int32 {
	loc, ok := p.locations[name]
	if !ok {
		logger.Log.Warn("cannot locate uniform", zap.String("name", name))
		return -1
	}
	return loc
}

// Uniforms lists the active uniform names.
func (p *ShaderProgram) Uniforms() []string {
	names := make([]string, 0, len(p.locations))
	for name := range p.locations {
		names = append(names, name)
	}
	return names
}

func (p *ShaderProgram) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

func (p *ShaderProgram) SetInt(name string, v int32)       { p.Uniform(name, v) }
func (p *ShaderProgram) SetUint(name string, v uint32)     { p.Uniform(name, v) }
func (p *ShaderProgram) SetFloat(name string, v float32)   { p.Uniform(name, v) }
func (p *ShaderProgram) SetDouble(name string, v float64)  { p.Uniform(name, v) }
func (p *ShaderProgram) SetVec2(name string, v mgl32.Vec2) { p.Uniform(name, v) }
func (p *ShaderProgram) SetVec3(name string, v mgl32.Vec3) { p.Uniform(name, v) }
func (p *ShaderProgram) SetVec4(name string, v mgl32.Vec4) { p.Uniform(name, v) }
func (p *ShaderProgram) SetMat3(name string, m mgl32.Mat3) { p.Uniform(name, m) }
func (p *ShaderProgram) SetMat4(name string, m mgl32.Mat4) { p.Uniform(name, m) }

// Uniform uploads v to the named uniform, choosing the GL call from the Go type.
// Slices upload arrays starting at name, which should then be "array[0]".
func (p *ShaderProgram) Uniform(name string, v any) {
	loc := p.UniformLocation(name)
	if loc < 0 {
		return
	}
	if err := uniform(p.ctx.gl, loc, v); err != nil {
		logger.Log.Error("uniform upload", zap.String("name", name), zap.Error(err))
	}
}

func uniform(gl Driver, loc int32, v any) error {
	switch v := v.(type) {
	case float32:
		gl.Uniformfv(loc, 1, []float32{v})
	case float64:
		gl.Uniformdv(loc, 1, []float64{v})
	case int32:
		gl.Uniformiv(loc, 1, []int32{v})
	case int:
		gl.Uniformiv(loc, 1, []int32{int32(v)})
	case uint32:
		gl.Uniformuiv(loc, 1, []uint32{v})
	case bool:
		gl.Uniformiv(loc, 1, []int32{boolInt(v)})

	case mgl32.Vec2:
		gl.Uniformfv(loc, 2, v[:])
	case mgl32.Vec3:
		gl.Uniformfv(loc, 3, v[:])
	case mgl32.Vec4:
		gl.Uniformfv(loc, 4, v[:])
	case mgl64.Vec2:
		gl.Uniformdv(loc, 2, v[:])
	case mgl64.Vec3:
		gl.Uniformdv(loc, 3, v[:])
	case mgl64.Vec4:
		gl.Uniformdv(loc, 4, v[:])
	case [2]int32:
		gl.Uniformiv(loc, 2, v[:])
	case [3]int32:
		gl.Uniformiv(loc, 3, v[:])
	case [4]int32:
		gl.Uniformiv(loc, 4, v[:])
	case [2]uint32:
		gl.Uniformuiv(loc, 2, v[:])
	case [3]uint32:
		gl.Uniformuiv(loc, 3, v[:])
	case [4]uint32:
		gl.Uniformuiv(loc, 4, v[:])
	case [2]bool:
		gl.Uniformiv(loc, 2, []int32{boolInt(v[0]), boolInt(v[1])})
	case [3]bool:
		gl.Uniformiv(loc, 3, []int32{boolInt(v[0]), boolInt(v[1]), boolInt(v[2])})
	case [4]bool:
		gl.Uniformiv(loc, 4, []int32{boolInt(v[0]), boolInt(v[1]), boolInt(v[2]), boolInt(v[3])})

	case mgl32.Mat2:
		gl.UniformMatrixfv(loc, 2, 2, v[:])
	case mgl32.Mat3:
		gl.UniformMatrixfv(loc, 3, 3, v[:])
	case mgl32.Mat4:
		gl.UniformMatrixfv(loc, 4, 4, v[:])
	case mgl32.Mat2x3:
		gl.UniformMatrixfv(loc, 2, 3, v[:])
	case mgl32.Mat2x4:
		gl.UniformMatrixfv(loc, 2, 4, v[:])
	case mgl32.Mat3x2:
		gl.UniformMatrixfv(loc, 3, 2, v[:])
	case mgl32.Mat3x4:
		gl.UniformMatrixfv(loc, 3, 4, v[:])
	case mgl32.Mat4x2:
		gl.UniformMatrixfv(loc, 4, 2, v[:])
	case mgl32.Mat4x3:
		gl.UniformMatrixfv(loc, 4, 3, v[:])
	case mgl64.Mat2:
		gl.UniformMatrixdv(loc, 2, 2, v[:])
	case mgl64.Mat3:
		gl.UniformMatrixdv(loc, 3, 3, v[:])
	case mgl64.Mat4:
		gl.UniformMatrixdv(loc, 4, 4, v[:])
	case mgl64.Mat2x3:
		gl.UniformMatrixdv(loc, 2, 3, v[:])
	case mgl64.Mat2x4:
		gl.UniformMatrixdv(loc, 2, 4, v[:])
	case mgl64.Mat3x2:
		gl.UniformMatrixdv(loc, 3, 2, v[:])
	case mgl64.Mat3x4:
		gl.UniformMatrixdv(loc, 3, 4, v[:])
	case mgl64.Mat4x2:
		gl.UniformMatrixdv(loc, 4, 2, v[:])
	case mgl64.Mat4x3:
		gl.UniformMatrixdv(loc, 4, 3, v[:])

	case []float32:
		gl.Uniformfv(loc, 1, v)
	case []int32:
		gl.Uniformiv(loc, 1, v)
	case []uint32:
		gl.Uniformuiv(loc, 1, v)
	case []float64:
		gl.Uniformdv(loc, 1, v)
	case []mgl32.Vec2:
		gl.Uniformfv(loc, 2, flatten[float32](v, 2))
	case []mgl32.Vec3:
		gl.Uniformfv(loc, 3, flatten[float32](v, 3))
	case []mgl32.Vec4:
		gl.Uniformfv(loc, 4, flatten[float32](v, 4))
	case []mgl32.Mat3:
		gl.UniformMatrixfv(loc, 3, 3, flatten[float32](v, 9))
	case []mgl32.Mat4:
		gl.UniformMatrixfv(loc, 4, 4, flatten[float32](v, 16))
	default:
		return errors.Errorf("unsupported uniform type %T", v)
	}
	return nil
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// flatten views a slice of fixed size arrays as their components.
func flatten[E, T any](v []T, components int) []E {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*E)(unsafe.Pointer(unsafe.SliceData(v))), len(v)*components)
}

// Delete detaches the stages and deletes the program.
func (p *ShaderProgram) Delete() {
	if p.handle == 0 {
		return
	}
	gl := p.ctx.gl
	for i, sh := range p.stages {
		if sh != 0 {
			gl.DetachShader(p.handle, sh)
			gl.DeleteShader(sh)
			p.stages[i] = 0
		}
	}
	gl.DeleteProgram(p.handle)
	p.ctx.forgetShader(p.handle)
	p.handle = 0
	p.linked = false
}
