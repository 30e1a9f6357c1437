// Package gpu wraps the OpenGL objects the renderer owns: shader programs,
// textures, framebuffers, shadow maps and meshes. Every constructor needs a
// current GL context on the calling thread.
package gpu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrShaderCompile is returned when a stage fails to compile or a
	// program fails to link. The driver log is part of the message.
	ErrShaderCompile = errors.New("shader compile failed")
)

// Stage is one shader stage's source.
type Stage struct {
	Type   uint32
	Source string
}

// Vertex, Fragment and the tessellation stages build Stage values.
func Vertex(src string) Stage   { return Stage{Type: gl.VERTEX_SHADER, Source: src} }
func Fragment(src string) Stage { return Stage{Type: gl.FRAGMENT_SHADER, Source: src} }
func TessControl(src string) Stage {
	return Stage{Type: gl.TESS_CONTROL_SHADER, Source: src}
}
func TessEvaluation(src string) Stage {
	return Stage{Type: gl.TESS_EVALUATION_SHADER, Source: src}
}

// Program is a linked shader program with a uniform location cache.
type Program struct {
	name      string
	id        uint32
	locations map[string]int32
}

// NewProgram compiles and links stages. name only labels errors and logs.
func NewProgram(name string, stages ...Stage) (*Program, error) {
	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()
	for _, st := range stages {
		s, err := compileShader(st.Source, st.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %s stage: %w", name, stageName(st.Type), err)
		}
		shaders = append(shaders, s)
	}

	id, err := linkProgram(shaders)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Program{name: name, id: id, locations: make(map[string]int32)}, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrShaderCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func linkProgram(shaders []uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: link: %s", ErrShaderCompile, strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func stageName(t uint32) string {
	switch t {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	case gl.TESS_CONTROL_SHADER:
		return "tess-control"
	case gl.TESS_EVALUATION_SHADER:
		return "tess-evaluation"
	default:
		return fmt.Sprintf("0x%x", t)
	}
}

// Use makes p the current program.
func (p *Program) Use() { gl.UseProgram(p.id) }

// Name is the label given at construction.
func (p *Program) Name() string { return p.name }

// location looks a uniform up once. Missing uniforms cache -1, which GL
// ignores on upload.
func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(p.location(name), v[0], v[1])
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.location(name), v[0], v[1], v[2])
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(p.location(name), v[0], v[1], v[2], v[3])
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

// SetFloats uploads a float array uniform such as a blur kernel.
func (p *Program) SetFloats(name string, v []float32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1fv(p.location(name), int32(len(v)), &v[0])
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.location(name), i)
}

// Release deletes the program.
func (p *Program) Release() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
