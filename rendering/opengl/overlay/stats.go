// Package overlay draws the debug stats panel over the final image.
package overlay

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/core"
	"skyscape/gpu"
	"skyscape/rendering"
)

const statsVertexShader = `
#version 410 core

layout (location = 0) in vec2 position;
layout (location = 1) in vec4 color;

out vec4 fragColor;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(position, 0.0, 1.0);
    fragColor = color;
}
`

const statsFragmentShader = `
#version 410 core

in vec4 fragColor;
out vec4 outColor;

void main() {
    outColor = fragColor;
}
`

// floatsPerVertex is position (2) plus colour (4).
const floatsPerVertex = 6

// StatsOverlay renders the telemetry bars as flat coloured quads.
type StatsOverlay struct {
	program *gpu.Program
	vao     uint32
	vbo     uint32

	width  float32
	height float32
}

// NewStatsOverlay compiles the overlay program and allocates its buffers.
func NewStatsOverlay(width, height int) (*StatsOverlay, error) {
	program, err := gpu.NewProgram("stats-overlay", gpu.Vertex(statsVertexShader), gpu.Fragment(statsFragmentShader))
	if err != nil {
		return nil, fmt.Errorf("stats overlay: %w", err)
	}
	so := &StatsOverlay{program: program, width: float32(width), height: float32(height)}

	gl.GenVertexArrays(1, &so.vao)
	gl.GenBuffers(1, &so.vbo)
	gl.BindVertexArray(so.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, so.vbo)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return so, nil
}

// Render draws the panel for t on the currently bound framebuffer.
func (so *StatsOverlay) Render(t *core.Telemetry) {
	vertices := rendering.OverlayVertices(rendering.OverlayBars(t))
	if len(vertices) == 0 {
		return
	}

	// The y-down projection flips winding.
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	so.program.Use()
	so.program.SetMat4("projection", mgl32.Ortho2D(0, so.width, so.height, 0))

	gl.BindVertexArray(so.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, so.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/floatsPerVertex))

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

// UpdateSize follows the window size.
func (so *StatsOverlay) UpdateSize(width, height int) {
	so.width = float32(width)
	so.height = float32(height)
}

// Release cleans up resources.
func (so *StatsOverlay) Release() {
	so.program.Release()
	if so.vao != 0 {
		gl.DeleteVertexArrays(1, &so.vao)
	}
	if so.vbo != 0 {
		gl.DeleteBuffers(1, &so.vbo)
	}
}
