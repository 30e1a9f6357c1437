package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"skyscape/assets"
)

// Vertex attribute locations shared by every scene shader.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribUV       = 2
)

// Mesh is uploaded geometry: a VAO with interleaved vertex and index
// buffers.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	patches       bool
}

// NewMesh uploads m.
func NewMesh(m assets.MeshData) (*Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	data := m.Interleaved()
	mesh := &Mesh{count: int32(len(m.Indices)), patches: m.Patches}

	gl.GenVertexArrays(1, &mesh.vao)
	gl.BindVertexArray(mesh.vao)

	gl.GenBuffers(1, &mesh.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &mesh.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(assets.VertexFloats * 4)
	gl.VertexAttribPointer(AttribPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(AttribPosition)
	gl.VertexAttribPointer(AttribNormal, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(AttribNormal)
	gl.VertexAttribPointer(AttribUV, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(AttribUV)

	gl.BindVertexArray(0)
	return mesh, nil
}

// Draw issues the mesh's draw call. Patch meshes draw four-vertex patches
// for the tessellation stages.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.patches {
		gl.PatchParameteri(gl.PATCH_VERTICES, 4)
		gl.DrawElements(gl.PATCHES, m.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// Patches reports whether the mesh needs a tessellation program.
func (m *Mesh) Patches() bool { return m.patches }

// Release deletes the buffers and the VAO.
func (m *Mesh) Release() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	*m = Mesh{}
}

// FullScreen is an empty VAO for attribute-less full-screen triangles
// generated from gl_VertexID.
type FullScreen struct {
	vao uint32
}

func NewFullScreen() *FullScreen {
	f := &FullScreen{}
	gl.GenVertexArrays(1, &f.vao)
	return f
}

// Draw issues one triangle strip covering the viewport.
func (f *FullScreen) Draw() {
	gl.BindVertexArray(f.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

func (f *FullScreen) Release() {
	if f.vao != 0 {
		gl.DeleteVertexArrays(1, &f.vao)
		f.vao = 0
	}
}
