// Package assets supplies the meshes and textures the renderer draws,
// addressed by logical name.
package assets

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one mesh vertex.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// VertexFloats is the interleaved float count per vertex: position, normal,
// uv.
const VertexFloats = 8

// MeshData is CPU-side geometry. Patch meshes are drawn as four-vertex
// tessellation patches, every other mesh as indexed triangles.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
	Patches  bool
}

// Interleaved flattens the vertices for upload.
func (m MeshData) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexFloats)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1])
	}
	return out
}

// Merge concatenates meshes into one indexed triangle mesh.
func Merge(parts ...MeshData) MeshData {
	var out MeshData
	for _, p := range parts {
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, p.Vertices...)
		for _, i := range p.Indices {
			out.Indices = append(out.Indices, base+i)
		}
	}
	return out
}

// TerrainGrid is a cells×cells grid of quad patches spanning [0, extent] in
// x and z at y = 0. UVs run 0..1 across the grid so the tessellation stage
// can sample the height texture.
func TerrainGrid(cells int, extent float32) MeshData {
	if cells < 1 {
		cells = 1
	}
	m := MeshData{Patches: true}
	step := extent / float32(cells)
	for z := 0; z <= cells; z++ {
		for x := 0; x <= cells; x++ {
			m.Vertices = append(m.Vertices, Vertex{
				Position: mgl32.Vec3{float32(x) * step, 0, float32(z) * step},
				Normal:   mgl32.Vec3{0, 1, 0},
				UV:       mgl32.Vec2{float32(x) / float32(cells), float32(z) / float32(cells)},
			})
		}
	}
	row := uint32(cells + 1)
	for z := uint32(0); z < uint32(cells); z++ {
		for x := uint32(0); x < uint32(cells); x++ {
			i := z*row + x
			m.Indices = append(m.Indices, i, i+1, i+row+1, i+row)
		}
	}
	return m
}

// Box is an axis-aligned box with flat face normals.
func Box(min, max mgl32.Vec3) MeshData {
	var m MeshData
	face := func(n mgl32.Vec3, corners [4]mgl32.Vec3) {
		base := uint32(len(m.Vertices))
		uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
		for i, c := range corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: n, UV: uvs[i]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	x0, y0, z0 := min[0], min[1], min[2]
	x1, y1, z1 := max[0], max[1], max[2]
	face(mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}})
	face(mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{x1, y0, z0}, {x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}})
	face(mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{x1, y0, z1}, {x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}})
	face(mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}})
	face(mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}, {x0, y1, z0}})
	face(mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}})
	return m
}

// Cube is the unit cube centred on the origin.
func Cube() MeshData {
	return Box(mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5})
}

// Roof is a gable prism along x sitting on y = base.
func Roof(halfWidth, halfDepth, base, height float32) MeshData {
	var m MeshData
	tri := func(a, b, c mgl32.Vec3) {
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		i := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			Vertex{Position: a, Normal: n, UV: mgl32.Vec2{0, 0}},
			Vertex{Position: b, Normal: n, UV: mgl32.Vec2{1, 0}},
			Vertex{Position: c, Normal: n, UV: mgl32.Vec2{0.5, 1}})
		m.Indices = append(m.Indices, i, i+1, i+2)
	}
	w, d, top := halfWidth, halfDepth, base+height
	fl, fr := mgl32.Vec3{-w, base, d}, mgl32.Vec3{w, base, d}
	bl, br := mgl32.Vec3{-w, base, -d}, mgl32.Vec3{w, base, -d}
	rl, rr := mgl32.Vec3{-w, top, 0}, mgl32.Vec3{w, top, 0}

	tri(fl, fr, rr)
	tri(fl, rr, rl)
	tri(br, bl, rl)
	tri(br, rl, rr)
	tri(fr, br, rr)
	tri(bl, fl, rl)
	return m
}

// Cottage is a box house with a gable roof, origin at floor centre.
func Cottage() MeshData {
	return Merge(
		Box(mgl32.Vec3{-2, 0, -1.5}, mgl32.Vec3{2, 2.5, 1.5}),
		Roof(2.2, 1.8, 2.5, 1.5),
	)
}

// Lamp is a post with a head, origin at the foot.
func Lamp() MeshData {
	return Merge(
		Box(mgl32.Vec3{-0.08, 0, -0.08}, mgl32.Vec3{0.08, 2, 0.08}),
		Box(mgl32.Vec3{-0.25, 2, -0.25}, mgl32.Vec3{0.25, 2.3, 0.25}),
	)
}

// Coin is a flat cylinder facing z.
func Coin(radius, thickness float32, segments int) MeshData {
	if segments < 3 {
		segments = 3
	}
	var m MeshData
	h := thickness / 2
	for _, side := range []float32{1, -1} {
		centre := uint32(len(m.Vertices))
		n := mgl32.Vec3{0, 0, side}
		m.Vertices = append(m.Vertices, Vertex{Position: mgl32.Vec3{0, 0, side * h}, Normal: n, UV: mgl32.Vec2{0.5, 0.5}})
		for i := 0; i < segments; i++ {
			a := 2 * math32.Pi * float32(i) / float32(segments)
			c, s := math32.Cos(a), math32.Sin(a)
			m.Vertices = append(m.Vertices, Vertex{
				Position: mgl32.Vec3{c * radius, s * radius, side * h},
				Normal:   n,
				UV:       mgl32.Vec2{0.5 + c/2, 0.5 + s/2},
			})
		}
		for i := 0; i < segments; i++ {
			a := centre + 1 + uint32(i)
			b := centre + 1 + uint32((i+1)%segments)
			if side > 0 {
				m.Indices = append(m.Indices, centre, a, b)
			} else {
				m.Indices = append(m.Indices, centre, b, a)
			}
		}
	}
	rim := uint32(len(m.Vertices))
	for i := 0; i <= segments; i++ {
		a := 2 * math32.Pi * float32(i) / float32(segments)
		c, s := math32.Cos(a), math32.Sin(a)
		n := mgl32.Vec3{c, s, 0}
		u := float32(i) / float32(segments)
		m.Vertices = append(m.Vertices,
			Vertex{Position: mgl32.Vec3{c * radius, s * radius, h}, Normal: n, UV: mgl32.Vec2{u, 1}},
			Vertex{Position: mgl32.Vec3{c * radius, s * radius, -h}, Normal: n, UV: mgl32.Vec2{u, 0}})
	}
	for i := uint32(0); i < uint32(segments); i++ {
		a := rim + 2*i
		m.Indices = append(m.Indices, a, a+1, a+3, a, a+3, a+2)
	}
	return m
}

// Sphere is a UV sphere centred on the origin.
func Sphere(radius float32, rings, segments int) MeshData {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}
	var m MeshData
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		phi := math32.Pi * v
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			theta := 2 * math32.Pi * u
			n := mgl32.Vec3{
				math32.Sin(phi) * math32.Cos(theta),
				math32.Cos(phi),
				math32.Sin(phi) * math32.Sin(theta),
			}
			m.Vertices = append(m.Vertices, Vertex{Position: n.Mul(radius), Normal: n, UV: mgl32.Vec2{u, v}})
		}
	}
	row := uint32(segments + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(segments); s++ {
			a := r*row + s
			b := a + row
			m.Indices = append(m.Indices, a, a+1, b, a+1, b+1, b)
		}
	}
	return m
}

// Mesh names.
const (
	MeshTerrain = "terrain"
	MeshCottage = "cottage"
	MeshLamp    = "lamp"
	MeshCoin    = "coin"
	MeshSphere  = "sphere"
	MeshCube    = "cube"
)

// Meshes builds every named mesh. terrainCells is the patch grid
// resolution and terrainExtent its world size.
func Meshes(terrainCells int, terrainExtent float32) map[string]MeshData {
	return map[string]MeshData{
		MeshTerrain: TerrainGrid(terrainCells, terrainExtent),
		MeshCottage: Cottage(),
		MeshLamp:    Lamp(),
		MeshCoin:    Coin(0.6, 0.12, 24),
		MeshSphere:  Sphere(1, 16, 32),
		MeshCube:    Cube(),
	}
}

// Validate checks that every index is in range and that patch meshes come
// in fours.
func (m MeshData) Validate() error {
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d = %d out of range (%d vertices)", i, idx, n)
		}
	}
	group := 3
	if m.Patches {
		group = 4
	}
	if len(m.Indices)%group != 0 {
		return fmt.Errorf("%d indices is not a multiple of %d", len(m.Indices), group)
	}
	return nil
}
