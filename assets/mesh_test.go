package assets

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshesAreValid(t *testing.T) {
	for name, m := range Meshes(50, 49) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, m.Validate())
			assert.NotEmpty(t, m.Indices)
			for _, v := range m.Vertices {
				assert.InDelta(t, 1, v.Normal.Len(), 1e-4)
			}
		})
	}
}

func TestTerrainGrid(t *testing.T) {
	m := TerrainGrid(50, 49)
	assert.True(t, m.Patches)
	assert.Len(t, m.Vertices, 51*51)
	assert.Len(t, m.Indices, 50*50*4)

	last := m.Vertices[len(m.Vertices)-1]
	assert.InDelta(t, 49, last.Position[0], 1e-4)
	assert.InDelta(t, 49, last.Position[2], 1e-4)
	assert.Equal(t, mgl32.Vec2{1, 1}, last.UV)

	assert.Equal(t, []uint32{0, 1, 52, 51}, m.Indices[:4])
}

func TestBoxBounds(t *testing.T) {
	m := Box(mgl32.Vec3{-1, 0, -2}, mgl32.Vec3{1, 3, 2})
	assert.Len(t, m.Vertices, 24)
	assert.Len(t, m.Indices, 36)
	for _, v := range m.Vertices {
		assert.True(t, v.Position[1] == 0 || v.Position[1] == 3)
	}
}

func TestMergeOffsetsIndices(t *testing.T) {
	a, b := Cube(), Cube()
	m := Merge(a, b)
	require.NoError(t, m.Validate())
	assert.Equal(t, uint32(len(a.Vertices)), m.Indices[len(a.Indices)])
	assert.False(t, m.Patches)
}

func TestInterleaved(t *testing.T) {
	m := MeshData{Vertices: []Vertex{{
		Position: mgl32.Vec3{1, 2, 3},
		Normal:   mgl32.Vec3{0, 1, 0},
		UV:       mgl32.Vec2{0.25, 0.75},
	}}}
	assert.Equal(t, []float32{1, 2, 3, 0, 1, 0, 0.25, 0.75}, m.Interleaved())
}

func TestValidateRejectsBadIndices(t *testing.T) {
	m := Cube()
	m.Indices = append(m.Indices, 1000, 0, 1)
	assert.Error(t, m.Validate())

	p := TerrainGrid(2, 1)
	p.Indices = p.Indices[:5]
	assert.Error(t, p.Validate())
}
