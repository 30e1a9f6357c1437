package rendering

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyscape/core"
)

func clip(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	return v.Vec3().Mul(1 / v[3])
}

func inClip(p mgl32.Vec3) bool {
	for _, c := range p {
		if c < -1 || c > 1 {
			return false
		}
	}
	return true
}

func TestDirectionalShadowCoversPivot(t *testing.T) {
	sun := core.DefaultLights()[core.SunLight]
	sun.Direction = mgl32.Vec3{1, -1, 0}
	sun.Position = mgl32.Vec3{10, 10, 10}.Sub(sun.Direction.Mul(70))

	v := LightMatrices(sun)
	vp := v.ViewProjection()
	assert.True(t, inClip(clip(vp, mgl32.Vec3{10, 10, 10})))
	assert.True(t, inClip(clip(vp, mgl32.Vec3{25, 2, 25})))

	// Orthographic: w stays 1.
	w := vp.Mul4x1(mgl32.Vec4{30, 0, 5, 1})[3]
	assert.InDelta(t, 1, w, 1e-5)
}

func TestSpotShadowIsPerspective(t *testing.T) {
	spot := core.DefaultLights()[core.SpotLight]
	v := LightMatrices(spot)
	below := spot.Position.Add(mgl32.Vec3{0, -5, 0})
	p := clip(v.ViewProjection(), below)
	assert.True(t, inClip(p))
	assert.InDelta(t, 0, p[0], 1e-4)
	assert.InDelta(t, 0, p[1], 1e-4)

	w := v.ViewProjection().Mul4x1(below.Vec4(1))[3]
	assert.InDelta(t, 5, w, 1e-3)
}

func TestLightMatricesVerticalDirectionIsFinite(t *testing.T) {
	l := core.DefaultLights()[core.SunLight]
	l.Direction = mgl32.Vec3{0, 0.1, 0}
	v := LightMatrices(l)
	for _, e := range v.View {
		assert.False(t, math32.IsNaN(e), "NaN in view matrix")
	}
}

type recordingShadow struct {
	calls []string
}

func (r *recordingShadow) BindShadowMap(light int) { r.calls = append(r.calls, "bind") }
func (r *recordingShadow) DrawDepth(d Drawable, v LightView) {
	r.calls = append(r.calls, "draw:"+d.Mesh)
}
func (r *recordingShadow) UnbindShadowMap(light int) { r.calls = append(r.calls, "unbind") }

func TestRenderShadowMaps(t *testing.T) {
	lights := core.DefaultLights()
	r := &recordingShadow{}
	occ := []Drawable{{Mesh: MeshTerrain, Tessellated: true}, {Mesh: MeshCottage}}
	views := RenderShadowMaps(r, lights[:], occ)
	require.Len(t, views, 2)
	assert.Equal(t, []string{
		"bind", "draw:terrain", "draw:cottage", "unbind",
		"bind", "draw:terrain", "draw:cottage", "unbind",
	}, r.calls)
	assert.Equal(t, LightMatrices(lights[1]), views[1])
}
