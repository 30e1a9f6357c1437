package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"skyscape/gpu"
	"skyscape/rendering"
)

// BindShadowMap targets light's depth map.
func (r *Renderer) BindShadowMap(light int) {
	if light < 0 || light >= len(r.shadowMaps) {
		return
	}
	// Detach the maps from their sampling units while they are written.
	r.UnbindShadowMaps()
	r.shadowMaps[light].Bind()
	// Front-face culling pushes self-shadowing acne onto back faces.
	gl.CullFace(gl.FRONT)
}

// DrawDepth draws one occluder from the light's point of view.
func (r *Renderer) DrawDepth(d rendering.Drawable, v rendering.LightView) {
	var p *gpu.Program
	if d.Tessellated {
		p = r.programs.TerrainDepth
		p.Use()
		r.terrainUniforms(p)
	} else {
		p = r.programs.MeshDepth
		p.Use()
	}
	p.SetMat4("view", v.View)
	p.SetMat4("projection", v.Projection)
	r.draw(d, p)
}

// UnbindShadowMap returns to the target bound before shadow rendering.
func (r *Renderer) UnbindShadowMap(light int) {
	gl.CullFace(gl.BACK)
	if t, ok := r.targets[r.bound]; ok {
		t.Bind()
		return
	}
	r.BindBackBuffer()
}

// UnbindShadowMaps clears the shadow sampling units.
func (r *Renderer) UnbindShadowMaps() {
	for _, unit := range []uint32{unitShadow0, unitShadow1} {
		gl.ActiveTexture(gl.TEXTURE0 + unit)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
}
