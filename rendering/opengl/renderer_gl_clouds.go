package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/gpu"
	"skyscape/rendering"
)

const (
	unitDensity    = 0
	unitSceneDepth = 1
	unitScene      = 0
	unitClouds     = 1
)

// DrawCloudDepth writes the eye distance of every lit surface into the
// linear depth target. Uncovered pixels keep rendering.CloudDepthClear.
func (r *Renderer) DrawCloudDepth(f *rendering.Frame) {
	r.frame = f
	r.targets[rendering.TargetCloudDepth].Bind()
	gl.ClearColor(rendering.CloudDepthClear, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.ClearColor(0, 0, 0, 0)

	for _, d := range f.Scene {
		var p *gpu.Program
		if d.Tessellated {
			p = r.programs.TerrainCloud
			p.Use()
			r.terrainUniforms(p)
		} else {
			p = r.programs.MeshCloud
			p.Use()
		}
		p.SetMat4("view", f.View)
		p.SetMat4("projection", f.Projection)
		p.SetVec3("eye", f.Eye)
		r.draw(d, p)
	}
}

// RaymarchClouds draws the cloud box into TargetClouds. Both faces are
// rasterised so the box still covers the screen from inside.
func (r *Renderer) RaymarchClouds(u rendering.CloudUniforms) {
	r.BindTarget(rendering.TargetClouds, true)
	f := r.frame
	if f == nil || r.field.Density == nil {
		return
	}
	w, h := r.targets[rendering.TargetClouds].Size()

	p := r.programs.Raymarch
	p.Use()
	p.SetMat4("view", f.View)
	p.SetMat4("projection", f.Projection)
	p.SetVec2("screenSize", mgl32.Vec2{float32(w), float32(h)})
	p.SetVec3("eye", u.Eye)
	p.SetVec3("boxMin", u.BoxMin)
	p.SetVec3("boxMax", u.BoxMax)
	p.SetVec3("lightDirection", u.LightDirection)
	p.SetVec3("lightColor", u.LightColor)
	p.SetVec3("gasColor", u.GasColor)
	p.SetFloat("sigmaA", u.SigmaA)
	p.SetFloat("sigmaS", u.SigmaS)
	p.SetFloat("g", u.G)
	p.SetFloat("densityScale", u.Density)
	p.SetInt("samples", u.Samples)
	p.SetVec3("offset", u.Offset)

	p.SetInt("density", unitDensity)
	p.SetInt("sceneDepth", unitSceneDepth)
	r.field.Density.Bind(unitDensity)
	r.targets[rendering.TargetCloudDepth].BindTexture(unitSceneDepth)

	center := u.BoxMin.Add(u.BoxMax).Mul(0.5)
	size := u.BoxMax.Sub(u.BoxMin)

	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	r.draw(rendering.CloudBoxDrawable(center, size), p)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

// BlendClouds composites TargetClouds over TargetSource into
// TargetCloudBlended.
func (r *Renderer) BlendClouds() {
	r.BindTarget(rendering.TargetCloudBlended, true)
	p := r.programs.CloudBlend
	p.Use()
	p.SetInt("scene", unitScene)
	p.SetInt("clouds", unitClouds)
	r.targets[rendering.TargetSource].BindTexture(unitScene)
	r.targets[rendering.TargetClouds].BindTexture(unitClouds)

	gl.Disable(gl.DEPTH_TEST)
	r.fullScreen.Draw()
	gl.Enable(gl.DEPTH_TEST)
}
