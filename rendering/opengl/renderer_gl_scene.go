package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/assets"
	"skyscape/core"
	"skyscape/rendering"
)

// BindTarget makes id the draw target and optionally clears it.
func (r *Renderer) BindTarget(id rendering.TargetID, clear bool) {
	t, ok := r.targets[id]
	if !ok {
		return
	}
	t.Bind()
	r.bound = id
	if clear {
		gl.ClearColor(0, 0, 0, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}
}

// BindBackBuffer draws to the window.
func (r *Renderer) BindBackBuffer() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
}

// DrawSky draws the dome around the eye without writing depth.
func (r *Renderer) DrawSky(f *rendering.Frame) {
	r.frame = f
	p := r.programs.Sky
	p.Use()

	sun := f.Params.Lights[core.SunLight]
	intensity := sun.Intensity
	if f.DayNight.Night {
		intensity = 0
	}
	p.SetMat4("view", f.View)
	p.SetMat4("projection", f.Projection)
	p.SetVec3("eye", f.Eye)
	p.SetVec4("centerColor", f.Params.Sky.CenterColor)
	p.SetVec4("apexColor", f.Params.Sky.ApexColor)
	p.SetVec3("sunPosition", sun.Position)
	p.SetVec3("sunColor", f.Params.SunColor.Vec3())
	p.SetFloat("sunIntensity", intensity)

	// The eye is inside the sphere.
	gl.CullFace(gl.FRONT)
	gl.DepthMask(false)
	r.draw(rendering.SkyDrawable(f.Eye), p)
	gl.DepthMask(true)
	gl.CullFace(gl.BACK)
}

// SetWireframe switches polygon rasterisation between lines and fill.
func (r *Renderer) SetWireframe(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

// DrawLit shades the terrain and props.
func (r *Renderer) DrawLit(f *rendering.Frame) {
	for _, d := range f.Scene {
		if d.Tessellated {
			r.drawTerrain(f, d)
			continue
		}
		r.drawMesh(f, d)
	}
}

// DrawCoins shades the remaining coins.
func (r *Renderer) DrawCoins(f *rendering.Frame) {
	for _, d := range f.Coins {
		r.drawMesh(f, d)
	}
}

func (r *Renderer) drawTerrain(f *rendering.Frame, d rendering.Drawable) {
	p := r.programs.TerrainLit
	p.Use()
	r.sceneUniforms(p, f)
	r.terrainUniforms(p)

	t := f.Params.Terrain
	p.SetBool("terrain", true)
	p.SetInt("grassMap", unitGrass)
	p.SetInt("rockMap", unitRock)
	p.SetInt("snowMap", unitSnow)
	r.bindTexture(assets.TextureGrass, unitGrass)
	r.bindTexture(assets.TextureRock, unitRock)
	r.bindTexture(assets.TextureSnow, unitSnow)
	for i, b := range [3]core.Band{t.Grass, t.Rock, t.Snow} {
		p.SetVec2(fmt.Sprintf("bands[%d]", i), mgl32.Vec2{b.Min, b.Max})
	}
	p.SetFloat("bandBlend", t.BandBlend)
	r.draw(d, p)
}

func (r *Renderer) drawMesh(f *rendering.Frame, d rendering.Drawable) {
	p := r.programs.MeshLit
	p.Use()
	r.sceneUniforms(p, f)
	p.SetBool("terrain", false)
	p.SetInt("albedoMap", unitAlbedo)
	r.bindTexture(d.Texture, unitAlbedo)
	r.draw(d, p)
}

// DrawSun draws the sun sphere unlit.
func (r *Renderer) DrawSun(f *rendering.Frame) {
	p := r.programs.Sun
	p.Use()
	p.SetMat4("view", f.View)
	p.SetMat4("projection", f.Projection)
	p.SetVec3("sunColor", f.Params.SunColor.Vec3())
	p.SetInt("albedoMap", unitAlbedo)
	r.bindTexture(assets.TextureSun, unitAlbedo)
	r.draw(rendering.SunDrawable(f.Params.Lights[core.SunLight].Position), p)
}

// DrawOverlay draws the statistics bars over the back buffer.
func (r *Renderer) DrawOverlay(t *core.Telemetry) {
	r.stats.Render(t)
}

// Present swaps the back buffer to the window.
func (r *Renderer) Present() {
	r.window.SwapBuffers()
}

func (r *Renderer) bindTexture(name string, unit uint32) {
	if t, ok := r.textures[name]; ok {
		t.Bind(unit)
	}
}
