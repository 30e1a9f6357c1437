package rendering

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/core"
)

// ShadowMapSize is the side length of every shadow map.
const ShadowMapSize = 4096

// LightView is the view and projection a light renders its shadow map with.
type LightView struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// ViewProjection is Projection × View.
func (v LightView) ViewProjection() mgl32.Mat4 {
	return v.Projection.Mul4(v.View)
}

// LightMatrices builds a light's shadow camera: orthographic for
// directional lights, perspective for spot lights, looking along the light
// direction from its position.
func LightMatrices(l core.LightDescriptor) LightView {
	dir := l.Direction
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, -1, 0}
	}
	dir = dir.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	if math32.Abs(dir.Dot(up)) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(l.Position, l.Position.Add(dir), up)

	near, far := l.NearPlane, l.FarPlane
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near + 200
	}

	var proj mgl32.Mat4
	switch l.Kind {
	case core.Spot:
		fov := l.FOV
		if fov <= 0 {
			fov = math32.Pi / 2
		}
		proj = mgl32.Perspective(fov, 1, near, far)
	default:
		half := l.OrthoSize / 2
		if half <= 0 {
			half = 50
		}
		proj = mgl32.Ortho(-half, half, -half, half, near, far)
	}
	return LightView{View: view, Projection: proj}
}

// ShadowExecutor renders depth into per-light shadow maps.
type ShadowExecutor interface {
	// BindShadowMap targets light's depth map, sets the viewport and clears.
	BindShadowMap(light int)
	DrawDepth(d Drawable, v LightView)
	// UnbindShadowMap restores the previous target and viewport.
	UnbindShadowMap(light int)
}

// RenderShadowMaps draws every occluder into every light's shadow map and
// returns the matrices the lighting pass must sample them with.
func RenderShadowMaps(exec ShadowExecutor, lights []core.LightDescriptor, occluders []Drawable) []LightView {
	views := make([]LightView, len(lights))
	for i, l := range lights {
		views[i] = LightMatrices(l)
		exec.BindShadowMap(i)
		for _, d := range occluders {
			exec.DrawDepth(d, views[i])
		}
		exec.UnbindShadowMap(i)
	}
	return views
}
