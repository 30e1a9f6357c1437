package rendering

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/core"
	"skyscape/terrain"
)

const (
	// CloudDepthClear is written to the linear depth target where nothing
	// was drawn, so rays through open sky run to the far side of the box.
	CloudDepthClear = 1e4

	transmittanceCutoff = 0.01
)

// CloudUniforms is the per-frame input of the cloud raymarch.
type CloudUniforms struct {
	Eye            mgl32.Vec3
	BoxMin, BoxMax mgl32.Vec3
	// LightDirection points from the sun into the scene.
	LightDirection mgl32.Vec3
	LightColor     mgl32.Vec3
	GasColor       mgl32.Vec3
	SigmaA         float32
	SigmaS         float32
	G              float32
	Density        float32
	Samples        int32
	// Offset scrolls the density volume, in normalised volume coordinates.
	Offset mgl32.Vec3
}

// BuildCloudUniforms snapshots the cloud state for a frame. time is in
// seconds and drives the wind scroll.
func BuildCloudUniforms(p *core.SceneParameters, eye mgl32.Vec3, time float32) CloudUniforms {
	c := p.Clouds
	half := c.BoxSize.Mul(0.5)
	sun := p.Lights[core.SunLight]
	samples := c.Samples
	if samples < 1 {
		samples = 1
	}
	return CloudUniforms{
		Eye:            eye,
		BoxMin:         c.BoxCenter.Sub(half),
		BoxMax:         c.BoxCenter.Add(half),
		LightDirection: sun.Direction,
		LightColor:     sun.EffectiveDiffuse().Vec3().Add(sun.Ambient.Vec3()),
		GasColor:       c.GasColor.Vec3(),
		SigmaA:         c.SigmaA,
		SigmaS:         c.SigmaS,
		G:              c.G,
		Density:        c.Density,
		Samples:        int32(samples),
		Offset:         mgl32.Vec3{wrapUnit(c.Wind[0] * time), 0, wrapUnit(c.Wind[1] * time)},
	}
}

// HenyeyGreenstein is the single-lobe phase function for scattering angle
// cosTheta and asymmetry g.
func HenyeyGreenstein(cosTheta, g float32) float32 {
	g2 := g * g
	denom := 1 + g2 - 2*g*cosTheta
	return (1 - g2) / (4 * math32.Pi * denom * math32.Sqrt(denom))
}

// DensitySampler reads the cloud volume at normalised coordinates. The
// coordinates wrap.
type DensitySampler interface {
	Sample(uvw mgl32.Vec3) float32
}

type volumeSampler struct {
	field *terrain.DensityField
}

// NewVolumeSampler samples a density field with nearest filtering and
// repeat wrapping, matching the GPU texture's sampler.
func NewVolumeSampler(d *terrain.DensityField) DensitySampler {
	return volumeSampler{field: d}
}

func (s volumeSampler) Sample(uvw mgl32.Vec3) float32 {
	x, y, z := s.field.Size()
	return s.field.At(
		int(wrapUnit(uvw[0])*float32(x)),
		int(wrapUnit(uvw[1])*float32(y)),
		int(wrapUnit(uvw[2])*float32(z)),
	)
}

// MarchRay integrates the cloud box along a view ray. The march ends at the
// box exit or at sceneDepth, whichever is nearer. It returns in-scattered
// colour and opacity.
func MarchRay(dir mgl32.Vec3, sceneDepth float32, u CloudUniforms, density DensitySampler) (mgl32.Vec3, float32) {
	dir = dir.Normalize()
	tNear, tFar, hit := intersectBox(u.Eye, dir, u.BoxMin, u.BoxMax)
	if !hit {
		return mgl32.Vec3{}, 0
	}
	tNear = math32.Max(tNear, 0)
	tFar = math32.Min(tFar, sceneDepth)
	if tFar <= tNear {
		return mgl32.Vec3{}, 0
	}

	n := u.Samples
	if n < 1 {
		n = 1
	}
	dt := (tFar - tNear) / float32(n)
	sigmaT := u.SigmaA + u.SigmaS
	size := u.BoxMax.Sub(u.BoxMin)

	var phase float32
	if u.LightDirection.Len() > 0 {
		phase = HenyeyGreenstein(dir.Dot(u.LightDirection.Normalize().Mul(-1)), u.G)
	}
	light := mgl32.Vec3{
		u.LightColor[0] * u.GasColor[0],
		u.LightColor[1] * u.GasColor[1],
		u.LightColor[2] * u.GasColor[2],
	}

	transmittance := float32(1)
	var col mgl32.Vec3
	for i := int32(0); i < n; i++ {
		t := tNear + (float32(i)+0.5)*dt
		p := u.Eye.Add(dir.Mul(t)).Sub(u.BoxMin)
		uvw := mgl32.Vec3{p[0] / size[0], p[1] / size[1], p[2] / size[2]}.Add(u.Offset)
		rho := math32.Max(0, density.Sample(uvw)) * u.Density
		if rho <= 0 {
			continue
		}
		col = col.Add(light.Mul(transmittance * phase * u.SigmaS * rho * dt))
		transmittance *= math32.Exp(-sigmaT * rho * dt)
		if transmittance < transmittanceCutoff {
			break
		}
	}
	return col, 1 - transmittance
}

// intersectBox is the slab test. tNear may be negative when the origin is
// inside the box.
func intersectBox(origin, dir, boxMin, boxMax mgl32.Vec3) (tNear, tFar float32, hit bool) {
	tNear = -math32.MaxFloat32
	tFar = math32.MaxFloat32
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < boxMin[i] || origin[i] > boxMax[i] {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t0 := (boxMin[i] - origin[i]) * inv
		t1 := (boxMax[i] - origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tNear = math32.Max(tNear, t0)
		tFar = math32.Min(tFar, t1)
		if tNear > tFar {
			return 0, 0, false
		}
	}
	return tNear, tFar, tFar >= 0
}

func wrapUnit(v float32) float32 {
	v -= math32.Floor(v)
	if v >= 1 {
		v = 0
	}
	return v
}
