package rendering

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/core"
)

// Spot cone falloff, as cosines of the angle off the light axis.
const (
	spotOuterCos = 0.80
	spotInnerCos = 0.95
)

// LightingHooks runs per-frame game logic from inside the lighting pass,
// after the static scene is drawn and before the coins are.
type LightingHooks interface {
	Evaluate(camera mgl32.Vec3)
}

// ShadowSampler reports how lit a world position is from a light, 0 fully
// shadowed to 1 fully lit.
type ShadowSampler interface {
	Visibility(light int, world mgl32.Vec3) float32
}

// Fragment is one shaded surface sample.
type Fragment struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Albedo   mgl32.Vec3
}

// LightingInput is the per-frame lighting state. A nil Shadows or
// ShadowsEnabled false treats every fragment as fully lit.
type LightingInput struct {
	Lights         []core.LightDescriptor
	Eye            mgl32.Vec3
	Shadows        ShadowSampler
	ShadowsEnabled bool
}

// Shade is the lighting model the terrain and prop shaders implement: per
// light, ambient plus shadowed Lambert diffuse and Blinn-Phong specular.
func Shade(f Fragment, in LightingInput) mgl32.Vec3 {
	n := f.Normal.Normalize()
	v := in.Eye.Sub(f.Position)
	if v.Len() > 0 {
		v = v.Normalize()
	}

	var lit, spec mgl32.Vec3
	for i, l := range in.Lights {
		lit = lit.Add(l.Ambient.Vec3())

		var toLight mgl32.Vec3
		cone := float32(1)
		switch l.Kind {
		case core.Spot:
			toLight = l.Position.Sub(f.Position)
			if toLight.Len() == 0 {
				continue
			}
			toLight = toLight.Normalize()
			cone = smoothstep(spotOuterCos, spotInnerCos, toLight.Mul(-1).Dot(l.Direction.Normalize()))
		default:
			if l.Direction.Len() == 0 {
				continue
			}
			toLight = l.Direction.Normalize().Mul(-1)
		}

		ndotl := math32.Max(n.Dot(toLight), 0)
		if ndotl == 0 || cone == 0 {
			continue
		}
		vis := float32(1)
		if in.ShadowsEnabled && in.Shadows != nil {
			vis = core.Clamp(in.Shadows.Visibility(i, f.Position), 0, 1)
		}

		diffuse := l.EffectiveDiffuse().Vec3().Mul(ndotl * cone * vis)
		lit = lit.Add(diffuse)

		h := toLight.Add(v)
		if h.Len() > 0 {
			h = h.Normalize()
			s := math32.Pow(math32.Max(n.Dot(h), 0), l.SpecularPower)
			spec = spec.Add(l.Specular.Vec3().Mul(s * cone * vis))
		}
	}

	out := mgl32.Vec3{lit[0] * f.Albedo[0], lit[1] * f.Albedo[1], lit[2] * f.Albedo[2]}.Add(spec)
	return core.ClampVec3(out, 0, 1)
}

// BandWeights returns the grass, rock and snow texture weights at height h.
// Each band fades in and out over blend on either side of its edges. The
// weights sum to one; a height outside every band takes the nearest one.
func BandWeights(h float32, bands [3]core.Band, blend float32) [3]float32 {
	var w [3]float32
	var sum float32
	for i, b := range bands {
		in := smoothstep(b.Min-blend, b.Min+blend, h)
		out := 1 - smoothstep(b.Max-blend, b.Max+blend, h)
		w[i] = in * out
		sum += w[i]
	}
	if sum > 0 {
		for i := range w {
			w[i] /= sum
		}
		return w
	}

	nearest, best := 0, float32(math32.MaxFloat32)
	for i, b := range bands {
		var d float32
		switch {
		case h < b.Min:
			d = b.Min - h
		case h > b.Max:
			d = h - b.Max
		}
		if d < best {
			nearest, best = i, d
		}
	}
	w[nearest] = 1
	return w
}
