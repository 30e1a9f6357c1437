package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LightKind selects how a light is projected and shaded.
type LightKind int

const (
	// Directional lights use an orthographic shadow frustum.
	Directional LightKind = iota
	// Spot lights use a perspective shadow frustum and a cone falloff.
	Spot
)

func (k LightKind) String() string {
	switch k {
	case Directional:
		return "directional"
	case Spot:
		return "spot"
	default:
		return "unknown"
	}
}

// Light slots. The sun is driven by the day-night clock, the spot light
// follows the spotlight prop.
const (
	SunLight   = 0
	SpotLight  = 1
	LightCount = 2
)

// LightDescriptor is everything the shadow and lighting passes need to know
// about one light.
type LightDescriptor struct {
	Kind          LightKind
	Ambient       mgl32.Vec4
	Diffuse       mgl32.Vec4
	Specular      mgl32.Vec4
	SpecularPower float32
	Position      mgl32.Vec3
	Direction     mgl32.Vec3
	Intensity     float32

	// OrthoSize is the side length of a directional light's shadow frustum.
	OrthoSize float32
	// FOV is a spot light's vertical field of view in radians.
	FOV       float32
	NearPlane float32
	FarPlane  float32
}

// ClampIntensity keeps Intensity inside [0, 1].
func (l *LightDescriptor) ClampIntensity() {
	l.Intensity = Clamp(l.Intensity, 0, 1)
}

// EffectiveDiffuse is the diffuse colour scaled by the clamped intensity.
// Alpha is left untouched.
func (l LightDescriptor) EffectiveDiffuse() mgl32.Vec4 {
	s := Clamp(l.Intensity, 0, 1)
	return mgl32.Vec4{l.Diffuse[0] * s, l.Diffuse[1] * s, l.Diffuse[2] * s, l.Diffuse[3]}
}

// DefaultLights returns the sun and the cottage spot light.
func DefaultLights() [LightCount]LightDescriptor {
	sunDiffuse := mgl32.Vec4{0.902, 0.455, 0.318, 1}
	return [LightCount]LightDescriptor{
		SunLight: {
			Kind:          Directional,
			Ambient:       mgl32.Vec4{0.015, 0.010, 0.004, 1},
			Diffuse:       sunDiffuse,
			Specular:      sunDiffuse,
			SpecularPower: 25,
			Position:      mgl32.Vec3{0, 40, 0},
			Direction:     mgl32.Vec3{1, -1, 0},
			Intensity:     0.2,
			OrthoSize:     100,
			NearPlane:     0.1,
			FarPlane:      200,
		},
		SpotLight: {
			Kind:          Spot,
			Ambient:       mgl32.Vec4{0, 0, 0, 1},
			Diffuse:       mgl32.Vec4{1, 0, 0, 1},
			Specular:      mgl32.Vec4{1, 0, 0, 1},
			SpecularPower: 25,
			Position:      mgl32.Vec3{25, 14.65, 26.7},
			Direction:     mgl32.Vec3{0, -1, 0},
			Intensity:     1,
			FOV:           math.Pi / 2,
			NearPlane:     0.1,
			FarPlane:      200,
		},
	}
}
