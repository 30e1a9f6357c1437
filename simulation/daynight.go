package simulation

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/core"
)

const (
	// baseDayDuration is the length of a full day-night cycle in seconds at
	// time scale 1.
	baseDayDuration = 1200

	minTimeScale = 0.01
	lightRadius  = 70
	lightBound   = 100
)

// lightPivot is the point the sun orbits.
var lightPivot = mgl32.Vec3{10, 10, 10}

// nightDirection points the sun straight up so nothing is lit from below.
var nightDirection = mgl32.Vec3{0, 0.1, 0}

// Palette is one keyframe of the sky, the grade and the sun.
type Palette struct {
	CenterColor  mgl32.Vec4
	ApexColor    mgl32.Vec4
	Tint         mgl32.Vec3
	TintStrength float32
	Brightness   float32
	Contrast     float32
	Saturation   float32
	SunColor     mgl32.Vec4
}

func lerpPalette(a, b Palette, t float32) Palette {
	return Palette{
		CenterColor:  core.LerpVec4(a.CenterColor, b.CenterColor, t),
		ApexColor:    core.LerpVec4(a.ApexColor, b.ApexColor, t),
		Tint:         core.LerpVec3(a.Tint, b.Tint, t),
		TintStrength: core.Lerp(a.TintStrength, b.TintStrength, t),
		Brightness:   core.Lerp(a.Brightness, b.Brightness, t),
		Contrast:     core.Lerp(a.Contrast, b.Contrast, t),
		Saturation:   core.Lerp(a.Saturation, b.Saturation, t),
		SunColor:     core.LerpVec4(a.SunColor, b.SunColor, t),
	}
}

// Keyframes. Sunrise also opens the night's second half.
var (
	sunrisePalette = Palette{
		CenterColor:  mgl32.Vec4{0.95, 0.25, 0.24, 1},
		ApexColor:    mgl32.Vec4{0.003, 0.403, 0.831, 1},
		Tint:         mgl32.Vec3{1, 0.85, 0.6},
		TintStrength: 0.045,
		Brightness:   1.5,
		Contrast:     1.02,
		Saturation:   1.25,
		SunColor:     mgl32.Vec4{1, 0.3, 0.3, 1},
	}
	noonPalette = Palette{
		CenterColor:  mgl32.Vec4{0.96, 0.84, 0.72, 1},
		ApexColor:    mgl32.Vec4{0.61, 0.63, 0.72, 1},
		Tint:         mgl32.Vec3{1, 1, 0.9},
		TintStrength: 0.04,
		Brightness:   1.4,
		Contrast:     1.015,
		Saturation:   1.35,
		SunColor:     mgl32.Vec4{1, 1, 0.9, 1},
	}
	sunsetPalette = Palette{
		CenterColor:  mgl32.Vec4{0.95, 0.25, 0.24, 1},
		ApexColor:    mgl32.Vec4{0.12, 0.043, 0.33, 1},
		Tint:         mgl32.Vec3{1, 0.5, 0.3},
		TintStrength: 0.06,
		Brightness:   1.5,
		Contrast:     1.02,
		Saturation:   1.35,
		SunColor:     mgl32.Vec4{1, 0.2, 0.2, 1},
	}
	midnightPalette = Palette{
		CenterColor:  mgl32.Vec4{0, 0.011, 0.019, 1},
		ApexColor:    mgl32.Vec4{0, 0.045, 0.077, 1},
		Tint:         mgl32.Vec3{0.2, 0.2, 0.8},
		TintStrength: 0.07,
		Brightness:   1.5,
		Contrast:     1.02,
		Saturation:   1.35,
		SunColor:     mgl32.Vec4{1, 0.2, 0.2, 1},
	}
	dawnPalette = Palette{
		CenterColor:  mgl32.Vec4{0.95, 0.25, 0.24, 1},
		ApexColor:    mgl32.Vec4{0.003, 0.403, 0.83, 1},
		Tint:         mgl32.Vec3{1, 0.85, 0.6},
		TintStrength: 0.045,
		Brightness:   1.5,
		Contrast:     1.02,
		Saturation:   1.25,
		SunColor:     mgl32.Vec4{1, 0.2, 0.2, 1},
	}
)

// SunrisePalette is the palette at elapsed time zero.
func SunrisePalette() Palette { return sunrisePalette }

// State is the lighting and palette for one instant of the cycle.
type State struct {
	// ElapsedTime is the accumulator after wrap handling.
	ElapsedTime  float32
	DayDuration  float32
	Night        bool
	Intensity    float32
	SunDirection mgl32.Vec3
	SunPosition  mgl32.Vec3
	// SpecularScale is 1 by day and 0 at night.
	SpecularScale float32
	Palette       Palette
}

// TimeOfDayHours maps the elapsed time onto a 24 hour clock starting at
// sunrise.
func (s State) TimeOfDayHours() float32 {
	if s.DayDuration <= 0 {
		return 0
	}
	return s.ElapsedTime / s.DayDuration * 24
}

// DayDuration is the cycle length for timeScale. Scales below 0.01 are
// raised to 0.01.
func DayDuration(timeScale float32) float32 {
	if timeScale < minTimeScale {
		timeScale = minTimeScale
	}
	return baseDayDuration / timeScale
}

// Advance computes the cycle state at elapsed seconds. The first half of the
// cycle is day, the second half night. Elapsed times past the cycle length
// wrap to zero and report the sunrise state.
func Advance(elapsed, timeScale float32) State {
	dayDuration := DayDuration(timeScale)
	if elapsed > dayDuration || elapsed < 0 {
		elapsed = 0
	}
	dayHours := dayDuration / 2

	s := State{ElapsedTime: elapsed, DayDuration: dayDuration}
	if elapsed < dayHours {
		t := elapsed / dayHours
		s.Intensity = math32.Max(0, math32.Sin(math32.Pi*t))
		sunX := core.Lerp(math32.Cos(0), math32.Cos(math32.Pi), t)
		var sunY float32
		if t < 0.5 {
			sunY = core.Lerp(2*math32.Cos(math32.Pi/2), 2*math32.Cos(math32.Pi), t)
			s.Palette = lerpPalette(sunrisePalette, noonPalette, t*2)
		} else {
			sunY = core.Lerp(2*math32.Cos(math32.Pi), 2*math32.Cos(math32.Pi/2), t)
			s.Palette = lerpPalette(noonPalette, sunsetPalette, (t-0.5)/0.5)
		}
		s.SunDirection = mgl32.Vec3{sunX, sunY, 0}
		s.SpecularScale = 1
	} else {
		t := (elapsed - dayHours) / dayHours
		s.Night = true
		s.SunDirection = nightDirection
		if t < 0.5 {
			s.Palette = lerpPalette(sunsetPalette, midnightPalette, t*4)
		} else {
			s.Palette = lerpPalette(midnightPalette, dawnPalette, (t-0.5)/0.5)
		}
		// The sun disc keeps its sunset colour through the night.
		s.Palette.SunColor = sunsetPalette.SunColor
	}
	s.SunPosition = SunPosition(s.SunDirection)
	return s
}

// SunPosition places the sun on its orbit around the pivot, opposite its
// direction, clamped to ±100 on every axis.
func SunPosition(direction mgl32.Vec3) mgl32.Vec3 {
	return core.ClampVec3(lightPivot.Sub(direction.Mul(lightRadius)), -lightBound, lightBound)
}

// Clock accumulates frame time and feeds Advance.
type Clock struct {
	elapsed float32
}

// Step advances the clock by dt seconds and returns the new state. The
// accumulator is written back after wrap handling.
func (c *Clock) Step(dt, timeScale float32) State {
	c.elapsed += dt
	s := Advance(c.elapsed, timeScale)
	c.elapsed = s.ElapsedTime
	return s
}

// Current returns the state without advancing.
func (c *Clock) Current(timeScale float32) State {
	return Advance(c.elapsed, timeScale)
}

// Elapsed returns the accumulator.
func (c *Clock) Elapsed() float32 { return c.elapsed }

// Reset returns the clock to sunrise.
func (c *Clock) Reset() { c.elapsed = 0 }

// Apply copies the cycle state into the scene: sun light, sky, grade and sun
// colour.
func (s State) Apply(p *core.SceneParameters) {
	sun := &p.Lights[core.SunLight]
	sun.Intensity = s.Intensity
	sun.Direction = s.SunDirection
	sun.Position = s.SunPosition
	sun.Specular = mgl32.Vec4{
		sun.Diffuse[0] * s.SpecularScale,
		sun.Diffuse[1] * s.SpecularScale,
		sun.Diffuse[2] * s.SpecularScale,
		1,
	}

	p.Sky.CenterColor = s.Palette.CenterColor
	p.Sky.ApexColor = s.Palette.ApexColor
	p.Post.Tint = s.Palette.Tint
	p.Post.TintStrength = s.Palette.TintStrength
	p.Post.Brightness = s.Palette.Brightness
	p.Post.Contrast = s.Palette.Contrast
	p.Post.Saturation = s.Palette.Saturation
	p.SunColor = s.Palette.SunColor
}
