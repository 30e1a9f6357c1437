package simulation

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyscape/core"
)

func TestAdvanceRanges(t *testing.T) {
	for _, scale := range []float32{0.5, 1, 3} {
		dur := DayDuration(scale)
		for i := 0; i <= 480; i++ {
			s := Advance(dur*float32(i)/480, scale)
			require.GreaterOrEqual(t, s.Intensity, float32(0))
			require.LessOrEqual(t, s.Intensity, float32(1))
			for _, c := range []mgl32.Vec4{s.Palette.CenterColor, s.Palette.ApexColor, s.Palette.SunColor} {
				for _, ch := range c {
					require.GreaterOrEqual(t, ch, float32(0))
					require.LessOrEqual(t, ch, float32(1))
				}
			}
			for _, ch := range s.Palette.Tint {
				require.GreaterOrEqual(t, ch, float32(0))
				require.LessOrEqual(t, ch, float32(1))
			}
			for _, ch := range s.SunPosition {
				require.LessOrEqual(t, ch, float32(100))
				require.GreaterOrEqual(t, ch, float32(-100))
			}
		}
	}
}

func TestIntensityPeaksAtMidday(t *testing.T) {
	peak := Advance(300, 1)
	assert.False(t, peak.Night)
	assert.InDelta(t, 1, peak.Intensity, 1e-5)
	assert.Greater(t, peak.Intensity, Advance(250, 1).Intensity)
	assert.Greater(t, peak.Intensity, Advance(350, 1).Intensity)
}

func TestSunrise(t *testing.T) {
	s := Advance(0, 1)
	assert.Equal(t, sunrisePalette, s.Palette)
	assert.InDelta(t, 1, s.SunDirection[0], 1e-6)
	assert.InDelta(t, 0, s.SunDirection[1], 1e-6)
	assert.InDelta(t, -60, s.SunPosition[0], 1e-4)
	assert.Equal(t, float32(1), s.SpecularScale)
}

func TestSunPathIsContinuousAtNoon(t *testing.T) {
	before := Advance(299.99, 1)
	after := Advance(300.01, 1)
	assert.InDelta(t, before.SunDirection[1], after.SunDirection[1], 1e-3)
	assert.InDelta(t, -1, after.SunDirection[1], 1e-3)
	assert.InDelta(t, 0, after.SunDirection[0], 1e-3)
}

func TestNight(t *testing.T) {
	s := Advance(700, 1)
	assert.True(t, s.Night)
	assert.Equal(t, float32(0), s.Intensity)
	assert.Equal(t, mgl32.Vec3{0, 0.1, 0}, s.SunDirection)
	assert.Equal(t, float32(0), s.SpecularScale)

	// The dusk blend completes a quarter of the way into the night.
	assert.Equal(t, midnightPalette.CenterColor, Advance(600+150, 1).Palette.CenterColor)
	assert.Equal(t, dawnPalette.ApexColor, Advance(1200, 1).Palette.ApexColor)
}

func TestAdvanceWraps(t *testing.T) {
	s := Advance(1200.5, 1)
	assert.Equal(t, float32(0), s.ElapsedTime)
	assert.Equal(t, Advance(0, 1).Palette, s.Palette)

	assert.Equal(t, float32(0), Advance(601, 2).ElapsedTime, "scale 2 halves the day")
}

func TestDayDuration(t *testing.T) {
	assert.Equal(t, float32(1200), DayDuration(1))
	assert.Equal(t, float32(600), DayDuration(2))
	assert.Equal(t, DayDuration(0.01), DayDuration(0))
}

func TestClockStep(t *testing.T) {
	var c Clock
	c.Step(1000, 1)
	assert.Equal(t, float32(1000), c.Elapsed())
	s := c.Step(300, 1)
	assert.Equal(t, float32(0), s.ElapsedTime)
	assert.Equal(t, float32(0), c.Elapsed())

	c.Step(42, 1)
	assert.InDelta(t, 42.0/1200*24, c.Current(1).TimeOfDayHours(), 1e-4)
	c.Reset()
	assert.Equal(t, float32(0), c.Elapsed())
}

func TestApply(t *testing.T) {
	p := core.DefaultSceneParameters()
	night := Advance(800, 1)
	night.Apply(&p)
	sun := p.Lights[core.SunLight]
	assert.Equal(t, float32(0), sun.Intensity)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, sun.Specular)
	assert.Equal(t, night.Palette.ApexColor, p.Sky.ApexColor)
	assert.Equal(t, night.Palette.Brightness, p.Post.Brightness)

	day := Advance(100, 1)
	day.Apply(&p)
	sun = p.Lights[core.SunLight]
	assert.Equal(t, sun.Diffuse.Vec3(), sun.Specular.Vec3())
	assert.Equal(t, day.SunPosition, sun.Position)
}

func TestSunPositionClamped(t *testing.T) {
	got := SunPosition(mgl32.Vec3{5, -5, 0})
	assert.Equal(t, mgl32.Vec3{-100, 100, 10}, got)
}
