package rendering

import "fmt"

// TargetID names an offscreen render target.
type TargetID int

const (
	// TargetSource receives the sky, the lit scene and the sun.
	TargetSource TargetID = iota
	// TargetCloudDepth holds linear eye distance for the cloud raymarch.
	TargetCloudDepth
	// TargetClouds holds the raymarched cloud colour and opacity.
	TargetClouds
	// TargetCloudBlended is the scene with clouds composited over it.
	TargetCloudBlended

	TargetBloomBright
	TargetBloomBlur1
	TargetBloomBlur2
	TargetBloomBlur3
	TargetBloomBlur4
	TargetBloomBlended

	// TargetSunSphere holds the sun rendered alone for the glow chain.
	TargetSunSphere
	TargetSunBright
	TargetSunBlur1
	TargetSunBlur2
	TargetSunBlur3
	TargetSunBlur4
	TargetSunBlur5
	TargetSunBlur6
	TargetSunBlur7
	TargetSunBlur8
	TargetSunBlur9
	TargetSunBlur10
	TargetSunBlended

	TargetColorGraded

	targetCount
)

const (
	bloomBlurCount = 4
	sunBlurCount   = 10
)

// TargetFormat selects the attachment layout of a target.
type TargetFormat int

const (
	// FormatColor is an RGBA half-float colour attachment with depth.
	FormatColor TargetFormat = iota
	// FormatLinearDepth is a single float channel with depth.
	FormatLinearDepth
)

// TargetSpec describes one render target relative to the screen.
type TargetSpec struct {
	ID      TargetID
	Name    string
	Divisor int
	Format  TargetFormat
}

// Size is a target's dimensions in pixels.
type Size struct {
	Width, Height int
}

// SizeFor scales the screen size by the spec's divisor. Dimensions never drop
// below one pixel.
func (s TargetSpec) SizeFor(width, height int) Size {
	d := s.Divisor
	if d < 1 {
		d = 1
	}
	return Size{Width: max(1, width/d), Height: max(1, height/d)}
}

// Targets lists every offscreen target in TargetID order.
func Targets() []TargetSpec {
	specs := make([]TargetSpec, 0, targetCount)
	add := func(id TargetID, name string, div int, format TargetFormat) {
		specs = append(specs, TargetSpec{ID: id, Name: name, Divisor: div, Format: format})
	}
	add(TargetSource, "source", 1, FormatColor)
	add(TargetCloudDepth, "cloud-depth", 1, FormatLinearDepth)
	add(TargetClouds, "clouds", 1, FormatColor)
	add(TargetCloudBlended, "cloud-blended", 1, FormatColor)
	add(TargetBloomBright, "bloom-bright", 6, FormatColor)
	for i := 0; i < bloomBlurCount; i++ {
		add(TargetBloomBlur1+TargetID(i), fmt.Sprintf("bloom-blur-%d", i+1), 8, FormatColor)
	}
	add(TargetBloomBlended, "bloom-blended", 1, FormatColor)
	add(TargetSunSphere, "sun-sphere", 1, FormatColor)
	add(TargetSunBright, "sun-bright", 8, FormatColor)
	for i := 0; i < sunBlurCount; i++ {
		add(TargetSunBlur1+TargetID(i), fmt.Sprintf("sun-blur-%d", i+1), 16, FormatColor)
	}
	add(TargetSunBlended, "sun-blended", 1, FormatColor)
	add(TargetColorGraded, "color-graded", 1, FormatColor)
	return specs
}

// Layout resolves every target's size for a screen.
func Layout(width, height int) map[TargetID]Size {
	out := make(map[TargetID]Size, targetCount)
	for _, s := range Targets() {
		out[s.ID] = s.SizeFor(width, height)
	}
	return out
}

func (id TargetID) String() string {
	for _, s := range Targets() {
		if s.ID == id {
			return s.Name
		}
	}
	return fmt.Sprintf("target(%d)", int(id))
}
