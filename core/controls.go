package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
)

// ParameterControl describes one adjustable value on the tuning surface.
// Min and Max are inclusive and ignored for bools.
type ParameterControl struct {
	Key   string    `json:"key"`
	Label string    `json:"label"`
	Type  ParamType `json:"type"`
	Min   float64   `json:"min,omitempty"`
	Max   float64   `json:"max,omitempty"`
}

var (
	// ErrUnknownParameter is returned for keys missing from the control table.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrParameterRange is returned when a value falls outside a control's bounds.
	ErrParameterRange = errors.New("parameter out of range")
	// ErrParameterType is returned when a bool is written to a numeric key or
	// the other way round.
	ErrParameterType = errors.New("parameter type mismatch")
)

type binding struct {
	control ParameterControl
	float   func(*SceneParameters) *float32
	integer func(*SceneParameters) *int
	boolean func(*SceneParameters) *bool
}

func floatParam(key, label string, min, max float64, field func(*SceneParameters) *float32) binding {
	return binding{control: ParameterControl{Key: key, Label: label, Type: ParamTypeFloat, Min: min, Max: max}, float: field}
}

func boolParam(key, label string, field func(*SceneParameters) *bool) binding {
	return binding{control: ParameterControl{Key: key, Label: label, Type: ParamTypeBool}, boolean: field}
}

// componentParams binds every component of a vector field as its own float
// control, keyed key_x.. or key_r.. depending on suffixes.
func componentParams(key, label string, suffixes []string, min, max float64, field func(*SceneParameters) []float32) []binding {
	out := make([]binding, len(suffixes))
	for i, suffix := range suffixes {
		out[i] = floatParam(key+"_"+suffix, label+" "+strings.ToUpper(suffix), min, max,
			func(p *SceneParameters) *float32 { return &field(p)[i] })
	}
	return out
}

var (
	axes     = []string{"x", "y", "z"}
	channels = []string{"r", "g", "b", "a"}
)

func positionParams(key, label string, field func(*SceneParameters) *mgl32.Vec3) []binding {
	return componentParams(key, label, axes, -100, 100, func(p *SceneParameters) []float32 { return field(p)[:] })
}

func directionParams(key, label string, field func(*SceneParameters) *mgl32.Vec3) []binding {
	return componentParams(key, label, axes, -1, 1, func(p *SceneParameters) []float32 { return field(p)[:] })
}

func colorParams(key, label string, field func(*SceneParameters) *mgl32.Vec4) []binding {
	return componentParams(key, label, channels, 0, 1, func(p *SceneParameters) []float32 { return field(p)[:] })
}

// lightParams binds the editable fields of one light slot.
func lightParams(prefix, name string, slot int) []binding {
	light := func(p *SceneParameters) *LightDescriptor { return &p.Lights[slot] }
	out := []binding{
		floatParam(prefix+".intensity", name+" intensity", 0, 1, func(p *SceneParameters) *float32 { return &light(p).Intensity }),
		floatParam(prefix+".specular_power", name+" specular power", 1, 100, func(p *SceneParameters) *float32 { return &light(p).SpecularPower }),
	}
	out = append(out, positionParams(prefix+".position", name+" position", func(p *SceneParameters) *mgl32.Vec3 { return &light(p).Position })...)
	out = append(out, directionParams(prefix+".direction", name+" direction", func(p *SceneParameters) *mgl32.Vec3 { return &light(p).Direction })...)
	out = append(out, colorParams(prefix+".diffuse", name+" diffuse", func(p *SceneParameters) *mgl32.Vec4 { return &light(p).Diffuse })...)
	out = append(out, colorParams(prefix+".ambient", name+" ambient", func(p *SceneParameters) *mgl32.Vec4 { return &light(p).Ambient })...)
	out = append(out, colorParams(prefix+".specular", name+" specular", func(p *SceneParameters) *mgl32.Vec4 { return &light(p).Specular })...)
	return out
}

var sceneBindings = []binding{
	floatParam("terrain.frequency", "Height frequency", -20, 20, func(p *SceneParameters) *float32 { return &p.Terrain.Frequency }),
	floatParam("terrain.amplitude", "Height amplitude", -40, 40, func(p *SceneParameters) *float32 { return &p.Terrain.Amplitude }),
	floatParam("terrain.density_frequency", "Density frequency", -2, 2, func(p *SceneParameters) *float32 { return &p.Terrain.DensityFrequency }),
	floatParam("terrain.grass_min", "Grass min height", -20, 20, func(p *SceneParameters) *float32 { return &p.Terrain.Grass.Min }),
	floatParam("terrain.grass_max", "Grass max height", -20, 20, func(p *SceneParameters) *float32 { return &p.Terrain.Grass.Max }),
	floatParam("terrain.rock_min", "Rock min height", -20, 20, func(p *SceneParameters) *float32 { return &p.Terrain.Rock.Min }),
	floatParam("terrain.rock_max", "Rock max height", -20, 20, func(p *SceneParameters) *float32 { return &p.Terrain.Rock.Max }),
	floatParam("terrain.snow_min", "Snow min height", -20, 20, func(p *SceneParameters) *float32 { return &p.Terrain.Snow.Min }),
	floatParam("terrain.snow_max", "Snow max height", -20, 20, func(p *SceneParameters) *float32 { return &p.Terrain.Snow.Max }),
	floatParam("terrain.band_blend", "Band blend", 0, 2, func(p *SceneParameters) *float32 { return &p.Terrain.BandBlend }),

	floatParam("clouds.density", "Gas density", 0, 1, func(p *SceneParameters) *float32 { return &p.Clouds.Density }),
	floatParam("clouds.sigma_a", "Absorption", 0, 1, func(p *SceneParameters) *float32 { return &p.Clouds.SigmaA }),
	floatParam("clouds.sigma_s", "Scattering", 0, 1, func(p *SceneParameters) *float32 { return &p.Clouds.SigmaS }),
	floatParam("clouds.g", "Phase asymmetry", -0.99, 0.99, func(p *SceneParameters) *float32 { return &p.Clouds.G }),
	{
		control: ParameterControl{Key: "clouds.samples", Label: "Raymarch samples", Type: ParamTypeInt, Min: 1, Max: 1000},
		integer: func(p *SceneParameters) *int { return &p.Clouds.Samples },
	},
	floatParam("clouds.wind_x", "Wind X", -10, 10, func(p *SceneParameters) *float32 { return &p.Clouds.Wind[0] }),
	floatParam("clouds.wind_z", "Wind Z", -10, 10, func(p *SceneParameters) *float32 { return &p.Clouds.Wind[1] }),

	floatParam("time.scale", "Time scale", 0.01, 25, func(p *SceneParameters) *float32 { return &p.TimeScale }),

	floatParam("post.tint_strength", "Tint strength", 0, 1, func(p *SceneParameters) *float32 { return &p.Post.TintStrength }),
	floatParam("post.brightness", "Brightness", 0, 3, func(p *SceneParameters) *float32 { return &p.Post.Brightness }),
	floatParam("post.contrast", "Contrast", 0, 3, func(p *SceneParameters) *float32 { return &p.Post.Contrast }),
	floatParam("post.saturation", "Saturation", 0, 3, func(p *SceneParameters) *float32 { return &p.Post.Saturation }),
	floatParam("post.tint_r", "Tint R", 0, 1, func(p *SceneParameters) *float32 { return &p.Post.Tint[0] }),
	floatParam("post.tint_g", "Tint G", 0, 1, func(p *SceneParameters) *float32 { return &p.Post.Tint[1] }),
	floatParam("post.tint_b", "Tint B", 0, 1, func(p *SceneParameters) *float32 { return &p.Post.Tint[2] }),

	boolParam("toggles.shadows", "Shadows", func(p *SceneParameters) *bool { return &p.Toggles.Shadows }),
	boolParam("toggles.post_processing", "Post processing", func(p *SceneParameters) *bool { return &p.Toggles.PostProcessing }),
	boolParam("toggles.time", "Day-night cycle", func(p *SceneParameters) *bool { return &p.Toggles.Time }),
	boolParam("toggles.gravity", "Gravity", func(p *SceneParameters) *bool { return &p.Toggles.Gravity }),
	boolParam("toggles.debug", "Debug overlay", func(p *SceneParameters) *bool { return &p.Toggles.Debug }),
	boolParam("toggles.wireframe", "Wireframe", func(p *SceneParameters) *bool { return &p.Toggles.Wireframe }),
	boolParam("toggles.flight", "Flight mode", func(p *SceneParameters) *bool { return &p.Toggles.FlightMode }),
}

// bindings is the full control table in display order.
var bindings = slices.Concat(
	sceneBindings,
	lightParams("sun", "Sun", SunLight),
	lightParams("spot", "Spot", SpotLight),
	positionParams("props.cottage", "Cottage", func(p *SceneParameters) *mgl32.Vec3 { return &p.Props.Cottage }),
	positionParams("props.spotlight_model", "Lamp", func(p *SceneParameters) *mgl32.Vec3 { return &p.Props.SpotlightModel }),
)

func lookup(key string) (binding, bool) {
	for _, b := range bindings {
		if b.control.Key == key {
			return b, true
		}
	}
	return binding{}, false
}

// Controls lists every adjustable parameter in display order.
func Controls() []ParameterControl {
	out := make([]ParameterControl, len(bindings))
	for i, b := range bindings {
		out[i] = b.control
	}
	return out
}

// ValidateFloat checks that key names a numeric control and v is in range.
func ValidateFloat(key string, v float64) error {
	b, ok := lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	if b.control.Type == ParamTypeBool {
		return fmt.Errorf("%w: %q is a bool", ErrParameterType, key)
	}
	if v < b.control.Min || v > b.control.Max {
		return fmt.Errorf("%w: %q = %g, want [%g, %g]", ErrParameterRange, key, v, b.control.Min, b.control.Max)
	}
	return nil
}

// ClampFloat limits v to the bounds of the numeric control key.
func ClampFloat(key string, v float64) (float64, error) {
	b, ok := lookup(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	if b.control.Type == ParamTypeBool {
		return 0, fmt.Errorf("%w: %q is a bool", ErrParameterType, key)
	}
	return min(max(v, b.control.Min), b.control.Max), nil
}

// ValidateBool checks that key names a bool control.
func ValidateBool(key string) error {
	b, ok := lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	if b.control.Type != ParamTypeBool {
		return fmt.Errorf("%w: %q is numeric", ErrParameterType, key)
	}
	return nil
}

// SetFloat writes a numeric control. Int controls are rounded toward zero.
func (p *SceneParameters) SetFloat(key string, v float64) error {
	if err := ValidateFloat(key, v); err != nil {
		return err
	}
	b, _ := lookup(key)
	if b.integer != nil {
		*b.integer(p) = int(v)
		return nil
	}
	*b.float(p) = float32(v)
	return nil
}

// SetBool writes a bool control.
func (p *SceneParameters) SetBool(key string, v bool) error {
	if err := ValidateBool(key); err != nil {
		return err
	}
	b, _ := lookup(key)
	*b.boolean(p) = v
	return nil
}

// Values reads every control into a map keyed like Controls. Bools read as
// 0 or 1.
func (p *SceneParameters) Values() map[string]float64 {
	out := make(map[string]float64, len(bindings))
	for _, b := range bindings {
		switch {
		case b.float != nil:
			out[b.control.Key] = float64(*b.float(p))
		case b.integer != nil:
			out[b.control.Key] = float64(*b.integer(p))
		case b.boolean != nil:
			if *b.boolean(p) {
				out[b.control.Key] = 1
			} else {
				out[b.control.Key] = 0
			}
		}
	}
	return out
}
