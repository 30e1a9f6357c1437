package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlKeysUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Controls() {
		assert.False(t, seen[c.Key], "duplicate key %s", c.Key)
		seen[c.Key] = true
		if c.Type != ParamTypeBool {
			assert.LessOrEqual(t, c.Min, c.Max, c.Key)
		}
	}
}

func TestDefaultsWithinControlBounds(t *testing.T) {
	p := DefaultSceneParameters()
	values := p.Values()
	for _, c := range Controls() {
		if c.Type == ParamTypeBool {
			continue
		}
		v, ok := values[c.Key]
		require.True(t, ok, c.Key)
		assert.NoError(t, ValidateFloat(c.Key, v), c.Key)
	}
}

func TestSetFloat(t *testing.T) {
	p := DefaultSceneParameters()

	require.NoError(t, p.SetFloat("clouds.sigma_a", 0.3))
	assert.Equal(t, float32(0.3), p.Clouds.SigmaA)

	require.NoError(t, p.SetFloat("clouds.samples", 64.7))
	assert.Equal(t, 64, p.Clouds.Samples)

	require.NoError(t, p.SetFloat("terrain.density_frequency", 0))
	assert.Equal(t, float32(0), p.Terrain.DensityFrequency)

	err := p.SetFloat("clouds.g", 1.5)
	assert.ErrorIs(t, err, ErrParameterRange)
	assert.Equal(t, float32(0.25), p.Clouds.G)

	assert.ErrorIs(t, p.SetFloat("nope", 1), ErrUnknownParameter)
	assert.ErrorIs(t, p.SetFloat("toggles.shadows", 1), ErrParameterType)
}

func TestTimeScaleCannotReachZero(t *testing.T) {
	p := DefaultSceneParameters()
	assert.ErrorIs(t, p.SetFloat("time.scale", 0), ErrParameterRange)
}

func TestSetBool(t *testing.T) {
	p := DefaultSceneParameters()
	require.NoError(t, p.SetBool("toggles.shadows", false))
	assert.False(t, p.Toggles.Shadows)
	assert.Equal(t, 0.0, p.Values()["toggles.shadows"])

	assert.ErrorIs(t, p.SetBool("post.brightness", true), ErrParameterType)
}

func TestCommandQueueDrainOrder(t *testing.T) {
	q := NewCommandQueue(3)
	assert.True(t, q.Push(Command{Kind: CommandSetFloat, Key: "a"}))
	assert.True(t, q.Push(Command{Kind: CommandResetTime}))
	assert.True(t, q.Push(Command{Kind: CommandSetBool, Key: "b"}))
	assert.False(t, q.Push(Command{Kind: CommandSmoothHeight}), "full queue must not block")

	got := q.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, CommandResetTime, got[1].Kind)
	assert.Equal(t, "b", got[2].Key)
	assert.Empty(t, q.Drain())
}

func TestTelemetryStore(t *testing.T) {
	var s TelemetryStore
	assert.Nil(t, s.Load())
	s.Store(&Telemetry{FPS: 60})
	assert.Equal(t, float32(60), s.Load().FPS)
}

func TestLightAndPropControls(t *testing.T) {
	tests := []struct {
		key   string
		value float64
		read  func(p *SceneParameters) float32
	}{
		{"sun.diffuse_r", 0.5, func(p *SceneParameters) float32 { return p.Lights[SunLight].Diffuse[0] }},
		{"sun.ambient_b", 0.5, func(p *SceneParameters) float32 { return p.Lights[SunLight].Ambient[2] }},
		{"sun.specular_a", 0.5, func(p *SceneParameters) float32 { return p.Lights[SunLight].Specular[3] }},
		{"sun.direction_x", 0.5, func(p *SceneParameters) float32 { return p.Lights[SunLight].Direction[0] }},
		{"sun.position_y", -60, func(p *SceneParameters) float32 { return p.Lights[SunLight].Position[1] }},
		{"spot.diffuse_g", 0.5, func(p *SceneParameters) float32 { return p.Lights[SpotLight].Diffuse[1] }},
		{"spot.position_x", 0.5, func(p *SceneParameters) float32 { return p.Lights[SpotLight].Position[0] }},
		{"spot.direction_z", -0.5, func(p *SceneParameters) float32 { return p.Lights[SpotLight].Direction[2] }},
		{"spot.specular_power", 60, func(p *SceneParameters) float32 { return p.Lights[SpotLight].SpecularPower }},
		{"props.cottage_z", 12, func(p *SceneParameters) float32 { return p.Props.Cottage[2] }},
		{"props.spotlight_model_x", -12, func(p *SceneParameters) float32 { return p.Props.SpotlightModel[0] }},
		{"post.tint_g", 0.1, func(p *SceneParameters) float32 { return p.Post.Tint[1] }},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p := DefaultSceneParameters()
			require.NoError(t, p.SetFloat(tt.key, tt.value))
			assert.Equal(t, float32(tt.value), tt.read(&p))
			assert.InDelta(t, tt.value, p.Values()[tt.key], 1e-6)
		})
	}
}

func TestLightControlBounds(t *testing.T) {
	p := DefaultSceneParameters()
	assert.ErrorIs(t, p.SetFloat("sun.diffuse_r", 1.5), ErrParameterRange)
	assert.ErrorIs(t, p.SetFloat("spot.direction_y", -2), ErrParameterRange)
	assert.ErrorIs(t, p.SetFloat("props.cottage_x", 101), ErrParameterRange)
	assert.ErrorIs(t, p.SetFloat("sun.position_w", 0), ErrUnknownParameter)
}

func TestClampFloat(t *testing.T) {
	tests := []struct {
		key  string
		in   float64
		want float64
	}{
		{"clouds.g", 2, 0.99},
		{"clouds.samples", 0, 1},
		{"time.scale", 0, 0.01},
		{"sun.ambient_r", -1, 0},
		{"clouds.density", 0.3, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ClampFloat(tt.key, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ClampFloat("toggles.time", 1)
	assert.ErrorIs(t, err, ErrParameterType)
	_, err = ClampFloat("nope", 1)
	assert.ErrorIs(t, err, ErrUnknownParameter)
}

func TestControlRanges(t *testing.T) {
	tests := []struct {
		key      string
		min, max float64
	}{
		{"terrain.frequency", -20, 20},
		{"terrain.amplitude", -40, 40},
		{"terrain.density_frequency", -2, 2},
		{"terrain.grass_min", -20, 20},
		{"clouds.samples", 1, 1000},
		{"clouds.wind_x", -10, 10},
		{"time.scale", 0.01, 25},
		{"sun.specular_power", 1, 100},
		{"spot.position_x", -100, 100},
	}
	byKey := map[string]ParameterControl{}
	for _, c := range Controls() {
		byKey[c.Key] = c
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, ok := byKey[tt.key]
			require.True(t, ok)
			assert.Equal(t, tt.min, c.Min)
			assert.Equal(t, tt.max, c.Max)
		})
	}
}
