package rendering

import (
	"fmt"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyscape/core"
	"skyscape/simulation"
	"skyscape/terrain"
)

// recordingPasses logs every backend call by name.
type recordingPasses struct {
	calls    []string
	uniforms []CloudUniforms
	frames   []*Frame
	overlay  *core.Telemetry
}

func (r *recordingPasses) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingPasses) BindShadowMap(light int)           { r.log("shadow-bind:%d", light) }
func (r *recordingPasses) DrawDepth(d Drawable, v LightView) { r.log("depth:%s", d.Mesh) }
func (r *recordingPasses) UnbindShadowMap(light int)         { r.log("shadow-unbind:%d", light) }
func (r *recordingPasses) BeginFullScreen()                  { r.log("begin") }
func (r *recordingPasses) RunStep(s Step)                    { r.log("step:%s", s.Op) }
func (r *recordingPasses) EndFullScreen()                    { r.log("end") }
func (r *recordingPasses) BindTarget(id TargetID, clear bool) {
	r.log("target:%s", id)
}
func (r *recordingPasses) BindBackBuffer()      { r.log("back-buffer") }
func (r *recordingPasses) DrawSky(f *Frame)     { r.log("sky") }
func (r *recordingPasses) UnbindShadowMaps()    { r.log("no-shadows") }
func (r *recordingPasses) SetWireframe(on bool) { r.log("wireframe:%t", on) }
func (r *recordingPasses) DrawLit(f *Frame) {
	r.frames = append(r.frames, f)
	r.log("lit")
}
func (r *recordingPasses) DrawCoins(f *Frame)      { r.log("coins:%d", len(f.Coins)) }
func (r *recordingPasses) DrawSun(f *Frame)        { r.log("sun") }
func (r *recordingPasses) DrawCloudDepth(f *Frame) { r.log("cloud-depth") }
func (r *recordingPasses) RaymarchClouds(u CloudUniforms) {
	r.uniforms = append(r.uniforms, u)
	r.log("raymarch")
}
func (r *recordingPasses) BlendClouds()              { r.log("cloud-blend") }
func (r *recordingPasses) Composite(source TargetID) { r.log("composite:%s", source) }
func (r *recordingPasses) DrawOverlay(t *core.Telemetry) {
	r.overlay = t
	r.log("overlay")
}
func (r *recordingPasses) Present() { r.log("present") }

func (r *recordingPasses) reset() { r.calls = nil }

func newTestOrchestrator(t *testing.T, mutate func(*core.SceneParameters)) (*Orchestrator, *recordingPasses, *core.TelemetryStore) {
	t.Helper()
	params := core.DefaultSceneParameters()
	if mutate != nil {
		mutate(&params)
	}
	field := terrain.NewNoiseField(terrain.NewSimplexSource(1), 50, [3]int{4, 4, 4}, nil)
	require.NoError(t, field.Init(params.Terrain))

	passes := &recordingPasses{}
	store := &core.TelemetryStore{}
	o := NewOrchestrator(OrchestratorConfig{
		Params:    params,
		Field:     field,
		Passes:    passes,
		Telemetry: store,
		Width:     800,
		Height:    600,
	})
	return o, passes, store
}

func TestFramePassOrder(t *testing.T) {
	o, r, _ := newTestOrchestrator(t, nil)
	require.NoError(t, o.Frame(0.016, simulation.MoveIntent{}))

	want := []string{"target:source", "sky"}
	for light := 0; light < core.LightCount; light++ {
		want = append(want,
			fmt.Sprintf("shadow-bind:%d", light),
			"depth:terrain", "depth:cottage", "depth:lamp",
			fmt.Sprintf("shadow-unbind:%d", light))
	}
	want = append(want,
		"wireframe:false", "lit", "coins:5", "wireframe:false",
		"sun", "cloud-depth", "raymarch", "cloud-blend",
		"back-buffer", "target:sun-sphere", "sun", "begin")
	for _, s := range PlanPostProcess(800, 600) {
		want = append(want, "step:"+s.Op.String())
	}
	want = append(want, "end", "composite:color-graded", "overlay", "present")

	assert.Equal(t, want, r.calls)
}

func TestFrameTogglesOff(t *testing.T) {
	o, r, _ := newTestOrchestrator(t, func(p *core.SceneParameters) {
		p.Toggles.Shadows = false
		p.Toggles.PostProcessing = false
		p.Toggles.Debug = false
		p.Toggles.Wireframe = true
	})
	require.NoError(t, o.Frame(0.016, simulation.MoveIntent{}))

	assert.Contains(t, r.calls, "no-shadows")
	assert.NotContains(t, r.calls, "shadow-bind:0")
	assert.NotContains(t, r.calls, "begin")
	assert.NotContains(t, r.calls, "overlay")
	assert.Contains(t, r.calls, "composite:cloud-blended")

	lit := slices.Index(r.calls, "lit")
	require.Positive(t, lit)
	assert.Equal(t, "wireframe:true", r.calls[lit-1])
	assert.Equal(t, "wireframe:false", r.calls[lit+2])
}

func TestFrameSkipsSunAtNight(t *testing.T) {
	o, r, _ := newTestOrchestrator(t, nil)
	// Three quarters of the default cycle is deep night.
	require.NoError(t, o.Frame(900, simulation.MoveIntent{}))
	require.Len(t, r.frames, 1)
	assert.True(t, r.frames[0].DayNight.Night)
	assert.NotContains(t, r.calls, "sun")
	assert.Zero(t, r.frames[0].Params.Lights[core.SunLight].Intensity)
}

func TestFrameDrivesLights(t *testing.T) {
	o, r, _ := newTestOrchestrator(t, nil)
	require.NoError(t, o.Frame(150, simulation.MoveIntent{}))

	f := r.frames[0]
	state := simulation.Advance(150, f.Params.TimeScale)
	sun := f.Params.Lights[core.SunLight]
	assert.InDelta(t, state.Intensity, sun.Intensity, 1e-5)
	assert.Equal(t, state.SunDirection, sun.Direction)
	props := o.Props()
	assert.Equal(t, props.SpotLightPosition(), f.Params.Lights[core.SpotLight].Position)
	assert.Equal(t, sun.Direction, r.uniforms[0].LightDirection)
}

func TestFrameAppliesCommands(t *testing.T) {
	o, r, store := newTestOrchestrator(t, nil)
	q := o.Commands()
	require.True(t, q.Push(core.Command{Kind: core.CommandSetFloat, Key: "clouds.density", Float: 0.25}))
	require.True(t, q.Push(core.Command{Kind: core.CommandSetBool, Key: "toggles.debug", Bool: false}))
	require.True(t, q.Push(core.Command{Kind: core.CommandSetFloat, Key: "clouds.density", Float: 40}))

	require.NoError(t, o.Frame(0.016, simulation.MoveIntent{}))
	assert.Equal(t, float32(0.25), o.Params().Clouds.Density, "out of range value is rejected")
	assert.Equal(t, float32(0.25), r.uniforms[0].Density)
	assert.NotContains(t, r.calls, "overlay")
	assert.Empty(t, q.Drain())

	tel := store.Load()
	require.NotNil(t, tel)
	assert.Equal(t, 5, tel.CoinsTotal)
	assert.InDelta(t, 0.25, tel.Values["clouds.density"], 1e-6)
}

func TestFrameRegenerateRefreshesGround(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, nil)
	q := o.Commands()
	q.Push(core.Command{Kind: core.CommandPatch, Patch: func(p *core.SceneParameters) {
		p.Terrain.Amplitude = 0
	}})
	q.Push(core.Command{Kind: core.CommandRegenerateHeight})

	require.NoError(t, o.Frame(0.016, simulation.MoveIntent{}))
	for _, c := range o.Gameplay().Coins() {
		assert.InDelta(t, 0, c.Position[1], 0.01)
	}
}

func TestFrameResetTime(t *testing.T) {
	o, _, store := newTestOrchestrator(t, nil)
	require.NoError(t, o.Frame(100, simulation.MoveIntent{}))
	assert.InDelta(t, 100, store.Load().ElapsedTime, 1e-3)

	o.Commands().Push(core.Command{Kind: core.CommandResetTime})
	require.NoError(t, o.Frame(0.5, simulation.MoveIntent{}))
	assert.InDelta(t, 0.5, store.Load().ElapsedTime, 1e-5)
}

func TestFrameCollectsCoins(t *testing.T) {
	o, r, _ := newTestOrchestrator(t, func(p *core.SceneParameters) {
		p.Toggles.FlightMode = true
	})
	coin := o.Gameplay().Coins()[0]
	o.Camera().Position = coin.Position.Add(mgl32.Vec3{0, 1, 0})

	require.NoError(t, o.Frame(0.016, simulation.MoveIntent{}))
	assert.Equal(t, 1, o.Gameplay().Collected())
	assert.Contains(t, r.calls, "coins:4")
}

func TestFrameMovesPropsOnPositionWrites(t *testing.T) {
	o, r, _ := newTestOrchestrator(t, func(p *core.SceneParameters) { p.Toggles.Gravity = false })
	q := o.Commands()
	require.True(t, q.Push(core.Command{Kind: core.CommandSetFloat, Key: "props.cottage_x", Float: 10}))
	require.True(t, q.Push(core.Command{Kind: core.CommandSetFloat, Key: "spot.position_z", Float: 40}))
	require.True(t, q.Push(core.Command{Kind: core.CommandSetFloat, Key: "sun.diffuse_g", Float: 0.1}))

	require.NoError(t, o.Frame(0.016, simulation.MoveIntent{}))
	props := o.Props()
	assert.Equal(t, float32(10), props.Cottage.Position[0])
	assert.Equal(t, float32(40), props.SpotLightPosition()[2], "the lamp follows the spot light")

	f := r.frames[0]
	assert.Equal(t, float32(40), f.Params.Lights[core.SpotLight].Position[2])
	assert.Equal(t, float32(0.1), f.Params.Lights[core.SunLight].Diffuse[1])
	assert.Equal(t, props.Cottage.Position, o.Params().Props.Cottage)
}
