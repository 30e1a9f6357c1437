package rendering

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"skyscape/core"
	"skyscape/simulation"
	"skyscape/terrain"
)

// Camera projection.
const (
	cameraFOV  = 45
	cameraNear = 0.1
	cameraFar  = 1000
)

// Frame is everything the passes read during one frame. It is built from a
// copy of the scene parameters taken after pending commands are applied.
type Frame struct {
	Params   core.SceneParameters
	DayNight simulation.State
	Time     float32
	Width    int
	Height   int

	Eye        mgl32.Vec3
	View       mgl32.Mat4
	Projection mgl32.Mat4

	// Scene holds the lit shadow casters.
	Scene []Drawable
	Coins []Drawable
	// LightViews is filled by the shadow step when shadows are enabled.
	LightViews []LightView
}

// Passes is the graphics backend the orchestrator drives.
type Passes interface {
	ShadowExecutor
	PostExecutor

	// BindTarget makes id the draw target, optionally clearing it.
	BindTarget(id TargetID, clear bool)
	BindBackBuffer()
	DrawSky(f *Frame)
	// UnbindShadowMaps detaches the shadow maps from the lighting shaders.
	UnbindShadowMaps()
	SetWireframe(on bool)
	DrawLit(f *Frame)
	DrawCoins(f *Frame)
	DrawSun(f *Frame)
	DrawCloudDepth(f *Frame)
	RaymarchClouds(u CloudUniforms)
	BlendClouds()
	Composite(source TargetID)
	DrawOverlay(t *core.Telemetry)
	Present()
}

// OrchestratorConfig wires an Orchestrator.
type OrchestratorConfig struct {
	Params    core.SceneParameters
	Field     *terrain.NoiseField
	Passes    Passes
	Commands  *core.CommandQueue
	Telemetry *core.TelemetryStore
	// Hooks run after the built-in gameplay hook.
	Hooks  []LightingHooks
	Width  int
	Height int
}

// Orchestrator owns the scene state and runs the passes in order each frame.
type Orchestrator struct {
	params    core.SceneParameters
	field     *terrain.NoiseField
	ground    *terrain.HeightField
	passes    Passes
	commands  *core.CommandQueue
	telemetry *core.TelemetryStore

	clock    simulation.Clock
	dayNight simulation.State
	camera   *simulation.Camera
	props    simulation.Props
	game     *simulation.Gameplay
	hooks    []LightingHooks

	plan          []Step
	width, height int
	time          float32
	resetTime     bool

	frames      int
	fpsWindow   float32
	fps         float32
	lastFrameDt float32
}

// NewOrchestrator builds the scene on top of an initialised noise field.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	o := &Orchestrator{
		params:    cfg.Params,
		field:     cfg.Field,
		passes:    cfg.Passes,
		commands:  cfg.Commands,
		telemetry: cfg.Telemetry,
		props:     simulation.NewProps(cfg.Params.Props),
	}
	if o.commands == nil {
		o.commands = core.NewCommandQueue(64)
	}
	o.ground = o.field.Snapshot()
	o.camera = simulation.NewCamera(o.ground, o.ground.Size())
	o.camera.SetFlightMode(o.params.Toggles.FlightMode)
	o.game = simulation.NewGameplay(o.ground)
	o.game.SetGoal(o.props.Cottage.Position)
	o.hooks = append([]LightingHooks{o.game}, cfg.Hooks...)
	o.dayNight = o.clock.Current(o.params.TimeScale)
	o.Resize(cfg.Width, cfg.Height)
	return o
}

// Resize rebuilds the post-processing plan for a new screen size.
func (o *Orchestrator) Resize(width, height int) {
	o.width, o.height = width, height
	o.plan = PlanPostProcess(width, height)
}

// Commands is the queue drained at the start of every frame.
func (o *Orchestrator) Commands() *core.CommandQueue { return o.commands }

// Params returns a copy of the current scene parameters.
func (o *Orchestrator) Params() core.SceneParameters { return o.params }

// Camera exposes the player camera.
func (o *Orchestrator) Camera() *simulation.Camera { return o.camera }

// Gameplay exposes coin and goal state.
func (o *Orchestrator) Gameplay() *simulation.Gameplay { return o.game }

// Props exposes the settled scene props.
func (o *Orchestrator) Props() simulation.Props { return o.props }

// Frame advances the scene by dt seconds and renders it. Errors come from
// terrain regeneration and are fatal to the caller.
func (o *Orchestrator) Frame(dt float32, in simulation.MoveIntent) error {
	if err := o.applyCommands(); err != nil {
		return err
	}
	if o.resetTime {
		o.clock.Reset()
		o.resetTime = false
	}

	o.time += dt
	o.camera.SetFlightMode(o.params.Toggles.FlightMode)
	o.camera.Update(in, dt)

	f := &Frame{
		Params:     o.params,
		DayNight:   o.dayNight,
		Time:       o.time,
		Width:      o.width,
		Height:     o.height,
		Eye:        o.camera.Position,
		View:       o.camera.View(),
		Projection: o.projection(),
	}

	o.passes.BindTarget(TargetSource, true)
	o.passes.DrawSky(f)

	if f.Params.Toggles.Gravity {
		o.props.Update(o.ground, dt)
		o.game.SetGoal(o.props.Cottage.Position)
	}
	f.Params.Props.Cottage = o.props.Cottage.Position
	f.Params.Props.SpotlightModel = o.props.Spotlight.Position
	f.Scene = SceneDrawables(o.props)

	if f.Params.Toggles.Shadows {
		f.LightViews = RenderShadowMaps(o.passes, f.Params.Lights[:], f.Scene)
	} else {
		o.passes.UnbindShadowMaps()
	}

	o.passes.SetWireframe(f.Params.Toggles.Wireframe)
	o.lighting(f, dt)
	o.passes.SetWireframe(false)

	if !f.DayNight.Night {
		o.passes.DrawSun(f)
	}

	o.passes.DrawCloudDepth(f)
	o.passes.RaymarchClouds(BuildCloudUniforms(&f.Params, f.Eye, f.Time))
	o.passes.BlendClouds()

	o.passes.BindBackBuffer()

	composite := TargetCloudBlended
	if f.Params.Toggles.PostProcessing {
		o.passes.BindTarget(TargetSunSphere, true)
		if !f.DayNight.Night {
			o.passes.DrawSun(f)
		}
		RunPostProcess(o.passes, o.plan, f.Params.Post)
		composite = TargetColorGraded
	}
	o.passes.Composite(composite)

	o.params = f.Params
	t := o.publish(dt)
	if f.Params.Toggles.Debug {
		o.passes.DrawOverlay(t)
	}
	o.passes.Present()
	return nil
}

// lighting advances the day-night cycle, updates the lights, draws the lit
// scene and runs the gameplay hooks before the coins.
func (o *Orchestrator) lighting(f *Frame, dt float32) {
	if f.Params.Toggles.Time {
		o.dayNight = o.clock.Step(dt, f.Params.TimeScale)
		o.dayNight.Apply(&f.Params)
		f.DayNight = o.dayNight
	}

	spot := &f.Params.Lights[core.SpotLight]
	spot.Position = o.props.SpotLightPosition()
	for i := range f.Params.Lights {
		f.Params.Lights[i].ClampIntensity()
	}

	o.passes.DrawLit(f)

	for _, h := range o.hooks {
		h.Evaluate(f.Eye)
	}
	f.Coins = CoinDrawables(o.game.Coins(), f.Time)
	o.passes.DrawCoins(f)
}

func (o *Orchestrator) projection() mgl32.Mat4 {
	aspect := float32(1)
	if o.height > 0 {
		aspect = float32(o.width) / float32(o.height)
	}
	return mgl32.Perspective(mgl32.DegToRad(cameraFOV), aspect, cameraNear, cameraFar)
}

func (o *Orchestrator) applyCommands() error {
	for _, c := range o.commands.Drain() {
		switch c.Kind {
		case core.CommandSetFloat:
			if err := o.params.SetFloat(c.Key, c.Float); err != nil {
				slog.Warn("rejected parameter", "key", c.Key, "err", err)
				continue
			}
			o.placeProps(c.Key)
		case core.CommandSetBool:
			if err := o.params.SetBool(c.Key, c.Bool); err != nil {
				slog.Warn("rejected parameter", "key", c.Key, "err", err)
			}
		case core.CommandPatch:
			if c.Patch != nil {
				c.Patch(&o.params)
			}
		case core.CommandResetTime:
			o.resetTime = true
		case core.CommandRegenerateHeight:
			t := o.params.Terrain
			if err := o.field.GenerateHeight(t.Frequency, t.Amplitude); err != nil {
				return fmt.Errorf("regenerate height: %w", err)
			}
			o.refreshGround()
		case core.CommandSmoothHeight:
			if err := o.field.SmoothHeight(); err != nil {
				return fmt.Errorf("smooth height: %w", err)
			}
			o.refreshGround()
		case core.CommandRegenerateDensity:
			if err := o.field.GenerateDensity(o.params.Terrain.DensityFrequency); err != nil {
				return fmt.Errorf("regenerate density: %w", err)
			}
		}
	}
	return nil
}

// placeProps moves the props after a write to their positions. The spot
// light rides on its lamp, so moving the light moves the lamp with it.
func (o *Orchestrator) placeProps(key string) {
	switch {
	case strings.HasPrefix(key, "spot.position_"):
		spot := o.params.Lights[core.SpotLight].Position
		o.params.Props.SpotlightModel = spot.Sub(o.params.Props.SpotlightOffset)
	case strings.HasPrefix(key, "props."):
	default:
		return
	}
	o.props.Place(o.params.Props)
	o.game.SetGoal(o.props.Cottage.Position)
}

func (o *Orchestrator) refreshGround() {
	o.ground = o.field.Snapshot()
	o.camera.SetGround(o.ground, o.ground.Size())
	o.game.SetGround(o.ground)
}

func (o *Orchestrator) publish(dt float32) *core.Telemetry {
	o.frames++
	o.fpsWindow += dt
	o.lastFrameDt = dt
	if o.fpsWindow >= 1 {
		o.fps = float32(o.frames) / o.fpsWindow
		o.frames = 0
		o.fpsWindow = 0
	}

	sun := o.params.Lights[core.SunLight]
	t := &core.Telemetry{
		FrameTime:      o.lastFrameDt,
		FPS:            o.fps,
		ElapsedTime:    o.clock.Elapsed(),
		TimeOfDay:      o.dayNight.TimeOfDayHours(),
		IsNight:        o.dayNight.Night,
		CameraPosition: o.camera.Position,
		CameraRotation: o.camera.Rotation,
		SunPosition:    sun.Position,
		SunDirection:   sun.Direction,
		SunIntensity:   sun.Intensity,
		CoinsCollected: o.game.Collected(),
		CoinsTotal:     o.game.Total(),
		Finished:       o.game.Finished(),
		Values:         o.params.Values(),
	}
	if o.telemetry != nil {
		o.telemetry.Store(t)
	}
	return t
}
