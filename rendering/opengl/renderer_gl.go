// Package opengl implements the rendering passes on OpenGL 4.1 core with a
// GLFW window.
package opengl

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"skyscape/assets"
	"skyscape/core"
	"skyscape/gpu"
	"skyscape/rendering"
	"skyscape/rendering/opengl/overlay"
	"skyscape/rendering/opengl/shaders"
)

// Texture units shared by the scene programs.
const (
	unitAlbedo  = 0
	unitGrass   = 0
	unitRock    = 1
	unitSnow    = 2
	unitHeight  = 3
	unitShadow0 = 4
	unitShadow1 = 5
)

const tessLevel = 8

var _ rendering.Passes = (*Renderer)(nil)

// Options configures the window and the GPU resources.
type Options struct {
	Width, Height int
	Title         string
	VSync         bool
	// TerrainSize is the height field side length the terrain mesh spans.
	TerrainSize int
	// AssetDir holds optional texture images; missing files fall back to
	// procedural swatches.
	AssetDir string
	// Commands receives key-driven toggles and regeneration requests.
	Commands *core.CommandQueue
}

// Renderer owns the window and every GL resource, and implements
// rendering.Passes.
type Renderer struct {
	window *glfw.Window

	programs   *shaders.Programs
	meshes     map[string]*gpu.Mesh
	textures   map[string]*gpu.Texture2D
	field      *gpu.FieldTextures
	targets    map[rendering.TargetID]*gpu.RenderTarget
	shadowMaps [core.LightCount]*gpu.ShadowMap
	fullScreen *gpu.FullScreen
	stats      *overlay.StatsOverlay

	width, height int
	terrainSize   int
	resized       bool

	// bound is the target shadow rendering returns to.
	bound rendering.TargetID
	// frame is the frame being drawn, set by the first pass that receives it.
	frame *rendering.Frame

	commands *core.CommandQueue
	input    inputState
}

// NewRenderer opens the window and creates every GPU resource. It must be
// called from the locked main thread that runs the frame loop.
func NewRenderer(opts Options) (*Renderer, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}
	slog.Info("OpenGL context ready", "version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	// The framebuffer can differ from the window size on high-DPI displays.
	fbw, fbh := window.GetFramebufferSize()
	r := &Renderer{
		window:      window,
		field:       &gpu.FieldTextures{},
		width:       fbw,
		height:      fbh,
		terrainSize: opts.TerrainSize,
		commands:    opts.Commands,
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	if err := r.createResources(opts.AssetDir); err != nil {
		r.Terminate()
		return nil, err
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.onResize(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		r.onKey(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		r.onMouseButton(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		r.onMouseMove(xpos, ypos)
	})

	slog.Info("renderer ready", "width", fbw, "height", fbh, "targets", len(r.targets))
	return r, nil
}

func (r *Renderer) createResources(assetDir string) error {
	var err error
	if r.programs, err = shaders.Compile(); err != nil {
		return err
	}
	if err := r.createMeshes(); err != nil {
		return err
	}
	if err := r.createTextures(assetDir); err != nil {
		return err
	}
	if err := r.createTargets(); err != nil {
		return err
	}
	for i := range r.shadowMaps {
		if r.shadowMaps[i], err = gpu.NewShadowMap(rendering.ShadowMapSize); err != nil {
			return fmt.Errorf("shadow map %d: %w", i, err)
		}
	}
	r.fullScreen = gpu.NewFullScreen()
	if r.stats, err = overlay.NewStatsOverlay(r.width, r.height); err != nil {
		return err
	}
	return nil
}

func (r *Renderer) createMeshes() error {
	r.meshes = make(map[string]*gpu.Mesh)
	cells := max(1, r.terrainSize-1)
	for name, data := range assets.Meshes(cells, float32(cells)) {
		m, err := gpu.NewMesh(data)
		if err != nil {
			return fmt.Errorf("mesh %s: %w", name, err)
		}
		r.meshes[name] = m
	}
	return nil
}

func (r *Renderer) createTextures(dir string) error {
	images, err := assets.LoadTextures(dir, assets.TextureSize)
	if err != nil {
		return err
	}
	r.textures = make(map[string]*gpu.Texture2D, len(images))
	for name, img := range images {
		t, err := gpu.NewColorTexture(img)
		if err != nil {
			return fmt.Errorf("texture %s: %w", name, err)
		}
		r.textures[name] = t
	}
	return nil
}

// createTargets (re)builds every offscreen target for the current size.
func (r *Renderer) createTargets() error {
	for _, t := range r.targets {
		t.Release()
	}
	r.targets = make(map[rendering.TargetID]*gpu.RenderTarget)
	for _, spec := range rendering.Targets() {
		size := spec.SizeFor(r.width, r.height)
		format := gpu.ColorHDR
		if spec.Format == rendering.FormatLinearDepth {
			format = gpu.LinearDepth
		}
		t, err := gpu.NewRenderTarget(size.Width, size.Height, format)
		if err != nil {
			return fmt.Errorf("render target %s: %w", spec.Name, err)
		}
		r.targets[spec.ID] = t
	}
	return nil
}

// FieldTextures is the uploader the noise field writes into.
func (r *Renderer) FieldTextures() *gpu.FieldTextures { return r.field }

// Size returns the framebuffer size.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// Resized reports and clears a pending framebuffer resize.
func (r *Renderer) Resized() bool {
	resized := r.resized
	r.resized = false
	return resized
}

func (r *Renderer) onResize(width, height int) {
	if width <= 0 || height <= 0 {
		// Minimised.
		return
	}
	r.width, r.height = width, height
	if err := r.createTargets(); err != nil {
		slog.Error("recreate render targets", "err", err)
		r.window.SetShouldClose(true)
		return
	}
	r.stats.UpdateSize(width, height)
	r.resized = true
}

// ShouldClose returns true if the window should close.
func (r *Renderer) ShouldClose() bool {
	return r.window.ShouldClose()
}

// PollEvents processes window events.
func (r *Renderer) PollEvents() {
	glfw.PollEvents()
}

// Time is seconds since GLFW initialised.
func (r *Renderer) Time() float64 { return glfw.GetTime() }

// Terminate releases every GL resource and closes the window.
func (r *Renderer) Terminate() {
	if r.stats != nil {
		r.stats.Release()
	}
	if r.fullScreen != nil {
		r.fullScreen.Release()
	}
	for _, s := range r.shadowMaps {
		if s != nil {
			s.Release()
		}
	}
	for _, t := range r.targets {
		t.Release()
	}
	for _, t := range r.textures {
		t.Release()
	}
	for _, m := range r.meshes {
		m.Release()
	}
	r.field.Release()
	if r.programs != nil {
		r.programs.Release()
	}
	r.window.Destroy()
	glfw.Terminate()
}

// sceneUniforms sets the camera and lighting inputs shared by the lit
// programs.
func (r *Renderer) sceneUniforms(p *gpu.Program, f *rendering.Frame) {
	p.SetMat4("view", f.View)
	p.SetMat4("projection", f.Projection)
	p.SetVec3("eye", f.Eye)
	p.SetBool("shadowsEnabled", f.Params.Toggles.Shadows && len(f.LightViews) == core.LightCount)

	for i, l := range f.Params.Lights {
		prefix := fmt.Sprintf("lights[%d].", i)
		p.SetInt(prefix+"kind", int32(l.Kind))
		p.SetVec4(prefix+"ambient", l.Ambient)
		p.SetVec4(prefix+"diffuse", l.EffectiveDiffuse())
		p.SetVec4(prefix+"specular", l.Specular)
		p.SetFloat(prefix+"specularPower", l.SpecularPower)
		p.SetVec3(prefix+"position", l.Position)
		p.SetVec3(prefix+"direction", l.Direction)
	}
	for i, v := range f.LightViews {
		p.SetMat4(fmt.Sprintf("lightViewProjection[%d]", i), v.ViewProjection())
	}
	p.SetInt("shadowMap0", unitShadow0)
	p.SetInt("shadowMap1", unitShadow1)
	if f.Params.Toggles.Shadows {
		r.shadowMaps[core.SunLight].BindTexture(unitShadow0)
		r.shadowMaps[core.SpotLight].BindTexture(unitShadow1)
	}
}

// terrainUniforms binds the height texture and tessellation inputs.
func (r *Renderer) terrainUniforms(p *gpu.Program) {
	if r.field.Height != nil {
		r.field.Height.Bind(unitHeight)
	}
	p.SetInt("heightMap", unitHeight)
	p.SetFloat("heightSize", float32(r.terrainSize))
	p.SetFloat("tessLevel", tessLevel)
}

func (r *Renderer) draw(d rendering.Drawable, p *gpu.Program) {
	m, ok := r.meshes[d.Mesh]
	if !ok {
		return
	}
	p.SetMat4("model", d.Model)
	m.Draw()
}
