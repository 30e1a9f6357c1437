package opengl

import (
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/rendering"
)

// BeginFullScreen disables depth testing for the post-processing chain.
func (r *Renderer) BeginFullScreen() {
	gl.Disable(gl.DEPTH_TEST)
}

// RunStep draws one post-processing step into its output target.
func (r *Renderer) RunStep(s rendering.Step) {
	out, ok := r.targets[s.Output]
	if !ok {
		slog.Warn("post step has no output target", "op", s.Op, "output", s.Output)
		return
	}
	out.Bind()
	for i, in := range s.Inputs {
		if t, ok := r.targets[in]; ok {
			t.BindTexture(uint32(i))
		}
	}

	switch s.Op {
	case rendering.OpBrightFilter, rendering.OpSunBrightFilter:
		p := r.programs.Bright
		p.Use()
		p.SetInt("source", 0)
		p.SetFloat("threshold", s.Threshold)
		p.SetFloat("knee", rendering.BrightKnee)
	case rendering.OpBlur:
		p := r.programs.Blur
		p.Use()
		p.SetInt("source", 0)
		p.SetVec2("texel", mgl32.Vec2{1 / float32(s.Size.Width), 1 / float32(s.Size.Height)})
		p.SetFloats("weights", rendering.BlurKernel())
	case rendering.OpBlend:
		p := r.programs.Blend
		p.Use()
		p.SetInt("base", 0)
		p.SetInt("glow", 1)
	case rendering.OpColorGrade:
		p := r.programs.Grade
		p.Use()
		p.SetInt("source", 0)
		p.SetVec3("tint", s.Grade.Tint)
		p.SetFloat("tintStrength", s.Grade.TintStrength)
		p.SetFloat("brightness", s.Grade.Brightness)
		p.SetFloat("contrast", s.Grade.Contrast)
		p.SetFloat("saturation", s.Grade.Saturation)
	default:
		slog.Warn("unknown post op", "op", s.Op)
		return
	}
	r.fullScreen.Draw()
}

// EndFullScreen restores depth testing and the back buffer.
func (r *Renderer) EndFullScreen() {
	gl.Enable(gl.DEPTH_TEST)
	r.BindBackBuffer()
}

// Composite copies source to the back buffer.
func (r *Renderer) Composite(source rendering.TargetID) {
	r.BindBackBuffer()
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := r.programs.Composite
	p.Use()
	p.SetInt("source", 0)
	if t, ok := r.targets[source]; ok {
		t.BindTexture(0)
	}
	gl.Disable(gl.DEPTH_TEST)
	r.fullScreen.Draw()
	gl.Enable(gl.DEPTH_TEST)
}
