package opengl

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"skyscape/core"
	"skyscape/simulation"
)

// inputState accumulates mouse motion between frames.
type inputState struct {
	mouseDown          bool
	lastX, lastY       float64
	pendingX, pendingY float32
}

// toggleKeys maps a key to the feature switch it flips.
var toggleKeys = map[glfw.Key]func(*core.Toggles) *bool{
	glfw.Key1:  func(t *core.Toggles) *bool { return &t.Shadows },
	glfw.Key2:  func(t *core.Toggles) *bool { return &t.PostProcessing },
	glfw.KeyT:  func(t *core.Toggles) *bool { return &t.Time },
	glfw.KeyG:  func(t *core.Toggles) *bool { return &t.Gravity },
	glfw.KeyF:  func(t *core.Toggles) *bool { return &t.FlightMode },
	glfw.KeyV:  func(t *core.Toggles) *bool { return &t.Wireframe },
	glfw.KeyF1: func(t *core.Toggles) *bool { return &t.Debug },
}

// actionKeys maps a key to a one-shot command.
var actionKeys = map[glfw.Key]core.CommandKind{
	glfw.KeyR: core.CommandResetTime,
	glfw.KeyH: core.CommandRegenerateHeight,
	glfw.KeyJ: core.CommandSmoothHeight,
	glfw.KeyK: core.CommandRegenerateDensity,
}

func (r *Renderer) onKey(key glfw.Key, action glfw.Action) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyEscape {
		r.window.SetShouldClose(true)
		return
	}
	if r.commands == nil {
		return
	}

	var cmd core.Command
	if field, ok := toggleKeys[key]; ok {
		cmd = core.Command{Kind: core.CommandPatch, Patch: func(p *core.SceneParameters) {
			b := field(&p.Toggles)
			*b = !*b
		}}
	} else if kind, ok := actionKeys[key]; ok {
		cmd = core.Command{Kind: kind}
	} else {
		return
	}
	if !r.commands.Push(cmd) {
		slog.Warn("command queue full, key dropped", "key", glfw.GetKeyName(key, 0))
	}
}

func (r *Renderer) onMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		r.input.mouseDown = true
		r.input.lastX, r.input.lastY = r.window.GetCursorPos()
	case glfw.Release:
		r.input.mouseDown = false
	}
}

func (r *Renderer) onMouseMove(xpos, ypos float64) {
	if !r.input.mouseDown {
		return
	}
	r.input.pendingX += float32(xpos - r.input.lastX)
	r.input.pendingY += float32(ypos - r.input.lastY)
	r.input.lastX, r.input.lastY = xpos, ypos
}

// Intent reads the held movement keys and the mouse motion since the last
// call.
func (r *Renderer) Intent() simulation.MoveIntent {
	held := func(k glfw.Key) bool { return r.window.GetKey(k) == glfw.Press }
	in := simulation.MoveIntent{
		Forward:   held(glfw.KeyW),
		Backward:  held(glfw.KeyS),
		Left:      held(glfw.KeyA),
		Right:     held(glfw.KeyD),
		Up:        held(glfw.KeyE),
		Down:      held(glfw.KeyQ),
		TurnLeft:  held(glfw.KeyLeft),
		TurnRight: held(glfw.KeyRight),
		LookUp:    held(glfw.KeyUp),
		LookDown:  held(glfw.KeyDown),
		MouseDX:   r.input.pendingX,
		MouseDY:   r.input.pendingY,
	}
	r.input.pendingX, r.input.pendingY = 0, 0
	return in
}
