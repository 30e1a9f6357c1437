package simulation

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/core"
)

const (
	cameraSpeed      = 10
	turnSpeed        = 90 // degrees per second
	mouseSensitivity = 0.15
	eyeHeight        = 3
	followFactor     = 0.05
	maxPitch         = 89
)

var (
	cameraStart = mgl32.Vec3{22, 6, 23}
	flightExit  = mgl32.Vec3{28, 10, 27}
)

// MoveIntent is one frame of player input.
type MoveIntent struct {
	Forward, Backward bool
	Left, Right       bool
	Up, Down          bool
	TurnLeft          bool
	TurnRight         bool
	LookUp, LookDown  bool
	// MouseDX and MouseDY are cursor deltas in pixels while looking around.
	MouseDX, MouseDY float32
}

// Camera is a first-person camera that walks on the terrain, or flies free in
// flight mode. Rotation holds pitch and yaw in degrees.
type Camera struct {
	Position   mgl32.Vec3
	Rotation   mgl32.Vec3
	flightMode bool
	ground     HeightQuery
	size       int
}

// NewCamera places the camera at the start position over ground, a
// size×size terrain.
func NewCamera(ground HeightQuery, size int) *Camera {
	return &Camera{Position: cameraStart, ground: ground, size: size}
}

// SetGround swaps the height snapshot after regeneration.
func (c *Camera) SetGround(ground HeightQuery, size int) {
	c.ground = ground
	c.size = size
}

// FlightMode reports whether the camera ignores the terrain.
func (c *Camera) FlightMode() bool { return c.flightMode }

// SetFlightMode switches flight on or off. Landing resets the camera to a
// fixed spot above the valley.
func (c *Camera) SetFlightMode(on bool) {
	if c.flightMode == on {
		return
	}
	c.flightMode = on
	if !on {
		c.Position = flightExit
	}
}

// Forward is the unit view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	pitch := mgl32.DegToRad(c.Rotation[0])
	yaw := mgl32.DegToRad(c.Rotation[1])
	return mgl32.Vec3{
		math32.Sin(yaw) * math32.Cos(pitch),
		-math32.Sin(pitch),
		math32.Cos(yaw) * math32.Cos(pitch),
	}.Normalize()
}

// View returns the world-to-view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

// Update applies one frame of input. Moves that would leave the terrain are
// dropped; outside flight mode the eye eases toward a fixed height above the
// ground.
func (c *Camera) Update(in MoveIntent, dt float32) {
	c.turn(in, dt)

	speed := dt * cameraSpeed
	forward := c.Forward()
	if !c.flightMode {
		forward = mgl32.Vec3{forward[0], 0, forward[2]}
		if forward.Len() > 0 {
			forward = forward.Normalize()
		}
	}
	right := forward.Cross(mgl32.Vec3{0, 1, 0})
	if right.Len() > 0 {
		right = right.Normalize()
	}

	var move mgl32.Vec3
	if in.Forward {
		move = move.Add(forward)
	}
	if in.Backward {
		move = move.Sub(forward)
	}
	if in.Right {
		move = move.Add(right)
	}
	if in.Left {
		move = move.Sub(right)
	}
	if c.flightMode {
		if in.Up {
			move[1]++
		}
		if in.Down {
			move[1]--
		}
	}
	if move.Len() > 0 {
		next := c.Position.Add(move.Normalize().Mul(speed))
		if c.inBounds(next) {
			c.Position = next
		}
	}

	if !c.flightMode && c.ground != nil {
		target := c.ground.HeightAt(c.Position[0], c.Position[2]) + eyeHeight
		c.Position[1] = core.Lerp(c.Position[1], target, followFactor)
	}
}

func (c *Camera) turn(in MoveIntent, dt float32) {
	step := turnSpeed * dt
	if in.TurnLeft {
		c.Rotation[1] -= step
	}
	if in.TurnRight {
		c.Rotation[1] += step
	}
	if in.LookUp {
		c.Rotation[0] -= step
	}
	if in.LookDown {
		c.Rotation[0] += step
	}
	c.Rotation[1] += in.MouseDX * mouseSensitivity
	c.Rotation[0] += in.MouseDY * mouseSensitivity
	c.Rotation[0] = core.Clamp(c.Rotation[0], -maxPitch, maxPitch)
}

func (c *Camera) inBounds(p mgl32.Vec3) bool {
	limit := float32(c.size - 1)
	return p[0] >= 0 && p[0] < limit && p[2] >= 0 && p[2] < limit
}
