package simulation

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraStart(t *testing.T) {
	c := NewCamera(flatGround(0), 50)
	assert.Equal(t, mgl32.Vec3{22, 6, 23}, c.Position)
	assert.InDelta(t, 1, c.Forward().Len(), 1e-5)
}

func TestCameraMovesAtTenUnitsPerSecond(t *testing.T) {
	c := NewCamera(flatGround(0), 50)
	c.Update(MoveIntent{Forward: true}, 0.1)
	// Facing +z with zero rotation.
	assert.InDelta(t, 24, c.Position[2], 1e-4)
	assert.InDelta(t, 22, c.Position[0], 1e-4)
}

func TestCameraFollowsTerrain(t *testing.T) {
	c := NewCamera(flatGround(10), 50)
	c.Update(MoveIntent{}, 0.016)
	// Eases 5% of the way from 6 toward 13.
	assert.InDelta(t, 6.35, c.Position[1], 1e-4)
	for i := 0; i < 500; i++ {
		c.Update(MoveIntent{}, 0.016)
	}
	assert.InDelta(t, 13, c.Position[1], 1e-3)
}

func TestCameraRejectsMovesOffTerrain(t *testing.T) {
	c := NewCamera(flatGround(0), 50)
	c.Position = mgl32.Vec3{1, 3, 48.9}
	c.Update(MoveIntent{Forward: true}, 0.1)
	assert.InDelta(t, 48.9, c.Position[2], 1e-5)

	c.Update(MoveIntent{Backward: true}, 0.1)
	assert.InDelta(t, 47.9, c.Position[2], 1e-4)
}

func TestFlightMode(t *testing.T) {
	c := NewCamera(flatGround(0), 50)
	c.SetFlightMode(true)
	assert.True(t, c.FlightMode())
	c.Update(MoveIntent{Up: true}, 0.5)
	assert.InDelta(t, 11, c.Position[1], 1e-4, "flight ignores terrain following")

	c.SetFlightMode(false)
	assert.Equal(t, mgl32.Vec3{28, 10, 27}, c.Position)
}

func TestPitchClamped(t *testing.T) {
	c := NewCamera(flatGround(0), 50)
	c.Update(MoveIntent{MouseDY: 10000}, 0.016)
	assert.Equal(t, float32(89), c.Rotation[0])
}
