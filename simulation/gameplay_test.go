package simulation

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinsRestOnGround(t *testing.T) {
	g := NewGameplay(flatGround(3))
	coins := g.Coins()
	require.Len(t, coins, 5)
	for _, c := range coins {
		assert.Equal(t, float32(3), c.Position[1])
		assert.False(t, c.Collected)
	}
	assert.Equal(t, float32(35.6), coins[0].Position[0])
	assert.Equal(t, float32(27.3), coins[0].Position[2])
}

func TestPickupRadius(t *testing.T) {
	g := NewGameplay(flatGround(0))
	g.Evaluate(mgl32.Vec3{35.6, 3.9, 27.3})
	assert.Equal(t, 1, g.Collected())

	g.Evaluate(mgl32.Vec3{42.45, 4, 14.7})
	assert.Equal(t, 1, g.Collected(), "distance must be strictly below 4")

	g.Evaluate(mgl32.Vec3{35.6, 0, 27.3})
	assert.Equal(t, 1, g.Collected(), "coins are only counted once")
}

func TestGoalRequiresAllCoins(t *testing.T) {
	g := NewGameplay(flatGround(0))
	goal := mgl32.Vec3{22, 0.4, 20}
	g.SetGoal(goal)

	g.Evaluate(goal)
	assert.False(t, g.Finished())

	for _, c := range g.Coins() {
		g.Evaluate(c.Position)
	}
	require.True(t, g.AllCollected())
	assert.False(t, g.Finished(), "goal is checked before pickup in the same frame")

	g.Evaluate(mgl32.Vec3{22, 3, 20})
	assert.True(t, g.Finished())
}

func TestSetGroundMovesCoins(t *testing.T) {
	g := NewGameplay(flatGround(0))
	g.SetGround(flatGround(7))
	assert.Equal(t, float32(7), g.Coins()[2].Position[1])
}
