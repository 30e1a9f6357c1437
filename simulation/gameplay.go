package simulation

import "github.com/go-gl/mathgl/mgl32"

const (
	pickupRadius = 4
	goalRadius   = 4
)

var coinSites = []mgl32.Vec2{
	{35.6, 27.3},
	{42.45, 14.7},
	{28.7, 11.98},
	{13.75, 13.19},
	{11.61, 33.58},
}

// Coin is a collectible resting on the terrain.
type Coin struct {
	Position  mgl32.Vec3
	Collected bool
}

// Gameplay tracks coin pickup and the return-to-cottage goal. Evaluate is
// called once per frame from the lighting pass.
type Gameplay struct {
	ground    HeightQuery
	collected []bool
	goal      mgl32.Vec3
	finished  bool
}

// NewGameplay places the coins on ground.
func NewGameplay(ground HeightQuery) *Gameplay {
	return &Gameplay{
		ground:    ground,
		collected: make([]bool, len(coinSites)),
	}
}

// SetGround swaps the height source after the terrain is regenerated.
func (g *Gameplay) SetGround(ground HeightQuery) { g.ground = ground }

// SetGoal moves the goal, which follows the cottage as it settles.
func (g *Gameplay) SetGoal(pos mgl32.Vec3) { g.goal = pos }

// Coins returns every coin with its current position.
func (g *Gameplay) Coins() []Coin {
	out := make([]Coin, len(coinSites))
	for i, site := range coinSites {
		out[i] = Coin{
			Position:  mgl32.Vec3{site[0], g.ground.HeightAt(site[0], site[1]), site[1]},
			Collected: g.collected[i],
		}
	}
	return out
}

// Evaluate collects every coin within reach of the camera and finishes the
// game once all coins are held and the camera reaches the goal.
func (g *Gameplay) Evaluate(camera mgl32.Vec3) {
	if g.AllCollected() && !g.finished {
		if camera.Sub(g.goal).Len() < goalRadius {
			g.finished = true
		}
	}
	for i, c := range g.Coins() {
		if !c.Collected && camera.Sub(c.Position).Len() < pickupRadius {
			g.collected[i] = true
		}
	}
}

// Collected is the number of coins picked up.
func (g *Gameplay) Collected() int {
	n := 0
	for _, c := range g.collected {
		if c {
			n++
		}
	}
	return n
}

// Total is the number of coins in the scene.
func (g *Gameplay) Total() int { return len(coinSites) }

// AllCollected reports whether every coin has been picked up.
func (g *Gameplay) AllCollected() bool { return g.Collected() == g.Total() }

// Finished reports whether the goal was reached.
func (g *Gameplay) Finished() bool { return g.finished }
