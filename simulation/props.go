package simulation

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/core"
)

const (
	// settleRate is the exponential decay rate of a falling prop's height
	// above the ground, per second.
	settleRate = 4.5
	// settleEpsilon snaps a prop onto the ground once it is this close.
	settleEpsilon = 0.01
)

// HeightQuery answers terrain height lookups. Implementations clamp
// out-of-range positions.
type HeightQuery interface {
	HeightAt(x, z float32) float32
}

// Prop is a scene object that rests on the terrain.
type Prop struct {
	Position mgl32.Vec3
	// Offset lifts the prop's origin above the ground.
	Offset float32
}

// Settle moves the prop toward ground height plus offset. The gap above the
// ground decays exponentially with dt; a prop below the ground, for example
// after the terrain was regenerated higher, snaps up immediately.
func (p *Prop) Settle(ground HeightQuery, dt float32) {
	target := ground.HeightAt(p.Position[0], p.Position[2]) + p.Offset
	gap := p.Position[1] - target
	if gap <= settleEpsilon {
		p.Position[1] = target
		return
	}
	gap *= math32.Exp(-settleRate * dt)
	if gap <= settleEpsilon {
		gap = 0
	}
	p.Position[1] = target + gap
}

// Props holds the cottage and the street lamp carrying the spot light.
type Props struct {
	Cottage   Prop
	Spotlight Prop
	// SpotOffset places the spot light relative to the lamp.
	SpotOffset mgl32.Vec3
}

// NewProps positions the props from the scene parameters.
func NewProps(p core.PropParams) Props {
	return Props{
		Cottage:    Prop{Position: p.Cottage, Offset: p.CottageOffset},
		Spotlight:  Prop{Position: p.SpotlightModel},
		SpotOffset: p.SpotlightOffset,
	}
}

// Place moves the props to the positions in p. Gravity settles them again
// on the next update.
func (ps *Props) Place(p core.PropParams) {
	ps.Cottage.Position = p.Cottage
	ps.Spotlight.Position = p.SpotlightModel
	ps.SpotOffset = p.SpotlightOffset
}

// Update applies gravity to every prop.
func (ps *Props) Update(ground HeightQuery, dt float32) {
	ps.Cottage.Settle(ground, dt)
	ps.Spotlight.Settle(ground, dt)
}

// SpotLightPosition is where the spot light sits this frame.
func (ps *Props) SpotLightPosition() mgl32.Vec3 {
	return ps.Spotlight.Position.Add(ps.SpotOffset)
}
