package core

import "github.com/go-gl/mathgl/mgl32"

// Band is the height range over which a terrain texture layer is visible.
type Band struct {
	Min float32
	Max float32
}

// TerrainParams drives the height field, the density volume and texturing.
type TerrainParams struct {
	Frequency        float32
	Amplitude        float32
	DensityFrequency float32

	Grass Band
	Rock  Band
	Snow  Band
	// BandBlend is the half width of the smooth transition at each band edge.
	BandBlend float32
}

// CloudParams are the participating-medium settings of the cloud box.
type CloudParams struct {
	GasColor mgl32.Vec4
	Density  float32
	SigmaA   float32
	SigmaS   float32
	G        float32
	Samples  int
	// Wind scrolls the density volume in x and z, in volume units per second.
	Wind      mgl32.Vec2
	BoxCenter mgl32.Vec3
	BoxSize   mgl32.Vec3
}

// SkyParams colours the dome.
type SkyParams struct {
	CenterColor mgl32.Vec4
	ApexColor   mgl32.Vec4
}

// PostParams is the color grading stage input.
type PostParams struct {
	Tint         mgl32.Vec3
	TintStrength float32
	Brightness   float32
	Contrast     float32
	Saturation   float32
}

// Toggles are the user-facing feature switches.
type Toggles struct {
	Shadows        bool
	PostProcessing bool
	Time           bool
	Gravity        bool
	Debug          bool
	Wireframe      bool
	FlightMode     bool
}

// PropParams positions the scene props before gravity settles them.
type PropParams struct {
	Cottage        mgl32.Vec3
	CottageOffset  float32
	SpotlightModel mgl32.Vec3
	// SpotlightOffset is where the spot light sits relative to its model.
	SpotlightOffset mgl32.Vec3
}

// SceneParameters is the one record every pass reads and the tuning surface
// writes. It is owned by the frame loop.
type SceneParameters struct {
	Terrain   TerrainParams
	Clouds    CloudParams
	Lights    [LightCount]LightDescriptor
	Sky       SkyParams
	Post      PostParams
	SunColor  mgl32.Vec4
	TimeScale float32
	Toggles   Toggles
	Props     PropParams
}

// DefaultSceneParameters returns the startup scene: sunrise colours, all
// rendering features on.
func DefaultSceneParameters() SceneParameters {
	cottage := mgl32.Vec3{22, 20, 20}
	return SceneParameters{
		Terrain: TerrainParams{
			Frequency:        3.6969,
			Amplitude:        6.9,
			DensityFrequency: 0.1,
			Grass:            Band{Min: -0.5, Max: 0.2},
			Rock:             Band{Min: -0.2, Max: 2},
			Snow:             Band{Min: 1, Max: 5},
			BandBlend:        0.25,
		},
		Clouds: CloudParams{
			GasColor:  mgl32.Vec4{1, 1, 1, 1},
			Density:   0.055,
			SigmaA:    0.5,
			SigmaS:    0.25,
			G:         0.25,
			Samples:   200,
			Wind:      mgl32.Vec2{0, 0.02},
			BoxCenter: mgl32.Vec3{25, 75, 25},
			BoxSize:   mgl32.Vec3{100, 50, 100},
		},
		Lights: DefaultLights(),
		Sky: SkyParams{
			CenterColor: mgl32.Vec4{0.95, 0.25, 0.24, 1},
			ApexColor:   mgl32.Vec4{0.003, 0.403, 0.831, 1},
		},
		Post: PostParams{
			Tint:         mgl32.Vec3{0.5, 0.4, 0.2},
			TintStrength: 0.045,
			Brightness:   1.0,
			Contrast:     1.02,
			Saturation:   1.25,
		},
		SunColor:  mgl32.Vec4{1, 0.3, 0.3, 1},
		TimeScale: 1,
		Toggles: Toggles{
			Shadows:        true,
			PostProcessing: true,
			Time:           true,
			Gravity:        true,
			Debug:          true,
		},
		Props: PropParams{
			Cottage:         cottage,
			CottageOffset:   0.4,
			SpotlightModel:  mgl32.Vec3{cottage[0], 20, cottage[2] + 2},
			SpotlightOffset: mgl32.Vec3{0, 2.1, 1},
		},
	}
}
