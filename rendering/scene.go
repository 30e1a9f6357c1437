package rendering

import (
	"github.com/go-gl/mathgl/mgl32"

	"skyscape/assets"
	"skyscape/simulation"
)

// Mesh names understood by the asset library.
const (
	MeshTerrain = assets.MeshTerrain
	MeshCottage = assets.MeshCottage
	MeshLamp    = assets.MeshLamp
	MeshCoin    = assets.MeshCoin
	MeshSphere  = assets.MeshSphere
	MeshCube    = assets.MeshCube
)

// Texture names understood by the asset library.
const (
	TextureGrass   = assets.TextureGrass
	TextureRock    = assets.TextureRock
	TextureSnow    = assets.TextureSnow
	TextureCottage = assets.TextureCottage
	TextureLamp    = assets.TextureLamp
	TextureCoin    = assets.TextureCoin
	TextureSun     = assets.TextureSun
)

const (
	sunScale = 1.5
	skyScale = 50
	coinSpin = 2
)

// Drawable is one mesh instance in world space.
type Drawable struct {
	Mesh    string
	Texture string
	Model   mgl32.Mat4
	// Tessellated drawables displace their patches by the height texture.
	Tessellated bool
}

// SceneDrawables lists the lit, shadow-casting objects: the terrain, the
// cottage and the lamp.
func SceneDrawables(props simulation.Props) []Drawable {
	return []Drawable{
		{Mesh: MeshTerrain, Model: mgl32.Ident4(), Tessellated: true},
		{Mesh: MeshCottage, Texture: TextureCottage, Model: mgl32.Translate3D(props.Cottage.Position.Elem())},
		{Mesh: MeshLamp, Texture: TextureLamp, Model: mgl32.Translate3D(props.Spotlight.Position.Elem())},
	}
}

// CoinDrawables lists the coins still waiting to be collected, spinning with
// time.
func CoinDrawables(coins []simulation.Coin, time float32) []Drawable {
	var out []Drawable
	spin := mgl32.HomogRotate3DY(coinSpin * time)
	for _, c := range coins {
		if c.Collected {
			continue
		}
		out = append(out, Drawable{
			Mesh:    MeshCoin,
			Texture: TextureCoin,
			Model:   mgl32.Translate3D(c.Position.Elem()).Mul4(spin),
		})
	}
	return out
}

// SunDrawable places the sun sphere at the sun light.
func SunDrawable(position mgl32.Vec3) Drawable {
	return Drawable{
		Mesh:    MeshSphere,
		Texture: TextureSun,
		Model:   mgl32.Translate3D(position.Elem()).Mul4(mgl32.Scale3D(sunScale, sunScale, sunScale)),
	}
}

// SkyDrawable centres the dome on the eye.
func SkyDrawable(eye mgl32.Vec3) Drawable {
	return Drawable{
		Mesh:  MeshSphere,
		Model: mgl32.Translate3D(eye.Elem()).Mul4(mgl32.Scale3D(skyScale, skyScale, skyScale)),
	}
}

// CloudBoxDrawable is the unit cube scaled to the cloud volume.
func CloudBoxDrawable(center, size mgl32.Vec3) Drawable {
	return Drawable{
		Mesh:  MeshCube,
		Model: mgl32.Translate3D(center.Elem()).Mul4(mgl32.Scale3D(size.Elem())),
	}
}
