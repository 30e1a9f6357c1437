package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ojrac/opensimplex-go"
	"golang.org/x/image/draw"
)

// Texture names.
const (
	TextureGrass   = "grass"
	TextureRock    = "rock"
	TextureSnow    = "snow"
	TextureCottage = "cottage"
	TextureLamp    = "lamp"
	TextureCoin    = "coin"
	TextureSun     = "sun"
)

// TextureSize is the side length every texture is normalised to.
const TextureSize = 512

var textureExtensions = []string{".png", ".jpg", ".jpeg"}

// swatch is the procedural stand-in for a missing texture: a base colour
// modulated by noise.
type swatch struct {
	base      color.RGBA
	variation float32
	scale     float64
}

var swatches = map[string]swatch{
	TextureGrass:   {base: color.RGBA{74, 120, 46, 255}, variation: 0.25, scale: 0.05},
	TextureRock:    {base: color.RGBA{112, 104, 96, 255}, variation: 0.35, scale: 0.03},
	TextureSnow:    {base: color.RGBA{236, 240, 246, 255}, variation: 0.05, scale: 0.02},
	TextureCottage: {base: color.RGBA{128, 86, 52, 255}, variation: 0.2, scale: 0.2},
	TextureLamp:    {base: color.RGBA{48, 48, 52, 255}, variation: 0.1, scale: 0.1},
	TextureCoin:    {base: color.RGBA{230, 184, 40, 255}, variation: 0.1, scale: 0.08},
	TextureSun:     {base: color.RGBA{255, 240, 210, 255}, variation: 0, scale: 1},
}

// TextureNames lists every texture the renderer asks for.
func TextureNames() []string {
	return []string{TextureGrass, TextureRock, TextureSnow, TextureCottage, TextureLamp, TextureCoin, TextureSun}
}

// LoadTextures reads <dir>/<name>.{png,jpg,jpeg} for every texture name and
// normalises each to size×size RGBA. Missing files fall back to a
// procedural swatch; files that exist but fail to decode are errors.
func LoadTextures(dir string, size int) (map[string]*image.RGBA, error) {
	out := make(map[string]*image.RGBA, len(swatches))
	for _, name := range TextureNames() {
		img, err := loadTexture(dir, name, size)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Debug("texture missing, using procedural swatch", "name", name, "dir", dir)
			img = Procedural(name, size)
		case err != nil:
			return nil, err
		}
		out[name] = img
	}
	return out, nil
}

func loadTexture(dir, name string, size int) (*image.RGBA, error) {
	if dir == "" {
		return nil, fs.ErrNotExist
	}
	for _, ext := range textureExtensions {
		path := filepath.Join(dir, name+ext)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open texture %s: %w", path, err)
		}
		src, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode texture %s: %w", path, err)
		}
		return Normalize(src, size), nil
	}
	return nil, fs.ErrNotExist
}

// Normalize converts src to RGBA and rescales it to size×size.
func Normalize(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	if src.Bounds().Dx() == size && src.Bounds().Dy() == size {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Procedural renders the fallback swatch for name. Unknown names get a
// magenta checkerboard.
func Procedural(name string, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	sw, ok := swatches[name]
	if !ok {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				c := color.RGBA{255, 0, 255, 255}
				if (x/32+y/32)%2 == 1 {
					c = color.RGBA{0, 0, 0, 255}
				}
				img.SetRGBA(x, y, c)
			}
		}
		return img
	}

	noise := opensimplex.NewNormalized(int64(len(name)))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := float32(noise.Eval2(float64(x)*sw.scale, float64(y)*sw.scale))
			k := 1 + sw.variation*(2*n-1)
			img.SetRGBA(x, y, color.RGBA{
				R: shade(sw.base.R, k),
				G: shade(sw.base.G, k),
				B: shade(sw.base.B, k),
				A: 255,
			})
		}
	}
	return img
}

func shade(c uint8, k float32) uint8 {
	v := float32(c) * k
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
