package terrain

import (
	"errors"
	"fmt"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// ErrUnknownNoise is returned by NewSource for an unrecognised backend name.
var ErrUnknownNoise = errors.New("unknown noise backend")

const (
	lacunarity  = 2.0
	persistence = 0.5

	// degenerateEpsilon replaces a zero frequency or amplitude.
	degenerateEpsilon = 0.001
)

// Source is single-octave gradient noise with output in roughly [-1, 1].
// Implementations must be safe for concurrent reads.
type Source interface {
	Eval2(x, y float64) float64
	Eval3(x, y, z float64) float64
}

type simplexSource struct {
	noise opensimplex.Noise
}

// NewSimplexSource returns OpenSimplex noise for seed.
func NewSimplexSource(seed int64) Source {
	return simplexSource{noise: opensimplex.New(seed)}
}

func (s simplexSource) Eval2(x, y float64) float64    { return s.noise.Eval2(x, y) }
func (s simplexSource) Eval3(x, y, z float64) float64 { return s.noise.Eval3(x, y, z) }

type perlinSource struct {
	p *perlin.Perlin
}

// NewPerlinSource returns classic Perlin noise for seed. Octaves are summed
// by Fractal2/Fractal3, so the library is asked for a single one.
func NewPerlinSource(seed int64) Source {
	return perlinSource{p: perlin.NewPerlin(2, 2, 1, seed)}
}

func (s perlinSource) Eval2(x, y float64) float64    { return s.p.Noise2D(x, y) }
func (s perlinSource) Eval3(x, y, z float64) float64 { return s.p.Noise3D(x, y, z) }

// NewSource picks a noise backend by name: "simplex" or "perlin".
func NewSource(name string, seed int64) (Source, error) {
	switch name {
	case "", "simplex":
		return NewSimplexSource(seed), nil
	case "perlin":
		return NewPerlinSource(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNoise, name)
	}
}

// Fractal2 sums octaves of src starting at frequency, doubling frequency and
// halving amplitude each octave. The sum is normalised by the total
// amplitude and clamped, so the result lies in [-1, 1].
func Fractal2(src Source, octaves int, frequency, x, y float64) float64 {
	if octaves <= 0 {
		return 0
	}
	var sum, norm float64
	amp, f := 1.0, frequency
	for i := 0; i < octaves; i++ {
		sum += amp * src.Eval2(x*f, y*f)
		norm += amp
		f *= lacunarity
		amp *= persistence
	}
	return clampUnit(sum / norm)
}

// Fractal3 is the three-dimensional form of Fractal2.
func Fractal3(src Source, octaves int, frequency, x, y, z float64) float64 {
	if octaves <= 0 {
		return 0
	}
	var sum, norm float64
	amp, f := 1.0, frequency
	for i := 0; i < octaves; i++ {
		sum += amp * src.Eval3(x*f, y*f, z*f)
		norm += amp
		f *= lacunarity
		amp *= persistence
	}
	return clampUnit(sum / norm)
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// nonZero substitutes degenerateEpsilon for an exact zero.
func nonZero(v float32) float32 {
	if v == 0 {
		return degenerateEpsilon
	}
	return v
}
