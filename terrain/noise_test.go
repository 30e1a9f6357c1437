package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource(t *testing.T) {
	for _, name := range []string{"", "simplex", "perlin"} {
		src, err := NewSource(name, 7)
		require.NoError(t, err, name)
		assert.NotNil(t, src)
	}
	_, err := NewSource("worley", 7)
	assert.ErrorIs(t, err, ErrUnknownNoise)
}

func TestFractalRange(t *testing.T) {
	sources := map[string]Source{
		"simplex": NewSimplexSource(42),
		"perlin":  NewPerlinSource(42),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				x := float64(i) * 0.37
				v2 := Fractal2(src, 15, 3.6969, x, x*0.5)
				v3 := Fractal3(src, 10, 0.1, x, x*0.25, x*0.75)
				assert.LessOrEqual(t, v2, 1.0)
				assert.GreaterOrEqual(t, v2, -1.0)
				assert.LessOrEqual(t, v3, 1.0)
				assert.GreaterOrEqual(t, v3, -1.0)
			}
		})
	}
}

func TestFractalZeroOctaves(t *testing.T) {
	src := NewSimplexSource(1)
	assert.Equal(t, 0.0, Fractal2(src, 0, 1, 3, 4))
	assert.Equal(t, 0.0, Fractal3(src, -2, 1, 3, 4, 5))
}

func TestFractalDeterministic(t *testing.T) {
	a := NewSimplexSource(99)
	b := NewSimplexSource(99)
	assert.Equal(t, Fractal2(a, 8, 2, 1.5, 2.5), Fractal2(b, 8, 2, 1.5, 2.5))
}

func TestNonZero(t *testing.T) {
	assert.Equal(t, float32(0.001), nonZero(0))
	assert.Equal(t, float32(-3), nonZero(-3))
}
