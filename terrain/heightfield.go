package terrain

import "math"

const (
	heightOctaves = 15
	heightScale   = 0.01
)

// HeightField is a square grid of terrain heights, row-major by z.
type HeightField struct {
	size int
	data []float32
}

// NewHeightField allocates a flat size×size field. size must be positive.
func NewHeightField(size int) *HeightField {
	if size <= 0 {
		panic("terrain: height field size must be positive")
	}
	return &HeightField{size: size, data: make([]float32, size*size)}
}

// Size is the number of samples along each axis.
func (h *HeightField) Size() int { return h.size }

// Data exposes the backing samples for upload. Callers must not modify it.
func (h *HeightField) Data() []float32 { return h.data }

// At returns the sample at (x, z) with each index clamped to [0, size-1].
func (h *HeightField) At(x, z int) float32 {
	x = clampIndex(x, h.size)
	z = clampIndex(z, h.size)
	return h.data[z*h.size+x]
}

// Set writes the sample at (x, z). Out-of-range indices are ignored.
func (h *HeightField) Set(x, z int, v float32) {
	if x < 0 || z < 0 || x >= h.size || z >= h.size {
		return
	}
	h.data[z*h.size+x] = v
}

// HeightAt returns the height of the grid cell containing world position
// (x, z), clamped to the field.
func (h *HeightField) HeightAt(x, z float32) float32 {
	return h.At(int(math.Floor(float64(x))), int(math.Floor(float64(z))))
}

// Snapshot returns an independent copy for readers outside the frame loop
// such as the camera.
func (h *HeightField) Snapshot() *HeightField {
	c := &HeightField{size: h.size, data: make([]float32, len(h.data))}
	copy(c.data, h.data)
	return c
}

// Generate fills the field with fractal noise. A zero frequency or amplitude
// is replaced by a small epsilon so the field is never degenerate. Every
// sample satisfies |h| <= |amplitude|.
func (h *HeightField) Generate(src Source, frequency, amplitude float32) {
	freq := float64(nonZero(frequency))
	amp := nonZero(amplitude)
	n := h.size
	parallelRows(n, func(z int) {
		row := h.data[z*n : (z+1)*n]
		for x := range row {
			v := Fractal2(src, heightOctaves, freq, float64(x)*heightScale, float64(z)*heightScale)
			row[x] = amp * float32(v)
		}
	})
}

// Smooth replaces each sample with the mean of its in-bounds 3×3
// neighbourhood. Edge and corner cells average fewer samples.
func (h *HeightField) Smooth() {
	n := h.size
	out := make([]float32, len(h.data))
	parallelRows(n, func(z int) {
		for x := 0; x < n; x++ {
			var sum float64
			count := 0
			for dz := -1; dz <= 1; dz++ {
				zz := z + dz
				if zz < 0 || zz >= n {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					xx := x + dx
					if xx < 0 || xx >= n {
						continue
					}
					sum += float64(h.data[zz*n+xx])
					count++
				}
			}
			out[z*n+x] = float32(sum / float64(count))
		}
	})
	h.data = out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
