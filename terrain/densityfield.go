package terrain

const (
	densityOctaves = 10
	densityScale   = 0.5
)

// DensityField is a 3D scalar volume sampled by the cloud raymarch. Samples
// are laid out x fastest, then y, then z.
type DensityField struct {
	sx, sy, sz int
	data       []float32
}

// NewDensityField allocates an empty volume. Dimensions must be positive.
func NewDensityField(x, y, z int) *DensityField {
	if x <= 0 || y <= 0 || z <= 0 {
		panic("terrain: density field dimensions must be positive")
	}
	return &DensityField{sx: x, sy: y, sz: z, data: make([]float32, x*y*z)}
}

// Size returns the volume dimensions.
func (d *DensityField) Size() (x, y, z int) { return d.sx, d.sy, d.sz }

// Data exposes the backing samples for upload. Callers must not modify it.
func (d *DensityField) Data() []float32 { return d.data }

func (d *DensityField) index(x, y, z int) int {
	return z*d.sx*d.sy + y*d.sx + x
}

// At returns the sample at (x, y, z), clamping each index into the volume.
func (d *DensityField) At(x, y, z int) float32 {
	return d.data[d.index(clampIndex(x, d.sx), clampIndex(y, d.sy), clampIndex(z, d.sz))]
}

// Generate fills the volume with fractal noise in [-1, 1]. A zero frequency
// is replaced by a small epsilon.
func (d *DensityField) Generate(src Source, frequency float32) {
	freq := float64(nonZero(frequency))
	parallelRows(d.sz, func(z int) {
		for y := 0; y < d.sy; y++ {
			for x := 0; x < d.sx; x++ {
				v := Fractal3(src, densityOctaves, freq,
					float64(x)*densityScale, float64(y)*densityScale, float64(z)*densityScale)
				d.data[d.index(x, y, z)] = float32(v)
			}
		}
	})
}
