package terrain

import (
	"fmt"
	"log/slog"
	"time"

	"skyscape/core"
)

// Uploader pushes field data to the GPU textures sampled by the terrain and
// cloud shaders.
type Uploader interface {
	UploadHeight(size int, data []float32) error
	UploadDensity(x, y, z int, data []float32) error
}

// NoiseField owns the height field and the cloud density volume. Every
// mutation re-uploads the affected texture before returning, so the next
// frame always samples current data.
type NoiseField struct {
	src      Source
	height   *HeightField
	density  *DensityField
	uploader Uploader
}

// NewNoiseField creates flat fields of the given sizes. uploader may be nil
// when no GPU is attached.
func NewNoiseField(src Source, size int, volume [3]int, uploader Uploader) *NoiseField {
	return &NoiseField{
		src:      src,
		height:   NewHeightField(size),
		density:  NewDensityField(volume[0], volume[1], volume[2]),
		uploader: uploader,
	}
}

// Init generates the startup terrain: density volume, height field, then two
// smoothing passes.
func (f *NoiseField) Init(p core.TerrainParams) error {
	if err := f.GenerateDensity(p.DensityFrequency); err != nil {
		return err
	}
	if err := f.GenerateHeight(p.Frequency, p.Amplitude); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if err := f.SmoothHeight(); err != nil {
			return err
		}
	}
	return nil
}

// GenerateHeight regenerates the height field and uploads it.
func (f *NoiseField) GenerateHeight(frequency, amplitude float32) error {
	start := time.Now()
	f.height.Generate(f.src, frequency, amplitude)
	slog.Debug("height field generated", "size", f.height.Size(), "frequency", frequency,
		"amplitude", amplitude, "took", time.Since(start))
	return f.uploadHeight()
}

// SmoothHeight applies one 3×3 box filter pass and uploads the result.
func (f *NoiseField) SmoothHeight() error {
	f.height.Smooth()
	return f.uploadHeight()
}

// GenerateDensity regenerates the cloud volume and uploads it.
func (f *NoiseField) GenerateDensity(frequency float32) error {
	start := time.Now()
	f.density.Generate(f.src, frequency)
	x, y, z := f.density.Size()
	slog.Debug("density field generated", "x", x, "y", y, "z", z, "frequency", frequency,
		"took", time.Since(start))
	if f.uploader == nil {
		return nil
	}
	if err := f.uploader.UploadDensity(x, y, z, f.density.Data()); err != nil {
		return fmt.Errorf("upload density texture: %w", err)
	}
	return nil
}

func (f *NoiseField) uploadHeight() error {
	if f.uploader == nil {
		return nil
	}
	if err := f.uploader.UploadHeight(f.height.Size(), f.height.Data()); err != nil {
		return fmt.Errorf("upload height texture: %w", err)
	}
	return nil
}

// HeightAt returns the terrain height at world position (x, z), clamped to
// the field.
func (f *NoiseField) HeightAt(x, z float32) float32 {
	return f.height.HeightAt(x, z)
}

// Height returns the live height field. It changes on every regeneration.
func (f *NoiseField) Height() *HeightField { return f.height }

// Density returns the live density volume.
func (f *NoiseField) Density() *DensityField { return f.density }

// Snapshot copies the current height field for the camera.
func (f *NoiseField) Snapshot() *HeightField { return f.height.Snapshot() }
