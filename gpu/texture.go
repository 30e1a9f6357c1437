package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrTextureUpload wraps a GL error raised while filling a texture.
var ErrTextureUpload = errors.New("texture upload failed")

// Texture2D is a 2D texture. Colour textures are RGBA8 with mipmaps, field
// textures are single-channel R32F.
type Texture2D struct {
	id            uint32
	width, height int
	format        int32
}

// NewColorTexture uploads img as a repeating, mipmapped RGBA8 texture.
func NewColorTexture(img *image.RGBA) (*Texture2D, error) {
	b := img.Bounds()
	t := &Texture2D{width: b.Dx(), height: b.Dy(), format: gl.RGBA8}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.width), int32(t.height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if err := checkError("color texture"); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

// NewFieldTexture allocates an R32F texture with linear filtering and
// clamped edges, the layout the terrain displacement shaders sample.
func NewFieldTexture(width, height int) *Texture2D {
	t := &Texture2D{width: width, height: height, format: gl.R32F}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R32F, int32(width), int32(height), 0, gl.RED, gl.FLOAT, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// Upload replaces the whole texture. data must hold width×height samples.
func (t *Texture2D) Upload(data []float32) error {
	if len(data) != t.width*t.height {
		return fmt.Errorf("%w: got %d samples for %dx%d", ErrTextureUpload, len(data), t.width, t.height)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(t.width), int32(t.height), gl.RED, gl.FLOAT, gl.Ptr(data))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return checkError("field texture")
}

// Bind attaches t to texture unit unit.
func (t *Texture2D) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Size returns the texture dimensions.
func (t *Texture2D) Size() (int, int) { return t.width, t.height }

// Release deletes the texture.
func (t *Texture2D) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// Texture3D is a single-channel R32F volume sampled with nearest filtering
// and repeat wrapping.
type Texture3D struct {
	id      uint32
	x, y, z int
}

// NewVolumeTexture allocates an empty volume.
func NewVolumeTexture(x, y, z int) *Texture3D {
	t := &Texture3D{x: x, y: y, z: z}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_3D, t.id)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage3D(gl.TEXTURE_3D, 0, gl.R32F, int32(x), int32(y), int32(z), 0, gl.RED, gl.FLOAT, nil)
	gl.BindTexture(gl.TEXTURE_3D, 0)
	return t
}

// Upload replaces the whole volume, x fastest then y then z.
func (t *Texture3D) Upload(data []float32) error {
	if len(data) != t.x*t.y*t.z {
		return fmt.Errorf("%w: got %d samples for %dx%dx%d", ErrTextureUpload, len(data), t.x, t.y, t.z)
	}
	gl.BindTexture(gl.TEXTURE_3D, t.id)
	gl.TexSubImage3D(gl.TEXTURE_3D, 0, 0, 0, 0, int32(t.x), int32(t.y), int32(t.z), gl.RED, gl.FLOAT, gl.Ptr(data))
	gl.BindTexture(gl.TEXTURE_3D, 0)
	return checkError("volume texture")
}

func (t *Texture3D) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_3D, t.id)
}

func (t *Texture3D) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// FieldTextures receives the noise field uploads. Textures are created on
// first upload and recreated when the field dimensions change.
type FieldTextures struct {
	Height  *Texture2D
	Density *Texture3D
}

func (f *FieldTextures) UploadHeight(size int, data []float32) error {
	if f.Height == nil || f.Height.width != size {
		if f.Height != nil {
			f.Height.Release()
		}
		f.Height = NewFieldTexture(size, size)
	}
	return f.Height.Upload(data)
}

func (f *FieldTextures) UploadDensity(x, y, z int, data []float32) error {
	if f.Density == nil || f.Density.x != x || f.Density.y != y || f.Density.z != z {
		if f.Density != nil {
			f.Density.Release()
		}
		f.Density = NewVolumeTexture(x, y, z)
	}
	return f.Density.Upload(data)
}

// Release deletes both textures.
func (f *FieldTextures) Release() {
	if f.Height != nil {
		f.Height.Release()
	}
	if f.Density != nil {
		f.Density.Release()
	}
}

func checkError(what string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%w: %s: gl error 0x%x", ErrTextureUpload, what, code)
	}
	return nil
}
