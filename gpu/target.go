package gpu

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrFramebufferIncomplete is returned when a framebuffer fails its
// completeness check.
var ErrFramebufferIncomplete = errors.New("framebuffer incomplete")

// TargetFormat selects a RenderTarget's colour attachment.
type TargetFormat int

const (
	// ColorHDR is an RGBA16F colour attachment.
	ColorHDR TargetFormat = iota
	// LinearDepth is a single R32F channel.
	LinearDepth
)

// RenderTarget is a framebuffer with one colour texture and a depth
// renderbuffer.
type RenderTarget struct {
	fbo, color, depth uint32
	width, height     int
	format            TargetFormat
}

// NewRenderTarget creates a complete framebuffer of the given size.
func NewRenderTarget(width, height int, format TargetFormat) (*RenderTarget, error) {
	t := &RenderTarget{width: width, height: height, format: format}
	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	internal, pixel := int32(gl.RGBA16F), uint32(gl.RGBA)
	if format == LinearDepth {
		internal, pixel = gl.R32F, gl.RED
	}
	gl.GenTextures(1, &t.color)
	gl.BindTexture(gl.TEXTURE_2D, t.color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, pixel, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.color, 0)

	gl.GenRenderbuffers(1, &t.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depth)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Release()
		return nil, fmt.Errorf("%w: %dx%d status 0x%x", ErrFramebufferIncomplete, width, height, status)
	}
	return t, nil
}

// Bind draws into t and sets the viewport to its size.
func (t *RenderTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.width), int32(t.height))
}

// BindTexture samples t's colour attachment from texture unit unit.
func (t *RenderTarget) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.color)
}

// Size returns the target dimensions.
func (t *RenderTarget) Size() (int, int) { return t.width, t.height }

// Release deletes the framebuffer and its attachments.
func (t *RenderTarget) Release() {
	if t.color != 0 {
		gl.DeleteTextures(1, &t.color)
	}
	if t.depth != 0 {
		gl.DeleteRenderbuffers(1, &t.depth)
	}
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
	}
	*t = RenderTarget{}
}

// ShadowMap is a depth-only framebuffer whose texture is sampled with
// hardware depth comparison.
type ShadowMap struct {
	fbo, depth uint32
	size       int
}

// NewShadowMap creates a size×size depth map.
func NewShadowMap(size int) (*ShadowMap, error) {
	s := &ShadowMap{size: size}
	gl.GenTextures(1, &s.depth)
	gl.BindTexture(gl.TEXTURE_2D, s.depth)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32F, int32(size), int32(size), 0,
		gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.GenFramebuffers(1, &s.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, s.depth, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		s.Release()
		return nil, fmt.Errorf("%w: shadow map %d status 0x%x", ErrFramebufferIncomplete, size, status)
	}
	return s, nil
}

// Bind targets the map, sets the viewport and clears depth.
func (s *ShadowMap) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.Viewport(0, 0, int32(s.size), int32(s.size))
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

// BindTexture samples the depth texture from texture unit unit.
func (s *ShadowMap) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, s.depth)
}

func (s *ShadowMap) Release() {
	if s.depth != 0 {
		gl.DeleteTextures(1, &s.depth)
	}
	if s.fbo != 0 {
		gl.DeleteFramebuffers(1, &s.fbo)
	}
	*s = ShadowMap{}
}
