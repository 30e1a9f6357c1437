package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLerpEndpoints(t *testing.T) {
	tests := []struct {
		name string
		a, b float32
		t    float32
		want float32
	}{
		{"start", 2, 8, 0, 2},
		{"end", 2, 8, 1, 8},
		{"below range", 2, 8, -3, 2},
		{"above range", 2, 8, 4.5, 8},
		{"middle", 2, 8, 0.5, 5},
		{"descending", 1, -1, 0.25, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lerp(tt.a, tt.b, tt.t))
		})
	}
}

func TestLerpVecMatchesScalar(t *testing.T) {
	a := mgl32.Vec4{0.95, 0.25, 0.24, 1}
	b := mgl32.Vec4{0.96, 0.84, 0.72, 1}
	got := LerpVec4(a, b, 0.3)
	for i := range got {
		assert.Equal(t, Lerp(a[i], b[i], 0.3), got[i])
	}
	assert.Equal(t, b.Vec3(), LerpVec3(a.Vec3(), b.Vec3(), 2))
}

func TestClampVec3(t *testing.T) {
	got := ClampVec3(mgl32.Vec3{-250, 12, 101}, -100, 100)
	assert.Equal(t, mgl32.Vec3{-100, 12, 100}, got)
}

func TestEffectiveDiffuse(t *testing.T) {
	l := DefaultLights()[SunLight]
	l.Intensity = 2
	assert.Equal(t, l.Diffuse, l.EffectiveDiffuse())

	l.Intensity = 0.5
	got := l.EffectiveDiffuse()
	assert.InDelta(t, l.Diffuse[0]*0.5, got[0], 1e-6)
	assert.Equal(t, l.Diffuse[3], got[3])

	l.Intensity = -1
	l.ClampIntensity()
	assert.Equal(t, float32(0), l.Intensity)
}

func TestLerpMonotonic(t *testing.T) {
	pairs := []struct{ a, b float32 }{
		{2, 8},
		{8, 2},
		{-1, 1},
		{0.95, 0.003},
		{-100, 100},
	}
	const steps = 200
	for _, pr := range pairs {
		prev := Lerp(pr.a, pr.b, 0)
		for i := 1; i <= steps; i++ {
			tt := float32(i) / steps
			got := Lerp(pr.a, pr.b, tt)
			if pr.a < pr.b {
				assert.GreaterOrEqual(t, got, prev, "a=%v b=%v t=%v", pr.a, pr.b, tt)
			} else {
				assert.LessOrEqual(t, got, prev, "a=%v b=%v t=%v", pr.a, pr.b, tt)
			}
			prev = got
		}
	}
}

func TestLerpVecMonotonicPerComponent(t *testing.T) {
	a := mgl32.Vec4{0.95, 0.25, 0.24, 1}
	b := mgl32.Vec4{0.003, 0.403, 0.831, 0.5}
	const steps = 100
	prev4 := LerpVec4(a, b, 0)
	prev3 := LerpVec3(a.Vec3(), b.Vec3(), 0)
	for i := 1; i <= steps; i++ {
		tt := float32(i) / steps
		got4 := LerpVec4(a, b, tt)
		got3 := LerpVec3(a.Vec3(), b.Vec3(), tt)
		for c := range got4 {
			if a[c] < b[c] {
				assert.GreaterOrEqual(t, got4[c], prev4[c], "component %d t=%v", c, tt)
			} else {
				assert.LessOrEqual(t, got4[c], prev4[c], "component %d t=%v", c, tt)
			}
		}
		for c := range got3 {
			if a[c] < b[c] {
				assert.GreaterOrEqual(t, got3[c], prev3[c], "component %d t=%v", c, tt)
			} else {
				assert.LessOrEqual(t, got3[c], prev3[c], "component %d t=%v", c, tt)
			}
		}
		prev4, prev3 = got4, got3
	}
}
