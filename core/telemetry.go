package core

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// Telemetry is the read-out published once per frame for overlays and the
// tuning server.
type Telemetry struct {
	FrameTime      float32            `json:"frameTime"`
	FPS            float32            `json:"fps"`
	ElapsedTime    float32            `json:"elapsedTime"`
	TimeOfDay      float32            `json:"timeOfDay"`
	IsNight        bool               `json:"isNight"`
	CameraPosition mgl32.Vec3         `json:"cameraPosition"`
	CameraRotation mgl32.Vec3         `json:"cameraRotation"`
	SunPosition    mgl32.Vec3         `json:"sunPosition"`
	SunDirection   mgl32.Vec3         `json:"sunDirection"`
	SunIntensity   float32            `json:"sunIntensity"`
	CoinsCollected int                `json:"coinsCollected"`
	CoinsTotal     int                `json:"coinsTotal"`
	Finished       bool               `json:"finished"`
	Values         map[string]float64 `json:"values"`
}

// TelemetryStore hands the latest Telemetry from the frame loop to readers on
// other goroutines.
type TelemetryStore struct {
	v atomic.Pointer[Telemetry]
}

// Store publishes t. The caller must not modify t afterwards.
func (s *TelemetryStore) Store(t *Telemetry) {
	s.v.Store(t)
}

// Load returns the latest snapshot, or nil before the first frame.
func (s *TelemetryStore) Load() *Telemetry {
	return s.v.Load()
}
