// Package config loads the TOML settings file, binds command-line flags and
// watches the file for live edits.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"skyscape/core"
)

// Settings mirrors the settings file.
type Settings struct {
	Window   WindowSettings   `toml:"window"`
	Terrain  TerrainSettings  `toml:"terrain"`
	Clouds   CloudSettings    `toml:"clouds"`
	DayNight DayNightSettings `toml:"daynight"`
	Post     PostSettings     `toml:"post"`
	Toggles  ToggleSettings   `toml:"toggles"`
	Server   ServerSettings   `toml:"server"`
}

type WindowSettings struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type TerrainSettings struct {
	// Size is the height field side length. Changing it needs a restart.
	Size int `toml:"size"`
	// Volume is the density field size. Changing it needs a restart.
	Volume           [3]int     `toml:"volume"`
	Noise            string     `toml:"noise"`
	Seed             int64      `toml:"seed"`
	Frequency        float32    `toml:"frequency"`
	Amplitude        float32    `toml:"amplitude"`
	DensityFrequency float32    `toml:"density_frequency"`
	Grass            [2]float32 `toml:"grass"`
	Rock             [2]float32 `toml:"rock"`
	Snow             [2]float32 `toml:"snow"`
	BandBlend        float32    `toml:"band_blend"`
}

type CloudSettings struct {
	Density float32    `toml:"density"`
	SigmaA  float32    `toml:"sigma_a"`
	SigmaS  float32    `toml:"sigma_s"`
	G       float32    `toml:"g"`
	Samples int        `toml:"samples"`
	Wind    [2]float32 `toml:"wind"`
}

type DayNightSettings struct {
	TimeScale float32 `toml:"time_scale"`
}

type PostSettings struct {
	Tint         [3]float32 `toml:"tint"`
	TintStrength float32    `toml:"tint_strength"`
	Brightness   float32    `toml:"brightness"`
	Contrast     float32    `toml:"contrast"`
	Saturation   float32    `toml:"saturation"`
}

type ToggleSettings struct {
	Shadows        bool `toml:"shadows"`
	PostProcessing bool `toml:"post_processing"`
	Time           bool `toml:"time"`
	Gravity        bool `toml:"gravity"`
	Debug          bool `toml:"debug"`
	Wireframe      bool `toml:"wireframe"`
	Flight         bool `toml:"flight"`
}

type ServerSettings struct {
	// Addr is the tuning server listen address; empty disables it.
	Addr             string `toml:"addr"`
	UpdateIntervalMs int    `toml:"update_interval_ms"`
}

// Default returns the settings the renderer starts with when no file exists.
func Default() Settings {
	p := core.DefaultSceneParameters()
	t := p.Terrain
	return Settings{
		Window: WindowSettings{Width: 1280, Height: 720, Title: "skyscape", VSync: true},
		Terrain: TerrainSettings{
			Size:             50,
			Volume:           [3]int{100, 50, 100},
			Noise:            "simplex",
			Seed:             0,
			Frequency:        t.Frequency,
			Amplitude:        t.Amplitude,
			DensityFrequency: t.DensityFrequency,
			Grass:            [2]float32{t.Grass.Min, t.Grass.Max},
			Rock:             [2]float32{t.Rock.Min, t.Rock.Max},
			Snow:             [2]float32{t.Snow.Min, t.Snow.Max},
			BandBlend:        t.BandBlend,
		},
		Clouds: CloudSettings{
			Density: p.Clouds.Density,
			SigmaA:  p.Clouds.SigmaA,
			SigmaS:  p.Clouds.SigmaS,
			G:       p.Clouds.G,
			Samples: p.Clouds.Samples,
			Wind:    [2]float32(p.Clouds.Wind),
		},
		DayNight: DayNightSettings{TimeScale: p.TimeScale},
		Post: PostSettings{
			Tint:         [3]float32(p.Post.Tint),
			TintStrength: p.Post.TintStrength,
			Brightness:   p.Post.Brightness,
			Contrast:     p.Post.Contrast,
			Saturation:   p.Post.Saturation,
		},
		Toggles: ToggleSettings{
			Shadows:        p.Toggles.Shadows,
			PostProcessing: p.Toggles.PostProcessing,
			Time:           p.Toggles.Time,
			Gravity:        p.Toggles.Gravity,
			Debug:          p.Toggles.Debug,
			Wireframe:      p.Toggles.Wireframe,
			Flight:         p.Toggles.FlightMode,
		},
		Server: ServerSettings{UpdateIntervalMs: 100},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("no settings file, using defaults", "path", path)
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	slog.Info("loaded settings", "path", path, "terrain", s.Terrain.Size, "noise", s.Terrain.Noise)
	return s, nil
}

// Save writes s to path.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Apply writes the tunable sections into p. Window, grid sizes, noise
// source and server settings are left alone. Values go through the same
// control table as live edits; out of range values are clamped and logged.
func (s Settings) Apply(p *core.SceneParameters) {
	for _, v := range s.floats() {
		clamped, err := core.ClampFloat(v.key, v.value)
		if err != nil {
			slog.Warn("ignored setting", "key", v.key, "err", err)
			continue
		}
		if clamped != v.value {
			slog.Warn("setting out of range, clamped", "key", v.key, "value", v.value, "clamped", clamped)
		}
		if err := p.SetFloat(v.key, clamped); err != nil {
			slog.Warn("ignored setting", "key", v.key, "err", err)
		}
	}
	for _, v := range s.bools() {
		if err := p.SetBool(v.key, v.value); err != nil {
			slog.Warn("ignored setting", "key", v.key, "err", err)
		}
	}
}

type floatSetting struct {
	key   string
	value float64
}

type boolSetting struct {
	key   string
	value bool
}

func (s Settings) floats() []floatSetting {
	t, c, post := s.Terrain, s.Clouds, s.Post
	f := func(key string, v float32) floatSetting { return floatSetting{key, float64(v)} }
	return []floatSetting{
		f("terrain.frequency", t.Frequency),
		f("terrain.amplitude", t.Amplitude),
		f("terrain.density_frequency", t.DensityFrequency),
		f("terrain.grass_min", t.Grass[0]),
		f("terrain.grass_max", t.Grass[1]),
		f("terrain.rock_min", t.Rock[0]),
		f("terrain.rock_max", t.Rock[1]),
		f("terrain.snow_min", t.Snow[0]),
		f("terrain.snow_max", t.Snow[1]),
		f("terrain.band_blend", t.BandBlend),

		f("clouds.density", c.Density),
		f("clouds.sigma_a", c.SigmaA),
		f("clouds.sigma_s", c.SigmaS),
		f("clouds.g", c.G),
		{"clouds.samples", float64(c.Samples)},
		f("clouds.wind_x", c.Wind[0]),
		f("clouds.wind_z", c.Wind[1]),

		f("time.scale", s.DayNight.TimeScale),

		f("post.tint_r", post.Tint[0]),
		f("post.tint_g", post.Tint[1]),
		f("post.tint_b", post.Tint[2]),
		f("post.tint_strength", post.TintStrength),
		f("post.brightness", post.Brightness),
		f("post.contrast", post.Contrast),
		f("post.saturation", post.Saturation),
	}
}

func (s Settings) bools() []boolSetting {
	t := s.Toggles
	return []boolSetting{
		{"toggles.shadows", t.Shadows},
		{"toggles.post_processing", t.PostProcessing},
		{"toggles.time", t.Time},
		{"toggles.gravity", t.Gravity},
		{"toggles.debug", t.Debug},
		{"toggles.wireframe", t.Wireframe},
		{"toggles.flight", t.Flight},
	}
}

// Params is the default scene with s applied.
func (s Settings) Params() core.SceneParameters {
	p := core.DefaultSceneParameters()
	s.Apply(&p)
	return p
}

// Patch is a command that applies s inside the frame loop.
func (s Settings) Patch() core.Command {
	return core.Command{Kind: core.CommandPatch, Patch: s.Apply}
}

// RestartRequired reports whether moving from s to next changes a value
// that is only read at startup.
func (s Settings) RestartRequired(next Settings) bool {
	return s.Window != next.Window ||
		s.Terrain.Size != next.Terrain.Size ||
		s.Terrain.Volume != next.Terrain.Volume ||
		s.Terrain.Noise != next.Terrain.Noise ||
		s.Terrain.Seed != next.Terrain.Seed ||
		s.Server != next.Server
}
