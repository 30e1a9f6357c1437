package config

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

// Config is the command line. Flags that are set override the settings
// file.
type Config struct {
	Path     string
	Width    int
	Height   int
	Noise    string
	Seed     int64
	Serve    string
	Assets   string
	LogLevel string
	Watch    bool

	set map[string]bool
}

// Bind registers the flags on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Path, "config", "settings.toml", "settings file")
	fs.IntVar(&c.Width, "width", 0, "window width (overrides settings)")
	fs.IntVar(&c.Height, "height", 0, "window height (overrides settings)")
	fs.StringVar(&c.Noise, "noise", "", "noise source: simplex or perlin")
	fs.Int64Var(&c.Seed, "seed", 0, "noise seed")
	fs.StringVar(&c.Serve, "serve", "", "tuning server address, e.g. localhost:8080")
	fs.StringVar(&c.Assets, "res", "res", "texture directory")
	fs.StringVar(&c.LogLevel, "log-level", "info", "debug, info, warn or error")
	fs.BoolVar(&c.Watch, "watch", true, "reload the settings file when it changes")
}

// Parse parses args and records which flags were given.
func (c *Config) Parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.set[f.Name] = true })
	return nil
}

// Override applies the flags given on the command line to s.
func (c *Config) Override(s *Settings) {
	if c.set["width"] && c.Width > 0 {
		s.Window.Width = c.Width
	}
	if c.set["height"] && c.Height > 0 {
		s.Window.Height = c.Height
	}
	if c.set["noise"] {
		s.Terrain.Noise = c.Noise
	}
	if c.set["seed"] {
		s.Terrain.Seed = c.Seed
	}
	if c.set["serve"] {
		s.Server.Addr = c.Serve
	}
}

// Level maps LogLevel onto a slog level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}
