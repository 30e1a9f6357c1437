package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"skyscape/config"
	"skyscape/core"
	"skyscape/rendering"
	"skyscape/rendering/opengl"
	"skyscape/server"
	"skyscape/terrain"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("skyscape stopped", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var cfg config.Config
	fs := flag.NewFlagSet("skyscape", flag.ExitOnError)
	cfg.Bind(fs)
	if err := cfg.Parse(fs, args); err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	settings, err := config.Load(cfg.Path)
	if err != nil {
		return err
	}
	cfg.Override(&settings)

	src, err := terrain.NewSource(settings.Terrain.Noise, settings.Terrain.Seed)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	commands := core.NewCommandQueue(64)
	telemetry := &core.TelemetryStore{}

	renderer, err := opengl.NewRenderer(opengl.Options{
		Width:       settings.Window.Width,
		Height:      settings.Window.Height,
		Title:       settings.Window.Title,
		VSync:       settings.Window.VSync,
		TerrainSize: settings.Terrain.Size,
		AssetDir:    cfg.Assets,
		Commands:    commands,
	})
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Terminate()

	params := settings.Params()
	field := terrain.NewNoiseField(src, settings.Terrain.Size, settings.Terrain.Volume, renderer.FieldTextures())
	start := time.Now()
	if err := field.Init(params.Terrain); err != nil {
		return fmt.Errorf("generate terrain: %w", err)
	}
	slog.Info("terrain generated", "size", settings.Terrain.Size, "volume", settings.Terrain.Volume,
		"noise", settings.Terrain.Noise, "took", time.Since(start))

	width, height := renderer.Size()
	orchestrator := rendering.NewOrchestrator(rendering.OrchestratorConfig{
		Params:    params,
		Field:     field,
		Passes:    renderer,
		Commands:  commands,
		Telemetry: telemetry,
		Width:     width,
		Height:    height,
	})

	if addr := settings.Server.Addr; addr != "" {
		srv := server.New(commands, telemetry, time.Duration(settings.Server.UpdateIntervalMs)*time.Millisecond)
		go func() {
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				slog.Error("tuning server stopped", "err", err)
			}
		}()
	}

	if cfg.Watch {
		current := settings
		err := config.Watch(ctx, cfg.Path, func(next config.Settings) {
			cfg.Override(&next)
			if current.RestartRequired(next) {
				slog.Warn("settings change needs a restart to take full effect", "path", cfg.Path)
			}
			current = next
			if !commands.Push(next.Patch()) {
				slog.Warn("command queue full, settings reload dropped")
			}
		})
		if err != nil {
			slog.Warn("settings hot reload disabled", "err", err)
		}
	}

	slog.Info("controls",
		"move", "WASD, Q/E down/up in flight, arrows or drag to look",
		"toggles", "1 shadows, 2 post, T time, G gravity, F flight, V wireframe, F1 overlay",
		"actions", "R reset time, H regenerate height, J smooth, K regenerate density, Esc quit")

	last := renderer.Time()
	for !renderer.ShouldClose() {
		renderer.PollEvents()

		now := renderer.Time()
		dt := float32(now - last)
		last = now

		if renderer.Resized() {
			orchestrator.Resize(renderer.Size())
		}
		if err := orchestrator.Frame(dt, renderer.Intent()); err != nil {
			return err
		}
	}

	slog.Info("shutting down")
	return nil
}
