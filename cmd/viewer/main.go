package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"model-viewer/internal/assets"
	"model-viewer/internal/cli"
	"model-viewer/internal/ctxlog"
	"model-viewer/internal/debug"
	"model-viewer/internal/download"
	"model-viewer/internal/graphics"
	"model-viewer/internal/lighting"
	"model-viewer/internal/logger"
	"model-viewer/internal/orbit"
	"model-viewer/internal/primitives"
	"model-viewer/internal/scene"
	"model-viewer/internal/ui"
	"model-viewer/internal/viewer"
	"model-viewer/internal/viewerconfig"
)

func main() {
	// Minimal logger until the config is read.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out io.Writer, args []string) error {
	opts, exit, err := cli.Parse(args, out)
	if err != nil || exit {
		return err
	}

	cfg, cfgErr := viewerconfig.Load(opts.ConfigPath)
	opts.Apply(&cfg)
	if opts.WriteConfig {
		if cfgErr != nil {
			return cfgErr
		}
		if err := viewerconfig.Save(opts.ConfigPath, cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", opts.ConfigPath)
		return nil
	}

	log, logErr := logger.New(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
	defer log.Close()
	slog.SetDefault(log.Logger)
	if logErr != nil {
		log.Warn("log file unavailable, logging to stderr", "err", logErr)
	}
	if cfgErr != nil {
		log.Warn("config ignored, using defaults", "path", opts.ConfigPath, "err", cfgErr)
	}
	ctx := ctxlog.WithLogger(context.Background(), log.Logger)

	lights := lighting.New(lighting.Options{Shadows: cfg.View.Shadows, ShadowMapSize: cfg.View.ShadowMapSize})
	registry, err := primitives.NewRegistry(filepath.Join(cfg.Asset.CacheDir, "meshes"), lights, log.Logger)
	if err != nil {
		return err
	}
	loader := assets.NewLoader(assets.Source{
		Dir:      cfg.Asset.Dir,
		BaseURL:  cfg.Asset.BaseURL,
		CacheDir: cfg.Asset.CacheDir,
		Client:   &download.Client{HTTP: &http.Client{Timeout: cfg.Asset.Timeout}},
	})

	engine := ui.New()
	engine.SetStylesheet(ui.DefaultStylesheet())
	if cfg.View.Stylesheet != "" {
		if err := engine.LoadCSS(cfg.View.Stylesheet); err != nil {
			log.Warn("stylesheet not loaded, using built-in", "path", cfg.View.Stylesheet, "err", err)
		}
	}

	sc := scene.New()
	sc.GroundVisible = cfg.View.GroundVisible
	sc.Lighting = lights
	overlay := debug.New(cfg.Debug.ShowFPS, cfg.Debug.ShowMemAlloc)
	overlay.ShowLog = cfg.Debug.ShowLog
	overlay.SetLogSource(log.Lines)

	var v *viewer.Viewer
	graphics.Run(graphics.Window{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		TargetFPS: cfg.Window.TargetFPS,
		MinWidth:  320,
		MinHeight: 240,
	}, graphics.Loop{
		Init: func() {
			if err := engine.LoadDefaultFont(); err != nil {
				log.Warn("using raylib default font", "err", err)
			}
			overlay.SetFont(engine.Font())
			v = viewer.New(ctx, viewer.Deps{
				Scene:   sc,
				Factory: registry,
				Builder: assets.ModelBuilder{TargetSize: cfg.View.TargetSize, Lights: lights},
				Loader:  loader,
				UI:      engine,
			}, viewer.Options{
				AssetName:      cfg.Asset.Name,
				AutoRotate:     cfg.View.AutoRotate,
				AutoRotateStep: cfg.View.AutoRotateStep,
				BannerTimeout:  cfg.View.BannerTimeout,
				ShowInfo:       cfg.Debug.ShowInfo,
				Controls: orbit.Options{
					Damping:     cfg.Controls.Damping,
					MinDistance: cfg.Controls.MinDistance,
					MaxDistance: cfg.Controls.MaxDistance,
					RotateSpeed: cfg.Controls.RotateSpeed,
					ZoomSpeed:   cfg.Controls.ZoomSpeed,
				},
			})
			log.Info("viewer started", "asset", cfg.Asset.Name, "base_url", cfg.Asset.BaseURL, "shadows", cfg.View.Shadows)
		},
		Resize: func(w, h int32) {
			v.Resize(w, h)
			log.Debug("resized", "width", w, "height", h)
		},
		Update: func() { v.Update(viewer.PollInput()) },
		Draw: func() {
			v.Draw()
			overlay.Draw()
		},
		Close: func() {
			v.Close()
			registry.Unload()
			sc.Unload()
			lights.Unload()
			engine.Unload()
		},
		Background: scene.BackgroundColor,
	})
	return nil
}
