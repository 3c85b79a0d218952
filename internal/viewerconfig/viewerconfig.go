package viewerconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"model-viewer/internal/logger"
)

// DefaultPath is the config file, relative to the process working directory.
const DefaultPath = "config/viewer.yaml"

// Config holds every tunable of the viewer. Fields missing from the file keep their Default value.
type Config struct {
	Window   Window   `yaml:"window"`
	Asset    Asset    `yaml:"asset"`
	View     View     `yaml:"view"`
	Controls Controls `yaml:"controls"`
	Debug    Debug    `yaml:"debug"`
	LogLevel string   `yaml:"log_level"`
	LogFile  string   `yaml:"log_file"`
}

type Window struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
}

// Asset locates the single loadable model. With BaseURL set the file is downloaded from
// BaseURL/Name into CacheDir; otherwise it is read from Dir/Name.
type Asset struct {
	Name     string        `yaml:"name"`
	Dir      string        `yaml:"dir"`
	BaseURL  string        `yaml:"base_url"`
	CacheDir string        `yaml:"cache_dir"`
	Timeout  time.Duration `yaml:"timeout"`
}

type View struct {
	// TargetSize is the largest dimension a loaded asset is scaled to.
	TargetSize     float32       `yaml:"target_size"`
	AutoRotate     bool          `yaml:"auto_rotate"`
	AutoRotateStep float32       `yaml:"auto_rotate_step"`
	BannerTimeout  time.Duration `yaml:"banner_timeout"`
	Stylesheet     string        `yaml:"stylesheet"`
	GroundVisible  bool          `yaml:"ground_visible"`
	// Shadows lets the key light cast shadows onto the object and the ground.
	Shadows       bool  `yaml:"shadows"`
	ShadowMapSize int32 `yaml:"shadow_map_size"`
}

type Controls struct {
	Damping     float32 `yaml:"damping"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	RotateSpeed float32 `yaml:"rotate_speed"`
	ZoomSpeed   float32 `yaml:"zoom_speed"`
}

type Debug struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	// ShowInfo starts with the object info panel open (toggled with I).
	ShowInfo bool `yaml:"show_info"`
	// ShowLog draws the most recent log lines in the bottom-right corner.
	ShowLog bool `yaml:"show_log"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "3D Model Viewer", TargetFPS: 60},
		Asset: Asset{
			Name:     "mercedes-bus.glb",
			Dir:      "assets/models",
			CacheDir: "cache/assets",
			Timeout:  60 * time.Second,
		},
		View: View{
			TargetSize:     3,
			AutoRotate:     true,
			AutoRotateStep: 0.005,
			BannerTimeout:  10 * time.Second,
			GroundVisible:  true,
			Shadows:        true,
			ShadowMapSize:  2048,
		},
		Controls: Controls{
			Damping:     0.05,
			MinDistance: 2,
			MaxDistance: 20,
			RotateSpeed: 1,
			ZoomSpeed:   1,
		},
		LogLevel: "info",
		LogFile:  logger.LogFilePath,
	}
}

// Load reads path over Default(). A missing file is not an error. A file that does not
// decode yields Default() and the decode error, so the caller can log it and carry on.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("viewerconfig: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("viewerconfig: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("viewerconfig: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the viewer cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.New("window size must be positive")
	case c.View.TargetSize <= 0:
		return errors.New("view.target_size must be positive")
	case c.Controls.Damping < 0 || c.Controls.Damping > 1:
		return errors.New("controls.damping must be within [0, 1]")
	case c.Controls.MinDistance <= 0 || c.Controls.MaxDistance < c.Controls.MinDistance:
		return errors.New("controls distance range is invalid")
	case c.Asset.Name == "":
		return errors.New("asset.name is required")
	case c.View.ShadowMapSize < 0 || c.View.ShadowMapSize > 8192:
		return errors.New("view.shadow_map_size must be within [0, 8192]")
	}
	return nil
}

// Save writes c to path, creating the directory if needed. The viewer's -write-config flag
// uses it to dump the effective configuration.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
