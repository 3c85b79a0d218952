package viewerconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"model-viewer/internal/logger"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_PartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
asset:
  base_url: http://localhost:8000
view:
  banner_timeout: 3s
  auto_rotate: false
debug:
  show_fps: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", cfg.Asset.BaseURL)
	require.Equal(t, "mercedes-bus.glb", cfg.Asset.Name)
	require.Equal(t, 3*time.Second, cfg.View.BannerTimeout)
	require.False(t, cfg.View.AutoRotate)
	require.True(t, cfg.Debug.ShowFPS)
	require.Equal(t, float32(3), cfg.View.TargetSize)
	require.True(t, cfg.View.Shadows)
}

func TestDefault_ShadowsAndLogFile(t *testing.T) {
	cfg := Default()
	require.True(t, cfg.View.Shadows)
	require.Equal(t, int32(2048), cfg.View.ShadowMapSize)
	require.Equal(t, logger.LogFilePath, cfg.LogFile)

	cfg.View.ShadowMapSize = 1 << 14
	require.Error(t, cfg.Validate())
}

func TestLoad_InvalidFallsBackWithError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view:\n  target_size: -1\n"), 0644))

	cfg, err := Load(path)
	require.Error(t, err)
	require.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0644))
	cfg, err = Load(path)
	require.Error(t, err)
	require.Equal(t, Default(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "viewer.yaml")
	c := Default()
	c.Controls.Damping = 0.1
	c.Asset.Name = "truck.glb"
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestLoad_SampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "viewer.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
