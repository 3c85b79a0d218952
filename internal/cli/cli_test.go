package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"model-viewer/internal/viewerconfig"
)

func TestParse_Defaults(t *testing.T) {
	var out bytes.Buffer
	o, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	require.False(t, exit)
	require.Equal(t, viewerconfig.DefaultPath, o.ConfigPath)
	require.Empty(t, o.Asset)
}

func TestParse_OverridesConfig(t *testing.T) {
	o, _, err := Parse([]string{"-asset", "truck.glb", "-base-url", "http://localhost:8000/models", "-log-level", "DEBUG", "-fps"}, &bytes.Buffer{})
	require.NoError(t, err)

	cfg := viewerconfig.Default()
	o.Apply(&cfg)
	require.Equal(t, "truck.glb", cfg.Asset.Name)
	require.Equal(t, "http://localhost:8000/models", cfg.Asset.BaseURL)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.Debug.ShowFPS)
	require.Equal(t, viewerconfig.Default().Asset.Dir, cfg.Asset.Dir, "unset flags keep the file value")
}

func TestParse_Help(t *testing.T) {
	var out bytes.Buffer
	_, exit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	require.True(t, exit)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"-log-level", "loud"},
		{"-nope"},
		{"extra"},
	} {
		_, _, err := Parse(args, &bytes.Buffer{})
		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr), "args %v", args)
		require.Equal(t, 2, exitErr.Code)
	}
}

func TestParse_WriteConfig(t *testing.T) {
	o, exit, err := Parse([]string{"-write-config", "-config", "out/viewer.yaml"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	require.True(t, o.WriteConfig)
	require.Equal(t, "out/viewer.yaml", o.ConfigPath)
}

func TestParseServer(t *testing.T) {
	o, exit, err := ParseServer(nil, &bytes.Buffer{}, ":8000")
	require.NoError(t, err)
	require.False(t, exit)
	require.Equal(t, ServerOptions{Dir: "assets/models", Addr: ":8000", LogLevel: "info"}, o)

	o, _, err = ParseServer([]string{"-dir", "models", "-addr", "127.0.0.1:9000", "-log-level", "WARN"}, &bytes.Buffer{}, ":8000")
	require.NoError(t, err)
	require.Equal(t, ServerOptions{Dir: "models", Addr: "127.0.0.1:9000", LogLevel: "warn"}, o)

	var out bytes.Buffer
	_, exit, err = ParseServer([]string{"-help"}, &out, ":8000")
	require.NoError(t, err)
	require.True(t, exit)
	require.Contains(t, out.String(), "assetserver")
}

func TestParseServer_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"-log-level", "loud"},
		{"-dir", ""},
		{"-port", "1"},
		{"public"},
	} {
		_, _, err := ParseServer(args, &bytes.Buffer{}, ":8000")
		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr), "args %v", args)
		require.Equal(t, 2, exitErr.Code)
	}
}
