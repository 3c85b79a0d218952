// Package cli parses the command lines of the viewer and the asset server. Viewer flags
// become overrides of the file configuration.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"model-viewer/internal/viewerconfig"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options are the parsed flags. Empty strings mean "keep the file value".
type Options struct {
	ConfigPath string
	Asset      string
	AssetDir   string
	BaseURL    string
	LogLevel   string
	ShowFPS    bool
	// WriteConfig saves the effective configuration to ConfigPath instead of starting.
	WriteConfig bool
}

// Parse processes command-line arguments. It returns the options, a boolean indicating if
// the program should exit cleanly (help was printed), or an ExitError.
func Parse(args []string, output io.Writer) (Options, bool, error) {
	flagSet := flag.NewFlagSet("viewer", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
viewer - shows primitives and one 3D model with orbit controls.

Usage:
  viewer [options]

Keys:
  1-4 primitives, 5 load the model, R reset the camera, I object info, Esc quit.

Options:
`)
		flagSet.PrintDefaults()
	}

	var o Options
	flagSet.StringVar(&o.ConfigPath, "config", viewerconfig.DefaultPath, "Path to the YAML config file.")
	flagSet.StringVar(&o.Asset, "asset", "", "Model file name to load (overrides asset.name).")
	flagSet.StringVar(&o.AssetDir, "asset-dir", "", "Local directory holding the model (overrides asset.dir).")
	flagSet.StringVar(&o.BaseURL, "base-url", "", "Download the model from this URL prefix instead of a local directory.")
	flagSet.StringVar(&o.LogLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	flagSet.BoolVar(&o.ShowFPS, "fps", false, "Show the FPS counter.")
	flagSet.BoolVar(&o.WriteConfig, "write-config", false, "Write the effective configuration to -config and exit.")

	if exit, err := parseFlags(flagSet, args); err != nil || exit {
		return o, exit, err
	}
	level, err := normalizeLevel(o.LogLevel)
	if err != nil {
		return o, false, err
	}
	o.LogLevel = level
	slog.Debug("CLI arguments parsed.", "options", o)
	return o, false, nil
}

// ServerOptions are the asset server's parsed flags.
type ServerOptions struct {
	Dir      string
	Addr     string
	LogLevel string
}

// ParseServer processes the asset server's command-line arguments, with the same return
// contract as Parse.
func ParseServer(args []string, output io.Writer, defaultAddr string) (ServerOptions, bool, error) {
	flagSet := flag.NewFlagSet("assetserver", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
assetserver - serves model files to the viewer with CORS headers.

Usage:
  assetserver [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	var o ServerOptions
	flagSet.StringVar(&o.Dir, "dir", "assets/models", "Directory to serve.")
	flagSet.StringVar(&o.Addr, "addr", defaultAddr, "Listen address.")
	flagSet.StringVar(&o.LogLevel, "log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")

	if exit, err := parseFlags(flagSet, args); err != nil || exit {
		return o, exit, err
	}
	level, err := normalizeLevel(o.LogLevel)
	if err != nil {
		return o, false, err
	}
	o.LogLevel = level
	if o.Dir == "" {
		return o, false, &ExitError{Code: 2, Message: "-dir must not be empty"}
	}
	return o, false, nil
}

// parseFlags runs fs over args. Help is a clean exit; bad flags and stray arguments are
// usage errors with exit code 2.
func parseFlags(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return true, nil
		}
		return false, &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}
	return false, nil
}

func normalizeLevel(level string) (string, error) {
	level = strings.ToLower(level)
	switch level {
	case "", "debug", "info", "warn", "error":
		return level, nil
	}
	return level, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
}

// Apply overrides cfg with every option that was set.
func (o Options) Apply(cfg *viewerconfig.Config) {
	if o.Asset != "" {
		cfg.Asset.Name = o.Asset
	}
	if o.AssetDir != "" {
		cfg.Asset.Dir = o.AssetDir
	}
	if o.BaseURL != "" {
		cfg.Asset.BaseURL = o.BaseURL
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.ShowFPS {
		cfg.Debug.ShowFPS = true
	}
}
