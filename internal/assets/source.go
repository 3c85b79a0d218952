package assets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"model-viewer/internal/archive"
	"model-viewer/internal/ctxlog"
	"model-viewer/internal/download"
)

// Source resolves an asset name to a local file ready for parsing. With BaseURL set the asset
// is downloaded from BaseURL/name into CacheDir; otherwise it is read from Dir/name.
// Zip bundles are unpacked into CacheDir. glTF files are checked before they are handed on.
type Source struct {
	Dir      string
	BaseURL  string
	CacheDir string
	Client   *download.Client
}

// Resolve implements Resolver. It runs off the main thread and must not touch the GPU.
func (s Source) Resolve(ctx context.Context, name string) (string, error) {
	log := ctxlog.FromContext(ctx)
	path, err := s.locate(ctx, name)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		dest := filepath.Join(s.CacheDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		extracted, err := archive.ExtractModel(path, dest)
		if err != nil {
			return "", &LoadError{Message: fmt.Sprintf("%s: %v", name, err), Err: err}
		}
		log.Debug("unpacked model bundle", "bundle", path, "model", extracted)
		path = extracted
	}
	if err := Validate(path); err != nil {
		return "", err
	}
	log.Info("asset resolved", "name", name, "path", path)
	return path, nil
}

func (s Source) locate(ctx context.Context, name string) (string, error) {
	if s.BaseURL == "" {
		path := filepath.Join(s.Dir, filepath.FromSlash(name))
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", &LoadError{Message: fmt.Sprintf("file not found: %s", path), Err: err}
			}
			return "", &LoadError{Message: err.Error(), Err: err}
		}
		return path, nil
	}
	u, err := url.JoinPath(s.BaseURL, name)
	if err != nil {
		return "", &LoadError{Message: fmt.Sprintf("bad asset URL: %v", err), Err: err}
	}
	ctxlog.FromContext(ctx).Info("downloading asset", "url", u)
	path, err := s.Client.Fetch(ctx, u, s.CacheDir)
	if err != nil {
		var se *download.StatusError
		if errors.As(err, &se) {
			return "", &LoadError{StatusCode: se.Code, StatusText: se.Text, Err: err}
		}
		return "", &LoadError{Message: err.Error(), Err: err}
	}
	return path, nil
}

// Validate checks that path is a model raylib can load. glTF and GLB documents are decoded
// and must contain at least one mesh.
func Validate(path string) error {
	base := filepath.Base(path)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		doc, err := gltf.Open(path)
		if err != nil {
			return &LoadError{Message: fmt.Sprintf("%s is not a valid glTF file: %v", base, err), Err: err}
		}
		if len(doc.Meshes) == 0 {
			return &LoadError{Message: fmt.Sprintf("%s contains no meshes", base)}
		}
	case ".obj", ".iqm", ".vox", ".m3d":
	default:
		return &LoadError{Message: fmt.Sprintf("unsupported model format %q", ext)}
	}
	return nil
}
