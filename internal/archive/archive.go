package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ModelExts are the model formats looked for inside a bundle, in order of preference.
var ModelExts = []string{".glb", ".gltf"}

// ErrNoModel is returned by ExtractModel when a bundle holds no model file.
var ErrNoModel = errors.New("no .glb or .gltf file in archive")

// Unzip extracts zipPath into destDir, preserving directory structure.
// destDir is created if needed. Entries that would escape destDir are skipped.
func Unzip(zipPath, destDir string) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	for _, f := range r.File {
		dest := filepath.Clean(filepath.Join(absDir, f.Name))
		if !strings.HasPrefix(dest, absDir+string(os.PathSeparator)) {
			continue
		}
		if f.FileInfo().IsDir() {
			_ = os.MkdirAll(dest, 0755)
			continue
		}
		if err := extractFile(f, dest); err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(out, rc)
	return err
}

// ExtractModel unpacks a model bundle (glTF plus its buffers and textures) into destDir
// and returns the path of the model file. Binary .glb wins over .gltf; within one
// extension the shallowest, then lexically first path is chosen.
func ExtractModel(zipPath, destDir string) (string, error) {
	files, err := Unzip(zipPath, destDir)
	if err != nil {
		return "", err
	}
	for _, ext := range ModelExts {
		var found []string
		for _, p := range files {
			if strings.EqualFold(filepath.Ext(p), ext) {
				found = append(found, p)
			}
		}
		if len(found) == 0 {
			continue
		}
		sort.Slice(found, func(i, j int) bool {
			di, dj := strings.Count(found[i], string(os.PathSeparator)), strings.Count(found[j], string(os.PathSeparator))
			if di != dj {
				return di < dj
			}
			return found[i] < found[j]
		})
		return found[0], nil
	}
	return "", fmt.Errorf("unzip: %s: %w", filepath.Base(zipPath), ErrNoModel)
}
