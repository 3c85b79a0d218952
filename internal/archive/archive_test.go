package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestExtractModel_PrefersShallowGLB(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"scene.gltf":          "{}",
		"nested/deep/bus.glb": "glb",
		"bus.glb":             "glb",
		"textures/paint.png":  "png",
	})
	dest := t.TempDir()

	got, err := ExtractModel(zipPath, dest)
	require.NoError(t, err)
	require.Equal(t, "bus.glb", filepath.Base(got))
	require.Equal(t, filepath.Dir(got), dest)
	require.FileExists(t, filepath.Join(dest, "textures", "paint.png"))
}

func TestExtractModel_NoModel(t *testing.T) {
	zipPath := writeZip(t, map[string]string{"readme.txt": "hi"})

	_, err := ExtractModel(zipPath, t.TempDir())
	require.ErrorIs(t, err, ErrNoModel)
}

func TestUnzip_SkipsEscapingEntries(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"../evil.txt": "x",
		"ok.txt":      "y",
	})
	dest := t.TempDir()

	files, err := Unzip(zipPath, dest)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "ok.txt", filepath.Base(files[0]))
	require.NoFileExists(t, filepath.Join(filepath.Dir(dest), "evil.txt"))
}
