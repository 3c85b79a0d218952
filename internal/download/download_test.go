package download

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"model-viewer/internal/ctxlog"
)

func TestFetch_SavesUnderURLName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "model/gltf-binary")
		_, _ = w.Write([]byte("glTF-bytes"))
	}))
	defer srv.Close()
	dir := t.TempDir()

	var c Client
	got, err := c.Fetch(context.Background(), srv.URL+"/models/mercedes-bus.glb?v=2", dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "mercedes-bus.glb"), got)
	data, err := os.ReadFile(got)
	require.NoError(t, err)
	require.Equal(t, "glTF-bytes", string(data))
}

func TestFetch_ExtensionFromContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "model/gltf-binary")
		w.Header().Set("Content-Disposition", `attachment; filename="car model"`)
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	var c Client
	got, err := c.Fetch(context.Background(), srv.URL+"/get", t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "car_model.glb", filepath.Base(got))
}

func TestFetch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	dir := t.TempDir()

	var c Client
	_, err := c.Fetch(context.Background(), srv.URL+"/missing.glb", dir)
	require.Error(t, err)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusNotFound, se.Code)
	require.Equal(t, "Not Found", se.Text)
	require.Equal(t, "HTTP 404: Not Found", se.Error())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSanitizeFilename(t *testing.T) {
	require.Equal(t, "download", sanitizeFilename(""))
	require.Equal(t, "a_b.glb", sanitizeFilename("a b.glb"))
	require.Equal(t, "_etc_passwd", sanitizeFilename("../etc/passwd"))
}

func TestFetch_LogsProgress(t *testing.T) {
	body := strings.Repeat("x", 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), log)

	var c Client
	_, err := c.Fetch(ctx, srv.URL+"/bus.glb", t.TempDir())
	require.NoError(t, err)
	require.Contains(t, logs.String(), "Loading: 100%")
	require.Contains(t, logs.String(), "file=bus.glb")
}

func TestProgressWriter_Steps(t *testing.T) {
	var logs bytes.Buffer
	p := &progressWriter{
		log:   slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		name:  "a.glb",
		total: 100,
		next:  progressStep,
	}
	for i := 0; i < 4; i++ {
		n, err := p.Write(make([]byte, 25))
		require.NoError(t, err)
		require.Equal(t, 25, n)
	}
	out := logs.String()
	require.Equal(t, 4, strings.Count(out, "Loading:"))
	require.Contains(t, out, "Loading: 25%")
	require.Contains(t, out, "Loading: 100%")

	logs.Reset()
	unknown := &progressWriter{log: p.log, total: -1, next: progressStep}
	_, _ = unknown.Write(make([]byte, 10))
	require.Empty(t, logs.String())
}
