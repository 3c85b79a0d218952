package assetserver

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// syncBuffer is written by server goroutines and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newServer(t *testing.T) (*httptest.Server, *syncBuffer) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bus.glb"), []byte("glTF"), 0644))
	logs := &syncBuffer{}
	srv := httptest.NewServer(Handler(dir, slog.New(slog.NewTextHandler(logs, nil))))
	t.Cleanup(srv.Close)
	return srv, logs
}

func requireLogged(t *testing.T, logs *syncBuffer, want string) {
	t.Helper()
	require.Eventually(t, func() bool { return strings.Contains(logs.String(), want) }, time.Second, 5*time.Millisecond)
}

func requireCORS(t *testing.T, resp *http.Response) {
	t.Helper()
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestHandler_ServesFilesWithCORS(t *testing.T) {
	srv, logs := newServer(t)
	resp, err := http.Get(srv.URL + "/bus.glb")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "glTF", string(body))
	require.Equal(t, "model/gltf-binary", resp.Header.Get("Content-Type"))
	requireCORS(t, resp)
	requireLogged(t, logs, "path=/bus.glb")
	requireLogged(t, logs, "status=200")
}

func TestHandler_Preflight(t *testing.T) {
	srv, _ := newServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/bus.glb", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	requireCORS(t, resp)
}

func TestHandler_MissingAndMethod(t *testing.T) {
	srv, logs := newServer(t)
	resp, err := http.Get(srv.URL + "/missing.glb")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	requireCORS(t, resp)
	requireLogged(t, logs, "status=404")

	resp, err = http.Post(srv.URL+"/bus.glb", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
