// Package assetserver serves model files over HTTP with permissive CORS headers, so the
// viewer (or a browser) can load them relative to a base URL.
package assetserver

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"time"
)

// DefaultAddr is the listen address used when none is given.
const DefaultAddr = ":8000"

const shutdownGrace = 5 * time.Second

func init() {
	// Not in every system mime table.
	_ = mime.AddExtensionType(".glb", "model/gltf-binary")
	_ = mime.AddExtensionType(".gltf", "model/gltf+json")
}

// Handler serves dir. Every response carries the CORS headers, OPTIONS preflights are
// answered with 204, and each request is logged with its status and duration.
func Handler(dir string, log *slog.Logger) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h := rec.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")

		switch r.Method {
		case http.MethodOptions:
			rec.WriteHeader(http.StatusNoContent)
		case http.MethodGet, http.MethodHead:
			files.ServeHTTP(rec, r)
		default:
			http.Error(rec, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
		log.Info("request", "remote_addr", r.RemoteAddr, "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration", time.Since(start))
	})
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr, dir string, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(dir, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("asset server starting", "address", "http://localhost"+addr, "dir", dir)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("asset server stopped")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
