package logger

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogFilePath is the viewer log file, relative to the working directory.
const LogFilePath = "logs/viewer.txt"

// maxLines bounds the in-memory history kept for the on-screen overlay.
const maxLines = 200

// Logger is a slog.Logger whose records are appended to a file and also kept in memory
// as formatted lines, newest last.
type Logger struct {
	*slog.Logger
	buf   *lineBuffer
	close func() error
}

// New opens (or creates) path for appending and returns a Logger writing text records at level.
// If the file cannot be opened the logger still works, writing to stderr and memory, and the
// open error is returned alongside it.
func New(path string, level slog.Level) (*Logger, error) {
	buf := &lineBuffer{}
	var out io.Writer = os.Stderr
	closeFn := func() error { return nil }
	var openErr error
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		openErr = fmt.Errorf("logger: %w", err)
	} else if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
		openErr = fmt.Errorf("logger: %w", err)
	} else {
		out = f
		closeFn = f.Close
	}
	h := slog.NewTextHandler(io.MultiWriter(out, buf), &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(h), buf: buf, close: closeFn}, openErr
}

// NewWriter returns a Logger that writes to w only (tests, headless tools).
func NewWriter(w io.Writer, level slog.Level) *Logger {
	buf := &lineBuffer{}
	h := slog.NewTextHandler(io.MultiWriter(w, buf), &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(h), buf: buf, close: func() error { return nil }}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level. Unknown names are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Lines returns a copy of the most recent formatted records.
func (l *Logger) Lines() []string {
	return l.buf.lines()
}

// Close closes the log file.
func (l *Logger) Close() error {
	return l.close()
}

// lineBuffer splits written bytes into lines, keeping the last maxLines.
type lineBuffer struct {
	mu      sync.Mutex
	partial []byte
	entries []string
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.partial = append(b.partial, p...)
	for {
		i := bytes.IndexByte(b.partial, '\n')
		if i < 0 {
			break
		}
		b.entries = append(b.entries, string(b.partial[:i]))
		b.partial = b.partial[i+1:]
	}
	if over := len(b.entries) - maxLines; over > 0 {
		b.entries = append(b.entries[:0], b.entries[over:]...)
	}
	return len(p), nil
}

func (b *lineBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.entries))
	copy(out, b.entries)
	return out
}
