package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"model-viewer/internal/ctxlog"
)

const (
	defaultUserAgent = "model-viewer/1.0"
	defaultTimeout   = 60 * time.Second
	// progressStep is the percentage between two progress log records.
	progressStep = 10
)

// StatusError reports a non-200 HTTP response.
type StatusError struct {
	Code int
	// Text is the reason phrase sent by the server, e.g. "Not Found". May be empty.
	Text string
}

func (e *StatusError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Text)
}

// Client downloads files into a directory. The zero value uses a 60 second timeout.
type Client struct {
	HTTP *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c != nil && c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: defaultTimeout}
}

// Fetch downloads rawURL into destDir. The filename comes from Content-Disposition or the
// URL path; the extension from the URL or Content-Type. Returns the saved path.
func (c *Client) Fetch(ctx context.Context, rawURL, destDir string) (savedPath string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: %w", &StatusError{Code: resp.StatusCode, Text: reasonPhrase(resp)})
	}

	ext := extensionFromURL(rawURL)
	if ext == "" {
		ext = extensionFromContentType(resp.Header.Get("Content-Type"))
	}
	name := filenameFromContentDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = filenameFromURL(rawURL)
	}
	name = sanitizeFilename(name)
	if ext != "" && !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	savedPath = filepath.Join(destDir, name)
	tmp, err := os.CreateTemp(destDir, name+".part-*")
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	progress := &progressWriter{log: ctxlog.FromContext(ctx), name: name, total: resp.ContentLength, next: progressStep}
	_, err = io.Copy(io.MultiWriter(tmp, progress), resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	if err := os.Rename(tmp.Name(), savedPath); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	return savedPath, nil
}

// progressWriter counts body bytes and logs "Loading: NN%" at Debug every progressStep
// percent. Bodies of unknown length log nothing.
type progressWriter struct {
	log     *slog.Logger
	name    string
	total   int64
	written int64
	next    int
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if p.total <= 0 {
		return len(b), nil
	}
	pct := int(p.written * 100 / p.total)
	if pct >= p.next {
		p.log.Debug(fmt.Sprintf("Loading: %d%%", pct), "file", p.name, "bytes", p.written, "total", p.total)
		p.next = (pct/progressStep + 1) * progressStep
	}
	return len(b), nil
}

// reasonPhrase returns the reason text of resp.Status ("404 Not Found" -> "Not Found").
func reasonPhrase(resp *http.Response) string {
	status := strings.TrimSpace(resp.Status)
	if i := strings.IndexByte(status, ' '); i >= 0 {
		return strings.TrimSpace(status[i+1:])
	}
	return ""
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		if dec, err := url.PathUnescape(strings.Trim(s, "\"")); err == nil {
			return dec
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\" ")
	}
	return ""
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch ct {
	case "model/gltf-binary":
		return ".glb"
	case "model/gltf+json":
		return ".gltf"
	case "model/obj":
		return ".obj"
	case "application/zip", "application/x-zip-compressed":
		return ".zip"
	}
	return ""
}

var modelExts = map[string]bool{".glb": true, ".gltf": true, ".obj": true, ".iqm": true, ".vox": true, ".m3d": true, ".zip": true}

func extensionFromURL(rawURL string) string {
	ext := strings.ToLower(path.Ext(urlPath(rawURL)))
	if modelExts[ext] {
		return ext
	}
	return ""
}

func filenameFromURL(rawURL string) string {
	base := path.Base(urlPath(rawURL))
	if base == "/" || base == "." {
		return ""
	}
	return base
}

func urlPath(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Path
	}
	p := rawURL
	if idx := strings.IndexAny(p, "?#"); idx >= 0 {
		p = p[:idx]
	}
	return p
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "download"
	}
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
