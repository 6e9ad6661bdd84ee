// Package imaging loads source images, models the interactive 4:5 crop box,
// renders committed crops onto the fixed post canvas and draws terminal
// previews of stored posts.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/CrestNiraj12/flick/domain"
)

const (
	// DefaultFetchTimeout bounds a single URL fetch.
	DefaultFetchTimeout = 10 * time.Second

	// MaxSourceBytes caps how much of a file or response is read.
	MaxSourceBytes = 16 * 1024 * 1024
)

// Loader decodes source images from local files, data URIs and http(s) URLs.
type Loader struct {
	client   *http.Client
	maxBytes int64
}

// NewLoader creates a Loader whose URL fetches time out after timeout.
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Loader{
		client:   &http.Client{Timeout: timeout},
		maxBytes: MaxSourceBytes,
	}
}

// Load fetches and decodes ref. Cancelling ctx aborts an in-flight fetch.
// Every failure is a *domain.LoadError.
func (l *Loader) Load(ctx context.Context, ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, &domain.LoadError{Err: errors.New("no image selected")}
	}

	data, err := l.read(ctx, ref)
	if err != nil {
		return nil, &domain.LoadError{Source: DisplaySource(ref), Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &domain.LoadError{Source: DisplaySource(ref), Err: err}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.LoadError{Source: DisplaySource(ref), Err: fmt.Errorf("decoding: %w", err)}
	}
	return img, nil
}

func (l *Loader) read(ctx context.Context, ref string) ([]byte, error) {
	lower := strings.ToLower(ref)
	switch {
	case strings.HasPrefix(lower, "data:"):
		return decodeDataURIBytes(ref)
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return l.fetch(ctx, ref)
	default:
		return l.readFile(ref)
	}
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return readLimited(resp.Body, l.maxBytes)
}

func (l *Loader) readFile(ref string) ([]byte, error) {
	path := strings.TrimPrefix(ref, "file://")
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, l.maxBytes)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("image larger than %d bytes", limit)
	}
	return data, nil
}

// DecodeDataURI decodes a base64 data URI such as a stored post image.
func DecodeDataURI(uri string) (image.Image, error) {
	data, err := decodeDataURIBytes(uri)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding data uri: %w", err)
	}
	return img, nil
}

func decodeDataURIBytes(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(strings.ToLower(header), "data:") {
		return nil, errors.New("malformed data uri")
	}
	if !strings.HasSuffix(strings.ToLower(header), ";base64") {
		return nil, errors.New("data uri must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}
	return data, nil
}

// DisplaySource shortens ref for messages: an inline data URI shows only its
// header.
func DisplaySource(ref string) string {
	if strings.HasPrefix(strings.ToLower(ref), "data:") {
		header, _, _ := strings.Cut(ref, ",")
		return header
	}
	return ref
}
