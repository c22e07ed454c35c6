package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ErrMinioNotConfigured is returned for minio:// sources when no MinIO
// client was set up.
var ErrMinioNotConfigured = errors.New("minio source requested but MinIO is not configured")

// Opener resolves a sound's source reference to its bytes.
//
//	http://… https://…   fetched with HTTP GET
//	minio://bucket/key   read from MinIO
//	file:///path, /path  read from the local filesystem
type Opener struct {
	HTTP  *http.Client
	Minio *minio.Client // nil disables minio:// sources
}

// Open returns the clip bytes and a format hint: a file extension such as
// ".mp3", or a MIME type when the reference has no extension.
func (o *Opener) Open(ctx context.Context, source string) (io.ReadCloser, string, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return o.openHTTP(ctx, source)
	case strings.HasPrefix(source, "minio://"):
		return o.openMinio(ctx, source)
	case strings.HasPrefix(source, "file://"):
		u, err := url.Parse(source)
		if err != nil {
			return nil, "", fmt.Errorf("invalid file url %q: %w", source, err)
		}
		return openFile(u.Path)
	default:
		return openFile(source)
	}
}

func (o *Opener) openHTTP(ctx context.Context, source string) (io.ReadCloser, string, error) {
	client := o.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request for %s: %w", source, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", source, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("fetch %s: unexpected status %s", source, resp.Status)
	}

	hint := ""
	if u, err := url.Parse(source); err == nil {
		hint = strings.ToLower(path.Ext(u.Path))
	}
	if hint == "" {
		hint = resp.Header.Get("Content-Type")
	}
	return resp.Body, hint, nil
}

func (o *Opener) openMinio(ctx context.Context, source string) (io.ReadCloser, string, error) {
	if o.Minio == nil {
		return nil, "", ErrMinioNotConfigured
	}

	bucket, key, err := parseMinioSource(source)
	if err != nil {
		return nil, "", err
	}

	object, err := o.Minio.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("get object %s/%s: %w", bucket, key, err)
	}
	// GetObject is lazy; Stat surfaces a missing key before decoding starts.
	info, err := object.Stat()
	if err != nil {
		object.Close()
		return nil, "", fmt.Errorf("stat object %s/%s: %w", bucket, key, err)
	}

	hint := strings.ToLower(path.Ext(key))
	if hint == "" {
		hint = info.ContentType
	}
	return object, hint, nil
}

// parseMinioSource splits minio://bucket/key/with/slashes.
func parseMinioSource(source string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(source, "minio://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid minio source %q, want minio://bucket/key", source)
	}
	return bucket, key, nil
}

func openFile(p string) (io.ReadCloser, string, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", p, err)
	}
	return f, strings.ToLower(filepath.Ext(p)), nil
}
