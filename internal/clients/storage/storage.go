// Package storage stores avatar blobs in an object storage bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"referral-server/internal/config"
	"referral-server/internal/observability"
)

var (
	ErrInvalidPath   = errors.New("invalid blob path")
	ErrNotConfigured = errors.New("storage not configured")
)

// Storage is a bucket of blobs addressed by relative paths.
type Storage interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	Remove(ctx context.Context, paths []string) error
	PublicURL(path string) string
	// PathFromURL maps a public URL produced by PublicURL back to its blob path.
	PathFromURL(publicURL string) (string, bool)
}

// New returns the storage driver selected by cfg.
func New(cfg config.StorageConfig, logger *observability.Logger) (Storage, error) {
	switch cfg.Driver {
	case config.StorageDriverHTTP:
		return NewHTTPStorage(cfg.URL, cfg.Key, cfg.Bucket, logger), nil
	case config.StorageDriverFilesystem:
		return NewFilesystemStorage(cfg.Dir, cfg.Bucket, cfg.PublicBaseURL, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// PublicPathPrefix is the URL path under which a bucket's blobs are publicly readable.
func PublicPathPrefix(bucket string) string {
	return "/storage/v1/object/public/" + bucket + "/"
}

// cleanPath rejects absolute paths and parent references.
func cleanPath(p string) (string, error) {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	for _, segment := range strings.Split(p, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}
	return path.Clean(p), nil
}

func publicURL(base, bucket, p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return base + PublicPathPrefix(bucket) + strings.Join(segments, "/")
}

func pathFromURL(base, bucket, publicURL string) (string, bool) {
	prefix := base + PublicPathPrefix(bucket)
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(publicURL, prefix)
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	unescaped, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	p, err := cleanPath(unescaped)
	if err != nil {
		return "", false
	}
	return p, true
}
