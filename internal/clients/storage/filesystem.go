package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"referral-server/internal/observability"
)

// FilesystemStorage keeps a bucket in a local directory. The HTTP server
// exposes Root() under PublicPathPrefix(bucket).
type FilesystemStorage struct {
	root          string
	bucket        string
	publicBaseURL string
	logger        *observability.Logger
}

// NewFilesystemStorage creates dir/bucket if it does not exist.
func NewFilesystemStorage(dir, bucket, publicBaseURL string, logger *observability.Logger) (*FilesystemStorage, error) {
	root := filepath.Join(dir, bucket)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FilesystemStorage{
		root:          root,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Root returns the directory holding the bucket's blobs.
func (s *FilesystemStorage) Root() string {
	return s.root
}

// Bucket returns the bucket name.
func (s *FilesystemStorage) Bucket() string {
	return s.bucket
}

func (s *FilesystemStorage) Upload(ctx context.Context, path string, data []byte, _ string) error {
	p, err := cleanPath(path)
	if err != nil {
		return err
	}
	target := filepath.Join(s.root, filepath.FromSlash(p))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.logger.Error(ctx, "failed to create blob", err)
		return fmt.Errorf("failed to create blob: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(target)
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return f.Close()
}

// Remove deletes the given blobs. Paths that do not exist are ignored.
func (s *FilesystemStorage) Remove(_ context.Context, paths []string) error {
	var errs []error
	for _, path := range paths {
		p, err := cleanPath(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		err = os.Remove(filepath.Join(s.root, filepath.FromSlash(p)))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove blob %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

func (s *FilesystemStorage) PublicURL(path string) string {
	return publicURL(s.publicBaseURL, s.bucket, path)
}

func (s *FilesystemStorage) PathFromURL(publicURL string) (string, bool) {
	return pathFromURL(s.publicBaseURL, s.bucket, publicURL)
}
