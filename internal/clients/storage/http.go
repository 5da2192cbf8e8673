package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"referral-server/internal/observability"
)

// HTTPStorage talks to an object storage REST API.
type HTTPStorage struct {
	endpoint   string
	key        string
	bucket     string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewHTTPStorage creates a client for the bucket served at endpoint.
func NewHTTPStorage(endpoint, key, bucket string, logger *observability.Logger) *HTTPStorage {
	return &HTTPStorage{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		bucket:   bucket,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (s *HTTPStorage) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	p, err := cleanPath(path)
	if err != nil {
		return err
	}
	if s.endpoint == "" {
		return ErrNotConfigured
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "blob_path", Value: p})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(p), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=3600")
	req.Header.Set("x-upsert", "false")
	s.authorize(req)

	if err := s.do(ctx, req); err != nil {
		s.logger.Error(ctx, "failed to upload blob", err)
		return fmt.Errorf("failed to upload blob: %w", err)
	}
	return nil
}

func (s *HTTPStorage) Remove(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	prefixes := make([]string, 0, len(paths))
	for _, path := range paths {
		p, err := cleanPath(path)
		if err != nil {
			return err
		}
		prefixes = append(prefixes, p)
	}
	if s.endpoint == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(map[string][]string{"prefixes": prefixes})
	if err != nil {
		return fmt.Errorf("failed to encode remove request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.endpoint+"/storage/v1/object/"+s.bucket, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create remove request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	if err := s.do(ctx, req); err != nil {
		return fmt.Errorf("failed to remove blobs: %w", err)
	}
	return nil
}

func (s *HTTPStorage) PublicURL(path string) string {
	return publicURL(s.endpoint, s.bucket, path)
}

func (s *HTTPStorage) PathFromURL(publicURL string) (string, bool) {
	return pathFromURL(s.endpoint, s.bucket, publicURL)
}

func (s *HTTPStorage) objectURL(p string) string {
	return s.endpoint + "/storage/v1/object/" + s.bucket + "/" + p
}

func (s *HTTPStorage) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("apikey", s.key)
}

func (s *HTTPStorage) do(ctx context.Context, req *http.Request) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("storage responded %d: %s", resp.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("storage responded %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
