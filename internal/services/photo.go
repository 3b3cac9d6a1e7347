package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PhotoStore persists photo bytes under a key and returns the reference the
// photo is addressable by afterwards: a bare filename for the local backend
// or a fully-qualified public URL for object-store backends. Callers never
// branch on which backend is active.
type PhotoStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// UploadFile is one file taken from a multipart upload.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// PhotoService normalizes photos from a remote URL or a multipart upload
// into durable references used by place records.
type PhotoService struct {
	store        PhotoStore
	client       *http.Client
	maxFileBytes int64
	logger       zerolog.Logger
}

func NewPhotoService(store PhotoStore, fetchTimeout time.Duration, maxFileBytes int64, logger zerolog.Logger) *PhotoService {
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	if maxFileBytes <= 0 {
		maxFileBytes = 32 << 20
	}
	return &PhotoService{
		store:        store,
		client:       &http.Client{Timeout: fetchTimeout},
		maxFileBytes: maxFileBytes,
		logger:       logger,
	}
}

// IngestFromURL fetches the photo at link and persists it under a generated
// key. The fetch is bounded by the client timeout and the per-file size cap;
// failures surface as ErrFetchFailed and are not retried.
func (s *PhotoService) IngestFromURL(ctx context.Context, link string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(link))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("%w: link must be an http(s) url", ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Str("link", parsed.String()).Msg("photo fetch failed")
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}

	data, err := readLimited(resp.Body, s.maxFileBytes)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	key := newPhotoKey(extensionFor(parsed.Path, contentType))
	return s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
}

// IngestUploads persists a batch of uploaded files and returns their
// references in submission order. Order is a contract: the client pairs
// references with photo positions. Any failed file fails the whole batch,
// since a partial result would silently break that pairing.
func (s *PhotoService) IngestUploads(ctx context.Context, files []UploadFile) ([]string, error) {
	refs := make([]string, 0, len(files))
	for _, file := range files {
		if int64(len(file.Data)) > s.maxFileBytes {
			return nil, fmt.Errorf("%w: file %q too large", ErrInvalidInput, file.Name)
		}

		contentType := file.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(file.Data)
		}

		key := newPhotoKey(extensionFor(file.Name, contentType))
		ref, err := s.store.Put(ctx, key, bytes.NewReader(file.Data), int64(len(file.Data)), contentType)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// newPhotoKey generates a collision-resistant object key.
func newPhotoKey(ext string) string {
	return "photo-" + uuid.NewString() + ext
}

// extensionFor prefers the uploaded filename's extension and falls back to
// the content type. Unknown types default to .jpg.
func extensionFor(name, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" && len(ext) <= 5 {
		return ext
	}
	switch {
	case strings.HasPrefix(contentType, "image/png"):
		return ".png"
	case strings.HasPrefix(contentType, "image/gif"):
		return ".gif"
	case strings.HasPrefix(contentType, "image/webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}

func readLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errors.New("file too large")
	}
	return data, nil
}
