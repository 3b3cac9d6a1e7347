package storage

import (
	"context"
	"io"
)

// Backend defines the single capability the photo pipeline needs from a
// storage target: persist bytes under a key and return the reference the
// photo is addressable by. The reference is self-describing — a bare
// filename for the local backend (served statically under /uploads/) or a
// fully-qualified public URL for object-store backends. The store is
// append-only: issued references are never overwritten or deleted.
type Backend interface {
	EnsureReady(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// Storage wraps a Backend with a stable API.
type Storage struct {
	backend Backend
}

// NewStorage constructs a Storage wrapper for the provided backend.
func NewStorage(backend Backend) *Storage {
	return &Storage{backend: backend}
}

// EnsureReady ensures the backend's bucket or directory exists.
func (s *Storage) EnsureReady(ctx context.Context) error {
	return s.backend.EnsureReady(ctx)
}

// Put persists an object and returns its public reference.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	return s.backend.Put(ctx, key, r, size, contentType)
}
