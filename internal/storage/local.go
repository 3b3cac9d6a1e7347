package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes photos to a directory on disk. References are bare
// filenames; the server serves the directory statically under /uploads/.
type LocalStore struct {
	dir string
}

// NewLocalStore constructs a filesystem-backed store rooted at dir.
func NewLocalStore(dir string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("local storage dir is required")
	}
	return &LocalStore{dir: dir}, nil
}

// EnsureReady creates the upload directory if it does not exist.
func (l *LocalStore) EnsureReady(ctx context.Context) error {
	return os.MkdirAll(l.dir, 0o755)
}

// Put writes the object to disk and returns the bare filename.
func (l *LocalStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	// Keys are generated server-side, but never trust them as paths.
	name := filepath.Base(filepath.Clean(key))
	if name == "." || name == string(filepath.Separator) {
		return "", errors.New("invalid object key")
	}

	dst := filepath.Join(l.dir, name)
	file, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return name, nil
}

// Dir returns the directory photos are written to.
func (l *LocalStore) Dir() string {
	return l.dir
}
