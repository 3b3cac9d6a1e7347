package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakePhotoStore returns a reference derived from the object's contents so
// tests can check ordering without knowing the generated keys.
type fakePhotoStore struct {
	keys      []string
	failAfter int // fail the Nth put (1-based); 0 disables
	puts      int
}

func (f *fakePhotoStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	f.puts++
	if f.failAfter > 0 && f.puts >= f.failAfter {
		return "", errors.New("backend unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	return "ref:" + string(data), nil
}

func TestIngestUploadsPreservesOrder(t *testing.T) {
	t.Parallel()

	store := &fakePhotoStore{}
	svc := NewPhotoService(store, time.Second, 1<<20, zerolog.Nop())

	files := []UploadFile{
		{Name: "first.jpg", Data: []byte("aaa")},
		{Name: "second.png", Data: []byte("bbb")},
		{Name: "third.webp", Data: []byte("ccc")},
	}
	refs, err := svc.IngestUploads(context.Background(), files)
	require.NoError(t, err)
	require.Equal(t, []string{"ref:aaa", "ref:bbb", "ref:ccc"}, refs)

	require.Len(t, store.keys, 3)
	require.True(t, strings.HasSuffix(store.keys[0], ".jpg"))
	require.True(t, strings.HasSuffix(store.keys[1], ".png"))
	require.True(t, strings.HasSuffix(store.keys[2], ".webp"))
}

func TestIngestUploadsGeneratesUniqueKeys(t *testing.T) {
	t.Parallel()

	store := &fakePhotoStore{}
	svc := NewPhotoService(store, time.Second, 1<<20, zerolog.Nop())

	_, err := svc.IngestUploads(context.Background(), []UploadFile{
		{Name: "same.jpg", Data: []byte("x")},
		{Name: "same.jpg", Data: []byte("y")},
	})
	require.NoError(t, err)
	require.Len(t, store.keys, 2)
	require.NotEqual(t, store.keys[0], store.keys[1])
}

func TestIngestUploadsFailsWholeBatch(t *testing.T) {
	t.Parallel()

	store := &fakePhotoStore{failAfter: 2}
	svc := NewPhotoService(store, time.Second, 1<<20, zerolog.Nop())

	refs, err := svc.IngestUploads(context.Background(), []UploadFile{
		{Name: "a.jpg", Data: []byte("a")},
		{Name: "b.jpg", Data: []byte("b")},
		{Name: "c.jpg", Data: []byte("c")},
	})
	require.Error(t, err)
	require.Nil(t, refs, "a partial batch would break photo ordering")
}

func TestIngestUploadsRejectsOversizedFile(t *testing.T) {
	t.Parallel()

	store := &fakePhotoStore{}
	svc := NewPhotoService(store, time.Second, 4, zerolog.Nop())

	_, err := svc.IngestUploads(context.Background(), []UploadFile{
		{Name: "big.jpg", Data: []byte("too large")},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestIngestFromURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	store := &fakePhotoStore{}
	svc := NewPhotoService(store, time.Second, 1<<20, zerolog.Nop())

	ref, err := svc.IngestFromURL(context.Background(), srv.URL+"/pic")
	require.NoError(t, err)
	require.Equal(t, "ref:png-bytes", ref)
	require.Len(t, store.keys, 1)
	require.True(t, strings.HasSuffix(store.keys[0], ".png"))
}

func TestIngestFromURLUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewPhotoService(&fakePhotoStore{}, time.Second, 1<<20, zerolog.Nop())

	_, err := svc.IngestFromURL(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestIngestFromURLRejectsBadScheme(t *testing.T) {
	t.Parallel()

	svc := NewPhotoService(&fakePhotoStore{}, time.Second, 1<<20, zerolog.Nop())

	_, err := svc.IngestFromURL(context.Background(), "ftp://example.com/pic.jpg")
	require.ErrorIs(t, err, ErrInvalidInput)
}
