package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/erp/pdv/internal/infrastructure/config"
	"github.com/erp/pdv/internal/infrastructure/printing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeS3 serves path-style PUT/GET/DELETE for a single bucket
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := r.URL.Path
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<Error><Code>NoSuchKey</Code></Error>`)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(body)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func testStorageConfig(endpoint string) *config.StorageConfig {
	return &config.StorageConfig{
		Backend:   "s3",
		Bucket:    "docs",
		Region:    "sa-east-1",
		Endpoint:  endpoint,
		AccessKey: "key",
		SecretKey: "secret",
		URLExpiry: 5 * time.Minute,
	}
}

func TestNewS3DocumentStorage_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewS3DocumentStorage(ctx, nil)
	assert.ErrorContains(t, err, "configuration is required")

	_, err = NewS3DocumentStorage(ctx, &config.StorageConfig{})
	assert.ErrorContains(t, err, "bucket is required")

	_, err = NewS3DocumentStorage(ctx, &config.StorageConfig{Bucket: "b", AccessKey: "only"})
	assert.ErrorContains(t, err, "must be set together")

	s, err := NewS3DocumentStorage(ctx, &config.StorageConfig{Bucket: "b", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "b", s.Bucket())
	assert.Equal(t, defaultURLExpiry, s.urlExpiry)
}

func TestS3DocumentStorage_RoundTrip(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	ctx := context.Background()
	s, err := NewS3DocumentStorage(ctx, testStorageConfig(srv.URL), WithLogger(zap.NewNop()))
	require.NoError(t, err)

	res, err := s.Store(ctx, &printing.StoreRequest{Key: "2024/05/carne-1.pdf", PDFData: []byte("%PDF")})
	require.NoError(t, err)
	assert.Equal(t, "2024/05/carne-1.pdf", res.Path)
	assert.True(t, strings.HasPrefix(res.URL, srv.URL+"/docs/2024/05/carne-1.pdf?"))
	assert.Contains(t, res.URL, "X-Amz-Expires=300")
	assert.Equal(t, []byte("%PDF"), fake.objects["/docs/2024/05/carne-1.pdf"])

	rc, err := s.Get(ctx, res.Path)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "%PDF", string(body))

	require.NoError(t, s.Delete(ctx, res.Path))
	assert.Empty(t, fake.objects)

	_, err = s.Store(ctx, &printing.StoreRequest{Key: "x.pdf"})
	assert.Error(t, err)
}

func TestNewDocumentStorage(t *testing.T) {
	ctx := context.Background()

	fs, err := NewDocumentStorage(ctx, &config.StorageConfig{Backend: "filesystem", LocalDir: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &printing.FileSystemStorage{}, fs)

	_, err = NewDocumentStorage(ctx, &config.StorageConfig{Backend: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}
