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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/vfacts/pkg/options"
	"github.com/autopeer-io/vfacts/pkg/vehicle"
)

func TestObjectKey(t *testing.T) {
	at := time.Unix(1700000000, 123)
	assert.Equal(t, "raw/vh-1/charge/1700000000000000123.json", ObjectKey("vh-1", vehicle.CategoryCharge, at))
}

// fakeS3 answers just enough of the S3 API for PutObject and bucket checks.
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, _ := strings.Cut(path, "/")

	switch {
	case r.Method == http.MethodGet && r.URL.Query().Has("location"):
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`)
	case r.Method == http.MethodHead && key == "":
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && key == "":
		f.buckets[bucket] = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[path] = string(body)
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func TestMinIOArchive(t *testing.T) {
	fake := &fakeS3{buckets: map[string]bool{}, objects: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	opts := options.NewS3Options()
	opts.Endpoint = strings.TrimPrefix(srv.URL, "http://")
	opts.AccessKeyID = "minio"
	opts.SecretAccessKey = "minio123"

	archive, err := NewMinIO(opts)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, archive.CheckBucket(ctx))
	assert.True(t, fake.buckets[opts.BucketName])

	at := time.Unix(1700000000, 0)
	key, err := archive.Put(ctx, "vh-1", vehicle.CategoryDrive, at, []byte(`{"speed":"12"}`))
	require.NoError(t, err)
	assert.Equal(t, ObjectKey("vh-1", vehicle.CategoryDrive, at), key)
	require.Contains(t, fake.objects, opts.BucketName+"/"+key)
	assert.Contains(t, fake.objects[opts.BucketName+"/"+key], `{"speed":"12"}`)
}
