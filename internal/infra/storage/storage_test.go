package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 answers the PUT and DELETE object calls the store makes.
type fakeS3 struct {
	mu          sync.Mutex
	objects     map[string][]byte
	contentType map[string]string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// path style: /bucket/key
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		f.objects[key] = body
		f.contentType[key] = req.Header.Get("Content-Type")
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Etag": {"\"etag\""}},
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Request:    req,
		}, nil
	case http.MethodDelete:
		delete(f.objects, key)
		return &http.Response{StatusCode: http.StatusNoContent, Header: http.Header{}, Body: io.NopCloser(bytes.NewReader(nil)), Request: req}, nil
	}
	return &http.Response{StatusCode: http.StatusNotImplemented, Header: http.Header{}, Body: io.NopCloser(bytes.NewReader(nil)), Request: req}, nil
}

func newTestStore(t *testing.T) (*S3Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}, contentType: map[string]string{}}
	s, err := NewS3(Config{
		Endpoint:        "http://s3.test",
		Region:          "us-east-1",
		Bucket:          "portfolio",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PublicBaseURL:   "https://cdn.test/portfolio/",
		Timeout:         5 * time.Second,
		HTTPClient:      &http.Client{Transport: fake},
	})
	require.NoError(t, err)
	return s, fake
}

func TestNewS3RequiresConfig(t *testing.T) {
	_, err := NewS3(Config{Endpoint: "http://s3.test", Region: "us-east-1"})
	assert.ErrorIs(t, err, ErrIncompleteConfig)
}

func TestPutAndDelete(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()
	body := []byte("fake image bytes")

	require.NoError(t, s.Put(ctx, "artworks/a.jpg", bytes.NewReader(body), int64(len(body)), "image/jpeg"))
	assert.Equal(t, body, fake.objects["artworks/a.jpg"])
	assert.Equal(t, "image/jpeg", fake.contentType["artworks/a.jpg"])

	require.NoError(t, s.Delete(ctx, "artworks/a.jpg"))
	assert.NotContains(t, fake.objects, "artworks/a.jpg")
}

func TestPublicURL(t *testing.T) {
	s, _ := newTestStore(t)

	url := s.PublicURL("media/x.png")
	assert.Equal(t, "https://cdn.test/portfolio/media/x.png", url)

	key, ok := s.KeyFromURL(url)
	assert.True(t, ok)
	assert.Equal(t, "media/x.png", key)

	_, ok = s.KeyFromURL("https://elsewhere.test/x.png")
	assert.False(t, ok)
}

func TestNewKey(t *testing.T) {
	key := NewKey("/artworks/", "Photo.JPG")

	assert.True(t, strings.HasPrefix(key, "artworks/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, NewKey("artworks", "Photo.JPG"))
}
