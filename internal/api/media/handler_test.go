package media

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/content"
	"portfolio-admin/internal/domain/media"
	"portfolio-admin/internal/infra/store"
	"portfolio-admin/internal/infra/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cdn = "https://cdn.test/"

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

// bucket is an in-memory object store.
type bucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *bucket) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data
	return nil
}

func (b *bucket) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *bucket) PublicURL(key string) string { return cdn + key }

func (b *bucket) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, cdn) {
		return "", false
	}
	return strings.TrimPrefix(url, cdn), true
}

func (b *bucket) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

func setup(t *testing.T) (*gin.Engine, *bucket) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	files := &bucket{objects: map[string][]byte{}}
	lib := content.NewMediaLibrary(store.NewRepo[media.Media](storetest.Open(t), "media", false, ""), files, 1<<20)
	h := NewHandler(lib, 1<<20)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		id := &auth.Identity{Subject: "1", Email: "editor@example.com", Role: "editor"}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	})
	r.GET("/media", h.List)
	r.POST("/media", h.Upload)
	r.PUT("/media/:id", h.Update)
	r.DELETE("/media/:id", h.Delete)
	return r, files
}

func serve(t *testing.T, r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func uploadRequest(t *testing.T, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadUpdateDelete(t *testing.T) {
	r, files := setup(t)

	w, out := serve(t, r, uploadRequest(t, "studio.png", pngBytes, map[string]string{"alt": " Studio view "}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "studio.png", out["filename"])
	assert.Equal(t, "image/png", out["mimeType"])
	assert.Equal(t, "Studio view", out["alt"])
	assert.True(t, strings.HasPrefix(out["url"].(string), cdn))
	assert.Equal(t, 1, files.len())
	id := out["id"].(string)

	req := httptest.NewRequest(http.MethodPut, "/media/"+id, strings.NewReader(`{"caption":"Spring 2024"}`))
	req.Header.Set("Content-Type", "application/json")
	w, out = serve(t, r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Spring 2024", out["caption"])

	req = httptest.NewRequest(http.MethodPut, "/media/"+id, strings.NewReader(`{"url":"https://elsewhere.test/x.png"}`))
	req.Header.Set("Content-Type", "application/json")
	w, out = serve(t, r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", out["code"])

	w, out = serve(t, r, httptest.NewRequest(http.MethodGet, "/media", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["media"], 1)

	w, _ = serve(t, r, httptest.NewRequest(http.MethodDelete, "/media/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 0, files.len())

	w, out = serve(t, r, httptest.NewRequest(http.MethodDelete, "/media/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", out["code"])
}

func TestUploadRejectsBadRequests(t *testing.T) {
	r, files := setup(t)

	w, out := serve(t, r, uploadRequest(t, "", nil, map[string]string{"alt": "nothing"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "REQUIRED_FIELD", out["code"])
	assert.Equal(t, "file", out["field"])

	req := httptest.NewRequest(http.MethodPost, "/media", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w, out = serve(t, r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", out["code"])

	w, out = serve(t, r, uploadRequest(t, "notes.png", []byte("plain text, not an image"), nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FORMAT", out["code"])
	assert.Equal(t, 0, files.len())
}
