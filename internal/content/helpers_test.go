package content

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"portfolio-admin/internal/auth"
)

const cdn = "https://cdn.test/"

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
)

// memFiles is an in-memory ObjectStore.
type memFiles struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
	deleted []string
}

func newMemFiles() *memFiles {
	return &memFiles{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memFiles) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	m.types[key] = contentType
	return nil
}

func (m *memFiles) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return errors.New("no such key")
	}
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memFiles) PublicURL(key string) string { return cdn + key }

func (m *memFiles) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, cdn) {
		return "", false
	}
	return strings.TrimPrefix(url, cdn), true
}

func file(name string, b []byte) *Upload {
	return &Upload{Filename: name, Size: int64(len(b)), Body: bytes.NewReader(b)}
}

func signedIn() context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{Subject: "user-1", Role: "editor"})
}

func strPtr(s string) *string { return &s }
