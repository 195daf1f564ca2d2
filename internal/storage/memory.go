package storage

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MemoryClient is an in-memory Client used by tests and local development.
// When FailUploads is set every UploadFile call returns an error, which lets
// tests exercise the rollback path of the intake pipeline.
type MemoryClient struct {
	mu          sync.Mutex
	objects     map[string][]byte
	FailUploads bool
}

// NewMemoryClient creates an empty in-memory storage client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{objects: map[string][]byte{}}
}

// UploadFile stores fileData under objectName.
func (m *MemoryClient) UploadFile(objectName string, fileData io.Reader) error {
	if m.FailUploads {
		return fmt.Errorf("upload of %q refused", objectName)
	}
	data, err := io.ReadAll(fileData)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectName] = data
	return nil
}

// DownloadFile returns the stored object content.
func (m *MemoryClient) DownloadFile(objectName string) (io.ReadCloser, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[objectName]
	if !ok {
		return nil, 0, fmt.Errorf("object %q not found", objectName)
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

// ListObjects returns the names of stored objects under prefix.
func (m *MemoryClient) ListObjects(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for name := range m.objects {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

// Len reports how many objects are stored.
func (m *MemoryClient) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
