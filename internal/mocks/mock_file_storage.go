package mocks

import (
	"io"
	"sync"

	"github.com/HariStrange/drive-Vault/domain"
)

// MockFileStorage implements domain.FileStorage interface for testing.
// Removed file names are recorded per directory.
type MockFileStorage struct {
	SaveFunc   func(dir, field, originalName string, src io.Reader) (string, error)
	RemoveFunc func(dir, name string) error

	mu      sync.Mutex
	removed map[string][]string
}

// NewMockFileStorage creates a new MockFileStorage with default behaviors
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{removed: make(map[string][]string)}
}

// Save stores a file
func (m *MockFileStorage) Save(dir, field, originalName string, src io.Reader) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(dir, field, originalName, src)
	}
	return field + "-" + originalName, nil
}

// Remove deletes a file
func (m *MockFileStorage) Remove(dir, name string) error {
	m.mu.Lock()
	if m.removed == nil {
		m.removed = make(map[string][]string)
	}
	m.removed[dir] = append(m.removed[dir], name)
	m.mu.Unlock()

	if m.RemoveFunc != nil {
		return m.RemoveFunc(dir, name)
	}
	return nil
}

// Removed returns the names removed from dir (test helper)
func (m *MockFileStorage) Removed(dir string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removed[dir]...)
}

// Compile-time interface compliance verification
var _ domain.FileStorage = (*MockFileStorage)(nil)
