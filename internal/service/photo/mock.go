package photo

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MockService implements Service in memory for unit tests.
type MockService struct {
	mu     sync.Mutex
	photos map[string][]byte
	types  map[string]string
}

// NewMockService creates a new mock photo store.
func NewMockService() *MockService {
	return &MockService{
		photos: make(map[string][]byte),
		types:  make(map[string]string),
	}
}

// Stored returns the stored bytes and content type for a user.
func (m *MockService) Stored(userID string) ([]byte, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.photos[userID]
	return data, m.types[userID], ok
}

func (m *MockService) Upload(_ context.Context, userID, contentType string, r io.Reader) (string, error) {
	if !allowedTypes[contentType] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxSize {
		return "", ErrTooLarge
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.photos[userID] = data
	m.types[userID] = contentType
	return fmt.Sprintf("https://storage.example.com/%s%s", objectPrefix, userID), nil
}

func (m *MockService) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.photos, userID)
	delete(m.types, userID)
	return nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
