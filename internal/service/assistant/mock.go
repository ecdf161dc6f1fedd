package assistant

import (
	"context"
	"fmt"
	"sync"

	"github.com/netwify/api/internal/service/profile"
)

// MockService implements Service with canned, deterministic output for
// unit tests. Set Err to force every call to fail.
type MockService struct {
	mu    sync.Mutex
	Err   error
	calls int
}

// NewMockService creates a new mock assistant.
func NewMockService() *MockService {
	return &MockService{}
}

// Calls reports how many generations were requested.
func (m *MockService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockService) Summarize(_ context.Context, a, b *profile.Profile) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return "", m.Err
	}
	return fmt.Sprintf("%s and %s share professional interests.", a.DisplayName, b.DisplayName), nil
}

func (m *MockService) FollowUp(_ context.Context, params FollowUpParams) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return "", m.Err
	}
	return fmt.Sprintf("Hi %s, great meeting you! Best, %s",
		params.Contact.DisplayName, params.Sender.DisplayName), nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
