package contact

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/netwify/api/internal/service/profile"
)

// MockService implements Service in memory for unit tests.
type MockService struct {
	mu       sync.RWMutex
	contacts map[string]*Contact
}

// NewMockService creates a new mock service.
func NewMockService() *MockService {
	return &MockService{
		contacts: make(map[string]*Contact),
	}
}

// Insert adds a fan-out row directly, mirroring what the connection store's
// acceptance transaction does in Firestore. Test helper and mock fan-out
// target.
func (m *MockService) Insert(ownerID string, other *profile.Profile, connectedAt time.Time) *Contact {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := &Contact{
		ID:            uuid.NewString(),
		UserID:        ownerID,
		ContactUserID: other.ID,
		Snapshot:      NewSnapshot(other),
		ConnectedAt:   connectedAt,
	}
	m.contacts[c.ID] = c
	return c
}

func (m *MockService) List(_ context.Context, ownerID string) ([]Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Contact
	for _, c := range m.contacts {
		if c.UserID == ownerID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ConnectedAt.Equal(out[j].ConnectedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ConnectedAt.After(out[j].ConnectedAt)
	})
	return out, nil
}

func (m *MockService) Get(_ context.Context, ownerID, contactID string) (*Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, exists := m.contacts[contactID]
	if !exists {
		return nil, ErrNotFound
	}
	if c.UserID != ownerID {
		return nil, ErrPermissionDenied
	}
	copied := *c
	return &copied, nil
}

func (m *MockService) UpdateAnnotations(_ context.Context, ownerID, contactID string, params AnnotationParams) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, exists := m.contacts[contactID]
	if !exists {
		return nil, ErrNotFound
	}
	if c.UserID != ownerID {
		return nil, ErrPermissionDenied
	}

	if params.Notes != nil {
		c.Notes = *params.Notes
	}
	if params.Tags != nil {
		c.Tags = *params.Tags
	}
	if params.MetAt != nil {
		c.MetAt = *params.MetAt
	}
	copied := *c
	return &copied, nil
}

func (m *MockService) SetSummary(_ context.Context, ownerID, contactID, summary string) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, exists := m.contacts[contactID]
	if !exists {
		return nil, ErrNotFound
	}
	if c.UserID != ownerID {
		return nil, ErrPermissionDenied
	}

	now := time.Now().UTC()
	c.AISummary = summary
	c.LastInteractionAt = &now
	copied := *c
	return &copied, nil
}

func (m *MockService) Delete(_ context.Context, ownerID, contactID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, exists := m.contacts[contactID]
	if !exists {
		return ErrNotFound
	}
	if c.UserID != ownerID {
		return ErrPermissionDenied
	}
	delete(m.contacts, contactID)
	return nil
}

// Clear removes all contacts (useful for test cleanup).
func (m *MockService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = make(map[string]*Contact)
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
