package profile

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MockService implements Service in memory for unit tests.
type MockService struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewMockService creates a new mock service.
func NewMockService() *MockService {
	return &MockService{
		profiles: make(map[string]*Profile),
	}
}

func (m *MockService) Create(_ context.Context, userID string, params CreateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[userID]; exists {
		return nil, ErrAlreadyExists
	}

	now := time.Now().UTC()
	p := &Profile{
		ID:          userID,
		DisplayName: strings.TrimSpace(params.DisplayName),
		Email:       strings.ToLower(strings.TrimSpace(params.Email)),
		PhotoURL:    params.PhotoURL,
		JobTitle:    params.JobTitle,
		Company:     params.Company,
		Phone:       strings.TrimSpace(params.Phone),
		LinkedIn:    params.LinkedIn,
		Website:     params.Website,
		Bio:         params.Bio,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.profiles[userID] = p
	return p, nil
}

func (m *MockService) Get(_ context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *MockService) Update(_ context.Context, userID string, params UpdateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}

	if params.DisplayName != nil {
		p.DisplayName = strings.TrimSpace(*params.DisplayName)
	}
	if params.PhotoURL != nil {
		p.PhotoURL = *params.PhotoURL
	}
	if params.JobTitle != nil {
		p.JobTitle = *params.JobTitle
	}
	if params.Company != nil {
		p.Company = *params.Company
	}
	if params.Phone != nil {
		p.Phone = strings.TrimSpace(*params.Phone)
	}
	if params.LinkedIn != nil {
		p.LinkedIn = *params.LinkedIn
	}
	if params.Website != nil {
		p.Website = *params.Website
	}
	if params.Bio != nil {
		p.Bio = *params.Bio
	}
	p.UpdatedAt = time.Now().UTC()
	return p, nil
}

func (m *MockService) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[userID]; !exists {
		return ErrNotFound
	}
	delete(m.profiles, userID)
	return nil
}

// Clear removes all profiles (useful for test cleanup).
func (m *MockService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = make(map[string]*Profile)
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
