package connection

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/netwify/api/internal/qr"
	"github.com/netwify/api/internal/service/contact"
	"github.com/netwify/api/internal/service/profile"
)

// MockService implements Service in memory for unit tests. It shares the
// profile and contact mocks so accepted requests show up in the contact
// ledger, mirroring the Firestore fan-out. A single mutex around the
// state transition gives the same at-most-once guarantee the Firestore
// transaction provides.
type MockService struct {
	mu       sync.Mutex
	profiles *profile.MockService
	contacts *contact.MockService
	requests map[string]*Request
	policy   MutualPolicy
}

// NewMockService creates a new mock service backed by the given mocks.
func NewMockService(profiles *profile.MockService, contacts *contact.MockService) *MockService {
	return &MockService{
		profiles: profiles,
		contacts: contacts,
		requests: make(map[string]*Request),
		policy:   MutualIndependent,
	}
}

// SetMutualPolicy overrides the crossing-requests policy.
func (m *MockService) SetMutualPolicy(p MutualPolicy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policy = p
}

func (m *MockService) ResolveScan(ctx context.Context, scannerID, raw string) (*ScanResult, error) {
	payload, err := qr.Decode(raw)
	if err != nil {
		return nil, err
	}
	if err := payload.Validate(scannerID); err != nil {
		return nil, err
	}

	p, err := m.profiles.Get(ctx, payload.UserID)
	if err != nil {
		return nil, err
	}
	return &ScanResult{Payload: payload, Profile: p}, nil
}

func (m *MockService) Send(ctx context.Context, fromUserID string, params SendParams) (*Request, error) {
	if fromUserID == params.ToUserID {
		return nil, qr.ErrSelfConnect
	}

	connected, err := m.IsConnected(ctx, fromUserID, params.ToUserID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, ErrAlreadyConnected
	}

	pending, err := m.HasPendingRequest(ctx, fromUserID, params.ToUserID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicateRequest
	}

	m.mu.Lock()
	autoAccept := m.policy == MutualAutoAccept
	var reverseID string
	if autoAccept {
		for id, r := range m.requests {
			if r.FromUserID == params.ToUserID && r.ToUserID == fromUserID && r.Status == StatusPending {
				reverseID = id
				break
			}
		}
	}
	m.mu.Unlock()

	if reverseID != "" {
		return m.Accept(ctx, reverseID, fromUserID)
	}

	sender, err := m.profiles.Get(ctx, fromUserID)
	if err != nil {
		return nil, err
	}
	if _, err := m.profiles.Get(ctx, params.ToUserID); err != nil {
		return nil, err
	}

	r := &Request{
		ID:         uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   params.ToUserID,
		FromUser: SenderSnapshot{
			DisplayName: sender.DisplayName,
			PhotoURL:    sender.PhotoURL,
			JobTitle:    sender.JobTitle,
			Company:     sender.Company,
		},
		Status:    StatusPending,
		Message:   params.Message,
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.requests[r.ID] = r
	m.mu.Unlock()

	copied := *r
	return &copied, nil
}

func (m *MockService) Accept(ctx context.Context, requestID, acceptingUserID string) (*Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, exists := m.requests[requestID]
	if !exists {
		return nil, ErrNotFound
	}
	if r.ToUserID != acceptingUserID {
		return nil, ErrPermissionDenied
	}
	if r.Status != StatusPending {
		return nil, ErrInvalidStateTransition
	}

	requester, err := m.profiles.Get(ctx, r.FromUserID)
	if err != nil {
		return nil, err
	}
	accepter, err := m.profiles.Get(ctx, acceptingUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m.contacts.Insert(acceptingUserID, requester, now)
	m.contacts.Insert(r.FromUserID, accepter, now)

	r.Status = StatusAccepted
	r.RespondedAt = &now

	copied := *r
	return &copied, nil
}

func (m *MockService) Decline(_ context.Context, requestID, decliningUserID string) (*Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, exists := m.requests[requestID]
	if !exists {
		return nil, ErrNotFound
	}
	if r.ToUserID != decliningUserID {
		return nil, ErrPermissionDenied
	}
	if r.Status != StatusPending {
		return nil, ErrInvalidStateTransition
	}

	now := time.Now().UTC()
	r.Status = StatusDeclined
	r.RespondedAt = &now

	copied := *r
	return &copied, nil
}

func (m *MockService) ListIncoming(_ context.Context, userID string) ([]Request, error) {
	return m.listPending(func(r *Request) bool { return r.ToUserID == userID }), nil
}

func (m *MockService) ListOutgoing(_ context.Context, userID string) ([]Request, error) {
	return m.listPending(func(r *Request) bool { return r.FromUserID == userID }), nil
}

func (m *MockService) listPending(match func(*Request) bool) []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Request
	for _, r := range m.requests {
		if r.Status == StatusPending && match(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *MockService) IsConnected(ctx context.Context, userID, otherUserID string) (bool, error) {
	contacts, err := m.contacts.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, c := range contacts {
		if c.ContactUserID == otherUserID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockService) HasPendingRequest(_ context.Context, fromUserID, toUserID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.requests {
		if r.FromUserID == fromUserID && r.ToUserID == toUserID && r.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
