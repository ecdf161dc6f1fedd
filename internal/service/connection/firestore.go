package connection

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/netwify/api/internal/platform/logging"
	"github.com/netwify/api/internal/qr"
	"github.com/netwify/api/internal/service/contact"
	"github.com/netwify/api/internal/service/profile"
)

// requestsCollection holds connection request documents.
const requestsCollection = "connectionRequests"

// requestDoc maps to the Firestore document structure, matching the schema
// the mobile app established.
type requestDoc struct {
	FromUserID  string      `firestore:"fromUserId"`
	ToUserID    string      `firestore:"toUserId"`
	FromUser    snapshotDoc `firestore:"fromUserProfile"`
	Status      string      `firestore:"status"`
	Message     string      `firestore:"message"`
	CreatedAt   time.Time   `firestore:"createdAt"`
	RespondedAt *time.Time  `firestore:"respondedAt"`
}

type snapshotDoc struct {
	DisplayName string `firestore:"displayName"`
	PhotoURL    string `firestore:"photoURL"`
	JobTitle    string `firestore:"jobTitle"`
	Company     string `firestore:"company"`
}

func (d requestDoc) request(id string) *Request {
	return &Request{
		ID:         id,
		FromUserID: d.FromUserID,
		ToUserID:   d.ToUserID,
		FromUser: SenderSnapshot{
			DisplayName: d.FromUser.DisplayName,
			PhotoURL:    d.FromUser.PhotoURL,
			JobTitle:    d.FromUser.JobTitle,
			Company:     d.FromUser.Company,
		},
		Status:      Status(d.Status),
		Message:     d.Message,
		CreatedAt:   d.CreatedAt,
		RespondedAt: d.RespondedAt,
	}
}

func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, profile.ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidStateTransition):
		return "invalid_state"
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrAlreadyConnected):
		return "already_connected"
	case errors.Is(err, ErrDuplicateRequest):
		return "duplicate_request"
	case errors.Is(err, qr.ErrSelfConnect):
		return "self_connect"
	case errors.Is(err, qr.ErrInvalidPayload):
		return "invalid_payload"
	default:
		return "internal_error"
	}
}

// FirestoreStore implements Service using Firestore. The acceptance fan-out
// runs as a single transaction over the request, both profiles and both new
// contact rows.
type FirestoreStore struct {
	client *firestore.Client
	policy MutualPolicy
}

// Option configures a FirestoreStore.
type Option func(*FirestoreStore)

// WithMutualPolicy sets the behavior for crossing pending requests.
func WithMutualPolicy(p MutualPolicy) Option {
	return func(s *FirestoreStore) {
		s.policy = p
	}
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client, opts ...Option) *FirestoreStore {
	s := &FirestoreStore{
		client: client,
		policy: MutualIndependent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveScan decodes and validates a scanned payload, returning the target
// user's current card.
func (s *FirestoreStore) ResolveScan(ctx context.Context, scannerID, raw string) (*ScanResult, error) {
	payload, err := qr.Decode(raw)
	if err != nil {
		return nil, err
	}
	if err := payload.Validate(scannerID); err != nil {
		return nil, err
	}

	p, err := s.getProfile(ctx, payload.UserID)
	if err != nil {
		return nil, err
	}

	return &ScanResult{Payload: payload, Profile: p}, nil
}

// Send creates a pending request carrying a snapshot of the sender's current
// card.
//
// The duplicate and already-connected checks here are best-effort reads, not
// part of a transaction; two devices scanning simultaneously can still race
// a duplicate pending request through. Acceptance deduplicates: the fan-out
// transaction rejects a second accept, and a stray duplicate request can only
// ever be declined.
func (s *FirestoreStore) Send(ctx context.Context, fromUserID string, params SendParams) (*Request, error) {
	result, err := s.send(ctx, fromUserID, params)
	if err != nil {
		applog.LogAuditEvent(ctx, "send", fromUserID, "connection_request", params.ToUserID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "send", fromUserID, "connection_request", result.ID, "success", nil)

	return result, nil
}

func (s *FirestoreStore) send(ctx context.Context, fromUserID string, params SendParams) (*Request, error) {
	if fromUserID == params.ToUserID {
		return nil, qr.ErrSelfConnect
	}

	connected, err := s.IsConnected(ctx, fromUserID, params.ToUserID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, ErrAlreadyConnected
	}

	pending, err := s.HasPendingRequest(ctx, fromUserID, params.ToUserID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicateRequest
	}

	if s.policy == MutualAutoAccept {
		reverse, err := s.pendingRequestID(ctx, params.ToUserID, fromUserID)
		if err != nil {
			return nil, err
		}
		if reverse != "" {
			// The sender is the recipient of the reverse request, so
			// accepting it on their behalf connects both users.
			return s.Accept(ctx, reverse, fromUserID)
		}
	}

	sender, err := s.getProfile(ctx, fromUserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getProfile(ctx, params.ToUserID); err != nil {
		return nil, err
	}

	d := requestDoc{
		FromUserID: fromUserID,
		ToUserID:   params.ToUserID,
		FromUser: snapshotDoc{
			DisplayName: sender.DisplayName,
			PhotoURL:    sender.PhotoURL,
			JobTitle:    sender.JobTitle,
			Company:     sender.Company,
		},
		Status:    string(StatusPending),
		Message:   params.Message,
		CreatedAt: time.Now().UTC(),
	}

	ref, _, err := s.client.Collection(requestsCollection).Add(ctx, d)
	if err != nil {
		return nil, err
	}
	return d.request(ref.ID), nil
}

// Accept transitions a pending request to accepted and writes both contact
// rows in one transaction. Re-reading the request inside the transaction
// guarantees at-most-once fan-out under concurrent accepts.
func (s *FirestoreStore) Accept(ctx context.Context, requestID, acceptingUserID string) (*Request, error) {
	reqRef := s.client.Collection(requestsCollection).Doc(requestID)

	var result *Request

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(reqRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var rd requestDoc
		if err := doc.DataTo(&rd); err != nil {
			return err
		}
		if rd.ToUserID != acceptingUserID {
			return ErrPermissionDenied
		}
		if Status(rd.Status) != StatusPending {
			return ErrInvalidStateTransition
		}

		// Snapshot both cards as they are now, not as they were when the
		// request was created.
		requester, err := s.txGetProfile(tx, rd.FromUserID)
		if err != nil {
			return err
		}
		accepter, err := s.txGetProfile(tx, acceptingUserID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		forAccepter := s.client.Collection(contact.Collection).NewDoc()
		if err := tx.Create(forAccepter, contact.NewDoc(acceptingUserID, requester, now)); err != nil {
			return err
		}
		forRequester := s.client.Collection(contact.Collection).NewDoc()
		if err := tx.Create(forRequester, contact.NewDoc(rd.FromUserID, accepter, now)); err != nil {
			return err
		}

		if err := tx.Update(reqRef, []firestore.Update{
			{Path: "status", Value: string(StatusAccepted)},
			{Path: "respondedAt", Value: now},
		}); err != nil {
			return err
		}

		rd.Status = string(StatusAccepted)
		rd.RespondedAt = &now
		result = rd.request(requestID)
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "accept", acceptingUserID, "connection_request", requestID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "accept", acceptingUserID, "connection_request", requestID, "success", nil)

	return result, nil
}

// Decline transitions a pending request to declined. No contact fan-out.
// Declining a request that is no longer pending is an error, mirroring the
// acceptance guard.
func (s *FirestoreStore) Decline(ctx context.Context, requestID, decliningUserID string) (*Request, error) {
	reqRef := s.client.Collection(requestsCollection).Doc(requestID)

	var result *Request

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(reqRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var rd requestDoc
		if err := doc.DataTo(&rd); err != nil {
			return err
		}
		if rd.ToUserID != decliningUserID {
			return ErrPermissionDenied
		}
		if Status(rd.Status) != StatusPending {
			return ErrInvalidStateTransition
		}

		now := time.Now().UTC()
		if err := tx.Update(reqRef, []firestore.Update{
			{Path: "status", Value: string(StatusDeclined)},
			{Path: "respondedAt", Value: now},
		}); err != nil {
			return err
		}

		rd.Status = string(StatusDeclined)
		rd.RespondedAt = &now
		result = rd.request(requestID)
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "decline", decliningUserID, "connection_request", requestID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "decline", decliningUserID, "connection_request", requestID, "success", nil)

	return result, nil
}

// ListIncoming returns pending requests addressed to the user, newest first.
func (s *FirestoreStore) ListIncoming(ctx context.Context, userID string) ([]Request, error) {
	return s.listPending(ctx, "toUserId", userID)
}

// ListOutgoing returns pending requests the user has sent, newest first.
func (s *FirestoreStore) ListOutgoing(ctx context.Context, userID string) ([]Request, error) {
	return s.listPending(ctx, "fromUserId", userID)
}

func (s *FirestoreStore) listPending(ctx context.Context, field, userID string) ([]Request, error) {
	iter := s.client.Collection(requestsCollection).
		Where(field, "==", userID).
		Where("status", "==", string(StatusPending)).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var requests []Request
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var rd requestDoc
		if err := doc.DataTo(&rd); err != nil {
			return nil, err
		}
		requests = append(requests, *rd.request(doc.Ref.ID))
	}
	return requests, nil
}

// IsConnected reports whether userID already has a contact row for the other
// user. Scoped to the asking user's ledger.
func (s *FirestoreStore) IsConnected(ctx context.Context, userID, otherUserID string) (bool, error) {
	iter := s.client.Collection(contact.Collection).
		Where("userId", "==", userID).
		Where("contactUserId", "==", otherUserID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasPendingRequest reports whether a pending request exists in one
// direction only; the reverse direction is a separate question.
func (s *FirestoreStore) HasPendingRequest(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	id, err := s.pendingRequestID(ctx, fromUserID, toUserID)
	if err != nil {
		return false, err
	}
	return id != "", nil
}

func (s *FirestoreStore) pendingRequestID(ctx context.Context, fromUserID, toUserID string) (string, error) {
	iter := s.client.Collection(requestsCollection).
		Where("fromUserId", "==", fromUserID).
		Where("toUserId", "==", toUserID).
		Where("status", "==", string(StatusPending)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return doc.Ref.ID, nil
}

func (s *FirestoreStore) getProfile(ctx context.Context, userID string) (*profile.Profile, error) {
	doc, err := s.client.Collection(profile.Collection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, profile.ErrNotFound
		}
		return nil, err
	}

	var d profile.Doc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return d.Profile(userID), nil
}

func (s *FirestoreStore) txGetProfile(tx *firestore.Transaction, userID string) (*profile.Profile, error) {
	doc, err := tx.Get(s.client.Collection(profile.Collection).Doc(userID))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, profile.ErrNotFound
		}
		return nil, err
	}

	var d profile.Doc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return d.Profile(userID), nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
