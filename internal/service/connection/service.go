// Package connection implements the connection lifecycle: the protocol that
// takes two accounts from "scanned a QR code" to a pair of contact ledger
// rows.
//
// A request carries a snapshot of the sender's card taken when the request
// was created. The two contact rows written on acceptance snapshot both
// profiles again, so each side sees the other's card as it looked at
// acceptance time, which is deliberately more current than the request's own
// snapshot.
package connection

import (
	"context"
	"errors"
	"time"

	"github.com/netwify/api/internal/qr"
	"github.com/netwify/api/internal/service/profile"
)

// Service errors
var (
	ErrNotFound               = errors.New("connection request not found")
	ErrAlreadyConnected       = errors.New("users are already connected")
	ErrDuplicateRequest       = errors.New("a pending request already exists")
	ErrInvalidStateTransition = errors.New("request is not pending")
	ErrPermissionDenied       = errors.New("user is not the request recipient")
)

// Status of a connection request. A request transitions exactly once,
// pending to accepted or pending to declined, and is never deleted.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// MutualPolicy decides what happens when A sends a request to B while B
// already has a pending request to A.
type MutualPolicy string

const (
	// MutualIndependent keeps the two requests independent. Default.
	MutualIndependent MutualPolicy = "independent"

	// MutualAutoAccept treats the new request as an acceptance of the
	// existing reverse request, connecting both users immediately.
	MutualAutoAccept MutualPolicy = "auto_accept"
)

// SenderSnapshot is the subset of the sender's card shown on the incoming
// request, captured at request creation.
type SenderSnapshot struct {
	DisplayName string
	PhotoURL    string
	JobTitle    string
	Company     string
}

// Request is a proposal from one user to another to become connected.
type Request struct {
	ID          string
	FromUserID  string
	ToUserID    string
	FromUser    SenderSnapshot
	Status      Status
	Message     string
	CreatedAt   time.Time
	RespondedAt *time.Time
}

// SendParams for creating a request.
type SendParams struct {
	ToUserID string
	Message  string
}

// ScanResult is the outcome of validating a scanned payload: the decoded
// payload plus the target's current card for the confirmation screen.
type ScanResult struct {
	Payload qr.Payload
	Profile *profile.Profile
}

// Service defines connection lifecycle operations.
//
// Accept and Decline enforce at the service boundary that the acting user is
// the request's recipient; the client is not trusted to pass the right ID.
// Accept performs the status transition and the two-row contact fan-out as
// one atomic unit, so concurrent accepts resolve to a single winner and
// exactly two contact rows.
type Service interface {
	ResolveScan(ctx context.Context, scannerID, raw string) (*ScanResult, error)
	Send(ctx context.Context, fromUserID string, params SendParams) (*Request, error)
	Accept(ctx context.Context, requestID, acceptingUserID string) (*Request, error)
	Decline(ctx context.Context, requestID, decliningUserID string) (*Request, error)
	ListIncoming(ctx context.Context, userID string) ([]Request, error)
	ListOutgoing(ctx context.Context, userID string) ([]Request, error)
	IsConnected(ctx context.Context, userID, otherUserID string) (bool, error)
	HasPendingRequest(ctx context.Context, fromUserID, toUserID string) (bool, error)
}
