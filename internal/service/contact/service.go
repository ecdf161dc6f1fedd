// Package contact implements the contact ledger: each user's private record
// of a completed connection. Every row is an independent copy: a snapshot of
// the other party taken at acceptance time plus owner-private annotations.
// Rows never reference the originating request and are never touched by later
// profile edits, so they can go stale.
package contact

import (
	"context"
	"errors"
	"time"

	"github.com/netwify/api/internal/service/profile"
)

// Service errors
var (
	ErrNotFound         = errors.New("contact not found")
	ErrPermissionDenied = errors.New("contact is owned by another user")
)

// Snapshot holds the other party's profile fields copied at connection time.
type Snapshot struct {
	DisplayName string
	PhotoURL    string
	JobTitle    string
	Company     string
	Email       string
	Phone       string
	LinkedIn    string
	Website     string
	Bio         string
}

// NewSnapshot copies the relevant fields from a profile.
func NewSnapshot(p *profile.Profile) Snapshot {
	return Snapshot{
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
		JobTitle:    p.JobTitle,
		Company:     p.Company,
		Email:       p.Email,
		Phone:       p.Phone,
		LinkedIn:    p.LinkedIn,
		Website:     p.Website,
		Bio:         p.Bio,
	}
}

// Contact is one user's record of a connection.
type Contact struct {
	ID            string
	UserID        string // owner
	ContactUserID string // the connected user
	Snapshot

	// Owner-private annotations.
	Notes     string
	Tags      []string
	MetAt     string
	AISummary string

	ConnectedAt       time.Time
	LastInteractionAt *time.Time
}

// AnnotationParams for updating owner-private fields. Nil fields are left
// unchanged.
type AnnotationParams struct {
	Notes *string
	Tags  *[]string
	MetAt *string
}

// Service defines contact ledger operations. Every operation is scoped to
// the owning user; reaching into another user's ledger is
// ErrPermissionDenied.
type Service interface {
	List(ctx context.Context, ownerID string) ([]Contact, error)
	Get(ctx context.Context, ownerID, contactID string) (*Contact, error)
	UpdateAnnotations(ctx context.Context, ownerID, contactID string, params AnnotationParams) (*Contact, error)
	SetSummary(ctx context.Context, ownerID, contactID, summary string) (*Contact, error)
	Delete(ctx context.Context, ownerID, contactID string) error
}
