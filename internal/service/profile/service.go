// Package profile implements the profile store: one durable, self-owned
// contact card per user, keyed by the Firebase Auth UID.
package profile

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
)

// Profile represents a user's stored contact card.
type Profile struct {
	ID          string
	DisplayName string
	Email       string
	PhotoURL    string
	JobTitle    string
	Company     string
	Phone       string
	LinkedIn    string
	Website     string
	Bio         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateParams for creating a profile.
type CreateParams struct {
	DisplayName string
	Email       string
	PhotoURL    string
	JobTitle    string
	Company     string
	Phone       string
	LinkedIn    string
	Website     string
	Bio         string
}

// UpdateParams for updating a profile. Nil fields are left unchanged.
type UpdateParams struct {
	DisplayName *string
	PhotoURL    *string
	JobTitle    *string
	Company     *string
	Phone       *string
	LinkedIn    *string
	Website     *string
	Bio         *string
}

// Service defines profile operations. Only the profile's owner may mutate
// it; the HTTP layer scopes every call to the authenticated UID.
//
// Implementations must normalize input data:
//   - Email: lowercase and trim whitespace
//   - Phone: trim whitespace
type Service interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Profile, error)
	Get(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error)
	Delete(ctx context.Context, userID string) error
}
