package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/netwify/api/internal/platform/logging"
)

// Collection is the Firestore collection holding profile documents, keyed by
// user ID. The name predates this service; the mobile clients already read
// it, so it stays "users".
const Collection = "users"

// Doc maps to the Firestore document structure. Field names match the schema
// the mobile app established. Exported so the connection store can read
// profile documents inside its acceptance transaction.
type Doc struct {
	DisplayName string    `firestore:"displayName"`
	Email       string    `firestore:"email"`
	PhotoURL    string    `firestore:"photoURL"`
	JobTitle    string    `firestore:"jobTitle"`
	Company     string    `firestore:"company"`
	Phone       string    `firestore:"phone"`
	LinkedIn    string    `firestore:"linkedIn"`
	Website     string    `firestore:"website"`
	Bio         string    `firestore:"bio"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

// Profile converts the document into the domain type.
func (d Doc) Profile(userID string) *Profile {
	return &Profile{
		ID:          userID,
		DisplayName: d.DisplayName,
		Email:       d.Email,
		PhotoURL:    d.PhotoURL,
		JobTitle:    d.JobTitle,
		Company:     d.Company,
		Phone:       d.Phone,
		LinkedIn:    d.LinkedIn,
		Website:     d.Website,
		Bio:         d.Bio,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

// FirestoreStore implements Service using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Create creates a new profile using a transaction to prevent duplicates.
func (s *FirestoreStore) Create(ctx context.Context, userID string, params CreateParams) (*Profile, error) {
	docRef := s.client.Collection(Collection).Doc(userID)
	now := time.Now().UTC()

	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			return ErrAlreadyExists
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		d := Doc{
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

		if err := tx.Set(docRef, d); err != nil {
			return err
		}

		result = d.Profile(userID)
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "create", userID, "profile", userID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "create", userID, "profile", userID, "success", nil)

	return result, nil
}

// Get retrieves a profile by user ID.
func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	doc, err := s.client.Collection(Collection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var d Doc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}

	return d.Profile(userID), nil
}

// Update updates a profile using a transaction for atomicity.
func (s *FirestoreStore) Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error) {
	docRef := s.client.Collection(Collection).Doc(userID)

	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var d Doc
		if err := doc.DataTo(&d); err != nil {
			return err
		}

		applyUpdate(&d, params)
		d.UpdatedAt = time.Now().UTC()

		if err := tx.Set(docRef, d); err != nil {
			return err
		}

		result = d.Profile(userID)
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "update", userID, "profile", userID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "update", userID, "profile", userID, "success", nil)

	return result, nil
}

// Delete removes a profile using a transaction to ensure it exists.
func (s *FirestoreStore) Delete(ctx context.Context, userID string) error {
	docRef := s.client.Collection(Collection).Doc(userID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		return tx.Delete(docRef)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "delete", userID, "profile", userID, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}

	applog.LogAuditEvent(ctx, "delete", userID, "profile", userID, "success", nil)

	return nil
}

func applyUpdate(d *Doc, params UpdateParams) {
	if params.DisplayName != nil {
		d.DisplayName = strings.TrimSpace(*params.DisplayName)
	}
	if params.PhotoURL != nil {
		d.PhotoURL = *params.PhotoURL
	}
	if params.JobTitle != nil {
		d.JobTitle = *params.JobTitle
	}
	if params.Company != nil {
		d.Company = *params.Company
	}
	if params.Phone != nil {
		d.Phone = strings.TrimSpace(*params.Phone)
	}
	if params.LinkedIn != nil {
		d.LinkedIn = *params.LinkedIn
	}
	if params.Website != nil {
		d.Website = *params.Website
	}
	if params.Bio != nil {
		d.Bio = *params.Bio
	}
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
