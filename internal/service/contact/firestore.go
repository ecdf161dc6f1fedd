package contact

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/netwify/api/internal/platform/logging"
	"github.com/netwify/api/internal/service/profile"
)

// Collection is the Firestore collection holding contact documents.
const Collection = "contacts"

// Doc maps to the Firestore document structure, matching the schema the
// mobile app established. Exported so the connection store can create both
// fan-out rows inside its acceptance transaction.
type Doc struct {
	UserID            string     `firestore:"userId"`
	ContactUserID     string     `firestore:"contactUserId"`
	DisplayName       string     `firestore:"displayName"`
	PhotoURL          string     `firestore:"photoURL"`
	JobTitle          string     `firestore:"jobTitle"`
	Company           string     `firestore:"company"`
	Email             string     `firestore:"email"`
	Phone             string     `firestore:"phone"`
	LinkedIn          string     `firestore:"linkedIn"`
	Website           string     `firestore:"website"`
	Bio               string     `firestore:"bio"`
	Notes             string     `firestore:"notes"`
	Tags              []string   `firestore:"tags"`
	MetAt             string     `firestore:"metAt"`
	AISummary         string     `firestore:"aiSummary"`
	ConnectedAt       time.Time  `firestore:"connectedAt"`
	LastInteractionAt *time.Time `firestore:"lastInteractionAt"`
}

// NewDoc builds the fan-out row owned by ownerID, snapshotting the other
// party's current profile.
func NewDoc(ownerID string, other *profile.Profile, connectedAt time.Time) Doc {
	return Doc{
		UserID:        ownerID,
		ContactUserID: other.ID,
		DisplayName:   other.DisplayName,
		PhotoURL:      other.PhotoURL,
		JobTitle:      other.JobTitle,
		Company:       other.Company,
		Email:         other.Email,
		Phone:         other.Phone,
		LinkedIn:      other.LinkedIn,
		Website:       other.Website,
		Bio:           other.Bio,
		ConnectedAt:   connectedAt,
	}
}

// Contact converts the document into the domain type.
func (d Doc) Contact(id string) *Contact {
	return &Contact{
		ID:            id,
		UserID:        d.UserID,
		ContactUserID: d.ContactUserID,
		Snapshot: Snapshot{
			DisplayName: d.DisplayName,
			PhotoURL:    d.PhotoURL,
			JobTitle:    d.JobTitle,
			Company:     d.Company,
			Email:       d.Email,
			Phone:       d.Phone,
			LinkedIn:    d.LinkedIn,
			Website:     d.Website,
			Bio:         d.Bio,
		},
		Notes:             d.Notes,
		Tags:              d.Tags,
		MetAt:             d.MetAt,
		AISummary:         d.AISummary,
		ConnectedAt:       d.ConnectedAt,
		LastInteractionAt: d.LastInteractionAt,
	}
}

func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	default:
		return "internal_error"
	}
}

// FirestoreStore implements Service using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// List returns the owner's contacts, newest connection first.
func (s *FirestoreStore) List(ctx context.Context, ownerID string) ([]Contact, error) {
	iter := s.client.Collection(Collection).
		Where("userId", "==", ownerID).
		OrderBy("connectedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var contacts []Contact
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var d Doc
		if err := doc.DataTo(&d); err != nil {
			return nil, err
		}
		contacts = append(contacts, *d.Contact(doc.Ref.ID))
	}
	return contacts, nil
}

// Get retrieves one contact, enforcing ownership.
func (s *FirestoreStore) Get(ctx context.Context, ownerID, contactID string) (*Contact, error) {
	doc, err := s.client.Collection(Collection).Doc(contactID).Get(ctx)
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
	if d.UserID != ownerID {
		return nil, ErrPermissionDenied
	}
	return d.Contact(doc.Ref.ID), nil
}

// UpdateAnnotations updates owner-private fields using a transaction.
func (s *FirestoreStore) UpdateAnnotations(ctx context.Context, ownerID, contactID string, params AnnotationParams) (*Contact, error) {
	result, err := s.mutate(ctx, ownerID, contactID, func(d *Doc) {
		if params.Notes != nil {
			d.Notes = *params.Notes
		}
		if params.Tags != nil {
			d.Tags = *params.Tags
		}
		if params.MetAt != nil {
			d.MetAt = *params.MetAt
		}
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "annotate", ownerID, "contact", contactID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "annotate", ownerID, "contact", contactID, "success", nil)

	return result, nil
}

// SetSummary stores generated summary text and bumps the interaction time.
func (s *FirestoreStore) SetSummary(ctx context.Context, ownerID, contactID, summary string) (*Contact, error) {
	now := time.Now().UTC()
	result, err := s.mutate(ctx, ownerID, contactID, func(d *Doc) {
		d.AISummary = summary
		d.LastInteractionAt = &now
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "set_summary", ownerID, "contact", contactID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "set_summary", ownerID, "contact", contactID, "success", nil)

	return result, nil
}

// Delete removes one contact row, enforcing ownership. Only the owner's
// direction is deleted; the other party keeps their copy.
func (s *FirestoreStore) Delete(ctx context.Context, ownerID, contactID string) error {
	docRef := s.client.Collection(Collection).Doc(contactID)

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
		if d.UserID != ownerID {
			return ErrPermissionDenied
		}

		return tx.Delete(docRef)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "delete", ownerID, "contact", contactID, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}

	applog.LogAuditEvent(ctx, "delete", ownerID, "contact", contactID, "success", nil)

	return nil
}

// mutate applies fn to the contact document inside a transaction, enforcing
// ownership.
func (s *FirestoreStore) mutate(ctx context.Context, ownerID, contactID string, fn func(*Doc)) (*Contact, error) {
	docRef := s.client.Collection(Collection).Doc(contactID)

	var result *Contact

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
		if d.UserID != ownerID {
			return ErrPermissionDenied
		}

		fn(&d)

		if err := tx.Set(docRef, d); err != nil {
			return err
		}

		result = d.Contact(contactID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
