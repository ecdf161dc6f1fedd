// Package contacts exposes the contact ledger over HTTP, including the
// generated relationship summaries and follow-up drafts.
package contacts

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"

	"github.com/danielgtaylor/huma/v2"

	"github.com/netwify/api/internal/platform/auth"
	"github.com/netwify/api/internal/platform/pagination"
	"github.com/netwify/api/internal/platform/timeutil"
	"github.com/netwify/api/internal/service/assistant"
	contactsvc "github.com/netwify/api/internal/service/contact"
	profilesvc "github.com/netwify/api/internal/service/profile"
)

const cursorType = "contact"

// Register registers contact endpoints.
func Register(api huma.API, prefix string, contacts contactsvc.Service, profiles profilesvc.Service, assist assistant.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-contacts",
		Method:      http.MethodGet,
		Path:        "/contacts",
		Summary:     "List contacts with cursor-based pagination",
		Description: "Returns the authenticated user's contacts, newest first. Use the cursor from the Link header to navigate between pages.",
		Tags:        []string{"Contacts"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ContactsListInput) (*ContactsListOutput, error) {
		user := auth.UserFromContext(ctx)

		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != cursorType {
			return nil, huma.Error400BadRequest("cursor type mismatch")
		}

		all, err := contacts.List(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		filtered := filterContacts(all, input.Tag)

		if cursor.Value != "" && findContactIndex(filtered, cursor.Value) == -1 {
			return nil, huma.Error400BadRequest("cursor references unknown contact")
		}

		query := url.Values{}
		if input.Tag != "" {
			query.Set("tag", input.Tag)
		}

		result := pagination.Paginate(
			filtered,
			cursor,
			input.DefaultLimit(),
			cursorType,
			func(c contactsvc.Contact) string { return c.ID },
			prefix+"/contacts",
			query,
		)

		out := &ContactsListOutput{Link: result.LinkHeader}
		out.Body.Total = result.Total
		out.Body.Contacts = make([]Contact, 0, len(result.Items))
		for i := range result.Items {
			out.Body.Contacts = append(out.Body.Contacts, toHTTPContact(&result.Items[i]))
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-contact",
		Method:      http.MethodGet,
		Path:        "/contacts/{id}",
		Summary:     "Get a contact",
		Description: "Retrieves one of the authenticated user's contacts.",
		Tags:        []string{"Contacts"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ContactGetInput) (*ContactGetOutput, error) {
		user := auth.UserFromContext(ctx)

		c, err := contacts.Get(ctx, user.UID, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ContactGetOutput{Body: toHTTPContact(c)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-contact",
		Method:      http.MethodPatch,
		Path:        "/contacts/{id}",
		Summary:     "Update contact annotations",
		Description: "Updates private annotations on a contact. Only provided fields are updated; the snapshot itself is immutable.",
		Tags:        []string{"Contacts"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ContactUpdateInput) (*ContactUpdateOutput, error) {
		user := auth.UserFromContext(ctx)
		if input.Body.Notes == nil && input.Body.Tags == nil && input.Body.MetAt == nil {
			return nil, huma.Error422UnprocessableEntity("at least one field must be provided")
		}

		c, err := contacts.UpdateAnnotations(ctx, user.UID, input.ID, contactsvc.AnnotationParams{
			Notes: input.Body.Notes,
			Tags:  input.Body.Tags,
			MetAt: input.Body.MetAt,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ContactUpdateOutput{Body: toHTTPContact(c)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-contact",
		Method:        http.MethodDelete,
		Path:          "/contacts/{id}",
		Summary:       "Delete a contact",
		Description:   "Removes a contact from the authenticated user's ledger. The other party's row is unaffected.",
		Tags:          []string{"Contacts"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ContactDeleteInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := contacts.Delete(ctx, user.UID, input.ID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "generate-contact-summary",
		Method:      http.MethodPost,
		Path:        "/contacts/{id}/summary",
		Summary:     "Generate a relationship summary",
		Description: "Generates a short summary of the professional relationship and stores it on the contact.",
		Tags:        []string{"Contacts"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *SummaryGenerateInput) (*SummaryGenerateOutput, error) {
		user := auth.UserFromContext(ctx)

		c, err := contacts.Get(ctx, user.UID, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		owner, err := profiles.Get(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}

		summary, err := assist.Summarize(ctx, owner, snapshotProfile(c))
		if err != nil {
			return nil, mapAssistantError(err)
		}

		updated, err := contacts.SetSummary(ctx, user.UID, input.ID, summary)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &SummaryGenerateOutput{Body: toHTTPContact(updated)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "generate-contact-followup",
		Method:      http.MethodPost,
		Path:        "/contacts/{id}/followup",
		Summary:     "Draft a follow-up message",
		Description: "Drafts a follow-up message to the contact in the requested tone and channel. The draft is returned, not stored.",
		Tags:        []string{"Contacts"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *FollowUpGenerateInput) (*FollowUpGenerateOutput, error) {
		user := auth.UserFromContext(ctx)

		c, err := contacts.Get(ctx, user.UID, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		owner, err := profiles.Get(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}

		tone := assistant.Tone(input.Body.Tone)
		if tone == "" {
			tone = assistant.ToneProfessional
		}
		channel := assistant.Channel(input.Body.Channel)
		if channel == "" {
			channel = assistant.ChannelEmail
		}

		message, err := assist.FollowUp(ctx, assistant.FollowUpParams{
			Sender:  owner,
			Contact: c,
			Tone:    tone,
			Channel: channel,
		})
		if err != nil {
			return nil, mapAssistantError(err)
		}

		out := &FollowUpGenerateOutput{}
		out.Body.Message = message
		return out, nil
	})
}

func filterContacts(contacts []contactsvc.Contact, tag string) []contactsvc.Contact {
	if tag == "" {
		return contacts
	}
	return slices.DeleteFunc(slices.Clone(contacts), func(c contactsvc.Contact) bool {
		return !slices.Contains(c.Tags, tag)
	})
}

func findContactIndex(contacts []contactsvc.Contact, id string) int {
	return slices.IndexFunc(contacts, func(c contactsvc.Contact) bool {
		return c.ID == id
	})
}

// snapshotProfile lifts the stored snapshot back into a profile so the
// assistant sees the contact as they looked at connection time.
func snapshotProfile(c *contactsvc.Contact) *profilesvc.Profile {
	return &profilesvc.Profile{
		ID:          c.ContactUserID,
		DisplayName: c.DisplayName,
		Email:       c.Email,
		PhotoURL:    c.PhotoURL,
		JobTitle:    c.JobTitle,
		Company:     c.Company,
		Phone:       c.Phone,
		LinkedIn:    c.LinkedIn,
		Website:     c.Website,
		Bio:         c.Bio,
	}
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, contactsvc.ErrNotFound):
		return huma.Error404NotFound("contact not found")
	case errors.Is(err, contactsvc.ErrPermissionDenied):
		return huma.Error403Forbidden("contact is owned by another user")
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func mapAssistantError(err error) error {
	switch {
	case errors.Is(err, assistant.ErrRateLimited):
		return huma.Error429TooManyRequests("generation is rate limited, try again shortly")
	case errors.Is(err, assistant.ErrUnauthorized), errors.Is(err, assistant.ErrUpstream):
		return huma.Error502BadGateway("generation is temporarily unavailable")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPContact(c *contactsvc.Contact) Contact {
	out := Contact{
		ID:            c.ID,
		ContactUserID: c.ContactUserID,
		DisplayName:   c.DisplayName,
		PhotoURL:      c.PhotoURL,
		JobTitle:      c.JobTitle,
		Company:       c.Company,
		Email:         c.Email,
		Phone:         c.Phone,
		LinkedIn:      c.LinkedIn,
		Website:       c.Website,
		Bio:           c.Bio,
		Notes:         c.Notes,
		Tags:          c.Tags,
		MetAt:         c.MetAt,
		AISummary:     c.AISummary,
		ConnectedAt:   timeutil.Time{Time: c.ConnectedAt},
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if c.LastInteractionAt != nil {
		out.LastInteractionAt = &timeutil.Time{Time: *c.LastInteractionAt}
	}
	return out
}
