package profile

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/netwify/api/internal/platform/auth"
	"github.com/netwify/api/internal/platform/timeutil"
	"github.com/netwify/api/internal/service/photo"
	profilesvc "github.com/netwify/api/internal/service/profile"
)

// Register registers profile endpoints.
func Register(api huma.API, svc profilesvc.Service, photos photo.Service) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-profile",
		Method:        http.MethodPost,
		Path:          "/profile",
		Summary:       "Create user profile",
		Description:   "Creates the contact card for the authenticated user.",
		Tags:          []string{"Profile"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ProfileCreateInput) (*ProfileCreateOutput, error) {
		user := auth.UserFromContext(ctx)

		p, err := svc.Create(ctx, user.UID, profilesvc.CreateParams{
			DisplayName: input.Body.DisplayName,
			Email:       input.Body.Email,
			PhotoURL:    input.Body.PhotoURL,
			JobTitle:    input.Body.JobTitle,
			Company:     input.Body.Company,
			Phone:       input.Body.Phone,
			LinkedIn:    input.Body.LinkedIn,
			Website:     input.Body.Website,
			Bio:         input.Body.Bio,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileCreateOutput{
			Location: "/v1/profile",
			Body:     toHTTPProfile(p),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get current user's profile",
		Description: "Retrieves the contact card for the authenticated user.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileGetOutput, error) {
		user := auth.UserFromContext(ctx)

		p, err := svc.Get(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileGetOutput{
			Body: toHTTPProfile(p),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/profile",
		Summary:     "Update current user's profile",
		Description: "Updates fields on the authenticated user's contact card. Only provided fields are updated.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ProfileUpdateInput) (*ProfileUpdateOutput, error) {
		user := auth.UserFromContext(ctx)
		if !hasProfileUpdateFields(input) {
			return nil, huma.Error422UnprocessableEntity("at least one field must be provided")
		}

		p, err := svc.Update(ctx, user.UID, profilesvc.UpdateParams{
			DisplayName: input.Body.DisplayName,
			PhotoURL:    input.Body.PhotoURL,
			JobTitle:    input.Body.JobTitle,
			Company:     input.Body.Company,
			Phone:       input.Body.Phone,
			LinkedIn:    input.Body.LinkedIn,
			Website:     input.Body.Website,
			Bio:         input.Body.Bio,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileUpdateOutput{
			Body: toHTTPProfile(p),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-profile",
		Method:        http.MethodDelete,
		Path:          "/profile",
		Summary:       "Delete current user's profile",
		Description:   "Permanently deletes the authenticated user's contact card and stored photo.",
		Tags:          []string{"Profile"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ProfileDeleteInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Delete(ctx, user.UID); err != nil {
			return nil, mapServiceError(err)
		}
		if err := photos.Delete(ctx, user.UID); err != nil && !errors.Is(err, photo.ErrNotConfigured) {
			return nil, huma.Error500InternalServerError("internal error")
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "upload-profile-photo",
		Method:      http.MethodPut,
		Path:        "/profile/photo",
		Summary:     "Upload profile photo",
		Description: "Stores the request body as the authenticated user's profile photo and updates the card's photo URL. JPEG, PNG and WebP up to 5 MiB.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *PhotoUploadInput) (*PhotoUploadOutput, error) {
		user := auth.UserFromContext(ctx)

		contentType := normalizeContentType(input.ContentType)
		url, err := photos.Upload(ctx, user.UID, contentType, bytes.NewReader(input.RawBody))
		if err != nil {
			return nil, mapPhotoError(err)
		}

		if _, err := svc.Update(ctx, user.UID, profilesvc.UpdateParams{PhotoURL: &url}); err != nil {
			return nil, mapServiceError(err)
		}

		out := &PhotoUploadOutput{}
		out.Body.PhotoURL = url
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-profile-photo",
		Method:        http.MethodDelete,
		Path:          "/profile/photo",
		Summary:       "Delete profile photo",
		Description:   "Removes the authenticated user's stored photo and clears the card's photo URL.",
		Tags:          []string{"Profile"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *PhotoDeleteInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := photos.Delete(ctx, user.UID); err != nil {
			return nil, mapPhotoError(err)
		}

		empty := ""
		if _, err := svc.Update(ctx, user.UID, profilesvc.UpdateParams{PhotoURL: &empty}); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func hasProfileUpdateFields(input *ProfileUpdateInput) bool {
	return input.Body.DisplayName != nil ||
		input.Body.PhotoURL != nil ||
		input.Body.JobTitle != nil ||
		input.Body.Company != nil ||
		input.Body.Phone != nil ||
		input.Body.LinkedIn != nil ||
		input.Body.Website != nil ||
		input.Body.Bio != nil
}

// normalizeContentType strips media type parameters such as charset.
func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, profilesvc.ErrAlreadyExists):
		return huma.Error409Conflict("profile already exists")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func mapPhotoError(err error) error {
	switch {
	case errors.Is(err, photo.ErrUnsupportedType):
		return huma.Error415UnsupportedMediaType("image must be JPEG, PNG or WebP")
	case errors.Is(err, photo.ErrTooLarge):
		// huma has no generated 413 constructor.
		return huma.NewError(http.StatusRequestEntityTooLarge, "image exceeds the 5 MiB limit")
	case errors.Is(err, photo.ErrNotConfigured):
		return huma.Error503ServiceUnavailable("photo storage is unavailable")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		PhotoURL:    p.PhotoURL,
		JobTitle:    p.JobTitle,
		Company:     p.Company,
		Phone:       p.Phone,
		LinkedIn:    p.LinkedIn,
		Website:     p.Website,
		Bio:         p.Bio,
		CreatedAt:   timeutil.Time{Time: p.CreatedAt},
		UpdatedAt:   timeutil.Time{Time: p.UpdatedAt},
	}
}
