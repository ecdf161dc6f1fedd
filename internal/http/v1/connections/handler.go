// Package connections exposes the connection lifecycle over HTTP: resolving
// scans, sending requests and responding to them.
package connections

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/netwify/api/internal/platform/auth"
	"github.com/netwify/api/internal/platform/timeutil"
	"github.com/netwify/api/internal/qr"
	connectionsvc "github.com/netwify/api/internal/service/connection"
	profilesvc "github.com/netwify/api/internal/service/profile"
)

// Register registers connection endpoints.
func Register(api huma.API, svc connectionsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "scan-connect-code",
		Method:      http.MethodPost,
		Path:        "/connections/scan",
		Summary:     "Resolve a scanned connect code",
		Description: "Validates scanned QR data and returns the target user's current card for confirmation.",
		Tags:        []string{"Connections"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ScanInput) (*ScanOutput, error) {
		user := auth.UserFromContext(ctx)

		result, err := svc.ResolveScan(ctx, user.UID, input.Body.Data)
		if err != nil {
			return nil, mapServiceError(err)
		}

		out := &ScanOutput{}
		out.Body.Target = ScanTarget{
			UserID:      result.Profile.ID,
			DisplayName: result.Profile.DisplayName,
			PhotoURL:    result.Profile.PhotoURL,
			JobTitle:    result.Profile.JobTitle,
			Company:     result.Profile.Company,
			Bio:         result.Profile.Bio,
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "send-connection-request",
		Method:        http.MethodPost,
		Path:          "/connections/requests",
		Summary:       "Send a connection request",
		Description:   "Creates a pending request to another user, carrying a snapshot of the sender's card.",
		Tags:          []string{"Connections"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *RequestSendInput) (*RequestSendOutput, error) {
		user := auth.UserFromContext(ctx)

		r, err := svc.Send(ctx, user.UID, connectionsvc.SendParams{
			ToUserID: input.Body.ToUserID,
			Message:  input.Body.Message,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &RequestSendOutput{
			Location: "/v1/connections/requests",
			Body:     toHTTPRequest(r),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-connection-requests",
		Method:      http.MethodGet,
		Path:        "/connections/requests",
		Summary:     "List pending connection requests",
		Description: "Lists the authenticated user's pending requests, incoming by default.",
		Tags:        []string{"Connections"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *RequestListInput) (*RequestListOutput, error) {
		user := auth.UserFromContext(ctx)

		var (
			requests []connectionsvc.Request
			err      error
		)
		if input.Direction == "outgoing" {
			requests, err = svc.ListOutgoing(ctx, user.UID)
		} else {
			requests, err = svc.ListIncoming(ctx, user.UID)
		}
		if err != nil {
			return nil, mapServiceError(err)
		}

		out := &RequestListOutput{}
		out.Body.Requests = make([]Request, 0, len(requests))
		for i := range requests {
			out.Body.Requests = append(out.Body.Requests, toHTTPRequest(&requests[i]))
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "accept-connection-request",
		Method:      http.MethodPost,
		Path:        "/connections/requests/{id}/accept",
		Summary:     "Accept a connection request",
		Description: "Accepts a pending request addressed to the authenticated user, creating a contact for both parties.",
		Tags:        []string{"Connections"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *RequestAcceptInput) (*RequestRespondOutput, error) {
		user := auth.UserFromContext(ctx)

		r, err := svc.Accept(ctx, input.ID, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &RequestRespondOutput{Body: toHTTPRequest(r)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "decline-connection-request",
		Method:      http.MethodPost,
		Path:        "/connections/requests/{id}/decline",
		Summary:     "Decline a connection request",
		Description: "Declines a pending request addressed to the authenticated user. No contact is created and the sender is not notified.",
		Tags:        []string{"Connections"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *RequestDeclineInput) (*RequestRespondOutput, error) {
		user := auth.UserFromContext(ctx)

		r, err := svc.Decline(ctx, input.ID, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &RequestRespondOutput{Body: toHTTPRequest(r)}, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, qr.ErrInvalidPayload):
		return huma.Error422UnprocessableEntity("scanned data is not a valid connect code")
	case errors.Is(err, qr.ErrSelfConnect):
		return huma.Error422UnprocessableEntity("you cannot connect with yourself")
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("user not found")
	case errors.Is(err, connectionsvc.ErrNotFound):
		return huma.Error404NotFound("request not found")
	case errors.Is(err, connectionsvc.ErrAlreadyConnected):
		return huma.Error409Conflict("you are already connected")
	case errors.Is(err, connectionsvc.ErrDuplicateRequest):
		return huma.Error409Conflict("a pending request already exists")
	case errors.Is(err, connectionsvc.ErrInvalidStateTransition):
		return huma.Error409Conflict("request has already been responded to")
	case errors.Is(err, connectionsvc.ErrPermissionDenied):
		return huma.Error403Forbidden("request is not addressed to you")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPRequest(r *connectionsvc.Request) Request {
	out := Request{
		ID:         r.ID,
		FromUserID: r.FromUserID,
		ToUserID:   r.ToUserID,
		FromUser: SenderSnapshot{
			DisplayName: r.FromUser.DisplayName,
			PhotoURL:    r.FromUser.PhotoURL,
			JobTitle:    r.FromUser.JobTitle,
			Company:     r.FromUser.Company,
		},
		Status:    string(r.Status),
		Message:   r.Message,
		CreatedAt: timeutil.Time{Time: r.CreatedAt},
	}
	if r.RespondedAt != nil {
		out.RespondedAt = &timeutil.Time{Time: *r.RespondedAt}
	}
	return out
}
