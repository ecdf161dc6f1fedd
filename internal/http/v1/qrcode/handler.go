// Package qrcode exposes the authenticated user's connect payload for the
// client to render as a QR code.
package qrcode

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/netwify/api/internal/platform/auth"
	"github.com/netwify/api/internal/qr"
)

// QRGetInput for GET /qr (no body needed)
type QRGetInput struct{}

// QRGetOutput for GET /qr
type QRGetOutput struct {
	Body struct {
		Payload Payload `json:"payload" doc:"Structured connect payload"`
		Encoded string  `json:"encoded" doc:"JSON string to embed in the QR code" example:"{\"type\":\"netwify_connect\",\"userId\":\"user-123\",\"timestamp\":1700000000000}"`
	}
}

// Payload mirrors the QR wire format.
type Payload struct {
	Kind      string `json:"type"      doc:"Protocol marker"             example:"netwify_connect"`
	UserID    string `json:"userId"    doc:"User to connect with"        example:"user-123"`
	Timestamp int64  `json:"timestamp" doc:"Creation time, epoch millis" example:"1700000000000"`
}

// Register registers QR endpoints.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-qr-payload",
		Method:      http.MethodGet,
		Path:        "/qr",
		Summary:     "Get connect payload",
		Description: "Returns the authenticated user's connect payload, both structured and pre-encoded for QR rendering.",
		Tags:        []string{"QR"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *QRGetInput) (*QRGetOutput, error) {
		user := auth.UserFromContext(ctx)

		payload := qr.New(user.UID)
		encoded, err := payload.Encode()
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}

		out := &QRGetOutput{}
		out.Body.Payload = Payload{
			Kind:      payload.Kind,
			UserID:    payload.UserID,
			Timestamp: payload.Timestamp,
		}
		out.Body.Encoded = encoded
		return out, nil
	})
}
