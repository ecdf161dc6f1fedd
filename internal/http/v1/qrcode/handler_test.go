package qrcode

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/netwify/api/internal/platform/auth"
	appmiddleware "github.com/netwify/api/internal/platform/middleware"
	"github.com/netwify/api/internal/qr"
)

func newTestRouter(verifier auth.Verifier) chi.Router {
	router := chi.NewRouter()
	router.Use(appmiddleware.RequestID())
	api := humachi.New(router, huma.DefaultConfig("QRTest", "test"))
	api.UseMiddleware(auth.NewMiddleware(api, verifier))
	Register(api)
	return router
}

func TestGetQRPayload(t *testing.T) {
	router := newTestRouter(&auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodGet, "/qr", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Payload Payload `json:"payload"`
		Encoded string  `json:"encoded"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if out.Payload.Kind != qr.Kind {
		t.Errorf("expected kind %q, got %q", qr.Kind, out.Payload.Kind)
	}
	if out.Payload.UserID != auth.TestUser().UID {
		t.Errorf("expected the authenticated user's ID, got %s", out.Payload.UserID)
	}
	if out.Payload.Timestamp == 0 {
		t.Error("expected timestamp to be set")
	}

	// The encoded string round-trips through the scan decoder.
	decoded, err := qr.Decode(out.Encoded)
	if err != nil {
		t.Fatalf("decoding encoded payload: %v", err)
	}
	if decoded.UserID != auth.TestUser().UID {
		t.Errorf("expected decoded user ID %s, got %s", auth.TestUser().UID, decoded.UserID)
	}
}

func TestGetQRPayloadUnauthorized(t *testing.T) {
	router := newTestRouter(&auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodGet, "/qr", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
