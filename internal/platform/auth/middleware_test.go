package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
)

type testOutput struct {
	Body struct {
		UserID string `json:"userId"`
	}
}

func setupTestAPI(verifier Verifier, requireAuth bool) *chi.Mux {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))

	api.UseMiddleware(NewMiddleware(api, verifier))

	var security []map[string][]string
	if requireAuth {
		security = []map[string][]string{{"bearerAuth": {}}}
	}

	huma.Register(api, huma.Operation{
		OperationID: "test-endpoint",
		Method:      http.MethodGet,
		Path:        "/test",
		Security:    security,
	}, func(ctx context.Context, _ *struct{}) (*testOutput, error) {
		out := &testOutput{}
		if user := UserFromContext(ctx); user != nil {
			out.Body.UserID = user.UID
		}
		return out, nil
	})

	return router
}

func TestMiddlewareSkipsUnsecuredEndpoints(t *testing.T) {
	router := setupTestAPI(&MockVerifier{Error: ErrInvalidToken}, false)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unsecured endpoint, got %d", rec.Code)
	}
}

func TestMiddlewareRequiresAuthHeader(t *testing.T) {
	router := setupTestAPI(&MockVerifier{User: TestUser()}, true)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth header, got %d", rec.Code)
	}
	if wwwAuth := rec.Header().Get("WWW-Authenticate"); wwwAuth != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer, got %q", wwwAuth)
	}
}

func TestMiddlewareRejectsNonBearerScheme(t *testing.T) {
	router := setupTestAPI(&MockVerifier{User: TestUser()}, true)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for Basic auth, got %d", rec.Code)
	}
}

func TestMiddlewareAuthenticatesValidToken(t *testing.T) {
	router := setupTestAPI(&MockVerifier{User: &User{UID: "verified-user-789"}}, true)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d", rec.Code)
	}

	var out struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if out.UserID != "verified-user-789" {
		t.Fatalf("expected verified user ID in context, got %q", out.UserID)
	}
}

func TestMiddlewareRejectsFailedVerification(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid token", ErrInvalidToken},
		{"expired token", ErrTokenExpired},
		{"revoked token", ErrTokenRevoked},
		{"disabled user", ErrUserDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestAPI(&MockVerifier{Error: tt.err}, true)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer bad-token")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if wwwAuth := rec.Header().Get("WWW-Authenticate"); wwwAuth != "Bearer" {
				t.Fatalf("expected WWW-Authenticate: Bearer, got %q", wwwAuth)
			}
		})
	}
}

func TestMiddlewareCertificateFetchFailure(t *testing.T) {
	router := setupTestAPI(&MockVerifier{Error: ErrCertificateFetch}, true)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for certificate fetch failure, got %d", rec.Code)
	}
	if retry := rec.Header().Get("Retry-After"); retry != "30" {
		t.Fatalf("expected Retry-After: 30, got %q", retry)
	}
}

func TestUserFromContextMissing(t *testing.T) {
	if user := UserFromContext(context.Background()); user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}
