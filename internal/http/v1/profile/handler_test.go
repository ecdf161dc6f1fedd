package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/netwify/api/internal/platform/auth"
	applog "github.com/netwify/api/internal/platform/logging"
	appmiddleware "github.com/netwify/api/internal/platform/middleware"
	"github.com/netwify/api/internal/platform/respond"
	"github.com/netwify/api/internal/service/photo"
	profilesvc "github.com/netwify/api/internal/service/profile"
)

func newTestRouter(svc profilesvc.Service, photos photo.Service, verifier auth.Verifier) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("ProfileTest", "test"))
	api.UseMiddleware(auth.NewMiddleware(api, verifier))
	Register(api, svc, photos)
	return router
}

func seedProfile(t *testing.T, svc *profilesvc.MockService) *profilesvc.Profile {
	t.Helper()
	p, err := svc.Create(context.Background(), auth.TestUser().UID, profilesvc.CreateParams{
		DisplayName: "Jane Smith",
		Email:       "jane@example.com",
		JobTitle:    "Staff Engineer",
		Company:     "Initech",
	})
	if err != nil {
		t.Fatalf("seeding profile: %v", err)
	}
	return p
}

func TestCreateProfileSuccess(t *testing.T) {
	svc := profilesvc.NewMockService()
	router := newTestRouter(svc, photo.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	body := `{"displayName":"Jane Smith","email":"jane@example.com","jobTitle":"Staff Engineer","company":"Initech"}`
	req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if location := resp.Header().Get("Location"); location != "/v1/profile" {
		t.Errorf("expected Location /v1/profile, got %s", location)
	}

	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.ID != auth.TestUser().UID {
		t.Errorf("expected profile keyed by UID, got %s", p.ID)
	}
	if p.DisplayName != "Jane Smith" {
		t.Errorf("expected display name Jane Smith, got %s", p.DisplayName)
	}
}

func TestCreateProfileConflict(t *testing.T) {
	svc := profilesvc.NewMockService()
	seedProfile(t, svc)
	router := newTestRouter(svc, photo.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	body := `{"displayName":"Jane Smith","email":"jane@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateProfileUnauthorized(t *testing.T) {
	svc := profilesvc.NewMockService()
	router := newTestRouter(svc, photo.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	body := `{"displayName":"Jane Smith","email":"jane@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if wwwAuth := resp.Header().Get("WWW-Authenticate"); wwwAuth != "Bearer" {
		t.Errorf("expected WWW-Authenticate: Bearer, got %s", wwwAuth)
	}
}

func TestGetProfileSuccess(t *testing.T) {
	svc := profilesvc.NewMockService()
	seedProfile(t, svc)
	router := newTestRouter(svc, photo.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.JobTitle != "Staff Engineer" {
		t.Errorf("expected job title Staff Engineer, got %s", p.JobTitle)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc := profilesvc.NewMockService()
	router := newTestRouter(svc, photo.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := profilesvc.NewMockService()
	seedProfile(t, svc)
	router := newTestRouter(svc, photo.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	body := `{"jobTitle":"Principal Engineer"}`
	req := httptest.NewRequest(http.MethodPatch, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.JobTitle != "Principal Engineer" {
		t.Errorf("expected updated job title, got %s", p.JobTitle)
	}
	if p.DisplayName != "Jane Smith" {
		t.Errorf("expected untouched display name, got %s", p.DisplayName)
	}
}

func TestUpdateProfileEmptyBody(t *testing.T) {
	svc := profilesvc.NewMockService()
	seedProfile(t, svc)
	router := newTestRouter(svc, photo.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodPatch, "/profile", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestDeleteProfile(t *testing.T) {
	svc := profilesvc.NewMockService()
	seedProfile(t, svc)
	router := newTestRouter(svc, photo.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodDelete, "/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	if _, err := svc.Get(context.Background(), auth.TestUser().UID); err == nil {
		t.Error("expected profile to be gone after delete")
	}
}

func TestUploadPhoto(t *testing.T) {
	svc := profilesvc.NewMockService()
	seedProfile(t, svc)
	photos := photo.NewMockService()
	router := newTestRouter(svc, photos, &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodPut, "/profile/photo", bytes.NewReader([]byte("fake-jpeg-bytes")))
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		PhotoURL string `json:"photoURL"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if out.PhotoURL == "" {
		t.Fatal("expected a photo URL")
	}

	// The card's photo URL is updated in the same call.
	p, err := svc.Get(context.Background(), auth.TestUser().UID)
	if err != nil {
		t.Fatalf("getting profile: %v", err)
	}
	if p.PhotoURL != out.PhotoURL {
		t.Errorf("expected profile photo URL %q, got %q", out.PhotoURL, p.PhotoURL)
	}
}

func TestUploadPhotoUnsupportedType(t *testing.T) {
	svc := profilesvc.NewMockService()
	seedProfile(t, svc)
	router := newTestRouter(svc, photo.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodPut, "/profile/photo", bytes.NewReader([]byte("gif-bytes")))
	req.Header.Set("Content-Type", "image/gif")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUploadPhotoTooLarge(t *testing.T) {
	svc := profilesvc.NewMockService()
	seedProfile(t, svc)
	router := newTestRouter(svc, photo.NewMockService(), &auth.MockVerifier{User: auth.TestUser()})

	oversized := bytes.Repeat([]byte("x"), photo.MaxSize+1)
	req := httptest.NewRequest(http.MethodPut, "/profile/photo", bytes.NewReader(oversized))
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", resp.Code, resp.Body.String())
	}

	// The card's photo URL stays empty after the rejected upload.
	p, err := svc.Get(context.Background(), auth.TestUser().UID)
	if err != nil {
		t.Fatalf("getting profile: %v", err)
	}
	if p.PhotoURL != "" {
		t.Errorf("expected no photo URL, got %q", p.PhotoURL)
	}
}

func TestDeletePhoto(t *testing.T) {
	svc := profilesvc.NewMockService()
	seedProfile(t, svc)
	photos := photo.NewMockService()
	if _, err := photos.Upload(context.Background(), auth.TestUser().UID, "image/jpeg", strings.NewReader("bytes")); err != nil {
		t.Fatalf("seeding photo: %v", err)
	}
	router := newTestRouter(svc, photos, &auth.MockVerifier{User: auth.TestUser()})

	req := httptest.NewRequest(http.MethodDelete, "/profile/photo", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.Code, resp.Body.String())
	}
	if _, _, ok := photos.Stored(auth.TestUser().UID); ok {
		t.Error("expected stored photo to be removed")
	}

	p, err := svc.Get(context.Background(), auth.TestUser().UID)
	if err != nil {
		t.Fatalf("getting profile: %v", err)
	}
	if p.PhotoURL != "" {
		t.Errorf("expected cleared photo URL, got %q", p.PhotoURL)
	}
}
