package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/netwify/api/internal/service/contact"
	"github.com/netwify/api/internal/service/profile"
)

func newTestServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

func newTestClient(serverURL string) *Client {
	return NewClient(http.DefaultClient, "test-key", WithBaseURL(serverURL))
}

func completionResponse(text string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": text}},
		},
	}
}

func testProfiles() (*profile.Profile, *profile.Profile) {
	alice := &profile.Profile{
		ID:          "alice",
		DisplayName: "Alice Chen",
		JobTitle:    "Staff Engineer",
		Company:     "Initech",
		Bio:         "Distributed systems.",
	}
	bob := &profile.Profile{
		ID:          "bob",
		DisplayName: "Bob Martinez",
		JobTitle:    "Product Manager",
		Company:     "Globex",
		Bio:         "Building developer tools.",
	}
	return alice, bob
}

func TestSummarize(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer token, got %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Model != "llama-3.1-8b-instant" {
			t.Errorf("expected default model, got %s", req.Model)
		}
		if req.MaxTokens != 150 {
			t.Errorf("expected max_tokens 150, got %d", req.MaxTokens)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(req.Messages))
		}
		if req.Messages[0].Role != "system" {
			t.Errorf("expected system message first, got role %s", req.Messages[0].Role)
		}
		if !strings.Contains(req.Messages[1].Content, "Alice Chen") {
			t.Error("expected prompt to include first profile name")
		}
		if !strings.Contains(req.Messages[1].Content, "Bob Martinez") {
			t.Error("expected prompt to include second profile name")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse("  Alice and Bob complement each other well.  "))
	})
	defer srv.Close()

	alice, bob := testProfiles()
	got, err := newTestClient(srv.URL).Summarize(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Alice and Bob complement each other well." {
		t.Errorf("expected trimmed summary, got %q", got)
	}
}

func TestFollowUp(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		prompt := req.Messages[1].Content
		if !strings.Contains(prompt, "friendly") {
			t.Error("expected prompt to carry the tone")
		}
		if !strings.Contains(prompt, "LinkedIn") {
			t.Error("expected prompt to carry the channel")
		}
		if !strings.Contains(prompt, "Met at GopherCon.") {
			t.Error("expected prompt to include the stored summary")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse("Hi Bob, great to meet you!"))
	})
	defer srv.Close()

	alice, _ := testProfiles()
	got, err := newTestClient(srv.URL).FollowUp(context.Background(), FollowUpParams{
		Sender: alice,
		Contact: &contact.Contact{
			Snapshot: contact.Snapshot{
				DisplayName: "Bob Martinez",
				JobTitle:    "Product Manager",
				Company:     "Globex",
			},
			AISummary: "Met at GopherCon.",
		},
		Tone:    ToneFriendly,
		Channel: ChannelLinkedIn,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hi Bob, great to meet you!" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestFollowUpWithoutSummary(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.Messages[1].Content, "Recently connected on Netwify.") {
			t.Error("expected fallback context when no summary is stored")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse("Hello!"))
	})
	defer srv.Close()

	alice, _ := testProfiles()
	_, err := newTestClient(srv.URL).FollowUp(context.Background(), FollowUpParams{
		Sender:  alice,
		Contact: &contact.Contact{Snapshot: contact.Snapshot{DisplayName: "Bob"}},
		Tone:    ToneProfessional,
		Channel: ChannelEmail,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		retryAfter string
		wantErr    error
		wantKind   UpstreamErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, "", ErrUnauthorized, UpstreamErrorKindUnauthorized},
		{"forbidden", http.StatusForbidden, "", ErrUnauthorized, UpstreamErrorKindUnauthorized},
		{"rate limited", http.StatusTooManyRequests, "30", ErrRateLimited, UpstreamErrorKindRateLimited},
		{"server error", http.StatusInternalServerError, "", ErrUpstream, UpstreamErrorKindUpstream},
		{"bad gateway", http.StatusBadGateway, "", ErrUpstream, UpstreamErrorKindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(func(w http.ResponseWriter, _ *http.Request) {
				if tt.retryAfter != "" {
					w.Header().Set("Retry-After", tt.retryAfter)
				}
				w.WriteHeader(tt.status)
			})
			defer srv.Close()

			alice, bob := testProfiles()
			_, err := newTestClient(srv.URL).Summarize(context.Background(), alice, bob)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected errors.Is %v, got %v", tt.wantErr, err)
			}

			var upstream *UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("expected *UpstreamError, got %T", err)
			}
			if upstream.Kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, upstream.Kind)
			}
			if upstream.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, upstream.Status)
			}
			if tt.retryAfter != "" && upstream.RetryAfter != tt.retryAfter {
				t.Errorf("expected Retry-After %q, got %q", tt.retryAfter, upstream.RetryAfter)
			}
		})
	}
}

func TestEmptyChoices(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})
	defer srv.Close()

	alice, bob := testProfiles()
	_, err := newTestClient(srv.URL).Summarize(context.Background(), alice, bob)
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %T", err)
	}
}

func TestWithModel(t *testing.T) {
	srv := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "llama-3.3-70b-versatile" {
			t.Errorf("expected overridden model, got %s", req.Model)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse("ok"))
	})
	defer srv.Close()

	client := NewClient(http.DefaultClient, "test-key",
		WithBaseURL(srv.URL), WithModel("llama-3.3-70b-versatile"))
	alice, bob := testProfiles()
	if _, err := client.Summarize(context.Background(), alice, bob); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
