package auth

import (
	"context"
	"errors"
	"testing"
)

func TestMockVerifierReturnsUser(t *testing.T) {
	verifier := &MockVerifier{User: TestUser()}

	user, err := verifier.Verify(context.Background(), "any-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.UID != "test-user-123" {
		t.Fatalf("expected test-user-123, got %s", user.UID)
	}
	if !user.EmailVerified {
		t.Fatal("expected verified email on the test user")
	}
}

func TestMockVerifierReturnsError(t *testing.T) {
	verifier := &MockVerifier{Error: ErrTokenExpired}

	if _, err := verifier.Verify(context.Background(), "any-token"); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
