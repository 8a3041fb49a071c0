package jwtauth

import (
	"context"
	"testing"
	"time"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	verifier := NewVerifier("test-secret")

	token, err := issuer.Issue("user-1", "ana@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := verifier.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected user-1, got %q", claims.UserID)
	}
	if claims.Email != "ana@example.com" {
		t.Fatalf("expected email claim, got %q", claims.Email)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer("secret-a", time.Hour)
	verifier := NewVerifier("secret-b")

	token, err := issuer.Issue("user-1", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(context.Background(), token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.Issue("user-1", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewVerifier("test-secret").Verify(context.Background(), token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerify_RejectsEmptyToken(t *testing.T) {
	if _, err := NewVerifier("test-secret").Verify(context.Background(), "  "); err != ErrTokenEmpty {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}
