package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	user := &domain.User{
		ID:       uuid.New(),
		Role:     domain.RoleAdmin,
		Language: "Dutch",
	}

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	userID, claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, userID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role claim, got %q", claims.Role)
	}
	if claims.Lang != "nl" {
		t.Fatalf("expected language code nl in claims, got %q", claims.Lang)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(&domain.User{ID: uuid.New(), Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -2*time.Minute)

	token, err := svc.Issue(&domain.User{ID: uuid.New(), Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, _, err := svc.Verify(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	if _, _, err := svc.Verify("not-a-token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !CheckPassword(hash, "hunter2!") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}
