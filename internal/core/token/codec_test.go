package token

import (
	"strings"
	"testing"
	"time"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "u1",
		Name:  "pizza diner",
		Email: "d1@x.com",
		Roles: []domain.RoleRef{{Role: domain.RoleDiner}},
	}
}

func TestCodec_IssueAndVerify(t *testing.T) {
	codec := NewCodec("secret", 0)

	tok, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "d1@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.HasRole(domain.RoleDiner) {
		t.Fatalf("expected diner role")
	}
	if claims.HasRole(domain.RoleAdmin) {
		t.Fatalf("did not expect admin role")
	}
	if claims.IssuedAt == nil {
		t.Fatalf("expected issued-at claim")
	}
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	tok, err := NewCodec("secret", 0).Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := NewCodec("other", 0).Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Verify_Malformed(t *testing.T) {
	codec := NewCodec("secret", 0)

	for _, raw := range []string{"", "not-a-real-token", "a.b", "a.b.c.d", strings.Repeat("x", 4096)} {
		if _, err := codec.Verify(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	codec := NewCodec("secret", -time.Minute)

	tok, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := codec.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestSignatureOf(t *testing.T) {
	codec := NewCodec("secret", 0)
	tok, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	sig := SignatureOf(tok)
	if sig == "" {
		t.Fatalf("expected signature segment")
	}
	if !strings.HasSuffix(tok, "."+sig) {
		t.Fatalf("signature %q is not the trailing segment of %q", sig, tok)
	}

	for _, raw := range []string{"", "noseparators", "one.two", "a.b.c.d", "a.b."} {
		if got := SignatureOf(raw); got != "" {
			t.Fatalf("expected empty signature for %q, got %q", raw, got)
		}
	}
}
