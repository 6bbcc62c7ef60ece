package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/darie-immo/darie-api/internal/shared"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)

	signed, err := tokens.Issue(42, "a@b.com", "Alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "a@b.com" || claims.Nom != "Alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	issuedAt := time.Now()
	tokens.now = func() time.Time { return issuedAt }

	signed, err := tokens.Issue(1, "a@b.com", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Just before expiry the token still verifies.
	tokens.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	if _, err := tokens.Verify(signed); err != nil {
		t.Fatalf("expected valid token before expiry, got %v", err)
	}

	tokens.now = func() time.Time { return issuedAt.Add(time.Hour + time.Second) }
	if _, err := tokens.Verify(signed); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	signed, err := NewTokenManager("secret-a", time.Hour).Issue(1, "a@b.com", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenManager("secret-b", time.Hour).Verify(signed); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for forged signature, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := tokens.Verify(raw); !errors.Is(err, shared.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}
