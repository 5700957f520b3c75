package security

import (
	"strings"
	"testing"
	"time"

	"campushire/internal/common"
)

func TestJWTProviderRoundTrip(t *testing.T) {
	provider := NewJWTProvider("secret")
	userID := common.NewUUID()

	token, expiresAt, err := provider.Generate(userID, "student", time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if expiresAt.Before(time.Now().UTC()) {
		t.Fatal("expected future expiry")
	}

	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "student" {
		t.Fatalf("expected role student, got %q", claims.Role)
	}
}

func TestJWTProviderRejectsTamperedToken(t *testing.T) {
	provider := NewJWTProvider("secret")
	token, _, err := provider.Generate(common.NewUUID(), "admin", time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := provider.Parse(tampered); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestJWTProviderRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTProvider("secret-a").Generate(common.NewUUID(), "company", time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := NewJWTProvider("secret-b").Parse(token); err == nil {
		t.Fatal("expected wrong secret to be rejected")
	}
}

func TestJWTProviderRejectsExpiredToken(t *testing.T) {
	provider := NewJWTProvider("secret")
	token, _, err := provider.Generate(common.NewUUID(), "student", -time.Minute)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := provider.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestJWTProviderRejectsMalformedToken(t *testing.T) {
	provider := NewJWTProvider("secret")
	for _, token := range []string{"", "a.b", "a.b.c.d"} {
		if _, err := provider.Parse(token); err == nil {
			t.Fatalf("expected %q to be rejected", token)
		}
	}
}
