package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	token, exp, err := tm.GenerateToken("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken() = %v, want nil", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry %v is not in the future", exp)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() = %v, want nil", err)
	}
	if claims.SubjectID != "user-1" {
		t.Errorf("SubjectID = %q, want %q", claims.SubjectID, "user-1")
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, domain.RoleAdmin)
	}
	if claims.RegisteredClaims.ID == "" {
		t.Error("token id (jti) is empty")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 5)
	verifier := NewTokenManager("secret-b", 5)

	token, _, err := issuer.GenerateToken("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken() = %v, want nil", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	claims := &Claims{
		SubjectID: "user-1",
		Role:      domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.ParseToken(expired); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.ParseToken(input); err == nil {
			t.Errorf("ParseToken(%q) succeeded, want error", input)
		}
	}
}
