package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "ops", RoleAdmin, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "ops" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "ops", RoleAdmin, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateToken(strings.Repeat("x", 32), token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, "ops", RoleAdmin, time.Minute, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateToken(testSecret, token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestValidateTokenRejectsUnsignedAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: RoleAdmin})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ValidateToken(testSecret, signed); err == nil {
		t.Fatal("expected none algorithm to be rejected")
	}
}

func TestMissingSecret(t *testing.T) {
	if _, err := GenerateToken("", "ops", RoleAdmin, time.Hour, time.Now()); err == nil {
		t.Fatal("expected error without secret")
	}
	if _, err := ValidateToken("", "token"); err == nil {
		t.Fatal("expected error without secret")
	}
}
