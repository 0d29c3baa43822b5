package services

import (
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(testConfig(t))

	token, err := svc.GenerateToken(7, "admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ExtractClaims(token)
	if err != nil {
		t.Fatalf("ExtractClaims: %v", err)
	}
	if claims.AdminID != 7 || claims.Email != "admin@example.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	svc := NewJWTService(testConfig(t))

	token, err := svc.GenerateToken(7, "admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ExtractClaims(token + "x"); err == nil {
		t.Fatal("tampered token must be rejected")
	}
	if _, err := svc.ExtractClaims("not-a-token"); err == nil {
		t.Fatal("malformed token must be rejected")
	}
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	issuing := NewJWTService(testConfig(t))
	cfg := testConfig(t)
	cfg.JWTSecretKey = "different-secret"
	validating := NewJWTService(cfg)

	token, err := issuing.GenerateToken(7, "admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := validating.ExtractClaims(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}
