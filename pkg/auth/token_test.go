package auth

import (
	"testing"
	"time"

	"github.com/bookverse/bookverse-backend/pkg/config"
	"github.com/google/uuid"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "bookverse",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: userID})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s got %s", userID, claims.UserID)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti to be assigned")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestMintRequiresUserID(t *testing.T) {
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatal("expected missing user id to fail")
	}
}
