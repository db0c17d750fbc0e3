package auth

import (
	"testing"
	"time"
)

const (
	testSecret = "test-secret"
	testIssuer = "parkify"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := NewAccessToken(testSecret, testIssuer, time.Hour, Claims{
		UserID: "op-1",
		Role:   "operador",
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := ParseToken(testSecret, testIssuer, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "op-1" {
		t.Fatalf("user = %q", claims.UserID)
	}
	if claims.Role != "operador" {
		t.Fatalf("role = %q", claims.Role)
	}
	if claims.Subject != "op-1" {
		t.Fatalf("subject = %q", claims.Subject)
	}
}

func TestParseTokenRejections(t *testing.T) {
	t.Parallel()

	token, err := NewAccessToken(testSecret, testIssuer, time.Hour, Claims{UserID: "op-1", Role: "operador"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	t.Run("wrong secret", func(t *testing.T) {
		if _, err := ParseToken("other-secret", testIssuer, token); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		if _, err := ParseToken(testSecret, "someone-else", token); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := NewAccessToken(testSecret, testIssuer, -time.Minute, Claims{UserID: "op-1"})
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if _, err := ParseToken(testSecret, testIssuer, expired); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := ParseToken(testSecret, testIssuer, "not.a.token"); err == nil {
			t.Fatalf("expected error")
		}
	})
}
