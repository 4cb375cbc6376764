package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestNewSessionTokens_Defaults(t *testing.T) {
	tokens := NewSessionTokens("secret", Options{})
	if string(tokens.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(tokens.secret))
	}
	if tokens.ttl != defaultSessionTTL {
		t.Fatalf("unexpected ttl: %s", tokens.ttl)
	}
	if tokens.now == nil {
		t.Fatal("expected clock")
	}
}

func TestSessionTokens_IssueAndParse(t *testing.T) {
	tokens := NewSessionTokens("secret", Options{TTL: time.Minute})
	token, err := tokens.IssueToken(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if strings.Count(token, ".") != 1 {
		t.Fatalf("unexpected token layout: %q", token)
	}
	userID, err := tokens.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if userID != 42 {
		t.Fatalf("unexpected user id: %d", userID)
	}
}

func TestSessionTokens_RejectsOtherSecret(t *testing.T) {
	token, err := NewSessionTokens("one", Options{}).IssueToken(7)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := NewSessionTokens("two", Options{}).ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionTokens_RejectsTamperedClaims(t *testing.T) {
	tokens := NewSessionTokens("secret", Options{})
	token, err := tokens.IssueToken(7)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	_, sig, _ := strings.Cut(token, ".")
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":1,"iat":0,"exp":9999999999}`))
	if _, err := tokens.ParseToken(forged + "." + sig); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionTokens_RejectsMalformed(t *testing.T) {
	tokens := NewSessionTokens("secret", Options{})
	signed := func(claims string) string {
		encoded := base64.RawURLEncoding.EncodeToString([]byte(claims))
		return encoded + "." + tokens.sign(encoded)
	}

	cases := map[string]string{
		"empty":         "",
		"no separator":  "abc",
		"empty sig":     "abc.",
		"not json":      signed("not-json"),
		"zero subject":  signed(`{"sub":0,"exp":9999999999}`),
		"bad signature": signed(`{"sub":1,"exp":9999999999}`) + "x",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := tokens.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestSessionTokens_Expiry(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewSessionTokens("secret", Options{TTL: time.Hour, Now: fixedClock(issued)})
	token, err := issuer.IssueToken(3)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	stillValid := NewSessionTokens("secret", Options{Now: fixedClock(issued.Add(59 * time.Minute))})
	if _, err := stillValid.ParseToken(token); err != nil {
		t.Fatalf("expected token to be valid, got %v", err)
	}

	expired := NewSessionTokens("secret", Options{Now: fixedClock(issued.Add(time.Hour))})
	if _, err := expired.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionTokens_Name(t *testing.T) {
	if name := NewSessionTokens("secret", Options{}).Name(); name != "session-hmac" {
		t.Fatalf("unexpected name: %s", name)
	}
}
