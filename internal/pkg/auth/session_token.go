package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

const defaultSessionTTL = 24 * time.Hour

type sessionClaims struct {
	Subject   int64 `json:"sub"`
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

// SessionTokens signs base64url encoded JSON claims with HMAC-SHA256.
// Token layout: <claims>.<signature>.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionTokens(secret string, opts Options) *SessionTokens {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionTokens{secret: []byte(secret), ttl: ttl, now: now}
}

// IssueToken returns a token valid for the configured TTL.
func (s *SessionTokens) IssueToken(userID int64) (string, error) {
	issued := s.now()
	raw, err := json.Marshal(sessionClaims{
		Subject:   userID,
		IssuedAt:  issued.Unix(),
		ExpiresAt: issued.Add(s.ttl).Unix(),
	})
	if err != nil {
		return "", err
	}
	claims := base64.RawURLEncoding.EncodeToString(raw)
	return claims + "." + s.sign(claims), nil
}

// ParseToken verifies signature and expiry and returns the subject.
func (s *SessionTokens) ParseToken(token string) (int64, error) {
	claimsPart, sigPart, ok := strings.Cut(token, ".")
	if !ok || claimsPart == "" || sigPart == "" {
		return 0, ErrInvalidToken
	}

	if !hmac.Equal([]byte(s.sign(claimsPart)), []byte(sigPart)) {
		return 0, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(claimsPart)
	if err != nil {
		return 0, ErrInvalidToken
	}

	var claims sessionClaims
	if err := json.Unmarshal(raw, &claims); err != nil || claims.Subject <= 0 {
		return 0, ErrInvalidToken
	}

	if !s.now().Before(time.Unix(claims.ExpiresAt, 0)) {
		return 0, ErrInvalidToken
	}

	return claims.Subject, nil
}

func (s *SessionTokens) Name() string {
	return "session-hmac"
}

func (s *SessionTokens) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
