// Package token issues and verifies the signed bearer tokens handed out at
// login. Tokens are HS256-signed JWTs carrying the user ID as subject.
package token

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const issuer = "timetable"

// Service signs and verifies auth tokens with a shared secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service. The secret must be non-empty.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token for the given user.
func (s *Service) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	tok, err := jwt.NewBuilder().
		Issuer(issuer).
		Subject(userID.String()).
		IssuedAt(now).
		Expiration(now.Add(s.ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), nil
}

// Verify validates a token's signature, issuer and expiry, returning the
// user ID it was issued for.
func (s *Service) Verify(raw string) (uuid.UUID, error) {
	tok, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, s.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token: %w", err)
	}

	userID, err := uuid.Parse(tok.Subject())
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token subject: %w", err)
	}

	return userID, nil
}
