package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the lifetime minted into a token when the caller
// doesn't override it. Short-lived because there is no revocation.
const DefaultAccessTokenTTL = 15 * time.Minute

// TokenType is the token_type tag reported alongside every minted token.
const TokenType = "bearer"

// Claims is the fixed-shape payload signed into every access token. Keeping
// the shape closed (no open-ended map) means structurally malformed payloads
// fail decoding before any business logic sees them.
type Claims struct {
	jwt.RegisteredClaims

	// Scopes the token was granted at login, e.g. ["me", "rates"].
	Scopes []string `json:"scopes,omitempty"`
}

// NewAccessClaims builds minimally-correct claims: subject (username),
// granted scopes, issued-at and expiry. Lifetime is fixed at mint time.
func NewAccessClaims(subject string, scopes []string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scopes: scopes,
	}
}
