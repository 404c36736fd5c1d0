// Package jwtx encodes and decodes the service's bearer tokens.
//
// The codec is a stateless transform over a process-wide HMAC secret: it
// neither persists nor tracks issued tokens, so a valid, unexpired token is
// accepted until it expires naturally. That limitation is deliberate;
// there is no revocation list.
package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")

	ErrInvalidClaim     = errors.New("jwtx: invalid claims")
	ErrUnknownAlgorithm = errors.New("jwtx: unknown signing algorithm")
	ErrEmptySecret      = errors.New("jwtx: empty signing secret")
)

// Codec signs and verifies access tokens with a shared HMAC secret.
// Construct one per process with the configured secret rather than reading
// globals, so tests can inject their own.
type Codec struct {
	method jwt.SigningMethod
	secret []byte
	parser *jwt.Parser
}

// NewCodec builds a codec for the given HMAC algorithm (HS256, HS384 or
// HS512) and secret.
func NewCodec(algorithm string, secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	var method jwt.SigningMethod
	switch algorithm {
	case jwt.SigningMethodHS256.Alg():
		method = jwt.SigningMethodHS256
	case jwt.SigningMethodHS384.Alg():
		method = jwt.SigningMethodHS384
	case jwt.SigningMethodHS512.Alg():
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}

	return &Codec{
		method: method,
		secret: secret,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{method.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Alg reports the configured signing algorithm.
func (c *Codec) Alg() string { return c.method.Alg() }

// Encode signs the claims into a compact token string.
func (c *Codec) Encode(claims Claims) (string, error) {
	t := jwt.NewWithClaims(c.method, claims)
	s, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return s, nil
}

// Decode verifies the token signature, then validates the claims against the
// wall clock. The signature check always precedes any trust in the payload:
// a tampered token reports ErrInvalidSig even if its claims look fine, and
// only a genuinely-signed token can report ErrExpired.
func (c *Codec) Decode(tokenStr string) (Claims, error) {
	token, err := c.parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		default:
			return Claims{}, fmt.Errorf("%w: %w", ErrInvalidClaim, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidClaim
	}

	return *claims, nil
}
