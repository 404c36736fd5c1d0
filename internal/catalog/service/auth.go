package service

import (
	"context"
	"errors"
	"time"

	"github.com/reelworks/filmstack/internal/catalog/domain"
	"github.com/reelworks/filmstack/internal/catalog/store"
	"github.com/reelworks/filmstack/pkg/cryptox"
	"github.com/reelworks/filmstack/pkg/jwtx"
	"github.com/reelworks/filmstack/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password";
	// callers must never be able to tell which one happened.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrUnauthenticated covers missing, malformed, tampered and expired
	// tokens, and tokens whose subject no longer resolves to a user.
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrInsufficientScope = errors.New("insufficient_scope")
	ErrAccountDisabled   = errors.New("account_disabled")

	ErrInvalidInput = errors.New("invalid_input")
)

// AuthService validates username/password pairs, mints access tokens and
// resolves presented tokens back into an identity plus its granted scopes.
// It holds no per-request state; every call is a store round-trip plus pure
// computation.
type AuthService struct {
	Store     store.Store
	Codec     *jwtx.Codec
	AccessTTL time.Duration
}

// Authenticate checks a username/password pair against the stored hash.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// MintToken signs an access token for the identity carrying the requested
// scopes. The requested scopes are passed through as granted; the scope a
// token can actually exercise is decided per route at authorization time.
// A non-positive ttl falls back to the service default.
func (s *AuthService) MintToken(u domain.User, scopes []string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.AccessTTL
	}
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(u.Username, scopes, ttl, time.Now().UTC())
	return s.Codec.Encode(claims)
}

// Resolve decodes a presented bearer token and re-looks-up the identity by
// the token subject, so a deleted or renamed user is invalidated immediately
// even while the token's signature is still good.
func (s *AuthService) Resolve(ctx context.Context, token string) (domain.User, []string, error) {
	claims, err := s.Codec.Decode(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("token decode failed", "err", err)
		return domain.User{}, nil, ErrUnauthenticated
	}

	u, err := s.Store.Users().GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, nil, ErrUnauthenticated
		}
		return domain.User{}, nil, err
	}

	return u, claims.Scopes, nil
}
