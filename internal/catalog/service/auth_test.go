package service

import (
	"context"
	"testing"
	"time"

	"github.com/reelworks/filmstack/internal/catalog/domain"
	"github.com/reelworks/filmstack/internal/catalog/store/drivers/sqlite"
	"github.com/reelworks/filmstack/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestCodec(t *testing.T) *jwtx.Codec {
	t.Helper()

	codec, err := jwtx.NewCodec("HS256", []byte("unit-test-signing-secret"))
	require.NoError(t, err)
	return codec
}

func registerTestUser(t *testing.T, users *UserService, username, password string) domain.User {
	t.Helper()

	u, err := users.Register(context.Background(), UserInput{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test User",
		Password: password,
	})
	require.NoError(t, err)
	return u
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	st := newTestStore(t)
	users := &UserService{Store: st}
	auth := &AuthService{Store: st, Codec: newTestCodec(t), AccessTTL: time.Minute}

	alice := registerTestUser(t, users, "alice", "wonderland")

	t.Run("valid credentials", func(t *testing.T) {
		u, err := auth.Authenticate(ctx, "alice", "wonderland")
		require.NoError(t, err)
		require.Equal(t, alice.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "alice", "not-her-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user reports the same error", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "nobody", "wonderland")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestMintAndResolve(t *testing.T) {
	ctx := context.Background()

	st := newTestStore(t)
	users := &UserService{Store: st}
	auth := &AuthService{Store: st, Codec: newTestCodec(t), AccessTTL: time.Minute}

	alice := registerTestUser(t, users, "alice", "wonderland")

	t.Run("roundtrip carries identity and scopes", func(t *testing.T) {
		token, err := auth.MintToken(alice, []string{domain.ScopeMe, domain.ScopeRates}, 0)
		require.NoError(t, err)

		u, scopes, err := auth.Resolve(ctx, token)
		require.NoError(t, err)
		require.Equal(t, alice.ID, u.ID)
		require.Equal(t, []string{domain.ScopeMe, domain.ScopeRates}, scopes)
	})

	t.Run("empty scope request yields no scopes", func(t *testing.T) {
		token, err := auth.MintToken(alice, nil, 0)
		require.NoError(t, err)

		_, scopes, err := auth.Resolve(ctx, token)
		require.NoError(t, err)
		require.Empty(t, scopes)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		// Mint through the codec directly so the issue time can be backdated.
		claims := jwtx.NewAccessClaims(alice.Username, nil, time.Minute, time.Now().Add(-time.Hour))
		stale, err := auth.Codec.Encode(claims)
		require.NoError(t, err)

		_, _, err = auth.Resolve(ctx, stale)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, _, err := auth.Resolve(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("token for a deleted user rejected", func(t *testing.T) {
		ghost := registerTestUser(t, users, "ghost", "boo")
		token, err := auth.MintToken(ghost, []string{domain.ScopeMe}, 0)
		require.NoError(t, err)

		_, err = users.Delete(ctx, ghost.ID)
		require.NoError(t, err)

		_, _, err = auth.Resolve(ctx, token)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		other, err := jwtx.NewCodec("HS256", []byte("a-different-secret"))
		require.NoError(t, err)

		claims := jwtx.NewAccessClaims(alice.Username, nil, time.Minute, time.Now())
		forged, err := other.Encode(claims)
		require.NoError(t, err)

		_, _, err = auth.Resolve(ctx, forged)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}
