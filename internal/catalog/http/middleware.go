package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/reelworks/filmstack/internal/catalog/domain"
	"github.com/reelworks/filmstack/internal/catalog/service"
	"github.com/reelworks/filmstack/pkg/httpx"
	"github.com/reelworks/filmstack/pkg/slogx"
)

type ctxKey int

const (
	ctxKeyUser ctxKey = iota
	ctxKeyScopes
)

// UserFromContext returns the identity stored by AuthnMiddleware.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}

// ScopesFromContext returns the scopes granted to the request's token.
func ScopesFromContext(ctx context.Context) []string {
	scopes, _ := ctx.Value(ctxKeyScopes).([]string)
	return scopes
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthnMiddleware resolves the request's bearer token into an identity and
// its granted scopes and stores both on the context. routeScopes shape the
// WWW-Authenticate challenge on rejection; enforcement is RequireScopes' job.
func AuthnMiddleware(auth *service.AuthService, routeScopes ...string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httpx.WriteBearerError(w, http.StatusUnauthorized, routeScopes, "Not authenticated")
				return
			}

			u, granted, err := auth.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					httpx.WriteBearerError(w, http.StatusUnauthorized, routeScopes, "Could not validate credentials")
					return
				}
				slogx.FromContext(r.Context()).Error("token resolution failed", "err", err)
				httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, u)
			ctx = context.WithValue(ctx, ctxKeyScopes, granted)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScopes enforces account status and the route's scope set against
// the granted scopes stored by AuthnMiddleware. A disabled account is
// rejected before scopes are even considered.
func RequireScopes(required ...string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				httpx.WriteBearerError(w, http.StatusUnauthorized, required, "Not authenticated")
				return
			}

			if err := service.Authorize(u, ScopesFromContext(r.Context()), required); err != nil {
				if errors.Is(err, service.ErrAccountDisabled) {
					httpx.WriteError(w, http.StatusBadRequest, "Inactive user")
					return
				}
				httpx.WriteBearerError(w, http.StatusUnauthorized, required, "Not enough permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
