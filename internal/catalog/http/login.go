package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/reelworks/filmstack/internal/catalog/domain"
	"github.com/reelworks/filmstack/internal/catalog/service"
	"github.com/reelworks/filmstack/pkg/httpx"
	"github.com/reelworks/filmstack/pkg/jwtx"
	"github.com/reelworks/filmstack/pkg/slogx"
)

// LoginHandler serves POST /users/login.
// Accepts application/x-www-form-urlencoded with username, password and an
// optional space-delimited scope field, and returns a bearer access token.
type LoginHandler struct {
	AuthService *service.AuthService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid content type")
		return
	}

	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	username := strings.TrimSpace(r.Form.Get("username"))
	password := r.Form.Get("password")
	scopes := httpx.ParseSpaceDelimitedFields(r.Form.Get("scope"))

	user, err := h.AuthService.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteBearerError(w, http.StatusUnauthorized, nil, "Incorrect username or password")
			return
		}
		log.Error("login failed", "username", username, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.AuthService.MintToken(user, scopes, 0)
	if err != nil {
		log.Error("token mint failed", "username", username, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, domain.AccessToken{
		AccessToken: token,
		TokenType:   jwtx.TokenType,
	})
}
