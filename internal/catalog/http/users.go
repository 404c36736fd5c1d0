package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reelworks/filmstack/internal/catalog/domain"
	"github.com/reelworks/filmstack/internal/catalog/service"
	"github.com/reelworks/filmstack/internal/catalog/store"
	"github.com/reelworks/filmstack/pkg/httpx"
	"github.com/reelworks/filmstack/pkg/slogx"
)

// RegisterHandler serves POST /users/register. Open endpoint: anyone may
// create an account.
type RegisterHandler struct {
	UserService *service.UserService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var in service.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.UserService.Register(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			httpx.WriteError(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, service.ErrInvalidInput):
			httpx.WriteError(w, http.StatusBadRequest, "Username and password are required")
		default:
			log.Error("registration failed", "username", in.Username, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, user.Public())
}

// MeHandler serves the authenticated self-service endpoints under /users/me.
type MeHandler struct {
	UserService *service.UserService
	RateService *service.RateService
}

func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.WriteBearerError(w, http.StatusUnauthorized, nil, "Not authenticated")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user.Public())
}

func (h *MeHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.WriteBearerError(w, http.StatusUnauthorized, nil, "Not authenticated")
		return
	}

	var in service.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.UserService.UpdateMe(ctx, user.ID, in)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			httpx.WriteError(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, service.ErrInvalidInput):
			httpx.WriteError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "User does not exist")
		default:
			log.Error("profile edit failed", "user_id", user.ID, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, updated.Public())
}

func (h *MeHandler) HandleRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.WriteBearerError(w, http.StatusUnauthorized, nil, "Not authenticated")
		return
	}

	rates, err := h.RateService.ListForUser(ctx, user.ID)
	if err != nil {
		log.Error("listing rates failed", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if rates == nil {
		rates = []domain.Rate{}
	}

	httpx.WriteJSON(w, http.StatusOK, rates)
}

// StatusHandler serves GET /users/status: a token-gated liveness signal.
// Any account with a resolvable token may ask, disabled ones included.
func StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// DeleteUserHandler serves DELETE /users/delete/{id}, an admin operation.
type DeleteUserHandler struct {
	UserService *service.UserService
}

func (h *DeleteUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	removed, err := h.UserService.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User does not exist")
			return
		}
		log.Error("user delete failed", "user_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, removed.Public())
}
