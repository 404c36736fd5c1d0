package http

import (
	"errors"
	"net/http"

	"github.com/reelworks/filmstack/internal/catalog/service"
	"github.com/reelworks/filmstack/internal/catalog/store"
	"github.com/reelworks/filmstack/pkg/httpx"
	"github.com/reelworks/filmstack/pkg/slogx"
)

// RatesHandler serves GET /rates/rate/{id}: the caller's own rating of one
// film.
type RatesHandler struct {
	RateService *service.RateService
}

func (h *RatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.WriteBearerError(w, http.StatusUnauthorized, nil, "Not authenticated")
		return
	}

	rt, err := h.RateService.GetForUser(ctx, r.PathValue("id"), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Rate does not exist")
			return
		}
		log.Error("rate lookup failed", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rt)
}
