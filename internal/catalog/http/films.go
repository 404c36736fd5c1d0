package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/reelworks/filmstack/internal/catalog/domain"
	"github.com/reelworks/filmstack/internal/catalog/service"
	"github.com/reelworks/filmstack/internal/catalog/store"
	"github.com/reelworks/filmstack/pkg/httpx"
	"github.com/reelworks/filmstack/pkg/slogx"
)

// FilmsHandler serves the public catalog read endpoints under /films.
type FilmsHandler struct {
	FilmService *service.FilmService
}

func (h *FilmsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	films, err := h.FilmService.List(ctx, limit)
	if err != nil {
		slogx.FromContext(ctx).Error("film listing failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeFilms(w, films)
}

func (h *FilmsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	films, err := h.FilmService.SearchByTitle(ctx, r.PathValue("name"))
	if err != nil {
		slogx.FromContext(ctx).Error("film search failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeFilms(w, films)
}

func (h *FilmsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	film, err := h.FilmService.GetByID(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Film does not exist")
			return
		}
		slogx.FromContext(ctx).Error("film lookup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, film)
}

func (h *FilmsHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := strconv.Atoi(r.PathValue("limit"))
	if err != nil || limit < 0 {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid limit")
		return
	}

	films, err := h.FilmService.TopRated(ctx, limit)
	if err != nil {
		slogx.FromContext(ctx).Error("top films failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeFilms(w, films)
}

func writeFilms(w http.ResponseWriter, films []domain.Film) {
	if films == nil {
		films = []domain.Film{}
	}
	httpx.WriteJSON(w, http.StatusOK, films)
}

// RateFilmHandler serves the authenticated rating endpoints on /films/id/{id}.
// The rating value travels as a `rate` query or form parameter.
type RateFilmHandler struct {
	RateService *service.RateService
}

func (h *RateFilmHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.WriteBearerError(w, http.StatusUnauthorized, nil, "Not authenticated")
		return
	}

	value, ok := rateParam(w, r)
	if !ok {
		return
	}

	rt, err := h.RateService.RateFilm(ctx, user, r.PathValue("id"), value)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			httpx.WriteError(w, http.StatusBadRequest, "Rate already exists")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "Film does not exist")
		default:
			log.Error("rating failed", "user_id", user.ID, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rt)
}

func (h *RateFilmHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.WriteBearerError(w, http.StatusUnauthorized, nil, "Not authenticated")
		return
	}

	value, ok := rateParam(w, r)
	if !ok {
		return
	}

	rt, err := h.RateService.UpdateRate(ctx, user, r.PathValue("id"), value)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Rate does not exist")
			return
		}
		log.Error("rate update failed", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rt)
}

func rateParam(w http.ResponseWriter, r *http.Request) (float64, bool) {
	raw := r.URL.Query().Get("rate")
	if raw == "" {
		if err := r.ParseForm(); err == nil {
			raw = r.Form.Get("rate")
		}
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid rate")
		return 0, false
	}
	return value, true
}
