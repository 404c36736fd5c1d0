package service

import (
	"context"
	"errors"

	"github.com/reelworks/filmstack/internal/catalog/domain"
	"github.com/reelworks/filmstack/internal/catalog/store"
	"github.com/reelworks/filmstack/pkg/idx"
)

// RateService manages per-user film ratings. Each (film, user) pair holds
// at most one rate; creating twice conflicts and updating a missing rate is
// not found.
type RateService struct {
	Store store.Store
}

// RateFilm records a first rating of a film by the given user. The rate
// row denormalizes the film title and username so listings need no joins.
func (s *RateService) RateFilm(ctx context.Context, u domain.User, filmID string, value float64) (domain.Rate, error) {
	if _, err := s.Store.Rates().GetRate(ctx, filmID, u.ID); err == nil {
		return domain.Rate{}, store.ErrAlreadyExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Rate{}, err
	}

	film, err := s.Store.Films().GetFilmByID(ctx, filmID)
	if err != nil {
		return domain.Rate{}, err
	}

	rt := domain.Rate{
		ID:           idx.New().String(),
		FilmID:       film.ID,
		PrimaryTitle: film.PrimaryTitle,
		UserID:       u.ID,
		Username:     u.Username,
		Value:        value,
	}
	if err := s.Store.Rates().CreateRate(ctx, rt); err != nil {
		return domain.Rate{}, err
	}

	return s.Store.Rates().GetRate(ctx, filmID, u.ID)
}

// UpdateRate replaces the user's existing rating of a film.
func (s *RateService) UpdateRate(ctx context.Context, u domain.User, filmID string, value float64) (domain.Rate, error) {
	return s.Store.Rates().UpdateRate(ctx, filmID, u.ID, value)
}

// ListForUser returns every rating the user has recorded, newest first.
func (s *RateService) ListForUser(ctx context.Context, userID string) ([]domain.Rate, error) {
	return s.Store.Rates().ListRatesByUser(ctx, userID)
}

// GetForUser returns the user's rating of a single film.
func (s *RateService) GetForUser(ctx context.Context, filmID, userID string) (domain.Rate, error) {
	return s.Store.Rates().GetRate(ctx, filmID, userID)
}
