package service

import (
	"context"

	"github.com/reelworks/filmstack/internal/catalog/domain"
	"github.com/reelworks/filmstack/internal/catalog/store"
)

const (
	// DefaultListLimit caps catalog listings when the caller gives no limit.
	DefaultListLimit = 10

	// TopFilmsMinVotes keeps sparsely-voted titles out of the top chart so a
	// film with three 10/10 votes cannot outrank a classic.
	TopFilmsMinVotes = 20000
)

// FilmService reads the film catalog. The catalog itself is reference data
// loaded out of band; this service never mutates it on behalf of callers.
type FilmService struct {
	Store store.Store
}

// List returns films in stable id order. A non-positive limit falls back to
// the default page size.
func (s *FilmService) List(ctx context.Context, limit int) ([]domain.Film, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.Store.Films().ListFilms(ctx, limit)
}

// SearchByTitle returns films whose primary title contains the given
// fragment, case-insensitively.
func (s *FilmService) SearchByTitle(ctx context.Context, title string) ([]domain.Film, error) {
	return s.Store.Films().SearchFilmsByTitle(ctx, title)
}

// GetByID fetches a single film.
func (s *FilmService) GetByID(ctx context.Context, id string) (domain.Film, error) {
	return s.Store.Films().GetFilmByID(ctx, id)
}

// TopRated returns the best-rated films among those with enough votes to
// count, highest average first.
func (s *FilmService) TopRated(ctx context.Context, limit int) ([]domain.Film, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.Store.Films().TopRatedFilms(ctx, limit, TopFilmsMinVotes)
}
