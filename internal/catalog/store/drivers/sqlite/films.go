package sqlite

import (
	"context"
	"database/sql"

	"github.com/reelworks/filmstack/internal/catalog/domain"
)

type filmsRepo struct {
	q dbtx
}

// Every film read joins the aggregate vote summary; films nobody has voted
// on come back with NULL rating columns.
const filmSelect = `
SELECT f.id, f.tconst, f.primary_title, f.start_year, f.runtime_minutes, f.genres,
       r.average_rating, r.num_votes
FROM films f
LEFT JOIN film_ratings r ON r.tconst = f.tconst`

func scanFilm(scan func(dest ...any) error) (domain.Film, error) {
	var (
		f      domain.Film
		rating sql.NullFloat64
		votes  sql.NullInt64
	)
	err := scan(&f.ID, &f.TConst, &f.PrimaryTitle, &f.StartYear,
		&f.RuntimeMinutes, &f.Genres, &rating, &votes)
	if err != nil {
		return domain.Film{}, mapNotFound(err)
	}
	f.AverageRating = mapNullFloatPtr(rating)
	f.NumVotes = mapNullIntPtr(votes)
	return f, nil
}

func collectFilms(rows *sql.Rows) ([]domain.Film, error) {
	defer rows.Close()

	var films []domain.Film
	for rows.Next() {
		f, err := scanFilm(rows.Scan)
		if err != nil {
			return nil, err
		}
		films = append(films, f)
	}
	return films, rows.Err()
}

func (r *filmsRepo) GetFilmByID(ctx context.Context, id string) (domain.Film, error) {
	row := r.q.QueryRowContext(ctx, filmSelect+` WHERE f.id = ?`, id)
	return scanFilm(row.Scan)
}

func (r *filmsRepo) ListFilms(ctx context.Context, limit int) ([]domain.Film, error) {
	rows, err := r.q.QueryContext(ctx, filmSelect+` ORDER BY f.id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectFilms(rows)
}

func (r *filmsRepo) SearchFilmsByTitle(ctx context.Context, title string) ([]domain.Film, error) {
	// LIKE is case-insensitive for ASCII in sqlite by default.
	rows, err := r.q.QueryContext(ctx,
		filmSelect+` WHERE f.primary_title LIKE '%' || ? || '%' ORDER BY f.id`, title)
	if err != nil {
		return nil, err
	}
	return collectFilms(rows)
}

func (r *filmsRepo) TopRatedFilms(ctx context.Context, limit int, minVotes int64) ([]domain.Film, error) {
	rows, err := r.q.QueryContext(ctx, `
SELECT f.id, f.tconst, f.primary_title, f.start_year, f.runtime_minutes, f.genres,
       r.average_rating, r.num_votes
FROM film_ratings r
JOIN films f ON f.tconst = r.tconst
WHERE r.num_votes >= ?
ORDER BY r.average_rating DESC
LIMIT ?`, minVotes, limit)
	if err != nil {
		return nil, err
	}
	return collectFilms(rows)
}

func (r *filmsRepo) CreateFilm(ctx context.Context, f domain.Film) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO films (id, tconst, primary_title, start_year, runtime_minutes, genres)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.TConst, f.PrimaryTitle, f.StartYear, f.RuntimeMinutes, f.Genres)
	return mapConflict(err)
}

func (r *filmsRepo) PutAggregateRating(ctx context.Context, agg domain.AggregateRating) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO film_ratings (tconst, average_rating, num_votes)
		 VALUES (?, ?, ?)
		 ON CONFLICT (tconst) DO UPDATE SET average_rating = excluded.average_rating, num_votes = excluded.num_votes`,
		agg.TConst, agg.AverageRating, agg.NumVotes)
	return err
}
