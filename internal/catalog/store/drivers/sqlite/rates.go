package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/reelworks/filmstack/internal/catalog/domain"
)

type ratesRepo struct {
	q dbtx
}

const rateColumns = `id, film_id, primary_title, user_id, username, rate, created_at, updated_at`

func scanRate(scan func(dest ...any) error) (domain.Rate, error) {
	var rt domain.Rate
	err := scan(&rt.ID, &rt.FilmID, &rt.PrimaryTitle, &rt.UserID, &rt.Username,
		&rt.Value, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return domain.Rate{}, mapNotFound(err)
	}
	return rt, nil
}

func (r *ratesRepo) GetRate(ctx context.Context, filmID, userID string) (domain.Rate, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+rateColumns+` FROM user_rates WHERE film_id = ? AND user_id = ?`,
		filmID, userID)
	return scanRate(row.Scan)
}

func (r *ratesRepo) ListRatesByUser(ctx context.Context, userID string) ([]domain.Rate, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+rateColumns+` FROM user_rates WHERE user_id = ? ORDER BY id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []domain.Rate
	for rows.Next() {
		rt, err := scanRate(rows.Scan)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rt)
	}
	return rates, rows.Err()
}

func (r *ratesRepo) CreateRate(ctx context.Context, rt domain.Rate) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_rates (id, film_id, primary_title, user_id, username, rate, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.ID, rt.FilmID, rt.PrimaryTitle, rt.UserID, rt.Username, rt.Value, now, now)
	return mapConflict(err)
}

func (r *ratesRepo) UpdateRate(ctx context.Context, filmID, userID string, value float64) (domain.Rate, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE user_rates SET rate = ?, updated_at = ? WHERE film_id = ? AND user_id = ?`,
		value, time.Now().UTC(), filmID, userID)
	if err != nil {
		return domain.Rate{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Rate{}, mapNotFound(sql.ErrNoRows)
	}
	return r.GetRate(ctx, filmID, userID)
}
