package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/reelworks/filmstack/internal/catalog/domain"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, username, email, full_name, disabled, password_hash, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u     domain.User
		email sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &email, &u.FullName, &u.Disabled,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Email = mapNullString(email)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, username, email, full_name, disabled, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, mapStringNull(u.Email), u.FullName, u.Disabled,
		u.PasswordHash, now, now)
	return mapConflict(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) (domain.User, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users
		 SET username = ?, email = ?, full_name = ?, disabled = ?, password_hash = ?, updated_at = ?
		 WHERE id = ?`,
		u.Username, mapStringNull(u.Email), u.FullName, u.Disabled,
		u.PasswordHash, time.Now().UTC(), u.ID)
	if err != nil {
		return domain.User{}, mapConflict(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.User{}, mapNotFound(sql.ErrNoRows)
	}
	return r.GetUserByID(ctx, u.ID)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) (domain.User, error) {
	u, err := r.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if _, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return domain.User{}, err
	}
	return u, nil
}
