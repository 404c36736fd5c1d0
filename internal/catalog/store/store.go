package store

import (
	"context"
	"errors"

	"github.com/reelworks/filmstack/internal/catalog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Films() Films
	Rates() Rates

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during credential checks and when resolving
	// a token subject back into an identity.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used for the registration uniqueness pre-check.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Username/email collisions return ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser overwrites the mutable fields (username, email, full_name,
	// disabled, password_hash) and bumps updated_at, returning the row as
	// persisted. The single-statement update mirrors the atomic
	// find-and-update the self-edit endpoint relies on.
	UpdateUser(ctx context.Context, u domain.User) (domain.User, error)

	// DeleteUser removes the user and returns the deleted record, cascading
	// to their rates. ErrNotFound when no such user.
	DeleteUser(ctx context.Context, id string) (domain.User, error)
}

type Films interface {
	// GetFilmByID returns a film (with its aggregate rating joined) by id.
	GetFilmByID(ctx context.Context, id string) (domain.Film, error)

	// ListFilms returns up to limit films in insertion order.
	ListFilms(ctx context.Context, limit int) ([]domain.Film, error)

	// SearchFilmsByTitle performs a case-insensitive substring match on
	// primary_title.
	SearchFilmsByTitle(ctx context.Context, title string) ([]domain.Film, error)

	// TopRatedFilms returns up to limit films having at least minVotes
	// aggregate votes, ordered by average rating descending.
	TopRatedFilms(ctx context.Context, limit int, minVotes int64) ([]domain.Film, error)

	// CreateFilm inserts a catalog entry (ingestion and tests).
	CreateFilm(ctx context.Context, f domain.Film) error

	// PutAggregateRating inserts or replaces the vote summary for a tconst.
	PutAggregateRating(ctx context.Context, r domain.AggregateRating) error
}

type Rates interface {
	// GetRate returns the rate a user gave a film, ErrNotFound when absent.
	GetRate(ctx context.Context, filmID, userID string) (domain.Rate, error)

	// ListRatesByUser returns all rates a user has recorded, newest first.
	ListRatesByUser(ctx context.Context, userID string) ([]domain.Rate, error)

	// CreateRate inserts a new rate. A second rate for the same
	// (film, user) pair returns ErrAlreadyExists.
	CreateRate(ctx context.Context, r domain.Rate) error

	// UpdateRate changes the value of an existing rate and returns the row
	// as persisted. ErrNotFound when the user never rated the film.
	UpdateRate(ctx context.Context, filmID, userID string, value float64) (domain.Rate, error)
}
