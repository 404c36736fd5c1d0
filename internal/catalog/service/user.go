package service

import (
	"context"
	"errors"

	"github.com/reelworks/filmstack/internal/catalog/domain"
	"github.com/reelworks/filmstack/internal/catalog/store"
	"github.com/reelworks/filmstack/pkg/cryptox"
	"github.com/reelworks/filmstack/pkg/idx"
)

// UserService handles account registration and profile maintenance.
type UserService struct {
	Store store.Store
}

// UserInput carries the caller-supplied account fields for registration and
// self-service edits. The password arrives in the clear and is hashed here;
// it never reaches the store unhashed.
type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Disabled bool   `json:"disabled"`
	Password string `json:"password"`
}

// Register creates a new account. Username and, when supplied, email must
// be unique; a taken identifier surfaces as store.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, in UserInput) (domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	var created domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Pre-check inside the transaction so the common case reports a
		// clean conflict; the UNIQUE constraints still back it up.
		if _, err := tx.Users().GetUserByUsername(ctx, in.Username); err == nil {
			return store.ErrAlreadyExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if in.Email != "" {
			if _, err := tx.Users().GetUserByEmail(ctx, in.Email); err == nil {
				return store.ErrAlreadyExists
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		u := domain.User{
			ID:           idx.New().String(),
			Username:     in.Username,
			Email:        in.Email,
			FullName:     in.FullName,
			Disabled:     in.Disabled,
			PasswordHash: hash,
		}
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}

		created, err = tx.Users().GetUserByID(ctx, u.ID)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	return created, nil
}

// UpdateMe replaces the caller's own profile with the supplied fields. The
// password is required and is rehashed on every edit.
func (s *UserService) UpdateMe(ctx context.Context, userID string, in UserInput) (domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	return s.Store.Users().UpdateUser(ctx, domain.User{
		ID:           userID,
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		Disabled:     in.Disabled,
		PasswordHash: hash,
	})
}

// GetByID fetches a single account.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

// Delete removes an account and returns the removed record. Rates left
// behind by the account are dropped with it.
func (s *UserService) Delete(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().DeleteUser(ctx, id)
}
