package domain

import "time"

// User is an account identity. PasswordHash is the bcrypt hash of the
// password; the plaintext is never persisted or compared directly.
type User struct {
	ID           string
	Username     string // unique across all users
	Email        string // unique when set; optional
	FullName     string // optional
	Disabled     bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public is the wire representation of a user; it never carries the hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Disabled: u.Disabled,
	}
}

// PublicUser is what user-facing endpoints return.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Disabled bool   `json:"disabled"`
}
