package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by VerifyPassword when the plaintext does
// not match the stored hash. A malformed stored hash yields the same error so
// callers can't distinguish the two cases.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword produces a salted bcrypt hash of the plaintext. bcrypt embeds
// the salt and cost in the output string, so nothing else needs storing.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(h), nil
}

// VerifyPassword recomputes the bcrypt hash and compares in constant time.
// It never returns a raw bcrypt error for mismatches or malformed hashes;
// both normalize to ErrPasswordMismatch so a bad record in the store can
// never bypass a denial.
func VerifyPassword(password, encodedHash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
