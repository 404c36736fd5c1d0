package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"empty password", ""},
		{"unicode password", "contraseña🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			require.True(t, strings.HasPrefix(hash, "$2a$"),
				"hash should be in bcrypt modular crypt format")
			require.NotEqual(t, tt.password, hash)
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)
	hash2, err := HashPassword(password)
	require.NoError(t, err)

	// Each hash differs because bcrypt generates a fresh salt.
	require.NotEqual(t, hash1, hash2)

	// But both verify the same password.
	require.NoError(t, VerifyPassword(password, hash1))
	require.NoError(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	require.ErrorIs(t, VerifyPassword("battery staple", hash), ErrPasswordMismatch)
	require.ErrorIs(t, VerifyPassword("", hash), ErrPasswordMismatch)
	require.ErrorIs(t, VerifyPassword("correct horse ", hash), ErrPasswordMismatch)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	// A corrupt stored hash must read as a plain mismatch, never panic or
	// surface a parse error that a caller might treat as "not a failure".
	for _, bad := range []string{"", "not-a-hash", "$2a$10$tooshort", "plaintext-password"} {
		require.ErrorIs(t, VerifyPassword("anything", bad), ErrPasswordMismatch)
	}
}
