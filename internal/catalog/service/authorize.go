package service

import (
	"slices"

	"github.com/reelworks/filmstack/internal/catalog/domain"
)

// Authorize decides whether an authenticated identity may exercise a route.
// The account status check runs before the scope check, so a disabled
// account is reported as disabled even when its token also lacks scopes.
// Every required scope must appear in the granted set; a route with no
// required scopes only needs an active account.
func Authorize(u domain.User, granted, required []string) error {
	if u.Disabled {
		return ErrAccountDisabled
	}
	for _, want := range required {
		if !slices.Contains(granted, want) {
			return ErrInsufficientScope
		}
	}
	return nil
}
