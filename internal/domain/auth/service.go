package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// EnsureAdmin creates the bootstrap admin, or resets its password when it exists.
	EnsureAdmin(ctx context.Context, username string, password string) error
}
