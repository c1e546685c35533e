package auth

import "context"

type AdminRepository interface {
	// GetByUsername returns ErrAdminNotFound when no admin has that username.
	GetByUsername(ctx context.Context, username string) (Admin, error)

	// Upsert creates the admin or replaces its password hash.
	Upsert(ctx context.Context, username string, passwordHash string) (Admin, error)
}
