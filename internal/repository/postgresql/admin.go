package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type adminRepositoryImpl struct {
	db *database.DB
}

func NewAdminRepository(db *database.DB) auth.AdminRepository {
	return &adminRepositoryImpl{db: db}
}

// GetByUsername implements auth.AdminRepository.
func (r *adminRepositoryImpl) GetByUsername(ctx context.Context, username string) (auth.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins
		WHERE username = $1
	`

	var admin auth.Admin
	err := q.QueryRow(ctx, query, username).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.Admin{}, auth.ErrAdminNotFound
		}
		return auth.Admin{}, fmt.Errorf("failed to get admin by username: %w", err)
	}
	return admin, nil
}

// Upsert implements auth.AdminRepository.
func (r *adminRepositoryImpl) Upsert(ctx context.Context, username string, passwordHash string) (auth.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, updated_at = NOW()
		RETURNING id, username, password_hash, created_at, updated_at
	`

	var admin auth.Admin
	err := q.QueryRow(ctx, query, username, passwordHash).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		return auth.Admin{}, fmt.Errorf("failed to upsert admin %s: %w", username, err)
	}
	return admin, nil
}
