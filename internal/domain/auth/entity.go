package auth

import "time"

// Admin is a back-office account allowed to manage employees and reports.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
