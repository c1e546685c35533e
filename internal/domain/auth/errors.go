package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrAdminNotFound          = errors.New("admin not found")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
