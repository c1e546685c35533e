package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	auth.AdminRepository
	jwt.Service
}

func NewAuthService(adminRepository auth.AdminRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		AdminRepository: adminRepository,
		Service:         jwtService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	admin, err := a.AdminRepository.GetByUsername(ctx, loginReq.Username)
	if err != nil {
		if errors.Is(err, auth.ErrAdminNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get admin by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokenResponse auth.TokenResponse
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(admin.ID, admin.Username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.TokenType = "Bearer"

	slog.InfoContext(ctx, "admin logged in", "admin_id", admin.ID)
	return tokenResponse, nil
}

// EnsureAdmin implements auth.AuthService.
func (a *AuthServiceImpl) EnsureAdmin(ctx context.Context, username string, password string) error {
	req := auth.LoginRequest{Username: username, Password: password}
	if err := req.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid bootstrap admin: %s", verrs.Error())
		}
		return err
	}
	if len(password) < 8 {
		return fmt.Errorf("invalid bootstrap admin: password must be at least 8 characters long")
	}

	hash, err := a.hashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin, err := a.AdminRepository.Upsert(ctx, req.Username, hash)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "admin account ready", "admin_id", admin.ID, "username", admin.Username)
	return nil
}
