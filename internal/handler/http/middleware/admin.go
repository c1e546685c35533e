package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly lets through tokens issued to an administrator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if isAdmin, _ := claims["is_admin"].(bool); !isAdmin {
			slog.WarnContext(r.Context(), "non-admin token rejected", "sub", claims["sub"])
			response.HandleError(w, auth.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
