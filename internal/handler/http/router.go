package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	AllowedOrigins []string
	// KioskRateLimit is the steady number of submissions per second allowed per client IP.
	KioskRateLimit float64
	KioskRateBurst int
	// Logger receives access logs. Nil disables request logging.
	Logger *slog.Logger
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, authHandler AuthHandler, attendanceHandler AttendanceHandler, employeeHandler EmployeeHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	// Kiosk
	r.Route("/absen", func(r chi.Router) {
		r.Get("/", attendanceHandler.Status)
		r.With(middleware.RateLimitByIP(rate.Limit(cfg.KioskRateLimit), cfg.KioskRateBurst)).
			Post("/", attendanceHandler.Submit)
	})
	r.Get("/api/faces", employeeHandler.Faces)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires an admin token
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.AdminOnly)
			r.Use(chiMiddleware.AllowContentType("application/json"))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Put("/", employeeHandler.Update)
					r.Delete("/", employeeHandler.Delete)
					r.Put("/face", employeeHandler.UpdateFace)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/sweep", attendanceHandler.Sweep)
				r.Get("/{id}", attendanceHandler.Get)
				r.Delete("/{id}", attendanceHandler.Delete)
			})
		})
	})
	return r
}

// NewAccessLogger builds the ECS-formatted JSON logger used for request logs.
func NewAccessLogger(out io.Writer, app, version, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "development")
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}
