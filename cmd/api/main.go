package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-kiosk-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/cache"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-kiosk-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-kiosk-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/attendance-kiosk-go/internal/service/employee"
	"golang.org/x/sync/errgroup"
)

const (
	appName    = "attendance-kiosk"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).With(
		slog.String("app", appName),
		slog.String("env", cfg.App.Env),
	))

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var facesCache cache.Store = cache.NoopStore{}
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		facesCache = cache.NewRedisStore(redisClient, appName+":")
		slog.Info("Face cache enabled", "addr", cfg.Redis.Addr)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	adminRepo := postgresql.NewAdminRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	authService := serviceAuth.NewAuthService(adminRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, facesCache, cfg.Kiosk.FacesCacheTTL)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, policy, attendanceService.RandomSeatPicker{})

	if cfg.Admin.Username != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		slog.Info("Admin account ready", "username", cfg.Admin.Username)
	}

	kioskNow := func() time.Time { return time.Now().In(policy.Location) }

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			KioskRateLimit: cfg.Kiosk.RateLimit,
			KioskRateBurst: cfg.Kiosk.RateBurst,
			Logger:         appHTTP.NewAccessLogger(os.Stdout, appName, appVersion, cfg.App.Env),
		},
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewAttendanceHandler(attendanceSvc, kioskNow),
		appHTTP.NewEmployeeHandler(employeeSvc),
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.Kiosk.SweepInterval).RegisterJobs(scheduler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "timezone", policy.Location.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	return g.Wait()
}
