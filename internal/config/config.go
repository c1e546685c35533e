package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/attendance"
	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	App      AppConfig
	Kiosk    KioskConfig
	Admin    AdminConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// RedisConfig is optional. An empty Addr disables the face cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Timezone           string
	CORSAllowedOrigins []string
}

// KioskConfig holds the attendance rules and kiosk limits.
type KioskConfig struct {
	RateLimit     float64
	RateBurst     int
	SweepInterval time.Duration
	FacesCacheTTL time.Duration

	ClockInStart  string
	ClockInEnd    string
	OnTimeUntil   string
	ClockOutStart string
	ClockOutEnd   string
	AbsentCutoff  string
	SeatCount     int
	SeatedRoles   []string
}

// AdminConfig seeds the bootstrap administrator when both fields are set.
type AdminConfig struct {
	Username string
	Password string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	} else if err != nil {
		slog.Debug("no .env file, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	dbMaxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_kiosk"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
	}

	// Redis configuration
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	// Kiosk configuration
	rateLimit, err := strconv.ParseFloat(getEnv("KIOSK_RATE_LIMIT", "1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_RATE_LIMIT: %w", err)
	}
	rateBurst, err := getEnvInt("KIOSK_RATE_BURST", 5)
	if err != nil {
		return nil, err
	}
	sweepInterval, err := getEnvDuration("SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	facesTTL, err := getEnvDuration("FACES_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	seatCount, err := getEnvInt("ATTENDANCE_SEAT_COUNT", 0)
	if err != nil {
		return nil, err
	}

	config.Kiosk = KioskConfig{
		RateLimit:     rateLimit,
		RateBurst:     rateBurst,
		SweepInterval: sweepInterval,
		FacesCacheTTL: facesTTL,
		ClockInStart:  getEnv("ATTENDANCE_CLOCK_IN_START", ""),
		ClockInEnd:    getEnv("ATTENDANCE_CLOCK_IN_END", ""),
		OnTimeUntil:   getEnv("ATTENDANCE_ON_TIME_UNTIL", ""),
		ClockOutStart: getEnv("ATTENDANCE_CLOCK_OUT_START", ""),
		ClockOutEnd:   getEnv("ATTENDANCE_CLOCK_OUT_END", ""),
		AbsentCutoff:  getEnv("ATTENDANCE_ABSENT_CUTOFF", ""),
		SeatCount:     seatCount,
		SeatedRoles:   getEnvSlice("ATTENDANCE_SEATED_ROLES", nil),
	}

	config.Admin = AdminConfig{
		Username: getEnv("ADMIN_USERNAME", ""),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Password == "" {
		errs = append(errs, fmt.Errorf("DB_PASSWORD is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, fmt.Errorf("JWT_SECRET_KEY is required"))
	}
	if c.Kiosk.RateLimit <= 0 || c.Kiosk.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("KIOSK_RATE_LIMIT and KIOSK_RATE_BURST must be positive"))
	}
	if c.Kiosk.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("SWEEP_INTERVAL must be positive"))
	}
	if (c.Admin.Username == "") != (c.Admin.Password == "") {
		errs = append(errs, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together"))
	}
	if _, err := c.Policy(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Policy builds the attendance rules from the kiosk settings.
func (c *Config) Policy() (attendance.Policy, error) {
	return attendance.NewPolicy(attendance.PolicyOptions{
		Timezone:      c.App.Timezone,
		ClockInStart:  c.Kiosk.ClockInStart,
		ClockInEnd:    c.Kiosk.ClockInEnd,
		OnTimeUntil:   c.Kiosk.OnTimeUntil,
		ClockOutStart: c.Kiosk.ClockOutStart,
		ClockOutEnd:   c.Kiosk.ClockOutEnd,
		AbsentCutoff:  c.Kiosk.AbsentCutoff,
		SeatCount:     c.Kiosk.SeatCount,
		SeatedRoles:   c.Kiosk.SeatedRoles,
	})
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
