package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Configuration errors
var (
	ErrMissingEnv      = errors.New("required environment variable is not set")
	ErrShortSecret     = errors.New("secret is too short")
	ErrInvalidValue    = errors.New("invalid configuration value")
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	Port        string
	BaseURL     string
	Environment string // development, staging, production
	LogLevel    slog.Level
	StaticDir   string

	// Database (optional, the in-memory user store is used when empty)
	DatabaseURL string

	// Session
	SessionSecret string
	SessionMaxAge time.Duration

	// Bearer tokens
	TokenSecret string
	TokenTTL    time.Duration

	// Seeded administrator
	AdminUsername string
	AdminPassword string

	MetricsEnabled bool
}

// Load reads configuration from environment variables.
// In development, it will also load from a .env file if present.
func Load() (*Config, error) {
	// Load .env file (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		StaticDir:   getEnv("STATIC_DIR", "static"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		TokenSecret:   os.Getenv("TOKEN_SECRET"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getDuration("SESSION_MAX_AGE", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled, err = getBool("METRICS_ENABLED", true); err != nil {
		return nil, err
	}

	// Need 64 bytes for hash key + block key
	if len(cfg.SessionSecret) == 0 {
		return nil, fmt.Errorf("SESSION_SECRET: %w", ErrMissingEnv)
	}
	if len(cfg.SessionSecret) < 64 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 64 characters, got %d: %w", len(cfg.SessionSecret), ErrShortSecret)
	}
	if len(cfg.TokenSecret) == 0 {
		return nil, fmt.Errorf("TOKEN_SECRET: %w", ErrMissingEnv)
	}
	if len(cfg.TokenSecret) < 32 {
		return nil, fmt.Errorf("TOKEN_SECRET must be at least 32 characters, got %d: %w", len(cfg.TokenSecret), ErrShortSecret)
	}

	if cfg.AdminPassword == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("ADMIN_PASSWORD: %w", ErrMissingEnv)
		}
		cfg.AdminPassword = "admin123"
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv returns the value of an environment variable or a fallback default.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, value, ErrInvalidValue)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s=%q: %w", key, value, ErrInvalidValue)
	}
	return b, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("LOG_LEVEL=%q: %w", s, ErrUnknownLogLevel)
}
