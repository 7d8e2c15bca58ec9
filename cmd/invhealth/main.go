package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vangoframework/invhealth/internal/auth"
	"github.com/vangoframework/invhealth/internal/config"
	"github.com/vangoframework/invhealth/internal/database"
	"github.com/vangoframework/invhealth/internal/domain"
	"github.com/vangoframework/invhealth/internal/handlers"
	"github.com/vangoframework/invhealth/internal/metrics"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// User store: Postgres when configured, process memory otherwise
	var (
		db    *database.DB
		users auth.UserStore
	)
	if cfg.DatabaseURL != "" {
		db, err = database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		logger.Info("database initialized")
		users = database.NewUserStore(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory user store")
		users = auth.NewMemoryUserStore()
	}

	authenticator := auth.NewAuthenticator(users)
	if _, err := authenticator.Seed(ctx, cfg.AdminUsername, cfg.AdminPassword, "Executive User", domain.RoleExecutive); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	// Session store and bearer tokens
	sessions := auth.NewSessionStore(
		cfg.SessionSecret,
		cfg.SessionMaxAge,
		cfg.IsProduction(),
	)
	tokens := auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	// Handlers
	h, err := handlers.New(cfg, db, sessions, tokens, authenticator, m, logger)
	if err != nil {
		log.Fatalf("failed to initialize handlers: %v", err)
	}

	// Server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdown
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}

	logger.Info("shutdown complete")
}
