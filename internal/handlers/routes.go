package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vangoframework/invhealth/internal/middleware"
)

// Routes builds the application router.
func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Recovery(h.logger))
	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
	}
	r.Use(middleware.Session(h.sessions, h.tokens))

	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	// Static files
	fileServer := http.FileServer(http.Dir(h.config.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/health", h.Health)

	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.APILogin)
		r.With(middleware.RequireToken).Get("/me", h.Me)
	})

	// Everything else is a dashboard page behind the login gate
	r.Get("/*", h.shell.ServeHTTP)

	return r
}
