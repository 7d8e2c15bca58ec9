// Package shell decides, per request, between the login view and the
// authenticated layout shell wrapping the page bound to the request path.
package shell

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

// ErrMissingCollaborator is returned by New when a required dependency is nil.
var ErrMissingCollaborator = errors.New("shell: missing collaborator")

// View is anything the shell can render.
type View = templ.Component

// SessionState reports whether the request carrying ctx is authenticated.
type SessionState interface {
	Authenticated(ctx context.Context) bool
}

// SessionStateFunc adapts a function to SessionState.
type SessionStateFunc func(ctx context.Context) bool

func (f SessionStateFunc) Authenticated(ctx context.Context) bool { return f(ctx) }

// Layout wraps page content in the persistent chrome. active is the pattern
// of the matched route, or "" when the fallback is shown.
type Layout func(active string, content View) View

// LoginView renders the login screen. next is the path the user asked for.
type LoginView func(next string) View

// State is the outcome of the authentication gate.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Result is one evaluation of the controller.
type Result struct {
	State   State
	Status  int
	Path    string
	Route   Route
	Matched bool
	View    View
}

// Page names the rendered page: the matched pattern, "fallback" for an
// unmatched path, or "login".
func (r Result) Page() string {
	switch {
	case r.State == Unauthenticated:
		return "login"
	case !r.Matched:
		return "fallback"
	}
	return r.Route.Pattern
}

// Config holds the controller's collaborators.
type Config struct {
	Session    SessionState
	Login      LoginView
	Layout     Layout
	Dispatcher *Dispatcher
	Logger     *slog.Logger

	// Observe, when set, is called by ServeHTTP with every result.
	Observe func(Result)
}

// Controller is the root http.Handler of the dashboard pages.
type Controller struct {
	session    SessionState
	login      LoginView
	layout     Layout
	dispatcher *Dispatcher
	logger     *slog.Logger
	observe    func(Result)
}

// New creates a Controller. Logger defaults to slog.Default().
func New(cfg Config) (*Controller, error) {
	if cfg.Session == nil || cfg.Login == nil || cfg.Layout == nil || cfg.Dispatcher == nil {
		return nil, ErrMissingCollaborator
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Controller{
		session:    cfg.Session,
		login:      cfg.Login,
		layout:     cfg.Layout,
		dispatcher: cfg.Dispatcher,
		logger:     cfg.Logger,
		observe:    cfg.Observe,
	}, nil
}

// Render evaluates the gate for ctx and path. It has no side effects and is
// recomputed on every call.
func (c *Controller) Render(ctx context.Context, path string) Result {
	path = Normalize(path)

	if !c.session.Authenticated(ctx) {
		return Result{
			State:  Unauthenticated,
			Status: http.StatusUnauthorized,
			Path:   path,
			View:   c.login(path),
		}
	}

	route, ok := c.dispatcher.Resolve(path)
	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
	}

	return Result{
		State:   Authenticated,
		Status:  status,
		Path:    path,
		Route:   route,
		Matched: ok,
		View:    c.layout(route.Pattern, route.View),
	}
}

// ServeHTTP renders the result for the request path. The body is buffered so
// that a failing view yields a 500 instead of a partial page.
func (c *Controller) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := c.Render(r.Context(), r.URL.Path)
	if c.observe != nil {
		c.observe(res)
	}

	var buf bytes.Buffer
	if err := res.View.Render(r.Context(), &buf); err != nil {
		c.logger.Error("render view",
			"path", res.Path,
			"state", res.State.String(),
			"error", err,
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(res.Status)
	_, _ = buf.WriteTo(w)
}
