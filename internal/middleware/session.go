package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vangoframework/invhealth/internal/auth"
)

type contextKey string

// SessionContextKey is the context key for the session.
const SessionContextKey contextKey = "session"

// TokenVerifier turns a bearer token into session data.
type TokenVerifier interface {
	Verify(token string) (*auth.SessionData, error)
}

// Session returns a middleware that loads the session into the request context.
// A bearer token in the Authorization header takes precedence over the
// session cookie; an invalid token leaves the request unauthenticated.
func Session(store *auth.SessionStore, tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				session *auth.SessionData
				err     error
			)
			if token, ok := bearerToken(r); ok {
				session, err = tokens.Verify(token)
			} else {
				session, err = store.Get(r)
			}
			if err == nil && session != nil {
				r = r.WithContext(WithSession(r.Context(), session))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *auth.SessionData) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}

// GetSession retrieves the session from context.
func GetSession(ctx context.Context) *auth.SessionData {
	session, ok := ctx.Value(SessionContextKey).(*auth.SessionData)
	if !ok {
		return nil
	}
	return session
}

// ContextSession reports a request as authenticated when the Session
// middleware stored a session in its context.
type ContextSession struct{}

// Authenticated implements shell.SessionState.
func (ContextSession) Authenticated(ctx context.Context) bool {
	return GetSession(ctx) != nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
