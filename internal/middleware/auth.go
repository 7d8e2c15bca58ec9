package middleware

import (
	"encoding/json"
	"net/http"
)

// RequireToken rejects requests without a session with 401 and a JSON body.
// It guards the JSON API, where a redirect to the login page is useless.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetSession(r.Context()) == nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
