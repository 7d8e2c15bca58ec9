package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/vangoframework/invhealth/internal/auth"
	"github.com/vangoframework/invhealth/internal/middleware"
	"github.com/vangoframework/invhealth/internal/shell"
	"github.com/vangoframework/invhealth/internal/templates/pages"
)

const (
	msgInvalidCredentials = "Incorrect username or password"
	msgUnavailable        = "Sign-in is temporarily unavailable. Please try again."
)

// LoginPage renders the login page, or sends signed-in users to the dashboard.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, next, "")
}

// Login handles the login form. On success it sets the session cookie and
// redirects to the page the user originally asked for.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "/", msgInvalidCredentials)
		return
	}
	next := safeNext(r.PostForm.Get("next"))

	user, err := h.authenticator.Authenticate(ctx, r.PostForm.Get("username"), r.PostForm.Get("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.logger.Info("login failed", "username", r.PostForm.Get("username"))
		h.renderLogin(w, r, http.StatusUnauthorized, next, msgInvalidCredentials)
		return
	}
	if err != nil {
		h.logger.Error("failed to authenticate", "error", err)
		h.renderLogin(w, r, http.StatusInternalServerError, next, msgUnavailable)
		return
	}

	if err := h.sessions.Set(w, auth.NewSessionData(user)); err != nil {
		h.logger.Error("failed to set session", "error", err)
		h.renderLogin(w, r, http.StatusInternalServerError, next, msgUnavailable)
		return
	}

	h.logger.Info("login", "username", user.Username, "user_id", user.ID)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout clears the session and redirects to home.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type userResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        userResponse `json:"user"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// APILogin exchanges form credentials for a bearer token.
func (h *Handlers) APILogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Malformed form body"})
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: msgInvalidCredentials})
		return
	}
	if err != nil {
		h.logger.Error("failed to authenticate", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal Server Error"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("failed to issue token", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal Server Error"})
		return
	}

	h.writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.tokens.TTL().Seconds()),
		User: userResponse{
			Username: user.Username,
			Role:     user.Role.String(),
			FullName: user.FullName,
		},
	})
}

type meResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// Me describes the authenticated caller.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	h.writeJSON(w, http.StatusOK, meResponse{
		UserID:   session.UserID.String(),
		Username: session.Username,
		Role:     session.Role.String(),
		FullName: session.FullName,
	})
}

func (h *Handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, next, errMsg string) {
	var buf bytes.Buffer
	if err := pages.Login(next, errMsg).Render(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render login", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// safeNext keeps only same-site, absolute paths, so the login redirect can
// not be pointed at another host.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return shell.Normalize(u.Path)
}
