package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/invhealth/internal/auth"
	"github.com/vangoframework/invhealth/internal/config"
	"github.com/vangoframework/invhealth/internal/domain"
	"github.com/vangoframework/invhealth/internal/handlers"
	"github.com/vangoframework/invhealth/internal/metrics"
)

// testConfig creates a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		Port:           "8080",
		BaseURL:        "http://localhost:8080",
		Environment:    "development",
		StaticDir:      "../../static",
		SessionSecret:  "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		SessionMaxAge:  time.Hour,
		TokenSecret:    "0123456789abcdef0123456789abcdef",
		TokenTTL:       30 * time.Minute,
		AdminUsername:  "admin",
		AdminPassword:  "admin123",
		MetricsEnabled: true,
	}
}

// testServer starts the full router on the memory user store (no database required)
func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authenticator := auth.NewAuthenticator(auth.NewMemoryUserStore())
	_, err := authenticator.Seed(context.Background(), cfg.AdminUsername, cfg.AdminPassword, "Executive User", domain.RoleExecutive)
	require.NoError(t, err)

	h, err := handlers.New(cfg, nil,
		auth.NewSessionStore(cfg.SessionSecret, cfg.SessionMaxAge, false),
		auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL),
		authenticator,
		metrics.New(),
		logger,
	)
	require.NoError(t, err)

	server := httptest.NewServer(h.Routes())
	t.Cleanup(server.Close)
	return server
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", auth.SessionCookieName)
	return nil
}

// login posts the login form and returns the response
func login(t *testing.T, server *httptest.Server, username, password, next string) *http.Response {
	t.Helper()

	resp, err := noRedirectClient().PostForm(server.URL+"/login", url.Values{
		"username": {username},
		"password": {password},
		"next":     {next},
	})
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, server *httptest.Server, path string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestUnauthenticatedPagesShowLogin(t *testing.T) {
	server := testServer(t)

	for _, path := range []string{"/", "/inventory", "/plants", "/materials", "/analytics", "/unknown"} {
		t.Run(path, func(t *testing.T) {
			resp := get(t, server, path, nil)
			out := body(t, resp)

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, out, `data-view="login"`)
			assert.Contains(t, out, `name="next" value="`+path+`"`)
			assert.NotContains(t, out, `data-view="shell"`)
		})
	}
}

func TestLoginFailure(t *testing.T) {
	server := testServer(t)

	resp := login(t, server, "admin", "wrong", "/plants")
	out := body(t, resp)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, out, "Incorrect username or password")
	assert.Contains(t, out, `name="next" value="/plants"`)
	for _, c := range resp.Cookies() {
		assert.NotEqual(t, auth.SessionCookieName, c.Name)
	}
}

func TestLoginAndBrowse(t *testing.T) {
	server := testServer(t)

	resp := login(t, server, "admin", "admin123", "/analytics")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/analytics", resp.Header.Get("Location"))
	cookie := sessionCookie(t, resp)

	pages := map[string]string{
		"/":          "dashboard",
		"/inventory": "inventory",
		"/plants":    "plants",
		"/materials": "materials",
		"/analytics": "analytics",
	}
	for path, view := range pages {
		t.Run(path, func(t *testing.T) {
			resp := get(t, server, path, cookie)
			out := body(t, resp)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, out, `data-view="shell"`)
			assert.Contains(t, out, `data-view="`+view+`"`)
			assert.Contains(t, out, "Executive User")
			assert.NotContains(t, out, `data-view="login"`)
		})
	}
}

func TestAuthenticatedUnknownPath(t *testing.T) {
	server := testServer(t)
	cookie := sessionCookie(t, login(t, server, "admin", "admin123", "/"))

	resp := get(t, server, "/unknown", cookie)
	out := body(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, out, `data-view="shell"`)
	assert.Contains(t, out, `data-view="not-found"`)
}

func TestLoginRejectsOffsiteRedirect(t *testing.T) {
	server := testServer(t)

	for _, next := range []string{"//evil.example", "https://evil.example/", `/\evil.example`, ""} {
		resp := login(t, server, "admin", "admin123", next)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"), "next=%q", next)
	}
}

func TestLoginPage(t *testing.T) {
	server := testServer(t)

	resp := get(t, server, "/login?next=/plants", nil)
	out := body(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, out, `name="next" value="/plants"`)

	cookie := sessionCookie(t, login(t, server, "admin", "admin123", "/"))
	resp = get(t, server, "/login?next=/plants", cookie)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/plants", resp.Header.Get("Location"))
}

func TestLogout(t *testing.T) {
	server := testServer(t)
	login(t, server, "admin", "admin123", "/")

	req, err := http.NewRequest(http.MethodPost, server.URL+"/logout", nil)
	require.NoError(t, err)
	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	cleared := sessionCookie(t, resp)
	assert.Equal(t, "", cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)

	// the browser drops the cookie, so the next page is the login view again
	resp = get(t, server, "/inventory", nil)
	assert.Contains(t, body(t, resp), `data-view="login"`)
}

func TestAPILoginAndMe(t *testing.T) {
	server := testServer(t)

	resp, err := http.PostForm(server.URL+"/api/v1/auth/login", url.Values{
		"username": {"admin"},
		"password": {"admin123"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
		User        struct {
			Username string `json:"username"`
			Role     string `json:"role"`
			FullName string `json:"full_name"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, 1800, token.ExpiresIn)
	assert.Equal(t, "admin", token.User.Username)
	assert.Equal(t, "executive", token.User.Role)
	assert.Equal(t, "Executive User", token.User.FullName)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/v1/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	meResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer meResp.Body.Close()

	assert.Equal(t, http.StatusOK, meResp.StatusCode)
	var me map[string]string
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, "admin", me["username"])
	assert.Equal(t, "executive", me["role"])
	assert.NotEmpty(t, me["user_id"])

	// the same token also opens the dashboard shell
	req, err = http.NewRequest(http.MethodGet, server.URL+"/plants", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	pageResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer pageResp.Body.Close()
	assert.Equal(t, http.StatusOK, pageResp.StatusCode)
	assert.Contains(t, body(t, pageResp), `data-view="plants"`)
}

func TestAPILoginFailure(t *testing.T) {
	server := testServer(t)

	resp, err := http.PostForm(server.URL+"/api/v1/auth/login", url.Values{
		"username": {"admin"},
		"password": {"nope"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"detail":"Incorrect username or password"}`, body(t, resp))
}

func TestMeRequiresAuth(t *testing.T) {
	server := testServer(t)

	resp := get(t, server, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	server := testServer(t)

	resp := get(t, server, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body(t, resp))
}

func TestMetrics(t *testing.T) {
	server := testServer(t)
	get(t, server, "/plants", nil)

	resp := get(t, server, "/metrics", nil)
	out := body(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, out, `invhealth_shell_renders_total{page="login",state="unauthenticated"} 1`)
	assert.True(t, strings.Contains(out, "invhealth_http_requests_total"))
}

func TestStaticFiles(t *testing.T) {
	server := testServer(t)

	resp := get(t, server, "/static/app.css", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), ".container-xl")
}
