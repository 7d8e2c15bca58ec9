package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/invhealth/internal/shell"
)

func TestNewDispatcher_Validation(t *testing.T) {
	v := text("x")

	tests := []struct {
		name     string
		fallback shell.View
		routes   []shell.Route
		wantErr  error
	}{
		{"no fallback", nil, []shell.Route{{Pattern: "/", View: v}}, shell.ErrNoFallback},
		{"relative pattern", v, []shell.Route{{Pattern: "inventory", View: v}}, shell.ErrInvalidPattern},
		{"trailing slash", v, []shell.Route{{Pattern: "/inventory/", View: v}}, shell.ErrInvalidPattern},
		{"unclean pattern", v, []shell.Route{{Pattern: "/a/../b", View: v}}, shell.ErrInvalidPattern},
		{"duplicate", v, []shell.Route{{Pattern: "/", View: v}, {Pattern: "/", View: v}}, shell.ErrDuplicatePattern},
		{"nil view", v, []shell.Route{{Pattern: "/plants"}}, shell.ErrNilView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shell.NewDispatcher(tt.fallback, tt.routes...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDispatcher_Resolve(t *testing.T) {
	d, err := shell.NewDispatcher(text("fallback"),
		shell.Route{Pattern: "/", Title: "Home", View: text("home")},
		shell.Route{Pattern: "/plants", Title: "Plants", View: text("plants")},
	)
	require.NoError(t, err)

	r, ok := d.Resolve("/plants")
	assert.True(t, ok)
	assert.Equal(t, "Plants", r.Title)

	r, ok = d.Resolve("plants/")
	assert.True(t, ok)
	assert.Equal(t, "/plants", r.Pattern)

	r, ok = d.Resolve("/plantsx")
	assert.False(t, ok)
	assert.Empty(t, r.Pattern)
	assert.NotNil(t, r.View)
}

func TestDispatcher_RoutesIsCopy(t *testing.T) {
	d, err := shell.NewDispatcher(text("fallback"), shell.DefaultRoutes(shell.Pages{
		Dashboard: text("d"), Inventory: text("i"), Plants: text("p"), Materials: text("m"), Analytics: text("a"),
	})...)
	require.NoError(t, err)

	routes := d.Routes()
	require.Len(t, routes, 5)
	assert.Equal(t, []string{"/", "/inventory", "/plants", "/materials", "/analytics"},
		[]string{routes[0].Pattern, routes[1].Pattern, routes[2].Pattern, routes[3].Pattern, routes[4].Pattern})

	routes[0].Pattern = "/changed"
	assert.Equal(t, "/", d.Routes()[0].Pattern)
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":            "/",
		"/":           "/",
		"inventory":   "/inventory",
		"/inventory/": "/inventory",
		"//analytics": "/analytics",
		"/a/./b/../c": "/a/c",
	}
	for in, want := range tests {
		assert.Equal(t, want, shell.Normalize(in), "input %q", in)
	}
}
