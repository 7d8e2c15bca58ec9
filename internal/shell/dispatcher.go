package shell

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Dispatcher construction errors
var (
	ErrNoFallback       = errors.New("dispatcher requires a fallback view")
	ErrNilView          = errors.New("route has no view")
	ErrInvalidPattern   = errors.New("route pattern must be a clean absolute path")
	ErrDuplicatePattern = errors.New("route pattern registered twice")
)

// Route binds an exact path to a view.
type Route struct {
	Pattern string
	Title   string
	View    View
}

// Dispatcher resolves a request path against an ordered route table.
// Paths that match no route resolve to the fallback view.
// A Dispatcher is immutable and safe for concurrent use.
type Dispatcher struct {
	routes   []Route
	fallback View
}

// NewDispatcher builds a dispatcher from routes, in order.
func NewDispatcher(fallback View, routes ...Route) (*Dispatcher, error) {
	if fallback == nil {
		return nil, ErrNoFallback
	}

	seen := make(map[string]bool, len(routes))
	table := make([]Route, 0, len(routes))
	for _, r := range routes {
		if !strings.HasPrefix(r.Pattern, "/") || Normalize(r.Pattern) != r.Pattern {
			return nil, fmt.Errorf("%q: %w", r.Pattern, ErrInvalidPattern)
		}
		if seen[r.Pattern] {
			return nil, fmt.Errorf("%q: %w", r.Pattern, ErrDuplicatePattern)
		}
		if r.View == nil {
			return nil, fmt.Errorf("%q: %w", r.Pattern, ErrNilView)
		}
		seen[r.Pattern] = true
		table = append(table, r)
	}

	return &Dispatcher{routes: table, fallback: fallback}, nil
}

// Resolve returns the first route whose pattern equals the normalized path.
// When nothing matches it returns the fallback route (with an empty
// Pattern) and false.
func (d *Dispatcher) Resolve(p string) (Route, bool) {
	p = Normalize(p)
	for _, r := range d.routes {
		if r.Pattern == p {
			return r, true
		}
	}
	return Route{Title: "Not found", View: d.fallback}, false
}

// Routes returns a copy of the route table.
func (d *Dispatcher) Routes() []Route {
	out := make([]Route, len(d.routes))
	copy(out, d.routes)
	return out
}

// Normalize maps a request path to its canonical form: rooted, cleaned,
// without a trailing slash. The empty path becomes "/".
func Normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
