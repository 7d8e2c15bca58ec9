package handlers

import (
	"context"

	"github.com/vangoframework/invhealth/internal/middleware"
	"github.com/vangoframework/invhealth/internal/shell"
	"github.com/vangoframework/invhealth/internal/templates/pages"
)

// newShell wires the page views into the shell controller.
func (h *Handlers) newShell() (*shell.Controller, error) {
	dispatcher, err := shell.NewDispatcher(pages.NotFound(), shell.DefaultRoutes(shell.Pages{
		Dashboard: pages.Dashboard(),
		Inventory: pages.Inventory(),
		Plants:    pages.Plants(),
		Materials: pages.Materials(),
		Analytics: pages.Analytics(),
	})...)
	if err != nil {
		return nil, err
	}

	var nav []pages.NavItem
	for _, r := range dispatcher.Routes() {
		nav = append(nav, pages.NavItem{Label: r.Title, Href: r.Pattern})
	}

	cfg := shell.Config{
		Session:    middleware.ContextSession{},
		Login:      func(next string) shell.View { return pages.Login(next, "") },
		Layout:     pages.Layout(nav, currentUser),
		Dispatcher: dispatcher,
		Logger:     h.logger,
	}
	if h.metrics != nil {
		cfg.Observe = func(res shell.Result) {
			h.metrics.ObserveRender(res.State.String(), res.Page())
		}
	}

	return shell.New(cfg)
}

// currentUser returns the display name of the session user.
func currentUser(ctx context.Context) string {
	session := middleware.GetSession(ctx)
	if session == nil {
		return ""
	}
	if session.FullName != "" {
		return session.FullName
	}
	return session.Username
}
