package pages

import (
	"context"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/vangoframework/invhealth/internal/templates"
)

// NavItem is one entry of the shell navigation.
type NavItem struct {
	Label string
	Href  string
}

// CurrentUser returns the display name of the signed-in user, or "".
type CurrentUser func(ctx context.Context) string

// Layout returns the layout shell: header with navigation and sign-out,
// then a main container holding the page content. The nav entry whose Href
// equals active is marked as the current page.
func Layout(nav []NavItem, user CurrentUser) func(active string, content templates.View) templates.View {
	return func(active string, content templates.View) templates.View {
		return templates.Dynamic(func(ctx context.Context) g.Node {
			return templates.Document(title(nav, active),
				html.Div(html.Class("shell"), g.Attr("data-view", "shell"),
					html.Header(html.Class("shell-header"),
						html.A(html.Class("brand"), html.Href("/"), g.Text(templates.AppName)),
						html.Nav(html.Class("shell-nav"), g.Attr("aria-label", "Main"),
							html.Ul(g.Map(nav, func(item NavItem) g.Node {
								return html.Li(navLink(item, item.Href == active))
							})),
						),
						html.Div(html.Class("shell-user"),
							g.If(user != nil, html.Span(g.Text(displayName(ctx, user)))),
							html.Form(html.Method("post"), html.Action("/logout"),
								html.Button(html.Type("submit"), g.Text("Sign out")),
							),
						),
					),
					html.Main(html.Class("shell-main"),
						html.Div(html.Class("container container-xl"),
							templates.Embed(ctx, content),
						),
					),
				),
			)
		})
	}
}

func navLink(item NavItem, current bool) g.Node {
	return html.A(html.Href(item.Href),
		g.If(current, g.Group{html.Class("active"), g.Attr("aria-current", "page")}),
		g.Text(item.Label),
	)
}

func title(nav []NavItem, active string) string {
	for _, item := range nav {
		if item.Href == active {
			return item.Label
		}
	}
	return "Not found"
}

func displayName(ctx context.Context, user CurrentUser) string {
	if user == nil {
		return ""
	}
	return user(ctx)
}
