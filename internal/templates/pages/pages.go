package pages

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/vangoframework/invhealth/internal/templates"
)

// section is the common frame of a dashboard page body.
func section(view, heading, summary string, children ...g.Node) templates.View {
	return templates.Component(
		html.Section(html.Class("page"), g.Attr("data-view", view),
			html.H1(g.Text(heading)),
			html.P(html.Class("muted"), g.Text(summary)),
			g.Group(children),
		),
	)
}

// Dashboard is the executive overview at "/".
func Dashboard() templates.View {
	return section("dashboard", "Dashboard",
		"Inventory health across every plant at a glance.",
		html.Ul(html.Class("tiles"),
			tile("/inventory", "Inventory", "Stock levels and turnover"),
			tile("/plants", "Plants", "Sites and their stock positions"),
			tile("/materials", "Materials", "Material master and classifications"),
			tile("/analytics", "Analytics", "Trends and forecasts"),
		),
	)
}

// Inventory lists stock positions.
func Inventory() templates.View {
	return section("inventory", "Inventory", "Stock on hand, safety stock and excess by material and plant.")
}

// Plants lists manufacturing sites.
func Plants() templates.View {
	return section("plants", "Plants", "Manufacturing sites and their inventory health.")
}

// Materials lists the material master.
func Materials() templates.View {
	return section("materials", "Materials", "Material master data and ABC classification.")
}

// Analytics shows trends and forecasts.
func Analytics() templates.View {
	return section("analytics", "Analytics", "Inventory value trends, turnover and demand forecasts.")
}

// NotFound is shown inside the shell for paths with no registered page.
func NotFound() templates.View {
	return section("not-found", "Page not found",
		"There is no dashboard page at this address.",
		html.P(html.A(html.Href("/"), g.Text("Back to the dashboard"))),
	)
}

func tile(href, label, desc string) g.Node {
	return html.Li(html.Class("tile"),
		html.A(html.Href(href), html.Strong(g.Text(label))),
		html.P(g.Text(desc)),
	)
}
