package pages

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/vangoframework/invhealth/internal/templates"
)

// Login renders the sign-in screen. next is submitted back so the user lands
// on the page they asked for; errMsg is shown above the form when set.
func Login(next, errMsg string) templates.View {
	return templates.Component(templates.Document("Sign in",
		html.Main(html.Class("login"), g.Attr("data-view", "login"),
			html.H1(g.Text(templates.AppName)),
			html.P(html.Class("muted"), g.Text("Sign in to the executive inventory dashboard.")),
			g.If(errMsg != "",
				html.P(html.Class("error"), g.Attr("role", "alert"), g.Text(errMsg)),
			),
			html.Form(html.Method("post"), html.Action("/login"),
				html.Input(html.Type("hidden"), html.Name("next"), html.Value(next)),
				html.Label(html.For("username"), g.Text("Username")),
				html.Input(html.ID("username"), html.Type("text"), html.Name("username"),
					html.AutoComplete("username"), html.Required()),
				html.Label(html.For("password"), g.Text("Password")),
				html.Input(html.ID("password"), html.Type("password"), html.Name("password"),
					html.AutoComplete("current-password"), html.Required()),
				html.Button(html.Type("submit"), g.Text("Sign in")),
			),
		),
	))
}
