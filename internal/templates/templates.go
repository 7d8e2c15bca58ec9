// Package templates adapts gomponents node trees to templ components and
// holds the HTML document frame shared by every page.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"
)

// AppName is shown in titles and the header brand.
const AppName = "Inventory Health"

// View is a renderable page fragment or document.
type View = templ.Component

// Component adapts a static node tree to templ.Component.
func Component(n g.Node) View {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return n.Render(w)
	})
}

// Dynamic adapts a node tree built at render time from the request context.
func Dynamic(build func(ctx context.Context) g.Node) View {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return build(ctx).Render(w)
	})
}

// Embed renders a templ component inside a node tree.
func Embed(ctx context.Context, c View) g.Node {
	return g.NodeFunc(func(w io.Writer) error {
		return c.Render(ctx, w)
	})
}

// Document wraps body in the HTML5 frame with the shared stylesheet.
func Document(title string, body ...g.Node) g.Node {
	if title == "" {
		title = AppName
	} else {
		title = title + " | " + AppName
	}

	return components.HTML5(components.HTML5Props{
		Title:    title,
		Language: "en",
		Head: []g.Node{
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.Link(html.Rel("stylesheet"), html.Href("/static/app.css")),
		},
		Body: body,
	})
}
