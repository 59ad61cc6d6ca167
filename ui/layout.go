package ui

import (
	"time"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/carsawa/site/config"
)

// ---- Page Layout ----

func Page(title string, currentPath string, content []g.Node) g.Node {
	if title != config.SiteName {
		title += " | " + config.SiteName
	}
	return components.HTML5(components.HTML5Props{
		Title:       title,
		Description: "Buy new and used cars from verified dealers across Kenya.",
		Language:    "en",
		Head: []g.Node{
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			Link(
				Rel("stylesheet"),
				Href(config.TailwindCSSURL),
			),
			Script(
				Type("text/javascript"),
				Src(config.HTMXURL),
				Defer(),
			),
		},
		Body: []g.Node{
			Class("bg-gray-50 text-gray-900"),
			navigation(currentPath),
			Main(
				Class("container mx-auto px-4 py-8"),
				g.Group(content),
			),
			footer(),
		},
	})
}

func pageHeader(text string) g.Node {
	return H1(Class("text-3xl md:text-4xl font-bold mb-6"), g.Text(text))
}

func footer() g.Node {
	return Footer(
		Class("bg-[#272D3C] text-gray-300 mt-12"),
		Div(
			Class("container mx-auto px-4 py-8 flex flex-col md:flex-row justify-between gap-4 text-sm"),
			Div(
				Strong(Class("text-white"), g.Text(config.SiteName)),
				P(g.Text("Find your next car from trusted dealers.")),
			),
			Div(
				Class("flex gap-4"),
				A(Href("/cars"), Class("hover:text-white"), g.Text("Cars")),
				A(Href("/used-cars"), Class("hover:text-white"), g.Text("Used Cars")),
				A(Href("/dealers"), Class("hover:text-white"), g.Text("Dealers")),
			),
			P(g.Textf("© %d %s", time.Now().Year(), config.SiteName)),
		),
	)
}
