package ui

import (
	"net/url"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/carsawa/site/config"
	"github.com/carsawa/site/filter"
	"github.com/carsawa/site/listing"
)

func heroSearch() g.Node {
	return Section(
		Class("bg-[#272D3C] text-white rounded-lg p-8 mb-10"),
		H1(Class("text-3xl md:text-5xl font-bold mb-4"), g.Text("Find your next car")),
		P(Class("mb-6 text-gray-300"), g.Text("New and used cars from verified dealers.")),
		Form(
			Action("/cars"),
			Method("get"),
			Class("flex flex-col md:flex-row gap-2"),
			Input(
				Type("search"),
				Name(filter.ParamQuery),
				Placeholder("Search make, model or keyword"),
				Class("flex-1 p-3 rounded-md text-gray-900"),
			),
			Select(
				Name(filter.ParamBudget),
				Class("p-3 rounded-md text-gray-900"),
				Option(Value(""), g.Text("Any budget")),
				g.Map(filter.Budgets, func(b string) g.Node { return Option(Value(b), g.Text(b)) }),
			),
			button("Search", withType("submit")),
		),
	)
}

func browseByMake() g.Node {
	links := make([]g.Node, 0, len(filter.Makes))
	for _, m := range filter.Makes {
		links = append(links, A(
			Href("/cars?"+url.Values{filter.ParamMake: {m}}.Encode()),
			Class("px-4 py-2 bg-white rounded-full shadow hover:bg-[#c1ff72]"),
			g.Text(m),
		))
	}
	return Section(
		Class("mt-12"),
		H2(Class("text-2xl font-semibold mb-4"), g.Text("Browse by make")),
		Div(Class("flex flex-wrap gap-2"), g.Group(links)),
	)
}

// HomePage shows the hero search and featured cars. featuredErr replaces the
// featured grid with the inline failure message.
func HomePage(featured []listing.Listing, featuredErr error) g.Node {
	var cars g.Node
	switch {
	case featuredErr != nil:
		cars = LoadError("Failed to load cars. Please try again later.", "/", "#featured")
	case len(featured) == 0:
		cars = NoResultsMessage("No cars available right now.")
	default:
		cars = CarGrid(featured)
	}
	return Page(
		config.SiteName,
		"/",
		[]g.Node{
			heroSearch(),
			Section(
				H2(Class("text-2xl font-semibold mb-4"), g.Text("Featured cars")),
				Div(ID("featured"), cars),
				Div(Class("mt-6 text-center"), buttonSecondary("View all cars", withHref("/cars"))),
			),
			browseByMake(),
		},
	)
}
