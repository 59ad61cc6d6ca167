package ui

import (
	"net/url"
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/carsawa/site/browse"
	"github.com/carsawa/site/filter"
	"github.com/carsawa/site/listing"
)

const (
	ViewGrid = "grid"
	ViewList = "list"
)

// BrowseParam carries the id of one rendered car browser, so that two tabs
// sharing a session keep separate results.
const BrowseParam = "browse"

// ParseView returns a known view name, defaulting to grid.
func ParseView(s string) string {
	if s == ViewList {
		return ViewList
	}
	return ViewGrid
}

// CarsView is everything the car browser needs to render.
type CarsView struct {
	Path     string // page path the browser lives on, e.g. /cars or /used-cars
	Title    string
	State    browse.State
	PageSize int
	View     string
	BrowseID string
}

// ResultsURL is the fragment endpoint for the given criteria and page.
func ResultsURL(c filter.Criteria, page int, view, browseID string) string {
	v := c.Values()
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if view != "" {
		v.Set("view", view)
	}
	if browseID != "" {
		v.Set(BrowseParam, browseID)
	}
	return "/cars/results?" + v.Encode()
}

// BrowseURL is the full-page address of a result set, used for history.
func BrowseURL(path string, c filter.Criteria, page int) string {
	v := c.Values()
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

func carURL(l listing.Listing) string {
	return "/cars/" + url.PathEscape(l.ID)
}

func carImage(l listing.Listing, class string) g.Node {
	src := l.CoverImage()
	if src == "" {
		return Div(Class(class+" bg-gray-200 flex items-center justify-center text-gray-500"), g.Text("No image"))
	}
	return Img(Src(src), Alt(l.Title()), Class(class+" object-cover"), g.Attr("loading", "lazy"))
}

// CarCard is the grid tile for one listing.
func CarCard(l listing.Listing) g.Node {
	return A(
		Href(carURL(l)),
		Class("block bg-white rounded-lg shadow hover:shadow-lg transition overflow-hidden"),
		Div(
			Class("relative"),
			carImage(l, "w-full h-48"),
			statusBadge(l.Status),
		),
		Div(
			Class("p-4"),
			H3(Class("font-semibold text-lg truncate"), g.Text(l.Title())),
			P(Class("text-[#272D3C] font-bold mt-1"), g.Text(Price(l.Price))),
			g.If(l.Specs() != "", P(Class("text-sm text-gray-600 mt-1"), g.Text(l.Specs()))),
			g.If(l.Mileage > 0, P(Class("text-sm text-gray-500"), g.Text(Mileage(l.Mileage)))),
		),
	)
}

// CarRow is the list-view entry for one listing.
func CarRow(l listing.Listing) g.Node {
	var dealer g.Node
	if l.Dealer != nil {
		dealer = P(Class("text-sm text-gray-500"), g.Text(l.Dealer.Name), verifiedBadge(l.Dealer.Verified))
	}
	return A(
		Href(carURL(l)),
		Class("flex bg-white rounded-lg shadow hover:shadow-lg transition overflow-hidden"),
		Div(Class("relative w-40 shrink-0"), carImage(l, "w-40 h-32"), statusBadge(l.Status)),
		Div(
			Class("p-4 flex-1"),
			H3(Class("font-semibold text-lg"), g.Text(l.Title())),
			P(Class("text-[#272D3C] font-bold"), g.Text(Price(l.Price))),
			P(Class("text-sm text-gray-600"), g.Text(l.Specs())),
			g.If(l.Mileage > 0, P(Class("text-sm text-gray-500"), g.Text(Mileage(l.Mileage)))),
			dealer,
		),
	)
}

func CarGrid(cars []listing.Listing) g.Node {
	nodes := make([]g.Node, 0, len(cars))
	for _, l := range cars {
		nodes = append(nodes, CarCard(l))
	}
	return Div(Class("grid grid-cols-1 sm:grid-cols-2 lg:grid-cols-3 gap-6"), g.Group(nodes))
}

func CarList(cars []listing.Listing) g.Node {
	nodes := make([]g.Node, 0, len(cars))
	for _, l := range cars {
		nodes = append(nodes, CarRow(l))
	}
	return Div(Class("flex flex-col gap-4"), g.Group(nodes))
}

func viewToggle(v CarsView) g.Node {
	link := func(view, label string) g.Node {
		class := "px-3 py-1 rounded"
		if v.View == view {
			class += " bg-[#272D3C] text-white"
		} else {
			class += " bg-gray-200"
		}
		u := ResultsURL(v.State.Criteria, v.State.Page, view, v.BrowseID)
		return A(
			Href(BrowseURL(v.Path, v.State.Criteria, v.State.Page)),
			Class(class),
			hx.Get(u),
			hx.Target("#results"),
			hx.Swap("outerHTML"),
			g.Text(label),
		)
	}
	return Div(Class("flex gap-2"), link(ViewGrid, "Grid"), link(ViewList, "List"))
}

// CarResults is the swappable #results fragment.
func CarResults(v CarsView) g.Node {
	s := v.State
	var body g.Node
	switch {
	case s.Phase == browse.Failed:
		body = LoadError(s.Message, ResultsURL(s.Criteria, s.Page, v.View, v.BrowseID), "#results")
	case len(s.Items) == 0:
		body = NoResultsMessage("No cars match your search. Try widening your filters.")
	case v.View == ViewList:
		body = CarList(s.Items)
	default:
		body = CarGrid(s.Items)
	}

	pager := s.Pager(v.PageSize)
	links := pagerLinks{
		href:   func(page int) string { return ResultsURL(s.Criteria, page, v.View, v.BrowseID) },
		target: "#results",
	}

	return Div(
		ID("results"),
		Class("flex-1"),
		Div(
			Class("flex justify-between items-center"),
			g.If(s.Phase != browse.Failed, showingSummary(pager, "cars")),
			viewToggle(v),
		),
		body,
		g.If(s.Phase != browse.Failed, paginationControls(pager, links)),
	)
}

func CarsPage(v CarsView) g.Node {
	return Page(
		v.Title,
		v.Path,
		[]g.Node{
			pageHeader(v.Title),
			Div(
				Class("flex flex-col md:flex-row gap-8"),
				FilterSidebar(v),
				CarResults(v),
			),
		},
	)
}
