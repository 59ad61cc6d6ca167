package ui

import (
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/carsawa/site/filter"
	"github.com/carsawa/site/listing"
)

// FilterSidebar is the filter form for the browser at v.Path. Any change
// reloads #results; pressing Search sends submit=1 so the handler can tell an
// explicit search apart.
func FilterSidebar(v CarsView) g.Node {
	c := v.State.Criteria
	return Aside(
		Class("w-full md:w-72 shrink-0"),
		Form(
			ID("filters"),
			Class("bg-white rounded-lg shadow p-4 space-y-4"),
			Action(v.Path),
			Method("get"),
			hx.Get("/cars/results"),
			hx.Target("#results"),
			hx.Swap("outerHTML"),
			hx.Trigger("change, submit"),
			hx.Indicator("#indicator"),
			g.Attr("hx-sync", "#results:replace"),
			Input(Type("hidden"), Name("view"), Value(v.View)),
			g.If(v.BrowseID != "", Input(Type("hidden"), Name(BrowseParam), Value(v.BrowseID))),
			textFilter("Search", filter.ParamQuery, c.Query, "Make, model or keyword"),
			selectFilter("Budget", filter.ParamBudget, c.Budget, "Any budget", choices(filter.Budgets)),
			selectFilter("Make", filter.ParamMake, c.Make, "Any make", choices(filter.Makes)),
			yearFilter(c.MinYear, c.MaxYear),
			selectFilter("Body type", filter.ParamBodyType, c.BodyType, "Any body type", bodyTypeChoices()),
			selectFilter("Condition", filter.ParamCondition, c.Condition, "New or used", choices([]string{"New", "Used"})),
			selectFilter("Transmission", filter.ParamTransmission, c.Transmission, "Any", choices(filter.Transmissions)),
			selectFilter("Fuel", filter.ParamFuelType, c.FuelType, "Any", choices(filter.FuelTypes)),
			statusFilter(c.Status),
			Div(
				Class("flex gap-2"),
				button("Search", withType("submit"), withClass("flex-1"),
					withAttributes(Name("submit"), Value("1"))),
				buttonSecondary("Clear", withHref(v.Path)),
			),
		),
	)
}

func filterLabel(text, name string) g.Node {
	return Label(For("filter-"+name), Class("block text-sm font-medium mb-1"), g.Text(text))
}

func textFilter(label, name, value, placeholder string) g.Node {
	return Div(
		filterLabel(label, name),
		Input(
			Type("search"),
			ID("filter-"+name),
			Name(name),
			Value(value),
			Placeholder(placeholder),
			Class("w-full p-2 border rounded-md"),
		),
	)
}

// choice is one select option; value is what the form sends.
type choice struct {
	value string
	label string
}

func choices(values []string) []choice {
	out := make([]choice, 0, len(values))
	for _, v := range values {
		out = append(out, choice{value: v, label: v})
	}
	return out
}

func bodyTypeChoices() []choice {
	out := make([]choice, 0, len(filter.BodyTypes))
	for _, bt := range filter.BodyTypes {
		out = append(out, choice{value: bt.Type, label: bt.Label})
	}
	return out
}

func selectFilter(label, name, value, anyLabel string, options []choice) g.Node {
	opts := []g.Node{Option(Value(""), g.Text(anyLabel))}
	for _, o := range options {
		opts = append(opts, Option(Value(o.value), g.If(o.value == value, Selected()), g.Text(o.label)))
	}
	return Div(
		filterLabel(label, name),
		Select(ID("filter-"+name), Name(name), Class("w-full p-2 border rounded-md"), g.Group(opts)),
	)
}

func yearValue(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}

func yearFilter(minYear, maxYear *int) g.Node {
	input := func(name, value, placeholder string) g.Node {
		return Input(
			Type("number"),
			Name(name),
			Value(value),
			Placeholder(placeholder),
			g.Attr("min", "1886"),
			g.Attr("max", "2100"),
			Class("w-1/2 p-2 border rounded-md"),
		)
	}
	return Div(
		Label(Class("block text-sm font-medium mb-1"), g.Text("Year")),
		Div(
			Class("flex gap-2"),
			input(filter.ParamMinYear, yearValue(minYear), "From"),
			input(filter.ParamMaxYear, yearValue(maxYear), "To"),
		),
	)
}

func statusFilter(s listing.Status) g.Node {
	return selectFilter("Availability", filter.ParamStatus, string(s), "All cars",
		choices([]string{string(listing.StatusAvailable), string(listing.StatusSold)}))
}
