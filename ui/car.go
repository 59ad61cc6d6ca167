package ui

import (
	"net/url"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/carsawa/site/listing"
)

type specRow struct {
	label string
	value string
}

func carSpecs(l listing.Listing) []specRow {
	rows := []specRow{
		{"Make", l.Make},
		{"Model", l.Model},
		{"Mileage", Mileage(l.Mileage)},
		{"Transmission", l.Transmission},
		{"Fuel type", l.FuelType},
		{"Engine", l.EngineSize},
		{"Body type", l.BodyType},
		{"Condition", l.Condition},
		{"Colour", l.Color},
	}
	if l.Year > 0 {
		rows = append([]specRow{{"Year", strconv.Itoa(l.Year)}}, rows...)
	}
	return rows
}

func specsTable(l listing.Listing) g.Node {
	var rows []g.Node
	for _, r := range carSpecs(l) {
		if r.value == "" {
			continue
		}
		rows = append(rows, Tr(
			Class("border-b"),
			Th(Class("text-left py-2 pr-4 font-medium text-gray-600"), g.Text(r.label)),
			Td(Class("py-2"), g.Text(r.value)),
		))
	}
	return Table(Class("w-full text-sm"), TBody(g.Group(rows)))
}

func gallery(l listing.Listing) g.Node {
	images := l.Gallery()
	if len(images) == 0 {
		return carImage(l, "w-full h-80 rounded-lg")
	}
	thumbs := make([]g.Node, 0, len(images)-1)
	for _, src := range images[1:] {
		thumbs = append(thumbs, A(Href(src), Img(Src(src), Alt(l.Title()), Class("w-24 h-16 object-cover rounded"), g.Attr("loading", "lazy"))))
	}
	return Div(
		Img(Src(images[0]), Alt(l.Title()), Class("w-full h-80 object-cover rounded-lg")),
		g.If(len(thumbs) > 0, Div(Class("flex gap-2 mt-2 overflow-x-auto"), g.Group(thumbs))),
	)
}

func featureList(features []string) g.Node {
	if len(features) == 0 {
		return nil
	}
	items := make([]g.Node, 0, len(features))
	for _, f := range features {
		items = append(items, Li(g.Text(f)))
	}
	return Div(
		Class("mt-6"),
		H2(Class("text-xl font-semibold mb-2"), g.Text("Features")),
		Ul(Class("list-disc list-inside grid grid-cols-1 sm:grid-cols-2 gap-1 text-gray-700"), g.Group(items)),
	)
}

// dealerCard shows who is selling l, with the WhatsApp enquiry button when
// the dealer can be reached.
func dealerCard(d *listing.Dealer, l listing.Listing) g.Node {
	if d == nil {
		return nil
	}
	var contact g.Node
	if wa := d.WhatsAppURL(enquiryText(l)); wa != "" && l.IsAvailable() {
		contact = buttonWhatsApp("Enquire on WhatsApp", withHref(wa), withClass("w-full text-center mt-4"),
			withAttributes(Target("_blank"), Rel("noopener")))
	}
	return Div(
		Class("bg-white rounded-lg shadow p-4"),
		Div(
			Class("flex items-center gap-3"),
			dealerAvatar(*d, "w-12 h-12"),
			Div(
				A(Href(dealerURL(*d)), Class("font-semibold hover:underline"), g.Text(d.Name)),
				verifiedBadge(d.Verified),
				g.If(d.Location != "", P(Class("text-sm text-gray-500"), g.Text(d.Location))),
			),
		),
		contact,
	)
}

func dealerURL(d listing.Dealer) string {
	return "/dealers/" + url.PathEscape(d.ID)
}

// CarPage is the detail page for one listing. dealer may be nil.
func CarPage(l listing.Listing, dealer *listing.Dealer) g.Node {
	return Page(
		l.Title(),
		"/cars",
		[]g.Node{
			A(Href("/cars"), Class("text-sm text-gray-600 hover:underline"), g.Text("← Back to cars")),
			Div(
				ID("car"),
				Class("grid grid-cols-1 lg:grid-cols-3 gap-8 mt-4"),
				Div(
					Class("lg:col-span-2"),
					Div(Class("relative"), gallery(l), statusBadge(l.Status)),
					g.If(l.Description != "", P(Class("mt-6 text-gray-700 whitespace-pre-line"), g.Text(l.Description))),
					featureList(l.Features),
				),
				Div(
					Class("space-y-4"),
					H1(Class("text-2xl font-bold"), g.Text(l.Title())),
					P(Class("text-2xl text-[#272D3C] font-bold"), g.Text(Price(l.Price))),
					g.If(!l.IsAvailable(), P(Class("text-red-600 font-semibold"), g.Text("This car has been sold."))),
					specsTable(l),
					dealerCard(dealer, l),
				),
			),
		},
	)
}

// CarLoadError is the detail page shown when a listing cannot be loaded.
func CarLoadError(id string) g.Node {
	return Page(
		"Car",
		"/cars",
		[]g.Node{
			Div(
				ID("car"),
				LoadError("Failed to load this car. Please try again later.", "/cars/"+url.PathEscape(id), "#car"),
			),
		},
	)
}
