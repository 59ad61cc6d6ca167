package ui

import (
	"net/url"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/carsawa/site/listing"
	"github.com/carsawa/site/pagination"
)

func DealerCard(d listing.Dealer) g.Node {
	return A(
		Href(dealerURL(d)),
		Class("flex items-center gap-4 bg-white rounded-lg shadow p-4 hover:shadow-lg transition"),
		dealerAvatar(d, "w-16 h-16"),
		Div(
			H3(Class("font-semibold text-lg"), g.Text(d.Name), verifiedBadge(d.Verified)),
			g.If(d.Location != "", P(Class("text-sm text-gray-500"), g.Text(d.Location))),
		),
	)
}

func pageHref(path string) func(int) string {
	return func(page int) string {
		if page <= 1 {
			return path
		}
		return path + "?page=" + strconv.Itoa(page)
	}
}

// DealersPage lists dealers. err, when set, replaces the list with the inline
// failure message.
func DealersPage(dealers listing.Page[listing.Dealer], pageSize int, err error) g.Node {
	var body g.Node
	switch {
	case err != nil:
		body = LoadError("Failed to load dealers. Please try again later.", pageHref("/dealers")(dealers.Page), "#dealers")
	case len(dealers.Items) == 0:
		body = NoResultsMessage("No dealers yet.")
	default:
		cards := make([]g.Node, 0, len(dealers.Items))
		for _, d := range dealers.Items {
			cards = append(cards, DealerCard(d))
		}
		pager := pagination.New(dealers.Page, pageSize, dealers.Total, dealers.TotalPages)
		body = g.Group([]g.Node{
			showingSummary(pager, "dealers"),
			Div(Class("grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-6"), g.Group(cards)),
			paginationControls(pager, pagerLinks{href: pageHref("/dealers")}),
		})
	}
	return Page(
		"Dealers",
		"/dealers",
		[]g.Node{
			pageHeader("Dealers"),
			Div(ID("dealers"), body),
		},
	)
}

// DealerView is a dealer profile with one page of its cars.
type DealerView struct {
	Dealer   listing.Dealer
	Cars     listing.Page[listing.Listing]
	PageSize int
	CarsErr  error
}

func DealerPage(v DealerView) g.Node {
	path := dealerURL(v.Dealer)
	var cars g.Node
	switch {
	case v.CarsErr != nil:
		cars = LoadError(
			"Failed to load cars. Please try again later.",
			pageHref(path)(v.Cars.Page),
			"#dealer-cars",
		)
	case len(v.Cars.Items) == 0:
		cars = NoResultsMessage("This dealer has no cars listed right now.")
	default:
		pager := pagination.New(v.Cars.Page, v.PageSize, v.Cars.Total, v.Cars.TotalPages)
		cars = g.Group([]g.Node{
			showingSummary(pager, "cars"),
			CarGrid(v.Cars.Items),
			paginationControls(pager, pagerLinks{href: pageHref(path)}),
		})
	}

	var contact g.Node
	if wa := v.Dealer.WhatsAppURL("Hi, I found you on the car marketplace."); wa != "" {
		contact = buttonWhatsApp("Chat on WhatsApp", withHref(wa), withAttributes(Target("_blank"), Rel("noopener")))
	}

	return Page(
		v.Dealer.Name,
		"/dealers",
		[]g.Node{
			Div(
				ID("dealer"),
				Class("flex flex-col md:flex-row md:items-center gap-6 bg-white rounded-lg shadow p-6 mb-8"),
				dealerAvatar(v.Dealer, "w-24 h-24"),
				Div(
					Class("flex-1"),
					H1(Class("text-3xl font-bold"), g.Text(v.Dealer.Name), verifiedBadge(v.Dealer.Verified)),
					g.If(v.Dealer.Location != "", P(Class("text-gray-600"), g.Text(v.Dealer.Location))),
				),
				contact,
			),
			H2(Class("text-2xl font-semibold mb-4"), g.Text("Cars from "+v.Dealer.Name)),
			Div(ID("dealer-cars"), cars),
		},
	)
}

// DealerLoadError is shown when the dealer itself cannot be loaded.
func DealerLoadError(id string) g.Node {
	return Page(
		"Dealer",
		"/dealers",
		[]g.Node{
			Div(
				ID("dealer"),
				LoadError("Failed to load this dealer. Please try again later.", "/dealers/"+url.PathEscape(id), "#dealer"),
			),
		},
	)
}
