package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/carsawa/site/listing"
)

// ---- Message Components ----

// LoadError is the inline failure message. Its retry button re-issues
// retryURL and swaps only target, so the rest of the page stays usable.
func LoadError(message, retryURL, target string) g.Node {
	return Div(
		Class("bg-red-50 border border-red-200 text-red-700 px-4 py-6 rounded-lg text-center"),
		g.Attr("role", "alert"),
		P(Class("mb-4"), g.Text(message)),
		button("Try Again",
			withType("button"),
			withAttributes(
				hx.Get(retryURL),
				hx.Target(target),
				g.Attr("hx-select", target),
				hx.Swap("outerHTML"),
				hx.Indicator("#indicator"),
			),
		),
	)
}

func NoResultsMessage(text string) g.Node {
	return Div(
		Class("flex justify-center items-center p-8"),
		P(Class("text-gray-600 text-lg"), g.Text(text)),
	)
}

func ErrorPage(code int, message string) g.Node {
	return Page(
		fmt.Sprintf("Error %d", code),
		"",
		[]g.Node{
			pageHeader(fmt.Sprintf("Error %d", code)),
			P(Class("mb-6 text-gray-700"), g.Text(message)),
			button("Back to home", withHref("/")),
		},
	)
}

// EmptyResponse is sent to htmx when nothing should change on the page.
func EmptyResponse() g.Node {
	return g.Group(nil)
}

func statusBadge(s listing.Status) g.Node {
	class := "absolute top-2 right-2 text-xs font-semibold px-2 py-1 rounded "
	if s == listing.StatusSold {
		class += "bg-red-600 text-white"
	} else {
		class += "bg-[#c1ff72] text-[#272D3C]"
	}
	return Span(Class(class), g.Text(s.Label()))
}

func verifiedBadge(verified bool) g.Node {
	return g.If(verified, Span(
		Class("ml-2 text-xs bg-blue-100 text-blue-700 px-2 py-0.5 rounded-full"),
		g.Text("✓ Verified"),
	))
}

func dealerAvatar(d listing.Dealer, size string) g.Node {
	if d.ProfileImage == "" {
		initial := "?"
		if r := []rune(d.Name); len(r) > 0 {
			initial = string(r[0])
		}
		return Div(
			Class(size+" rounded-full bg-[#272D3C] text-white flex items-center justify-center font-bold"),
			g.Text(initial),
		)
	}
	return Img(Src(d.ProfileImage), Alt(d.Name), Class(size+" rounded-full object-cover"))
}
