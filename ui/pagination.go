package ui

import (
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/carsawa/site/pagination"
)

// pagerLinks builds the hrefs for pagination controls. When target is set the
// links load through htmx into target instead of navigating.
type pagerLinks struct {
	href   func(page int) string
	target string
}

func (l pagerLinks) attrs(page int) []g.Node {
	attrs := []g.Node{Href(l.href(page))}
	if l.target != "" {
		attrs = append(attrs,
			hx.Get(l.href(page)),
			hx.Target(l.target),
			hx.Swap("outerHTML"),
			hx.Indicator("#indicator"),
			g.Attr("hx-sync", l.target+":replace"),
		)
	}
	return attrs
}

func pagerStep(text string, enabled bool, page int, links pagerLinks) g.Node {
	base := "px-4 py-2 rounded-lg bg-gray-200 hover:bg-gray-300"
	if !enabled {
		return Span(Class(base+" opacity-50 cursor-not-allowed"), g.Text(text))
	}
	return A(append(links.attrs(page), Class(base), g.Text(text))...)
}

func pagerButton(page, current int, links pagerLinks) g.Node {
	if page == current {
		return Span(
			Class("px-4 py-2 rounded-lg bg-[#c1ff72] text-[#272D3C] font-bold"),
			g.Attr("aria-current", "page"),
			g.Text(strconv.Itoa(page)),
		)
	}
	return A(append(links.attrs(page),
		Class("px-4 py-2 rounded-lg bg-gray-200 hover:bg-gray-300"),
		g.Text(strconv.Itoa(page)),
	)...)
}

func paginationControls(p pagination.Pager, links pagerLinks) g.Node {
	if !p.Visible() {
		return nil
	}
	buttons := make([]g.Node, 0, pagination.MaxButtons)
	for _, n := range p.Buttons() {
		buttons = append(buttons, pagerButton(n, p.Page, links))
	}
	return Nav(
		Class("flex justify-center items-center gap-2 mt-8"),
		g.Attr("aria-label", "Pagination"),
		pagerStep("Previous", p.HasPrev(), p.Prev(), links),
		g.Group(buttons),
		pagerStep("Next", p.HasNext(), p.Next(), links),
	)
}

func showingSummary(p pagination.Pager, noun string) g.Node {
	if p.Total == 0 {
		return nil
	}
	return P(
		Class("text-sm text-gray-600 mb-4"),
		g.Textf("Showing %d-%d of %d %s", p.ShowingFrom(), p.ShowingTo(), p.Total, noun),
	)
}
