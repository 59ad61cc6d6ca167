package ui

import (
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/carsawa/site/config"
)

func indicator() g.Node {
	return Div(
		ID("indicator"),
		Class("htmx-indicator flex items-center gap-2 text-[#272D3C]"),
		Div(
			Class("w-4 h-4 border-2 border-[#272D3C] border-t-transparent rounded-full animate-spin"),
		),
		g.Text("Loading..."),
	)
}

type navItem struct {
	label string
	href  string
}

var navItems = []navItem{
	{"Home", "/"},
	{"Cars", "/cars"},
	{"Used Cars", "/used-cars"},
	{"Dealers", "/dealers"},
}

func isActive(currentPath, href string) bool {
	if href == "/" {
		return currentPath == "/"
	}
	return currentPath == href || strings.HasPrefix(currentPath, href+"/")
}

func navLink(item navItem, currentPath string) g.Node {
	class := "px-3 py-2 rounded hover:bg-gray-700"
	if isActive(currentPath, item.href) {
		class += " text-[#c1ff72] font-semibold"
	}
	return A(Href(item.href), Class(class), g.Text(item.label))
}

func navigation(currentPath string) g.Node {
	links := make([]g.Node, 0, len(navItems))
	for _, item := range navItems {
		links = append(links, navLink(item, currentPath))
	}
	return Nav(
		Class("bg-[#272D3C] text-white"),
		Div(
			Class("container mx-auto px-4 py-4 flex items-center justify-between"),
			A(Href("/"), Class("text-xl font-bold"), g.Text(config.SiteName)),
			indicator(),
			Div(Class("flex items-center space-x-2"), g.Group(links)),
		),
	)
}
