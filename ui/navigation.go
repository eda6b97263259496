package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/rideboard/site/config"
)

func navLink(text, href, currentPath string) g.Node {
	class := "text-blue-500 hover:underline"
	if href == currentPath {
		class = "font-semibold text-gray-900"
	}
	return A(Href(href), Class(class), g.Text(text))
}

func navigation(currentPath string) g.Node {
	return Nav(
		Class("flex items-center justify-between mb-8"),
		A(
			Href(config.ListingPath),
			Class("text-2xl font-bold text-gray-900"),
			g.Text("Rideboard"),
		),
		Div(
			Class("flex items-center space-x-4"),
			navLink("Vehicles", config.ListingPath, currentPath),
			navLink("Favorites", "/favorites", currentPath),
		),
	)
}

func indicator(id string) g.Node {
	return Div(
		ID(id),
		Class("htmx-indicator flex items-center gap-2 text-blue-600"),
		Div(
			Class("w-4 h-4 border-2 border-blue-600 border-t-transparent rounded-full animate-spin"),
		),
		g.Text("Loading..."),
	)
}
