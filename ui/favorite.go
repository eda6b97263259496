package ui

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/rideboard/site/config"
	"github.com/rideboard/site/vehicle"
)

// FavoriteButton toggles the favorite state of a vehicle in place
func FavoriteButton(vehicleID string, favorited bool) g.Node {
	url := "/api/favorites/" + vehicleID
	if favorited {
		return Button(
			Type("button"),
			Class("text-red-500 text-xl focus:outline-none cursor-pointer"),
			Title("Remove from favorites"),
			hx.Delete(url),
			hx.Swap("outerHTML"),
			g.Text("♥"),
		)
	}
	return Button(
		Type("button"),
		Class("text-gray-400 hover:text-red-500 text-xl focus:outline-none cursor-pointer"),
		Title("Save to favorites"),
		hx.Post(url),
		hx.Swap("outerHTML"),
		g.Text("♡"),
	)
}

func FavoritesPage(vehicles []vehicle.Vehicle, currentPath string) g.Node {
	var content g.Node
	if len(vehicles) == 0 {
		content = Div(Class("text-center py-12"),
			Div(Class("text-gray-500 text-lg mb-4"), g.Text("No favorite vehicles yet.")),
			buttonSecondary("Browse vehicles", withHref(config.ListingPath)),
		)
	} else {
		favorites := make(map[string]bool, len(vehicles))
		for _, v := range vehicles {
			favorites[v.ID] = true
		}
		content = vehicleGrid(vehicles, favorites)
	}

	return Page(
		"Favorite vehicles",
		currentPath,
		[]g.Node{
			pageHeader("Favorite vehicles"),
			Div(Class("text-gray-600 text-sm mb-6"), g.Text("Vehicles you saved on this device.")),
			content,
		},
	)
}
