package ui

import (
	"fmt"
	"net/url"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/rideboard/site/config"
	"github.com/rideboard/site/filter"
	"github.com/rideboard/site/search"
	"github.com/rideboard/site/vehicle"
)

// ListingView is everything the listing needs to render once loaded
type ListingView struct {
	State       filter.State
	Sort        filter.SortKey
	Results     []vehicle.Vehicle
	Collection  []vehicle.Vehicle
	Favorites   map[string]bool
	TopSearches []search.TopSearch

	RecentSearches []search.VisitorSearch
}

// ListingPage renders the page shell in its loading state. The listing
// itself is fetched with the page's own query string once the page loads.
func ListingPage(rawQuery string, currentPath string) g.Node {
	return Page(
		"Vehicles for sale",
		currentPath,
		[]g.Node{
			pageHeader("Vehicles for sale"),
			ListingLoading(rawQuery),
		},
	)
}

func listingURL(rawQuery string) string {
	if rawQuery == "" {
		return config.ListingPath + "/listing"
	}
	return config.ListingPath + "/listing?" + rawQuery
}

// ListingLoading is the placeholder swapped out by the loaded listing
func ListingLoading(rawQuery string) g.Node {
	return Div(
		ID("listing"),
		hx.Get(listingURL(rawQuery)),
		hx.Trigger("load"),
		hx.Swap("outerHTML"),
		Div(
			Class("flex justify-center items-center p-12 gap-2 text-blue-600"),
			Div(Class("w-6 h-6 border-2 border-blue-600 border-t-transparent rounded-full animate-spin")),
			g.Text("Loading vehicles..."),
		),
	)
}

// ListingError replaces the listing when the collection could not be
// loaded. Nothing retries until the visitor asks.
func ListingError(rawQuery string) g.Node {
	return Div(
		ID("listing"),
		Div(
			Class("bg-red-100 border border-red-500 text-red-700 px-4 py-6 rounded text-center"),
			P(Class("text-lg mb-4"), g.Text("We couldn't load vehicles right now.")),
			button("Retry",
				withAttributes(
					hx.Get(listingURL(rawQuery)),
					hx.Target("#listing"),
					hx.Swap("outerHTML"),
				),
			),
		),
	)
}

// Listing renders the loaded listing: filters, suggestions and results
func Listing(view ListingView) g.Node {
	return Div(
		ID("listing"),
		popularSearches(view.TopSearches),
		RecentSearches(view.RecentSearches),
		filterForm(view),
		Results(view),
	)
}

// Results renders the result count, share link and vehicle grid
func Results(view ListingView) g.Node {
	return Div(
		ID("results"),
		Div(
			Class("flex items-center justify-between mb-4 text-sm text-gray-600"),
			Span(g.Text(resultCount(len(view.Results), len(view.Collection)))),
			shareLink(view.State),
		),
		g.If(len(view.Results) == 0, emptyState(view.State)),
		g.If(len(view.Results) > 0, vehicleGrid(view.Results, view.Favorites)),
	)
}

// FilterUpdate is the response to a filter change: the new results plus the
// model select, which depends on the chosen make.
func FilterUpdate(view ListingView) g.Node {
	return g.Group([]g.Node{
		Results(view),
		ModelSelect(vehicle.Models(view.Collection, view.State.Make()), view.State.Model(), true),
	})
}

func resultCount(shown, total int) string {
	if shown == total {
		return fmt.Sprintf("%d vehicles", total)
	}
	return fmt.Sprintf("%d of %d vehicles", shown, total)
}

func shareLink(s filter.State) g.Node {
	href := config.ListingPath
	if q := filter.Query(s); len(q) > 0 {
		href += "?" + q.Encode()
	}
	return A(
		Href(href),
		Class("text-blue-500 hover:underline"),
		Title("Link to this search"),
		g.Text("Share this search"),
	)
}

func emptyState(s filter.State) g.Node {
	return Div(
		Class("flex flex-col items-center p-8 gap-4"),
		P(Class("text-gray-600 text-lg"), g.Text("No vehicles match your filters")),
		g.If(!s.IsDefault(), resetButton(s.ActiveCount())),
	)
}

// searchHref links to the listing filtered by a search term
func searchHref(term string) string {
	return config.ListingPath + "?" + url.Values{"search": {term}}.Encode()
}

func popularSearches(top []search.TopSearch) g.Node {
	if len(top) == 0 {
		return nil
	}
	var links []g.Node
	for _, t := range top {
		links = append(links, A(
			Href(searchHref(t.QueryString)),
			Class("px-3 py-1 border border-blue-500 text-blue-500 rounded-full hover:bg-blue-50 whitespace-nowrap"),
			g.Text(t.QueryString),
		))
	}
	return Div(
		Class("flex flex-wrap items-center gap-2 mb-4 text-sm"),
		Span(Class("text-gray-500"), g.Text("Popular:")),
		g.Group(links),
	)
}

// RecentSearches lists the visitor's own latest terms. It always renders its
// container so deletes can swap it in place.
func RecentSearches(searches []search.VisitorSearch) g.Node {
	if len(searches) == 0 {
		return Div(ID("recentSearches"))
	}
	var items []g.Node
	for _, s := range searches {
		items = append(items, Span(
			Class("inline-flex items-center gap-1 px-3 py-1 bg-gray-100 rounded-full whitespace-nowrap"),
			A(Href(searchHref(s.QueryString)), Class("hover:underline"), g.Text(s.QueryString)),
			Button(
				Type("button"),
				Class("text-gray-500 hover:text-red-600"),
				Title("Remove"),
				hx.Delete(fmt.Sprintf("/api/searches/%d", s.ID)),
				hx.Target("#recentSearches"),
				hx.Swap("outerHTML"),
				g.Text("×"),
			),
		))
	}
	return Div(
		ID("recentSearches"),
		Class("flex flex-wrap items-center gap-2 mb-4 text-sm"),
		Span(Class("text-gray-500"), g.Text("Your searches:")),
		g.Group(items),
		buttonSecondary("Clear",
			withClass("text-sm"),
			withAttributes(
				hx.Delete("/api/searches"),
				hx.Target("#recentSearches"),
				hx.Swap("outerHTML"),
			),
		),
	)
}
