package handlers

import (
	"database/sql"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rideboard/site/config"
	"github.com/rideboard/site/cookie"
	"github.com/rideboard/site/filter"
	"github.com/rideboard/site/listing"
	"github.com/rideboard/site/search"
	"github.com/rideboard/site/ui"
	"github.com/rideboard/site/vehicle"
)

// vehicleSource feeds every listing controller. Tests replace it.
var vehicleSource listing.Source = listing.SourceFunc(vehicle.ListActive)

// HandleListingPage renders the listing shell in its loading state
func HandleListingPage(c *fiber.Ctx) error {
	return render(c, ui.ListingPage(string(c.Request().URI().QueryString()), c.Path()))
}

// newController loads a controller for this request. It returns false after
// rendering the error panel when the collection could not be loaded.
func newController(c *fiber.Ctx) (*listing.Controller, bool, error) {
	ctrl := listing.New(vehicleSource)
	if err := ctrl.Load(c.UserContext()); err != nil {
		rawQuery := string(c.Request().URI().QueryString())
		c.Set("HX-Retarget", "#listing")
		c.Set("HX-Reswap", "outerHTML")
		return nil, false, render(c, ui.ListingError(rawQuery))
	}
	return ctrl, true, nil
}

// HandleListing loads the collection and applies the page's query string
func HandleListing(c *fiber.Ctx) error {
	if !isHTMX(c) {
		return c.Redirect(listingRedirect(c), fiber.StatusSeeOther)
	}

	ctrl, ok, err := newController(c)
	if !ok {
		return err
	}
	ctrl.ApplyURL(queryValues(c))
	ctrl.SetSort(cookie.GetSort(c))

	logSearch(c, ctrl.State().Search())
	return render(c, ui.Listing(listingView(c, ctrl, true)))
}

// HandleResults re-derives the results from the submitted filter form
func HandleResults(c *fiber.Ctx) error {
	form := queryValues(c)
	if !isHTMX(c) {
		return c.Redirect(filter.PushURL(config.ListingPath, filter.FromForm(form)), fiber.StatusSeeOther)
	}

	ctrl, ok, err := newController(c)
	if !ok {
		return err
	}
	// The form is the whole truth from here on
	ctrl.ApplyURL(nil)

	state := filter.FromForm(form)
	switch c.Get("HX-Trigger-Name") {
	case "make":
		state = state.WithMake(state.Make())
	case "search":
		logSearch(c, state.Search())
	}
	if err := ctrl.Update(func(filter.State) filter.State { return state }); err != nil {
		return err
	}

	sortKey := filter.ParseSortKey(form.Get("sort"))
	if sortKey != cookie.GetSort(c) {
		cookie.SetSort(c, sortKey)
	}
	ctrl.SetSort(sortKey)

	c.Set("HX-Push-Url", ctrl.PushURL(config.ListingPath))
	return render(c, ui.FilterUpdate(listingView(c, ctrl, false)))
}

// HandleReset clears every filter and drops the query from the address bar
func HandleReset(c *fiber.Ctx) error {
	if !isHTMX(c) {
		return c.Redirect(config.ListingPath, fiber.StatusSeeOther)
	}

	ctrl, ok, err := newController(c)
	if !ok {
		return err
	}
	if err := ctrl.Reset(); err != nil {
		return err
	}
	ctrl.SetSort(cookie.GetSort(c))

	c.Set("HX-Push-Url", ctrl.PushURL(config.ListingPath))
	return render(c, ui.Listing(listingView(c, ctrl, true)))
}

// HandleModelOptions returns the model options for a make
func HandleModelOptions(c *fiber.Ctx) error {
	vehicles, err := vehicleSource.ListActiveVehicles(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Vehicles are unavailable")
	}
	return render(c, ui.ModelOptions(vehicle.Models(vehicles, c.Query("make")), ""))
}

func listingView(c *fiber.Ctx, ctrl *listing.Controller, withSuggestions bool) ui.ListingView {
	view := ui.ListingView{
		State:      ctrl.State(),
		Sort:       ctrl.SortKey(),
		Results:    ctrl.Results(),
		Collection: ctrl.Collection(),
		Favorites:  vehicle.FavoriteSet(c.UserContext(), cookie.GetVisitorID(c)),
	}
	if withSuggestions {
		top, err := search.GetTopSearches(config.TopSearchesLimit)
		if err != nil {
			log.Printf("[listing] Failed to load popular searches: %v", err)
		}
		view.TopSearches = top
		view.RecentSearches = recentSearches(cookie.GetVisitorID(c))
	}
	return view
}

func recentSearches(visitorID string) []search.VisitorSearch {
	if visitorID == "" {
		return nil
	}
	recent, err := search.GetRecentSearches(visitorID, config.RecentSearchesLimit)
	if err != nil {
		log.Printf("[listing] Failed to load recent searches: %v", err)
	}
	return recent
}

// logSearch records a search term against the visitor, issuing a visitor id
// so the term shows up in their recent searches
func logSearch(c *fiber.Ctx, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	id := cookie.EnsureVisitorID(c)
	if err := search.SaveSearch(sql.NullString{String: id, Valid: true}, term); err != nil {
		log.Printf("[listing] Failed to log search: %v", err)
	}
}

func listingRedirect(c *fiber.Ctx) string {
	if q := string(c.Request().URI().QueryString()); q != "" {
		return config.ListingPath + "?" + q
	}
	return config.ListingPath
}
