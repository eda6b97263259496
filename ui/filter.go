package ui

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/rideboard/site/filter"
	"github.com/rideboard/site/vehicle"
)

const controlClass = "w-full p-2 border rounded-md"

// filterForm renders every filter control. Any change re-requests the
// results with the whole form. The search box and the make select send their
// own requests so the server can tell which of them changed.
func filterForm(view ListingView) g.Node {
	s := view.State
	return Form(
		ID("filters"),
		Class("bg-white border rounded-lg p-4 mb-6"),
		hx.Get("/vehicles/results"),
		hx.Trigger("change"),
		hx.Target("#results"),
		hx.Swap("outerHTML"),
		hx.Indicator("#resultsIndicator"),
		g.Attr("onsubmit", "return false"),
		searchBox(s.Search()),
		Div(
			Class("grid grid-cols-1 md:grid-cols-3 gap-4 mt-4"),
			categoryFilter(s.Category()),
			makeFilter(vehicle.Makes(view.Collection), s.Make()),
			labelled("Model", ModelSelect(vehicle.Models(view.Collection, s.Make()), s.Model(), false)),
			selectFilter("Fuel type", "fuelType", "fuelTypeFilter", "Any fuel", vehicle.FuelTypes(view.Collection), s.FuelType()),
			selectFilter("Transmission", "transmission", "transmissionFilter", "Any transmission", vehicle.Transmissions(view.Collection), s.Transmission()),
			selectFilter("Location", "location", "locationFilter", "All locations", vehicle.Locations(view.Collection), s.Location()),
		),
		Div(
			Class("grid grid-cols-1 md:grid-cols-3 gap-4 mt-4"),
			rangeFilter("Price", "priceMin", "priceMax", s.PriceRange(), filter.DefaultPriceRange()),
			rangeFilter("Year", "yearMin", "yearMax", s.YearRange(), filter.DefaultYearRange()),
			sortFilter(view.Sort),
		),
		Div(
			Class("flex items-center justify-between mt-4"),
			indicator("resultsIndicator"),
			resetButton(s.ActiveCount()),
		),
	)
}

func labelled(text string, control g.Node) g.Node {
	return Div(
		Label(Class("block text-sm font-medium mb-1"), g.Text(text)),
		control,
	)
}

func searchBox(value string) g.Node {
	return Input(
		Type("search"),
		Name("search"),
		ID("searchBox"),
		Class(controlClass),
		hx.Get("/vehicles/results"),
		hx.Include("#filters"),
		hx.Trigger("input changed delay:400ms, search"),
		hx.Target("#results"),
		hx.Swap("outerHTML"),
		hx.Indicator("#resultsIndicator"),
		Placeholder("Search by title, make, model or location"),
		Value(value),
	)
}

func options(values []string, selected, allLabel string) []g.Node {
	nodes := []g.Node{Option(Value(filter.All), g.Text(allLabel), g.If(selected == "", Selected()))}
	for _, v := range values {
		nodes = append(nodes, Option(Value(v), g.Text(v), g.If(v == selected, Selected())))
	}
	return nodes
}

func selectFilter(label, name, id, allLabel string, values []string, selected string) g.Node {
	return labelled(label, Select(
		Name(name),
		ID(id),
		Class(controlClass),
		g.Group(options(values, selected, allLabel)),
	))
}

func categoryFilter(selected vehicle.Category) g.Node {
	nodes := []g.Node{Option(Value(filter.All), g.Text("Cars and bikes"), g.If(selected == "", Selected()))}
	for _, c := range vehicle.Categories {
		nodes = append(nodes, Option(Value(string(c)), g.Text(c.DisplayName()), g.If(c == selected, Selected())))
	}
	return labelled("Type", Select(
		Name("vehicleType"),
		ID("categoryFilter"),
		Class(controlClass),
		g.Group(nodes),
	))
}

func makeFilter(makes []string, selected string) g.Node {
	return labelled("Make", Select(
		Name("make"),
		ID("makeFilter"),
		Class(controlClass),
		hx.Get("/vehicles/results"),
		hx.Include("#filters"),
		hx.Trigger("change consume"),
		hx.Target("#results"),
		hx.Swap("outerHTML"),
		hx.Indicator("#resultsIndicator"),
		g.Group(options(makes, selected, "All makes")),
	))
}

// ModelSelect renders the model choices for the selected make. With oob set
// it replaces the select already on the page.
func ModelSelect(models []string, selected string, oob bool) g.Node {
	return Select(
		Name("model"),
		ID("modelFilter"),
		Class(controlClass),
		g.If(len(models) == 0, Disabled()),
		g.If(oob, hx.SwapOOB("true")),
		ModelOptions(models, selected),
	)
}

// ModelOptions renders the option list of the model select
func ModelOptions(models []string, selected string) g.Node {
	return g.Group(options(models, selected, "All models"))
}

func boundValue(v, def int) string {
	if v == def {
		return ""
	}
	return strconv.Itoa(v)
}

func rangeFilter(label, minName, maxName string, r, def filter.Range) g.Node {
	return labelled(label, Div(
		Class("flex gap-2 flex-nowrap"),
		Input(
			Type("number"),
			Name(minName),
			Class("w-1/2 p-2 border rounded-md"),
			Placeholder("Min"),
			Min(strconv.Itoa(def.Min())),
			Max(strconv.Itoa(def.Max())),
			Value(boundValue(r.Min(), def.Min())),
		),
		Input(
			Type("number"),
			Name(maxName),
			Class("w-1/2 p-2 border rounded-md"),
			Placeholder("Max"),
			Min(strconv.Itoa(def.Min())),
			Max(strconv.Itoa(def.Max())),
			Value(boundValue(r.Max(), def.Max())),
		),
	))
}

func sortFilter(selected filter.SortKey) g.Node {
	var nodes []g.Node
	for _, k := range filter.SortKeys {
		nodes = append(nodes, Option(Value(string(k)), g.Text(k.Label()), g.If(k == selected, Selected())))
	}
	return labelled("Sort by", Select(
		Name("sort"),
		ID("sortFilter"),
		Class(controlClass),
		g.Group(nodes),
	))
}

// resetButton shows how many criteria it will clear
func resetButton(active int) g.Node {
	label := "Clear filters"
	if active > 0 {
		label = fmt.Sprintf("Clear filters (%d)", active)
	}
	return buttonSecondary(label,
		withAttributes(
			hx.Get("/vehicles/reset"),
			hx.Target("#listing"),
			hx.Swap("outerHTML"),
		),
	)
}
