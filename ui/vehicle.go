package ui

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/rideboard/site/vehicle"
)

func vehiclePath(v vehicle.Vehicle) string {
	return "/vehicles/" + v.ID
}

func coverImage(v vehicle.Vehicle) g.Node {
	src := v.CoverImage()
	if src == "" {
		return Div(
			Class("flex items-center justify-center w-full h-48 bg-gray-100 text-gray-400 text-sm"),
			g.Text("No photo"),
		)
	}
	return Img(
		Src(src),
		Alt(v.Title),
		g.Attr("loading", "lazy"),
		Class("object-cover w-full h-48 bg-gray-100"),
	)
}

// vehicleCard renders one vehicle in the results grid
func vehicleCard(v vehicle.Vehicle, favorited bool) g.Node {
	return Div(
		ID("vehicle-"+v.ID),
		Class("border rounded-lg shadow-sm bg-white flex flex-col hover:shadow-md transition-shadow"),
		A(
			Href(vehiclePath(v)),
			Class("relative rounded-t-lg overflow-hidden block"),
			coverImage(v),
			Div(
				Class("absolute top-0 left-0 bg-white text-green-600 text-base px-2 rounded-br-md"),
				g.Text(formatPrice(v.Price)),
			),
		),
		Div(
			Class("p-2 flex flex-col gap-1"),
			Div(
				Class("flex flex-row items-center justify-between"),
				A(Href(vehiclePath(v)), Class("font-semibold text-base truncate"), g.Text(v.Title)),
				FavoriteButton(v.ID, favorited),
			),
			Div(
				Class("text-sm text-gray-700"),
				g.Textf("%d %s %s", v.Year, v.Make, v.Model),
			),
			Div(
				Class("flex flex-row items-center justify-between text-xs text-gray-500"),
				Span(g.Text(formatMileage(v))),
				Span(g.Text(orUnknown(v.Location))),
			),
		),
	)
}

func vehicleGrid(vehicles []vehicle.Vehicle, favorites map[string]bool) g.Node {
	cards := make([]g.Node, 0, len(vehicles))
	for _, v := range vehicles {
		cards = append(cards, vehicleCard(v, favorites[v.ID]))
	}
	return Div(
		Class("grid grid-cols-1 sm:grid-cols-2 lg:grid-cols-4 gap-4"),
		g.Group(cards),
	)
}

func specRow(label, value string) g.Node {
	return Tr(
		Td(Class("py-1 pr-4 text-gray-500"), g.Text(label)),
		Td(Class("py-1"), g.Text(value)),
	)
}

func gallery(v vehicle.Vehicle) g.Node {
	if len(v.Images) <= 1 {
		return Div(Class("rounded-lg overflow-hidden mb-4"), coverImage(v))
	}
	var imgs []g.Node
	for i, src := range v.Images {
		imgs = append(imgs, Img(
			Src(src),
			Alt(fmt.Sprintf("%s photo %d", v.Title, i+1)),
			g.Attr("loading", "lazy"),
			Class("object-cover w-full h-64 rounded-lg"),
		))
	}
	return Div(Class("grid grid-cols-1 md:grid-cols-2 gap-2 mb-4"), g.Group(imgs))
}

func VehicleDetailPage(v vehicle.Vehicle, favorited bool, currentPath string) g.Node {
	_, canContact := v.ContactURL()
	return Page(
		v.Title,
		currentPath,
		[]g.Node{
			Div(
				Class("flex items-center justify-between mb-4"),
				H1(Class("text-3xl font-bold"), g.Text(v.Title)),
				FavoriteButton(v.ID, favorited),
			),
			Div(Class("text-2xl text-green-600 mb-4"), g.Text(formatPrice(v.Price))),
			gallery(v),
			Table(
				Class("mb-6"),
				TBody(
					specRow("Type", v.Category.DisplayName()),
					specRow("Make", v.Make),
					specRow("Model", v.Model),
					specRow("Year", strconv.Itoa(v.Year)),
					specRow("Mileage", formatMileage(v)),
					specRow("Fuel type", orUnknown(v.FuelType)),
					specRow("Transmission", orUnknown(v.Transmission)),
					specRow("Location", orUnknown(v.Location)),
					specRow("Listed", v.CreatedAt.Format("Jan 2, 2006")),
				),
			),
			g.If(v.Description != "", P(Class("whitespace-pre-line text-gray-800"), g.Text(v.Description))),
			actionButtons(
				g.If(canContact, buttonWhatsApp("Chat with seller on WhatsApp",
					withHref(vehiclePath(v)+"/contact"),
					withAttributes(Target("_blank"), Rel("noopener")),
				)),
				g.If(!canContact, Span(Class("text-gray-500"), g.Text("The seller has not shared a phone number."))),
				buttonSecondary("Back to vehicles", withHref("javascript:history.back()")),
			),
		},
	)
}
