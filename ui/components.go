package ui

import (
	"database/sql"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/rideboard/site/config"
	"github.com/rideboard/site/vehicle"
)

// ---- Formatting ----

func formatNumber(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

func formatPrice(price int) string {
	return config.CurrencySymbol + formatNumber(int64(price))
}

func formatMileage(v vehicle.Vehicle) string {
	if !v.Mileage.Valid {
		return "Mileage unknown"
	}
	return formatNumber(v.Mileage.Int64) + " km"
}

func orUnknown(s sql.NullString) string {
	if !s.Valid || s.String == "" {
		return "Unknown"
	}
	return s.String
}

// ---- Message Components ----

func ErrorPage(code int, msg string) g.Node {
	return Page(
		fmt.Sprintf("Error %d", code),
		"",
		[]g.Node{
			pageHeader(fmt.Sprintf("Error %d", code)),
			P(g.Text(msg)),
			actionButtons(buttonSecondary("Back to vehicles", withHref(config.ListingPath))),
		},
	)
}

// EmptyResponse returns an empty div for HTMX responses that don't need content
func EmptyResponse() g.Node {
	return Div()
}

func sectionHeader(title string) g.Node {
	return H2(Class("text-xl font-semibold mb-4"), g.Text(title))
}
