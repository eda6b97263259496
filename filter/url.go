package filter

import (
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

// Decoders and encoders cache struct metadata and are safe to share
var (
	decoder = newDecoder()
	encoder = schema.NewEncoder()
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// queryParams are the recognized keys of a shareable listing URL
type queryParams struct {
	Search       string `schema:"search,omitempty"`
	VehicleType  string `schema:"vehicleType,omitempty"`
	Make         string `schema:"make,omitempty"`
	Model        string `schema:"model,omitempty"`
	PriceRange   string `schema:"priceRange,omitempty"`
	FuelType     string `schema:"fuelType,omitempty"`
	Transmission string `schema:"transmission,omitempty"`
}

// formParams are the fields of the in-page filter form
type formParams struct {
	Search       string `schema:"search"`
	VehicleType  string `schema:"vehicleType"`
	Make         string `schema:"make"`
	Model        string `schema:"model"`
	PriceMin     string `schema:"priceMin"`
	PriceMax     string `schema:"priceMax"`
	YearMin      string `schema:"yearMin"`
	YearMax      string `schema:"yearMax"`
	Location     string `schema:"location"`
	FuelType     string `schema:"fuelType"`
	Transmission string `schema:"transmission"`
}

// FromQuery builds a State from a listing URL's query. Unrecognized keys and
// malformed values are ignored; a malformed priceRange yields the default range.
func FromQuery(values url.Values) State {
	var p queryParams
	if err := decoder.Decode(&p, values); err != nil {
		log.Printf("[filter] Ignoring undecodable query %q: %v", values.Encode(), err)
		return Default()
	}

	s := Default().
		WithSearch(p.Search).
		WithCategory(p.VehicleType).
		WithMake(p.Make).
		WithModel(p.Model).
		WithFuelType(p.FuelType).
		WithTransmission(p.Transmission)

	if p.PriceRange != "" {
		r, ok := ParsePriceRange(p.PriceRange)
		if !ok {
			r = DefaultPriceRange()
		}
		s = s.WithPriceRange(r.Min(), r.Max())
	}
	return s
}

// FromForm builds a State from the full filter form. Numbers that are empty
// or unparsable fall back to the default bound on that side.
func FromForm(values url.Values) State {
	var p formParams
	if err := decoder.Decode(&p, values); err != nil {
		log.Printf("[filter] Ignoring undecodable form: %v", err)
		return Default()
	}

	return Default().
		WithSearch(p.Search).
		WithCategory(p.VehicleType).
		WithMake(p.Make).
		WithModel(p.Model).
		WithPriceRange(parseBound(p.PriceMin, PriceFloor), parseBound(p.PriceMax, PriceCeiling)).
		WithYearRange(parseBound(p.YearMin, YearFloor), parseBound(p.YearMax, YearCeiling())).
		WithLocation(p.Location).
		WithFuelType(p.FuelType).
		WithTransmission(p.Transmission)
}

func parseBound(v string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

// Query encodes every recognized key of s that is set. The price range is
// included only when it differs from the default.
func Query(s State) url.Values {
	p := pushParams(s)
	if s.price != DefaultPriceRange() {
		p.PriceRange = FormatPriceRange(s.price)
	}
	return encode(p)
}

// PushQuery encodes the subset of s that is kept in the browser's address
// bar while filtering: search, vehicleType, make, model, fuelType, transmission.
func PushQuery(s State) url.Values {
	return encode(pushParams(s))
}

// PushURL returns path with the pushed subset of s as its query string, or
// path alone when nothing in that subset is set.
func PushURL(path string, s State) string {
	values := PushQuery(s)
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

func pushParams(s State) queryParams {
	return queryParams{
		Search:       s.search,
		VehicleType:  string(s.category),
		Make:         s.make,
		Model:        s.model,
		FuelType:     s.fuelType,
		Transmission: s.transmission,
	}
}

func encode(p queryParams) url.Values {
	values := url.Values{}
	if err := encoder.Encode(p, values); err != nil {
		// Only string fields are encoded, so this cannot happen in practice
		log.Printf("[filter] Failed to encode query: %v", err)
	}
	return values
}

// ParsePriceRange decodes "<min>-<max>" or the open-ended "<min>+".
func ParsePriceRange(v string) (Range, bool) {
	// An unescaped "+" in a query string arrives as a trailing space
	if strings.HasSuffix(v, "+") || strings.HasSuffix(v, " ") {
		lo, err := parseAmount(strings.TrimRight(v, "+ "))
		if err != nil {
			return Range{}, false
		}
		return NewRange(lo, PriceCeiling), true
	}

	parts := strings.Split(strings.TrimSpace(v), "-")
	if len(parts) != 2 {
		return Range{}, false
	}
	lo, err := parseAmount(parts[0])
	if err != nil {
		return Range{}, false
	}
	hi, err := parseAmount(parts[1])
	if err != nil {
		return Range{}, false
	}
	return NewRange(lo, hi), true
}

// FormatPriceRange encodes r, using the open-ended form when r reaches the ceiling
func FormatPriceRange(r Range) string {
	if r.max >= PriceCeiling {
		return strconv.Itoa(r.min) + "+"
	}
	return strconv.Itoa(r.min) + "-" + strconv.Itoa(r.max)
}

func parseAmount(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
