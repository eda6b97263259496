// Package filter holds the listing search criteria and the pure functions
// that derive the visible vehicles from them: Apply filters a collection,
// Sort orders it, and the query helpers map criteria to and from URLs.
package filter

import (
	"strings"
	"time"

	"github.com/rideboard/site/vehicle"
)

// Default bounds of the price and year ranges
const (
	PriceFloor   = 0
	PriceCeiling = 150_000_000
	YearFloor    = 1950
)

// YearCeiling is the newest model year that can be filtered for
func YearCeiling() int {
	return time.Now().Year() + 1
}

// All is the sentinel select value meaning "criterion inactive"
const All = "all"

// Range is an inclusive [min, max] pair with min <= max
type Range struct {
	min, max int
}

// NewRange returns the range between a and b, swapping them if inverted
func NewRange(a, b int) Range {
	if a > b {
		a, b = b, a
	}
	return Range{min: a, max: b}
}

func (r Range) Min() int { return r.min }
func (r Range) Max() int { return r.max }

// Contains reports whether v lies within the range, bounds included
func (r Range) Contains(v int) bool {
	return r.min <= v && v <= r.max
}

// admits is Contains with a bound at floor or ceiling treated as open, so the
// default range lets every value through.
func (r Range) admits(v, floor, ceiling int) bool {
	return (r.min <= floor || v >= r.min) && (r.max >= ceiling || v <= r.max)
}

// DefaultPriceRange spans every price
func DefaultPriceRange() Range { return NewRange(PriceFloor, PriceCeiling) }

// DefaultYearRange spans every model year
func DefaultYearRange() Range { return NewRange(YearFloor, YearCeiling()) }

// State is the normalized set of active listing criteria. It is a value:
// every With method returns an updated copy and leaves the receiver alone.
// The zero value is not meaningful; start from Default.
type State struct {
	search       string
	category     vehicle.Category
	make         string
	model        string
	price        Range
	year         Range
	location     string
	fuelType     string
	transmission string
}

// Default returns a State with no active criteria
func Default() State {
	return State{
		price: DefaultPriceRange(),
		year:  DefaultYearRange(),
	}
}

func (s State) Search() string             { return s.search }
func (s State) Category() vehicle.Category { return s.category }
func (s State) Make() string               { return s.make }
func (s State) Model() string              { return s.model }
func (s State) PriceRange() Range          { return s.price }
func (s State) YearRange() Range           { return s.year }
func (s State) Location() string           { return s.location }
func (s State) FuelType() string           { return s.fuelType }
func (s State) Transmission() string       { return s.transmission }

// normalize trims v and maps the "all" sentinel to unset
func normalize(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, All) {
		return ""
	}
	return v
}

// WithSearch sets the free-text search term
func (s State) WithSearch(term string) State {
	s.search = strings.TrimSpace(term)
	return s
}

// WithCategory sets the category; unknown values clear it
func (s State) WithCategory(category string) State {
	s.category, _ = vehicle.ParseCategory(category)
	return s
}

// WithMake sets the make and always clears the model, since a model is
// meaningless without its parent make.
func (s State) WithMake(makeName string) State {
	s.make = normalize(makeName)
	s.model = ""
	return s
}

// WithModel sets the model
func (s State) WithModel(model string) State {
	s.model = normalize(model)
	return s
}

// WithPriceRange sets the price bounds, swapping them if inverted. Bounds
// are clamped to [PriceFloor, PriceCeiling]; a ceiling bound means no limit.
func (s State) WithPriceRange(lo, hi int) State {
	s.price = NewRange(clamp(lo, PriceFloor, PriceCeiling), clamp(hi, PriceFloor, PriceCeiling))
	return s
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// WithYearRange sets the year bounds, swapping them if inverted
func (s State) WithYearRange(lo, hi int) State {
	s.year = NewRange(lo, hi)
	return s
}

// WithLocation sets the location
func (s State) WithLocation(location string) State {
	s.location = normalize(location)
	return s
}

// WithFuelType sets the fuel type
func (s State) WithFuelType(fuelType string) State {
	s.fuelType = normalize(fuelType)
	return s
}

// WithTransmission sets the transmission
func (s State) WithTransmission(transmission string) State {
	s.transmission = normalize(transmission)
	return s
}

// IsDefault reports whether no criterion is active
func (s State) IsDefault() bool {
	return s == Default()
}

// ActiveCount returns how many criteria are constraining the result
func (s State) ActiveCount() int {
	n := 0
	for _, v := range []string{s.search, string(s.category), s.make, s.model, s.location, s.fuelType, s.transmission} {
		if v != "" {
			n++
		}
	}
	if s.price != DefaultPriceRange() {
		n++
	}
	if s.year != DefaultYearRange() {
		n++
	}
	return n
}
