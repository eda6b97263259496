package filter

import (
	"cmp"
	"slices"

	"github.com/rideboard/site/vehicle"
)

// SortKey selects the display order of the listing
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortYearNew   SortKey = "year-new"
	SortYearOld   SortKey = "year-old"
)

// SortKeys lists the sort keys in the order they are offered
var SortKeys = []SortKey{SortNewest, SortPriceLow, SortPriceHigh, SortYearNew, SortYearOld}

// ParseSortKey returns the matching key, or SortNewest for anything unknown
func ParseSortKey(s string) SortKey {
	for _, k := range SortKeys {
		if string(k) == s {
			return k
		}
	}
	return SortNewest
}

// Label is the human readable name of the key
func (k SortKey) Label() string {
	switch k {
	case SortPriceLow:
		return "Price: low to high"
	case SortPriceHigh:
		return "Price: high to low"
	case SortYearNew:
		return "Year: newest first"
	case SortYearOld:
		return "Year: oldest first"
	}
	return "Newest listings"
}

// Sort returns a stably ordered copy of vehicles. Ties keep their input order.
func Sort(vehicles []vehicle.Vehicle, key SortKey) []vehicle.Vehicle {
	sorted := slices.Clone(vehicles)
	if sorted == nil {
		sorted = []vehicle.Vehicle{}
	}

	var compare func(a, b vehicle.Vehicle) int
	switch key {
	case SortPriceLow:
		compare = func(a, b vehicle.Vehicle) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceHigh:
		compare = func(a, b vehicle.Vehicle) int { return cmp.Compare(b.Price, a.Price) }
	case SortYearNew:
		compare = func(a, b vehicle.Vehicle) int { return cmp.Compare(b.Year, a.Year) }
	case SortYearOld:
		compare = func(a, b vehicle.Vehicle) int { return cmp.Compare(a.Year, b.Year) }
	default:
		compare = func(a, b vehicle.Vehicle) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}
