package filter

import (
	"database/sql"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rideboard/site/vehicle"
)

// Apply returns the vehicles that satisfy every active criterion of s, in
// their original order. The input slice is never modified.
func Apply(vehicles []vehicle.Vehicle, s State) []vehicle.Vehicle {
	// Casers carry state, so each call gets its own
	fold := cases.Fold()

	search := fold.String(s.search)
	location := fold.String(s.location)
	fuelType := fold.String(s.fuelType)
	transmission := fold.String(s.transmission)

	result := make([]vehicle.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if search != "" && !matchesSearch(fold, v, search) {
			continue
		}
		if s.category != "" && v.Category != s.category {
			continue
		}
		if s.make != "" && v.Make != s.make {
			continue
		}
		if s.model != "" && v.Model != s.model {
			continue
		}
		if !s.price.admits(v.Price, PriceFloor, PriceCeiling) || !s.year.admits(v.Year, YearFloor, YearCeiling()) {
			continue
		}
		if location != "" && !equalFolded(fold, v.Location, location) {
			continue
		}
		if fuelType != "" && !equalFolded(fold, v.FuelType, fuelType) {
			continue
		}
		if transmission != "" && !equalFolded(fold, v.Transmission, transmission) {
			continue
		}
		result = append(result, v)
	}
	return result
}

func matchesSearch(fold cases.Caser, v vehicle.Vehicle, term string) bool {
	fields := []string{v.Title, v.Make, v.Model}
	if v.Location.Valid {
		fields = append(fields, v.Location.String)
	}
	for _, field := range fields {
		if strings.Contains(fold.String(field), term) {
			return true
		}
	}
	return false
}

// equalFolded never matches a null field
func equalFolded(fold cases.Caser, field sql.NullString, want string) bool {
	return field.Valid && fold.String(field.String) == want
}
