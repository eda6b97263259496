package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rideboard/site/vehicle"
)

func TestNewRange_SwapsInvertedBounds(t *testing.T) {
	r := NewRange(500, 100)

	assert.Equal(t, 100, r.Min())
	assert.Equal(t, 500, r.Max())
	assert.True(t, r.Contains(100))
	assert.True(t, r.Contains(500))
	assert.False(t, r.Contains(99))
	assert.False(t, r.Contains(501))
}

func TestDefault(t *testing.T) {
	s := Default()

	assert.True(t, s.IsDefault())
	assert.Equal(t, 0, s.ActiveCount())
	assert.Equal(t, PriceFloor, s.PriceRange().Min())
	assert.Equal(t, PriceCeiling, s.PriceRange().Max())
	assert.Equal(t, YearFloor, s.YearRange().Min())
	assert.Equal(t, YearCeiling(), s.YearRange().Max())
}

func TestWithMethodsReturnCopies(t *testing.T) {
	original := Default()
	updated := original.WithMake("BMW").WithSearch("diesel")

	assert.True(t, original.IsDefault())
	assert.Equal(t, "BMW", updated.Make())
	assert.Equal(t, "diesel", updated.Search())
	assert.Equal(t, 2, updated.ActiveCount())
}

func TestWithMake_ClearsModel(t *testing.T) {
	s := Default().WithMake("BMW").WithModel("X5")
	assert.Equal(t, "X5", s.Model())

	// Even when the new make offers a model of the same name
	s = s.WithMake("Audi")
	assert.Equal(t, "Audi", s.Make())
	assert.Equal(t, "", s.Model())

	s = s.WithModel("X5").WithMake("Audi")
	assert.Equal(t, "", s.Model())
}

func TestSentinelAndWhitespaceNormalization(t *testing.T) {
	s := Default().
		WithMake(" all ").
		WithLocation("ALL").
		WithFuelType("  Diesel ").
		WithTransmission("all")

	assert.Equal(t, "", s.Make())
	assert.Equal(t, "", s.Location())
	assert.Equal(t, "Diesel", s.FuelType())
	assert.Equal(t, "", s.Transmission())
}

func TestWithCategory(t *testing.T) {
	assert.Equal(t, vehicle.CategoryBike, Default().WithCategory("bike").Category())
	assert.Equal(t, vehicle.Category(""), Default().WithCategory("truck").Category())
	assert.Equal(t, vehicle.Category(""), Default().WithCategory("car").WithCategory("all").Category())
}

func TestRangesAreNormalized(t *testing.T) {
	s := Default().WithPriceRange(5_000_000, 1_000_000).WithYearRange(2022, 2010)

	assert.Equal(t, NewRange(1_000_000, 5_000_000), s.PriceRange())
	assert.Equal(t, 2010, s.YearRange().Min())
	assert.Equal(t, 2022, s.YearRange().Max())
	assert.Equal(t, 2, s.ActiveCount())
}
