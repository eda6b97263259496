package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideboard/site/vehicle"
)

func mustParseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return values
}

func TestParsePriceRange(t *testing.T) {
	tests := []struct {
		input    string
		expected Range
		ok       bool
	}{
		{"500000-1000000", NewRange(500000, 1000000), true},
		{"1000000-500000", NewRange(500000, 1000000), true},
		{"2000000+", NewRange(2000000, PriceCeiling), true},
		{"2000000 ", NewRange(2000000, PriceCeiling), true},
		{"0-0", NewRange(0, 0), true},
		{"abc", Range{}, false},
		{"", Range{}, false},
		{"100-", Range{}, false},
		{"-100", Range{}, false},
		{"1-2-3", Range{}, false},
		{"x+", Range{}, false},
		{"-5+", Range{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, ok := ParsePriceRange(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, r)
		})
	}
}

func TestFormatPriceRange(t *testing.T) {
	assert.Equal(t, "500000-1000000", FormatPriceRange(NewRange(500000, 1000000)))
	assert.Equal(t, "2000000+", FormatPriceRange(NewRange(2000000, PriceCeiling)))
	assert.Equal(t, "0+", FormatPriceRange(DefaultPriceRange()))
}

func TestFromQuery(t *testing.T) {
	s := FromQuery(mustParseQuery(t, "vehicleType=car&make=BMW&model=X5&priceRange=500000-1000000&search=clean&utm_source=mail"))

	assert.Equal(t, vehicle.CategoryCar, s.Category())
	assert.Equal(t, "BMW", s.Make())
	assert.Equal(t, "X5", s.Model())
	assert.Equal(t, "clean", s.Search())
	assert.Equal(t, 500000, s.PriceRange().Min())
	assert.Equal(t, 1000000, s.PriceRange().Max())
	assert.Equal(t, DefaultYearRange(), s.YearRange())
}

func TestFromQuery_OpenEndedPrice(t *testing.T) {
	// A literal plus sign must be escaped; an unescaped one decodes to a space
	escaped := FromQuery(mustParseQuery(t, "priceRange=2000000%2B"))
	unescaped := FromQuery(mustParseQuery(t, "priceRange=2000000+"))

	assert.Equal(t, NewRange(2000000, PriceCeiling), escaped.PriceRange())
	assert.Equal(t, NewRange(2000000, PriceCeiling), unescaped.PriceRange())
}

func TestFromQuery_MalformedValuesAreIgnored(t *testing.T) {
	s := FromQuery(mustParseQuery(t, "priceRange=abc&vehicleType=spaceship"))

	assert.Equal(t, DefaultPriceRange(), s.PriceRange())
	assert.Equal(t, NewRange(0, 150000000), s.PriceRange())
	assert.Equal(t, vehicle.Category(""), s.Category())
	assert.True(t, s.IsDefault())
}

func TestFromQuery_Empty(t *testing.T) {
	assert.True(t, FromQuery(url.Values{}).IsDefault())
	assert.True(t, FromQuery(nil).IsDefault())
}

func TestQuery_RoundTrip(t *testing.T) {
	states := []State{
		Default(),
		Default().WithSearch("clean diesel"),
		Default().WithCategory("bike").WithMake("Honda").WithModel("CBR600"),
		Default().WithPriceRange(500000, 1000000),
		Default().WithPriceRange(2000000, PriceCeiling),
		Default().WithFuelType("Diesel").WithTransmission("Automatic").WithMake("BMW"),
		Default().WithSearch("a&b=c").WithPriceRange(0, 10),
		Default().WithPriceRange(0, 200_000_000),
		Default().WithPriceRange(200_000_000, 300_000_000),
		Default().WithPriceRange(-5, 1_000),
	}

	for _, s := range states {
		encoded := Query(s).Encode()
		decoded := FromQuery(mustParseQuery(t, encoded))
		assert.Equal(t, s, decoded, "round trip through %q", encoded)
	}
}

func TestFromQuery_PriceBeyondCeilingIsClamped(t *testing.T) {
	wide := FromQuery(mustParseQuery(t, "priceRange=0-200000000"))
	assert.Equal(t, DefaultPriceRange(), wide.PriceRange())
	assert.Empty(t, Query(wide))

	above := FromQuery(mustParseQuery(t, "priceRange=200000000%2B"))
	assert.Equal(t, NewRange(PriceCeiling, PriceCeiling), above.PriceRange())

	encoded := Query(above).Encode()
	assert.Equal(t, "priceRange=150000000%2B", encoded)
	assert.Equal(t, above, FromQuery(mustParseQuery(t, encoded)))
}

func TestFromForm_PriceBeyondCeilingIsClamped(t *testing.T) {
	s := FromForm(mustParseQuery(t, "priceMin=1000000&priceMax=200000000"))

	assert.Equal(t, NewRange(1_000_000, PriceCeiling), s.PriceRange())
	assert.Equal(t, "priceRange=1000000%2B", Query(s).Encode())
}

func TestQuery_Encoding(t *testing.T) {
	s := Default().WithMake("BMW").WithPriceRange(500000, 1000000)

	assert.Equal(t, "make=BMW&priceRange=500000-1000000", Query(s).Encode())
	assert.Empty(t, Query(Default()))
}

func TestPushQuery_OmitsNonShareableCriteria(t *testing.T) {
	s := Default().
		WithSearch("clean").
		WithCategory("car").
		WithMake("BMW").
		WithModel("X5").
		WithFuelType("Diesel").
		WithTransmission("Automatic").
		WithPriceRange(100, 200).
		WithYearRange(2010, 2015).
		WithLocation("Lagos")

	values := PushQuery(s)

	assert.Equal(t, url.Values{
		"search":       {"clean"},
		"vehicleType":  {"car"},
		"make":         {"BMW"},
		"model":        {"X5"},
		"fuelType":     {"Diesel"},
		"transmission": {"Automatic"},
	}, values)
}

func TestPushURL(t *testing.T) {
	assert.Equal(t, "/vehicles", PushURL("/vehicles", Default()))
	assert.Equal(t, "/vehicles", PushURL("/vehicles", Default().WithLocation("Lagos").WithPriceRange(1, 2)))
	assert.Equal(t, "/vehicles?make=Audi", PushURL("/vehicles", Default().WithMake("Audi")))
}

func TestPushURL_MakeChangeDropsModel(t *testing.T) {
	s := Default().WithMake("BMW").WithModel("X5").WithMake("Audi")

	assert.Equal(t, "/vehicles?make=Audi", PushURL("/vehicles", s))
}

func TestFromForm(t *testing.T) {
	form := mustParseQuery(t, "search=clean&vehicleType=car&make=BMW&model=X5&priceMin=3000000&priceMax=1000000&yearMin=&yearMax=2020&location=Lagos&fuelType=all&transmission=Manual")

	s := FromForm(form)

	assert.Equal(t, "clean", s.Search())
	assert.Equal(t, vehicle.CategoryCar, s.Category())
	assert.Equal(t, "BMW", s.Make())
	assert.Equal(t, "X5", s.Model())
	assert.Equal(t, NewRange(1000000, 3000000), s.PriceRange())
	assert.Equal(t, NewRange(YearFloor, 2020), s.YearRange())
	assert.Equal(t, "Lagos", s.Location())
	assert.Equal(t, "", s.FuelType())
	assert.Equal(t, "Manual", s.Transmission())
}

func TestFromForm_BadNumbersFallBackToDefaults(t *testing.T) {
	s := FromForm(mustParseQuery(t, "priceMin=cheap&priceMax=&yearMin=old&yearMax=new"))

	assert.True(t, s.IsDefault())
}
