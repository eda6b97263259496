package listing

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideboard/site/filter"
	"github.com/rideboard/site/vehicle"
)

// fakeSource fails the first failures calls, then returns vehicles
type fakeSource struct {
	vehicles []vehicle.Vehicle
	failures int
	calls    int
}

func (f *fakeSource) ListActiveVehicles(ctx context.Context) ([]vehicle.Vehicle, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("backend unavailable")
	}
	return f.vehicles, nil
}

func sampleVehicles() []vehicle.Vehicle {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return []vehicle.Vehicle{
		{ID: "first", Title: "BMW", Make: "BMW", Model: "X5", Price: 2_000_000, Year: 2020, Category: vehicle.CategoryCar, CreatedAt: base},
		{ID: "second", Title: "Audi", Make: "Audi", Model: "A4", Price: 3_000_000, Year: 2018, Category: vehicle.CategoryCar, CreatedAt: base.Add(-time.Hour)},
		{ID: "third", Title: "Honda", Make: "Honda", Model: "CBR600", Price: 900_000, Year: 2015, Category: vehicle.CategoryBike, CreatedAt: base.Add(-2 * time.Hour)},
	}
}

func resultIDs(c *Controller) []string {
	var ids []string
	for _, v := range c.Results() {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "filters-pending", PhaseFiltersPending.String())
	assert.Equal(t, "filters-applied", PhaseFiltersApplied.String())
	assert.Equal(t, "error", PhaseError.String())
}

func TestController_LoadThenApplyURL(t *testing.T) {
	source := &fakeSource{vehicles: sampleVehicles()}
	c := New(source)

	assert.Equal(t, PhaseLoading, c.Phase())
	assert.Empty(t, c.Results())
	assert.ErrorIs(t, c.Update(func(s filter.State) filter.State { return s.WithMake("BMW") }), ErrNotReady)

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, PhaseFiltersPending, c.Phase())
	assert.Len(t, c.Collection(), 3)

	applied := c.ApplyURL(url.Values{"make": {"BMW"}})
	assert.True(t, applied)
	assert.Equal(t, PhaseFiltersApplied, c.Phase())
	assert.Equal(t, []string{"first"}, resultIDs(c))
	assert.Equal(t, 1, source.calls)
}

func TestController_ApplyURLOnlyOnce(t *testing.T) {
	c := New(&fakeSource{vehicles: sampleVehicles()})
	require.NoError(t, c.Load(context.Background()))

	require.True(t, c.ApplyURL(url.Values{"vehicleType": {"bike"}}))
	assert.False(t, c.ApplyURL(url.Values{"make": {"Audi"}}))

	assert.Equal(t, vehicle.CategoryBike, c.State().Category())
	assert.Equal(t, "", c.State().Make())
	assert.Equal(t, []string{"third"}, resultIDs(c))
}

func TestController_ApplyURLBeforeLoadIsIgnored(t *testing.T) {
	c := New(&fakeSource{vehicles: sampleVehicles()})

	assert.False(t, c.ApplyURL(url.Values{"make": {"BMW"}}))
	assert.Equal(t, PhaseLoading, c.Phase())
}

func TestController_UpdateRederivesResults(t *testing.T) {
	c := New(&fakeSource{vehicles: sampleVehicles()})
	require.NoError(t, c.Load(context.Background()))
	require.True(t, c.ApplyURL(nil))

	assert.Equal(t, []string{"first", "second", "third"}, resultIDs(c))

	require.NoError(t, c.Update(func(s filter.State) filter.State {
		return s.WithPriceRange(2_500_000, 5_000_000)
	}))
	assert.Equal(t, []string{"second"}, resultIDs(c))

	require.NoError(t, c.Update(func(s filter.State) filter.State { return s.WithMake("BMW") }))
	assert.Empty(t, c.Results())
	assert.NotNil(t, c.Results(), "an empty result is a state, not an error")
	assert.NoError(t, c.Err())
}

func TestController_SetSort(t *testing.T) {
	c := New(&fakeSource{vehicles: sampleVehicles()})
	require.NoError(t, c.Load(context.Background()))
	require.True(t, c.ApplyURL(nil))

	c.SetSort(filter.SortPriceLow)
	assert.Equal(t, filter.SortPriceLow, c.SortKey())
	assert.Equal(t, []string{"third", "first", "second"}, resultIDs(c))

	c.SetSort(filter.SortPriceHigh)
	assert.Equal(t, []string{"second", "first", "third"}, resultIDs(c))
}

func TestController_Reset(t *testing.T) {
	c := New(&fakeSource{vehicles: sampleVehicles()})
	require.NoError(t, c.Load(context.Background()))
	require.True(t, c.ApplyURL(url.Values{"make": {"Audi"}, "search": {"a4"}}))
	assert.Equal(t, "/vehicles?make=Audi&search=a4", c.PushURL("/vehicles"))

	require.NoError(t, c.Reset())

	assert.Equal(t, PhaseFiltersApplied, c.Phase())
	assert.True(t, c.State().IsDefault())
	assert.Equal(t, []string{"first", "second", "third"}, resultIDs(c))
	assert.Equal(t, "/vehicles", c.PushURL("/vehicles"))

	// The URL step is not re-armed by a reset
	assert.False(t, c.ApplyURL(url.Values{"make": {"BMW"}}))
}

func TestController_ResetWhileLoadingFails(t *testing.T) {
	c := New(&fakeSource{})
	assert.ErrorIs(t, c.Reset(), ErrInvalidTransition)
}

func TestController_LoadFailureAndRetry(t *testing.T) {
	source := &fakeSource{vehicles: sampleVehicles(), failures: 1}
	c := New(source)

	before := testutil.ToFloat64(loadsTotal.WithLabelValues("error"))

	err := c.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)
	assert.Equal(t, PhaseError, c.Phase())
	assert.ErrorIs(t, c.Err(), ErrLoad)
	assert.Empty(t, c.Results())
	assert.Equal(t, before+1, testutil.ToFloat64(loadsTotal.WithLabelValues("error")))

	// No automatic retry happened
	assert.Equal(t, 1, source.calls)

	// Filters stay inert in the error phase
	assert.ErrorIs(t, c.Update(func(s filter.State) filter.State { return s }), ErrNotReady)

	require.NoError(t, c.Retry(context.Background()))
	assert.Equal(t, PhaseFiltersPending, c.Phase())
	assert.NoError(t, c.Err())
	assert.Equal(t, 2, source.calls)
	assert.True(t, c.ApplyURL(nil))
}

func TestController_RetryOnlyFromError(t *testing.T) {
	c := New(&fakeSource{vehicles: sampleVehicles()})
	assert.ErrorIs(t, c.Retry(context.Background()), ErrInvalidTransition)

	require.NoError(t, c.Load(context.Background()))
	assert.ErrorIs(t, c.Retry(context.Background()), ErrInvalidTransition)
	assert.ErrorIs(t, c.Load(context.Background()), ErrInvalidTransition)
}

func TestController_OverlappingLoadIsRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	c := New(SourceFunc(func(ctx context.Context) ([]vehicle.Vehicle, error) {
		close(entered)
		<-release
		return sampleVehicles(), nil
	}))

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background()) }()
	<-entered

	// The first fetch is still running
	assert.ErrorIs(t, c.Load(context.Background()), ErrInvalidTransition)
	assert.Equal(t, PhaseLoading, c.Phase())

	close(release)
	require.NoError(t, <-done)

	require.True(t, c.ApplyURL(url.Values{"make": {"BMW"}}))
	assert.ErrorIs(t, c.Load(context.Background()), ErrInvalidTransition)
	assert.False(t, c.ApplyURL(url.Values{"make": {"Audi"}}))

	assert.Equal(t, PhaseFiltersApplied, c.Phase())
	assert.Equal(t, "BMW", c.State().Make())
	assert.Equal(t, []string{"first"}, resultIDs(c))
}

func TestController_EmptyCollection(t *testing.T) {
	c := New(SourceFunc(func(ctx context.Context) ([]vehicle.Vehicle, error) {
		return nil, nil
	}))

	require.NoError(t, c.Load(context.Background()))
	require.True(t, c.ApplyURL(nil))

	assert.NotNil(t, c.Results())
	assert.Empty(t, c.Results())
}

func TestController_LoadHonorsContext(t *testing.T) {
	c := New(SourceFunc(func(ctx context.Context) ([]vehicle.Vehicle, error) {
		return nil, ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrLoad)
	assert.Equal(t, PhaseError, c.Phase())
}
