// Package listing drives one visit to the vehicle listing: it loads the
// collection once, applies the visit's URL criteria once, and re-derives the
// visible vehicles whenever the criteria or sort order change.
package listing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"

	"github.com/rideboard/site/filter"
	"github.com/rideboard/site/vehicle"
)

// Source supplies the active vehicle collection
type Source interface {
	ListActiveVehicles(ctx context.Context) ([]vehicle.Vehicle, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context) ([]vehicle.Vehicle, error)

func (f SourceFunc) ListActiveVehicles(ctx context.Context) ([]vehicle.Vehicle, error) {
	return f(ctx)
}

// Phase is the controller's position in the load / filter lifecycle
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseFiltersPending
	PhaseFiltersApplied
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseFiltersPending:
		return "filters-pending"
	case PhaseFiltersApplied:
		return "filters-applied"
	case PhaseError:
		return "error"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var (
	// ErrLoad wraps any failure of the data source
	ErrLoad = errors.New("could not load vehicles")
	// ErrNotReady is returned for filter changes before the collection is loaded
	ErrNotReady = errors.New("listing is not ready")
	// ErrInvalidTransition is returned when an action does not apply to the current phase
	ErrInvalidTransition = errors.New("invalid listing transition")
)

// Controller owns the state of one listing visit
type Controller struct {
	mu sync.Mutex

	source     Source
	fetching   bool
	phase      Phase
	err        error
	collection []vehicle.Vehicle
	state      filter.State
	sort       filter.SortKey
	results    []vehicle.Vehicle
}

// New returns a controller in the loading phase with default criteria
func New(source Source) *Controller {
	return &Controller{
		source: source,
		phase:  PhaseLoading,
		state:  filter.Default(),
		sort:   filter.SortNewest,
	}
}

// Load fetches the collection. It may only be called while loading, and
// only one fetch runs at a time.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseLoading || c.fetching {
		phase := c.phase
		c.mu.Unlock()
		return fmt.Errorf("%w: load from %s", ErrInvalidTransition, phase)
	}
	c.fetching = true
	c.mu.Unlock()

	// The fetch is the only blocking step; the lock is not held across it
	vehicles, err := c.source.ListActiveVehicles(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetching = false

	if err != nil {
		loadsTotal.WithLabelValues("error").Inc()
		log.Printf("[listing] Failed to load vehicles: %v", err)
		c.phase = PhaseError
		c.err = fmt.Errorf("%w: %w", ErrLoad, err)
		c.collection = nil
		c.results = nil
		return c.err
	}

	loadsTotal.WithLabelValues("ok").Inc()
	if vehicles == nil {
		vehicles = []vehicle.Vehicle{}
	}
	c.collection = vehicles
	c.err = nil
	c.phase = PhaseFiltersPending
	c.recompute()
	return nil
}

// Retry re-enters loading after a failed load and fetches again
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseError || c.fetching {
		phase := c.phase
		c.mu.Unlock()
		return fmt.Errorf("%w: retry from %s", ErrInvalidTransition, phase)
	}
	retriesTotal.Inc()
	c.phase = PhaseLoading
	c.err = nil
	c.mu.Unlock()

	return c.Load(ctx)
}

// ApplyURL sets the criteria from the visit's query string. It takes effect
// only the first time the loaded collection is waiting for filters; it
// reports whether the values were applied.
func (c *Controller) ApplyURL(values url.Values) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseFiltersPending {
		return false
	}
	c.state = filter.FromQuery(values)
	c.phase = PhaseFiltersApplied
	c.recompute()
	return true
}

// Update replaces the criteria with fn(current). Filter changes are
// rejected until the URL criteria have been applied.
func (c *Controller) Update(fn func(filter.State) filter.State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseFiltersApplied {
		return fmt.Errorf("%w: phase %s", ErrNotReady, c.phase)
	}
	c.state = fn(c.state)
	c.recompute()
	return nil
}

// SetSort changes the display order
func (c *Controller) SetSort(key filter.SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sort = key
	c.recompute()
}

// Reset clears every criterion. The caller is expected to drop the query
// string from the address (see PushURL).
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseFiltersPending, PhaseFiltersApplied:
	default:
		return fmt.Errorf("%w: reset from %s", ErrInvalidTransition, c.phase)
	}
	c.state = filter.Default()
	c.phase = PhaseFiltersApplied
	c.recompute()
	return nil
}

// recompute is the single place results are derived. Callers hold mu.
func (c *Controller) recompute() {
	if c.collection == nil {
		c.results = nil
		return
	}
	c.results = filter.Sort(filter.Apply(c.collection, c.state), c.sort)
	resultSize.Observe(float64(len(c.results)))
}

// Phase returns the current phase
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Err returns the load error while in the error phase
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// State returns the current criteria
func (c *Controller) State() filter.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SortKey returns the current display order
func (c *Controller) SortKey() filter.SortKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sort
}

// Results returns the filtered, sorted vehicles. Empty while loading or failed.
func (c *Controller) Results() []vehicle.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}

// Collection returns the full loaded collection
func (c *Controller) Collection() []vehicle.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collection
}

// PushURL returns the address the browser should show for the current criteria
func (c *Controller) PushURL(path string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return filter.PushURL(path, c.state)
}
