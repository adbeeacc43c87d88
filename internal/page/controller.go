// Package page owns the state of a single visitor's page: the breed ratings,
// the active tab and the fun fact currently on display.
//
// A Controller is the only writer of that state. The presentation layer reads
// it through View and observes changes through Subscribe.
package page

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/mtlprog/catpage/internal/content"
	"github.com/mtlprog/catpage/internal/domain"
)

// Listener receives the view after every successful mutation.
type Listener func(View)

// Controller holds one visitor's page state.
type Controller struct {
	mu        sync.Mutex
	breeds    []domain.BreedRating
	activeTab domain.Tab
	funFact   string
	facts     []string
	intN      func(n int) int

	listeners  map[int]Listener
	nextListen int
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand makes fact selection draw from r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		c.intN = r.IntN
	}
}

// New creates a controller with every rating at zero, the About tab active
// and a randomly picked fun fact.
func New(opts ...Option) *Controller {
	c := newController(opts)
	c.funFact = c.randomFact()
	return c
}

// Restore rebuilds a controller from persisted state. The state must satisfy
// the same invariants a live controller keeps.
func Restore(state domain.PageState, opts ...Option) (*Controller, error) {
	if len(state.Ratings) != content.BreedCount() {
		return nil, fmt.Errorf("%w: %d ratings for %d breeds", domain.ErrCorruptState, len(state.Ratings), content.BreedCount())
	}
	if !state.ActiveTab.IsValid() {
		return nil, fmt.Errorf("%w: %w %q", domain.ErrCorruptState, domain.ErrInvalidTab, state.ActiveTab)
	}
	if !content.IsFunFact(state.FunFact) {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptState, domain.ErrUnknownFact)
	}

	c := newController(opts)
	for i, r := range state.Ratings {
		if !domain.IsStoredRating(r) {
			return nil, fmt.Errorf("%w: breed %d has rating %d", domain.ErrCorruptState, i, r)
		}
		c.breeds[i].Rating = r
	}
	c.activeTab = state.ActiveTab
	c.funFact = state.FunFact

	return c, nil
}

func newController(opts []Option) *Controller {
	catalog := content.Breeds()
	breeds := make([]domain.BreedRating, len(catalog))
	for i, b := range catalog {
		breeds[i] = domain.BreedRating{Name: b.Name, Description: b.Description}
	}

	c := &Controller{
		breeds:    breeds,
		activeTab: domain.DefaultTab,
		facts:     content.FunFacts(),
		intN:      rand.IntN,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetRating replaces the rating of the breed at index.
// The index must address a catalog entry and value must be 1..5; otherwise
// the state is left untouched.
func (c *Controller) SetRating(index, value int) error {
	if index < 0 || index >= len(c.breeds) {
		return fmt.Errorf("%w: index %d", domain.ErrBreedNotFound, index)
	}
	if !domain.IsValidRating(value) {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidRating, value)
	}

	c.mu.Lock()
	c.breeds[index].Rating = value
	c.mu.Unlock()

	c.notify()
	return nil
}

// PickRandomFact selects a new fun fact uniformly at random and returns it.
// The same fact may be picked twice in a row.
func (c *Controller) PickRandomFact() string {
	c.mu.Lock()
	fact := c.randomFact()
	c.funFact = fact
	c.mu.Unlock()

	c.notify()
	return fact
}

// SetActiveTab switches the visible panel.
func (c *Controller) SetActiveTab(tab domain.Tab) error {
	if !tab.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTab, tab)
	}

	c.mu.Lock()
	c.activeTab = tab
	c.mu.Unlock()

	c.notify()
	return nil
}

// ResetRatings puts every breed back to the unrated state.
func (c *Controller) ResetRatings() {
	c.mu.Lock()
	for i := range c.breeds {
		c.breeds[i].Rating = domain.MinRating
	}
	c.mu.Unlock()

	c.notify()
}

// Breeds returns a copy of the breed sequence with current ratings.
func (c *Controller) Breeds() []domain.BreedRating {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.BreedRating(nil), c.breeds...)
}

// ActiveTab returns the panel currently shown.
func (c *Controller) ActiveTab() domain.Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

// FunFact returns the fact currently shown.
func (c *Controller) FunFact() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.funFact
}

// Snapshot returns the persistable form of the state. SessionID and UpdatedAt
// are left for the caller to fill.
func (c *Controller) Snapshot() domain.PageState {
	c.mu.Lock()
	defer c.mu.Unlock()

	ratings := make([]int, len(c.breeds))
	for i, b := range c.breeds {
		ratings[i] = b.Rating
	}
	return domain.PageState{
		ActiveTab: c.activeTab,
		FunFact:   c.funFact,
		Ratings:   ratings,
	}
}

// View renders the current state into a view-model.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildView()
}

// Subscribe registers fn to be called after every state change and returns a
// function that removes it. Listeners run on the mutating goroutine after the
// write is visible.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextListen
	c.nextListen++
	c.listeners[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// ListenerCount returns the number of active subscriptions.
func (c *Controller) ListenerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners)
}

func (c *Controller) notify() {
	c.mu.Lock()
	if len(c.listeners) == 0 {
		c.mu.Unlock()
		return
	}
	view := c.buildView()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(view)
	}
}

// randomFact must be called with mu held or before the controller is shared.
func (c *Controller) randomFact() string {
	return c.facts[c.intN(len(c.facts))]
}
