package selection

import (
	"github.com/jask/placefilter/internal/catalog"
)

// Observer is called with the settled selection after every successful
// transition.
type Observer func(Selection)

// Cascade owns the current Selection and applies the transition rules.
// Each transition builds the complete next value before it is stored, so
// observers never see a partially updated triple. A Cascade is driven from
// a single goroutine.
type Cascade struct {
	catalog   *catalog.Catalog
	current   Selection
	observers []Observer
}

// NewCascade starts from initial, re-validated against cat.
func NewCascade(cat *catalog.Catalog, initial Selection) *Cascade {
	return &Cascade{
		catalog: cat,
		current: Resolve(cat, initial.Country(), initial.State(), initial.City()),
	}
}

// Current returns the settled selection.
func (c *Cascade) Current() Selection { return c.current }

// Subscribe registers fn for every later transition.
func (c *Cascade) Subscribe(fn Observer) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// SetCountry selects name, clearing state and city. Selecting the country
// that is already selected clears it instead.
func (c *Cascade) SetCountry(name string) error { return c.Select(LevelCountry, name) }

// SetState selects name under the current country, clearing the city.
// Selecting the current state clears it instead.
func (c *Cascade) SetState(name string) error { return c.Select(LevelState, name) }

// SetCity selects name under the current state. Selecting the current city
// clears it instead.
func (c *Cascade) SetCity(name string) error { return c.Select(LevelCity, name) }

// Select applies the toggle contract at level: re-selecting the current
// value clears that level and everything below it, any other valid value
// replaces it and clears everything below it.
func (c *Cascade) Select(level Level, name string) error {
	if level < LevelCountry || level > LevelCity {
		return &Error{Op: "select", Level: level, Value: name, Err: ErrInvalidSelection}
	}
	cur := c.current
	if level > LevelCountry && !cur.Has(level-1) {
		return &Error{Op: "select", Level: level, Value: name, Err: ErrPreconditionViolation}
	}
	if name == "" {
		return &Error{Op: "select", Level: level, Value: name, Err: ErrInvalidSelection}
	}
	if cur.Get(level) == name {
		c.commit(cur.truncate(level))
		return nil
	}
	if !c.valid(level, name) {
		err := &Error{Op: "select", Level: level, Value: name, Err: ErrInvalidSelection}
		err.Suggestion, _ = catalog.Closest(c.options(level), name)
		return err
	}
	c.commit(cur.with(level, name))
	return nil
}

// Clear empties level and everything below it. Clearing the country is a
// full reset.
func (c *Cascade) Clear(level Level) {
	c.commit(c.current.truncate(level))
}

// Reset empties all three levels.
func (c *Cascade) Reset() {
	c.commit(Unselected())
}

func (c *Cascade) commit(next Selection) {
	c.current = next
	for _, fn := range c.observers {
		fn(next)
	}
}

func (c *Cascade) valid(level Level, name string) bool {
	cur := c.current
	switch level {
	case LevelCountry:
		return c.catalog.HasCountry(name)
	case LevelState:
		return c.catalog.HasState(cur.Country(), name)
	default:
		return c.catalog.HasCity(cur.Country(), cur.State(), name)
	}
}

func (c *Cascade) options(level Level) []string {
	cur := c.current
	switch level {
	case LevelCountry:
		return c.catalog.Countries()
	case LevelState:
		return c.catalog.States(cur.Country())
	default:
		return c.catalog.Cities(cur.Country(), cur.State())
	}
}
