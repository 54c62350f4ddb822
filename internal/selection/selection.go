// Package selection implements the cascading country → state → city
// selection and its transition rules.
package selection

import (
	"fmt"

	"github.com/jask/placefilter/internal/catalog"
)

// Level addresses one tier of the hierarchy. As a depth it also names the
// variant of a Selection: LevelNone is Unselected, LevelCity is fully
// selected.
type Level int

const (
	LevelNone Level = iota
	LevelCountry
	LevelState
	LevelCity
)

// Levels lists the addressable tiers, top-down.
var Levels = []Level{LevelCountry, LevelState, LevelCity}

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelCountry:
		return "country"
	case LevelState:
		return "state"
	case LevelCity:
		return "city"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel accepts the names produced by Level.String.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "country":
		return LevelCountry, nil
	case "state", "province":
		return LevelState, nil
	case "city":
		return LevelCity, nil
	default:
		return LevelNone, fmt.Errorf("unknown level %q (want country, state or city)", s)
	}
}

// Selection is one of four variants: Unselected, CountrySelected(c),
// CountryStateSelected(c,s) or FullySelected(c,s,ci). Only the first
// Depth() names are set; the rest are always empty. The zero value is
// Unselected. Selections are comparable values.
type Selection struct {
	depth Level
	names [3]string
}

// Unselected returns the empty selection.
func Unselected() Selection { return Selection{} }

// Resolve builds the deepest valid Selection from a raw triple, validating
// top-down against cat. An invalid country discards everything; an invalid
// state discards state and city; an invalid city discards only the city.
// Lower values are ignored once a higher level is empty.
func Resolve(cat *catalog.Catalog, country, state, city string) Selection {
	if !cat.HasCountry(country) {
		return Unselected()
	}
	sel := Selection{depth: LevelCountry, names: [3]string{country}}
	if !cat.HasState(country, state) {
		return sel
	}
	sel.depth = LevelState
	sel.names[1] = state
	if !cat.HasCity(country, state, city) {
		return sel
	}
	sel.depth = LevelCity
	sel.names[2] = city
	return sel
}

// Depth reports which variant s is.
func (s Selection) Depth() Level { return s.depth }

func (s Selection) IsEmpty() bool { return s.depth == LevelNone }

func (s Selection) Country() string { return s.names[0] }
func (s Selection) State() string   { return s.names[1] }
func (s Selection) City() string    { return s.names[2] }

// Get returns the name selected at level, or "" when unset.
func (s Selection) Get(level Level) string {
	if level < LevelCountry || level > LevelCity {
		return ""
	}
	return s.names[level-1]
}

// Has reports whether level is set.
func (s Selection) Has(level Level) bool {
	return level >= LevelCountry && level <= s.depth
}

// truncate drops level and everything below it.
func (s Selection) truncate(level Level) Selection {
	if level < LevelCountry {
		level = LevelCountry
	}
	out := Selection{depth: min(s.depth, level-1)}
	copy(out.names[:out.depth], s.names[:out.depth])
	return out
}

// with sets level to name and drops everything below it. The caller has
// already checked that the parent level is set and name is valid.
func (s Selection) with(level Level, name string) Selection {
	out := s.truncate(level)
	out.depth = level
	out.names[level-1] = name
	return out
}

func (s Selection) String() string {
	switch s.depth {
	case LevelCountry:
		return s.names[0]
	case LevelState:
		return s.names[0] + " / " + s.names[1]
	case LevelCity:
		return s.names[0] + " / " + s.names[1] + " / " + s.names[2]
	default:
		return "(none)"
	}
}
