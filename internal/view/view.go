// Package view derives the visible subset of the catalog and its summary
// counts from the current selection.
package view

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jask/placefilter/internal/catalog"
	"github.com/jask/placefilter/internal/selection"
)

// Counts summarizes a subset.
type Counts struct {
	Countries int `json:"countries"`
	States    int `json:"states"`
	Cities    int `json:"cities"`
}

// View is the catalog restricted to a selection. Subset shares storage with
// the catalog and must not be modified.
type View struct {
	Subset catalog.Data
	Counts Counts
}

// Derive restricts cat to sel. With nothing selected the subset is the
// catalog itself.
func Derive(cat *catalog.Catalog, sel selection.Selection) View {
	var subset catalog.Data
	switch sel.Depth() {
	case selection.LevelNone:
		subset = cat.Data()
	case selection.LevelCountry:
		subset = catalog.Data{sel.Country(): cat.Data()[sel.Country()]}
	case selection.LevelState:
		subset = catalog.Data{sel.Country(): {
			sel.State(): cat.CityList(sel.Country(), sel.State()),
		}}
	default:
		subset = catalog.Data{sel.Country(): {
			sel.State(): {sel.City()},
		}}
	}
	return View{Subset: subset, Counts: Recount(subset)}
}

// Recount counts subset directly, so irregular data (a state with no
// cities) is reflected as-is.
func Recount(subset catalog.Data) Counts {
	var c Counts
	c.Countries = len(subset)
	for _, states := range subset {
		c.States += len(states)
		for _, cities := range states {
			c.Cities += len(cities)
		}
	}
	return c
}

// Options lists the choices a picker at level offers under sel: every
// country, the states of the selected country, or the cities of the
// selected state. Lists are sorted; a level whose parent is unset has none.
func Options(cat *catalog.Catalog, sel selection.Selection, level selection.Level) []string {
	switch level {
	case selection.LevelCountry:
		return cat.Countries()
	case selection.LevelState:
		if !sel.Has(selection.LevelCountry) {
			return []string{}
		}
		return cat.States(sel.Country())
	case selection.LevelCity:
		if !sel.Has(selection.LevelState) {
			return []string{}
		}
		return cat.Cities(sel.Country(), sel.State())
	default:
		return []string{}
	}
}

// JSON renders the subset with two-space indentation. The output has the
// same schema as the catalog input.
func (v View) JSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.WriteJSON(&buf); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (v View) WriteJSON(w io.Writer) error {
	subset := v.Subset
	if subset == nil {
		subset = catalog.Data{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalize(subset)); err != nil {
		return fmt.Errorf("encode view: %w", err)
	}
	return nil
}

// normalize replaces nil city lists so they encode as [] rather than null.
func normalize(subset catalog.Data) catalog.Data {
	clean := true
	for _, states := range subset {
		for _, cities := range states {
			if cities == nil {
				clean = false
			}
		}
		if states == nil {
			clean = false
		}
	}
	if clean {
		return subset
	}
	out := make(catalog.Data, len(subset))
	for country, states := range subset {
		copied := make(map[string][]string, len(states))
		for state, cities := range states {
			if cities == nil {
				cities = []string{}
			}
			copied[state] = cities
		}
		out[country] = copied
	}
	return out
}
