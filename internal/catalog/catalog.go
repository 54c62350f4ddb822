// Package catalog holds the read-only country → state → city dataset that
// every selection is validated against.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

//go:embed data/locations.json
var defaultData embed.FS

// Data is the wire shape of a catalog: country → state → ordered cities.
// It is also the shape of every derived subset.
type Data map[string]map[string][]string

// Catalog is an immutable Data with sorted key indexes. Safe for concurrent
// readers; nothing in the module mutates it after New.
type Catalog struct {
	data      Data
	countries []string
	states    map[string][]string
}

// New deep-copies data and indexes it. Empty names are rejected because the
// empty string means "unset" everywhere else.
func New(data Data) (*Catalog, error) {
	c := &Catalog{
		data:   make(Data, len(data)),
		states: make(map[string][]string, len(data)),
	}
	for country, states := range data {
		if strings.TrimSpace(country) == "" {
			return nil, fmt.Errorf("catalog: empty country name")
		}
		copied := make(map[string][]string, len(states))
		names := make([]string, 0, len(states))
		for state, cities := range states {
			if strings.TrimSpace(state) == "" {
				return nil, fmt.Errorf("catalog: empty state name in %q", country)
			}
			for _, city := range cities {
				if strings.TrimSpace(city) == "" {
					return nil, fmt.Errorf("catalog: empty city name in %q/%q", country, state)
				}
			}
			copied[state] = append(make([]string, 0, len(cities)), cities...)
			names = append(names, state)
		}
		slices.Sort(names)
		c.data[country] = copied
		c.states[country] = names
		c.countries = append(c.countries, country)
	}
	slices.Sort(c.countries)
	return c, nil
}

// Load decodes a JSON document of the form {"country": {"state": ["city"]}}.
func Load(r io.Reader) (*Catalog, error) {
	var data Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(data)
}

// LoadFile reads a catalog from path. An empty path loads the bundled sample.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the bundled sample catalog.
func Default() (*Catalog, error) {
	f, err := defaultData.Open("data/locations.json")
	if err != nil {
		return nil, fmt.Errorf("open bundled catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Data exposes the underlying mapping. Callers must treat it as read-only.
func (c *Catalog) Data() Data {
	if c == nil {
		return nil
	}
	return c.data
}

// Countries returns all country names, sorted.
func (c *Catalog) Countries() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.countries)
}

// States returns the sorted state names of country, or nil if unknown.
func (c *Catalog) States(country string) []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.states[country])
}

// Cities returns the sorted city names of country/state, or nil if unknown.
func (c *Catalog) Cities(country, state string) []string {
	out := slices.Clone(c.CityList(country, state))
	slices.Sort(out)
	return out
}

// CityList returns the cities of country/state in dataset order. The slice is
// shared; callers must not modify it.
func (c *Catalog) CityList(country, state string) []string {
	if c == nil {
		return nil
	}
	return c.data[country][state]
}

func (c *Catalog) HasCountry(country string) bool {
	if c == nil || country == "" {
		return false
	}
	_, ok := c.data[country]
	return ok
}

func (c *Catalog) HasState(country, state string) bool {
	if !c.HasCountry(country) || state == "" {
		return false
	}
	_, ok := c.data[country][state]
	return ok
}

func (c *Catalog) HasCity(country, state, city string) bool {
	if !c.HasState(country, state) || city == "" {
		return false
	}
	return slices.Contains(c.data[country][state], city)
}
