// Package testdata builds synthetic location catalogs for tests and
// benchmarks.
package testdata

import (
	"fmt"
	"math/rand/v2"

	"github.com/jask/placefilter/internal/catalog"
)

// Shape sizes a generated catalog. Zero fields fall back to small defaults.
type Shape struct {
	Countries int
	MaxStates int // per country, at least 1
	MaxCities int // per state, at least 1
	Seed      uint64
}

var syllables = []string{"ka", "ri", "to", "an", "mo", "se", "lu", "va", "ne", "or", "pa", "di"}

// Generate returns a catalog with unique names at every level. The same
// Shape always yields the same data.
func Generate(s Shape) catalog.Data {
	if s.Countries <= 0 {
		s.Countries = 5
	}
	s.MaxStates = max(s.MaxStates, 1)
	s.MaxCities = max(s.MaxCities, 1)
	r := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))

	data := make(catalog.Data, s.Countries)
	for i := 0; i < s.Countries; i++ {
		country := fmt.Sprintf("%s %d", word(r), i)
		states := make(map[string][]string)
		nStates := 1 + r.IntN(s.MaxStates)
		for j := 0; j < nStates; j++ {
			n := 1 + r.IntN(s.MaxCities)
			cities := make([]string, n)
			for k := range cities {
				cities[k] = fmt.Sprintf("%s %d-%d-%d", word(r), i, j, k)
			}
			states[fmt.Sprintf("%s %d-%d", word(r), i, j)] = cities
		}
		data[country] = states
	}
	return data
}

// MustCatalog wraps Generate for tests.
func MustCatalog(s Shape) *catalog.Catalog {
	c, err := catalog.New(Generate(s))
	if err != nil {
		panic(err)
	}
	return c
}

func word(r *rand.Rand) string {
	n := 2 + r.IntN(3)
	b := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		b = append(b, syllables[r.IntN(len(syllables))]...)
	}
	b[0] -= 'a' - 'A'
	return string(b)
}
