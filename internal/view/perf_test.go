package view

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/placefilter/internal/selection"
	"github.com/jask/placefilter/internal/testdata"
)

var largeShape = testdata.Shape{Countries: 200, MaxStates: 40, MaxCities: 60, Seed: 11}

func TestDeriveLargeCatalogCounts(t *testing.T) {
	cat := testdata.MustCatalog(largeShape)
	full := Derive(cat, selection.Unselected())

	var states, cities int
	for _, country := range cat.Countries() {
		v := Derive(cat, selection.Resolve(cat, country, "", ""))
		require.Equal(t, 1, v.Counts.Countries)
		states += v.Counts.States
		cities += v.Counts.Cities
	}
	require.Equal(t, full.Counts.States, states)
	require.Equal(t, full.Counts.Cities, cities)
}

func BenchmarkDeriveFull(b *testing.B) {
	cat := testdata.MustCatalog(largeShape)
	sel := selection.Unselected()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Derive(cat, sel)
	}
}

func BenchmarkMemoUnchanged(b *testing.B) {
	cat := testdata.MustCatalog(largeShape)
	country := cat.Countries()[0]
	sel := selection.Resolve(cat, country, cat.States(country)[0], "")
	var m Memo
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.View(cat, sel)
	}
}

func BenchmarkOptionsCities(b *testing.B) {
	cat := testdata.MustCatalog(largeShape)
	country := cat.Countries()[len(cat.Countries())/2]
	sel := selection.Resolve(cat, country, cat.States(country)[0], "")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Options(cat, sel, selection.LevelCity)
	}
}
