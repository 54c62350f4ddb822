package view

import (
	"github.com/jask/placefilter/internal/catalog"
	"github.com/jask/placefilter/internal/selection"
)

// Memo caches the last derived view keyed on the catalog pointer and the
// selection value. The zero value is ready to use.
type Memo struct {
	cat  *catalog.Catalog
	sel  selection.Selection
	view View
	ok   bool
	hits int
}

// View returns Derive(cat, sel), reusing the previous result when neither
// input changed.
func (m *Memo) View(cat *catalog.Catalog, sel selection.Selection) View {
	if m.ok && m.cat == cat && m.sel == sel {
		m.hits++
		return m.view
	}
	m.cat, m.sel, m.view, m.ok = cat, sel, Derive(cat, sel), true
	return m.view
}

// Hits reports how many calls were served from the cache.
func (m *Memo) Hits() int { return m.hits }
