// Package picker holds the searchable single-value picker used for each
// level of the location filter.
package picker

import (
	"iter"
	"slices"
	"strings"
)

// Filter yields the options containing query as a case-insensitive
// substring, in input order. An empty query yields every option.
func Filter(options []string, query string) iter.Seq[string] {
	q := strings.ToLower(query)
	return func(yield func(string) bool) {
		for _, opt := range options {
			if q != "" && !strings.Contains(strings.ToLower(opt), q) {
				continue
			}
			if !yield(opt) {
				return
			}
		}
	}
}

// Toggle returns the value a picker holds after candidate is chosen while
// current is selected: choosing the selected value clears it.
func Toggle(current, candidate string) string {
	if candidate == current {
		return ""
	}
	return candidate
}

type Action int

const (
	ActionNone Action = iota
	ActionMoved
	ActionQueryChanged
	ActionSelected
	ActionCancelled
)

// Result reports what a key did. For ActionSelected, Value is the toggled
// value the owner should apply ("" means deselect).
type Result struct {
	Action Action
	Value  string
}

// Picker is the keyboard state of one searchable select: the option list,
// the typed query, the cursor over the filtered rows and the current value.
type Picker struct {
	title    string
	options  []string
	filtered []string
	query    string
	cursor   int
	value    string
	disabled bool
}

func New(title string, options []string) *Picker {
	p := &Picker{title: strings.TrimSpace(title)}
	p.SetOptions(options)
	return p
}

func (p *Picker) Title() string {
	if p == nil {
		return ""
	}
	return p.title
}

func (p *Picker) Query() string {
	if p == nil {
		return ""
	}
	return p.query
}

func (p *Picker) Cursor() int {
	if p == nil {
		return 0
	}
	return p.cursor
}

func (p *Picker) Value() string {
	if p == nil {
		return ""
	}
	return p.value
}

func (p *Picker) Disabled() bool {
	return p == nil || p.disabled
}

// Options returns the full option list.
func (p *Picker) Options() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.options)
}

// Items returns the options that match the current query.
func (p *Picker) Items() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.filtered)
}

// SetOptions replaces the option list. The caller passes options already
// sorted. A value no longer offered is dropped.
func (p *Picker) SetOptions(options []string) {
	if p == nil {
		return
	}
	p.options = slices.Clone(options)
	if p.value != "" && !slices.Contains(p.options, p.value) {
		p.value = ""
	}
	p.rebuildFiltered()
}

// SetValue marks value as selected without emitting a result.
func (p *Picker) SetValue(value string) {
	if p == nil {
		return
	}
	p.value = value
}

// SetDisabled toggles whether the picker accepts input. A disabled picker
// also drops its query so it reopens clean.
func (p *Picker) SetDisabled(disabled bool) {
	if p == nil {
		return
	}
	p.disabled = disabled
	if disabled && p.query != "" {
		p.SetQuery("")
	}
}

func (p *Picker) SetQuery(q string) {
	if p == nil {
		return
	}
	p.query = q
	p.rebuildFiltered()
}

func (p *Picker) CursorUp() {
	if p == nil {
		return
	}
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *Picker) CursorDown() {
	if p == nil {
		return
	}
	maxIdx := len(p.filtered) - 1
	if maxIdx < 0 {
		p.cursor = 0
		return
	}
	if p.cursor < maxIdx {
		p.cursor++
	}
}

func (p *Picker) CurrentItem() (string, bool) {
	if p == nil || len(p.filtered) == 0 {
		return "", false
	}
	idx := min(max(p.cursor, 0), len(p.filtered)-1)
	return p.filtered[idx], true
}

// Choose applies the toggle contract to item and returns the new value.
func (p *Picker) Choose(item string) string {
	if p == nil {
		return ""
	}
	p.value = Toggle(p.value, item)
	return p.value
}

func (p *Picker) HandleKey(keyName string) Result {
	if p == nil || p.disabled {
		return Result{Action: ActionNone}
	}
	switch keyName {
	case "up", "ctrl+p":
		before := p.cursor
		p.CursorUp()
		if p.cursor != before {
			return Result{Action: ActionMoved}
		}
		return Result{Action: ActionNone}
	case "down", "ctrl+n":
		before := p.cursor
		p.CursorDown()
		if p.cursor != before {
			return Result{Action: ActionMoved}
		}
		return Result{Action: ActionNone}
	case "enter":
		item, ok := p.CurrentItem()
		if !ok {
			return Result{Action: ActionNone}
		}
		value := p.Choose(item)
		p.SetQuery("")
		return Result{Action: ActionSelected, Value: value}
	case "esc":
		if p.query != "" {
			p.SetQuery("")
			return Result{Action: ActionQueryChanged}
		}
		return Result{Action: ActionCancelled}
	case "backspace":
		if len(p.query) > 0 {
			r := []rune(p.query)
			p.SetQuery(string(r[:len(r)-1]))
			return Result{Action: ActionQueryChanged}
		}
		return Result{Action: ActionNone}
	case "space":
		p.SetQuery(p.query + " ")
		return Result{Action: ActionQueryChanged}
	default:
		if isPrintableKey(keyName) {
			p.SetQuery(p.query + keyName)
			return Result{Action: ActionQueryChanged}
		}
		return Result{Action: ActionNone}
	}
}

// TypeText appends runes to the query. Batched input such as a paste
// arrives as one message with many runes; it is dropped whole if any rune
// is a control character.
func (p *Picker) TypeText(runes []rune) Result {
	if p == nil || p.disabled || len(runes) == 0 {
		return Result{Action: ActionNone}
	}
	for _, r := range runes {
		if !isPrintableRune(r) {
			return Result{Action: ActionNone}
		}
	}
	p.SetQuery(p.query + string(runes))
	return Result{Action: ActionQueryChanged}
}

func (p *Picker) rebuildFiltered() {
	if p == nil {
		return
	}
	p.filtered = slices.Collect(Filter(p.options, p.query))

	maxIdx := len(p.filtered) - 1
	if maxIdx < 0 {
		p.cursor = 0
	} else if p.cursor > maxIdx {
		p.cursor = maxIdx
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// isPrintableKey accepts a single printable rune so place names with
// accents can be typed.
func isPrintableKey(keyName string) bool {
	r := []rune(keyName)
	return len(r) == 1 && isPrintableRune(r[0])
}

func isPrintableRune(r rune) bool {
	return r >= 32 && r != 127
}
