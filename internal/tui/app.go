package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jask/placefilter/internal/picker"
	"github.com/jask/placefilter/internal/selection"
	"github.com/jask/placefilter/internal/session"
)

const (
	listRows       = 8
	previewRows    = 16
	copiedDuration = 2 * time.Second
	schemaHint     = `{ "country": { "state": ["city"] } }`
)

var levelTitles = [3]string{"Country", "State/Province", "City"}
var levelPlaceholders = [3]string{"Search countries...", "Search states...", "Search cities..."}

type copiedResetMsg struct{}

// App is the bubbletea model for the location filter. It holds no
// selection state of its own: pickers are refreshed from the session after
// every transition.
type App struct {
	session   *session.Session
	pickers   [3]*picker.Picker
	focus     int
	keys      *KeyRegistry
	clipboard io.Writer
	printer   *message.Printer
	status    string
	statusErr bool
	copied    bool
	width     int
}

type Option func(*App)

// WithClipboard sets where OSC52 copy sequences are written.
func WithClipboard(w io.Writer) Option {
	return func(a *App) { a.clipboard = w }
}

func New(s *session.Session, opts ...Option) *App {
	a := &App{
		session:   s,
		keys:      DefaultKeyRegistry(),
		clipboard: os.Stderr,
		printer:   message.NewPrinter(language.English),
		width:     96,
	}
	for i := range a.pickers {
		a.pickers[i] = picker.New(levelTitles[i], nil)
	}
	for _, opt := range opts {
		opt(a)
	}
	a.refresh()
	// resume where the restored selection left off
	a.focus = min(int(s.Current().Depth()), len(a.pickers)-1)
	a.clampFocus()
	return a
}

func (a *App) Init() tea.Cmd { return nil }

// Focus reports the level whose picker receives typed keys.
func (a *App) Focus() selection.Level { return selection.Level(a.focus + 1) }

func (a *App) Picker(level selection.Level) *picker.Picker {
	if level < selection.LevelCountry || level > selection.LevelCity {
		return nil
	}
	return a.pickers[level-1]
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		return a, nil
	case copiedResetMsg:
		a.copied = false
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.keys.Action(msg) {
	case actionQuit:
		return a, tea.Quit
	case actionFocusNext:
		a.moveFocus(1)
		return a, nil
	case actionFocusPrev:
		a.moveFocus(-1)
		return a, nil
	case actionReset:
		a.session.Reset()
		a.afterTransition("filters reset")
		return a, nil
	case actionClearLevel:
		level := a.Focus()
		if a.session.Current().Has(level) {
			a.session.Clear(level)
			a.afterTransition(level.String() + " cleared")
		}
		return a, nil
	case actionCopy:
		return a, a.copyJSON()
	}

	p := a.pickers[a.focus]
	var res picker.Result
	if msg.Type == tea.KeyRunes && !msg.Alt {
		res = p.TypeText(msg.Runes)
	} else {
		res = p.HandleKey(msg.String())
	}
	if res.Action != picker.ActionSelected {
		return a, nil
	}
	level := a.Focus()
	if res.Value == "" {
		a.session.Clear(level)
		a.afterTransition(level.String() + " cleared")
		return a, nil
	}
	if err := a.session.Select(level, res.Value); err != nil {
		a.refresh()
		a.setStatus(err.Error(), true)
		return a, nil
	}
	a.afterTransition("")
	if level < selection.LevelCity {
		a.moveFocus(1)
	}
	return a, nil
}

func (a *App) afterTransition(status string) {
	a.refresh()
	a.clampFocus()
	a.setStatus(status, false)
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

// refresh syncs every picker with the session's current selection.
func (a *App) refresh() {
	cur := a.session.Current()
	for i, p := range a.pickers {
		level := selection.Level(i + 1)
		p.SetOptions(a.session.Options(level))
		p.SetValue(cur.Get(level))
		p.SetDisabled(level > selection.LevelCountry && !cur.Has(level-1))
	}
}

func (a *App) moveFocus(delta int) {
	next := a.focus + delta
	if next < 0 || next >= len(a.pickers) || a.pickers[next].Disabled() {
		return
	}
	a.focus = next
}

func (a *App) clampFocus() {
	for a.focus > 0 && a.pickers[a.focus].Disabled() {
		a.focus--
	}
}

func (a *App) copyJSON() tea.Cmd {
	if !a.session.Current().Has(selection.LevelCountry) {
		a.setStatus("select a country to copy its JSON", true)
		return nil
	}
	data, err := a.session.View().JSON()
	if err != nil {
		a.setStatus("copy failed: "+err.Error(), true)
		return nil
	}
	if _, err := osc52.New(string(data)).WriteTo(a.clipboard); err != nil {
		a.setStatus("copy failed: "+err.Error(), true)
		return nil
	}
	a.copied = true
	a.setStatus("", false)
	return tea.Tick(copiedDuration, func(time.Time) tea.Msg { return copiedResetMsg{} })
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Smart Location Filters"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Select one location at each level. Each selection filters the options that follow."))
	b.WriteString("\n\n")
	b.WriteString(a.renderPickers())
	b.WriteString("\n")
	if line := a.renderActiveFilters(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(a.renderSummary())
	b.WriteString("\n\n")
	b.WriteString(a.renderPreview())
	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	return b.String()
}

func (a *App) columnWidth() int {
	return max((a.width-6*len(a.pickers))/len(a.pickers), 18)
}

func (a *App) renderPickers() string {
	cur := a.session.Current()
	width := a.columnWidth()
	cols := make([]string, 0, len(a.pickers))
	for i, p := range a.pickers {
		level := selection.Level(i + 1)
		var lines []string

		header := lipgloss.NewStyle().Bold(true).Foreground(levelColor(i)).Render(p.Title())
		if level == selection.LevelCountry || cur.Has(level-1) {
			header += " " + badgeStyle.Render(fmt.Sprintf("%s available", a.printer.Sprintf("%d", len(p.Options()))))
		}
		lines = append(lines, header)

		switch {
		case p.Disabled():
			lines = append(lines, mutedStyle.Render(levelPlaceholders[i]))
		case p.Query() != "":
			lines = append(lines, textStyle.Render("> "+p.Query()+"▏"))
		case p.Value() != "":
			lines = append(lines, textStyle.Render(p.Value()))
		default:
			lines = append(lines, mutedStyle.Render(levelPlaceholders[i]))
		}

		if !p.Disabled() {
			lines = append(lines, a.renderRows(p, i == a.focus, width)...)
		}

		style := paneStyle
		if i == a.focus {
			style = focusedStyle
		}
		cols = append(cols, style.Width(width).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (a *App) renderRows(p *picker.Picker, focused bool, width int) []string {
	items := p.Items()
	if len(items) == 0 {
		return []string{mutedStyle.Render("No results found.")}
	}
	start := 0
	if focused && p.Cursor() >= listRows {
		start = p.Cursor() - listRows + 1
	}
	end := min(start+listRows, len(items))
	rows := make([]string, 0, end-start+1)
	for idx := start; idx < end; idx++ {
		item := items[idx]
		mark := "  "
		if item == p.Value() {
			mark = okStyle.Render("✓ ")
		}
		label := ansi.Truncate(item, max(width-4, 4), "…")
		if focused && idx == p.Cursor() {
			label = cursorStyle.Render(label)
		} else {
			label = textStyle.Render(label)
		}
		rows = append(rows, mark+label)
	}
	if end < len(items) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("… %d more", len(items)-end)))
	}
	return rows
}

func (a *App) renderActiveFilters() string {
	cur := a.session.Current()
	if cur.IsEmpty() {
		return ""
	}
	parts := []string{mutedStyle.Render("Active filters:")}
	for i, level := range selection.Levels {
		if !cur.Has(level) {
			break
		}
		chip := lipgloss.NewStyle().Foreground(levelColor(i)).Render(cur.Get(level))
		parts = append(parts, badgeStyle.Render(chip))
	}
	return strings.Join(parts, " ")
}

func (a *App) renderSummary() string {
	c := a.session.View().Counts
	stat := func(i, n int, label string) string {
		num := lipgloss.NewStyle().Bold(true).Foreground(levelColor(i)).Render(a.printer.Sprintf("%d", n))
		return num + " " + mutedStyle.Render(label)
	}
	return strings.Join([]string{
		stat(0, c.Countries, "Countries"),
		stat(1, c.States, "States/Provinces"),
		stat(2, c.Cities, "Cities"),
	}, mutedStyle.Render("  ·  "))
}

func (a *App) renderPreview() string {
	width := max(a.width-4, 20)
	if !a.session.Current().Has(selection.LevelCountry) {
		body := strings.Join([]string{
			textStyle.Render("No Location Selected"),
			mutedStyle.Render("Choose a country above to see the JSON preview"),
			mutedStyle.Render(schemaHint),
		}, "\n")
		return previewStyle.Width(width).Render(body)
	}
	data, err := a.session.View().JSON()
	if err != nil {
		return errStyle.Render("render preview: " + err.Error())
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > previewRows {
		more := len(lines) - previewRows
		lines = append(lines[:previewRows], mutedStyle.Render(fmt.Sprintf("… %d more lines (ctrl+y copies all)", more)))
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width-2, "…")
	}
	header := titleStyle.Render("JSON Results")
	if a.copied {
		header += " " + okStyle.Render("Copied!")
	}
	return header + "\n" + previewStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return errStyle.Render(a.status)
	}
	return mutedStyle.Render(a.status)
}

func (a *App) renderFooter() string {
	help := a.keys.Help()
	parts := make([]string, 0, len(help)+2)
	parts = append(parts, keyStyle.Render("↑/↓")+" "+mutedStyle.Render("move"), keyStyle.Render("enter")+" "+mutedStyle.Render("toggle"))
	for _, h := range help {
		parts = append(parts, keyStyle.Render(h.Key)+" "+mutedStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
