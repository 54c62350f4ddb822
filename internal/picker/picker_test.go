package picker

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterEmptyQueryKeepsOrder(t *testing.T) {
	opts := []string{"Canada", "Japan", "United States"}
	require.Equal(t, opts, slices.Collect(Filter(opts, "")))
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	opts := []string{"Austria", "Australia", "Canada", "United States"}
	require.Equal(t, []string{"Austria", "Australia"}, slices.Collect(Filter(opts, "AUST")))
	require.Equal(t, []string{"Canada"}, slices.Collect(Filter(opts, "nad")))
	require.Equal(t, []string{"United States"}, slices.Collect(Filter(opts, "d s")))
	require.Empty(t, slices.Collect(Filter(opts, "xyz")))
}

func TestFilterIsLazy(t *testing.T) {
	opts := []string{"a1", "a2", "a3"}
	var got []string
	for v := range Filter(opts, "a") {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []string{"a1", "a2"}, got)
}

func TestToggle(t *testing.T) {
	require.Equal(t, "Japan", Toggle("", "Japan"))
	require.Equal(t, "", Toggle("Japan", "Japan"))
	require.Equal(t, "Canada", Toggle("Japan", "Canada"))
	require.Equal(t, "", Toggle(Toggle("", "Japan"), "Japan"))
}

func TestPickerTypingFiltersAndEnterToggles(t *testing.T) {
	p := New("Country", []string{"Canada", "Japan", "Jordan"})

	require.Equal(t, ActionQueryChanged, p.HandleKey("j").Action)
	require.Equal(t, []string{"Japan", "Jordan"}, p.Items())

	require.Equal(t, ActionMoved, p.HandleKey("down").Action)
	require.Equal(t, ActionNone, p.HandleKey("down").Action)

	res := p.HandleKey("enter")
	require.Equal(t, ActionSelected, res.Action)
	require.Equal(t, "Jordan", res.Value)
	require.Equal(t, "Jordan", p.Value())
	require.Empty(t, p.Query(), "query resets after a choice")

	// same row again toggles off
	p.SetQuery("jor")
	res = p.HandleKey("enter")
	require.Equal(t, ActionSelected, res.Action)
	require.Equal(t, "", res.Value)
	require.Equal(t, "", p.Value())
}

func TestPickerBackspaceAndEsc(t *testing.T) {
	p := New("City", []string{"Zürich", "Bern"})
	p.HandleKey("z")
	p.HandleKey("ü")
	require.Equal(t, "zü", p.Query())
	require.Equal(t, []string{"Zürich"}, p.Items())

	require.Equal(t, ActionQueryChanged, p.HandleKey("backspace").Action)
	require.Equal(t, "z", p.Query())

	require.Equal(t, ActionQueryChanged, p.HandleKey("esc").Action)
	require.Empty(t, p.Query())
	require.Equal(t, ActionCancelled, p.HandleKey("esc").Action)
	require.Equal(t, ActionNone, p.HandleKey("backspace").Action)
}

func TestPickerCursorClampsOnFilter(t *testing.T) {
	p := New("State", []string{"Alpha", "Beta", "Gamma"})
	p.HandleKey("down")
	p.HandleKey("down")
	require.Equal(t, 2, p.Cursor())

	p.SetQuery("beta")
	require.Equal(t, 0, p.Cursor())
	item, ok := p.CurrentItem()
	require.True(t, ok)
	require.Equal(t, "Beta", item)

	p.SetQuery("none")
	_, ok = p.CurrentItem()
	require.False(t, ok)
	require.Equal(t, ActionNone, p.HandleKey("enter").Action)
}

func TestPickerDisabledIgnoresKeys(t *testing.T) {
	p := New("State", []string{"Tokyo"})
	p.HandleKey("t")
	p.SetDisabled(true)
	require.True(t, p.Disabled())
	require.Empty(t, p.Query())
	require.Equal(t, Result{Action: ActionNone}, p.HandleKey("enter"))
	require.Empty(t, p.Value())
}

func TestPickerSetOptionsDropsStaleValue(t *testing.T) {
	p := New("State", []string{"Tokyo", "Osaka"})
	p.SetValue("Tokyo")
	p.SetOptions([]string{"Tokyo"})
	require.Equal(t, "Tokyo", p.Value())
	p.SetOptions([]string{"Ontario"})
	require.Empty(t, p.Value())
}

func TestNilPickerIsSafe(t *testing.T) {
	var p *Picker
	require.Empty(t, p.Items())
	require.True(t, p.Disabled())
	require.Equal(t, ActionNone, p.HandleKey("enter").Action)
}

func TestPickerTypeTextBatchedRunes(t *testing.T) {
	p := New("Country", []string{"Japan", "Jamaica", "Canada"})
	require.Equal(t, ActionQueryChanged, p.TypeText([]rune("ja")).Action)
	require.Equal(t, "ja", p.Query())
	require.Equal(t, []string{"Japan", "Jamaica"}, p.Items())

	p.SetQuery("")
	require.Equal(t, ActionQueryChanged, p.TypeText([]rune("Japan")).Action)
	require.Equal(t, []string{"Japan"}, p.Items())

	require.Equal(t, ActionNone, p.TypeText([]rune("x\ny")).Action)
	require.Equal(t, "Japan", p.Query())
	require.Equal(t, ActionNone, p.TypeText(nil).Action)

	p.SetDisabled(true)
	require.Equal(t, ActionNone, p.TypeText([]rune("a")).Action)
}
