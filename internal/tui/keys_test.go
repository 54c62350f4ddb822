package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyRegistryAction(t *testing.T) {
	reg := DefaultKeyRegistry()
	cases := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, actionFocusNext},
		{tea.KeyMsg{Type: tea.KeyRight}, actionFocusNext},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, actionFocusPrev},
		{tea.KeyMsg{Type: tea.KeyCtrlX}, actionClearLevel},
		{tea.KeyMsg{Type: tea.KeyCtrlR}, actionReset},
		{tea.KeyMsg{Type: tea.KeyCtrlY}, actionCopy},
		{tea.KeyMsg{Type: tea.KeyCtrlQ}, actionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, ""},
		{tea.KeyMsg{Type: tea.KeyEnter}, ""},
	}
	for _, tc := range cases {
		if got := reg.Action(tc.msg); got != tc.want {
			t.Fatalf("Action(%q) = %q, want %q", tc.msg.String(), got, tc.want)
		}
	}
}

func TestKeyRegistryHelp(t *testing.T) {
	reg := NewKeyRegistry([]KeyBinding{
		{Keys: []string{"ctrl+y", "y"}, Action: actionCopy, Description: "copy json"},
		{Action: "unbound"},
	})
	help := reg.Help()
	if len(help) != 1 {
		t.Fatalf("expected 1 help entry, got %d", len(help))
	}
	if help[0].Key != "ctrl+y" || help[0].Desc != "copy json" {
		t.Fatalf("unexpected help entry %+v", help[0])
	}
}
