package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	actionQuit       = "quit"
	actionFocusNext  = "focus_next"
	actionFocusPrev  = "focus_prev"
	actionReset      = "reset"
	actionClearLevel = "clear_level"
	actionCopy       = "copy"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func DefaultKeyRegistry() *KeyRegistry {
	return NewKeyRegistry([]KeyBinding{
		{Keys: []string{"tab", "right"}, Action: actionFocusNext, Description: "next"},
		{Keys: []string{"shift+tab", "left"}, Action: actionFocusPrev, Description: "prev"},
		{Keys: []string{"ctrl+x"}, Action: actionClearLevel, Description: "clear level"},
		{Keys: []string{"ctrl+r"}, Action: actionReset, Description: "reset"},
		{Keys: []string{"ctrl+y"}, Action: actionCopy, Description: "copy json"},
		{Keys: []string{"ctrl+c", "ctrl+q"}, Action: actionQuit, Description: "quit"},
	})
}

func (r *KeyRegistry) Bindings() []KeyBinding {
	return slices.Clone(r.bindings)
}

// Action returns the action bound to msg, or "" when the key is unbound and
// should go to the focused picker.
func (r *KeyRegistry) Action(msg tea.KeyMsg) string {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action
			}
		}
	}
	return ""
}

// Help renders the bindings as bubbles key help pairs.
func (r *KeyRegistry) Help() []key.Help {
	out := make([]key.Help, 0, len(r.bindings))
	for _, b := range r.bindings {
		if len(b.Keys) == 0 {
			continue
		}
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
		out = append(out, kb.Help())
	}
	return out
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
