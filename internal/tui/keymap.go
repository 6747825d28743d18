package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the search TUI's keybindings, scoped down from the
// teacher's multi-view KeyMap to the one view brume's TUI has.
type KeyMap struct {
	Quit     key.Binding
	Back     key.Binding
	Search   key.Binding
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	NewQuery key.Binding
	Toggle   key.Binding
}

// DefaultKeyMap returns brume's default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back/quit")),
		Search:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		NewQuery: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new query")),
		Toggle:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "keyword/semantic")),
	}
}

// ResultsHelp returns the keybindings shown once results are on screen.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Open, k.NewQuery, k.Toggle, k.Back}
}

// InputHelp returns the keybindings shown while typing a query.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Search, k.Toggle, k.Back}
}
