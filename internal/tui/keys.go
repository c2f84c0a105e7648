package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is bound once; the focused element decides what a key does.
type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Activate  key.Binding
	Refresh   key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Activate:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload menu")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Activate, k.Refresh, k.Quit}
}
