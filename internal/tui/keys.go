package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit        key.Binding
	Search      key.Binding
	Theme       key.Binding
	CycleFocus  key.Binding
	PrevFolder  key.Binding
	NextFolder  key.Binding
	PrevItem    key.Binding
	NextItem    key.Binding
	Close       key.Binding
	Minimize    key.Binding
	CopyLink    key.Binding
	OpenLink    key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	OpenFolder  key.Binding
	Help        key.Binding
	SearchApply key.Binding
	SearchExit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		CycleFocus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next window")),
		PrevFolder:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "prev folder")),
		NextFolder:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next folder")),
		PrevItem:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "prev item")),
		NextItem:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "next item")),
		Close:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "close")),
		Minimize:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "minimize")),
		CopyLink:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		OpenLink:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
		ScrollUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		ScrollDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
		OpenFolder:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "open folder")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		SearchApply: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		SearchExit:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.CycleFocus, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.OpenFolder, k.Search, k.CycleFocus, k.Theme},
		{k.PrevFolder, k.NextFolder, k.PrevItem, k.NextItem},
		{k.Close, k.Minimize, k.ScrollUp, k.ScrollDown},
		{k.CopyLink, k.OpenLink, k.Help, k.Quit},
	}
}
