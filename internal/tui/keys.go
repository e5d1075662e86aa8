package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/colonyops/minutes/internal/tui/components"
)

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	Submit    key.Binding
	Help      key.Binding

	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Edit   key.Binding
	Delete key.Binding
	New    key.Binding
	Filter key.Binding
	All    key.Binding
	Open   key.Binding
	Done   key.Binding
	Reload key.Binding

	Load key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextPane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "extract items")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys("space", "x"), key.WithHelp("space", "toggle done")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new item")),
		Filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		All:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Open:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "open")),
		Done:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "done")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),

		Load: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load transcript")),
	}
}

// paneHelp returns the bindings shown in the status bar for a pane.
func (k keyMap) paneHelp(p pane) []key.Binding {
	switch p {
	case paneItems:
		return []key.Binding{k.Toggle, k.Edit, k.Delete, k.New, k.Filter, k.NextPane, k.Help}
	case paneHistory:
		return []key.Binding{k.Up, k.Down, k.Load, k.Reload, k.NextPane, k.Help}
	default:
		return []key.Binding{k.Submit, k.NextPane, k.ForceQuit}
	}
}

func (k keyMap) helpSections() []components.HelpDialogSection {
	entries := func(bindings ...key.Binding) []components.HelpEntry {
		out := make([]components.HelpEntry, 0, len(bindings))
		for _, b := range bindings {
			h := b.Help()
			out = append(out, components.HelpEntry{Key: h.Key, Desc: h.Desc})
		}
		return out
	}

	return []components.HelpDialogSection{
		{Title: "Global", Entries: entries(k.NextPane, k.PrevPane, k.Submit, k.Quit, k.ForceQuit)},
		{Title: "Action items", Entries: entries(k.Up, k.Down, k.Toggle, k.Edit, k.Delete, k.New, k.Filter, k.All, k.Open, k.Done, k.Reload)},
		{Title: "History", Entries: entries(k.Load, k.Reload)},
	}
}
