package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the gallery.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	enter   key.Binding
	back    key.Binding
	filters [6]key.Binding // indexed like selection.Filters
	toggles [4]key.Binding // indexed like selection.Categories
	yes     key.Binding
	no      key.Binding
	clear   key.Binding
	copy    key.Binding
	export  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "previous"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/save"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		filters: [6]key.Binding{
			key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "enlargement")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "print")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "social")),
			key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "discarded")),
			key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unclassified")),
		},
		toggles: [4]key.Binding{
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "enlargement")),
			key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "print")),
			key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "social")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "discard")),
		},
		yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "save"),
		),
		no: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "discard"),
		),
		clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear all"),
		),
		copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy summary"),
		),
		export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// gridKeys is the help shown over the photo grid.
type gridKeys keyMap

func (k gridKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.filters[0], k.filters[5], k.copy, k.export, k.quit}
}

func (k gridKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right, k.enter},
		k.filters[:],
		{k.clear, k.copy, k.export, k.quit},
	}
}

// detailKeys is the help shown while a photo is open.
type detailKeys keyMap

func (k detailKeys) ShortHelp() []key.Binding {
	return append(k.toggles[:], k.enter, k.left, k.right, k.back)
}

func (k detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// promptKeys is the help shown while a decision is pending.
type promptKeys keyMap

func (k promptKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.yes, k.no, k.back}
}

func (k promptKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
