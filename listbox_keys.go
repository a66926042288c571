package tview

import "github.com/xqrs/tview-listbox/keybind"

// ListBoxKeyMap binds keys to list box actions. Focus moves use directional
// navigation, so they select according to the selection mode; the Extend
// bindings hold Shift and extend the range from the anchor.
type ListBoxKeyMap struct {
	Up       keybind.Keybind
	Down     keybind.Keybind
	Home     keybind.Keybind
	End      keybind.Keybind
	PageUp   keybind.Keybind
	PageDown keybind.Keybind

	ExtendUp       keybind.Keybind
	ExtendDown     keybind.Keybind
	ExtendHome     keybind.Keybind
	ExtendEnd      keybind.Keybind
	ExtendPageUp   keybind.Keybind
	ExtendPageDown keybind.Keybind

	Toggle keybind.Keybind
}

// DefaultListBoxKeyMap returns the arrow, page, home and end bindings plus
// space for toggling.
func DefaultListBoxKeyMap() ListBoxKeyMap {
	return ListBoxKeyMap{
		Up:       keybind.NewKeybind(keybind.WithKeys("up", "k"), keybind.WithHelp("↑/k", "up")),
		Down:     keybind.NewKeybind(keybind.WithKeys("down", "j"), keybind.WithHelp("↓/j", "down")),
		Home:     keybind.NewKeybind(keybind.WithKeys("home", "g"), keybind.WithHelp("home/g", "first")),
		End:      keybind.NewKeybind(keybind.WithKeys("end", "G", "shift+g"), keybind.WithHelp("end/G", "last")),
		PageUp:   keybind.NewKeybind(keybind.WithKeys("pgup"), keybind.WithHelp("pgup", "page up")),
		PageDown: keybind.NewKeybind(keybind.WithKeys("pgdn"), keybind.WithHelp("pgdn", "page down")),

		ExtendUp:       keybind.NewKeybind(keybind.WithKeys("shift+up"), keybind.WithHelp("shift+↑", "extend up")),
		ExtendDown:     keybind.NewKeybind(keybind.WithKeys("shift+down"), keybind.WithHelp("shift+↓", "extend down")),
		ExtendHome:     keybind.NewKeybind(keybind.WithKeys("shift+home"), keybind.WithHelp("shift+home", "extend to first")),
		ExtendEnd:      keybind.NewKeybind(keybind.WithKeys("shift+end"), keybind.WithHelp("shift+end", "extend to last")),
		ExtendPageUp:   keybind.NewKeybind(keybind.WithKeys("shift+pgup")),
		ExtendPageDown: keybind.NewKeybind(keybind.WithKeys("shift+pgdn")),

		Toggle: keybind.NewKeybind(keybind.WithKeys("space"), keybind.WithHelp("space", "toggle")),
	}
}

// ShortHelp returns the bindings for a single-line help bar.
func (k ListBoxKeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Up, k.Down, k.Toggle}
}

// FullHelp returns the bindings grouped in columns.
func (k ListBoxKeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{k.Up, k.Down, k.Home, k.End, k.PageUp, k.PageDown},
		{k.ExtendUp, k.ExtendDown, k.ExtendHome, k.ExtendEnd},
		{k.Toggle},
	}
}
