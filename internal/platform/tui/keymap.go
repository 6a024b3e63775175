package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the observation screen.
type KeyMap struct {
	Pause      key.Binding
	Step       key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "tick now"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LogbookKeyMap defines the key bindings for the logbook viewer.
type LogbookKeyMap struct {
	Up   key.Binding
	Down key.Binding
	View key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LogbookKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.View, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LogbookKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.View, k.Quit}}
}

// DefaultLogbookKeyMap returns default logbook key bindings.
func DefaultLogbookKeyMap() LogbookKeyMap {
	return LogbookKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		View: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "entries/objects"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
