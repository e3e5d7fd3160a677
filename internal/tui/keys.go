package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Checkin  key.Binding
	Freeze   key.Binding
	Pause    key.Binding
	NextUser key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Checkin: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter/c", "check in"),
		),
		Freeze: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "freeze"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause/resume"),
		),
		NextUser: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch user"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Checkin, k.Freeze, k.NextUser, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Checkin},
		{k.Freeze, k.Pause, k.NextUser},
		{k.Help, k.Quit},
	}
}
