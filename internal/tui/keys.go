package tui

import "github.com/charmbracelet/bubbles/key"

// SessionKeyMap defines the keybindings for the workout screen.
type SessionKeyMap struct {
	Up               key.Binding
	Down             key.Binding
	Select           key.Binding
	CompleteSet      key.Binding
	CompleteExercise key.Binding
	Pause            key.Binding
	SkipRest         key.Binding
	Finish           key.Binding
	Abandon          key.Binding
	Detach           key.Binding
	ForceQuit        key.Binding
	ConfirmDiscard   key.Binding
	ConfirmSave      key.Binding
	Cancel           key.Binding
}

// DefaultSessionKeyMap returns the default workout keybindings.
func DefaultSessionKeyMap() SessionKeyMap {
	return SessionKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select exercise"),
		),
		CompleteSet: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("space", "set done"),
		),
		CompleteExercise: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "exercise done"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		SkipRest: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "skip rest"),
		),
		Finish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finish"),
		),
		Abandon: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "abandon"),
		),
		Detach: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit (resume later)"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		ConfirmDiscard: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "discard"),
		),
		ConfirmSave: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save & finish"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("esc", "keep training"),
		),
	}
}

// ShortHelp returns keybindings for the help bar.
func (k SessionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CompleteSet, k.CompleteExercise, k.SkipRest, k.Pause, k.Select, k.Finish, k.Abandon, k.Detach}
}

// FullHelp returns keybindings for the expanded help view.
func (k SessionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.CompleteSet, k.CompleteExercise, k.SkipRest, k.Pause},
		{k.Finish, k.Abandon, k.Detach},
	}
}

// TimerKeyMap defines the keybindings for the utility timer.
type TimerKeyMap struct {
	Pause  key.Binding
	Reset  key.Binding
	AddRep key.Binding
	Quit   key.Binding
}

// DefaultTimerKeyMap returns the default utility timer keybindings.
func DefaultTimerKeyMap() TimerKeyMap {
	return TimerKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		AddRep: key.NewBinding(
			key.WithKeys("+", "=", "enter"),
			key.WithHelp("+", "rep"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the help bar.
func (k TimerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Reset, k.AddRep, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k TimerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
