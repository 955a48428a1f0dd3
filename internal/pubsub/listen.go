package pubsub

import tea "github.com/charmbracelet/bubbletea"

// Listen waits for the next value on ch and hands it to Update as a message.
// It yields nil once ch is closed. Issue it again after every value.
func Listen[T any](ch <-chan T) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return v
	}
}
