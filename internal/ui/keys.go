package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit   key.Binding
	Help   key.Binding
	Tab    key.Binding
	Escape key.Binding

	// View switching
	ViewLibrary key.Binding
	ViewExplore key.Binding
	ViewCreate  key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Record actions
	Favorite key.Binding
	Public   key.Binding
	Delete   key.Binding
	Reload   key.Binding

	// Playback
	Play       key.Binding
	TogglePlay key.Binding
	StopPlay   key.Binding

	// Forms
	Submit     key.Binding
	SwitchMode key.Binding

	// Session
	Logout key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field / view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to library"),
		),
		ViewLibrary: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Library"),
		),
		ViewExplore: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Explore"),
		),
		ViewCreate: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Create"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Down"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favorite"),
		),
		Public: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Toggle public"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Play selected"),
		),
		TogglePlay: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Play/pause"),
		),
		StopPlay: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Stop playback"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),
		SwitchMode: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "Login/register"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Logout"),
		),
	}
}
