package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit       key.Binding
	New        key.Binding // n: create a post
	NextView   key.Binding // tab: cycle Home / Saved / Liked
	ViewHome   key.Binding
	ViewSaved  key.Binding
	ViewLiked  key.Binding
	ToggleDark key.Binding // D: dark mode
	ClearFeed  key.Binding // X: clear the whole feed
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Open       key.Binding // enter: open post / confirm step
	Back       key.Binding // esc
	Like       key.Binding
	Save       key.Binding
	Delete     key.Binding
	Confirm    key.Binding
	Deny       key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Editor     key.Binding // ctrl+e: caption via $EDITOR
	Repick     key.Binding // ctrl+r: choose a different image
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "create post"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ViewHome: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		ViewSaved: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "saved"),
		),
		ViewLiked: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "liked"),
		),
		ToggleDark: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "dark mode"),
		),
		ClearFeed: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear feed"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Like: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "like"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		Editor: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "caption in $EDITOR"),
		),
		Repick: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "pick another image"),
		),
	}
}
