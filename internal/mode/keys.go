package mode

import "github.com/charmbracelet/bubbles/key"

// Key is a keystroke as bubbletea names it ("h", "left", "esc", " ").
// It satisfies fmt.Stringer so key.Matches can test it against a binding.
type Key string

func (k Key) String() string { return string(k) }

// KeyMap holds every binding the modes route on. Some keys mean different
// things in different modes, so several bindings share keys.
type KeyMap struct {
	Left  key.Binding
	Down  key.Binding
	Up    key.Binding
	Right key.Binding

	Edit    key.Binding
	Move    key.Binding
	Detail  key.Binding
	Help    key.Binding
	Save    key.Binding
	Unit    key.Binding
	Refresh key.Binding
	Quit    key.Binding

	Add     key.Binding
	Rename  key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Done    key.Binding

	Submit    key.Binding
	Abort     key.Binding
	Backspace key.Binding

	Minute key.Binding
	Hour   key.Binding
	Day    key.Binding
	Back   key.Binding
}

// DefaultKeyMap returns vi-style movement with arrow-key aliases.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "left")),
		Down:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Up:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Right: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "right")),

		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Move:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Detail:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timeline")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Unit:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "°C/°F")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),

		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Rename:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		Cancel:  key.NewBinding(key.WithKeys("n", "q", "esc"), key.WithHelp("n", "no")),
		Done:    key.NewBinding(key.WithKeys("enter", "q", "esc"), key.WithHelp("q", "done")),

		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Abort:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "erase")),

		Minute: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "minutes")),
		Hour:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hours")),
		Day:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "days")),
		Back:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "back")),
	}
}
