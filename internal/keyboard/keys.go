package keyboard

import "github.com/charmbracelet/bubbles/key"

// Keys holds the keyboard shortcut configuration for the picker
type Keys struct {
	// Navigation (vim-style aliases alongside the arrow keys)
	Up         key.Binding
	Down       key.Binding
	JumpTop    key.Binding
	JumpBottom key.Binding
	PageUp     key.Binding
	PageDown   key.Binding

	// Selection
	Confirm key.Binding
	Filter  key.Binding
	Yank    key.Binding // Copy highlighted value to clipboard

	// Global
	Cancel    key.Binding // Cancel picker (or clear an applied filter)
	ForceQuit key.Binding
}

// Default returns the default vim-aligned keyboard configuration
func Default() *Keys {
	return &Keys{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		JumpTop:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		JumpBottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+b", "h", "left"), key.WithHelp("ctrl+b", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+f", "l", "right"), key.WithHelp("ctrl+f", "page down")),

		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Yank:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),

		Cancel:    key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc/q", "cancel")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// GetKeys returns the keyboard configuration in use
func GetKeys() *Keys {
	return Default()
}
