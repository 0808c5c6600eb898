// Package picker implements an inline, vim-navigable single-select prompt
// on top of Bubble Tea and the bubbles list component.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/kubectl-copi/internal/keyboard"
	"github.com/renato0307/kubectl-copi/internal/logging"
	"github.com/renato0307/kubectl-copi/internal/ui"
)

const (
	// DefaultWidth is used until the terminal reports its size
	DefaultWidth = 80

	// MaxVisibleItems caps the number of rows shown per page
	MaxVisibleItems = 10

	// listChrome is the number of lines used by title, status bar, pagination and help
	listChrome = 6

	// StatusMessageLifetime is how long a status message (e.g. "copied") stays visible
	StatusMessageLifetime = 2 * time.Second
)

var (
	// ErrCancelled is returned when the user aborts the prompt (esc, q or ctrl+c)
	ErrCancelled = errors.New("operation was canceled by the user")

	// ErrNoItems is returned when there is nothing to pick from
	ErrNoItems = errors.New("no entries to pick from")
)

// Item is a single entry in the picker
type Item struct {
	// Label is what the user sees
	Label string
	// Value is what gets copied to the clipboard
	Value string
}

// Picker runs a single-select prompt as a Bubble Tea program
type Picker struct {
	theme  *ui.Theme
	keys   *keyboard.Keys
	in     io.Reader
	out    io.Writer
	copyFn func(string) error
}

// Option configures a Picker
type Option func(*Picker)

// WithInput sets the reader keyboard input comes from (default: stdin)
func WithInput(r io.Reader) Option {
	return func(p *Picker) { p.in = r }
}

// WithOutput sets the writer the prompt renders to (default: stdout)
func WithOutput(w io.Writer) Option {
	return func(p *Picker) { p.out = w }
}

// WithClipboard replaces the system clipboard writer
func WithClipboard(fn func(string) error) Option {
	return func(p *Picker) { p.copyFn = fn }
}

// New creates a new picker
func New(theme *ui.Theme, keys *keyboard.Keys, opts ...Option) *Picker {
	p := &Picker{
		theme:  theme,
		keys:   keys,
		copyFn: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pick shows the prompt with the cursor at start and blocks until the user
// confirms an entry or aborts. It returns the index of the chosen item.
func (p *Picker) Pick(ctx context.Context, prompt string, items []Item, start int) (int, error) {
	if len(items) == 0 {
		return -1, ErrNoItems
	}

	model := NewModel(prompt, items, start, p.theme, p.keys, p.copyFn)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.in != nil {
		opts = append(opts, tea.WithInput(p.in))
	}
	if p.out != nil {
		opts = append(opts, tea.WithOutput(p.out))
	}

	logging.Debug("picker opened", "prompt", prompt, "items", len(items), "start", start)

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return -1, fmt.Errorf("prompt failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return -1, fmt.Errorf("prompt failed: unexpected model %T", final)
	}

	idx, ok := m.Choice()
	if !ok {
		logging.Debug("picker cancelled", "prompt", prompt)
		return -1, ErrCancelled
	}

	logging.Debug("picker confirmed", "prompt", prompt, "index", idx)
	return idx, nil
}
