package picker

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/kubectl-copi/internal/keyboard"
	"github.com/renato0307/kubectl-copi/internal/ui"
)

// entry is a list item that remembers its position in the caller's slice,
// so the choice survives filtering and fuzzy reordering.
type entry struct {
	index int
	label string
	value string
}

func (e entry) FilterValue() string { return e.label }

// itemDelegate renders one entry per line, highlighting fuzzy matches
type itemDelegate struct {
	theme *ui.Theme
}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	e, ok := li.(entry)
	if !ok {
		return
	}

	label := e.label
	if matches := m.MatchesForItem(index); len(matches) > 0 {
		label = lipgloss.StyleRunes(label, matches, d.theme.Match, lipgloss.NewStyle())
	}

	style := d.theme.Item
	if index == m.Index() {
		style = d.theme.SelectedItem
	}
	fmt.Fprint(w, style.Render(label))
}

// Model is the Bubble Tea model behind a single-select prompt
type Model struct {
	list   list.Model
	keys   *keyboard.Keys
	theme  *ui.Theme
	copyFn func(string) error

	choice    int
	done      bool
	cancelled bool
}

// NewModel creates a picker model over items with the cursor at start.
// A start index outside the list is clamped to the first entry.
func NewModel(prompt string, items []Item, start int, theme *ui.Theme, keys *keyboard.Keys, copyFn func(string) error) Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = entry{index: i, label: item.Label, value: item.Value}
	}

	l := list.New(listItems, itemDelegate{theme: theme}, DefaultWidth, listHeight(len(items), 0))
	l.Title = prompt
	l.Styles.Title = theme.Prompt
	l.Styles.StatusBar = theme.StatusBar.PaddingLeft(2)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("entry", "entries")
	l.Filter = fuzzyFilter
	l.StatusMessageLifetime = StatusMessageLifetime

	// Navigation comes from our keymap; quitting is handled by the model
	l.KeyMap.CursorUp = keys.Up
	l.KeyMap.CursorDown = keys.Down
	l.KeyMap.GoToStart = keys.JumpTop
	l.KeyMap.GoToEnd = keys.JumpBottom
	l.KeyMap.PrevPage = keys.PageUp
	l.KeyMap.NextPage = keys.PageDown
	l.KeyMap.Filter = keys.Filter
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Confirm, keys.Yank}
	}

	if start < 0 || start >= len(items) {
		start = 0
	}
	l.Select(start)

	return Model{
		list:   l,
		keys:   keys,
		theme:  theme,
		copyFn: copyFn,
		choice: -1,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.cancel()
		}

		// Enter picks the highlighted entry even while the filter is being typed
		if key.Matches(msg, m.keys.Confirm) {
			if e, ok := m.list.SelectedItem().(entry); ok {
				m.choice = e.index
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}

		// Every other key belongs to the filter input while typing
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Cancel):
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}
			return m.cancel()
		case key.Matches(msg, m.keys.Yank):
			return m, m.yank()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	if m.done {
		if m.cancelled {
			return ""
		}
		e, _ := m.list.SelectedItem().(entry)
		return m.theme.Prompt.Render(m.list.Title) + m.theme.Answer.Render(e.label) + "\n"
	}
	return m.list.View()
}

// Choice returns the index of the confirmed entry, if any
func (m Model) Choice() (int, bool) {
	if !m.done || m.cancelled {
		return -1, false
	}
	return m.choice, true
}

// Cursor returns the index (in the caller's slice) of the highlighted entry
func (m Model) Cursor() int {
	if e, ok := m.list.SelectedItem().(entry); ok {
		return e.index
	}
	return -1
}

// Cancelled reports whether the user aborted the prompt
func (m Model) Cancelled() bool {
	return m.cancelled
}

func (m Model) cancel() (tea.Model, tea.Cmd) {
	m.cancelled = true
	m.done = true
	return m, tea.Quit
}

func (m *Model) yank() tea.Cmd {
	e, ok := m.list.SelectedItem().(entry)
	if !ok || m.copyFn == nil {
		return nil
	}
	if err := m.copyFn(e.value); err != nil {
		return m.list.NewStatusMessage(fmt.Sprintf("copy failed: %v", err))
	}
	return m.list.NewStatusMessage(fmt.Sprintf("copied %s to clipboard", e.value))
}

// resize keeps the highlighted entry under the cursor when the page size changes
func (m *Model) resize(width, height int) {
	idx := m.list.Index()
	m.list.SetSize(width, listHeight(len(m.list.Items()), height))
	m.list.Select(idx)
}

// listHeight sizes the list to its content, capped by the terminal height
func listHeight(items, termHeight int) int {
	h := min(items, MaxVisibleItems) + listChrome
	if termHeight > 0 && h > termHeight {
		return termHeight
	}
	return h
}
