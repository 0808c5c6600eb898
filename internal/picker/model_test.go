package picker

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/kubectl-copi/internal/keyboard"
	"github.com/renato0307/kubectl-copi/internal/ui"
)

func testItems() []Item {
	return []Item{
		{Label: "dev (cluster: c1, namespace: N/A)", Value: "dev"},
		{Label: "staging (cluster: c1, namespace: web)", Value: "staging"},
		{Label: "prod (cluster: c2, namespace: web)", Value: "prod"},
	}
}

func newTestModel(start int, copyFn func(string) error) Model {
	return NewModel("Context: ", testItems(), start, ui.ThemeCharm(), keyboard.Default(), copyFn)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds a message through Update and returns the resulting model
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok, "Update should return a picker Model")
	return model, cmd
}

func TestNewModel_StartCursor(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		expected int
	}{
		{name: "first entry", start: 0, expected: 0},
		{name: "middle entry", start: 1, expected: 1},
		{name: "last entry", start: 2, expected: 2},
		{name: "negative start clamps to first", start: -1, expected: 0},
		{name: "start past the end clamps to first", start: 3, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(tt.start, nil)
			assert.Equal(t, tt.expected, m.Cursor())
		})
	}
}

func TestUpdate_VimNavigationAndConfirm(t *testing.T) {
	m := newTestModel(0, nil)

	m, _ = send(t, m, runeKey("j"))
	assert.Equal(t, 1, m.Cursor())

	m, _ = send(t, m, runeKey("j"))
	assert.Equal(t, 2, m.Cursor())

	m, _ = send(t, m, runeKey("k"))
	assert.Equal(t, 1, m.Cursor())

	m, _ = send(t, m, runeKey("G"))
	assert.Equal(t, 2, m.Cursor())

	m, _ = send(t, m, runeKey("g"))
	assert.Equal(t, 0, m.Cursor())

	m, _ = send(t, m, runeKey("j"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "confirming should quit the program")

	idx, ok := m.Choice()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.False(t, m.Cancelled())
	assert.Contains(t, m.View(), "staging")
}

func TestUpdate_CursorPreservedOnResize(t *testing.T) {
	m := newTestModel(2, nil)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 2, m.Cursor())

	// Terminal smaller than the list still keeps the cursor on its entry
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 7})
	assert.Equal(t, 2, m.Cursor())
}

func TestUpdate_Cancel(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "q", msg: runeKey("q")},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(1, nil)

			m, cmd := send(t, m, tt.msg)
			require.NotNil(t, cmd, "cancelling should quit the program")

			assert.True(t, m.Cancelled())
			_, ok := m.Choice()
			assert.False(t, ok)
			assert.Empty(t, m.View())
		})
	}
}

func TestUpdate_QuitKeysTypeIntoFilter(t *testing.T) {
	m := newTestModel(0, nil)

	// "/" starts filtering; "q" is now filter text, not a cancel
	m, _ = send(t, m, runeKey("/"))
	m, _ = send(t, m, runeKey("q"))
	assert.False(t, m.Cancelled())

	// esc leaves filter mode without cancelling the prompt
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Cancelled())

	// ctrl+c always cancels
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.Cancelled())
}

func TestUpdate_Yank(t *testing.T) {
	t.Run("copies highlighted value", func(t *testing.T) {
		var copied []string
		m := newTestModel(2, func(s string) error {
			copied = append(copied, s)
			return nil
		})

		m, cmd := send(t, m, runeKey("y"))
		assert.NotNil(t, cmd, "a status message should be shown")
		assert.Equal(t, []string{"prod"}, copied)

		// Yank doesn't end the prompt
		_, ok := m.Choice()
		assert.False(t, ok)
		assert.False(t, m.Cancelled())
	})

	t.Run("clipboard failure is not fatal", func(t *testing.T) {
		m := newTestModel(0, func(string) error {
			return errors.New("no clipboard utility")
		})

		m, cmd := send(t, m, runeKey("y"))
		assert.NotNil(t, cmd)
		assert.False(t, m.Cancelled())
	})

	t.Run("no clipboard configured", func(t *testing.T) {
		m := newTestModel(0, nil)

		_, cmd := send(t, m, runeKey("y"))
		assert.Nil(t, cmd)
	})
}

func TestListHeight(t *testing.T) {
	assert.Equal(t, 3+listChrome, listHeight(3, 0))
	assert.Equal(t, MaxVisibleItems+listChrome, listHeight(100, 0))
	assert.Equal(t, 5, listHeight(100, 5))
}
