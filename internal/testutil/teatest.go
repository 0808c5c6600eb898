package testutil

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// settle is how long Send waits for the program to process a message
const settle = 30 * time.Millisecond

// TestProgram runs a Bubble Tea model in the background and lets a test
// feed it messages, the same way a terminal would
type TestProgram struct {
	program *tea.Program
	output  *syncBuffer
	done    chan struct{}
	final   tea.Model
	err     error
	t       *testing.T
}

// syncBuffer guards the output the renderer writes from its own goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewTestProgram starts model with no terminal input and sends it an
// initial window size
func NewTestProgram(t *testing.T, model tea.Model, width, height int) *TestProgram {
	t.Helper()

	output := &syncBuffer{}
	p := tea.NewProgram(
		model,
		tea.WithInput(nil),
		tea.WithOutput(output),
	)

	tp := &TestProgram{
		program: p,
		output:  output,
		done:    make(chan struct{}),
		t:       t,
	}

	go func() {
		defer close(tp.done)
		tp.final, tp.err = p.Run()
	}()
	t.Cleanup(func() {
		p.Kill()
		<-tp.done
	})

	tp.Send(tea.WindowSizeMsg{Width: width, Height: height})
	return tp
}

// Send sends a message to the program
func (tp *TestProgram) Send(msg tea.Msg) {
	tp.program.Send(msg)
	time.Sleep(settle)
}

// Type simulates typing a string, one key per rune
func (tp *TestProgram) Type(s string) {
	for _, r := range s {
		tp.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// SendKey sends a specific key press
func (tp *TestProgram) SendKey(key tea.KeyType) {
	tp.Send(tea.KeyMsg{Type: key})
}

// Output returns everything rendered so far
func (tp *TestProgram) Output() string {
	return tp.output.String()
}

// WaitForOutput waits for specific text to appear in output
func (tp *TestProgram) WaitForOutput(needle string, timeout time.Duration) bool {
	tp.t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(tp.Output(), needle) {
			return true
		}
		time.Sleep(settle)
	}
	return false
}

// WaitDone waits for the program to exit and returns its final model.
// The test fails if the program is still running after timeout.
func (tp *TestProgram) WaitDone(timeout time.Duration) tea.Model {
	tp.t.Helper()

	select {
	case <-tp.done:
	case <-time.After(timeout):
		tp.t.Fatalf("program still running after %s\nOutput:\n%s", timeout, tp.Output())
	}
	if tp.err != nil {
		tp.t.Fatalf("program error: %v", tp.err)
	}
	return tp.final
}
