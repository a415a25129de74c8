package cli

import (
	"context"
	"errors"
	"io"

	"github.com/alexanderramin/daybook/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var errInterrupted = errors.New("interrupted")

type taskDoneMsg struct{ err error }

// progressModel shows a spinner while a blocking task runs in a Cmd.
type progressModel struct {
	spinner spinner.Model
	message string
	task    func() error
	cancel  context.CancelFunc
	done    bool
	err     error
}

func newProgressModel(message string, task func() error, cancel context.CancelFunc) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StylePurple
	return progressModel{spinner: s, message: message, task: task, cancel: cancel}
}

func (m progressModel) Init() tea.Cmd {
	task := m.task
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return taskDoneMsg{err: task()}
	})
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			if m.cancel != nil {
				m.cancel()
			}
			m.done = true
			m.err = errInterrupted
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return "  " + m.spinner.View() + " " + formatter.Dim(m.message) + "\n"
}

// withProgress runs task behind a spinner on interactive terminals and
// directly otherwise. Ctrl+C cancels the context handed to task.
func (a *App) withProgress(ctx context.Context, out io.Writer, message string, task func(ctx context.Context) error) error {
	if !a.interactive() {
		return task(ctx)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newProgressModel(message, func() error { return task(ctx) }, cancel)
	final, err := tea.NewProgram(model, tea.WithOutput(out)).Run()
	if err != nil {
		return err
	}
	return final.(progressModel).err
}
