package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const tickInterval = 100 * time.Millisecond

// Theme holds the color scheme for terminal output.
type Theme struct {
	Status     lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Hint       lipgloss.Color
	ProgressBg lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:     lipgloss.Color("#5FAFD7"), // light blue
	Success:    lipgloss.Color("#00D787"), // green
	Error:      lipgloss.Color("#FF005F"), // red
	Hint:       lipgloss.Color("#6C6C6C"), // dim gray
	ProgressBg: lipgloss.Color("#3A3A3A"), // dark gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// tickMsg advances the elapsed-time bar.
type tickMsg time.Time

// doneMsg carries the finished task's error.
type doneMsg struct {
	err error
}

// waitModel is the bubbletea model shown while one pipeline call runs.
// The bar fills as the call approaches its timeout.
type waitModel struct {
	label    string
	start    time.Time
	timeout  time.Duration
	task     func() error
	cancel   context.CancelFunc
	progress progress.Model
	theme    Theme
	done     bool
	quitting bool
	err      error
}

func newWaitModel(label string, timeout time.Duration, cancel context.CancelFunc, task func() error) waitModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return waitModel{
		label:    label,
		start:    time.Now(),
		timeout:  timeout,
		task:     task,
		cancel:   cancel,
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init starts the task and the ticker.
func (m waitModel) Init() tea.Cmd {
	return tea.Batch(
		m.run(),
		tickCmd(),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd()

	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the wait display.
func (m waitModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m waitModel) renderContent() string {
	if m.done || m.quitting {
		return m.finalView()
	}

	elapsed := time.Since(m.start)
	status := m.theme.statusStyle().Render(fmt.Sprintf("[%s]", m.label))
	bar := m.progress.ViewAs(fraction(elapsed, m.timeout))
	clock := fmt.Sprintf("%.1fs", elapsed.Seconds())
	hint := m.theme.hintStyle().Render("Press Ctrl+C to cancel")

	return fmt.Sprintf("%s %s %s\n%s\n", status, bar, clock, hint)
}

func (m waitModel) finalView() string {
	switch {
	case m.quitting:
		return m.theme.hintStyle().Render("Cancelled.\n")
	case m.err != nil:
		return m.theme.errorStyle().Render(fmt.Sprintf("✗ %s failed: %s\n", m.label, m.err))
	default:
		return m.theme.completedStyle().Render(fmt.Sprintf("✓ %s in %.1fs\n", m.label, time.Since(m.start).Seconds()))
	}
}

// run executes the task off the update loop.
func (m waitModel) run() tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: m.task()}
	}
}

// fraction maps elapsed time onto [0,1] of the timeout.
func fraction(elapsed, timeout time.Duration) float64 {
	if timeout <= 0 {
		return 0
	}
	f := float64(elapsed) / float64(timeout)
	if f > 1 {
		return 1
	}
	return f
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runWithProgress runs task behind the progress UI when stderr is a terminal,
// and directly otherwise. Cancelling from the UI cancels ctx.
func runWithProgress(ctx context.Context, label string, task func(ctx context.Context) error) error {
	if !isTerminal(os.Stderr) {
		return task(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newWaitModel(label, cfg.RequestTimeout, cancel, func() error { return task(ctx) })
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(waitModel); ok {
		if m.quitting {
			return context.Canceled
		}
		return m.err
	}
	return nil
}
