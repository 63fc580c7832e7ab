// Package tui provides the Bubble Tea terminal UI for canonurl dedup runs,
// displaying live progress and a styled summary of duplicates and failures.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lukemcguire/canonurl/dedup"
	"github.com/lukemcguire/canonurl/result"
)

// Model is the Bubble Tea model for the dedup TUI.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	runner     *dedup.Runner
	urls       []string
	spinner    spinner.Model
	progressCh <-chan dedup.Event

	processed  int
	total      int
	duplicates int
	failed     int
	current    string
	quitting   bool
	done       bool
	result     *result.Result
	err        error
	width      int
}

// NewModel creates a TUI model that runs runner over urls and listens on
// progressCh, which must be the channel the runner was created with.
func NewModel(ctx context.Context, cancel context.CancelFunc, runner *dedup.Runner, urls []string, progressCh <-chan dedup.Event) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		runner:     runner,
		urls:       urls,
		spinner:    spin,
		progressCh: progressCh,
		total:      len(urls),
	}
}

// Init starts the spinner, the dedup run, and the progress listener concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startDedup(), waitForProgress(m.progressCh))
}

// startDedup returns a tea.Cmd that runs the dedup and sends DoneMsg.
func (m Model) startDedup() tea.Cmd {
	return func() tea.Msg {
		res, err := m.runner.Run(m.ctx, m.urls)
		if err != nil {
			err = fmt.Errorf("dedup: %w", err)
		}
		return DoneMsg{Result: res, Err: err}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case ProgressMsg:
		m.processed = msg.Processed
		m.total = msg.Total
		m.duplicates = msg.Duplicates
		m.failed = msg.Failed
		if msg.URL != "" {
			m.current = msg.URL
		}
		if msg.Final {
			return m, nil
		}
		return m, waitForProgress(m.progressCh)

	case DoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.done && m.result != nil {
		return RenderSummary(m.result)
	}
	if m.done && m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	return fmt.Sprintf("%s Deduplicating... processed %d/%d, duplicates %d, failed %d\n%s\n",
		m.spinner.View(), m.processed, m.total, m.duplicates, m.failed,
		dimStyle.Render("  "+m.current))
}

// HasDuplicates reports whether the run found any duplicate URLs.
func (m Model) HasDuplicates() bool {
	return m.result != nil && m.result.Stats.Duplicates > 0
}

// HasFailures reports whether any URL could not be canonicalized.
func (m Model) HasFailures() bool {
	return m.result != nil && m.result.Stats.Failed > 0
}

// Err returns the run error, if the run did not complete.
func (m Model) Err() error {
	return m.err
}

// GetResult returns the dedup result for output formatting.
func (m Model) GetResult() *result.Result {
	return m.result
}
