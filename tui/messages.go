package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lukemcguire/canonurl/dedup"
	"github.com/lukemcguire/canonurl/result"
)

// ProgressMsg reports progress after a URL has been classified.
type ProgressMsg struct {
	Processed  int
	Total      int
	Duplicates int
	Failed     int
	URL        string
	Final      bool
}

// DoneMsg signals the dedup run has completed.
type DoneMsg struct {
	Result *result.Result
	Err    error
}

// waitForProgress returns a tea.Cmd that reads one event from the progress
// channel. A closed channel yields no message; the result always arrives
// through startDedup.
func waitForProgress(ch <-chan dedup.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return nil
		}
		return ProgressMsg{
			Processed:  evt.Processed,
			Total:      evt.Total,
			Duplicates: evt.Duplicates,
			Failed:     evt.Failed,
			URL:        evt.URL,
			Final:      evt.Done,
		}
	}
}
