package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/wsup/internal/orchestration"
)

// FetchFunc reads the current status.
type FetchFunc func(ctx context.Context) (*orchestration.Status, error)

// RunWatch runs the status watch with a Bubble Tea TUI, refreshing every
// interval until the user quits or ctx is cancelled. Both end the watch
// without error.
func RunWatch(ctx context.Context, fetch FetchFunc, workstation, region string, interval time.Duration) error {
	m := NewWatchModel(workstation, region)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	go pollStatus(ctx, p, fetch, interval)

	finalModel, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}

// sender is the subset of *tea.Program used by pollStatus.
type sender interface {
	Send(msg tea.Msg)
}

func pollStatus(ctx context.Context, p sender, fetch FetchFunc, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Fetch immediately with a bounded timeout to avoid hanging the first frame
	fetchCtx, cancel := context.WithTimeout(ctx, interval+5*time.Second)
	st, err := fetch(fetchCtx)
	cancel()
	p.Send(StatusMsg{Status: st, Err: err})

	for {
		select {
		case <-ctx.Done():
			p.Send(DoneMsg{})
			return
		case <-ticker.C:
			st, err := fetch(ctx)
			p.Send(StatusMsg{Status: st, Err: err})
		}
	}
}
