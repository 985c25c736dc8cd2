// Package tui provides a Bubble Tea-based terminal UI for watching a
// workstation.
package tui

import "github.com/imamik/wsup/internal/orchestration"

// StatusMsg carries the latest observed status. Err is set when the
// describe call failed; Status may still hold a partial view.
type StatusMsg struct {
	Status *orchestration.Status
	Err    error
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error that ends the program.
type ErrMsg struct{ Err error }

// DoneMsg signals that the watch is complete.
type DoneMsg struct{}
