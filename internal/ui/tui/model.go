package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/wsup/internal/orchestration"
)

// Model is the Bubble Tea model for the status watch.
type Model struct {
	Workstation string
	Region      string

	// Latest observation
	Status     *orchestration.Status
	FetchErr   error
	Fetches    int
	LastUpdate time.Time

	// Animation
	SpinnerFrame int
	StartTime    time.Time

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool
}

// NewWatchModel creates a model for the status watch.
func NewWatchModel(workstation, region string) Model {
	return Model{
		Workstation: workstation,
		Region:      region,
		StartTime:   time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Done = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StatusMsg:
		m.updateStatus(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updateStatus(msg StatusMsg) {
	m.Fetches++
	m.FetchErr = msg.Err
	m.LastUpdate = time.Now()
	// Keep the previous view when a fetch returns nothing.
	if msg.Status != nil {
		m.Status = msg.Status
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
