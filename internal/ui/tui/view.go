package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/wsup/internal/orchestration"
	"github.com/imamik/wsup/internal/platform/gcp"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)

	if m.Status != nil {
		renderHierarchy(&b, m.Status)
		renderEndpoint(&b, m.Status)
	}

	if m.FetchErr != nil {
		renderError(&b, m.FetchErr)
	}

	renderFooter(&b, m)

	return b.String()
}

// RenderStatus renders a single status snapshot (non-watch mode).
func RenderStatus(st *orchestration.Status) string {
	m := NewWatchModel(st.Workstation, st.Region)
	m.Status = st
	m.Done = true

	var b strings.Builder
	renderHeader(&b, m)
	renderHierarchy(&b, st)
	renderEndpoint(&b, st)
	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("wsup: %s", m.Workstation)
	if m.Region != "" {
		title += fmt.Sprintf(" (%s)", m.Region)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Status == nil:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + dimStyle.Render("Describing...")
	default:
		icon, style := stateIcon(m.Status.State)
		if isTransitional(m.Status.State) && !m.Done {
			icon = currentSpinner(m.SpinnerFrame)
		}
		status += style(icon + " " + displayState(m.Status.State))
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderHierarchy(b *strings.Builder, st *orchestration.Status) {
	b.WriteString(sectionStyle.Render("  Resources"))
	b.WriteString("\n")

	rows := []struct {
		kind string
		res  orchestration.ResourceStatus
	}{
		{"cluster", st.Cluster},
		{"config", st.Config},
		{"workstation", st.Instance},
	}
	for _, row := range rows {
		icon, style := statusIcon(row.res.Exists)
		note := "present"
		if !row.res.Exists {
			note = "absent"
		}
		fmt.Fprintf(b, "    %s %-12s %-28s %s\n",
			style(icon), row.kind, row.res.Name, dimStyle.Render(note))
	}
}

func renderEndpoint(b *strings.Builder, st *orchestration.Status) {
	b.WriteString(sectionStyle.Render("  Endpoint"))
	b.WriteString("\n")

	_, style := stateIcon(st.State)
	fmt.Fprintf(b, "    %-8s %s\n", "state", style(displayState(st.State)))

	host := st.Host
	if host == "" {
		host = "-"
	}
	fmt.Fprintf(b, "    %-8s %s\n", "host", host)
	if st.Host != "" {
		fmt.Fprintf(b, "    %-8s %s\n", "url", dimStyle.Render("https://"+st.Host))
	}

	image := st.Image
	if image == "" {
		image = "-"
	}
	fmt.Fprintf(b, "    %-8s %s\n", "image", dimStyle.Render(image))
}

func renderError(b *strings.Builder, err error) {
	b.WriteString(sectionStyle.Render("  Last Error"))
	b.WriteString("\n")
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(b, "    %s %s\n", failedStyle.Render(crossMark), dimStyle.Render(line))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	parts := []string{fmt.Sprintf("elapsed: %s", formatDuration(time.Since(m.StartTime)))}
	if !m.LastUpdate.IsZero() {
		parts = append(parts, fmt.Sprintf("updated: %s ago", formatDuration(time.Since(m.LastUpdate))))
	}
	if m.Fetches > 0 {
		parts = append(parts, fmt.Sprintf("checks: %d", m.Fetches))
	}
	parts = append(parts, "q: quit")
	b.WriteString(footerStyle.Render("  " + strings.Join(parts, "  |  ")))
	b.WriteString("\n")
}

func statusIcon(ready bool) (string, styleFunc) {
	if ready {
		return checkMark, sf(readyStyle)
	}
	return pending, sf(dimStyle)
}

func stateIcon(state gcp.State) (string, styleFunc) {
	switch state {
	case gcp.StateRunning:
		return checkMark, sf(readyStyle)
	case gcp.StateStarting, gcp.StateStopping:
		return spinner, sf(warningStyle)
	case gcp.StateStopped:
		return pending, sf(dimStyle)
	default:
		return crossMark, sf(failedStyle)
	}
}

func isTransitional(state gcp.State) bool {
	return state == gcp.StateStarting || state == gcp.StateStopping
}

// displayState strips the STATE_ prefix for display.
func displayState(state gcp.State) string {
	if state == "" {
		state = gcp.StateUnknown
	}
	return strings.TrimPrefix(string(state), "STATE_")
}

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
