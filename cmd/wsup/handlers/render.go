package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/imamik/wsup/internal/orchestration"
	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/ui/tui"
)

// renderStatus writes a full status snapshot. Text output is styled when
// styled is set.
func renderStatus(w io.Writer, st *orchestration.Status, format string, styled bool) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputYAML:
		data, err := yaml.Marshal(st)
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	if styled {
		_, err := fmt.Fprint(w, tui.RenderStatus(st))
		return err
	}
	return printStatusPlain(w, st)
}

func printStatusPlain(w io.Writer, st *orchestration.Status) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Workstation: %s (%s/%s)\n", st.Workstation, st.Project, st.Region)
	fmt.Fprintf(&b, "  Cluster:     %-28s %s\n", st.Cluster.Name, presence(st.Cluster.Exists))
	fmt.Fprintf(&b, "  Config:      %-28s %s\n", st.Config.Name, presence(st.Config.Exists))
	fmt.Fprintf(&b, "  Instance:    %-28s %s\n", st.Instance.Name, presence(st.Instance.Exists))
	fmt.Fprintf(&b, "  State:       %s\n", displayState(st.State))
	if st.Host != "" {
		fmt.Fprintf(&b, "  Host:        %s\n", st.Host)
	}
	if st.Image != "" {
		fmt.Fprintf(&b, "  Image:       %s\n", st.Image)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// renderWatchLine writes one compact entry per watch interval.
func renderWatchLine(w io.Writer, st *orchestration.Status, format string) error {
	switch format {
	case OutputJSON:
		data, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputYAML:
		data, err := yaml.Marshal(st)
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		_, err = fmt.Fprintf(w, "---\n%s", data)
		return err
	}
	_, err := fmt.Fprintln(w, statusSummaryLine(st))
	return err
}

// statusSummaryLine returns a compact one-line summary for log output.
func statusSummaryLine(st *orchestration.Status) string {
	exists := 0
	for _, r := range []orchestration.ResourceStatus{st.Cluster, st.Config, st.Instance} {
		if r.Exists {
			exists++
		}
	}
	line := fmt.Sprintf("[%s] %s: %s (resources %d/3)",
		st.ObservedAt.Format("15:04:05"), st.Workstation, displayState(st.State), exists)
	if st.Host != "" {
		line += " host=" + st.Host
	}
	return line
}

func presence(exists bool) string {
	if exists {
		return "present"
	}
	return "absent"
}

func displayState(state gcp.State) string {
	if state == "" {
		state = gcp.StateUnknown
	}
	return strings.TrimPrefix(string(state), "STATE_")
}
