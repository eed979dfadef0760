package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// CommandCount is one row of the session summary
type CommandCount struct {
	Command string
	Status  string
	Count   uint64
}

// CommandCounts gathers the command counter into rows ordered by command, then status
func (r *Registry) CommandCounts() ([]CommandCount, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var rows []CommandCount
	for _, family := range families {
		if family.GetName() != "kvstore_commands_total" {
			continue
		}
		for _, m := range family.GetMetric() {
			rows = append(rows, CommandCount{
				Command: labelValue(m, "command"),
				Status:  labelValue(m, "status"),
				Count:   uint64(m.GetCounter().GetValue()),
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Command != rows[j].Command {
			return rows[i].Command < rows[j].Command
		}
		return rows[i].Status < rows[j].Status
	})
	return rows, nil
}

// WriteSummary writes a plain-text end-of-session summary
func (r *Registry) WriteSummary(w io.Writer) error {
	rows, err := r.CommandCounts()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("command summary:\n")
	if len(rows) == 0 {
		b.WriteString("  (no commands)\n")
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "  %-10s %-15s %d\n", row.Command, row.Status, row.Count)
	}

	r.mu.Lock()
	fmt.Fprintf(&b, "max transaction depth: %d\n", r.maxDepth)
	r.mu.Unlock()

	_, err = io.WriteString(w, b.String())
	return err
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
