package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aaronfang/todo-app/internal/engine"
	"github.com/aaronfang/todo-app/internal/model"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks in display order",
	Long: `List tasks the way the TUI shows them: grouped by section,
completed tasks folded to the bottom of each section.

Examples:
  todo list
  todo list --ids`,
	RunE: runList,
}

var listShowIDs bool

func init() {
	listCmd.Flags().BoolVar(&listShowIDs, "ids", false, "Show record ids")
}

func runList(cmd *cobra.Command, args []string) error {
	eng, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	rows := eng.Rows()
	if len(rows) == 0 {
		fmt.Println("No tasks yet. Add one with: todo add \"Your task\"")
		return nil
	}

	st := eng.Stats()
	summary := fmt.Sprintf("To-Do (%d/%d)", st.Done, st.Total)
	if st.Done == st.Total && st.Total > 0 {
		summary += " — All done!"
	}
	if st.Urgent > 0 {
		summary += fmt.Sprintf(" [%d urgent]", st.Urgent)
	}
	fmt.Println(summary)
	fmt.Println(strings.Repeat("─", 50))

	now := time.Now()
	for _, row := range rows {
		fmt.Println(formatRow(row, now))
	}
	return nil
}

func formatRow(row engine.Row, now time.Time) string {
	switch row.Kind {
	case engine.RowSeparator:
		r := row.Record
		if r.HasTitle {
			return fmt.Sprintf("── %s %s", r.Name, strings.Repeat("─", 30))
		}
		return strings.Repeat("─", 40)
	case engine.RowCompletedHeader:
		arrow := "▼"
		if row.Collapsed {
			arrow = "▶"
		}
		return fmt.Sprintf("  %s Completed (%d)", arrow, row.DoneCount)
	default:
		return formatTaskRow(row, now)
	}
}

func formatTaskRow(row engine.Row, now time.Time) string {
	r := row.Record

	icon := "☐"
	if r.Cancelled {
		icon = "✗"
	} else if r.Done {
		icon = "☑"
	}

	indent := strings.Repeat("    ", row.Indent)

	suffix := ""
	switch {
	case r.Done && r.CompletedAt != "":
		suffix = fmt.Sprintf(" [%s]", r.CompletedAt)
	case r.Urgent:
		suffix = " (!)"
	}
	if badge := deadlineBadge(r, now); badge != "" {
		suffix += " " + badge
	}

	id := ""
	if listShowIDs {
		id = fmt.Sprintf("  %-8s", shortID(r.ID))
	}

	return fmt.Sprintf("%s%s %s%s%s", indent, icon, r.Name, suffix, id)
}

// deadlineBadge renders the deadline hint for active tasks: overdue,
// due today, due within three days, or just the date.
func deadlineBadge(r *model.Record, now time.Time) string {
	if r.Done || r.Cancelled {
		return ""
	}
	deadline, ok := r.DeadlineDate()
	if !ok {
		return ""
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(deadline.Sub(today).Hours() / 24)

	switch {
	case days < 0:
		return fmt.Sprintf("⚠ %dd overdue", -days)
	case days == 0:
		return "⚠ due today"
	case days <= 3:
		return fmt.Sprintf("⏰ due in %dd", days)
	default:
		return "📅 " + r.Deadline
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
