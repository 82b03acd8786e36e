package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aaronfang/todo-app/internal/engine"
	"github.com/aaronfang/todo-app/internal/model"
)

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	p := m.palette()
	header := m.renderHeader(p)
	list := m.renderList(p)
	statusBar := m.renderStatusBar(p)

	content := lipgloss.JoinVertical(lipgloss.Left, header, list)

	if m.mode != ModeNormal && m.mode != ModeHelp {
		modal := m.renderModal(p)
		content = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}
	if m.mode == ModeHelp {
		content = m.renderHelp(p)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

// renderHeader mirrors the original window title: done/total main
// tasks plus the urgent count.
func (m Model) renderHeader(p Palette) string {
	st := m.eng.Stats()

	title := "To-Do"
	if st.Total > 0 {
		title = fmt.Sprintf("To-Do (%d/%d)", st.Done, st.Total)
		if st.Done == st.Total {
			title += " — All done!"
		}
	}
	s := p.headerStyle().Render(title)
	if st.Urgent > 0 {
		s += " " + p.urgentStyle().Render(fmt.Sprintf("[%d urgent]", st.Urgent))
	}
	return s
}

func (m Model) renderList(p Palette) string {
	if len(m.rows) == 0 {
		return p.mutedStyle().Padding(1, 2).Render("No tasks. Press 'a' to add one.")
	}

	visible := m.height - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	now := time.Now()
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(p, m.rows[i], i == m.cursor, now))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(p Palette, row engine.Row, selected bool, now time.Time) string {
	var line string

	switch row.Kind {
	case engine.RowSeparator:
		r := row.Record
		if r.HasTitle {
			line = p.separatorStyle().Render(fmt.Sprintf("── %s %s", r.Name, strings.Repeat("─", 30)))
		} else {
			line = p.separatorStyle().Render(strings.Repeat("─", 40))
		}

	case engine.RowCompletedHeader:
		arrow := "▼"
		if row.Collapsed {
			arrow = "▶"
		}
		line = p.completedHeaderStyle().Render(fmt.Sprintf("  %s Completed (%d)", arrow, row.DoneCount))

	default:
		line = m.renderTaskRow(p, row, now)
	}

	if selected {
		return lipgloss.NewStyle().Background(p.CursorBg).Render("❯ ") + line
	}
	return "  " + line
}

func (m Model) renderTaskRow(p Palette, row engine.Row, now time.Time) string {
	r := row.Record
	indent := strings.Repeat("    ", row.Indent)

	var style lipgloss.Style
	var icon string
	switch {
	case r.Cancelled:
		style = p.cancelledStyle()
		icon = "✗"
	case r.Done:
		style = p.doneStyle()
		icon = "☑"
	default:
		style = p.taskStyle()
		icon = "☐"
	}
	if row.AltShade && !r.Done && !r.Cancelled {
		style = style.Background(p.AltBg)
	}
	if r.CustomColor != "" && r.IsMainTask() && !r.Done && !r.Cancelled {
		style = style.Background(lipgloss.Color(r.CustomColor))
	}

	text := fmt.Sprintf("%s%s %s", indent, icon, r.Name)
	line := style.Render(text)

	if r.Done && r.CompletedAt != "" {
		line += p.mutedStyle().Render(fmt.Sprintf(" [%s]", r.CompletedAt))
	}
	if r.Urgent {
		line = p.urgentStyle().Render("! ") + line
	}
	if badge := m.deadlineBadge(p, r, now); badge != "" {
		line += " " + badge
	}
	return line
}

// deadlineBadge renders the deadline hint shown next to active tasks.
func (m Model) deadlineBadge(p Palette, r *model.Record, now time.Time) string {
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
		return p.urgentStyle().Render(fmt.Sprintf("⚠ %dd overdue", -days))
	case days == 0:
		return p.urgentStyle().Render("⚠ due today")
	case days <= 3:
		return lipgloss.NewStyle().Foreground(p.Overdue).Render(fmt.Sprintf("⏰ due in %dd", days))
	default:
		return p.mutedStyle().Render("📅 " + r.Deadline)
	}
}

func (m Model) renderModal(p Palette) string {
	var title string
	switch m.mode {
	case ModeAddTask:
		title = "Add task"
	case ModeEditTask:
		title = "Edit task"
	case ModeEditSeparator:
		title = "Section title"
	case ModeAddSubtask:
		title = "Add subtask"
	case ModeSetDeadline:
		title = "Set deadline"
	case ModeSetColor:
		title = "Set color"
	}

	body := p.headerStyle().Render(title) + "\n\n" + m.input.View()
	if m.message != "" {
		body += "\n" + p.urgentStyle().Render(m.message)
	}
	body += "\n\n" + p.mutedStyle().Render("enter save · esc cancel")
	return p.modalStyle().Render(body)
}

func (m Model) renderStatusBar(p Palette) string {
	if m.mode != ModeNormal {
		return p.statusBarStyle().Width(m.width).Render("enter save · esc cancel")
	}
	help := "a add · s subtask · x/enter done · c cancel · u urgent · e edit · d delete · D deadline · C color · - separator · J/K move · t theme · ? help · q quit"
	return p.statusBarStyle().Width(m.width).Render(help)
}

func (m Model) renderHelp(p Palette) string {
	rows := [][2]string{
		{"↑/k, ↓/j", "move cursor"},
		{"a", "add task ('--- TITLE' adds a separator)"},
		{"s", "add subtask under a main task"},
		{"enter/x", "toggle done (on a Completed header: fold/unfold)"},
		{"c", "toggle cancelled"},
		{"u", "toggle urgent"},
		{"e", "edit name or section title"},
		{"d", "delete (subtasks survive a deleted parent)"},
		{"D", "set deadline (YYYY-MM-DD)"},
		{"C", "set background color (#RRGGBB)"},
		{"-", "insert separator below"},
		{"J/K", "move record down/up"},
		{"t", "toggle dark mode"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(p.headerStyle().Render("Help") + "\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-10s %s\n",
			lipgloss.NewStyle().Foreground(p.Primary).Render(r[0]), r[1]))
	}
	b.WriteString("\n" + p.mutedStyle().Render("press any key to close"))
	return b.String()
}
