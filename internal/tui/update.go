package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aaronfang/todo-app/internal/engine"
	"github.com/aaronfang/todo-app/internal/logger"
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeNormal:
			return m.handleNormalKeys(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		default:
			return m.handleInputKeys(msg)
		}
	}
	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Add):
		m.mode = ModeAddTask
		m.input.Placeholder = "Task, or --- TITLE for a separator"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Enter):
		row := m.currentRow()
		if row == nil {
			break
		}
		switch row.Kind {
		case engine.RowCompletedHeader:
			m.setRows(m.eng.ToggleSectionCollapse(row.SectionID))
			m.saveCollapse()
		case engine.RowSeparator:
			return m.openEditor(row)
		default:
			rows, _ := m.eng.ToggleDone(row.Record.ID)
			m.setRows(rows)
		}

	case key.Matches(msg, keys.Done):
		if row := m.currentRow(); row != nil && row.Kind == engine.RowTask {
			rows, _ := m.eng.ToggleDone(row.Record.ID)
			m.setRows(rows)
		}

	case key.Matches(msg, keys.Cancel):
		if row := m.currentRow(); row != nil && row.Kind == engine.RowTask {
			rows, _ := m.eng.ToggleCancelled(row.Record.ID)
			m.setRows(rows)
		}

	case key.Matches(msg, keys.Urgent):
		if row := m.currentRow(); row != nil && row.Kind == engine.RowTask {
			rows, _ := m.eng.ToggleUrgent(row.Record.ID)
			m.setRows(rows)
		}

	case key.Matches(msg, keys.Edit):
		if row := m.currentRow(); row != nil {
			return m.openEditor(row)
		}

	case key.Matches(msg, keys.Delete):
		row := m.currentRow()
		if row != nil && row.Kind != engine.RowCompletedHeader {
			rows, ok := m.eng.Remove(row.Record.ID)
			if ok {
				m.setRows(rows)
			}
		}

	case key.Matches(msg, keys.Subtask):
		row := m.currentRow()
		if row != nil && row.Kind == engine.RowTask && row.Record.IsMainTask() {
			m.mode = ModeAddSubtask
			m.targetID = row.Record.ID
			m.input.Placeholder = "Subtask name"
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Deadline):
		row := m.currentRow()
		if row != nil && row.Kind == engine.RowTask {
			m.mode = ModeSetDeadline
			m.targetID = row.Record.ID
			m.input.Placeholder = "YYYY-MM-DD (empty clears)"
			m.input.SetValue(row.Record.Deadline)
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Color):
		row := m.currentRow()
		if row != nil && row.Kind == engine.RowTask && row.Record.IsMainTask() {
			m.mode = ModeSetColor
			m.targetID = row.Record.ID
			m.input.Placeholder = "#RRGGBB (empty clears)"
			m.input.SetValue(row.Record.CustomColor)
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Separator):
		row := m.currentRow()
		if row != nil && row.Kind != engine.RowCompletedHeader {
			rows, ok := m.eng.AddSeparatorBelow(row.Record.ID)
			if ok {
				m.setRows(rows)
			}
		}

	case key.Matches(msg, keys.MoveUp):
		m.moveRecord(-1)

	case key.Matches(msg, keys.MoveDown):
		m.moveRecord(1)

	case key.Matches(msg, keys.DarkMode):
		m.darkMode = !m.darkMode
		m.cfg.DarkMode = m.darkMode
		if err := m.cfg.Save(); err != nil {
			logger.Warn("Failed to save config", logger.F("error", err))
		}
	}

	return m, nil
}

// openEditor opens the rename modal for the row under the cursor.
func (m Model) openEditor(row *engine.Row) (tea.Model, tea.Cmd) {
	if row.Kind == engine.RowCompletedHeader {
		return m, nil
	}
	m.targetID = row.Record.ID
	if row.Kind == engine.RowSeparator {
		m.mode = ModeEditSeparator
		m.input.Placeholder = "Section title (empty for plain rule)"
	} else {
		m.mode = ModeEditTask
		m.input.Placeholder = "Task name"
	}
	m.input.SetValue(row.Record.Name)
	m.input.Focus()
	return m, textinput.Blink
}

// moveRecord moves the record under the cursor one visible position in
// the given direction. The move is a single-record move in the flat
// store; parent/child contiguity is the user's to keep.
func (m *Model) moveRecord(dir int) {
	row := m.currentRow()
	if row == nil || row.Kind == engine.RowCompletedHeader {
		return
	}
	id := row.Record.ID

	// The display neighbor that the record should land before.
	target := m.cursor + dir
	if dir > 0 {
		target = m.cursor + 2
	}
	beforeID := ""
	found := false
	for i := target; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].Kind != engine.RowCompletedHeader {
			beforeID = m.rows[i].Record.ID
			found = true
			break
		}
	}
	// Moving up past the top (or past a lone completed header) has
	// nowhere to land; an empty beforeID would mean "to the end".
	if dir < 0 && !found {
		return
	}

	rows, ok := m.eng.Reorder(id, beforeID)
	if !ok {
		return
	}
	m.setRows(rows)
	for i := range m.rows {
		if m.rows[i].Kind != engine.RowCompletedHeader && m.rows[i].Record.ID == id {
			m.cursor = i
			break
		}
	}
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case msg.Type == tea.KeyEnter:
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput applies the modal's text through the matching engine
// command. An input the engine rejects keeps the modal open, which is
// the only way invalid input surfaces.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	var (
		rows []engine.Row
		ok   bool
	)

	switch m.mode {
	case ModeAddTask:
		rows, ok = m.eng.AddTask(value)
		if !ok {
			m.message = "Task name cannot be empty"
			return m, nil
		}
	case ModeEditTask:
		rows, ok = m.eng.Rename(m.targetID, value)
		if !ok {
			m.message = "Task name cannot be empty"
			return m, nil
		}
	case ModeEditSeparator:
		rows, ok = m.eng.SetSeparatorTitle(m.targetID, value)
	case ModeAddSubtask:
		rows, ok = m.eng.AddSubtask(m.targetID, value)
		if !ok {
			m.message = "Subtask name cannot be empty"
			return m, nil
		}
	case ModeSetDeadline:
		rows, ok = m.eng.SetDeadline(m.targetID, value)
		if !ok && value != "" {
			m.message = "Invalid date, want YYYY-MM-DD"
			return m, nil
		}
	case ModeSetColor:
		rows, ok = m.eng.SetColor(m.targetID, value)
		if !ok && value != "" {
			m.message = "Invalid color, want #RRGGBB"
			return m, nil
		}
	}

	if ok {
		m.setRows(rows)
	}
	m.mode = ModeNormal
	m.input.Blur()
	return m, nil
}
