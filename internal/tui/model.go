package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/aaronfang/todo-app/internal/config"
	"github.com/aaronfang/todo-app/internal/engine"
	"github.com/aaronfang/todo-app/internal/logger"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeEditTask
	ModeAddSubtask
	ModeEditSeparator
	ModeSetDeadline
	ModeSetColor
	ModeHelp
)

// Model is the main TUI model. It never touches the flat store
// directly: it renders the engine's projected rows and feeds key
// presses back as engine commands.
type Model struct {
	eng *engine.Engine
	cfg *config.Config

	rows   []engine.Row
	cursor int

	width  int
	height int

	mode     Mode
	input    textinput.Model
	targetID string // record the current modal acts on

	darkMode bool
	message  string
}

// NewModel creates the TUI model over an engine.
func NewModel(eng *engine.Engine, cfg *config.Config) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Enter task..."
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		eng:      eng,
		cfg:      cfg,
		mode:     ModeNormal,
		input:    ti,
		darkMode: cfg.DarkMode,
	}
	m.rows = eng.Rows()
	logger.Debug("TUI model initialized", logger.F("rows", len(m.rows)))
	return m
}

// currentRow returns the row under the cursor, or nil.
func (m *Model) currentRow() *engine.Row {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return &m.rows[m.cursor]
	}
	return nil
}

// setRows swaps in a fresh projection and keeps the cursor in range.
func (m *Model) setRows(rows []engine.Row) {
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// saveCollapse persists the collapse state, which lives in the config
// file rather than the task file.
func (m *Model) saveCollapse() {
	m.cfg.CollapsedSections = m.eng.CollapsedSections()
	if err := m.cfg.Save(); err != nil {
		logger.Warn("Failed to save config", logger.F("error", err))
	}
}
