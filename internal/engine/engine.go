package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/aaronfang/todo-app/internal/logger"
	"github.com/aaronfang/todo-app/internal/model"
	"github.com/aaronfang/todo-app/internal/store"
)

// SeparatorPrefix in an add-task input creates a separator instead of
// a task; the remaining text becomes the section title.
const SeparatorPrefix = "---"

// Engine owns the mutation command surface. Every command applies its
// change to the store, runs completion propagation where the change
// calls for it, persists, and hands back the fresh projection. A
// command that changes nothing reports applied == false and leaves the
// store untouched.
type Engine struct {
	store     *store.Store
	collapsed map[int]bool
	now       func() time.Time
}

// New creates an engine over the store, seeding the collapsed-section
// set from the persisted config.
func New(s *store.Store, collapsedSections []int) *Engine {
	return NewWithClock(s, collapsedSections, time.Now)
}

// NewWithClock is New with an injectable clock.
func NewWithClock(s *store.Store, collapsedSections []int, now func() time.Time) *Engine {
	collapsed := make(map[int]bool, len(collapsedSections))
	for _, id := range collapsedSections {
		collapsed[id] = true
	}
	return &Engine{store: s, collapsed: collapsed, now: now}
}

// Store exposes the underlying record store.
func (e *Engine) Store() *store.Store { return e.store }

// Rows projects the current store state.
func (e *Engine) Rows() []Row {
	return Project(e.store.Records(), e.collapsed)
}

// CollapsedSections returns the collapsed section ids, sorted, for
// persisting in the config file.
func (e *Engine) CollapsedSections() []int {
	ids := make([]int, 0, len(e.collapsed))
	for id, on := range e.collapsed {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// persist flushes the store. Write failures are logged and otherwise
// ignored; the in-memory state stays authoritative for the session.
func (e *Engine) persist() {
	if err := e.store.Save(); err != nil {
		logger.Error("Failed to save tasks", logger.F("error", err))
	}
}

func (e *Engine) applied() ([]Row, bool) {
	e.persist()
	return e.Rows(), true
}

func (e *Engine) noop() ([]Row, bool) {
	return e.Rows(), false
}

// AddTask appends a task from raw input. Blank input is a no-op. Input
// starting with "---" creates a separator; any remaining text becomes
// the upper-cased section title.
func (e *Engine) AddTask(text string) ([]Row, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return e.noop()
	}
	if title, ok := strings.CutPrefix(text, SeparatorPrefix); ok {
		e.store.Append(model.NewSeparator(title))
	} else {
		e.store.Append(model.NewTask(text))
	}
	return e.applied()
}

// AddSeparatorBelow inserts an untitled separator right after the
// given record.
func (e *Engine) AddSeparatorBelow(id string) ([]Row, bool) {
	i := e.store.Index(id)
	if i < 0 {
		return e.noop()
	}
	e.store.InsertAt(i+1, model.NewSeparator(""))
	return e.applied()
}

// AddSubtask inserts a new subtask after the parent's last existing
// subtask (or directly after the parent), keeping the cluster
// contiguous. Rejected when the parent is missing, a separator, or
// itself a subtask; subtasks do not nest.
func (e *Engine) AddSubtask(parentID, text string) ([]Row, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return e.noop()
	}
	parentIdx := e.store.Index(parentID)
	if parentIdx < 0 {
		return e.noop()
	}
	parent := e.store.Records()[parentIdx]
	if parent.Separator || parent.IsSubtask {
		return e.noop()
	}

	records := e.store.Records()
	insertAt := parentIdx + 1
	for i := parentIdx + 1; i < len(records); i++ {
		if !records[i].IsSubtask {
			break
		}
		if records[i].ParentID == parentID {
			insertAt = i + 1
		}
	}

	e.store.InsertAt(insertAt, model.NewSubtask(parentID, text))
	return e.applied()
}

// ToggleDone flips a single task's done state, with the same
// propagation ordering as a one-element batch.
func (e *Engine) ToggleDone(id string) ([]Row, bool) {
	return e.ToggleDoneBatch([]string{id})
}

// ToggleDoneBatch flips the done state of each listed task. A subtask
// reopening uncompletes its parent immediately; the auto-complete pass
// runs once over the whole store after the batch so a parent is not
// re-completed mid-batch. Separators and unknown ids are skipped.
func (e *Engine) ToggleDoneBatch(ids []string) ([]Row, bool) {
	now := e.now()
	changed := false
	for _, id := range ids {
		r := e.store.Find(id)
		if r == nil || r.Separator {
			continue
		}
		r.ToggleDone(now)
		changed = true
		if r.IsSubtask && !r.Done {
			AutoUncompleteParent(e.store.Records(), r)
		}
	}
	if !changed {
		return e.noop()
	}
	AutoCompleteParents(e.store.Records(), now)
	return e.applied()
}

// ToggleCancelled flips a task's cancelled state. Cancelling drops the
// urgent flag for good.
func (e *Engine) ToggleCancelled(id string) ([]Row, bool) {
	return e.ToggleCancelledBatch([]string{id})
}

// ToggleCancelledBatch flips the cancelled state of each listed task.
func (e *Engine) ToggleCancelledBatch(ids []string) ([]Row, bool) {
	changed := false
	for _, id := range ids {
		r := e.store.Find(id)
		if r == nil || r.Separator {
			continue
		}
		r.ToggleCancelled()
		changed = true
	}
	if !changed {
		return e.noop()
	}
	return e.applied()
}

// ToggleUrgent flips a task's urgent flag. Cancelled tasks stay
// non-urgent.
func (e *Engine) ToggleUrgent(id string) ([]Row, bool) {
	return e.ToggleUrgentBatch([]string{id})
}

// ToggleUrgentBatch flips the urgent flag of each listed task.
func (e *Engine) ToggleUrgentBatch(ids []string) ([]Row, bool) {
	changed := false
	for _, id := range ids {
		r := e.store.Find(id)
		if r == nil || r.Separator || r.Cancelled {
			continue
		}
		r.ToggleUrgent()
		changed = true
	}
	if !changed {
		return e.noop()
	}
	return e.applied()
}

// Rename changes a task's name. Blank input and separators are no-ops;
// separators are renamed through SetSeparatorTitle.
func (e *Engine) Rename(id, text string) ([]Row, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return e.noop()
	}
	r := e.store.Find(id)
	if r == nil || r.Separator {
		return e.noop()
	}
	r.Name = text
	return e.applied()
}

// SetSeparatorTitle sets or clears a separator's title. Blank text
// turns a titled separator back into a plain rule.
func (e *Engine) SetSeparatorTitle(id, text string) ([]Row, bool) {
	r := e.store.Find(id)
	if r == nil || !r.Separator {
		return e.noop()
	}
	r.SetTitle(text)
	return e.applied()
}

// Remove deletes a record. Subtasks of a removed parent are not
// cascaded; they stay in the store and are demoted by the next load's
// migration.
func (e *Engine) Remove(id string) ([]Row, bool) {
	if !e.store.Remove(id) {
		return e.noop()
	}
	return e.applied()
}

// SetDeadline sets a task's deadline from a YYYY-MM-DD string. Blank
// clears it; a malformed date is a no-op. Separators have no
// deadlines.
func (e *Engine) SetDeadline(id, date string) ([]Row, bool) {
	r := e.store.Find(id)
	if r == nil || r.Separator {
		return e.noop()
	}
	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := time.Parse(model.DateLayout, date); err != nil {
			return e.noop()
		}
	}
	r.Deadline = date
	return e.applied()
}

// SetColor sets a main task's custom background color. Blank clears
// it; anything that is not a 3- or 6-digit hex code is a no-op. The
// leading '#' may be omitted. Separators and subtasks have no custom
// color.
func (e *Engine) SetColor(id, color string) ([]Row, bool) {
	r := e.store.Find(id)
	if r == nil || r.Separator || r.IsSubtask {
		return e.noop()
	}
	color = strings.TrimSpace(color)
	if color == "" {
		r.CustomColor = ""
		return e.applied()
	}
	normalized, ok := normalizeHexColor(color)
	if !ok {
		return e.noop()
	}
	r.CustomColor = normalized
	return e.applied()
}

// Reorder moves a record to sit immediately before another; an empty
// beforeID moves it to the end. The engine does not repair
// parent/child contiguity after a manual move.
func (e *Engine) Reorder(id, beforeID string) ([]Row, bool) {
	if id == beforeID {
		return e.noop()
	}
	if !e.store.MoveBefore(id, beforeID) {
		return e.noop()
	}
	return e.applied()
}

// ToggleSectionCollapse folds or unfolds a section's completed block.
// Pure view state; the store is not written, and the caller persists
// the collapsed set in the config file.
func (e *Engine) ToggleSectionCollapse(sectionID int) []Row {
	if e.collapsed[sectionID] {
		delete(e.collapsed, sectionID)
	} else {
		e.collapsed[sectionID] = true
	}
	return e.Rows()
}

// PruneCollapsed drops collapse state for sections that no longer have
// a settled block, typically on shutdown before the config is saved.
func (e *Engine) PruneCollapsed() {
	live := SettledSectionIDs(e.store.Records())
	for id := range e.collapsed {
		if !live[id] {
			delete(e.collapsed, id)
		}
	}
}

// Stats summarizes the store for headers and titles. Done and Total
// count main tasks only, excluding cancelled ones; Urgent counts every
// urgent record.
type Stats struct {
	Done   int
	Total  int
	Urgent int
}

// Stats computes the current summary.
func (e *Engine) Stats() Stats {
	var st Stats
	for _, r := range e.store.Records() {
		if r.Urgent {
			st.Urgent++
		}
		if !r.IsMainTask() || r.Cancelled {
			continue
		}
		st.Total++
		if r.Done {
			st.Done++
		}
	}
	return st
}

func normalizeHexColor(color string) (string, bool) {
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	hex := color[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return "", false
	}
	for _, c := range hex {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return "", false
		}
	}
	return color, true
}
