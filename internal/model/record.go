package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the persisted completion-time format. Lexicographic
// order of these strings is chronological order, which the projector
// relies on when sorting settled tasks.
const TimeLayout = "2006-01-02 15:04"

// DateLayout is the persisted deadline format.
const DateLayout = "2006-01-02"

// Record is a single persisted entry in the flat task list: a main
// task, a subtask, or a section separator. The synthetic completed
// header is deliberately not representable here; it lives only in the
// projected view (see the engine package).
type Record struct {
	ID          string `json:"task_id"`
	Name        string `json:"name"`
	Done        bool   `json:"done"`
	Cancelled   bool   `json:"cancelled"`
	Urgent      bool   `json:"urgent"`
	WasUrgent   bool   `json:"was_urgent"`
	Separator   bool   `json:"separator"`
	HasTitle    bool   `json:"title"`
	CompletedAt string `json:"completed_time"`
	Deadline    string `json:"deadline"`
	CustomColor string `json:"custom_bg_color"`
	IsSubtask   bool   `json:"is_subtask"`
	ParentID    string `json:"parent_task_id"`

	// LegacyParent carries the pre-migration parent reference from old
	// task files. It is rewritten to ParentID (or discarded) by the
	// identity migration and never written back.
	LegacyParent any `json:"parent_id,omitempty"`
}

// NewTask creates a main task with a fresh id.
func NewTask(name string) Record {
	return Record{
		ID:   uuid.New().String(),
		Name: name,
	}
}

// NewSubtask creates a subtask of the given parent.
func NewSubtask(parentID, name string) Record {
	return Record{
		ID:        uuid.New().String(),
		Name:      name,
		IsSubtask: true,
		ParentID:  parentID,
	}
}

// NewSeparator creates a section separator. A non-empty title is
// upper-cased and stored as the separator's name.
func NewSeparator(title string) Record {
	title = strings.TrimSpace(title)
	r := Record{
		ID:        uuid.New().String(),
		Separator: true,
	}
	if title != "" {
		r.Name = strings.ToUpper(title)
		r.HasTitle = true
	}
	return r
}

// IsTask reports whether the record is a task (main or sub).
func (r *Record) IsTask() bool { return !r.Separator }

// IsMainTask reports whether the record is a task with no parent.
func (r *Record) IsMainTask() bool { return !r.Separator && !r.IsSubtask }

// Settled reports whether the record belongs in a section's completed
// block. Subtask state never decides this on its own; the projector
// asks the cluster's parent.
func (r *Record) Settled() bool { return r.Done || r.Cancelled }

// MarkDone completes the task at the given time. An urgent flag is
// suspended into WasUrgent so reopening restores it.
func (r *Record) MarkDone(now time.Time) {
	r.Done = true
	r.CompletedAt = now.Format(TimeLayout)
	if r.Urgent {
		r.WasUrgent = true
		r.Urgent = false
	}
}

// MarkUndone reopens the task, clearing the completion time and
// restoring a suspended urgent flag.
func (r *Record) MarkUndone() {
	r.Done = false
	r.CompletedAt = ""
	if r.WasUrgent {
		r.Urgent = true
		r.WasUrgent = false
	}
}

// ToggleDone flips the done state with the MarkDone/MarkUndone rules.
func (r *Record) ToggleDone(now time.Time) {
	if r.Done {
		r.MarkUndone()
	} else {
		r.MarkDone(now)
	}
}

// ToggleCancelled flips the cancelled state. Cancelling clears the
// urgent flag, including one suspended by MarkDone; un-cancelling does
// not bring it back.
func (r *Record) ToggleCancelled() {
	r.Cancelled = !r.Cancelled
	if r.Cancelled {
		r.Urgent = false
		r.WasUrgent = false
	}
}

// ToggleUrgent flips the urgent flag.
func (r *Record) ToggleUrgent() {
	r.Urgent = !r.Urgent
}

// SetTitle sets or clears a separator's title. Empty text turns the
// separator back into a plain rule.
func (r *Record) SetTitle(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		r.Name = ""
		r.HasTitle = false
		return
	}
	r.Name = strings.ToUpper(title)
	r.HasTitle = true
}

// DeadlineDate parses the deadline, if any.
func (r *Record) DeadlineDate() (time.Time, bool) {
	if r.Deadline == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, r.Deadline)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
