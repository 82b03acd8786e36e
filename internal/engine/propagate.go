package engine

import (
	"time"

	"github.com/aaronfang/todo-app/internal/model"
)

// AutoCompleteParents marks done every main task that is not yet done,
// has at least one subtask, and whose subtasks are all done. It is run
// as a store-wide pass after a done-toggle (or a whole batch of them),
// never per toggle, so a parent is not re-completed mid-batch. Returns
// whether anything changed.
func AutoCompleteParents(records []model.Record, now time.Time) bool {
	subsByParent := make(map[string][]*model.Record)
	for i := range records {
		r := &records[i]
		if r.IsSubtask {
			subsByParent[r.ParentID] = append(subsByParent[r.ParentID], r)
		}
	}

	changed := false
	for i := range records {
		r := &records[i]
		if !r.IsMainTask() || r.Done {
			continue
		}
		subs := subsByParent[r.ID]
		if len(subs) == 0 {
			continue
		}
		allDone := true
		for _, s := range subs {
			if !s.Done {
				allDone = false
				break
			}
		}
		if allDone {
			r.MarkDone(now)
			changed = true
		}
	}
	return changed
}

// AutoUncompleteParent reopens the immediate parent of a subtask that
// just transitioned to not-done. Single hop only; there is no deeper
// hierarchy. Returns whether the parent changed.
func AutoUncompleteParent(records []model.Record, sub *model.Record) bool {
	if !sub.IsSubtask || sub.ParentID == "" {
		return false
	}
	for i := range records {
		p := &records[i]
		if p.ID == sub.ParentID && p.IsMainTask() {
			if p.Done {
				p.MarkUndone()
				return true
			}
			return false
		}
	}
	return false
}
