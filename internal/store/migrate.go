package store

import (
	"fmt"
	"strings"

	"github.com/aaronfang/todo-app/internal/model"
	"github.com/google/uuid"
)

// Migrate repairs a freshly loaded record list so that every record
// has a stable id and every subtask reference is id-based and
// resolvable. It returns the repaired list and whether anything
// changed (in which case the caller must persist once).
//
// Running Migrate twice over the same input is a no-op the second
// time.
func Migrate(records []model.Record) ([]model.Record, bool) {
	changed := false

	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.New().String()
			changed = true
		}
	}

	// Main-task ids, collected by the same positional scan that
	// assigned the ids above. Legacy parent references can only
	// resolve against this set.
	mains := make(map[string]bool, len(records))
	for i := range records {
		if records[i].IsMainTask() {
			mains[records[i].ID] = true
		}
	}

	for i := range records {
		r := &records[i]

		if r.LegacyParent != nil {
			ref := fmt.Sprint(r.LegacyParent)
			if mains[ref] {
				r.ParentID = ref
			} else {
				r.IsSubtask = false
				r.ParentID = ""
			}
			r.LegacyParent = nil
			changed = true
		}

		// Dangling subtask references are demoted rather than kept
		// pointing nowhere.
		if r.IsSubtask && !mains[r.ParentID] {
			r.IsSubtask = false
			r.ParentID = ""
			changed = true
		}

		if r.Separator {
			if name := normalizeSeparatorName(r.Name); name != r.Name {
				r.Name = name
				r.HasTitle = name != ""
				changed = true
			}
		}
	}

	return records, changed
}

// normalizeSeparatorName strips the decorated rule characters old task
// files embedded in separator names ("── TITLE ──────" or a bare
// rule), leaving just the title text.
func normalizeSeparatorName(name string) string {
	if !strings.ContainsRune(name, '─') {
		return name
	}
	return strings.TrimSpace(strings.Trim(name, "─"))
}
