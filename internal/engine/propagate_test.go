package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronfang/todo-app/internal/model"
)

var propagateNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func TestAutoCompleteParents_AllSubtasksDone(t *testing.T) {
	records := []model.Record{
		task("p1", "parent"),
		{ID: "c1", Name: "one", IsSubtask: true, ParentID: "p1", Done: true},
		{ID: "c2", Name: "two", IsSubtask: true, ParentID: "p1", Done: true},
	}

	changed := AutoCompleteParents(records, propagateNow)

	assert.True(t, changed)
	assert.True(t, records[0].Done)
	assert.Equal(t, "2026-03-01 09:30", records[0].CompletedAt)
}

func TestAutoCompleteParents_OpenSubtaskBlocks(t *testing.T) {
	records := []model.Record{
		task("p1", "parent"),
		{ID: "c1", Name: "one", IsSubtask: true, ParentID: "p1", Done: true},
		subtask("c2", "p1", "still open"),
	}

	changed := AutoCompleteParents(records, propagateNow)

	assert.False(t, changed)
	assert.False(t, records[0].Done)
}

func TestAutoCompleteParents_ZeroSubtaskParentNeverAutoCompletes(t *testing.T) {
	records := []model.Record{
		task("t1", "no children"),
	}

	changed := AutoCompleteParents(records, propagateNow)

	assert.False(t, changed)
	assert.False(t, records[0].Done)
}

func TestAutoCompleteParents_SuspendsUrgent(t *testing.T) {
	records := []model.Record{
		{ID: "p1", Name: "parent", Urgent: true},
		{ID: "c1", Name: "one", IsSubtask: true, ParentID: "p1", Done: true},
	}

	AutoCompleteParents(records, propagateNow)

	assert.True(t, records[0].Done)
	assert.False(t, records[0].Urgent)
	assert.True(t, records[0].WasUrgent)
}

func TestAutoCompleteParents_SkipsAlreadyDoneParents(t *testing.T) {
	records := []model.Record{
		{ID: "p1", Name: "parent", Done: true, CompletedAt: "2026-01-01 08:00"},
		{ID: "c1", Name: "one", IsSubtask: true, ParentID: "p1", Done: true},
	}

	changed := AutoCompleteParents(records, propagateNow)

	assert.False(t, changed)
	assert.Equal(t, "2026-01-01 08:00", records[0].CompletedAt)
}

func TestAutoUncompleteParent_ReopensDoneParent(t *testing.T) {
	records := []model.Record{
		{ID: "p1", Name: "parent", Done: true, CompletedAt: "2026-01-01 08:00", WasUrgent: true},
		subtask("c1", "p1", "reopened"),
	}

	changed := AutoUncompleteParent(records, &records[1])

	assert.True(t, changed)
	assert.False(t, records[0].Done)
	assert.Empty(t, records[0].CompletedAt)
	assert.True(t, records[0].Urgent)
	assert.False(t, records[0].WasUrgent)
}

func TestAutoUncompleteParent_OpenParentUnchanged(t *testing.T) {
	records := []model.Record{
		task("p1", "parent"),
		subtask("c1", "p1", "reopened"),
	}

	assert.False(t, AutoUncompleteParent(records, &records[1]))
}

func TestAutoUncompleteParent_IgnoresNonSubtasks(t *testing.T) {
	records := []model.Record{
		task("t1", "plain"),
	}

	assert.False(t, AutoUncompleteParent(records, &records[0]))
}

func TestAutoUncompleteParent_DanglingParentRef(t *testing.T) {
	records := []model.Record{
		subtask("c1", "gone", "orphan"),
	}

	assert.False(t, AutoUncompleteParent(records, &records[0]))
}

func TestPropagation_CompleteUncompleteCycle(t *testing.T) {
	records := []model.Record{
		task("p1", "parent"),
		{ID: "c1", Name: "one", IsSubtask: true, ParentID: "p1", Done: true},
		{ID: "c2", Name: "two", IsSubtask: true, ParentID: "p1", Done: true},
	}

	require.True(t, AutoCompleteParents(records, propagateNow))
	require.True(t, records[0].Done)

	// Reopen one subtask; the parent follows immediately.
	records[1].MarkUndone()
	require.True(t, AutoUncompleteParent(records, &records[1]))
	require.False(t, records[0].Done)

	// Finish it again; the parent auto-completes again.
	records[1].MarkDone(propagateNow.Add(time.Hour))
	require.True(t, AutoCompleteParents(records, propagateNow.Add(time.Hour)))
	assert.True(t, records[0].Done)
	assert.Equal(t, "2026-03-01 10:30", records[0].CompletedAt)
}
