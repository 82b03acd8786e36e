package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronfang/todo-app/internal/model"
	"github.com/aaronfang/todo-app/internal/store"
)

type memAdapter struct {
	records []model.Record
	saves   int
}

func (m *memAdapter) Load() ([]model.Record, error) { return m.records, nil }

func (m *memAdapter) Save(records []model.Record) error {
	m.records = append([]model.Record(nil), records...)
	m.saves++
	return nil
}

var engineNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func newEngine(t *testing.T, records ...model.Record) (*Engine, *memAdapter) {
	t.Helper()
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = records[i].Name
		}
	}
	adapter := &memAdapter{records: records}
	s, err := store.Open(adapter)
	require.NoError(t, err)
	adapter.saves = 0
	return NewWithClock(s, nil, func() time.Time { return engineNow }), adapter
}

func find(t *testing.T, e *Engine, id string) *model.Record {
	t.Helper()
	r := e.Store().Find(id)
	require.NotNil(t, r)
	return r
}

func TestEngine_AddTask(t *testing.T) {
	e, adapter := newEngine(t)

	rows, applied := e.AddTask("  Buy milk  ")

	assert.True(t, applied)
	require.Len(t, rows, 1)
	assert.Equal(t, "Buy milk", rows[0].Record.Name)
	assert.NotEmpty(t, rows[0].Record.ID)
	assert.Equal(t, 1, adapter.saves)
}

func TestEngine_AddTaskBlankIsNoop(t *testing.T) {
	e, adapter := newEngine(t)

	rows, applied := e.AddTask("   ")

	assert.False(t, applied)
	assert.Empty(t, rows)
	assert.Zero(t, adapter.saves)
}

func TestEngine_AddTaskSeparatorPrefix(t *testing.T) {
	e, _ := newEngine(t)

	rows, applied := e.AddTask("--- work items")

	assert.True(t, applied)
	require.Len(t, rows, 1)
	sep := rows[0].Record
	assert.True(t, sep.Separator)
	assert.True(t, sep.HasTitle)
	assert.Equal(t, "WORK ITEMS", sep.Name)
}

func TestEngine_AddTaskBareDashesMakesUntitledSeparator(t *testing.T) {
	e, _ := newEngine(t)

	rows, applied := e.AddTask("---")

	assert.True(t, applied)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Record.Separator)
	assert.False(t, rows[0].Record.HasTitle)
}

func TestEngine_AddSeparatorBelow(t *testing.T) {
	e, _ := newEngine(t, task("t1", "first"), task("t2", "second"))

	_, applied := e.AddSeparatorBelow("t1")

	assert.True(t, applied)
	records := e.Store().Records()
	require.Len(t, records, 3)
	assert.True(t, records[1].Separator)

	_, applied = e.AddSeparatorBelow("missing")
	assert.False(t, applied)
}

func TestEngine_AddSubtaskKeepsClusterContiguous(t *testing.T) {
	e, _ := newEngine(t,
		task("p1", "parent"),
		subtask("c1", "p1", "existing"),
		task("t1", "after"),
	)

	_, applied := e.AddSubtask("p1", "new step")

	assert.True(t, applied)
	records := e.Store().Records()
	require.Len(t, records, 4)
	assert.Equal(t, "new step", records[2].Name)
	assert.True(t, records[2].IsSubtask)
	assert.Equal(t, "p1", records[2].ParentID)
	assert.Equal(t, "t1", records[3].ID)
}

func TestEngine_AddSubtaskRejections(t *testing.T) {
	e, _ := newEngine(t,
		task("p1", "parent"),
		subtask("c1", "p1", "child"),
		separator("s1", ""),
	)

	_, applied := e.AddSubtask("missing", "x")
	assert.False(t, applied)

	_, applied = e.AddSubtask("s1", "x")
	assert.False(t, applied)

	// Subtasks do not nest.
	_, applied = e.AddSubtask("c1", "x")
	assert.False(t, applied)

	_, applied = e.AddSubtask("p1", "   ")
	assert.False(t, applied)
}

func TestEngine_ToggleDoneCompletesTask(t *testing.T) {
	e, _ := newEngine(t, task("t1", "buy milk"))

	_, applied := e.ToggleDone("t1")

	assert.True(t, applied)
	r := find(t, e, "t1")
	assert.True(t, r.Done)
	assert.Equal(t, "2026-03-01 09:30", r.CompletedAt)

	_, applied = e.ToggleDone("t1")
	assert.True(t, applied)
	r = find(t, e, "t1")
	assert.False(t, r.Done)
	assert.Empty(t, r.CompletedAt)
}

func TestEngine_ToggleDoneSkipsSeparatorsAndUnknown(t *testing.T) {
	e, adapter := newEngine(t, separator("s1", ""))

	_, applied := e.ToggleDoneBatch([]string{"s1", "missing"})

	assert.False(t, applied)
	assert.Zero(t, adapter.saves)
}

func TestEngine_LastSubtaskDoneAutoCompletesParent(t *testing.T) {
	e, _ := newEngine(t,
		task("p1", "parent"),
		model.Record{ID: "c1", Name: "one", IsSubtask: true, ParentID: "p1", Done: true, CompletedAt: "2026-03-01 08:00"},
		subtask("c2", "p1", "two"),
	)

	_, applied := e.ToggleDone("c2")

	assert.True(t, applied)
	assert.True(t, find(t, e, "p1").Done)
}

func TestEngine_ReopeningSubtaskReopensParent(t *testing.T) {
	e, _ := newEngine(t,
		model.Record{ID: "p1", Name: "parent", Done: true, CompletedAt: "2026-03-01 08:05"},
		model.Record{ID: "c1", Name: "one", IsSubtask: true, ParentID: "p1", Done: true, CompletedAt: "2026-03-01 08:00"},
	)

	_, applied := e.ToggleDone("c1")

	assert.True(t, applied)
	assert.False(t, find(t, e, "c1").Done)
	assert.False(t, find(t, e, "p1").Done)
}

func TestEngine_BatchReopenDoesNotRecompleteParent(t *testing.T) {
	e, _ := newEngine(t,
		model.Record{ID: "p1", Name: "parent", Done: true, CompletedAt: "2026-03-01 08:05"},
		model.Record{ID: "c1", Name: "one", IsSubtask: true, ParentID: "p1", Done: true, CompletedAt: "2026-03-01 08:00"},
		model.Record{ID: "c2", Name: "two", IsSubtask: true, ParentID: "p1", Done: true, CompletedAt: "2026-03-01 08:01"},
	)

	_, applied := e.ToggleDoneBatch([]string{"c1", "c2"})

	assert.True(t, applied)
	assert.False(t, find(t, e, "c1").Done)
	assert.False(t, find(t, e, "c2").Done)
	assert.False(t, find(t, e, "p1").Done)
}

func TestEngine_ToggleCancelledClearsUrgent(t *testing.T) {
	e, _ := newEngine(t, model.Record{ID: "t1", Name: "risky", Urgent: true})

	_, applied := e.ToggleCancelled("t1")

	assert.True(t, applied)
	r := find(t, e, "t1")
	assert.True(t, r.Cancelled)
	assert.False(t, r.Urgent)

	// Un-cancelling does not bring urgency back.
	_, applied = e.ToggleCancelled("t1")
	assert.True(t, applied)
	r = find(t, e, "t1")
	assert.False(t, r.Cancelled)
	assert.False(t, r.Urgent)
}

func TestEngine_CancelledTaskNeverUrgentAcrossReopen(t *testing.T) {
	e, _ := newEngine(t, task("t1", "volatile"))

	e.ToggleUrgent("t1")
	e.ToggleDone("t1")
	e.ToggleCancelled("t1")
	e.ToggleDone("t1")

	r := find(t, e, "t1")
	assert.True(t, r.Cancelled)
	assert.False(t, r.Urgent)
	assert.False(t, r.WasUrgent)
}

func TestEngine_ToggleUrgentSkipsCancelled(t *testing.T) {
	e, _ := newEngine(t,
		task("t1", "plain"),
		model.Record{ID: "t2", Name: "dropped", Cancelled: true},
	)

	_, applied := e.ToggleUrgent("t1")
	assert.True(t, applied)
	assert.True(t, find(t, e, "t1").Urgent)

	_, applied = e.ToggleUrgent("t2")
	assert.False(t, applied)
	assert.False(t, find(t, e, "t2").Urgent)
}

func TestEngine_Rename(t *testing.T) {
	e, _ := newEngine(t, task("t1", "old"), separator("s1", "WORK"))

	_, applied := e.Rename("t1", "  new name  ")
	assert.True(t, applied)
	assert.Equal(t, "new name", find(t, e, "t1").Name)

	_, applied = e.Rename("t1", "   ")
	assert.False(t, applied)

	_, applied = e.Rename("s1", "other")
	assert.False(t, applied)
	assert.Equal(t, "WORK", find(t, e, "s1").Name)
}

func TestEngine_SetSeparatorTitle(t *testing.T) {
	e, _ := newEngine(t, separator("s1", ""), task("t1", "task"))

	_, applied := e.SetSeparatorTitle("s1", "inbox")
	assert.True(t, applied)
	r := find(t, e, "s1")
	assert.Equal(t, "INBOX", r.Name)
	assert.True(t, r.HasTitle)

	_, applied = e.SetSeparatorTitle("s1", "")
	assert.True(t, applied)
	r = find(t, e, "s1")
	assert.Empty(t, r.Name)
	assert.False(t, r.HasTitle)

	_, applied = e.SetSeparatorTitle("t1", "x")
	assert.False(t, applied)
}

func TestEngine_RemoveLeavesSubtasksInStore(t *testing.T) {
	e, _ := newEngine(t,
		task("p1", "parent"),
		subtask("c1", "p1", "child"),
	)

	rows, applied := e.Remove("p1")

	assert.True(t, applied)
	// The orphan stays in the store but drops out of the view.
	assert.Equal(t, 1, e.Store().Len())
	assert.Empty(t, rows)

	_, applied = e.Remove("missing")
	assert.False(t, applied)
}

func TestEngine_SetDeadline(t *testing.T) {
	e, _ := newEngine(t, task("t1", "task"), separator("s1", ""))

	_, applied := e.SetDeadline("t1", "2026-04-01")
	assert.True(t, applied)
	assert.Equal(t, "2026-04-01", find(t, e, "t1").Deadline)

	_, applied = e.SetDeadline("t1", "not-a-date")
	assert.False(t, applied)
	assert.Equal(t, "2026-04-01", find(t, e, "t1").Deadline)

	_, applied = e.SetDeadline("t1", "")
	assert.True(t, applied)
	assert.Empty(t, find(t, e, "t1").Deadline)

	_, applied = e.SetDeadline("s1", "2026-04-01")
	assert.False(t, applied)
}

func TestEngine_SetColor(t *testing.T) {
	e, _ := newEngine(t,
		task("t1", "task"),
		subtask("c1", "t1", "child"),
	)

	_, applied := e.SetColor("t1", "2C3E50")
	assert.True(t, applied)
	assert.Equal(t, "#2C3E50", find(t, e, "t1").CustomColor)

	_, applied = e.SetColor("t1", "#abc")
	assert.True(t, applied)
	assert.Equal(t, "#abc", find(t, e, "t1").CustomColor)

	_, applied = e.SetColor("t1", "#12345")
	assert.False(t, applied)

	_, applied = e.SetColor("t1", "zzzzzz")
	assert.False(t, applied)

	_, applied = e.SetColor("c1", "#abc")
	assert.False(t, applied)

	_, applied = e.SetColor("t1", "")
	assert.True(t, applied)
	assert.Empty(t, find(t, e, "t1").CustomColor)
}

func TestEngine_Reorder(t *testing.T) {
	e, _ := newEngine(t, task("a", "a"), task("b", "b"), task("c", "c"))

	_, applied := e.Reorder("c", "a")
	assert.True(t, applied)
	assert.Equal(t, 0, e.Store().Index("c"))

	_, applied = e.Reorder("c", "")
	assert.True(t, applied)
	assert.Equal(t, 2, e.Store().Index("c"))

	_, applied = e.Reorder("a", "a")
	assert.False(t, applied)

	_, applied = e.Reorder("missing", "a")
	assert.False(t, applied)
}

func TestEngine_CollapseToggleAndPrune(t *testing.T) {
	e, adapter := newEngine(t,
		doneTask("t1", "shipped", "2026-03-01 08:00"),
		separator("s1", ""),
		task("t2", "open"),
	)

	rows := e.ToggleSectionCollapse(0)
	require.Equal(t, RowCompletedHeader, rows[0].Kind)
	assert.True(t, rows[0].Collapsed)
	assert.Equal(t, []int{0}, e.CollapsedSections())
	// Collapse is view state only.
	assert.Zero(t, adapter.saves)

	// Section 1 never had a settled block; its stale state is pruned.
	e.ToggleSectionCollapse(1)
	e.PruneCollapsed()
	assert.Equal(t, []int{0}, e.CollapsedSections())

	rows = e.ToggleSectionCollapse(0)
	assert.False(t, rows[0].Collapsed)
	assert.Empty(t, e.CollapsedSections())
}

func TestEngine_CollapsedSectionsSeededFromConfig(t *testing.T) {
	adapter := &memAdapter{records: []model.Record{
		doneTask("t1", "shipped", "2026-03-01 08:00"),
	}}
	s, err := store.Open(adapter)
	require.NoError(t, err)

	e := New(s, []int{2, 0})

	assert.Equal(t, []int{0, 2}, e.CollapsedSections())
}

func TestEngine_Stats(t *testing.T) {
	e, _ := newEngine(t,
		doneTask("t1", "shipped", "2026-03-01 08:00"),
		task("t2", "open"),
		model.Record{ID: "t3", Name: "dropped", Cancelled: true},
		model.Record{ID: "c1", Name: "child", IsSubtask: true, ParentID: "t2", Urgent: true},
		separator("s1", ""),
	)

	st := e.Stats()

	assert.Equal(t, 1, st.Done)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Urgent)
}

func TestNormalizeHexColor(t *testing.T) {
	for in, want := range map[string]string{
		"#2C3E50": "#2C3E50",
		"2C3E50":  "#2C3E50",
		"abc":     "#abc",
		"#ABC":    "#ABC",
	} {
		got, ok := normalizeHexColor(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"#12", "#12345", "#1234567", "ghijkl", "#"} {
		_, ok := normalizeHexColor(in)
		assert.False(t, ok, in)
	}
}
