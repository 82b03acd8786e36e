package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronfang/todo-app/internal/model"
)

func jsonAdapter(t *testing.T) *JSONFile {
	t.Helper()
	return &JSONFile{Path: filepath.Join(t.TempDir(), "tasks.json")}
}

func TestJSONFile_MissingFileIsEmptyStore(t *testing.T) {
	records, err := jsonAdapter(t).Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSONFile_MalformedFileIsEmptyStore(t *testing.T) {
	f := jsonAdapter(t)
	require.NoError(t, os.WriteFile(f.Path, []byte("{not json"), 0644))

	records, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSONFile_RoundTrip(t *testing.T) {
	f := jsonAdapter(t)
	in := []model.Record{
		{ID: "t1", Name: "task", Done: true, CompletedAt: "2026-01-02 10:00", Urgent: false, WasUrgent: true},
		{ID: "s1", Separator: true, HasTitle: true, Name: "WORK"},
		{ID: "t2", Name: "sub", IsSubtask: true, ParentID: "t1", Deadline: "2026-02-01", CustomColor: "#2C3E50"},
	}

	require.NoError(t, f.Save(in))
	out, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestJSONFile_SaveNilWritesEmptyList(t *testing.T) {
	f := jsonAdapter(t)
	require.NoError(t, f.Save(nil))

	data, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	out, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestJSONFile_LegacyFieldsSurviveLoad(t *testing.T) {
	f := jsonAdapter(t)
	legacy := `[
        {"name": "parent", "task_id": "p1"},
        {"name": "sub", "is_subtask": true, "parent_id": "p1"}
    ]`
	require.NoError(t, os.WriteFile(f.Path, []byte(legacy), 0644))

	records, err := f.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "p1", records[1].LegacyParent)

	// The migration consumes the legacy field; nothing writes it back.
	migrated, changed := Migrate(records)
	assert.True(t, changed)
	require.NoError(t, f.Save(migrated))

	data, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"parent_id"`)
	assert.Contains(t, string(data), `"parent_task_id": "p1"`)
}
