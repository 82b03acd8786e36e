package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aaronfang/todo-app/internal/logger"
	"github.com/aaronfang/todo-app/internal/model"
)

// JSONFile persists the record list as a single JSON document, one
// object per record. This is the canonical on-disk format and is
// readable by (and from) older versions of the app.
type JSONFile struct {
	Path string
}

// DefaultTaskFile returns the default task file path
// (~/.todoapp/tasks.json).
func DefaultTaskFile() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tasks.json"), nil
}

// Load reads the task file. A missing or malformed file yields an
// empty store; neither is fatal.
func (f *JSONFile) Load() ([]model.Record, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("Task file is malformed, starting empty",
			logger.F("path", f.Path), logger.F("error", err))
		return []model.Record{}, nil
	}
	return records, nil
}

// Save overwrites the task file with the given records. The write goes
// through a temp file and rename so a crash never leaves a truncated
// document behind.
func (f *JSONFile) Save(records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create task directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write task file: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("failed to replace task file: %w", err)
	}
	return nil
}
