package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aaronfang/todo-app/internal/model"
)

// Adapter loads and saves the whole flat record list. Saves are
// whole-store overwrites; there is exactly one writer process.
type Adapter interface {
	Load() ([]model.Record, error)
	Save([]model.Record) error
}

// Store owns the flat ordered record list. It is the single source of
// truth; the view the user sees is always derived from it.
type Store struct {
	adapter Adapter
	records []model.Record
}

// DefaultDir returns the application data directory (~/.todoapp).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".todoapp"), nil
}

// Open loads the store through the adapter and runs the identity
// migration. If the migration changed anything, the repaired store is
// flushed once before first use.
func Open(a Adapter) (*Store, error) {
	records, err := a.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	records, changed := Migrate(records)
	s := &Store{adapter: a, records: records}
	if changed {
		if err := s.Save(); err != nil {
			return nil, fmt.Errorf("failed to persist migrated tasks: %w", err)
		}
	}
	return s, nil
}

// Save writes the current record list through the adapter.
func (s *Store) Save() error {
	return s.adapter.Save(s.records)
}

// Records returns the live backing slice. Callers may mutate record
// fields in place; structural changes go through the Store methods.
func (s *Store) Records() []model.Record {
	return s.records
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Find returns the record with the given id, or nil.
func (s *Store) Find(id string) *model.Record {
	if i := s.Index(id); i >= 0 {
		return &s.records[i]
	}
	return nil
}

// Index returns the position of the record with the given id, or -1.
func (s *Store) Index(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// Append adds a record to the end of the list.
func (s *Store) Append(r model.Record) {
	s.records = append(s.records, r)
}

// InsertAt inserts a record at position i. Out-of-range positions
// clamp to the list ends.
func (s *Store) InsertAt(i int, r model.Record) {
	if i < 0 {
		i = 0
	}
	if i > len(s.records) {
		i = len(s.records)
	}
	s.records = append(s.records, model.Record{})
	copy(s.records[i+1:], s.records[i:])
	s.records[i] = r
}

// Remove deletes the record with the given id. It reports whether a
// record was removed. Subtasks of a removed parent are left in place.
func (s *Store) Remove(id string) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return true
}

// MoveBefore moves the record with id to sit immediately before the
// record with beforeID. An empty beforeID moves it to the end. The
// store does not repair parent/child contiguity after a manual move;
// the resolver tolerates the resulting order.
func (s *Store) MoveBefore(id, beforeID string) bool {
	from := s.Index(id)
	if from < 0 {
		return false
	}
	r := s.records[from]
	s.records = append(s.records[:from], s.records[from+1:]...)

	to := len(s.records)
	if beforeID != "" {
		if i := s.Index(beforeID); i >= 0 {
			to = i
		}
	}
	s.InsertAt(to, r)
	return true
}
