package cli

import (
	"fmt"
	"strings"

	"github.com/aaronfang/todo-app/internal/engine"
)

// resolveID expands a full or prefix record id to the unique matching
// record in the store.
func resolveID(eng *engine.Engine, id string) (string, error) {
	if eng.Store().Find(id) != nil {
		return id, nil
	}

	var matches []string
	for _, r := range eng.Store().Records() {
		if strings.HasPrefix(r.ID, id) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %s", id)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous id %q matches %d tasks", id, len(matches))
	}
}

// resolveIDs maps each argument through resolveID.
func resolveIDs(eng *engine.Engine, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		full, err := resolveID(eng, id)
		if err != nil {
			return nil, err
		}
		out = append(out, full)
	}
	return out, nil
}
