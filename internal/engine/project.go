package engine

import (
	"sort"

	"github.com/aaronfang/todo-app/internal/model"
)

// RowKind discriminates the projected row variants.
type RowKind int

const (
	RowTask RowKind = iota
	RowSeparator
	RowCompletedHeader
)

// Row is one line of the derived view. Rows are rebuilt on every
// projection and never persisted; in particular the completed header
// exists only here, never in the store.
type Row struct {
	Kind   RowKind
	Record *model.Record // task and separator rows

	// Task rows.
	Indent   int  // 1 for subtasks
	AltShade bool // alternating background, keyed to the main-task ordinal

	// Completed-header rows.
	SectionID int
	DoneCount int // settled main tasks only, subtasks excluded
	Collapsed bool
}

// Project derives the display row sequence from the flat store and
// the set of collapsed section ids. Per section (a maximal run of
// records between separators): active clusters first in store order,
// then a completed header and the settled clusters sorted by the
// parent's completion time. Section ids are ordinal positions in
// document order; they shift when separators are added or removed.
func Project(records []model.Record, collapsed map[int]bool) []Row {
	var rows []Row

	sectionID := 0
	mainCount := 0
	var active, settled []Cluster

	emitCluster := func(c Cluster, subs []*model.Record) {
		mainCount++
		rows = append(rows, Row{
			Kind:     RowTask,
			Record:   c.Parent,
			AltShade: mainCount%2 == 0,
		})
		for _, s := range subs {
			rows = append(rows, Row{
				Kind:     RowTask,
				Record:   s,
				Indent:   1,
				AltShade: mainCount%2 == 0,
			})
		}
	}

	flush := func(sep *model.Record) {
		for _, c := range active {
			emitCluster(c, c.Subtasks)
		}
		if len(settled) > 0 {
			sortSettled(settled)
			rows = append(rows, Row{
				Kind:      RowCompletedHeader,
				SectionID: sectionID,
				DoneCount: len(settled),
				Collapsed: collapsed[sectionID],
			})
			if !collapsed[sectionID] {
				for _, c := range settled {
					emitCluster(c, sortedByCompletion(c.Subtasks))
				}
			}
		}
		if sep != nil {
			rows = append(rows, Row{Kind: RowSeparator, Record: sep})
		}
		active, settled = nil, nil
		sectionID++
	}

	for _, c := range GroupByParent(records) {
		if c.Parent.Separator {
			flush(c.Parent)
			continue
		}
		if c.Settled() {
			settled = append(settled, c)
		} else {
			active = append(active, c)
		}
	}
	flush(nil)

	return rows
}

// sortSettled orders settled clusters by the parent's completion time.
// The timestamps compare lexicographically; a cancelled parent that
// was never completed has an empty timestamp and sorts first.
func sortSettled(clusters []Cluster) {
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Parent.CompletedAt < clusters[j].Parent.CompletedAt
	})
}

// sortedByCompletion returns the subtasks reordered by their own
// completion time, leaving the resolver's slice untouched.
func sortedByCompletion(subs []*model.Record) []*model.Record {
	if len(subs) < 2 {
		return subs
	}
	out := make([]*model.Record, len(subs))
	copy(out, subs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt < out[j].CompletedAt
	})
	return out
}

// SettledSectionIDs returns the ordinal ids of sections that currently
// have a settled cluster, i.e. the sections whose collapse state is
// meaningful.
func SettledSectionIDs(records []model.Record) map[int]bool {
	ids := make(map[int]bool)
	sectionID := 0
	for _, c := range GroupByParent(records) {
		if c.Parent.Separator {
			sectionID++
			continue
		}
		if c.Settled() {
			ids[sectionID] = true
		}
	}
	return ids
}
