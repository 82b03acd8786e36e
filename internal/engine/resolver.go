package engine

import "github.com/aaronfang/todo-app/internal/model"

// Cluster is a record plus its subtasks, treated as one unit when a
// section is partitioned. Separators and childless tasks are clusters
// of one.
type Cluster struct {
	Parent   *model.Record
	Subtasks []*model.Record
}

// GroupByParent walks the flat list and bundles each main task with
// its subtasks. Subtasks are collected store-wide through an index
// built once per pass, not by adjacency, so a list whose contiguity
// was broken (legacy data, manual reorder) still resolves; the
// cluster's subtask order is the flat-store order.
//
// Subtasks whose parent id matches no record in the list resolve to no
// cluster and are dropped from the result.
func GroupByParent(records []model.Record) []Cluster {
	subsByParent := make(map[string][]*model.Record)
	for i := range records {
		r := &records[i]
		if r.IsSubtask {
			subsByParent[r.ParentID] = append(subsByParent[r.ParentID], r)
		}
	}

	clusters := make([]Cluster, 0, len(records))
	for i := range records {
		r := &records[i]
		if r.IsSubtask {
			continue
		}
		c := Cluster{Parent: r}
		if r.IsMainTask() {
			c.Subtasks = subsByParent[r.ID]
		}
		clusters = append(clusters, c)
	}
	return clusters
}

// Settled reports whether the whole cluster belongs in the completed
// block. Only the parent's state decides; subtask states never affect
// sectioning on their own.
func (c Cluster) Settled() bool {
	return c.Parent.Settled()
}
