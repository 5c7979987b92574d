package query

import (
	"tableflip.dev/inbox/pkg/folder"
	"tableflip.dev/inbox/pkg/task"
)

// Counts is a done-partition of a task subset.
type Counts struct {
	Total   int
	Pending int
	Done    int
}

func (c *Counts) add(done bool) {
	c.Total++
	if done {
		c.Done++
	} else {
		c.Pending++
	}
}

// Tally carries the live badge counts: the three unscoped buckets plus a
// per-folder breakdown. Derived in one pass, never persisted.
type Tally struct {
	All     Counts
	Folders map[string]Counts
}

// Count tallies the full task set. Every known folder id appears in the
// result even with zero tasks; tasks whose folder no longer exists are
// still counted under their orphaned id.
func Count(tasks []*task.Task, folders []*folder.Folder) Tally {
	t := Tally{Folders: make(map[string]Counts, len(folders))}
	for _, f := range folders {
		if f != nil {
			t.Folders[f.ID] = Counts{}
		}
	}
	for _, tk := range tasks {
		if tk == nil {
			continue
		}
		t.All.add(tk.Done)
		fc := t.Folders[tk.Folder]
		fc.add(tk.Done)
		t.Folders[tk.Folder] = fc
	}
	return t
}

// For returns the counts a selector's badge shows.
func (t Tally) For(sel Selector) int {
	c := t.All
	if sel.Folder != "" {
		c = t.Folders[sel.Folder]
	}
	switch sel.Bucket {
	case BucketInstance:
		return c.Pending
	case BucketClassed:
		return c.Done
	default:
		return c.Total
	}
}
