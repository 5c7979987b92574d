package query

import (
	"testing"

	"tableflip.dev/inbox/pkg/folder"
	"tableflip.dev/inbox/pkg/task"
)

func TestCountPartitionInvariant(t *testing.T) {
	folders := []*folder.Folder{
		{ID: "URGENT", Name: "Urgent"},
		{ID: "EMPTY", Name: "Empty"},
	}
	tasks := []*task.Task{
		tk("a", false, "ALL", 1),
		tk("b", true, "ALL", 2),
		tk("c", true, "URGENT", 3),
		tk("d", false, "GONE", 4), // folder was deleted; still counted
	}

	tally := Count(tasks, folders)

	if tally.All.Total != 4 || tally.All.Pending != 2 || tally.All.Done != 2 {
		t.Fatalf("all bucket: %+v", tally.All)
	}
	for id, c := range tally.Folders {
		if c.Pending+c.Done != c.Total {
			t.Fatalf("folder %s breaks pending+done==total: %+v", id, c)
		}
	}
	if c := tally.Folders["EMPTY"]; c.Total != 0 {
		t.Fatalf("empty folder should appear with zero counts: %+v", c)
	}
	if c := tally.Folders["GONE"]; c.Total != 1 || c.Pending != 1 {
		t.Fatalf("orphaned folder id must still be tallied: %+v", c)
	}
}

func TestTallyFor(t *testing.T) {
	tasks := []*task.Task{
		tk("a", false, "URGENT", 1),
		tk("b", true, "URGENT", 2),
		tk("c", false, "ALL", 3),
	}
	tally := Count(tasks, nil)

	if got := tally.For(Selector{Bucket: BucketMain}); got != 3 {
		t.Fatalf("main: %d", got)
	}
	if got := tally.For(Selector{Bucket: BucketInstance}); got != 2 {
		t.Fatalf("instance: %d", got)
	}
	if got := tally.For(Selector{Bucket: BucketClassed, Folder: "URGENT"}); got != 1 {
		t.Fatalf("classed urgent: %d", got)
	}
}
