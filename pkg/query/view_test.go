package query

import (
	"sync"
	"testing"
	"time"

	"tableflip.dev/inbox/pkg/task"
)

func tk(id string, done bool, folder string, date int64) *task.Task {
	return &task.Task{
		ID:      id,
		Done:    done,
		From:    "SECMAR",
		Service: "ELEC",
		Txt:     "456/DEF/150223",
		Date:    date,
		Folder:  folder,
	}
}

func ids(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func sameIDs(got []*task.Task, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].ID != want[i] {
			return false
		}
	}
	return true
}

func TestParseSelector(t *testing.T) {
	s, err := ParseSelector("main")
	if err != nil || s.Bucket != BucketMain || s.Folder != "" {
		t.Fatalf("main: %+v %v", s, err)
	}
	s, err = ParseSelector("instance-URGENT")
	if err != nil || s.Bucket != BucketInstance || s.Folder != "URGENT" {
		t.Fatalf("instance-URGENT: %+v %v", s, err)
	}
	if _, err := ParseSelector("everything"); err == nil {
		t.Fatal("expected unknown bucket error")
	}
	if got := (Selector{Bucket: BucketClassed, Folder: "Q2"}).String(); got != "classed-Q2" {
		t.Fatalf("round trip: %q", got)
	}
}

func TestViewBucketPartition(t *testing.T) {
	all := []*task.Task{
		tk("a", false, "ALL", 1000),
		tk("b", true, "ALL", 2000),
		tk("c", false, "URGENT", 3000),
	}

	got := View(all, Selector{Bucket: BucketMain}, Filters{}, "", AllSearchFields, Sort{})
	if !sameIDs(got, "a", "b", "c") {
		t.Fatalf("main: %v", ids(got))
	}

	got = View(all, Selector{Bucket: BucketClassed}, Filters{}, "", AllSearchFields, Sort{})
	if !sameIDs(got, "b") {
		t.Fatalf("classed: %v", ids(got))
	}

	got = View(all, Selector{Bucket: BucketMain, Folder: "URGENT"}, Filters{}, "", AllSearchFields, Sort{})
	if !sameIDs(got, "c") {
		t.Fatalf("folder scope: %v", ids(got))
	}
}

func TestViewInstanceDefaultsOldestFirst(t *testing.T) {
	all := []*task.Task{
		tk("new", false, "ALL", 5000),
		tk("invalid", false, "ALL", 0),
		tk("old", false, "ALL", 1000),
	}
	got := View(all, Selector{Bucket: BucketInstance}, Filters{}, "", AllSearchFields, Sort{})
	// Invalid dates coerce to epoch 0 and lead in triage order.
	if !sameIDs(got, "invalid", "old", "new") {
		t.Fatalf("instance default order: %v", ids(got))
	}
}

func TestViewPreservesInputOrderWithoutSort(t *testing.T) {
	all := []*task.Task{
		tk("z", false, "ALL", 9000),
		tk("a", false, "ALL", 1000),
	}
	got := View(all, Selector{Bucket: BucketMain}, Filters{}, "", AllSearchFields, Sort{})
	if !sameIDs(got, "z", "a") {
		t.Fatalf("main bucket must keep input order: %v", ids(got))
	}
}

func TestWildcardFilter(t *testing.T) {
	mk := func(from string) *task.Task {
		t := tk(from, false, "ALL", 1000)
		t.From = from
		return t
	}
	all := []*task.Task{mk("ABCD"), mk("ab12"), mk("XAB")}

	got := View(all, Selector{Bucket: BucketMain}, Filters{From: "AB*"}, "", AllSearchFields, Sort{})
	if !sameIDs(got, "ABCD", "ab12") {
		t.Fatalf("AB* should match prefixes case-insensitively: %v", ids(got))
	}

	got = View(all, Selector{Bucket: BucketMain}, Filters{From: "*AB*"}, "", AllSearchFields, Sort{})
	if len(got) != 3 {
		t.Fatalf("*AB* should match all: %v", ids(got))
	}

	// Regex metacharacters in user input are literal.
	weird := mk("A.C")
	got = View([]*task.Task{weird, mk("ABC")}, Selector{Bucket: BucketMain}, Filters{From: "A.C"}, "", AllSearchFields, Sort{})
	if !sameIDs(got, "A.C") {
		t.Fatalf("dot must be literal: %v", ids(got))
	}
}

func TestDateFilterMatchesCalendarDay(t *testing.T) {
	morning := tk("m", false, "ALL", time.Date(2024, 6, 25, 8, 0, 0, 0, time.UTC).UnixMilli())
	evening := tk("e", false, "ALL", time.Date(2024, 6, 25, 23, 30, 0, 0, time.UTC).UnixMilli())
	nextDay := tk("n", false, "ALL", time.Date(2024, 6, 26, 0, 0, 0, 0, time.UTC).UnixMilli())
	invalid := tk("i", false, "ALL", 0)

	day := time.Date(2024, 6, 25, 15, 45, 0, 0, time.UTC)
	got := View([]*task.Task{morning, evening, nextDay, invalid}, Selector{Bucket: BucketMain}, Filters{Date: &day}, "", AllSearchFields, Sort{})
	if !sameIDs(got, "m", "e") {
		t.Fatalf("expected same-day matches regardless of time, got %v", ids(got))
	}
}

func TestGlobalSearchOnDate(t *testing.T) {
	match := tk("m", false, "ALL", time.Date(2024, 6, 25, 12, 0, 0, 0, time.UTC).UnixMilli())
	other := tk("o", false, "ALL", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli())

	got := View([]*task.Task{match, other}, Selector{Bucket: BucketMain}, Filters{}, "2024-06-25", AllSearchFields, Sort{})
	if !sameIDs(got, "m") {
		t.Fatalf("expected date-rendered search hit, got %v", ids(got))
	}

	// The date field excluded from the subset means no hit.
	got = View([]*task.Task{match, other}, Selector{Bucket: BucketMain}, Filters{}, "2024-06-25", []Field{FieldFrom, FieldComments}, Sort{})
	if len(got) != 0 {
		t.Fatalf("expected no hit without the date field, got %v", ids(got))
	}
}

func TestGlobalSearchIsCaseInsensitiveSubstring(t *testing.T) {
	a := tk("a", false, "ALL", 1000)
	a.Details = "Fix responsive layout bug on Safari"
	b := tk("b", false, "ALL", 1000)

	got := View([]*task.Task{a, b}, Selector{Bucket: BucketMain}, Filters{}, "sAfArI", AllSearchFields, Sort{})
	if !sameIDs(got, "a") {
		t.Fatalf("expected case-insensitive substring match, got %v", ids(got))
	}
}

func TestSortDateNullsLast(t *testing.T) {
	all := []*task.Task{
		tk("k", false, "ALL", 1000),
		tk("n", false, "ALL", 0),
		tk("f", false, "ALL", 500),
	}
	got := View(all, Selector{Bucket: BucketMain}, Filters{}, "", AllSearchFields, Sort{Column: "date", Direction: "asc"})
	if !sameIDs(got, "f", "k", "n") {
		t.Fatalf("expected nulls last ascending, got %v", ids(got))
	}

	got = View(all, Selector{Bucket: BucketMain}, Filters{}, "", AllSearchFields, Sort{Column: "date", Direction: "desc"})
	if !sameIDs(got, "n", "k", "f") {
		t.Fatalf("expected negated comparator descending, got %v", ids(got))
	}
}

func TestSortNullsStable(t *testing.T) {
	all := []*task.Task{
		tk("n1", false, "ALL", 0),
		tk("k", false, "ALL", 1000),
		tk("n2", false, "ALL", 0),
	}
	got := View(all, Selector{Bucket: BucketMain}, Filters{}, "", AllSearchFields, Sort{Column: "date", Direction: "asc"})
	if !sameIDs(got, "k", "n1", "n2") {
		t.Fatalf("null ties must keep relative order: %v", ids(got))
	}
}

func TestSortStringColumn(t *testing.T) {
	a := tk("a", false, "ALL", 1000)
	a.From = "beta"
	b := tk("b", false, "ALL", 1000)
	b.From = "Alpha"
	c := tk("c", false, "ALL", 1000)
	c.From = ""

	got := View([]*task.Task{a, b, c}, Selector{Bucket: BucketMain}, Filters{}, "", AllSearchFields, Sort{Column: "from", Direction: "asc"})
	if !sameIDs(got, "b", "a", "c") {
		t.Fatalf("expected locale order with empty last, got %v", ids(got))
	}
}

func TestViewConcurrentStringSort(t *testing.T) {
	names := []string{"beta", "Alpha", "gamma", "délta", ""}
	all := make([]*task.Task, 0, len(names))
	for i, n := range names {
		a := tk(string(rune('a'+i)), false, "ALL", int64(1000+i))
		a.From = n
		all = append(all, a)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				got := View(all, Selector{Bucket: BucketMain}, Filters{}, "", AllSearchFields, Sort{Column: "from", Direction: "asc"})
				if !sameIDs(got, "b", "a", "d", "c", "e") {
					t.Errorf("sort order: %v", ids(got))
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestViewIsSubsetAndPure(t *testing.T) {
	all := []*task.Task{
		tk("a", false, "ALL", 1000),
		tk("b", true, "URGENT", 2000),
	}
	got := View(all, Selector{Bucket: BucketInstance}, Filters{}, "", AllSearchFields, Sort{})
	for _, g := range got {
		found := false
		for _, src := range all {
			if src == g {
				found = true
			}
		}
		if !found {
			t.Fatalf("view invented a task: %v", g.ID)
		}
	}
	if !sameIDs(all, "a", "b") {
		t.Fatal("view must not reorder its input")
	}
}
