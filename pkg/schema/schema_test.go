package schema

import (
	"reflect"
	"testing"
)

func TestTasksChainDefaultsFolder(t *testing.T) {
	doc := Doc{"id": "TASK-1", "done": false}
	out := Tasks.Apply(doc)
	if out["folder"] != "ALL" {
		t.Fatalf("expected folder ALL, got %v", out["folder"])
	}
	if out["schema"] != Tasks.Current() {
		t.Fatalf("expected schema stamp %d, got %v", Tasks.Current(), out["schema"])
	}
}

func TestTasksChainIdempotent(t *testing.T) {
	doc := Doc{"id": "TASK-1", "done": false}
	once := Tasks.Apply(doc)
	snapshot := make(Doc, len(once))
	for k, v := range once {
		snapshot[k] = v
	}
	twice := Tasks.Apply(once)
	if !reflect.DeepEqual(snapshot, twice) {
		t.Fatalf("re-applying chain changed document: %v vs %v", snapshot, twice)
	}
}

func TestTasksChainPrefersLegacyFolderID(t *testing.T) {
	doc := Doc{"id": "TASK-1", "folder": "OLD", "folderId": "NEW", "schema": 1}
	out := Tasks.Apply(doc)
	if out["folder"] != "NEW" {
		t.Fatalf("expected folderId to win, got %v", out["folder"])
	}
	if _, ok := out["folderId"]; ok {
		t.Fatal("expected folderId to be removed")
	}
}

func TestTasksChainSkipsAppliedSteps(t *testing.T) {
	// A version-2 document missing folder must not be backfilled: the
	// 0→1 step already ran for it in a prior deployment.
	doc := Doc{"id": "TASK-1", "schema": 2}
	out := Tasks.Apply(doc)
	if _, ok := out["folder"]; ok {
		t.Fatalf("expected no folder backfill at version 2, got %v", out["folder"])
	}
}

func TestFoldersChainStripsUnknownFields(t *testing.T) {
	doc := Doc{"id": "URGENT", "name": "Urgent", "color": "red"}
	out := Folders.Apply(doc)
	if _, ok := out["color"]; ok {
		t.Fatal("expected unknown field to be stripped")
	}
	if out["id"] != "URGENT" || out["name"] != "Urgent" {
		t.Fatalf("known fields lost: %v", out)
	}
}

func TestOutdated(t *testing.T) {
	if !Tasks.Outdated(Doc{"id": "x"}) {
		t.Fatal("version-0 doc should be outdated")
	}
	if Tasks.Outdated(Doc{"id": "x", "schema": Tasks.Current()}) {
		t.Fatal("current doc should not be outdated")
	}
	// float64 is how encoding/json delivers numbers.
	if Tasks.Outdated(Doc{"id": "x", "schema": float64(Tasks.Current())}) {
		t.Fatal("current doc (float version) should not be outdated")
	}
}

func TestChainTotality(t *testing.T) {
	// Every step must accept arbitrary junk without panicking.
	junk := []Doc{
		{},
		{"folder": 42},
		{"folderId": true},
		{"schema": "not-a-number"},
	}
	for _, chain := range []Chain{Tasks, Folders} {
		for _, doc := range junk {
			cp := make(Doc, len(doc))
			for k, v := range doc {
				cp[k] = v
			}
			_ = chain.Apply(cp)
		}
	}
}
