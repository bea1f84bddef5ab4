package activity

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecordAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "activity.jsonl")

	Record(path, ActionProjectCreate, "Website", "", "created")
	Record(path, ActionTaskAdd, "Website", "abc", "Design homepage")
	Record(path, ActionTaskRemove, "Website", "abc", "")

	all, err := Read(path, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[1].Action != ActionTaskAdd || all[1].TaskID != "abc" {
		t.Fatalf("unexpected entry: %+v", all[1])
	}

	last, err := Read(path, 2)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(last) != 2 || last[1].Action != ActionTaskRemove {
		t.Fatalf("expected the two most recent entries, got %+v", last)
	}
}

func TestRecordDisabled(t *testing.T) {
	Record("", ActionTaskAdd, "p", "", "")
}

func TestReadMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()
	entries, err := Read(filepath.Join(dir, "none.jsonl"), 0)
	if err != nil || entries != nil {
		t.Fatalf("missing log: got %v, %v", entries, err)
	}

	path := filepath.Join(dir, "activity.jsonl")
	if err := os.WriteFile(path, []byte("not json\n{\"action\":\"task.add\"}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	entries, err = Read(path, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected malformed line to be skipped, got %d entries", len(entries))
	}
}
