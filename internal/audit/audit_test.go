package audit

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestJournal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	j, err := Open(ctx, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer j.Close()

	if _, err := os.Stat(Path(dir)); err != nil {
		t.Fatalf("journal file not created: %v", err)
	}

	first := Entry{
		Time:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Command:  "add-file",
		Manifest: "App.xcproj",
		Outcome:  OutcomeApplied,
		Duration: 12 * time.Millisecond,
	}
	second := Entry{
		Command:   "remove-file",
		Manifest:  "App.xcproj",
		DryRun:    true,
		Outcome:   OutcomeFailed,
		ErrorKind: "not_found",
		Message:   "File not found: Gone.swift",
	}
	for _, e := range []Entry{first, second} {
		if err := j.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	all, err := j.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if all[0].Command != "remove-file" || !all[0].DryRun || all[0].ErrorKind != "not_found" {
		t.Errorf("newest entry mismatch: %+v", all[0])
	}
	if all[0].Time.IsZero() {
		t.Error("zero time should be filled in")
	}
	if !all[1].Time.Equal(first.Time) || all[1].Duration != first.Duration {
		t.Errorf("oldest entry mismatch: %+v", all[1])
	}

	limited, err := j.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Command != "remove-file" {
		t.Errorf("limit not applied: %+v", limited)
	}

	filtered, err := j.Recent(ctx, 0, "add-file", "rename-group")
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 1 || filtered[0].Command != "add-file" {
		t.Errorf("command filter not applied: %+v", filtered)
	}
}

func TestJournalReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	j, err := Open(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	_ = j.Record(ctx, Entry{Command: "list-files", Outcome: OutcomeReadOnly})
	j.Close()

	j, err = Open(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()
	entries, err := j.Recent(ctx, 10)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Recent after reopen = %d entries, %v", len(entries), err)
	}
}
