package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("App", "application", "ios")
	tbl.AddRow("AppTests", "unit-test", "ios")

	want := "App       application  ios\n" +
		"AppTests  unit-test    ios\n"
	if got := tbl.String(); got != want {
		t.Fatalf("table mismatch:\n%q\nwant\n%q", got, want)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len = %d", tbl.Len())
	}
}

func TestProgressReportsCoarseSteps(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "Adding files", 100)
	for i := 1; i <= 100; i++ {
		p.Update(i)
	}
	p.Done()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 progress lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[len(lines)-1], "100/100") {
		t.Fatalf("last line should report completion, got %q", lines[len(lines)-1])
	}
}

func TestCount(t *testing.T) {
	if got := Count(1, "file", "files"); got != "1 file" {
		t.Errorf("Count(1) = %q", got)
	}
	if got := Count(3, "file", "files"); got != "3 files" {
		t.Errorf("Count(3) = %q", got)
	}
}
