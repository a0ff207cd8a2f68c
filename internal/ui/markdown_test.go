package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestRenderMarkdownNormalizesTrailingNewline(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown("# add-file", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected rendered markdown to end with newline, got %q", out)
	}
	if strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected single trailing newline, got %q", out)
	}
}

func TestRenderMarkdownDefaultsWidthWhenNonPositive(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown("hello", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected non-empty rendered output")
	}
}

func TestPrintMarkdownPlainWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer
	PrintMarkdown(&buf, "Usage: `xcproj list-files`\n\n", &DisplayContext{TermWidth: 80})
	if got := buf.String(); got != "Usage: `xcproj list-files`\n" {
		t.Fatalf("expected raw markdown, got %q", got)
	}
}

func TestHelpWidth(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{width: 80, want: 80 - MarkdownRenderMargin},
		{width: DefaultTermWidth, want: DefaultTermWidth - MarkdownRenderMargin},
		{width: 20, want: minHelpWidth},
		{width: 0, want: minHelpWidth},
	}
	for _, tt := range tests {
		d := &DisplayContext{TermWidth: tt.width, IsTTY: true}
		if got := d.HelpWidth(); got != tt.want {
			t.Errorf("HelpWidth() with width %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestDetectDisplayOnRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	d := DetectDisplay(f)
	if d.IsTTY {
		t.Error("regular file detected as a terminal")
	}
	if d.TermWidth != DefaultTermWidth {
		t.Errorf("TermWidth = %d, want %d", d.TermWidth, DefaultTermWidth)
	}
}
