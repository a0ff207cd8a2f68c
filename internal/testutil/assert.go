package testutil

import (
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (p *TestProject) AssertFileExists(relPath string) {
	p.t.Helper()
	if !p.FileExists(relPath) {
		p.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (p *TestProject) AssertFileNotExists(relPath string) {
	p.t.Helper()
	if p.FileExists(relPath) {
		p.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (p *TestProject) AssertFileContains(relPath, substr string) {
	p.t.Helper()
	content := p.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		p.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertManifestUnchanged fails the test if App.xcproj differs from before.
func (p *TestProject) AssertManifestUnchanged(before string) {
	p.t.Helper()
	if got := p.ReadFile(ManifestName); got != before {
		p.t.Errorf("expected manifest to be unchanged, got:\n%s", got)
	}
}

// AssertHasFileRef fails the test if the manifest on disk has no reference
// with the given path.
func (p *TestProject) AssertHasFileRef(path string) {
	p.t.Helper()
	if p.Manifest().FileByPath(path) == nil {
		p.t.Errorf("expected manifest to reference %s", path)
	}
}

// AssertNoFileRef fails the test if the manifest on disk references path.
func (p *TestProject) AssertNoFileRef(path string) {
	p.t.Helper()
	if p.Manifest().FileByPath(path) != nil {
		p.t.Errorf("expected manifest not to reference %s", path)
	}
}

// AssertStdoutContains checks the command's standard output.
func (r *CLIResult) AssertStdoutContains(t *testing.T, substr string) {
	t.Helper()
	if !strings.Contains(r.Stdout, substr) {
		t.Errorf("expected stdout to contain %q, got:\n%s", substr, r.Stdout)
	}
}

// AssertStderrContains checks the command's standard error.
func (r *CLIResult) AssertStderrContains(t *testing.T, substr string) {
	t.Helper()
	if !strings.Contains(r.Stderr, substr) {
		t.Errorf("expected stderr to contain %q, got:\n%s", substr, r.Stderr)
	}
}
