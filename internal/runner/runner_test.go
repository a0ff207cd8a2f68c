package runner

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/audit"
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/config"
	"github.com/aidanlsb/xcproj/internal/exitcode"
	"github.com/aidanlsb/xcproj/internal/manifest"
	"github.com/aidanlsb/xcproj/internal/ui"
)

const sampleManifest = "name: App\nconfigurations: [Debug, Release]\n"

type harness struct {
	t      *testing.T
	dir    string
	path   string
	stdout bytes.Buffer
	stderr bytes.Buffer
	cfg    *config.Config
	runner *Runner
}

func newHarness(t *testing.T, contracts ...commands.Contract) *harness {
	t.Helper()
	h := &harness{t: t, dir: t.TempDir()}
	h.path = filepath.Join(h.dir, "App"+manifest.Ext)
	if err := os.WriteFile(h.path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	h.cfg = config.Default()
	h.cfg.Audit.Enabled = false
	h.runner = &Runner{
		Registry:   commands.MustNew(contracts...),
		Stdout:     &h.stdout,
		Stderr:     &h.stderr,
		Getwd:      func() (string, error) { return h.dir, nil },
		LoadConfig: func() (*config.Config, error) { return h.cfg, nil },
		Display:    &ui.DisplayContext{TermWidth: 80},
		Version:    "v0.0.1-test",
		Now:        time.Now,
	}
	return h
}

func (h *harness) run(argv ...string) int {
	h.stdout.Reset()
	h.stderr.Reset()
	return h.runner.Run(context.Background(), argv)
}

func (h *harness) checksum() [32]byte {
	h.t.Helper()
	data, err := os.ReadFile(h.path)
	if err != nil {
		h.t.Fatal(err)
	}
	return sha256.Sum256(data)
}

func rename(to string) commands.Contract {
	return commands.Contract{
		Name:        "rename",
		Description: "Rename the project",
		Optional:    []args.Flag{args.Name},
		Run: func(env *commands.Env) error {
			env.Project.Name = to
			return nil
		},
	}
}

func TestWhitelistEnforcedBeforeExecute(t *testing.T) {
	called := false
	spy := commands.Contract{
		Name:     "spy",
		Optional: []args.Flag{args.Group},
		Run: func(env *commands.Env) error {
			called = true
			return nil
		},
	}
	h := newHarness(t, spy)

	code := h.run("spy", "--group", "Sources", "--bogus", "x")
	if code != exitcode.InvalidArgument {
		t.Fatalf("exit = %d, want %d", code, exitcode.InvalidArgument)
	}
	if called {
		t.Fatal("operation ran despite an unknown flag")
	}
	if got := h.stderr.String(); got != "Error: Unknown flag: --bogus\n" {
		t.Errorf("stderr = %q", got)
	}

	// Global spellings after the command are always accepted.
	if code := h.run("spy", "-g", "Sources", "--dry-run", "-V"); code != exitcode.Success {
		t.Fatalf("exit = %d; stderr=%s", code, h.stderr.String())
	}
	if !called {
		t.Fatal("operation did not run")
	}
}

func TestDryRunLeavesManifestUntouched(t *testing.T) {
	h := newHarness(t, rename("Changed"))
	before := h.checksum()

	for _, argv := range [][]string{
		{"--dry-run", "rename"},
		{"rename", "--dry-run"},
	} {
		if code := h.run(argv...); code != exitcode.Success {
			t.Fatalf("%v: exit = %d; stderr=%s", argv, code, h.stderr.String())
		}
		if h.checksum() != before {
			t.Fatalf("%v: manifest changed during dry run", argv)
		}
		if !strings.Contains(h.stdout.String(), "Dry run: no changes saved") {
			t.Errorf("%v: stdout = %q", argv, h.stdout.String())
		}
	}
}

func TestPersistsMutation(t *testing.T) {
	h := newHarness(t, rename("Changed"))

	if code := h.run("rename"); code != exitcode.Success {
		t.Fatalf("exit = %d; stderr=%s", code, h.stderr.String())
	}
	if !strings.Contains(h.stdout.String(), "Saved App.xcproj") {
		t.Errorf("stdout = %q", h.stdout.String())
	}
	p, err := manifest.Load(h.path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Changed" {
		t.Errorf("name = %q, want Changed", p.Name)
	}
	if _, err := os.Stat(h.path + ".bak"); !os.IsNotExist(err) {
		t.Error("backup left behind without keep_backup")
	}
}

func TestPersistenceFailureKeepsOriginal(t *testing.T) {
	h := newHarness(t, rename("Changed"))
	original, _ := os.ReadFile(h.path)

	h.runner.Write = func(path string, data []byte, perm os.FileMode) error {
		if err := os.WriteFile(path, data[:len(data)/2], 0o644); err != nil {
			return err
		}
		return errors.New("disk full")
	}

	code := h.run("rename")
	if code != exitcode.PersistenceFailed {
		t.Fatalf("exit = %d, want %d", code, exitcode.PersistenceFailed)
	}
	got, _ := os.ReadFile(h.path)
	if !bytes.Equal(got, original) {
		t.Fatalf("manifest not restored:\n%s", got)
	}
	if !strings.HasPrefix(h.stderr.String(), "Error: ") || !strings.Contains(h.stderr.String(), "disk full") {
		t.Errorf("stderr = %q", h.stderr.String())
	}
}

func TestReadOnlyNeverPersists(t *testing.T) {
	show := commands.Contract{
		Name:     "show",
		ReadOnly: true,
		Run: func(env *commands.Env) error {
			env.Project.Name = "Mutated"
			env.Println(env.Project.Name)
			return nil
		},
	}
	h := newHarness(t, show)
	before := h.checksum()

	if code := h.run("show"); code != exitcode.Success {
		t.Fatalf("exit = %d; stderr=%s", code, h.stderr.String())
	}
	if h.checksum() != before {
		t.Fatal("read-only command changed the manifest")
	}
	if got := h.stdout.String(); got != "Mutated\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestVerboseReport(t *testing.T) {
	h := newHarness(t, rename("Changed"))

	if code := h.run("--verbose", "rename"); code != exitcode.Success {
		t.Fatalf("exit = %d; stderr=%s", code, h.stderr.String())
	}
	report := h.stderr.String()
	for _, want := range []string{"Performance", "load manifest", "execute rename", "save manifest", "resident memory"} {
		if !strings.Contains(report, want) {
			t.Errorf("verbose report missing %q:\n%s", want, report)
		}
	}

	if code := h.run("rename"); code != exitcode.Success {
		t.Fatalf("exit = %d; stderr=%s", code, h.stderr.String())
	}
	if strings.Contains(h.stderr.String(), "resident memory") {
		t.Errorf("report printed without --verbose:\n%s", h.stderr.String())
	}
}

func TestUsageErrors(t *testing.T) {
	needsGroup := commands.Contract{
		Name:     "add-file",
		Args:     []commands.Arg{{Name: "path", Required: true}},
		Required: []args.Flag{args.Group},
		Run:      func(env *commands.Env) error { return nil },
	}
	h := newHarness(t, needsGroup, rename("X"))

	tests := []struct {
		name   string
		argv   []string
		code   int
		stderr string
	}{
		{
			name:   "missing flag",
			argv:   []string{"add-file", "A.swift"},
			code:   exitcode.InvalidArgument,
			stderr: "Error: Usage: xcproj add-file <path> --group <group>\n",
		},
		{
			name:   "missing positional",
			argv:   []string{"add-file", "--group", "Sources"},
			code:   exitcode.InvalidArgument,
			stderr: "Error: Usage: xcproj add-file <path> --group <group>\n",
		},
		{
			name:   "unknown command",
			argv:   []string{"add-flie"},
			code:   exitcode.InvalidArgument,
			stderr: "Error: Unknown command: add-flie. Available commands: add-file, rename\n",
		},
		{
			name:   "unknown global",
			argv:   []string{"--bogus", "rename"},
			code:   exitcode.InvalidArgument,
			stderr: "Error: Unknown flag: --bogus\n",
		},
		{
			name:   "unknown global shorthand",
			argv:   []string{"-q", "rename"},
			code:   exitcode.InvalidArgument,
			stderr: "Error: Unknown flag: -q\n",
		},
		{
			name:   "global without value",
			argv:   []string{"--project"},
			code:   exitcode.InvalidArgument,
			stderr: "Error: Missing value for flag: --project\n",
		},
		{
			name:   "inline project after command",
			argv:   []string{"rename", "--project=Other.xcproj"},
			code:   exitcode.NotFound,
			stderr: "Error: Manifest not found: Other.xcproj\n",
		},
		{
			name:   "inline group after command",
			argv:   []string{"add-file", "A.swift", "--group=Sources", "--bogus=1"},
			code:   exitcode.InvalidArgument,
			stderr: "Error: Unknown flag: --bogus\n",
		},
		{
			name:   "missing project",
			argv:   []string{"--project", "Other.xcproj", "rename"},
			code:   exitcode.NotFound,
			stderr: "Error: Manifest not found: Other.xcproj\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := h.run(tt.argv...); code != tt.code {
				t.Fatalf("exit = %d, want %d", code, tt.code)
			}
			if got := h.stderr.String(); got != tt.stderr {
				t.Errorf("stderr = %q, want %q", got, tt.stderr)
			}
		})
	}
}

func TestNoCommandListsCommands(t *testing.T) {
	h := newHarness(t, rename("X"))

	if code := h.run(); code != exitcode.InvalidArgument {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(h.stdout.String(), "rename") {
		t.Errorf("stdout = %q", h.stdout.String())
	}
	if got := h.stderr.String(); got != "Error: No command given\n" {
		t.Errorf("stderr = %q", got)
	}

	if code := h.run("--help"); code != exitcode.Success {
		t.Fatalf("--help exit = %d", code)
	}
	if code := h.run("rename", "--help"); code != exitcode.Success {
		t.Fatalf("rename --help exit = %d", code)
	}
	if !strings.Contains(h.stdout.String(), "Rename the project") {
		t.Errorf("help output = %q", h.stdout.String())
	}

	if code := h.run("--version"); code != exitcode.Success {
		t.Fatalf("--version exit = %d", code)
	}
	if got := h.stdout.String(); got != "xcproj v0.0.1-test\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestManifestDiscovery(t *testing.T) {
	h := newHarness(t, rename("Changed"))

	// Two manifests in the working directory are ambiguous.
	other := filepath.Join(h.dir, "Other"+manifest.Ext)
	if err := os.WriteFile(other, []byte("name: Other\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := h.run("rename"); code != exitcode.InvalidArgument {
		t.Fatalf("exit = %d, want %d", code, exitcode.InvalidArgument)
	}

	if code := h.run("rename", "--project", "Other.xcproj"); code != exitcode.Success {
		t.Fatalf("exit = %d; stderr=%s", code, h.stderr.String())
	}
	p, err := manifest.Load(other)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Changed" {
		t.Errorf("name = %q, want Changed", p.Name)
	}
}

func TestManifestlessCommand(t *testing.T) {
	var gotDir string
	ws := commands.Contract{
		Name:         "where",
		Manifestless: true,
		ReadOnly:     true,
		Run: func(env *commands.Env) error {
			if env.Project != nil {
				t.Error("manifest loaded for a manifest-less command")
			}
			gotDir = env.Dir
			return nil
		},
	}
	h := newHarness(t, ws)
	if err := os.Remove(h.path); err != nil {
		t.Fatal(err)
	}

	if code := h.run("where"); code != exitcode.Success {
		t.Fatalf("exit = %d; stderr=%s", code, h.stderr.String())
	}
	if gotDir != h.dir {
		t.Errorf("dir = %q, want %q", gotDir, h.dir)
	}
}

func TestAuditJournal(t *testing.T) {
	h := newHarness(t, rename("Changed"))
	h.cfg.Audit.Enabled = true

	if code := h.run("--dry-run", "rename"); code != exitcode.Success {
		t.Fatalf("exit = %d; stderr=%s", code, h.stderr.String())
	}
	if _, err := os.Stat(filepath.Join(h.dir, audit.DirName)); !os.IsNotExist(err) {
		t.Fatalf("dry run created the journal directory: %v", err)
	}

	if code := h.run("rename"); code != exitcode.Success {
		t.Fatalf("exit = %d; stderr=%s", code, h.stderr.String())
	}
	if code := h.run("rename", "--dry-run"); code != exitcode.Success {
		t.Fatalf("exit = %d; stderr=%s", code, h.stderr.String())
	}

	j, err := audit.Open(context.Background(), h.dir)
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()
	entries, err := j.Recent(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Outcome != audit.OutcomeDryRun || entries[1].Outcome != audit.OutcomeApplied {
		t.Errorf("outcomes = %s, %s", entries[0].Outcome, entries[1].Outcome)
	}
	if entries[1].Manifest != h.path {
		t.Errorf("manifest = %q", entries[1].Manifest)
	}
}

func TestFailedOperationRecordsKind(t *testing.T) {
	fail := commands.Contract{
		Name: "fail",
		Run: func(env *commands.Env) error {
			_, err := env.Project.Target("Missing")
			return err
		},
	}
	h := newHarness(t, fail)
	h.cfg.Audit.Enabled = true
	before := h.checksum()

	if code := h.run("fail"); code != exitcode.NotFound {
		t.Fatalf("exit = %d, want %d", code, exitcode.NotFound)
	}
	if h.checksum() != before {
		t.Fatal("failed command changed the manifest")
	}

	j, err := audit.Open(context.Background(), h.dir)
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()
	entries, err := j.Recent(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Outcome != audit.OutcomeFailed || entries[0].ErrorKind != "NOT_FOUND" {
		t.Errorf("entries = %+v", entries)
	}
}
