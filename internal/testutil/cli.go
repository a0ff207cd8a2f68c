package testutil

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aidanlsb/xcproj/internal/atomicfile"
	"github.com/aidanlsb/xcproj/internal/cli"
	"github.com/aidanlsb/xcproj/internal/config"
	"github.com/aidanlsb/xcproj/internal/exitcode"
	"github.com/aidanlsb/xcproj/internal/runner"
	"github.com/aidanlsb/xcproj/internal/ui"
)

// CLIResult represents the result of running a CLI command.
type CLIResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK reports whether the command exited successfully.
func (r *CLIResult) OK() bool {
	return r.ExitCode == exitcode.Success
}

// RunCLI executes a CLI command in-process against the project directory.
func (p *TestProject) RunCLI(args ...string) *CLIResult {
	p.t.Helper()
	return p.run(nil, args)
}

// RunCLIWithWriter executes a CLI command with the manifest writer replaced.
func (p *TestProject) RunCLIWithWriter(write atomicfile.WriteFunc, args ...string) *CLIResult {
	p.t.Helper()
	return p.run(write, args)
}

func (p *TestProject) run(write atomicfile.WriteFunc, args []string) *CLIResult {
	p.t.Helper()
	if p.Path == "" {
		p.t.Fatal("RunCLI called before Build")
	}

	var stdout, stderr bytes.Buffer
	r := runner.New(cli.NewRegistry())
	r.Stdout = &stdout
	r.Stderr = &stderr
	r.Getwd = func() (string, error) { return p.Path, nil }
	r.LoadConfig = func() (*config.Config, error) { return p.cfg, nil }
	r.Write = write
	r.Display = &ui.DisplayContext{TermWidth: ui.DefaultTermWidth}
	r.Version = "test"
	r.Now = time.Now

	code := exitcode.Success
	root := cli.NewRootCmd(r, &code)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		p.t.Fatalf("root command: %v", err)
	}

	return &CLIResult{
		ExitCode: code,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
}

// MustSucceed fails the test if the CLI command did not succeed.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK() {
		t.Fatalf("expected command to succeed, got exit %d (%s)\nstderr: %s\nstdout: %s",
			r.ExitCode, exitcode.String(r.ExitCode), r.Stderr, r.Stdout)
	}
	return r
}

// MustFail fails the test if the CLI command did not fail with the expected
// exit code.
func (r *CLIResult) MustFail(t *testing.T, expectedCode int) *CLIResult {
	t.Helper()
	if r.OK() {
		t.Fatalf("expected command to fail with exit %d, but it succeeded\nstdout: %s", expectedCode, r.Stdout)
	}
	if r.ExitCode != expectedCode {
		t.Fatalf("expected exit %d (%s), got %d (%s)\nstderr: %s",
			expectedCode, exitcode.String(expectedCode), r.ExitCode, exitcode.String(r.ExitCode), r.Stderr)
	}
	return r
}

// MustFailWithMessage fails the test if the CLI command succeeded, or if it
// failed without an error line containing the expected substring.
func (r *CLIResult) MustFailWithMessage(t *testing.T, msgSubstr string) *CLIResult {
	t.Helper()
	if r.OK() {
		t.Fatalf("expected command to fail, but it succeeded\nstdout: %s", r.Stdout)
	}
	if !strings.Contains(r.Stderr, msgSubstr) {
		t.Errorf("expected error to contain %q, got: %s", msgSubstr, r.Stderr)
	}
	return r
}
