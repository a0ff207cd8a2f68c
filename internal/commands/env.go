package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/config"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/manifest"
	"github.com/aidanlsb/xcproj/internal/profile"
	"github.com/aidanlsb/xcproj/internal/ui"
	"github.com/aidanlsb/xcproj/internal/validate"
)

// Env is everything a contract's operation may use.
type Env struct {
	Ctx  context.Context
	Args *args.Parsed

	// Project is nil for manifest-less commands.
	Project      *manifest.Project
	ManifestPath string
	// Dir is the manifest directory, or the working directory for
	// manifest-less commands.
	Dir string

	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Profiler *profile.Profiler
	Display  *ui.DisplayContext
	Config   *config.Config

	DryRun bool
	Store  manifest.Store
}

// Policy returns the path policy in effect.
func (e *Env) Policy() validate.PathPolicy {
	if e.Config == nil {
		return validate.DefaultPolicy
	}
	return e.Config.PathPolicy()
}

// Path validates a user-supplied path.
func (e *Env) Path(raw string) (string, error) {
	clean, ok := e.Policy().SanitizeManifestPath(raw)
	if !ok {
		return "", errs.InvalidValue("Invalid path", raw)
	}
	return clean, nil
}

// Name validates a user-supplied identifier; what names it in the error
// (e.g. "target name").
func (e *Env) Name(raw, what string) (string, error) {
	clean, ok := validate.SanitizeString(raw)
	if !ok {
		return "", errs.InvalidValue("Invalid "+what, raw)
	}
	return clean, nil
}

// Names validates every element of a list.
func (e *Env) Names(raw []string, what string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		n, err := e.Name(r, what)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// WriteFile replaces path under a backup guard. In dry-run mode nothing is
// written.
func (e *Env) WriteFile(path string, data []byte) error {
	if e.DryRun {
		if e.Logger != nil {
			e.Logger.Debug("dry run: skipped write", "path", path, "bytes", len(data))
		}
		return nil
	}
	return e.Store.WriteBytes(path, data)
}

// Printf writes to standard output.
func (e *Env) Printf(format string, a ...interface{}) {
	fmt.Fprintf(e.Stdout, format, a...)
}

// Println writes a line to standard output.
func (e *Env) Println(a ...interface{}) {
	fmt.Fprintln(e.Stdout, a...)
}
