// Package runner sequences one xcproj invocation: global flags, manifest
// discovery and load, flag whitelist, execution, and persistence or dry-run
// discard.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/atomicfile"
	"github.com/aidanlsb/xcproj/internal/audit"
	"github.com/aidanlsb/xcproj/internal/buildinfo"
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/config"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/exitcode"
	"github.com/aidanlsb/xcproj/internal/manifest"
	"github.com/aidanlsb/xcproj/internal/profile"
	"github.com/aidanlsb/xcproj/internal/ui"
)

// Runner executes commands from a registry. The zero value of every field
// but Registry is replaced by a process default in New.
type Runner struct {
	Registry *commands.Registry

	Stdout io.Writer
	Stderr io.Writer

	Getwd      func() (string, error)
	LoadConfig func() (*config.Config, error)
	// Write replaces the atomic writer used to persist manifests.
	Write   atomicfile.WriteFunc
	Display *ui.DisplayContext
	Version string
	Now     func() time.Time
}

// New returns a runner wired to the process environment.
func New(reg *commands.Registry) *Runner {
	return &Runner{
		Registry:   reg,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Getwd:      os.Getwd,
		LoadConfig: config.Load,
		Display:    ui.NewDisplayContext(),
		Version:    buildinfo.Current().Version,
		Now:        time.Now,
	}
}

// globals are the flags every command accepts.
type globals struct {
	project string
	dryRun  bool
	verbose bool
	help    bool
	version bool
}

// merge honors global spellings given after the command token.
func (g *globals) merge(p *args.Parsed) {
	if v, ok := p.Value(args.Project); ok {
		g.project = v
	}
	g.dryRun = g.dryRun || p.Present(args.DryRun)
	g.verbose = g.verbose || p.Present(args.Verbose)
	g.help = g.help || p.Present(args.Help)
	g.version = g.version || p.Present(args.Version)
}

// session is the state of one invocation past command lookup.
type session struct {
	contract commands.Contract
	parsed   *args.Parsed
	globals  globals

	// project is nil for manifest-less commands.
	project      *manifest.Project
	manifestPath string
	dir          string

	cfg      *config.Config
	store    manifest.Store
	logger   *slog.Logger
	profiler *profile.Profiler
}

// Run executes argv (without the program name) and returns the exit code.
// Failures are printed as a single "Error: ..." line on stderr.
func (r *Runner) Run(ctx context.Context, argv []string) int {
	if err := r.execute(ctx, argv); err != nil {
		fmt.Fprintf(r.Stderr, "Error: %s\n", err)
		return exitcode.For(err)
	}
	return exitcode.Success
}

func parseGlobals(argv []string) (globals, []string, error) {
	var g globals
	fs := pflag.NewFlagSet("xcproj", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVarP(&g.project, "project", "p", "", args.Project.Help)
	fs.BoolVar(&g.dryRun, "dry-run", false, args.DryRun.Help)
	fs.BoolVarP(&g.verbose, "verbose", "V", false, args.Verbose.Help)
	fs.BoolVarP(&g.help, "help", "h", false, args.Help.Help)
	fs.BoolVarP(&g.version, "version", "v", false, args.Version.Help)

	if err := fs.Parse(argv); err != nil {
		return g, nil, globalsError(err)
	}
	return g, fs.Args(), nil
}

// globalsError rewords pflag failures to match the messages used after the
// command name.
func globalsError(err error) error {
	msg := err.Error()
	// Shorthand failures read "...: 'x' in -xyz"; report the token.
	spelling := func(prefix string) string {
		rest := strings.TrimPrefix(msg, prefix)
		if i := strings.LastIndex(rest, " in "); i >= 0 {
			return rest[i+len(" in "):]
		}
		return rest
	}
	switch {
	case strings.HasPrefix(msg, "unknown flag: "):
		return errs.InvalidArgument("Unknown flag: " + spelling("unknown flag: "))
	case strings.HasPrefix(msg, "unknown shorthand flag: "):
		return errs.InvalidArgument("Unknown flag: " + spelling("unknown shorthand flag: "))
	case strings.HasPrefix(msg, "flag needs an argument: "):
		return errs.InvalidArgument("Missing value for flag: " + spelling("flag needs an argument: "))
	}
	return errs.InvalidArgument(msg)
}

func (r *Runner) execute(ctx context.Context, argv []string) error {
	g, rest, err := parseGlobals(argv)
	if err != nil {
		return err
	}
	if g.version {
		fmt.Fprintf(r.Stdout, "xcproj %s\n", r.Version)
		return nil
	}
	if len(rest) == 0 {
		r.printCommands()
		if g.help {
			return nil
		}
		return errs.InvalidArgument("No command given")
	}

	contract, err := r.Registry.Lookup(rest[0])
	if err != nil {
		return err
	}
	parsed := args.Parse(rest[1:])
	g.merge(parsed)
	if g.help {
		ui.PrintMarkdown(r.Stdout, contract.Help(), r.Display)
		return nil
	}
	if g.version {
		fmt.Fprintf(r.Stdout, "xcproj %s\n", r.Version)
		return nil
	}

	s := &session{contract: contract, parsed: parsed, globals: g}
	if err := r.prepare(s); err != nil {
		return err
	}

	start := r.Now()
	err = r.dispatch(ctx, s)
	r.record(ctx, s, start, err)
	if s.globals.verbose {
		s.profiler.Report(r.Stderr)
	}
	return err
}

// prepare loads configuration and resolves the working directory and, for
// manifest commands, the manifest path.
func (r *Runner) prepare(s *session) error {
	level := slog.LevelWarn
	if s.globals.verbose {
		level = slog.LevelDebug
	}
	s.logger = slog.New(slog.NewTextHandler(r.Stderr, &slog.HandlerOptions{Level: level})).
		With("command", s.contract.Name)

	cfg, err := r.LoadConfig()
	if err != nil {
		return errs.Wrap(err, errs.KindInvalidArgument, "load config")
	}
	s.cfg = cfg
	ui.ConfigureTheme(cfg.UI.Accent)

	s.profiler = profile.New(s.globals.verbose, r.Stderr)
	s.profiler.BatchThreshold = cfg.Profile.BatchThreshold
	s.store = manifest.Store{KeepBackup: cfg.Persistence.KeepBackup, Write: r.Write}

	cwd, err := r.Getwd()
	if err != nil {
		return errs.Wrap(err, errs.KindOperationFailed, "resolve working directory")
	}

	if s.contract.Manifestless {
		s.dir = cwd
		return nil
	}
	path, err := manifest.Locate(s.globals.project, cwd)
	if err != nil {
		return err
	}
	s.manifestPath = path
	s.dir = filepath.Dir(path)
	s.logger = s.logger.With("manifest", path)
	return nil
}

func (r *Runner) dispatch(ctx context.Context, s *session) error {
	if !s.contract.Manifestless {
		s.logger.Debug("loading manifest")
		err := s.measure("load manifest", func() error {
			p, err := manifest.Load(s.manifestPath)
			s.project = p
			return err
		})
		if err != nil {
			return err
		}
	}

	if err := checkFlags(s.contract, s.parsed); err != nil {
		return err
	}
	if err := s.contract.Check(s.parsed); err != nil {
		return err
	}

	env := &commands.Env{
		Ctx:          ctx,
		Args:         s.parsed,
		Project:      s.project,
		ManifestPath: s.manifestPath,
		Dir:          s.dir,
		Stdout:       r.Stdout,
		Stderr:       r.Stderr,
		Logger:       s.logger,
		Profiler:     s.profiler,
		Display:      r.Display,
		Config:       s.cfg,
		DryRun:       s.globals.dryRun,
		Store:        s.store,
	}

	s.logger.Debug("executing", "dry_run", s.globals.dryRun)
	if err := s.measure("execute "+s.contract.Name, func() error {
		return s.contract.Run(env)
	}); err != nil {
		return err
	}
	return r.persist(s)
}

// measure times fn and samples the resident memory it costs.
func (s *session) measure(name string, fn func() error) error {
	_, err := s.profiler.MeasureMemory(name, func() error {
		return s.profiler.Measure(name, fn)
	})
	return err
}

// checkFlags rejects any flag outside the global and declared spellings.
func checkFlags(c commands.Contract, p *args.Parsed) error {
	known := make(map[string]struct{})
	for _, f := range c.KnownFlags() {
		known[f] = struct{}{}
	}
	for _, name := range p.FlagNames() {
		if args.IsGlobal(name) {
			continue
		}
		if _, ok := known[name]; !ok {
			return errs.InvalidArgument("Unknown flag: " + name)
		}
	}
	return nil
}

func (r *Runner) persist(s *session) error {
	if s.contract.ReadOnly {
		return nil
	}
	if s.globals.dryRun {
		s.logger.Debug("dry run: discarding changes")
		fmt.Fprintln(r.Stdout, ui.Info("Dry run: no changes saved"))
		return nil
	}
	// Manifest-less commands write their own files through Env.WriteFile.
	if s.project == nil {
		return nil
	}

	s.logger.Debug("saving manifest", "keep_backup", s.store.KeepBackup)
	if err := s.measure("save manifest", func() error {
		return s.store.Save(s.manifestPath, s.project)
	}); err != nil {
		return err
	}
	fmt.Fprintln(r.Stdout, ui.Success("Saved "+filepath.Base(s.manifestPath)))
	return nil
}

func outcome(s *session, err error) string {
	switch {
	case err != nil:
		return audit.OutcomeFailed
	case s.contract.ReadOnly:
		return audit.OutcomeReadOnly
	case s.globals.dryRun:
		return audit.OutcomeDryRun
	default:
		return audit.OutcomeApplied
	}
}

// record appends the invocation to the audit journal. Journal failures are
// logged and never change the result. Dry and read-only runs write to an
// existing journal but never create one.
func (r *Runner) record(ctx context.Context, s *session, start time.Time, err error) {
	if !s.cfg.Audit.Enabled || s.dir == "" {
		return
	}
	if s.globals.dryRun || s.contract.ReadOnly {
		if _, statErr := os.Stat(audit.Path(s.dir)); statErr != nil {
			return
		}
	}
	entry := audit.Entry{
		Time:     start,
		Command:  s.contract.Name,
		Manifest: s.manifestPath,
		DryRun:   s.globals.dryRun,
		Outcome:  outcome(s, err),
		Duration: r.Now().Sub(start),
	}
	if err != nil {
		entry.ErrorKind = errs.KindOf(err).String()
		entry.Message = err.Error()
	}

	j, jerr := audit.Open(ctx, s.dir)
	if jerr != nil {
		s.logger.Warn("audit journal unavailable", "error", jerr)
		return
	}
	defer j.Close()
	if jerr := j.Record(ctx, entry); jerr != nil {
		s.logger.Warn("audit entry not recorded", "error", jerr)
	}
}

func (r *Runner) printCommands() {
	fmt.Fprintln(r.Stdout, "Usage: xcproj [--project <path>] [--dry-run] [--verbose] <command> [args]")
	fmt.Fprintln(r.Stdout)
	fmt.Fprintln(r.Stdout, ui.Header("Commands"))
	tbl := ui.NewTable(2)
	for _, c := range r.Registry.Contracts() {
		tbl.AddRow("  "+c.Name, ui.Hint(c.Description))
	}
	fmt.Fprint(r.Stdout, tbl.String())
}
