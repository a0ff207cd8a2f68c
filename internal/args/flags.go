package args

// Flag is one logical option with every spelling it accepts.
type Flag struct {
	Name    string   // canonical long spelling, e.g. "--group"
	Aliases []string // additional spellings, e.g. "-g"
	Boolean bool     // presence-only; never consumes the next token
	Help    string
}

// Spellings returns the canonical name followed by its aliases.
func (f Flag) Spellings() []string {
	out := make([]string, 0, 1+len(f.Aliases))
	out = append(out, f.Name)
	out = append(out, f.Aliases...)
	return out
}

// Command flags.
var (
	Group       = Flag{Name: "--group", Aliases: []string{"-g"}, Help: "Group path inside the manifest"}
	Targets     = Flag{Name: "--targets", Aliases: []string{"-t"}, Help: "Comma-separated target names"}
	Target      = Flag{Name: "--target", Help: "Target name"}
	Config      = Flag{Name: "--config", Aliases: []string{"-c"}, Help: "Build configuration name"}
	Type        = Flag{Name: "--type", Help: "Product type"}
	BundleID    = Flag{Name: "--bundle-id", Help: "Bundle identifier"}
	Platform    = Flag{Name: "--platform", Help: "Target platform"}
	Name        = Flag{Name: "--name", Aliases: []string{"-n"}, Help: "Name"}
	Script      = Flag{Name: "--script", Aliases: []string{"-s"}, Help: "Script body"}
	Shell       = Flag{Name: "--shell", Help: "Shell used to run the script"}
	Destination = Flag{Name: "--destination", Help: "Copy destination"}
	DependsOn   = Flag{Name: "--depends-on", Help: "Target depended upon"}
	Recursive   = Flag{Name: "--recursive", Aliases: []string{"-r"}, Boolean: true, Help: "Descend into subfolders"}
	Embed       = Flag{Name: "--embed", Boolean: true, Help: "Embed the framework"}
	Requirement = Flag{Name: "--requirement", Help: "Package version requirement"}
	Products    = Flag{Name: "--products", Help: "Comma-separated package products"}
	Glob        = Flag{Name: "--glob", Help: "Doublestar pattern filter"}
	Limit       = Flag{Name: "--limit", Help: "Maximum number of entries"}
	Force       = Flag{Name: "--force", Aliases: []string{"-f"}, Boolean: true, Help: "Proceed even if not empty"}
)

// Global flags, accepted by every command.
var (
	Project = Flag{Name: "--project", Aliases: []string{"-p"}, Help: "Manifest file or directory"}
	DryRun  = Flag{Name: "--dry-run", Boolean: true, Help: "Run without saving changes"}
	Verbose = Flag{Name: "--verbose", Aliases: []string{"-V"}, Boolean: true, Help: "Log pipeline steps and timings"}
	Help    = Flag{Name: "--help", Aliases: []string{"-h"}, Boolean: true, Help: "Show usage"}
	Version = Flag{Name: "--version", Aliases: []string{"-v"}, Boolean: true, Help: "Show version"}
)

// Globals lists the global flags.
var Globals = []Flag{Project, DryRun, Verbose, Help, Version}

// All lists every flag in the table.
var All = []Flag{
	Group, Targets, Target, Config, Type, BundleID, Platform, Name, Script,
	Shell, Destination, DependsOn, Recursive, Embed, Requirement, Products,
	Glob, Limit, Force,
	Project, DryRun, Verbose, Help, Version,
}

var booleanSpellings = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, f := range All {
		if !f.Boolean {
			continue
		}
		for _, s := range f.Spellings() {
			m[s] = struct{}{}
		}
	}
	return m
}()

// IsGlobal reports whether spelling belongs to a global flag.
func IsGlobal(spelling string) bool {
	for _, f := range Globals {
		for _, s := range f.Spellings() {
			if s == spelling {
				return true
			}
		}
	}
	return false
}
