package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/manifest"
	"github.com/aidanlsb/xcproj/internal/resolver"
	"github.com/aidanlsb/xcproj/internal/ui"
)

// arg returns positional i. Contract.Check has already verified that
// required positionals are present.
func arg(env *commands.Env, i int) string {
	v, _ := env.Args.Positional(i)
	return v
}

// pathArg validates positional i as a manifest-relative path.
func pathArg(env *commands.Env, i int) (string, error) {
	return env.Path(arg(env, i))
}

// nameArg validates positional i as a name.
func nameArg(env *commands.Env, i int, what string) (string, error) {
	return env.Name(arg(env, i), what)
}

// optionalPath validates f when given.
func optionalPath(env *commands.Env, f args.Flag) (string, error) {
	v, ok := env.Args.Value(f)
	if !ok {
		return "", nil
	}
	return env.Path(v)
}

// optionalName validates f when given.
func optionalName(env *commands.Env, f args.Flag, what string) (string, error) {
	v, ok := env.Args.Value(f)
	if !ok {
		return "", nil
	}
	return env.Name(v, what)
}

// targetNames validates the comma-separated target list in f.
func targetNames(env *commands.Env, f args.Flag) ([]string, error) {
	return env.Names(env.Args.List(f), "target name")
}

// resolveFile finds the file reference token refers to. When several
// references match, the best one is used and the others are listed.
func resolveFile(env *commands.Env, token string) (*manifest.FileRef, error) {
	if _, err := env.Path(token); err != nil {
		return nil, err
	}
	r := resolver.ResolveWith(env.Policy(), token, env.Project.Files)
	if !r.Found {
		return nil, errs.NotFound("File not found: %s", token)
	}
	if r.Ambiguous {
		fmt.Fprintln(env.Stderr, ui.Warningf("%d files match %s; using %s", len(r.Matches), token, r.Match.Path))
	}
	return r.Match, nil
}

// warnIfMissing prints a warning when rel does not exist below env.Dir.
func warnIfMissing(env *commands.Env, rel string) {
	full := rel
	if !filepath.IsAbs(full) {
		full = filepath.Join(env.Dir, filepath.FromSlash(rel))
	}
	if _, err := os.Stat(full); os.IsNotExist(err) {
		fmt.Fprintln(env.Stderr, ui.Warningf("%s does not exist on disk", rel))
	}
}

// groupLabel names a group path for output; "" is the root group.
func groupLabel(env *commands.Env, groupPath string) string {
	if groupPath == "" {
		return env.Project.Group.Name
	}
	return groupPath
}
