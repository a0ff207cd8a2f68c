// Package args turns a flat argument vector into positional tokens, valued
// flags and boolean flags.
//
// A token starting with "-" is a flag. The following token is its value when
// present and not itself a flag; otherwise the flag is boolean. Spellings of
// boolean flags in the alias table never take a value. A long valued flag may
// also be written "--name=value". All other tokens are positional, in input
// order.
package args

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aidanlsb/xcproj/internal/errs"
)

// Parsed is the result of parsing one argument vector. It is never modified
// after Parse returns.
type Parsed struct {
	positional []string
	flags      map[string]string
	boolFlags  map[string]struct{}
}

// Parse parses argv. It never fails; unknown flags are kept so the caller
// can reject them by name.
func Parse(argv []string) *Parsed {
	p := &Parsed{
		positional: []string{},
		flags:      make(map[string]string),
		boolFlags:  make(map[string]struct{}),
	}

	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		if !isFlag(tok) {
			p.positional = append(p.positional, tok)
			continue
		}

		if name, value, ok := splitInline(tok); ok {
			delete(p.boolFlags, name)
			p.flags[name] = value
			continue
		}

		_, boolean := booleanSpellings[tok]
		if !boolean && i+1 < len(argv) && !isFlag(argv[i+1]) {
			// The later occurrence decides the form.
			delete(p.boolFlags, tok)
			p.flags[tok] = argv[i+1]
			i++
			continue
		}
		delete(p.flags, tok)
		p.boolFlags[tok] = struct{}{}
	}
	return p
}

func isFlag(tok string) bool {
	return strings.HasPrefix(tok, "-")
}

// splitInline splits "--name=value". Boolean spellings are left whole so a
// stray value is reported as an unknown flag.
func splitInline(tok string) (name, value string, ok bool) {
	if !strings.HasPrefix(tok, "--") {
		return "", "", false
	}
	name, value, ok = strings.Cut(tok, "=")
	if !ok || name == "--" {
		return "", "", false
	}
	if _, boolean := booleanSpellings[name]; boolean {
		return "", "", false
	}
	return name, value, true
}

// Get returns the value of the first alias present.
func (p *Parsed) Get(aliases ...string) (string, bool) {
	for _, a := range aliases {
		if v, ok := p.flags[a]; ok {
			return v, true
		}
	}
	return "", false
}

// Has reports whether any alias was given as a boolean flag.
func (p *Parsed) Has(aliases ...string) bool {
	for _, a := range aliases {
		if _, ok := p.boolFlags[a]; ok {
			return true
		}
	}
	return false
}

// Require returns the value of the first alias present, or an
// InvalidArgument error carrying usage.
func (p *Parsed) Require(usage string, aliases ...string) (string, error) {
	if v, ok := p.Get(aliases...); ok {
		return v, nil
	}
	return "", errs.InvalidArgument(usage)
}

// Value returns the value of f under any of its spellings.
func (p *Parsed) Value(f Flag) (string, bool) {
	return p.Get(f.Spellings()...)
}

// Present reports whether the boolean flag f was given.
func (p *Parsed) Present(f Flag) bool {
	return p.Has(f.Spellings()...)
}

// Must returns the value of f or fails with InvalidArgument(usage).
func (p *Parsed) Must(f Flag, usage string) (string, error) {
	return p.Require(usage, f.Spellings()...)
}

// List splits a comma-separated flag value, dropping empty entries.
func (p *Parsed) List(f Flag) []string {
	v, ok := p.Value(f)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Int parses the value of f as a non-negative integer, returning def when
// the flag is absent.
func (p *Parsed) Int(f Flag, def int) (int, error) {
	v, ok := p.Value(f)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errs.InvalidValue(fmt.Sprintf("%s expects a non-negative integer", f.Name), v)
	}
	return n, nil
}

// Positional returns the i-th positional token.
func (p *Parsed) Positional(i int) (string, bool) {
	if i < 0 || i >= len(p.positional) {
		return "", false
	}
	return p.positional[i], true
}

// RequirePositional returns the i-th positional token or fails with
// InvalidArgument(usage).
func (p *Parsed) RequirePositional(i int, usage string) (string, error) {
	if v, ok := p.Positional(i); ok {
		return v, nil
	}
	return "", errs.InvalidArgument(usage)
}

// Positionals returns a copy of the positional tokens.
func (p *Parsed) Positionals() []string {
	return append([]string(nil), p.positional...)
}

// FlagNames returns every flag spelling given, valued or boolean, sorted.
func (p *Parsed) FlagNames() []string {
	names := make([]string, 0, len(p.flags)+len(p.boolFlags))
	for k := range p.flags {
		names = append(names, k)
	}
	for k := range p.boolFlags {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Flags returns a copy of the valued flags.
func (p *Parsed) Flags() map[string]string {
	out := make(map[string]string, len(p.flags))
	for k, v := range p.flags {
		out[k] = v
	}
	return out
}

// BoolFlags returns the boolean flag spellings, sorted.
func (p *Parsed) BoolFlags() []string {
	out := make([]string, 0, len(p.boolFlags))
	for k := range p.boolFlags {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
