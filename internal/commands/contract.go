// Package commands defines the command contract shared by every xcproj
// command and the registry the runner dispatches through.
package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/errs"
)

// Arg describes a positional argument.
type Arg struct {
	Name        string
	Description string
	Required    bool
	Variadic    bool // accepts one or more values
}

// Contract declares one command: its inputs, its markers and its operation.
type Contract struct {
	Name        string
	Description string
	Args        []Arg
	Required    []args.Flag
	Optional    []args.Flag
	Examples    []string

	// ReadOnly commands never trigger persistence.
	ReadOnly bool
	// Manifestless commands run without a loaded manifest.
	Manifestless bool

	Run func(env *Env) error
}

// Flags returns the declared flags, required first.
func (c Contract) Flags() []args.Flag {
	out := make([]args.Flag, 0, len(c.Required)+len(c.Optional))
	out = append(out, c.Required...)
	return append(out, c.Optional...)
}

// KnownFlags returns every declared spelling, sorted.
func (c Contract) KnownFlags() []string {
	var out []string
	for _, f := range c.Flags() {
		out = append(out, f.Spellings()...)
	}
	sort.Strings(out)
	return out
}

// Usage returns the one-line usage string, e.g.
// "Usage: xcproj add-file <path> --group <group> [--targets <targets>]".
func (c Contract) Usage() string {
	parts := []string{"Usage: xcproj", c.Name}
	for _, a := range c.Args {
		token := "<" + a.Name + ">"
		if a.Variadic {
			token += "..."
		}
		if !a.Required {
			token = "[" + token + "]"
		}
		parts = append(parts, token)
	}
	for _, f := range c.Required {
		parts = append(parts, flagUsage(f))
	}
	for _, f := range c.Optional {
		parts = append(parts, "["+flagUsage(f)+"]")
	}
	return strings.Join(parts, " ")
}

func flagUsage(f args.Flag) string {
	if f.Boolean {
		return f.Name
	}
	return fmt.Sprintf("%s <%s>", f.Name, strings.TrimLeft(f.Name, "-"))
}

// Help returns markdown documentation for the command.
func (c Contract) Help() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n%s\n\n", c.Name, c.Description)
	fmt.Fprintf(&sb, "    %s\n", strings.TrimPrefix(c.Usage(), "Usage: "))

	if len(c.Args) > 0 {
		sb.WriteString("\n## Arguments\n\n")
		for _, a := range c.Args {
			fmt.Fprintf(&sb, "- `%s` %s\n", a.Name, a.Description)
		}
	}
	if flags := c.Flags(); len(flags) > 0 {
		sb.WriteString("\n## Flags\n\n")
		for i, f := range flags {
			req := ""
			if i < len(c.Required) {
				req = " (required)"
			}
			fmt.Fprintf(&sb, "- `%s` %s%s\n", strings.Join(f.Spellings(), ", "), f.Help, req)
		}
	}
	if len(c.Examples) > 0 {
		sb.WriteString("\n## Examples\n\n")
		for _, ex := range c.Examples {
			fmt.Fprintf(&sb, "    %s\n", ex)
		}
	}
	return sb.String()
}

// Check verifies that every required positional and flag is present,
// failing with InvalidArgument carrying the usage string.
func (c Contract) Check(p *args.Parsed) error {
	required := 0
	for _, a := range c.Args {
		if a.Required {
			required++
		}
	}
	if len(p.Positionals()) < required {
		return errs.InvalidArgument(c.Usage())
	}
	for _, f := range c.Required {
		if _, ok := p.Value(f); !ok && !(f.Boolean && p.Present(f)) {
			return errs.InvalidArgument(c.Usage())
		}
	}
	return nil
}
