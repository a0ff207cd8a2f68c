package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aidanlsb/xcproj/internal/errs"
)

// Registry maps command names to contracts. It is built once and never
// modified.
type Registry struct {
	byName map[string]Contract
	names  []string
}

// New builds a registry, rejecting unnamed, duplicate or operation-less
// contracts.
func New(contracts ...Contract) (*Registry, error) {
	r := &Registry{byName: make(map[string]Contract, len(contracts))}
	for _, c := range contracts {
		if c.Name == "" {
			return nil, fmt.Errorf("command without a name")
		}
		if c.Run == nil {
			return nil, fmt.Errorf("command %s has no operation", c.Name)
		}
		if _, dup := r.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate command %s", c.Name)
		}
		r.byName[c.Name] = c
		r.names = append(r.names, c.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// MustNew is New for static command tables.
func MustNew(contracts ...Contract) *Registry {
	r, err := New(contracts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the named contract. Unknown names fail with
// InvalidArgument listing every available command.
func (r *Registry) Lookup(name string) (Contract, error) {
	c, ok := r.byName[name]
	if !ok {
		return Contract{}, errs.InvalidArgument(fmt.Sprintf("Unknown command: %s. Available commands: %s", name, strings.Join(r.names, ", ")))
	}
	return c, nil
}

// Names returns every command name, sorted.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Contracts returns every contract, sorted by name.
func (r *Registry) Contracts() []Contract {
	out := make([]Contract, len(r.names))
	for i, n := range r.names {
		out[i] = r.byName[n]
	}
	return out
}

// Manifestless returns the sorted names of commands that need no manifest.
func (r *Registry) Manifestless() []string {
	var out []string
	for _, n := range r.names {
		if r.byName[n].Manifestless {
			out = append(out, n)
		}
	}
	return out
}

// KnownFlags returns the flag spellings the named command declares.
func (r *Registry) KnownFlags(name string) ([]string, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return c.KnownFlags(), nil
}

// Usage returns the usage string of the named command.
func (r *Registry) Usage(name string) (string, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return c.Usage(), nil
}
