// Package resolver handles reference resolution: mapping a user-supplied path
// or name fragment onto manifest entries.
package resolver

import (
	"sort"

	"github.com/aidanlsb/xcproj/internal/paths"
	"github.com/aidanlsb/xcproj/internal/validate"
)

// Candidate is a manifest entry that can be referenced by path or name.
// An empty string means the attribute is absent.
type Candidate interface {
	RefPath() string
	RefName() string
}

// Strategy identifies which rule matched a candidate.
type Strategy int

const (
	// NoMatch means no rule matched.
	NoMatch Strategy = iota
	// ExactMatch means the token equals the path or the name.
	ExactMatch
	// FilenameMatch means a separator-free token equals the last component.
	FilenameMatch
	// SuffixMatch means the token's components end the path or the name.
	SuffixMatch
)

// Result represents the result of resolving a token.
type Result[C Candidate] struct {
	// Match is the winning candidate (zero value if Found is false).
	Match C

	// Found is true if at least one candidate matched.
	Found bool

	// Ambiguous is true if more than one candidate matched; Match is still
	// chosen deterministically.
	Ambiguous bool

	// Matches contains all matching candidates, best first.
	Matches []C
}

type scored[C Candidate] struct {
	candidate C
	index     int
	strategy  Strategy
}

// Resolve matches token against candidates and orders every match.
func Resolve[C Candidate](token string, candidates []C) Result[C] {
	return ResolveWith(validate.DefaultPolicy, token, candidates)
}

// ResolveWith is Resolve with token validated under policy, so references
// stored above the project root can be matched when policy allows them.
func ResolveWith[C Candidate](policy validate.PathPolicy, token string, candidates []C) Result[C] {
	var result Result[C]

	clean, ok := normalizeToken(policy, token)
	if !ok {
		return result
	}

	var found []scored[C]
	for i, c := range candidates {
		if s := matchStrategy(clean, c); s != NoMatch {
			found = append(found, scored[C]{candidate: c, index: i, strategy: s})
		}
	}
	if len(found) == 0 {
		return result
	}

	sort.Slice(found, func(i, j int) bool {
		return less(clean, found[i], found[j])
	})

	result.Found = true
	result.Match = found[0].candidate
	result.Ambiguous = len(found) > 1
	result.Matches = make([]C, len(found))
	for i, s := range found {
		result.Matches[i] = s.candidate
	}
	return result
}

// Best returns the single best match for token.
func Best[C Candidate](token string, candidates []C) (C, bool) {
	r := Resolve(token, candidates)
	return r.Match, r.Found
}

// Matches returns all candidates matching token, best first.
func Matches[C Candidate](token string, candidates []C) []C {
	return Resolve(token, candidates).Matches
}

// MatchStrategy reports which rule, if any, matches token against c.
func MatchStrategy(token string, c Candidate) Strategy {
	clean, ok := normalizeToken(validate.DefaultPolicy, token)
	if !ok {
		return NoMatch
	}
	return matchStrategy(clean, c)
}

func normalizeToken(policy validate.PathPolicy, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	clean, ok := policy.SanitizePath(token)
	if !ok || clean == "" || clean == "." {
		return "", false
	}
	return clean, true
}

func matchStrategy(token string, c Candidate) Strategy {
	p, n := c.RefPath(), c.RefName()

	// 1) Exact match on path or name.
	if (p != "" && token == p) || (n != "" && token == n) {
		return ExactMatch
	}

	// 2) Filename-only match, for tokens without a separator.
	if !paths.HasSeparator(token) {
		if (p != "" && token == paths.Base(p)) || (n != "" && token == paths.Base(n)) {
			return FilenameMatch
		}
		return NoMatch
	}

	// 3) Trailing path-component match.
	tokenComps := paths.Components(token)
	if len(tokenComps) > 1 {
		if p != "" && paths.HasComponentSuffix(paths.Components(p), tokenComps) {
			return SuffixMatch
		}
		if n != "" && paths.HasComponentSuffix(paths.Components(n), tokenComps) {
			return SuffixMatch
		}
	}
	return NoMatch
}

// less orders matches: exact path, exact name, more specific (longer) raw
// reference, then lexical order and original position for stability.
func less[C Candidate](token string, a, b scored[C]) bool {
	ap, bp := a.candidate.RefPath(), b.candidate.RefPath()
	an, bn := a.candidate.RefName(), b.candidate.RefName()

	if aExact, bExact := ap != "" && ap == token, bp != "" && bp == token; aExact != bExact {
		return aExact
	}
	if aExact, bExact := an != "" && an == token, bn != "" && bn == token; aExact != bExact {
		return aExact
	}
	if la, lb := specificity(ap, an), specificity(bp, bn); la != lb {
		return la > lb
	}
	if ap != bp {
		return ap < bp
	}
	if an != bn {
		return an < bn
	}
	return a.index < b.index
}

func specificity(p, n string) int {
	if len(p) >= len(n) {
		return len(p)
	}
	return len(n)
}

// Collision represents candidates sharing the same file name.
type Collision[C Candidate] struct {
	Name       string // The shared last component (e.g., "Info.plist")
	Candidates []C    // The candidates sharing it, in input order
}

// FindCollisions finds candidates that share a file name, which makes
// filename-only references to them ambiguous. Results are sorted by name.
func FindCollisions[C Candidate](candidates []C) []Collision[C] {
	byName := make(map[string][]C)
	for _, c := range candidates {
		name := paths.Base(c.RefPath())
		if name == "" {
			name = paths.Base(c.RefName())
		}
		if name == "" {
			continue
		}
		byName[name] = append(byName[name], c)
	}

	var collisions []Collision[C]
	for name, cs := range byName {
		if len(cs) > 1 {
			collisions = append(collisions, Collision[C]{Name: name, Candidates: cs})
		}
	}
	sort.Slice(collisions, func(i, j int) bool {
		return collisions[i].Name < collisions[j].Name
	})
	return collisions
}
