// Package paths provides canonical helpers for manifest-relative paths:
// - file reference paths (e.g. "Sources/Models/User.swift")
// - group paths (e.g. "App/Sources/Models")
//
// Manifest paths always use '/' regardless of the host OS so that lookups,
// suffix matching and serialization stay consistent.
package paths

import (
	"path"
	"path/filepath"
	"strings"
)

// Separator is the separator used inside the manifest.
const Separator = "/"

// Normalize normalizes a path-like value:
// - converts OS separators to '/'
// - trims leading "./"
// - collapses repeated '/'
// - trims a trailing '/' (unless the path is the root)
func Normalize(p string) string {
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// Components splits p into its non-empty, non-"." components.
//
// Examples:
// - "Sources/Models/User.swift" -> [Sources Models User.swift]
// - "/usr/lib/"                 -> [usr lib]
// - ""                          -> []
func Components(p string) []string {
	raw := strings.Split(filepath.ToSlash(p), Separator)
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if c == "" || c == "." {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Base returns the last component of p, or "" when p has none.
func Base(p string) string {
	comps := Components(p)
	if len(comps) == 0 {
		return ""
	}
	return comps[len(comps)-1]
}

// Dir returns p without its last component ("" for single-component paths).
func Dir(p string) string {
	comps := Components(p)
	if len(comps) <= 1 {
		return ""
	}
	return strings.Join(comps[:len(comps)-1], Separator)
}

// Join joins components with '/' and cleans the result syntactically.
// Empty parts are skipped; an all-empty input yields "".
func Join(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return path.Clean(strings.Join(kept, Separator))
}

// HasSeparator reports whether p contains a path separator.
func HasSeparator(p string) bool {
	return strings.Contains(filepath.ToSlash(p), Separator)
}

// HasComponentSuffix reports whether suffix equals the trailing components of full.
func HasComponentSuffix(full, suffix []string) bool {
	if len(suffix) == 0 || len(suffix) > len(full) {
		return false
	}
	offset := len(full) - len(suffix)
	for i, c := range suffix {
		if full[offset+i] != c {
			return false
		}
	}
	return true
}

// ReplacePrefix replaces a component-aligned prefix of p.
//
// "Sources/Old/A.swift" with prefix "Sources/Old" and replacement "Sources/New"
// becomes "Sources/New/A.swift"; "Sources/Older/A.swift" is left untouched.
func ReplacePrefix(p, prefix, replacement string) (string, bool) {
	p = Normalize(p)
	prefix = Normalize(prefix)
	if prefix == "" {
		return p, false
	}
	if p == prefix {
		return Normalize(replacement), true
	}
	if !strings.HasPrefix(p, prefix+Separator) {
		return p, false
	}
	rest := strings.TrimPrefix(p, prefix+Separator)
	return Join(Normalize(replacement), rest), true
}
