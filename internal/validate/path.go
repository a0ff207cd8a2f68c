// Package validate rejects unsafe input before it can influence file-system
// paths, shell invocations or build settings.
//
// Every function here is total: rejection is reported through the boolean
// result, never by panicking or returning an error. Input is accepted or
// refused as a whole and is never rewritten to make it "safe".
package validate

import (
	"net/url"
	"path"
	"strings"
)

// MaxInputLength bounds paths, identifiers and setting values.
const MaxInputLength = 1024

// criticalSystemDirs are absolute locations a manifest must never point into.
var criticalSystemDirs = []string{
	"/bin",
	"/sbin",
	"/usr/bin",
	"/usr/sbin",
	"/etc",
	"/dev",
	"/proc",
	"/sys",
	"/tmp",
	"/var/tmp",
	"/private/etc",
	"/private/tmp",
	"/private/var/tmp",
	"/System",
	"/boot",
	"/root",
}

// encodedTraversal lists sequences that must not survive a single decode.
var encodedTraversal = []string{
	"%2e",
	"%2f",
	"%5c",
	"%00",
	"%25",
	"..\\",
	"\\..",
}

// PathPolicy controls how far above the resolution root a path may climb.
type PathPolicy struct {
	// AllowParentEscape tolerates a single ".." above the root.
	AllowParentEscape bool
}

// DefaultPolicy forbids any traversal above the resolution root.
var DefaultPolicy = PathPolicy{}

// SanitizePath validates raw under DefaultPolicy.
func SanitizePath(raw string) (string, bool) {
	return DefaultPolicy.SanitizePath(raw)
}

// SanitizeManifestPath validates raw under DefaultPolicy as a path stored in
// a manifest.
func SanitizeManifestPath(raw string) (string, bool) {
	return DefaultPolicy.SanitizeManifestPath(raw)
}

func (p PathPolicy) depthFloor() int {
	if p.AllowParentEscape {
		return -1
	}
	return 0
}

// SanitizePath returns the syntactically normalized form of raw, or false if
// raw is unsafe. No filesystem access takes place.
func (p PathPolicy) SanitizePath(raw string) (string, bool) {
	if !withinLimits(raw) {
		return "", false
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil || strings.ContainsRune(decoded, 0) {
		return "", false
	}
	if strings.Contains(decoded, "//") || strings.ContainsAny(decoded, "\r\n\t") {
		return "", false
	}

	floor := p.depthFloor()
	depth := 0
	for _, comp := range strings.Split(decoded, "/") {
		switch comp {
		case "", ".":
			continue
		case "..":
			depth--
			if depth < floor {
				return "", false
			}
		default:
			depth++
		}
	}

	normalized := path.Clean(decoded)
	if strings.HasPrefix(decoded, "/") && isCriticalSystemPath(normalized) {
		return "", false
	}

	lower := strings.ToLower(normalized)
	for _, pattern := range encodedTraversal {
		if strings.Contains(lower, pattern) {
			return "", false
		}
	}
	if strings.Contains(lower, "//") || strings.ContainsAny(lower, "\r\n\t") {
		return "", false
	}

	return normalized, true
}

// SanitizeManifestPath is SanitizePath for paths that end up in the manifest,
// where build tools may later hand them to a shell. Paths carrying shell
// metacharacters or a home-directory prefix are refused as well.
func (p PathPolicy) SanitizeManifestPath(raw string) (string, bool) {
	clean, ok := p.SanitizePath(raw)
	if !ok || containsShellDanger(clean, false) || expandsHome(raw) {
		return "", false
	}
	return clean, true
}

func isCriticalSystemPath(normalized string) bool {
	for _, dir := range criticalSystemDirs {
		if normalized == dir || strings.HasPrefix(normalized, dir+"/") {
			return true
		}
	}
	return false
}

// withinLimits applies the checks shared by every validator.
func withinLimits(raw string) bool {
	return raw != "" && len(raw) <= MaxInputLength && !strings.ContainsRune(raw, 0)
}
