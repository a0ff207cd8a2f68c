package manifest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aidanlsb/xcproj/internal/errs"
)

// Discover returns the manifests directly inside dir, sorted.
func Discover(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "*"+Ext)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		full := filepath.Join(dir, filepath.FromSlash(m))
		if st, err := os.Stat(full); err == nil && !st.IsDir() {
			out = append(out, full)
		}
	}
	return out, nil
}

// Locate resolves the manifest to operate on. project is the --project value
// (a manifest file or a directory holding exactly one); when empty, cwd is
// searched. Relative values are taken from cwd.
func Locate(project, cwd string) (string, error) {
	dir := cwd
	if project != "" {
		candidate := project
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(cwd, candidate)
		}
		st, err := os.Stat(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errs.NotFound("Manifest not found: %s", project)
			}
			return "", errs.Wrap(err, errs.KindOperationFailed, "inspect "+project)
		}
		if !st.IsDir() {
			return candidate, nil
		}
		dir = candidate
	}

	found, err := Discover(dir)
	if err != nil {
		return "", errs.Wrap(err, errs.KindOperationFailed, "search "+dir)
	}
	switch len(found) {
	case 0:
		return "", errs.InvalidArgument("No " + Ext + " manifest found in " + dir + "; use --project <path>")
	case 1:
		return found[0], nil
	default:
		names := make([]string, len(found))
		for i, f := range found {
			names[i] = filepath.Base(f)
		}
		return "", errs.InvalidArgument("Multiple manifests found in " + dir + " (" + strings.Join(names, ", ") + "); use --project <path>")
	}
}

// MatchGlob reports whether a manifest path matches a doublestar pattern.
// Invalid patterns never match.
func MatchGlob(pattern, filePath string) bool {
	ok, err := doublestar.Match(pattern, filePath)
	return err == nil && ok
}

// ValidGlob reports whether pattern is a well-formed doublestar pattern.
func ValidGlob(pattern string) bool {
	return doublestar.ValidatePattern(pattern)
}

// WalkFolder lists files under dir matching pattern (default "*", or "**/*"
// when recursive), as slash-separated paths relative to dir. Hidden entries
// are skipped.
func WalkFolder(dir, pattern string, recursive bool) ([]string, error) {
	if pattern == "" {
		pattern = "*"
		if recursive {
			pattern = "**/*"
		}
	} else if recursive && !strings.Contains(pattern, "/") {
		pattern = "**/" + pattern
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, m := range matches {
		if hidden(m) {
			continue
		}
		st, err := os.Stat(filepath.Join(dir, filepath.FromSlash(m)))
		if err != nil || (st.IsDir() && !isBundleDir(m)) {
			continue
		}
		if insideBundle(m) {
			continue
		}
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

func hidden(rel string) bool {
	for _, c := range strings.Split(rel, "/") {
		if strings.HasPrefix(c, ".") {
			return true
		}
	}
	return false
}

// bundleExts are directories the manifest references as single files.
var bundleExts = []string{".xcassets", ".framework", ".xcframework", ".bundle", ".xcdatamodeld"}

func isBundleDir(rel string) bool {
	ext := strings.ToLower(filepath.Ext(rel))
	for _, b := range bundleExts {
		if ext == b {
			return true
		}
	}
	return false
}

func insideBundle(rel string) bool {
	comps := strings.Split(rel, "/")
	for _, c := range comps[:len(comps)-1] {
		if isBundleDir(c) {
			return true
		}
	}
	return false
}
