package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/aidanlsb/xcproj/internal/resolver"
)

// IssueType classifies a manifest problem.
type IssueType string

const (
	IssueDanglingID     IssueType = "dangling_id"
	IssueMissingFile    IssueType = "missing_file"
	IssueDuplicateName  IssueType = "duplicate_name"
	IssueDuplicatePath  IssueType = "duplicate_path"
	IssueUnknownTarget  IssueType = "unknown_target"
	IssueUnknownPackage IssueType = "unknown_package"
)

// Issue is one problem found by Check.
type Issue struct {
	Type    IssueType
	Subject string
	Message string
}

// Check inspects p for internal inconsistencies and, relative to root, for
// file references whose files are gone. Duplicate file names are reported
// because they make filename-only references ambiguous.
func (p *Project) Check(root string) []Issue {
	var issues []Issue
	ids := make(map[string]bool, len(p.Files))
	seenPath := make(map[string]bool, len(p.Files))
	for _, f := range p.Files {
		ids[f.ID] = true
		if f.Path != "" {
			if seenPath[f.Path] {
				issues = append(issues, Issue{IssueDuplicatePath, f.Path, "path referenced more than once"})
			}
			seenPath[f.Path] = true
		}
	}

	p.WalkGroups(func(groupPath string, g *Group) {
		for _, id := range g.Files {
			if !ids[id] {
				issues = append(issues, Issue{IssueDanglingID, id, fmt.Sprintf("group %q refers to an unknown file", displayGroup(groupPath, g))})
			}
		}
	})

	targets := make(map[string]bool, len(p.Targets))
	for _, t := range p.Targets {
		targets[t.Name] = true
	}
	for _, t := range p.Targets {
		for _, ph := range t.Phases {
			for _, id := range ph.Files {
				if !ids[id] {
					issues = append(issues, Issue{IssueDanglingID, id, fmt.Sprintf("phase %q of target %s refers to an unknown file", ph.Name, t.Name)})
				}
			}
		}
		for _, d := range t.Dependencies {
			if !targets[d] {
				issues = append(issues, Issue{IssueUnknownTarget, d, fmt.Sprintf("target %s depends on an unknown target", t.Name)})
			}
		}
		for _, pp := range t.Packages {
			if p.Package(pp.Package) == nil {
				issues = append(issues, Issue{IssueUnknownPackage, pp.Package, fmt.Sprintf("target %s links a product of an unknown package", t.Name)})
			}
		}
	}
	for _, s := range p.Schemes {
		for _, n := range append(append([]string(nil), s.Build...), s.Test...) {
			if !targets[n] {
				issues = append(issues, Issue{IssueUnknownTarget, n, fmt.Sprintf("scheme %s names an unknown target", s.Name)})
			}
		}
	}

	for _, c := range resolver.FindCollisions(p.Files) {
		issues = append(issues, Issue{IssueDuplicateName, c.Name, fmt.Sprintf("%d files share this name", len(c.Candidates))})
	}

	for _, f := range p.InvalidReferences(root) {
		issues = append(issues, Issue{IssueMissingFile, f.Path, "file does not exist"})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Type < issues[j].Type
	})
	return issues
}

func displayGroup(groupPath string, g *Group) string {
	if groupPath == "" {
		return g.Name
	}
	return groupPath
}

// InvalidReferences returns file references with a path that does not exist
// relative to root. References without a path (SDK items) are skipped.
func (p *Project) InvalidReferences(root string) []*FileRef {
	var out []*FileRef
	for _, f := range p.Files {
		if f.Path == "" {
			continue
		}
		full := f.Path
		if !filepath.IsAbs(full) {
			full = filepath.Join(root, filepath.FromSlash(f.Path))
		}
		if _, err := os.Stat(full); os.IsNotExist(err) {
			out = append(out, f)
		}
	}
	return out
}

// RemoveInvalidReferences removes every reference InvalidReferences reports
// and returns them.
func (p *Project) RemoveInvalidReferences(root string) []*FileRef {
	invalid := p.InvalidReferences(root)
	for _, f := range invalid {
		p.removeFileID(f.ID)
	}
	return invalid
}
