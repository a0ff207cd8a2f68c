package manifest

import (
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/paths"
	"github.com/aidanlsb/xcproj/internal/resolver"
)

// FileByID returns the file reference with the given id.
func (p *Project) FileByID(id string) *FileRef {
	for _, f := range p.Files {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// FileByPath returns the file reference whose path is exactly filePath.
func (p *Project) FileByPath(filePath string) *FileRef {
	for _, f := range p.Files {
		if f.Path == filePath {
			return f
		}
	}
	return nil
}

// ResolveFile returns the best match for token among the file references.
func (p *Project) ResolveFile(token string) (*FileRef, error) {
	f, ok := resolver.Best(token, p.Files)
	if !ok {
		return nil, errs.NotFound("File not found: %s", token)
	}
	return f, nil
}

// AddFile adds a file reference under groupPath (created on demand) and
// attaches it to the build phase its type belongs to in each target.
// Targets are checked before anything changes.
func (p *Project) AddFile(filePath, groupPath string, targetNames []string) (*FileRef, error) {
	targets, err := p.TargetsNamed(targetNames)
	if err != nil {
		return nil, err
	}
	if p.FileByPath(filePath) != nil {
		return nil, errs.OperationFailed("File already in manifest: %s", filePath)
	}

	ref := &FileRef{
		ID:   p.newID(),
		Name: paths.Base(filePath),
		Path: filePath,
		Type: FileType(filePath),
	}
	p.Files = append(p.Files, ref)

	g, _ := p.EnsureGroup(groupPath)
	g.Files = append(g.Files, ref.ID)

	for _, t := range targets {
		p.attach(t, ref)
	}
	return ref, nil
}

func (p *Project) attach(t *Target, ref *FileRef) {
	kind := PhaseFor(ref.Path)
	if kind == "" {
		return
	}
	ph := p.ensurePhase(t, kind)
	if !containsString(ph.Files, ref.ID) {
		ph.Files = append(ph.Files, ref.ID)
	}
}

// RemoveFile removes ref from the manifest, its groups and every phase.
func (p *Project) RemoveFile(ref *FileRef) {
	p.removeFileID(ref.ID)
}

func (p *Project) removeFileID(id string) bool {
	found := false
	kept := p.Files[:0]
	for _, f := range p.Files {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	p.Files = kept

	p.detachFromGroups(id)
	for _, t := range p.Targets {
		for _, ph := range t.Phases {
			ph.Files, _ = removeString(ph.Files, id)
		}
	}
	return found
}

// MoveFile points ref at newPath and, when groupPath is set, moves it to
// that group.
func (p *Project) MoveFile(ref *FileRef, newPath, groupPath string) error {
	if other := p.FileByPath(newPath); other != nil && other != ref {
		return errs.OperationFailed("File already in manifest: %s", newPath)
	}
	ref.Path = newPath
	ref.Name = paths.Base(newPath)
	ref.Type = FileType(newPath)

	if groupPath != "" {
		p.detachFromGroups(ref.ID)
		g, _ := p.EnsureGroup(groupPath)
		g.Files = append(g.Files, ref.ID)
	}
	return nil
}

// FilesInGroup returns the file references in groupPath and its subgroups,
// in tree order.
func (p *Project) FilesInGroup(groupPath string) ([]*FileRef, error) {
	g := p.FindGroup(groupPath)
	if g == nil {
		return nil, errs.NotFound("Group not found: %s", groupPath)
	}
	var out []*FileRef
	walkGroup(g, "", func(_ string, sub *Group) {
		for _, id := range sub.Files {
			if f := p.FileByID(id); f != nil {
				out = append(out, f)
			}
		}
	})
	return out, nil
}

// UpdatePaths rewrites every file path under oldPrefix to sit under
// newPrefix, returning the number of references changed.
func (p *Project) UpdatePaths(oldPrefix, newPrefix string) int {
	changed := 0
	for _, f := range p.Files {
		if updated, ok := paths.ReplacePrefix(f.Path, oldPrefix, newPrefix); ok && updated != f.Path {
			f.Path = updated
			f.Name = paths.Base(updated)
			changed++
		}
	}
	return changed
}
