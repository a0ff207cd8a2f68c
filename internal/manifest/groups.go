package manifest

import (
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/paths"
)

// FindGroup returns the group at a slash-separated path of group names
// below the root group. "" is the root. A leading component naming the root
// group itself is accepted.
func (p *Project) FindGroup(groupPath string) *Group {
	g := p.Group
	for _, name := range p.groupComponents(groupPath) {
		child := g.child(name)
		if child == nil {
			return nil
		}
		g = child
	}
	return g
}

func (p *Project) groupComponents(groupPath string) []string {
	comps := paths.Components(groupPath)
	if len(comps) > 0 && comps[0] == p.Group.Name && p.Group.child(comps[0]) == nil {
		comps = comps[1:]
	}
	return comps
}

func (g *Group) child(name string) *Group {
	for _, c := range g.Groups {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// EnsureGroup returns the group at groupPath, creating missing groups along
// the way. created reports whether anything was created.
func (p *Project) EnsureGroup(groupPath string) (g *Group, created bool) {
	g = p.Group
	for _, name := range p.groupComponents(groupPath) {
		child := g.child(name)
		if child == nil {
			child = &Group{Name: name, Path: name}
			g.Groups = append(g.Groups, child)
			created = true
		}
		g = child
	}
	return g, created
}

// RemoveGroup removes the group at groupPath. A group that still holds files
// or subgroups is only removed with force, and its files leave the manifest
// with it. It returns the number of file references removed.
func (p *Project) RemoveGroup(groupPath string, force bool) (int, error) {
	comps := p.groupComponents(groupPath)
	if len(comps) == 0 {
		return 0, errs.OperationFailed("The root group cannot be removed")
	}
	parent := p.FindGroup(paths.Join(comps[:len(comps)-1]...))
	if parent == nil {
		return 0, errs.NotFound("Group not found: %s", groupPath)
	}
	g := parent.child(comps[len(comps)-1])
	if g == nil {
		return 0, errs.NotFound("Group not found: %s", groupPath)
	}
	if !force && (len(g.Files) > 0 || len(g.Groups) > 0) {
		return 0, errs.OperationFailed("Group %s is not empty; use --force to remove it with its contents", groupPath)
	}

	var ids []string
	walkGroup(g, "", func(_ string, sub *Group) {
		ids = append(ids, sub.Files...)
	})

	kept := parent.Groups[:0]
	for _, c := range parent.Groups {
		if c != g {
			kept = append(kept, c)
		}
	}
	parent.Groups = kept

	removed := 0
	for _, id := range ids {
		if p.removeFileID(id) {
			removed++
		}
	}
	return removed, nil
}

// RenameGroup renames the group at groupPath.
func (p *Project) RenameGroup(groupPath, newName string) error {
	comps := p.groupComponents(groupPath)
	if len(comps) == 0 {
		p.Group.Name = newName
		return nil
	}
	parent := p.FindGroup(paths.Join(comps[:len(comps)-1]...))
	if parent == nil {
		return errs.NotFound("Group not found: %s", groupPath)
	}
	g := parent.child(comps[len(comps)-1])
	if g == nil {
		return errs.NotFound("Group not found: %s", groupPath)
	}
	if g.Name == newName {
		return nil
	}
	if parent.child(newName) != nil {
		return errs.OperationFailed("A group named %s already exists next to %s", newName, groupPath)
	}
	if g.Path == g.Name {
		g.Path = newName
	}
	g.Name = newName
	return nil
}

// WalkGroups visits every group depth-first, root first, with its path.
func (p *Project) WalkGroups(fn func(groupPath string, g *Group)) {
	walkGroup(p.Group, "", fn)
}

func walkGroup(g *Group, groupPath string, fn func(string, *Group)) {
	fn(groupPath, g)
	for _, c := range g.Groups {
		walkGroup(c, paths.Join(groupPath, c.Name), fn)
	}
}

// GroupPathOf returns the path of the first group holding file id.
func (p *Project) GroupPathOf(id string) (string, bool) {
	found, ok := "", false
	p.WalkGroups(func(groupPath string, g *Group) {
		if !ok && containsString(g.Files, id) {
			found, ok = groupPath, true
		}
	})
	return found, ok
}

func (p *Project) detachFromGroups(id string) {
	p.WalkGroups(func(_ string, g *Group) {
		g.Files, _ = removeString(g.Files, id)
	})
}
