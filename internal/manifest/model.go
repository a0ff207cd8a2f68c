// Package manifest is the in-memory project manifest and its YAML storage.
//
// A manifest lists file references, a tree of virtual groups that organize
// them, build targets with their phases and settings, Swift packages and
// schemes. Group and phase membership refers to files by ID.
package manifest

// Ext is the file suffix of a project manifest.
const Ext = ".xcproj"

// DefaultConfigurations are created for every new manifest.
var DefaultConfigurations = []string{"Debug", "Release"}

// Project is a loaded manifest.
type Project struct {
	Name           string     `yaml:"name"`
	Configurations []string   `yaml:"configurations"`
	Files          []*FileRef `yaml:"files"`
	Group          *Group     `yaml:"group"`
	Targets        []*Target  `yaml:"targets"`
	Packages       []*Package `yaml:"packages,omitempty"`
	Schemes        []*Scheme  `yaml:"schemes,omitempty"`
}

// FileRef identifies one file by path (relative to the manifest directory)
// and display name.
type FileRef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
	Path string `yaml:"path,omitempty"`
	Type string `yaml:"type,omitempty"`
}

// RefPath implements resolver.Candidate.
func (f *FileRef) RefPath() string { return f.Path }

// RefName implements resolver.Candidate.
func (f *FileRef) RefName() string { return f.Name }

// Group is a virtual folder.
type Group struct {
	Name   string   `yaml:"name"`
	Path   string   `yaml:"path,omitempty"`
	Files  []string `yaml:"files,omitempty"`
	Groups []*Group `yaml:"groups,omitempty"`
}

// Target is a buildable unit.
type Target struct {
	Name         string                       `yaml:"name"`
	Type         string                       `yaml:"type"`
	BundleID     string                       `yaml:"bundle_id,omitempty"`
	Platform     string                       `yaml:"platform,omitempty"`
	Phases       []*Phase                     `yaml:"phases,omitempty"`
	Settings     map[string]map[string]string `yaml:"settings,omitempty"`
	Dependencies []string                     `yaml:"dependencies,omitempty"`
	Frameworks   []*Framework                 `yaml:"frameworks,omitempty"`
	Packages     []*PackageProduct            `yaml:"packages,omitempty"`
}

// Phase kinds.
const (
	PhaseSources    = "sources"
	PhaseResources  = "resources"
	PhaseFrameworks = "frameworks"
	PhaseHeaders    = "headers"
	PhaseRunScript  = "run_script"
	PhaseCopyFiles  = "copy_files"
)

// Phase is a build phase of a target.
type Phase struct {
	ID          string   `yaml:"id"`
	Kind        string   `yaml:"kind"`
	Name        string   `yaml:"name,omitempty"`
	Files       []string `yaml:"files,omitempty"`
	Shell       string   `yaml:"shell,omitempty"`
	Script      string   `yaml:"script,omitempty"`
	Destination string   `yaml:"destination,omitempty"`
}

// Framework is a framework linked by a target.
type Framework struct {
	Name  string `yaml:"name"`
	Embed bool   `yaml:"embed,omitempty"`
}

// PackageProduct links a target to one product of a Swift package.
type PackageProduct struct {
	Package string `yaml:"package"`
	Product string `yaml:"product"`
}

// Package is a remote Swift package dependency.
type Package struct {
	URL         string `yaml:"url"`
	Requirement string `yaml:"requirement"`
}

// Scheme lists the targets built and tested together.
type Scheme struct {
	Name  string   `yaml:"name"`
	Build []string `yaml:"build,omitempty"`
	Test  []string `yaml:"test,omitempty"`
}

// New returns an empty manifest with a root group and the default
// configurations.
func New(name string) *Project {
	p := &Project{
		Name:           name,
		Configurations: append([]string(nil), DefaultConfigurations...),
		Group:          &Group{Name: name},
	}
	return p
}

// normalize fills fields a hand-edited document may omit.
func (p *Project) normalize() {
	if p.Group == nil {
		p.Group = &Group{Name: p.Name}
	}
	if len(p.Configurations) == 0 {
		p.Configurations = append([]string(nil), DefaultConfigurations...)
	}
	for _, t := range p.Targets {
		if t.Settings == nil {
			t.Settings = make(map[string]map[string]string)
		}
	}
}

// HasConfiguration reports whether name is a build configuration.
func (p *Project) HasConfiguration(name string) bool {
	for _, c := range p.Configurations {
		if c == name {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) ([]string, bool) {
	out := list[:0]
	removed := false
	for _, v := range list {
		if v == s {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out, removed
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
