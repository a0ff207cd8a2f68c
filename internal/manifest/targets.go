package manifest

import (
	"sort"
	"strings"

	"github.com/gosimple/slug"

	"github.com/aidanlsb/xcproj/internal/errs"
)

// ProductTypes are the accepted target product types.
var ProductTypes = []string{
	"application",
	"framework",
	"static-library",
	"dynamic-library",
	"unit-test",
	"ui-test",
	"app-extension",
	"bundle",
	"tool",
}

// Platforms are the accepted target platforms.
var Platforms = []string{"ios", "macos", "tvos", "watchos", "visionos"}

// DefaultPlatform is used when a target names none.
const DefaultPlatform = "ios"

var phaseNames = map[string]string{
	PhaseSources:    "Sources",
	PhaseResources:  "Resources",
	PhaseFrameworks: "Frameworks",
	PhaseHeaders:    "Headers",
}

// Target returns the named target or NotFound.
func (p *Project) Target(name string) (*Target, error) {
	for _, t := range p.Targets {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, errs.NotFound("Target not found: %s", name)
}

// TargetsNamed resolves every name, failing on the first unknown one.
func (p *Project) TargetsNamed(names []string) ([]*Target, error) {
	out := make([]*Target, 0, len(names))
	for _, n := range names {
		t, err := p.Target(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// DefaultBundleID derives a bundle identifier from the project and target
// names, e.g. "com.my-app.widget".
func DefaultBundleID(project, target string) string {
	return "com." + slug.Make(project) + "." + slug.Make(target)
}

// IsTest reports whether t is a test bundle.
func (t *Target) IsTest() bool {
	return t.Type == "unit-test" || t.Type == "ui-test"
}

// AddTarget creates a target with empty sources, resources and frameworks
// phases.
func (p *Project) AddTarget(name, productType, bundleID, platform string) (*Target, error) {
	if !containsString(ProductTypes, productType) {
		return nil, errs.InvalidValue("Unknown product type (expected one of "+strings.Join(ProductTypes, ", ")+")", productType)
	}
	if platform == "" {
		platform = DefaultPlatform
	}
	if !containsString(Platforms, platform) {
		return nil, errs.InvalidValue("Unknown platform (expected one of "+strings.Join(Platforms, ", ")+")", platform)
	}
	if _, err := p.Target(name); err == nil {
		return nil, errs.OperationFailed("Target already exists: %s", name)
	}
	if bundleID == "" {
		bundleID = DefaultBundleID(p.Name, name)
	}

	t := &Target{
		Name:     name,
		Type:     productType,
		BundleID: bundleID,
		Platform: platform,
		Settings: make(map[string]map[string]string),
	}
	for _, kind := range []string{PhaseSources, PhaseResources, PhaseFrameworks} {
		p.ensurePhase(t, kind)
	}
	p.Targets = append(p.Targets, t)
	return t, nil
}

// DuplicateTarget copies source under a new name. Phases get fresh ids and
// keep their file membership.
func (p *Project) DuplicateTarget(source, newName, bundleID string) (*Target, error) {
	src, err := p.Target(source)
	if err != nil {
		return nil, err
	}
	if _, err := p.Target(newName); err == nil {
		return nil, errs.OperationFailed("Target already exists: %s", newName)
	}
	if bundleID == "" {
		bundleID = DefaultBundleID(p.Name, newName)
	}

	t := &Target{
		Name:         newName,
		Type:         src.Type,
		BundleID:     bundleID,
		Platform:     src.Platform,
		Settings:     make(map[string]map[string]string, len(src.Settings)),
		Dependencies: append([]string(nil), src.Dependencies...),
	}
	for _, ph := range src.Phases {
		c := *ph
		c.ID = p.newID()
		c.Files = append([]string(nil), ph.Files...)
		t.Phases = append(t.Phases, &c)
	}
	for cfg, kv := range src.Settings {
		m := make(map[string]string, len(kv))
		for k, v := range kv {
			m[k] = v
		}
		t.Settings[cfg] = m
	}
	for _, fw := range src.Frameworks {
		c := *fw
		t.Frameworks = append(t.Frameworks, &c)
	}
	for _, pp := range src.Packages {
		c := *pp
		t.Packages = append(t.Packages, &c)
	}
	p.Targets = append(p.Targets, t)
	return t, nil
}

// RemoveTarget removes a target along with dependencies on it and its
// scheme entries.
func (p *Project) RemoveTarget(name string) error {
	t, err := p.Target(name)
	if err != nil {
		return err
	}
	kept := p.Targets[:0]
	for _, other := range p.Targets {
		if other != t {
			kept = append(kept, other)
		}
	}
	p.Targets = kept

	for _, other := range p.Targets {
		other.Dependencies, _ = removeString(other.Dependencies, name)
	}
	for _, s := range p.Schemes {
		s.Build, _ = removeString(s.Build, name)
		s.Test, _ = removeString(s.Test, name)
	}
	return nil
}

// AddDependency makes target depend on dep.
func (p *Project) AddDependency(target, dep string) error {
	t, err := p.Target(target)
	if err != nil {
		return err
	}
	if _, err := p.Target(dep); err != nil {
		return err
	}
	if target == dep {
		return errs.OperationFailed("Target %s cannot depend on itself", target)
	}
	if containsString(t.Dependencies, dep) {
		return errs.OperationFailed("Target %s already depends on %s", target, dep)
	}
	if p.dependsOn(dep, target, map[string]bool{}) {
		return errs.OperationFailed("Dependency %s -> %s would create a cycle", target, dep)
	}
	t.Dependencies = append(t.Dependencies, dep)
	return nil
}

func (p *Project) dependsOn(from, to string, seen map[string]bool) bool {
	if seen[from] {
		return false
	}
	seen[from] = true
	t, err := p.Target(from)
	if err != nil {
		return false
	}
	for _, d := range t.Dependencies {
		if d == to || p.dependsOn(d, to, seen) {
			return true
		}
	}
	return false
}

// RemoveDependency drops dep from target.
func (p *Project) RemoveDependency(target, dep string) error {
	t, err := p.Target(target)
	if err != nil {
		return err
	}
	var removed bool
	t.Dependencies, removed = removeString(t.Dependencies, dep)
	if !removed {
		return errs.NotFound("Target %s does not depend on %s", target, dep)
	}
	return nil
}

// Phase returns the first phase of the given kind.
func (t *Target) Phase(kind string) *Phase {
	for _, ph := range t.Phases {
		if ph.Kind == kind {
			return ph
		}
	}
	return nil
}

// PhaseNamed returns the phase with the given name.
func (t *Target) PhaseNamed(name string) *Phase {
	for _, ph := range t.Phases {
		if ph.Name == name {
			return ph
		}
	}
	return nil
}

func (p *Project) ensurePhase(t *Target, kind string) *Phase {
	if ph := t.Phase(kind); ph != nil {
		return ph
	}
	ph := &Phase{ID: p.newID(), Kind: kind, Name: phaseNames[kind]}
	t.Phases = append(t.Phases, ph)
	return ph
}

// AddScriptPhase appends a run-script phase.
func (p *Project) AddScriptPhase(t *Target, name, shell, script string) (*Phase, error) {
	if t.PhaseNamed(name) != nil {
		return nil, errs.OperationFailed("Target %s already has a phase named %s", t.Name, name)
	}
	ph := &Phase{ID: p.newID(), Kind: PhaseRunScript, Name: name, Shell: shell, Script: script}
	t.Phases = append(t.Phases, ph)
	return ph, nil
}

// AddCopyFilesPhase appends a copy-files phase.
func (p *Project) AddCopyFilesPhase(t *Target, name, destination string) (*Phase, error) {
	if t.PhaseNamed(name) != nil {
		return nil, errs.OperationFailed("Target %s already has a phase named %s", t.Name, name)
	}
	ph := &Phase{ID: p.newID(), Kind: PhaseCopyFiles, Name: name, Destination: destination}
	t.Phases = append(t.Phases, ph)
	return ph, nil
}

// RemovePhase removes the phase with the given name.
func (t *Target) RemovePhase(name string) error {
	for i, ph := range t.Phases {
		if ph.Name == name {
			t.Phases = append(t.Phases[:i], t.Phases[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("Build phase not found: %s (target %s)", name, t.Name)
}

// configurations returns the configurations a setting change applies to.
func (p *Project) configurations(config string) ([]string, error) {
	if config == "" {
		return p.Configurations, nil
	}
	if !p.HasConfiguration(config) {
		return nil, errs.NotFound("Build configuration not found: %s", config)
	}
	return []string{config}, nil
}

// SetBuildSetting sets key on every target for config ("" means all
// configurations). The configuration is checked before anything changes.
func (p *Project) SetBuildSetting(targets []*Target, config, key, value string) error {
	configs, err := p.configurations(config)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if t.Settings == nil {
			t.Settings = make(map[string]map[string]string)
		}
		for _, c := range configs {
			if t.Settings[c] == nil {
				t.Settings[c] = make(map[string]string)
			}
			t.Settings[c][key] = value
		}
	}
	return nil
}

// RemoveBuildSetting deletes key and returns how many values were removed.
func (p *Project) RemoveBuildSetting(targets []*Target, config, key string) (int, error) {
	configs, err := p.configurations(config)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, t := range targets {
		for _, c := range configs {
			if _, ok := t.Settings[c][key]; ok {
				delete(t.Settings[c], key)
				removed++
			}
		}
	}
	return removed, nil
}

// Setting is one build setting value.
type Setting struct {
	Config string
	Key    string
	Value  string
}

// BuildSettings lists t's settings for config ("" means all), sorted by
// configuration then key.
func (p *Project) BuildSettings(t *Target, config string) ([]Setting, error) {
	configs, err := p.configurations(config)
	if err != nil {
		return nil, err
	}
	var out []Setting
	for _, c := range configs {
		for k, v := range t.Settings[c] {
			out = append(out, Setting{Config: c, Key: k, Value: v})
		}
	}
	order := make(map[string]int, len(configs))
	for i, c := range configs {
		order[c] = i
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Config != out[j].Config {
			return order[out[i].Config] < order[out[j].Config]
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// AddFramework links a framework into t.
func (t *Target) AddFramework(name string, embed bool) error {
	for _, fw := range t.Frameworks {
		if fw.Name == name {
			return errs.OperationFailed("Target %s already links %s", t.Name, name)
		}
	}
	t.Frameworks = append(t.Frameworks, &Framework{Name: name, Embed: embed})
	return nil
}
