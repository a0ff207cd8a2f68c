// Package testutil provides reusable test utilities for xcproj integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/xcproj/internal/config"
	"github.com/aidanlsb/xcproj/internal/manifest"
)

// ManifestName is the manifest file every test project uses.
const ManifestName = "App" + manifest.Ext

// TestProject represents a temporary project directory for testing.
type TestProject struct {
	Path     string
	t        *testing.T
	manifest string
	files    map[string]string
	cfg      *config.Config
}

// NewTestProject creates a new test project builder.
// Call Build() to create the actual project directory.
func NewTestProject(t *testing.T) *TestProject {
	t.Helper()
	cfg := config.Default()
	cfg.Audit.Enabled = false
	return &TestProject{
		t:        t,
		manifest: MinimalManifest(),
		files:    make(map[string]string),
		cfg:      cfg,
	}
}

// WithManifest sets the App.xcproj content. An empty string writes no
// manifest.
func (p *TestProject) WithManifest(yaml string) *TestProject {
	p.manifest = yaml
	return p
}

// WithFile adds a file to the project.
// The path is relative to the project root.
func (p *TestProject) WithFile(path, content string) *TestProject {
	p.files[path] = content
	return p
}

// WithConfig adjusts the configuration the CLI runs with.
func (p *TestProject) WithConfig(fn func(*config.Config)) *TestProject {
	fn(p.cfg)
	return p
}

// Build creates the project directory and all configured files.
// Returns the TestProject for method chaining.
func (p *TestProject) Build() *TestProject {
	p.t.Helper()

	p.Path = p.t.TempDir()

	if p.manifest != "" {
		p.writeFile(ManifestName, p.manifest)
	}
	for path, content := range p.files {
		p.writeFile(path, content)
	}

	return p
}

// writeFile writes a file to the project, creating directories as needed.
func (p *TestProject) writeFile(relPath, content string) {
	p.t.Helper()
	fullPath := filepath.Join(p.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		p.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		p.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the project.
func (p *TestProject) ReadFile(relPath string) string {
	p.t.Helper()
	fullPath := filepath.Join(p.Path, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		p.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the project.
func (p *TestProject) FileExists(relPath string) bool {
	p.t.Helper()
	_, err := os.Stat(filepath.Join(p.Path, relPath))
	return err == nil
}

// Manifest loads App.xcproj as it is on disk.
func (p *TestProject) Manifest() *manifest.Project {
	p.t.Helper()
	m, err := manifest.Load(filepath.Join(p.Path, ManifestName))
	if err != nil {
		p.t.Fatalf("failed to load manifest: %v", err)
	}
	return m
}

// MinimalManifest returns an empty manifest named App.
func MinimalManifest() string {
	return `name: App
configurations: [Debug, Release]
group:
  name: App
`
}

// AppManifest returns a manifest with an App target, a test target, three
// files and a group tree. AppFiles creates the files it references.
func AppManifest() string {
	return `name: App
configurations: [Debug, Release]
files:
  - {id: F00000000000000000000001, name: AppDelegate.swift, path: Sources/AppDelegate.swift, type: sourcecode.swift}
  - {id: F00000000000000000000002, name: User.swift, path: Sources/Models/User.swift, type: sourcecode.swift}
  - {id: F00000000000000000000003, name: Info.plist, path: Resources/Info.plist, type: text.plist.xml}
group:
  name: App
  groups:
    - name: Sources
      path: Sources
      files: [F00000000000000000000001]
      groups:
        - {name: Models, path: Models, files: [F00000000000000000000002]}
    - {name: Resources, path: Resources, files: [F00000000000000000000003]}
targets:
  - name: App
    type: application
    bundle_id: com.example.app
    platform: ios
    phases:
      - {id: P00000000000000000000001, kind: sources, name: Sources, files: [F00000000000000000000001, F00000000000000000000002]}
      - {id: P00000000000000000000002, kind: resources, name: Resources}
      - {id: P00000000000000000000003, kind: frameworks, name: Frameworks}
    settings:
      Debug: {SWIFT_VERSION: "5.0"}
      Release: {SWIFT_VERSION: "5.0"}
  - name: AppTests
    type: unit-test
    bundle_id: com.example.app.tests
    platform: ios
    phases:
      - {id: P00000000000000000000004, kind: sources, name: Sources}
    dependencies: [App]
`
}

// WithAppFiles adds AppManifest and the files it references.
func (p *TestProject) WithAppFiles() *TestProject {
	return p.WithManifest(AppManifest()).
		WithFile("Sources/AppDelegate.swift", "import UIKit\n").
		WithFile("Sources/Models/User.swift", "struct User {}\n").
		WithFile("Resources/Info.plist", "<plist/>\n")
}
