package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/xcproj/internal/errs"
)

// WorkspaceExt is the file suffix of a workspace.
const WorkspaceExt = ".xcworkspace"

// Workspace groups several manifests.
type Workspace struct {
	Name     string   `yaml:"name"`
	Projects []string `yaml:"projects"`
}

// LoadWorkspace reads the workspace at path.
func LoadWorkspace(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NotFound("Workspace not found: %s", path)
		}
		return nil, errs.Wrap(err, errs.KindOperationFailed, fmt.Sprintf("read workspace %s", path))
	}
	var ws Workspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, errs.Wrap(err, errs.KindOperationFailed, fmt.Sprintf("parse workspace %s", path))
	}
	return &ws, nil
}

// MarshalWorkspace encodes ws.
func MarshalWorkspace(ws *Workspace) ([]byte, error) {
	if ws.Projects == nil {
		ws.Projects = []string{}
	}
	return encode(ws)
}

// AddProject appends a manifest path to ws.
func (ws *Workspace) AddProject(projectPath string) error {
	if containsString(ws.Projects, projectPath) {
		return errs.OperationFailed("Workspace %s already contains %s", ws.Name, projectPath)
	}
	ws.Projects = append(ws.Projects, projectPath)
	return nil
}
