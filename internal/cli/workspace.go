package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/manifest"
	"github.com/aidanlsb/xcproj/internal/ui"
)

var workspaceCommands = []commands.Contract{
	createWorkspaceCmd,
	addProjectToWorkspaceCmd,
	listWorkspaceProjectsCmd,
}

// workspaceFile validates a workspace path and returns it relative to and
// joined with env.Dir. The suffix is added when missing.
func workspaceFile(env *commands.Env, raw string) (rel, full string, err error) {
	rel, err = env.Path(raw)
	if err != nil {
		return "", "", err
	}
	if !strings.HasSuffix(rel, manifest.WorkspaceExt) {
		rel += manifest.WorkspaceExt
	}
	full = rel
	if !filepath.IsAbs(full) {
		full = filepath.Join(env.Dir, filepath.FromSlash(rel))
	}
	return rel, full, nil
}

func saveWorkspace(env *commands.Env, full string, ws *manifest.Workspace) error {
	data, err := manifest.MarshalWorkspace(ws)
	if err != nil {
		return errs.PersistenceFailed(err, "encode workspace %s", full)
	}
	return env.WriteFile(full, data)
}

var createWorkspaceCmd = commands.Contract{
	Name:         "create-workspace",
	Description:  "Create an empty workspace file in the working directory",
	Manifestless: true,
	Args: []commands.Arg{
		{Name: "name", Description: "Workspace name", Required: true},
	},
	Examples: []string{"xcproj create-workspace Suite"},
	Run: func(env *commands.Env) error {
		name, err := nameArg(env, 0, "workspace name")
		if err != nil {
			return err
		}
		name = strings.TrimSuffix(name, manifest.WorkspaceExt)
		if strings.ContainsAny(name, `/\`) {
			return errs.InvalidValue("Workspace name contains a separator", name)
		}
		rel, full, err := workspaceFile(env, name)
		if err != nil {
			return err
		}
		if _, err := os.Stat(full); err == nil {
			return errs.OperationFailed("Workspace already exists: %s", rel)
		}

		if err := saveWorkspace(env, full, &manifest.Workspace{Name: name}); err != nil {
			return err
		}
		env.Println(ui.Successf("Created workspace %s", rel))
		return nil
	},
}

var addProjectToWorkspaceCmd = commands.Contract{
	Name:         "add-project-to-workspace",
	Description:  "Add a project manifest to a workspace",
	Manifestless: true,
	Args: []commands.Arg{
		{Name: "workspace", Description: "Workspace file", Required: true},
		{Name: "project-path", Description: "Manifest path relative to the workspace directory", Required: true},
	},
	Examples: []string{"xcproj add-project-to-workspace Suite.xcworkspace App/App.xcproj"},
	Run: func(env *commands.Env) error {
		rel, full, err := workspaceFile(env, arg(env, 0))
		if err != nil {
			return err
		}
		projectPath, err := pathArg(env, 1)
		if err != nil {
			return err
		}
		if !strings.HasSuffix(projectPath, manifest.Ext) {
			return errs.InvalidValue("Project path must name an "+manifest.Ext+" manifest", projectPath)
		}
		onDisk := filepath.Join(filepath.Dir(full), filepath.FromSlash(projectPath))
		if _, err := os.Stat(onDisk); os.IsNotExist(err) {
			return errs.NotFound("Manifest not found: %s", projectPath)
		}

		ws, err := manifest.LoadWorkspace(full)
		if err != nil {
			return err
		}
		if err := ws.AddProject(projectPath); err != nil {
			return err
		}
		if err := saveWorkspace(env, full, ws); err != nil {
			return err
		}
		env.Println(ui.Successf("Added %s to %s", projectPath, rel))
		return nil
	},
}

var listWorkspaceProjectsCmd = commands.Contract{
	Name:         "list-workspace-projects",
	Description:  "List the projects of a workspace",
	Manifestless: true,
	ReadOnly:     true,
	Args: []commands.Arg{
		{Name: "workspace", Description: "Workspace file", Required: true},
	},
	Run: func(env *commands.Env) error {
		_, full, err := workspaceFile(env, arg(env, 0))
		if err != nil {
			return err
		}
		ws, err := manifest.LoadWorkspace(full)
		if err != nil {
			return err
		}
		if len(ws.Projects) == 0 {
			env.Println(ui.Hint("No projects"))
			return nil
		}
		for _, p := range ws.Projects {
			env.Println(p)
		}
		return nil
	},
}
