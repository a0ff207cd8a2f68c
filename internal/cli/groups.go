package cli

import (
	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/manifest"
	"github.com/aidanlsb/xcproj/internal/paths"
	"github.com/aidanlsb/xcproj/internal/ui"
)

var groupCommands = []commands.Contract{
	createGroupsCmd,
	removeGroupCmd,
	renameGroupCmd,
	listGroupsCmd,
}

var createGroupsCmd = commands.Contract{
	Name:        "create-groups",
	Description: "Create groups, including missing parents",
	Args: []commands.Arg{
		{Name: "group-path", Description: "Slash-separated group paths", Required: true, Variadic: true},
	},
	Examples: []string{"xcproj create-groups Sources/Feature/Views Sources/Feature/Models"},
	Run: func(env *commands.Env) error {
		var groupPaths []string
		for _, raw := range env.Args.Positionals() {
			p, err := env.Path(raw)
			if err != nil {
				return err
			}
			groupPaths = append(groupPaths, p)
		}

		for _, p := range groupPaths {
			if _, created := env.Project.EnsureGroup(p); created {
				env.Println(ui.Successf("Created group %s", p))
			} else {
				env.Println(ui.Infof("Group %s already exists", p))
			}
		}
		return nil
	},
}

var removeGroupCmd = commands.Contract{
	Name:        "remove-group",
	Description: "Remove a group; with --force its files leave the manifest too",
	Args: []commands.Arg{
		{Name: "group-path", Description: "Slash-separated group path", Required: true},
	},
	Optional: []args.Flag{args.Force},
	Examples: []string{"xcproj remove-group Sources/Legacy --force"},
	Run: func(env *commands.Env) error {
		groupPath, err := pathArg(env, 0)
		if err != nil {
			return err
		}
		removed, err := env.Project.RemoveGroup(groupPath, env.Args.Present(args.Force))
		if err != nil {
			return err
		}
		if removed > 0 {
			env.Println(ui.Successf("Removed group %s and %s", groupPath, ui.Count(removed, "file reference", "file references")))
		} else {
			env.Println(ui.Successf("Removed group %s", groupPath))
		}
		return nil
	},
}

var renameGroupCmd = commands.Contract{
	Name:        "rename-group",
	Description: "Rename a group",
	Args: []commands.Arg{
		{Name: "group-path", Description: "Slash-separated group path", Required: true},
		{Name: "new-name", Description: "New group name", Required: true},
	},
	Examples: []string{"xcproj rename-group Sources/Old New"},
	Run: func(env *commands.Env) error {
		groupPath, err := pathArg(env, 0)
		if err != nil {
			return err
		}
		newName, err := nameArg(env, 1, "group name")
		if err != nil {
			return err
		}
		if paths.HasSeparator(newName) {
			return errs.InvalidValue("Group name contains a separator", newName)
		}
		if err := env.Project.RenameGroup(groupPath, newName); err != nil {
			return err
		}
		env.Println(ui.Successf("Renamed %s to %s", groupPath, newName))
		return nil
	},
}

var listGroupsCmd = commands.Contract{
	Name:        "list-groups",
	Description: "Print the group tree",
	ReadOnly:    true,
	Run: func(env *commands.Env) error {
		env.Project.WalkGroups(func(groupPath string, g *manifest.Group) {
			depth := len(paths.Components(groupPath))
			label := g.Name
			if n := len(g.Files); n > 0 {
				label += " " + ui.Hint("("+ui.Count(n, "file", "files")+")")
			}
			env.Println(ui.Tree(depth, label))
		})
		return nil
	},
}
