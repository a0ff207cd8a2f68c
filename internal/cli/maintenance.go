package cli

import (
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/ui"
)

var maintenanceCommands = []commands.Contract{
	validateCmd,
	listInvalidReferencesCmd,
	removeInvalidReferencesCmd,
	updatePathsCmd,
}

var validateCmd = commands.Contract{
	Name:        "validate",
	Description: "Check the manifest for dangling references, missing files and duplicate names",
	ReadOnly:    true,
	Run: func(env *commands.Env) error {
		issues := env.Project.Check(env.Dir)
		if len(issues) == 0 {
			env.Println(ui.Success("No issues found"))
			return nil
		}

		tbl := ui.NewTable(3)
		for _, issue := range issues {
			tbl.AddRow(ui.Issue(string(issue.Type)), issue.Subject, ui.Hint(issue.Message))
		}
		env.Printf("%s", tbl.String())
		return errs.OperationFailed("Validation found %s", ui.Count(len(issues), "issue", "issues"))
	},
}

var listInvalidReferencesCmd = commands.Contract{
	Name:        "list-invalid-references",
	Description: "List file references whose files do not exist",
	ReadOnly:    true,
	Run: func(env *commands.Env) error {
		invalid := env.Project.InvalidReferences(env.Dir)
		if len(invalid) == 0 {
			env.Println(ui.Hint("No invalid references"))
			return nil
		}
		for _, f := range invalid {
			env.Println(f.Path)
		}
		return nil
	},
}

var removeInvalidReferencesCmd = commands.Contract{
	Name:        "remove-invalid-references",
	Description: "Remove every file reference whose file does not exist",
	Run: func(env *commands.Env) error {
		removed := env.Project.RemoveInvalidReferences(env.Dir)
		for _, f := range removed {
			env.Logger.Debug("removed invalid reference", "path", f.Path, "id", f.ID)
		}
		if len(removed) == 0 {
			env.Println(ui.Info("No invalid references"))
			return nil
		}
		env.Println(ui.Successf("Removed %s", ui.Count(len(removed), "invalid reference", "invalid references")))
		return nil
	},
}

var updatePathsCmd = commands.Contract{
	Name:        "update-paths",
	Description: "Rewrite file paths under one prefix to another",
	Args: []commands.Arg{
		{Name: "old-prefix", Description: "Path prefix to replace", Required: true},
		{Name: "new-prefix", Description: "Replacement prefix", Required: true},
	},
	Examples: []string{"xcproj update-paths Sources/Legacy Sources/Core"},
	Run: func(env *commands.Env) error {
		oldPrefix, err := pathArg(env, 0)
		if err != nil {
			return err
		}
		newPrefix, err := pathArg(env, 1)
		if err != nil {
			return err
		}
		changed := env.Project.UpdatePaths(oldPrefix, newPrefix)
		if changed == 0 {
			env.Println(ui.Infof("No paths under %s", oldPrefix))
			return nil
		}
		env.Println(ui.Successf("Updated %s", ui.Count(changed, "path", "paths")))
		return nil
	},
}
