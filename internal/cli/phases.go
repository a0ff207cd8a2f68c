package cli

import (
	"strings"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/manifest"
	"github.com/aidanlsb/xcproj/internal/ui"
	"github.com/aidanlsb/xcproj/internal/validate"
)

var phaseCommands = []commands.Contract{
	addBuildPhaseCmd,
	removeBuildPhaseCmd,
	listBuildPhasesCmd,
}

// DefaultShell runs script phases that name no shell.
const DefaultShell = "/bin/sh"

// scriptShells are the interpreters a script phase may use.
var scriptShells = []string{
	"/bin/sh",
	"/bin/bash",
	"/bin/zsh",
	"/usr/bin/env bash",
	"/usr/bin/env zsh",
	"/usr/bin/python3",
	"/usr/bin/ruby",
}

// copyDestinations are the bundle locations a copy-files phase may target.
var copyDestinations = []string{
	"resources",
	"frameworks",
	"shared-frameworks",
	"shared-support",
	"plugins",
	"executables",
	"products",
	"wrapper",
}

func oneOf(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

var addBuildPhaseCmd = commands.Contract{
	Name:        "add-build-phase",
	Description: "Add a run-script or copy-files phase to a target",
	Args: []commands.Arg{
		{Name: "kind", Description: "run_script or copy_files", Required: true},
	},
	Required: []args.Flag{args.Name, args.Target},
	Optional: []args.Flag{args.Script, args.Shell, args.Destination},
	Examples: []string{
		`xcproj add-build-phase run_script --name Lint --target App --script 'swiftlint lint --quiet'`,
		"xcproj add-build-phase copy_files --name 'Embed Plugins' --target App --destination plugins",
	},
	Run: func(env *commands.Env) error {
		kind := arg(env, 0)
		name, err := optionalName(env, args.Name, "phase name")
		if err != nil {
			return err
		}
		targetName, err := optionalName(env, args.Target, "target name")
		if err != nil {
			return err
		}

		switch kind {
		case manifest.PhaseRunScript:
			script, ok := env.Args.Value(args.Script)
			if !ok {
				return errs.InvalidArgument("run_script phases need --script")
			}
			if !validate.ValidateShellScript(script) {
				return errs.InvalidArgument("Script rejected: it contains a disallowed construct")
			}
			shell := DefaultShell
			if v, ok := env.Args.Value(args.Shell); ok {
				shell = v
			}
			if !oneOf(scriptShells, shell) {
				return errs.InvalidValue("Unsupported shell (expected one of "+strings.Join(scriptShells, ", ")+")", shell)
			}

			t, err := env.Project.Target(targetName)
			if err != nil {
				return err
			}
			ph, err := env.Project.AddScriptPhase(t, name, shell, script)
			if err != nil {
				return err
			}
			env.Logger.Debug("script phase", "id", ph.ID, "command", shell+" -c "+validate.EscapeShellToken(script))

		case manifest.PhaseCopyFiles:
			dest, ok := env.Args.Value(args.Destination)
			if !ok {
				return errs.InvalidArgument("copy_files phases need --destination")
			}
			if !oneOf(copyDestinations, dest) {
				return errs.InvalidValue("Unknown destination (expected one of "+strings.Join(copyDestinations, ", ")+")", dest)
			}

			t, err := env.Project.Target(targetName)
			if err != nil {
				return err
			}
			if _, err := env.Project.AddCopyFilesPhase(t, name, dest); err != nil {
				return err
			}

		default:
			return errs.InvalidValue("Unknown phase kind (expected run_script or copy_files)", kind)
		}

		env.Println(ui.Successf("Added %s phase %q to %s", kind, name, targetName))
		return nil
	},
}

var removeBuildPhaseCmd = commands.Contract{
	Name:        "remove-build-phase",
	Description: "Remove a named build phase from a target",
	Required:    []args.Flag{args.Name, args.Target},
	Examples:    []string{"xcproj remove-build-phase --name Lint --target App"},
	Run: func(env *commands.Env) error {
		name, err := optionalName(env, args.Name, "phase name")
		if err != nil {
			return err
		}
		targetName, err := optionalName(env, args.Target, "target name")
		if err != nil {
			return err
		}
		t, err := env.Project.Target(targetName)
		if err != nil {
			return err
		}
		if err := t.RemovePhase(name); err != nil {
			return err
		}
		env.Println(ui.Successf("Removed phase %q from %s", name, targetName))
		return nil
	},
}

var listBuildPhasesCmd = commands.Contract{
	Name:        "list-build-phases",
	Description: "List a target's build phases in order",
	Args: []commands.Arg{
		{Name: "target", Description: "Target name", Required: true},
	},
	ReadOnly: true,
	Run: func(env *commands.Env) error {
		name, err := nameArg(env, 0, "target name")
		if err != nil {
			return err
		}
		t, err := env.Project.Target(name)
		if err != nil {
			return err
		}
		if len(t.Phases) == 0 {
			env.Println(ui.Hint("No build phases"))
			return nil
		}

		tbl := ui.NewTable(3)
		for _, ph := range t.Phases {
			var detail string
			switch ph.Kind {
			case manifest.PhaseRunScript:
				detail = ph.Shell
			case manifest.PhaseCopyFiles:
				detail = "to " + ph.Destination
			default:
				detail = ui.Count(len(ph.Files), "file", "files")
			}
			tbl.AddRow(ph.Name, ph.Kind, ui.Hint(detail))
		}
		env.Printf("%s", tbl.String())
		return nil
	},
}
