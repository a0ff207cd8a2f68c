package cli

import (
	"regexp"
	"strings"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/manifest"
	"github.com/aidanlsb/xcproj/internal/ui"
)

var targetCommands = []commands.Contract{
	addTargetCmd,
	duplicateTargetCmd,
	removeTargetCmd,
	listTargetsCmd,
	addDependencyCmd,
	removeDependencyCmd,
}

// bundleIDPattern accepts reverse-DNS identifiers such as "com.example.app".
var bundleIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+$`)

func bundleIDFlag(env *commands.Env) (string, error) {
	raw, ok := env.Args.Value(args.BundleID)
	if !ok {
		return "", nil
	}
	id, err := env.Name(raw, "bundle identifier")
	if err != nil {
		return "", err
	}
	if !bundleIDPattern.MatchString(id) {
		return "", errs.InvalidValue("Invalid bundle identifier", raw)
	}
	return id, nil
}

var addTargetCmd = commands.Contract{
	Name:        "add-target",
	Description: "Create a target with empty sources, resources and frameworks phases",
	Args: []commands.Arg{
		{Name: "name", Description: "Target name", Required: true},
	},
	Required: []args.Flag{args.Type},
	Optional: []args.Flag{args.BundleID, args.Platform},
	Examples: []string{
		"xcproj add-target Widget --type app-extension --platform ios",
		"xcproj add-target AppTests --type unit-test --bundle-id com.example.app.tests",
	},
	Run: func(env *commands.Env) error {
		name, err := nameArg(env, 0, "target name")
		if err != nil {
			return err
		}
		productType, err := optionalName(env, args.Type, "product type")
		if err != nil {
			return err
		}
		platform, err := optionalName(env, args.Platform, "platform")
		if err != nil {
			return err
		}
		bundleID, err := bundleIDFlag(env)
		if err != nil {
			return err
		}

		t, err := env.Project.AddTarget(name, productType, bundleID, strings.ToLower(platform))
		if err != nil {
			return err
		}
		env.Println(ui.Successf("Created target %s (%s, %s, %s)", t.Name, t.Type, t.Platform, t.BundleID))
		return nil
	},
}

var duplicateTargetCmd = commands.Contract{
	Name:        "duplicate-target",
	Description: "Copy a target with its phases, settings and dependencies",
	Args: []commands.Arg{
		{Name: "source", Description: "Existing target", Required: true},
		{Name: "new-name", Description: "Name of the copy", Required: true},
	},
	Optional: []args.Flag{args.BundleID},
	Examples: []string{"xcproj duplicate-target App AppStaging --bundle-id com.example.app.staging"},
	Run: func(env *commands.Env) error {
		source, err := nameArg(env, 0, "target name")
		if err != nil {
			return err
		}
		newName, err := nameArg(env, 1, "target name")
		if err != nil {
			return err
		}
		bundleID, err := bundleIDFlag(env)
		if err != nil {
			return err
		}

		t, err := env.Project.DuplicateTarget(source, newName, bundleID)
		if err != nil {
			return err
		}
		env.Println(ui.Successf("Duplicated %s as %s (%s)", source, t.Name, t.BundleID))
		return nil
	},
}

var removeTargetCmd = commands.Contract{
	Name:        "remove-target",
	Description: "Remove a target, dependencies on it and its scheme entries",
	Args: []commands.Arg{
		{Name: "name", Description: "Target name", Required: true},
	},
	Run: func(env *commands.Env) error {
		name, err := nameArg(env, 0, "target name")
		if err != nil {
			return err
		}
		if err := env.Project.RemoveTarget(name); err != nil {
			return err
		}
		env.Println(ui.Successf("Removed target %s", name))
		return nil
	},
}

var listTargetsCmd = commands.Contract{
	Name:        "list-targets",
	Description: "List targets with product type, platform and bundle identifier",
	ReadOnly:    true,
	Run: func(env *commands.Env) error {
		if len(env.Project.Targets) == 0 {
			env.Println(ui.Hint("No targets"))
			return nil
		}
		tbl := ui.NewTable(4)
		for _, t := range env.Project.Targets {
			tbl.AddRow(t.Name, t.Type, t.Platform, ui.Hint(t.BundleID))
		}
		env.Printf("%s", tbl.String())
		return nil
	},
}

func dependencyArgs(env *commands.Env) (string, string, error) {
	target, err := nameArg(env, 0, "target name")
	if err != nil {
		return "", "", err
	}
	dep, err := optionalName(env, args.DependsOn, "target name")
	if err != nil {
		return "", "", err
	}
	return target, dep, nil
}

var addDependencyCmd = commands.Contract{
	Name:        "add-dependency",
	Description: "Make a target depend on another target",
	Args: []commands.Arg{
		{Name: "target", Description: "Dependent target", Required: true},
	},
	Required: []args.Flag{args.DependsOn},
	Examples: []string{"xcproj add-dependency App --depends-on Core"},
	Run: func(env *commands.Env) error {
		target, dep, err := dependencyArgs(env)
		if err != nil {
			return err
		}
		if err := env.Project.AddDependency(target, dep); err != nil {
			return err
		}
		env.Println(ui.Successf("%s now depends on %s", target, dep))
		return nil
	},
}

var removeDependencyCmd = commands.Contract{
	Name:        "remove-dependency",
	Description: "Remove a dependency between targets",
	Args: []commands.Arg{
		{Name: "target", Description: "Dependent target", Required: true},
	},
	Required: []args.Flag{args.DependsOn},
	Run: func(env *commands.Env) error {
		target, dep, err := dependencyArgs(env)
		if err != nil {
			return err
		}
		if err := env.Project.RemoveDependency(target, dep); err != nil {
			return err
		}
		env.Println(ui.Successf("%s no longer depends on %s", target, dep))
		return nil
	},
}

// targetsFlag resolves the required --targets list.
func targetsFlag(env *commands.Env) ([]*manifest.Target, error) {
	names, err := targetNames(env, args.Targets)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errs.InvalidArgument("--targets lists no target names")
	}
	return env.Project.TargetsNamed(names)
}
