package cli

import (
	"fmt"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/ui"
	"github.com/aidanlsb/xcproj/internal/validate"
)

var settingCommands = []commands.Contract{
	setBuildSettingCmd,
	removeBuildSettingCmd,
	getBuildSettingsCmd,
	listBuildConfigsCmd,
}

// configFlag returns the --config value; "" means every configuration.
func configFlag(env *commands.Env) (string, error) {
	return optionalName(env, args.Config, "configuration name")
}

var setBuildSettingCmd = commands.Contract{
	Name:        "set-build-setting",
	Description: "Set a build setting on targets for one or every configuration",
	Args: []commands.Arg{
		{Name: "key", Description: "Setting name, optionally with a [sdk=...] condition", Required: true},
		{Name: "value", Description: "Setting value", Required: true},
	},
	Required: []args.Flag{args.Targets},
	Optional: []args.Flag{args.Config},
	Examples: []string{
		"xcproj set-build-setting SWIFT_VERSION 5.0 --targets App,AppTests",
		`xcproj set-build-setting HEADER_SEARCH_PATHS '$(inherited) Vendor/include' --targets App --config Debug`,
	},
	Run: func(env *commands.Env) error {
		key, value := arg(env, 0), arg(env, 1)
		if !validate.ValidateBuildSetting(key, value) {
			return errs.InvalidValue("Invalid build setting", key+" = "+value)
		}
		config, err := configFlag(env)
		if err != nil {
			return err
		}
		targets, err := targetsFlag(env)
		if err != nil {
			return err
		}

		if err := env.Project.SetBuildSetting(targets, config, key, value); err != nil {
			return err
		}
		if validate.IsSensitiveSetting(key) {
			env.Logger.Info("sensitive build setting changed", "key", key, "value", value)
			fmt.Fprintln(env.Stderr, ui.Warningf("%s affects compilation or linking; review the value", key))
		}
		env.Println(ui.Successf("Set %s = %s on %s", key, value, ui.Count(len(targets), "target", "targets")))
		return nil
	},
}

var removeBuildSettingCmd = commands.Contract{
	Name:        "remove-build-setting",
	Description: "Remove a build setting from targets",
	Args: []commands.Arg{
		{Name: "key", Description: "Setting name", Required: true},
	},
	Required: []args.Flag{args.Targets},
	Optional: []args.Flag{args.Config},
	Run: func(env *commands.Env) error {
		key := arg(env, 0)
		if !validate.ValidateBuildSetting(key, "") {
			return errs.InvalidValue("Invalid build setting", key)
		}
		config, err := configFlag(env)
		if err != nil {
			return err
		}
		targets, err := targetsFlag(env)
		if err != nil {
			return err
		}

		removed, err := env.Project.RemoveBuildSetting(targets, config, key)
		if err != nil {
			return err
		}
		if removed == 0 {
			return errs.NotFound("Build setting not set: %s", key)
		}
		env.Println(ui.Successf("Removed %s (%s)", key, ui.Count(removed, "value", "values")))
		return nil
	},
}

var getBuildSettingsCmd = commands.Contract{
	Name:        "get-build-settings",
	Description: "Print a target's build settings",
	Args: []commands.Arg{
		{Name: "target", Description: "Target name", Required: true},
	},
	Optional: []args.Flag{args.Config},
	ReadOnly: true,
	Run: func(env *commands.Env) error {
		name, err := nameArg(env, 0, "target name")
		if err != nil {
			return err
		}
		config, err := configFlag(env)
		if err != nil {
			return err
		}
		t, err := env.Project.Target(name)
		if err != nil {
			return err
		}
		settings, err := env.Project.BuildSettings(t, config)
		if err != nil {
			return err
		}

		if len(settings) == 0 {
			env.Println(ui.Hint("No build settings"))
			return nil
		}
		tbl := ui.NewTable(3)
		for _, s := range settings {
			tbl.AddRow(s.Config, s.Key, s.Value)
		}
		env.Printf("%s", tbl.String())
		return nil
	},
}

var listBuildConfigsCmd = commands.Contract{
	Name:        "list-build-configs",
	Description: "List the build configurations",
	ReadOnly:    true,
	Run: func(env *commands.Env) error {
		for _, c := range env.Project.Configurations {
			env.Println(c)
		}
		return nil
	},
}
