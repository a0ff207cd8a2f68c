package cli

import (
	"strings"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/ui"
)

var schemeCommands = []commands.Contract{
	createSchemeCmd,
	removeSchemeCmd,
	listSchemesCmd,
}

var createSchemeCmd = commands.Contract{
	Name:        "create-scheme",
	Description: "Create a scheme; test bundles go to the test action",
	Args: []commands.Arg{
		{Name: "name", Description: "Scheme name", Required: true},
	},
	Required: []args.Flag{args.Targets},
	Examples: []string{"xcproj create-scheme App --targets App,AppTests"},
	Run: func(env *commands.Env) error {
		name, err := nameArg(env, 0, "scheme name")
		if err != nil {
			return err
		}
		targets, err := targetsFlag(env)
		if err != nil {
			return err
		}
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = t.Name
		}
		s, err := env.Project.CreateScheme(name, names)
		if err != nil {
			return err
		}
		env.Println(ui.Successf("Created scheme %s (build: %d, test: %d)", s.Name, len(s.Build), len(s.Test)))
		return nil
	},
}

var removeSchemeCmd = commands.Contract{
	Name:        "remove-scheme",
	Description: "Remove a scheme",
	Args: []commands.Arg{
		{Name: "name", Description: "Scheme name", Required: true},
	},
	Run: func(env *commands.Env) error {
		name, err := nameArg(env, 0, "scheme name")
		if err != nil {
			return err
		}
		if err := env.Project.RemoveScheme(name); err != nil {
			return err
		}
		env.Println(ui.Successf("Removed scheme %s", name))
		return nil
	},
}

var listSchemesCmd = commands.Contract{
	Name:        "list-schemes",
	Description: "List schemes with their build and test targets",
	ReadOnly:    true,
	Run: func(env *commands.Env) error {
		if len(env.Project.Schemes) == 0 {
			env.Println(ui.Hint("No schemes"))
			return nil
		}
		tbl := ui.NewTable(3)
		for _, s := range env.Project.Schemes {
			test := ""
			if len(s.Test) > 0 {
				test = "test: " + strings.Join(s.Test, ", ")
			}
			tbl.AddRow(s.Name, "build: "+strings.Join(s.Build, ", "), test)
		}
		env.Printf("%s", tbl.String())
		return nil
	},
}
