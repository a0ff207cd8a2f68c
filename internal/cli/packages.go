package cli

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/ui"
)

var packageCommands = []commands.Contract{
	addFrameworkCmd,
	addSwiftPackageCmd,
	removeSwiftPackageCmd,
	listSwiftPackagesCmd,
}

// frameworkExts are the suffixes a linked framework may carry. Names
// without one get ".framework".
var frameworkExts = []string{".framework", ".xcframework", ".tbd", ".dylib", ".a"}

var addFrameworkCmd = commands.Contract{
	Name:        "add-framework",
	Description: "Link a framework or library into targets",
	Args: []commands.Arg{
		{Name: "name", Description: "Framework name, e.g. UIKit or Vendor.xcframework", Required: true},
	},
	Required: []args.Flag{args.Targets},
	Optional: []args.Flag{args.Embed},
	Examples: []string{
		"xcproj add-framework UIKit --targets App",
		"xcproj add-framework Vendor.xcframework --targets App --embed",
	},
	Run: func(env *commands.Env) error {
		name, err := nameArg(env, 0, "framework name")
		if err != nil {
			return err
		}
		if strings.Contains(name, "/") {
			return errs.InvalidValue("Framework name contains a separator", name)
		}
		hasExt := false
		for _, ext := range frameworkExts {
			if strings.HasSuffix(name, ext) {
				hasExt = true
			}
		}
		if !hasExt {
			name += ".framework"
		}
		targets, err := targetsFlag(env)
		if err != nil {
			return err
		}

		embed := env.Args.Present(args.Embed)
		for _, t := range targets {
			if err := t.AddFramework(name, embed); err != nil {
				return err
			}
		}
		env.Println(ui.Successf("Linked %s into %s", name, ui.Count(len(targets), "target", "targets")))
		return nil
	},
}

// requirementPattern accepts "kind: value" version requirements.
var requirementPattern = regexp.MustCompile(`^(from|exact|upToNextMajor|upToNextMinor|branch|revision):\s*([A-Za-z0-9._/+-]+)$`)

// packageURL validates a package repository location.
func packageURL(env *commands.Env, raw string) (string, error) {
	if _, err := env.Name(raw, "package URL"); err != nil {
		return "", err
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", errs.InvalidValue("Invalid package URL", raw)
	}
	switch u.Scheme {
	case "https", "http", "ssh", "git":
	default:
		return "", errs.InvalidValue("Unsupported package URL scheme", raw)
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			return "", errs.InvalidValue("Package URL must not embed credentials", u.Redacted())
		}
	}
	return raw, nil
}

var addSwiftPackageCmd = commands.Contract{
	Name:        "add-swift-package",
	Description: "Add a remote Swift package and optionally link its products",
	Args: []commands.Arg{
		{Name: "url", Description: "Repository URL", Required: true},
	},
	Required: []args.Flag{args.Requirement},
	Optional: []args.Flag{args.Products, args.Target},
	Examples: []string{
		"xcproj add-swift-package https://github.com/apple/swift-log --requirement 'from: 1.5.0' --products Logging --target App",
		"xcproj add-swift-package https://github.com/pointfreeco/swift-snapshot-testing --requirement 'branch: main'",
	},
	Run: func(env *commands.Env) error {
		pkgURL, err := packageURL(env, arg(env, 0))
		if err != nil {
			return err
		}
		requirement, _ := env.Args.Value(args.Requirement)
		m := requirementPattern.FindStringSubmatch(strings.TrimSpace(requirement))
		if m == nil {
			return errs.InvalidValue("Invalid requirement (expected from|exact|upToNextMajor|upToNextMinor|branch|revision: value)", requirement)
		}
		requirement = m[1] + ": " + m[2]

		products, err := env.Names(env.Args.List(args.Products), "product name")
		if err != nil {
			return err
		}
		targetName, err := optionalName(env, args.Target, "target name")
		if err != nil {
			return err
		}
		if len(products) > 0 && targetName == "" {
			return errs.InvalidArgument("--products needs --target")
		}

		if _, err := env.Project.AddPackage(pkgURL, requirement); err != nil {
			return err
		}
		if len(products) > 0 {
			t, err := env.Project.Target(targetName)
			if err != nil {
				return err
			}
			for _, product := range products {
				if err := env.Project.LinkProduct(t, pkgURL, product); err != nil {
					return err
				}
			}
		}

		env.Println(ui.Successf("Added package %s (%s)", pkgURL, requirement))
		if len(products) > 0 {
			env.Println(ui.Successf("Linked %s into %s", strings.Join(products, ", "), targetName))
		}
		return nil
	},
}

var removeSwiftPackageCmd = commands.Contract{
	Name:        "remove-swift-package",
	Description: "Remove a Swift package and every product linked from it",
	Args: []commands.Arg{
		{Name: "url", Description: "Repository URL", Required: true},
	},
	Run: func(env *commands.Env) error {
		pkgURL, err := packageURL(env, arg(env, 0))
		if err != nil {
			return err
		}
		if err := env.Project.RemovePackage(pkgURL); err != nil {
			return err
		}
		env.Println(ui.Successf("Removed package %s", pkgURL))
		return nil
	},
}

var listSwiftPackagesCmd = commands.Contract{
	Name:        "list-swift-packages",
	Description: "List Swift packages and the targets linking their products",
	ReadOnly:    true,
	Run: func(env *commands.Env) error {
		if len(env.Project.Packages) == 0 {
			env.Println(ui.Hint("No packages"))
			return nil
		}
		tbl := ui.NewTable(3)
		for _, pkg := range env.Project.Packages {
			var links []string
			for _, t := range env.Project.Targets {
				for _, pp := range t.Packages {
					if pp.Package == pkg.URL {
						links = append(links, pp.Product+" → "+t.Name)
					}
				}
			}
			tbl.AddRow(pkg.URL, pkg.Requirement, ui.Hint(strings.Join(links, ", ")))
		}
		env.Printf("%s", tbl.String())
		return nil
	},
}
