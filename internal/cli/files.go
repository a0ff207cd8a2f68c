package cli

import (
	"fmt"
	"path/filepath"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/manifest"
	"github.com/aidanlsb/xcproj/internal/paths"
	"github.com/aidanlsb/xcproj/internal/profile"
	"github.com/aidanlsb/xcproj/internal/resolver"
	"github.com/aidanlsb/xcproj/internal/ui"
)

var fileCommands = []commands.Contract{
	addFileCmd,
	addFilesCmd,
	addFolderCmd,
	removeFileCmd,
	moveFileCmd,
	findFileCmd,
	listFilesCmd,
}

var addFileCmd = commands.Contract{
	Name:        "add-file",
	Description: "Add a file reference to a group and, optionally, to targets",
	Args: []commands.Arg{
		{Name: "path", Description: "File path relative to the manifest", Required: true},
	},
	Required: []args.Flag{args.Group},
	Optional: []args.Flag{args.Targets},
	Examples: []string{
		"xcproj add-file Sources/Login.swift --group Sources --targets App",
		"xcproj add-file Resources/Info.plist -g Resources",
	},
	Run: func(env *commands.Env) error {
		filePath, err := pathArg(env, 0)
		if err != nil {
			return err
		}
		groupPath, err := optionalPath(env, args.Group)
		if err != nil {
			return err
		}
		targets, err := targetNames(env, args.Targets)
		if err != nil {
			return err
		}

		ref, err := env.Project.AddFile(filePath, groupPath, targets)
		if err != nil {
			return err
		}
		warnIfMissing(env, ref.Path)
		env.Logger.Debug("added file", "id", ref.ID, "type", ref.Type)
		env.Println(ui.Successf("Added %s to %s", ref.Path, groupLabel(env, groupPath)))
		return nil
	},
}

var addFilesCmd = commands.Contract{
	Name:        "add-files",
	Description: "Add several file references to one group",
	Args: []commands.Arg{
		{Name: "path", Description: "File paths relative to the manifest", Required: true, Variadic: true},
	},
	Required: []args.Flag{args.Group},
	Optional: []args.Flag{args.Targets},
	Examples: []string{"xcproj add-files Sources/A.swift Sources/B.swift --group Sources --targets App"},
	Run: func(env *commands.Env) error {
		var filePaths []string
		for _, raw := range env.Args.Positionals() {
			p, err := env.Path(raw)
			if err != nil {
				return err
			}
			filePaths = append(filePaths, p)
		}
		groupPath, err := optionalPath(env, args.Group)
		if err != nil {
			return err
		}
		targets, err := targetNames(env, args.Targets)
		if err != nil {
			return err
		}

		err = profile.MeasureBatch(env.Profiler, "add files", filePaths, func(_ int, filePath string) error {
			_, err := env.Project.AddFile(filePath, groupPath, targets)
			return err
		})
		if err != nil {
			return err
		}
		env.Println(ui.Successf("Added %s to %s", ui.Count(len(filePaths), "file", "files"), groupLabel(env, groupPath)))
		return nil
	},
}

var addFolderCmd = commands.Contract{
	Name:        "add-folder",
	Description: "Add the files of a folder, mirroring subfolders as groups",
	Args: []commands.Arg{
		{Name: "dir", Description: "Folder relative to the manifest", Required: true},
	},
	Required: []args.Flag{args.Group},
	Optional: []args.Flag{args.Targets, args.Recursive, args.Glob},
	Examples: []string{
		"xcproj add-folder Sources/Feature --group Sources/Feature --targets App --recursive",
		"xcproj add-folder Resources --group Resources --glob '*.json'",
	},
	Run: func(env *commands.Env) error {
		dir, err := pathArg(env, 0)
		if err != nil {
			return err
		}
		groupPath, err := optionalPath(env, args.Group)
		if err != nil {
			return err
		}
		targets, err := targetNames(env, args.Targets)
		if err != nil {
			return err
		}
		pattern, _ := env.Args.Value(args.Glob)
		if pattern != "" && !manifest.ValidGlob(pattern) {
			return errs.InvalidValue("Invalid glob pattern", pattern)
		}
		recursive := env.Args.Present(args.Recursive)

		found, err := manifest.WalkFolder(filepath.Join(env.Dir, filepath.FromSlash(dir)), pattern, recursive)
		if err != nil {
			return errs.Wrap(err, errs.KindOperationFailed, "read folder "+dir)
		}
		if len(found) == 0 {
			return errs.NotFound("No matching files in %s", dir)
		}

		added, skipped := 0, 0
		err = profile.MeasureBatch(env.Profiler, "add folder", found, func(_ int, rel string) error {
			filePath := paths.Join(dir, rel)
			if env.Project.FileByPath(filePath) != nil {
				skipped++
				return nil
			}
			if _, err := env.Project.AddFile(filePath, paths.Join(groupPath, paths.Dir(rel)), targets); err != nil {
				return err
			}
			added++
			return nil
		})
		if err != nil {
			return err
		}

		env.Println(ui.Successf("Added %s from %s to %s", ui.Count(added, "file", "files"), dir, groupLabel(env, groupPath)))
		if skipped > 0 {
			env.Println(ui.Infof("Skipped %s already in the manifest", ui.Count(skipped, "file", "files")))
		}
		return nil
	},
}

var removeFileCmd = commands.Contract{
	Name:        "remove-file",
	Description: "Remove a file reference from the manifest, its group and every target",
	Args: []commands.Arg{
		{Name: "path", Description: "File path or name", Required: true},
	},
	Examples: []string{"xcproj remove-file Sources/Legacy.swift"},
	Run: func(env *commands.Env) error {
		ref, err := resolveFile(env, arg(env, 0))
		if err != nil {
			return err
		}
		env.Project.RemoveFile(ref)
		env.Println(ui.Successf("Removed %s", ref.Path))
		return nil
	},
}

var moveFileCmd = commands.Contract{
	Name:        "move-file",
	Description: "Point a file reference at a new path, optionally moving it to another group",
	Args: []commands.Arg{
		{Name: "path", Description: "Current file path or name", Required: true},
		{Name: "new-path", Description: "New file path relative to the manifest", Required: true},
	},
	Optional: []args.Flag{args.Group},
	Examples: []string{"xcproj move-file Sources/Old.swift Sources/Feature/New.swift --group Sources/Feature"},
	Run: func(env *commands.Env) error {
		newPath, err := pathArg(env, 1)
		if err != nil {
			return err
		}
		groupPath, err := optionalPath(env, args.Group)
		if err != nil {
			return err
		}
		ref, err := resolveFile(env, arg(env, 0))
		if err != nil {
			return err
		}

		old := ref.Path
		if err := env.Project.MoveFile(ref, newPath, groupPath); err != nil {
			return err
		}
		warnIfMissing(env, newPath)
		env.Println(ui.Successf("Moved %s to %s", old, newPath))
		return nil
	},
}

var findFileCmd = commands.Contract{
	Name:        "find-file",
	Description: "Show the file reference a path or name resolves to",
	Args: []commands.Arg{
		{Name: "token", Description: "File path, path suffix or file name", Required: true},
	},
	Examples: []string{"xcproj find-file User.swift", "xcproj find-file Models/User.swift"},
	ReadOnly: true,
	Run: func(env *commands.Env) error {
		token := arg(env, 0)
		if _, err := env.Path(token); err != nil {
			return err
		}
		r := resolver.ResolveWith(env.Policy(), token, env.Project.Files)
		if !r.Found {
			return errs.NotFound("File not found: %s", token)
		}

		printFileRef(env, r.Match)
		if r.Ambiguous {
			env.Println()
			env.Println(ui.Header("Other matches"))
			for _, m := range r.Matches[1:] {
				env.Printf("  %s\n", ui.FilePath(m.Path))
			}
		}
		return nil
	},
}

func printFileRef(env *commands.Env, ref *manifest.FileRef) {
	tbl := ui.NewTable(2)
	tbl.AddRow("path", ui.FilePath(ref.Path))
	tbl.AddRow("name", ref.Name)
	tbl.AddRow("id", ref.ID)
	if ref.Type != "" {
		tbl.AddRow("type", ref.Type)
	}
	if groupPath, ok := env.Project.GroupPathOf(ref.ID); ok {
		tbl.AddRow("group", groupLabel(env, groupPath))
	}
	var targets []string
	for _, t := range env.Project.Targets {
		for _, ph := range t.Phases {
			if containsID(ph.Files, ref.ID) {
				targets = append(targets, fmt.Sprintf("%s (%s)", t.Name, ph.Name))
			}
		}
	}
	for i, t := range targets {
		label := ""
		if i == 0 {
			label = "targets"
		}
		tbl.AddRow(label, t)
	}
	env.Printf("%s", tbl.String())
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

var listFilesCmd = commands.Contract{
	Name:        "list-files",
	Description: "List file references, optionally limited to a group or a glob",
	Optional:    []args.Flag{args.Group, args.Glob},
	Examples: []string{
		"xcproj list-files --group Sources",
		"xcproj list-files --glob 'Sources/**/*.swift'",
	},
	ReadOnly: true,
	Run: func(env *commands.Env) error {
		pattern, _ := env.Args.Value(args.Glob)
		if pattern != "" && !manifest.ValidGlob(pattern) {
			return errs.InvalidValue("Invalid glob pattern", pattern)
		}

		files := env.Project.Files
		if _, ok := env.Args.Value(args.Group); ok {
			groupPath, err := optionalPath(env, args.Group)
			if err != nil {
				return err
			}
			if files, err = env.Project.FilesInGroup(groupPath); err != nil {
				return err
			}
		}

		shown := 0
		for _, f := range files {
			if pattern != "" && !manifest.MatchGlob(pattern, f.Path) {
				continue
			}
			env.Println(f.Path)
			shown++
		}
		if shown == 0 {
			env.Println(ui.Hint("No files"))
		}
		return nil
	},
}
