// Package cli implements the command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/exitcode"
	"github.com/aidanlsb/xcproj/internal/runner"
)

// NewRootCmd returns the xcproj root command. Cobra only provides the entry
// point: flag parsing is disabled and every argument goes to r, whose exit
// code is stored in code.
func NewRootCmd(r *runner.Runner, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xcproj [--project <path>] [--dry-run] [--verbose] <command> [args]",
		Short: "xcproj - safe project manifest edits",
		Long: `xcproj edits an .xcproj project manifest one command at a time.

Every path, name and script is validated before the manifest changes, and the
manifest is written back atomically (or not at all with --dry-run).`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = r.Run(cmd.Context(), args)
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

// NewRegistry returns the registry of every xcproj command.
func NewRegistry() *commands.Registry {
	var all []commands.Contract
	for _, group := range [][]commands.Contract{
		fileCommands,
		groupCommands,
		targetCommands,
		settingCommands,
		phaseCommands,
		packageCommands,
		maintenanceCommands,
		schemeCommands,
		workspaceCommands,
		toolCommands,
	} {
		all = append(all, group...)
	}
	return commands.MustNew(all...)
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute(ctx context.Context) int {
	code := exitcode.Success
	root := NewRootCmd(runner.New(NewRegistry()), &code)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return exitcode.GeneralError
	}
	return code
}
