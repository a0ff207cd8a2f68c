package cli

import (
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/aidanlsb/xcproj/internal/args"
	"github.com/aidanlsb/xcproj/internal/audit"
	"github.com/aidanlsb/xcproj/internal/commands"
	"github.com/aidanlsb/xcproj/internal/config"
	"github.com/aidanlsb/xcproj/internal/errs"
	"github.com/aidanlsb/xcproj/internal/ui"
)

var toolCommands = []commands.Contract{
	historyCmd,
	showConfigCmd,
}

// DefaultHistoryLimit is the number of entries history prints by default.
const DefaultHistoryLimit = 20

var historyCmd = commands.Contract{
	Name:         "history",
	Description:  "Show recent xcproj invocations recorded in this directory",
	Manifestless: true,
	ReadOnly:     true,
	Args: []commands.Arg{
		{Name: "command", Description: "Only show these commands", Variadic: true},
	},
	Optional: []args.Flag{args.Limit},
	Examples: []string{"xcproj history --limit 5", "xcproj history add-file remove-file"},
	Run: func(env *commands.Env) error {
		limit, err := env.Args.Int(args.Limit, DefaultHistoryLimit)
		if err != nil {
			return err
		}
		if _, err := os.Stat(audit.Path(env.Dir)); os.IsNotExist(err) {
			env.Println(ui.Hint("No history recorded"))
			return nil
		}

		j, err := audit.Open(env.Ctx, env.Dir)
		if err != nil {
			return errs.Wrap(err, errs.KindOperationFailed, "open history")
		}
		defer j.Close()
		entries, err := j.Recent(env.Ctx, limit, env.Args.Positionals()...)
		if err != nil {
			return errs.Wrap(err, errs.KindOperationFailed, "read history")
		}
		if len(entries) == 0 {
			env.Println(ui.Hint("No history recorded"))
			return nil
		}

		tbl := ui.NewTable(5)
		for _, e := range entries {
			outcome := e.Outcome
			if e.ErrorKind != "" {
				outcome += " " + e.ErrorKind
			}
			tbl.AddRow(
				ui.Hint(humanize.Time(e.Time)),
				e.Command,
				outcome,
				e.Duration.Round(time.Microsecond).String(),
				ui.Hint(e.Message),
			)
		}
		env.Printf("%s", tbl.String())
		return nil
	},
}

var showConfigCmd = commands.Contract{
	Name:         "show-config",
	Description:  "Print the effective configuration",
	Manifestless: true,
	ReadOnly:     true,
	Run: func(env *commands.Env) error {
		cfg := env.Config
		if cfg == nil {
			cfg = config.Default()
		}
		env.Println(ui.Hint("# " + config.DefaultPath()))
		if err := cfg.Encode(env.Stdout); err != nil {
			return errs.Wrap(err, errs.KindOperationFailed, "encode config")
		}
		return nil
	},
}
