package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/script"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/ui"
)

// ApplyCmd implements the tada apply command.
type ApplyCmd struct {
	flags *Flags

	json bool
}

// NewApplyCmd creates a new apply command.
func NewApplyCmd(flags *Flags) *ApplyCmd {
	return &ApplyCmd{flags: flags}
}

// Register adds the apply command to the application.
func (cmd *ApplyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "apply",
		Usage:     "Replay a YAML script of add/remove steps",
		UsageText: "tada apply <file> [--json]",
		ArgsUsage: "<file>",
		Description: `Runs each step of the script against a fresh list (seeded from config)
and prints the result. Steps are "add: <text>" or "remove: <n>", where n is
the 1-based position at the time the step runs.

Example script:
  - add: Buy milk
  - add: Practice
  - remove: 1

Examples:
  tada apply steps.yaml
  tada apply --json steps.yaml`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the resulting list as JSON",
				Destination: &cmd.json,
			},
		},
		OnUsageError: usageError,
		Action:       cmd.run,
	})
	return app
}

func (cmd *ApplyCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("%w: tada apply <file>", errUsage)
	}
	path := c.Args().First()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	sc, err := script.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	s := newStore(cmd.flags)
	res, err := script.Apply(s, sc, logging.Component("script"))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	w := c.Root().Writer
	if cmd.json {
		return jsonstore.Write(w, s.List())
	}
	ui.OK(w, fmt.Sprintf("applied %d steps: %d added, %d removed, %d skipped",
		len(sc), res.Added, res.Removed, res.Skipped))
	ui.Panel(w, ui.ListLines(s.List()))
	return nil
}
