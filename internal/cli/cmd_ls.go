package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/ui"
)

// LsCmd implements the tada ls command.
type LsCmd struct {
	flags *Flags

	json bool
}

// NewLsCmd creates a new ls command.
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application.
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "Print the starting list",
		UsageText: "tada ls [--json]",
		Description: `Prints the list a new session starts with (the config file's seed items).

Examples:
  tada ls
  tada ls --json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the list as JSON",
				Destination: &cmd.json,
			},
		},
		OnUsageError: usageError,
		Action:       cmd.run,
	})
	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	items := newStore(cmd.flags).List()

	w := c.Root().Writer
	if cmd.json {
		return jsonstore.Write(w, items)
	}
	ui.Panel(w, ui.ListLines(items))
	return nil
}
