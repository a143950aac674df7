// Package cli wires the tada command line: global flags, the interactive
// default command and the ls/apply subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// errUsage marks errors caused by bad invocation (exit code 2).
var errUsage = errors.New("usage")

// usageError marks flag parsing failures as usage errors.
func usageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return fmt.Errorf("%w: %w", errUsage, err)
}

// Run builds the app, runs it with args and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, version string, args []string, stdout, stderr io.Writer) int {
	flags := &Flags{}
	app := NewApp(flags, version)
	app.Writer = stdout
	app.ErrWriter = stderr

	if err := app.Run(ctx, args); err != nil {
		ui.Fail(stderr, err.Error())
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// NewApp returns the root command. Flag values land in flags.
func NewApp(flags *Flags, version string) *cli.Command {
	var logCloser func()

	app := &cli.Command{
		Name:      "tada",
		Usage:     "A tiny in-memory to-do list",
		UsageText: "tada [global options] [command [command options]]",
		Description: `Run 'tada' with no arguments to open the interactive list.
Type a to-do and press enter to add it; select an entry (or click it)
to remove it. Nothing is saved when the program exits.`,
		Version:      version,
		OnUsageError: usageError,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("TADA_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "write JSON logs to this file (logging is off when empty)",
				Sources:     cli.EnvVars("TADA_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TADA_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "output theme (" + strings.Join(config.Themes, ", ") + "), overrides the config file",
				Destination: &flags.Theme,
			},
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "disable colored output",
				Destination: &flags.NoColor,
			},
			&cli.BoolFlag{
				Name:        "force-color",
				Usage:       "color output even when stdout is not a terminal",
				Destination: &flags.ForceColor,
			},
			&cli.BoolFlag{
				Name:  "alt-screen",
				Usage: "run the interactive list in the alternate screen (default from config)",
			},
			&cli.BoolFlag{
				Name:  "mouse",
				Usage: "remove entries by clicking them; needs the alternate screen (default from config)",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logging.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.Theme != "" {
				cfg.Theme = strings.ToLower(flags.Theme)
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("%w: --theme: %w", errUsage, err)
				}
			}
			flags.Config = cfg

			ui.SetColorForcing(flags.ForceColor, flags.NoColor)
			ui.SetTheme(cfg.Theme)

			log.Debug().Str("config", flags.ConfigPath).Str("theme", cfg.Theme).Msg("config loaded")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("%w: unknown command %q. Run 'tada --help' for usage", errUsage, c.Args().First())
			}
			return runTUI(ctx, c, flags)
		},
	}

	app = NewLsCmd(flags).Register(app)
	app = NewApplyCmd(flags).Register(app)

	return app
}

// newStore builds a store seeded from the loaded config.
func newStore(flags *Flags) *store.Store {
	return store.New(
		store.WithLogger(logging.Component("store")),
		store.WithSeed(flags.Config.Seed...),
	)
}

func runTUI(ctx context.Context, c *cli.Command, flags *Flags) error {
	cfg := flags.Config

	opts := tui.Options{
		Placeholder: cfg.Input.Placeholder,
		CharLimit:   cfg.Input.CharLimit,
		AltScreen:   cfg.TUI.AltScreen,
		Mouse:       cfg.TUI.Mouse,
		Logger:      logging.Component("tui"),
	}
	if c.IsSet("alt-screen") {
		opts.AltScreen = c.Bool("alt-screen")
	}
	if c.IsSet("mouse") {
		opts.Mouse = c.Bool("mouse")
	}

	return tui.Run(ctx, newStore(flags), opts)
}
