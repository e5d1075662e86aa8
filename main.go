package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/minutes/internal/api"
	"github.com/colonyops/minutes/internal/commands"
	"github.com/colonyops/minutes/internal/core/config"
	"github.com/colonyops/minutes/internal/core/logging"
	"github.com/colonyops/minutes/internal/core/styles"
	"github.com/colonyops/minutes/internal/tui"
	"github.com/colonyops/minutes/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func buildInfo() tui.BuildInfo {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	if len(c) > 7 {
		c = c[:7]
	}
	return tui.BuildInfo{Version: v, Commit: c, Date: d}
}

func build() string {
	b := buildInfo()
	return fmt.Sprintf("%s (%s) %s", b.Version, b.Commit, b.Date)
}

func main() {
	ctx := context.Background()

	// A .env file in the working directory may hold MINUTES_* settings.
	// Variables already present in the environment win.
	_ = godotenv.Load()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "minutes",
		Usage:     "Turn meeting transcripts into tracked action items",
		UsageText: "minutes [global options] command [command options]",
		Description: `minutes sends meeting transcripts to an action item tracker backend, which
extracts the tasks, owners and due dates, and lets you work through them.

Run 'minutes' with no arguments to open the interactive board.
Run 'minutes submit notes.txt' to extract items from a file.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("MINUTES_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/minutes.log)",
				Sources:     cli.EnvVars("MINUTES_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("MINUTES_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("MINUTES_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "tracker backend base url (overrides api.base_url)",
				Sources:     cli.EnvVars("MINUTES_API_URL"),
				Destination: &flags.APIURL,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				// Let `minutes config validate` report the problems itself.
				if c.Args().First() == "config" {
					return ctx, nil
				}
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.APIURL != "" {
				cfg.API.BaseURL = flags.APIURL
			}
			flags.Config = cfg

			// Always log to a file; use explicit path or default to <datadir>/minutes.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			client, err := api.New(api.Options{
				BaseURL: cfg.API.BaseURL,
				Timeout: cfg.RequestTimeout(),
			})
			if err != nil {
				return ctx, fmt.Errorf("create api client: %w", err)
			}
			flags.Client = client

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, buildInfo())

	app = commands.NewSubmitCmd(flags).Register(app)
	app = commands.NewLsCmd(flags).Register(app)
	app = commands.NewItemsCmd(flags).Register(app)
	app = commands.NewItemCmd(flags).Register(app)
	app = commands.NewStatusCmd(flags).Register(app)
	app = commands.NewWatchCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'minutes --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
