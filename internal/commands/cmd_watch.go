package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/minutes/internal/core/styles"
	"github.com/colonyops/minutes/internal/watch"
	"github.com/colonyops/minutes/pkg/iojson"
)

type WatchCmd struct {
	flags *Flags

	// flags
	pattern    string
	debounce   time.Duration
	jsonOutput bool
}

// NewWatchCmd creates a new watch command
func NewWatchCmd(flags *Flags) *WatchCmd {
	return &WatchCmd{flags: flags}
}

// Register adds the watch command to the application
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Submit transcripts as they are written to a directory",
		UsageText: "minutes watch [--pattern GLOB] [--debounce DUR] DIR",
		Description: `Watches DIR recursively and submits every new or changed file matching the
pattern once writes settle. Defaults come from the watch section of the config.
Runs until interrupted.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "pattern",
				Aliases:     []string{"p"},
				Usage:       "doublestar pattern relative to DIR (default from config)",
				Destination: &cmd.pattern,
			},
			&cli.DurationFlag{
				Name:        "debounce",
				Usage:       "quiet period before a changed file is submitted (default from config)",
				Destination: &cmd.debounce,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output one JSON line per submission",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// watchEvent is the JSON output format for minutes watch --json.
type watchEvent struct {
	File         string `json:"file"`
	TranscriptID int64  `json:"transcript_id,omitempty"`
	Source       string `json:"source,omitempty"`
	Error        string `json:"error,omitempty"`
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	dir := c.Args().First()
	if dir == "" {
		return fmt.Errorf("directory is required")
	}

	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	opts := watch.Options{Dir: dir, Pattern: cmd.pattern, Debounce: cmd.debounce}
	if cfg := cmd.flags.Config; cfg != nil {
		if opts.Pattern == "" {
			opts.Pattern = cfg.Watch.Pattern
		}
		if opts.Debounce == 0 {
			opts.Debounce = cfg.Watch.Debounce
		}
	}

	w, err := watch.New(client, opts)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := c.Root().Writer
	if !cmd.jsonOutput {
		_, _ = fmt.Fprintln(out, styles.MutedStyle.Render(fmt.Sprintf("Watching %s for %s (ctrl+c to stop)", dir, opts.Pattern)))
	}

	return w.Run(ctx, func(res watch.Result) {
		if cmd.jsonOutput {
			ev := watchEvent{File: res.Path, TranscriptID: res.Submission.TranscriptID, Source: res.Submission.Source}
			if res.Err != nil {
				ev = watchEvent{File: res.Path, Error: res.Err.Error()}
			}
			_ = iojson.WriteLine(out, ev)
			return
		}

		if res.Err != nil {
			_, _ = fmt.Fprintln(out, styles.ErrorStyle.Render(fmt.Sprintf("%s %s", styles.IconNotifyError, res.Err)))
			return
		}
		_, _ = fmt.Fprintf(out, "%s %s %s\n",
			styles.SuccessStyle.Render(styles.IconDone),
			res.Path,
			styles.MutedStyle.Render(fmt.Sprintf("transcript #%d (%s)", res.Submission.TranscriptID, res.Submission.Source)))
	})
}
