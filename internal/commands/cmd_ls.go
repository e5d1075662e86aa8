package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/minutes/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	now   func() time.Time

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags, now: time.Now}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List recent transcripts",
		UsageText: "minutes ls [--json]",
		Description: `Displays the transcript history returned by the backend, newest first, with
the number of action items extracted from each.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// transcriptInfo is the JSON output format for minutes ls --json.
type transcriptInfo struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ItemCount int       `json:"item_count"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	history, err := client.ListTranscripts(ctx)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, t := range history {
			info := transcriptInfo{ID: t.ID, CreatedAt: t.CreatedAt.Time, ItemCount: t.ItemCount}
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode transcript: %w", err)
			}
		}
		return nil
	}

	if len(history) == 0 {
		fmt.Fprintf(os.Stderr, "No transcripts found\n")
		return nil
	}

	now := cmd.now()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCREATED\tAGE\tITEMS")
	for _, t := range history {
		created := t.CreatedAt.Local().Format("2006-01-02 15:04")
		age := humanize.RelTime(t.CreatedAt.Time, now, "ago", "from now")
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", t.ID, created, age, t.ItemCount)
	}

	return w.Flush()
}
