package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/minutes/internal/core/styles"
	"github.com/colonyops/minutes/internal/core/tracker"
	"github.com/colonyops/minutes/pkg/iojson"
)

type StatusCmd struct {
	flags *Flags

	// flags
	wait       time.Duration
	jsonOutput bool
}

// NewStatusCmd creates a new status command
func NewStatusCmd(flags *Flags) *StatusCmd {
	return &StatusCmd{flags: flags}
}

// Register adds the status command to the application
func (cmd *StatusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "status",
		Usage:     "Show backend health",
		UsageText: "minutes status [--wait DUR] [--json]",
		Description: `Queries the backend health endpoint. With --wait the endpoint is polled with
exponential backoff until the backend and database report healthy or the
duration elapses. Exits non-zero when the backend is unhealthy.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "wait",
				Aliases:     []string{"w"},
				Usage:       "keep polling until healthy for up to this long",
				Destination: &cmd.wait,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatusCmd) run(ctx context.Context, c *cli.Command) error {
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	var st tracker.BackendStatus
	if cmd.wait > 0 {
		st, err = client.WaitReady(ctx, cmd.wait)
	} else {
		st, err = client.Status(ctx)
	}
	// A failed wait may still carry the last status that was seen.
	if err != nil && st == (tracker.BackendStatus{}) {
		return fmt.Errorf("backend status: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		if werr := iojson.Write(out, st); werr != nil {
			return werr
		}
	} else {
		cmd.printStatus(c, st)
	}

	if err != nil {
		return fmt.Errorf("backend status: %w", err)
	}
	if !st.Healthy() {
		return fmt.Errorf("backend %s is not healthy", client.BaseURL())
	}
	return nil
}

func (cmd *StatusCmd) printStatus(c *cli.Command, st tracker.BackendStatus) {
	out := c.Root().Writer

	row := func(label, value string, ok bool) {
		icon := styles.SuccessStyle.Render(styles.IconDone)
		if !ok {
			icon = styles.ErrorStyle.Render(styles.IconNotifyError)
		}
		_, _ = fmt.Fprintf(out, "%s %-9s %s\n", icon, label, value)
	}

	_, _ = fmt.Fprintln(out, styles.HeaderStyle.Render("Backend "+cmd.flags.baseURL()))
	row("backend", st.Backend, st.Backend == "healthy")
	row("database", st.Database, st.Database == "connected")
	_, _ = fmt.Fprintf(out, "%s %-9s %s\n", styles.MutedStyle.Render(styles.IconDot), "llm", st.LLM)
	if st.Fallback != "" {
		_, _ = fmt.Fprintf(out, "%s %-9s %s\n", styles.MutedStyle.Render(styles.IconDot), "fallback", st.Fallback)
	}
}
