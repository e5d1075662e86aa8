package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/minutes/internal/core/config"
	"github.com/colonyops/minutes/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	build tui.BuildInfo
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, build tui.BuildInfo) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		build: build,
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	toastTTL := config.DefaultToastTTL
	if cmd.flags.Config != nil {
		toastTTL = cmd.flags.Config.TUI.ToastTTL
	}

	// Cancelling ctx on exit aborts requests that are still in flight.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.New(ctx, client, tui.Options{
		BaseURL:  client.BaseURL(),
		ToastTTL: toastTTL,
		Build:    cmd.build,
	})

	log.Info().Str("base_url", client.BaseURL()).Msg("starting tui")

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
