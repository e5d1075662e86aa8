package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// TranscriptIDCompleter returns a ShellCompleteFunc that suggests recent
// transcript ids as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TranscriptIDCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		client, err := flags.client()
		if err != nil {
			return
		}
		history, err := client.ListTranscripts(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, t := range history {
			_, _ = fmt.Fprintf(w, "%d:%d items\n", t.ID, t.ItemCount)
		}
	}
}
