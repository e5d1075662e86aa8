package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/minutes/internal/core/sanitize"
	"github.com/colonyops/minutes/internal/core/styles"
	"github.com/colonyops/minutes/internal/core/tracker"
	"github.com/colonyops/minutes/pkg/iojson"
)

type ItemsCmd struct {
	flags *Flags

	// flags
	status     string
	jsonOutput bool
	markdown   bool
	width      int
}

// NewItemsCmd creates a new items command
func NewItemsCmd(flags *Flags) *ItemsCmd {
	return &ItemsCmd{flags: flags}
}

// Register adds the items command to the application
func (cmd *ItemsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "items",
		Usage:         "Show the action items of a transcript",
		UsageText:     "minutes items [--status open|done] [--json|--markdown] TRANSCRIPT_ID",
		ShellComplete: TranscriptIDCompleter(cmd.flags),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "only show items with this status (open, done)",
				Destination: &cmd.status,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "markdown",
				Aliases:     []string{"md"},
				Usage:       "render the items as a markdown checklist",
				Destination: &cmd.markdown,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "word wrap width for --markdown",
				Value:       80,
				Destination: &cmd.width,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ItemsCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.jsonOutput && cmd.markdown {
		return fmt.Errorf("--json and --markdown are mutually exclusive")
	}

	id, err := parseID("transcript id", c.Args().First())
	if err != nil {
		return err
	}

	filter := tracker.FilterAll
	switch tracker.Filter(cmd.status) {
	case "", tracker.FilterAll:
	case tracker.FilterOpen, tracker.FilterDone:
		filter = tracker.Filter(cmd.status)
	default:
		return fmt.Errorf("invalid status %q: must be open or done", cmd.status)
	}

	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	items, err := client.ListItems(ctx, id, filter)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	switch {
	case cmd.jsonOutput:
		for _, it := range items {
			if err := iojson.WriteLine(out, it); err != nil {
				return fmt.Errorf("encode item: %w", err)
			}
		}
		return nil
	case cmd.markdown:
		rendered, err := renderChecklist(id, items, cmd.width)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	}

	if len(items) == 0 {
		fmt.Fprintf(os.Stderr, "No action items found\n")
		return nil
	}
	writeItems(out, items)
	return nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`,
)

// checklistMarkdown builds a GitHub style task list for the items.
func checklistMarkdown(transcriptID int64, items []tracker.ActionItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transcript %d\n\n", transcriptID)

	if len(items) == 0 {
		b.WriteString("_No action items found_\n")
		return b.String()
	}

	for _, it := range items {
		box := "[ ]"
		if it.Done() {
			box = "[x]"
		}
		fmt.Fprintf(&b, "- %s %s", box, markdownEscaper.Replace(sanitize.Line(it.Task)))

		var meta []string
		if it.Owner != "" {
			meta = append(meta, "**"+markdownEscaper.Replace(sanitize.Line(it.Owner))+"**")
		}
		if it.DueDate != "" {
			meta = append(meta, "due "+markdownEscaper.Replace(sanitize.Line(it.DueDate)))
		}
		if len(meta) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(meta, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderChecklist(transcriptID int64, items []tracker.ActionItem, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.Render(checklistMarkdown(transcriptID, items))
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
