package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/minutes/internal/core/sanitize"
	"github.com/colonyops/minutes/internal/core/styles"
	"github.com/colonyops/minutes/internal/core/tracker"
	"github.com/colonyops/minutes/internal/core/validate"
	"github.com/colonyops/minutes/pkg/iojson"
)

const stdinName = "-"

type SubmitCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewSubmitCmd creates a new submit command
func NewSubmitCmd(flags *Flags) *SubmitCmd {
	return &SubmitCmd{flags: flags}
}

// Register adds the submit command to the application
func (cmd *SubmitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "submit",
		Usage:     "Submit transcripts for action item extraction",
		UsageText: "minutes submit [--json] [FILE|GLOB...]",
		Description: `Sends each transcript to the backend and prints the extracted action items.

Arguments may be file paths or doublestar globs such as 'notes/**/*.txt'.
With no arguments the transcript is read from stdin. Empty transcripts are
rejected before anything is sent.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output one JSON line per transcript",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type transcriptInput struct {
	name string
	text string
}

// submitResult is the JSON output format for minutes submit --json.
type submitResult struct {
	File         string               `json:"file"`
	TranscriptID int64                `json:"transcript_id"`
	Source       string               `json:"source"`
	Items        []tracker.ActionItem `json:"items"`
}

func (cmd *SubmitCmd) run(ctx context.Context, c *cli.Command) error {
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	inputs, err := collectInputs(c)
	if err != nil {
		return err
	}

	// Validate everything up front so a bad file does not leave a partial batch.
	for i := range inputs {
		inputs[i].text = strings.TrimSpace(inputs[i].text)
		if err := validate.Transcript(inputs[i].text); err != nil {
			return fmt.Errorf("%s: %w", inputs[i].name, err)
		}
	}

	out := c.Root().Writer
	for _, in := range inputs {
		sub, err := client.SubmitTranscript(ctx, in.text)
		if err != nil {
			return fmt.Errorf("submit %s: %w", in.name, err)
		}
		log.Info().Str("file", in.name).Int64("transcript_id", sub.TranscriptID).Msg("transcript submitted")

		items, err := client.ListItems(ctx, sub.TranscriptID, tracker.FilterAll)
		if err != nil {
			return fmt.Errorf("load items for transcript %d: %w", sub.TranscriptID, err)
		}

		if cmd.jsonOutput {
			if items == nil {
				items = []tracker.ActionItem{}
			}
			res := submitResult{File: in.name, TranscriptID: sub.TranscriptID, Source: sub.Source, Items: items}
			if err := iojson.WriteLine(out, res); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			continue
		}

		header := fmt.Sprintf("Transcript #%d", sub.TranscriptID)
		_, _ = fmt.Fprintf(out, "%s %s\n", styles.HeaderStyle.Render(header),
			styles.MutedStyle.Render(fmt.Sprintf("(%s, %s)", sanitize.Line(sub.Source), sanitize.Line(in.name))))
		if len(items) == 0 {
			_, _ = fmt.Fprintln(out, styles.MutedStyle.Render("  No action items found"))
			continue
		}
		writeItems(out, items)
	}

	return nil
}

// collectInputs resolves the positional arguments into transcripts. Globs
// are expanded with doublestar; no arguments means stdin.
func collectInputs(c *cli.Command) ([]transcriptInput, error) {
	args := c.Args().Slice()
	if len(args) == 0 || (len(args) == 1 && args[0] == stdinName) {
		text, err := readPiped(c.Root().Reader)
		if err != nil {
			return nil, err
		}
		return []transcriptInput{{name: "stdin", text: text}}, nil
	}

	var paths []string
	for _, arg := range args {
		if !hasGlobMeta(arg) {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		paths = append(paths, matches...)
	}

	inputs := make([]transcriptInput, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read transcript: %w", err)
		}
		inputs = append(inputs, transcriptInput{name: p, text: string(b)})
	}
	return inputs, nil
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
