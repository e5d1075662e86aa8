package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/minutes/internal/core/sanitize"
	"github.com/colonyops/minutes/internal/core/styles"
	"github.com/colonyops/minutes/internal/core/tracker"
	"github.com/colonyops/minutes/internal/core/validate"
	"github.com/colonyops/minutes/pkg/iojson"
)

type ItemCmd struct {
	flags *Flags
	fr    *iojson.FileReader[tracker.NewItem]

	// prompt and confirm are swapped out in tests.
	prompt  func(item *tracker.NewItem) error
	confirm func(title string) (bool, error)

	// flags
	task   string
	owner  string
	due    string
	yes    bool
	asJSON bool
}

// NewItemCmd creates a new item command
func NewItemCmd(flags *Flags) *ItemCmd {
	cmd := &ItemCmd{
		flags: flags,
		fr:    &iojson.FileReader[tracker.NewItem]{},
	}
	cmd.prompt = cmd.runForm
	cmd.confirm = cmd.runConfirm
	return cmd
}

// Register adds the item command to the application
func (cmd *ItemCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "item",
		Usage: "Create, update and delete action items",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add an action item to a transcript",
				UsageText: "minutes item add TRANSCRIPT_ID --task TASK [--owner OWNER] [--due DUE]\n   minutes item add --file item.json",
				Description: `Creates an action item. Without --task an interactive form is shown when
running in a terminal. With --file (or piped stdin) the item is read as JSON:

  {"transcript_id": 3, "task": "Draft agenda", "owner": "Bob", "due_date": "2024-01-10"}`,
				ShellComplete: TranscriptIDCompleter(cmd.flags),
				Flags: append(cmd.fieldFlags(),
					cmd.fr.Flag(),
					&cli.BoolFlag{Name: "json", Usage: "output the result as JSON", Destination: &cmd.asJSON},
				),
				Action: cmd.runAdd,
			},
			{
				Name:      "done",
				Usage:     "Mark an action item as done",
				UsageText: "minutes item done ITEM_ID",
				Action:    cmd.runStatus(tracker.StatusDone),
			},
			{
				Name:      "reopen",
				Usage:     "Mark an action item as open",
				UsageText: "minutes item reopen ITEM_ID",
				Action:    cmd.runStatus(tracker.StatusOpen),
			},
			{
				Name:        "edit",
				Usage:       "Change the task, owner or due date of an action item",
				UsageText:   "minutes item edit ITEM_ID [--task TASK] [--owner OWNER] [--due DUE]",
				Description: "Only the fields that are passed are sent; at least one is required.",
				Flags:       cmd.fieldFlags(),
				Action:      cmd.runEdit,
			},
			{
				Name:      "rm",
				Aliases:   []string{"delete"},
				Usage:     "Delete an action item",
				UsageText: "minutes item rm ITEM_ID [--yes]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation prompt", Destination: &cmd.yes},
				},
				Action: cmd.runRemove,
			},
		},
	})

	return app
}

// fieldFlags returns fresh --task/--owner/--due flags. Each subcommand gets
// its own instances because urfave/cli keeps parse state on the flag.
func (cmd *ItemCmd) fieldFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "task", Aliases: []string{"t"}, Usage: "task description", Destination: &cmd.task},
		&cli.StringFlag{Name: "owner", Aliases: []string{"o"}, Usage: "who owns the task", Destination: &cmd.owner},
		&cli.StringFlag{Name: "due", Usage: "free text due date", Destination: &cmd.due},
	}
}

func (cmd *ItemCmd) runAdd(ctx context.Context, c *cli.Command) error {
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	item, err := cmd.newItem(c)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	item.Task = strings.TrimSpace(item.Task)
	if err := validate.NewItem(item.TranscriptID, item.Task); err != nil {
		return fmt.Errorf("invalid item: %w", err)
	}

	if err := client.CreateItem(ctx, item); err != nil {
		return err
	}
	log.Info().Int64("transcript_id", item.TranscriptID).Msg("action item created")

	out := c.Root().Writer
	if cmd.asJSON {
		return iojson.WriteLine(out, item)
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", styles.SuccessStyle.Render(styles.IconDone+" Item added to transcript"),
		styles.MutedStyle.Render(fmt.Sprintf("#%d", item.TranscriptID)))
	return nil
}

// newItem assembles the item from a JSON file, from piped stdin, from flags
// or from the interactive form, in that order of precedence.
func (cmd *ItemCmd) newItem(c *cli.Command) (tracker.NewItem, error) {
	in := c.Root().Reader
	fromJSON := cmd.fr.Provided() || (c.Args().Len() == 0 && cmd.task == "" && in != nil && !isTerminal(in))
	if fromJSON {
		if !cmd.fr.Provided() {
			cmd.fr.SetInput(in)
		}
		item, err := cmd.fr.Read()
		if err != nil {
			return tracker.NewItem{}, fmt.Errorf("read item: %w", err)
		}
		return item, nil
	}

	id, err := parseID("transcript id", c.Args().First())
	if err != nil {
		return tracker.NewItem{}, err
	}

	item := tracker.NewItem{TranscriptID: id, Task: cmd.task, Owner: cmd.owner, DueDate: cmd.due}
	if item.Task == "" {
		if !isTerminal(c.Root().Reader) {
			return tracker.NewItem{}, fmt.Errorf("--task is required")
		}
		if err := cmd.prompt(&item); err != nil {
			return tracker.NewItem{}, err
		}
	}
	return item, nil
}

func (cmd *ItemCmd) runStatus(status tracker.Status) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		id, err := parseID("item id", c.Args().First())
		if err != nil {
			return err
		}
		client, err := cmd.flags.client()
		if err != nil {
			return err
		}

		if err := client.UpdateItem(ctx, id, tracker.StatusUpdate(status)); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(c.Root().Writer, styles.SuccessStyle.Render(fmt.Sprintf("%s Item %d marked %s", styles.IconDone, id, status)))
		return nil
	}
}

func (cmd *ItemCmd) runEdit(ctx context.Context, c *cli.Command) error {
	id, err := parseID("item id", c.Args().First())
	if err != nil {
		return err
	}

	var update tracker.ItemUpdate
	if c.IsSet("task") {
		cmd.task = strings.TrimSpace(cmd.task)
		if err := validate.Task(cmd.task); err != nil {
			return err
		}
		update.Task = &cmd.task
	}
	if c.IsSet("owner") {
		update.Owner = &cmd.owner
	}
	if c.IsSet("due") {
		update.DueDate = &cmd.due
	}
	if update.IsEmpty() {
		return fmt.Errorf("nothing to update: pass at least one of --task, --owner or --due")
	}

	client, err := cmd.flags.client()
	if err != nil {
		return err
	}
	if err := client.UpdateItem(ctx, id, update); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.SuccessStyle.Render(fmt.Sprintf("%s Item %d updated", styles.IconDone, id)))
	return nil
}

func (cmd *ItemCmd) runRemove(ctx context.Context, c *cli.Command) error {
	id, err := parseID("item id", c.Args().First())
	if err != nil {
		return err
	}

	if !cmd.yes {
		if !isTerminal(c.Root().Reader) {
			return fmt.Errorf("refusing to delete item %d without confirmation; pass --yes", id)
		}
		ok, err := cmd.confirm(fmt.Sprintf("Delete action item %d?", id))
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			_, _ = fmt.Fprintln(c.Root().Writer, styles.MutedStyle.Render("Cancelled"))
			return nil
		}
	}

	client, err := cmd.flags.client()
	if err != nil {
		return err
	}
	if err := client.DeleteItem(ctx, id); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.SuccessStyle.Render(fmt.Sprintf("%s Item %d deleted", styles.IconDone, id)))
	return nil
}

func (cmd *ItemCmd) runForm(item *tracker.NewItem) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Description("What needs to happen").
				Validate(validate.Task).
				Value(&item.Task),
			huh.NewInput().
				Title("Owner").
				Description("Who is responsible (optional)").
				Value(&item.Owner),
			huh.NewInput().
				Title("Due date").
				Description("Free text, e.g. Friday (optional)").
				Value(&item.DueDate),
		),
	).WithTheme(formTheme(cmd.flags)).Run()
}

func (cmd *ItemCmd) runConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(sanitize.Line(title)).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(formTheme(cmd.flags)).Run()
	return ok, err
}

// formTheme picks the huh preset closest to the configured TUI theme.
func formTheme(flags *Flags) *huh.Theme {
	name := ""
	if flags.Config != nil {
		name = flags.Config.TUI.Theme
	}
	switch name {
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "gruvbox":
		return huh.ThemeBase16()
	default:
		return huh.ThemeCharm()
	}
}
