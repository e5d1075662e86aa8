package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/minutes/internal/core/config"
	"github.com/colonyops/minutes/internal/core/styles"
	"github.com/colonyops/minutes/pkg/iojson"
)

type ConfigCmd struct {
	flags  *Flags
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "minutes config validate [--format text|json]",
				Description: "Loads the configuration file and reports every invalid field.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
			{
				Name:      "show",
				Usage:     "Print the effective configuration",
				UsageText: "minutes config show",
				Action:    cmd.runShow,
			},
		},
	})

	return app
}

// fieldProblem is the JSON output format for one invalid field.
type fieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigCmd) runValidate(_ context.Context, c *cli.Command) error {
	_, err := config.Load(cmd.flags.ConfigPath, cmd.flags.DataDir)

	var problems []fieldProblem
	if err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			problems = append(problems, fieldProblem{Field: fe.Field, Message: fe.Err.Error()})
		}
	}

	out := c.Root().Writer
	if cmd.format == "json" {
		res := struct {
			Valid  bool           `json:"valid"`
			Path   string         `json:"path"`
			Errors []fieldProblem `json:"errors,omitempty"`
		}{Valid: len(problems) == 0, Path: cmd.flags.ConfigPath, Errors: problems}
		if err := iojson.Write(out, res); err != nil {
			return err
		}
	} else {
		for _, p := range problems {
			_, _ = fmt.Fprintf(out, "%s %s: %s\n", styles.ErrorStyle.Render(styles.IconNotifyError), p.Field, p.Message)
		}
		if len(problems) == 0 {
			_, _ = fmt.Fprintln(out, styles.SuccessStyle.Render(styles.IconDone+" Configuration is valid"))
		}
	}

	if len(problems) > 0 {
		return cli.Exit(fmt.Sprintf("%d error(s) found", len(problems)), 1)
	}
	return nil
}

func (cmd *ConfigCmd) runShow(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if cfg == nil {
		loaded, err := config.Load(cmd.flags.ConfigPath, cmd.flags.DataDir)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	bits, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = c.Root().Writer.Write(bits)
	return err
}
