package commands

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/minutes/internal/api"
	"github.com/colonyops/minutes/internal/api/apitest"
	"github.com/colonyops/minutes/internal/core/config"
	"github.com/colonyops/minutes/pkg/tuitest"
)

type testEnv struct {
	t     *testing.T
	srv   *apitest.Server
	flags *Flags
	out   *bytes.Buffer
	stdin io.Reader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	srv := apitest.New(t)
	client, err := api.New(api.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	return &testEnv{
		t:     t,
		srv:   srv,
		flags: &Flags{Client: client, Config: &cfg, DataDir: cfg.DataDir},
		out:   &bytes.Buffer{},
		stdin: strings.NewReader(""),
	}
}

// run builds a fresh root command, registers every subcommand and runs args.
func (e *testEnv) run(args ...string) error {
	e.out.Reset()

	app := &cli.Command{
		Name:      "minutes",
		Writer:    e.out,
		ErrWriter: io.Discard,
		Reader:    e.stdin,
		// Keep cli.Exit from terminating the test binary.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	app = NewSubmitCmd(e.flags).Register(app)
	app = NewLsCmd(e.flags).Register(app)
	app = NewItemsCmd(e.flags).Register(app)
	app = NewItemCmd(e.flags).Register(app)
	app = NewStatusCmd(e.flags).Register(app)
	app = NewConfigCmd(e.flags).Register(app)

	return app.Run(context.Background(), append([]string{"minutes"}, args...))
}

func (e *testEnv) output() string {
	return tuitest.StripANSI(e.out.String())
}

func (e *testEnv) setStdin(s string) {
	e.stdin = strings.NewReader(s)
}
