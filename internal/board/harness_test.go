package board

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/minutes/internal/api"
	"github.com/colonyops/minutes/internal/api/apitest"
)

type note struct {
	level string
	msg   string
}

type recordingNotifier struct {
	notes []note
}

func (n *recordingNotifier) Infof(format string, args ...any) {
	n.notes = append(n.notes, note{level: "info", msg: fmt.Sprintf(format, args...)})
}

func (n *recordingNotifier) Errorf(format string, args ...any) {
	n.notes = append(n.notes, note{level: "error", msg: fmt.Sprintf(format, args...)})
}

func (n *recordingNotifier) last() note {
	if len(n.notes) == 0 {
		return note{}
	}
	return n.notes[len(n.notes)-1]
}

type harness struct {
	srv   *apitest.Server
	ctrl  *Controller
	notes *recordingNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	srv := apitest.New(t)
	client, err := api.New(api.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	notes := &recordingNotifier{}
	return &harness{
		srv:   srv,
		ctrl:  New(context.Background(), client, notes),
		notes: notes,
	}
}

// run executes cmd and feeds every resulting message back through the
// controller until nothing is left. Messages the controller does not handle
// are returned.
func (h *harness) run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	var unhandled []tea.Msg
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			unhandled = append(unhandled, h.run(c)...)
		}
	default:
		next, handled := h.ctrl.Update(msg)
		if !handled {
			return append(unhandled, msg)
		}
		unhandled = append(unhandled, h.run(next)...)
	}
	return unhandled
}

// selectTranscript seeds a transcript and loads it.
func (h *harness) selectTranscript(content string) int64 {
	id := h.srv.SeedTranscript(content)
	h.run(h.ctrl.LoadTranscript(id))
	return id
}
