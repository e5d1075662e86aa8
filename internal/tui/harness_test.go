package tui

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/minutes/internal/api"
	"github.com/colonyops/minutes/internal/api/apitest"
	"github.com/colonyops/minutes/pkg/tuitest"
)

// cmdTimeout bounds a single command. Backend calls against the fake server
// finish well within it; cursor blinks and other timers are abandoned.
const cmdTimeout = 300 * time.Millisecond

type driver struct {
	t    *testing.T
	srv  *apitest.Server
	m    Model
	quit bool
}

func newDriver(t *testing.T) *driver {
	t.Helper()

	srv := apitest.New(t)
	client, err := api.New(api.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	d := &driver{
		t:   t,
		srv: srv,
		m: New(context.Background(), client, Options{
			BaseURL:  srv.URL,
			ToastTTL: time.Second,
			Build:    BuildInfo{Version: "v1.2.3"},
			Now:      func() time.Time { return now },
		}),
	}
	d.send(tuitest.WindowSize(120, 40))
	return d
}

func (d *driver) init() {
	d.exec(d.m.Init())
}

func (d *driver) send(msgs ...tea.Msg) {
	for _, msg := range msgs {
		model, cmd := d.m.Update(msg)
		d.m = model.(Model)
		d.exec(cmd)
	}
}

func (d *driver) typeText(s string) {
	d.send(tuitest.Type(s)...)
}

// exec runs cmd and feeds the resulting messages back into the model. Timer
// driven messages (toast ticks, spinner frames, cursor blinks) are dropped so
// the loop always ends.
func (d *driver) exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return
	}

	switch msg := msg.(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			d.exec(c)
		}
	case tea.QuitMsg:
		d.quit = true
	case toastTickMsg:
	default:
		if strings.HasPrefix(reflect.TypeOf(msg).PkgPath(), "charm.land/bubbles") {
			return
		}
		d.send(msg)
	}
}

func (d *driver) screen() string {
	return tuitest.StripANSI(d.m.render())
}

func (d *driver) lastNotification() string {
	history := d.m.Notifications()
	if len(history) == 0 {
		return ""
	}
	return history[0].Message
}

// openTranscript seeds a transcript, loads it and focuses the items pane.
func (d *driver) openTranscript(content string) int64 {
	id := d.srv.SeedTranscript(content)
	d.exec(d.m.Controller().LoadTranscript(id))
	d.send(tuitest.KeyTab())
	require.Equal(d.t, paneItems, d.m.focus)
	return id
}

func keyFor(s string) tea.Msg {
	switch s {
	case "enter":
		return tuitest.KeyEnter()
	case "esc":
		return tuitest.KeyEsc()
	case "right":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyRight})
	case "left":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyLeft})
	default:
		return tuitest.KeyPress([]rune(s)[0])
	}
}
