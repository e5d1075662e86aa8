package tui

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/minutes/internal/board"
	"github.com/colonyops/minutes/internal/core/tracker"
	"github.com/colonyops/minutes/pkg/tuitest"
)

func TestModel_SubmitTranscript(t *testing.T) {
	d := newDriver(t)

	d.typeText("Alice will send the report by Friday")
	assert.Equal(t, "Alice will send the report by Friday", d.m.transcript.Value())

	d.send(tuitest.KeyCtrl('s'))

	st := d.m.Controller().State()
	assert.Equal(t, int64(1), st.TranscriptID)
	require.Len(t, st.Items, 1)
	assert.Empty(t, d.m.transcript.Value())
	assert.Equal(t, paneItems, d.m.focus)
	assert.Equal(t, board.MsgExtracted, d.lastNotification())

	screen := d.screen()
	assert.Contains(t, screen, "Alice will send the report by Friday")
	assert.Contains(t, screen, "transcript #1")
	assert.Contains(t, screen, "source: rule-based")
}

func TestModel_SubmitEmptyTranscript(t *testing.T) {
	d := newDriver(t)

	d.send(tuitest.KeyCtrl('s'))

	assert.Empty(t, d.srv.RequestsTo(http.MethodPost, "/api/transcripts"))
	assert.Equal(t, board.MsgTranscriptEmpty, d.lastNotification())
	assert.True(t, d.m.toasts.HasToasts())
	assert.True(t, d.m.toasts.Ticking())
}

func TestModel_TypingQInTranscriptDoesNotQuit(t *testing.T) {
	d := newDriver(t)

	d.typeText("q")

	assert.False(t, d.quit)
	assert.Equal(t, "q", d.m.transcript.Value())

	d.send(tuitest.KeyTab(), tuitest.KeyPress('q'))
	assert.True(t, d.quit)
}

func TestModel_ToggleItem(t *testing.T) {
	d := newDriver(t)
	tid := d.srv.SeedTranscript("notes")
	item := d.srv.SeedItem(tracker.ActionItem{TranscriptID: tid, Task: "Send report"})
	d.exec(d.m.Controller().LoadTranscript(tid))
	d.send(tuitest.KeyTab())

	d.send(tuitest.KeySpace())

	stored, ok := d.srv.Item(item.ID)
	require.True(t, ok)
	assert.Equal(t, tracker.StatusDone, stored.Status)
	assert.True(t, d.m.Controller().State().Items[0].Done())
	assert.Contains(t, d.screen(), "✓ Send report")

	d.send(tuitest.KeyPress('x'))
	stored, _ = d.srv.Item(item.ID)
	assert.Equal(t, tracker.StatusOpen, stored.Status)
}

func TestModel_DeleteRequiresConfirmation(t *testing.T) {
	d := newDriver(t)
	tid := d.srv.SeedTranscript("notes")
	item := d.srv.SeedItem(tracker.ActionItem{TranscriptID: tid, Task: "Book room"})
	d.exec(d.m.Controller().LoadTranscript(tid))
	d.send(tuitest.KeyTab())

	d.send(tuitest.KeyPress('d'))
	require.Equal(t, stateConfirmingDelete, d.m.state)
	assert.Equal(t, item.ID, d.m.Controller().State().PendingDeleteID)
	assert.Contains(t, d.screen(), "Delete action item?")

	d.send(tuitest.KeyPress('n'))
	assert.Equal(t, stateNormal, d.m.state)
	assert.Zero(t, d.m.Controller().State().PendingDeleteID)
	_, ok := d.srv.Item(item.ID)
	assert.True(t, ok)

	d.send(tuitest.KeyPress('d'), tuitest.KeyPress('y'))
	_, ok = d.srv.Item(item.ID)
	assert.False(t, ok)
	assert.Empty(t, d.m.Controller().State().Items)
	assert.Equal(t, board.MsgItemDeleted, d.lastNotification())
	assert.Contains(t, d.screen(), board.MsgNoItems)
}

func TestModel_DeleteEnterDefaultsToCancel(t *testing.T) {
	d := newDriver(t)
	tid := d.srv.SeedTranscript("notes")
	item := d.srv.SeedItem(tracker.ActionItem{TranscriptID: tid, Task: "Book room"})
	d.exec(d.m.Controller().LoadTranscript(tid))
	d.send(tuitest.KeyTab())

	d.send(tuitest.KeyPress('d'), tuitest.KeyEnter())

	_, ok := d.srv.Item(item.ID)
	assert.True(t, ok)
	assert.Equal(t, stateNormal, d.m.state)
	assert.Empty(t, d.srv.RequestsTo(http.MethodDelete, "/api/action-items/1"))
}

func TestModel_AddItem(t *testing.T) {
	d := newDriver(t)
	tid := d.openTranscript("notes")

	d.send(tuitest.KeyPress('n'))
	require.Equal(t, stateAdding, d.m.state)

	d.typeText("Draft agenda")
	d.send(tuitest.KeyTab())
	d.typeText("Carol")
	d.send(tuitest.KeyCtrl('s'))

	items := d.srv.Items(tid)
	require.Len(t, items, 1)
	assert.Equal(t, "Draft agenda", items[0].Task)
	assert.Equal(t, "Carol", items[0].Owner)
	assert.Empty(t, items[0].DueDate)

	assert.Equal(t, stateNormal, d.m.state)
	assert.Nil(t, d.m.addForm)
	assert.Len(t, d.m.Controller().State().Items, 1)
}

func TestModel_AddItemRequiresTask(t *testing.T) {
	d := newDriver(t)
	d.openTranscript("notes")

	d.send(tuitest.KeyPress('n'), tuitest.KeyCtrl('s'))

	assert.Equal(t, stateAdding, d.m.state)
	assert.Equal(t, board.MsgTaskRequired, d.lastNotification())
	assert.Empty(t, d.srv.RequestsTo(http.MethodPost, "/api/action-items"))

	d.send(tuitest.KeyEsc())
	assert.Equal(t, stateNormal, d.m.state)
}

func TestModel_EditItem(t *testing.T) {
	d := newDriver(t)
	tid := d.srv.SeedTranscript("notes")
	item := d.srv.SeedItem(tracker.ActionItem{TranscriptID: tid, Task: "Send report", Owner: "Alice"})
	d.exec(d.m.Controller().LoadTranscript(tid))
	d.send(tuitest.KeyTab())

	d.send(tuitest.KeyPress('e'))
	require.Equal(t, stateEditing, d.m.state)
	assert.Equal(t, item.ID, d.m.Controller().State().EditingID)
	assert.Equal(t, "Send report", d.m.editForm.Value("task"))
	assert.Equal(t, "Alice", d.m.editForm.Value("owner"))

	d.typeText(" today")
	d.send(tuitest.KeyCtrl('s'))

	stored, _ := d.srv.Item(item.ID)
	assert.Equal(t, "Send report today", stored.Task)
	assert.Equal(t, "Alice", stored.Owner)
	assert.Equal(t, stateNormal, d.m.state)
	assert.Zero(t, d.m.Controller().State().EditingID)
}

func TestModel_EditCancel(t *testing.T) {
	d := newDriver(t)
	tid := d.srv.SeedTranscript("notes")
	d.srv.SeedItem(tracker.ActionItem{TranscriptID: tid, Task: "Send report"})
	d.exec(d.m.Controller().LoadTranscript(tid))
	d.send(tuitest.KeyTab())

	d.send(tuitest.KeyPress('e'))
	d.typeText("zzz")
	d.send(tuitest.KeyEsc())

	assert.Equal(t, stateNormal, d.m.state)
	assert.Zero(t, d.m.Controller().State().EditingID)
	assert.Empty(t, d.srv.RequestsTo(http.MethodPut, "/api/action-items/1"))
	assert.Equal(t, "Send report", d.m.Controller().State().Items[0].Task)
}

func TestModel_FilterKeys(t *testing.T) {
	d := newDriver(t)
	tid := d.openTranscript("notes")
	d.srv.SeedItem(tracker.ActionItem{TranscriptID: tid, Task: "open one"})
	d.srv.SeedItem(tracker.ActionItem{TranscriptID: tid, Task: "done one", Status: tracker.StatusDone})

	d.send(tuitest.KeyPress('3'))
	st := d.m.Controller().State()
	assert.Equal(t, tracker.FilterDone, st.Filter)
	require.Len(t, st.Items, 1)
	assert.Equal(t, "done one", st.Items[0].Task)

	d.send(tuitest.KeyPress('f'))
	assert.Equal(t, tracker.FilterAll, d.m.Controller().State().Filter)
	assert.Len(t, d.m.Controller().State().Items, 2)

	d.send(tuitest.KeyPress('2'))
	assert.Equal(t, tracker.FilterOpen, d.m.Controller().State().Filter)
}

func TestModel_LoadFromHistory(t *testing.T) {
	d := newDriver(t)
	first := d.srv.SeedTranscript("first meeting")
	second := d.srv.SeedTranscript("second meeting")
	d.srv.SeedItem(tracker.ActionItem{TranscriptID: first, Task: "from first"})
	d.init()
	require.Len(t, d.m.Controller().State().History, 2)

	d.send(tuitest.KeyTab(), tuitest.KeyTab())
	require.Equal(t, paneHistory, d.m.focus)

	// History is newest first.
	d.send(tuitest.KeyEnter())
	assert.Equal(t, second, d.m.Controller().State().TranscriptID)
	assert.Equal(t, paneItems, d.m.focus)

	d.send(tuitest.KeyTab(), tuitest.KeyDown(), tuitest.KeyEnter())
	st := d.m.Controller().State()
	assert.Equal(t, first, st.TranscriptID)
	require.Len(t, st.Items, 1)
	assert.Equal(t, "from first", st.Items[0].Task)
}

func TestModel_HelpDialog(t *testing.T) {
	d := newDriver(t)
	d.send(tuitest.KeyTab(), tuitest.KeyPress('?'))

	require.Equal(t, stateShowingHelp, d.m.state)
	screen := d.screen()
	assert.Contains(t, screen, "minutes v1.2.3")
	assert.Contains(t, screen, "toggle done")

	d.send(tuitest.KeyEsc())
	assert.Equal(t, stateNormal, d.m.state)
}

func TestModel_EmptyBoard(t *testing.T) {
	d := newDriver(t)
	d.init()

	screen := d.screen()
	assert.Contains(t, screen, board.MsgNoTranscriptShown)
	assert.Contains(t, screen, "No transcripts yet")
}

func TestModel_CtrlCQuits(t *testing.T) {
	d := newDriver(t)
	d.send(tuitest.KeyCtrl('c'))
	assert.True(t, d.quit)
}
