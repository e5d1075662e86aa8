package board

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/minutes/internal/core/logging"
	"github.com/colonyops/minutes/internal/core/tracker"
	"github.com/colonyops/minutes/internal/core/validate"
)

// User facing notification texts.
const (
	MsgTranscriptEmpty   = "Transcript is empty"
	MsgExtractionFailed  = "Extraction failed"
	MsgExtracted         = "Action items extracted"
	MsgLoadItemsFailed   = "Failed to load items"
	MsgUpdateFailed      = "Update failed"
	MsgItemUpdated       = "Item updated"
	MsgTaskRequired      = "Task is required"
	MsgSelectTranscript  = "Select a transcript first"
	MsgItemAdded         = "Item added"
	MsgAddFailed         = "Add failed"
	MsgItemDeleted       = "Item deleted"
	MsgDeleteFailed      = "Delete failed"
	MsgNoItems           = "No action items found"
	MsgNoTranscriptShown = "Submit a transcript or pick one from history"
)

// Backend is the subset of the tracker API the controller needs.
// *api.Client satisfies it.
type Backend interface {
	SubmitTranscript(ctx context.Context, text string) (tracker.Submission, error)
	ListTranscripts(ctx context.Context) ([]tracker.Transcript, error)
	ListItems(ctx context.Context, transcriptID int64, filter tracker.Filter) ([]tracker.ActionItem, error)
	CreateItem(ctx context.Context, item tracker.NewItem) error
	UpdateItem(ctx context.Context, id int64, update tracker.ItemUpdate) error
	DeleteItem(ctx context.Context, id int64) error
}

// Notifier surfaces short messages to the user.
type Notifier interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Controller owns the board State. Operations return tea.Cmds that perform
// the backend call; their results come back through Update, which is the
// only place State changes after a request is issued.
type Controller struct {
	ctx      context.Context
	backend  Backend
	notifier Notifier
	state    State
	seq      Sequencer
	log      zerolog.Logger
}

// New creates a controller. ctx bounds every backend call and should be
// cancelled when the program exits.
func New(ctx context.Context, backend Backend, notifier Notifier) *Controller {
	return &Controller{
		ctx:      ctx,
		backend:  backend,
		notifier: notifier,
		state: State{
			Filter: tracker.FilterAll,
			writes: make(map[int64]*itemWrite),
		},
		log: logging.Component("board"),
	}
}

// State returns the current state. The returned value must be treated as
// read only.
func (c *Controller) State() State {
	return c.state
}

// Init loads the transcript history.
func (c *Controller) Init() tea.Cmd {
	return c.LoadHistory()
}

// Submit sends transcript text for extraction. Surrounding whitespace is
// trimmed before sending.
func (c *Controller) Submit(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if err := validate.Transcript(text); err != nil {
		c.notifier.Errorf(MsgTranscriptEmpty)
		return nil
	}

	c.state.Loading = true
	seq := c.seq.Next(ResourceSubmit)
	ctx, backend := c.ctx, c.backend
	return func() tea.Msg {
		sub, err := backend.SubmitTranscript(ctx, text)
		return submittedMsg{seq: seq, submission: sub, err: err}
	}
}

// LoadItems fetches the items of the current transcript under the current
// filter. It does nothing when no transcript is selected.
func (c *Controller) LoadItems() tea.Cmd {
	if c.state.TranscriptID == 0 {
		return nil
	}

	seq := c.seq.Next(ResourceItems)
	ctx := logging.WithTranscriptID(c.ctx, c.state.TranscriptID)
	backend, tid, filter := c.backend, c.state.TranscriptID, c.state.Filter
	return func() tea.Msg {
		items, err := backend.ListItems(ctx, tid, filter)
		return itemsLoadedMsg{seq: seq, items: items, err: err}
	}
}

// LoadHistory fetches the transcript history.
func (c *Controller) LoadHistory() tea.Cmd {
	seq := c.seq.Next(ResourceHistory)
	ctx, backend := c.ctx, c.backend
	return func() tea.Msg {
		list, err := backend.ListTranscripts(ctx)
		return historyLoadedMsg{seq: seq, transcripts: list, err: err}
	}
}

// ChangeFilter switches the status filter and reloads items.
func (c *Controller) ChangeFilter(f tracker.Filter) tea.Cmd {
	c.state.Filter = f
	return c.LoadItems()
}

// LoadTranscript selects a transcript from history and loads its items with
// the filter reset. Edit mode is left.
func (c *Controller) LoadTranscript(id int64) tea.Cmd {
	c.state.TranscriptID = id
	c.state.Filter = tracker.FilterAll
	c.state.Source = ""
	c.state.EditingID = 0
	c.state.PendingDeleteID = 0
	return c.LoadItems()
}

// Toggle sets the done state of an item. The local list changes
// immediately. Writes for one item are serialized so that rapid toggles
// settle on the last requested status.
func (c *Controller) Toggle(id int64, done bool) tea.Cmd {
	item, ok := c.state.Item(id)
	if !ok {
		return nil
	}

	want := tracker.StatusFor(done)
	c.state.setStatus(id, want)

	if w, inflight := c.state.writes[id]; inflight {
		w.want = want
		w.queued = &want
		return nil
	}

	c.state.writes[id] = &itemWrite{confirmed: item.Status, want: want}
	return c.writeStatus(id, want)
}

func (c *Controller) writeStatus(id int64, status tracker.Status) tea.Cmd {
	ctx := logging.WithItemID(c.ctx, id)
	backend := c.backend
	return func() tea.Msg {
		err := backend.UpdateItem(ctx, id, tracker.StatusUpdate(status))
		return statusWrittenMsg{id: id, status: status, err: err}
	}
}

// BeginEdit puts the item into edit mode, replacing any other edit.
func (c *Controller) BeginEdit(id int64) {
	c.state.EditingID = id
}

// CancelEdit leaves edit mode without saving.
func (c *Controller) CancelEdit() {
	c.state.EditingID = 0
}

// SaveEdit writes task, owner and due date of an item. Empty owner and due
// date are left unchanged on the backend.
func (c *Controller) SaveEdit(id int64, task, owner, due string) tea.Cmd {
	task = strings.TrimSpace(task)
	if err := validate.Task(task); err != nil {
		c.notifier.Errorf(MsgTaskRequired)
		return nil
	}

	ctx := logging.WithItemID(c.ctx, id)
	backend := c.backend
	update := tracker.FieldsUpdate(task, owner, due)
	return func() tea.Msg {
		err := backend.UpdateItem(ctx, id, update)
		return itemSavedMsg{id: id, err: err}
	}
}

// AddItem creates an item under the current transcript.
func (c *Controller) AddItem(task, owner, due string) tea.Cmd {
	task = strings.TrimSpace(task)
	if err := validate.Task(task); err != nil {
		c.notifier.Errorf(MsgTaskRequired)
		return nil
	}
	if err := validate.TranscriptID(c.state.TranscriptID); err != nil {
		c.notifier.Errorf(MsgSelectTranscript)
		return nil
	}

	item := tracker.NewItem{
		TranscriptID: c.state.TranscriptID,
		Task:         task,
		Owner:        owner,
		DueDate:      due,
	}
	ctx := logging.WithTranscriptID(c.ctx, item.TranscriptID)
	backend := c.backend
	return func() tea.Msg {
		return itemAddedMsg{err: backend.CreateItem(ctx, item)}
	}
}

// RequestDelete asks for confirmation before deleting id.
func (c *Controller) RequestDelete(id int64) {
	c.state.PendingDeleteID = id
}

// CancelDelete drops the pending delete.
func (c *Controller) CancelDelete() {
	c.state.PendingDeleteID = 0
}

// ConfirmDelete deletes the pending item.
func (c *Controller) ConfirmDelete() tea.Cmd {
	id := c.state.PendingDeleteID
	if id == 0 {
		return nil
	}
	c.state.PendingDeleteID = 0

	ctx := logging.WithItemID(c.ctx, id)
	backend := c.backend
	return func() tea.Msg {
		return itemDeletedMsg{id: id, err: backend.DeleteItem(ctx, id)}
	}
}

// Update applies a backend result to the state. handled is false for
// messages the controller does not own.
func (c *Controller) Update(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	switch msg := msg.(type) {
	case submittedMsg:
		return c.onSubmitted(msg), true
	case itemsLoadedMsg:
		c.onItemsLoaded(msg)
		return nil, true
	case historyLoadedMsg:
		c.onHistoryLoaded(msg)
		return nil, true
	case statusWrittenMsg:
		return c.onStatusWritten(msg), true
	case itemSavedMsg:
		return c.onItemSaved(msg), true
	case itemAddedMsg:
		return c.onItemAdded(msg), true
	case itemDeletedMsg:
		return c.onItemDeleted(msg), true
	}
	return nil, false
}

func (c *Controller) onSubmitted(msg submittedMsg) tea.Cmd {
	if !c.seq.Current(ResourceSubmit, msg.seq) {
		c.log.Debug().Uint64("seq", msg.seq).Msg("discarding stale submission result")
		return nil
	}
	c.state.Loading = false

	if msg.err != nil {
		c.log.Warn().Err(msg.err).Msg("extraction failed")
		c.notifier.Errorf(MsgExtractionFailed)
		return nil
	}

	c.state.TranscriptID = msg.submission.TranscriptID
	c.state.Source = msg.submission.Source
	c.state.EditingID = 0
	c.state.PendingDeleteID = 0

	c.log.Info().
		Int64("transcript_id", msg.submission.TranscriptID).
		Str("source", msg.submission.Source).
		Msg("transcript submitted")
	c.notifier.Infof(MsgExtracted)

	return tea.Batch(
		resetForm(FormTranscript),
		c.LoadItems(),
		c.LoadHistory(),
	)
}

func (c *Controller) onItemsLoaded(msg itemsLoadedMsg) {
	if !c.seq.Current(ResourceItems, msg.seq) {
		c.log.Debug().Uint64("seq", msg.seq).Msg("discarding stale items")
		return
	}

	if msg.err != nil {
		c.log.Warn().Err(msg.err).Int64("transcript_id", c.state.TranscriptID).Msg("load items failed")
		c.notifier.Errorf(MsgLoadItemsFailed)
		return
	}

	items := msg.items
	// In-flight toggles win over what the backend has not seen yet.
	for i := range items {
		if w, ok := c.state.writes[items[i].ID]; ok {
			items[i].Status = w.want
		}
	}
	c.state.Items = items
}

func (c *Controller) onHistoryLoaded(msg historyLoadedMsg) {
	if !c.seq.Current(ResourceHistory, msg.seq) {
		c.log.Debug().Uint64("seq", msg.seq).Msg("discarding stale history")
		return
	}
	if msg.err != nil {
		c.log.Debug().Err(msg.err).Msg("load history failed")
		return
	}
	c.state.History = msg.transcripts
}

func (c *Controller) onStatusWritten(msg statusWrittenMsg) tea.Cmd {
	w, ok := c.state.writes[msg.id]
	if !ok {
		return nil
	}

	if msg.err != nil {
		c.log.Warn().Err(msg.err).Int64("item_id", msg.id).Msg("status update failed")
		c.notifier.Errorf(MsgUpdateFailed)
	} else {
		w.confirmed = msg.status
	}

	if w.queued != nil {
		next := *w.queued
		w.queued = nil
		if next != w.confirmed {
			return c.writeStatus(msg.id, next)
		}
	}

	delete(c.state.writes, msg.id)
	if msg.err != nil {
		c.state.setStatus(msg.id, w.confirmed)
		return nil
	}
	return c.LoadItems()
}

func (c *Controller) onItemSaved(msg itemSavedMsg) tea.Cmd {
	if msg.err != nil {
		c.log.Warn().Err(msg.err).Int64("item_id", msg.id).Msg("save item failed")
		c.notifier.Errorf(MsgUpdateFailed)
		return nil
	}

	if c.state.EditingID == msg.id {
		c.state.EditingID = 0
	}
	c.notifier.Infof(MsgItemUpdated)
	return c.LoadItems()
}

func (c *Controller) onItemAdded(msg itemAddedMsg) tea.Cmd {
	if msg.err != nil {
		c.log.Warn().Err(msg.err).Msg("add item failed")
		c.notifier.Errorf(MsgAddFailed)
		return nil
	}

	c.notifier.Infof(MsgItemAdded)
	return tea.Batch(resetForm(FormAddItem), c.LoadItems())
}

func (c *Controller) onItemDeleted(msg itemDeletedMsg) tea.Cmd {
	if msg.err != nil {
		c.log.Warn().Err(msg.err).Int64("item_id", msg.id).Msg("delete item failed")
		c.notifier.Errorf(MsgDeleteFailed)
		return nil
	}

	if c.state.EditingID == msg.id {
		c.state.EditingID = 0
	}
	c.notifier.Infof(MsgItemDeleted)
	return c.LoadItems()
}

func resetForm(f Form) tea.Cmd {
	return func() tea.Msg { return FormResetMsg{Form: f} }
}
