// Package tui implements the interactive action item board.
package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/minutes/internal/board"
	"github.com/colonyops/minutes/internal/core/notify"
	"github.com/colonyops/minutes/internal/tui/components"
	"github.com/colonyops/minutes/internal/tui/components/form"
	tuinotify "github.com/colonyops/minutes/internal/tui/notify"
)

// UIState is the modal state of the board.
type UIState int

const (
	stateNormal UIState = iota
	stateAdding
	stateEditing
	stateConfirmingDelete
	stateShowingHelp
)

type pane int

const (
	paneTranscript pane = iota
	paneItems
	paneHistory
	paneCount
)

const notificationHistory = 50

// Options configures a Model.
type Options struct {
	BaseURL  string
	ToastTTL time.Duration
	Build    BuildInfo
	// Now overrides the clock used for relative times.
	Now func() time.Time
}

// Model is the root Bubble Tea model for the board.
type Model struct {
	ctrl    *board.Controller
	bus     *tuinotify.Bus
	toasts  *ToastController
	toastUI *ToastView
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	opts    Options

	state      UIState
	focus      pane
	transcript *form.TextAreaField
	addForm    *form.Dialog
	editForm   *form.Dialog
	editID     int64
	deleteBox  *Modal
	helpDialog *components.HelpDialog

	itemCursor    int
	historyCursor int
	width         int
	height        int
}

// New creates the board model. ctx bounds every backend request.
func New(ctx context.Context, backend board.Backend, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	toasts := NewToastController(opts.ToastTTL)
	bus := tuinotify.NewBus(notify.NewRecent(notificationHistory))
	bus.Subscribe(toasts.Push)

	s := spinner.New()
	s.Spinner = spinner.Dot

	transcript := form.NewTextAreaField("Transcript", "Paste the meeting transcript here...", "")
	transcript.Focus()

	return Model{
		ctrl:       board.New(ctx, backend, bus),
		bus:        bus,
		toasts:     toasts,
		toastUI:    NewToastView(toasts),
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    s,
		opts:       opts,
		transcript: transcript,
		width:      100,
		height:     30,
	}
}

// Controller exposes the board controller backing the model.
func (m Model) Controller() *board.Controller {
	return m.ctrl
}

// Notifications returns the recent notification history, newest first.
func (m Model) Notifications() []notify.Notification {
	return m.bus.History()
}

// Init loads the transcript history.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ctrl.Init(), m.spinner.Tick)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.ctrl.Update(msg); ok {
		m.syncWithController()
		return m, tea.Batch(cmd, m.ensureToastTick())
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case board.FormResetMsg:
		return m.handleFormReset(msg)
	case toastTickMsg:
		return m.handleToastTick(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyPressMsg:
		model, cmd := m.handleKey(msg)
		mm := model.(Model)
		mm.syncWithController()
		return mm, tea.Batch(cmd, mm.ensureToastTick())
	}

	return m.forwardToInput(msg)
}

// ensureToastTick starts the toast countdown when toasts are showing and no
// tick is pending.
func (m Model) ensureToastTick() tea.Cmd {
	if !m.toasts.HasToasts() || m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

func (m Model) handleToastTick(_ toastTickMsg) (tea.Model, tea.Cmd) {
	m.toasts.Tick(toastTickInterval)
	if m.toasts.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toasts.SetTicking(false)
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layoutInputs()
	return m, nil
}

func (m Model) handleFormReset(msg board.FormResetMsg) (tea.Model, tea.Cmd) {
	switch msg.Form {
	case board.FormTranscript:
		m.transcript.Reset()
		m.focus = paneItems
		m.transcript.Blur()
		m.itemCursor = 0
	case board.FormAddItem:
		if m.addForm != nil {
			m.addForm.Reset()
		}
		m.addForm = nil
		if m.state == stateAdding {
			m.state = stateNormal
		}
	}
	return m, nil
}

// syncWithController closes dialogs the controller no longer backs and
// keeps cursors inside the lists.
func (m *Model) syncWithController() {
	s := m.ctrl.State()

	if m.state == stateEditing && s.EditingID != m.editID {
		m.editForm = nil
		m.editID = 0
		m.state = stateNormal
	}
	if m.state == stateConfirmingDelete && s.PendingDeleteID == 0 {
		m.deleteBox = nil
		m.state = stateNormal
	}

	m.itemCursor = clamp(m.itemCursor, len(s.Items))
	m.historyCursor = clamp(m.historyCursor, len(s.History))
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	return min(i, n-1)
}

// forwardToInput routes non-key messages (cursor blinks and the like) to
// whichever input currently has focus.
func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.state == stateAdding && m.addForm != nil:
		m.addForm, cmd = m.addForm.Update(msg)
	case m.state == stateEditing && m.editForm != nil:
		m.editForm, cmd = m.editForm.Update(msg)
	case m.state == stateNormal && m.focus == paneTranscript:
		_, cmd = m.transcript.Update(msg)
	}
	return m, cmd
}

func (m *Model) layoutInputs() {
	left, _ := m.columnWidths()
	m.transcript.SetWidth(left - 4)
	m.transcript.SetHeight(max(m.height/2-6, 3))

	dialogWidth := min(m.width-8, 60)
	if m.addForm != nil {
		m.addForm.SetWidth(dialogWidth)
	}
	if m.editForm != nil {
		m.editForm.SetWidth(dialogWidth)
	}
}

func (m Model) columnWidths() (left, right int) {
	left = max(m.width*2/5, 24)
	right = max(m.width-left, 24)
	return left, right
}
